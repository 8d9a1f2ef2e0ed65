// SPDX-FileCopyrightText: 2025 Humaid Alqasimi
// SPDX-License-Identifier: Apache-2.0

package routes

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/flamego/flamego"
	"github.com/google/uuid"

	"github.com/humaidq/healthlens/analytics"
	"github.com/humaidq/healthlens/db"
)

// memoryRecordStore mimics the database rules the handlers rely on.
type memoryRecordStore struct {
	mu       sync.Mutex
	profiles map[string]db.CreateProfileInput
	analyses map[string]db.CreateAnalysisInput
	err      error
}

func newMemoryRecordStore() *memoryRecordStore {
	return &memoryRecordStore{
		profiles: make(map[string]db.CreateProfileInput),
		analyses: make(map[string]db.CreateAnalysisInput),
	}
}

func checkUserID(userID string) error {
	if _, err := uuid.Parse(userID); err != nil {
		return fmt.Errorf("%w: %q", db.ErrInvalidUserID, userID)
	}

	return nil
}

func (s *memoryRecordStore) CreateProfile(_ context.Context, input db.CreateProfileInput) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.err != nil {
		return "", s.err
	}

	if input.Gender != nil {
		if _, ok := analytics.ParseGender(*input.Gender); !ok {
			return "", db.ErrInvalidGender
		}
	}

	id := uuid.NewString()
	s.profiles[id] = input

	return id, nil
}

func (s *memoryRecordStore) UpdateProfile(_ context.Context, userID string, input db.CreateProfileInput) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := checkUserID(userID); err != nil {
		return err
	}

	if _, ok := s.profiles[userID]; !ok {
		return db.ErrProfileNotFound
	}

	s.profiles[userID] = input

	return nil
}

func (s *memoryRecordStore) DeleteProfile(_ context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.profiles[userID]; !ok {
		return db.ErrProfileNotFound
	}

	delete(s.profiles, userID)

	return nil
}

func (s *memoryRecordStore) CreateAnalysis(_ context.Context, input db.CreateAnalysisInput) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := checkUserID(input.UserID); err != nil {
		return "", err
	}

	if _, ok := s.profiles[input.UserID]; !ok {
		return "", db.ErrProfileNotFound
	}

	id := uuid.NewString()
	s.analyses[id] = input

	return id, nil
}

func (s *memoryRecordStore) ListAnalyses(_ context.Context, userID string) ([]db.LabAnalysis, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.err != nil {
		return nil, s.err
	}

	var out []db.LabAnalysis

	for id, a := range s.analyses {
		if a.UserID != userID {
			continue
		}

		row := db.LabAnalysis{
			ID:           uuid.MustParse(id),
			UserID:       uuid.MustParse(userID),
			AnalysisType: a.AnalysisType,
			Results:      a.Results,
		}
		if a.CreatedAt != nil {
			row.CreatedAt = *a.CreatedAt
		}

		out = append(out, row)
	}

	return out, nil
}

func (s *memoryRecordStore) DeleteAnalysis(_ context.Context, analysisID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.analyses[analysisID]; !ok {
		return db.ErrAnalysisNotFound
	}

	delete(s.analyses, analysisID)

	return nil
}

func newRecordsTestApp(store RecordStore) *flamego.Flame {
	f := flamego.New()
	f.MapTo(store, (*RecordStore)(nil))

	f.Post("/api/profiles", CreateProfile)
	f.Put("/api/users/{id}/profile", UpdateProfile)
	f.Delete("/api/users/{id}", DeleteProfile)
	f.Get("/api/users/{id}/analyses", ListAnalyses)
	f.Post("/api/users/{id}/analyses", CreateAnalysis)
	f.Delete("/api/analyses/{id}", DeleteAnalysis)
	f.Options("/api/users/{id}/profile", Preflight)

	return f
}

func doRequest(f *flamego.Flame, method, path, body string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	f.ServeHTTP(rec, httptest.NewRequest(method, path, strings.NewReader(body)))

	return rec
}

func decodeCreatedID(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected status %d, got %d: %s", http.StatusCreated, rec.Code, rec.Body.String())
	}

	var resp createdResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed decoding created response: %v", err)
	}

	return resp.ID
}

func TestRecordLifecycle(t *testing.T) {
	t.Parallel()

	store := newMemoryRecordStore()
	f := newRecordsTestApp(store)

	userID := decodeCreatedID(t, doRequest(f, http.MethodPost, "/api/profiles",
		`{"fullName": "Test User", "dateOfBirth": "1980-01-01", "gender": "male"}`))

	if p := store.profiles[userID]; p.DateOfBirth == nil || p.DateOfBirth.Year() != 1980 {
		t.Fatalf("date of birth not parsed: %+v", p)
	}

	rec := doRequest(f, http.MethodPut, "/api/users/"+userID+"/profile", `{"dateOfBirth": "1990-05-05", "gender": "female"}`)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected status %d, got %d: %s", http.StatusNoContent, rec.Code, rec.Body.String())
	}
	assertCORSHeaders(t, rec)

	analysisID := decodeCreatedID(t, doRequest(f, http.MethodPost, "/api/users/"+userID+"/analyses",
		`{"analysis_type": "blood", "created_at": "2025-05-01 09:00:00", "results": {"markers": [{"name": "Глюкоза", "value": "5,4", "status": 3}]}}`))

	created := store.analyses[analysisID]
	if created.CreatedAt == nil || !created.CreatedAt.Equal(time.Date(2025, time.May, 1, 9, 0, 0, 0, time.UTC)) {
		t.Fatalf("created_at not carried over: %v", created.CreatedAt)
	}
	if created.Results == nil || len(created.Results.Markers) != 1 || created.Results.Markers[0].Status != "" {
		t.Fatalf("expected one marker with its malformed status dropped, got %+v", created.Results)
	}

	rec = doRequest(f, http.MethodGet, "/api/users/"+userID+"/analyses", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rec.Code)
	}

	var listed analysesResponse
	if err := json.NewDecoder(rec.Body).Decode(&listed); err != nil {
		t.Fatalf("failed decoding analyses: %v", err)
	}
	if len(listed.Analyses) != 1 || listed.Analyses[0].ID != analysisID {
		t.Fatalf("unexpected analyses: %+v", listed.Analyses)
	}

	if rec := doRequest(f, http.MethodDelete, "/api/analyses/"+analysisID, ""); rec.Code != http.StatusNoContent {
		t.Fatalf("expected analysis delete to return %d, got %d", http.StatusNoContent, rec.Code)
	}

	if rec := doRequest(f, http.MethodDelete, "/api/users/"+userID, ""); rec.Code != http.StatusNoContent {
		t.Fatalf("expected profile delete to return %d, got %d", http.StatusNoContent, rec.Code)
	}
}

func TestRecordErrors(t *testing.T) {
	t.Parallel()

	missing := uuid.NewString()

	tests := []struct {
		name       string
		method     string
		path       string
		body       string
		storeErr   error
		wantStatus int
	}{
		{name: "malformed profile body", method: http.MethodPost, path: "/api/profiles", body: `{"fullName": 1}`, wantStatus: http.StatusBadRequest},
		{name: "bad date of birth", method: http.MethodPost, path: "/api/profiles", body: `{"dateOfBirth": "01/02/1980"}`, wantStatus: http.StatusBadRequest},
		{name: "unknown gender", method: http.MethodPost, path: "/api/profiles", body: `{"gender": "robot"}`, wantStatus: http.StatusBadRequest},
		{name: "update invalid id", method: http.MethodPut, path: "/api/users/me/profile", body: `{}`, wantStatus: http.StatusBadRequest},
		{name: "update missing profile", method: http.MethodPut, path: "/api/users/" + missing + "/profile", body: `{}`, wantStatus: http.StatusNotFound},
		{name: "delete missing profile", method: http.MethodDelete, path: "/api/users/" + missing, wantStatus: http.StatusNotFound},
		{name: "analysis for missing profile", method: http.MethodPost, path: "/api/users/" + missing + "/analyses", body: `{}`, wantStatus: http.StatusNotFound},
		{name: "analysis body not JSON", method: http.MethodPost, path: "/api/users/" + missing + "/analyses", body: `nope`, wantStatus: http.StatusBadRequest},
		{name: "delete missing analysis", method: http.MethodDelete, path: "/api/analyses/" + missing, wantStatus: http.StatusNotFound},
		{name: "store failure", method: http.MethodGet, path: "/api/users/" + missing + "/analyses", storeErr: errors.New("connection reset"), wantStatus: http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			store := newMemoryRecordStore()
			store.err = tt.storeErr
			f := newRecordsTestApp(store)

			rec := doRequest(f, tt.method, tt.path, tt.body)
			if rec.Code != tt.wantStatus {
				t.Fatalf("expected status %d, got %d: %s", tt.wantStatus, rec.Code, rec.Body.String())
			}
		})
	}
}

func TestRecordPreflight(t *testing.T) {
	t.Parallel()

	f := newRecordsTestApp(newMemoryRecordStore())

	rec := doRequest(f, http.MethodOptions, "/api/users/"+testUserID+"/profile", "")
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected status %d, got %d", http.StatusNoContent, rec.Code)
	}
	assertCORSHeaders(t, rec)
}
