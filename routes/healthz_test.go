// SPDX-FileCopyrightText: 2025 Humaid Alqasimi
// SPDX-License-Identifier: Apache-2.0

package routes

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/flamego/flamego"
)

func TestHealthz(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		ping       func(context.Context) error
		wantStatus int
		wantBody   string
	}{
		{name: "no database", wantStatus: http.StatusOK, wantBody: "ok"},
		{name: "database up", ping: func(context.Context) error { return nil }, wantStatus: http.StatusOK, wantBody: "ok"},
		{name: "database down", ping: func(context.Context) error { return errors.New("down") }, wantStatus: http.StatusServiceUnavailable, wantBody: "unavailable"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			f := flamego.New()
			f.Get("/healthz", Healthz(tt.ping))

			rec := httptest.NewRecorder()
			f.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

			if rec.Code != tt.wantStatus {
				t.Fatalf("expected status %d, got %d", tt.wantStatus, rec.Code)
			}

			var payload map[string]string
			if err := json.NewDecoder(rec.Body).Decode(&payload); err != nil {
				t.Fatalf("failed decoding response: %v", err)
			}

			if payload["status"] != tt.wantBody {
				t.Fatalf("expected status %q, got %q", tt.wantBody, payload["status"])
			}
		})
	}
}

func TestNotFound(t *testing.T) {
	t.Parallel()

	f := flamego.New()
	f.NotFound(NotFound)

	rec := httptest.NewRecorder()
	f.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/missing", nil))

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected status %d, got %d", http.StatusNotFound, rec.Code)
	}
	assertErrorMessage(t, rec, errNotFound.Error())
}
