/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package routes

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/flamego/flamego"

	"github.com/humaidq/healthlens/analytics"
	"github.com/humaidq/healthlens/db"
)

// RecordStore manages the profiles and analyses that stored reports are
// built from.
type RecordStore interface {
	CreateProfile(ctx context.Context, input db.CreateProfileInput) (string, error)
	UpdateProfile(ctx context.Context, userID string, input db.CreateProfileInput) error
	DeleteProfile(ctx context.Context, userID string) error
	CreateAnalysis(ctx context.Context, input db.CreateAnalysisInput) (string, error)
	ListAnalyses(ctx context.Context, userID string) ([]db.LabAnalysis, error)
	DeleteAnalysis(ctx context.Context, analysisID string) error
}

// DBRecordStore is the PostgreSQL backed RecordStore.
type DBRecordStore struct{}

// CreateProfile implements RecordStore.
func (DBRecordStore) CreateProfile(ctx context.Context, input db.CreateProfileInput) (string, error) {
	return db.CreateProfile(ctx, input)
}

// UpdateProfile implements RecordStore.
func (DBRecordStore) UpdateProfile(ctx context.Context, userID string, input db.CreateProfileInput) error {
	return db.UpdateProfileDemographics(ctx, userID, input)
}

// DeleteProfile implements RecordStore.
func (DBRecordStore) DeleteProfile(ctx context.Context, userID string) error {
	return db.DeleteProfile(ctx, userID)
}

// CreateAnalysis implements RecordStore.
func (DBRecordStore) CreateAnalysis(ctx context.Context, input db.CreateAnalysisInput) (string, error) {
	return db.CreateAnalysis(ctx, input)
}

// ListAnalyses implements RecordStore.
func (DBRecordStore) ListAnalyses(ctx context.Context, userID string) ([]db.LabAnalysis, error) {
	return db.ListAnalyses(ctx, userID)
}

// DeleteAnalysis implements RecordStore.
func (DBRecordStore) DeleteAnalysis(ctx context.Context, analysisID string) error {
	return db.DeleteAnalysis(ctx, analysisID)
}

type profileRequest struct {
	FullName    *string `json:"fullName"`
	DateOfBirth *string `json:"dateOfBirth"`
	Gender      *string `json:"gender"`
}

type createdResponse struct {
	ID string `json:"id"`
}

type analysesResponse struct {
	Analyses []analytics.AnalysisRecord `json:"analyses"`
}

func decodeProfileRequest(c flamego.Context) (db.CreateProfileInput, error) {
	var req profileRequest
	if err := json.NewDecoder(c.Request().Body().ReadCloser()).Decode(&req); err != nil {
		return db.CreateProfileInput{}, errMalformedRequest
	}

	input := db.CreateProfileInput{FullName: req.FullName, Gender: req.Gender}

	if req.DateOfBirth != nil && *req.DateOfBirth != "" {
		dob, err := time.Parse(time.DateOnly, *req.DateOfBirth)
		if err != nil {
			return db.CreateProfileInput{}, fmt.Errorf("%w: %q", errInvalidDateOfBirth, *req.DateOfBirth)
		}

		input.DateOfBirth = &dob
	}

	return input, nil
}

// writeStoreError maps record store errors onto HTTP statuses.
func writeStoreError(c flamego.Context, op string, err error) {
	switch {
	case errors.Is(err, db.ErrInvalidUserID), errors.Is(err, db.ErrInvalidGender):
		writeJSONError(c, http.StatusBadRequest, err)
	case errors.Is(err, db.ErrProfileNotFound), errors.Is(err, db.ErrAnalysisNotFound):
		writeJSONError(c, http.StatusNotFound, err)
	default:
		logger.Error("Record store failure", "op", op, "error", err)
		writeJSONError(c, http.StatusServiceUnavailable, errDatabaseUnavailable)
	}
}

// Preflight answers CORS preflight requests for the record routes.
func Preflight(c flamego.Context) {
	addCORSHeaders(c)
	handlePreflight(c)
}

// CreateProfile stores a new profile and returns its id.
func CreateProfile(c flamego.Context, store RecordStore) {
	addCORSHeaders(c)

	input, err := decodeProfileRequest(c)
	if err != nil {
		writeJSONError(c, http.StatusBadRequest, err)
		return
	}

	id, err := store.CreateProfile(c.Request().Context(), input)
	if err != nil {
		writeStoreError(c, "create profile", err)
		return
	}

	writeJSON(c, http.StatusCreated, createdResponse{ID: id})
}

// UpdateProfile replaces the demographics of a profile. Cached reports of
// the user are invalidated by the store.
func UpdateProfile(c flamego.Context, store RecordStore) {
	addCORSHeaders(c)

	input, err := decodeProfileRequest(c)
	if err != nil {
		writeJSONError(c, http.StatusBadRequest, err)
		return
	}

	if err := store.UpdateProfile(c.Request().Context(), c.Param("id"), input); err != nil {
		writeStoreError(c, "update profile", err)
		return
	}

	c.ResponseWriter().WriteHeader(http.StatusNoContent)
}

// DeleteProfile removes a profile with its analyses and cached report.
func DeleteProfile(c flamego.Context, store RecordStore) {
	addCORSHeaders(c)

	if err := store.DeleteProfile(c.Request().Context(), c.Param("id")); err != nil {
		writeStoreError(c, "delete profile", err)
		return
	}

	c.ResponseWriter().WriteHeader(http.StatusNoContent)
}

// CreateAnalysis stores a lab analysis for the user. The body uses the same
// lenient record format as the analytics endpoint.
func CreateAnalysis(c flamego.Context, store RecordStore) {
	addCORSHeaders(c)

	var record analytics.AnalysisRecord
	if err := json.NewDecoder(c.Request().Body().ReadCloser()).Decode(&record); err != nil {
		writeJSONError(c, http.StatusBadRequest, errMalformedRequest)
		return
	}

	input := db.CreateAnalysisInput{
		UserID:       c.Param("id"),
		AnalysisType: record.AnalysisType,
		Results:      record.Results,
	}

	if !record.CreatedAt.IsZero() {
		createdAt := record.CreatedAt.Time
		input.CreatedAt = &createdAt
	}

	id, err := store.CreateAnalysis(c.Request().Context(), input)
	if err != nil {
		writeStoreError(c, "create analysis", err)
		return
	}

	writeJSON(c, http.StatusCreated, createdResponse{ID: id})
}

// ListAnalyses returns the stored analyses of the user, newest first.
func ListAnalyses(c flamego.Context, store RecordStore) {
	addCORSHeaders(c)

	analyses, err := store.ListAnalyses(c.Request().Context(), c.Param("id"))
	if err != nil {
		writeStoreError(c, "list analyses", err)
		return
	}

	resp := analysesResponse{Analyses: make([]analytics.AnalysisRecord, 0, len(analyses))}
	for _, a := range analyses {
		resp.Analyses = append(resp.Analyses, a.Record())
	}

	writeJSON(c, http.StatusOK, resp)
}

// DeleteAnalysis removes a lab analysis and the owner's cached report.
func DeleteAnalysis(c flamego.Context, store RecordStore) {
	addCORSHeaders(c)

	if err := store.DeleteAnalysis(c.Request().Context(), c.Param("id")); err != nil {
		writeStoreError(c, "delete analysis", err)
		return
	}

	c.ResponseWriter().WriteHeader(http.StatusNoContent)
}
