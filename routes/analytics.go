/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package routes

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/flamego/flamego"

	"github.com/humaidq/healthlens/analytics"
	"github.com/humaidq/healthlens/db"
	"github.com/humaidq/healthlens/metrics"
)

// ReportStore loads stored analyses and caches generated reports.
type ReportStore interface {
	// ListAnalysisRecords returns the user's analyses and the source version
	// they were read at.
	ListAnalysisRecords(ctx context.Context, userID string) ([]analytics.AnalysisRecord, time.Time, error)
	// GetReportSnapshot returns the report cached for the version, or nil.
	GetReportSnapshot(ctx context.Context, userID string, version time.Time) (*analytics.HealthReport, error)
	SaveReportSnapshot(ctx context.Context, userID string, version time.Time, report *analytics.HealthReport) error
}

// DBReportStore is the PostgreSQL backed ReportStore.
type DBReportStore struct{}

// ListAnalysisRecords implements ReportStore.
func (DBReportStore) ListAnalysisRecords(ctx context.Context, userID string) ([]analytics.AnalysisRecord, time.Time, error) {
	return db.ListAnalysisRecords(ctx, userID)
}

// GetReportSnapshot implements ReportStore.
func (DBReportStore) GetReportSnapshot(ctx context.Context, userID string, version time.Time) (*analytics.HealthReport, error) {
	snapshot, err := db.GetReportSnapshot(ctx, userID, version)
	if err != nil || snapshot == nil {
		return nil, err
	}

	return snapshot.Report, nil
}

// SaveReportSnapshot implements ReportStore.
func (DBReportStore) SaveReportSnapshot(ctx context.Context, userID string, version time.Time, report *analytics.HealthReport) error {
	return db.SaveReportSnapshot(ctx, userID, version, report)
}

// recoverReport converts a panic during report generation into a 500.
func recoverReport(c flamego.Context) {
	if r := recover(); r != nil {
		logger.Error("Panic while generating health analytics",
			"panic", r,
			"path", c.Request().URL.Path,
		)
		writeJSONError(c, http.StatusInternalServerError, errInternal)
	}
}

// HealthAnalytics generates a report from the analyses in the request body.
func HealthAnalytics(c flamego.Context, agg *analytics.Aggregator) {
	addCORSHeaders(c)

	if handlePreflight(c) {
		return
	}

	defer recoverReport(c)

	var req analytics.Request
	if err := json.NewDecoder(c.Request().Body().ReadCloser()).Decode(&req); err != nil {
		logger.Debug("Rejected health analytics request", "error", err)
		writeJSONError(c, http.StatusBadRequest, errMalformedRequest)

		return
	}

	report := agg.Generate(c.Request().Context(), req.Analyses, req.UserID)
	metrics.RecordReport(report)

	writeJSON(c, http.StatusOK, analytics.Response{HealthData: report})
}

// sameDay reports whether a and b fall on the same UTC date.
func sameDay(a, b time.Time) bool {
	ay, am, ad := a.UTC().Date()
	by, bm, bd := b.UTC().Date()

	return ay == by && am == bm && ad == bd
}

// UserHealthAnalytics serves the report over the analyses stored for a user.
// Reports are cached per source version, the latest analysis or profile
// update. A cached report is only served on the day it was computed, since
// ages and freshness windows move with the date.
func UserHealthAnalytics(c flamego.Context, agg *analytics.Aggregator, store ReportStore) {
	addCORSHeaders(c)

	if handlePreflight(c) {
		return
	}

	defer recoverReport(c)

	ctx := c.Request().Context()
	userID := c.Param("id")

	records, version, err := store.ListAnalysisRecords(ctx, userID)
	if err != nil {
		if !errors.Is(err, db.ErrInvalidUserID) {
			logger.Error("Failed to load stored analyses", "user_id", userID, "error", err)
			writeJSONError(c, http.StatusServiceUnavailable, errDatabaseUnavailable)

			return
		}

		records = nil
	}

	cacheable := len(records) > 0

	if cacheable {
		cached, err := store.GetReportSnapshot(ctx, userID, version)
		if err != nil {
			logger.Warn("Failed to read report snapshot", "user_id", userID, "error", err)
		}

		if cached != nil && !sameDay(cached.Overview.LastUpdated, agg.Now()) {
			cached = nil
		}

		if cached != nil {
			metrics.RecordCacheResult(metrics.CacheHit)
			writeJSON(c, http.StatusOK, analytics.Response{HealthData: cached})

			return
		}

		metrics.RecordCacheResult(metrics.CacheMiss)
	}

	report := agg.Generate(ctx, records, userID)
	metrics.RecordReport(report)

	if cacheable {
		if err := store.SaveReportSnapshot(ctx, userID, version, report); err != nil {
			logger.Warn("Failed to save report snapshot", "user_id", userID, "error", err)
		}
	}

	writeJSON(c, http.StatusOK, analytics.Response{HealthData: report})
}
