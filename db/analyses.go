/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/humaidq/healthlens/analytics"
)

// ErrAnalysisNotFound is returned when a lab analysis does not exist.
var ErrAnalysisNotFound = errors.New("lab analysis not found")

// foreignKeyViolation is the PostgreSQL SQLSTATE for a missing parent row.
const foreignKeyViolation = "23503"

// CreateAnalysis stores a lab analysis for an existing profile.
func CreateAnalysis(ctx context.Context, input CreateAnalysisInput) (string, error) {
	if pool == nil {
		return "", ErrDatabaseConnectionNotInitialized
	}

	userID, err := parseUserID(input.UserID)
	if err != nil {
		return "", err
	}

	id := uuid.New()

	_, err = pool.Exec(ctx, `
		INSERT INTO lab_analyses (id, user_id, analysis_type, results, created_at)
		VALUES ($1, $2, $3, $4, COALESCE($5, now()))
	`, id, userID, input.AnalysisType, input.Results, input.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolation {
			return "", ErrProfileNotFound
		}

		return "", fmt.Errorf("failed to create lab analysis: %w", err)
	}

	return id.String(), nil
}

// ListAnalyses returns the lab analyses of a user, newest first.
func ListAnalyses(ctx context.Context, userID string) ([]LabAnalysis, error) {
	if pool == nil {
		return nil, ErrDatabaseConnectionNotInitialized
	}

	id, err := parseUserID(userID)
	if err != nil {
		return nil, err
	}

	rows, err := pool.Query(ctx, `
		SELECT id, user_id, analysis_type, results, created_at, updated_at
		FROM lab_analyses
		WHERE user_id = $1
		ORDER BY created_at DESC, id
	`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to list lab analyses: %w", err)
	}
	defer rows.Close()

	var analyses []LabAnalysis

	for rows.Next() {
		var a LabAnalysis
		if err := rows.Scan(&a.ID, &a.UserID, &a.AnalysisType, &a.Results, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan lab analysis: %w", err)
		}

		analyses = append(analyses, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating lab analyses: %w", err)
	}

	return analyses, nil
}

// ListAnalysisRecords returns the user's analyses as aggregator input along
// with the source version. The version is the latest updated_at among the
// analyses and the profile, so editing either invalidates cached reports.
// It is zero when the user has no analyses.
func ListAnalysisRecords(ctx context.Context, userID string) ([]analytics.AnalysisRecord, time.Time, error) {
	analyses, err := ListAnalyses(ctx, userID)
	if err != nil {
		return nil, time.Time{}, err
	}

	if len(analyses) == 0 {
		return []analytics.AnalysisRecord{}, time.Time{}, nil
	}

	records := make([]analytics.AnalysisRecord, 0, len(analyses))

	var version time.Time

	for _, a := range analyses {
		records = append(records, a.Record())

		if a.UpdatedAt.After(version) {
			version = a.UpdatedAt
		}
	}

	profileVersion, err := profileUpdatedAt(ctx, analyses[0].UserID)
	if err != nil {
		return nil, time.Time{}, err
	}

	if profileVersion.After(version) {
		version = profileVersion
	}

	return records, version, nil
}

// DeleteAnalysis removes a single lab analysis.
func DeleteAnalysis(ctx context.Context, analysisID string) error {
	if pool == nil {
		return ErrDatabaseConnectionNotInitialized
	}

	id, err := uuid.Parse(analysisID)
	if err != nil {
		return ErrAnalysisNotFound
	}

	var userID uuid.UUID

	err = pool.QueryRow(ctx, `DELETE FROM lab_analyses WHERE id = $1 RETURNING user_id`, id).Scan(&userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrAnalysisNotFound
		}

		return fmt.Errorf("failed to delete lab analysis: %w", err)
	}

	// Removing a row cannot raise max(updated_at), so drop the snapshot.
	if err := DeleteReportSnapshot(ctx, userID.String()); err != nil {
		return err
	}

	return nil
}
