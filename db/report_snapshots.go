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

	"github.com/jackc/pgx/v5"

	"github.com/humaidq/healthlens/analytics"
)

// GetReportSnapshot returns the cached report of a user if it was computed
// from the given source version. A miss is reported as (nil, nil).
func GetReportSnapshot(ctx context.Context, userID string, version time.Time) (*ReportSnapshot, error) {
	if pool == nil {
		return nil, ErrDatabaseConnectionNotInitialized
	}

	id, err := parseUserID(userID)
	if err != nil {
		return nil, err
	}

	var s ReportSnapshot

	err = pool.QueryRow(ctx, `
		SELECT user_id, source_version, health_score, risk_level, report, created_at
		FROM health_report_snapshots
		WHERE user_id = $1 AND source_version = $2
	`, id, version).Scan(&s.UserID, &s.SourceVersion, &s.HealthScore, &s.RiskLevel, &s.Report, &s.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}

		return nil, fmt.Errorf("failed to get report snapshot: %w", err)
	}

	return &s, nil
}

// SaveReportSnapshot stores the report computed from the given source
// version, replacing any earlier snapshot of the user.
func SaveReportSnapshot(ctx context.Context, userID string, version time.Time, report *analytics.HealthReport) error {
	if pool == nil {
		return ErrDatabaseConnectionNotInitialized
	}

	id, err := parseUserID(userID)
	if err != nil {
		return err
	}

	_, err = pool.Exec(ctx, `
		INSERT INTO health_report_snapshots (user_id, source_version, health_score, risk_level, report)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id) DO UPDATE
		SET source_version = EXCLUDED.source_version,
		    health_score = EXCLUDED.health_score,
		    risk_level = EXCLUDED.risk_level,
		    report = EXCLUDED.report,
		    created_at = now()
	`, id, version, report.Overview.HealthScore, string(report.Overview.RiskLevel), report)
	if err != nil {
		return fmt.Errorf("failed to save report snapshot: %w", err)
	}

	return nil
}

// DeleteReportSnapshot drops the cached report of a user.
func DeleteReportSnapshot(ctx context.Context, userID string) error {
	if pool == nil {
		return ErrDatabaseConnectionNotInitialized
	}

	id, err := parseUserID(userID)
	if err != nil {
		return err
	}

	if _, err := pool.Exec(ctx, `DELETE FROM health_report_snapshots WHERE user_id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete report snapshot: %w", err)
	}

	return nil
}
