/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package db

import (
	"time"

	"github.com/google/uuid"

	"github.com/humaidq/healthlens/analytics"
)

// Profile represents a row in the profiles table
type Profile struct {
	ID          uuid.UUID  `db:"id"`
	FullName    *string    `db:"full_name"`
	DateOfBirth *time.Time `db:"date_of_birth"`
	Gender      *string    `db:"gender"`
	CreatedAt   time.Time  `db:"created_at"`
	UpdatedAt   time.Time  `db:"updated_at"`
}

// Analytics converts the row into the profile the rule engine reads.
// Unrecognised genders are dropped.
func (p *Profile) Analytics() *analytics.Profile {
	if p == nil {
		return nil
	}

	out := &analytics.Profile{
		ID:          p.ID.String(),
		DateOfBirth: p.DateOfBirth,
	}

	if p.Gender != nil {
		if g, ok := analytics.ParseGender(*p.Gender); ok {
			out.Gender = &g
		}
	}

	return out
}

// CreateProfileInput holds the fields for a new profile
type CreateProfileInput struct {
	FullName    *string
	DateOfBirth *time.Time
	Gender      *string
}

// LabAnalysis represents a row in the lab_analyses table
type LabAnalysis struct {
	ID           uuid.UUID                  `db:"id"`
	UserID       uuid.UUID                  `db:"user_id"`
	AnalysisType string                     `db:"analysis_type"`
	Results      *analytics.AnalysisResults `db:"results"`
	CreatedAt    time.Time                  `db:"created_at"`
	UpdatedAt    time.Time                  `db:"updated_at"`
}

// Record converts the row into the analytics input record.
func (a LabAnalysis) Record() analytics.AnalysisRecord {
	return analytics.AnalysisRecord{
		ID:           a.ID.String(),
		CreatedAt:    analytics.Timestamp{Time: a.CreatedAt},
		AnalysisType: a.AnalysisType,
		Results:      a.Results,
	}
}

// CreateAnalysisInput holds the fields for a new lab analysis. A nil
// CreatedAt uses the database clock.
type CreateAnalysisInput struct {
	UserID       string
	AnalysisType string
	Results      *analytics.AnalysisResults
	CreatedAt    *time.Time
}

// ReportSnapshot represents a row in the health_report_snapshots table
type ReportSnapshot struct {
	UserID        uuid.UUID               `db:"user_id"`
	SourceVersion time.Time               `db:"source_version"`
	HealthScore   int                     `db:"health_score"`
	RiskLevel     analytics.RiskLevel     `db:"risk_level"`
	Report        *analytics.HealthReport `db:"report"`
	CreatedAt     time.Time               `db:"created_at"`
}
