// SPDX-FileCopyrightText: 2025 Humaid Alqasimi
// SPDX-License-Identifier: Apache-2.0

package db

import (
	"context"
	"testing"
	"time"

	"github.com/humaidq/healthlens/analytics"
)

func testContext() context.Context {
	return context.Background()
}

func stringPtr(value string) *string {
	return &value
}

func datePtr(t *testing.T, value string) *time.Time {
	t.Helper()

	d, err := time.Parse("2006-01-02", value)
	if err != nil {
		t.Fatalf("invalid test date %q: %v", value, err)
	}

	return &d
}

func mustCreateProfile(t *testing.T, name, dob, gender string) string {
	t.Helper()

	input := CreateProfileInput{FullName: stringPtr(name)}
	if dob != "" {
		input.DateOfBirth = datePtr(t, dob)
	}
	if gender != "" {
		input.Gender = stringPtr(gender)
	}

	id, err := CreateProfile(testContext(), input)
	if err != nil {
		t.Fatalf("failed to create profile: %v", err)
	}

	return id
}

func mustCreateAnalysis(t *testing.T, userID string, created time.Time, markers ...analytics.BiomarkerInput) string {
	t.Helper()

	id, err := CreateAnalysis(testContext(), CreateAnalysisInput{
		UserID:       userID,
		AnalysisType: "blood",
		Results:      &analytics.AnalysisResults{Markers: markers},
		CreatedAt:    &created,
	})
	if err != nil {
		t.Fatalf("failed to create lab analysis: %v", err)
	}

	return id
}
