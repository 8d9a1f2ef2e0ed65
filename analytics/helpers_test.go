// SPDX-FileCopyrightText: 2025 Humaid Alqasimi
// SPDX-License-Identifier: Apache-2.0

package analytics

import (
	"testing"
	"time"
)

var testNow = time.Date(2025, time.June, 1, 12, 0, 0, 0, time.UTC)

func reading(name string, status Status, trend Trend) BiomarkerReading {
	return BiomarkerReading{
		Name:   name,
		Value:  1,
		Status: status,
		Trend:  trend,
		Date:   testNow.AddDate(0, 0, -7),
	}
}

func testProfile(t *testing.T, dob string, gender Gender) *Profile {
	t.Helper()

	p := &Profile{ID: "00000000-0000-0000-0000-000000000001"}

	if dob != "" {
		d, err := time.Parse("2006-01-02", dob)
		if err != nil {
			t.Fatalf("invalid test date of birth %q: %v", dob, err)
		}
		p.DateOfBirth = &d
	}

	if gender != "" {
		g := gender
		p.Gender = &g
	}

	return p
}

func ruleInput(profile *Profile, readings ...BiomarkerReading) RuleInput {
	return NewRuleInput(readings, profile, testNow, nil)
}

func hasID[T any](items []T, id string, idOf func(T) string) bool {
	for _, item := range items {
		if idOf(item) == id {
			return true
		}
	}

	return false
}

func actionID(a Action) string                     { return a.ID }
func testID(r RecommendedTest) string              { return r.ID }
func specialistID(s SpecialistConsultation) string { return s.ID }
func riskFactorID(r RiskFactor) string             { return r.ID }
func supplementID(s Supplement) string             { return s.ID }
