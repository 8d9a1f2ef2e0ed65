/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package analytics

import (
	"context"
	"time"

	"github.com/humaidq/healthlens/logging"
)

// ReportBiomarkerLimit is how many latest readings a report carries.
const ReportBiomarkerLimit = 10

var logger = logging.Logger(logging.SourceAnalytics)

// ProfileStore looks up the profile of a user. A missing profile is
// reported as (nil, nil).
type ProfileStore interface {
	GetProfile(ctx context.Context, userID string) (*Profile, error)
}

// Aggregator turns analysis records into a HealthReport. It holds no
// per-request state and may be shared between goroutines.
type Aggregator struct {
	profiles   ProfileStore
	classifier *Classifier
	now        func() time.Time
}

// Option configures an Aggregator.
type Option func(*Aggregator)

// WithClassifier replaces the default keyword table.
func WithClassifier(c *Classifier) Option {
	return func(a *Aggregator) {
		if c != nil {
			a.classifier = c
		}
	}
}

// WithClock sets the time source used for ages, freshness and lastUpdated.
func WithClock(now func() time.Time) Option {
	return func(a *Aggregator) {
		if now != nil {
			a.now = now
		}
	}
}

// NewAggregator creates an aggregator. profiles may be nil, in which case
// every profile-dependent rule is skipped.
func NewAggregator(profiles ProfileStore, opts ...Option) *Aggregator {
	a := &Aggregator{
		profiles:   profiles,
		classifier: DefaultClassifier(),
		now:        time.Now,
	}

	for _, opt := range opts {
		opt(a)
	}

	return a
}

// loadProfile fetches the profile. Lookup failures degrade to no profile.
func (a *Aggregator) loadProfile(ctx context.Context, userID string) *Profile {
	if a.profiles == nil || userID == "" {
		return nil
	}

	profile, err := a.profiles.GetProfile(ctx, userID)
	if err != nil {
		logger.Warn("Profile lookup failed, skipping profile-dependent rules", "user_id", userID, "error", err)
		return nil
	}

	if profile == nil {
		logger.Debug("No profile found", "user_id", userID)
	}

	return profile
}

// Now reads the aggregator clock.
func (a *Aggregator) Now() time.Time {
	return a.now()
}

// Generate builds the report for the user's analyses.
func (a *Aggregator) Generate(ctx context.Context, analyses []AnalysisRecord, userID string) *HealthReport {
	profile := a.loadProfile(ctx, userID)
	return a.Build(analyses, profile)
}

// Build computes the report from analyses and an already loaded profile.
func (a *Aggregator) Build(analyses []AnalysisRecord, profile *Profile) *HealthReport {
	now := a.now()
	biomarkers := ExtractBiomarkers(analyses)
	in := NewRuleInput(biomarkers, profile, now, a.classifier)

	report := &HealthReport{
		Overview: Overview{
			HealthScore:    HealthScore(biomarkers, in.age, a.classifier),
			RiskLevel:      DetermineRiskLevel(biomarkers),
			LastUpdated:    now,
			TotalAnalyses:  len(analyses),
			TrendsAnalysis: in.Trends,
		},
		Biomarkers:               LatestBiomarkers(biomarkers, ReportBiomarkerLimit),
		HealthImprovementActions: HealthImprovementActions(in),
		RecommendedTests:         RecommendedTests(in),
		SpecialistConsultations:  SpecialistConsultations(in),
		KeyHealthIndicators:      KeyHealthIndicators(in),
		LifestyleRecommendations: LifestyleRecommendations(in),
		RiskFactors:              RiskFactors(in),
		Supplements:              Supplements(in),
	}

	logger.Debug("Generated health report",
		"analyses", len(analyses),
		"biomarkers", len(biomarkers),
		"health_score", report.Overview.HealthScore,
		"risk_level", report.Overview.RiskLevel,
	)

	return report
}
