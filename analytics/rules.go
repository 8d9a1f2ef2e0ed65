/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package analytics

import "time"

// RuleInput is the shared, read-only input of every recommendation rule.
type RuleInput struct {
	Biomarkers []BiomarkerReading
	Profile    *Profile
	Trends     TrendsAnalysis
	Now        time.Time

	classifier *Classifier
	age        *int
}

// NewRuleInput prepares the rule input for a biomarker set and profile.
// A nil classifier selects the default keyword table.
func NewRuleInput(biomarkers []BiomarkerReading, profile *Profile, now time.Time, classifier *Classifier) RuleInput {
	if classifier == nil {
		classifier = DefaultClassifier()
	}

	return RuleInput{
		Biomarkers: biomarkers,
		Profile:    profile,
		Trends:     AnalyzeTrends(biomarkers),
		Now:        now,
		classifier: classifier,
		age:        profile.Age(now),
	}
}

// AgeOver reports whether the profile age is known and above years.
func (in RuleInput) AgeOver(years int) bool {
	return in.age != nil && *in.age > years
}

// IsGender reports whether the profile has the given gender.
func (in RuleInput) IsGender(g Gender) bool {
	return in.Profile != nil && in.Profile.Gender != nil && *in.Profile.Gender == g
}

// matching returns the markers belonging to any of the categories.
func (in RuleInput) matching(categories ...Category) []BiomarkerReading {
	var out []BiomarkerReading

	for _, b := range in.Biomarkers {
		if in.classifier.Is(b.Name, categories...) {
			out = append(out, b)
		}
	}

	return out
}

// HasIssue reports an attention or risk marker in any of the categories.
func (in RuleInput) HasIssue(categories ...Category) bool {
	for _, b := range in.matching(categories...) {
		if b.Status.NeedsAttention() {
			return true
		}
	}

	return false
}

// HasRisk reports a risk marker in any of the categories.
func (in RuleInput) HasRisk(categories ...Category) bool {
	for _, b := range in.matching(categories...) {
		if b.Status == StatusRisk {
			return true
		}
	}

	return false
}

// IssuePriority is high when a matching marker is at risk, else medium.
func (in RuleInput) IssuePriority(categories ...Category) Priority {
	if in.HasRisk(categories...) {
		return PriorityHigh
	}

	return PriorityMedium
}

// AnyIssue reports whether any marker needs attention.
func (in RuleInput) AnyIssue() bool {
	for _, b := range in.Biomarkers {
		if b.Status.NeedsAttention() {
			return true
		}
	}

	return false
}

// CountStatus counts markers with the status.
func (in RuleInput) CountStatus(s Status) int {
	n := 0

	for _, b := range in.Biomarkers {
		if b.Status == s {
			n++
		}
	}

	return n
}

// IssueNames returns the names of attention or risk markers in the categories.
func (in RuleInput) IssueNames(categories ...Category) []string {
	var names []string

	for _, b := range in.matching(categories...) {
		if b.Status.NeedsAttention() {
			names = append(names, b.Name)
		}
	}

	return names
}

// Rule pairs a predicate with the record it emits.
type Rule[T any] struct {
	Name string
	When func(in RuleInput) bool
	Emit func(in RuleInput) T
}

// Evaluate runs rules in order and collects the records of those that fire.
// The result is never nil.
func Evaluate[T any](rules []Rule[T], in RuleInput) []T {
	out := make([]T, 0, len(rules))

	for _, r := range rules {
		if r.When == nil || r.When(in) {
			out = append(out, r.Emit(in))
		}
	}

	return out
}

// always is a predicate that always fires.
func always(RuleInput) bool { return true }

// issueIn builds a predicate firing on an issue in any of the categories.
func issueIn(categories ...Category) func(RuleInput) bool {
	return func(in RuleInput) bool {
		return in.HasIssue(categories...)
	}
}
