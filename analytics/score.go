/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package analytics

import "math"

// DefaultHealthScore is reported when there are no biomarkers.
const DefaultHealthScore = 75

var statusBaseScore = map[Status]float64{
	StatusOptimal:   100,
	StatusGood:      85,
	StatusAttention: 60,
	StatusRisk:      30,
	StatusUnknown:   70,
}

const (
	improvingBonus   = 5
	worseningPenalty = 10
	criticalWeight   = 2
	regularWeight    = 1
)

// Age penalties are cumulative.
var agePenalties = []struct {
	olderThan int
	penalty   int
}{
	{olderThan: 60, penalty: 5},
	{olderThan: 70, penalty: 10},
}

// HealthScore computes the weighted 0-100 score. age may be nil.
func HealthScore(biomarkers []BiomarkerReading, age *int, classifier *Classifier) int {
	if len(biomarkers) == 0 {
		return DefaultHealthScore
	}

	var weighted, totalWeight float64

	for _, b := range biomarkers {
		score, ok := statusBaseScore[b.Status]
		if !ok {
			score = statusBaseScore[StatusUnknown]
		}

		switch {
		case isImproving(b):
			score += improvingBonus
		case isWorsening(b):
			score -= worseningPenalty
		}

		weight := float64(regularWeight)
		if classifier.IsCritical(b.Name) {
			weight = criticalWeight
		}

		weighted += score * weight
		totalWeight += weight
	}

	result := int(math.Round(weighted / totalWeight))

	if age != nil {
		for _, p := range agePenalties {
			if *age > p.olderThan {
				result = max(0, result-p.penalty)
			}
		}
	}

	return min(100, max(0, result))
}

// DetermineRiskLevel classifies the overall picture.
func DetermineRiskLevel(biomarkers []BiomarkerReading) RiskLevel {
	var risk, attention, worsening int

	for _, b := range biomarkers {
		switch b.Status {
		case StatusRisk:
			risk++
		case StatusAttention:
			attention++
		}

		if isWorsening(b) {
			worsening++
		}
	}

	switch {
	case risk > 2 || (risk > 0 && worsening > 2):
		return RiskHigh
	case risk > 0 || attention > 2 || worsening > 1:
		return RiskMedium
	default:
		return RiskLow
	}
}
