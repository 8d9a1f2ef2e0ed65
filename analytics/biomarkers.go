/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package analytics

import (
	"math"
	"sort"
)

// trendThresholdPercent is the relative change above which a marker moves.
const trendThresholdPercent = 5.0

// ExtractBiomarkers flattens the markers of all analyses, keeps the most
// recent reading per marker name and annotates it with a trend. Names are
// returned in the order they are first seen.
func ExtractBiomarkers(analyses []AnalysisRecord) []BiomarkerReading {
	groups := make(map[string][]BiomarkerReading)
	order := make([]string, 0)

	for _, analysis := range analyses {
		if analysis.Results == nil {
			continue
		}

		for _, marker := range analysis.Results.Markers {
			reading := BiomarkerReading{
				Name:           marker.Name,
				Value:          marker.Value.Float(),
				Unit:           marker.Unit,
				Status:         ParseStatus(marker.Status),
				ReferenceRange: marker.ReferenceRange,
				Date:           analysis.CreatedAt.Time,
				AnalysisType:   analysis.AnalysisType,
			}

			if _, seen := groups[marker.Name]; !seen {
				order = append(order, marker.Name)
			}

			groups[marker.Name] = append(groups[marker.Name], reading)
		}
	}

	latest := make([]BiomarkerReading, 0, len(order))

	for _, name := range order {
		readings := groups[name]
		sort.SliceStable(readings, func(i, j int) bool {
			return readings[i].Date.After(readings[j].Date)
		})

		current := readings[0]
		current.Trend = TrendStable

		if len(readings) > 1 {
			current.Trend = computeTrend(readings[0].Value, readings[1].Value)
		}

		latest = append(latest, current)
	}

	return latest
}

// computeTrend classifies the percent change from previous to latest.
// A zero previous value has no defined relative change and counts as stable.
func computeTrend(latest, previous float64) Trend {
	if previous == 0 {
		return TrendStable
	}

	change := (latest - previous) / previous * 100
	if math.IsNaN(change) || math.IsInf(change, 0) {
		return TrendStable
	}

	switch {
	case change > trendThresholdPercent:
		return TrendUp
	case change < -trendThresholdPercent:
		return TrendDown
	default:
		return TrendStable
	}
}

// LatestBiomarkers returns up to limit readings ordered by date, newest first.
// Readings sharing a date keep their extraction order.
func LatestBiomarkers(biomarkers []BiomarkerReading, limit int) []BiomarkerReading {
	out := make([]BiomarkerReading, len(biomarkers))
	copy(out, biomarkers)

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.After(out[j].Date)
	})

	if limit >= 0 && len(out) > limit {
		out = out[:limit]
	}

	return out
}

// isImproving reports movement towards a better band.
func isImproving(b BiomarkerReading) bool {
	return (b.Trend == TrendUp && b.Status.InGoodBand()) ||
		(b.Trend == TrendDown && b.Status.NeedsAttention())
}

// isWorsening reports movement towards a worse band.
func isWorsening(b BiomarkerReading) bool {
	return (b.Trend == TrendDown && b.Status.InGoodBand()) ||
		(b.Trend == TrendUp && b.Status.NeedsAttention())
}

// AnalyzeTrends counts markers per trend bucket. Each marker lands in
// exactly one bucket, improving taking precedence.
func AnalyzeTrends(biomarkers []BiomarkerReading) TrendsAnalysis {
	var t TrendsAnalysis

	for _, b := range biomarkers {
		switch {
		case isImproving(b):
			t.Improving++
		case isWorsening(b):
			t.Worsening++
		default:
			t.Stable++
		}
	}

	return t
}
