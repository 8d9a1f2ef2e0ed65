/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package analytics

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

// Status is the qualitative band assigned to a biomarker upstream.
type Status string

// Status values as produced by the lab-analysis pipeline.
const (
	StatusOptimal   Status = "optimal"
	StatusGood      Status = "good"
	StatusAttention Status = "attention"
	StatusRisk      Status = "risk"
	StatusUnknown   Status = "unknown"
)

// ParseStatus normalises a raw status string. Anything unrecognised is unknown.
func ParseStatus(raw string) Status {
	switch s := Status(strings.ToLower(strings.TrimSpace(raw))); s {
	case StatusOptimal, StatusGood, StatusAttention, StatusRisk:
		return s
	default:
		return StatusUnknown
	}
}

// InGoodBand reports whether the status is optimal or good.
func (s Status) InGoodBand() bool {
	return s == StatusOptimal || s == StatusGood
}

// NeedsAttention reports whether the status is attention or risk.
func (s Status) NeedsAttention() bool {
	return s == StatusAttention || s == StatusRisk
}

// Trend is the direction between the two most recent readings of a marker.
type Trend string

// Trend values.
const (
	TrendUp     Trend = "up"
	TrendDown   Trend = "down"
	TrendStable Trend = "stable"
)

// RiskLevel is the overall classification of a biomarker picture.
type RiskLevel string

// RiskLevel values.
const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

// Priority of a recommendation. Risk factors reuse it as severity.
type Priority string

// Priority values.
const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
)

// Gender as stored on a profile.
type Gender string

// Gender values the rules know about.
const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

// ========== Input ==========

// Timestamp accepts the timestamp layouts emitted by PostgreSQL and browsers.
// Unparseable input decodes to the zero time.
type Timestamp struct {
	time.Time
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999Z07",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02",
}

// ParseTimestamp parses s using the known layouts.
func ParseTimestamp(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}

	return time.Time{}, false
}

// UnmarshalJSON implements json.Unmarshaler.
func (t *Timestamp) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Time = time.Time{}
		return nil //nolint:nilerr // Malformed timestamps are tolerated.
	}

	t.Time, _ = ParseTimestamp(raw)

	return nil
}

// MarshalJSON implements json.Marshaler.
func (t Timestamp) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.Time.UTC().Format(time.RFC3339Nano))
}

// MarkerValue holds the raw textual measurement. JSON numbers are accepted too.
type MarkerValue string

// UnmarshalJSON implements json.Unmarshaler.
func (v *MarkerValue) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*v = ""
		return nil
	}

	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			*v = ""
			return nil //nolint:nilerr // Malformed values parse to zero later.
		}

		*v = MarkerValue(s)

		return nil
	}

	*v = MarkerValue(data)

	return nil
}

// Float parses the leading numeric part of the value. A decimal comma is
// accepted. Values without a numeric prefix yield 0.
func (v MarkerValue) Float() float64 {
	s := strings.TrimSpace(strings.ReplaceAll(string(v), ",", "."))

	end := 0
	seenDigit, seenDot, seenExp := false, false, false

scan:
	for end < len(s) {
		c := s[end]

		switch {
		case c >= '0' && c <= '9':
			seenDigit = true
		case (c == '+' || c == '-') && (end == 0 || s[end-1] == 'e' || s[end-1] == 'E'):
		case c == '.' && !seenDot && !seenExp:
			seenDot = true
		case (c == 'e' || c == 'E') && seenDigit && !seenExp:
			seenExp = true
		default:
			break scan
		}

		end++
	}

	for end > 0 {
		f, err := strconv.ParseFloat(s[:end], 64)
		if err == nil {
			return f
		}
		end--
	}

	return 0
}

// BiomarkerInput is one marker inside an analysis result.
type BiomarkerInput struct {
	Name           string      `json:"name"`
	Value          MarkerValue `json:"value"`
	Unit           string      `json:"unit,omitempty"`
	Status         string      `json:"status,omitempty"`
	ReferenceRange string      `json:"reference_range,omitempty"`
}

// UnmarshalJSON implements json.Unmarshaler. Fields of the wrong type are
// left empty, and a marker that is not an object decodes to the zero value.
func (b *BiomarkerInput) UnmarshalJSON(data []byte) error {
	*b = BiomarkerInput{}

	fields := jsonObject(data)
	if fields == nil {
		return nil
	}

	b.Name = jsonString(fields["name"])
	b.Unit = jsonString(fields["unit"])
	b.Status = jsonString(fields["status"])
	b.ReferenceRange = jsonString(fields["reference_range"])

	if raw, ok := fields["value"]; ok {
		_ = b.Value.UnmarshalJSON(raw)
	}

	return nil
}

// AnalysisResults is the structured payload of an analysis.
type AnalysisResults struct {
	Markers []BiomarkerInput `json:"markers,omitempty"`
}

// UnmarshalJSON implements json.Unmarshaler. A markers field that is not an
// array yields no markers.
func (r *AnalysisResults) UnmarshalJSON(data []byte) error {
	*r = AnalysisResults{}

	fields := jsonObject(data)
	if fields == nil {
		return nil
	}

	for _, raw := range jsonArray(fields["markers"]) {
		var m BiomarkerInput
		_ = m.UnmarshalJSON(raw)
		r.Markers = append(r.Markers, m)
	}

	return nil
}

// AnalysisRecord is a single lab analysis belonging to a user.
type AnalysisRecord struct {
	ID           string           `json:"id"`
	CreatedAt    Timestamp        `json:"created_at"`
	AnalysisType string           `json:"analysis_type"`
	Results      *AnalysisResults `json:"results,omitempty"`
}

// UnmarshalJSON implements json.Unmarshaler. A record that is not an object
// still counts as an analysis, just one without data. Results that are not
// an object are dropped.
func (a *AnalysisRecord) UnmarshalJSON(data []byte) error {
	*a = AnalysisRecord{}

	fields := jsonObject(data)
	if fields == nil {
		return nil
	}

	a.ID = jsonString(fields["id"])
	a.AnalysisType = jsonString(fields["analysis_type"])

	if raw, ok := fields["created_at"]; ok {
		_ = a.CreatedAt.UnmarshalJSON(raw)
	}

	if raw, ok := fields["results"]; ok && jsonObject(raw) != nil {
		a.Results = &AnalysisResults{}
		_ = a.Results.UnmarshalJSON(raw)
	}

	return nil
}

// Request is the body accepted at the invocation boundary.
type Request struct {
	Analyses []AnalysisRecord `json:"analyses"`
	UserID   string           `json:"userId"`
}

// UnmarshalJSON implements json.Unmarshaler. Only syntactically invalid JSON
// is an error, which the decoder reports before this runs. Everything else
// degrades to missing data.
func (r *Request) UnmarshalJSON(data []byte) error {
	*r = Request{}

	fields := jsonObject(data)
	if fields == nil {
		return nil
	}

	r.UserID = jsonString(fields["userId"])

	for _, raw := range jsonArray(fields["analyses"]) {
		var a AnalysisRecord
		_ = a.UnmarshalJSON(raw)
		r.Analyses = append(r.Analyses, a)
	}

	return nil
}

// jsonObject returns the members of a JSON object, or nil for any other value.
func jsonObject(data []byte) map[string]json.RawMessage {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil
	}

	return fields
}

// jsonArray returns the elements of a JSON array, or nil for any other value.
func jsonArray(data []byte) []json.RawMessage {
	if len(data) == 0 {
		return nil
	}

	var items []json.RawMessage
	if err := json.Unmarshal(data, &items); err != nil {
		return nil
	}

	return items
}

// jsonString returns a JSON string value, or "" for any other value.
func jsonString(data []byte) string {
	if len(data) == 0 {
		return ""
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return ""
	}

	return s
}

// Profile is the subset of a user profile the rules read.
type Profile struct {
	ID          string
	DateOfBirth *time.Time
	Gender      *Gender
}

// Age returns the age in full years at the given date, or nil without a
// date of birth.
func (p *Profile) Age(at time.Time) *int {
	if p == nil || p.DateOfBirth == nil {
		return nil
	}

	dob := *p.DateOfBirth
	years := at.Year() - dob.Year()
	// Adjust if birthday hasn't occurred yet this year
	if at.Month() < dob.Month() || (at.Month() == dob.Month() && at.Day() < dob.Day()) {
		years--
	}

	return &years
}

// ParseGender maps free text to a known gender.
func ParseGender(raw string) (Gender, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "male", "m", "мужской", "м":
		return GenderMale, true
	case "female", "f", "женский", "ж":
		return GenderFemale, true
	default:
		return "", false
	}
}

// ========== Output ==========

// BiomarkerReading is the latest reading of one marker with its trend.
type BiomarkerReading struct {
	Name           string    `json:"name"`
	Value          float64   `json:"value"`
	Unit           string    `json:"unit"`
	Status         Status    `json:"status"`
	ReferenceRange string    `json:"referenceRange"`
	Date           time.Time `json:"date"`
	AnalysisType   string    `json:"analysisType"`
	Trend          Trend     `json:"trend"`
}

// TrendsAnalysis counts markers per trend bucket.
type TrendsAnalysis struct {
	Improving int `json:"improving"`
	Worsening int `json:"worsening"`
	Stable    int `json:"stable"`
}

// Overview is the headline section of a report.
type Overview struct {
	HealthScore    int            `json:"healthScore"`
	RiskLevel      RiskLevel      `json:"riskLevel"`
	LastUpdated    time.Time      `json:"lastUpdated"`
	TotalAnalyses  int            `json:"totalAnalyses"`
	TrendsAnalysis TrendsAnalysis `json:"trendsAnalysis"`
}

// Action is a health improvement action.
type Action struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Priority    Priority `json:"priority"`
	Category    string   `json:"category"`
	Actions     []string `json:"actions"`
	Timeframe   string   `json:"timeframe"`
}

// RecommendedTest is a lab test or screening suggestion.
type RecommendedTest struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Reason    string   `json:"reason"`
	Priority  Priority `json:"priority"`
	Frequency string   `json:"frequency"`
	Markers   []string `json:"markers"`
}

// SpecialistConsultation is a referral suggestion.
type SpecialistConsultation struct {
	ID         string   `json:"id"`
	Specialist string   `json:"specialist"`
	Reason     string   `json:"reason"`
	Priority   Priority `json:"priority"`
	Timeframe  string   `json:"timeframe"`
}

// Indicator is one reference entry inside an indicator group.
type Indicator struct {
	Name         string `json:"name"`
	OptimalRange string `json:"optimalRange"`
	Description  string `json:"description"`
}

// IndicatorGroup is a category of key health indicators.
type IndicatorGroup struct {
	Category   string      `json:"category"`
	Indicators []Indicator `json:"indicators"`
}

// LifestyleGroup is one category of lifestyle advice.
type LifestyleGroup struct {
	Category        string   `json:"category"`
	Recommendations []string `json:"recommendations"`
}

// RiskFactor is a ranked risk entry.
type RiskFactor struct {
	ID          string   `json:"id"`
	Factor      string   `json:"factor"`
	Severity    Priority `json:"severity"`
	Description string   `json:"description"`
}

// Supplement is a supplement suggestion.
type Supplement struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Dosage   string   `json:"dosage"`
	Reason   string   `json:"reason"`
	Duration string   `json:"duration"`
	Priority Priority `json:"priority"`
}

// HealthReport is the aggregate output of one invocation.
type HealthReport struct {
	Overview                 Overview                 `json:"overview"`
	Biomarkers               []BiomarkerReading       `json:"biomarkers"`
	HealthImprovementActions []Action                 `json:"healthImprovementActions"`
	RecommendedTests         []RecommendedTest        `json:"recommendedTests"`
	SpecialistConsultations  []SpecialistConsultation `json:"specialistConsultations"`
	KeyHealthIndicators      []IndicatorGroup         `json:"keyHealthIndicators"`
	LifestyleRecommendations []LifestyleGroup         `json:"lifestyleRecommendations"`
	RiskFactors              []RiskFactor             `json:"riskFactors"`
	Supplements              []Supplement             `json:"supplements"`
}

// Response is the success envelope at the invocation boundary.
type Response struct {
	HealthData *HealthReport `json:"healthData"`
}
