/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package analytics

import (
	_ "embed"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/cases"
	"gopkg.in/yaml.v3"
)

// Category is a physiological grouping of markers.
type Category string

// Categories referenced by the rule tables.
const (
	CategoryCholesterol Category = "cholesterol"
	CategoryGlucose     Category = "glucose"
	CategoryPressure    Category = "pressure"
	CategoryHemoglobin  Category = "hemoglobin"
	CategoryIron        Category = "iron"
	CategoryFerritin    Category = "ferritin"
	CategoryVitamin     Category = "vitamin"
	CategoryVitaminD    Category = "vitamin_d"
	CategoryVitaminB12  Category = "vitamin_b12"
	CategoryFolate      Category = "folate"
	CategoryThyroid     Category = "thyroid"
	CategoryBloodCount  Category = "blood_count"
	CategoryLiver       Category = "liver"
	CategoryKidney      Category = "kidney"
)

// Category groups used by several generators.
var (
	cardioCategories     = []Category{CategoryCholesterol, CategoryPressure}
	endocrineCategories  = []Category{CategoryGlucose, CategoryThyroid}
	hematologyCategories = []Category{CategoryBloodCount, CategoryHemoglobin, CategoryIron, CategoryFerritin}
	ironCategories       = []Category{CategoryIron, CategoryHemoglobin, CategoryFerritin}
)

//go:embed keywords.yaml
var defaultKeywords []byte

type keywordFile struct {
	CriticalKeywords []string `yaml:"critical_keywords"`
	Categories       []struct {
		Name     string   `yaml:"name"`
		Keywords []string `yaml:"keywords"`
	} `yaml:"categories"`
}

type keywordEntry struct {
	keyword  string
	category Category
}

// Classifier maps free-text marker names onto categories. It is read-only
// after construction and safe for concurrent use.
type Classifier struct {
	entries  []keywordEntry
	critical []string
}

// DefaultClassifier returns the classifier built from the embedded table.
func DefaultClassifier() *Classifier {
	c, err := parseClassifier(defaultKeywords)
	if err != nil {
		panic(fmt.Sprintf("embedded keyword table is invalid: %v", err))
	}

	return c
}

// LoadClassifier reads a keyword table in the embedded YAML format.
func LoadClassifier(r io.Reader) (*Classifier, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read keyword table: %w", err)
	}

	return parseClassifier(data)
}

func parseClassifier(data []byte) (*Classifier, error) {
	var file keywordFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse keyword table: %w", err)
	}

	if len(file.Categories) == 0 {
		return nil, ErrEmptyKeywordTable
	}

	c := &Classifier{critical: foldKeywords(file.CriticalKeywords)}

	for _, cat := range file.Categories {
		name := Category(strings.TrimSpace(cat.Name))
		if name == "" {
			return nil, ErrUnnamedCategory
		}

		for _, kw := range foldKeywords(cat.Keywords) {
			c.entries = append(c.entries, keywordEntry{keyword: kw, category: name})
		}
	}

	return c, nil
}

// foldKeywords folds and trims keywords, dropping blank ones.
func foldKeywords(keywords []string) []string {
	out := make([]string, 0, len(keywords))

	for _, kw := range keywords {
		if kw = fold(strings.TrimSpace(kw)); kw != "" {
			out = append(out, kw)
		}
	}

	return out
}

// fold returns the case-folded form of s. A Caser is not safe for concurrent
// use, so one is built per call.
func fold(s string) string {
	return cases.Fold().String(s)
}

// Classify returns the set of categories the name belongs to.
func (c *Classifier) Classify(name string) map[Category]bool {
	folded := fold(name)
	out := make(map[Category]bool)

	for _, e := range c.entries {
		if strings.Contains(folded, e.keyword) {
			out[e.category] = true
		}
	}

	return out
}

// Is reports whether name belongs to any of the categories.
func (c *Classifier) Is(name string, categories ...Category) bool {
	set := c.Classify(name)
	for _, cat := range categories {
		if set[cat] {
			return true
		}
	}

	return false
}

// IsCritical reports whether the name contains a critical keyword. Category
// membership plays no part: an LDL marker is a cholesterol marker but
// carries the regular weight.
func (c *Classifier) IsCritical(name string) bool {
	folded := fold(name)

	for _, kw := range c.critical {
		if strings.Contains(folded, kw) {
			return true
		}
	}

	return false
}
