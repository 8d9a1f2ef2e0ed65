// SPDX-FileCopyrightText: 2025 Humaid Alqasimi
// SPDX-License-Identifier: Apache-2.0

package analytics

import (
	"errors"
	"strings"
	"testing"
)

func TestDefaultClassifier(t *testing.T) {
	t.Parallel()

	c := DefaultClassifier()

	tests := []struct {
		name string
		want []Category
	}{
		{"Общий холестерин бодибилдер", []Category{CategoryCholesterol}},
		{"ХОЛЕСТЕРИН ЛПНП", []Category{CategoryCholesterol}},
		{"LDL Cholesterol", []Category{CategoryCholesterol}},
		{"Глюкоза", []Category{CategoryGlucose}},
		{"Витамин D (25-OH)", []Category{CategoryVitamin, CategoryVitaminD}},
		{"Витамин B12", []Category{CategoryVitamin, CategoryVitaminB12}},
		{"Гемоглобин", []Category{CategoryHemoglobin}},
		{"Ферритин", []Category{CategoryFerritin}},
		{"ТТГ", []Category{CategoryThyroid}},
		{"Креатинин", []Category{CategoryKidney}},
	}

	for _, tt := range tests {
		got := c.Classify(tt.name)
		for _, cat := range tt.want {
			if !got[cat] {
				t.Errorf("Classify(%q) missing %q, got %v", tt.name, cat, got)
			}
		}
	}

	if got := c.Classify("Something unrelated"); len(got) != 0 {
		t.Fatalf("unrelated name classified as %v", got)
	}
}

func TestClassifierCritical(t *testing.T) {
	t.Parallel()

	c := DefaultClassifier()

	for _, name := range []string{"Холестерин", "Глюкоза натощак", "Артериальное давление", "Гемоглобин"} {
		if !c.IsCritical(name) {
			t.Errorf("%q should be critical", name)
		}
	}

	for _, name := range []string{"Ферритин", "Витамин D", "Unmapped", "ЛПНП", "Триглицериды", "Инсулин", "HbA1c", "LDL"} {
		if c.IsCritical(name) {
			t.Errorf("%q should not be critical", name)
		}
	}
}

func TestLoadClassifier(t *testing.T) {
	t.Parallel()

	c, err := LoadClassifier(strings.NewReader(`
critical_keywords: [" CHOL ", ""]
categories:
  - name: cholesterol
    keywords: [Chol, " "]
  - name: custom
    keywords: [widget]
`))
	if err != nil {
		t.Fatalf("LoadClassifier failed: %v", err)
	}

	if !c.Is("Total CHOLESTEROL", CategoryCholesterol) {
		t.Fatal("custom keyword should match case-insensitively")
	}
	if !c.IsCritical("chol") {
		t.Fatal("critical keywords not loaded")
	}
	if c.IsCritical("blue widget") {
		t.Fatal("blank critical keyword must not match everything")
	}
	if !c.Is("blue widget", Category("custom")) {
		t.Fatal("custom category not loaded")
	}
	if c.Is("Глюкоза", CategoryGlucose) {
		t.Fatal("custom table should replace the default keywords")
	}
}

func TestLoadClassifierErrors(t *testing.T) {
	t.Parallel()

	if _, err := LoadClassifier(strings.NewReader("categories: []")); !errors.Is(err, ErrEmptyKeywordTable) {
		t.Fatalf("expected ErrEmptyKeywordTable, got %v", err)
	}

	if _, err := LoadClassifier(strings.NewReader("categories:\n  - keywords: [x]\n")); !errors.Is(err, ErrUnnamedCategory) {
		t.Fatalf("expected ErrUnnamedCategory, got %v", err)
	}

	if _, err := LoadClassifier(strings.NewReader("categories: [")); err == nil {
		t.Fatal("expected parse error for malformed YAML")
	}
}
