/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package analytics

import "time"

// baselineFreshness is how recent at least one reading must be before the
// baseline panel stops being suggested.
const baselineFreshness = 90 * 24 * time.Hour

// hasRecentReading reports whether any reading is newer than the window.
func hasRecentReading(in RuleInput) bool {
	cutoff := in.Now.Add(-baselineFreshness)
	for _, b := range in.Biomarkers {
		if b.Date.After(cutoff) {
			return true
		}
	}

	return false
}

var testRules = []Rule[RecommendedTest]{
	{
		Name: "baseline-panel",
		When: func(in RuleInput) bool { return !hasRecentReading(in) },
		Emit: func(RuleInput) RecommendedTest {
			return RecommendedTest{
				ID:        "baseline-panel",
				Name:      "Общий и биохимический анализ крови",
				Reason:    "Последние анализы сданы более 90 дней назад",
				Priority:  PriorityHigh,
				Frequency: "каждые 6-12 месяцев",
				Markers:   []string{"Общий анализ крови", "Глюкоза", "Общий холестерин", "АЛТ", "АСТ", "Креатинин"},
			}
		},
	},
	{
		Name: "cardiovascular-panel",
		When: issueIn(cardioCategories...),
		Emit: func(in RuleInput) RecommendedTest {
			return RecommendedTest{
				ID:        "cardiovascular-panel",
				Name:      "Расширенная липидограмма",
				Reason:    "Отклонения показателей сердечно-сосудистой системы",
				Priority:  in.IssuePriority(cardioCategories...),
				Frequency: "через 3 месяца, затем ежегодно",
				Markers:   []string{"ЛПНП", "ЛПВП", "Триглицериды", "Аполипопротеин B", "Липопротеин (a)", "hs-CRP"},
			}
		},
	},
	{
		Name: "glucose-panel",
		When: issueIn(CategoryGlucose),
		Emit: func(in RuleInput) RecommendedTest {
			return RecommendedTest{
				ID:        "glucose-panel",
				Name:      "Оценка углеводного обмена",
				Reason:    "Отклонения уровня глюкозы",
				Priority:  in.IssuePriority(CategoryGlucose),
				Frequency: "каждые 3-6 месяцев",
				Markers:   []string{"Гликированный гемоглобин (HbA1c)", "Инсулин натощак", "Индекс HOMA-IR", "Глюкозотолерантный тест"},
			}
		},
	},
	{
		Name: "vitamin-panel",
		When: issueIn(CategoryVitamin, CategoryVitaminD, CategoryVitaminB12, CategoryFolate),
		Emit: func(in RuleInput) RecommendedTest {
			return RecommendedTest{
				ID:        "vitamin-panel",
				Name:      "Панель витаминов и микроэлементов",
				Reason:    "Выявлены отклонения уровня витаминов",
				Priority:  in.IssuePriority(CategoryVitamin, CategoryVitaminD, CategoryVitaminB12, CategoryFolate),
				Frequency: "через 2-3 месяца приема добавок",
				Markers:   []string{"Витамин D (25-OH)", "Витамин B12", "Фолиевая кислота", "Ферритин", "Магний", "Цинк"},
			}
		},
	},
	{
		Name: "cancer-screening",
		When: func(in RuleInput) bool { return in.AgeOver(40) },
		Emit: func(RuleInput) RecommendedTest {
			return RecommendedTest{
				ID:        "cancer-screening",
				Name:      "Онкологический скрининг",
				Reason:    "Рекомендуется после 40 лет",
				Priority:  PriorityMedium,
				Frequency: "ежегодно",
				Markers:   []string{"Анализ кала на скрытую кровь", "Колоноскопия (по показаниям)", "Низкодозовая КТ легких для курильщиков"},
			}
		},
	},
	{
		Name: "cervical-screening",
		When: func(in RuleInput) bool { return in.IsGender(GenderFemale) && in.AgeOver(21) },
		Emit: func(RuleInput) RecommendedTest {
			return RecommendedTest{
				ID:        "cervical-screening",
				Name:      "Цитологический скрининг шейки матки",
				Reason:    "Плановый скрининг для женщин старше 21 года",
				Priority:  PriorityMedium,
				Frequency: "каждые 3 года",
				Markers:   []string{"ПАП-тест", "ВПЧ-тест"},
			}
		},
	},
	{
		Name: "mammography",
		When: func(in RuleInput) bool { return in.IsGender(GenderFemale) && in.AgeOver(40) },
		Emit: func(RuleInput) RecommendedTest {
			return RecommendedTest{
				ID:        "mammography",
				Name:      "Маммография",
				Reason:    "Скрининг рака молочной железы после 40 лет",
				Priority:  PriorityMedium,
				Frequency: "каждые 1-2 года",
				Markers:   []string{"Маммография"},
			}
		},
	},
	{
		Name: "psa",
		When: func(in RuleInput) bool { return in.IsGender(GenderMale) && in.AgeOver(45) },
		Emit: func(RuleInput) RecommendedTest {
			return RecommendedTest{
				ID:        "psa",
				Name:      "ПСА (простатспецифический антиген)",
				Reason:    "Скрининг заболеваний предстательной железы после 45 лет",
				Priority:  PriorityMedium,
				Frequency: "ежегодно",
				Markers:   []string{"ПСА общий", "ПСА свободный"},
			}
		},
	},
}

// RecommendedTests evaluates the test and screening rules.
func RecommendedTests(in RuleInput) []RecommendedTest {
	return Evaluate(testRules, in)
}
