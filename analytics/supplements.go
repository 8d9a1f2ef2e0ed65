/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package analytics

// MaxSupplements caps the supplement list. Truncation keeps generation order.
const MaxSupplements = 8

// deficiencySupplement emits a supplement whose dosage depends on whether
// the deficient marker is at risk or only needs attention.
func deficiencySupplement(id, name, riskDose, attentionDose, reason, duration string, categories ...Category) Rule[Supplement] {
	return Rule[Supplement]{
		Name: id,
		When: issueIn(categories...),
		Emit: func(in RuleInput) Supplement {
			s := Supplement{
				ID:       id,
				Name:     name,
				Dosage:   attentionDose,
				Reason:   reason,
				Duration: duration,
				Priority: PriorityMedium,
			}

			if in.HasRisk(categories...) {
				s.Dosage = riskDose
				s.Priority = PriorityHigh
			}

			return s
		},
	}
}

func baseSupplement(s Supplement, when func(RuleInput) bool) Rule[Supplement] {
	return Rule[Supplement]{
		Name: s.ID,
		When: when,
		Emit: func(RuleInput) Supplement { return s },
	}
}

var supplementRules = []Rule[Supplement]{
	deficiencySupplement("vitamin-d", "Витамин D3",
		"4000-5000 МЕ в день", "2000 МЕ в день",
		"Низкий уровень витамина D", "2-3 месяца, затем контроль анализа",
		CategoryVitaminD),
	deficiencySupplement("iron", "Железо (бисглицинат)",
		"60 мг в день", "25-30 мг в день",
		"Отклонения гемоглобина или показателей обмена железа", "3 месяца под контролем ферритина",
		ironCategories...),
	deficiencySupplement("vitamin-b12", "Витамин B12 (метилкобаламин)",
		"1000 мкг в день", "500 мкг в день",
		"Низкий уровень витамина B12", "2-3 месяца",
		CategoryVitaminB12),
	deficiencySupplement("folate", "Фолиевая кислота (метилфолат)",
		"800 мкг в день", "400 мкг в день",
		"Низкий уровень фолатов", "2-3 месяца",
		CategoryFolate),
	baseSupplement(Supplement{
		ID:       "omega-3",
		Name:     "Омега-3 (EPA/DHA)",
		Dosage:   "1000-2000 мг в день",
		Reason:   "Поддержка сердечно-сосудистой системы и снижение воспаления",
		Duration: "постоянно",
		Priority: PriorityMedium,
	}, always),
	baseSupplement(Supplement{
		ID:       "magnesium",
		Name:     "Магний (глицинат или цитрат)",
		Dosage:   "300-400 мг вечером",
		Reason:   "Нервная система, сон, мышцы",
		Duration: "1-2 месяца курсами",
		Priority: PriorityMedium,
	}, always),
	baseSupplement(Supplement{
		ID:       "coenzyme-q10",
		Name:     "Коэнзим Q10",
		Dosage:   "100-200 мг в день",
		Reason:   "Собственный синтез снижается после 50 лет",
		Duration: "постоянно",
		Priority: PriorityMedium,
	}, func(in RuleInput) bool { return in.AgeOver(50) }),
	baseSupplement(Supplement{
		ID:       "calcium-k2",
		Name:     "Кальций с витамином K2",
		Dosage:   "500 мг кальция и 100 мкг K2 в день",
		Reason:   "Профилактика остеопороза после 50 лет",
		Duration: "постоянно, по согласованию с врачом",
		Priority: PriorityMedium,
	}, func(in RuleInput) bool { return in.AgeOver(50) }),
	baseSupplement(Supplement{
		ID:       "plant-sterols",
		Name:     "Растительные стеролы",
		Dosage:   "2 г в день",
		Reason:   "Снижение всасывания холестерина",
		Duration: "3 месяца, затем контроль липидограммы",
		Priority: PriorityMedium,
	}, issueIn(cardioCategories...)),
	baseSupplement(Supplement{
		ID:       "bergamot",
		Name:     "Полифенолы бергамота",
		Dosage:   "500-1000 мг в день",
		Reason:   "Поддержка липидного профиля",
		Duration: "3 месяца",
		Priority: PriorityMedium,
	}, issueIn(cardioCategories...)),
}

// Supplements evaluates the supplement rules and keeps the first
// MaxSupplements entries.
func Supplements(in RuleInput) []Supplement {
	out := Evaluate(supplementRules, in)
	if len(out) > MaxSupplements {
		out = out[:MaxSupplements]
	}

	return out
}
