/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package analytics

// lifestyleSection is a lifestyle category with fixed items followed by
// items that depend on detected issues.
type lifestyleSection struct {
	category string
	base     []string
	extra    []Rule[string]
}

func tip(text string, when func(RuleInput) bool) Rule[string] {
	return Rule[string]{
		Name: text,
		When: when,
		Emit: func(RuleInput) string { return text },
	}
}

var lifestyleSections = []lifestyleSection{
	{
		category: "Питание",
		base: []string{
			"Овощи и зелень в каждом основном приеме пищи",
			"Достаточно белка: 1-1,2 г на кг массы тела",
			"Не менее 1,5-2 литров воды в день",
		},
		extra: []Rule[string]{
			tip("Средиземноморская диета: оливковое масло, рыба, орехи, бобовые", issueIn(CategoryCholesterol)),
			tip("Ограничить сахар, выпечку и сладкие напитки", issueIn(CategoryGlucose)),
			tip("Продукты, богатые железом: говядина, печень, гречка, чечевица", issueIn(ironCategories...)),
			tip("Жирная рыба, яйца и грибы как источники витамина D", issueIn(CategoryVitaminD)),
			tip("Ограничить соль до 5 г в день", issueIn(CategoryPressure)),
		},
	},
	{
		category: "Физическая активность",
		base: []string{
			"Не менее 7-10 тысяч шагов в день",
			"Разминка каждый час при сидячей работе",
		},
		extra: []Rule[string]{
			tip("Аэробные тренировки умеренной интенсивности 150 минут в неделю", issueIn(cardioCategories...)),
			tip("Прогулка 10-15 минут после еды для снижения пиков глюкозы", issueIn(CategoryGlucose)),
			tip("Упражнения на равновесие и силу 2-3 раза в неделю", func(in RuleInput) bool { return in.AgeOver(50) }),
		},
	},
	{
		category: "Сон и восстановление",
		base: []string{
			"Сон 7-9 часов в сутки",
			"Ложиться и вставать в одно и то же время",
			"Отказаться от экранов за час до сна",
		},
		extra: []Rule[string]{
			tip("Дневная усталость может быть связана с дефицитом железа, обсудите с врачом", issueIn(ironCategories...)),
			tip("Недосып повышает инсулинорезистентность, приоритет сну", issueIn(CategoryGlucose)),
			tip("Проверить функцию щитовидной железы при нарушениях сна и энергии", issueIn(CategoryThyroid)),
		},
	},
	{
		category: "Профилактика",
		base: []string{
			"Отказ от курения и ограничение алкоголя",
			"Техники управления стрессом: дыхательные практики, прогулки",
		},
		extra: []Rule[string]{
			tip("Ежегодный профилактический осмотр и анализы", func(in RuleInput) bool { return in.AgeOver(40) }),
			tip("Регулярное измерение артериального давления дома", issueIn(cardioCategories...)),
			tip("Плановые визиты к гинекологу и маммологу по возрасту", func(in RuleInput) bool { return in.IsGender(GenderFemale) }),
			tip("Пересдать отклоняющиеся показатели через 2-3 месяца", func(in RuleInput) bool { return in.AnyIssue() }),
		},
	},
}

var lifestyleRules = buildLifestyleRules(lifestyleSections)

func buildLifestyleRules(sections []lifestyleSection) []Rule[LifestyleGroup] {
	rules := make([]Rule[LifestyleGroup], 0, len(sections))

	for _, s := range sections {
		rules = append(rules, Rule[LifestyleGroup]{
			Name: s.category,
			When: always,
			Emit: func(in RuleInput) LifestyleGroup {
				items := make([]string, 0, len(s.base)+len(s.extra))
				items = append(items, s.base...)
				items = append(items, Evaluate(s.extra, in)...)

				return LifestyleGroup{Category: s.category, Recommendations: items}
			},
		})
	}

	return rules
}

// LifestyleRecommendations evaluates the lifestyle sections.
func LifestyleRecommendations(in RuleInput) []LifestyleGroup {
	return Evaluate(lifestyleRules, in)
}
