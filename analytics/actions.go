/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package analytics

var actionRules = []Rule[Action]{
	{
		Name: "cholesterol-management",
		When: issueIn(CategoryCholesterol),
		Emit: func(in RuleInput) Action {
			return Action{
				ID:          "cholesterol-management",
				Title:       "Контроль уровня холестерина",
				Description: "Показатели липидного профиля вне оптимального диапазона. Коррекция питания и активности снижает сердечно-сосудистый риск.",
				Priority:    in.IssuePriority(CategoryCholesterol),
				Category:    "cardiovascular",
				Actions: []string{
					"Ограничить насыщенные жиры и трансжиры",
					"Добавить в рацион клетчатку: овсянка, бобовые, овощи",
					"Употреблять жирную рыбу 2-3 раза в неделю",
					"Аэробная нагрузка не менее 150 минут в неделю",
				},
				Timeframe: "3 месяца",
			}
		},
	},
	{
		Name: "glucose-control",
		When: issueIn(CategoryGlucose),
		Emit: func(in RuleInput) Action {
			return Action{
				ID:          "glucose-control",
				Title:       "Нормализация уровня глюкозы",
				Description: "Углеводный обмен требует внимания. Стабильный уровень глюкозы снижает риск развития диабета 2 типа.",
				Priority:    in.IssuePriority(CategoryGlucose),
				Category:    "metabolic",
				Actions: []string{
					"Сократить быстрые углеводы и сладкие напитки",
					"Отдавать предпочтение продуктам с низким гликемическим индексом",
					"Прогулка 10-15 минут после основных приемов пищи",
					"Контролировать массу тела и окружность талии",
				},
				Timeframe: "2-3 месяца",
			}
		},
	},
	{
		Name: "vitamin-balance",
		When: issueIn(CategoryVitamin, CategoryVitaminD, CategoryVitaminB12, CategoryFolate),
		Emit: func(in RuleInput) Action {
			return Action{
				ID:          "vitamin-balance",
				Title:       "Восполнение дефицита витаминов",
				Description: "Выявлены отклонения уровня витаминов. Дефициты влияют на энергию, иммунитет и состояние костей.",
				Priority:    in.IssuePriority(CategoryVitamin, CategoryVitaminD, CategoryVitaminB12, CategoryFolate),
				Category:    "nutrition",
				Actions: []string{
					"Разнообразить рацион: овощи, зелень, яйца, рыба",
					"Проводить на солнце 15-20 минут в день в светлое время года",
					"Принимать добавки по согласованию с врачом",
					"Повторить анализ через 2-3 месяца приема",
				},
				Timeframe: "2-3 месяца",
			}
		},
	},
	{
		Name: "iron-levels",
		When: issueIn(ironCategories...),
		Emit: func(in RuleInput) Action {
			return Action{
				ID:          "iron-levels",
				Title:       "Нормализация уровня железа",
				Description: "Показатели гемоглобина или запасов железа отклоняются от нормы. Возможна скрытая анемия.",
				Priority:    in.IssuePriority(ironCategories...),
				Category:    "blood",
				Actions: []string{
					"Включить в рацион красное мясо, печень, бобовые",
					"Сочетать железосодержащие продукты с витамином C",
					"Не запивать еду чаем и кофе",
					"Проверить ферритин и сывороточное железо повторно",
				},
				Timeframe: "3 месяца",
			}
		},
	},
	{
		Name: "age-prevention",
		When: func(in RuleInput) bool { return in.AgeOver(40) },
		Emit: func(RuleInput) Action {
			return Action{
				ID:          "age-prevention",
				Title:       "Профилактика возрастных изменений",
				Description: "После 40 лет растет риск сердечно-сосудистых и метаболических заболеваний. Регулярный контроль помогает выявить их рано.",
				Priority:    PriorityMedium,
				Category:    "prevention",
				Actions: []string{
					"Ежегодный чекап с биохимическим анализом крови",
					"Силовые тренировки 2 раза в неделю для сохранения мышечной массы",
					"Контроль артериального давления дома",
				},
				Timeframe: "постоянно",
			}
		},
	},
	{
		Name: "female-health",
		When: func(in RuleInput) bool { return in.IsGender(GenderFemale) && in.AgeOver(35) },
		Emit: func(RuleInput) Action {
			return Action{
				ID:          "female-health",
				Title:       "Поддержка женского здоровья",
				Description: "После 35 лет важно следить за гормональным фоном, плотностью костей и запасами железа.",
				Priority:    PriorityMedium,
				Category:    "womens_health",
				Actions: []string{
					"Ежегодный визит к гинекологу",
					"Достаточное потребление кальция и витамина D",
					"Контроль ферритина и гормонов щитовидной железы",
				},
				Timeframe: "постоянно",
			}
		},
	},
	{
		Name: "trend-reversal",
		When: func(in RuleInput) bool { return in.Trends.Worsening > in.Trends.Improving },
		Emit: func(in RuleInput) Action {
			return Action{
				ID:          "trend-reversal",
				Title:       "Остановить негативную динамику",
				Description: "Ухудшающихся показателей больше, чем улучшающихся. Стоит пересмотреть образ жизни и обсудить результаты с врачом.",
				Priority:    PriorityHigh,
				Category:    "general",
				Actions: []string{
					"Сравнить последние анализы с предыдущими вместе с врачом",
					"Выявить изменения в питании, сне и нагрузках за последние месяцы",
					"Пересдать ухудшившиеся показатели через 4-6 недель",
				},
				Timeframe: "1-2 месяца",
			}
		},
	},
}

// HealthImprovementActions evaluates the improvement action rules.
func HealthImprovementActions(in RuleInput) []Action {
	return Evaluate(actionRules, in)
}
