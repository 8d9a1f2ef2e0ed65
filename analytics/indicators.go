/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package analytics

// Reference tables shown alongside the report. Values are adult targets.

var cardiovascularIndicators = IndicatorGroup{
	Category: "Сердечно-сосудистая система",
	Indicators: []Indicator{
		{Name: "Общий холестерин", OptimalRange: "< 5,2 ммоль/л", Description: "Суммарный уровень холестерина в крови"},
		{Name: "ЛПНП", OptimalRange: "< 3,0 ммоль/л", Description: "\"Плохой\" холестерин, основной фактор атеросклероза"},
		{Name: "ЛПВП", OptimalRange: "> 1,0 ммоль/л (муж.), > 1,2 ммоль/л (жен.)", Description: "\"Хороший\" холестерин, защищает сосуды"},
		{Name: "Триглицериды", OptimalRange: "< 1,7 ммоль/л", Description: "Жиры крови, растут при избытке углеводов"},
		{Name: "Артериальное давление", OptimalRange: "< 120/80 мм рт. ст.", Description: "Нагрузка на стенки сосудов"},
	},
}

var metabolicIndicators = IndicatorGroup{
	Category: "Обмен веществ",
	Indicators: []Indicator{
		{Name: "Глюкоза натощак", OptimalRange: "3,9-5,5 ммоль/л", Description: "Основной показатель углеводного обмена"},
		{Name: "Гликированный гемоглобин (HbA1c)", OptimalRange: "< 5,7 %", Description: "Средний уровень глюкозы за 3 месяца"},
		{Name: "Инсулин натощак", OptimalRange: "2-10 мкЕд/мл", Description: "Отражает чувствительность тканей к инсулину"},
		{Name: "ТТГ", OptimalRange: "0,5-2,5 мМЕ/л", Description: "Регулятор функции щитовидной железы"},
	},
}

var vitaminIndicators = IndicatorGroup{
	Category: "Витамины и микроэлементы",
	Indicators: []Indicator{
		{Name: "Витамин D (25-OH)", OptimalRange: "30-60 нг/мл", Description: "Кости, иммунитет, мышечная функция"},
		{Name: "Витамин B12", OptimalRange: "300-900 пг/мл", Description: "Кроветворение и нервная система"},
		{Name: "Фолиевая кислота", OptimalRange: "> 5,4 нг/мл", Description: "Деление клеток, кроветворение"},
		{Name: "Ферритин", OptimalRange: "30-150 нг/мл", Description: "Запасы железа в организме"},
	},
}

var femaleIndicators = IndicatorGroup{
	Category: "Женское здоровье",
	Indicators: []Indicator{
		{Name: "Гемоглобин", OptimalRange: "120-150 г/л", Description: "Снижается при обильных менструациях и дефиците железа"},
		{Name: "Ферритин", OptimalRange: "> 40 нг/мл", Description: "Ранний маркер дефицита железа у женщин"},
		{Name: "Эстрадиол", OptimalRange: "зависит от фазы цикла", Description: "Основной женский половой гормон"},
		{Name: "Пролактин", OptimalRange: "4,8-23,3 нг/мл", Description: "Влияет на цикл и фертильность"},
	},
}

var seniorIndicators = IndicatorGroup{
	Category: "Показатели после 50 лет",
	Indicators: []Indicator{
		{Name: "Креатинин / СКФ", OptimalRange: "СКФ > 90 мл/мин/1,73 м²", Description: "Функция почек снижается с возрастом"},
		{Name: "Плотность костной ткани (T-критерий)", OptimalRange: "> -1,0", Description: "Риск остеопороза и переломов"},
		{Name: "hs-CRP", OptimalRange: "< 1,0 мг/л", Description: "Маркер хронического воспаления"},
		{Name: "Мочевая кислота", OptimalRange: "< 360 мкмоль/л", Description: "Риск подагры и сердечно-сосудистых событий"},
	},
}

func staticIndicators(g IndicatorGroup) func(RuleInput) IndicatorGroup {
	return func(RuleInput) IndicatorGroup {
		indicators := make([]Indicator, len(g.Indicators))
		copy(indicators, g.Indicators)

		return IndicatorGroup{Category: g.Category, Indicators: indicators}
	}
}

var indicatorRules = []Rule[IndicatorGroup]{
	{Name: "cardiovascular", When: always, Emit: staticIndicators(cardiovascularIndicators)},
	{Name: "metabolic", When: always, Emit: staticIndicators(metabolicIndicators)},
	{Name: "vitamins", When: always, Emit: staticIndicators(vitaminIndicators)},
	{
		Name: "female",
		When: func(in RuleInput) bool { return in.IsGender(GenderFemale) },
		Emit: staticIndicators(femaleIndicators),
	},
	{
		Name: "senior",
		When: func(in RuleInput) bool { return in.AgeOver(50) },
		Emit: staticIndicators(seniorIndicators),
	},
}

// KeyHealthIndicators evaluates the indicator table rules.
func KeyHealthIndicators(in RuleInput) []IndicatorGroup {
	return Evaluate(indicatorRules, in)
}
