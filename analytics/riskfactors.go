/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package analytics

import (
	"fmt"
	"sort"
)

func worseningCount(in RuleInput) int {
	return in.Trends.Worsening
}

var riskFactorRules = []Rule[RiskFactor]{
	{
		Name: "multiple-risk-markers",
		When: func(in RuleInput) bool { return in.CountStatus(StatusRisk) > 2 },
		Emit: func(in RuleInput) RiskFactor {
			return RiskFactor{
				ID:          "multiple-risk-markers",
				Factor:      "Множественные отклонения показателей",
				Severity:    PriorityHigh,
				Description: fmt.Sprintf("Показателей в зоне риска: %d. Требуется комплексное обследование.", in.CountStatus(StatusRisk)),
			}
		},
	},
	{
		Name: "risk-markers",
		When: func(in RuleInput) bool {
			n := in.CountStatus(StatusRisk)
			return n > 0 && n <= 2
		},
		Emit: func(in RuleInput) RiskFactor {
			return RiskFactor{
				ID:          "risk-markers",
				Factor:      "Показатели в зоне риска",
				Severity:    PriorityMedium,
				Description: fmt.Sprintf("Показателей в зоне риска: %d. Рекомендуется консультация врача.", in.CountStatus(StatusRisk)),
			}
		},
	},
	{
		Name: "negative-dynamics",
		When: func(in RuleInput) bool { return worseningCount(in) > 2 },
		Emit: func(in RuleInput) RiskFactor {
			return RiskFactor{
				ID:          "negative-dynamics",
				Factor:      "Выраженная негативная динамика",
				Severity:    PriorityHigh,
				Description: fmt.Sprintf("Ухудшились показатели: %d с прошлого анализа.", worseningCount(in)),
			}
		},
	},
	{
		Name: "worsening-markers",
		When: func(in RuleInput) bool {
			n := worseningCount(in)
			return n > 0 && n <= 2
		},
		Emit: func(in RuleInput) RiskFactor {
			return RiskFactor{
				ID:          "worsening-markers",
				Factor:      "Негативная динамика показателей",
				Severity:    PriorityMedium,
				Description: fmt.Sprintf("Ухудшились показатели: %d с прошлого анализа.", worseningCount(in)),
			}
		},
	},
	{
		Name: "advanced-age",
		When: func(in RuleInput) bool { return in.AgeOver(70) },
		Emit: func(RuleInput) RiskFactor {
			return RiskFactor{
				ID:          "advanced-age",
				Factor:      "Возраст старше 70 лет",
				Severity:    PriorityHigh,
				Description: "Повышенный риск хронических заболеваний, необходим регулярный контроль.",
			}
		},
	},
	{
		Name: "age",
		When: func(in RuleInput) bool { return in.AgeOver(60) && !in.AgeOver(70) },
		Emit: func(RuleInput) RiskFactor {
			return RiskFactor{
				ID:          "age",
				Factor:      "Возраст старше 60 лет",
				Severity:    PriorityMedium,
				Description: "Возрастной фактор риска сердечно-сосудистых и метаболических заболеваний.",
			}
		},
	},
	{
		Name: "anemia",
		When: func(in RuleInput) bool { return in.IsGender(GenderFemale) && in.HasIssue(ironCategories...) },
		Emit: func(in RuleInput) RiskFactor {
			return RiskFactor{
				ID:          "anemia",
				Factor:      "Риск железодефицитной анемии",
				Severity:    in.IssuePriority(ironCategories...),
				Description: "У женщин дефицит железа встречается чаще, показатели гемоглобина или ферритина отклоняются от нормы.",
			}
		},
	},
	{
		Name: "cardiovascular",
		When: func(in RuleInput) bool { return in.AgeOver(50) && in.HasIssue(cardioCategories...) },
		Emit: func(RuleInput) RiskFactor {
			return RiskFactor{
				ID:          "cardiovascular",
				Factor:      "Сердечно-сосудистый риск",
				Severity:    PriorityHigh,
				Description: "Сочетание возраста старше 50 лет и отклонений липидов или давления.",
			}
		},
	},
}

// RiskFactors evaluates the risk factor rules and orders them by severity.
func RiskFactors(in RuleInput) []RiskFactor {
	factors := Evaluate(riskFactorRules, in)

	sort.SliceStable(factors, func(i, j int) bool {
		return factors[i].Severity == PriorityHigh && factors[j].Severity != PriorityHigh
	})

	return factors
}
