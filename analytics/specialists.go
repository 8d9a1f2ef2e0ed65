/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package analytics

// consultationTimeframe maps priority to how soon to book a visit.
func consultationTimeframe(p Priority) string {
	if p == PriorityHigh {
		return "в течение 2 недель"
	}

	return "в течение 1-2 месяцев"
}

func specialist(id, name, reason string, p Priority) SpecialistConsultation {
	return SpecialistConsultation{
		ID:         id,
		Specialist: name,
		Reason:     reason,
		Priority:   p,
		Timeframe:  consultationTimeframe(p),
	}
}

// hasSpecialistMatch reports whether any organ-specific referral fires.
func hasSpecialistMatch(in RuleInput) bool {
	return in.HasIssue(cardioCategories...) ||
		in.HasIssue(endocrineCategories...) ||
		in.HasIssue(hematologyCategories...)
}

var specialistRules = []Rule[SpecialistConsultation]{
	{
		Name: "cardiologist",
		When: issueIn(cardioCategories...),
		Emit: func(in RuleInput) SpecialistConsultation {
			return specialist("cardiologist", "Кардиолог",
				"Отклонения липидного профиля или артериального давления",
				in.IssuePriority(cardioCategories...))
		},
	},
	{
		Name: "endocrinologist",
		When: issueIn(endocrineCategories...),
		Emit: func(in RuleInput) SpecialistConsultation {
			return specialist("endocrinologist", "Эндокринолог",
				"Отклонения уровня глюкозы или гормонов щитовидной железы",
				in.IssuePriority(endocrineCategories...))
		},
	},
	{
		Name: "hematologist",
		When: issueIn(hematologyCategories...),
		Emit: func(in RuleInput) SpecialistConsultation {
			return specialist("hematologist", "Гематолог",
				"Отклонения показателей общего анализа крови или обмена железа",
				in.IssuePriority(hematologyCategories...))
		},
	},
	{
		Name: "general-practitioner",
		When: func(in RuleInput) bool { return in.AnyIssue() && !hasSpecialistMatch(in) },
		Emit: func(in RuleInput) SpecialistConsultation {
			p := PriorityMedium
			if in.CountStatus(StatusRisk) > 0 {
				p = PriorityHigh
			}

			return specialist("general-practitioner", "Терапевт",
				"Есть показатели, требующие внимания, для общей оценки и маршрутизации", p)
		},
	},
	{
		Name: "preventive-medicine",
		When: func(in RuleInput) bool { return in.AgeOver(50) },
		Emit: func(RuleInput) SpecialistConsultation {
			return specialist("preventive-medicine", "Врач профилактической медицины",
				"Плановая диспансеризация и оценка возрастных рисков после 50 лет",
				PriorityMedium)
		},
	},
}

// SpecialistConsultations evaluates the referral rules.
func SpecialistConsultations(in RuleInput) []SpecialistConsultation {
	return Evaluate(specialistRules, in)
}
