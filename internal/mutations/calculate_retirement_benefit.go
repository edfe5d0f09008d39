package mutations

import (
	"time"

	"pension-engine/internal/dates"
	"pension-engine/internal/messages"
	"pension-engine/internal/model"
)

const (
	accrualRate = 0.02

	minRetirementAge      = 65
	minYearsForRetirement = 40.0
)

type calcRetirementProps struct {
	RetirementDate string `json:"retirement_date" validate:"required,date"`
}

// CalculateRetirementBenefit computes the attainable pension of every policy
// and retires the dossier.
//
//	years_i   = max(0, days(start_i, retirement) / 365.25)
//	avg       = sum(salary_i * ptf_i * years_i) / sum(years_i)
//	annual    = avg * sum(years_i) * 0.02
//	pension_i = annual * years_i / sum(years_i)
func CalculateRetirementBenefit(ctx *Context) (model.Situation, bool) {
	dossier := ctx.Situation.Dossier
	if dossier == nil {
		return halt(ctx, messages.DossierNotFound)
	}
	if len(dossier.Policies) == 0 {
		return halt(ctx, messages.NoPolicies)
	}

	var props calcRetirementProps
	if !decodeProps(ctx, &props) {
		return ctx.Situation, true
	}
	retirement, _ := dates.Parse(props.RetirementDate)

	years := make([]float64, len(dossier.Policies))
	var totalYears, weightedSum float64
	for i, p := range dossier.Policies {
		start, _ := dates.Parse(p.EmploymentStartDate)
		if retirement.Before(start) {
			ctx.Log.AddWarningf(messages.RetirementBeforeEmployment,
				"Policy %s has retirement date before employment start date", p.PolicyID)
		}
		years[i] = dates.YearsOfService(start, retirement)
		totalYears += years[i]
		weightedSum += p.Salary * p.PartTimeFactor * years[i]
	}

	if !eligible(dossier, retirement, totalYears) {
		return halt(ctx, messages.NotEligible)
	}

	var weightedAvg float64
	if totalYears > 0 {
		weightedAvg = weightedSum / totalYears
	}
	annualPension := weightedAvg * totalYears * accrualRate

	updated := make([]model.Policy, len(dossier.Policies))
	for i, p := range dossier.Policies {
		var pension float64
		if totalYears > 0 {
			pension = annualPension * (years[i] / totalYears)
		}
		updated[i] = p.WithAttainablePension(pension)
	}

	retired := dossier.WithPolicies(updated).WithRetirement(props.RetirementDate)
	return ctx.Situation.WithDossier(retired), false
}

// eligible reports whether the participant is at least 65 on the retirement
// date or has at least 40 years of service in total.
func eligible(dossier *model.Dossier, retirement time.Time, totalYears float64) bool {
	if totalYears >= minYearsForRetirement {
		return true
	}
	participant, ok := dossier.Participant()
	if !ok {
		return false
	}
	birth, ok := dates.Parse(participant.BirthDate)
	if !ok {
		return false
	}
	return dates.AgeAt(birth, retirement) >= minRetirementAge
}
