package mutations

import (
	"time"

	"pension-engine/internal/dates"
	"pension-engine/internal/messages"
	"pension-engine/internal/model"
)

type applyIndexationProps struct {
	Percentage      *float64 `json:"percentage" validate:"required"`
	SchemeID        string   `json:"scheme_id"`
	EffectiveBefore string   `json:"effective_before" validate:"omitempty,date"`
}

type indexationFilter struct {
	schemeID        string
	effectiveBefore time.Time
	hasBefore       bool
}

func (f indexationFilter) matches(p model.Policy) bool {
	if f.schemeID != "" && p.SchemeID != f.schemeID {
		return false
	}
	if f.hasBefore {
		start, ok := dates.Parse(p.EmploymentStartDate)
		if !ok || !start.Before(f.effectiveBefore) {
			return false
		}
	}
	return true
}

// ApplyIndexation scales the salary of every matching policy by
// (1 + percentage). A negative percentage is a de-indexation; salaries that
// would drop below zero are clamped to zero.
func ApplyIndexation(ctx *Context) (model.Situation, bool) {
	dossier := ctx.Situation.Dossier
	if dossier == nil {
		return halt(ctx, messages.DossierNotFound)
	}
	if len(dossier.Policies) == 0 {
		return halt(ctx, messages.NoPolicies)
	}

	var props applyIndexationProps
	if !decodeProps(ctx, &props) {
		return ctx.Situation, true
	}

	filter := indexationFilter{schemeID: props.SchemeID}
	if props.EffectiveBefore != "" {
		filter.effectiveBefore, filter.hasBefore = dates.Parse(props.EffectiveBefore)
	}

	factor := 1 + *props.Percentage
	updated := make([]model.Policy, len(dossier.Policies))
	matched := 0
	clamped := false

	for i, p := range dossier.Policies {
		if !filter.matches(p) {
			updated[i] = p
			continue
		}
		matched++
		salary := p.Salary * factor
		if salary < 0 {
			salary = 0
			clamped = true
		}
		updated[i] = p.WithSalary(salary)
	}

	if matched == 0 {
		ctx.Log.AddWarning(messages.NoMatchingPolicies)
	}
	if clamped {
		ctx.Log.AddWarning(messages.NegativeSalaryClamped)
	}

	return ctx.Situation.WithDossier(dossier.WithPolicies(updated)), false
}
