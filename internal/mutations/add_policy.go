package mutations

import (
	"fmt"

	"pension-engine/internal/messages"
	"pension-engine/internal/model"
)

type addPolicyProps struct {
	SchemeID            string   `json:"scheme_id" validate:"required"`
	EmploymentStartDate string   `json:"employment_start_date" validate:"required,date"`
	Salary              *float64 `json:"salary"`
	PartTimeFactor      *float64 `json:"part_time_factor"`
}

// AddPolicy appends an employment policy to the dossier. The policy id is
// "{dossier_id}-{n}" where n is the 1-based position of the new policy.
func AddPolicy(ctx *Context) (model.Situation, bool) {
	dossier := ctx.Situation.Dossier
	if dossier == nil {
		return halt(ctx, messages.DossierNotFound)
	}

	var props addPolicyProps
	if !decodeProps(ctx, &props) {
		return ctx.Situation, true
	}

	if props.Salary == nil || *props.Salary < 0 {
		return halt(ctx, messages.InvalidSalary)
	}
	if props.PartTimeFactor == nil || *props.PartTimeFactor < 0 || *props.PartTimeFactor > 1 {
		return halt(ctx, messages.InvalidPartTimeFactor)
	}

	for _, p := range dossier.Policies {
		if p.SchemeID == props.SchemeID && p.EmploymentStartDate == props.EmploymentStartDate {
			ctx.Log.AddWarningf(messages.DuplicatePolicy,
				"Policy %s already has scheme_id %s and employment_start_date %s",
				p.PolicyID, props.SchemeID, props.EmploymentStartDate)
			break
		}
	}

	policy := model.Policy{
		PolicyID:            fmt.Sprintf("%s-%d", dossier.DossierID, len(dossier.Policies)+1),
		SchemeID:            props.SchemeID,
		EmploymentStartDate: props.EmploymentStartDate,
		Salary:              *props.Salary,
		PartTimeFactor:      *props.PartTimeFactor,
	}
	return ctx.Situation.WithDossier(dossier.AddPolicy(policy)), false
}
