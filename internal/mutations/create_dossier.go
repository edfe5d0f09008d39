package mutations

import (
	"strings"

	"pension-engine/internal/dates"
	"pension-engine/internal/messages"
	"pension-engine/internal/model"
)

type createDossierProps struct {
	DossierID string `json:"dossier_id" validate:"required"`
	PersonID  string `json:"person_id" validate:"required"`
	Name      string `json:"name"`
	BirthDate string `json:"birth_date"`
}

// CreateDossier opens the case: one participant, status ACTIVE, no policies.
func CreateDossier(ctx *Context) (model.Situation, bool) {
	if ctx.Situation.Dossier != nil {
		return halt(ctx, messages.DossierAlreadyExists)
	}

	var props createDossierProps
	if !decodeProps(ctx, &props) {
		return ctx.Situation, true
	}

	if strings.TrimSpace(props.Name) == "" {
		return halt(ctx, messages.InvalidName)
	}

	birth, ok := dates.Parse(props.BirthDate)
	if !ok || birth.After(ctx.Today) {
		return halt(ctx, messages.InvalidBirthDate)
	}

	participant := model.Person{
		PersonID:  props.PersonID,
		Role:      model.RoleParticipant,
		Name:      props.Name,
		BirthDate: props.BirthDate,
	}
	return ctx.Situation.WithDossier(model.NewDossier(props.DossierID, participant)), false
}
