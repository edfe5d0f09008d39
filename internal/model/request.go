package model

import json "github.com/goccy/go-json"

type MutationType string

const (
	MutationTypeDossierCreation MutationType = "DOSSIER_CREATION"
	MutationTypeDossier         MutationType = "DOSSIER"
)

type CalculationRequest struct {
	TenantID                string                   `json:"tenant_id"`
	CalculationInstructions *CalculationInstructions `json:"calculation_instructions"`
}

type CalculationInstructions struct {
	Mutations []Mutation `json:"mutations"`
}

// Mutation is echoed back verbatim in the response. Only MutationDefinitionName
// and MutationProperties are interpreted by the engine.
type Mutation struct {
	MutationID             string          `json:"mutation_id"`
	MutationDefinitionName string          `json:"mutation_definition_name"`
	MutationType           MutationType    `json:"mutation_type"`
	ActualAt               string          `json:"actual_at"`
	DossierID              string          `json:"dossier_id,omitempty"`
	MutationProperties     json.RawMessage `json:"mutation_properties"`
}

// Mutations returns the request's mutation list, or nil when the
// instructions block is missing.
func (r *CalculationRequest) Mutations() []Mutation {
	if r == nil || r.CalculationInstructions == nil {
		return nil
	}
	return r.CalculationInstructions.Mutations
}
