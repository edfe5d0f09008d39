package main

import (
	"bytes"
	"strings"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pension-engine/internal/model"
)

func TestCalculateCommand(t *testing.T) {
	in := strings.NewReader(`{"tenant_id":"cli","calculation_instructions":{"mutations":[
		{"mutation_id":"m1","mutation_definition_name":"create_dossier","mutation_type":"DOSSIER_CREATION",
		 "actual_at":"2020-01-01","mutation_properties":{"dossier_id":"d1","person_id":"p1","name":"Jane","birth_date":"1960-01-01"}}
	]}}`)
	var out bytes.Buffer

	cmd := newRootCmd()
	cmd.SetIn(in)
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"calculate"})
	require.NoError(t, cmd.Execute())

	var resp model.CalculationResponse
	require.NoError(t, json.Unmarshal(out.Bytes(), &resp))
	assert.Equal(t, model.OutcomeSuccess, resp.CalculationMetadata.CalculationOutcome)
	assert.Equal(t, "cli", resp.CalculationMetadata.TenantID)
	assert.Nil(t, resp.CalculationResult.Mutations[0].ForwardPatch)
}

func TestCalculateRejectsEmptyMutations(t *testing.T) {
	var out bytes.Buffer
	err := calculate(strings.NewReader(`{"calculation_instructions":{"mutations":[]}}`), &out, false)
	assert.ErrorContains(t, err, "invalid request")
}

func TestCalculateRejectsMalformedJSON(t *testing.T) {
	var out bytes.Buffer
	err := calculate(strings.NewReader(`{`), &out, false)
	assert.ErrorContains(t, err, "decode request")
}
