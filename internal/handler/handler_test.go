package handler

import (
	"testing"
	"time"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"pension-engine/internal/engine"
	"pension-engine/internal/model"
	"pension-engine/internal/mutations"
)

func newHandler() *Handler {
	e := engine.New(mutations.NewRegistry(),
		engine.WithClock(func() time.Time { return time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC) }),
	)
	return New(e, zap.NewNop())
}

func do(t *testing.T, h *Handler, method, path, body string) *fasthttp.Response {
	t.Helper()
	var req fasthttp.Request
	req.Header.SetMethod(method)
	req.SetRequestURI(path)
	if body != "" {
		req.Header.SetContentType("application/json")
		req.SetBodyString(body)
	}

	var ctx fasthttp.RequestCtx
	ctx.Init(&req, nil, nil)
	h.Handle(&ctx)

	var resp fasthttp.Response
	ctx.Response.CopyTo(&resp)
	return &resp
}

const validRequest = `{
	"tenant_id": "tenant-1",
	"calculation_instructions": {
		"mutations": [
			{
				"mutation_id": "a1111111-1111-1111-1111-111111111111",
				"mutation_definition_name": "create_dossier",
				"mutation_type": "DOSSIER_CREATION",
				"actual_at": "2020-01-01",
				"mutation_properties": {
					"dossier_id": "d2222222-2222-2222-2222-222222222222",
					"person_id": "p3333333-3333-3333-3333-333333333333",
					"name": "Jane Doe",
					"birth_date": "1960-06-15"
				}
			},
			{
				"mutation_id": "b4444444-4444-4444-4444-444444444444",
				"mutation_definition_name": "add_policy",
				"mutation_type": "DOSSIER",
				"dossier_id": "d2222222-2222-2222-2222-222222222222",
				"actual_at": "2020-01-01",
				"mutation_properties": {
					"scheme_id": "SCHEME-A",
					"employment_start_date": "2000-01-01",
					"salary": 50000,
					"part_time_factor": 1.0
				}
			}
		]
	}
}`

func TestCalculation(t *testing.T) {
	resp := do(t, newHandler(), fasthttp.MethodPost, "/calculation-requests", validRequest)

	require.Equal(t, fasthttp.StatusOK, resp.StatusCode())
	assert.Equal(t, "application/json", string(resp.Header.ContentType()))

	var out model.CalculationResponse
	require.NoError(t, json.Unmarshal(resp.Body(), &out))
	assert.Equal(t, model.OutcomeSuccess, out.CalculationMetadata.CalculationOutcome)
	assert.Equal(t, "tenant-1", out.CalculationMetadata.TenantID)
	assert.NotEmpty(t, out.CalculationMetadata.CalculationID)
	require.Len(t, out.CalculationResult.Mutations, 2)
	assert.Equal(t, "d2222222-2222-2222-2222-222222222222", out.CalculationResult.Mutations[1].Mutation.DossierID)
	assert.Equal(t, "d2222222-2222-2222-2222-222222222222-1",
		out.CalculationResult.EndSituation.Situation.Dossier.Policies[0].PolicyID)
}

func TestCalculationEchoesProperties(t *testing.T) {
	resp := do(t, newHandler(), fasthttp.MethodPost, "/calculation-requests", validRequest)
	require.Equal(t, fasthttp.StatusOK, resp.StatusCode())

	var raw struct {
		CalculationResult struct {
			Mutations []struct {
				Mutation struct {
					MutationProperties map[string]any `json:"mutation_properties"`
				} `json:"mutation"`
			} `json:"mutations"`
		} `json:"calculation_result"`
	}
	require.NoError(t, json.Unmarshal(resp.Body(), &raw))
	assert.Equal(t, "SCHEME-A", raw.CalculationResult.Mutations[1].Mutation.MutationProperties["scheme_id"])
}

func TestCalculationRejections(t *testing.T) {
	tests := []struct {
		name   string
		method string
		body   string
		status int
		msg    string
	}{
		{"empty body", fasthttp.MethodPost, "", fasthttp.StatusBadRequest, "Request body is required"},
		{"malformed json", fasthttp.MethodPost, "{", fasthttp.StatusBadRequest, "Invalid request body"},
		{"missing instructions", fasthttp.MethodPost, `{"tenant_id":"t"}`, fasthttp.StatusBadRequest, "Invalid request structure"},
		{"no mutations", fasthttp.MethodPost, `{"calculation_instructions":{"mutations":[]}}`, fasthttp.StatusBadRequest, "Mutations list cannot be empty"},
		{"wrong method", fasthttp.MethodGet, "", fasthttp.StatusMethodNotAllowed, "Method not allowed"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := do(t, newHandler(), tt.method, "/calculation-requests", tt.body)

			assert.Equal(t, tt.status, resp.StatusCode())
			var e model.ErrorResponse
			require.NoError(t, json.Unmarshal(resp.Body(), &e))
			assert.Equal(t, tt.status, e.Status)
			assert.Contains(t, e.Message, tt.msg)
		})
	}
}

func TestFailureOutcomeIsStillOK(t *testing.T) {
	body := `{"tenant_id":"t","calculation_instructions":{"mutations":[
		{"mutation_id":"m1","mutation_definition_name":"add_policy","mutation_type":"DOSSIER","actual_at":"2020-01-01",
		 "mutation_properties":{"scheme_id":"A","employment_start_date":"2020-01-01","salary":1,"part_time_factor":1}}
	]}}`

	resp := do(t, newHandler(), fasthttp.MethodPost, "/calculation-requests", body)

	require.Equal(t, fasthttp.StatusOK, resp.StatusCode())
	var out model.CalculationResponse
	require.NoError(t, json.Unmarshal(resp.Body(), &out))
	assert.Equal(t, model.OutcomeFailure, out.CalculationMetadata.CalculationOutcome)
	require.Len(t, out.CalculationResult.Messages, 1)
	assert.Equal(t, "DOSSIER_NOT_FOUND", out.CalculationResult.Messages[0].Code)
}

func TestHealthAndNotFound(t *testing.T) {
	h := newHandler()

	resp := do(t, h, fasthttp.MethodGet, "/health", "")
	assert.Equal(t, fasthttp.StatusOK, resp.StatusCode())
	assert.JSONEq(t, `{"status":"UP"}`, string(resp.Body()))

	resp = do(t, h, fasthttp.MethodGet, "/nope", "")
	assert.Equal(t, fasthttp.StatusNotFound, resp.StatusCode())
}

func TestMetrics(t *testing.T) {
	h := newHandler()
	do(t, h, fasthttp.MethodPost, "/calculation-requests", validRequest)

	resp := do(t, h, fasthttp.MethodGet, "/metrics", "")

	assert.Equal(t, fasthttp.StatusOK, resp.StatusCode())
	assert.Contains(t, string(resp.Body()), "pension_calculations_total")
}
