package mutations

import (
	"time"

	"pension-engine/internal/messages"
	"pension-engine/internal/model"
)

// Mutation definition names understood by the engine.
const (
	CreateDossierName              = "create_dossier"
	AddPolicyName                  = "add_policy"
	ApplyIndexationName            = "apply_indexation"
	CalculateRetirementBenefitName = "calculate_retirement_benefit"
)

// Context is everything a processor may look at while handling one mutation.
type Context struct {
	Situation model.Situation
	Mutation  model.Mutation
	Log       *messages.Log
	// Index is the mutation's position in the run.
	Index int
	// Today is the calendar date used for "not in the future" checks.
	Today time.Time
}

// Processor applies one kind of mutation.
//
// A processor validates its preconditions first and, on the first CRITICAL
// finding, returns the unchanged situation with halted set. Otherwise it
// returns the new situation; non-fatal findings are logged as warnings.
type Processor interface {
	Process(ctx *Context) (next model.Situation, halted bool)
}

// ProcessorFunc adapts a plain function to Processor.
type ProcessorFunc func(ctx *Context) (model.Situation, bool)

func (f ProcessorFunc) Process(ctx *Context) (model.Situation, bool) {
	return f(ctx)
}

func halt(ctx *Context, code messages.Code) (model.Situation, bool) {
	ctx.Log.AddCritical(code)
	return ctx.Situation, true
}
