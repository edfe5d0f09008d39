package engine

import (
	"time"

	"pension-engine/internal/dates"
	"pension-engine/internal/messages"
	"pension-engine/internal/model"
	"pension-engine/internal/mutations"
)

// Step records one attempted mutation.
type Step struct {
	Mutation model.Mutation
	// MessageIndexes are the log indexes produced while handling the mutation.
	MessageIndexes []int
	Before         model.Situation
	After          model.Situation
	Halted         bool
}

// Execution is the outcome of one walk over a mutation list.
type Execution struct {
	Initial model.Situation
	End     model.Situation
	Steps   []Step
	Halted  bool
}

// Executor applies mutations in order against an evolving situation.
type Executor struct {
	registry *mutations.Registry
	now      func() time.Time
}

func NewExecutor(registry *mutations.Registry, now func() time.Time) *Executor {
	if now == nil {
		now = time.Now
	}
	return &Executor{registry: registry, now: now}
}

// Execute runs muts one by one, stopping after the first mutation that logs a
// CRITICAL message. The halting mutation is still recorded as a step and its
// effect is discarded.
func (e *Executor) Execute(muts []model.Mutation, log *messages.Log) *Execution {
	today := dates.Today(e.now())
	current := model.Situation{}
	exec := &Execution{
		Initial: current,
		Steps:   make([]Step, 0, len(muts)),
	}

	for i, mut := range muts {
		from := log.Count()
		step := Step{Mutation: mut, Before: current, After: current}

		processor, ok := e.registry.Get(mut.MutationDefinitionName)
		if !ok {
			log.AddCriticalf(messages.UnknownMutation, "Unknown mutation: %s", mut.MutationDefinitionName)
			step.Halted = true
		} else {
			next, halted := processor.Process(&mutations.Context{
				Situation: current,
				Mutation:  mut,
				Log:       log,
				Index:     i,
				Today:     today,
			})
			// A processor that logs CRITICAL without reporting halt is
			// still stopped here.
			step.Halted = halted || log.ShouldHalt()
			if !step.Halted {
				step.After = next
			}
		}

		step.MessageIndexes = log.Range(from)
		exec.Steps = append(exec.Steps, step)

		if step.Halted {
			exec.Halted = true
			break
		}
		current = step.After
	}

	exec.End = current
	return exec
}

// Last returns the index and step of the last attempted mutation.
func (x *Execution) Last() (int, Step, bool) {
	if len(x.Steps) == 0 {
		return 0, Step{}, false
	}
	i := len(x.Steps) - 1
	return i, x.Steps[i], true
}
