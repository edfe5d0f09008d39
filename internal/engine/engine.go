// Package engine runs calculation requests: it replays the mutation list
// against an empty situation and assembles the response envelope.
package engine

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"pension-engine/internal/messages"
	"pension-engine/internal/model"
	"pension-engine/internal/mutations"
)

// ErrNoMutations is returned for a request without any mutation.
var ErrNoMutations = errors.New("at least one mutation is required")

type Engine struct {
	registry    *mutations.Registry
	executor    *Executor
	logger      *zap.Logger
	emitPatches bool
	now         func() time.Time
	newID       func() string
}

type Option func(*Engine)

func WithLogger(logger *zap.Logger) Option {
	return func(e *Engine) { e.logger = logger }
}

// WithPatches controls whether each processed mutation carries forward and
// backward JSON patches.
func WithPatches(enabled bool) Option {
	return func(e *Engine) { e.emitPatches = enabled }
}

func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

func WithIDGenerator(newID func() string) Option {
	return func(e *Engine) { e.newID = newID }
}

func New(registry *mutations.Registry, opts ...Option) *Engine {
	e := &Engine{
		registry:    registry,
		logger:      zap.NewNop(),
		emitPatches: true,
		now:         time.Now,
		newID:       func() string { return uuid.New().String() },
	}
	for _, opt := range opts {
		opt(e)
	}
	e.executor = NewExecutor(registry, e.now)
	return e
}

// Process runs one calculation. Rule violations never surface as errors;
// they end up in the response's message log with a FAILURE outcome.
func (e *Engine) Process(req *model.CalculationRequest) (*model.CalculationResponse, error) {
	muts := req.Mutations()
	if len(muts) == 0 {
		return nil, ErrNoMutations
	}

	start := e.now()
	calculationID := e.newID()
	logger := e.logger.With(
		zap.String("calculation_id", calculationID),
		zap.String("tenant_id", req.TenantID),
	)

	log := messages.NewLog()
	exec := e.executor.Execute(muts, log)

	outcome := model.OutcomeSuccess
	if log.HasCriticalError() {
		outcome = model.OutcomeFailure
	}

	processed := make([]model.ProcessedMutation, 0, len(exec.Steps))
	for i, step := range exec.Steps {
		pm := model.ProcessedMutation{
			Mutation:                  step.Mutation,
			CalculationMessageIndexes: step.MessageIndexes,
		}
		if e.emitPatches {
			fwd, bwd, err := situationPatches(step.Before, step.After)
			if err != nil {
				logger.Warn("patch computation failed", zap.Int("mutation_index", i), zap.Error(err))
			} else {
				pm.ForwardPatch, pm.BackwardPatch = fwd, bwd
			}
		}
		processed = append(processed, pm)

		logger.Debug("mutation processed",
			zap.Int("mutation_index", i),
			zap.String("mutation", step.Mutation.MutationDefinitionName),
			zap.Bool("halted", step.Halted),
			zap.Ints("message_indexes", step.MessageIndexes),
		)
		if !recordMutation(e.registry, step) {
			logger.Warn("unknown mutation",
				zap.String("mutation", step.Mutation.MutationDefinitionName),
				zap.Int("mutation_index", i),
			)
		}
	}

	lastIndex, last, _ := exec.Last()
	completed := e.now()
	elapsed := completed.Sub(start)

	recordCalculation(outcome, elapsed)
	logger.Info("calculation completed",
		zap.String("outcome", string(outcome)),
		zap.Int("mutations", len(muts)),
		zap.Int("processed", len(exec.Steps)),
		zap.Int("messages", log.Count()),
		zap.Duration("duration", elapsed),
	)

	return &model.CalculationResponse{
		CalculationMetadata: model.CalculationMetadata{
			CalculationID:          calculationID,
			TenantID:               req.TenantID,
			CalculationStartedAt:   start.UTC().Format(time.RFC3339),
			CalculationCompletedAt: completed.UTC().Format(time.RFC3339),
			CalculationDurationMs:  elapsed.Milliseconds(),
			CalculationOutcome:     outcome,
		},
		CalculationResult: model.CalculationResult{
			Messages:  log.Messages(),
			Mutations: processed,
			EndSituation: model.SituationEnvelope{
				MutationID:    last.Mutation.MutationID,
				MutationIndex: lastIndex,
				ActualAt:      last.Mutation.ActualAt,
				Situation:     exec.End,
			},
			InitialSituation: model.InitialSituation{
				ActualAt:  muts[0].ActualAt,
				Situation: exec.Initial,
			},
		},
	}, nil
}
