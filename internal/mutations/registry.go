package mutations

import (
	"maps"
	"slices"
)

// Registry resolves mutation definition names to processors. The set of
// processors is fixed at construction.
type Registry struct {
	processors map[string]Processor
}

func NewRegistry() *Registry {
	return &Registry{
		processors: map[string]Processor{
			CreateDossierName:              ProcessorFunc(CreateDossier),
			AddPolicyName:                  ProcessorFunc(AddPolicy),
			ApplyIndexationName:            ProcessorFunc(ApplyIndexation),
			CalculateRetirementBenefitName: ProcessorFunc(CalculateRetirementBenefit),
		},
	}
}

func (r *Registry) Get(name string) (Processor, bool) {
	p, ok := r.processors[name]
	return p, ok
}

// Names returns the registered definition names in sorted order.
func (r *Registry) Names() []string {
	return slices.Sorted(maps.Keys(r.processors))
}
