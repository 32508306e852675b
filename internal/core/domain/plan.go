// Package domain contains the core domain models and business logic for the provisioning plan.
package domain

import (
	"iter"
	"slices"
	"strings"

	"go.trai.ch/zerr"
)

// Plan represents a dependency-ordered collection of provisioning steps.
type Plan struct {
	steps          map[InternedString]Step
	executionOrder []InternedString
}

// NewPlan creates a new empty Plan.
func NewPlan() *Plan {
	return &Plan{
		steps: make(map[InternedString]Step),
	}
}

// AddStep adds a step to the plan.
// It returns an error if a step with the same name already exists.
func (p *Plan) AddStep(s *Step) error {
	if _, exists := p.steps[s.Name]; exists {
		return zerr.With(ErrStepAlreadyExists, "step_name", s.Name.String())
	}
	p.steps[s.Name] = *s
	return nil
}

// Validate checks for cycles in the plan using a topological sort.
// It populates the executionOrder slice if successful.
func (p *Plan) Validate() error {
	p.executionOrder = make([]InternedString, 0, len(p.steps))
	visited := make(map[InternedString]int) // 0: unvisited, 1: visiting, 2: visited
	var path []InternedString

	var visit func(u InternedString) error
	visit = func(u InternedString) error {
		visited[u] = 1
		path = append(path, u)

		step, exists := p.steps[u]
		if !exists {
			return zerr.With(ErrMissingStepDependency, "dependency", u.String())
		}

		for _, need := range step.Needs {
			if visited[need] == 1 {
				return p.buildCycleError(path, need)
			}
			if visited[need] == 0 {
				if err := visit(need); err != nil {
					return err
				}
			}
		}

		visited[u] = 2
		path = path[:len(path)-1]
		p.executionOrder = append(p.executionOrder, u)
		return nil
	}

	// Map iteration order is random. Roots are visited in name order so that
	// the execution order of unrelated steps is stable between runs.
	for _, name := range p.sortedStepNames() {
		if visited[name] == 0 {
			if err := visit(name); err != nil {
				return err
			}
		}
	}

	return nil
}

// buildCycleError constructs an error with cycle path metadata.
func (p *Plan) buildCycleError(path []InternedString, need InternedString) error {
	cyclePath := ""
	startIdx := -1
	for i, node := range path {
		if node == need {
			startIdx = i
			break
		}
	}
	for i := startIdx; i < len(path); i++ {
		cyclePath += path[i].String() + " -> "
	}
	cyclePath += need.String()
	return zerr.With(ErrCycleDetected, "cycle", cyclePath)
}

// Walk returns an iterator that yields steps in execution order.
// It assumes Validate() has been called and returned nil.
func (p *Plan) Walk() iter.Seq[Step] {
	return func(yield func(Step) bool) {
		for _, name := range p.executionOrder {
			if !yield(p.steps[name]) {
				return
			}
		}
	}
}

// Step returns the step with the given name.
func (p *Plan) Step(name InternedString) (Step, bool) {
	s, ok := p.steps[name]
	return s, ok
}

// StepCount returns the number of steps in the plan.
func (p *Plan) StepCount() int {
	return len(p.steps)
}

// Dependents returns the names of steps that directly depend on the given
// step, sorted by name.
func (p *Plan) Dependents(name InternedString) []InternedString {
	var dependents []InternedString
	for _, candidate := range p.sortedStepNames() {
		if slices.Contains(p.steps[candidate].Needs, name) {
			dependents = append(dependents, candidate)
		}
	}
	return dependents
}

func (p *Plan) sortedStepNames() []InternedString {
	names := make([]InternedString, 0, len(p.steps))
	for name := range p.steps {
		names = append(names, name)
	}
	slices.SortFunc(names, func(a, b InternedString) int {
		return strings.Compare(a.String(), b.String())
	})
	return names
}
