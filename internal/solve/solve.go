// Package solve wires pool.Pool, rules.Generator, and sat.Engine into
// the one end-to-end operation the rest of this repository assumes
// exists: given a package universe, an install state, and a request,
// enumerate every valid installation.
package solve

import (
	"context"
	"iter"

	"github.com/rs/zerolog/log"

	"depsolve/internal/pool"
	"depsolve/internal/rules"
	"depsolve/internal/sat"
)

// Model is one satisfying assignment translated back into packages:
// every package whose literal was assigned true.
type Model struct {
	Installed []pool.Package
}

// Solver resolves a Request against a Pool and an InstalledMap.
type Solver struct {
	pool *pool.Pool
}

// New builds a Solver over p.
func New(p *pool.Pool) *Solver {
	return &Solver{pool: p}
}

// Solve generates the rule set for request against installed, then
// runs the SAT engine over it, lazily translating each model back
// into the packages it selects for install.
func (s *Solver) Solve(ctx context.Context, request rules.Request, installed *rules.InstalledMap) (iter.Seq[Model], error) {
	generator := rules.NewGenerator(s.pool, request, installed)
	generated, err := generator.Rules(ctx)
	if err != nil {
		return nil, err
	}

	clauses := make([]sat.Clause, len(generated))
	for i, r := range generated {
		clauses[i] = sat.Clause(r.Literals)
	}

	engine := sat.NewEngine(s.pool.Len(), clauses)
	return func(yield func(Model) bool) {
		models := 0
		for assignment := range engine.Solve(ctx) {
			models++
			if !yield(s.toModel(assignment)) {
				break
			}
		}
		log.Ctx(ctx).Debug().Int("models", models).Msg("solve search completed")
	}, nil
}

func (s *Solver) toModel(assignment sat.Assignment) Model {
	var installed []pool.Package
	for id := 1; id <= s.pool.Len(); id++ {
		if assignment[id] == sat.True {
			pkg, ok := s.pool.PackageByID(id)
			if ok {
				installed = append(installed, pkg)
			}
		}
	}
	return Model{Installed: installed}
}
