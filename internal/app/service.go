// Package app is the thin service layer the CLI calls into: it loads
// a scenario and runs the solver, keeping cmd/cli free of solver
// internals (mirrors the teacher's own app.Service boundary).
package app

import (
	"context"
	"fmt"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"depsolve/internal/rules"
	"depsolve/internal/scenario"
	"depsolve/internal/solve"
)

// Service runs solver operations against loaded scenarios.
type Service struct{}

// NewService builds a Service. It currently holds no state; the
// constructor exists so the CLI layer has one place to grow shared
// dependencies (a logger, a cache) without touching call sites.
func NewService() Service { return Service{} }

// SolveRequest names the scenario file to load and how many models
// the caller wants back.
type SolveRequest struct {
	ScenarioPath string
	Limit        int // 0 means "first model only"
}

// SolveResult is the outcome of running the solver to completion (or
// to the requested limit).
type SolveResult struct {
	Models       []solve.Model
	PackageCount int
}

// Solve loads the scenario at req.ScenarioPath and returns up to
// req.Limit models (or just the first, if Limit is 0).
func (Service) Solve(ctx context.Context, req SolveRequest) (SolveResult, error) {
	if req.ScenarioPath == "" {
		return SolveResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("scenario path is required")
	}
	sc, err := scenario.Load(req.ScenarioPath)
	if err != nil {
		return SolveResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("loading scenario %q", req.ScenarioPath)).
			WithCause(err)
	}

	limit := req.Limit
	if limit <= 0 {
		limit = 1
	}

	solver := solve.New(sc.Pool)
	seq, err := solver.Solve(ctx, sc.Request, sc.Installed)
	if err != nil {
		return SolveResult{}, errbuilder.New().
			WithCode(errbuilder.CodeFailedPrecondition).
			WithMsg("generating rules").
			WithCause(err)
	}

	var models []solve.Model
	for m := range seq {
		models = append(models, m)
		if len(models) >= limit {
			break
		}
	}
	if len(models) == 0 {
		return SolveResult{}, errbuilder.New().
			WithCode(errbuilder.CodeFailedPrecondition).
			WithMsg("request is unsatisfiable")
	}
	log.Ctx(ctx).Debug().
		Str("scenario", req.ScenarioPath).
		Int("models", len(models)).
		Msg("solve request completed")
	return SolveResult{Models: models, PackageCount: sc.Pool.Len()}, nil
}

// Explain loads the scenario and returns the generated rule set
// rendered in its diagnostic form, for `depsolve explain`.
func (Service) Explain(ctx context.Context, scenarioPath string) ([]string, error) {
	sc, err := scenario.Load(scenarioPath)
	if err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("loading scenario %q", scenarioPath)).
			WithCause(err)
	}
	generator := rules.NewGenerator(sc.Pool, sc.Request, sc.Installed)
	generated, err := generator.Rules(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]string, len(generated))
	for i, r := range generated {
		out[i] = r.String(sc.Pool)
	}
	return out, nil
}
