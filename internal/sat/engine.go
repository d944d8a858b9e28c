package sat

import (
	"context"
	"iter"

	"github.com/rs/zerolog/log"
)

// Engine is a DPLL-family enumerator over a fixed set of clauses and
// variables 1..NumVars (spec §4.4). It performs no clause learning
// and no restarts; each decision tries True then False, using the
// watchlist purely to detect the moment a clause has no
// not-currently-false literal left.
type Engine struct {
	numVars int
	clauses []Clause
}

// NewEngine builds an Engine over the given clauses, where variables
// are the positive integers 1..numVars.
func NewEngine(numVars int, clauses []Clause) *Engine {
	return &Engine{numVars: numVars, clauses: clauses}
}

// Solve returns a lazy sequence of every satisfying assignment, in
// deterministic ascending-variable-id decision order (try True, then
// False, at each variable). Iteration stops early if the consumer
// breaks out of the range loop, or if ctx is canceled.
func (e *Engine) Solve(ctx context.Context) iter.Seq[Assignment] {
	return func(yield func(Assignment) bool) {
		watchlist := NewWatchlist()
		for _, c := range e.clauses {
			watchlist.AddClause(c)
		}
		assignment := make(Assignment, e.numVars+1)
		stats := &searchStats{}
		search(ctx, watchlist, assignment, 1, e.numVars, yield, stats)
		log.Ctx(ctx).Debug().
			Int("models", stats.models).
			Int("backtracks", stats.backtracks).
			Msg("sat search completed")
	}
}

// searchStats accumulates milestone counters across one Solve call.
type searchStats struct {
	models     int
	backtracks int
}

// search assigns variable v (and all variables after it) by trying
// True then False, backtracking on conflict or after a full
// assignment has been yielded, to let the engine enumerate every
// satisfying assignment rather than stopping at the first. It returns
// false the moment the consumer (or ctx) asks iteration to stop.
func search(ctx context.Context, watchlist *Watchlist, assignment Assignment, v, numVars int, yield func(Assignment) bool, stats *searchStats) bool {
	if ctx.Err() != nil {
		return false
	}
	if v > numVars {
		stats.models++
		return yield(cloneAssignment(assignment))
	}

	for _, val := range [2]Value{True, False} {
		falseLiteral := v
		if val == True {
			falseLiteral = -v
		}
		assignment[v] = val
		ok, undo := watchlist.updateUndoable(falseLiteral, assignment)
		if ok {
			cont := search(ctx, watchlist, assignment, v+1, numVars, yield, stats)
			undo()
			if !cont {
				assignment[v] = Unassigned
				return false
			}
		} else {
			stats.backtracks++
		}
		assignment[v] = Unassigned
	}
	return true
}

func cloneAssignment(a Assignment) Assignment {
	out := make(Assignment, len(a))
	for k, v := range a {
		out[k] = v
	}
	return out
}
