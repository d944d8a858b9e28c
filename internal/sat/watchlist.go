// Package sat implements the DPLL-family SAT engine the solver core
// searches with: a single-watched-literal scheme for early conflict
// detection (spec §4.4), not Chaff's two-watched-literal variant.
package sat

// Clause is a non-empty disjunction of signed, non-zero literals.
// A unit clause has exactly one literal.
type Clause []int

// Value is the three-valued state of a variable under a partial
// assignment.
type Value int8

const (
	Unassigned Value = iota
	True
	False
)

// Assignment is a partial mapping from variable id to Value.
type Assignment map[int]Value

// IsFalse reports whether literal lit currently evaluates to false
// under a. An unassigned variable makes every literal on it not-false.
func (a Assignment) IsFalse(lit int) bool {
	v := a[varOf(lit)]
	if v == Unassigned {
		return false
	}
	if lit > 0 {
		return v == False
	}
	return v == True
}

// IsTrue reports whether literal lit currently evaluates to true
// under a.
func (a Assignment) IsTrue(lit int) bool {
	v := a[varOf(lit)]
	if v == Unassigned {
		return false
	}
	if lit > 0 {
		return v == True
	}
	return v == False
}

func varOf(lit int) int {
	if lit < 0 {
		return -lit
	}
	return lit
}

// Watchlist maintains, for each literal, the clauses currently
// watching it. Every clause watches exactly one literal at all times
// (spec §4.4's invariant), and that literal is always one not
// currently assigned false.
type Watchlist struct {
	queues map[int][]Clause
}

// NewWatchlist builds an empty Watchlist.
func NewWatchlist() *Watchlist {
	return &Watchlist{queues: map[int][]Clause{}}
}

// AddClause watches clause on its first literal.
func (w *Watchlist) AddClause(clause Clause) {
	if len(clause) == 0 {
		return
	}
	lit := clause[0]
	w.queues[lit] = append(w.queues[lit], clause)
}

// Watching returns the clauses currently watching lit, for
// diagnostics and testing.
func (w *Watchlist) Watching(lit int) []Clause {
	return w.queues[lit]
}

type watchMove struct {
	clause Clause
	lit    int
}

// planMoves finds, for every clause currently watching falseLiteral,
// an alternative literal not false under assignment. It performs no
// mutation: ok is false the moment any clause has no alternative,
// leaving the caller free to discard the plan with no cleanup.
func (w *Watchlist) planMoves(falseLiteral int, assignment Assignment) ([]watchMove, bool) {
	queue := w.queues[falseLiteral]
	moves := make([]watchMove, 0, len(queue))
	for _, clause := range queue {
		alt, ok := alternativeWatch(clause, falseLiteral, assignment)
		if !ok {
			return nil, false
		}
		moves = append(moves, watchMove{clause: clause, lit: alt})
	}
	return moves, true
}

// commit applies a successful move plan: every clause that was
// watching falseLiteral now watches its planned alternative.
func (w *Watchlist) commit(falseLiteral int, moves []watchMove) {
	w.queues[falseLiteral] = nil
	for _, m := range moves {
		w.queues[m.lit] = append(w.queues[m.lit], m.clause)
	}
}

// Update is called immediately after falseLiteral has been set false.
// Every clause currently watching falseLiteral is rewatched onto an
// alternative literal that is not false under assignment. If any such
// clause has no alternative, the whole update fails and the watchlist
// is left exactly as it was on entry — rewatch decisions are planned
// on a scratch list and only committed once every clause in the queue
// has found a new home (spec §4.4 design note).
func (w *Watchlist) Update(falseLiteral int, assignment Assignment) bool {
	moves, ok := w.planMoves(falseLiteral, assignment)
	if !ok {
		return false
	}
	w.commit(falseLiteral, moves)
	return true
}

// updateUndoable behaves like Update but additionally returns a
// function that exactly reverses the rewatches it performed, letting
// the search engine backtrack over a failed branch without recloning
// the whole watchlist.
func (w *Watchlist) updateUndoable(falseLiteral int, assignment Assignment) (ok bool, undo func()) {
	moves, ok := w.planMoves(falseLiteral, assignment)
	if !ok {
		return false, nil
	}
	if len(moves) == 0 {
		return true, func() {}
	}
	original := w.queues[falseLiteral]
	prevLen := map[int]int{}
	w.queues[falseLiteral] = nil
	for _, m := range moves {
		if _, seen := prevLen[m.lit]; !seen {
			prevLen[m.lit] = len(w.queues[m.lit])
		}
		w.queues[m.lit] = append(w.queues[m.lit], m.clause)
	}
	undo = func() {
		w.queues[falseLiteral] = original
		for lit, n := range prevLen {
			w.queues[lit] = w.queues[lit][:n]
		}
	}
	return true, undo
}

// alternativeWatch finds a literal in clause, other than
// falseLiteral, that is not currently false under assignment.
func alternativeWatch(clause Clause, falseLiteral int, assignment Assignment) (int, bool) {
	for _, lit := range clause {
		if lit == falseLiteral {
			continue
		}
		if !assignment.IsFalse(lit) {
			return lit, true
		}
	}
	return 0, false
}
