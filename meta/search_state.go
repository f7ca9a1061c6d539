package meta

import (
	"sync"

	"github.com/signaldust/lore/nfa"
	"github.com/signaldust/lore/prefilter"
)

// searchState holds per-search mutable state so one Engine can serve many
// goroutines. States come from a sync.Pool and must not be shared.
//
// Usage pattern:
//
//	state := e.statePool.get()
//	defer e.statePool.put(state)
type searchState struct {
	matcher *nfa.Matcher

	// tracker retires the prefilter for the rest of a haystack when its
	// candidates rarely start a match. nil without a prefilter.
	tracker *prefilter.Tracker

	// runes and slots hold the last match: rune positions and byte offsets,
	// two per group, -1 for groups that did not participate.
	runes []int
	slots []int

	// order is scratch space for runesToBytes.
	order []int
}

func newSearchState(n *nfa.NFA, pf prefilter.Prefilter) *searchState {
	// The NFA was built by the compiler, so it is always valid.
	m, err := nfa.NewMatcher(n)
	if err != nil {
		panic("meta: " + err.Error())
	}
	k := 2 * n.NumGroups()
	return &searchState{
		matcher: m,
		tracker: prefilter.NewTracker(pf),
		runes:   make([]int, 0, k),
		slots:   make([]int, 0, k),
		order:   make([]int, 0, k),
	}
}

// begin prepares the state for a new haystack.
func (s *searchState) begin() {
	if s.tracker != nil {
		s.tracker.Reset()
	}
}

// reset drops the last match and releases the matcher's submatches.
// Called when returning state to the pool.
func (s *searchState) reset() {
	s.matcher.Reset()
	s.runes = s.runes[:0]
	s.slots = s.slots[:0]
}

// searchStatePool manages a pool of searchState instances for thread-safe reuse.
// This follows the stdlib regexp pattern of using sync.Pool for concurrent safety.
type searchStatePool struct {
	pool sync.Pool

	nfa       *nfa.NFA
	prefilter prefilter.Prefilter
}

func newSearchStatePool(n *nfa.NFA, pf prefilter.Prefilter) *searchStatePool {
	p := &searchStatePool{
		nfa:       n,
		prefilter: pf,
	}
	p.pool = sync.Pool{
		New: func() any {
			return newSearchState(p.nfa, p.prefilter)
		},
	}
	return p
}

// get retrieves a searchState from the pool, creating one if necessary.
func (p *searchStatePool) get() *searchState {
	return p.pool.Get().(*searchState)
}

// put returns a searchState to the pool for reuse.
func (p *searchStatePool) put(state *searchState) {
	if state == nil {
		return
	}
	state.reset()
	p.pool.Put(state)
}
