package meta

import (
	"slices"
	"sync/atomic"
	"unicode/utf8"
)

// IsMatch reports whether haystack contains a match.
func (e *Engine) IsMatch(haystack []byte) bool {
	state := e.statePool.get()
	defer e.statePool.put(state)
	state.begin()
	return e.searchAt(state, haystack, 0, 0)
}

// Find returns the leftmost-first match in haystack, or nil.
//
// The result is the one the online matcher reports when fed the whole
// haystack from rune position 0 and then told the input ended.
func (e *Engine) Find(haystack []byte) *Match {
	return e.FindAt(haystack, 0)
}

// FindAt returns the first match starting at or after byte offset at,
// or nil. Rune positions in the result still count from the start of
// haystack. An anchored pattern only matches at offset 0.
func (e *Engine) FindAt(haystack []byte, at int) *Match {
	if at < 0 || at > len(haystack) {
		return nil
	}
	state := e.statePool.get()
	defer e.statePool.put(state)
	state.begin()
	if !e.searchAt(state, haystack, at, utf8.RuneCount(haystack[:at])) {
		return nil
	}
	return state.match(haystack)
}

// FindAll returns successive non-overlapping matches, at most n of them
// when n >= 0.
func (e *Engine) FindAll(haystack []byte, n int) []*Match {
	if n == 0 {
		return nil
	}
	state := e.statePool.get()
	defer e.statePool.put(state)
	state.begin()

	var matches []*Match
	at, pos := 0, 0
	for n < 0 || len(matches) < n {
		if !e.searchAt(state, haystack, at, pos) {
			break
		}
		m := state.match(haystack)
		matches = append(matches, m)
		// Matches are never empty, so this always moves forward.
		at, pos = m.End(), m.RuneEnd()
	}
	return matches
}

// FindAllIndex returns the byte offsets of successive non-overlapping
// matches, at most n of them when n >= 0.
func (e *Engine) FindAllIndex(haystack []byte, n int) [][]int {
	matches := e.FindAll(haystack, n)
	if matches == nil {
		return nil
	}
	out := make([][]int, len(matches))
	for i, m := range matches {
		out[i] = []int{m.Start(), m.End()}
	}
	return out
}

// Count returns the number of non-overlapping matches, at most n when n >= 0.
func (e *Engine) Count(haystack []byte, n int) int {
	return len(e.FindAll(haystack, n))
}

// searchAt runs one search over haystack[at:], where the byte at offset at
// is rune position pos, and leaves the match (if any) in state.
func (e *Engine) searchAt(state *searchState, haystack []byte, at, pos int) bool {
	atomic.AddUint64(&e.stats.Searches, 1)
	state.runes = state.runes[:0]
	state.slots = state.slots[:0]

	// A match consumes at least one rune.
	if at >= len(haystack) {
		return false
	}
	if e.nfa.OnlyAtBeginning() && at > 0 {
		return false
	}

	tracker := state.tracker
	if tracker == nil || !tracker.IsActive() {
		return e.runMatcher(state, haystack, at, pos)
	}

	cand := tracker.Find(haystack, at)
	if !tracker.IsActive() {
		atomic.AddUint64(&e.stats.PrefilterAbandoned, 1)
	}
	if cand < 0 {
		atomic.AddUint64(&e.stats.PrefilterSkips, 1)
		return false
	}
	atomic.AddUint64(&e.stats.PrefilterHits, 1)
	pos += utf8.RuneCount(haystack[at:cand])
	at = cand

	if e.literalOnly {
		end := at + e.prefilter.LiteralLen()
		state.runes = append(state.runes, pos, pos+utf8.RuneCount(haystack[at:end]))
		state.slots = append(state.slots, at, end)
		tracker.ConfirmMatch()
		atomic.AddUint64(&e.stats.LiteralMatches, 1)
		return true
	}

	if !e.runMatcher(state, haystack, at, pos) {
		atomic.AddUint64(&e.stats.PrefilterMisses, 1)
		return false
	}
	if state.runes[0] == pos {
		tracker.ConfirmMatch()
	} else {
		atomic.AddUint64(&e.stats.PrefilterMisses, 1)
	}
	return true
}

// runMatcher feeds haystack[at:] to the matcher and records the match.
func (e *Engine) runMatcher(state *searchState, haystack []byte, at, pos int) bool {
	if !state.matcher.SearchAt(haystack, at, pos) {
		return false
	}
	state.runes = state.matcher.Submatches(state.runes)
	state.slots, state.order = runesToBytes(state.slots, state.order, haystack, at, pos, state.runes)
	return true
}

// match copies the recorded match out of the state.
func (s *searchState) match(haystack []byte) *Match {
	return NewMatch(haystack, slices.Clone(s.slots), slices.Clone(s.runes))
}

// runesToBytes appends to dst the byte offset of every rune position in
// runes, given that rune position pos is at byte offset at and no position
// is before pos. Negative positions map to -1. order is scratch space; both
// slices are returned for reuse.
func runesToBytes(dst, order []int, haystack []byte, at, pos int, runes []int) ([]int, []int) {
	base := len(dst)
	order = order[:0]
	for i, p := range runes {
		dst = append(dst, -1)
		if p >= 0 {
			order = append(order, i)
		}
	}
	slices.SortFunc(order, func(a, b int) int {
		return runes[a] - runes[b]
	})
	for _, i := range order {
		for pos < runes[i] && at < len(haystack) {
			_, w := utf8.DecodeRune(haystack[at:])
			at += w
			pos++
		}
		dst[base+i] = at
	}
	return dst, order
}
