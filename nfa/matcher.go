package nfa

import (
	"github.com/signaldust/lore/internal/conv"
	"github.com/signaldust/lore/internal/sparse"
)

// Matcher runs an NFA online: it is fed one rune at a time and at any point
// can report the best match seen so far. Work per rune is bounded by the
// number of NFA states; the matcher never looks back at earlier input.
//
// Priority follows a backtracking engine: of two branches that reach the
// same state in the same step, the one a backtracker would have tried first
// survives. Leftmost matches win, alternatives are tried left to right,
// greedy quantifiers prefer to repeat and lazy ones prefer to stop.
//
// Thread safety: the NFA is only read, so any number of Matchers may share
// one NFA across goroutines. A single Matcher is NOT safe for concurrent use.
type Matcher struct {
	nfa *NFA

	arena submatchArena

	// cur and next hold the submatch of the branch parked at each
	// consuming state, noSub when the state is inactive.
	cur, next []subID

	// visited[id] == step means id was already reached in this step.
	visited []uint32
	step    uint32

	// Worklists of active states in priority order.
	curList, nextList *sparse.Set

	// stack is the explicit epsilon-closure stack.
	stack []frame

	pos   int
	peek  rune
	ended bool
	best  subID

	stats Stats
}

type frame struct {
	id  StateID
	sub subID
}

// Stats counts the work done by one Matcher since it was created.
type Stats struct {
	// Steps is the number of runes fed, the end-of-text step included.
	Steps uint64

	// SubmatchAllocs is the number of submatch records taken from the arena.
	SubmatchAllocs uint64

	// LiveSubmatches is the number of records currently referenced.
	LiveSubmatches int

	// PeakThreads is the largest worklist seen.
	PeakThreads int
}

// NewMatcher creates a matcher for n. It fails with ErrInvalidNFA when n is
// nil or was not produced by a successful compile.
func NewMatcher(n *NFA) (*Matcher, error) {
	if n == nil || len(n.states) == 0 || n.State(n.start) == nil {
		return nil, ErrInvalidNFA
	}
	k := len(n.states)
	m := &Matcher{
		nfa:      n,
		cur:      make([]subID, k),
		next:     make([]subID, k),
		visited:  make([]uint32, k),
		curList:  sparse.New(conv.IntToUint32(k)),
		nextList: sparse.New(conv.IntToUint32(k)),
		stack:    make([]frame, 0, 16),
		best:     noSub,
	}
	for i := range m.cur {
		m.cur[i] = noSub
		m.next[i] = noSub
	}
	return m, nil
}

// NFA returns the automaton this matcher runs.
func (m *Matcher) NFA() *NFA {
	return m.nfa
}

// Start begins a new search whose first rune will be at position pos.
// Any search in progress is abandoned and its submatches released.
// An NFA with OnlyAtBeginning set only matches at pos itself.
func (m *Matcher) Start(pos int) {
	m.release()
	m.pos = pos
	m.peek = 0
	m.ended = false
	m.bump()
	m.queueState(m.nfa.start, m.arena.alloc())
	m.swap()
}

// Next consumes r and reports whether the search is finished: no further
// input can change the match now held (or the absence of one).
// After End, Next is a no-op that returns true.
func (m *Matcher) Next(r rune) bool {
	if m.ended {
		return true
	}
	m.pos++
	m.advance(r)
	return m.curList.IsEmpty()
}

// End signals the end of input, which is what `$` matches, and reports
// whether a match is held. The position does not advance.
func (m *Matcher) End() bool {
	if !m.ended {
		m.ended = true
		m.advance(EndOfText)
		// Match states reached through `$` are only accepted by a further step.
		m.advance(EndOfText)
	}
	return m.Valid()
}

// Reset abandons the current search and releases every submatch, including
// the held match.
func (m *Matcher) Reset() {
	m.release()
	m.ended = false
}

// Valid reports whether a match is held.
func (m *Matcher) Valid() bool {
	return m.best != noSub
}

// Position returns the position of the next rune to be fed.
func (m *Matcher) Position() int {
	return m.pos
}

// Group returns the boundaries of group g of the held match.
// ok is false when there is no match, g is out of range or the group did
// not participate.
func (m *Matcher) Group(g int) (start, end int, ok bool) {
	if m.best == noSub || g < 0 || g >= m.nfa.numGroups {
		return -1, -1, false
	}
	s := m.arena.slots(m.best)
	start, end = s[2*g], s[2*g+1]
	if start > end {
		return -1, -1, false
	}
	return start, end, true
}

// GroupStart returns the start of group g, or -1.
func (m *Matcher) GroupStart(g int) int {
	start, _, _ := m.Group(g)
	return start
}

// GroupEnd returns the end of group g, or -1.
func (m *Matcher) GroupEnd(g int) int {
	_, end, _ := m.Group(g)
	return end
}

// Submatches appends the start and end of every group to dst, using -1 for
// groups that did not participate, and returns the extended slice.
// It returns dst unchanged when no match is held.
func (m *Matcher) Submatches(dst []int) []int {
	if m.best == noSub {
		return dst
	}
	for g := 0; g < m.nfa.numGroups; g++ {
		start, end, _ := m.Group(g)
		dst = append(dst, start, end)
	}
	return dst
}

// Stats returns the matcher's counters.
func (m *Matcher) Stats() Stats {
	s := m.stats
	s.SubmatchAllocs = m.arena.allocs
	s.LiveSubmatches = m.arena.live
	return s
}

// bump starts a new visited generation.
func (m *Matcher) bump() {
	m.step++
	if m.step == 0 {
		clear(m.visited)
		m.step = 1
	}
}

// advance checks every active state against r in priority order and
// builds the closure of the survivors at the current position.
func (m *Matcher) advance(r rune) {
	m.peek = r
	m.stats.Steps++
	m.bump()

	list := m.curList.Values()
	for i, v := range list {
		id := StateID(v)
		sub := m.cur[id]
		m.cur[id] = noSub
		st := &m.nfa.states[id]

		if st.kind == StateMatch {
			if !m.arena.nonEmpty(sub) {
				m.arena.release(sub)
				continue
			}
			m.arena.release(m.best)
			m.best = sub
			// Everything after this entry has lower priority than the match.
			for _, rest := range list[i+1:] {
				m.arena.release(m.cur[rest])
				m.cur[rest] = noSub
			}
			break
		}

		if m.checkTransition(st, r) {
			m.queueState(st.next, sub)
		} else {
			m.arena.release(sub)
		}
	}
	m.swap()
}

// checkTransition reports whether the consuming state st accepts r.
func (m *Matcher) checkTransition(st *State, r rune) bool {
	switch st.kind {
	case StateChar:
		return st.arg == r
	case StateClass:
		return m.nfa.classes.Contains(int(st.arg), r)
	case StateNClass:
		return r != EndOfText && !m.nfa.classes.Contains(int(st.arg), r)
	case StateFunc:
		return FuncID(st.arg).Eval(r)
	}
	return false
}

// queueState adds the epsilon-closure of id to the next worklist, carrying
// sub. The walk is depth-first with the left successor of every Split
// first; a state reached a second time in the same step keeps the earlier,
// higher priority branch and the newcomer is released.
func (m *Matcher) queueState(id StateID, sub subID) {
	stack := m.stack[:0]
	for {
		if m.visited[id] == m.step {
			m.arena.release(sub)
		} else {
			m.visited[id] = m.step
			st := &m.nfa.states[id]
			switch st.kind {
			case StateSplit:
				stack = append(stack, frame{st.right, m.arena.addRef(sub)})
				id = st.next
				continue
			case StateEmpty:
				id = st.next
				continue
			case StateSave:
				sub = m.arena.write(sub, int(st.arg), m.pos)
				id = st.next
				continue
			case StateChar:
				if st.arg == EndOfText && m.ended {
					// End of input is a zero-width fact once signalled.
					id = st.next
					continue
				}
			}
			m.next[id] = sub
			m.nextList.Insert(uint32(id))
		}

		n := len(stack)
		if n == 0 {
			break
		}
		id, sub = stack[n-1].id, stack[n-1].sub
		stack = stack[:n-1]
	}
	m.stack = stack
}

// swap makes the next worklist current and empties the new next list.
func (m *Matcher) swap() {
	m.cur, m.next = m.next, m.cur
	m.curList, m.nextList = m.nextList, m.curList
	m.nextList.Clear()
	if n := m.curList.Len(); n > m.stats.PeakThreads {
		m.stats.PeakThreads = n
	}
}

// release drops every submatch the matcher holds.
func (m *Matcher) release() {
	for _, v := range m.curList.Values() {
		m.arena.release(m.cur[v])
		m.cur[v] = noSub
	}
	m.curList.Clear()
	for _, v := range m.nextList.Values() {
		m.arena.release(m.next[v])
		m.next[v] = noSub
	}
	m.nextList.Clear()
	m.arena.release(m.best)
	m.best = noSub
}
