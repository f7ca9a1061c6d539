package nfa

import "math"

// Boundaries of a group that has not matched. Any start > end reads as
// unmatched, which also covers a group re-entered by a later repetition
// but not yet closed again.
const (
	unsetStart = math.MaxInt
	unsetEnd   = math.MinInt
)

// subID addresses a submatch record in a matcher's arena.
type subID int32

const noSub subID = -1

// submatch is one snapshot of capture boundaries shared by every branch
// that has not written to it since it was forked.
type submatch struct {
	slots [MaxSlots]int
	refs  int32
}

// submatchArena owns all submatch records of one Matcher. Records are
// recycled through a free list, so steady-state matching does not allocate.
//
// Copy-on-write: a record with refs > 1 is never written; write clones it
// first and drops one reference from the original.
type submatchArena struct {
	recs   []submatch
	free   []subID
	live   int
	allocs uint64
}

func (a *submatchArena) take() subID {
	a.live++
	a.allocs++
	if n := len(a.free); n > 0 {
		id := a.free[n-1]
		a.free = a.free[:n-1]
		a.recs[id].refs = 1
		return id
	}
	a.recs = append(a.recs, submatch{refs: 1})
	return subID(len(a.recs) - 1)
}

// alloc returns a fresh record with every group unmatched.
func (a *submatchArena) alloc() subID {
	id := a.take()
	s := &a.recs[id].slots
	for i := 0; i < MaxSlots; i += 2 {
		s[i] = unsetStart
		s[i+1] = unsetEnd
	}
	return id
}

// addRef shares id with one more holder.
func (a *submatchArena) addRef(id subID) subID {
	a.recs[id].refs++
	return id
}

// release drops one reference and recycles the record at zero.
func (a *submatchArena) release(id subID) {
	if id == noSub {
		return
	}
	r := &a.recs[id]
	r.refs--
	if r.refs == 0 {
		a.free = append(a.free, id)
		a.live--
	}
}

// write stores pos into slot and returns the record now holding the
// update: id itself when exclusively owned, otherwise a private clone.
func (a *submatchArena) write(id subID, slot, pos int) subID {
	if a.recs[id].refs > 1 {
		c := a.take()
		a.recs[c].slots = a.recs[id].slots
		a.recs[id].refs--
		id = c
	}
	a.recs[id].slots[slot] = pos
	return id
}

func (a *submatchArena) slots(id subID) *[MaxSlots]int {
	return &a.recs[id].slots
}

// nonEmpty reports whether the overall match span of id covers at least
// one character.
func (a *submatchArena) nonEmpty(id subID) bool {
	s := &a.recs[id].slots
	return s[1] > s[0]
}

func (a *submatchArena) refs(id subID) int32 {
	return a.recs[id].refs
}
