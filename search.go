package lore

import (
	"github.com/signaldust/lore/nfa"
)

// Matcher is an online matcher fed one rune at a time; see nfa.Matcher.
type Matcher = nfa.Matcher

// EndOfText is the sentinel a Matcher sees when End is called.
const EndOfText = nfa.EndOfText

// Match is the result of Search. Its positions count runes from the start
// of the searched text, the same numbering a Matcher started at 0 uses.
type Match struct {
	slots []int
}

// Start returns the position where the match begins.
func (m *Match) Start() int {
	return m.slots[0]
}

// End returns the position just past the match.
func (m *Match) End() int {
	return m.slots[1]
}

// NumGroups returns the number of groups, group 0 included.
func (m *Match) NumGroups() int {
	return len(m.slots) / 2
}

// Group returns the boundaries of group g; ok is false when g is out of
// range or the group did not participate.
func (m *Match) Group(g int) (start, end int, ok bool) {
	if g < 0 || g >= m.NumGroups() || m.slots[2*g] < 0 {
		return -1, -1, false
	}
	return m.slots[2*g], m.slots[2*g+1], true
}

// GroupStart returns the start of group g, or -1.
func (m *Match) GroupStart(g int) int {
	start, _, _ := m.Group(g)
	return start
}

// GroupEnd returns the end of group g, or -1.
func (m *Match) GroupEnd(g int) int {
	_, end, _ := m.Group(g)
	return end
}

// Submatches returns the start and end of every group, -1 for groups that
// did not participate.
func (m *Match) Submatches() []int {
	return append([]int(nil), m.slots...)
}

// Search finds the leftmost-first match in text and reports it in rune
// positions, or returns nil.
//
// The result is exactly what a Matcher started at 0, fed every rune of text
// and then ended reports. When the pattern has literal prefixes, Search
// skips ahead to the first place one occurs before starting the matcher.
//
// Example:
//
//	re := lore.MustCompile(`é+`)
//	m := re.Search("café")
//	println(m.Start(), m.End()) // 3 4
func (r *Regex) Search(text string) *Match {
	match := r.engine.Find([]byte(text))
	if match == nil {
		return nil
	}
	return &Match{slots: match.RuneSlots()}
}

// NewMatcher returns a Matcher for streaming input.
//
// Each Matcher owns its state and must be used by one goroutine at a time;
// create one per goroutine. Matchers of the same Regex share the compiled
// automaton.
func (r *Regex) NewMatcher() *Matcher {
	return r.engine.NewMatcher()
}
