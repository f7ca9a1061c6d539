package meta

// Match is a successful search result with the boundaries of every group.
//
// Each group has a pair of byte offsets into the haystack and a pair of rune
// positions, the count of runes before the boundary. Groups that did not
// participate report -1 for both.
//
// Example:
//
//	m := engine.Find([]byte("user@example.com"))
//	println(m.String())            // "user@example.com"
//	println(m.GroupString(1))      // "user"
//	println(m.RuneStart(), m.End()) // 0 16
type Match struct {
	haystack []byte
	slots    []int
	runes    []int
}

// NewMatch creates a Match over haystack.
//
// slots holds byte offsets and runes holds rune positions, two per group
// with group 0 first. Both slices are retained, not copied.
//
// The haystack is stored by reference (not copied).
// Callers must ensure the haystack remains valid for the lifetime of the Match.
func NewMatch(haystack []byte, slots, runes []int) *Match {
	return &Match{
		haystack: haystack,
		slots:    slots,
		runes:    runes,
	}
}

// Start returns the byte offset where the match begins, or -1.
func (m *Match) Start() int {
	return m.slot(0)
}

// End returns the byte offset just past the match, or -1.
func (m *Match) End() int {
	return m.slot(1)
}

// RuneStart returns the rune position where the match begins, or -1.
func (m *Match) RuneStart() int {
	if len(m.runes) < 2 {
		return -1
	}
	return m.runes[0]
}

// RuneEnd returns the rune position just past the match, or -1.
func (m *Match) RuneEnd() int {
	if len(m.runes) < 2 {
		return -1
	}
	return m.runes[1]
}

// Len returns the length of the match in bytes.
func (m *Match) Len() int {
	return m.End() - m.Start()
}

// Bytes returns the matched bytes as a view into the haystack.
func (m *Match) Bytes() []byte {
	return m.Group(0)
}

// String returns the matched text.
func (m *Match) String() string {
	return string(m.Bytes())
}

// NumCaptures returns the number of groups, group 0 included.
func (m *Match) NumCaptures() int {
	return len(m.slots) / 2
}

// Group returns the text of group i, or nil if the group is out of range or
// did not participate.
func (m *Match) Group(i int) []byte {
	idx := m.GroupIndex(i)
	if idx == nil {
		return nil
	}
	return m.haystack[idx[0]:idx[1]]
}

// GroupString is Group as a string; unmatched groups give "".
func (m *Match) GroupString(i int) string {
	return string(m.Group(i))
}

// GroupIndex returns the byte offsets [start, end] of group i, or nil.
func (m *Match) GroupIndex(i int) []int {
	if i < 0 || 2*i+1 >= len(m.slots) {
		return nil
	}
	start, end := m.slots[2*i], m.slots[2*i+1]
	if start < 0 || end < start || end > len(m.haystack) {
		return nil
	}
	return []int{start, end}
}

// RuneIndex returns the rune positions [start, end] of group i, or nil.
func (m *Match) RuneIndex(i int) []int {
	if i < 0 || 2*i+1 >= len(m.runes) || m.runes[2*i] < 0 {
		return nil
	}
	return []int{m.runes[2*i], m.runes[2*i+1]}
}

// AllGroups returns the text of every group; unmatched groups are nil.
func (m *Match) AllGroups() [][]byte {
	out := make([][]byte, m.NumCaptures())
	for i := range out {
		out[i] = m.Group(i)
	}
	return out
}

// AllGroupStrings returns the text of every group; unmatched groups are "".
func (m *Match) AllGroupStrings() []string {
	out := make([]string, m.NumCaptures())
	for i := range out {
		out[i] = m.GroupString(i)
	}
	return out
}

// Slots returns the byte offsets of every group, two per group.
// The slice is shared with the Match.
func (m *Match) Slots() []int {
	return m.slots
}

// RuneSlots returns the rune positions of every group, two per group.
// The slice is shared with the Match.
func (m *Match) RuneSlots() []int {
	return m.runes
}

func (m *Match) slot(i int) int {
	if i >= len(m.slots) {
		return -1
	}
	return m.slots[i]
}
