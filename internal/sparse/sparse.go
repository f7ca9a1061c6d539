// Package sparse provides a sparse set of NFA state ids.
//
// A sparse set supports O(1) insertion, membership testing and clearing while
// keeping a dense list of its elements in insertion order. The matcher uses it
// for its worklists: the dense order is the priority order of live branches,
// so iteration must never reorder elements.
package sparse

// Set is a set of uint32 values below a fixed capacity.
// The sparse array maps a value to its index in the dense array; a value is a
// member only if that index is in range and points back at the value, so
// Clear never has to touch the sparse array.
type Set struct {
	sparse []uint32
	dense  []uint32
}

// New creates an empty set able to hold values in [0, capacity).
func New(capacity uint32) *Set {
	return &Set{
		sparse: make([]uint32, capacity),
		dense:  make([]uint32, 0, capacity),
	}
}

// Insert appends value to the set and reports whether it was added.
// Inserting a value that is already present is a no-op.
// Panics if value >= Cap().
func (s *Set) Insert(value uint32) bool {
	if s.Contains(value) {
		return false
	}
	s.sparse[value] = uint32(len(s.dense))
	s.dense = append(s.dense, value)
	return true
}

// Contains reports whether value is in the set.
func (s *Set) Contains(value uint32) bool {
	if uint64(value) >= uint64(len(s.sparse)) {
		return false
	}
	idx := s.sparse[value]
	return uint64(idx) < uint64(len(s.dense)) && s.dense[idx] == value
}

// Clear removes all elements in O(1).
func (s *Set) Clear() {
	s.dense = s.dense[:0]
}

// Len returns the number of elements.
func (s *Set) Len() int {
	return len(s.dense)
}

// Cap returns the exclusive upper bound of storable values.
func (s *Set) Cap() int {
	return len(s.sparse)
}

// IsEmpty reports whether the set has no elements.
func (s *Set) IsEmpty() bool {
	return len(s.dense) == 0
}

// Values returns the elements in insertion order.
// The returned slice is valid until the next mutation.
func (s *Set) Values() []uint32 {
	return s.dense
}
