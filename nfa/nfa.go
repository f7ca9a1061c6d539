package nfa

import (
	"fmt"
	"strings"
)

// StateID uniquely identifies an NFA state.
// It is an index into the state array of the NFA that owns it.
type StateID uint32

// InvalidState represents an unset successor.
const InvalidState StateID = 0xFFFFFFFF

// EndOfText is the end-of-stream sentinel fed by Matcher.End.
// It is never a valid codepoint, so only the `$` anchor matches it.
const EndOfText rune = -1

// StateKind identifies the type of NFA state and determines which fields are valid.
type StateKind uint8

const (
	// StateChar consumes exactly one rune.
	StateChar StateKind = iota

	// StateClass consumes one rune contained in a character class.
	StateClass

	// StateNClass consumes one rune not contained in a character class.
	StateNClass

	// StateFunc consumes one rune accepted by a builtin predicate.
	StateFunc

	// StateSplit is a zero-width fork; the left successor has priority.
	StateSplit

	// StateEmpty is a zero-width join with a single successor.
	StateEmpty

	// StateSave records the current position into a capture slot.
	StateSave

	// StateMatch is the accepting state.
	StateMatch
)

// String returns a human-readable representation of the StateKind
func (k StateKind) String() string {
	switch k {
	case StateChar:
		return "Char"
	case StateClass:
		return "Class"
	case StateNClass:
		return "NClass"
	case StateFunc:
		return "Func"
	case StateSplit:
		return "Split"
	case StateEmpty:
		return "Empty"
	case StateSave:
		return "Save"
	case StateMatch:
		return "Match"
	default:
		return fmt.Sprintf("Unknown(%d)", k)
	}
}

// IsZeroWidth reports whether states of this kind are traversed without
// consuming input.
func (k StateKind) IsZeroWidth() bool {
	return k == StateSplit || k == StateEmpty || k == StateSave
}

// State is one node of the compiled graph.
// The state's kind determines which fields are valid.
type State struct {
	kind StateKind

	// arg is the rune for Char, the class-data offset for Class/NClass,
	// the FuncID for Func and the slot for Save.
	arg int32

	// next is the successor of every kind except Split and Match.
	// For Split it is the higher priority successor.
	next StateID

	// right is the lower priority successor of a Split.
	right StateID
}

// Kind returns the state's type
func (s *State) Kind() StateKind {
	return s.kind
}

// IsMatch returns true if this is a match state
func (s *State) IsMatch() bool {
	return s.kind == StateMatch
}

// Next returns the successor of a single-successor state.
// Returns InvalidState for Split and Match states.
func (s *State) Next() StateID {
	if s.kind == StateSplit || s.kind == StateMatch {
		return InvalidState
	}
	return s.next
}

// Split returns the two successors of a Split state in priority order.
// Returns (InvalidState, InvalidState) for other kinds.
func (s *State) Split() (left, right StateID) {
	if s.kind == StateSplit {
		return s.next, s.right
	}
	return InvalidState, InvalidState
}

// Char returns the rune consumed by a Char state.
func (s *State) Char() (r rune, ok bool) {
	if s.kind == StateChar {
		return s.arg, true
	}
	return 0, false
}

// Func returns the predicate of a Func state.
func (s *State) Func() (id FuncID, ok bool) {
	if s.kind == StateFunc {
		return FuncID(s.arg), true
	}
	return 0, false
}

// ClassOffset returns the class-data offset of a Class or NClass state.
func (s *State) ClassOffset() (offset int, ok bool) {
	if s.kind == StateClass || s.kind == StateNClass {
		return int(s.arg), true
	}
	return 0, false
}

// Slot returns the capture slot written by a Save state.
func (s *State) Slot() (slot int, ok bool) {
	if s.kind == StateSave {
		return int(s.arg), true
	}
	return 0, false
}

// String returns a human-readable representation of the state
func (s *State) String() string {
	switch s.kind {
	case StateChar:
		if s.arg == EndOfText {
			return fmt.Sprintf("Char($) -> %d", s.next)
		}
		return fmt.Sprintf("Char(%q) -> %d", s.arg, s.next)
	case StateClass, StateNClass:
		return fmt.Sprintf("%s(@%d) -> %d", s.kind, s.arg, s.next)
	case StateFunc:
		return fmt.Sprintf("Func(%s) -> %d", FuncID(s.arg), s.next)
	case StateSplit:
		return fmt.Sprintf("Split -> [%d, %d]", s.next, s.right)
	case StateEmpty:
		return fmt.Sprintf("Empty -> %d", s.next)
	case StateSave:
		return fmt.Sprintf("Save(%d) -> %d", s.arg, s.next)
	case StateMatch:
		return "Match"
	default:
		return fmt.Sprintf("Unknown(%d)", s.kind)
	}
}

// NFA is a compiled pattern: an immutable state graph plus the class-data
// buffer its class states point into.
//
// An NFA is only produced by a successful compile and is never modified
// afterwards, so any number of Matchers on any goroutines may share it.
type NFA struct {
	states    []State
	classes   ClassData
	start     StateID
	anchored  bool
	numGroups int
	pattern   string
}

// Start returns the state the matcher seeds its closure from.
func (n *NFA) Start() StateID {
	return n.start
}

// OnlyAtBeginning reports whether the pattern began with `^`.
// Such a pattern only matches at the position passed to Matcher.Start,
// so callers should not restart it in the middle of a stream.
func (n *NFA) OnlyAtBeginning() bool {
	return n.anchored
}

// State returns the state with the given ID.
// Returns nil if the ID is invalid.
func (n *NFA) State(id StateID) *State {
	if id == InvalidState || int(id) >= len(n.states) {
		return nil
	}
	return &n.states[id]
}

// States returns the total number of states in the NFA
func (n *NFA) States() int {
	return len(n.states)
}

// Classes returns the packed class-data buffer.
func (n *NFA) Classes() ClassData {
	return n.classes
}

// NumGroups returns the number of capture groups including group 0.
func (n *NFA) NumGroups() int {
	return n.numGroups
}

// Pattern returns the source text the NFA was compiled from.
func (n *NFA) Pattern() string {
	return n.pattern
}

// String dumps the state graph, one state per line.
func (n *NFA) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "NFA{states: %d, start: %d, anchored: %v, groups: %d}\n",
		len(n.states), n.start, n.anchored, n.numGroups)
	for i := range n.states {
		fmt.Fprintf(&b, "%4d: %s\n", i, n.states[i].String())
	}
	return b.String()
}
