package nfa

import (
	"fmt"

	"github.com/signaldust/lore/internal/conv"
)

// Builder constructs NFAs incrementally using a low-level API.
// This provides full control over NFA construction and is used by the compiler.
type Builder struct {
	states    []State
	classes   ClassData
	start     StateID
	anchored  bool
	numGroups int
}

// NewBuilder creates a new NFA builder with default capacity
func NewBuilder() *Builder {
	return NewBuilderWithCapacity(16)
}

// NewBuilderWithCapacity creates a new NFA builder with specified initial capacity
func NewBuilderWithCapacity(capacity int) *Builder {
	return &Builder{
		states: make([]State, 0, capacity),
		start:  InvalidState,
	}
}

func (b *Builder) add(s State) StateID {
	id := StateID(conv.IntToUint32(len(b.states)))
	b.states = append(b.states, s)
	return id
}

// AddChar adds a state consuming exactly r.
func (b *Builder) AddChar(r rune, next StateID) StateID {
	return b.add(State{kind: StateChar, arg: r, next: next})
}

// AddClass adds a class state over the region at offset in the class data.
// negated selects NClass.
func (b *Builder) AddClass(offset int, negated bool, next StateID) StateID {
	kind := StateClass
	if negated {
		kind = StateNClass
	}
	return b.add(State{kind: kind, arg: conv.IntToRune(offset), next: next})
}

// AddFunc adds a state consuming one rune accepted by f.
func (b *Builder) AddFunc(f FuncID, next StateID) StateID {
	return b.add(State{kind: StateFunc, arg: int32(f), next: next})
}

// AddSplit adds a fork; left is explored before right.
func (b *Builder) AddSplit(left, right StateID) StateID {
	return b.add(State{kind: StateSplit, next: left, right: right})
}

// AddEmpty adds a zero-width join.
func (b *Builder) AddEmpty(next StateID) StateID {
	return b.add(State{kind: StateEmpty, next: next})
}

// AddSave adds a state recording the position into slot.
func (b *Builder) AddSave(slot int, next StateID) StateID {
	return b.add(State{kind: StateSave, arg: conv.IntToRune(slot), next: next})
}

// AddMatch adds a match (accepting) state and returns its ID
func (b *Builder) AddMatch() StateID {
	return b.add(State{kind: StateMatch, next: InvalidState, right: InvalidState})
}

// addClassData serializes c into the shared class buffer and returns its offset.
func (b *Builder) addClassData(c *classBuilder) int {
	var off int
	b.classes, off = c.appendTo(b.classes)
	return off
}

// Patch updates the successor of a single-successor state. This is used
// during compilation to resolve forward references.
func (b *Builder) Patch(stateID, target StateID) error {
	if int(stateID) >= len(b.states) {
		return &BuildError{
			Message: "state ID out of bounds",
			StateID: stateID,
		}
	}

	s := &b.states[stateID]
	switch s.kind {
	case StateSplit, StateMatch:
		return &BuildError{
			Message: fmt.Sprintf("cannot patch state of kind %s", s.kind),
			StateID: stateID,
		}
	default:
		s.next = target
		return nil
	}
}

// PatchSplit updates the successors of a Split state.
func (b *Builder) PatchSplit(stateID StateID, left, right StateID) error {
	if int(stateID) >= len(b.states) {
		return &BuildError{
			Message: "state ID out of bounds",
			StateID: stateID,
		}
	}

	s := &b.states[stateID]
	if s.kind != StateSplit {
		return &BuildError{
			Message: fmt.Sprintf("expected Split state, got %s", s.kind),
			StateID: stateID,
		}
	}

	s.next = left
	s.right = right
	return nil
}

// SetStart sets the state the matcher seeds from.
func (b *Builder) SetStart(start StateID) {
	b.start = start
}

// SetAnchored records whether the pattern was written with a leading `^`.
func (b *Builder) SetAnchored(anchored bool) {
	b.anchored = anchored
}

// SetNumGroups records the number of capture groups including group 0.
func (b *Builder) SetNumGroups(n int) {
	b.numGroups = n
}

// States returns the current number of states
func (b *Builder) States() int {
	return len(b.states)
}

// Validate checks that the NFA is well-formed:
//   - the start state is valid
//   - every successor points to an existing state
//   - every class offset points inside the class buffer
func (b *Builder) Validate() error {
	if b.start == InvalidState {
		return &BuildError{Message: "start state not set", StateID: InvalidState}
	}
	if int(b.start) >= len(b.states) {
		return &BuildError{
			Message: "start state out of bounds",
			StateID: b.start,
		}
	}

	for i, s := range b.states {
		id := StateID(i)
		switch s.kind {
		case StateMatch:
			continue
		case StateSplit:
			if int(s.right) >= len(b.states) {
				return &BuildError{
					Message: fmt.Sprintf("invalid right state %d", s.right),
					StateID: id,
				}
			}
		case StateClass, StateNClass:
			if int(s.arg)+3 > len(b.classes) {
				return &BuildError{
					Message: fmt.Sprintf("class offset %d out of bounds", s.arg),
					StateID: id,
				}
			}
		case StateSave:
			if s.arg < 0 || int(s.arg) >= MaxSlots {
				return &BuildError{
					Message: fmt.Sprintf("invalid capture slot %d", s.arg),
					StateID: id,
				}
			}
		}
		if int(s.next) >= len(b.states) {
			return &BuildError{
				Message: fmt.Sprintf("invalid next state %d", s.next),
				StateID: id,
			}
		}
	}

	return nil
}

// Build validates and returns the constructed NFA.
func (b *Builder) Build() (*NFA, error) {
	if err := b.Validate(); err != nil {
		return nil, err
	}
	return &NFA{
		states:    b.states,
		classes:   b.classes,
		start:     b.start,
		anchored:  b.anchored,
		numGroups: b.numGroups,
	}, nil
}
