package machine

import (
	"errors"
	"fmt"
	"slices"
)

type State interface {
	~string
}

// Allowable maps where a from state is allowed to transition to
type Allowable[S State] struct {
	from S
	to   []S
}

// StateMachine tracks the current state of a record and the transitions it may take
type StateMachine[S State] struct {
	current     S
	transitions []Allowable[S]
}

var (
	ErrInvalidTransition = errors.New("invalid state transition")
)

// TransitionBuilder helps in creating a from-to relationship for state transitions
type TransitionBuilder[S State] struct {
	transition Allowable[S]
}

func New[S State](currentState S, transitions ...Allowable[S]) *StateMachine[S] {
	return &StateMachine[S]{current: currentState, transitions: transitions}
}

// From initializes a transition from a specific state
func From[S State](from S) *TransitionBuilder[S] {
	return &TransitionBuilder[S]{transition: Allowable[S]{from: from}}
}

// To sets the possible destination states and returns the configured transition
func (tb *TransitionBuilder[S]) To(to ...S) Allowable[S] {
	tb.transition.to = to
	return tb.transition
}

// Current returns the state the machine is in
func (m *StateMachine[S]) Current() S {
	return m.current
}

// CanTransition reports whether the machine may move to s. Staying in the current state is always allowed.
func (m *StateMachine[S]) CanTransition(s S) bool {
	if s == m.current {
		return true
	}

	for _, transition := range m.transitions {
		if transition.from != m.current {
			continue
		}

		if slices.Contains(transition.to, s) {
			return true
		}
	}

	return false
}

// ToState moves the machine to s if the transition is allowed
func (m *StateMachine[S]) ToState(s S) error {
	if !m.CanTransition(s) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, m.current, s)
	}

	m.current = s
	return nil
}
