package statemachine

import (
	"context"
	"errors"
	"fmt"

	loopfsm "github.com/looplab/fsm"
)

// Transition declares that Event moves an entity from Src to Dst.
type Transition struct {
	Event string
	Src   string
	Dst   string
}

// TransitionError is returned when an event is not valid from the current state.
type TransitionError struct {
	Current string
	Event   string
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("event %q is not valid from state %q", e.Event, e.Current)
}

// Machine validates state transitions against a fixed transition table.
// It is immutable after construction and safe for concurrent use; looplab/fsm
// tracks current state internally, so Apply builds a short-lived FSM per call.
type Machine struct {
	events []loopfsm.EventDesc
	states map[string]struct{}
}

// New builds a Machine from a transition table. Transitions sharing the same
// event and destination are consolidated into one event with multiple sources.
func New(transitions []Transition) *Machine {
	type key struct {
		event string
		dst   string
	}
	grouped := make(map[key][]string)
	order := make([]key, 0, len(transitions))
	states := make(map[string]struct{})

	for _, t := range transitions {
		k := key{event: t.Event, dst: t.Dst}
		if _, exists := grouped[k]; !exists {
			order = append(order, k)
		}
		grouped[k] = append(grouped[k], t.Src)
		states[t.Src] = struct{}{}
		states[t.Dst] = struct{}{}
	}

	events := make([]loopfsm.EventDesc, 0, len(order))
	for _, k := range order {
		events = append(events, loopfsm.EventDesc{
			Name: k.event,
			Src:  grouped[k],
			Dst:  k.dst,
		})
	}

	return &Machine{events: events, states: states}
}

// Apply validates event against current and returns the destination state.
func (m *Machine) Apply(ctx context.Context, current, event string) (string, error) {
	machine := loopfsm.NewFSM(current, m.events, nil)

	if err := machine.Event(ctx, event); err != nil {
		var invalidEvent loopfsm.InvalidEventError
		var noTransition loopfsm.NoTransitionError
		if errors.As(err, &invalidEvent) || errors.As(err, &noTransition) {
			return "", &TransitionError{Current: current, Event: event}
		}
		return "", fmt.Errorf("apply event %q: %w", event, err)
	}

	return machine.Current(), nil
}

// Can reports whether event is valid from current without applying it.
func (m *Machine) Can(current, event string) bool {
	return loopfsm.NewFSM(current, m.events, nil).Can(event)
}

// IsState reports whether value is a known state of the machine.
func (m *Machine) IsState(value string) bool {
	_, ok := m.states[value]
	return ok
}
