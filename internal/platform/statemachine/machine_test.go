package statemachine

import (
	"errors"
	"testing"
)

func testMachine() *Machine {
	return New([]Transition{
		{Event: "submit", Src: "PENDING", Dst: "SUBMITTED"},
		{Event: "submit", Src: "REJECTED", Dst: "SUBMITTED"},
		{Event: "approve", Src: "SUBMITTED", Dst: "APPROVED"},
		{Event: "reject", Src: "SUBMITTED", Dst: "REJECTED"},
	})
}

func TestMachine_Apply_ValidTransition(t *testing.T) {
	m := testMachine()

	next, err := m.Apply(t.Context(), "PENDING", "submit")
	if err != nil {
		t.Fatalf("apply submit: %v", err)
	}
	if next != "SUBMITTED" {
		t.Fatalf("unexpected destination: %s", next)
	}
}

func TestMachine_Apply_ConsolidatedSources(t *testing.T) {
	m := testMachine()

	next, err := m.Apply(t.Context(), "REJECTED", "submit")
	if err != nil {
		t.Fatalf("apply resubmit: %v", err)
	}
	if next != "SUBMITTED" {
		t.Fatalf("unexpected destination: %s", next)
	}
}

func TestMachine_Apply_InvalidSourceState(t *testing.T) {
	m := testMachine()

	_, err := m.Apply(t.Context(), "APPROVED", "submit")
	var transitionErr *TransitionError
	if !errors.As(err, &transitionErr) {
		t.Fatalf("expected TransitionError, got %v", err)
	}
	if transitionErr.Current != "APPROVED" || transitionErr.Event != "submit" {
		t.Fatalf("unexpected error context: %+v", transitionErr)
	}
}

func TestMachine_Can(t *testing.T) {
	m := testMachine()

	if !m.Can("SUBMITTED", "approve") {
		t.Fatal("expected approve to be valid from SUBMITTED")
	}
	if m.Can("PENDING", "approve") {
		t.Fatal("expected approve to be invalid from PENDING")
	}
}

func TestMachine_IsState(t *testing.T) {
	m := testMachine()

	if !m.IsState("REJECTED") {
		t.Fatal("expected REJECTED to be a known state")
	}
	if m.IsState("UNKNOWN") {
		t.Fatal("did not expect UNKNOWN to be a known state")
	}
}
