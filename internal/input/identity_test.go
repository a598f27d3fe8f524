package input

import (
	"errors"
	"testing"
)

// TestExtract_PerModality verifies each modality keys on its own sub-identifier.
func TestExtract_PerModality(t *testing.T) {
	cases := []struct {
		ev   Event
		want Identity
		str  string
	}{
		{Event{Modality: ModalityMouse, Button: 2, PointerID: 9}, Identity{ModalityMouse, 2}, "m2"},
		{Event{Modality: ModalityTouch, Touches: []TouchPoint{{ID: 7}, {ID: 8}}}, Identity{ModalityTouch, 7}, "t7"},
		{Event{Modality: ModalityPointer, PointerID: 3, Button: 1}, Identity{ModalityPointer, 3}, "p3"},
	}
	for _, tc := range cases {
		got, err := Extract(tc.ev)
		if err != nil {
			t.Fatalf("Extract failed: %v", err)
		}
		if got != tc.want || got.String() != tc.str {
			t.Fatalf("expected %v (%s), got %v (%s)", tc.want, tc.str, got, got.String())
		}
	}
}

// TestExtract_StableAcrossPhases verifies down, move and up of one gesture share an identity.
func TestExtract_StableAcrossPhases(t *testing.T) {
	var ids []Identity
	for _, ph := range []Phase{PhaseDown, PhaseMove, PhaseUp} {
		id, err := Extract(Event{Modality: ModalityTouch, Phase: ph, Touches: []TouchPoint{{ID: 4, ClientX: float64(ph)}}})
		if err != nil {
			t.Fatalf("Extract failed: %v", err)
		}
		ids = append(ids, id)
	}
	if ids[0] != ids[1] || ids[1] != ids[2] {
		t.Fatalf("expected a stable identity, got %v", ids)
	}
}

// TestExtract_DistinguishesModalities verifies equal sub-ids of different modalities differ.
func TestExtract_DistinguishesModalities(t *testing.T) {
	a, _ := Extract(Event{Modality: ModalityPointer, PointerID: 1})
	b, _ := Extract(Event{Modality: ModalityMouse, Button: 1})
	if a == b {
		t.Fatalf("expected distinct identities, got %v and %v", a, b)
	}
}

// TestExtract_Unrecognized verifies unknown modalities and empty touch lists fail.
func TestExtract_Unrecognized(t *testing.T) {
	if _, err := Extract(Event{}); !errors.Is(err, ErrUnrecognizedModality) {
		t.Fatalf("expected ErrUnrecognizedModality, got %v", err)
	}
	_, err := Extract(Event{Modality: ModalityTouch})
	if !errors.Is(err, ErrNoTouchPoint) || !errors.Is(err, ErrUnrecognizedModality) {
		t.Fatalf("expected ErrNoTouchPoint, got %v", err)
	}
}

// TestParseType_KnownAndUnknown verifies DOM type names map to modality and phase.
func TestParseType_KnownAndUnknown(t *testing.T) {
	m, p, ok := ParseType("touchcancel")
	if !ok || m != ModalityTouch || p != PhaseCancel {
		t.Fatalf("expected touch/cancel, got %v/%v ok=%v", m, p, ok)
	}
	m, p, ok = ParseType("pointerdown")
	if !ok || m != ModalityPointer || p != PhaseDown {
		t.Fatalf("expected pointer/down, got %v/%v ok=%v", m, p, ok)
	}
	if _, _, ok := ParseType("keydown"); ok {
		t.Fatalf("expected keydown to be rejected")
	}
}

// TestPosition_TouchUsesFirstPoint verifies touch coordinates come from the first point.
func TestPosition_TouchUsesFirstPoint(t *testing.T) {
	ev := Event{Modality: ModalityTouch, ClientX: 1, ClientY: 2, Touches: []TouchPoint{{ID: 1, ClientX: 30, ClientY: 40}}}
	x, y := ev.Position()
	if x != 30 || y != 40 {
		t.Fatalf("expected (30,40), got (%v,%v)", x, y)
	}
	ev = Event{Modality: ModalityPointer, ClientX: 5, ClientY: 6}
	x, y = ev.Position()
	if x != 5 || y != 6 {
		t.Fatalf("expected (5,6), got (%v,%v)", x, y)
	}
}
