package input

import (
	"errors"
	"fmt"
)

var (
	// ErrUnrecognizedModality reports an event that cannot be classified.
	ErrUnrecognizedModality = errors.New("unrecognized input modality")
	// ErrNoTouchPoint reports a touch event without any touch point.
	ErrNoTouchPoint = fmt.Errorf("%w: touch event without touch points", ErrUnrecognizedModality)
)

// Identity is a key that stays the same from down to up for one gesture.
type Identity struct {
	Modality Modality
	ID       int
}

// String renders the identity as m<button>, t<touch id> or p<pointer id>.
func (id Identity) String() string {
	switch id.Modality {
	case ModalityMouse:
		return fmt.Sprintf("m%d", id.ID)
	case ModalityTouch:
		return fmt.Sprintf("t%d", id.ID)
	case ModalityPointer:
		return fmt.Sprintf("p%d", id.ID)
	default:
		return fmt.Sprintf("?%d", id.ID)
	}
}

// Extract derives the gesture identity of ev.
func Extract(ev Event) (Identity, error) {
	switch ev.Modality {
	case ModalityMouse:
		return Identity{Modality: ModalityMouse, ID: ev.Button}, nil
	case ModalityTouch:
		if len(ev.Touches) == 0 {
			return Identity{}, ErrNoTouchPoint
		}
		return Identity{Modality: ModalityTouch, ID: ev.Touches[0].ID}, nil
	case ModalityPointer:
		return Identity{Modality: ModalityPointer, ID: ev.PointerID}, nil
	default:
		return Identity{}, fmt.Errorf("%w: %v", ErrUnrecognizedModality, ev.Modality)
	}
}
