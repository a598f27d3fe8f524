// Package input classifies raw pointer, touch and mouse events and derives
// gesture identities from them.
package input

// Modality identifies the input family an event belongs to.
type Modality uint8

const (
	// ModalityUnknown is the zero value and never extractable.
	ModalityUnknown Modality = iota
	// ModalityMouse is a mouse button gesture.
	ModalityMouse
	// ModalityTouch is a touch point gesture.
	ModalityTouch
	// ModalityPointer is a unified pointer gesture.
	ModalityPointer
)

// String returns the lowercase modality name.
func (m Modality) String() string {
	switch m {
	case ModalityMouse:
		return "mouse"
	case ModalityTouch:
		return "touch"
	case ModalityPointer:
		return "pointer"
	default:
		return "unknown"
	}
}

// Phase is the position of an event within its gesture.
type Phase uint8

const (
	// PhaseDown starts a gesture.
	PhaseDown Phase = iota
	// PhaseMove continues a gesture.
	PhaseMove
	// PhaseUp ends a gesture.
	PhaseUp
	// PhaseCancel aborts a gesture.
	PhaseCancel
)

// String returns the lowercase phase name.
func (p Phase) String() string {
	switch p {
	case PhaseDown:
		return "down"
	case PhaseMove:
		return "move"
	case PhaseUp:
		return "up"
	case PhaseCancel:
		return "cancel"
	default:
		return "unknown"
	}
}

// TouchPoint is one contact in a touch event.
type TouchPoint struct {
	ID      int
	ClientX float64
	ClientY float64
}

// Event is a raw input event as delivered by the platform.
type Event struct {
	Modality Modality
	Phase    Phase
	// Target is the id of the surface the platform delivered the event to.
	Target string
	// Button is the mouse button index.
	Button int
	// PointerID identifies a unified pointer stream.
	PointerID int
	// Touches lists the touch points carried by a touch event.
	Touches []TouchPoint
	ClientX float64
	ClientY float64
	// Trusted is false for synthetic events replayed by code.
	Trusted bool
}

// Position returns the client coordinates the gesture is at. Touch events
// report their first touch point.
func (e Event) Position() (x, y float64) {
	if e.Modality == ModalityTouch && len(e.Touches) > 0 {
		return e.Touches[0].ClientX, e.Touches[0].ClientY
	}
	return e.ClientX, e.ClientY
}

type typeKey struct {
	modality Modality
	phase    Phase
}

var domTypes = map[string]typeKey{
	"mousedown":     {ModalityMouse, PhaseDown},
	"mousemove":     {ModalityMouse, PhaseMove},
	"mouseup":       {ModalityMouse, PhaseUp},
	"touchstart":    {ModalityTouch, PhaseDown},
	"touchmove":     {ModalityTouch, PhaseMove},
	"touchend":      {ModalityTouch, PhaseUp},
	"touchcancel":   {ModalityTouch, PhaseCancel},
	"pointerdown":   {ModalityPointer, PhaseDown},
	"pointermove":   {ModalityPointer, PhaseMove},
	"pointerup":     {ModalityPointer, PhaseUp},
	"pointercancel": {ModalityPointer, PhaseCancel},
}

// ParseType maps a DOM event type name to its modality and phase.
func ParseType(name string) (Modality, Phase, bool) {
	k, ok := domTypes[name]
	if !ok {
		return ModalityUnknown, 0, false
	}
	return k.modality, k.phase, true
}
