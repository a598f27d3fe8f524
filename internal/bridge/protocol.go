// Package bridge connects browser canvases to gamepad controls over websockets.
package bridge

import (
	"fmt"

	"github.com/frudas24/vgamepad/internal/gamepad"
	"github.com/frudas24/vgamepad/internal/input"
)

// Touch is one touch point sent by the client.
type Touch struct {
	ID int     `json:"id"`
	X  float64 `json:"x"`
	Y  float64 `json:"y"`
}

// Caps are the input families a client page can produce.
type Caps struct {
	Touch   bool `json:"touch"`
	Pointer bool `json:"pointer"`
}

// Message is a client-to-server websocket payload. T is a DOM event type
// name (pointerdown, touchmove, ...), "rect" or "caps".
type Message struct {
	T       string        `json:"t"`
	Target  string        `json:"target,omitempty"`
	Button  int           `json:"button,omitempty"`
	PID     int           `json:"pid,omitempty"`
	X       float64       `json:"x,omitempty"`
	Y       float64       `json:"y,omitempty"`
	Touches []Touch       `json:"touches,omitempty"`
	Trusted bool          `json:"trusted,omitempty"`
	Rect    *gamepad.Rect `json:"rect,omitempty"`
	Caps    *Caps         `json:"caps,omitempty"`
}

// Frame types sent from server to clients.
const (
	FrameBind   = "bind"
	FrameLayout = "layout"
	FrameClear  = "clear"
	FrameDraw   = "draw"
	FrameUpdate = "update"
)

// ControlInfo describes a live control to clients.
type ControlInfo struct {
	ID     string           `json:"id"`
	Name   string           `json:"name"`
	Width  int              `json:"w"`
	Height int              `json:"h"`
	Axes   []string         `json:"axes"`
	Active bool             `json:"active"`
	Values gamepad.Snapshot `json:"values"`
}

// Status is a point-in-time view of the binding and every control.
type Status struct {
	Mode     string        `json:"mode"`
	Claims   int           `json:"claims"`
	Controls []ControlInfo `json:"controls"`
}

// Frame is a server-to-client websocket payload.
type Frame struct {
	T        string           `json:"t"`
	ID       string           `json:"id,omitempty"`
	Mode     string           `json:"mode,omitempty"`
	Axes     gamepad.Snapshot `json:"axes,omitempty"`
	Controls []ControlInfo    `json:"controls,omitempty"`
}

// ToEvent converts an input message into a raw input event.
func (m Message) ToEvent() (input.Event, error) {
	modality, phase, ok := input.ParseType(m.T)
	if !ok {
		return input.Event{}, fmt.Errorf("%w: %q", input.ErrUnrecognizedModality, m.T)
	}
	ev := input.Event{
		Modality:  modality,
		Phase:     phase,
		Target:    m.Target,
		Button:    m.Button,
		PointerID: m.PID,
		ClientX:   m.X,
		ClientY:   m.Y,
		Trusted:   m.Trusted,
	}
	if len(m.Touches) > 0 {
		ev.Touches = make([]input.TouchPoint, len(m.Touches))
		for i, t := range m.Touches {
			ev.Touches[i] = input.TouchPoint{ID: t.ID, ClientX: t.X, ClientY: t.Y}
		}
	}
	return ev, nil
}
