// Package testutil holds fakes shared by package tests.
package testutil

import "github.com/frudas24/vgamepad/internal/gamepad"

// Call records a single draw or update invocation.
type Call struct {
	Name    string
	Control string
	Snap    gamepad.Snapshot
}

// Recorder captures draw and update callbacks of one or more controls.
type Recorder struct {
	Calls []Call
}

// Attach routes the callbacks of ctrl into the recorder.
func (r *Recorder) Attach(ctrl *gamepad.Control) {
	id := ctrl.ID()
	ctrl.SetDrawShapeFunc(func(_ gamepad.Surface, snap gamepad.Snapshot) {
		r.Calls = append(r.Calls, Call{Name: "draw", Control: id, Snap: snap})
	})
	ctrl.SetUpdateCallback(func(snap gamepad.Snapshot) {
		r.Calls = append(r.Calls, Call{Name: "update", Control: id, Snap: snap})
	})
}

// Named returns the recorded calls with the given name.
func (r *Recorder) Named(name string) []Call {
	var out []Call
	for _, c := range r.Calls {
		if c.Name == name {
			out = append(out, c)
		}
	}
	return out
}

// Last returns the most recent call with the given name.
func (r *Recorder) Last(name string) (Call, bool) {
	calls := r.Named(name)
	if len(calls) == 0 {
		return Call{}, false
	}
	return calls[len(calls)-1], true
}

// Reset drops every recorded call.
func (r *Recorder) Reset() {
	r.Calls = nil
}
