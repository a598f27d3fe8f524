package gamepad

import (
	"errors"
	"fmt"
	"log"
	"sort"

	"github.com/frudas24/vgamepad/internal/claim"
	"github.com/frudas24/vgamepad/internal/input"
	"github.com/google/uuid"
)

var (
	// ErrNotBound reports an event dispatched before Bind.
	ErrNotBound = errors.New("input source not bound")
	// ErrAlreadyBound reports a second Bind call.
	ErrAlreadyBound = errors.New("input source already bound")
	// ErrNoInputSource reports a platform without touch or pointer input.
	ErrNoInputSource = errors.New("no touch or pointer input available")
	// ErrModalityNotBound reports an event of a modality other than the bound one.
	ErrModalityNotBound = errors.New("modality not bound")
	// ErrForeignTarget reports an activation delivered to another surface.
	ErrForeignTarget = errors.New("event target is not the control surface")
	// ErrUnknownControl reports a down event for a surface with no live control.
	ErrUnknownControl = errors.New("unknown control")
)

// Capabilities describes which input families the platform offers.
type Capabilities struct {
	Touch   bool
	Pointer bool
}

// Context holds the live controls, the claim registry and the bound input
// family. All methods must be called from one event delivery goroutine.
type Context struct {
	controls   map[string]*Control
	claims     *claim.Registry[*Control]
	newSurface SurfaceFactory
	bound      input.Modality
	logger     *log.Logger
	debug      bool
}

// ContextOption configures a Context.
type ContextOption func(*Context)

// WithLogger sets the logger anomalies are reported to.
func WithLogger(l *log.Logger) ContextOption {
	return func(c *Context) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithSurfaceFactory sets how surfaces for new controls are created.
func WithSurfaceFactory(f SurfaceFactory) ContextOption {
	return func(c *Context) {
		if f != nil {
			c.newSurface = f
		}
	}
}

// WithDebug enables claim and activation traces.
func WithDebug(debug bool) ContextOption {
	return func(c *Context) { c.debug = debug }
}

// NewContext returns an unbound context with no controls.
func NewContext(opts ...ContextOption) *Context {
	c := &Context{
		controls:   make(map[string]*Control),
		newSurface: CanvasFactory,
		logger:     log.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.claims = claim.New[*Control](c.logger)
	c.claims.SetDebug(c.debug)
	return c
}

// Bind selects the input family once: touch when available, else pointer.
func (c *Context) Bind(caps Capabilities) (input.Modality, error) {
	if c.bound != input.ModalityUnknown {
		return c.bound, ErrAlreadyBound
	}
	switch {
	case caps.Touch:
		c.bound = input.ModalityTouch
	case caps.Pointer:
		c.bound = input.ModalityPointer
	default:
		return input.ModalityUnknown, ErrNoInputSource
	}
	c.logger.Printf("gamepad: bound to %s events", c.bound)
	return c.bound, nil
}

// Bound returns the selected input family.
func (c *Context) Bound() input.Modality {
	return c.bound
}

// NewControl creates and registers a control with a width x height surface.
func (c *Context) NewControl(width, height int) (*Control, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: surface size %dx%d must be greater than zero", ErrConfiguration, width, height)
	}
	id := uuid.NewString()
	ctrl := &Control{
		id:      id,
		surface: c.newSurface(id, width, height),
	}
	c.controls[id] = ctrl
	return ctrl, nil
}

// Control returns the live control with the given id.
func (c *Context) Control(id string) (*Control, bool) {
	ctrl, ok := c.controls[id]
	return ctrl, ok
}

// Controls returns the live controls ordered by id.
func (c *Context) Controls() []*Control {
	out := make([]*Control, 0, len(c.controls))
	for _, ctrl := range c.controls {
		out = append(out, ctrl)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].id < out[j].id })
	return out
}

// Remove unregisters a control and releases every claim it holds.
func (c *Context) Remove(id string) bool {
	ctrl, ok := c.controls[id]
	if !ok {
		return false
	}
	delete(c.controls, id)
	if freed := c.claims.ReleaseOwner(ctrl); len(freed) > 0 {
		c.logger.Printf("gamepad: removed %s while holding %v", id, freed)
	}
	ctrl.active = false
	return true
}

// ReleaseAll ends every live gesture. Each control that held one snaps back,
// goes idle and publishes its final state. It returns the released count.
func (c *Context) ReleaseAll() int {
	n := 0
	for _, ctrl := range c.Controls() {
		freed := c.claims.ReleaseOwner(ctrl)
		if len(freed) == 0 {
			continue
		}
		n += len(freed)
		c.finish(ctrl)
	}
	return n
}

// Claims returns the number of live gesture claims.
func (c *Context) Claims() int {
	return c.claims.Len()
}

// Owner returns the control owning the gesture of ev.
func (c *Context) Owner(ev input.Event) (*Control, bool) {
	id, err := input.Extract(ev)
	if err != nil {
		return nil, false
	}
	return c.claims.Lookup(id)
}

// Dispatch routes ev to Activate, Move or Deactivate by phase.
func (c *Context) Dispatch(ev input.Event) error {
	switch ev.Phase {
	case input.PhaseDown:
		if err := c.checkModality(ev); err != nil {
			return err
		}
		ctrl, ok := c.controls[ev.Target]
		if !ok {
			return fmt.Errorf("%w: %q", ErrUnknownControl, ev.Target)
		}
		return c.Activate(ctrl, ev)
	case input.PhaseMove:
		return c.Move(ev)
	case input.PhaseUp, input.PhaseCancel:
		return c.Deactivate(ev)
	default:
		return fmt.Errorf("gamepad: unknown phase %v", ev.Phase)
	}
}

// Activate starts tracking the gesture of ev on ctrl. ev must target the
// control surface.
func (c *Context) Activate(ctrl *Control, ev input.Event) error {
	if err := c.checkModality(ev); err != nil {
		return err
	}
	if _, live := c.controls[ctrl.id]; !live {
		return fmt.Errorf("%w: %s was removed", ErrUnknownControl, ctrl.id)
	}
	if !ctrl.surface.IsTarget(ev.Target) {
		return fmt.Errorf("%w: %q", ErrForeignTarget, ev.Target)
	}
	id, err := input.Extract(ev)
	if err != nil {
		return err
	}

	ctrl.active = true
	if prev, conflict := c.claims.Claim(id, ctrl); conflict && prev != ctrl {
		c.dropStale(prev)
	}
	if c.debug {
		c.logger.Printf("gamepad: %s active", ctrl.id)
	}
	ctrl.redraw(ctrl.Snapshot())
	return nil
}

// Move updates the axes of the control owning the gesture of ev.
func (c *Context) Move(ev input.Event) error {
	if err := c.checkModality(ev); err != nil {
		return err
	}
	id, err := input.Extract(ev)
	if err != nil {
		return err
	}
	ctrl, ok := c.claims.Lookup(id)
	if !ok || !ctrl.active {
		return nil
	}

	ctrl.track(ev.Position())
	snap := ctrl.Snapshot()
	ctrl.redraw(snap)
	if ev.Trusted {
		ctrl.notify(snap)
	}
	return nil
}

// Deactivate ends the gesture of ev. The owning control snaps back and goes
// idle once it holds no other gesture.
func (c *Context) Deactivate(ev input.Event) error {
	if err := c.checkModality(ev); err != nil {
		return err
	}
	id, err := input.Extract(ev)
	if err != nil {
		return err
	}
	ctrl, ok := c.claims.Release(id)
	if !ok {
		return nil
	}
	if c.claims.Count(ctrl) > 0 {
		if c.debug {
			c.logger.Printf("gamepad: %s released %s, still tracking other gestures", ctrl.id, id)
		}
		return nil
	}
	c.finish(ctrl)
	if c.debug {
		c.logger.Printf("gamepad: %s inactive", ctrl.id)
	}
	return nil
}

// finish snaps the control back, marks it idle and publishes the final state.
func (c *Context) finish(ctrl *Control) {
	ctrl.snapBack()
	ctrl.active = false
	snap := ctrl.Snapshot()
	ctrl.redraw(snap)
	ctrl.notify(snap)
}

// dropStale idles a control that lost its last claim to a conflicting activation.
func (c *Context) dropStale(prev *Control) {
	if c.claims.Count(prev) > 0 || !prev.active {
		return
	}
	c.finish(prev)
}

// checkModality rejects events outside the bound input family.
func (c *Context) checkModality(ev input.Event) error {
	if c.bound == input.ModalityUnknown {
		return ErrNotBound
	}
	if ev.Modality != c.bound {
		return fmt.Errorf("%w: %s", ErrModalityNotBound, ev.Modality)
	}
	return nil
}
