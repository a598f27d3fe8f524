package gamepad

import (
	"fmt"

	"github.com/frudas24/vgamepad/internal/axis"
)

// ErrConfiguration reports an invalid control or axis definition.
var ErrConfiguration = axis.ErrConfiguration

// RelativePrefix prefixes the snapshot keys holding 0..1 axis positions.
const RelativePrefix = "_rel_pixel_"

// Snapshot maps axis labels to values and RelativePrefix+label to the
// normalized position of the axis.
type Snapshot map[string]float64

// Value returns the value of the labelled axis.
func (s Snapshot) Value(label string) (float64, bool) {
	v, ok := s[label]
	return v, ok
}

// Relative returns the normalized position of the labelled axis.
func (s Snapshot) Relative(label string) (float64, bool) {
	v, ok := s[RelativePrefix+label]
	return v, ok
}

// DrawFunc renders a control. It must not draw outside the surface.
type DrawFunc func(s Surface, snap Snapshot)

// UpdateFunc receives axis values after user input.
type UpdateFunc func(snap Snapshot)

// Control is one virtual joystick with its own surface and axes.
// Axis 0 follows the horizontal position, axis 1 the vertical one.
type Control struct {
	id      string
	surface Surface
	axes    []*axis.Axis
	active  bool
	draw    DrawFunc
	update  UpdateFunc
}

// ID returns the control id.
func (c *Control) ID() string {
	return c.id
}

// String implements fmt.Stringer for log lines.
func (c *Control) String() string {
	return c.id
}

// Surface returns the drawing surface.
func (c *Control) Surface() Surface {
	return c.surface
}

// Active reports whether a gesture currently drives the control.
func (c *Control) Active() bool {
	return c.active
}

// AddAxis appends an axis. Axes are ordered horizontal, vertical, then extras.
func (c *Control) AddAxis(label string, min, max float64, opts ...axis.Option) error {
	if _, ok := c.Axis(label); ok {
		return fmt.Errorf("%w: control %s already has axis %q", ErrConfiguration, c.id, label)
	}
	a, err := axis.New(label, min, max, opts...)
	if err != nil {
		return err
	}
	c.axes = append(c.axes, a)
	return nil
}

// Axes returns the axes in order.
func (c *Control) Axes() []*axis.Axis {
	out := make([]*axis.Axis, len(c.axes))
	copy(out, c.axes)
	return out
}

// Axis returns the axis with the given label.
func (c *Control) Axis(label string) (*axis.Axis, bool) {
	for _, a := range c.axes {
		if a.Label() == label {
			return a, true
		}
	}
	return nil, false
}

// SetDrawShapeFunc sets the function that renders the control.
func (c *Control) SetDrawShapeFunc(fn DrawFunc) {
	c.draw = fn
}

// SetUpdateCallback sets the function that receives axis values.
func (c *Control) SetUpdateCallback(fn UpdateFunc) {
	c.update = fn
}

// Snapshot captures every axis value.
func (c *Control) Snapshot() Snapshot {
	snap := make(Snapshot, 2*len(c.axes))
	for _, a := range c.axes {
		snap[a.Label()] = a.Value()
		snap[RelativePrefix+a.Label()] = a.Relative()
	}
	return snap
}

// track updates the first two axes from a client position. Positions are
// measured against the on-screen bounds rather than the drawing size so a
// CSS-scaled canvas maps edge to edge.
func (c *Control) track(x, y float64) {
	rect := c.surface.Bounds().Normalize()
	w, h := rect.W, rect.H
	if w <= 0 || h <= 0 {
		sw, sh := c.surface.Size()
		w, h = float64(sw), float64(sh)
	}
	if len(c.axes) > 0 {
		c.axes[0].SetRelative((x - rect.X) / w)
	}
	if len(c.axes) > 1 {
		c.axes[1].SetRelative((y - rect.Y) / h)
	}
}

// snapBack restores every axis that has a resting value.
func (c *Control) snapBack() {
	for _, a := range c.axes {
		a.SnapBack()
	}
}

// redraw clears the surface and draws the given snapshot.
func (c *Control) redraw(snap Snapshot) {
	c.surface.Clear()
	if c.draw != nil {
		c.draw(c.surface, snap)
	}
}

// notify calls the update callback if one is set.
func (c *Control) notify(snap Snapshot) {
	if c.update != nil {
		c.update(snap)
	}
}
