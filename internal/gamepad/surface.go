// Package gamepad implements on-screen virtual joystick controls and the
// dispatch protocol that routes raw input gestures to them.
package gamepad

// Rect is an on-screen rectangle in client coordinates.
type Rect struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
	W float64 `json:"w" yaml:"w"`
	H float64 `json:"h" yaml:"h"`
}

// Normalize returns a rectangle with non-negative width/height.
func (r Rect) Normalize() Rect {
	if r.W < 0 {
		r.X += r.W
		r.W = -r.W
	}
	if r.H < 0 {
		r.Y += r.H
		r.H = -r.H
	}
	return r
}

// Surface is the drawing area a control is rendered on.
type Surface interface {
	// IsTarget reports whether an event delivered to target belongs to this surface.
	IsTarget(target string) bool
	// Size returns the drawing size in pixels.
	Size() (width, height int)
	// Bounds returns the on-screen bounding rectangle.
	Bounds() Rect
	// Clear erases the surface before a redraw.
	Clear()
}

// SurfaceFactory creates the surface for a new control.
type SurfaceFactory func(id string, width, height int) Surface

// Canvas is an in-memory Surface whose on-screen bounds are set by its owner.
type Canvas struct {
	id     string
	width  int
	height int
	bounds Rect
	clears int
}

// NewCanvas returns a canvas placed at the origin with its drawing size as bounds.
func NewCanvas(id string, width, height int) *Canvas {
	return &Canvas{
		id:     id,
		width:  width,
		height: height,
		bounds: Rect{W: float64(width), H: float64(height)},
	}
}

// CanvasFactory is a SurfaceFactory producing Canvas values.
func CanvasFactory(id string, width, height int) Surface {
	return NewCanvas(id, width, height)
}

// IsTarget implements Surface.
func (c *Canvas) IsTarget(target string) bool {
	return target != "" && target == c.id
}

// Size implements Surface.
func (c *Canvas) Size() (int, int) {
	return c.width, c.height
}

// Bounds implements Surface.
func (c *Canvas) Bounds() Rect {
	return c.bounds
}

// SetBounds moves the canvas on screen.
func (c *Canvas) SetBounds(r Rect) {
	c.bounds = r.Normalize()
}

// Clear implements Surface.
func (c *Canvas) Clear() {
	c.clears++
}

// Clears returns how many times the canvas was cleared.
func (c *Canvas) Clears() int {
	return c.clears
}
