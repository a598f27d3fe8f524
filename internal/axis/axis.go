// Package axis models a single bounded, optionally quantized control axis.
package axis

import (
	"errors"
	"fmt"
	"math"
)

const (
	// DefaultMin is the lower bound used by NewDefault.
	DefaultMin = -100.0
	// DefaultMax is the upper bound used by NewDefault.
	DefaultMax = 100.0
)

// ErrConfiguration reports an invalid axis or control definition.
var ErrConfiguration = errors.New("invalid configuration")

// Optional holds a value that may be unset.
type Optional struct {
	set bool
	v   float64
}

// Unset returns an empty Optional.
func Unset() Optional {
	return Optional{}
}

// Some returns an Optional holding v.
func Some(v float64) Optional {
	return Optional{set: true, v: v}
}

// Get returns the held value and whether it is set.
func (o Optional) Get() (float64, bool) {
	return o.v, o.set
}

// IsSet reports whether a value is held.
func (o Optional) IsSet() bool {
	return o.set
}

// Option configures an Axis at construction.
type Option func(*options)

type options struct {
	step     Optional
	snapBack Optional
}

// WithStep quantizes values up to the next multiple of step.
func WithStep(step float64) Option {
	return func(o *options) { o.step = Some(step) }
}

// WithSnapBack sets the resting value applied when the owning gesture ends.
func WithSnapBack(v float64) Option {
	return func(o *options) { o.snapBack = Some(v) }
}

// Axis is one bounded scalar value.
type Axis struct {
	label    string
	min      float64
	max      float64
	step     Optional
	snapBack Optional
	current  Optional
}

// NewDefault creates an axis over [DefaultMin, DefaultMax].
func NewDefault(label string, opts ...Option) (*Axis, error) {
	return New(label, DefaultMin, DefaultMax, opts...)
}

// New validates the definition and returns a ready axis.
func New(label string, min, max float64, opts ...Option) (*Axis, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if !isFinite(min) || !isFinite(max) {
		return nil, fmt.Errorf("%w: axis %q bounds must be finite", ErrConfiguration, label)
	}
	if max < min {
		return nil, fmt.Errorf("%w: axis %q max %v is below min %v", ErrConfiguration, label, max, min)
	}

	a := &Axis{label: label, min: min, max: max}
	if step, ok := o.step.Get(); ok {
		if !isFinite(step) || step <= 0 {
			return nil, fmt.Errorf("%w: axis %q step must be a positive number", ErrConfiguration, label)
		}
		if step > (max-min)/2 {
			return nil, fmt.Errorf("%w: axis %q step %v exceeds half the range", ErrConfiguration, label, step)
		}
		a.step = o.step
	}
	if v, ok := o.snapBack.Get(); ok {
		if !isFinite(v) || v < min || v > max {
			return nil, fmt.Errorf("%w: axis %q snap-back %v must lie in [%v, %v]", ErrConfiguration, label, v, min, max)
		}
		a.snapBack = Some(a.clamp(a.Quantize(v)))
		a.current = a.snapBack
	}
	return a, nil
}

// Label returns the axis label.
func (a *Axis) Label() string {
	return a.label
}

// Bounds returns the inclusive value range.
func (a *Axis) Bounds() (min, max float64) {
	return a.min, a.max
}

// Step returns the quantization step, if any.
func (a *Axis) Step() Optional {
	return a.step
}

// SnapBackValue returns the quantized resting value, if any.
func (a *Axis) SnapBackValue() Optional {
	return a.snapBack
}

// Quantize applies the configured step.
func (a *Axis) Quantize(v float64) float64 {
	step, ok := a.step.Get()
	if !ok {
		return v
	}
	return math.Ceil(v/step) * step
}

// Value resolves the current value, then the snap-back value, then the
// quantized midpoint of the bounds.
func (a *Axis) Value() float64 {
	if v, ok := a.current.Get(); ok {
		return v
	}
	if v, ok := a.snapBack.Get(); ok {
		return v
	}
	return a.Quantize(a.min + (a.max-a.min)/2)
}

// Relative returns Value normalized to the range. A zero-width axis reports 0.
func (a *Axis) Relative() float64 {
	span := a.max - a.min
	if span == 0 {
		return 0
	}
	return (a.Value() - a.min) / span
}

// SetRaw stores v quantized and clamped to the bounds.
func (a *Axis) SetRaw(v float64) {
	a.current = Some(a.clamp(a.Quantize(v)))
}

// clamp limits v to the bounds.
func (a *Axis) clamp(v float64) float64 {
	return math.Min(math.Max(a.min, v), a.max)
}

// SetRelative stores the value at ratio p of the range; out-of-range ratios clamp.
func (a *Axis) SetRelative(p float64) {
	a.SetRaw(a.min + (a.max-a.min)*p)
}

// SnapBack restores the resting value and reports whether one is configured.
func (a *Axis) SnapBack() bool {
	v, ok := a.snapBack.Get()
	if !ok {
		return false
	}
	a.SetRaw(v)
	return true
}

// isFinite reports whether v is neither NaN nor infinite.
func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
