// Package layout describes which controls to create and persists that
// description as YAML.
package layout

import (
	"fmt"

	"github.com/frudas24/vgamepad/internal/axis"
	"github.com/frudas24/vgamepad/internal/gamepad"
)

// Axis describes one axis of a control. Nil fields use the axis defaults.
type Axis struct {
	Label    string   `yaml:"label" json:"label"`
	Min      *float64 `yaml:"min,omitempty" json:"min,omitempty"`
	Max      *float64 `yaml:"max,omitempty" json:"max,omitempty"`
	Step     *float64 `yaml:"step,omitempty" json:"step,omitempty"`
	SnapBack *float64 `yaml:"snap_back,omitempty" json:"snapBack,omitempty"`
}

// Control describes one virtual joystick.
type Control struct {
	Name   string `yaml:"name" json:"name"`
	Width  int    `yaml:"width" json:"width"`
	Height int    `yaml:"height" json:"height"`
	Axes   []Axis `yaml:"axes" json:"axes"`
}

// Layout is the full set of controls served to clients.
type Layout struct {
	Controls []Control `yaml:"controls" json:"controls"`
}

// Built pairs a layout entry with the live control created for it.
type Built struct {
	Name    string
	Control *gamepad.Control
}

// Default returns a single 200x200 stick with integer x/y axes resting at 0.
func Default() Layout {
	return Layout{
		Controls: []Control{{
			Name:   "stick",
			Width:  200,
			Height: 200,
			Axes: []Axis{
				{Label: "x", Step: float(1), SnapBack: float(0)},
				{Label: "y", Step: float(1), SnapBack: float(0)},
			},
		}},
	}
}

// Build creates every control of l in ctx. On error no control is left registered.
func Build(ctx *gamepad.Context, l Layout) ([]Built, error) {
	built := make([]Built, 0, len(l.Controls))
	rollback := func() {
		for _, b := range built {
			ctx.Remove(b.Control.ID())
		}
	}
	for i, entry := range l.Controls {
		ctrl, err := ctx.NewControl(entry.Width, entry.Height)
		if err != nil {
			rollback()
			return nil, fmt.Errorf("control %d (%s): %w", i, entry.Name, err)
		}
		built = append(built, Built{Name: entry.Name, Control: ctrl})
		for _, a := range entry.Axes {
			if err := addAxis(ctrl, a); err != nil {
				rollback()
				return nil, fmt.Errorf("control %d (%s): %w", i, entry.Name, err)
			}
		}
	}
	return built, nil
}

// Validate reports whether l builds cleanly.
func Validate(l Layout) error {
	ctx := gamepad.NewContext()
	_, err := Build(ctx, l)
	return err
}

// addAxis converts an axis description into an axis on ctrl.
func addAxis(ctrl *gamepad.Control, a Axis) error {
	min, max := axis.DefaultMin, axis.DefaultMax
	if a.Min != nil {
		min = *a.Min
	}
	if a.Max != nil {
		max = *a.Max
	}
	var opts []axis.Option
	if a.Step != nil {
		opts = append(opts, axis.WithStep(*a.Step))
	}
	if a.SnapBack != nil {
		opts = append(opts, axis.WithSnapBack(*a.SnapBack))
	}
	return ctrl.AddAxis(a.Label, min, max, opts...)
}

// float returns a pointer to v.
func float(v float64) *float64 {
	return &v
}
