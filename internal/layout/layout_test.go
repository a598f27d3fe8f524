package layout

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/frudas24/vgamepad/internal/gamepad"
)

// TestSaveLoad_RoundTrip verifies saving and loading preserves the layout.
func TestSaveLoad_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "layout.yaml")
	in := Layout{Controls: []Control{{
		Name:   "throttle",
		Width:  40,
		Height: 160,
		Axes:   []Axis{{Label: "t", Min: float(0), Max: float(1), Step: float(0.25)}},
	}}}

	if err := Save(path, in); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	out, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(out.Controls) != 1 || out.Controls[0].Name != "throttle" || out.Controls[0].Height != 160 {
		t.Fatalf("unexpected layout %+v", out)
	}
	a := out.Controls[0].Axes[0]
	if a.Min == nil || *a.Min != 0 || a.Step == nil || *a.Step != 0.25 || a.SnapBack != nil {
		t.Fatalf("unexpected axis %+v", a)
	}
}

// TestLoad_MissingFile_ReturnsDefault verifies a missing layout falls back to the default stick.
func TestLoad_MissingFile_ReturnsDefault(t *testing.T) {
	out, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if len(out.Controls) != 1 || out.Controls[0].Name != "stick" || len(out.Controls[0].Axes) != 2 {
		t.Fatalf("expected default layout, got %+v", out)
	}
}

// TestLoad_ParsesHandWrittenYAML verifies the documented YAML keys.
func TestLoad_ParsesHandWrittenYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "layout.yaml")
	doc := `controls:
  - name: left
    width: 150
    height: 150
    axes:
      - label: x
        step: 5
        snap_back: 0
      - label: y
        min: -1
        max: 1
`
	if err := os.WriteFile(path, []byte(doc), 0o600); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	l, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	x := l.Controls[0].Axes[0]
	if x.Step == nil || *x.Step != 5 || x.SnapBack == nil || *x.SnapBack != 0 || x.Min != nil {
		t.Fatalf("unexpected x axis %+v", x)
	}
}

// TestBuild_CreatesControlsWithAxes verifies the default layout builds into the context.
func TestBuild_CreatesControlsWithAxes(t *testing.T) {
	ctx := gamepad.NewContext()
	built, err := Build(ctx, Default())
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if len(built) != 1 || len(ctx.Controls()) != 1 {
		t.Fatalf("expected one control, got %d built / %d live", len(built), len(ctx.Controls()))
	}
	snap := built[0].Control.Snapshot()
	if snap["x"] != 0 || snap["y"] != 0 || snap[gamepad.RelativePrefix+"x"] != 0.5 {
		t.Fatalf("unexpected initial snapshot %v", snap)
	}
}

// TestBuild_RollsBackOnInvalidAxis verifies a bad entry leaves no partial controls behind.
func TestBuild_RollsBackOnInvalidAxis(t *testing.T) {
	ctx := gamepad.NewContext()
	l := Default()
	l.Controls = append(l.Controls, Control{
		Name:   "bad",
		Width:  10,
		Height: 10,
		Axes:   []Axis{{Label: "x", Step: float(150)}},
	})
	if _, err := Build(ctx, l); !errors.Is(err, gamepad.ErrConfiguration) {
		t.Fatalf("expected ErrConfiguration, got %v", err)
	}
	if len(ctx.Controls()) != 0 {
		t.Fatalf("expected rollback, got %d live controls", len(ctx.Controls()))
	}
	if err := Validate(l); err == nil {
		t.Fatalf("expected Validate to fail")
	}
	if err := Validate(Default()); err != nil {
		t.Fatalf("expected default layout to validate, got %v", err)
	}
}
