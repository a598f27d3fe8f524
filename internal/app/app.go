// Package app wires configuration, layout, the gamepad context and HTTP together.
package app

import (
	"errors"
	"log"
	"sync"

	"github.com/frudas24/vgamepad/internal/bridge"
	"github.com/frudas24/vgamepad/internal/config"
	"github.com/frudas24/vgamepad/internal/gamepad"
	"github.com/frudas24/vgamepad/internal/hub"
	"github.com/frudas24/vgamepad/internal/layout"
)

// App coordinates the gamepad context, the frame hub and the websocket bridge.
type App struct {
	mu      sync.Mutex
	cfg     config.Config
	logger  *log.Logger
	layout  layout.Layout
	hub     *hub.Hub
	gamepad *gamepad.Context
	bridge  *bridge.Server
	stopped bool
}

// New builds the controls described by l and binds the configured input family.
func New(cfg config.Config, l layout.Layout, logger *log.Logger) (*App, error) {
	if logger == nil {
		logger = log.Default()
	}
	if cfg.SendBuffer <= 0 {
		return nil, errors.New("send buffer must be > 0")
	}

	h := hub.New(logger)
	gp := gamepad.NewContext(
		gamepad.WithLogger(logger),
		gamepad.WithSurfaceFactory(bridge.SurfaceFactory(h)),
		gamepad.WithDebug(cfg.Debug),
	)
	if caps, ok := capabilities(cfg.InputMode); ok {
		if _, err := gp.Bind(caps); err != nil {
			return nil, err
		}
	}

	built, err := layout.Build(gp, l)
	if err != nil {
		return nil, err
	}

	return &App{
		cfg:     cfg,
		logger:  logger,
		layout:  l,
		hub:     h,
		gamepad: gp,
		bridge:  bridge.NewServer(gp, h, built, cfg.SendBuffer, logger),
	}, nil
}

// capabilities maps INPUT_MODE to a bind request; auto defers to the first client.
func capabilities(mode string) (gamepad.Capabilities, bool) {
	switch mode {
	case config.InputTouch:
		return gamepad.Capabilities{Touch: true, Pointer: true}, true
	case config.InputPointer:
		return gamepad.Capabilities{Pointer: true}, true
	default:
		return gamepad.Capabilities{}, false
	}
}

// Stop removes every control, releasing any claims still held.
func (a *App) Stop() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.stopped {
		return errors.New("app already stopped")
	}
	a.stopped = true
	n := a.bridge.RemoveAll()
	a.logger.Printf("app: removed %d control(s), %d client(s) connected", n, a.hub.Len())
	return nil
}

// Gamepad returns the gamepad context.
func (a *App) Gamepad() *gamepad.Context {
	return a.gamepad
}

// Bridge returns the websocket bridge handler.
func (a *App) Bridge() *bridge.Server {
	return a.bridge
}

// Layout returns the layout the controls were built from.
func (a *App) Layout() layout.Layout {
	return a.layout
}
