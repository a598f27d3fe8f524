package bridge

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"sync"

	"github.com/frudas24/vgamepad/internal/gamepad"
	"github.com/frudas24/vgamepad/internal/hub"
	"github.com/frudas24/vgamepad/internal/input"
	"github.com/frudas24/vgamepad/internal/layout"
	"github.com/gorilla/websocket"
)

const (
	// RectMessage reports a canvas bounding rectangle.
	RectMessage = "rect"
	// CapsMessage reports the input families of the client page.
	CapsMessage = "caps"
)

// Server feeds websocket input into a gamepad context and streams frames back.
type Server struct {
	mu       sync.Mutex
	upgrader websocket.Upgrader
	gp       *gamepad.Context
	hub      *hub.Hub
	names    map[string]string
	buffer   int
	logger   *log.Logger
	pad      *websocket.Conn
}

// NewServer wires the draw and update callbacks of every built control to h.
func NewServer(gp *gamepad.Context, h *hub.Hub, built []layout.Built, buffer int, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	s := &Server{
		gp:     gp,
		hub:    h,
		names:  make(map[string]string, len(built)),
		buffer: buffer,
		logger: logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
	}
	for _, b := range built {
		s.names[b.Control.ID()] = b.Name
		s.attach(b.Control)
	}
	return s
}

// attach publishes draw and update frames for ctrl.
func (s *Server) attach(ctrl *gamepad.Control) {
	id := ctrl.ID()
	ctrl.SetDrawShapeFunc(func(_ gamepad.Surface, snap gamepad.Snapshot) {
		publish(s.hub, Frame{T: FrameDraw, ID: id, Axes: snap})
	})
	ctrl.SetUpdateCallback(func(snap gamepad.Snapshot) {
		publish(s.hub, Frame{T: FrameUpdate, ID: id, Axes: snap})
	})
}

// ServeHTTP upgrades the pad connection and dispatches its input events.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	if err := s.acceptConn(conn); err != nil {
		s.logger.Printf("bridge: %v", err)
		_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.ClosePolicyViolation, err.Error()))
		_ = conn.Close()
		return
	}
	client := s.join(conn, "pad")
	defer s.cleanupConn(conn, client)

	for {
		var msg Message
		if err := conn.ReadJSON(&msg); err != nil {
			return
		}
		if err := s.handleMessage(msg); err != nil {
			s.logger.Printf("bridge: %s dropped: %v", msg.T, err)
		}
	}
}

// ServeObserve streams frames to a read-only observer connection.
func (s *Server) ServeObserve(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	client := s.join(conn, "observer")
	defer s.hub.Unregister(client)

	for {
		if _, _, err := conn.NextReader(); err != nil {
			return
		}
	}
}

// join queues the greeting frames for conn and registers it with the hub.
func (s *Server) join(conn *websocket.Conn, role string) *hub.Client {
	client := hub.NewClient(conn, role, s.buffer)
	if mode, ok := s.boundMode(); ok {
		s.sendTo(client, Frame{T: FrameBind, Mode: mode})
	}
	s.sendTo(client, Frame{T: FrameLayout, Controls: s.State()})
	s.hub.Register(client)
	go client.WritePump()
	return client
}

// acceptConn ensures only one pad connection is active.
func (s *Server) acceptConn(conn *websocket.Conn) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pad != nil {
		return errors.New("pad connection already active")
	}
	s.pad = conn
	return nil
}

// cleanupConn releases the pad slot and ends its open gestures when the
// connection closes.
func (s *Server) cleanupConn(conn *websocket.Conn, client *hub.Client) {
	s.hub.Unregister(client)
	s.mu.Lock()
	if s.pad == conn {
		s.pad = nil
	}
	if n := s.gp.ReleaseAll(); n > 0 {
		s.logger.Printf("bridge: pad disconnected, ended %d open gesture(s)", n)
	}
	s.mu.Unlock()
}

// handleMessage applies a single pad message.
func (s *Server) handleMessage(msg Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch msg.T {
	case RectMessage:
		return s.handleRect(msg)
	case CapsMessage:
		return s.handleCaps(msg)
	}
	ev, err := msg.ToEvent()
	if err != nil {
		return err
	}
	return s.gp.Dispatch(ev)
}

// handleRect stores the on-screen bounds reported for a canvas.
func (s *Server) handleRect(msg Message) error {
	if msg.Rect == nil {
		return nil
	}
	ctrl, ok := s.gp.Control(msg.Target)
	if !ok {
		return fmt.Errorf("%w: %q", gamepad.ErrUnknownControl, msg.Target)
	}
	placed, ok := ctrl.Surface().(interface{ SetBounds(gamepad.Rect) })
	if !ok {
		return fmt.Errorf("surface of %s cannot be placed", msg.Target)
	}
	placed.SetBounds(*msg.Rect)
	return nil
}

// handleCaps binds the input family on first report and echoes the binding.
func (s *Server) handleCaps(msg Message) error {
	if msg.Caps == nil {
		return nil
	}
	mode, err := s.gp.Bind(gamepad.Capabilities{Touch: msg.Caps.Touch, Pointer: msg.Caps.Pointer})
	if err != nil && !errors.Is(err, gamepad.ErrAlreadyBound) {
		return err
	}
	publish(s.hub, Frame{T: FrameBind, Mode: mode.String()})
	return nil
}

// RemoveAll removes every control and returns how many were removed.
func (s *Server) RemoveAll() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, ctrl := range s.gp.Controls() {
		if s.gp.Remove(ctrl.ID()) {
			delete(s.names, ctrl.ID())
			n++
		}
	}
	return n
}

// State describes every live control.
func (s *Server) State() []ControlInfo {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stateLocked()
}

// Status reports the binding, live claims and controls.
func (s *Server) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Status{
		Mode:     s.gp.Bound().String(),
		Claims:   s.gp.Claims(),
		Controls: s.stateLocked(),
	}
}

// stateLocked builds State; the caller holds s.mu.
func (s *Server) stateLocked() []ControlInfo {
	controls := s.gp.Controls()
	out := make([]ControlInfo, 0, len(controls))
	for _, ctrl := range controls {
		w, h := ctrl.Surface().Size()
		axes := ctrl.Axes()
		labels := make([]string, len(axes))
		for i, a := range axes {
			labels[i] = a.Label()
		}
		out = append(out, ControlInfo{
			ID:     ctrl.ID(),
			Name:   s.names[ctrl.ID()],
			Width:  w,
			Height: h,
			Axes:   labels,
			Active: ctrl.Active(),
			Values: ctrl.Snapshot(),
		})
	}
	return out
}

// boundMode returns the bound input family name, if any.
func (s *Server) boundMode() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	mode := s.gp.Bound()
	return mode.String(), mode != input.ModalityUnknown
}

// sendTo encodes f and queues it on a single client.
func (s *Server) sendTo(c *hub.Client, f Frame) {
	data, err := json.Marshal(f)
	if err != nil {
		s.logger.Printf("bridge: marshal %s frame: %v", f.T, err)
		return
	}
	if !c.Send(data) {
		s.logger.Printf("bridge: %s frame dropped, client queue full", f.T)
	}
}
