package bridge

import (
	"encoding/json"
	"log"

	"github.com/frudas24/vgamepad/internal/gamepad"
)

// Publisher delivers encoded frames to connected clients.
type Publisher interface {
	Broadcast(msg []byte)
}

// RemoteSurface is a browser canvas. Its bounds are reported by the client
// and clears are forwarded as frames.
type RemoteSurface struct {
	*gamepad.Canvas
	id  string
	pub Publisher
}

// SurfaceFactory returns a gamepad.SurfaceFactory producing remote surfaces.
func SurfaceFactory(pub Publisher) gamepad.SurfaceFactory {
	return func(id string, width, height int) gamepad.Surface {
		return &RemoteSurface{
			Canvas: gamepad.NewCanvas(id, width, height),
			id:     id,
			pub:    pub,
		}
	}
}

// Clear implements gamepad.Surface.
func (s *RemoteSurface) Clear() {
	s.Canvas.Clear()
	publish(s.pub, Frame{T: FrameClear, ID: s.id})
}

// publish encodes f and broadcasts it.
func publish(pub Publisher, f Frame) {
	if pub == nil {
		return
	}
	data, err := json.Marshal(f)
	if err != nil {
		log.Printf("bridge: marshal %s frame: %v", f.T, err)
		return
	}
	pub.Broadcast(data)
}
