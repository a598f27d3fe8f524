package app

import (
	"encoding/json"
	"log"
	"net/http"
	"os"
	"path/filepath"

	"github.com/frudas24/vgamepad/internal/bridge"
	"github.com/frudas24/vgamepad/internal/layout"
	"github.com/frudas24/vgamepad/internal/web"
)

// RegisterRoutes wires API, websocket and static handlers onto the mux.
func (a *App) RegisterRoutes(mux *http.ServeMux, staticDir string) {
	if staticDir == "" {
		staticDir = filepath.Join("internal", "web", "static")
	}

	mux.Handle("/ws/pad", a.Bridge())
	mux.HandleFunc("/ws/observe", a.bridge.ServeObserve)
	mux.HandleFunc("/api/state", a.handleState)
	mux.HandleFunc("/api/layout", a.handleLayout)
	mux.HandleFunc("/favicon.ico", handleFavicon)

	mux.Handle("/", staticFileServer(staticDir))
}

type stateResponse struct {
	bridge.Status
	Clients int `json:"clients"`
}

// handleState returns the binding and a snapshot of every control.
func (a *App) handleState(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	resp := stateResponse{
		Status:  a.bridge.Status(),
		Clients: a.hub.Len(),
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resp)
}

// handleLayout returns the active layout as YAML.
func (a *App) handleLayout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	data, err := layout.Marshal(a.layout)
	if err != nil {
		http.Error(w, "failed to encode layout", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/yaml")
	_, _ = w.Write(data)
}

// staticFileServer returns a handler for static assets, preferring disk then embed.
func staticFileServer(staticDir string) http.Handler {
	if staticDir != "" {
		if info, err := os.Stat(staticDir); err == nil && info.IsDir() {
			return http.FileServer(http.Dir(staticDir))
		}
	}

	embedded, err := web.StaticFS()
	if err != nil {
		log.Printf("static assets unavailable: %v", err)
		return http.NotFoundHandler()
	}
	return http.FileServer(http.FS(embedded))
}

// handleFavicon avoids noisy 404s for the default browser request.
func handleFavicon(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}
