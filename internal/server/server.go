// Package server provides the local HTTP API for inspecting and adjusting
// the gesture daemon.
package server

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/keerthipriyaa029/gesturemouse/internal/store"
)

// State is a snapshot of the running pipeline, served on /api/state.
type State struct {
	Running     bool   `json:"running"`
	Mode        string `json:"mode"`
	LastGesture string `json:"last_gesture"`
	FPS         int    `json:"fps"`
}

// Config holds the server configuration.
type Config struct {
	Store *store.Store

	// State reports the current pipeline state. Nil disables /api/state.
	State func() State
}

// Server serves the local HTTP API.
type Server struct {
	config Config
	mux    *http.ServeMux
	events *EventsHandler
	start  time.Time
}

// New creates a new Server with the given configuration.
func New(config Config) *Server {
	s := &Server{
		config: config,
		mux:    http.NewServeMux(),
		events: NewEventsHandler(),
		start:  time.Now(),
	}
	s.setupRoutes()
	return s
}

// Events returns the WebSocket hub actions are published to.
func (s *Server) Events() *EventsHandler {
	return s.events
}

func (s *Server) setupRoutes() {
	s.mux.HandleFunc("/api/health", s.handleHealth)
	s.mux.Handle("/api/events", s.events)

	if s.config.State != nil {
		s.mux.HandleFunc("/api/state", s.handleState)
	}

	if s.config.Store != nil {
		s.mux.HandleFunc("/api/settings", s.handleSettings)
		s.mux.HandleFunc("/api/bindings", s.handleBindings)
		s.mux.HandleFunc("/api/bindings/", s.handleBindingByID)
	}
}

// ServeHTTP implements the http.Handler interface.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
		"uptime": time.Since(s.start).String(),
	})
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	writeJSON(w, http.StatusOK, s.config.State())
}

// handleSettings serves GET /api/settings (all settings) and PUT
// /api/settings (replace the provided keys).
func (s *Server) handleSettings(w http.ResponseWriter, r *http.Request) {
	settings := s.config.Store.Settings()

	switch r.Method {
	case http.MethodGet:
		all, err := settings.All()
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, all)

	case http.MethodPut:
		var updates map[string]string
		if err := json.NewDecoder(r.Body).Decode(&updates); err != nil {
			http.Error(w, "Invalid JSON body", http.StatusBadRequest)
			return
		}
		for k, v := range updates {
			if err := settings.Set(k, v); err != nil {
				http.Error(w, err.Error(), http.StatusInternalServerError)
				return
			}
		}
		writeJSON(w, http.StatusOK, map[string]any{"updated": len(updates)})

	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (s *Server) handleBindings(w http.ResponseWriter, r *http.Request) {
	bindings := s.config.Store.Bindings()

	switch r.Method {
	case http.MethodGet:
		list, err := bindings.List()
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		if list == nil {
			list = []*store.Binding{}
		}
		writeJSON(w, http.StatusOK, list)

	case http.MethodPost:
		var b store.Binding
		if err := json.NewDecoder(r.Body).Decode(&b); err != nil {
			http.Error(w, "Invalid JSON body", http.StatusBadRequest)
			return
		}
		if b.Gesture == "" || b.PluginName == "" || b.ActionName == "" {
			http.Error(w, "gesture, plugin_name and action_name are required", http.StatusBadRequest)
			return
		}
		if err := bindings.Create(&b); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusCreated, &b)

	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (s *Server) handleBindingByID(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/api/bindings/")
	if id == "" {
		http.Error(w, "Binding ID required", http.StatusBadRequest)
		return
	}

	bindings := s.config.Store.Bindings()

	switch r.Method {
	case http.MethodGet:
		b, err := bindings.GetByID(id)
		if err == store.ErrNotFound {
			http.Error(w, "Binding not found", http.StatusNotFound)
			return
		}
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, b)

	case http.MethodDelete:
		err := bindings.Delete(id)
		if err == store.ErrNotFound {
			http.Error(w, "Binding not found", http.StatusNotFound)
			return
		}
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusNoContent)

	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// ListenAndServe starts the HTTP server on the given address.
func (s *Server) ListenAndServe(addr string) error {
	return http.ListenAndServe(addr, s)
}
