// Package api pkg/api/server.go exposes the engine's control surface over
// HTTP: target registry, settings, scan control, and a websocket result
// stream.
package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/GrantKop/is-the-port-open/pkg/models"
	"github.com/GrantKop/is-the-port-open/pkg/monitor"
	"github.com/GrantKop/is-the-port-open/pkg/registry"
	"github.com/GrantKop/is-the-port-open/pkg/store"
)

// Server serves the control API. Construct with NewServer and mount via
// Router or Serve.
type Server struct {
	registry *registry.Registry
	settings *monitor.SettingsStore
	engine   ScanController
	results  store.Store
	hub      *Hub
	router   *mux.Router

	// onStateChange runs after every successful registry or settings
	// mutation; the daemon uses it to persist state.
	onStateChange func()
}

// NewServer wires the API to its collaborators. onStateChange may be nil.
func NewServer(
	reg *registry.Registry,
	settings *monitor.SettingsStore,
	engine ScanController,
	results store.Store,
	hub *Hub,
	onStateChange func()) *Server {
	s := &Server{
		registry:      reg,
		settings:      settings,
		engine:        engine,
		results:       results,
		hub:           hub,
		router:        mux.NewRouter(),
		onStateChange: onStateChange,
	}

	s.setupRoutes()

	return s
}

// Router returns the configured handler.
func (s *Server) Router() http.Handler {
	return s.router
}

func (s *Server) setupRoutes() {
	s.router.Use(commonMiddleware)

	s.router.HandleFunc("/api/targets", s.listTargets).Methods("GET")
	s.router.HandleFunc("/api/targets", s.addTarget).Methods("POST")
	s.router.HandleFunc("/api/targets/{name}", s.removeTarget).Methods("DELETE")

	s.router.HandleFunc("/api/settings", s.getSettings).Methods("GET")
	s.router.HandleFunc("/api/settings", s.updateSettings).Methods("PUT")

	s.router.HandleFunc("/api/scan", s.startScan).Methods("POST")
	s.router.HandleFunc("/api/scan", s.cancelScan).Methods("DELETE")

	s.router.HandleFunc("/api/status", s.getStatus).Methods("GET")

	if s.hub != nil {
		s.router.HandleFunc("/api/ws", s.hub.ServeWS)
	}
}

func commonMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET,POST,PUT,DELETE,OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

type addTargetRequest struct {
	Name string `json:"name"`
	Host string `json:"host"`
	Port int    `json:"port"`
}

type scanResponse struct {
	CycleID uint64 `json:"cycle_id"`
}

type cancelResponse struct {
	Cancelled bool `json:"cancelled"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) listTargets(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.registry.Snapshot())
}

func (s *Server) addTarget(w http.ResponseWriter, r *http.Request) {
	var req addTargetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	target, err := s.registry.Add(req.Name, req.Host, req.Port)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	s.stateChanged()

	writeJSON(w, http.StatusCreated, target)
}

func (s *Server) removeTarget(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]

	if err := s.registry.Remove(name); err != nil {
		if errors.Is(err, registry.ErrTargetNotFound) {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}

		writeError(w, http.StatusInternalServerError, err.Error())

		return
	}

	s.stateChanged()

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) getSettings(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.settings.Get())
}

func (s *Server) updateSettings(w http.ResponseWriter, r *http.Request) {
	var settings models.Settings
	if err := json.NewDecoder(r.Body).Decode(&settings); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	if err := s.engine.UpdateSettings(settings); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	s.stateChanged()

	writeJSON(w, http.StatusOK, s.settings.Get())
}

func (s *Server) startScan(w http.ResponseWriter, _ *http.Request) {
	cycleID, err := s.engine.Refresh()
	if err != nil {
		writeError(w, http.StatusServiceUnavailable, err.Error())
		return
	}

	writeJSON(w, http.StatusAccepted, scanResponse{CycleID: cycleID})
}

func (s *Server) cancelScan(w http.ResponseWriter, _ *http.Request) {
	cancelled := s.engine.CancelCurrent()
	if !cancelled {
		writeJSON(w, http.StatusConflict, cancelResponse{Cancelled: false})
		return
	}

	writeJSON(w, http.StatusOK, cancelResponse{Cancelled: true})
}

func (s *Server) getStatus(w http.ResponseWriter, r *http.Request) {
	summary, err := s.results.GetSummary(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	results, err := s.results.GetResults(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, struct {
		Summary *store.Summary       `json:"summary"`
		Results []models.ProbeResult `json:"results"`
	}{summary, results})
}

func (s *Server) stateChanged() {
	if s.onStateChange != nil {
		s.onStateChange()
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Failed to encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}
