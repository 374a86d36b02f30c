// Package dispatch exposes the presentation-facing HTTP surface: fleet
// listing, session snapshots, the book/cancel intents and a WebSocket feed of
// live session events.
package dispatch

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/resqride/resqride/core/logger"
	"github.com/resqride/resqride/core/model"
	"github.com/resqride/resqride/core/session"
	"github.com/resqride/resqride/internal/eventbus"
)

// Gateway forwards presentation intents to the session manager verbatim and
// streams session events back out.
type Gateway struct {
	mgr       *session.Manager
	bus       eventbus.EventBus
	fleet     []model.Vehicle
	requester model.Coordinate
	log       logger.Logger
}

// NewGateway creates a Gateway serving the given fleet and requester position.
func NewGateway(mgr *session.Manager, bus eventbus.EventBus, fleet []model.Vehicle, requester model.Coordinate, log logger.Logger) *Gateway {
	return &Gateway{mgr: mgr, bus: bus, fleet: fleet, requester: requester, log: log}
}

// Routes returns the HTTP handler for the gateway.
func (g *Gateway) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", g.handleHealth)
	mux.HandleFunc("/api/fleet", g.handleFleet)
	mux.HandleFunc("/api/session", g.handleSession)
	mux.HandleFunc("/api/book", g.handleBook)
	mux.HandleFunc("/api/cancel", g.handleCancel)
	mux.HandleFunc("/ws", g.handleWS)
	return mux
}

func (g *Gateway) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("ok")); err != nil {
		g.log.Errorf("write health response: %v", err)
	}
}

func (g *Gateway) handleFleet(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	g.writeJSON(w, struct {
		Requester model.Coordinate `json:"requester"`
		Vehicles  []model.Vehicle  `json:"vehicles"`
	}{Requester: g.requester, Vehicles: g.fleet})
}

func (g *Gateway) handleSession(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	g.writeJSON(w, g.mgr.Snapshot())
}

type bookRequest struct {
	VehicleID int `json:"vehicle_id"`
}

func (g *Gateway) handleBook(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req bookRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	if err := g.book(req.VehicleID); err != nil {
		g.writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
	if err := json.NewEncoder(w).Encode(g.mgr.Snapshot()); err != nil {
		g.log.Errorf("encode response: %v", err)
	}
}

func (g *Gateway) handleCancel(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if err := g.mgr.Cancel(); err != nil {
		g.writeError(w, err)
		return
	}
	g.writeJSON(w, g.mgr.Snapshot())
}

// errUnknownVehicle is reported when a book intent names a vehicle outside
// the generated fleet.
var errUnknownVehicle = errors.New("unknown vehicle")

func (g *Gateway) book(vehicleID int) error {
	for _, v := range g.fleet {
		if v.ID == vehicleID {
			return g.mgr.Book(v, g.requester)
		}
	}
	return errUnknownVehicle
}

func (g *Gateway) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, session.ErrInvalidState):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, errUnknownVehicle):
		http.Error(w, err.Error(), http.StatusNotFound)
	default:
		http.Error(w, err.Error(), http.StatusBadRequest)
	}
}

func (g *Gateway) writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		g.log.Errorf("encode response: %v", err)
	}
}
