// The director API lets an operator push the night around from outside:
// firing specific encounters and inspecting the run, without touching the
// player's own command channel.
package network

import (
	"encoding/json"
	"net/http"

	"github.com/MValdesGames/NocheEnLaMansion/internal/platform/logger"
)

// DirectorBridge handles operator interactions.
type DirectorBridge struct {
	sim    Simulation
	hub    *Hub
	logger *logger.Logger
}

// NewDirectorBridge creates the operator endpoint handler.
func NewDirectorBridge(sim Simulation, hub *Hub, log *logger.Logger) *DirectorBridge {
	return &DirectorBridge{sim: sim, hub: hub, logger: log}
}

// TriggerRequest asks for a specific encounter to fire now.
type TriggerRequest struct {
	EncounterID string `json:"encounter_id"`
	DirectorID  string `json:"director_id"`
}

// HandleTrigger fires a catalog encounter by id, bypassing its gates.
// POST /api/director/trigger
func (db *DirectorBridge) HandleTrigger(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		db.jsonError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req TriggerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		db.jsonError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.EncounterID == "" {
		db.jsonError(w, "Missing encounter_id", http.StatusBadRequest)
		return
	}

	if !db.sim.TriggerEncounter(req.EncounterID) {
		db.jsonError(w, "Encounter could not fire (unknown id, pending response, or run over)", http.StatusConflict)
		return
	}

	db.logger.Event("DIRECTOR_TRIGGER", req.DirectorID, req.EncounterID)

	db.jsonSuccess(w, map[string]interface{}{
		"success":      true,
		"encounter_id": req.EncounterID,
	})
}

// HandleStatus returns the live snapshot for the operator console.
// GET /api/director/status
func (db *DirectorBridge) HandleStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		db.jsonError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	db.jsonSuccess(w, db.sim.Snapshot())
}

// RegisterRoutes sets up the director API routes.
func (db *DirectorBridge) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/api/director/trigger", db.HandleTrigger)
	mux.HandleFunc("/api/director/status", db.HandleStatus)
}

func (db *DirectorBridge) jsonError(w http.ResponseWriter, message string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}

func (db *DirectorBridge) jsonSuccess(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(data)
}
