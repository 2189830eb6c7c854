// The history endpoint exposes the audit trail of a run. It lets a
// spectator or a post-mortem tool replay the night step by step.
package network

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/MValdesGames/NocheEnLaMansion/internal/events"
	"github.com/MValdesGames/NocheEnLaMansion/internal/platform/logger"
)

// HistorySource yields the audit records of the live run.
type HistorySource interface {
	RunID() string
	History() []events.Record
	RecentCommands() []string
}

// HistoryHandler serves the replay API.
type HistoryHandler struct {
	source HistorySource
	logger *logger.Logger
}

// NewHistoryHandler creates a handler over the live run's audit trail.
func NewHistoryHandler(source HistorySource, log *logger.Logger) *HistoryHandler {
	return &HistoryHandler{source: source, logger: log}
}

// HistoryResponse is the API response for a replay request.
type HistoryResponse struct {
	RunID       string          `json:"run_id"`
	Total       int             `json:"total"`
	FilteredBy  string          `json:"filtered_by,omitempty"`
	GeneratedAt string          `json:"generated_at"`
	Records     []events.Record `json:"records"`
}

// HandleHistory returns the audit trail, optionally filtered.
// GET /api/history?type=ENCOUNTER&since_ms=60000
func (hh *HistoryHandler) HandleHistory(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		hh.jsonError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	typeFilter := r.URL.Query().Get("type")
	sinceStr := r.URL.Query().Get("since_ms")
	sinceMs := -1.0
	if sinceStr != "" {
		v, err := strconv.ParseFloat(sinceStr, 64)
		if err != nil {
			hh.jsonError(w, "Invalid since_ms", http.StatusBadRequest)
			return
		}
		sinceMs = v
	}

	all := hh.source.History()
	var filtered []events.Record
	filterDesc := ""
	for _, rec := range all {
		if typeFilter != "" && string(rec.Type) != typeFilter {
			continue
		}
		if sinceMs >= 0 && rec.AtMs < sinceMs {
			continue
		}
		filtered = append(filtered, rec)
	}
	if typeFilter != "" {
		filterDesc = "type " + typeFilter
	}

	response := HistoryResponse{
		RunID:       hh.source.RunID(),
		Total:       len(filtered),
		FilteredBy:  filterDesc,
		GeneratedAt: time.Now().Format(time.RFC3339),
		Records:     filtered,
	}

	hh.logger.Event("HISTORY", "spectator", "records:"+strconv.Itoa(len(filtered)))

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

// HandleStats returns aggregate counts per record type.
// GET /api/history/stats
func (hh *HistoryHandler) HandleStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		hh.jsonError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	counts := make(map[string]int)
	all := hh.source.History()
	for _, rec := range all {
		counts[string(rec.Type)]++
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"run_id":          hh.source.RunID(),
		"generated_at":    time.Now().Format(time.RFC3339),
		"total":           len(all),
		"by_type":         counts,
		"recent_commands": hh.source.RecentCommands(),
	})
}

// RegisterRoutes sets up the replay API routes.
func (hh *HistoryHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/api/history", hh.HandleHistory)
	mux.HandleFunc("/api/history/stats", hh.HandleStats)
}

func (hh *HistoryHandler) jsonError(w http.ResponseWriter, message string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
