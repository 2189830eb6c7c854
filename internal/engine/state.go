package engine

import (
	"encoding/json"
	"fmt"

	"github.com/MValdesGames/NocheEnLaMansion/internal/domain/item"
	"github.com/MValdesGames/NocheEnLaMansion/internal/domain/manor"
	"github.com/MValdesGames/NocheEnLaMansion/internal/events"
)

// SchemaVersion guards saved states against format drift.
const SchemaVersion = 1

// SimulationState is the full serializable state of a run. Every field is
// a flat scalar or a slice of flat structs, so serialize-deserialize-
// serialize produces identical bytes.
type SimulationState struct {
	SchemaVersion int     `json:"schema_version"`
	RunID         string  `json:"run_id"`
	ElapsedMs     float64 `json:"elapsed_ms"`

	Fear     float64 `json:"fear"`
	Health   float64 `json:"health"`
	Location string  `json:"location"`

	Items []item.Instance `json:"items"`

	CommandsIssued int `json:"commands_issued"`
	ItemsCollected int `json:"items_collected"`
	ItemsUsed      int `json:"items_used"`
	SecretsFound   int `json:"secrets_found"`
	EventsSurvived int `json:"events_survived"`

	Finished bool   `json:"finished"`
	Alive    bool   `json:"alive"`
	EndingID string `json:"ending_id,omitempty"`

	Log []events.Record `json:"log"`
}

// Serialize encodes the state as JSON.
func Serialize(s SimulationState) ([]byte, error) {
	return json.Marshal(s)
}

// Deserialize decodes a saved state and checks its schema version.
func Deserialize(data []byte) (SimulationState, error) {
	var s SimulationState
	if err := json.Unmarshal(data, &s); err != nil {
		return SimulationState{}, fmt.Errorf("decoding saved state: %w", err)
	}
	if s.SchemaVersion != SchemaVersion {
		return SimulationState{}, fmt.Errorf("saved state schema %d, want %d", s.SchemaVersion, SchemaVersion)
	}
	return s, nil
}

// ValidateState repairs a loaded state in place and returns a description
// of every correction made. Meters clamp to their range, an unknown
// location resets to the start, unknown items are dropped, and negative
// counters zero out.
func ValidateState(s *SimulationState) []string {
	var fixes []string

	if s.Fear < 0 || s.Fear > 100 {
		fixes = append(fixes, fmt.Sprintf("fear %.1f clamped", s.Fear))
		s.Fear = clampMeter(s.Fear)
	}
	if s.Health < 0 || s.Health > 100 {
		fixes = append(fixes, fmt.Sprintf("health %.1f clamped", s.Health))
		s.Health = clampMeter(s.Health)
	}
	if s.ElapsedMs < 0 {
		fixes = append(fixes, "negative elapsed time reset")
		s.ElapsedMs = 0
	}
	if _, ok := manor.Get(s.Location); !ok {
		fixes = append(fixes, fmt.Sprintf("unknown location %q reset", s.Location))
		s.Location = manor.StartLocation
	}

	kept := s.Items[:0]
	for _, inst := range s.Items {
		if _, ok := item.Get(inst.ID); !ok {
			fixes = append(fixes, fmt.Sprintf("unknown item %q dropped", inst.ID))
			continue
		}
		if inst.Durability < 0 {
			inst.Durability = 0
			fixes = append(fixes, fmt.Sprintf("item %q durability clamped", inst.ID))
		}
		kept = append(kept, inst)
	}
	s.Items = kept

	for _, c := range []struct {
		name string
		v    *int
	}{
		{"commands_issued", &s.CommandsIssued},
		{"items_collected", &s.ItemsCollected},
		{"items_used", &s.ItemsUsed},
		{"secrets_found", &s.SecretsFound},
		{"events_survived", &s.EventsSurvived},
	} {
		if *c.v < 0 {
			fixes = append(fixes, c.name+" reset to 0")
			*c.v = 0
		}
	}

	return fixes
}

func clampMeter(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

// ItemView is the spectator-facing shape of a held item.
type ItemView struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Durability float64 `json:"durability"`
	IsActive   bool    `json:"is_active"`
}

// Snapshot is the read-only view published after every tick. Observers and
// websocket clients read it without touching the live simulation.
type Snapshot struct {
	RunID     string  `json:"run_id"`
	TimeLabel string  `json:"time_label"`
	Hour      int     `json:"hour"`
	ElapsedMs float64 `json:"elapsed_ms"`

	Fear       float64 `json:"fear"`
	FearBand   string  `json:"fear_band"`
	Health     float64 `json:"health"`
	HealthBand string  `json:"health_band"`

	Location     string     `json:"location"`
	LocationName string     `json:"location_name"`
	Items        []ItemView `json:"items"`

	SecretsFound   int `json:"secrets_found"`
	EventsSurvived int `json:"events_survived"`

	Awaiting    bool    `json:"awaiting_response"`
	Paused      bool    `json:"paused"`
	FPS         float64 `json:"fps"`
	Finished    bool    `json:"finished"`
	EndingID    string  `json:"ending_id,omitempty"`
	EndingTitle string  `json:"ending_title,omitempty"`
}
