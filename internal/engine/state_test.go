package engine

import (
	"bytes"
	"testing"

	"github.com/MValdesGames/NocheEnLaMansion/internal/domain/item"
)

func sampleState() SimulationState {
	return SimulationState{
		SchemaVersion: SchemaVersion,
		RunID:         "run-123",
		ElapsedMs:     90000,
		Fear:          42.5,
		Health:        77,
		Location:      "library",
		Items: []item.Instance{
			{ID: "tallow_candle", Kind: item.KindConsumable, Durability: 40, IsActive: true},
			{ID: "iron_crucifix", Kind: item.KindTool, Durability: 90},
		},
		CommandsIssued: 12,
		ItemsCollected: 2,
		ItemsUsed:      3,
		SecretsFound:   1,
		EventsSurvived: 4,
		Alive:          true,
	}
}

func TestSerializeRoundTripIsByteStable(t *testing.T) {
	original := sampleState()

	data, err := Serialize(original)
	if err != nil {
		t.Fatalf("Serialize failed: %v", err)
	}

	restored, err := Deserialize(data)
	if err != nil {
		t.Fatalf("Deserialize failed: %v", err)
	}

	again, err := Serialize(restored)
	if err != nil {
		t.Fatalf("Second Serialize failed: %v", err)
	}

	if !bytes.Equal(data, again) {
		t.Errorf("Expected identical bytes after a round trip\nfirst:  %s\nsecond: %s", data, again)
	}
}

func TestDeserializeRejectsWrongSchema(t *testing.T) {
	s := sampleState()
	s.SchemaVersion = SchemaVersion + 1
	data, _ := Serialize(s)

	if _, err := Deserialize(data); err == nil {
		t.Error("Expected a schema version error")
	}

	if _, err := Deserialize([]byte("{not json")); err == nil {
		t.Error("Expected a decode error for malformed input")
	}
}

func TestValidateStateRepairsCorruption(t *testing.T) {
	s := sampleState()
	s.Fear = 140
	s.Health = -5
	s.ElapsedMs = -1
	s.Location = "ballroom"
	s.Items = append(s.Items, item.Instance{ID: "phantom_item", Durability: 10})
	s.Items[0].Durability = -3
	s.SecretsFound = -2

	fixes := ValidateState(&s)
	if len(fixes) == 0 {
		t.Fatal("Expected corrections on a corrupted state")
	}

	if s.Fear != 100 {
		t.Errorf("Expected fear clamped to 100, got %v", s.Fear)
	}
	if s.Health != 0 {
		t.Errorf("Expected health clamped to 0, got %v", s.Health)
	}
	if s.ElapsedMs != 0 {
		t.Errorf("Expected elapsed reset to 0, got %v", s.ElapsedMs)
	}
	if s.Location != "foyer" {
		t.Errorf("Expected unknown location reset to the foyer, got %q", s.Location)
	}
	for _, inst := range s.Items {
		if inst.ID == "phantom_item" {
			t.Error("Expected the unknown item dropped")
		}
		if inst.Durability < 0 {
			t.Errorf("Expected durability clamped for %q, got %v", inst.ID, inst.Durability)
		}
	}
	if s.SecretsFound != 0 {
		t.Errorf("Expected negative counter reset, got %d", s.SecretsFound)
	}
}

func TestValidateStateLeavesHealthyStateAlone(t *testing.T) {
	s := sampleState()
	if fixes := ValidateState(&s); len(fixes) != 0 {
		t.Errorf("Expected no corrections on a healthy state, got %v", fixes)
	}
}
