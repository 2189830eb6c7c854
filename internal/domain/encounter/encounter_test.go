package encounter

import (
	"strings"
	"testing"
)

func TestWindowContains(t *testing.T) {
	full := Window{FromHour: 0, ToHour: 0}
	for h := 0; h < 24; h++ {
		if !full.Contains(h) {
			t.Errorf("Expected the full-night window to contain hour %d", h)
		}
	}

	early := Window{FromHour: 23, ToHour: 1}
	for _, h := range []int{23, 0, 1} {
		if !early.Contains(h) {
			t.Errorf("Expected the wrapped window 23-1 to contain hour %d", h)
		}
	}
	for _, h := range []int{2, 12, 22} {
		if early.Contains(h) {
			t.Errorf("Expected the wrapped window 23-1 to exclude hour %d", h)
		}
	}

	plain := Window{FromHour: 2, ToHour: 4}
	if !plain.Contains(3) || plain.Contains(5) || plain.Contains(1) {
		t.Error("Expected the window 2-4 to hold only its own hours")
	}
}

func TestGateMet(t *testing.T) {
	g := Gate{MinFear: 40, MaxHealth: 60}
	if g.Met(30, 50) {
		t.Error("Expected the gate closed below MinFear")
	}
	if g.Met(50, 80) {
		t.Error("Expected the gate closed above MaxHealth")
	}
	if !g.Met(50, 50) {
		t.Error("Expected the gate open inside both bounds")
	}

	// Zero maxima are unbounded, not "at most zero".
	open := Gate{}
	if !open.Met(100, 100) {
		t.Error("Expected the zero gate to admit everything")
	}
}

func TestCatalogIsSound(t *testing.T) {
	if len(Catalog) == 0 {
		t.Fatal("Expected a populated encounter catalog")
	}

	seen := make(map[string]bool)
	for _, def := range Catalog {
		if def.ID == "" {
			t.Error("Encounter with empty id")
			continue
		}
		if seen[def.ID] {
			t.Errorf("Duplicate encounter id %q", def.ID)
		}
		seen[def.ID] = true

		if def.Weight <= 0 {
			t.Errorf("Encounter %q has non-positive weight %v", def.ID, def.Weight)
		}
		if def.Narration == "" {
			t.Errorf("Encounter %q has no narration", def.ID)
		}

		interactive := def.Category == CategoryThreat || def.Category == CategoryChoice
		if interactive && len(def.Responses) == 0 {
			t.Errorf("Interactive encounter %q has no responses", def.ID)
		}
		if !interactive && len(def.Responses) > 0 {
			t.Errorf("Non-interactive encounter %q lists responses", def.ID)
		}
		if interactive && len(def.TimeoutOutcome) == 0 {
			t.Errorf("Interactive encounter %q has no timeout outcome", def.ID)
		}

		for _, r := range def.Responses {
			if r.Pattern != strings.ToLower(r.Pattern) {
				t.Errorf("Encounter %q response pattern %q is not lowercase", def.ID, r.Pattern)
			}
		}

		byID, ok := ByID(def.ID)
		if !ok || byID.ID != def.ID {
			t.Errorf("ByID(%q) disagrees with the catalog", def.ID)
		}
	}
}
