package engine

import (
	"math/rand"
	"testing"

	"github.com/MValdesGames/NocheEnLaMansion/internal/domain/encounter"
)

func newTestGenerator(chance float64) *Generator {
	return NewGenerator(rand.New(rand.NewSource(42)), chance, 15000)
}

func TestCheckHonorsWindowsAndGates(t *testing.T) {
	g := newTestGenerator(1.0) // always roll, isolate the filters

	nowMs := 0.0
	for trial := 0; trial < 10000; trial++ {
		nowMs += globalGapMs
		hour := trial % 24
		fear := float64(trial % 101)
		health := float64((trial * 7) % 101)

		tr := g.Check(nowMs, hour, fear, health)
		if tr == nil {
			continue
		}
		if !tr.Def.Window.Contains(hour) {
			t.Fatalf("Encounter %q fired outside its window at hour %d", tr.Def.ID, hour)
		}
		if !tr.Def.Gate.Met(fear, health) {
			t.Fatalf("Encounter %q fired past its gate (fear %v, health %v)", tr.Def.ID, fear, health)
		}
		if tr.AwaitingResponse {
			// Answer immediately so the next trial can fire.
			g.Expire(nowMs + 20000)
			nowMs += 20000
		}
	}
}

func TestCheckEnforcesGlobalGap(t *testing.T) {
	g := newTestGenerator(1.0)

	var first *Triggered
	nowMs := 0.0
	for first == nil {
		nowMs += globalGapMs
		first = g.Check(nowMs, 23, 50, 80)
	}
	if first.AwaitingResponse {
		g.Expire(nowMs + 20000)
	}

	// Nothing may fire inside the quiet gap after a hit.
	if tr := g.Check(nowMs+globalGapMs-1, 23, 50, 80); tr != nil {
		t.Errorf("Expected silence inside the global gap, got %q", tr.Def.ID)
	}
}

func TestCheckBlockedWhilePending(t *testing.T) {
	g := newTestGenerator(1.0)

	// Force an interactive encounter, then roll: nothing stacks on top.
	tr, ok := g.Force("shadow_at_the_stairs", 0)
	if !ok || !tr.AwaitingResponse {
		t.Fatalf("Expected a pending threat, ok=%v tr=%v", ok, tr)
	}
	if !g.Awaiting() {
		t.Fatal("Expected the generator awaiting a response")
	}

	for i := 1; i <= 20; i++ {
		if got := g.Check(float64(i)*globalGapMs, 23, 50, 80); got != nil {
			t.Fatalf("Expected no encounter while one is pending, got %q", got.Def.ID)
		}
	}
}

func TestRespondMatchesSubstringFirstWins(t *testing.T) {
	g := newTestGenerator(1.0)
	g.Force("shadow_at_the_stairs", 0)

	// Gibberish leaves the threat pending.
	if _, ok := g.Respond("open the front door", 1000); ok {
		t.Error("Expected a non-matching answer to be refused")
	}
	if !g.Awaiting() {
		t.Fatal("Expected the threat still pending after a refused answer")
	}

	// The answer is matched as a substring, case-insensitively.
	res, ok := g.Respond("I think I should HIDE behind the banister", 2000)
	if !ok || res == nil {
		t.Fatal("Expected the hide response to match")
	}
	if res.TimedOut {
		t.Error("Expected a live answer, not a timeout")
	}
	if res.Def.ID != "shadow_at_the_stairs" {
		t.Errorf("Expected resolution of shadow_at_the_stairs, got %q", res.Def.ID)
	}
	if g.Awaiting() {
		t.Error("Expected nothing pending after a matched answer")
	}
}

func TestExpireAppliesTimeoutOutcome(t *testing.T) {
	g := newTestGenerator(1.0)
	tr, _ := g.Force("grip_in_the_dark", 0)

	// Before the deadline nothing expires.
	if res := g.Expire(tr.DeadlineMs - 1); res != nil {
		t.Fatal("Expected no expiry before the deadline")
	}

	res := g.Expire(tr.DeadlineMs)
	if res == nil || !res.TimedOut {
		t.Fatalf("Expected a timeout resolution at the deadline, got %v", res)
	}
	if len(res.Outcome) == 0 {
		t.Error("Expected the timeout to carry consequences")
	}
}

func TestPerEncounterCooldown(t *testing.T) {
	g := newTestGenerator(1.0)

	def, _ := encounter.ByID("settling_creak")
	g.fire(def, 0)

	// Inside the cooldown the creak never comes up again.
	for now := globalGapMs; now < perEncounterCooldownMs; now += globalGapMs {
		pool := g.eligible(now, 23, 10, 100)
		for _, d := range pool {
			if d.ID == "settling_creak" {
				t.Fatalf("Expected settling_creak cooling down at %vms", now)
			}
		}
	}

	pool := g.eligible(perEncounterCooldownMs+1, 23, 10, 100)
	found := false
	for _, d := range pool {
		if d.ID == "settling_creak" {
			found = true
		}
	}
	if !found {
		t.Error("Expected settling_creak eligible again after its cooldown")
	}
}
