package engine

import (
	"bytes"
	"fmt"
	"math/rand"
	"testing"

	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/MValdesGames/NocheEnLaMansion/internal/domain/encounter"
	"github.com/MValdesGames/NocheEnLaMansion/internal/domain/ending"
)

// captureNarrator collects narration lines for assertions.
type captureNarrator struct {
	lines []string
}

func (c *captureNarrator) Narrate(line string) { c.lines = append(c.lines, line) }

func newTestOrchestrator(seed int64) (*Orchestrator, *captureNarrator) {
	cfg := DefaultConfig()
	cfg.StartFear = 0
	nar := &captureNarrator{}
	o := New(cfg, Deps{
		Narrator: nar,
		Rand:     rand.New(rand.NewSource(seed)),
	})
	return o, nar
}

func TestTerrorStrainsTheHeart(t *testing.T) {
	o, _ := newTestOrchestrator(1)
	o.fear.SetLevel(90)
	healthBefore := o.health.Level()

	// A heavy scare pushes fear into the red; the body pays for it.
	o.applyConsequences([]encounter.Consequence{
		{Kind: encounter.ConsequenceFear, Value: 1.5, Ref: "apparition"},
	}, "test")

	if o.fear.Level() < 95 {
		t.Fatalf("Expected fear driven past 95, got %v", o.fear.Level())
	}
	if o.health.Level() >= healthBefore {
		t.Errorf("Expected the terror to strain the heart, health %v -> %v", healthBefore, o.health.Level())
	}
}

func TestWoundNearDeathFeedsFear(t *testing.T) {
	o, _ := newTestOrchestrator(1)
	o.health.SetLevel(30)
	fearBefore := o.fear.Level()

	// A strike that leaves the body at 20 or below forces mortal dread.
	o.applyConsequences([]encounter.Consequence{
		{Kind: encounter.ConsequenceDamage, Value: 1.0, Ref: "strike"},
	}, "test")

	if o.health.Level() > 20 {
		t.Fatalf("Expected the strike to leave health at 20 or below, got %v", o.health.Level())
	}
	if o.fear.Level() <= fearBefore {
		t.Errorf("Expected mortal dread off the wound, fear %v -> %v", fearBefore, o.fear.Level())
	}
}

func TestLowHealthAloneDoesNotCompoundFear(t *testing.T) {
	o, _ := newTestOrchestrator(1)
	o.health.SetLevel(18)
	o.fear.SetLevel(10)

	// A second of quiet frames with the body already failing. Dread rides
	// wounds, not the wounded state, so fear only decays.
	for i := 0; i < 60; i++ {
		o.step(16.7, nil)
	}

	if finished, _ := o.Finished(); finished {
		t.Fatal("Expected the run still going with no damage landing")
	}
	if o.fear.Level() > 10 {
		t.Errorf("Expected fear to decay with nothing happening, got %v", o.fear.Level())
	}
}

func TestDepletedHealthEndsTheRunSameTick(t *testing.T) {
	o, _ := newTestOrchestrator(1)

	// A killing blow lands, then the tick that carries it runs to its end.
	o.applyConsequences([]encounter.Consequence{
		{Kind: encounter.ConsequenceDamage, Value: 100, Ref: "strike"},
	}, "test")
	o.step(16, nil)

	finished, result := o.Finished()
	if !finished {
		t.Fatal("Expected the run finished on the tick health hit zero")
	}
	if result.Ending.Tier != ending.TierDeath {
		t.Errorf("Expected a death ending, got %q", result.Ending.Tier)
	}

	// A dead run takes no further commands.
	if o.HandleCommand("go to the library") {
		t.Error("Expected commands refused after the run ended")
	}
}

func TestMaxedFearEndsTheRun(t *testing.T) {
	o, _ := newTestOrchestrator(1)
	o.fear.SetLevel(90)

	// An overwhelming apparition pins fear at the ceiling; the lingering
	// effect holds it there through the next tick.
	o.applyConsequences([]encounter.Consequence{
		{Kind: encounter.ConsequenceFear, Value: 10, Ref: "apparition"},
	}, "test")
	o.step(16, nil)

	finished, result := o.Finished()
	if !finished {
		t.Fatal("Expected the run finished at fear 100")
	}
	if result.Ending.ID != "fear_death" {
		t.Errorf("Expected fear_death, got %q", result.Ending.ID)
	}
}

func TestDawnEndsTheNightAlive(t *testing.T) {
	o, _ := newTestOrchestrator(1)

	// One oversized frame carries the whole night through to dawn.
	o.step(8*60*1000, nil)

	finished, result := o.Finished()
	if !finished {
		t.Fatal("Expected the run finished at dawn")
	}
	if result.Ending.Tier != ending.TierVictory {
		t.Errorf("Expected a victory at dawn, got %q (%q)", result.Ending.Tier, result.Ending.ID)
	}

	snap := o.Snapshot()
	if !snap.Finished || snap.EndingTitle == "" {
		t.Errorf("Expected a finished snapshot with an ending title, got %+v", snap)
	}
}

func TestMovementRespectsDoorways(t *testing.T) {
	o, nar := newTestOrchestrator(1)

	o.step(16, []string{"go to the library"})
	if o.Snapshot().Location != "library" {
		t.Fatalf("Expected the player in the library, got %q", o.Snapshot().Location)
	}
	if len(nar.lines) == 0 {
		t.Error("Expected narration on entering a room")
	}

	// The cellar has no door to the library.
	o.step(16, []string{"go to the cellar"})
	if o.Snapshot().Location != "library" {
		t.Errorf("Expected the blocked move to keep the player in the library, got %q", o.Snapshot().Location)
	}

	o.step(16, []string{"go to the study"})
	if o.Snapshot().Location != "study" {
		t.Errorf("Expected the player in the study, got %q", o.Snapshot().Location)
	}
}

func TestDirectorTriggerAndResponse(t *testing.T) {
	o, _ := newTestOrchestrator(1)

	if o.TriggerEncounter("no_such_encounter") {
		t.Error("Expected an unknown encounter id refused")
	}

	if !o.TriggerEncounter("settling_creak") {
		t.Fatal("Expected the forced creak to fire")
	}
	if o.fear.Level() <= 0 {
		t.Error("Expected the creak to raise fear")
	}

	if !o.TriggerEncounter("shadow_at_the_stairs") {
		t.Fatal("Expected the forced threat to fire")
	}
	if !o.Snapshot().Awaiting {
		t.Fatal("Expected the snapshot awaiting a response")
	}

	// Nothing stacks on a pending threat.
	if o.TriggerEncounter("settling_creak") {
		t.Error("Expected a second trigger refused while one is pending")
	}

	survived := o.eventsSurvived
	o.step(16, []string{"hide"})
	if o.Snapshot().Awaiting {
		t.Error("Expected the threat resolved by the answer")
	}
	if o.eventsSurvived != survived+1 {
		t.Errorf("Expected the answered threat counted as survived, %d -> %d", survived, o.eventsSurvived)
	}
}

func TestExportRestoreRoundTrip(t *testing.T) {
	o1, _ := newTestOrchestrator(1)
	o1.step(16, []string{"go to the library"})
	o1.step(16, []string{"search the shelves"})

	s1 := o1.ExportState()

	o2, _ := newTestOrchestrator(2)
	o2.Restore(s1)
	s2 := o2.ExportState()

	b1, err := Serialize(s1)
	if err != nil {
		t.Fatalf("Serialize failed: %v", err)
	}
	b2, err := Serialize(s2)
	if err != nil {
		t.Fatalf("Serialize failed: %v", err)
	}
	if !bytes.Equal(b1, b2) {
		t.Errorf("Expected an identical state after restore\nfirst:  %s\nsecond: %s", b1, b2)
	}

	if o2.RunID() != o1.RunID() {
		t.Errorf("Expected the restored run to keep its id, %q vs %q", o2.RunID(), o1.RunID())
	}
	if o2.Snapshot().Location != "library" {
		t.Errorf("Expected the restored player in the library, got %q", o2.Snapshot().Location)
	}
}

func TestCommandLogKeepsLastFifty(t *testing.T) {
	o, _ := newTestOrchestrator(1)

	for i := 0; i < 60; i++ {
		o.processCommand(fmt.Sprintf("whisper %d", i), float64(i))
	}

	recent := o.RecentCommands()
	if len(recent) != 50 {
		t.Fatalf("Expected the last 50 commands kept, got %d", len(recent))
	}
	if recent[0] != "whisper 10" {
		t.Errorf("Expected the oldest surviving command to be %q, got %q", "whisper 10", recent[0])
	}
	if recent[49] != "whisper 59" {
		t.Errorf("Expected the newest command last, got %q", recent[49])
	}
}

func TestEndingEvaluationIsTraced(t *testing.T) {
	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	defer otel.SetTracerProvider(prev)

	o, _ := newTestOrchestrator(1)
	o.step(8*60*1000, nil)

	if finished, _ := o.Finished(); !finished {
		t.Fatal("Expected the run finished at dawn")
	}
	for _, s := range sr.Ended() {
		if s.Name() == "ending.Evaluate" {
			return
		}
	}
	t.Errorf("Expected an ending.Evaluate span, got %d spans", len(sr.Ended()))
}

func TestDegradationShedsLoad(t *testing.T) {
	o, _ := newTestOrchestrator(1)

	o.onDegraded(12)
	if o.checkIntervalMs != o.cfg.EncounterCheckMs*2 {
		t.Errorf("Expected the check interval doubled, got %v", o.checkIntervalMs)
	}
	if o.generator.chance != o.cfg.EncounterChance*0.5 {
		t.Errorf("Expected the encounter chance halved, got %v", o.generator.chance)
	}

	o.onRecovered(60)
	if o.checkIntervalMs != o.cfg.EncounterCheckMs {
		t.Errorf("Expected the check interval restored, got %v", o.checkIntervalMs)
	}
	if o.generator.chance != o.cfg.EncounterChance {
		t.Errorf("Expected the encounter chance restored, got %v", o.generator.chance)
	}
}
