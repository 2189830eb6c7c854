// The Orchestrator is the single entry point to a running night. It owns
// the loop, the clock, both meters, the inventory, and the encounter
// generator, and it is the only place where those subsystems touch each
// other. Everything outside this package talks to the Orchestrator.
package engine

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/MValdesGames/NocheEnLaMansion/internal/domain/encounter"
	"github.com/MValdesGames/NocheEnLaMansion/internal/domain/ending"
	"github.com/MValdesGames/NocheEnLaMansion/internal/domain/item"
	"github.com/MValdesGames/NocheEnLaMansion/internal/domain/manor"
	"github.com/MValdesGames/NocheEnLaMansion/internal/domain/meter"
	"github.com/MValdesGames/NocheEnLaMansion/internal/domain/rules"
	"github.com/MValdesGames/NocheEnLaMansion/internal/events"
	"github.com/MValdesGames/NocheEnLaMansion/internal/platform/logger"
	"github.com/MValdesGames/NocheEnLaMansion/internal/platform/metrics"
)

// Orchestrator runs one night in the house.
type Orchestrator struct {
	cfg  Config
	deps Deps

	log    *events.Log
	logger *logger.Logger

	mu        sync.Mutex
	clock     *Clock
	fear      *meter.FearMeter
	health    *meter.HealthMeter
	inventory *InventorySystem
	generator *Generator
	loop      *Loop
	rng       *rand.Rand

	runID    string
	location string

	commandsIssued int
	commandLog     []string
	itemsCollected int
	itemsUsed      int
	secretsFound   int
	eventsSurvived int

	finished bool
	alive    bool
	result   ending.Result

	// Per-tick cross-coupling guards.
	fearStrainFired bool
	dreadFired      bool

	encounterTimerMs float64
	checkIntervalMs  float64

	snapshot atomic.Pointer[Snapshot]

	subMu   sync.RWMutex
	subs    map[int]NotifyFunc
	nextSub int
}

// New wires up a fresh night. Deps.Logger is required.
func New(cfg Config, deps Deps) *Orchestrator {
	cfg = cfg.withDefaults()
	if deps.Logger == nil {
		deps.Logger = logger.NewLogger()
	}
	if deps.Metrics == nil {
		deps.Metrics = metrics.Get()
	}
	if deps.Rand == nil {
		seed := cfg.Seed
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		deps.Rand = rand.New(rand.NewSource(seed))
	}

	o := &Orchestrator{
		cfg:             cfg,
		deps:            deps,
		logger:          deps.Logger,
		log:             events.NewLog(10000, deps.Persister),
		clock:           NewClock(cfg.TimeRatio, cfg.StartHour, cfg.EndHour),
		fear:            meter.NewFearMeter(cfg.StartFear),
		health:          meter.NewHealthMeter(cfg.StartHealth),
		rng:             deps.Rand,
		runID:           uuid.NewString(),
		location:        manor.StartLocation,
		alive:           true,
		checkIntervalMs: cfg.EncounterCheckMs,
		subs:            make(map[int]NotifyFunc),
	}
	o.inventory = NewInventorySystem(o.log, o.logger)
	o.generator = NewGenerator(o.rng, cfg.EncounterChance, cfg.ResponseWindowMs)
	o.loop = NewLoop(cfg, o.logger, deps.Metrics, o.step)
	o.loop.OnDegraded(o.onDegraded)
	o.loop.OnRecovered(o.onRecovered)
	o.wireClock()
	o.publish()
	return o
}

// wireClock registers the scripted beats of the night.
func (o *Orchestrator) wireClock() {
	o.clock.OnHour(func(hour int) {
		o.log.Append(events.NewRecord(o.clock.ElapsedMs(), events.EventTypeHourTick, "house", float64(hour), o.clock.Format()))
		o.narrate(fmt.Sprintf("Somewhere below, a clock strikes %d.", clockFace(hour)))
		o.notify(Notification{Kind: NotifyHour, Text: o.clock.Format(), Value: float64(hour)})
	})

	o.clock.OnceAt("midnight", 0, 0, func() {
		o.narrate("Midnight. The house draws a breath and holds it.")
		o.applyConsequences([]encounter.Consequence{
			{Kind: encounter.ConsequenceFear, Value: 1.2, Ref: "ambient"},
			{Kind: encounter.ConsequenceAmbient, Ref: "midnight_still"},
		}, "midnight")
	})
	o.clock.OnceAt("dead_hour", 3, 0, func() {
		o.narrate("Three in the morning. Whatever keeps the house runs loudest now.")
		o.applyConsequences([]encounter.Consequence{
			{Kind: encounter.ConsequenceFear, Value: 1.3, Ref: "whisper"},
			{Kind: encounter.ConsequenceSound, Ref: "heartbeat_walls"},
		}, "dead_hour")
	})
	o.clock.OnceAt("false_dawn", 5, 30, func() {
		o.narrate("The dark thins at the window edges. Not dawn yet, but its rumor.")
		o.applyConsequences([]encounter.Consequence{
			{Kind: encounter.ConsequenceCalm, Value: 5},
		}, "false_dawn")
	})

	o.clock.OnDawn(func() {
		o.finish(true)
	})
}

// Start begins the night. Call once.
func (o *Orchestrator) Start(ctx context.Context) {
	o.log.Append(events.NewRecord(0, events.EventTypeSimStart, "house", 0, o.runID))
	o.logger.Info("night started: run %s, ratio %.0fx, %02d:00 to %02d:00",
		o.runID, o.cfg.TimeRatio, o.cfg.StartHour, o.cfg.EndHour)
	o.narrate("The lock turns behind you. The night is yours to survive.")
	go o.loop.Run(ctx)
}

// Stop ends the loop without evaluating an ending.
func (o *Orchestrator) Stop() { o.loop.Stop() }

// Pause freezes the night; Resume releases it. Virtual time does not move
// while paused.
func (o *Orchestrator) Pause() {
	o.loop.Pause()
	o.publishLocked()
}

// Resume continues a paused night.
func (o *Orchestrator) Resume() {
	o.loop.Resume()
	o.publishLocked()
}

// Paused reports the pause flag.
func (o *Orchestrator) Paused() bool { return o.loop.Paused() }

// Finished reports whether the night has ended, and how.
func (o *Orchestrator) Finished() (bool, ending.Result) {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.finished, o.result
}

// RunID identifies this night.
func (o *Orchestrator) RunID() string { return o.runID }

// History returns the audit trail so far.
func (o *Orchestrator) History() []events.Record { return o.log.Replay() }

// commandLogCap bounds the recent-command window; older entries are evicted.
const commandLogCap = 50

// RecentCommands returns up to the last 50 commands issued, oldest first.
func (o *Orchestrator) RecentCommands() []string {
	o.mu.Lock()
	defer o.mu.Unlock()
	out := make([]string, len(o.commandLog))
	copy(out, o.commandLog)
	return out
}

// HandleCommand offers a player command to the queue. Returns false when
// the night is over or the queue is full.
func (o *Orchestrator) HandleCommand(text string) bool {
	o.mu.Lock()
	done := o.finished
	o.mu.Unlock()
	if done {
		return false
	}
	ok := o.loop.Enqueue(text)
	if !ok {
		o.logger.Warn("command queue full, dropped: %q", text)
	}
	o.deps.Metrics.RecordCommand(ok)
	return ok
}

// TriggerEncounter fires a catalog encounter by id, bypassing its gates.
// This is the director's lever; it is audited.
func (o *Orchestrator) TriggerEncounter(id string) bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.finished {
		return false
	}
	t, ok := o.generator.Force(id, o.clock.ElapsedMs())
	if !ok {
		return false
	}
	o.log.Append(events.NewRecord(o.clock.ElapsedMs(), events.EventTypeDirectorAction, "director", 0, id))
	o.deliverEncounter(t)
	o.checkDeath()
	o.publishLocked()
	return true
}

// Subscribe registers a notification listener. The returned function
// removes it; calling it more than once is safe.
func (o *Orchestrator) Subscribe(fn NotifyFunc) func() {
	o.subMu.Lock()
	id := o.nextSub
	o.nextSub++
	o.subs[id] = fn
	o.subMu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			o.subMu.Lock()
			delete(o.subs, id)
			o.subMu.Unlock()
		})
	}
}

// Snapshot returns the state published after the most recent tick.
func (o *Orchestrator) Snapshot() Snapshot {
	return *o.snapshot.Load()
}

// step is the per-frame heart of the simulation, called by the loop.
func (o *Orchestrator) step(dtMs float64, commands []string) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.finished {
		return
	}

	o.fearStrainFired = false
	o.dreadFired = false

	nowMs := o.clock.ElapsedMs() + dtMs
	loc, _ := manor.Get(o.location)
	hour := o.clock.Hour()

	// Meters first, then the clock: a frame that crosses dawn still counts
	// its last seconds of dread.
	fearBandBefore := o.fear.Band()
	healthBandBefore := o.health.Band()

	o.fear.Update(dtMs, nowMs, meter.FearDecayEnv{
		LocationScale: loc.DecayScale,
		Hour:          hour,
		CrossHealth:   o.health.Level(),
	})
	o.health.Update(dtMs, nowMs, meter.RegenEnv{CrossFear: o.fear.Level()})

	o.inventory.Burn(dtMs, nowMs)

	// Encounter generation runs on a real-time cadence, not per frame.
	o.encounterTimerMs += dtMs
	if o.encounterTimerMs >= o.checkIntervalMs {
		o.encounterTimerMs = 0
		if t := o.generator.Check(nowMs, hour, o.fear.Level(), o.health.Level()); t != nil {
			o.deliverEncounter(t)
		}
	}
	if res := o.generator.Expire(nowMs); res != nil {
		o.resolveEncounter(res, nowMs)
	}

	for _, cmd := range commands {
		o.processCommand(cmd, nowMs)
		if o.finished {
			return
		}
	}

	if fb := o.fear.Band(); fb != fearBandBefore {
		o.notify(Notification{Kind: NotifyFearBand, Text: fb, Value: o.fear.Level()})
	}
	if hb := o.health.Band(); hb != healthBandBefore {
		o.notify(Notification{Kind: NotifyHealthBand, Text: hb, Value: o.health.Level()})
	}

	if o.checkDeath() {
		return
	}

	// Advancing the clock may fire dawn, which finishes the run.
	o.clock.Advance(dtMs)
	if o.finished {
		return
	}

	o.publishLocked()
}

// crossCouple is the only place fear and health feed each other. Each
// direction fires at most once per tick, and only off an actual spike:
// a fear trigger that lands at 95 or above strains the heart, and a wound
// that leaves health at 20 or below forces mortal dread. A merely low
// gauge, with no fresh event behind it, couples nothing.
func (o *Orchestrator) crossCouple(fc, hc meter.Change, nowMs float64) {
	loc, _ := manor.Get(o.location)

	if !o.fearStrainFired && fc.Spike && o.fear.Level() >= 95 {
		o.fearStrainFired = true
		ch := o.health.Damage("terror_strain", 1.0, "fear", meter.DamageEnv{
			LocationFactor: 1.0, TimeFactor: 1.0, CrossFear: o.fear.Level(),
		}, nowMs)
		o.log.Append(events.NewRecord(nowMs, events.EventTypeHealthChange, "house", ch.Delta, "terror_strain"))
		o.narrate("Your heart hammers hard enough to hurt.")
		hc = ch
	}

	if !o.dreadFired && hc.Spike && hc.Delta < 0 && o.health.Level() <= 20 && o.health.Level() > 0 {
		o.dreadFired = true
		ch := o.fear.Trigger("mortal_dread", 1.0, "body", meter.FearEnv{
			LocationFactor: loc.FearFactor, TimeFactor: 1.0, CrossHealth: o.health.Level(),
		}, nowMs)
		if ch.Delta > 0 {
			o.log.Append(events.NewRecord(nowMs, events.EventTypeFearChange, "house", ch.Delta, "mortal_dread"))
		}
	}
}

// deliverEncounter narrates a fired encounter and applies its immediate
// consequences. Caller holds the lock.
func (o *Orchestrator) deliverEncounter(t *Triggered) {
	nowMs := o.clock.ElapsedMs()
	o.deps.Metrics.RecordEncounter(false)
	o.log.Append(events.NewRecord(nowMs, events.EventTypeEncounter, "house", 0, t.Def.ID))
	o.logger.Event("ENCOUNTER", "house", t.Def.ID)
	o.narrate(t.Def.Narration)
	o.applyConsequences(t.Def.Consequences, t.Def.ID)

	if t.AwaitingResponse {
		o.notify(Notification{Kind: NotifyEncounter, Text: t.Def.ID, Value: t.DeadlineMs})
	} else {
		o.eventsSurvived++
	}
}

// resolveEncounter closes out a Threat or Choice, by answer or by timeout.
func (o *Orchestrator) resolveEncounter(res *Resolution, nowMs float64) {
	if res.TimedOut {
		o.deps.Metrics.RecordEncounter(true)
		o.log.Append(events.NewRecord(nowMs, events.EventTypeEncounterReply, "house", 0, res.Def.ID+":timeout"))
	} else {
		o.log.Append(events.NewRecord(nowMs, events.EventTypeEncounterReply, "player", 0, res.Def.ID))
	}
	if res.Narration != "" {
		o.narrate(res.Narration)
	}
	o.applyConsequences(res.Outcome, res.Def.ID)
	if !o.checkDeath() {
		o.eventsSurvived++
	}
}

// applyConsequences is the single funnel through which encounter outcomes
// reach the meters, the inventory, and the collaborators.
func (o *Orchestrator) applyConsequences(cs []encounter.Consequence, source string) {
	nowMs := o.clock.ElapsedMs()
	loc, _ := manor.Get(o.location)
	hour := o.clock.Hour()

	for _, c := range cs {
		switch c.Kind {
		case encounter.ConsequenceFear:
			ch := o.fear.Trigger(c.Ref, c.Value, source, meter.FearEnv{
				LocationFactor: loc.FearFactor,
				TimeFactor:     timeFactor(hour),
				CrossHealth:    o.health.Level(),
			}, nowMs)
			o.log.Append(events.NewRecord(nowMs, events.EventTypeFearChange, "house", ch.Delta, c.Ref))
			o.crossCouple(ch, meter.Change{}, nowMs)

		case encounter.ConsequenceDamage:
			ch := o.health.Damage(c.Ref, c.Value, source, meter.DamageEnv{
				LocationFactor: loc.FearFactor,
				TimeFactor:     timeFactor(hour),
				CrossFear:      o.fear.Level(),
			}, nowMs)
			o.log.Append(events.NewRecord(nowMs, events.EventTypeHealthChange, "house", ch.Delta, c.Ref))
			o.crossCouple(meter.Change{}, ch, nowMs)

		case encounter.ConsequenceCalm:
			ch := o.fear.Soothe(c.Value, source)
			o.log.Append(events.NewRecord(nowMs, events.EventTypeFearChange, "house", ch.Delta, source))

		case encounter.ConsequenceHeal:
			ch := o.health.Heal(c.Value, source)
			o.log.Append(events.NewRecord(nowMs, events.EventTypeHealthChange, "house", ch.Delta, source))

		case encounter.ConsequenceItem:
			if def, ok := o.inventory.Grant(c.Ref, nowMs); ok {
				o.itemsCollected++
				o.narrate("You now carry: " + def.Name + ".")
			}

		case encounter.ConsequenceSecret:
			o.secretsFound++
			o.log.Append(events.NewRecord(nowMs, events.EventTypeSecretFound, "player", float64(o.secretsFound), source))
			o.logger.Event("SECRET_FOUND", "player", source)

		case encounter.ConsequenceSound:
			o.playSound(c.Ref)

		case encounter.ConsequenceAmbient:
			o.setAmbient(c.Ref)

		case encounter.ConsequenceNarrate:
			o.narrate(c.Ref)
		}
	}
}

// processCommand interprets one queued player command.
func (o *Orchestrator) processCommand(text string, nowMs float64) {
	norm := strings.ToLower(strings.TrimSpace(text))
	if norm == "" {
		return
	}
	o.commandsIssued++
	o.commandLog = append(o.commandLog, norm)
	if len(o.commandLog) > commandLogCap {
		o.commandLog = o.commandLog[len(o.commandLog)-commandLogCap:]
	}
	o.log.Append(events.NewRecord(nowMs, events.EventTypeCommand, "player", 0, norm))

	// A pending Threat or Choice gets first claim on the text.
	if o.generator.Awaiting() {
		if res, ok := o.generator.Respond(norm, nowMs); ok {
			o.resolveEncounter(res, nowMs)
			return
		}
	}

	// Fear makes hands clumsy and words fail.
	if o.rng.Float64() >= o.fear.SuccessRate() {
		o.log.Append(events.NewRecord(nowMs, events.EventTypeCommandFailed, "player", o.fear.Level(), norm))
		o.narrate("You fumble it. Fear has your fingers.")
		return
	}

	contains := func(alias string) bool { return strings.Contains(norm, alias) }

	switch {
	case strings.HasPrefix(norm, "go ") || strings.HasPrefix(norm, "move "):
		o.commandGo(norm, nowMs)

	case strings.HasPrefix(norm, "search") || strings.HasPrefix(norm, "look around"):
		o.commandSearch(nowMs)

	case strings.HasPrefix(norm, "use "):
		if id, ok := o.inventory.MatchAlias(contains); ok {
			o.commandUse(id, nowMs)
		} else {
			o.narrate("You carry nothing like that.")
		}

	case norm == "hide":
		ch := o.fear.Soothe(6, "hiding")
		o.log.Append(events.NewRecord(nowMs, events.EventTypeFearChange, "player", ch.Delta, "hiding"))
		o.narrate("You fold yourself into the shadows and breathe slowly.")

	case norm == "status" || norm == "look":
		o.commandStatus()

	default:
		// Unknown verbs still count as issued; the house does not answer.
		o.narrate("The house does not understand, or does not care to.")
	}
}

func (o *Orchestrator) commandGo(norm string, nowMs float64) {
	dest, ok := manor.Resolve(norm)
	if !ok {
		o.narrate("No room by that name, not in this house.")
		return
	}
	if dest.ID == o.location {
		o.narrate("You are already there.")
		return
	}
	if !manor.Connected(o.location, dest.ID) {
		o.narrate("There is no way through from here to " + dest.Name + ".")
		return
	}
	o.location = dest.ID
	o.log.Append(events.NewRecord(nowMs, events.EventTypeMove, "player", 0, dest.ID))
	o.logger.Event("MOVE", "player", dest.ID)
	o.narrate(dest.Flavor)
}

func (o *Orchestrator) commandSearch(nowMs float64) {
	found := o.inventory.Discover(o.location, o.rng, nowMs)
	if len(found) == 0 {
		o.narrate("You search and find only dust and the sense of being watched.")
		return
	}
	for _, def := range found {
		o.itemsCollected++
		o.narrate("Found: " + def.Name + ".")
	}
}

func (o *Orchestrator) commandUse(id string, nowMs float64) {
	res := o.inventory.Use(id, item.UseContext{
		NowMs:     nowMs,
		FearLevel: o.fear.Level(),
		Location:  o.location,
	})
	if !res.Success {
		if res.NarrationHint != "" {
			o.narrate(res.NarrationHint)
		} else {
			o.narrate("Nothing comes of it.")
		}
		return
	}
	o.itemsUsed++
	if res.NarrationHint != "" {
		o.narrate(res.NarrationHint)
	}

	for kind, value := range res.Effects {
		switch kind {
		case item.EffectCalm:
			ch := o.fear.Soothe(value, id)
			o.log.Append(events.NewRecord(nowMs, events.EventTypeFearChange, "player", ch.Delta, id))
		case item.EffectHeal:
			ch := o.health.Heal(value, id)
			o.log.Append(events.NewRecord(nowMs, events.EventTypeHealthChange, "player", ch.Delta, id))
		case item.EffectWard:
			// A ward dampens the next stretch of fear triggers.
			o.fear.AddModifier(1.0-value/100.0, nowMs+60000)
		case item.EffectReveal:
			o.secretsFound++
			o.log.Append(events.NewRecord(nowMs, events.EventTypeSecretFound, "player", float64(o.secretsFound), id))
		case item.EffectLight:
			if res.Activated {
				o.setAmbient("lantern_glow")
			} else if res.Deactivated {
				o.setAmbient("darkness")
			}
		case item.EffectUnlock:
			o.narrate("The lock gives. Somewhere, the house adjusts its plans.")
			o.secretsFound++
			o.log.Append(events.NewRecord(nowMs, events.EventTypeSecretFound, "player", float64(o.secretsFound), id))
		}
	}
}

func (o *Orchestrator) commandStatus() {
	loc, _ := manor.Get(o.location)
	o.narrate(fmt.Sprintf("%s. %s. Fear %s, body %s. Carrying %d things.",
		o.clock.Format(), loc.Name, o.fear.Band(), o.health.Band(), o.inventory.Count()))
}

// checkDeath finishes the run on the same tick a meter hits its fatal
// bound. Returns true when the night just ended.
func (o *Orchestrator) checkDeath() bool {
	if o.finished {
		return true
	}
	if o.fear.MaxedOut() || o.health.Depleted() {
		o.finish(false)
		return true
	}
	return false
}

// finish evaluates the ending and closes the run. Caller holds the lock
// (or is a clock callback inside step).
func (o *Orchestrator) finish(alive bool) {
	if o.finished {
		return
	}
	o.finished = true
	o.alive = alive

	_, span := otel.Tracer("manor/engine").Start(context.Background(), "ending.Evaluate")
	stats := o.stats()
	o.result = ending.Evaluate(alive, stats)
	span.SetAttributes(
		attribute.Bool("run.alive", alive),
		attribute.String("ending.id", o.result.Ending.ID),
		attribute.Float64("ending.score", o.result.Score),
	)
	span.End()

	o.log.Append(events.NewRecord(o.clock.ElapsedMs(), events.EventTypeSimFinish, "house",
		o.result.Score, o.result.Ending.ID))
	o.logger.Event("SIM_FINISH", "house", fmt.Sprintf("%s (score %.2f)", o.result.Ending.ID, o.result.Score))
	o.deps.Metrics.RecordRunFinished()

	o.narrate(o.result.Ending.Title + ". " + o.result.Ending.Epilogue)
	o.notify(Notification{Kind: NotifyEnding, Text: o.result.Ending.ID, Value: o.result.Score})

	if o.deps.Sink != nil {
		if err := o.deps.Sink.RecordEnding(o.runID, o.result, stats); err != nil {
			o.logger.Error("recording ending: %v", err)
		}
	}

	o.publishLocked()
	o.loop.Stop()
}

// stats assembles the final tally for the ending evaluator.
func (o *Orchestrator) stats() ending.Stats {
	hours := o.clock.TotalMinutes() / 60
	score := rules.SurvivalScore(rules.SurvivalScoreParams{
		SurvivedHours:  hours,
		FinalHealth:    o.health.Level(),
		FinalFear:      o.fear.Level(),
		SecretsFound:   o.secretsFound,
		EventsSurvived: o.eventsSurvived,
		ItemsUsed:      o.itemsUsed,
	})
	return ending.Stats{
		SurvivalHours:  hours,
		FinalFear:      o.fear.Level(),
		FinalHealth:    o.health.Level(),
		CommandsIssued: float64(o.commandsIssued),
		ItemsCollected: float64(o.itemsCollected),
		ItemsUsed:      float64(o.itemsUsed),
		SecretsFound:   float64(o.secretsFound),
		EventsSurvived: float64(o.eventsSurvived),
		SurvivalScore:  score,
	}
}

// ExportState captures the run for saving.
func (o *Orchestrator) ExportState() SimulationState {
	o.mu.Lock()
	defer o.mu.Unlock()
	return SimulationState{
		SchemaVersion:  SchemaVersion,
		RunID:          o.runID,
		ElapsedMs:      o.clock.ElapsedMs(),
		Fear:           o.fear.Level(),
		Health:         o.health.Level(),
		Location:       o.location,
		Items:          o.inventory.Items(),
		CommandsIssued: o.commandsIssued,
		ItemsCollected: o.itemsCollected,
		ItemsUsed:      o.itemsUsed,
		SecretsFound:   o.secretsFound,
		EventsSurvived: o.eventsSurvived,
		Finished:       o.finished,
		Alive:          o.alive,
		EndingID:       o.result.Ending.ID,
		Log:            o.log.Replay(),
	}
}

// Restore loads a saved state into a not-yet-started orchestrator. The
// state is validated first and every repair is logged.
func (o *Orchestrator) Restore(s SimulationState) {
	o.mu.Lock()
	defer o.mu.Unlock()

	for _, fix := range ValidateState(&s) {
		o.logger.Warn("state repair: %s", fix)
	}

	o.runID = s.RunID
	o.clock.SetElapsed(s.ElapsedMs)
	o.fear.SetLevel(s.Fear)
	o.health.SetLevel(s.Health)
	o.location = s.Location
	o.inventory.Restore(s.Items)
	o.commandsIssued = s.CommandsIssued
	o.itemsCollected = s.ItemsCollected
	o.itemsUsed = s.ItemsUsed
	o.secretsFound = s.SecretsFound
	o.eventsSurvived = s.EventsSurvived
	o.finished = s.Finished
	o.alive = s.Alive
	o.log.Restore(s.Log)
	o.publishLocked()
	o.logger.Info("run %s restored at %s", o.runID, o.clock.Format())
}

// onDegraded sheds load: encounter checks stretch out and fire less often.
func (o *Orchestrator) onDegraded(fps float64) {
	o.checkIntervalMs = o.cfg.EncounterCheckMs * 2
	o.generator.SetChance(o.cfg.EncounterChance * 0.5)
	o.log.Append(events.NewRecord(o.clock.ElapsedMs(), events.EventTypeDegradation, "house", fps, "degraded"))
	o.notify(Notification{Kind: NotifyDegradation, Text: "degraded", Value: fps})
}

func (o *Orchestrator) onRecovered(fps float64) {
	o.checkIntervalMs = o.cfg.EncounterCheckMs
	o.generator.SetChance(o.cfg.EncounterChance)
	o.notify(Notification{Kind: NotifyDegradation, Text: "recovered", Value: fps})
}

// publishLocked rebuilds and swaps the snapshot. Caller holds o.mu.
func (o *Orchestrator) publishLocked() {
	loc, _ := manor.Get(o.location)
	items := o.inventory.Items()
	views := make([]ItemView, 0, len(items))
	for _, inst := range items {
		def, _ := item.Get(inst.ID)
		views = append(views, ItemView{
			ID:         inst.ID,
			Name:       def.Name,
			Durability: inst.Durability,
			IsActive:   inst.IsActive,
		})
	}

	snap := &Snapshot{
		RunID:          o.runID,
		TimeLabel:      o.clock.Format(),
		Hour:           o.clock.Hour(),
		ElapsedMs:      o.clock.ElapsedMs(),
		Fear:           o.fear.Level(),
		FearBand:       o.fear.Band(),
		Health:         o.health.Level(),
		HealthBand:     o.health.Band(),
		Location:       o.location,
		LocationName:   loc.Name,
		Items:          views,
		SecretsFound:   o.secretsFound,
		EventsSurvived: o.eventsSurvived,
		Awaiting:       o.generator.Awaiting(),
		Paused:         o.loop.Paused(),
		FPS:            o.loop.FPS(),
		Finished:       o.finished,
	}
	if o.finished {
		snap.EndingID = o.result.Ending.ID
		snap.EndingTitle = o.result.Ending.Title
	}
	o.snapshot.Store(snap)
}

// publish is publishLocked for construction time, before the loop exists.
func (o *Orchestrator) publish() {
	o.publishLocked()
}

// narrate forwards prose to the narrator, surviving a panicking
// implementation.
func (o *Orchestrator) narrate(line string) {
	if o.deps.Narrator == nil || line == "" {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			o.logger.Error("narrator panicked: %v", r)
		}
	}()
	o.deps.Narrator.Narrate(line)
}

func (o *Orchestrator) playSound(effect string) {
	if o.deps.Audio == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			o.logger.Error("audio player panicked: %v", r)
		}
	}()
	o.deps.Audio.PlaySound(effect)
}

func (o *Orchestrator) setAmbient(loop string) {
	if o.deps.Audio == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			o.logger.Error("audio player panicked: %v", r)
		}
	}()
	o.deps.Audio.SetAmbient(loop)
}

// notify fans a notification out to subscribers. The list is copied first
// so an unsubscribe during delivery is safe.
func (o *Orchestrator) notify(n Notification) {
	o.subMu.RLock()
	fns := make([]NotifyFunc, 0, len(o.subs))
	for _, fn := range o.subs {
		fns = append(fns, fn)
	}
	o.subMu.RUnlock()
	for _, fn := range fns {
		fn(n)
	}
}

// timeFactor scales the house's malice by hour. The dead hours bite harder.
func timeFactor(hour int) float64 {
	if hour >= 2 && hour <= 4 {
		return 1.3
	}
	if hour == 5 {
		return 0.8
	}
	return 1.0
}

// clockFace maps a 24h hour to what an actual chime would strike.
func clockFace(hour int) int {
	h := hour % 12
	if h == 0 {
		return 12
	}
	return h
}
