// The encounter generator decides what the house does next. It rolls on a
// real-time interval, filters the catalog by hour and meter gates, and
// samples by weight. It does not touch meters itself; the orchestrator
// applies the consequences it hands back.
package engine

import (
	"math/rand"
	"strings"

	"github.com/MValdesGames/NocheEnLaMansion/internal/domain/encounter"
)

const (
	// perEncounterCooldownMs keeps any single encounter from repeating
	// within two real minutes.
	perEncounterCooldownMs = 120000.0
	// globalGapMs is the minimum quiet time between any two encounters.
	globalGapMs = 30000.0
)

// Triggered is a fired encounter handed to the orchestrator.
type Triggered struct {
	Def              encounter.Definition
	AwaitingResponse bool
	DeadlineMs       float64
}

// Resolution closes out a Threat or Choice encounter.
type Resolution struct {
	Def       encounter.Definition
	TimedOut  bool
	Narration string
	Outcome   []encounter.Consequence
}

// Generator produces encounters from the catalog.
type Generator struct {
	rng              *rand.Rand
	chance           float64
	responseWindowMs float64

	lastFiredMs float64
	cooldowns   map[string]float64

	pending         *encounter.Definition
	pendingDeadline float64
}

// NewGenerator creates a generator over the shared catalog.
func NewGenerator(rng *rand.Rand, chance, responseWindowMs float64) *Generator {
	return &Generator{
		rng:              rng,
		chance:           chance,
		responseWindowMs: responseWindowMs,
		lastFiredMs:      -globalGapMs,
		cooldowns:        make(map[string]float64),
	}
}

// Awaiting reports whether a Threat or Choice is waiting for an answer.
func (g *Generator) Awaiting() bool { return g.pending != nil }

// Check rolls for a new encounter. Returns nil when nothing fires: an
// encounter already pending, inside the global gap, a failed trigger roll,
// or an empty eligible pool.
func (g *Generator) Check(nowMs float64, hour int, fear, health float64) *Triggered {
	if g.pending != nil {
		return nil
	}
	if nowMs-g.lastFiredMs < globalGapMs {
		return nil
	}

	chance := g.chance
	if hour >= 2 && hour <= 4 {
		// The dead hours. The house is most awake when the player least is.
		chance *= 1.5
	}
	if g.rng.Float64() >= chance {
		return nil
	}

	pool := g.eligible(nowMs, hour, fear, health)
	if len(pool) == 0 {
		return nil
	}
	def := g.sample(pool)
	return g.fire(def, nowMs)
}

// Force fires a specific encounter by id, bypassing gates, windows, and
// cooldowns. Used by the director endpoint. Fails only when an encounter is
// already awaiting a response or the id is unknown.
func (g *Generator) Force(id string, nowMs float64) (*Triggered, bool) {
	if g.pending != nil {
		return nil, false
	}
	def, ok := encounter.ByID(id)
	if !ok {
		return nil, false
	}
	return g.fire(def, nowMs), true
}

// Respond tries to match free text against the pending encounter's accepted
// responses. Matching is case-insensitive substring containment and the
// first listed response wins. A non-matching text leaves the encounter
// pending and returns false.
func (g *Generator) Respond(text string, nowMs float64) (*Resolution, bool) {
	if g.pending == nil {
		return nil, false
	}
	norm := strings.ToLower(strings.TrimSpace(text))
	for _, r := range g.pending.Responses {
		if !strings.Contains(norm, strings.ToLower(r.Pattern)) {
			continue
		}
		res := &Resolution{Def: *g.pending, Narration: r.Narration, Outcome: r.Outcome}
		g.pending = nil
		return res, true
	}
	return nil, false
}

// Expire checks the pending response window and, once it lapses, resolves
// the encounter with its timeout outcome.
func (g *Generator) Expire(nowMs float64) *Resolution {
	if g.pending == nil || nowMs < g.pendingDeadline {
		return nil
	}
	res := &Resolution{Def: *g.pending, TimedOut: true, Outcome: g.pending.TimeoutOutcome}
	g.pending = nil
	return res
}

// SetChance retunes the trigger probability at runtime. The orchestrator
// lowers it when the loop reports degradation.
func (g *Generator) SetChance(chance float64) { g.chance = chance }

func (g *Generator) fire(def encounter.Definition, nowMs float64) *Triggered {
	g.lastFiredMs = nowMs
	g.cooldowns[def.ID] = nowMs + perEncounterCooldownMs

	t := &Triggered{Def: def}
	if def.Category == encounter.CategoryThreat || def.Category == encounter.CategoryChoice {
		g.pending = &def
		g.pendingDeadline = nowMs + g.responseWindowMs
		t.AwaitingResponse = true
		t.DeadlineMs = g.pendingDeadline
	}
	return t
}

func (g *Generator) eligible(nowMs float64, hour int, fear, health float64) []encounter.Definition {
	var pool []encounter.Definition
	for _, def := range encounter.Catalog {
		if !def.Window.Contains(hour) {
			continue
		}
		if !def.Gate.Met(fear, health) {
			continue
		}
		if until, ok := g.cooldowns[def.ID]; ok && nowMs < until {
			continue
		}
		pool = append(pool, def)
	}
	return pool
}

// sample picks by cumulative weight. Catalog order breaks exact ties, which
// keeps a seeded run reproducible.
func (g *Generator) sample(pool []encounter.Definition) encounter.Definition {
	total := 0.0
	for _, d := range pool {
		total += d.Weight
	}
	if total <= 0 {
		return pool[0]
	}
	roll := g.rng.Float64() * total
	acc := 0.0
	for _, d := range pool {
		acc += d.Weight
		if roll < acc {
			return d
		}
	}
	return pool[len(pool)-1]
}
