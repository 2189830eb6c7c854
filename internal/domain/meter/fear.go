package meter

import (
	"github.com/MValdesGames/NocheEnLaMansion/internal/domain/rules"
)

// Base deltas per fear trigger kind. Unknown kinds fall back to defaultFearBase.
var fearBase = map[string]float64{
	"creak":       3,
	"draft":       2,
	"ambient":     2.5,
	"whisper":     5,
	"door_slam":   6,
	"shadow":      7,
	"scream":      9,
	"touch":       12,
	"apparition":  14,
	"mortal_dread": 18, // forced spike when the body is failing
}

const defaultFearBase = 5.0

// Effect durations per kind, in sim milliseconds.
var fearDuration = map[string]float64{
	"ambient":      2000,
	"creak":        2000,
	"draft":        2000,
	"whisper":      3000,
	"door_slam":    3000,
	"shadow":       4000,
	"scream":       4000,
	"touch":        6000,
	"apparition":   10000,
	"mortal_dread": 8000,
}

const defaultFearDurationMs = 3000.0

// FearEnv carries the external factors for a fear trigger. The orchestrator
// fills it from the current room, the clock, and the health gauge.
type FearEnv struct {
	LocationFactor float64
	TimeFactor     float64
	CrossHealth    float64 // current health level, 0-100
}

// FearDecayEnv carries the external factors for passive fear recovery.
type FearDecayEnv struct {
	LocationScale float64
	Hour          int
	CrossHealth   float64
}

// FearMeter tracks how close the player is to a terror-induced collapse.
type FearMeter struct {
	level     float64
	effects   []Effect
	modifiers []Modifier
}

// NewFearMeter creates a fear gauge at the given starting level.
func NewFearMeter(start float64) *FearMeter {
	return &FearMeter{level: clamp(start)}
}

// Level returns the current fear in [0,100].
func (m *FearMeter) Level() float64 { return m.level }

// Band returns the current named band.
func (m *FearMeter) Band() string { return bandFor(FearBands, m.level) }

// MaxedOut reports whether fear has reached the fatal bound.
func (m *FearMeter) MaxedOut() bool { return m.level >= Max }

// ActiveEffectCount returns how many timed effects are still running.
func (m *FearMeter) ActiveEffectCount() int { return len(m.effects) }

// SetLevel overwrites the level, clamping to the legal range. Used when
// restoring a run or repairing a corrupted state.
func (m *FearMeter) SetLevel(v float64) { m.level = clamp(v) }

// AddModifier registers a temporary multiplicative factor on trigger deltas.
func (m *FearMeter) AddModifier(factor, untilMs float64) {
	m.modifiers = append(m.modifiers, Modifier{Factor: factor, UntilMs: untilMs})
}

// Trigger applies an immediate fear spike and records its transient effect.
func (m *FearMeter) Trigger(kind string, intensity float64, source string, env FearEnv, nowMs float64) Change {
	base, ok := fearBase[kind]
	if !ok {
		base = defaultFearBase
	}
	factor, kept := modifierProduct(m.modifiers, nowMs)
	m.modifiers = kept

	delta := rules.FearTriggerDelta(rules.FearTriggerParams{
		Base:           base,
		Intensity:      intensity,
		LocationFactor: env.LocationFactor,
		TimeFactor:     env.TimeFactor,
		ModifierFactor: factor,
		CurrentFear:    m.level,
		CurrentHealth:  env.CrossHealth,
	})
	m.level = clamp(m.level + delta)

	dur, ok := fearDuration[kind]
	if !ok {
		dur = defaultFearDurationMs
	}
	eff := Effect{
		Kind:       kind,
		Intensity:  intensity,
		Source:     source,
		StartMs:    nowMs,
		DurationMs: dur,
	}
	if dur > trickleThresholdMs {
		eff.TricklePerSec = base * intensity * 0.05
	}
	m.effects = append(m.effects, eff)

	return Change{Delta: delta, Level: m.level, Band: m.Band(), Cause: kind, Spike: true}
}

// Soothe lowers fear directly (a calming item, hiding, a familiar object).
func (m *FearMeter) Soothe(amount float64, source string) Change {
	m.level = clamp(m.level - amount)
	return Change{Delta: -amount, Level: m.level, Band: m.Band(), Cause: source}
}

// Update expires effects, applies trickles, and runs passive decay when the
// gauge is quiet. Returns the net change of the tick.
func (m *FearMeter) Update(dtMs, nowMs float64, env FearDecayEnv) Change {
	before := m.level

	drip := 0.0
	kept := m.effects[:0]
	for _, e := range m.effects {
		if !e.ActiveAt(nowMs) {
			continue
		}
		drip += e.TricklePerSec * dtMs / 1000.0
		kept = append(kept, e)
	}
	m.effects = kept
	if drip != 0 {
		m.level = clamp(m.level + drip)
	}

	cause := "trickle"
	if len(m.effects) == 0 {
		decay := rules.FearDecay(rules.FearDecayParams{
			DtSec:         dtMs / 1000.0,
			LocationScale: env.LocationScale,
			Hour:          env.Hour,
			CurrentHealth: env.CrossHealth,
		})
		m.level = clamp(m.level - decay)
		cause = "decay"
	}

	return Change{Delta: m.level - before, Level: m.level, Band: m.Band(), Cause: cause}
}

// SuccessRate derives the command acceptance chance from the current level.
func (m *FearMeter) SuccessRate() float64 {
	return rules.ActionSuccessRate(m.level)
}
