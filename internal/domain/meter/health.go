package meter

import (
	"github.com/MValdesGames/NocheEnLaMansion/internal/domain/rules"
)

// Base deltas per damage kind.
var damageBase = map[string]float64{
	"scratch":       5,
	"strike":        12,
	"fall":          10,
	"chill":         3,
	"bleed":         4,
	"terror_strain": 6, // the heart giving out under extreme fear
}

const defaultDamageBase = 8.0

// Damage-over-time kinds carry a duration and drip until they expire.
var damageDuration = map[string]float64{
	"bleed": 15000,
	"chill": 20000,
}

// regenCooldownMs is the window with no damage required before regen starts.
const regenCooldownMs = 10000.0

// DamageEnv carries the external factors for a damage application.
type DamageEnv struct {
	LocationFactor float64
	TimeFactor     float64
	CrossFear      float64 // current fear level, 0-100
}

// RegenEnv carries the external factors for passive recovery.
type RegenEnv struct {
	CrossFear float64
}

// HealthMeter tracks how much punishment the body has left.
type HealthMeter struct {
	level        float64
	effects      []Effect
	modifiers    []Modifier
	lastDamageMs float64
}

// NewHealthMeter creates a health gauge at the given starting level.
func NewHealthMeter(start float64) *HealthMeter {
	return &HealthMeter{level: clamp(start), lastDamageMs: -regenCooldownMs}
}

// Level returns the current health in [0,100].
func (m *HealthMeter) Level() float64 { return m.level }

// Band returns the current named band.
func (m *HealthMeter) Band() string { return bandFor(HealthBands, m.level) }

// Depleted reports whether health has reached the fatal bound.
func (m *HealthMeter) Depleted() bool { return m.level <= Min }

// DoTActive reports whether any damage-over-time effect is still running.
func (m *HealthMeter) DoTActive() bool { return len(m.effects) > 0 }

// SetLevel overwrites the level, clamping to the legal range.
func (m *HealthMeter) SetLevel(v float64) { m.level = clamp(v) }

// AddModifier registers a temporary multiplicative factor on damage deltas.
func (m *HealthMeter) AddModifier(factor, untilMs float64) {
	m.modifiers = append(m.modifiers, Modifier{Factor: factor, UntilMs: untilMs})
}

// Damage applies an immediate health loss and, for DoT kinds, records a
// transient effect that suppresses regen and drips until expiry.
func (m *HealthMeter) Damage(kind string, intensity float64, source string, env DamageEnv, nowMs float64) Change {
	base, ok := damageBase[kind]
	if !ok {
		base = defaultDamageBase
	}
	factor, kept := modifierProduct(m.modifiers, nowMs)
	m.modifiers = kept

	amount := rules.DamageAmount(rules.DamageParams{
		Base:           base,
		Intensity:      intensity,
		LocationFactor: env.LocationFactor,
		TimeFactor:     env.TimeFactor,
		ModifierFactor: factor,
		CurrentFear:    env.CrossFear,
	})
	m.level = clamp(m.level - amount)
	m.lastDamageMs = nowMs

	if dur, ok := damageDuration[kind]; ok {
		m.effects = append(m.effects, Effect{
			Kind:          kind,
			Intensity:     intensity,
			Source:        source,
			StartMs:       nowMs,
			DurationMs:    dur,
			TricklePerSec: base * intensity * 0.05,
		})
	}

	return Change{Delta: -amount, Level: m.level, Band: m.Band(), Cause: kind, Spike: true}
}

// Heal restores health directly (bandages, rest).
func (m *HealthMeter) Heal(amount float64, source string) Change {
	m.level = clamp(m.level + amount)
	return Change{Delta: amount, Level: m.level, Band: m.Band(), Cause: source}
}

// Update expires DoT effects, applies their drip, and runs regen once the
// cooldown window has passed with no new damage.
func (m *HealthMeter) Update(dtMs, nowMs float64, env RegenEnv) Change {
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
		m.level = clamp(m.level - drip)
	}

	cause := "dot"
	regen := rules.HealthRegen(rules.RegenParams{
		DtSec:         dtMs / 1000.0,
		SinceDamageMs: nowMs - m.lastDamageMs,
		CooldownMs:    regenCooldownMs,
		DoTActive:     len(m.effects) > 0,
		CurrentHealth: m.level,
		FearLevel:     env.CrossFear,
	})
	if regen > 0 {
		m.level = clamp(m.level + regen)
		cause = "regen"
	}

	return Change{Delta: m.level - before, Level: m.level, Band: m.Band(), Cause: cause}
}
