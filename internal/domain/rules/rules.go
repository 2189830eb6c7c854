// Package rules contains the pure calculation logic for the night's mechanics.
// This package is PURE and must NOT import any infrastructure packages.
package rules

import "math"

// FearTriggerParams holds the inputs for a single fear spike calculation.
type FearTriggerParams struct {
	Base           float64 // base delta for the trigger kind
	Intensity      float64 // 0.0 - 2.0, scales the base
	LocationFactor float64 // how frightening the current room is
	TimeFactor     float64 // deeper night hits harder
	ModifierFactor float64 // product of active temporary modifiers
	CurrentFear    float64 // frayed nerves amplify every scare
	CurrentHealth  float64 // a hurt player scares easier
}

// FearTriggerDelta computes the immediate fear gain for a trigger.
func FearTriggerDelta(p FearTriggerParams) float64 {
	self := 1.0 + p.CurrentFear/200.0
	cross := 1.0 + (100.0-p.CurrentHealth)/250.0
	return p.Base * p.Intensity * p.LocationFactor * p.TimeFactor * p.ModifierFactor * self * cross
}

// FearDecayParams holds the inputs for passive fear recovery.
type FearDecayParams struct {
	DtSec         float64
	LocationScale float64 // rooms dampen or leave decay untouched
	Hour          int     // 0-23 virtual hour
	CurrentHealth float64
}

// FearDecay computes how much fear bleeds off when nothing is happening.
// Decay slows in the dead hours and slows further the more hurt the player is.
func FearDecay(p FearDecayParams) float64 {
	rate := 0.8 * p.LocationScale // points per second
	if p.Hour >= 2 && p.Hour <= 4 {
		rate *= 0.7
	}
	rate *= 0.5 + 0.5*(p.CurrentHealth/100.0)
	return rate * p.DtSec
}

// DamageParams holds the inputs for a single damage application.
type DamageParams struct {
	Base           float64
	Intensity      float64
	LocationFactor float64
	TimeFactor     float64
	ModifierFactor float64
	CurrentFear    float64 // terror makes the body clumsy and fragile
}

// DamageAmount computes the immediate health loss for a damage trigger.
func DamageAmount(p DamageParams) float64 {
	cross := 1.0 + p.CurrentFear/400.0
	return p.Base * p.Intensity * p.LocationFactor * p.TimeFactor * p.ModifierFactor * cross
}

// RegenParams holds the inputs for passive health recovery.
type RegenParams struct {
	DtSec         float64
	SinceDamageMs float64
	CooldownMs    float64
	DoTActive     bool // any damage-over-time effect suppresses regen entirely
	CurrentHealth float64
	FearLevel     float64
}

// HealthRegen computes passive recovery after the no-damage cooldown.
func HealthRegen(p RegenParams) float64 {
	if p.DoTActive || p.SinceDamageMs < p.CooldownMs {
		return 0
	}
	rate := 0.4 // points per second
	switch {
	case p.CurrentHealth >= 90:
		rate *= 1.2
	case p.CurrentHealth >= 70:
		rate *= 1.0
	case p.CurrentHealth >= 50:
		rate *= 0.8
	case p.CurrentHealth >= 30:
		rate *= 0.6
	case p.CurrentHealth >= 10:
		rate *= 0.4
	default:
		rate *= 0.25
	}
	rate *= 1.0 / (1.0 + p.FearLevel/50.0)
	return rate * p.DtSec
}

// MinSuccessRate is the floor for any action, no matter how far gone the player is.
const MinSuccessRate = 0.05

// ActionSuccessRate derives the chance that a spoken command is accepted,
// from the current fear level. External recognizers use this to bias matching.
// The result is rounded to a thousandth so the floor holds exactly at the
// boundary instead of drifting past it by float error.
func ActionSuccessRate(fearLevel float64) float64 {
	rate := 0.95 - fearLevel*0.009
	rate = math.Round(rate*1000) / 1000
	if rate < MinSuccessRate {
		rate = MinSuccessRate
	}
	return rate
}

// SurvivalScoreParams collects the terminal statistics that feed the base score.
type SurvivalScoreParams struct {
	SurvivedHours  float64
	FinalFear      float64
	FinalHealth    float64
	SecretsFound   int
	EventsSurvived int
	ItemsUsed      int
}

// SurvivalScore computes the base score shown next to the ending.
func SurvivalScore(p SurvivalScoreParams) float64 {
	score := p.SurvivedHours * 100
	score += p.FinalHealth * 2
	score += (100 - p.FinalFear) * 1.5
	score += float64(p.SecretsFound) * 50
	score += float64(p.EventsSurvived) * 10
	score += float64(p.ItemsUsed) * 5
	if score < 0 {
		score = 0
	}
	return score
}
