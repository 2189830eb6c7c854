package rules

import "testing"

func TestActionSuccessRateFloor(t *testing.T) {
	rate := ActionSuccessRate(0)
	if rate != 0.95 {
		t.Errorf("Expected calm success rate 0.95, got %v", rate)
	}

	rate = ActionSuccessRate(100)
	if rate != MinSuccessRate {
		t.Errorf("Expected maxed fear to hit the floor %v, got %v", MinSuccessRate, rate)
	}

	// The floor holds even for nonsense levels above the gauge bound.
	rate = ActionSuccessRate(500)
	if rate != MinSuccessRate {
		t.Errorf("Expected floor %v for extreme fear, got %v", MinSuccessRate, rate)
	}
}

func TestFearDecaySlowsInDeadHours(t *testing.T) {
	normal := FearDecay(FearDecayParams{DtSec: 1, LocationScale: 1, Hour: 23, CurrentHealth: 100})
	dead := FearDecay(FearDecayParams{DtSec: 1, LocationScale: 1, Hour: 3, CurrentHealth: 100})

	if dead >= normal {
		t.Errorf("Expected decay at 3am (%v) slower than at 11pm (%v)", dead, normal)
	}
}

func TestFearDecaySlowsWhenHurt(t *testing.T) {
	healthy := FearDecay(FearDecayParams{DtSec: 1, LocationScale: 1, Hour: 23, CurrentHealth: 100})
	hurt := FearDecay(FearDecayParams{DtSec: 1, LocationScale: 1, Hour: 23, CurrentHealth: 20})

	if hurt >= healthy {
		t.Errorf("Expected decay while hurt (%v) slower than while healthy (%v)", hurt, healthy)
	}
}

func TestHealthRegenSuppression(t *testing.T) {
	// Inside the cooldown window nothing regenerates.
	regen := HealthRegen(RegenParams{DtSec: 1, SinceDamageMs: 5000, CooldownMs: 10000, CurrentHealth: 50})
	if regen != 0 {
		t.Errorf("Expected no regen inside the damage cooldown, got %v", regen)
	}

	// An active DoT suppresses regen no matter how long ago the hit was.
	regen = HealthRegen(RegenParams{DtSec: 1, SinceDamageMs: 60000, CooldownMs: 10000, DoTActive: true, CurrentHealth: 50})
	if regen != 0 {
		t.Errorf("Expected no regen while a DoT is active, got %v", regen)
	}

	regen = HealthRegen(RegenParams{DtSec: 1, SinceDamageMs: 60000, CooldownMs: 10000, CurrentHealth: 50})
	if regen <= 0 {
		t.Errorf("Expected positive regen after the cooldown, got %v", regen)
	}
}

func TestHealthRegenSlowsWithFear(t *testing.T) {
	calm := HealthRegen(RegenParams{DtSec: 1, SinceDamageMs: 60000, CooldownMs: 10000, CurrentHealth: 50, FearLevel: 0})
	afraid := HealthRegen(RegenParams{DtSec: 1, SinceDamageMs: 60000, CooldownMs: 10000, CurrentHealth: 50, FearLevel: 90})

	if afraid >= calm {
		t.Errorf("Expected regen under fear (%v) slower than calm regen (%v)", afraid, calm)
	}
}

func TestSurvivalScoreNeverNegative(t *testing.T) {
	score := SurvivalScore(SurvivalScoreParams{SurvivedHours: 0, FinalFear: 100, FinalHealth: 0})
	if score < 0 {
		t.Errorf("Expected non-negative score, got %v", score)
	}
}
