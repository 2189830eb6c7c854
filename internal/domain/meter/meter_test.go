package meter

import "testing"

func neutralFearEnv() FearEnv {
	return FearEnv{LocationFactor: 1, TimeFactor: 1, CrossHealth: 100}
}

func neutralDamageEnv() DamageEnv {
	return DamageEnv{LocationFactor: 1, TimeFactor: 1, CrossFear: 0}
}

func TestFearClampsAtBounds(t *testing.T) {
	m := NewFearMeter(50)

	// A ridiculous spike must not push past 100.
	m.Trigger("apparition", 100, "test", neutralFearEnv(), 0)
	if m.Level() > Max {
		t.Errorf("Expected fear clamped at %v, got %v", Max, m.Level())
	}
	if !m.MaxedOut() {
		t.Errorf("Expected MaxedOut after an overwhelming spike, level %v", m.Level())
	}

	m.Soothe(1000, "test")
	if m.Level() != Min {
		t.Errorf("Expected fear clamped at %v after massive soothe, got %v", Min, m.Level())
	}
}

func TestFearBands(t *testing.T) {
	cases := []struct {
		level float64
		band  string
	}{
		{0, "calm"},
		{19, "calm"},
		{20, "nervous"},
		{45, "scared"},
		{60, "terrified"},
		{85, "panicked"},
		{100, "overwhelmed"},
	}
	m := NewFearMeter(0)
	for _, c := range cases {
		m.SetLevel(c.level)
		if got := m.Band(); got != c.band {
			t.Errorf("Expected band %q at level %v, got %q", c.band, c.level, got)
		}
	}
}

func TestFearDecayWhenQuiet(t *testing.T) {
	m := NewFearMeter(50)

	ch := m.Update(1000, 1000, FearDecayEnv{LocationScale: 1, Hour: 23, CrossHealth: 100})
	if ch.Delta >= 0 {
		t.Errorf("Expected fear to decay with no active effects, delta %v", ch.Delta)
	}
	if ch.Cause != "decay" {
		t.Errorf("Expected cause 'decay', got %q", ch.Cause)
	}
}

func TestFearTrickleWhileEffectActive(t *testing.T) {
	m := NewFearMeter(30)

	// An apparition lingers past the trickle threshold and keeps dripping.
	m.Trigger("apparition", 1, "the_widow", neutralFearEnv(), 0)
	if m.ActiveEffectCount() != 1 {
		t.Fatalf("Expected one active effect, got %d", m.ActiveEffectCount())
	}

	before := m.Level()
	ch := m.Update(1000, 1000, FearDecayEnv{LocationScale: 1, Hour: 0, CrossHealth: 100})
	if ch.Cause != "trickle" {
		t.Errorf("Expected cause 'trickle' while the effect runs, got %q", ch.Cause)
	}
	if m.Level() <= before {
		t.Errorf("Expected fear to keep climbing during the apparition, %v -> %v", before, m.Level())
	}

	// Past the duration the effect drops and decay resumes.
	m.Update(1000, 20000, FearDecayEnv{LocationScale: 1, Hour: 0, CrossHealth: 100})
	if m.ActiveEffectCount() != 0 {
		t.Errorf("Expected effect expired by 20s, got %d active", m.ActiveEffectCount())
	}
}

func TestFearModifierExpires(t *testing.T) {
	ward := NewFearMeter(20)
	bare := NewFearMeter(20)

	ward.AddModifier(0.5, 1000)

	warded := ward.Trigger("whisper", 1, "test", neutralFearEnv(), 0)
	plain := bare.Trigger("whisper", 1, "test", neutralFearEnv(), 0)
	if warded.Delta >= plain.Delta {
		t.Errorf("Expected warded delta %v smaller than plain %v", warded.Delta, plain.Delta)
	}

	// After expiry the ward no longer scales anything.
	ward.SetLevel(20)
	bare.SetLevel(20)
	late := ward.Trigger("whisper", 1, "test", neutralFearEnv(), 2000)
	ref := bare.Trigger("whisper", 1, "test", neutralFearEnv(), 2000)
	if late.Delta != ref.Delta {
		t.Errorf("Expected expired modifier to be dropped, deltas %v vs %v", late.Delta, ref.Delta)
	}
}

func TestHealthDepletesAndClamps(t *testing.T) {
	m := NewHealthMeter(10)

	m.Damage("strike", 100, "test", neutralDamageEnv(), 0)
	if m.Level() != Min {
		t.Errorf("Expected health clamped at %v, got %v", Min, m.Level())
	}
	if !m.Depleted() {
		t.Errorf("Expected Depleted at level %v", m.Level())
	}

	m.Heal(1000, "test")
	if m.Level() != Max {
		t.Errorf("Expected health clamped at %v after massive heal, got %v", Max, m.Level())
	}
}

func TestHealthRegenCooldown(t *testing.T) {
	m := NewHealthMeter(80)
	m.Damage("strike", 1, "test", neutralDamageEnv(), 0)
	hurt := m.Level()

	// Inside the cooldown window the level holds.
	ch := m.Update(1000, 5000, RegenEnv{CrossFear: 0})
	if ch.Delta != 0 {
		t.Errorf("Expected no regen 5s after damage, delta %v", ch.Delta)
	}

	// Once the window passes regen kicks in.
	ch = m.Update(1000, 15000, RegenEnv{CrossFear: 0})
	if ch.Delta <= 0 {
		t.Errorf("Expected regen 15s after damage, delta %v", ch.Delta)
	}
	if ch.Cause != "regen" {
		t.Errorf("Expected cause 'regen', got %q", ch.Cause)
	}
	if m.Level() <= hurt {
		t.Errorf("Expected level above %v after regen, got %v", hurt, m.Level())
	}
}

func TestBleedSuppressesRegenAndDrips(t *testing.T) {
	m := NewHealthMeter(80)
	m.Damage("bleed", 1, "grip_in_the_dark", neutralDamageEnv(), 0)
	if !m.DoTActive() {
		t.Fatal("Expected an active DoT after a bleed")
	}
	after := m.Level()

	// While bleeding the level keeps dropping even long after the hit.
	ch := m.Update(1000, 12000, RegenEnv{CrossFear: 0})
	if ch.Delta >= 0 {
		t.Errorf("Expected the bleed to drip, delta %v", ch.Delta)
	}
	if m.Level() >= after {
		t.Errorf("Expected level below %v while bleeding, got %v", after, m.Level())
	}

	// The bleed expires at 15s and regen becomes possible again.
	m.Update(1000, 30000, RegenEnv{CrossFear: 0})
	if m.DoTActive() {
		t.Error("Expected the bleed expired by 30s")
	}
}
