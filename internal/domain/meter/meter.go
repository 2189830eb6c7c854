// Package meter implements the bounded fear and health gauges of the night.
// Each gauge is an independent scalar state machine with timed effects,
// temporary modifiers, and named bands. Cross-meter coupling is NOT handled
// here; the other gauge's level arrives as a plain number in the Env structs.
// This package is PURE and must NOT import any infrastructure packages.
package meter

// Level bounds shared by both gauges.
const (
	Min = 0.0
	Max = 100.0
)

// trickleThresholdMs: effects longer than this apply a continuous drip each
// tick until they expire, on top of their immediate delta.
const trickleThresholdMs = 5000.0

// Band is a named range of a gauge, evaluated by descending threshold.
type Band struct {
	Name      string
	Threshold float64
}

// FearBands orders the fear gauge from worst to best.
var FearBands = []Band{
	{"overwhelmed", 95},
	{"panicked", 80},
	{"terrified", 60},
	{"scared", 40},
	{"nervous", 20},
	{"calm", 0},
}

// HealthBands orders the health gauge from best to worst.
var HealthBands = []Band{
	{"excellent", 90},
	{"good", 70},
	{"injured", 50},
	{"wounded", 30},
	{"critical", 10},
	{"dying", 0},
}

func bandFor(bands []Band, level float64) string {
	for _, b := range bands {
		if level >= b.Threshold {
			return b.Name
		}
	}
	return bands[len(bands)-1].Name
}

// Effect is a transient event owned by its gauge. It is dropped on expiry.
type Effect struct {
	Kind          string
	Intensity     float64
	Source        string
	StartMs       float64
	DurationMs    float64
	TricklePerSec float64 // drip applied each tick while active, 0 for short effects
}

// ActiveAt reports whether the effect is still running at the given sim time.
func (e Effect) ActiveAt(nowMs float64) bool {
	return nowMs < e.StartMs+e.DurationMs
}

// Modifier temporarily scales every trigger delta (an active ward, a lit room).
type Modifier struct {
	Factor  float64
	UntilMs float64
}

// Change is the notification a gauge emits after any mutation. The caller
// (the orchestrator) inspects it to apply cross-coupling rules.
type Change struct {
	Delta float64
	Level float64
	Band  string
	Cause string
	Spike bool // true for a single trigger, false for decay/trickle/regen
}

func clamp(v float64) float64 {
	if v < Min {
		return Min
	}
	if v > Max {
		return Max
	}
	return v
}

func modifierProduct(mods []Modifier, nowMs float64) (float64, []Modifier) {
	factor := 1.0
	kept := mods[:0]
	for _, m := range mods {
		if nowMs >= m.UntilMs {
			continue
		}
		factor *= m.Factor
		kept = append(kept, m)
	}
	return factor, kept
}
