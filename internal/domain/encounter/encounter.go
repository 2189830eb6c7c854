// Package encounter defines the content the house throws at the player:
// narrated occurrences gated by hour and meters, some of which demand a
// spoken answer within a window.
// This package is PURE and must NOT import any infrastructure packages.
package encounter

// Category splits encounters by how they resolve.
type Category string

const (
	CategoryAmbient   Category = "AMBIENT"   // applies immediately
	CategoryThreat    Category = "THREAT"    // awaits a response or times out
	CategoryDiscovery Category = "DISCOVERY" // applies immediately
	CategoryChoice    Category = "CHOICE"    // awaits a response or times out
)

// Window is an hour range in virtual time. From == To means the full night;
// a window may wrap across midnight (23 to 2 covers 23, 0, 1, 2).
type Window struct {
	FromHour int
	ToHour   int
}

// Contains reports whether the virtual hour falls inside the window.
func (w Window) Contains(hour int) bool {
	if w.FromHour == w.ToHour {
		return true
	}
	if w.FromHour < w.ToHour {
		return hour >= w.FromHour && hour <= w.ToHour
	}
	return hour >= w.FromHour || hour <= w.ToHour
}

// Gate restricts an encounter to a meter range. A zero MaxFear or MaxHealth
// means unbounded.
type Gate struct {
	MinFear   float64
	MaxFear   float64
	MinHealth float64
	MaxHealth float64
}

// Met reports whether the current meters satisfy the gate.
func (g Gate) Met(fear, health float64) bool {
	if fear < g.MinFear {
		return false
	}
	if g.MaxFear > 0 && fear > g.MaxFear {
		return false
	}
	if health < g.MinHealth {
		return false
	}
	if g.MaxHealth > 0 && health > g.MaxHealth {
		return false
	}
	return true
}

// ConsequenceKind tags what a consequence does. One canonical representation;
// there is exactly one way to express a fear hit or a wound.
type ConsequenceKind string

const (
	ConsequenceFear    ConsequenceKind = "FEAR"    // Ref = trigger kind, Value = intensity
	ConsequenceDamage  ConsequenceKind = "DAMAGE"  // Ref = damage kind, Value = intensity
	ConsequenceCalm    ConsequenceKind = "CALM"    // Value = fear soothed
	ConsequenceHeal    ConsequenceKind = "HEAL"    // Value = health restored
	ConsequenceItem    ConsequenceKind = "ITEM"    // Ref = item id granted
	ConsequenceSecret  ConsequenceKind = "SECRET"  // one secret of the house uncovered
	ConsequenceSound   ConsequenceKind = "SOUND"   // Ref = effect id for the audio layer
	ConsequenceAmbient ConsequenceKind = "AMBIENT" // Ref = ambient loop id
	ConsequenceNarrate ConsequenceKind = "NARRATE" // Ref = extra narration line
)

// Consequence is a single tagged outcome applied by the orchestrator.
type Consequence struct {
	Kind  ConsequenceKind
	Value float64
	Ref   string
}

// Response is one accepted answer to a Threat or Choice encounter. Matching
// is case-insensitive substring containment against the normalized command;
// the first listed match wins.
type Response struct {
	Pattern   string
	Narration string
	Outcome   []Consequence
}

// Definition is a static catalog entry.
type Definition struct {
	ID             string
	Category       Category
	Window         Window
	Gate           Gate
	Weight         float64
	Narration      string
	Consequences   []Consequence
	Responses      []Response
	TimeoutOutcome []Consequence
}
