// Package ending grades a finished night against a catalog of outcomes and
// picks the one the run earned.
// This package is PURE and must NOT import any infrastructure packages.
package ending

// Stat keys the criteria can reference.
const (
	StatSurvivalHours  = "survival_hours"
	StatFinalFear      = "final_fear"
	StatFinalHealth    = "final_health"
	StatCommandsIssued = "commands_issued"
	StatItemsCollected = "items_collected"
	StatItemsUsed      = "items_used"
	StatSecretsFound   = "secrets_found"
	StatEventsSurvived = "events_survived"
	StatSurvivalScore  = "survival_score"
)

// Stats is the final tally of a run, alive or not.
type Stats struct {
	SurvivalHours  float64
	FinalFear      float64
	FinalHealth    float64
	CommandsIssued float64
	ItemsCollected float64
	ItemsUsed      float64
	SecretsFound   float64
	EventsSurvived float64
	SurvivalScore  float64
}

// Value returns the stat for a criterion key. Unknown keys return 0 and
// false, which makes any criterion on them unsatisfiable.
func (s Stats) Value(key string) (float64, bool) {
	switch key {
	case StatSurvivalHours:
		return s.SurvivalHours, true
	case StatFinalFear:
		return s.FinalFear, true
	case StatFinalHealth:
		return s.FinalHealth, true
	case StatCommandsIssued:
		return s.CommandsIssued, true
	case StatItemsCollected:
		return s.ItemsCollected, true
	case StatItemsUsed:
		return s.ItemsUsed, true
	case StatSecretsFound:
		return s.SecretsFound, true
	case StatEventsSurvived:
		return s.EventsSurvived, true
	case StatSurvivalScore:
		return s.SurvivalScore, true
	}
	return 0, false
}

// Criterion is a bound on one stat. Nil fields are unbounded; Exact wins
// over Min/Max when set.
type Criterion struct {
	Min   *float64
	Max   *float64
	Exact *float64
}

func ptr(v float64) *float64 { return &v }

// AtLeast builds a lower-bound criterion.
func AtLeast(v float64) Criterion { return Criterion{Min: ptr(v)} }

// AtMost builds an upper-bound criterion.
func AtMost(v float64) Criterion { return Criterion{Max: ptr(v)} }

// Between builds a two-sided criterion.
func Between(lo, hi float64) Criterion { return Criterion{Min: ptr(lo), Max: ptr(hi)} }

// Exactly builds an equality criterion.
func Exactly(v float64) Criterion { return Criterion{Exact: ptr(v)} }

// Satisfied reports whether a stat value meets the criterion.
func (c Criterion) Satisfied(v float64) bool {
	if c.Exact != nil {
		return v == *c.Exact
	}
	if c.Min != nil && v < *c.Min {
		return false
	}
	if c.Max != nil && v > *c.Max {
		return false
	}
	return true
}

// Tier separates outcomes of a run that ended alive from one that did not.
type Tier string

const (
	TierVictory Tier = "VICTORY"
	TierDeath   Tier = "DEATH"
)

// Rarity buckets for the achievement record.
const (
	RarityCommon    = "common"
	RarityUncommon  = "uncommon"
	RarityRare      = "rare"
	RarityLegendary = "legendary"
)

// Definition is one possible outcome of the night.
type Definition struct {
	ID       string
	Tier     Tier
	Title    string
	Rarity   string
	Epilogue string
	Criteria map[string]Criterion
}

// Result is the chosen ending plus the score that chose it.
type Result struct {
	Ending Definition
	Score  float64
}

// score grades how well the stats fit a definition. Each satisfied criterion
// earns 10 points, plus up to 5 bonus points for margin above a Min bound.
// Any unsatisfied criterion contributes nothing. The final score is the
// average over the definition's criteria; no criteria means score 0.
func score(def Definition, s Stats) float64 {
	if len(def.Criteria) == 0 {
		return 0
	}
	total := 0.0
	for key, c := range def.Criteria {
		v, ok := s.Value(key)
		if !ok || !c.Satisfied(v) {
			continue
		}
		pts := 10.0
		if c.Min != nil {
			bonus := (v - *c.Min) * 0.1
			if bonus > 5 {
				bonus = 5
			}
			if bonus > 0 {
				pts += bonus
			}
		}
		total += pts
	}
	return total / float64(len(def.Criteria))
}

// Evaluate picks the best-fitting ending for the run. Only endings of the
// matching tier are considered; ties go to catalog order. When nothing
// scores, the tier's criteria-free fallback takes the run.
func Evaluate(alive bool, s Stats) Result {
	tier := TierDeath
	if alive {
		tier = TierVictory
	}
	var best Result
	var fallback Result
	found := false
	for _, def := range Catalog {
		if def.Tier != tier {
			continue
		}
		if len(def.Criteria) == 0 {
			fallback = Result{Ending: def}
			continue
		}
		sc := score(def, s)
		if sc <= 0 {
			continue
		}
		if !found || sc > best.Score {
			best = Result{Ending: def, Score: sc}
			found = true
		}
	}
	if !found {
		return fallback
	}
	return best
}
