package engine

// Config holds the tunable knobs of a night. Zero values are replaced by
// DefaultConfig at construction.
type Config struct {
	// TimeRatio is virtual minutes per real minute. 60 compresses the
	// seven-hour night into seven real minutes.
	TimeRatio float64

	// StartHour and EndHour bound the night in virtual hours.
	StartHour int
	EndHour   int

	// TickHz is the target simulation rate.
	TickHz int

	// MaxDtMs clamps a single frame's delta after stalls.
	MaxDtMs float64

	// CommandBuffer bounds the queued player commands; CommandsPerTick
	// bounds how many are drained each frame.
	CommandBuffer   int
	CommandsPerTick int

	// EncounterCheckMs is the real-time interval between generator rolls.
	// EncounterChance is the per-roll trigger probability.
	EncounterCheckMs float64
	EncounterChance  float64

	// ResponseWindowMs is how long a Threat or Choice waits for an answer.
	ResponseWindowMs float64

	// Seed fixes the random stream. 0 means derive from wall time.
	Seed int64

	// StartFear and StartHealth set the opening meter levels.
	StartFear   float64
	StartHealth float64

	// DegradedFPS is the sustained frame-rate floor below which the loop
	// reports degradation and the orchestrator sheds load.
	DegradedFPS float64
}

// DefaultConfig returns the standard night.
func DefaultConfig() Config {
	return Config{
		TimeRatio:        60,
		StartHour:        23,
		EndHour:          6,
		TickHz:           60,
		MaxDtMs:          250,
		CommandBuffer:    64,
		CommandsPerTick:  4,
		EncounterCheckMs: 5000,
		EncounterChance:  0.25,
		ResponseWindowMs: 15000,
		StartFear:        10,
		StartHealth:      100,
		DegradedFPS:      30,
	}
}

// withDefaults fills zero fields from DefaultConfig.
func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.TimeRatio <= 0 {
		c.TimeRatio = d.TimeRatio
	}
	if c.StartHour == 0 && c.EndHour == 0 {
		c.StartHour, c.EndHour = d.StartHour, d.EndHour
	}
	if c.TickHz <= 0 {
		c.TickHz = d.TickHz
	}
	if c.MaxDtMs <= 0 {
		c.MaxDtMs = d.MaxDtMs
	}
	if c.CommandBuffer <= 0 {
		c.CommandBuffer = d.CommandBuffer
	}
	if c.CommandsPerTick <= 0 {
		c.CommandsPerTick = d.CommandsPerTick
	}
	if c.EncounterCheckMs <= 0 {
		c.EncounterCheckMs = d.EncounterCheckMs
	}
	if c.EncounterChance <= 0 {
		c.EncounterChance = d.EncounterChance
	}
	if c.ResponseWindowMs <= 0 {
		c.ResponseWindowMs = d.ResponseWindowMs
	}
	if c.StartHealth <= 0 {
		c.StartHealth = d.StartHealth
	}
	if c.DegradedFPS <= 0 {
		c.DegradedFPS = d.DegradedFPS
	}
	return c
}
