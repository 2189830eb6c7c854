package engine

import (
	"math/rand"

	"github.com/MValdesGames/NocheEnLaMansion/internal/domain/ending"
	"github.com/MValdesGames/NocheEnLaMansion/internal/events"
	"github.com/MValdesGames/NocheEnLaMansion/internal/platform/logger"
	"github.com/MValdesGames/NocheEnLaMansion/internal/platform/metrics"
)

// Narrator receives prose lines as the night unfolds. Calls are
// fire-and-forget; a slow or panicking narrator never stalls a tick.
type Narrator interface {
	Narrate(line string)
}

// AudioPlayer receives sound cues. Same contract as Narrator.
type AudioPlayer interface {
	PlaySound(effect string)
	SetAmbient(loop string)
}

// AchievementSink records a finished night for posterity.
type AchievementSink interface {
	RecordEnding(runID string, result ending.Result, stats ending.Stats) error
}

// NotificationKind tags structured notifications pushed to subscribers.
type NotificationKind string

const (
	NotifyHour        NotificationKind = "HOUR"
	NotifyFearBand    NotificationKind = "FEAR_BAND"
	NotifyHealthBand  NotificationKind = "HEALTH_BAND"
	NotifyEncounter   NotificationKind = "ENCOUNTER"
	NotifyEnding      NotificationKind = "ENDING"
	NotifyDegradation NotificationKind = "DEGRADATION"
)

// Notification is a structured out-of-band signal for UIs and spectators.
type Notification struct {
	Kind  NotificationKind `json:"kind"`
	Text  string           `json:"text"`
	Value float64          `json:"value"`
}

// NotifyFunc receives notifications. Registered via Orchestrator.Subscribe.
type NotifyFunc func(n Notification)

// Deps carries everything an Orchestrator needs from the outside. Narrator,
// Audio, Sink, and Persister may be nil; Logger must not.
type Deps struct {
	Logger    *logger.Logger
	Metrics   *metrics.Collector
	Narrator  Narrator
	Audio     AudioPlayer
	Sink      AchievementSink
	Persister events.Persister
	Rand      *rand.Rand
}
