// Package events provides the append-only audit trail of a night. Every
// consequential action is recorded here, so a finished run can be replayed
// step by step from its log.
package events

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// EventType defines the category of an audit record.
type EventType string

const (
	EventTypeSimStart       EventType = "SIM_START"
	EventTypeSimFinish      EventType = "SIM_FINISH"
	EventTypeHourTick       EventType = "HOUR_TICK"
	EventTypeCommand        EventType = "COMMAND"
	EventTypeCommandFailed  EventType = "COMMAND_FAILED"
	EventTypeMove           EventType = "MOVE"
	EventTypeFearChange     EventType = "FEAR_CHANGE"
	EventTypeHealthChange   EventType = "HEALTH_CHANGE"
	EventTypeItemFound      EventType = "ITEM_FOUND"
	EventTypeItemUsed       EventType = "ITEM_USED"
	EventTypeItemDepleted   EventType = "ITEM_DEPLETED"
	EventTypeEncounter      EventType = "ENCOUNTER"
	EventTypeEncounterReply EventType = "ENCOUNTER_REPLY"
	EventTypeSecretFound    EventType = "SECRET_FOUND"
	EventTypeDirectorAction EventType = "DIRECTOR_ACTION"
	EventTypeSaveWritten    EventType = "SAVE_WRITTEN"
	EventTypeDegradation    EventType = "DEGRADATION"
)

// Record is an immutable audit entry. Fields are flat scalars so a log
// serializes and round-trips byte for byte.
type Record struct {
	ID    string    `json:"id"`
	Wall  time.Time `json:"wall"`
	AtMs  float64   `json:"at_ms"` // sim time when the event happened
	Type  EventType `json:"type"`
	Actor string    `json:"actor"`
	Value float64   `json:"value,omitempty"`
	Detail string   `json:"detail,omitempty"`
}

// NewRecord stamps a record with a fresh id and wall time.
func NewRecord(atMs float64, t EventType, actor string, value float64, detail string) Record {
	return Record{
		ID:     uuid.NewString(),
		Wall:   time.Now().UTC(),
		AtMs:   atMs,
		Type:   t,
		Actor:  actor,
		Value:  value,
		Detail: detail,
	}
}

// Persister defines how a record is durably stored.
type Persister interface {
	Append(rec Record) error
}

// Log is the in-memory append-only audit log, optionally written through to
// a persister. It keeps at most maxLen records in memory; the persister
// holds the full history.
type Log struct {
	mu        sync.RWMutex
	records   []Record
	maxLen    int
	persister Persister
}

// NewLog creates a log. maxLen <= 0 means unbounded.
func NewLog(maxLen int, persister Persister) *Log {
	return &Log{
		records:   make([]Record, 0, 256),
		maxLen:    maxLen,
		persister: persister,
	}
}

// Append adds a record. Records are immutable once appended.
func (l *Log) Append(rec Record) {
	l.mu.Lock()
	l.records = append(l.records, rec)
	if l.maxLen > 0 && len(l.records) > l.maxLen {
		over := len(l.records) - l.maxLen
		l.records = append(l.records[:0], l.records[over:]...)
	}
	l.mu.Unlock()

	if l.persister != nil {
		// Write through off the tick path. Persistence failures must never
		// stall the simulation.
		go func(r Record) {
			_ = l.persister.Append(r)
		}(rec)
	}
}

// Len returns the number of records held in memory.
func (l *Log) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.records)
}

// ByType returns the in-memory records of one type, oldest first.
func (l *Log) ByType(t EventType) []Record {
	l.mu.RLock()
	defer l.mu.RUnlock()
	var out []Record
	for _, r := range l.records {
		if r.Type == t {
			out = append(out, r)
		}
	}
	return out
}

// Since returns the in-memory records at or after the given sim time.
func (l *Log) Since(atMs float64) []Record {
	l.mu.RLock()
	defer l.mu.RUnlock()
	var out []Record
	for _, r := range l.records {
		if r.AtMs >= atMs {
			out = append(out, r)
		}
	}
	return out
}

// Replay returns a copy of the full in-memory history, oldest first.
func (l *Log) Replay() []Record {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]Record, len(l.records))
	copy(out, l.records)
	return out
}

// Restore replaces the in-memory history, bypassing the persister. Used
// when resuming a saved run.
func (l *Log) Restore(records []Record) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.records = make([]Record, len(records))
	copy(l.records, records)
}
