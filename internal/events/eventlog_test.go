package events

import (
	"sync"
	"testing"
)

// memPersister collects writes for assertions.
type memPersister struct {
	mu   sync.Mutex
	recs []Record
	done chan struct{}
}

func (p *memPersister) Append(rec Record) error {
	p.mu.Lock()
	p.recs = append(p.recs, rec)
	p.mu.Unlock()
	p.done <- struct{}{}
	return nil
}

func TestLogTrimsToMaxLen(t *testing.T) {
	l := NewLog(3, nil)

	for i := 0; i < 5; i++ {
		l.Append(NewRecord(float64(i*1000), EventTypeCommand, "player", 0, "look"))
	}

	if l.Len() != 3 {
		t.Fatalf("Expected the log trimmed to 3 records, got %d", l.Len())
	}
	recs := l.Replay()
	if recs[0].AtMs != 2000 {
		t.Errorf("Expected the oldest surviving record at 2000ms, got %v", recs[0].AtMs)
	}
}

func TestLogFilters(t *testing.T) {
	l := NewLog(0, nil)
	l.Append(NewRecord(0, EventTypeSimStart, "house", 0, ""))
	l.Append(NewRecord(5000, EventTypeMove, "player", 0, "library"))
	l.Append(NewRecord(9000, EventTypeMove, "player", 0, "study"))
	l.Append(NewRecord(12000, EventTypeFearChange, "house", 4.2, "creak"))

	moves := l.ByType(EventTypeMove)
	if len(moves) != 2 || moves[0].Detail != "library" || moves[1].Detail != "study" {
		t.Errorf("Expected both moves oldest first, got %v", moves)
	}

	late := l.Since(9000)
	if len(late) != 2 {
		t.Errorf("Expected 2 records at or after 9000ms, got %d", len(late))
	}
}

func TestLogWritesThroughToPersister(t *testing.T) {
	p := &memPersister{done: make(chan struct{}, 2)}
	l := NewLog(0, p)

	l.Append(NewRecord(0, EventTypeSimStart, "house", 0, "run-1"))
	l.Append(NewRecord(100, EventTypeCommand, "player", 0, "hide"))

	<-p.done
	<-p.done

	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.recs) != 2 {
		t.Fatalf("Expected 2 persisted records, got %d", len(p.recs))
	}
}

func TestRestoreBypassesPersister(t *testing.T) {
	p := &memPersister{done: make(chan struct{}, 8)}
	l := NewLog(0, p)

	saved := []Record{
		NewRecord(0, EventTypeSimStart, "house", 0, "run-1"),
		NewRecord(100, EventTypeMove, "player", 0, "library"),
	}
	l.Restore(saved)

	if l.Len() != 2 {
		t.Errorf("Expected 2 restored records, got %d", l.Len())
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.recs) != 0 {
		t.Errorf("Expected restore to skip the persister, got %d writes", len(p.recs))
	}
}
