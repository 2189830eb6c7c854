package engine

import "testing"

func TestClockCompressesTheNight(t *testing.T) {
	// Ratio 60: one real minute per virtual hour, seven for the whole night.
	c := NewClock(60, 23, 6)

	if c.NightMinutes() != 420 {
		t.Errorf("Expected a 420 minute night, got %v", c.NightMinutes())
	}
	if c.Format() != "23:00" {
		t.Errorf("Expected the night to open at 23:00, got %s", c.Format())
	}

	c.Advance(90 * 1000) // 90 real seconds
	if c.Format() != "00:30" {
		t.Errorf("Expected 00:30 after 90s, got %s", c.Format())
	}

	c.Advance(7 * 60 * 1000)
	if c.Format() != "06:00" {
		t.Errorf("Expected the clocks pinned at 06:00, got %s", c.Format())
	}
	if !c.DawnReached() {
		t.Error("Expected dawn after seven real minutes")
	}
}

func TestClockHourBoundaries(t *testing.T) {
	c := NewClock(60, 23, 6)

	var hours []int
	c.OnHour(func(h int) { hours = append(hours, h) })

	// Tick through the whole night in uneven slices.
	for ms := 0.0; ms < 7*60*1000; ms += 333 {
		c.Advance(333)
	}

	want := []int{0, 1, 2, 3, 4, 5, 6}
	if len(hours) != len(want) {
		t.Fatalf("Expected %d hour chimes, got %d (%v)", len(want), len(hours), hours)
	}
	for i := range want {
		if hours[i] != want[i] {
			t.Errorf("Expected chime %d at hour %d, got %d", i, want[i], hours[i])
		}
	}
}

func TestClockOneShotFiresOnce(t *testing.T) {
	c := NewClock(60, 23, 6)

	fired := 0
	c.OnceAt("dead_hour", 3, 0, func() { fired++ })
	// A duplicate registration is ignored.
	c.OnceAt("dead_hour", 5, 0, func() { fired += 100 })

	c.Advance(3 * 60 * 1000) // 02:00
	if fired != 0 {
		t.Errorf("Expected no firing before 03:00, got %d", fired)
	}
	c.Advance(2 * 60 * 1000) // 04:00, crossed in one frame
	if fired != 1 {
		t.Errorf("Expected exactly one firing after crossing 03:00, got %d", fired)
	}
	c.Advance(2 * 60 * 1000)
	if fired != 1 {
		t.Errorf("Expected no refiring, got %d", fired)
	}
}

func TestClockDawnFiresOnce(t *testing.T) {
	c := NewClock(60, 23, 6)

	dawns := 0
	c.OnDawn(func() { dawns++ })

	c.Advance(10 * 60 * 1000)
	c.Advance(60 * 1000)
	if dawns != 1 {
		t.Errorf("Expected dawn exactly once, got %d", dawns)
	}
}

func TestSetElapsedMarksPassedMomentsSpent(t *testing.T) {
	c := NewClock(60, 23, 6)

	fired := 0
	c.OnceAt("midnight", 0, 0, func() { fired++ })
	c.OnceAt("false_dawn", 5, 30, func() { fired += 10 })

	// Resume a save from 02:00: midnight is behind us, the false dawn ahead.
	c.SetElapsed(3 * 60 * 1000)
	if fired != 0 {
		t.Errorf("Expected restore to fire nothing, got %d", fired)
	}
	if c.Format() != "02:00" {
		t.Errorf("Expected 02:00 after restore, got %s", c.Format())
	}

	c.Advance(4 * 60 * 1000) // 06:00
	if fired != 10 {
		t.Errorf("Expected only the false dawn after resuming, got %d", fired)
	}
}
