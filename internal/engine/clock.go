// The virtual clock compresses the night. It is driven by the loop's frame
// deltas and never reads wall time, so pausing the loop pauses the night
// with no drift to correct afterwards.
package engine

import "fmt"

// hourHandler is notified on every virtual hour boundary.
type hourHandler func(hour int)

// scheduledMoment is a named one-shot fired once per run at a fixed point
// of the night.
type scheduledMoment struct {
	name     string
	atMinute float64
	fn       func()
}

// Clock converts accumulated frame time into virtual night time.
type Clock struct {
	ratio     float64 // virtual minutes per real minute
	startHour int
	endHour   int

	elapsedMs float64

	hourHandlers []hourHandler
	moments      []scheduledMoment
	fired        map[string]bool

	dawnFn    func()
	dawnFired bool
}

// NewClock creates a clock for a night running from startHour to endHour.
func NewClock(ratio float64, startHour, endHour int) *Clock {
	return &Clock{
		ratio:     ratio,
		startHour: startHour,
		endHour:   endHour,
		fired:     make(map[string]bool),
	}
}

// NightMinutes returns the virtual length of the night in minutes.
func (c *Clock) NightMinutes() float64 {
	return float64(((c.endHour-c.startHour)+24)%24) * 60
}

// ElapsedMs returns accumulated simulation time in real milliseconds.
func (c *Clock) ElapsedMs() float64 { return c.elapsedMs }

// TotalMinutes returns elapsed virtual minutes since the night began.
func (c *Clock) TotalMinutes() float64 {
	return c.elapsedMs / 60000.0 * c.ratio
}

// VirtualTime returns the current hour and minute on the house clocks.
func (c *Clock) VirtualTime() (hour, minute int) {
	total := int(c.TotalMinutes())
	if max := int(c.NightMinutes()); total > max {
		total = max
	}
	hour = (c.startHour + total/60) % 24
	minute = total % 60
	return hour, minute
}

// Format renders the virtual time as HH:MM.
func (c *Clock) Format() string {
	h, m := c.VirtualTime()
	return fmt.Sprintf("%02d:%02d", h, m)
}

// Hour returns the current virtual hour.
func (c *Clock) Hour() int {
	h, _ := c.VirtualTime()
	return h
}

// DawnReached reports whether the night is over.
func (c *Clock) DawnReached() bool {
	return c.TotalMinutes() >= c.NightMinutes()
}

// OnHour registers a handler fired at every hour boundary, including dawn.
func (c *Clock) OnHour(fn hourHandler) {
	c.hourHandlers = append(c.hourHandlers, fn)
}

// OnceAt registers a named one-shot fired when the clocks first reach the
// given hour and minute. Duplicate names overwrite nothing; the first
// registration wins.
func (c *Clock) OnceAt(name string, hour, minute int, fn func()) {
	for _, m := range c.moments {
		if m.name == name {
			return
		}
	}
	at := float64(((hour-c.startHour)+24)%24*60 + minute)
	c.moments = append(c.moments, scheduledMoment{name: name, atMinute: at, fn: fn})
}

// OnDawn registers the handler fired exactly once when the night completes.
func (c *Clock) OnDawn(fn func()) { c.dawnFn = fn }

// Advance accumulates a frame delta and fires every handler whose moment
// was crossed, in chronological order. Each hour boundary and one-shot
// fires at most once per run regardless of frame size.
func (c *Clock) Advance(dtMs float64) {
	beforeMin := c.TotalMinutes()
	c.elapsedMs += dtMs
	afterMin := c.TotalMinutes()

	nightLen := c.NightMinutes()
	if afterMin > nightLen {
		afterMin = nightLen
	}

	// Hour boundaries crossed this frame.
	for b := int(beforeMin)/60 + 1; float64(b*60) <= afterMin; b++ {
		hour := (c.startHour + b) % 24
		for _, fn := range c.hourHandlers {
			fn(hour)
		}
	}

	for i := range c.moments {
		m := &c.moments[i]
		if c.fired[m.name] || m.atMinute > afterMin {
			continue
		}
		if m.atMinute > beforeMin || beforeMin == 0 {
			c.fired[m.name] = true
			m.fn()
		}
	}

	if !c.dawnFired && afterMin >= nightLen {
		c.dawnFired = true
		if c.dawnFn != nil {
			c.dawnFn()
		}
	}
}

// SetElapsed restores the clock position without firing any handlers.
// One-shots before the restored point are marked spent so a resumed run
// does not replay them.
func (c *Clock) SetElapsed(elapsedMs float64) {
	c.elapsedMs = elapsedMs
	total := c.TotalMinutes()
	for _, m := range c.moments {
		if m.atMinute <= total {
			c.fired[m.name] = true
		}
	}
	if total >= c.NightMinutes() {
		c.dawnFired = true
	}
}
