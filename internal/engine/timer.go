package engine

import "time"

// Ticker delivers the countdown's one-second ticks.
type Ticker interface {
	C() <-chan time.Time
	Stop()
}

// TickerFactory builds a Ticker firing every d.
type TickerFactory func(d time.Duration) Ticker

type stdTicker struct {
	t *time.Ticker
}

func (s stdTicker) C() <-chan time.Time { return s.t.C }
func (s stdTicker) Stop()               { s.t.Stop() }

// NewStdTicker wraps time.NewTicker.
func NewStdTicker(d time.Duration) Ticker {
	return stdTicker{t: time.NewTicker(d)}
}

// countdown is one armed timer. It is replaced, never reused, when the
// attempt changes.
type countdown struct {
	ticker Ticker
	stop   chan struct{}
}

func (e *Engine) armTimer() {
	if !e.quiz.HasTimeLimit() {
		return
	}
	c := &countdown{
		ticker: e.newTicker(time.Second),
		stop:   make(chan struct{}),
	}
	e.timer = c
	go e.runTimer(c)
}

func (e *Engine) runTimer(c *countdown) {
	for {
		select {
		case <-c.stop:
			return
		case <-c.ticker.C():
			e.advance(c)
		}
	}
}

// stopTimer must be called with e.mu held.
func (e *Engine) stopTimer() {
	if e.timer == nil {
		return
	}
	close(e.timer.stop)
	e.timer.ticker.Stop()
	e.timer = nil
}
