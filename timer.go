package quicklog

import "time"

// setupFlushTimer creates the ticker driving flush cycles
func (e *Engine) setupFlushTimer() *time.Ticker {
	interval := time.Duration(e.state.flushIntervalNs.Load())
	if interval <= 0 {
		interval = DefaultConfig().flushInterval()
	}
	return time.NewTicker(interval)
}

// resetFlushTimer applies a changed flush interval to a running ticker
func (e *Engine) resetFlushTimer(ticker *time.Ticker) {
	interval := time.Duration(e.state.flushIntervalNs.Load())
	if interval < time.Millisecond {
		interval = time.Millisecond
	}
	ticker.Reset(interval)
}

// setupRolloverTimer creates the ticker that decrements the rollover countdown
func (e *Engine) setupRolloverTimer() (*time.Ticker, time.Duration) {
	poll := e.getConfig().rolloverPoll()
	if poll < minWaitTime {
		poll = minWaitTime
	}
	return time.NewTicker(poll), poll
}

// waitDone waits for done to close, bounded by deadline if non-nil.
// Reports whether done closed.
func waitDone(done <-chan struct{}, deadline <-chan time.Time) bool {
	select {
	case <-done:
		return true
	case <-deadline:
		return false
	}
}
