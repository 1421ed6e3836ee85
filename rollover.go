package quicklog

import (
	"context"
	"errors"
	"time"
)

// runRollover is the rollover loop running in its own goroutine. It counts
// down to the next trigger in poll-sized steps. On trigger it writes the
// overflow status line to the outgoing file and swaps in a file named for the
// current time. A failed open keeps the outgoing file and retries on the next
// tick with the countdown left expired.
func (e *Engine) runRollover(ctx context.Context) {
	defer close(e.rolloverDone)
	defer e.state.RolloverExited.Store(true)
	defer e.state.setRolloverState(RolloverStopped)

	ticker, poll := e.setupRolloverTimer()
	defer ticker.Stop()

	lockFile := e.getConfig().LockFile
	remaining := NextTrigger(e.spec, time.Now())
	statusWritten := false

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		remaining -= poll
		if remaining > 0 {
			continue
		}
		if ctx.Err() != nil {
			return
		}

		e.state.setRolloverState(RolloverTriggering)

		// Once per trigger, so retries after a failed open don't repeat it
		if !statusWritten {
			n, err := e.sink.writeDirect(ctx, e.overflowStatus)
			e.state.BytesWritten.Add(uint64(n))
			if errors.Is(err, errSinkClosed) || errors.Is(err, context.Canceled) {
				return
			}
			if err != nil {
				e.state.WriteErrors.Add(1)
				e.internalLog("%v\n", err)
			}
			statusWritten = true
		}

		now := time.Now()
		path := e.naming.generateFileName(now)
		swapped, err := e.sink.swap(ctx, path, lockFile)
		if errors.Is(err, errSinkClosed) || errors.Is(err, context.Canceled) {
			return
		}
		if err != nil && !swapped {
			e.state.RolloverFailures.Add(1)
			e.internalLog("rollover to '%s' failed, keeping current file and retrying: %v\n", path, err)
			e.state.setRolloverState(RolloverArmed)
			continue
		}
		if err != nil {
			// New file is active; only closing the previous one failed
			e.internalLog("rollover: %v\n", err)
		}
		if swapped {
			e.state.TotalRotations.Add(1)
		}

		statusWritten = false
		remaining = NextTrigger(e.spec, now)
		e.state.setRolloverState(RolloverArmed)
	}
}
