package quicklog

import (
	"context"
	"errors"
	"fmt"
)

// runFlush is the flush loop running in its own goroutine. Each cycle drains
// both buffers. On cancellation it performs a final drain, writes the overflow
// status line and closes the file before signalling flushDone.
func (e *Engine) runFlush(ctx context.Context) {
	defer close(e.flushDone)
	defer e.state.FlushExited.Store(true)

	ticker := e.setupFlushTimer()
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			// Producers that passed the shutdown check may still push; close
			// the buffer first so the final drain sees every accepted record
			e.buffer.close()
			e.drain()
			e.closeErr = e.sink.finalize(e.overflowStatus)
			if e.closeErr != nil {
				e.internalLog("failed to close log file on shutdown: %v\n", e.closeErr)
			}
			e.rejectFlushRequests()
			return

		case <-ticker.C:
			e.drain()

		case confirmChan := <-e.state.flushRequestChan:
			e.handleFlushRequest(confirmChan)

		case <-e.state.intervalChan:
			e.resetFlushTimer(ticker)
		}
	}
}

// drain runs the two-phase swap: producers move to the secondary buffer while
// the primary is written, then back to the primary while the secondary's
// short-window records are written.
func (e *Engine) drain() {
	e.buffer.setActive(secondaryBuffer)
	e.writeBuffer(primaryBuffer)
	e.buffer.setActive(primaryBuffer)
	e.writeBuffer(secondaryBuffer)
}

// writeBuffer detaches one buffer and writes its records oldest-first
func (e *Engine) writeBuffer(i int) {
	records := e.buffer.take(i)
	if len(records) == 0 {
		return
	}

	res, err := e.sink.writeRecords(records)
	e.buffer.recycle(i, records)

	e.state.TotalFiltered.Add(uint64(res.filtered))
	e.state.BytesWritten.Add(uint64(res.bytes))
	if err != nil {
		e.state.WriteErrors.Add(1)
		if !errors.Is(err, errSinkClosed) {
			e.internalLog("%v, %d records lost\n", err, len(records)-res.filtered)
		}
		return
	}
	e.state.TotalRecordsWritten.Add(uint64(res.written))
}

// handleFlushRequest drains immediately, syncs the file and confirms to the Flush caller
func (e *Engine) handleFlushRequest(confirmChan chan struct{}) {
	e.drain()
	if err := e.sink.sync(); err != nil {
		e.internalLog("%v\n", err)
	}
	close(confirmChan)
}

// rejectFlushRequests releases a Flush caller that raced with shutdown.
// The final drain already ran, so its records are written.
func (e *Engine) rejectFlushRequests() {
	select {
	case confirmChan := <-e.state.flushRequestChan:
		close(confirmChan)
	default:
	}
}

// overflowStatus renders the overflow status line and resets the counter
func (e *Engine) overflowStatus() string {
	return fmt.Sprintf(overflowStatusFormat, e.buffer.takeOverflow())
}
