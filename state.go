package quicklog

import (
	"sync"
	"sync/atomic"
	"time"
)

// State encapsulates the runtime state of the engine
type State struct {
	IsInitialized  atomic.Bool
	ShutdownCalled atomic.Bool
	FlushExited    atomic.Bool // Flush goroutine finished its final drain and closed the file
	RolloverExited atomic.Bool // Rollover goroutine has returned

	RolloverPhase atomic.Int32 // stores RolloverState

	flushRequestChan chan chan struct{} // Explicit flush requests, confirmed by closing the inner channel
	flushMutex       sync.Mutex         // Protect concurrent Flush calls
	intervalChan     chan struct{}      // Signals the flush loop to pick up a new interval
	flushIntervalNs  atomic.Int64

	// Statistics
	StartTime           atomic.Value  // Stores time.Time for uptime calculation
	TotalRecordsWritten atomic.Uint64 // Records appended to a log file
	TotalFiltered       atomic.Uint64 // Records skipped by a disabled level
	TotalRotations      atomic.Uint64 // Successful rollovers
	RolloverFailures    atomic.Uint64 // Rollover attempts that could not open the new file
	WriteErrors         atomic.Uint64 // Failed batch or status writes
	BytesWritten        atomic.Uint64 // Bytes appended to log files, status lines included
}

func (s *State) init(flushInterval time.Duration) {
	s.IsInitialized.Store(false)
	s.ShutdownCalled.Store(false)
	s.FlushExited.Store(false)
	s.RolloverExited.Store(false)
	s.RolloverPhase.Store(int32(RolloverArmed))
	s.StartTime.Store(time.Now())

	s.flushRequestChan = make(chan chan struct{}, 1)
	s.intervalChan = make(chan struct{}, 1)
	s.flushIntervalNs.Store(int64(flushInterval))
}

func (s *State) setRolloverState(rs RolloverState) {
	s.RolloverPhase.Store(int32(rs))
}

func (s *State) rolloverState() RolloverState {
	return RolloverState(s.RolloverPhase.Load())
}

func (s *State) uptime() time.Duration {
	if start, ok := s.StartTime.Load().(time.Time); ok && !start.IsZero() {
		return time.Since(start)
	}
	return 0
}
