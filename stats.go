package quicklog

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
)

// Stats is a point-in-time snapshot of engine counters
type Stats struct {
	Uptime           time.Duration
	RecordsWritten   uint64
	RecordsFiltered  uint64
	Overflow         uint64 // since the last rollover
	TotalDropped     uint64 // lifetime
	Pending          int    // records queued in both buffers
	BufferCapacity   int
	BytesWritten     uint64
	WriteErrors      uint64
	Rotations        uint64
	RolloverFailures uint64
	RolloverState    RolloverState
	RolloverSpec     RolloverSpec
	CurrentFile      string
	LogFileCount     int   // -1 if the directory could not be read
	LogDirBytes      int64 // -1 if the directory could not be read
}

// Stats collects a snapshot of the engine counters and the log directory usage
func (e *Engine) Stats() Stats {
	s := Stats{
		Uptime:           e.state.uptime(),
		RecordsWritten:   e.state.TotalRecordsWritten.Load(),
		RecordsFiltered:  e.state.TotalFiltered.Load(),
		Overflow:         e.buffer.overflowCount(),
		TotalDropped:     e.buffer.totalDropped(),
		Pending:          e.buffer.pending(),
		BufferCapacity:   e.buffer.getCapacity(),
		BytesWritten:     e.state.BytesWritten.Load(),
		WriteErrors:      e.state.WriteErrors.Load(),
		Rotations:        e.state.TotalRotations.Load(),
		RolloverFailures: e.state.RolloverFailures.Load(),
		RolloverState:    e.state.rolloverState(),
		RolloverSpec:     e.spec,
		CurrentFile:      e.sink.currentFilename(),
	}

	count, size, err := e.naming.dirUsage()
	if err != nil {
		e.internalLog("warning - stats failed to read log directory: %v\n", err)
	}
	s.LogFileCount = count
	s.LogDirBytes = size
	return s
}

// String renders the snapshot as space-separated key=value pairs
func (s Stats) String() string {
	dirSize := "unknown"
	if s.LogDirBytes >= 0 {
		dirSize = humanize.Bytes(uint64(s.LogDirBytes))
	}

	pairs := []string{
		"uptime=" + s.Uptime.Truncate(time.Millisecond).String(),
		"written=" + humanize.Comma(int64(s.RecordsWritten)),
		"filtered=" + humanize.Comma(int64(s.RecordsFiltered)),
		"overflow=" + humanize.Comma(int64(s.Overflow)),
		"dropped_total=" + humanize.Comma(int64(s.TotalDropped)),
		fmt.Sprintf("pending=%d/%d", s.Pending, 2*s.BufferCapacity),
		"bytes=" + humanize.Bytes(s.BytesWritten),
		fmt.Sprintf("write_errors=%d", s.WriteErrors),
		fmt.Sprintf("rotations=%d", s.Rotations),
		fmt.Sprintf("rollover_failures=%d", s.RolloverFailures),
		"rollover=" + s.RolloverState.String(),
		"period=" + strings.ReplaceAll(s.RolloverSpec.String(), " ", "_"),
		fmt.Sprintf("files=%d", s.LogFileCount),
		"dir_size=" + dirSize,
		"file=" + s.CurrentFile,
	}
	return strings.Join(pairs, " ")
}
