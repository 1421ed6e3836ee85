package quicklog

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/lixenwraith/quicklog/formatter"
)

var errSinkClosed = errors.New("quicklog: log file already closed")

// fileSink owns the open output file and the settings consulted while writing
// to it. A single mutex serializes file writes, file replacement, field order
// and level map changes. Administrative changes are rare so they share the I/O
// lock. Lock order: mu may be held while acquiring the buffer lock, never the
// reverse.
type fileSink struct {
	mu        sync.Mutex
	file      *logFile
	filename  string
	fields    []formatter.Field
	levels    map[string]bool
	formatter *formatter.Formatter
	closed    bool

	batch []byte
}

// writeResult summarizes one batch write
type writeResult struct {
	written  int
	filtered int
	bytes    int
}

func newFileSink(file *logFile, filename string, fields []formatter.Field, levels map[string]bool, f *formatter.Formatter) *fileSink {
	return &fileSink{
		file:      file,
		filename:  filename,
		fields:    fields,
		levels:    levels,
		formatter: f,
		batch:     make([]byte, 0, 64*1024),
	}
}

// enabled reports whether a level passes the filter. Unknown levels are enabled.
// Caller holds mu.
func (s *fileSink) enabled(level string) bool {
	on, known := s.levels[level]
	return !known || on
}

// writeRecords formats records oldest-first in the current field order and
// appends them to the file in one write. Records at disabled levels are skipped.
func (s *fileSink) writeRecords(records []Record) (writeResult, error) {
	var res writeResult
	if len(records) == 0 {
		return res, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return res, errSinkClosed
	}

	s.batch = s.batch[:0]
	for i := range records {
		r := &records[i]
		if !s.enabled(r.Level) {
			res.filtered++
			continue
		}
		s.batch = append(s.batch, s.formatter.Line(s.fields, r.Timestamp, r.Level, r.Component, r.Message)...)
		res.written++
	}
	if len(s.batch) == 0 {
		return res, nil
	}

	n, err := s.file.Write(s.batch)
	res.bytes = n
	if err != nil {
		res.written = 0
		return res, fmtErrorf("failed to write to log file '%s': %w", s.filename, err)
	}
	return res, nil
}

// writeDirect writes the status line produced by status immediately,
// bypassing buffers and level filters. status runs under the sink lock and
// only if the line will be attempted; nothing is written once ctx is cancelled.
func (s *fileSink) writeDirect(ctx context.Context, status func() string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return 0, errSinkClosed
	}
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	return s.writeDirectLocked(status())
}

func (s *fileSink) writeDirectLocked(message string) (int, error) {
	if s.closed {
		return 0, errSinkClosed
	}
	ts := time.Now().Format(formatter.TimestampLayout)
	n, err := s.file.Write(s.formatter.Line(s.fields, ts, statusLevel, statusComponent, message))
	if err != nil {
		return n, fmtErrorf("failed to write status line to '%s': %w", s.filename, err)
	}
	return n, nil
}

// sync commits written data to stable storage
func (s *fileSink) sync() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return errSinkClosed
	}
	if err := s.file.Sync(); err != nil {
		return fmtErrorf("failed to sync log file '%s': %w", s.filename, err)
	}
	return nil
}

// finalize writes the closing status line produced by status and closes the
// file, all under the sink lock. Further writes fail with errSinkClosed.
func (s *fileSink) finalize(status func() string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}

	_, err := s.writeDirectLocked(status())
	s.closed = true
	return combineErrors(err, s.file.close())
}

// swap replaces the output file with a newly opened one at path. If the new
// file cannot be opened the current file stays in use. A path equal to the
// current filename keeps the current handle. A cancelled ctx observed under
// the lock aborts the swap so no file is opened once shutdown has begun.
func (s *fileSink) swap(ctx context.Context, path string, lockFile bool) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return false, errSinkClosed
	}
	if err := ctx.Err(); err != nil {
		return false, err
	}
	if path == s.filename {
		return false, nil
	}

	next, err := openLogFile(path, lockFile)
	if err != nil {
		return false, err
	}

	prev := s.file
	s.file = next
	s.filename = path
	return true, prev.close()
}

func (s *fileSink) isClosed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

func (s *fileSink) currentFilename() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filename
}

func (s *fileSink) setFields(fields []formatter.Field) {
	s.mu.Lock()
	s.fields = fields
	s.mu.Unlock()
}

func (s *fileSink) getFields() []formatter.Field {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]formatter.Field(nil), s.fields...)
}

// setEnabledLevels enables every listed level and disables known levels not listed
func (s *fileSink) setEnabledLevels(levels []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for name := range s.levels {
		s.levels[name] = false
	}
	for _, name := range levels {
		s.levels[name] = true
	}
}

// toggleLevel sets one level on or off, adding it to the map if unknown
func (s *fileSink) toggleLevel(level string, enabled bool) {
	s.mu.Lock()
	s.levels[level] = enabled
	s.mu.Unlock()
}

func (s *fileSink) levelEnabled(level string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.enabled(level)
}

// levelSnapshot copies the level map
func (s *fileSink) levelSnapshot() map[string]bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	m := make(map[string]bool, len(s.levels))
	for k, v := range s.levels {
		m[k] = v
	}
	return m
}
