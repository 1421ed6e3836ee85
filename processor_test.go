package quicklog

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestDrainOrder verifies the two-phase drain writes the primary buffer before
// records that arrived in the secondary buffer during the swap window
func TestDrainOrder(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Directory = t.TempDir()
	cfg.FlushIntervalMs = 60000 // drive drains by hand
	cfg.InternalErrorsToStderr = false

	engine, err := New(cfg)
	require.NoError(t, err)
	defer engine.Shutdown()

	engine.Ingest(LevelInfo, "", "p1")
	engine.Ingest(LevelInfo, "", "p2")
	engine.buffer.setActive(secondaryBuffer)
	engine.Ingest(LevelInfo, "", "s1")
	engine.buffer.setActive(primaryBuffer)

	require.NoError(t, engine.Flush(time.Second))

	assert.Equal(t, []string{"p1", "p2", "s1"}, messagesOf(readLines(t, engine.CurrentFilename())))
	assert.Equal(t, 0, engine.buffer.pending())
	assert.Equal(t, uint64(3), engine.state.TotalRecordsWritten.Load())
}

// TestPeriodicFlush verifies records reach the file without an explicit Flush
func TestPeriodicFlush(t *testing.T) {
	engine, _ := createTestEngine(t)
	defer engine.Shutdown()

	for i := 0; i < 5; i++ {
		engine.Info("tick", i)
	}

	assert.Eventually(t, func() bool {
		return engine.state.TotalRecordsWritten.Load() == 5
	}, time.Second, 5*time.Millisecond)
}

// TestFlushTimeout verifies Flush reports a stuck flush loop
func TestFlushTimeout(t *testing.T) {
	engine, _ := createTestEngine(t)
	defer engine.Shutdown()

	engine.Info("queued")

	// Holding the sink lock stalls the drain inside the flush loop
	engine.sink.mu.Lock()
	err := engine.Flush(50 * time.Millisecond)
	engine.sink.mu.Unlock()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "quicklog: ")
}

// TestBufferSaturationDrops verifies producers are never blocked by a slow sink
func TestBufferSaturationDrops(t *testing.T) {
	engine, _ := createTestEngine(t, "buffer_size=5")
	defer engine.Shutdown()

	engine.sink.mu.Lock()
	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 100; i++ {
			engine.Ingest(LevelInfo, "", fmt.Sprint(i))
		}
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("ingest blocked while the sink was busy")
	}
	engine.sink.mu.Unlock()

	require.NoError(t, engine.Flush(time.Second))
	stats := engine.Stats()
	assert.Equal(t, uint64(100), stats.RecordsWritten+stats.Overflow)
	assert.Greater(t, stats.Overflow, uint64(0))
}
