package quicklog

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFullLifecycle(t *testing.T) {
	tmpDir := t.TempDir()

	engine, err := NewBuilder().
		Directory(tmpDir).
		Name("lifecycle").
		FilenameTimeFormat("20060102_150405.000000").
		RolloverPeriod("1 second").
		RolloverPoll(20 * time.Millisecond).
		Sanitization("txt").
		BufferSize(1000).
		FlushInterval(10 * time.Millisecond).
		InternalErrorsToStderr(false).
		Build()

	require.NoError(t, err, "engine creation with builder should succeed")
	require.NotNil(t, engine)

	firstFile := engine.CurrentFilename()

	// Log at various levels
	engine.Debug("debug message")
	engine.Info("info message")
	engine.Warning("warning message")
	engine.Error("error message")
	engine.Component("db").Logf(LevelInfo, "query took %dms", 12)
	engine.Log("AUDIT", "auth", "line1\nline2")

	// Runtime reconfiguration
	require.NoError(t, engine.ApplyOverride("disabled_levels=DEBUG", "fields=LEVEL,COMPONENT,MESSAGE"))
	engine.Debug("suppressed")
	engine.Info("after reconfiguration")

	require.NoError(t, engine.Flush(time.Second))

	assert.Eventually(t, func() bool {
		return engine.Stats().Rotations >= 1
	}, 3*time.Second, 20*time.Millisecond, "rollover should switch files")

	engine.Info("in second file")
	require.NoError(t, engine.Shutdown(2*time.Second))

	secondFile := engine.CurrentFilename()
	assert.NotEqual(t, firstFile, secondFile)

	first := strings.Join(readLines(t, firstFile), "\n")
	assert.Contains(t, first, ",DEBUG,,debug message")
	assert.Contains(t, first, ",INFO,db,query took 12ms")
	assert.Contains(t, first, ",AUDIT,auth,line1<0a>line2")
	assert.Contains(t, first, "INFO,,after reconfiguration")
	assert.NotContains(t, first, "suppressed")

	assert.Contains(t, strings.Join(readLines(t, secondFile), "\n"), "INFO,,in second file")

	matches, err := filepath.Glob(filepath.Join(tmpDir, "QL_lifecycle_*.log.csv"))
	require.NoError(t, err)
	assert.GreaterOrEqual(t, len(matches), 2)
}

func TestConcurrentOperations(t *testing.T) {
	engine, _ := createTestEngine(t, "buffer_size=10000")
	defer engine.Shutdown()

	var wg sync.WaitGroup

	// Concurrent logging
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				engine.Info("worker", id, "log", j)
			}
		}(i)
	}

	// Concurrent reconfiguration
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 10; i++ {
			engine.ToggleLevel(LevelDebug, i%2 == 0)
			engine.SetFieldOrder(DefaultFields)
			_ = engine.SetFlushInterval(time.Duration(5+i) * time.Millisecond)
			time.Sleep(5 * time.Millisecond)
		}
	}()

	// Concurrent flushes and stats
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 5; i++ {
			_ = engine.Flush(100 * time.Millisecond)
			_ = engine.Stats()
			time.Sleep(10 * time.Millisecond)
		}
	}()

	wg.Wait()
	require.NoError(t, engine.Flush(time.Second))

	stats := engine.Stats()
	assert.Equal(t, uint64(1000), stats.RecordsWritten)
	assert.Zero(t, stats.TotalDropped)
}

func TestLockFileSecondEngine(t *testing.T) {
	tmpDir := t.TempDir()
	build := func() (*Engine, error) {
		return NewBuilder().
			Directory(tmpDir).
			LockFile(true).
			InternalErrorsToStderr(false).
			Build()
	}

	first, err := build()
	require.NoError(t, err)

	second, err := build()
	assert.Nil(t, second)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "locked by another process")

	require.NoError(t, first.Shutdown(time.Second))

	third, err := build()
	require.NoError(t, err)
	assert.NoError(t, third.Shutdown(time.Second))
}

func TestDirectoryUsageInStats(t *testing.T) {
	engine, tmpDir := createTestEngine(t)
	defer engine.Shutdown()

	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "unrelated.txt"), []byte("x"), 0644))
	for i := 0; i < 10; i++ {
		engine.Info(fmt.Sprintf("message %d", i))
	}
	require.NoError(t, engine.Flush(time.Second))

	stats := engine.Stats()
	assert.Equal(t, 1, stats.LogFileCount, "only QL_ files are counted")
	assert.Positive(t, stats.LogDirBytes)
}
