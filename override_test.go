package quicklog

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyOverride(t *testing.T) {
	engine, _ := createTestEngine(t)
	defer engine.Shutdown()

	tests := []struct {
		name      string
		overrides []string
		verify    func(t *testing.T, e *Engine)
		wantError string
	}{
		{
			name:      "levels",
			overrides: []string{"levels=ERROR,FATAL"},
			verify: func(t *testing.T, e *Engine) {
				assert.False(t, e.LevelEnabled(LevelInfo))
				assert.True(t, e.LevelEnabled(LevelError))
			},
		},
		{
			name:      "disabled levels",
			overrides: []string{"levels=" + DefaultLevels, "disabled_levels=DEBUG,TRACE"},
			verify: func(t *testing.T, e *Engine) {
				assert.True(t, e.LevelEnabled(LevelInfo))
				assert.False(t, e.LevelEnabled(LevelDebug))
				assert.False(t, e.LevelEnabled("TRACE"))
				assert.Equal(t, "DEBUG,TRACE", e.GetConfig().DisabledLevels)
			},
		},
		{
			name:      "fields and buffer",
			overrides: []string{"fields=LEVEL,MESSAGE", "buffer_size=42"},
			verify: func(t *testing.T, e *Engine) {
				assert.Equal(t, "LEVEL,MESSAGE", e.FieldOrder())
				assert.Equal(t, 42, e.buffer.getCapacity())
			},
		},
		{
			name:      "flush interval as duration",
			overrides: []string{"flush_interval_ms=50ms"},
			verify: func(t *testing.T, e *Engine) {
				assert.Equal(t, int64(50), e.GetConfig().FlushIntervalMs)
				assert.Equal(t, int64(50*time.Millisecond), e.state.flushIntervalNs.Load())
			},
		},
		{
			name:      "static key rejected",
			overrides: []string{"directory=/tmp/elsewhere"},
			wantError: "cannot be changed at runtime",
		},
		{
			name:      "malformed",
			overrides: []string{"invalid"},
			wantError: "expected key=value",
		},
		{
			name:      "invalid value",
			overrides: []string{"buffer_size=not_a_number"},
			wantError: "invalid integer value for buffer_size",
		},
		{
			name:      "validation",
			overrides: []string{"buffer_size=0"},
			wantError: "buffer_size must be positive",
		},
		{
			name:      "multiple errors",
			overrides: []string{"a", "buffer_size=x"},
			wantError: "multiple configuration errors",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := engine.GetConfig()
			err := engine.ApplyOverride(tt.overrides...)
			if tt.wantError != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantError)
				assert.Equal(t, before, engine.GetConfig(), "failed override leaves config unchanged")
				return
			}
			require.NoError(t, err)
			tt.verify(t, engine)
		})
	}
}

func TestConfigApplyOverrides(t *testing.T) {
	cfg := DefaultConfig()
	err := cfg.ApplyOverrides(
		"name=worker",
		"directory=/srv/logs",
		"filename_time_format=2006-01",
		"lock_file=true",
		"rollover_period=2 hours",
		"rollover_poll_ms=250",
		"sanitization=strip",
		"internal_errors_to_stderr=false",
	)
	require.NoError(t, err)

	assert.Equal(t, "worker", cfg.Name)
	assert.Equal(t, "/srv/logs", cfg.Directory)
	assert.Equal(t, "2006-01", cfg.FilenameTimeFormat)
	assert.True(t, cfg.LockFile)
	assert.Equal(t, "2 hours", cfg.RolloverPeriod)
	assert.Equal(t, int64(250), cfg.RolloverPollMs)
	assert.Equal(t, "strip", cfg.Sanitization)
	assert.False(t, cfg.InternalErrorsToStderr)

	assert.ErrorContains(t, cfg.ApplyOverrides("lock_file=maybe"), "invalid boolean value for lock_file")
	assert.ErrorContains(t, cfg.ApplyOverrides("unknown=1"), "unknown configuration key 'unknown'")
}
