package quicklog

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateFileName(t *testing.T) {
	n := fileNaming{directory: "/var/log/app", name: "api", timeLayout: "20060102"}
	ts := time.Date(2024, 7, 4, 13, 14, 15, 0, time.UTC)

	assert.Equal(t, "/var/log/app/QL_api_20240704.log.csv", n.generateFileName(ts))

	n.timeLayout = "20060102_150405"
	assert.Equal(t, "/var/log/app/QL_api_20240704_131415.log.csv", n.generateFileName(ts))
}

func TestIsLogFile(t *testing.T) {
	n := fileNaming{name: "api"}

	assert.True(t, n.isLogFile("QL_api_20240704.log.csv"))
	assert.False(t, n.isLogFile("QL_web_20240704.log.csv"))
	assert.False(t, n.isLogFile("QL_api_20240704.log"))
	assert.False(t, n.isLogFile("api.log.csv"))
}

func TestOpenLogFileCreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "QL_x_1.log.csv")

	f, err := openLogFile(path, false)
	require.NoError(t, err)
	_, err = f.WriteString("line\n")
	require.NoError(t, err)
	require.NoError(t, f.close())

	// Reopen appends
	f, err = openLogFile(path, false)
	require.NoError(t, err)
	_, err = f.WriteString("more\n")
	require.NoError(t, err)
	require.NoError(t, f.close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "line\nmore\n", string(data))
}

func TestOpenLogFileLock(t *testing.T) {
	path := filepath.Join(t.TempDir(), "QL_locked_1.log.csv")

	f, err := openLogFile(path, true)
	require.NoError(t, err)

	_, err = openLogFile(path, true)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "locked by another process")

	// Unlocked opens are not affected by the advisory lock
	plain, err := openLogFile(path, false)
	require.NoError(t, err)
	require.NoError(t, plain.close())

	require.NoError(t, f.close())

	again, err := openLogFile(path, true)
	require.NoError(t, err, "lock released on close")
	require.NoError(t, again.close())
}

func TestDirUsage(t *testing.T) {
	dir := t.TempDir()
	n := fileNaming{directory: dir, name: "svc"}

	require.NoError(t, os.WriteFile(filepath.Join(dir, "QL_svc_1.log.csv"), []byte(strings.Repeat("a", 100)), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "QL_svc_2.log.csv"), []byte(strings.Repeat("b", 50)), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.txt"), []byte("ignored"), 0644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "QL_svc_dir.log.csv"), 0755))

	count, size, err := n.dirUsage()
	require.NoError(t, err)
	assert.Equal(t, 2, count)
	assert.Equal(t, int64(150), size)

	n.directory = filepath.Join(dir, "missing")
	count, size, err = n.dirUsage()
	assert.NoError(t, err)
	assert.Zero(t, count)
	assert.Zero(t, size)
}
