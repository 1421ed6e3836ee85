package quicklog

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofrs/flock"
)

// fileNaming holds the inputs for generating output file paths
type fileNaming struct {
	directory  string
	name       string
	timeLayout string
}

// generateFileName builds <directory>/QL_<name>_<timestamp>.log.csv for the given time
func (n fileNaming) generateFileName(t time.Time) string {
	return filepath.Join(n.directory, filePrefix+n.name+"_"+t.Format(n.timeLayout)+fileSuffix)
}

// isLogFile reports whether a directory entry name belongs to this naming scheme
func (n fileNaming) isLogFile(fname string) bool {
	return strings.HasPrefix(fname, filePrefix+n.name+"_") && strings.HasSuffix(fname, fileSuffix)
}

// logFile is an open output file, optionally holding an exclusive advisory lock
type logFile struct {
	*os.File
	lock *flock.Flock
}

// openLogFile opens path for appending, creating the directory and file as needed
func openLogFile(path string, lockFile bool) (*logFile, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmtErrorf("failed to create log directory '%s': %w", filepath.Dir(path), err)
	}

	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmtErrorf("failed to open/create log file '%s': %w", path, err)
	}

	lf := &logFile{File: file}
	if !lockFile {
		return lf, nil
	}

	lf.lock = flock.New(path)
	locked, err := lf.lock.TryLock()
	if err != nil {
		file.Close()
		return nil, fmtErrorf("failed to lock log file '%s': %w", path, err)
	}
	if !locked {
		file.Close()
		return nil, fmtErrorf("log file '%s' is locked by another process", path)
	}
	return lf, nil
}

// close syncs and closes the file, releasing the lock if held
func (f *logFile) close() error {
	var err error
	if syncErr := f.Sync(); syncErr != nil {
		err = fmtErrorf("failed to sync log file '%s': %w", f.Name(), syncErr)
	}
	if closeErr := f.File.Close(); closeErr != nil {
		err = combineErrors(err, fmtErrorf("failed to close log file '%s': %w", f.Name(), closeErr))
	}
	if f.lock != nil {
		if unlockErr := f.lock.Unlock(); unlockErr != nil {
			err = combineErrors(err, fmtErrorf("failed to unlock log file '%s': %w", f.Name(), unlockErr))
		}
	}
	return err
}

// dirUsage counts the log files of this naming scheme in the directory and their total size
func (n fileNaming) dirUsage() (count int, size int64, err error) {
	entries, err := os.ReadDir(n.directory)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, 0, nil
		}
		return -1, -1, fmtErrorf("failed to read log directory '%s': %w", n.directory, err)
	}

	for _, entry := range entries {
		if entry.IsDir() || !n.isLogFile(entry.Name()) {
			continue
		}
		info, errInfo := entry.Info()
		if errInfo != nil {
			continue
		}
		count++
		size += info.Size()
	}
	return count, size, nil
}
