package quicklog

import (
	"time"
)

// Default log level names, case sensitive
const (
	LevelFatal   = "FATAL"
	LevelError   = "ERROR"
	LevelWarning = "WARNING"
	LevelInfo    = "INFO"
	LevelDebug   = "DEBUG"
)

// DefaultLevels is the comma-separated level set enabled on a new engine
const DefaultLevels = LevelFatal + "," + LevelError + "," + LevelWarning + "," + LevelInfo + "," + LevelDebug

// DefaultFields is the full output column order
const DefaultFields = "TIME,LEVEL,COMPONENT,MESSAGE"

// Status lines written directly to the file, bypassing buffers and level filters
const (
	statusLevel          = LevelInfo
	statusComponent      = "QuickLogger"
	overflowStatusFormat = "Buffer overflows for this file: %d"
)

// File naming: <directory>/QL_<name>_<timestamp>.log.csv
const (
	filePrefix = "QL_"
	fileSuffix = ".log.csv"
)

// Buffer slots
const (
	primaryBuffer   = 0
	secondaryBuffer = 1
)

const secondsPerDay = 86400

// Timers
const (
	// Minimum wait time used throughout the package
	minWaitTime = 10 * time.Millisecond
	// Upper bound for waiting on an explicit flush request to be accepted
	flushRequestTimeout = 100 * time.Millisecond
)
