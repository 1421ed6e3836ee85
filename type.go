package quicklog

// Record is an immutable snapshot of one log event.
// Timestamp is formatted when the record is ingested.
type Record struct {
	Timestamp string
	Level     string
	Component string
	Message   string
}

// RolloverState is the phase of the rollover scheduler
type RolloverState int32

const (
	RolloverArmed RolloverState = iota
	RolloverTriggering
	RolloverStopped
)

// String returns the state name
func (s RolloverState) String() string {
	switch s {
	case RolloverArmed:
		return "armed"
	case RolloverTriggering:
		return "triggering"
	case RolloverStopped:
		return "stopped"
	default:
		return "unknown"
	}
}
