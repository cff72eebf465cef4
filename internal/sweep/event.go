package sweep

// EventKind identifies an Observer notification.
type EventKind int

const (
	// EventStart is sent once, before the first iteration, with Total set.
	EventStart EventKind = iota
	// EventIteration is sent before each terminal run.
	EventIteration
	// EventFailure is sent after a terminal run fails.
	EventFailure
	// EventDone is sent once after the last iteration, with Summary set.
	EventDone
)

func (k EventKind) String() string {
	switch k {
	case EventStart:
		return "start"
	case EventIteration:
		return "iteration"
	case EventFailure:
		return "failure"
	case EventDone:
		return "done"
	default:
		return "unknown"
	}
}

// Event is progress information for displays. It carries plain data only.
type Event struct {
	Kind  EventKind
	RunID string

	// Index is 1-based; it is zero for EventStart and EventDone.
	Index int
	Total int

	Coordinate Coordinate
	Set        string
	Artifact   string

	// Err is set for EventFailure.
	Err error

	// Summary is set for EventDone.
	Summary *Summary
}

// Observer receives progress events. It runs on the sweep goroutine and
// must not block for long.
type Observer func(Event)
