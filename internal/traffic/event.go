// internal/traffic/event.go

package traffic

import "time"

// EventKind represents the type of controller event.
type EventKind int

const (
	EventStart EventKind = iota
	EventPhase
	EventRequestLatched
	EventRequestCleared
	EventBounce
	EventPedestrian
	EventOutputFault
	EventStop
)

// Event is emitted by the controller on every observable change.
type Event struct {
	Time       time.Time
	Kind       EventKind
	Tick       uint32
	Phase      Phase
	Pedestrian bool
	Err        error
}

func (k EventKind) String() string {
	switch k {
	case EventStart:
		return "Start"
	case EventPhase:
		return "Phase"
	case EventRequestLatched:
		return "Latched"
	case EventRequestCleared:
		return "Cleared"
	case EventBounce:
		return "Bounce"
	case EventPedestrian:
		return "Pedestrian"
	case EventOutputFault:
		return "OutputFault"
	case EventStop:
		return "Stop"
	default:
		return "Unknown"
	}
}
