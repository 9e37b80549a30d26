package engine

// State is the lifecycle position of the engine's current attempt.
type State int

const (
	// NotStarted is the state before the first Start.
	NotStarted State = iota
	// InProgress accepts answers and navigation.
	InProgress
	// Submitted holds a graded attempt until Retake.
	Submitted
)

func (s State) String() string {
	switch s {
	case NotStarted:
		return "not_started"
	case InProgress:
		return "in_progress"
	case Submitted:
		return "submitted"
	default:
		return "unknown"
	}
}
