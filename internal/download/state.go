package download

// State is a step of the orchestration state machine.
type State int32

const (
	StateIdle State = iota
	StateValidating
	StateSubmitting
	StateAwaitingResult
	StateFinalizing
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "Idle"
	case StateValidating:
		return "Validating"
	case StateSubmitting:
		return "Submitting"
	case StateAwaitingResult:
		return "AwaitingResult"
	case StateFinalizing:
		return "Finalizing"
	case StateFailed:
		return "Failed"
	default:
		return "Unknown"
	}
}

// IsActive reports whether a request is in flight in this state.
func (s State) IsActive() bool {
	return s == StateSubmitting || s == StateAwaitingResult || s == StateFinalizing
}
