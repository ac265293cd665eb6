package controller

// State is the controller's position in the submission lifecycle.
type State int

const (
	StateIdle State = iota
	StateLoading
	StateDisplayingResults
	StateDisplayingError
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StateDisplayingResults:
		return "displaying-results"
	case StateDisplayingError:
		return "displaying-error"
	default:
		return "unknown"
	}
}
