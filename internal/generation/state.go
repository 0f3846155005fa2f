package generation

import "sync"

// Status is the generation state of one loadsheet edition.
type Status int

const (
	StatusNotStarted Status = iota
	StatusGenerating
	StatusCompleted
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusNotStarted:
		return "not_started"
	case StatusGenerating:
		return "generating"
	case StatusCompleted:
		return "completed"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// State is a snapshot of one edition's generation state.
type State struct {
	Status  Status
	LastErr error
}

// typeState guards one edition. opMu serializes whole generation operations
// for the edition; mu guards the snapshot fields so State() never blocks
// behind an in-flight generation.
type typeState struct {
	opMu sync.Mutex

	mu      sync.Mutex
	status  Status
	lastErr error
}

func (s *typeState) set(status Status, err error) {
	s.mu.Lock()
	s.status = status
	s.lastErr = err
	s.mu.Unlock()
}

func (s *typeState) snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return State{Status: s.status, LastErr: s.lastErr}
}
