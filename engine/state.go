package engine

import "errors"

// State is the engine lifecycle position
type State uint32

const (
	Uninitialized State = iota
	Initializing
	Running
	ShuttingDown
)

// String returns the state name
func (s State) String() string {
	switch s {
	case Uninitialized:
		return "Uninitialized"
	case Initializing:
		return "Initializing"
	case Running:
		return "Running"
	case ShuttingDown:
		return "ShuttingDown"
	default:
		return "Unknown"
	}
}

var (
	// ErrPrerequisiteUnmet means the host context, viewport or elements do not allow the animation
	ErrPrerequisiteUnmet = errors.New("prerequisite unmet")
	// ErrAlreadyActive means another engine is initializing or running; callers treat it as a no-op
	ErrAlreadyActive = errors.New("engine already active")
	// ErrStartTimeout means the grid never became ready within the start timeout
	ErrStartTimeout = errors.New("animation start timeout")
	// ErrInvalidConfig wraps configuration validation failures
	ErrInvalidConfig = errors.New("invalid config")
)
