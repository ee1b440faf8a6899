package world

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidConfiguration is returned when a request would put the world
	// into an impossible state: a non-positive radius, a container without
	// area, more bodies than the roster holds, or a bad velocity scale.
	ErrInvalidConfiguration = errors.New("invalid configuration")

	// ErrRosterFull is returned when there is no inactive body left to activate.
	ErrRosterFull = fmt.Errorf("%w: roster full", ErrInvalidConfiguration)

	// ErrBodyIndex is returned for an index outside the roster, or one that
	// cannot be activated because it is already active.
	ErrBodyIndex = errors.New("body index out of range")

	// ErrSubstepBudgetExceeded is returned when a frame needs more sub-steps
	// than the configured cap. The frame ends early and the world stays
	// usable.
	ErrSubstepBudgetExceeded = errors.New("sub-step budget exceeded")
)

// SubstepError reports a frame that was cut short by the sub-step cap.
type SubstepError struct {
	Substeps  int     // Sub-steps run before giving up
	Remaining float64 // Frame time left unresolved
}

func (e *SubstepError) Error() string {
	return fmt.Sprintf("%v after %d sub-steps, %.4g time left", ErrSubstepBudgetExceeded, e.Substeps, e.Remaining)
}

func (e *SubstepError) Unwrap() error {
	return ErrSubstepBudgetExceeded
}
