package trade

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var (
	// ErrNotFound is returned for unknown or already-closed sessions and
	// invitations.
	ErrNotFound = errors.New("trade not found")
	// ErrExpired is returned when an action arrives after the relevant
	// deadline already fired.
	ErrExpired = errors.New("trade window expired")
)

// ValidationError rejects an event that is illegal in the current state:
// wrong actor, wrong phase, locked offer, bad item set. It never mutates
// session state.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return "trade validation failed: " + e.Reason
}

func newValidationError(format string, args ...interface{}) *ValidationError {
	return &ValidationError{Reason: fmt.Sprintf(format, args...)}
}

// DuplicateSessionError signals that the unordered participant pair already
// has a live invitation or session.
type DuplicateSessionError struct {
	PairKey    string
	ExistingID uuid.UUID
}

func (e *DuplicateSessionError) Error() string {
	return fmt.Sprintf("pair %s already has a live trade %s", e.PairKey, e.ExistingID)
}

// PreconditionFailedError rejects an event computed from a stale snapshot, or
// a commit whose offers are no longer backed by the owners' inventories. The
// caller should resync and resubmit.
type PreconditionFailedError struct {
	Reason  string
	Version uint64
}

func (e *PreconditionFailedError) Error() string {
	return fmt.Sprintf("trade precondition failed: %s (version %d)", e.Reason, e.Version)
}

// ExternalCommitError wraps a failure of the inventory ledger during
// settlement. The session is cancelled; no leg has been applied.
type ExternalCommitError struct {
	Err error
}

func (e *ExternalCommitError) Error() string {
	return "trade commit failed: " + e.Err.Error()
}

func (e *ExternalCommitError) Unwrap() error {
	return e.Err
}
