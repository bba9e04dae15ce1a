package trade

// EventKind names the inputs the state machine accepts.
type EventKind string

const (
	EventPropose     EventKind = "PROPOSE_ITEMS"
	EventLock        EventKind = "LOCK"
	EventAcceptFinal EventKind = "ACCEPT_FINAL"
	EventDecline     EventKind = "DECLINE"
	EventCancel      EventKind = "CANCEL"
	EventExpire      EventKind = "EXPIRE"
)

// Event is one input to the machine. Actor is empty for scheduler events.
// ExpectedVersion, when set, must match the session's current version or the
// event is rejected with PreconditionFailed.
type Event struct {
	Kind            EventKind
	Actor           string
	ExpectedVersion *uint64
}

// Result describes the transition the store must apply: the next state, the
// side whose flag changed, and whether settlement must run in the same
// serialized step.
type Result struct {
	Next          State
	Side          Side
	SetLocked     bool
	SetAccepted   bool
	ReadyToCommit bool
}

// Transition is the pure state machine: it validates an event against a
// session and returns the transition to apply, without mutating anything.
// All legal transitions and their guards live here.
func Transition(s *Session, ev Event) (Result, error) {
	if s.State.Terminal() {
		return Result{}, ErrNotFound
	}
	if ev.ExpectedVersion != nil && *ev.ExpectedVersion != s.Version {
		return Result{}, &PreconditionFailedError{
			Reason:  "event computed from a stale snapshot",
			Version: s.Version,
		}
	}

	var side Side
	if ev.Kind != EventExpire {
		var ok bool
		side, ok = s.SideOf(ev.Actor)
		if !ok {
			return Result{}, newValidationError("%s is not a participant of this trade", ev.Actor)
		}
	}

	switch ev.Kind {
	case EventDecline:
		return Result{Next: StateDeclined, Side: side}, nil

	case EventCancel:
		return Result{Next: StateCancelled, Side: side}, nil

	case EventExpire:
		return Result{Next: StateExpired}, nil

	case EventPropose:
		if s.State != StateNegotiating {
			return Result{}, newValidationError("items can only be proposed while negotiating, state is %s", s.State)
		}
		if s.SideState(side).Locked {
			return Result{}, newValidationError("offer is locked and can no longer be changed")
		}
		return Result{Next: StateNegotiating, Side: side}, nil

	case EventLock:
		if s.State != StateNegotiating {
			return Result{}, newValidationError("offers can only be locked while negotiating, state is %s", s.State)
		}
		if s.SideState(side).Locked {
			return Result{}, newValidationError("offer is already locked")
		}
		next := StateNegotiating
		if s.SideState(side.Other()).Locked {
			next = StateBothLocked
		}
		return Result{Next: next, Side: side, SetLocked: true}, nil

	case EventAcceptFinal:
		if s.State != StateBothLocked {
			return Result{}, newValidationError("final acceptance requires both offers locked, state is %s", s.State)
		}
		if s.SideState(side).Accepted {
			return Result{}, newValidationError("final acceptance already given")
		}
		return Result{
			Next:          StateBothLocked,
			Side:          side,
			SetAccepted:   true,
			ReadyToCommit: s.SideState(side.Other()).Accepted,
		}, nil

	default:
		return Result{}, newValidationError("unknown event %s", ev.Kind)
	}
}
