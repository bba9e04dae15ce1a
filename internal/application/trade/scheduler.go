package trade

import (
	"time"

	"github.com/guild-hub/guild-hub/internal/domain/trade"
)

// Scheduler arms the time-bound phase transitions: the invitation-response
// window and the negotiation-to-settlement window. Each armed timer carries
// the generation token read at arm time; the firing callback re-checks it
// under the session lock, so a stale firing is a no-op. Timers are never
// cancelled explicitly; bumping the generation is sufficient.
type Scheduler struct {
	clock trade.Clock
	after func(d time.Duration, fn func())
}

// NewScheduler creates a scheduler backed by time.AfterFunc.
func NewScheduler(clock trade.Clock) *Scheduler {
	return &Scheduler{
		clock: clock,
		after: func(d time.Duration, fn func()) {
			time.AfterFunc(d, fn)
		},
	}
}

// Arm schedules fire(gen) for the deadline.
func (s *Scheduler) Arm(deadline time.Time, gen uint64, fire func(gen uint64)) {
	d := deadline.Sub(s.clock.Now())
	if d < 0 {
		d = 0
	}
	s.after(d, func() {
		fire(gen)
	})
}
