package domain

import "time"

// Feed represents one monitored discussion source
type Feed struct {
	Name           string
	Watermark      time.Time
	ErrorStreak    int
	SuspendedUntil *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// FailureClass distinguishes ban-risk failures from ordinary flakiness
type FailureClass int

const (
	// FailureTransient covers timeouts, 5xx, DNS and unparsable payloads
	FailureTransient FailureClass = iota
	// FailureBlocking covers 403/429 and explicit block responses; these drive suspension
	FailureBlocking
)

func (c FailureClass) String() string {
	if c == FailureBlocking {
		return "blocking"
	}
	return "transient"
}

// Eligible reports whether the feed can be polled at the given time.
// A suspension expires implicitly, there is no separate transition.
func (f *Feed) Eligible(now time.Time) bool {
	return f.SuspendedUntil == nil || !f.SuspendedUntil.After(now)
}

// ApplySuccess resets the failure state after a successful fetch
func (f *Feed) ApplySuccess() {
	f.ErrorStreak = 0
	f.SuspendedUntil = nil
}

// ApplyFailure advances the failure state machine for one failed fetch.
// Blocking failures increment the streak and suspend the feed once the streak
// exceeds maxStreak. Transient failures decrement-then-clamp so a single flaky
// response never pushes a feed toward suspension.
func (f *Feed) ApplyFailure(class FailureClass, now time.Time, maxStreak int, pause time.Duration) {
	switch class {
	case FailureBlocking:
		f.ErrorStreak++
		if f.ErrorStreak > maxStreak {
			until := now.Add(pause)
			f.SuspendedUntil = &until
		}
	case FailureTransient:
		if f.ErrorStreak > 0 {
			f.ErrorStreak--
		}
	}
}
