// Package retry runs an operation on a fixed wait schedule.
package retry

import (
	"context"
	"errors"
	"time"

	"github.com/jonboulle/clockwork"
)

const (
	DefaultAttempts  = 3
	DefaultInterval  = 10 * time.Second
	DefaultFinalWait = time.Hour
)

// Policy retries an operation after each wait in Delays, so an operation runs
// at most len(Delays)+1 times.
type Policy struct {
	Delays []time.Duration
	Clock  clockwork.Clock
	// OnRetry, when set, is called before each wait.
	OnRetry func(attempt int, wait time.Duration, err error)
}

// Schedule builds the delays for attempts tries spaced by interval, followed
// by one last try after finalWait. A zero finalWait omits the last try.
func Schedule(attempts int, interval, finalWait time.Duration) []time.Duration {
	var delays []time.Duration
	for i := 1; i < attempts; i++ {
		delays = append(delays, interval)
	}
	if finalWait > 0 {
		delays = append(delays, finalWait)
	}
	return delays
}

// Default returns three tries ten seconds apart and a final try after an hour.
func Default() Policy {
	return Policy{
		Delays: Schedule(DefaultAttempts, DefaultInterval, DefaultFinalWait),
		Clock:  clockwork.NewRealClock(),
	}
}

// MaxAttempts returns the number of times Do may call the operation.
func (p Policy) MaxAttempts() int { return len(p.Delays) + 1 }

type permanentError struct{ err error }

func (e *permanentError) Error() string { return e.err.Error() }
func (e *permanentError) Unwrap() error { return e.err }

// Permanent marks err as not worth retrying.
func Permanent(err error) error {
	if err == nil {
		return nil
	}
	return &permanentError{err: err}
}

// Do calls fn until it succeeds, returns a Permanent error, the schedule is
// exhausted, or ctx is done. It returns the number of calls made and the last
// error.
func (p Policy) Do(ctx context.Context, fn func(ctx context.Context) error) (int, error) {
	clock := p.Clock
	if clock == nil {
		clock = clockwork.NewRealClock()
	}

	attempt := 0
	for {
		attempt++
		err := fn(ctx)
		if err == nil {
			return attempt, nil
		}

		var perm *permanentError
		if errors.As(err, &perm) {
			return attempt, perm.err
		}
		if attempt > len(p.Delays) {
			return attempt, err
		}

		wait := p.Delays[attempt-1]
		if p.OnRetry != nil {
			p.OnRetry(attempt, wait, err)
		}

		timer := clock.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return attempt, errors.Join(err, ctx.Err())
		case <-timer.Chan():
		}
	}
}
