package session

import (
	"context"
	"time"
)

// Clock supplies the current time and the cosmetic pauses between steps of a
// regeneration. Sleep returns early with the context's error when it is done.
type Clock interface {
	Now() time.Time
	Sleep(ctx context.Context, d time.Duration) error
}

type realClock struct{}

// RealClock uses wall time and timers.
var RealClock Clock = realClock{}

func (realClock) Now() time.Time { return time.Now() }

func (realClock) Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// Delays are the pauses a regeneration waits through so the page animation and
// the word swap line up. Any non-negative values are valid.
type Delays struct {
	One     time.Duration `mapstructure:"one"`
	Animate time.Duration `mapstructure:"animate"`
	Settle  time.Duration `mapstructure:"settle"`
	Release time.Duration `mapstructure:"release"`
}

// DefaultDelays match the page's CSS transition timings.
var DefaultDelays = Delays{
	One:     75 * time.Millisecond,
	Animate: 375 * time.Millisecond,
	Settle:  100 * time.Millisecond,
	Release: 100 * time.Millisecond,
}
