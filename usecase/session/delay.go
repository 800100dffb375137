package session

import (
	"context"
	"time"
)

// Delay models the latency of a future remote backend. Every operation waits
// on it before touching the identity.
type Delay interface {
	Wait(ctx context.Context) error
}

// DelayFunc adapts a function to Delay.
type DelayFunc func(ctx context.Context) error

func (f DelayFunc) Wait(ctx context.Context) error {
	return f(ctx)
}

// NoDelay returns immediately unless ctx is already done.
var NoDelay Delay = DelayFunc(func(ctx context.Context) error {
	return ctx.Err()
})

// FixedDelay waits d or until ctx is done, whichever comes first.
func FixedDelay(d time.Duration) Delay {
	if d <= 0 {
		return NoDelay
	}
	return DelayFunc(func(ctx context.Context) error {
		timer := time.NewTimer(d)
		defer timer.Stop()
		select {
		case <-timer.C:
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	})
}
