// Package waiter computes the delays between the attempts of a client side
// waiter polling for a resource state.
package waiter

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"time"
)

// ComputeDelay computes the delay before the attempt following attempt. The
// delay grows exponentially from minDelay up to maxDelay, with jitter between
// minDelay and that ceiling, and never exceeds remainingTime.
//
// done reports that no attempt fits in the remaining time after this delay.
// The zeroth attempt has no delay.
func ComputeDelay(attempt int64, minDelay, maxDelay, remainingTime time.Duration) (delay time.Duration, done bool, err error) {
	if minDelay > maxDelay {
		return 0, true, fmt.Errorf("maximum delay must be greater than minimum delay")
	}

	if attempt <= 0 {
		return 0, false, nil
	}

	if remainingTime <= 0 {
		return 0, true, nil
	}

	// log below needs both bounds to be at least 1ns
	if minDelay < 1 {
		minDelay = 1
	}
	if maxDelay < 1 {
		return 0, true, nil
	}

	// attempts past the ceiling would overflow the shift
	attemptCeiling := (math.Log(float64(maxDelay/minDelay)) / math.Log(2)) + 1

	ceiling := maxDelay
	if attempt <= int64(attemptCeiling) {
		ceiling = minDelay * time.Duration(int64(1)<<uint64(attempt-1))
		if ceiling > maxDelay {
			ceiling = maxDelay
		}
	}

	delay = ceiling
	if ceiling > minDelay {
		delay = time.Duration(rand.Int63n(int64(ceiling-minDelay))) + minDelay
	}

	if remainingTime-delay < minDelay {
		if delay > remainingTime {
			delay = remainingTime
		}
		done = true
	}

	return delay, done, nil
}

// SleepWithContext waits for dur to elapse, or the context to be canceled,
// whichever happens first. The context's error is returned if it was
// canceled.
func SleepWithContext(ctx context.Context, dur time.Duration) error {
	t := time.NewTimer(dur)
	defer t.Stop()

	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
