package job

import (
	"context"
	"time"
)

// Wait blocks for d or until ctx is done, whichever comes first.
func Wait(ctx context.Context, d time.Duration) error {
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

// Line is a pin a scripted press can drive.
type Line interface {
	Set(level bool)
}

// Press holds an active-low line low for hold, starting after delay.
// The line is released even if ctx ends mid-press.
func Press(ctx context.Context, line Line, delay, hold time.Duration) error {
	if err := Wait(ctx, delay); err != nil {
		return err
	}
	line.Set(false)
	defer line.Set(true)
	return Wait(ctx, hold)
}

// Script runs Press for every offset in order, each relative to the start of
// the script. It returns when all presses are done or ctx ends.
func Script(ctx context.Context, line Line, offsets []time.Duration, hold time.Duration) error {
	start := time.Now()
	for _, at := range offsets {
		delay := at - time.Since(start)
		if err := Press(ctx, line, delay, hold); err != nil {
			return err
		}
	}
	return nil
}
