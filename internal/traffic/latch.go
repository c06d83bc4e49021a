// internal/traffic/latch.go

package traffic

import (
	"sync/atomic"
	"time"
)

// DebounceInterval is the wait between the two samples of the button input.
const DebounceInterval = 20 * time.Millisecond

// Input is a digital input line. Get returns the electrical level (true = high).
type Input interface {
	Get() bool
}

// ButtonRequest is the "pedestrian crossing requested" flag.
// It is shared between the latch, which sets it, and the pedestrian
// controller, which clears it.
type ButtonRequest struct {
	pending atomic.Bool
}

// Pending reports whether a crossing request is latched.
func (r *ButtonRequest) Pending() bool { return r.pending.Load() }

// Set latches a request. It returns false if one was already pending.
func (r *ButtonRequest) Set() bool { return r.pending.CompareAndSwap(false, true) }

// Clear drops a pending request. It returns false if none was pending.
func (r *ButtonRequest) Clear() bool { return r.pending.CompareAndSwap(true, false) }

// LatchResult describes what one Sample call did.
type LatchResult int

const (
	LatchSkipped LatchResult = iota // request already pending, input not read
	LatchIdle                       // both samples released
	LatchBounce                     // samples disagreed
	LatchPressed                    // both samples pressed, request set
)

func (r LatchResult) String() string {
	switch r {
	case LatchSkipped:
		return "Skipped"
	case LatchIdle:
		return "Idle"
	case LatchBounce:
		return "Bounce"
	case LatchPressed:
		return "Pressed"
	default:
		return "Unknown"
	}
}

// ButtonLatch debounces an active-low button into a ButtonRequest.
type ButtonLatch struct {
	in   Input
	req  *ButtonRequest
	wait func(time.Duration) // blocks for the debounce interval
}

// NewButtonLatch creates a latch reading in. A nil wait uses time.Sleep.
func NewButtonLatch(in Input, req *ButtonRequest, wait func(time.Duration)) *ButtonLatch {
	if wait == nil {
		wait = time.Sleep
	}
	return &ButtonLatch{in: in, req: req, wait: wait}
}

// Sample runs one debounce check. Pressed means pulled low; both samples
// taken DebounceInterval apart must read low for the request to be set.
func (l *ButtonLatch) Sample() LatchResult {
	if l.req.Pending() {
		return LatchSkipped
	}

	first := !l.in.Get()
	l.wait(DebounceInterval)
	second := !l.in.Get()

	switch {
	case first && second:
		l.req.Set()
		return LatchPressed
	case first != second:
		return LatchBounce
	default:
		return LatchIdle
	}
}
