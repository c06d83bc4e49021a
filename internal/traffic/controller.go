// internal/traffic/controller.go

package traffic

import (
	"context"
	"time"
)

// Output is a digital output line.
type Output interface {
	Set(on bool)
}

// Panel groups the four output lines driven by the controller.
type Panel struct {
	Red        Output
	Yellow     Output
	Green      Output
	Pedestrian Output
}

// Options wires the controller to its collaborators.
type Options struct {
	Panel  Panel
	Button Input

	// Wait blocks for the debounce interval. Nil uses time.Sleep.
	Wait func(time.Duration)

	// Flush, if set, commits the four outputs after each iteration.
	// Outputs behind a shared bus (an I/O expander) batch their writes here.
	Flush func() error

	// EventBuffer sizes the event channel. Events are dropped when it is full.
	EventBuffer int
}

// Snapshot is the result of one main-loop iteration.
type Snapshot struct {
	Tick       uint32 // tick the lights were derived from
	PedTick    uint32 // tick the pedestrian output was derived from
	Phase      Phase
	Lights     Lights
	Pedestrian bool
	Latch      LatchResult
	Cleared    bool
	Err        error
}

// Controller owns the cycle clock, the crossing request and the output panel.
type Controller struct {
	clock  *CycleClock
	req    ButtonRequest
	latch  *ButtonLatch
	ped    *PedestrianController
	panel  Panel
	flush  func() error
	events chan Event
}

// NewController creates a controller around clock. The clock is advanced by
// the caller's tick source (CycleClock.Start on the host).
func NewController(clock *CycleClock, opts Options) *Controller {
	if opts.EventBuffer <= 0 {
		opts.EventBuffer = 64
	}
	c := &Controller{
		clock:  clock,
		panel:  opts.Panel,
		flush:  opts.Flush,
		events: make(chan Event, opts.EventBuffer),
	}
	c.latch = NewButtonLatch(opts.Button, &c.req, opts.Wait)
	c.ped = NewPedestrianController(&c.req)
	return c
}

// Tick advances the cycle clock by one millisecond.
func (c *Controller) Tick() { c.clock.Advance() }

// Count returns the current cycle tick.
func (c *Controller) Count() uint32 { return c.clock.Count() }

// ReadPhase returns the phase for the current tick.
func (c *Controller) ReadPhase() Phase { return PhaseAt(c.clock.Count()) }

// RequestCrossing latches a crossing request without going through the
// button debounce. It returns false if a request was already pending.
func (c *Controller) RequestCrossing() bool { return c.req.Set() }

// RequestPending reports whether a crossing request is latched.
func (c *Controller) RequestPending() bool { return c.req.Pending() }

// PedestrianOutput returns the pedestrian output for the current tick
// without clearing the request.
func (c *Controller) PedestrianOutput() bool {
	return c.ped.Output(c.clock.Count())
}

// Events exposes the read-only event stream. It is closed when Run returns.
func (c *Controller) Events() <-chan Event { return c.events }

// Reset drives every output off. Called once before the loop starts.
func (c *Controller) Reset() error {
	c.panel.Red.Set(false)
	c.panel.Yellow.Set(false)
	c.panel.Green.Set(false)
	c.panel.Pedestrian.Set(false)
	if c.flush != nil {
		return c.flush()
	}
	return nil
}

// Step runs one main-loop iteration: traffic lights, button latch, then
// the pedestrian output. The latch may block for DebounceInterval, so the
// pedestrian output is derived from a fresh read of the clock.
func (c *Controller) Step() Snapshot {
	t := c.clock.Count()
	phase := PhaseAt(t)
	lights := LightsFor(phase)
	c.panel.Red.Set(lights.Red)
	c.panel.Yellow.Set(lights.Yellow)
	c.panel.Green.Set(lights.Green)

	latch := c.latch.Sample()

	pt := c.clock.Count()
	on, cleared := c.ped.Evaluate(pt)
	c.panel.Pedestrian.Set(on)

	var err error
	if c.flush != nil {
		err = c.flush()
	}

	return Snapshot{
		Tick:       t,
		PedTick:    pt,
		Phase:      phase,
		Lights:     lights,
		Pedestrian: on,
		Latch:      latch,
		Cleared:    cleared,
		Err:        err,
	}
}

// Run drives the main loop once per clock tick until ctx is cancelled.
func (c *Controller) Run(ctx context.Context) error {
	defer close(c.events)

	if err := c.Reset(); err != nil {
		c.emit(Event{Kind: EventOutputFault, Err: err})
	}
	c.emit(Event{Kind: EventStart, Tick: c.clock.Count()})

	var prev *Snapshot
	for {
		select {
		case <-ctx.Done():
			c.emit(Event{Kind: EventStop, Tick: c.clock.Count()})
			return nil
		case <-c.clock.Ch:
		}

		snap := c.Step()
		c.publish(prev, snap)
		prev = &snap
	}
}

// publish emits one event per change between two consecutive iterations.
func (c *Controller) publish(prev *Snapshot, snap Snapshot) {
	base := Event{Tick: snap.Tick, Phase: snap.Phase, Pedestrian: snap.Pedestrian}

	if prev == nil || prev.Phase != snap.Phase {
		ev := base
		ev.Kind = EventPhase
		c.emit(ev)
	}
	switch snap.Latch {
	case LatchPressed:
		ev := base
		ev.Kind = EventRequestLatched
		c.emit(ev)
	case LatchBounce:
		ev := base
		ev.Kind = EventBounce
		c.emit(ev)
	}
	if snap.Cleared {
		ev := base
		ev.Kind = EventRequestCleared
		ev.Tick = snap.PedTick
		c.emit(ev)
	}
	if prev == nil || prev.Pedestrian != snap.Pedestrian {
		ev := base
		ev.Kind = EventPedestrian
		ev.Tick = snap.PedTick
		c.emit(ev)
	}
	if snap.Err != nil {
		ev := base
		ev.Kind = EventOutputFault
		ev.Err = snap.Err
		c.emit(ev)
	}
}

// emit never blocks the control loop; events are dropped when the buffer is full.
func (c *Controller) emit(ev Event) {
	if ev.Time.IsZero() {
		ev.Time = time.Now()
	}
	select {
	case c.events <- ev:
	default:
	}
}
