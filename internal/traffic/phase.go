// internal/traffic/phase.go

package traffic

import (
	"github.com/emirpasic/gods/trees/redblacktree"
	"github.com/emirpasic/gods/utils"
)

// Phase is the traffic light phase derived from the cycle tick.
type Phase int

const (
	PhaseRed Phase = iota
	PhaseGreen
	PhaseYellow
)

func (p Phase) String() string {
	switch p {
	case PhaseRed:
		return "RED"
	case PhaseGreen:
		return "GREEN"
	case PhaseYellow:
		return "YELLOW"
	default:
		return "UNKNOWN"
	}
}

// Phase boundaries in ticks (ms) from the start of the cycle.
const (
	GreenStart  uint32 = 4000
	YellowStart uint32 = 6000

	BlinkSlot uint32 = 500
)

// Lights is the red/yellow/green output set for one phase.
type Lights struct {
	Red    bool
	Yellow bool
	Green  bool
}

// Schedule maps a tick to the segment that starts at or before it.
// Segments are keyed by their start tick in a red-black tree.
type Schedule struct {
	rbt *redblacktree.Tree
}

// NewSchedule builds a schedule from start tick -> value pairs.
// A schedule must contain a segment starting at 0.
func NewSchedule(segments map[uint32]any) *Schedule {
	rbt := redblacktree.NewWith(utils.UInt32Comparator)
	for start, v := range segments {
		rbt.Put(start, v)
	}
	return &Schedule{rbt: rbt}
}

// At returns the value of the segment covering tick t.
func (s *Schedule) At(t uint32) any {
	node, ok := s.rbt.Floor(t)
	if !ok {
		return nil
	}
	return node.Value
}

// Starts returns the segment start ticks in ascending order.
func (s *Schedule) Starts() []uint32 {
	keys := s.rbt.Keys()
	out := make([]uint32, 0, len(keys))
	for _, k := range keys {
		out = append(out, k.(uint32))
	}
	return out
}

var phaseSchedule = NewSchedule(map[uint32]any{
	0:           PhaseRed,
	GreenStart:  PhaseGreen,
	YellowStart: PhaseYellow,
})

// PhaseAt returns the phase for tick t. Ticks at or past CycleLength are
// treated as YELLOW, the tail of the cycle.
func PhaseAt(t uint32) Phase {
	return phaseSchedule.At(t).(Phase)
}

// LightsFor returns the output set for p. Exactly one light is on.
func LightsFor(p Phase) Lights {
	switch p {
	case PhaseRed:
		return Lights{Red: true}
	case PhaseGreen:
		return Lights{Green: true}
	default:
		return Lights{Yellow: true}
	}
}

// OnCount reports how many of the three lights are on.
func (l Lights) OnCount() int {
	n := 0
	for _, on := range []bool{l.Red, l.Yellow, l.Green} {
		if on {
			n++
		}
	}
	return n
}
