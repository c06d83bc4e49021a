package traffic

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPhaseAt_Boundaries(t *testing.T) {
	cases := []struct {
		tick uint32
		want Phase
	}{
		{0, PhaseRed},
		{3999, PhaseRed},
		{4000, PhaseGreen},
		{5999, PhaseGreen},
		{6000, PhaseYellow},
		{7999, PhaseYellow},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, PhaseAt(tc.tick), "tick %d", tc.tick)
	}
}

func TestLights_ExactlyOneOnForEveryTick(t *testing.T) {
	for tick := uint32(0); tick < CycleLength; tick++ {
		p := PhaseAt(tick)
		l := LightsFor(p)
		if l.OnCount() != 1 {
			t.Fatalf("tick %d: %d lights on", tick, l.OnCount())
		}
		switch {
		case tick < GreenStart:
			assert.True(t, l.Red)
		case tick < YellowStart:
			assert.True(t, l.Green)
		default:
			assert.True(t, l.Yellow)
		}
	}
}

func TestPhase_String(t *testing.T) {
	assert.Equal(t, "RED", PhaseRed.String())
	assert.Equal(t, "GREEN", PhaseGreen.String())
	assert.Equal(t, "YELLOW", PhaseYellow.String())
	assert.Equal(t, "UNKNOWN", Phase(42).String())
}

func TestSchedule_FloorLookup(t *testing.T) {
	s := NewSchedule(map[uint32]any{0: "a", 10: "b", 20: "c"})

	assert.Equal(t, []uint32{0, 10, 20}, s.Starts())
	assert.Equal(t, "a", s.At(9))
	assert.Equal(t, "b", s.At(10))
	assert.Equal(t, "c", s.At(1000))

	empty := NewSchedule(map[uint32]any{5: "x"})
	assert.Nil(t, empty.At(4))
}
