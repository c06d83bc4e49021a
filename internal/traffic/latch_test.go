package traffic

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// scriptedInput returns levels in order, then repeats the last one.
type scriptedInput struct {
	levels []bool
	reads  int
}

func (s *scriptedInput) Get() bool {
	i := s.reads
	if i >= len(s.levels) {
		i = len(s.levels) - 1
	}
	s.reads++
	return s.levels[i]
}

func TestButtonLatch_StablePressSetsRequest(t *testing.T) {
	var req ButtonRequest
	in := &scriptedInput{levels: []bool{false, false}}
	var waited time.Duration
	l := NewButtonLatch(in, &req, func(d time.Duration) { waited += d })

	assert.Equal(t, LatchPressed, l.Sample())
	assert.True(t, req.Pending())
	assert.Equal(t, DebounceInterval, waited)
	assert.Equal(t, 2, in.reads)
}

func TestButtonLatch_BounceRejected(t *testing.T) {
	for _, levels := range [][]bool{{false, true}, {true, false}} {
		var req ButtonRequest
		in := &scriptedInput{levels: levels}
		l := NewButtonLatch(in, &req, func(time.Duration) {})

		assert.Equal(t, LatchBounce, l.Sample(), "levels %v", levels)
		assert.False(t, req.Pending())
	}
}

func TestButtonLatch_ReleasedIsIdle(t *testing.T) {
	var req ButtonRequest
	l := NewButtonLatch(&scriptedInput{levels: []bool{true}}, &req, func(time.Duration) {})

	assert.Equal(t, LatchIdle, l.Sample())
	assert.False(t, req.Pending())
}

func TestButtonLatch_PendingSkipsSampling(t *testing.T) {
	var req ButtonRequest
	req.Set()
	in := &scriptedInput{levels: []bool{false}}
	waits := 0
	l := NewButtonLatch(in, &req, func(time.Duration) { waits++ })

	assert.Equal(t, LatchSkipped, l.Sample())
	assert.Equal(t, 0, in.reads, "input must not be read while a request is pending")
	assert.Equal(t, 0, waits)
	assert.True(t, req.Pending())
}

func TestButtonRequest_SetClear(t *testing.T) {
	var req ButtonRequest
	assert.False(t, req.Clear())
	assert.True(t, req.Set())
	assert.False(t, req.Set(), "no second request is queued")
	assert.True(t, req.Clear())
	assert.False(t, req.Pending())
}
