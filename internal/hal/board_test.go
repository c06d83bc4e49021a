//go:build !tinygo

package hal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen_HostBoard(t *testing.T) {
	b, err := Open(PinMap{Red: 0, Green: 1, Yellow: 2, Pedestrian: 3, Button: 4})
	require.NoError(t, err)

	btn, ok := b.Button.(*FakePin)
	require.True(t, ok)
	assert.True(t, btn.Level(), "pulled-up button reads not pressed")
	assert.Equal(t, 4, btn.Number())

	red := b.Red.(*FakePin)
	assert.False(t, red.Level())

	_, err = b.Buses.ByID("i2c0")
	assert.NoError(t, err)
}

func TestOpen_RejectsDuplicatePins(t *testing.T) {
	_, err := Open(PinMap{Red: 0, Green: 0, Yellow: 2, Pedestrian: 3, Button: 4})
	assert.ErrorIs(t, err, ErrPinConflict)
}

func TestBoard_UseExpander(t *testing.T) {
	b, err := Open(PinMap{Red: 0, Green: 1, Yellow: 2, Pedestrian: 3, Button: 4})
	require.NoError(t, err)
	bus := &HostI2C{}
	exp, err := NewExpander(bus, 0x20)
	require.NoError(t, err)

	require.NoError(t, b.UseExpander(exp))
	b.Red.Set(true)
	b.Pedestrian.Set(true)
	require.NoError(t, exp.Flush())

	// red is bit 0, pedestrian bit 3
	assert.Equal(t, []byte{0x09}, bus.Last())
}

func TestFakePin_CountsReads(t *testing.T) {
	p := NewPulledUpInput(7)
	assert.True(t, p.Get())
	p.Set(false)
	assert.False(t, p.Get())
	assert.False(t, p.Level())
	assert.Equal(t, 2, p.Reads())
}
