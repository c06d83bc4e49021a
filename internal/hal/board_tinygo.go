//go:build tinygo

package hal

import (
	"machine"

	"tinygo.org/x/drivers"
)

// Open configures board pins: four push-pull outputs driven low and the
// button input with its internal pull-up enabled. i2c0 is configured on the
// board default pins for the expander output mode.
func Open(m PinMap) (*Board, error) {
	if err := CheckDistinct(m.Red, m.Green, m.Yellow, m.Pedestrian, m.Button); err != nil {
		return nil, err
	}

	out := func(n int) Output {
		p := machine.Pin(n)
		p.Configure(machine.PinConfig{Mode: machine.PinOutput})
		p.Low()
		return p
	}

	btn := machine.Pin(m.Button)
	btn.Configure(machine.PinConfig{Mode: machine.PinInputPullup})

	i2c := machine.I2C0
	if err := i2c.Configure(machine.I2CConfig{Frequency: 100 * machine.KHz}); err != nil {
		return nil, err
	}

	return &Board{
		Red:        out(m.Red),
		Green:      out(m.Green),
		Yellow:     out(m.Yellow),
		Pedestrian: out(m.Pedestrian),
		Button:     btn,
		Buses:      Buses{"i2c0": drivers.I2C(i2c)},
	}, nil
}
