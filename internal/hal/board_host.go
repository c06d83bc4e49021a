//go:build !tinygo

package hal

// Open builds a host board from fake pins. Outputs start low and the button
// input starts high, as if pulled up. Buses carries an inert "i2c0".
func Open(m PinMap) (*Board, error) {
	if err := CheckDistinct(m.Red, m.Green, m.Yellow, m.Pedestrian, m.Button); err != nil {
		return nil, err
	}
	return &Board{
		Red:        NewFakePin(m.Red, false),
		Green:      NewFakePin(m.Green, false),
		Yellow:     NewFakePin(m.Yellow, false),
		Pedestrian: NewFakePin(m.Pedestrian, false),
		Button:     NewPulledUpInput(m.Button),
		Buses:      Buses{"i2c0": &HostI2C{}},
	}, nil
}
