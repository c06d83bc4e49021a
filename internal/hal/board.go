package hal

// Output is a digital output line.
type Output interface {
	Set(on bool)
}

// Input is a digital input line; Get returns the electrical level.
type Input interface {
	Get() bool
}

// PinMap assigns board pin numbers to the five lines.
type PinMap struct {
	Red, Green, Yellow, Pedestrian, Button int
}

// Board is the set of lines the controller drives and reads.
type Board struct {
	Red        Output
	Green      Output
	Yellow     Output
	Pedestrian Output
	Button     Input // active-low, pulled up
	Buses      Buses
}

// UseExpander moves the four outputs onto bits 0..3 (red, green, yellow,
// pedestrian) of exp.
func (b *Board) UseExpander(exp *Expander) error {
	outs := []*Output{&b.Red, &b.Green, &b.Yellow, &b.Pedestrian}
	for bit, out := range outs {
		pin, err := exp.Pin(bit)
		if err != nil {
			return err
		}
		*out = pin
	}
	return nil
}
