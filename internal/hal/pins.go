// Package hal holds the digital I/O collaborators of the controller:
// host-side fake pins, an I2C port-expander output bank and, under tinygo,
// board pins.
package hal

import (
	"errors"
	"sync"
)

var (
	ErrUnknownBus  = errors.New("hal: unknown bus")
	ErrBadAddress  = errors.New("hal: invalid i2c address")
	ErrBadBit      = errors.New("hal: expander bit out of range")
	ErrPinConflict = errors.New("hal: pin assigned twice")
)

// FakePin is an in-memory pin for host runs and tests. It is safe for
// concurrent use; a scripted press goroutine may drive it while the
// control loop reads it.
type FakePin struct {
	mu     sync.RWMutex
	number int
	level  bool
	sets   int
	gets   int
}

// NewFakePin creates a pin at the given initial level.
func NewFakePin(number int, level bool) *FakePin {
	return &FakePin{number: number, level: level}
}

// NewPulledUpInput creates an input pin with a pull-up: it reads high
// (not pressed) until driven low.
func NewPulledUpInput(number int) *FakePin { return NewFakePin(number, true) }

func (p *FakePin) Set(level bool) {
	p.mu.Lock()
	p.level = level
	p.sets++
	p.mu.Unlock()
}

func (p *FakePin) Get() bool {
	p.mu.Lock()
	v := p.level
	p.gets++
	p.mu.Unlock()
	return v
}

// Level returns the current level without counting it as a read.
func (p *FakePin) Level() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.level
}

// Reads returns how many times Get has been called.
func (p *FakePin) Reads() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.gets
}

func (p *FakePin) Number() int { return p.number }

// CheckDistinct returns ErrPinConflict if any pin number repeats.
func CheckDistinct(pins ...int) error {
	seen := make(map[int]struct{}, len(pins))
	for _, n := range pins {
		if _, dup := seen[n]; dup {
			return ErrPinConflict
		}
		seen[n] = struct{}{}
	}
	return nil
}
