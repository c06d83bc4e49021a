package hal

import (
	"fmt"
	"sync"

	"tinygo.org/x/drivers"
)

// Expander drives up to eight outputs through a PCF8574-style quasi-
// bidirectional I2C port expander. Writes are one byte, one bit per line.
// Bit changes are buffered until Flush.
type Expander struct {
	mu     sync.Mutex
	bus    drivers.I2C
	addr   uint16
	shadow byte
	dirty  bool
	faults int
}

// NewExpander binds an expander at addr on bus.
func NewExpander(bus drivers.I2C, addr uint16) (*Expander, error) {
	if bus == nil {
		return nil, ErrUnknownBus
	}
	if addr == 0 || addr > 0x7f {
		return nil, fmt.Errorf("%w: 0x%02x", ErrBadAddress, addr)
	}
	return &Expander{bus: bus, addr: addr, dirty: true}, nil
}

// Pin returns the output line for bit n.
func (e *Expander) Pin(n int) (*ExpanderPin, error) {
	if n < 0 || n > 7 {
		return nil, fmt.Errorf("%w: %d", ErrBadBit, n)
	}
	return &ExpanderPin{e: e, mask: 1 << uint(n)}, nil
}

// Flush writes the shadow byte if any bit changed since the last write.
func (e *Expander) Flush() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.dirty {
		return nil
	}
	if err := e.bus.Tx(e.addr, []byte{e.shadow}, nil); err != nil {
		e.faults++
		return fmt.Errorf("expander 0x%02x: write: %w", e.addr, err)
	}
	e.dirty = false
	return nil
}

// State returns the buffered output byte.
func (e *Expander) State() byte {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.shadow
}

// Faults returns how many writes have failed.
func (e *Expander) Faults() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.faults
}

func (e *Expander) set(mask byte, on bool) {
	e.mu.Lock()
	next := e.shadow &^ mask
	if on {
		next |= mask
	}
	if next != e.shadow {
		e.shadow = next
		e.dirty = true
	}
	e.mu.Unlock()
}

// ExpanderPin is one output bit of an Expander.
type ExpanderPin struct {
	e    *Expander
	mask byte
}

func (p *ExpanderPin) Set(on bool) { p.e.set(p.mask, on) }

// Buses resolves I2C buses by name.
type Buses map[string]drivers.I2C

func (b Buses) ByID(id string) (drivers.I2C, error) {
	bus, ok := b[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownBus, id)
	}
	return bus, nil
}

// HostI2C implements drivers.I2C for host runs and tests. It records
// every write and can be told to fail.
type HostI2C struct {
	mu     sync.Mutex
	Writes [][]byte
	Addr   uint16
	Fail   error
}

func (h *HostI2C) Tx(addr uint16, w, r []byte) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.Fail != nil {
		return h.Fail
	}
	h.Addr = addr
	h.Writes = append(h.Writes, append([]byte(nil), w...))
	return nil
}

// Last returns the most recent write, or nil.
func (h *HostI2C) Last() []byte {
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.Writes) == 0 {
		return nil
	}
	return h.Writes[len(h.Writes)-1]
}
