// internal/traffic/pedestrian.go

package traffic

// blinkSchedule is the pedestrian output during YELLOW while a request is
// pending, keyed by slot start tick.
var blinkSchedule = NewSchedule(map[uint32]any{
	YellowStart:               false,
	YellowStart + BlinkSlot:   true,
	YellowStart + 2*BlinkSlot: false,
	YellowStart + 3*BlinkSlot: true,
})

// finalSlotStart is where the last blink slot begins. Reaching it with a
// pending request arms the end-of-cycle clear.
const finalSlotStart = YellowStart + 3*BlinkSlot

// PedestrianController derives the pedestrian output from the phase and the
// crossing request, and clears the request once its blink sequence is done.
type PedestrianController struct {
	req *ButtonRequest

	// finishing is set while the final ON slot is being shown for a pending
	// request. The request is cleared on the first evaluation after the cycle
	// wraps out of YELLOW.
	finishing bool
}

// NewPedestrianController creates a controller bound to req.
func NewPedestrianController(req *ButtonRequest) *PedestrianController {
	return &PedestrianController{req: req}
}

// Output returns the pedestrian output for tick t. It has no side effects.
func (p *PedestrianController) Output(t uint32) bool {
	if !p.req.Pending() {
		return false
	}
	switch PhaseAt(t) {
	case PhaseRed:
		return false
	case PhaseGreen:
		return true
	default:
		return blinkSchedule.At(t).(bool)
	}
}

// Evaluate returns the pedestrian output for tick t and reports whether the
// request was cleared by this evaluation.
func (p *PedestrianController) Evaluate(t uint32) (on bool, cleared bool) {
	phase := PhaseAt(t)

	if p.finishing && phase != PhaseYellow {
		p.finishing = false
		cleared = p.req.Clear()
	}

	if phase == PhaseYellow && t >= finalSlotStart && p.req.Pending() {
		p.finishing = true
	}
	return p.Output(t), cleared
}
