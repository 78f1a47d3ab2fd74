package anim

// Transition animates Hidden to Visible. Delay postpones the start of the
// transition; it does not stretch Duration. Times are in seconds.
type Transition struct {
	Delay    float64
	Duration float64
	Ease     Ease
}

// End returns the time at which the transition reaches Visible.
func (t Transition) End() float64 { return t.Delay + t.Duration }

// Progress returns eased progress in [0, 1] at elapsed seconds after the trigger.
func (t Transition) Progress(elapsed float64) float64 {
	if elapsed < t.Delay {
		return 0
	}
	if t.Duration <= 0 || elapsed >= t.End() {
		return 1
	}
	return t.Ease.Apply((elapsed - t.Delay) / t.Duration)
}

// Sample returns the variant at elapsed seconds after the trigger.
func (t Transition) Sample(elapsed float64) Variant {
	return Lerp(Hidden, Visible, t.Progress(elapsed))
}
