package dsp

import "math"

// Oscillator produces, on each step, a unit-magnitude complex exponential
// exp(j*2*pi*phase), with phase advancing by freq/sampleRate modulo 1 per
// step. Phase is accumulated in normalized [0,1) units and converted to
// radians only at cos/sin time, so it never drifts from repeated radian
// accumulation no matter how long the oscillator runs.
type Oscillator struct {
	phase     float32
	increment float32
}

// NewOscillator builds an oscillator at freq Hz for a stream sampled at
// sampleRate Hz.
func NewOscillator(freq, sampleRate float32) *Oscillator {
	return &Oscillator{increment: freq / sampleRate}
}

// Step advances the oscillator by one sample and returns the current
// complex exponential.
func (o *Oscillator) Step() CS {
	angle := float64(o.phase) * 2 * math.Pi
	o.phase += o.increment
	for o.phase >= 1 {
		o.phase -= 1
	}
	for o.phase < 0 {
		o.phase += 1
	}
	s, c := math.Sincos(angle)
	return CS(complex(float32(c), float32(s)))
}

// Next implements Source[CS], letting an Oscillator stand on its own as an
// infinite upstream source (e.g. for frequency shifting).
func (o *Oscillator) Next() (CS, bool) {
	return o.Step(), true
}
