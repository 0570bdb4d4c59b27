package dsp

import "math"

// RealPLL is a real-signal phase-locked loop. Its phase detector is a
// simple multiply (input*out), which has a 180-degree ambiguity: it cannot
// distinguish a tone from its phase-inverted twin. For recovering the FM
// stereo pilot, that ambiguity is harmless because the 19kHz pilot is
// squared downstream to produce the 38kHz subcarrier reference, and
// squaring erases the sign.
type RealPLL struct {
	phase     float32
	increment float32
	loopGain  float32
	loopFilt  *Biquad[RS]
}

// NewRealPLL builds a PLL locking to freq Hz on a stream sampled at
// sampleRate Hz, with the given loop gain and loop filter.
func NewRealPLL(freq, sampleRate, loopGain float32, loopFilt *Biquad[RS]) *RealPLL {
	return &RealPLL{increment: freq / sampleRate, loopGain: loopGain, loopFilt: loopFilt}
}

// Process advances the PLL by one input sample and returns the locally
// generated reference cosine at the current phase estimate.
func (p *RealPLL) Process(input float32) float32 {
	out := float32(math.Cos(2 * math.Pi * float64(p.phase)))
	errTerm := float32(p.loopFilt.Process(RS(input*out))) * p.loopGain
	p.phase += p.increment + errTerm
	for p.phase >= 1 {
		p.phase -= 1
	}
	for p.phase < 0 {
		p.phase += 1
	}
	return out
}
