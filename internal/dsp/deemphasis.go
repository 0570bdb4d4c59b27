package dsp

import "wfmrx/internal/sample"

// Deemphasis is a first-order IIR lowpass correcting transmitter
// preemphasis: y[n] = (x[n] + k*y[n-1]) / (1+k), k = fs*tau.
//
// Generic over the sample type so it can filter either a mono real channel
// or, once downmixed, a real stereo-difference channel.
type Deemphasis[T sample.Sample[T]] struct {
	y1 T
	k  float32
}

// NewDeemphasis builds a deemphasis filter for a stream sampled at fs Hz
// with time constant tau seconds (75e-6 for North American broadcast FM).
func NewDeemphasis[T sample.Sample[T]](fs, tau float32) *Deemphasis[T] {
	return &Deemphasis[T]{k: fs * tau}
}

// Process filters one sample.
func (d *Deemphasis[T]) Process(x T) T {
	y := x.Add(d.y1.MulReal(d.k)).MulReal(1.0 / (1.0 + d.k))
	d.y1 = y
	return y
}
