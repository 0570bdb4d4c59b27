package dsp

import "wfmrx/internal/sample"

// Biquad is a direct-form-I second-order IIR filter, generic over the
// sample type. Coefficients are supplied pre-normalized (a0 == 1) and
// fixed at construction; the four delay-line registers are the mutable
// state. Numerical blow-up on unstable coefficients is not detected —
// that is the caller's responsibility.
type Biquad[T sample.Sample[T]] struct {
	b0, b1, b2 float32
	a1, a2     float32
	x1, x2     T
	y1, y2     T
}

// NewBiquad builds a biquad from its five normalized coefficients.
func NewBiquad[T sample.Sample[T]](b0, b1, b2, a1, a2 float32) *Biquad[T] {
	return &Biquad[T]{b0: b0, b1: b1, b2: b2, a1: a1, a2: a2}
}

// Process consumes one input sample and returns one output sample,
// rotating the delay-line registers.
func (b *Biquad[T]) Process(x T) T {
	y := x.MulReal(b.b0).
		Add(b.x1.MulReal(b.b1)).
		Add(b.x2.MulReal(b.b2)).
		Sub(b.y1.MulReal(b.a1)).
		Sub(b.y2.MulReal(b.a2))
	b.x2 = b.x1
	b.x1 = x
	b.y2 = b.y1
	b.y1 = y
	return y
}

// BiquadSource wraps an upstream Source with a Biquad, composing the
// pull-based stage contract.
type BiquadSource[T sample.Sample[T]] struct {
	upstream Source[T]
	filter   *Biquad[T]
}

// NewBiquadSource chains a Biquad after upstream.
func NewBiquadSource[T sample.Sample[T]](upstream Source[T], filter *Biquad[T]) *BiquadSource[T] {
	return &BiquadSource[T]{upstream: upstream, filter: filter}
}

// Next implements Source[T].
func (s *BiquadSource[T]) Next() (T, bool) {
	x, ok := s.upstream.Next()
	if !ok {
		var zero T
		return zero, false
	}
	return s.filter.Process(x), true
}
