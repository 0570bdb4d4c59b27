package dsp

import "math"

// Discriminator is a phase-difference FM demodulator with a post-filter.
// On each complex input it computes phi[n] = arg(s[n]), wraps
// delta = phi[n]-phi[n-1] into (-pi, pi], and passes the wrapped delta
// through a biquad post-filter. The wrap handles the branch cut in arg,
// recovering the instantaneous-frequency proxy without an arctan
// approximation. Initial previous phase is 0.
type Discriminator struct {
	lastPhase float32
	post      *Biquad[RS]
}

// NewDiscriminator builds a discriminator with the given post-filter.
func NewDiscriminator(post *Biquad[RS]) *Discriminator {
	return &Discriminator{post: post}
}

// Process demodulates one complex sample into one real post-filtered
// instantaneous-frequency sample.
func (d *Discriminator) Process(s CS) RS {
	phase := float32(math.Atan2(float64(imag(complex64(s))), float64(real(complex64(s)))))
	delta := phase - d.lastPhase
	switch {
	case delta > math.Pi:
		delta -= 2 * math.Pi
	case delta < -math.Pi:
		delta += 2 * math.Pi
	}
	d.lastPhase = phase
	return d.post.Process(RS(delta))
}

// DiscriminatorSource wraps an upstream complex Source with a Discriminator.
type DiscriminatorSource struct {
	upstream Source[CS]
	demod    *Discriminator
}

// NewDiscriminatorSource chains a Discriminator after upstream.
func NewDiscriminatorSource(upstream Source[CS], demod *Discriminator) *DiscriminatorSource {
	return &DiscriminatorSource{upstream: upstream, demod: demod}
}

// Next implements Source[RS].
func (s *DiscriminatorSource) Next() (RS, bool) {
	x, ok := s.upstream.Next()
	if !ok {
		return 0, false
	}
	return s.demod.Process(x), true
}
