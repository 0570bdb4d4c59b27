package dsp

// FrequencyShift mixes an upstream complex stream against an internal
// oscillator, translating its center frequency by shiftHz. A positive
// shiftHz moves a signal above the oscillator's nominal frequency down to
// baseband; this is how the receiver tunes within the span of a single
// wideband SDR capture without retuning the hardware.
type FrequencyShift struct {
	upstream Source[CS]
	osc      *Oscillator
}

// NewFrequencyShift builds a shifter mixing upstream (sampled at
// sampleRate Hz) down by shiftHz.
func NewFrequencyShift(upstream Source[CS], shiftHz, sampleRate float32) *FrequencyShift {
	return &FrequencyShift{upstream: upstream, osc: NewOscillator(-shiftHz, sampleRate)}
}

// Next implements Source[CS].
func (f *FrequencyShift) Next() (CS, bool) {
	x, ok := f.upstream.Next()
	if !ok {
		return 0, false
	}
	lo := f.osc.Step()
	return CS(complex64(x) * complex64(lo)), true
}
