package dsp

// StereoDownmixer recovers the L-R stereo difference signal from a
// composite wideband-FM baseband stream. It locks a PLL to the 19kHz pilot
// tone, doubles it to the 38kHz stereo subcarrier by squaring and
// highpass-filtering (removing the DC term the squaring adds), then
// coherently demodulates the subcarrier by multiplying it against a
// highpass-filtered copy of the composite signal (the highpass removes the
// mono band below 23kHz, leaving the L-R sidebands around 38kHz, which the
// multiply brings down to baseband). Both filters are the same 23kHz
// Butterworth highpass.
//
// Filter coefficients are fixed at construction for a 240kHz input rate;
// NewStereoDownmixer panics if given any other rate, matching the
// hardcoded-coefficient contract of the surrounding pipeline stage.
type StereoDownmixer struct {
	pll     *RealPLL
	lpFilt1 *Biquad[RS]
	lpFilt2 *Biquad[RS]
}

// NewStereoDownmixer builds a downmixer for a composite stream sampled at
// fs Hz (must be 240000).
func NewStereoDownmixer(fs float32) *StereoDownmixer {
	if abs32(fs-240000) > 1 {
		panic("dsp: StereoDownmixer requires a 240kHz input rate")
	}

	pllLoopFilt := NewBiquad[RS](1.68223247e-4, 3.36446494e-4, 1.68223247e-4, -1.96297470, 0.96364759)
	pll := NewRealPLL(19e3, fs, 1.0, pllLoopFilt)

	lpFilt1 := NewBiquad[RS](0.65120842, -1.30241684, 0.65120842, -1.17684383, 0.42798985)
	lpFilt2 := NewBiquad[RS](0.65120842, -1.30241684, 0.65120842, -1.17684383, 0.42798985)

	return &StereoDownmixer{pll: pll, lpFilt1: lpFilt1, lpFilt2: lpFilt2}
}

// Process demodulates one composite sample into one stereo-difference
// sample.
func (d *StereoDownmixer) Process(s RS) RS {
	tone := RS(d.pll.Process(float32(s)))
	mix := d.lpFilt1.Process(tone * tone)
	return d.lpFilt2.Process(s) * mix
}

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
