package dsp

// StereoFrame is one (left, right) audio sample pair.
type StereoFrame struct {
	L, R RS
}

// WidebandFMAudio turns a 240kHz real FM-discriminator output into 48kHz
// stereo audio frames: it downmixes the composite signal to recover L-R,
// reconstructs L = mono+diff and R = mono-diff, deemphasizes and
// audio-filters each channel independently, and decimates 5:1 to the
// 48kHz output rate.
//
// The decimation keeps only the first of every five composite samples it
// processes; the other four are still run through the full per-sample
// state (PLL, downmix, deemphasis, filters) so those stages see a
// continuous 240kHz signal, but only every fifth result is emitted. This
// means the emitted sample is always the oldest of its group rather than
// the most recent, adding four composite-sample periods (one fifth short
// of one output-sample period) of extra group delay versus emitting the
// last of the five. That choice is kept as-is.
type WidebandFMAudio struct {
	input      Source[RS]
	downmix    *StereoDownmixer
	lDeemph    *Deemphasis[RS]
	rDeemph    *Deemphasis[RS]
	lAudioFilt *Biquad[RS]
	rAudioFilt *Biquad[RS]
}

// NewWidebandFMAudio builds a stage over input, a 240kHz real composite
// stream, emitting 48kHz stereo frames.
func NewWidebandFMAudio(fs float32, input Source[RS]) *WidebandFMAudio {
	if abs32(fs-240000) > 1 {
		panic("dsp: WidebandFMAudio requires a 240kHz input rate")
	}
	return &WidebandFMAudio{
		input:      input,
		downmix:    NewStereoDownmixer(fs),
		lDeemph:    NewDeemphasis[RS](fs, 75e-6),
		rDeemph:    NewDeemphasis[RS](fs, 75e-6),
		lAudioFilt: NewBiquad[RS](0.04125202, 0.08250404, 0.04125202, -1.34891824, 0.51392633),
		rAudioFilt: NewBiquad[RS](0.04125202, 0.08250404, 0.04125202, -1.34891824, 0.51392633),
	}
}

func (w *WidebandFMAudio) process(s RS) StereoFrame {
	mono := s
	diff := w.downmix.Process(s)

	l := w.lAudioFilt.Process(w.lDeemph.Process(mono + diff))
	r := w.rAudioFilt.Process(w.rDeemph.Process(mono - diff))
	return StereoFrame{L: l, R: r}
}

// Next implements Source[StereoFrame].
func (w *WidebandFMAudio) Next() (StereoFrame, bool) {
	init, ok := w.input.Next()
	if !ok {
		return StereoFrame{}, false
	}
	val := w.process(init)
	for i := 0; i < 4; i++ {
		next, ok := w.input.Next()
		if !ok {
			break
		}
		w.process(next)
	}
	return val, true
}
