// Package pipeline wires the SDR/capture producer, the DSP worker, and
// the audio sink across goroutines, and owns the shared stop flag and
// Ctrl-C handling that unwind them cleanly.
package pipeline

import (
	"fmt"
	"os"
	"os/signal"
	"sync"
	"sync/atomic"

	"github.com/charmbracelet/log"

	"wfmrx/internal/bufpool"
	"wfmrx/internal/config"
	"wfmrx/internal/dsp"
	"wfmrx/internal/playback"
)

// IQFiller fills buf with up to len(buf) complex samples and reports how
// many it actually wrote and whether the producer should keep running.
// The live SDR filler always returns keepGoing=true, with n=0 when a
// hardware refill fails; the producer loop ends it via the stop flag. The
// capture-file filler returns keepGoing=false once the file is exhausted.
type IQFiller func(buf []dsp.CS) (n int, keepGoing bool)

// audioChunkSamples bounds how many interleaved stereo samples the DSP
// worker batches into a single commit to the audio pool.
const audioChunkSamples = 4096

// channelFilterCoeffs are a Butterworth lowpass with its cutoff at fs/20
// (300kHz at the 6MHz capture rate), applied before downsampling to keep
// the re-centered FM channel; the same biquad run twice in cascade for a
// steeper rolloff, matching the channel-selection cascade used upstream of
// this pipeline's decimation stage.
var channelFilterCoeffs = [5]float32{0.02008282, 0.04016564, 0.02008282, -1.56097580, 0.64130708}

// Pipeline owns the two buffer pools and the goroutines that drive them.
type Pipeline struct {
	cfg *config.Config
	log *log.Logger

	stop atomic.Bool

	iqSend *bufpool.SendEnd[[]dsp.CS]
	iqRecv *bufpool.RecvEnd[[]dsp.CS]

	audioSend *bufpool.SendEnd[[]dsp.RS]
	audioRecv *bufpool.RecvEnd[[]dsp.RS]
}

// New builds a pipeline with two pools of cfg.PoolDepth buffers each.
func New(cfg *config.Config, logger *log.Logger) *Pipeline {
	iqSend, iqRecv := bufpool.New[[]dsp.CS](cfg.PoolDepth)
	audioSend, audioRecv := bufpool.New[[]dsp.RS](cfg.PoolDepth)
	return &Pipeline{
		cfg:       cfg,
		log:       logger,
		iqSend:    iqSend,
		iqRecv:    iqRecv,
		audioSend: audioSend,
		audioRecv: audioRecv,
	}
}

// shiftOffset re-centers the tuned station within the captured band so
// the channel filter below can assume it's looking at DC. The station sits
// at stationHz-centerHz in the complex baseband, and FrequencyShift moves
// the spectrum down by the offset returned here.
func (p *Pipeline) shiftOffset(stationHz, centerHz float64) float32 {
	return float32(stationHz - centerHz)
}

// Run starts the producer and DSP worker goroutines, installs Ctrl-C
// handling, then plays audio on the calling goroutine until the stream
// drains. centerHz is the SDR's tuned center frequency; stationHz is the
// station the caller validated against it.
func (p *Pipeline) Run(fill IQFiller, stationHz, centerHz float64) error {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt)
	defer signal.Stop(sigCh)
	go func() {
		<-sigCh
		p.log.Info("interrupt received, stopping")
		p.stop.Store(true)
	}()

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		p.runProducer(fill)
	}()
	go func() {
		defer wg.Done()
		p.runDSPWorker(p.shiftOffset(stationHz, centerHz))
	}()

	audioSrc := bufpool.NewPoolSource[dsp.RS](p.audioRecv)
	sink, err := playback.New(audioSrc, p.cfg.OutputSampleRate)
	if err != nil {
		return fmt.Errorf("pipeline: open playback sink: %w", err)
	}
	defer sink.Close()

	sink.Play()
	wg.Wait()
	return nil
}

// Stop requests a clean shutdown, as if Ctrl-C had been pressed.
func (p *Pipeline) Stop() {
	p.stop.Store(true)
}

func (p *Pipeline) runProducer(fill IQFiller) {
	defer func() { _ = p.iqSend.Close() }()

	bufLen := p.cfg.HardwareBufferSamples
	for {
		if p.stop.Load() {
			return
		}
		tok, ok := p.iqSend.Get()
		if !ok {
			return
		}
		buf := tok.Item()
		if cap(buf) < bufLen {
			buf = make([]dsp.CS, bufLen)
		}
		buf = buf[:bufLen]

		n, keepGoing := fill(buf)
		tok.SetItem(buf[:n])
		tok.Commit()

		if !keepGoing {
			return
		}
	}
}

func (p *Pipeline) runDSPWorker(shiftHz float32) {
	defer func() { _ = p.audioSend.Close() }()

	iq := bufpool.NewPoolSource[dsp.CS](p.iqRecv)
	shifted := dsp.NewFrequencyShift(iq, shiftHz, float32(p.cfg.IQSampleRate))

	filt1 := dsp.NewBiquad[dsp.CS](channelFilterCoeffs[0], channelFilterCoeffs[1], channelFilterCoeffs[2], channelFilterCoeffs[3], channelFilterCoeffs[4])
	filt2 := dsp.NewBiquad[dsp.CS](channelFilterCoeffs[0], channelFilterCoeffs[1], channelFilterCoeffs[2], channelFilterCoeffs[3], channelFilterCoeffs[4])
	filtered := dsp.NewBiquadSource[dsp.CS](dsp.NewBiquadSource[dsp.CS](shifted, filt1), filt2)

	decimation := int(float64(p.cfg.IQSampleRate) / float64(p.cfg.IntermediateRate))
	channel := dsp.NewDownsample[dsp.CS](filtered, decimation)

	post := dsp.NewBiquad[dsp.RS](channelFilterCoeffs[0], channelFilterCoeffs[1], channelFilterCoeffs[2], channelFilterCoeffs[3], channelFilterCoeffs[4])
	discrim := dsp.NewDiscriminatorSource(channel, dsp.NewDiscriminator(post))

	wfm := dsp.NewWidebandFMAudio(float32(p.cfg.IntermediateRate), discrim)
	interleaved := dsp.NewInterleaver[dsp.RS](dsp.NewStereoFrameSource(wfm))

	for {
		if p.stop.Load() {
			return
		}
		tok, ok := p.audioSend.Get()
		if !ok {
			return
		}
		buf := tok.Item()
		if cap(buf) < audioChunkSamples {
			buf = make([]dsp.RS, audioChunkSamples)
		}
		buf = buf[:audioChunkSamples]

		n := 0
		for n < audioChunkSamples {
			v, ok := interleaved.Next()
			if !ok {
				break
			}
			buf[n] = v
			n++
		}
		tok.SetItem(buf[:n])
		tok.Commit()

		if n < audioChunkSamples {
			return
		}
	}
}
