// Package playback drives an oto/v3 audio context from a pull-based
// interleaved float sample stream, signaling completion once the stream
// is exhausted.
package playback

import (
	"encoding/binary"
	"math"
	"sync"

	"github.com/ebitengine/oto/v3"

	"wfmrx/internal/dsp"
)

// Sink opens the default output device at construction, negotiating
// float32 samples, 2 channels, and the given sample rate.
type Sink struct {
	ctx    *oto.Context
	player *oto.Player
	reader *sourceReader
}

// New opens a playback sink for an interleaved stereo stream of src at
// sampleRate Hz. src must already be interleaved L,R,L,R,...
func New(src dsp.Source[dsp.RS], sampleRate int) (*Sink, error) {
	ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: 2,
		Format:       oto.FormatFloat32LE,
	})
	if err != nil {
		return nil, err
	}
	<-ready

	r := newSourceReader(src)
	player := ctx.NewPlayer(r)

	return &Sink{ctx: ctx, player: player, reader: r}, nil
}

// Play starts the audio stream and blocks until the source is exhausted.
// It does not wait for audio the player has already buffered to finish
// playing.
func (s *Sink) Play() {
	s.player.Play()
	s.reader.wait()
}

// Close releases the player.
func (s *Sink) Close() error {
	return s.player.Close()
}

// sourceReader adapts a dsp.Source[dsp.RS] to io.Reader, the shape
// oto/v3's Player pulls bytes from. Once the source is exhausted it keeps
// emitting silence (oto never sees EOF) and signals done exactly once so
// the caller of Play can return.
type sourceReader struct {
	src dsp.Source[dsp.RS]

	mu        sync.Mutex
	cond      *sync.Cond
	done      bool
	exhausted bool
}

func newSourceReader(src dsp.Source[dsp.RS]) *sourceReader {
	r := &sourceReader{src: src}
	r.cond = sync.NewCond(&r.mu)
	return r
}

// Read implements io.Reader, filling p with little-endian float32 samples.
func (r *sourceReader) Read(p []byte) (int, error) {
	n := 0
	for n+4 <= len(p) {
		var f float32
		if !r.exhausted {
			v, ok := r.src.Next()
			if !ok {
				r.exhausted = true
				r.signalDone()
			} else {
				f = float32(v)
			}
		}
		binary.LittleEndian.PutUint32(p[n:n+4], math.Float32bits(f))
		n += 4
	}
	return n, nil
}

func (r *sourceReader) signalDone() {
	r.mu.Lock()
	r.done = true
	r.cond.Broadcast()
	r.mu.Unlock()
}

func (r *sourceReader) wait() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for !r.done {
		r.cond.Wait()
	}
}
