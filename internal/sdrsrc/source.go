package sdrsrc

import (
	"errors"
	"fmt"

	"wfmrx/internal/dsp"
)

// ErrAlreadyStreaming is returned by StartIQ when a Streamer is already
// active for this front-end.
var ErrAlreadyStreaming = errors.New("sdrsrc: already streaming")

// Frontend configures an IIO-style SDR ADC+PHY pair and starts/stops IQ
// streaming on it.
type Frontend struct {
	adc       Device
	phy       Device
	streaming bool
}

// Open finds the ADC and PHY devices by name on ctx.
func Open(ctx Context, adcName, phyName string) (*Frontend, error) {
	adc, err := ctx.FindDevice(adcName)
	if err != nil {
		return nil, fmt.Errorf("sdrsrc: find adc device %q: %w", adcName, err)
	}
	phy, err := ctx.FindDevice(phyName)
	if err != nil {
		return nil, fmt.Errorf("sdrsrc: find phy device %q: %w", phyName, err)
	}
	return &Frontend{adc: adc, phy: phy}, nil
}

// SetCenterFrequency tunes the front-end's local oscillator, in Hz.
func (f *Frontend) SetCenterFrequency(hz float64) error {
	ch, err := f.phy.FindChannel("altvoltage0", Output)
	if err != nil {
		return fmt.Errorf("sdrsrc: find LO channel: %w", err)
	}
	return ch.WriteAttrInt("frequency", int64(hz))
}

// SetRFBandwidth sets the analog front-end filter bandwidth, in Hz.
func (f *Frontend) SetRFBandwidth(hz float64) error {
	ch, err := f.phy.FindChannel("voltage0", Output)
	if err != nil {
		return fmt.Errorf("sdrsrc: find rf bandwidth channel: %w", err)
	}
	return ch.WriteAttrInt("rf_bandwidth", int64(hz))
}

// SetSamplingFrequency sets the ADC sample rate, in Hz.
func (f *Frontend) SetSamplingFrequency(hz float64) error {
	ch, err := f.phy.FindChannel("voltage0", Output)
	if err != nil {
		return fmt.Errorf("sdrsrc: find sampling frequency channel: %w", err)
	}
	return ch.WriteAttrInt("sampling_frequency", int64(hz))
}

// Streamer pulls complex samples off an enabled I/Q channel pair. It owns
// the fixed-size hardware buffer for the lifetime of the stream.
type Streamer struct {
	chanI Channel
	chanQ Channel
	buf   Buffer
}

// StartIQ enables the I/Q channel pair and allocates the fixed hardware
// buffer. Fails if this front-end is already streaming; a front-end must
// be stopped before it can be started again.
func (f *Frontend) StartIQ() (*Streamer, error) {
	if f.streaming {
		return nil, ErrAlreadyStreaming
	}

	chanI, err := f.adc.FindChannel("voltage0", Input)
	if err != nil {
		return nil, fmt.Errorf("sdrsrc: find I channel: %w", err)
	}
	chanQ, err := f.adc.FindChannel("voltage1", Input)
	if err != nil {
		return nil, fmt.Errorf("sdrsrc: find Q channel: %w", err)
	}
	if err := chanI.Enable(); err != nil {
		return nil, fmt.Errorf("sdrsrc: enable I channel: %w", err)
	}
	if err := chanQ.Enable(); err != nil {
		return nil, fmt.Errorf("sdrsrc: enable Q channel: %w", err)
	}

	buf, err := f.adc.CreateBuffer(hardwareStreamSize, false)
	if err != nil {
		return nil, fmt.Errorf("sdrsrc: create buffer: %w", err)
	}

	f.streaming = true
	return &Streamer{chanI: chanI, chanQ: chanQ, buf: buf}, nil
}

// StopIQ disables the channel pair and marks the front-end ready to start
// again.
func (f *Frontend) StopIQ(s *Streamer) {
	_ = s.chanI.Disable()
	_ = s.chanQ.Disable()
	f.streaming = false
}

// CollectIQ refills the hardware buffer and fills out with exactly
// hardwareStreamSize complex samples scaled from the raw i16 ADC codes.
// out is grown or shrunk to hardwareStreamSize as needed. If the refill or
// either channel read fails, it returns out[:0] instead.
func (s *Streamer) CollectIQ(out []dsp.CS) []dsp.CS {
	if err := s.buf.Refill(); err != nil {
		return out[:0]
	}

	i, err := s.chanI.ReadInt16(s.buf)
	if err != nil {
		return out[:0]
	}
	q, err := s.chanQ.ReadInt16(s.buf)
	if err != nil {
		return out[:0]
	}

	n := hardwareStreamSize
	if cap(out) < n {
		out = make([]dsp.CS, n)
	} else {
		out = out[:n]
	}
	for idx := 0; idx < n; idx++ {
		var iv, qv int16
		if idx < len(i) {
			iv = i[idx]
		}
		if idx < len(q) {
			qv = q[idx]
		}
		out[idx] = dsp.CS(complex(float32(iv)/sampleScale, float32(qv)/sampleScale))
	}
	return out
}
