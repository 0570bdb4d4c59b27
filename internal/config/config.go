// Package config holds the receiver's fixed operating parameters. Every
// value here is hardcoded rather than user-tunable: spec.md's Non-goals
// exclude variable input sample rate and arbitrary filter design, so the
// only knob exposed to the CLI is the station frequency itself.
package config

import (
	"fmt"
	"math"

	"hz.tools/rf"
)

// Config holds every constant the streaming chain is built around.
type Config struct {
	// IQSampleRate is the SDR front-end's fixed ADC rate.
	IQSampleRate rf.Hz
	// IntermediateRate is the composite FM baseband rate after channel
	// selection, feeding the wideband FM audio stage.
	IntermediateRate rf.Hz
	// OutputSampleRate is the final stereo audio rate.
	OutputSampleRate int

	// CenterFrequency is the front-end's fixed local-oscillator tuning.
	// Stations within RFBandwidth/2 minus StationGuardBand of it (95.2 to
	// 100.8MHz with the defaults) pass ValidateStation.
	CenterFrequency rf.Hz
	// RFBandwidth is the front-end's analog filter bandwidth.
	RFBandwidth rf.Hz
	// StationGuardBand is subtracted from half the RF bandwidth when
	// validating a requested station frequency against the tuned center.
	StationGuardBand rf.Hz

	// HardwareBufferSamples is the SDR's fixed DMA buffer size; the
	// hardware drops samples and corrupts phases below this, so it is not
	// a tunable.
	HardwareBufferSamples int
	// PoolDepth is the number of buffers each bufpool.Pool holds.
	PoolDepth int

	// DeemphasisTau is the post-detection deemphasis time constant.
	DeemphasisTau float32

	// SDRURI is the network target for the SDR front-end's IIO context.
	SDRURI string
	// ADCDeviceName and PHYDeviceName name the two IIO devices that make
	// up the front-end.
	ADCDeviceName string
	PHYDeviceName string

	// DefaultStationMHz is the CLI's default station frequency.
	DefaultStationMHz float64
}

// New returns the receiver's fixed configuration.
func New() *Config {
	return &Config{
		IQSampleRate:          6 * rf.MHz,
		IntermediateRate:      240 * rf.KHz,
		OutputSampleRate:      48_000,
		CenterFrequency:       98 * rf.MHz,
		RFBandwidth:           6 * rf.MHz,
		StationGuardBand:      200 * rf.KHz,
		HardwareBufferSamples: 1 << 20, // 1,048,576
		PoolDepth:             8,
		DeemphasisTau:         75e-6, // North American broadcast FM
		SDRURI:                "ip:192.168.2.1",
		ADCDeviceName:         "cf-ad9361-lpc",
		PHYDeviceName:         "ad9361-phy",
		DefaultStationMHz:     96.1,
	}
}

// ValidateStation checks that stationHz is reachable from a front-end
// tuned to centerHz: the distance between them must not exceed half the
// RF bandwidth minus the guard band, or the channel-select filter cascade
// will be working outside the front-end's clean passband.
func (c *Config) ValidateStation(stationHz, centerHz float64) error {
	limit := float64(c.RFBandwidth)/2 - float64(c.StationGuardBand)
	if math.Abs(stationHz-centerHz) > limit {
		return fmt.Errorf("config: station %.3f MHz is out of range of center %.3f MHz (+/- %.3f MHz)",
			stationHz/1e6, centerHz/1e6, limit/1e6)
	}
	return nil
}
