// Command wfmrx is a software-defined FM broadcast receiver: it tunes a
// station, demodulates it, and plays the recovered stereo audio.
package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/spf13/pflag"

	"wfmrx/internal/config"
	"wfmrx/internal/dsp"
	"wfmrx/internal/pipeline"
	"wfmrx/internal/sdrsrc"
	"wfmrx/internal/sigmf"
)

func main() {
	capturePath := pflag.String("capture", "", "play back a ci32_le SigMF capture instead of the live SDR")
	help := pflag.BoolP("help", "h", false, "display help text")

	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: wfmrx [options] [station-MHz]\n\n")
		fmt.Fprintf(os.Stderr, "station-MHz defaults to 96.1 if not given.\n\n")
		pflag.PrintDefaults()
	}
	pflag.Parse()

	if *help {
		pflag.Usage()
		os.Exit(0)
	}

	logger := log.New(os.Stderr)

	stationMHz, err := parseStation(pflag.Args())
	if err != nil {
		logger.Fatal("invalid station frequency", "err", err)
	}

	cfg := config.New()
	centerHz := float64(cfg.CenterFrequency) // front-end's fixed LO tuning
	stationHz := stationMHz * 1e6

	if err := cfg.ValidateStation(stationHz, centerHz); err != nil {
		logger.Fatal("configuration failure", "err", err)
	}

	p := pipeline.New(cfg, logger)

	var fill pipeline.IQFiller
	if *capturePath != "" {
		fill, err = captureFiller(*capturePath, logger)
	} else {
		fill, err = liveFiller(cfg, centerHz, logger)
	}
	if err != nil {
		logger.Fatal("configuration failure", "err", err)
	}

	logger.Info("starting receiver", "station_mhz", stationMHz, "capture", *capturePath != "")
	if err := p.Run(fill, stationHz, centerHz); err != nil {
		logger.Fatal("pipeline error", "err", err)
	}
}

func parseStation(args []string) (float64, error) {
	if len(args) == 0 {
		return config.New().DefaultStationMHz, nil
	}
	return strconv.ParseFloat(args[0], 64)
}

// captureFiller replays a SigMF ci32_le file through the same IQFiller
// contract the live SDR uses, so the DSP chain downstream never knows the
// difference.
func captureFiller(path string, logger *log.Logger) (pipeline.IQFiller, error) {
	r, err := sigmf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open capture: %w", err)
	}
	return func(buf []dsp.CS) (int, bool) {
		n := 0
		for n < len(buf) {
			s, ok := r.Next()
			if !ok {
				logger.Debug("capture file exhausted")
				_ = r.Close()
				return n, false
			}
			buf[n] = s
			n++
		}
		return n, true
	}, nil
}

// liveFiller drives the SDR front-end at the hardcoded target URI. Wiring
// a real IIO context implementation to sdrsrc.Context is left to the
// deployment: this package only defines the front-end/streamer logic
// against that interface, matching the SDR driver's role as an external
// collaborator.
func liveFiller(cfg *config.Config, centerHz float64, logger *log.Logger) (pipeline.IQFiller, error) {
	ctx, err := dialIIOContext(cfg.SDRURI)
	if err != nil {
		return nil, fmt.Errorf("dial SDR at %s: %w", cfg.SDRURI, err)
	}

	fe, err := sdrsrc.Open(ctx, cfg.ADCDeviceName, cfg.PHYDeviceName)
	if err != nil {
		return nil, err
	}
	if err := fe.SetCenterFrequency(centerHz); err != nil {
		return nil, fmt.Errorf("set center frequency: %w", err)
	}
	if err := fe.SetRFBandwidth(float64(cfg.RFBandwidth)); err != nil {
		return nil, fmt.Errorf("set rf bandwidth: %w", err)
	}
	if err := fe.SetSamplingFrequency(float64(cfg.IQSampleRate)); err != nil {
		return nil, fmt.Errorf("set sampling frequency: %w", err)
	}

	streamer, err := fe.StartIQ()
	if err != nil {
		return nil, fmt.Errorf("start IQ streaming: %w", err)
	}

	return func(buf []dsp.CS) (int, bool) {
		out := streamer.CollectIQ(buf[:0])
		n := copy(buf, out)
		if n == 0 {
			logger.Error("SDR refill failed, retrying")
		}
		return n, true
	}, nil
}
