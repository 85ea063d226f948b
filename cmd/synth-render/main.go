package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/cwbudde/algo-synth/internal/wavio"
	"github.com/cwbudde/algo-synth/preset"
	"github.com/cwbudde/algo-synth/synth"
)

const demoScore = "C4:q E4:q G4:q C5:q G4:q E4:q C4:h -:q C4:e. D4:s E4:h"

func main() {
	// Command-line flags
	scoreText := flag.String("score", "", "Score string, e.g. \"C4:q E4:q G4:h\" (default: a demo phrase)")
	patchPath := flag.String("patch", "", "Patch JSON file path (optional)")
	waveform := flag.String("waveform", "", "Waveform override: sine, triangle, sawtooth, square")
	tempo := flag.Float64("tempo", 0, "Tempo override in quarter notes per minute")
	gain := flag.Float64("gain", 0, "Gain override in (0, 1]")
	lowpass := flag.Float64("lowpass", 0, "Optional lowpass cutoff in Hz")
	echo := flag.Float64("echo", 0, "Optional echo delay in seconds")
	resample := flag.Int("resample", 0, "Resample output to this rate in Hz (default: keep 44100)")
	output := flag.String("output", "output.wav", "Output WAV file path")
	flag.Parse()

	settings := &preset.Settings{
		Patch:  synth.DefaultPatch(),
		Config: synth.DefaultConfig(),
	}
	if *patchPath != "" {
		loaded, err := preset.LoadJSON(*patchPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading patch %q: %v\n", *patchPath, err)
			os.Exit(1)
		}
		settings = loaded
	}
	if *waveform != "" {
		w, err := synth.ParseWaveform(*waveform)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		settings.Patch.Waveform = w
	}
	if *tempo != 0 {
		settings.Config.TempoQPM = *tempo
	}
	if *gain != 0 {
		settings.Patch.Gain = *gain
	}
	if err := settings.Config.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := settings.Patch.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	notes := settings.Notes
	if *scoreText != "" {
		parsed, err := synth.ParseScore(*scoreText)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing score: %v\n", err)
			os.Exit(1)
		}
		notes = parsed
	}
	if len(notes) == 0 {
		notes, _ = synth.ParseScore(demoScore)
	}

	cfg := settings.Config
	stream, err := synth.Song(cfg, settings.Patch, notes)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error building song: %v\n", err)
		os.Exit(1)
	}
	if *lowpass > 0 {
		stream, err = synth.Lowpass(cfg, stream, *lowpass, 0.707)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}
	if *echo > 0 {
		tail, terr := synth.TimeLimit(cfg, synth.Silence(), 2*(*echo))
		if terr != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", terr)
			os.Exit(1)
		}
		stream, err = synth.Echo(cfg, synth.Concatenate(stream, tail), *echo, 0.4, 0.3)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}

	fmt.Printf("Rendering %d notes (%s, tempo %.0f) to %s...\n",
		len(notes), settings.Patch.Waveform, cfg.TempoQPM, *output)

	buf, err := synth.RenderBuffer(cfg, stream)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error rendering: %v\n", err)
		os.Exit(1)
	}

	outCfg := cfg
	if *resample > 0 && *resample != cfg.SampleRate {
		resampled, err := resampleBuffer(buf.Data, cfg.SampleRate, *resample)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error resampling: %v\n", err)
			os.Exit(1)
		}
		buf.Data = resampled
		buf.Format.SampleRate = *resample
		outCfg.SampleRate = *resample
	}

	if err := synth.WriteBuffer(outCfg, buf, *output); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing WAV file: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Successfully wrote %s (%d frames at %d Hz)\n", *output, len(buf.Data), outCfg.SampleRate)
}

// resampleBuffer converts quantized frames to a new rate. Resampler
// overshoot near full scale is clamped back into int16 range; this is a
// post-render output conversion, not part of the generator contract.
func resampleBuffer(data []int, fromRate, toRate int) ([]int, error) {
	in := make([]float64, len(data))
	for i, v := range data {
		in[i] = float64(v) / 32767.0
	}
	out, err := wavio.ResampleIfNeeded(in, fromRate, toRate)
	if err != nil {
		return nil, err
	}
	res := make([]int, len(out))
	for i, v := range out {
		if v > 1 {
			v = 1
		} else if v < -1 {
			v = -1
		}
		q, _ := synth.Quantize(v)
		res[i] = q
	}
	return res, nil
}
