package main

import (
	"flag"
	"fmt"
	"math"
	"math/rand"
	"os"
	"strings"
	"time"

	"github.com/cwbudde/algo-synth/analysis"
	"github.com/cwbudde/algo-synth/internal/wavio"
	"github.com/cwbudde/algo-synth/preset"
	"github.com/cwbudde/algo-synth/synth"
	"github.com/cwbudde/mayfly"
)

type knobDef struct {
	Name string
	Min  float64
	Max  float64
}

var knobs = []knobDef{
	{Name: "duty_cycle", Min: 0.05, Max: 0.95},
	{Name: "gain", Min: 0.1, Max: 1.0},
	{Name: "attack_frac", Min: 0.01, Max: 0.4},
	{Name: "decay_frac", Min: 0.01, Max: 0.4},
	{Name: "release_frac", Min: 0.01, Max: 0.4},
	{Name: "sustain_level", Min: 0.0, Max: 1.0},
}

func main() {
	referencePath := flag.String("reference", "reference/tone.wav", "Reference WAV path")
	outputPreset := flag.String("output-patch", "fitted.json", "Path to write the best fitted patch JSON")
	outputWAV := flag.String("output-wav", "", "Optional path to write the best candidate render")
	noteName := flag.String("note", "C4", "Note to render during the fit")
	waveform := flag.String("waveform", "", "Fix the waveform (sine, triangle, sawtooth, square); empty fits all four")
	tempo := flag.Float64("tempo", 60, "Tempo in quarter notes per minute")
	durTok := flag.String("duration", "w", "Note duration mnemonic (w h q e s t, dot for dotted)")
	seed := flag.Int64("seed", 1, "Random seed")
	variant := flag.String("variant", "desma", "Mayfly variant: ma, desma, olce, eobbma, gsasma, mpma, aoblmoa")
	pop := flag.Int("pop", 16, "Mayfly population size")
	maxEvals := flag.Int("max-evals", 2000, "Maximum objective evaluations")
	reportEvery := flag.Int("report-every", 200, "Progress print interval in evaluations")
	flag.Parse()

	notes, err := synth.ParseScore(*noteName + ":" + *durTok)
	if err != nil {
		die("invalid note/duration: %v", err)
	}
	note := notes[0]

	cfg := synth.DefaultConfig()
	cfg.TempoQPM = *tempo

	ref, refRate, err := wavio.ReadMono(*referencePath)
	if err != nil {
		die("read reference: %v", err)
	}
	ref, err = wavio.ResampleIfNeeded(ref, refRate, cfg.SampleRate)
	if err != nil {
		die("resample reference: %v", err)
	}
	fmt.Printf("Reference %s: %d frames at %d Hz\n", *referencePath, len(ref), cfg.SampleRate)

	waveforms := []synth.Waveform{synth.WaveSine, synth.WaveTriangle, synth.WaveSawtooth, synth.WaveSquare}
	if *waveform != "" {
		w, err := synth.ParseWaveform(*waveform)
		if err != nil {
			die("%v", err)
		}
		waveforms = []synth.Waveform{w}
	}

	start := time.Now()
	evals := 0
	best := synth.DefaultPatch()
	bestM := analysis.Metrics{Score: math.Inf(1)}
	var bestRender []float64

	evaluate := func(p synth.Patch) (analysis.Metrics, []float64, error) {
		tone, err := synth.Tone(cfg, p, note)
		if err != nil {
			return analysis.Metrics{}, nil, err
		}
		buf, err := synth.RenderBuffer(cfg, tone)
		if err != nil {
			return analysis.Metrics{}, nil, err
		}
		cand := make([]float64, len(buf.Data))
		for i, v := range buf.Data {
			cand[i] = float64(v) / 32767.0
		}
		return analysis.Compare(ref, cand, cfg.SampleRate), cand, nil
	}

	for _, w := range waveforms {
		mcfg, err := newMayflyConfig(strings.ToLower(*variant), *pop, len(knobs), maxInt(1, *maxEvals/(len(waveforms)*2*(*pop))))
		if err != nil {
			die("invalid mayfly variant: %v", err)
		}
		mcfg.Rand = rand.New(rand.NewSource(*seed + int64(w)*7919))

		mcfg.ObjectiveFunc = func(pos []float64) float64 {
			p := patchFromNormalized(w, pos)
			m, cand, err := evaluate(p)
			evals++
			if err != nil {
				return bestM.Score + 1.0
			}
			if m.Score < bestM.Score {
				best = p
				bestM = m
				bestRender = cand
				fmt.Printf("Improved eval=%d waveform=%s score=%.4f sim=%.2f%%\n", evals, w, m.Score, m.Similarity*100.0)
			}
			if evals%*reportEvery == 0 {
				fmt.Printf("Progress eval=%d elapsed=%.1fs best=%.4f\n", evals, time.Since(start).Seconds(), bestM.Score)
			}
			return m.Score
		}

		if _, err := runMayfly(mcfg); err != nil {
			fmt.Fprintf(os.Stderr, "mayfly waveform %s failed: %v\n", w, err)
		}
	}

	if math.IsInf(bestM.Score, 1) {
		die("no candidate evaluated successfully")
	}

	settings := &preset.Settings{Patch: best, Config: cfg}
	if err := preset.SaveJSON(*outputPreset, settings); err != nil {
		die("write patch: %v", err)
	}
	fmt.Printf("Best: waveform=%s score=%.4f sim=%.2f%% (%d evals, %.1fs) -> %s\n",
		best.Waveform, bestM.Score, bestM.Similarity*100.0, evals, time.Since(start).Seconds(), *outputPreset)

	if *outputWAV != "" && bestRender != nil {
		tone, err := synth.Tone(cfg, best, note)
		if err == nil {
			err = synth.Render(cfg, tone, *outputWAV)
		}
		if err != nil {
			die("write best render: %v", err)
		}
		fmt.Printf("Wrote best render to %s\n", *outputWAV)
	}
}

// patchFromNormalized maps a [0,1]^n optimizer position onto a valid
// patch. The three envelope fractions are rescaled when they would leave
// no sustain phase.
func patchFromNormalized(w synth.Waveform, pos []float64) synth.Patch {
	vals := make([]float64, len(knobs))
	for i := range knobs {
		x := 0.0
		if i < len(pos) {
			x = clamp01(pos[i])
		}
		vals[i] = knobs[i].Min + x*(knobs[i].Max-knobs[i].Min)
	}
	p := synth.Patch{
		Waveform:     w,
		DutyCycle:    vals[0],
		Gain:         vals[1],
		AttackFrac:   vals[2],
		DecayFrac:    vals[3],
		ReleaseFrac:  vals[4],
		SustainLevel: vals[5],
	}
	if sum := p.AttackFrac + p.DecayFrac + p.ReleaseFrac; sum >= 0.9 {
		scale := 0.9 / sum
		p.AttackFrac *= scale
		p.DecayFrac *= scale
		p.ReleaseFrac *= scale
	}
	return p
}

func newMayflyConfig(variant string, pop, dims, iters int) (*mayfly.Config, error) {
	var cfg *mayfly.Config
	switch variant {
	case "ma":
		cfg = mayfly.NewDefaultConfig()
	case "desma":
		cfg = mayfly.NewDESMAConfig()
	case "olce":
		cfg = mayfly.NewOLCEConfig()
	case "eobbma":
		cfg = mayfly.NewEOBBMAConfig()
	case "gsasma":
		cfg = mayfly.NewGSASMAConfig()
	case "mpma":
		cfg = mayfly.NewMPMAConfig()
	case "aoblmoa":
		cfg = mayfly.NewAOBLMOAConfig()
	default:
		return nil, fmt.Errorf("unsupported variant %q", variant)
	}
	cfg.ProblemSize = dims
	cfg.LowerBound = 0.0
	cfg.UpperBound = 1.0
	cfg.MaxIterations = iters
	cfg.NPop = pop
	cfg.NPopF = pop
	cfg.NC = 2 * pop
	cfg.NM = maxInt(1, int(math.Round(0.05*float64(pop))))
	return cfg, nil
}

func runMayfly(cfg *mayfly.Config) (_ *mayfly.Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("mayfly panic: %v", r)
		}
	}()
	return mayfly.Optimize(cfg)
}

func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func die(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
