package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/cwbudde/algo-synth/analysis"
	"github.com/cwbudde/algo-synth/internal/wavio"
)

func main() {
	refPath := flag.String("reference", "", "Reference WAV path")
	candPath := flag.String("candidate", "", "Candidate WAV path (optional; omit to only inspect the reference)")
	flag.Parse()

	if *refPath == "" {
		fmt.Fprintln(os.Stderr, "Usage: synth-analyze -reference a.wav [-candidate b.wav]")
		os.Exit(1)
	}

	ref, refRate, err := wavio.ReadMono(*refPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading %s: %v\n", *refPath, err)
		os.Exit(1)
	}
	describe(*refPath, ref, refRate)

	if *candPath == "" {
		return
	}
	cand, candRate, err := wavio.ReadMono(*candPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading %s: %v\n", *candPath, err)
		os.Exit(1)
	}
	describe(*candPath, cand, candRate)

	cand, err = wavio.ResampleIfNeeded(cand, candRate, refRate)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error resampling: %v\n", err)
		os.Exit(1)
	}

	m := analysis.Compare(ref, cand, refRate)
	fmt.Printf("Compared %d frames\n", m.ComparedFrames)
	fmt.Printf("  time RMSE:        %.4f\n", m.TimeRMSE)
	fmt.Printf("  envelope RMSE:    %.2f dB\n", m.EnvelopeRMSEDB)
	fmt.Printf("  spectral RMSE:    %.2f dB\n", m.SpectralRMSEDB)
	fmt.Printf("  score:            %.4f\n", m.Score)
	fmt.Printf("  similarity:       %.2f%%\n", m.Similarity*100.0)
}

func describe(path string, samples []float64, rate int) {
	fmt.Printf("%s: %d frames at %d Hz\n", path, len(samples), rate)
	fmt.Printf("  RMS %.4f, peak %.4f, dominant %.2f Hz\n",
		analysis.RMS(samples), analysis.Peak(samples), analysis.DominantFrequency(samples, rate))
}
