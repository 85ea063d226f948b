package analysis

import (
	"math"

	"github.com/cwbudde/algo-approx"
	algofft "github.com/cwbudde/algo-fft"
)

// Metrics contains distance and similarity measurements between two
// audio signals.
type Metrics struct {
	SampleRate int `json:"sample_rate"`

	ReferenceFrames int `json:"reference_frames"`
	CandidateFrames int `json:"candidate_frames"`
	ComparedFrames  int `json:"compared_frames"`

	TimeRMSE       float64 `json:"time_rmse"`
	EnvelopeRMSEDB float64 `json:"envelope_rmse_db"`
	SpectralRMSEDB float64 `json:"spectral_rmse_db"`

	Score      float64 `json:"score"`
	Similarity float64 `json:"similarity"`
}

// Compare returns objective distance metrics between a reference and a
// candidate signal, plus a combined score in [0,1] (0 = identical) and
// a similarity percentage mapping of that score. Both inputs are
// trimmed of leading silence and RMS-normalized first, so absolute gain
// differences do not dominate.
func Compare(reference, candidate []float64, sampleRate int) Metrics {
	m := Metrics{
		SampleRate:      sampleRate,
		ReferenceFrames: len(reference),
		CandidateFrames: len(candidate),
	}
	ref := trimLeadingSilence(reference, 1e-6)
	cand := trimLeadingSilence(candidate, 1e-6)
	if sampleRate <= 0 || len(ref) == 0 || len(cand) == 0 {
		m.Score = 1.0
		return m
	}

	ref = normalizeRMS(ref, 0.1)
	cand = normalizeRMS(cand, 0.1)

	n := len(ref)
	if len(cand) < n {
		n = len(cand)
	}
	maxFrames := sampleRate * 12
	if maxFrames > 0 && n > maxFrames {
		n = maxFrames
	}
	ref = ref[:n]
	cand = cand[:n]
	m.ComparedFrames = n

	m.TimeRMSE = rmse(ref, cand)

	refEnv := RMSEnvelope(ref, 256, 128)
	candEnv := RMSEnvelope(cand, 256, 128)
	envN := len(refEnv)
	if len(candEnv) < envN {
		envN = len(candEnv)
	}
	if envN > 0 {
		var sum float64
		for i := 0; i < envN; i++ {
			d := linToDB(refEnv[i]) - linToDB(candEnv[i])
			sum += d * d
		}
		m.EnvelopeRMSEDB = math.Sqrt(sum / float64(envN))
	}

	m.SpectralRMSEDB = spectralRMSEDB(ref, cand)

	// Normalize sub-metrics and combine.
	timeNorm := clamp01(m.TimeRMSE / 0.25)
	envNorm := clamp01(m.EnvelopeRMSEDB / 30.0)
	specNorm := clamp01(m.SpectralRMSEDB / 30.0)
	m.Score = clamp01(0.35*timeNorm + 0.30*envNorm + 0.35*specNorm)
	m.Similarity = clamp01(float64(approx.FastExp(float32(-4.0 * m.Score))))

	return m
}

func trimLeadingSilence(x []float64, threshold float64) []float64 {
	for i := 0; i < len(x); i++ {
		if math.Abs(x[i]) > threshold {
			return x[i:]
		}
	}
	return nil
}

func normalizeRMS(x []float64, target float64) []float64 {
	r := RMS(x)
	if r <= 1e-12 {
		return append([]float64(nil), x...)
	}
	g := target / r
	out := make([]float64, len(x))
	for i := range x {
		out[i] = x[i] * g
	}
	return out
}

func rmse(a, b []float64) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	if n == 0 {
		return 0
	}
	var sum float64
	for i := 0; i < n; i++ {
		d := a[i] - b[i]
		sum += d * d
	}
	return math.Sqrt(sum / float64(n))
}

// spectralRMSEDB compares the windowed magnitude spectra of the first
// few thousand samples of each signal, bin by bin in dB.
func spectralRMSEDB(a, b []float64) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	fftSize := 1
	for fftSize*2 <= n && fftSize < 4096 {
		fftSize *= 2
	}
	if fftSize < 512 {
		return 0
	}
	plan, err := algofft.NewPlanReal64(fftSize)
	if err != nil {
		return 0
	}
	aw := make([]float64, fftSize)
	bw := make([]float64, fftSize)
	for i := 0; i < fftSize; i++ {
		w := 0.5 - 0.5*math.Cos(2*math.Pi*float64(i)/float64(fftSize-1))
		aw[i] = a[i] * w
		bw[i] = b[i] * w
	}
	specA := make([]complex128, fftSize/2+1)
	specB := make([]complex128, fftSize/2+1)
	plan.Forward(specA, aw)
	plan.Forward(specB, bw)

	bins := fftSize / 2
	var sum float64
	for k := 1; k < bins; k++ {
		d := linToDB(cmplxAbs(specA[k])) - linToDB(cmplxAbs(specB[k]))
		sum += d * d
	}
	return math.Sqrt(sum / float64(bins-1))
}

func linToDB(x float64) float64 {
	if x < 1e-12 {
		x = 1e-12
	}
	return 20.0 * math.Log10(x)
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
