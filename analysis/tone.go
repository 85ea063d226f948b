package analysis

import (
	"math"

	algofft "github.com/cwbudde/algo-fft"
)

// RMS returns the root-mean-square level of x.
func RMS(x []float64) float64 {
	if len(x) == 0 {
		return 0
	}
	var sum float64
	for _, v := range x {
		sum += v * v
	}
	return math.Sqrt(sum / float64(len(x)))
}

// Peak returns the largest absolute sample value in x.
func Peak(x []float64) float64 {
	var peak float64
	for _, v := range x {
		if a := math.Abs(v); a > peak {
			peak = a
		}
	}
	return peak
}

// RMSEnvelope slides an RMS window over x, returning one level per hop.
func RMSEnvelope(x []float64, frame, hop int) []float64 {
	if frame <= 0 || hop <= 0 || len(x) < frame {
		return nil
	}
	n := 1 + (len(x)-frame)/hop
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		start := i * hop
		out[i] = RMS(x[start : start+frame])
	}
	return out
}

// DominantFrequency estimates the strongest spectral component of x in
// Hz: Hann-windowed FFT, peak bin, parabolic refinement on the log
// magnitudes of the neighboring bins. Returns 0 when x is too short or
// silent.
func DominantFrequency(x []float64, sampleRate int) float64 {
	if sampleRate <= 0 || len(x) < 16 {
		return 0
	}
	fftSize := 1
	for fftSize*2 <= len(x) && fftSize < 16384 {
		fftSize *= 2
	}
	plan, err := algofft.NewPlanReal64(fftSize)
	if err != nil {
		return 0
	}
	buf := make([]float64, fftSize)
	for i := 0; i < fftSize; i++ {
		w := 0.5 - 0.5*math.Cos(2*math.Pi*float64(i)/float64(fftSize-1))
		buf[i] = x[i] * w
	}
	spec := make([]complex128, fftSize/2+1)
	plan.Forward(spec, buf)

	mags := make([]float64, fftSize/2+1)
	peakBin := 0
	for k := 1; k < len(mags)-1; k++ {
		mags[k] = cmplxAbs(spec[k])
		if mags[k] > mags[peakBin] {
			peakBin = k
		}
	}
	if peakBin == 0 || mags[peakBin] < 1e-9 {
		return 0
	}

	// Quadratic fit through the peak and its neighbors sharpens the bin
	// resolution well below sampleRate/fftSize.
	delta := 0.0
	if peakBin > 1 && peakBin < len(mags)-2 {
		a := logMag(mags[peakBin-1])
		b := logMag(mags[peakBin])
		c := logMag(mags[peakBin+1])
		if denom := a - 2*b + c; denom != 0 {
			delta = 0.5 * (a - c) / denom
		}
	}
	return (float64(peakBin) + delta) * float64(sampleRate) / float64(fftSize)
}

func cmplxAbs(c complex128) float64 {
	return math.Hypot(real(c), imag(c))
}

func logMag(m float64) float64 {
	if m < 1e-12 {
		m = 1e-12
	}
	return math.Log(m)
}
