package analysis

import (
	"math"
	"testing"
)

func sine(freq float64, sampleRate, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = math.Sin(2 * math.Pi * freq * float64(i) / float64(sampleRate))
	}
	return out
}

func TestRMS(t *testing.T) {
	if got := RMS(nil); got != 0 {
		t.Errorf("RMS(nil) = %v, want 0", got)
	}
	// A full-scale sine has RMS 1/sqrt(2).
	got := RMS(sine(441, 44100, 44100))
	if math.Abs(got-1/math.Sqrt2) > 1e-3 {
		t.Errorf("sine RMS = %v, want %v", got, 1/math.Sqrt2)
	}
}

func TestPeak(t *testing.T) {
	x := []float64{0.1, -0.7, 0.3}
	if got := Peak(x); got != 0.7 {
		t.Errorf("Peak = %v, want 0.7", got)
	}
}

func TestRMSEnvelopeFollowsAmplitude(t *testing.T) {
	loud := sine(441, 44100, 4410)
	quiet := make([]float64, 4410)
	for i, v := range loud {
		quiet[i] = 0.1 * v
	}
	env := RMSEnvelope(append(loud, quiet...), 256, 128)
	if len(env) == 0 {
		t.Fatal("empty envelope")
	}
	first, last := env[0], env[len(env)-1]
	if first < 5*last {
		t.Errorf("envelope did not track the level drop: first %v, last %v", first, last)
	}
}

func TestDominantFrequency(t *testing.T) {
	tests := []float64{110, 261.63, 440, 880, 2000}
	for _, freq := range tests {
		got := DominantFrequency(sine(freq, 44100, 44100), 44100)
		if math.Abs(got-freq) > 2.0 {
			t.Errorf("DominantFrequency(sine %v Hz) = %v", freq, got)
		}
	}
	if got := DominantFrequency(make([]float64, 8192), 44100); got != 0 {
		t.Errorf("DominantFrequency(silence) = %v, want 0", got)
	}
	if got := DominantFrequency(nil, 44100); got != 0 {
		t.Errorf("DominantFrequency(nil) = %v, want 0", got)
	}
}

func TestCompareIdenticalSignals(t *testing.T) {
	x := sine(440, 44100, 22050)
	m := Compare(x, x, 44100)
	if m.Score > 1e-9 {
		t.Errorf("identical signals scored %v, want 0", m.Score)
	}
	if m.Similarity < 0.99 {
		t.Errorf("identical signals similarity %v, want ~1", m.Similarity)
	}
}

func TestCompareDistinguishesPitches(t *testing.T) {
	ref := sine(440, 44100, 22050)
	near := sine(445, 44100, 22050)
	far := sine(1000, 44100, 22050)
	mNear := Compare(ref, near, 44100)
	mFar := Compare(ref, far, 44100)
	if mFar.Score <= mNear.Score {
		t.Errorf("distant pitch scored %v, near pitch %v; want distant worse", mFar.Score, mNear.Score)
	}
}

func TestCompareGainInvariance(t *testing.T) {
	ref := sine(440, 44100, 22050)
	scaled := make([]float64, len(ref))
	for i, v := range ref {
		scaled[i] = 0.25 * v
	}
	m := Compare(ref, scaled, 44100)
	if m.Score > 0.01 {
		t.Errorf("pure gain difference scored %v, want ~0 after normalization", m.Score)
	}
}

func TestCompareEmptyInputs(t *testing.T) {
	m := Compare(nil, sine(440, 44100, 1024), 44100)
	if m.Score != 1 {
		t.Errorf("empty reference scored %v, want 1", m.Score)
	}
}
