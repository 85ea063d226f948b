package synth

import (
	"math"
	"testing"
)

func TestLinearADSRPhaseLengthsAndLevels(t *testing.T) {
	cfg := testConfig()
	attack, decay, sustain, release := 0.1, 0.1, 0.2, 0.1
	sustainLevel := 0.6
	env, err := LinearADSR(cfg, attack, decay, sustain, release, sustainLevel)
	if err != nil {
		t.Fatal(err)
	}
	if !env.Finite() {
		t.Error("ADSR envelope must be finite")
	}
	samples, err := drain(env)
	if err != nil {
		t.Fatal(err)
	}

	an := 4410 // round(0.1 * 44100)
	dn := 4410
	sn := 8820
	rn := 4410
	if len(samples) != an+dn+sn+rn {
		t.Fatalf("length = %d, want %d", len(samples), an+dn+sn+rn)
	}

	if samples[0] != 0 {
		t.Errorf("attack start = %v, want 0", samples[0])
	}
	if samples[an] != 1 {
		t.Errorf("decay start = %v, want 1", samples[an])
	}
	for i := an + dn; i < an+dn+sn; i++ {
		if samples[i] != sustainLevel {
			t.Fatalf("sustain sample %d = %v, want %v", i, samples[i], sustainLevel)
		}
	}
	if samples[an+dn+sn] != sustainLevel {
		t.Errorf("release start = %v, want %v", samples[an+dn+sn], sustainLevel)
	}
	last := samples[len(samples)-1]
	if math.Abs(last-sustainLevel/float64(rn)) > 1e-9 {
		t.Errorf("release end = %v, want one slope step above 0", last)
	}

	// The envelope never leaves [0, 1].
	for i, v := range samples {
		if v < 0 || v > 1 {
			t.Fatalf("sample %d = %v outside [0, 1]", i, v)
		}
	}

	// Attack rises monotonically, release falls monotonically.
	for i := 1; i < an; i++ {
		if samples[i] < samples[i-1] {
			t.Fatalf("attack not monotonic at sample %d", i)
		}
	}
	for i := an + dn + sn + 1; i < len(samples); i++ {
		if samples[i] > samples[i-1] {
			t.Fatalf("release not monotonic at sample %d", i)
		}
	}
}

func TestLinearADSRInvalidSustainLevel(t *testing.T) {
	cfg := testConfig()
	for _, level := range []float64{-0.1, 1.1} {
		if _, err := LinearADSR(cfg, 0.1, 0.1, 0.1, 0.1, level); err == nil {
			t.Errorf("sustain level %v: expected error", level)
		}
	}
}

func TestLinearADSRShapesATone(t *testing.T) {
	cfg := testConfig()
	tone, err := SineWave(cfg, 441)
	if err != nil {
		t.Fatal(err)
	}
	env, err := LinearADSR(cfg, 0.05, 0.05, 0.3, 0.1, 0.7)
	if err != nil {
		t.Fatal(err)
	}
	samples, err := drain(Scale(tone, env))
	if err != nil {
		t.Fatal(err)
	}
	wantLen := 2205 + 2205 + 13230 + 4410
	if len(samples) != wantLen {
		t.Fatalf("length = %d, want %d", len(samples), wantLen)
	}
	for i, v := range samples {
		if v < -1 || v > 1 {
			t.Fatalf("sample %d = %v outside [-1, 1]", i, v)
		}
	}
}
