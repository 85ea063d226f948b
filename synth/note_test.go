package synth

import (
	"errors"
	"math"
	"testing"
)

func TestResolveFrequencyReference(t *testing.T) {
	tests := []struct {
		name string
		freq float64
	}{
		{"A4", 440.0},
		{"A5", 880.0},
		{"A3", 220.0},
		{"A0", 27.5},
		{"C4", 261.6255653005986},
		{"E4", 329.6275569128699},
		{"G4", 391.99543598174927},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolveFrequency(tt.name)
			if err != nil {
				t.Fatalf("ResolveFrequency(%q): %v", tt.name, err)
			}
			if math.Abs(got-tt.freq) > 1e-9 {
				t.Errorf("ResolveFrequency(%q) = %v, want %v", tt.name, got, tt.freq)
			}
		})
	}
}

func TestResolveFrequencyOctaveDoubling(t *testing.T) {
	names := []string{"C", "D#", "Gb", "B"}
	for _, name := range names {
		lo, err := ResolveFrequency(name + "3")
		if err != nil {
			t.Fatalf("%s3: %v", name, err)
		}
		hi, err := ResolveFrequency(name + "4")
		if err != nil {
			t.Fatalf("%s4: %v", name, err)
		}
		if math.Abs(hi-2*lo) > 1e-9 {
			t.Errorf("%s: octave up %v is not double of %v", name, hi, lo)
		}
	}
}

func TestResolveFrequencyDefaultOctave(t *testing.T) {
	bare, err := ResolveFrequency("C")
	if err != nil {
		t.Fatal(err)
	}
	explicit, err := ResolveFrequency("C4")
	if err != nil {
		t.Fatal(err)
	}
	if bare != explicit {
		t.Errorf("ResolveFrequency(\"C\") = %v, want %v (C4)", bare, explicit)
	}
}

func TestResolveFrequencyEnharmonics(t *testing.T) {
	pairs := [][2]string{
		{"C#4", "Db4"},
		{"D#2", "Eb2"},
		{"F#5", "Gb5"},
		{"G#3", "Ab3"},
		{"A#4", "Bb4"},
	}
	for _, p := range pairs {
		a, err := ResolveFrequency(p[0])
		if err != nil {
			t.Fatalf("%s: %v", p[0], err)
		}
		b, err := ResolveFrequency(p[1])
		if err != nil {
			t.Fatalf("%s: %v", p[1], err)
		}
		if a != b {
			t.Errorf("%s (%v) != %s (%v)", p[0], a, p[1], b)
		}
	}
}

func TestResolveFrequencyMalformed(t *testing.T) {
	bad := []string{"", "H4", "Cx4", "C#x", "C4b", "c4", "4", "#4", "C-1"}
	for _, name := range bad {
		_, err := ResolveFrequency(name)
		if err == nil {
			t.Errorf("ResolveFrequency(%q): expected error", name)
			continue
		}
		var mnErr *MalformedNoteError
		if !errors.As(err, &mnErr) {
			t.Errorf("ResolveFrequency(%q): got %T, want *MalformedNoteError", name, err)
		}
	}
}

func TestNoteDurationRatioTable(t *testing.T) {
	tests := []struct {
		kind  NoteDuration
		ratio float64
	}{
		{Whole, 4.0},
		{DottedWhole, 6.0},
		{Half, 2.0},
		{DottedHalf, 3.0},
		{Quarter, 1.0},
		{DottedQuarter, 1.5},
		{Eighth, 0.5},
		{DottedEighth, 0.75},
		{Sixteenth, 0.25},
		{DottedSixteenth, 0.375},
		{ThirtySecond, 0.125},
		{DottedThirtySecond, 0.1875},
	}
	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			if got := tt.kind.Ratio(); got != tt.ratio {
				t.Errorf("Ratio() = %v, want %v", got, tt.ratio)
			}
		})
	}
}

func TestResolveDuration(t *testing.T) {
	// At 120 qpm a quarter note lasts half a second.
	got, err := ResolveDuration(Quarter, 120)
	if err != nil {
		t.Fatal(err)
	}
	if got != 0.5 {
		t.Errorf("quarter at 120 qpm = %v, want 0.5", got)
	}

	got, err = ResolveDuration(DottedHalf, 90)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(got-2.0) > 1e-12 {
		t.Errorf("dotted half at 90 qpm = %v, want 2.0", got)
	}

	if _, err := ResolveDuration(Quarter, 0); err == nil {
		t.Error("expected error for zero tempo")
	}
	if _, err := ResolveDuration(NoteDuration(99), 120); err == nil {
		t.Error("expected error for out-of-range duration kind")
	}
}
