package synth

import (
	"errors"
	"math"
	"testing"
)

func TestParseScore(t *testing.T) {
	notes, err := ParseScore("C4:q E4:e. G4:h -:w C#5:s Bb3:t.")
	if err != nil {
		t.Fatal(err)
	}
	want := []Note{
		{Name: "C4", Duration: Quarter},
		{Name: "E4", Duration: DottedEighth},
		{Name: "G4", Duration: Half},
		{Name: "-", Duration: Whole},
		{Name: "C#5", Duration: Sixteenth},
		{Name: "Bb3", Duration: DottedThirtySecond},
	}
	if len(notes) != len(want) {
		t.Fatalf("parsed %d notes, want %d", len(notes), len(want))
	}
	for i := range want {
		if notes[i] != want[i] {
			t.Errorf("note %d = %+v, want %+v", i, notes[i], want[i])
		}
	}
}

func TestParseScoreMalformed(t *testing.T) {
	bad := []string{
		"",
		"C4",      // missing duration
		"C4:x",    // unknown duration
		"H4:q",    // bad pitch letter
		"C4:q.q",  // trailing junk
		"C4:whole",
	}
	for _, score := range bad {
		if _, err := ParseScore(score); err == nil {
			t.Errorf("ParseScore(%q): expected error", score)
		}
	}
}

func TestToneLengthMatchesEnvelope(t *testing.T) {
	cfg := testConfig() // 120 qpm: a quarter note is 0.5 s
	patch := DefaultPatch()
	tone, err := Tone(cfg, patch, Note{Name: "A4", Duration: Quarter})
	if err != nil {
		t.Fatal(err)
	}
	if !tone.Finite() {
		t.Error("tone must be finite")
	}
	samples, err := drain(tone)
	if err != nil {
		t.Fatal(err)
	}
	// Envelope phases are rounded per phase: 5% attack, 10% decay, 65%
	// sustain, 20% release of the 0.5 s note.
	want := 1103 + 2205 + 14333 + 4410
	if len(samples) != want {
		t.Errorf("length = %d, want %d", len(samples), want)
	}
	for i, v := range samples {
		if v < -1 || v > 1 {
			t.Fatalf("sample %d = %v outside [-1, 1]", i, v)
		}
	}
	peak := 0.0
	for _, v := range samples {
		if a := math.Abs(v); a > peak {
			peak = a
		}
	}
	if peak > patch.Gain+1e-9 {
		t.Errorf("peak %v exceeds patch gain %v", peak, patch.Gain)
	}
	if peak < patch.Gain*0.5 {
		t.Errorf("peak %v suspiciously low for gain %v", peak, patch.Gain)
	}
}

func TestToneRest(t *testing.T) {
	cfg := testConfig()
	tone, err := Tone(cfg, DefaultPatch(), Note{Name: Rest, Duration: Half})
	if err != nil {
		t.Fatal(err)
	}
	samples, err := drain(tone)
	if err != nil {
		t.Fatal(err)
	}
	if len(samples) != 44100 {
		t.Errorf("rest length = %d, want 44100", len(samples))
	}
	for i, v := range samples {
		if v != 0 {
			t.Fatalf("rest sample %d = %v, want 0", i, v)
		}
	}
}

func TestToneUnknownNote(t *testing.T) {
	cfg := testConfig()
	_, err := Tone(cfg, DefaultPatch(), Note{Name: "X4", Duration: Quarter})
	var mnErr *MalformedNoteError
	if !errors.As(err, &mnErr) {
		t.Fatalf("got %v, want *MalformedNoteError", err)
	}
}

func TestSongConcatenatesTones(t *testing.T) {
	cfg := testConfig()
	patch := DefaultPatch()
	notes, err := ParseScore("C4:q C4:q")
	if err != nil {
		t.Fatal(err)
	}
	song, err := Song(cfg, patch, notes)
	if err != nil {
		t.Fatal(err)
	}
	songSamples, err := drain(song)
	if err != nil {
		t.Fatal(err)
	}
	tone, err := Tone(cfg, patch, notes[0])
	if err != nil {
		t.Fatal(err)
	}
	toneSamples, err := drain(tone)
	if err != nil {
		t.Fatal(err)
	}
	if len(songSamples) != 2*len(toneSamples) {
		t.Errorf("song length = %d, want %d", len(songSamples), 2*len(toneSamples))
	}
}

func TestSongEmpty(t *testing.T) {
	cfg := testConfig()
	if _, err := Song(cfg, DefaultPatch(), nil); err == nil {
		t.Error("expected error for empty note sequence")
	}
}

func TestPatchValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Patch)
	}{
		{"duty", func(p *Patch) { p.DutyCycle = 1.2 }},
		{"gain zero", func(p *Patch) { p.Gain = 0 }},
		{"gain high", func(p *Patch) { p.Gain = 1.5 }},
		{"no attack", func(p *Patch) { p.AttackFrac = 0 }},
		{"no sustain room", func(p *Patch) { p.AttackFrac, p.DecayFrac, p.ReleaseFrac = 0.5, 0.3, 0.3 }},
		{"sustain level", func(p *Patch) { p.SustainLevel = -0.2 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := DefaultPatch()
			tt.mutate(&p)
			if err := p.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
	if err := DefaultPatch().Validate(); err != nil {
		t.Errorf("default patch must validate, got %v", err)
	}
}

func TestParseWaveform(t *testing.T) {
	for name, want := range map[string]Waveform{
		"sine": WaveSine, "triangle": WaveTriangle,
		"sawtooth": WaveSawtooth, "saw": WaveSawtooth, "square": WaveSquare,
	} {
		got, err := ParseWaveform(name)
		if err != nil {
			t.Errorf("ParseWaveform(%q): %v", name, err)
		}
		if got != want {
			t.Errorf("ParseWaveform(%q) = %v, want %v", name, got, want)
		}
	}
	if _, err := ParseWaveform("noise"); err == nil {
		t.Error("expected error for unknown waveform")
	}
}
