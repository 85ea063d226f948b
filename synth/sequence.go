package synth

import "strings"

// Waveform selects the oscillator shape used for a voice.
type Waveform int

const (
	WaveSine Waveform = iota
	WaveTriangle
	WaveSawtooth
	WaveSquare
)

// ParseWaveform maps a waveform name to its enum value.
func ParseWaveform(name string) (Waveform, error) {
	switch name {
	case "sine":
		return WaveSine, nil
	case "triangle":
		return WaveTriangle, nil
	case "sawtooth", "saw":
		return WaveSawtooth, nil
	case "square":
		return WaveSquare, nil
	default:
		return 0, &InvalidParameterError{Name: "waveform", Reason: "unknown waveform " + name}
	}
}

func (w Waveform) String() string {
	switch w {
	case WaveSine:
		return "sine"
	case WaveTriangle:
		return "triangle"
	case WaveSawtooth:
		return "sawtooth"
	case WaveSquare:
		return "square"
	default:
		return "unknown"
	}
}

// Note pairs a pitch token with a symbolic duration. The name "-" marks
// a rest.
type Note struct {
	Name     string
	Duration NoteDuration
}

// Rest is the pitch token of a silent note.
const Rest = "-"

// Patch describes a voice: which oscillator to run and how the ADSR
// envelope divides each note. The envelope phase fractions apply to the
// resolved note duration, so the same patch articulates long and short
// notes alike.
type Patch struct {
	Waveform     Waveform
	DutyCycle    float64 // square wave only
	Gain         float64
	AttackFrac   float64
	DecayFrac    float64
	ReleaseFrac  float64
	SustainLevel float64
}

// DefaultPatch returns a soft sine voice.
func DefaultPatch() Patch {
	return Patch{
		Waveform:     WaveSine,
		DutyCycle:    0.5,
		Gain:         0.5,
		AttackFrac:   0.05,
		DecayFrac:    0.1,
		ReleaseFrac:  0.2,
		SustainLevel: 0.7,
	}
}

func (p Patch) Validate() error {
	if p.DutyCycle < 0 || p.DutyCycle > 1 {
		return &InvalidParameterError{Name: "dutyCycle", Value: p.DutyCycle, Reason: "must be in [0, 1]"}
	}
	if p.Gain <= 0 || p.Gain > 1 {
		return &InvalidParameterError{Name: "gain", Value: p.Gain, Reason: "must be in (0, 1]"}
	}
	if p.AttackFrac <= 0 || p.DecayFrac <= 0 || p.ReleaseFrac <= 0 {
		return &InvalidParameterError{Name: "envelope", Value: 0, Reason: "attack, decay, and release fractions must be > 0"}
	}
	if sum := p.AttackFrac + p.DecayFrac + p.ReleaseFrac; sum >= 1 {
		return &InvalidParameterError{Name: "envelope", Value: sum, Reason: "attack+decay+release fractions must leave room for the sustain phase"}
	}
	if p.SustainLevel < 0 || p.SustainLevel > 1 {
		return &InvalidParameterError{Name: "sustainLevel", Value: p.SustainLevel, Reason: "must be in [0, 1]"}
	}
	return nil
}

func (p Patch) oscillator(cfg Config, freq float64) (Stream, error) {
	switch p.Waveform {
	case WaveTriangle:
		return TriangleWave(cfg, freq)
	case WaveSawtooth:
		return SawtoothWave(cfg, freq)
	case WaveSquare:
		return RectangularWave(cfg, freq, p.DutyCycle, -1, 1)
	default:
		return SineWave(cfg, freq)
	}
}

// Tone builds the finite sample stream of one note: oscillator, shaped by
// the patch envelope, scaled by the patch gain. Rests become truncated
// silence of the same duration.
func Tone(cfg Config, patch Patch, note Note) (Stream, error) {
	if err := patch.Validate(); err != nil {
		return nil, err
	}
	dur, err := ResolveDuration(note.Duration, cfg.TempoQPM)
	if err != nil {
		return nil, err
	}
	if note.Name == Rest {
		return TimeLimit(cfg, Silence(), dur)
	}
	freq, err := ResolveFrequency(note.Name)
	if err != nil {
		return nil, err
	}
	osc, err := patch.oscillator(cfg, freq)
	if err != nil {
		return nil, err
	}
	sustainSec := dur * (1 - patch.AttackFrac - patch.DecayFrac - patch.ReleaseFrac)
	env, err := LinearADSR(cfg,
		dur*patch.AttackFrac,
		dur*patch.DecayFrac,
		sustainSec,
		dur*patch.ReleaseFrac,
		patch.SustainLevel)
	if err != nil {
		return nil, err
	}
	return Scale(Scale(osc, env), Hold(patch.Gain)), nil
}

// Song concatenates the tones of a note sequence into one finite stream.
func Song(cfg Config, patch Patch, notes []Note) (Stream, error) {
	if len(notes) == 0 {
		return nil, &InvalidParameterError{Name: "notes", Reason: "empty sequence"}
	}
	tones := make([]Stream, len(notes))
	for i, n := range notes {
		t, err := Tone(cfg, patch, n)
		if err != nil {
			return nil, err
		}
		tones[i] = t
	}
	return Concatenate(tones...), nil
}

// durationMnemonics maps score shorthand to duration categories. A
// trailing dot selects the dotted variant.
var durationMnemonics = map[string]NoteDuration{
	"w": Whole,
	"h": Half,
	"q": Quarter,
	"e": Eighth,
	"s": Sixteenth,
	"t": ThirtySecond,
}

var dottedVariants = map[NoteDuration]NoteDuration{
	Whole:        DottedWhole,
	Half:         DottedHalf,
	Quarter:      DottedQuarter,
	Eighth:       DottedEighth,
	Sixteenth:    DottedSixteenth,
	ThirtySecond: DottedThirtySecond,
}

// ParseScore reads a whitespace-separated score of NAME:DURATION tokens,
// e.g. "C4:q E4:q G4:h C#5:e. -:q". Durations are the mnemonics
// w h q e s t, with a trailing dot for the dotted variant; "-" is a rest.
func ParseScore(text string) ([]Note, error) {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return nil, &MalformedNoteError{Token: text, Reason: "empty score"}
	}
	notes := make([]Note, 0, len(fields))
	for _, tok := range fields {
		name, durTok, ok := strings.Cut(tok, ":")
		if !ok {
			return nil, &MalformedNoteError{Token: tok, Reason: "expected NAME:DURATION"}
		}
		if name != Rest {
			if _, _, err := parseNote(name); err != nil {
				return nil, err
			}
		}
		dotted := strings.HasSuffix(durTok, ".")
		base := strings.TrimSuffix(durTok, ".")
		dur, ok := durationMnemonics[base]
		if !ok {
			return nil, &MalformedNoteError{Token: tok, Reason: "unknown duration " + durTok}
		}
		if dotted {
			dur = dottedVariants[dur]
		}
		notes = append(notes, Note{Name: name, Duration: dur})
	}
	return notes, nil
}
