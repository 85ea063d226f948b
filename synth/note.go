package synth

import "math"

// A4Freq is the tuning reference: A above middle C, in Hz.
const A4Freq = 440.0

// semitoneOffsets maps every standard pitch-class spelling onto its
// semitone distance from A. Enharmonic spellings (C#/Db and friends)
// share an offset; the table is closed, anything else is malformed.
var semitoneOffsets = map[string]int{
	"C":  -9,
	"C#": -8,
	"Db": -8,
	"D":  -7,
	"D#": -6,
	"Eb": -6,
	"E":  -5,
	"F":  -4,
	"F#": -3,
	"Gb": -3,
	"G":  -2,
	"G#": -1,
	"Ab": -1,
	"A":  0,
	"A#": 1,
	"Bb": 1,
	"B":  2,
}

// ResolveFrequency converts a note token like "A4", "C#3", or "Bb" (the
// octave defaults to 4) into its equal-temperament frequency in Hz.
func ResolveFrequency(name string) (float64, error) {
	class, octave, err := parseNote(name)
	if err != nil {
		return 0, err
	}
	offset := semitoneOffsets[class]
	return A4Freq * math.Exp2(float64(offset)/12) * math.Exp2(float64(octave-4)), nil
}

// parseNote splits a note token into its pitch class and octave. The
// grammar is letter A-G, an optional # or b, then an optional run of
// digits; no regular expressions, just a hand tokenizer.
func parseNote(name string) (class string, octave int, err error) {
	if name == "" {
		return "", 0, &MalformedNoteError{Token: name, Reason: "empty token"}
	}
	letter := name[0]
	if letter < 'A' || letter > 'G' {
		return "", 0, &MalformedNoteError{Token: name, Reason: "pitch letter must be A-G"}
	}
	rest := name[1:]
	class = string(letter)
	if len(rest) > 0 && (rest[0] == '#' || rest[0] == 'b') {
		class += string(rest[0])
		rest = rest[1:]
	}
	if _, ok := semitoneOffsets[class]; !ok {
		return "", 0, &MalformedNoteError{Token: name, Reason: "unknown pitch class " + class}
	}
	octave = 4
	if len(rest) > 0 {
		octave = 0
		for i := 0; i < len(rest); i++ {
			c := rest[i]
			if c < '0' || c > '9' {
				return "", 0, &MalformedNoteError{Token: name, Reason: "octave must be an integer"}
			}
			octave = octave*10 + int(c-'0')
		}
	}
	return class, octave, nil
}

// NoteDuration is one of the twelve symbolic note length categories.
type NoteDuration int

const (
	Whole NoteDuration = iota
	DottedWhole
	Half
	DottedHalf
	Quarter
	DottedQuarter
	Eighth
	DottedEighth
	Sixteenth
	DottedSixteenth
	ThirtySecond
	DottedThirtySecond
)

// Ratio returns the duration as a multiple of a quarter note, or 0 for a
// value outside the enum.
func (d NoteDuration) Ratio() float64 {
	switch d {
	case Whole:
		return 4.0
	case DottedWhole:
		return 6.0
	case Half:
		return 2.0
	case DottedHalf:
		return 3.0
	case Quarter:
		return 1.0
	case DottedQuarter:
		return 1.5
	case Eighth:
		return 0.5
	case DottedEighth:
		return 0.75
	case Sixteenth:
		return 0.25
	case DottedSixteenth:
		return 0.375
	case ThirtySecond:
		return 0.125
	case DottedThirtySecond:
		return 0.1875
	default:
		return 0
	}
}

func (d NoteDuration) String() string {
	switch d {
	case Whole:
		return "whole"
	case DottedWhole:
		return "dotted whole"
	case Half:
		return "half"
	case DottedHalf:
		return "dotted half"
	case Quarter:
		return "quarter"
	case DottedQuarter:
		return "dotted quarter"
	case Eighth:
		return "eighth"
	case DottedEighth:
		return "dotted eighth"
	case Sixteenth:
		return "sixteenth"
	case DottedSixteenth:
		return "dotted sixteenth"
	case ThirtySecond:
		return "thirty-second"
	case DottedThirtySecond:
		return "dotted thirty-second"
	default:
		return "unknown"
	}
}

// ResolveDuration converts a symbolic duration into seconds at the given
// tempo (quarter notes per minute).
func ResolveDuration(d NoteDuration, tempoQPM float64) (float64, error) {
	if tempoQPM <= 0 {
		return 0, &InvalidParameterError{Name: "tempo", Value: tempoQPM, Reason: "must be > 0"}
	}
	ratio := d.Ratio()
	if ratio == 0 {
		return 0, &InvalidParameterError{Name: "duration", Value: float64(d), Reason: "not a note duration"}
	}
	return ratio * 60.0 / tempoQPM, nil
}
