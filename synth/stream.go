package synth

import "math"

// Stream is a lazy, forward-only sequence of amplitude samples in
// [-1, 1]. Pulling advances an internal cursor; a stream is single-owner
// and single-pass, and cannot be rewound (rebuild it from its parameters
// instead).
type Stream interface {
	// Next returns the next sample. ok is false once the stream ends;
	// after that the stream must not be pulled again.
	Next() (sample float64, ok bool)

	// Finite reports whether the stream is known to terminate. Sources
	// like Hold and the oscillators run forever and must be truncated
	// (TimeLimit) before rendering.
	Finite() bool

	// Err returns the first error hit while producing samples, or nil.
	// It is only meaningful once Next has returned false: a finite
	// stream that ended normally reports nil, one that failed mid-pull
	// reports the cause.
	Err() error
}

// Hold produces level forever. It is an envelope building block; truncate
// it before rendering.
func Hold(level float64) Stream {
	return &holdStream{level: level}
}

// Silence is Hold(0).
func Silence() Stream {
	return Hold(0)
}

type holdStream struct {
	level float64
}

func (s *holdStream) Next() (float64, bool) { return s.level, true }
func (s *holdStream) Finite() bool          { return false }
func (s *holdStream) Err() error            { return nil }

// cycleLength converts a frequency into a whole number of samples per
// period. Nearest-neighbor rounding makes the effective pitch drift as
// the frequency approaches the sampling rate; that drift is part of the
// oscillator contract, not something the oscillators correct.
func cycleLength(cfg Config, freq float64) (int, error) {
	if freq <= 0 {
		return 0, &InvalidParameterError{Name: "frequency", Value: freq, Reason: "must be > 0"}
	}
	n := int(math.Round(float64(cfg.SampleRate) / freq))
	if n < 1 {
		return 0, &InvalidParameterError{Name: "frequency", Value: freq, Reason: "too high for the sampling rate, period rounds to zero samples"}
	}
	return n, nil
}

// RectangularWave alternates between max and min forever. One cycle spans
// round(sampleRate/freq) samples, of which round(duty*cycle) are max,
// first, and the remainder min. A duty of 0 or 1 degenerates to a
// zero-length phase, which simply emits nothing for that phase.
func RectangularWave(cfg Config, freq, duty, min, max float64) (Stream, error) {
	if duty < 0 || duty > 1 {
		return nil, &InvalidParameterError{Name: "dutyCycle", Value: duty, Reason: "must be in [0, 1]"}
	}
	cycle, err := cycleLength(cfg, freq)
	if err != nil {
		return nil, err
	}
	maxCount := int(math.Round(duty * float64(cycle)))
	return &rectStream{
		cycle:    cycle,
		maxCount: maxCount,
		min:      min,
		max:      max,
	}, nil
}

type rectStream struct {
	cycle    int
	maxCount int
	min, max float64
	pos      int
}

func (s *rectStream) Next() (float64, bool) {
	v := s.min
	if s.pos < s.maxCount {
		v = s.max
	}
	s.pos++
	if s.pos == s.cycle {
		s.pos = 0
	}
	return v, true
}

func (s *rectStream) Finite() bool { return false }
func (s *rectStream) Err() error   { return nil }

// SineWave produces sin(2*pi*i/cycle) forever, cycle =
// round(sampleRate/freq) samples.
func SineWave(cfg Config, freq float64) (Stream, error) {
	cycle, err := cycleLength(cfg, freq)
	if err != nil {
		return nil, err
	}
	return &sineStream{cycle: cycle}, nil
}

type sineStream struct {
	cycle int
	pos   int
}

func (s *sineStream) Next() (float64, bool) {
	v := math.Sin(2 * math.Pi * float64(s.pos) / float64(s.cycle))
	s.pos++
	if s.pos == s.cycle {
		s.pos = 0
	}
	return v, true
}

func (s *sineStream) Finite() bool { return false }
func (s *sineStream) Err() error   { return nil }

// TriangleWave rises 0 to 1 over the first quarter period, falls 1 to -1
// over the next half, and rises -1 back to 0 over the last quarter.
func TriangleWave(cfg Config, freq float64) (Stream, error) {
	cycle, err := cycleLength(cfg, freq)
	if err != nil {
		return nil, err
	}
	return &triangleStream{cycle: cycle}, nil
}

type triangleStream struct {
	cycle int
	pos   int
}

func (s *triangleStream) Next() (float64, bool) {
	x := float64(s.pos) / float64(s.cycle)
	var v float64
	switch {
	case x < 0.25:
		v = 4 * x
	case x < 0.75:
		v = 2 - 4*x
	default:
		v = 4*x - 4
	}
	s.pos++
	if s.pos == s.cycle {
		s.pos = 0
	}
	return v, true
}

func (s *triangleStream) Finite() bool { return false }
func (s *triangleStream) Err() error   { return nil }

// SawtoothWave rises linearly from -1 to 1 over one period, then resets
// instantaneously to -1.
func SawtoothWave(cfg Config, freq float64) (Stream, error) {
	cycle, err := cycleLength(cfg, freq)
	if err != nil {
		return nil, err
	}
	return &sawtoothStream{cycle: cycle}, nil
}

type sawtoothStream struct {
	cycle int
	pos   int
}

func (s *sawtoothStream) Next() (float64, bool) {
	v := -1 + 2*float64(s.pos)/float64(s.cycle)
	s.pos++
	if s.pos == s.cycle {
		s.pos = 0
	}
	return v, true
}

func (s *sawtoothStream) Finite() bool { return false }
func (s *sawtoothStream) Err() error   { return nil }

// LinearChange produces round(duration*sampleRate) samples ramping from
// start towards end. Sample i is start + i*(end-start)/n: the ramp hits
// start exactly and stops one slope step short of end, so back-to-back
// ramps do not repeat their junction value.
func LinearChange(cfg Config, durationSec, start, end float64) (Stream, error) {
	if durationSec <= 0 {
		return nil, &InvalidParameterError{Name: "duration", Value: durationSec, Reason: "must be > 0"}
	}
	n := int(math.Round(durationSec * float64(cfg.SampleRate)))
	return &rampStream{n: n, start: start, slope: (end - start) / float64(n)}, nil
}

type rampStream struct {
	n     int
	start float64
	slope float64
	pos   int
}

func (s *rampStream) Next() (float64, bool) {
	if s.pos >= s.n {
		return 0, false
	}
	v := s.start + float64(s.pos)*s.slope
	s.pos++
	return v, true
}

func (s *rampStream) Finite() bool { return true }
func (s *rampStream) Err() error   { return nil }
