package synth

import (
	"math"

	"github.com/cwbudde/algo-synth/dsp"
)

// Lowpass runs s through a biquad lowpass filter. The output has the
// same length and boundedness as s. The cutoff must sit below the
// Nyquist frequency and q must be positive.
func Lowpass(cfg Config, s Stream, cutoffHz, q float64) (Stream, error) {
	nyquist := float64(cfg.SampleRate) / 2
	if cutoffHz <= 0 || cutoffHz >= nyquist {
		return nil, &InvalidParameterError{Name: "cutoff", Value: cutoffHz, Reason: "must be in (0, sampleRate/2)"}
	}
	if q <= 0 {
		return nil, &InvalidParameterError{Name: "q", Value: q, Reason: "must be > 0"}
	}
	return &filterStream{src: s, biquad: dsp.NewLowpass(cutoffHz, float64(cfg.SampleRate), q)}, nil
}

type filterStream struct {
	src    Stream
	biquad *dsp.Biquad
}

func (s *filterStream) Next() (float64, bool) {
	v, ok := s.src.Next()
	if !ok {
		return 0, false
	}
	return s.biquad.Process(v), true
}

func (s *filterStream) Finite() bool { return s.src.Finite() }
func (s *filterStream) Err() error   { return s.src.Err() }

// Echo mixes s with a delayed, fed-back copy of itself. The echo ends
// with its source; append trailing silence with Concatenate before the
// Echo when the tail should ring out. feedback must stay below 1 to keep
// the loop stable, mix blends dry against wet in [0, 1].
func Echo(cfg Config, s Stream, delaySec, feedback, mix float64) (Stream, error) {
	if delaySec <= 0 {
		return nil, &InvalidParameterError{Name: "delay", Value: delaySec, Reason: "must be > 0"}
	}
	if feedback < 0 || feedback >= 1 {
		return nil, &InvalidParameterError{Name: "feedback", Value: feedback, Reason: "must be in [0, 1)"}
	}
	if mix < 0 || mix > 1 {
		return nil, &InvalidParameterError{Name: "mix", Value: mix, Reason: "must be in [0, 1]"}
	}
	delaySamples := delaySec * float64(cfg.SampleRate)
	size := int(math.Ceil(delaySamples)) + 2
	return &echoStream{
		src:      s,
		line:     dsp.NewDelayLine(size),
		delay:    delaySamples,
		feedback: feedback,
		mix:      mix,
	}, nil
}

type echoStream struct {
	src      Stream
	line     *dsp.DelayLine
	delay    float64
	feedback float64
	mix      float64
}

func (s *echoStream) Next() (float64, bool) {
	v, ok := s.src.Next()
	if !ok {
		return 0, false
	}
	wet := s.line.ReadFractional(s.delay)
	s.line.Write(v + s.feedback*wet)
	return (1-s.mix)*v + s.mix*wet, true
}

func (s *echoStream) Finite() bool { return s.src.Finite() }
func (s *echoStream) Err() error   { return s.src.Err() }
