package synth

import "math"

// TimeLimit truncates s to round(seconds*sampleRate) samples. If s ends
// before delivering that many, the limited stream stops early and Err
// reports a StreamExhaustedError; a short source is a failure, not a
// silent truncation.
func TimeLimit(cfg Config, s Stream, seconds float64) (Stream, error) {
	if seconds <= 0 {
		return nil, &InvalidParameterError{Name: "numSeconds", Value: seconds, Reason: "must be > 0"}
	}
	n := int(math.Round(seconds * float64(cfg.SampleRate)))
	return &limitStream{src: s, n: n}, nil
}

type limitStream struct {
	src Stream
	n   int
	pos int
	err error
}

func (s *limitStream) Next() (float64, bool) {
	if s.err != nil || s.pos >= s.n {
		return 0, false
	}
	v, ok := s.src.Next()
	if !ok {
		if s.err = s.src.Err(); s.err == nil {
			s.err = &StreamExhaustedError{Requested: s.n, Delivered: s.pos}
		}
		return 0, false
	}
	s.pos++
	return v, true
}

func (s *limitStream) Finite() bool { return true }
func (s *limitStream) Err() error   { return s.err }

// Scale multiplies two streams elementwise. The product ends as soon as
// either operand does, so its length is the shorter of the two; scaling
// a tone against an envelope (or a Hold gain) needs no pre-trimming.
func Scale(a, b Stream) Stream {
	return &scaleStream{a: a, b: b}
}

type scaleStream struct {
	a, b Stream
	err  error
}

func (s *scaleStream) Next() (float64, bool) {
	if s.err != nil {
		return 0, false
	}
	va, ok := s.a.Next()
	if !ok {
		s.err = s.a.Err()
		return 0, false
	}
	vb, ok := s.b.Next()
	if !ok {
		s.err = s.b.Err()
		return 0, false
	}
	return va * vb, true
}

func (s *scaleStream) Finite() bool { return s.a.Finite() || s.b.Finite() }

func (s *scaleStream) Err() error { return s.err }

// Concatenate chains streams end to end, fully draining each before
// moving on. An infinite operand anywhere but last means the following
// operands are never reached.
func Concatenate(streams ...Stream) Stream {
	return &concatStream{streams: streams}
}

type concatStream struct {
	streams []Stream
	cur     int
	err     error
}

func (s *concatStream) Next() (float64, bool) {
	for s.err == nil && s.cur < len(s.streams) {
		v, ok := s.streams[s.cur].Next()
		if ok {
			return v, true
		}
		if s.err = s.streams[s.cur].Err(); s.err != nil {
			return 0, false
		}
		s.cur++
	}
	return 0, false
}

func (s *concatStream) Finite() bool {
	for _, src := range s.streams {
		if !src.Finite() {
			return false
		}
	}
	return true
}

func (s *concatStream) Err() error { return s.err }
