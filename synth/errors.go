package synth

import "fmt"

// MalformedNoteError reports a note token the grammar or the pitch-class
// table rejected.
type MalformedNoteError struct {
	Token  string
	Reason string
}

func (e *MalformedNoteError) Error() string {
	return fmt.Sprintf("malformed note %q: %s", e.Token, e.Reason)
}

// InvalidParameterError reports a constructor argument outside its valid
// domain. Validation is eager: the offending stream is never built.
type InvalidParameterError struct {
	Name   string
	Value  float64
	Reason string
}

func (e *InvalidParameterError) Error() string {
	return fmt.Sprintf("invalid parameter %s=%g: %s", e.Name, e.Value, e.Reason)
}

// StreamExhaustedError reports a transform that asked a finite source for
// more samples than it could supply.
type StreamExhaustedError struct {
	Requested int
	Delivered int
}

func (e *StreamExhaustedError) Error() string {
	return fmt.Sprintf("stream exhausted: requested %d samples, source delivered %d", e.Requested, e.Delivered)
}

// QuantizationError reports a sample that does not fit a signed 16-bit
// value. The generator chain violated the [-1, 1] contract; the renderer
// does not clamp.
type QuantizationError struct {
	Index int
	Value float64
}

func (e *QuantizationError) Error() string {
	return fmt.Sprintf("sample %d out of range: %g does not quantize to int16", e.Index, e.Value)
}

// EncodingError reports a failure while writing quantized frames to the
// output container.
type EncodingError struct {
	Frames int
	Err    error
}

func (e *EncodingError) Error() string {
	return fmt.Sprintf("encoding failed after %d frames: %v", e.Frames, e.Err)
}

func (e *EncodingError) Unwrap() error { return e.Err }
