package synth

import (
	"math"
	"os"

	"github.com/cwbudde/wav"
	"github.com/go-audio/audio"
)

// Quantize maps a [-1, 1] sample onto a signed 16-bit value as
// round(32767*v). Out-of-range results mean the generator chain broke
// its amplitude contract; nothing is clamped.
func Quantize(v float64) (int, bool) {
	q := math.Round(32767 * v)
	if !(q >= math.MinInt16 && q <= math.MaxInt16) {
		return 0, false
	}
	return int(q), true
}

// RenderBuffer pulls s to completion and quantizes every sample into a
// mono PCM buffer. The stream must be finite; exhaustion or quantization
// failures abort with the offending sample identified.
func RenderBuffer(cfg Config, s Stream) (*audio.IntBuffer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if !s.Finite() {
		return nil, &InvalidParameterError{Name: "stream", Reason: "unbounded stream, truncate with TimeLimit before rendering"}
	}
	var data []int
	for {
		v, ok := s.Next()
		if !ok {
			break
		}
		q, ok := Quantize(v)
		if !ok {
			return nil, &QuantizationError{Index: len(data), Value: v}
		}
		data = append(data, q)
	}
	if err := s.Err(); err != nil {
		return nil, err
	}
	return &audio.IntBuffer{
		Format: &audio.Format{
			SampleRate:  cfg.SampleRate,
			NumChannels: cfg.NumChannels,
		},
		Data:           data,
		SourceBitDepth: cfg.BitDepth,
	}, nil
}

// Render pulls s to completion and writes it as a 16-bit little-endian
// PCM WAV file at path. The stream is consumed and quantized before the
// file is created, so a failing chain never leaves an output file; a
// failure while encoding removes the partial file instead of finalizing
// its header.
func Render(cfg Config, s Stream, path string) error {
	buf, err := RenderBuffer(cfg, s)
	if err != nil {
		return err
	}
	return WriteBuffer(cfg, buf, path)
}

// WriteBuffer encodes an already-quantized buffer as a WAV file at path.
func WriteBuffer(cfg Config, buf *audio.IntBuffer, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return &EncodingError{Frames: 0, Err: err}
	}
	enc := wav.NewEncoder(f, cfg.SampleRate, cfg.BitDepth, cfg.NumChannels, 1)
	if err := enc.Write(buf.AsFloat32Buffer()); err != nil {
		f.Close()
		os.Remove(path)
		return &EncodingError{Frames: len(buf.Data), Err: err}
	}
	if err := enc.Close(); err != nil {
		f.Close()
		os.Remove(path)
		return &EncodingError{Frames: len(buf.Data), Err: err}
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return &EncodingError{Frames: len(buf.Data), Err: err}
	}
	return nil
}
