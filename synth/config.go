package synth

import "fmt"

// Config holds the process-wide render constants. A Config is built once,
// validated, and passed explicitly to stream constructors and the
// renderer; it never changes mid-render.
type Config struct {
	SampleRate  int
	NumChannels int
	BitDepth    int
	TempoQPM    float64 // quarter notes per minute
}

// DefaultConfig returns the standard mono CD-rate configuration.
func DefaultConfig() Config {
	return Config{
		SampleRate:  44100,
		NumChannels: 1,
		BitDepth:    16,
		TempoQPM:    120,
	}
}

func (c Config) Validate() error {
	if c.SampleRate < 1 {
		return fmt.Errorf("sample rate must be >= 1, got %d", c.SampleRate)
	}
	if c.NumChannels != 1 {
		return fmt.Errorf("only mono output is supported, got %d channels", c.NumChannels)
	}
	if c.BitDepth != 16 {
		return fmt.Errorf("only 16-bit output is supported, got %d", c.BitDepth)
	}
	if c.TempoQPM <= 0 {
		return fmt.Errorf("tempo must be > 0, got %g", c.TempoQPM)
	}
	return nil
}
