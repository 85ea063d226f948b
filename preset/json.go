package preset

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/cwbudde/algo-synth/synth"
)

// File is the JSON schema for patch files. All fields are optional;
// absent fields keep their defaults.
type File struct {
	Waveform     string   `json:"waveform"`
	DutyCycle    *float64 `json:"duty_cycle"`
	Gain         *float64 `json:"gain"`
	AttackFrac   *float64 `json:"attack_frac"`
	DecayFrac    *float64 `json:"decay_frac"`
	ReleaseFrac  *float64 `json:"release_frac"`
	SustainLevel *float64 `json:"sustain_level"`
	TempoQPM     *float64 `json:"tempo_qpm"`
	Score        string   `json:"score"`
}

// Settings is a fully resolved patch file: voice, render configuration,
// and the optional score embedded in the file.
type Settings struct {
	Patch  synth.Patch
	Config synth.Config
	Notes  []synth.Note
}

// LoadJSON loads a patch JSON file and applies it on top of the default
// patch and render configuration.
func LoadJSON(path string) (*Settings, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var f File
	if err := json.Unmarshal(b, &f); err != nil {
		return nil, err
	}

	s := &Settings{
		Patch:  synth.DefaultPatch(),
		Config: synth.DefaultConfig(),
	}
	if err := ApplyFile(s, &f); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// ApplyFile applies a parsed patch file onto existing settings.
func ApplyFile(dst *Settings, f *File) error {
	if dst == nil {
		return fmt.Errorf("nil destination settings")
	}
	if f == nil {
		return nil
	}

	if f.Waveform != "" {
		w, err := synth.ParseWaveform(f.Waveform)
		if err != nil {
			return err
		}
		dst.Patch.Waveform = w
	}
	if f.DutyCycle != nil {
		dst.Patch.DutyCycle = *f.DutyCycle
	}
	if f.Gain != nil {
		dst.Patch.Gain = *f.Gain
	}
	if f.AttackFrac != nil {
		dst.Patch.AttackFrac = *f.AttackFrac
	}
	if f.DecayFrac != nil {
		dst.Patch.DecayFrac = *f.DecayFrac
	}
	if f.ReleaseFrac != nil {
		dst.Patch.ReleaseFrac = *f.ReleaseFrac
	}
	if f.SustainLevel != nil {
		dst.Patch.SustainLevel = *f.SustainLevel
	}
	if f.TempoQPM != nil {
		dst.Config.TempoQPM = *f.TempoQPM
	}
	if err := dst.Patch.Validate(); err != nil {
		return err
	}
	if err := dst.Config.Validate(); err != nil {
		return err
	}
	if f.Score != "" {
		notes, err := synth.ParseScore(f.Score)
		if err != nil {
			return err
		}
		dst.Notes = notes
	}
	return nil
}

// SaveJSON writes settings back out as a patch file, e.g. after fitting.
func SaveJSON(path string, s *Settings) error {
	if s == nil {
		return fmt.Errorf("nil settings")
	}
	f := File{
		Waveform:     s.Patch.Waveform.String(),
		DutyCycle:    &s.Patch.DutyCycle,
		Gain:         &s.Patch.Gain,
		AttackFrac:   &s.Patch.AttackFrac,
		DecayFrac:    &s.Patch.DecayFrac,
		ReleaseFrac:  &s.Patch.ReleaseFrac,
		SustainLevel: &s.Patch.SustainLevel,
		TempoQPM:     &s.Config.TempoQPM,
	}
	b, err := json.MarshalIndent(&f, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(b, '\n'), 0o644)
}
