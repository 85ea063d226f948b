package synth

// LinearADSR builds a four-phase amplitude envelope: a linear attack from
// 0 to 1, a linear decay to sustainLevel, a flat sustain, and a linear
// release back to 0. The result is finite; multiply it against a tone
// with Scale to shape the tone's amplitude.
func LinearADSR(cfg Config, attackSec, decaySec, sustainSec, releaseSec, sustainLevel float64) (Stream, error) {
	if sustainLevel < 0 || sustainLevel > 1 {
		return nil, &InvalidParameterError{Name: "sustainLevel", Value: sustainLevel, Reason: "must be in [0, 1]"}
	}
	attack, err := LinearChange(cfg, attackSec, 0, 1)
	if err != nil {
		return nil, err
	}
	decay, err := LinearChange(cfg, decaySec, 1, sustainLevel)
	if err != nil {
		return nil, err
	}
	sustain, err := TimeLimit(cfg, Hold(sustainLevel), sustainSec)
	if err != nil {
		return nil, err
	}
	release, err := LinearChange(cfg, releaseSec, sustainLevel, 0)
	if err != nil {
		return nil, err
	}
	return Concatenate(attack, decay, sustain, release), nil
}
