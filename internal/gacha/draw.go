package gacha

import "errors"

var ErrInvalidProb = errors.New("invalid probability: must be within [0, 1]")

// Hit is a single Bernoulli trial that succeeds with probability p.
// p == 0 never hits and p == 1 always does, without consuming randomness.
func Hit(p float64, rng RandomSource) (bool, error) {
	if err := validateProb(p); err != nil {
		return false, err
	}
	switch p {
	case 0:
		return false, nil
	case 1:
		return true, nil
	}
	if rng == nil {
		rng = DefaultRNG()
	}
	return rng.Float64() < p, nil
}
