package gacha

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidWeight = errors.New("invalid weight; must be finite and >= 0")
	ErrNoWeight      = errors.New("weights must sum to more than zero")
	ErrEmptyPool     = errors.New("cannot sample from an empty pool")
)

// WeightedDraw picks one key with probability weights[k] / sum(weights).
//
// A value r is drawn uniformly in [0, total) and weights are accumulated in
// the given order; the first key whose cumulative weight meets or exceeds r
// wins. Keys with zero weight are skipped, so they can never be returned.
// Keys missing from order are ignored.
//
// If floating point rounding leaves r above the final cumulative weight the
// last positive-weight key is returned.
func WeightedDraw[K comparable](order []K, weights map[K]float64, rng RandomSource) (K, error) {
	var zero K
	total := 0.0
	var last K
	found := false
	for _, k := range order {
		w := weights[k]
		if err := validateWeight(w); err != nil {
			return zero, fmt.Errorf("%w: %v=%v", err, k, w)
		}
		if w > 0 {
			total += w
			last = k
			found = true
		}
	}
	if !found || total <= 0 {
		return zero, ErrNoWeight
	}
	if rng == nil {
		rng = DefaultRNG()
	}

	r := rng.Float64() * total
	acc := 0.0
	for _, k := range order {
		w := weights[k]
		if w <= 0 {
			continue
		}
		acc += w
		if r <= acc {
			return k, nil
		}
	}
	return last, nil
}

// Sample returns one element of pool, each with probability 1/len(pool).
func Sample[T any](pool []T, rng RandomSource) (T, error) {
	var zero T
	if len(pool) == 0 {
		return zero, ErrEmptyPool
	}
	if rng == nil {
		rng = DefaultRNG()
	}
	return pool[rng.IntN(len(pool))], nil
}
