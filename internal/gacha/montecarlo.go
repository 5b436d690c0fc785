package gacha

import (
	"math"
	"sort"
)

// Stats summarizes simulation results.
type Stats struct {
	Mean   float64 `json:"mean"`
	Var    float64 `json:"var"`
	StdDev float64 `json:"stddev"`
	P50    float64 `json:"p50"`
	P90    float64 `json:"p90"`
	P99    float64 `json:"p99"`
	// Optional: raw samples if caller needs histograms/exports
	Samples []int `json:"-"`
}

// Trial runs one simulated trial and returns the metric it measures.
type Trial func() (int, error)

// RunMonteCarlo repeats trial and returns summary stats.
func RunMonteCarlo(trials int, trial Trial) (Stats, error) {
	if trials <= 0 {
		return Stats{}, nil
	}
	samples := make([]int, trials)
	for i := 0; i < trials; i++ {
		v, err := trial()
		if err != nil {
			return Stats{}, err
		}
		samples[i] = v
	}
	return CalcStats(samples), nil
}

// Frequencies draws n times from weights and counts each outcome.
func Frequencies[K comparable](order []K, weights map[K]float64, n int, rng RandomSource) (map[K]int, error) {
	out := make(map[K]int, len(order))
	for i := 0; i < n; i++ {
		k, err := WeightedDraw(order, weights, rng)
		if err != nil {
			return nil, err
		}
		out[k]++
	}
	return out, nil
}

// CalcStats computes mean/variance/percentiles for integer samples.
func CalcStats(xs []int) Stats {
	n := len(xs)
	if n == 0 {
		return Stats{}
	}
	// mean
	var sum float64
	for _, v := range xs {
		sum += float64(v)
	}
	mean := sum / float64(n)

	// variance (population)
	var acc float64
	for _, v := range xs {
		d := float64(v) - mean
		acc += d * d
	}
	variance := acc / float64(n)

	// percentiles
	cp := append([]int(nil), xs...)
	sort.Ints(cp)
	percentile := func(p float64) float64 {
		if n == 1 || p <= 0 {
			return float64(cp[0])
		}
		if p >= 1 {
			return float64(cp[n-1])
		}
		pos := p * float64(n-1)
		i := int(math.Floor(pos))
		f := pos - float64(i)
		if i+1 >= n {
			return float64(cp[i])
		}
		return float64(cp[i])*(1-f) + float64(cp[i+1])*f
	}

	return Stats{
		Mean:    mean,
		Var:     variance,
		StdDev:  math.Sqrt(variance),
		P50:     percentile(0.50),
		P90:     percentile(0.90),
		P99:     percentile(0.99),
		Samples: xs,
	}
}
