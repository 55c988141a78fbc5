package agent

import (
	"connect4/searcher"
	"math"

	"golang.org/x/exp/rand"
)

// sample draws a column with probability proportional to visits^(1/temperature).
func sample(policy []searcher.Visit, temperature float64, rng *rand.Rand) (int, bool) {
	if len(policy) == 0 || temperature <= 0 {
		return 0, false
	}

	// Compute temperature-adjusted move probabilities
	exponent := 1.0 / temperature
	weights := make([]float64, len(policy))
	sum := 0.0
	for i, v := range policy {
		weights[i] = math.Pow(float64(v.Visits), exponent)
		sum += weights[i]
	}
	if sum == 0 || math.IsInf(sum, 0) || math.IsNaN(sum) {
		return 0, false
	}

	sampled := rng.Float64() * sum
	cumulative := 0.0
	for i, w := range weights {
		cumulative += w
		if sampled < cumulative {
			return policy[i].Column, true
		}
	}
	return policy[len(policy)-1].Column, true // Fallback in case of rounding errors
}
