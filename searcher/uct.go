package searcher

import "math"

// ucb1 scores a child for selection. Unvisited children come first, and a
// parent without visits contributes no exploration term.
func ucb1(wins float64, visits, parentVisits int, c float64) float64 {
	if visits == 0 {
		return math.Inf(1)
	}
	logN := 0.0
	if parentVisits > 0 {
		logN = math.Log(float64(parentVisits))
	}
	n := float64(visits)
	return wins/n + c*math.Sqrt(logN/n)
}
