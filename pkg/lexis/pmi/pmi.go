package pmi

import "math"

// Calculator handles PMI (Pointwise Mutual Information) calculations over
// token sequences.
type Calculator struct {
	epsilon float64 // smoothing constant
}

// NewCalculator creates a new PMI calculator with the given epsilon
func NewCalculator(epsilon float64) *Calculator {
	if epsilon <= 0 {
		epsilon = 1.0
	}
	return &Calculator{epsilon: epsilon}
}

// Score calculates the pointwise mutual information of an adjacent bigram
//
//	PMI(a,b) = log2(P(a,b) / (P(a) * P(b)))
//
// Where:
//   - P(a,b) = nAB / windows (bigram occurrences over bigram windows)
//   - P(a), P(b) = nA / tokens, nB / tokens (unigram occurrences)
//
// Counts are smoothed by ε so rare events don't blow up the score.
func (c *Calculator) Score(nAB, nA, nB, tokens int64) float64 {
	if tokens < 2 {
		return 0
	}
	windows := tokens - 1

	pAB := (float64(nAB) + c.epsilon) / (float64(windows) + c.epsilon)
	pA := (float64(nA) + c.epsilon) / (float64(tokens) + c.epsilon)
	pB := (float64(nB) + c.epsilon) / (float64(tokens) + c.epsilon)

	denominator := pA * pB
	if denominator == 0 {
		return 0
	}
	return math.Log2(pAB / denominator)
}

// Normalized calculates NPMI (range: -1 to 1).
// NPMI(a,b) = PMI(a,b) / -log2(P(a,b))
func (c *Calculator) Normalized(nAB, nA, nB, tokens int64) float64 {
	if tokens < 2 || nAB == 0 {
		return 0
	}

	score := c.Score(nAB, nA, nB, tokens)
	pAB := (float64(nAB) + c.epsilon) / (float64(tokens-1) + c.epsilon)
	logPAB := math.Log2(pAB)

	if logPAB == 0 {
		return 0
	}
	return score / -logPAB
}
