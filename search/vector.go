package search

import "math"

// Cosine computes the cosine similarity between two vectors: dot product
// over the product of their norms. When either norm is zero the denominator
// is treated as 1, yielding 0 instead of dividing by zero. Vectors of
// different lengths score 0.
func Cosine(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	var dot, na, nb float64
	for i := range a {
		x := float64(a[i])
		y := float64(b[i])
		dot += x * y
		na += x * x
		nb += y * y
	}

	den := math.Sqrt(na) * math.Sqrt(nb)
	if den == 0 {
		den = 1
	}
	return dot / den
}
