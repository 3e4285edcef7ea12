package cmdmend

import "math"

// CosineSimilarity returns the cosine similarity of two vectors.
// Returns 0 for mismatched dimensions or zero-magnitude vectors, so a
// corrupt cached vector ranks last rather than failing retrieval.
func CosineSimilarity(a, b []float32) float32 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, na, nb float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		na += float64(a[i]) * float64(a[i])
		nb += float64(b[i]) * float64(b[i])
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return float32(dot / (math.Sqrt(na) * math.Sqrt(nb)))
}
