package knowledge

import "math"

// CosineSimilarity returns the cosine of the angle between two sparse
// vectors. The dot product runs over shared terms; each norm runs over the
// vector's own terms. Returns 0 when either vector has zero norm.
//
// All index weights are non-negative, so results fall in [0, 1].
func CosineSimilarity(a, b map[string]float64) float64 {
	var dot, normA, normB float64

	for term, wa := range a {
		if wb, ok := b[term]; ok {
			dot += wa * wb
		}
		normA += wa * wa
	}
	for _, wb := range b {
		normB += wb * wb
	}

	if normA == 0 || normB == 0 {
		return 0.0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
