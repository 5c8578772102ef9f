package triage

import (
	"errors"
	"math"
	"sort"
)

// ErrZeroVector is returned when a similarity computation involves a
// zero-magnitude vector, for which cosine similarity is undefined.
var ErrZeroVector = errors.New("zero-magnitude vector")

// ErrDimensionMismatch is returned when two vectors differ in length.
var ErrDimensionMismatch = errors.New("vector dimensions do not match")

// Candidate is an embeddable item submitted for ranking.
type Candidate struct {
	ID      string
	Vector  []float64
	Content string
}

// RankedItem is a candidate scored against a query vector.
type RankedItem struct {
	ID         string
	Content    string
	Similarity float64
}

// CosineSimilarity computes dot(a,b) / (|a|*|b|). It errors instead of
// producing NaN when either vector has zero magnitude.
func CosineSimilarity(a, b []float64) (float64, error) {
	if len(a) != len(b) {
		return 0, ErrDimensionMismatch
	}

	var dot, magA, magB float64
	for i := range a {
		dot += a[i] * b[i]
		magA += a[i] * a[i]
		magB += b[i] * b[i]
	}
	if magA == 0 || magB == 0 {
		return 0, ErrZeroVector
	}
	return dot / (math.Sqrt(magA) * math.Sqrt(magB)), nil
}

// RankBySimilarity scores every candidate against the query vector and
// returns the topK best matches, highest similarity first. Ties keep the
// candidate input order. The candidate slice is never mutated.
func RankBySimilarity(query []float64, candidates []Candidate, topK int) ([]RankedItem, error) {
	ranked := make([]RankedItem, 0, len(candidates))
	for _, candidate := range candidates {
		similarity, err := CosineSimilarity(query, candidate.Vector)
		if err != nil {
			return nil, err
		}
		ranked = append(ranked, RankedItem{
			ID:         candidate.ID,
			Content:    candidate.Content,
			Similarity: similarity,
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Similarity > ranked[j].Similarity
	})

	if topK < 0 {
		topK = 0
	}
	if len(ranked) > topK {
		ranked = ranked[:topK]
	}
	return ranked, nil
}
