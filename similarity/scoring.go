package similarity

import "math"

// Scorer ranks a Match the way a positional-term-frequency scorer would
// rank an ordinary term occurrence, using Frequency in place of term
// frequency and FilterBoost as an additional multiplicative weight.
type Scorer interface {
	Score(m Match, docLen int, idf float64) float64
}

// IDF computes the inverse document frequency component shared by both
// scorers below.
func IDF(docCount, docFreq int64) float64 {
	if docFreq <= 0 {
		return 0
	}
	return math.Log(1 + (float64(docCount)-float64(docFreq)+0.5)/(float64(docFreq)+0.5))
}

// TFIDFScorer is the classic sqrt(tf)*idf*boost ranker, reshaped around
// a Match instead of a positional docs-and-positions enumerator.
type TFIDFScorer struct{}

func (TFIDFScorer) Score(m Match, _ int, idf float64) float64 {
	return math.Sqrt(float64(m.Frequency)) * idf * m.FilterBoost
}

// BM25Scorer is Okapi BM25.
type BM25Scorer struct {
	K1        float64
	B         float64
	AvgDocLen float64
}

// DefaultBM25 returns a BM25Scorer with the conventional K1=1.2, B=0.75
// defaults.
func DefaultBM25(avgDocLen float64) BM25Scorer {
	return BM25Scorer{K1: 1.2, B: 0.75, AvgDocLen: avgDocLen}
}

func (s BM25Scorer) Score(m Match, docLen int, idf float64) float64 {
	tf := float64(m.Frequency)
	norm := 1 - s.B + s.B*(float64(docLen)/s.AvgDocLen)
	return idf * (tf * (s.K1 + 1)) / (tf + s.K1*norm) * m.FilterBoost
}

// Explanation is a human-readable score breakdown, useful for
// debugging a ranking regression.
type Explanation struct {
	Description string
	Value       float64
	Details     []Explanation
}

// Explain produces a breakdown of a BM25Scorer's Score computation.
func (s BM25Scorer) Explain(m Match, docLen int, idf float64) Explanation {
	score := s.Score(m, docLen, idf)
	return Explanation{
		Description: "bm25, computed from:",
		Value:       score,
		Details: []Explanation{
			{Description: "idf", Value: idf},
			{Description: "frequency (disjoint LOS realizations)", Value: float64(m.Frequency)},
			{Description: "filter_boost (len(LOS)/n)", Value: m.FilterBoost},
			{Description: "docLen", Value: float64(docLen)},
		},
	}
}
