package classifier

import (
	"sort"

	"go-waste-inspector/internal/vocab"
	"go-waste-inspector/pkg/models"
)

// Alternative predictions get a confidence of top × U[0.3, 0.8). Because the
// factor never reaches 1.0 the alternatives sit below the top prediction in
// expectation and, with this range, on every draw.
const (
	rankExtraMin   = 2
	rankExtraSpan  = 3 // extras drawn uniformly from {2, 3, 4}
	rankFactorMin  = 0.3
	rankFactorSpan = 0.5
)

type predictionRanker struct {
	vocabulary *vocab.Vocabulary
	noise      Noise
}

// NewPredictionRanker creates a ranker that expands a single decision into a
// ranked prediction set using alternative labels from the vocabulary.
func NewPredictionRanker(vocabulary *vocab.Vocabulary, noise Noise) PredictionRanker {
	return &predictionRanker{vocabulary: vocabulary, noise: noise}
}

// Rank returns the top prediction plus 2-4 alternatives sampled without
// replacement from the vocabulary (excluding the top label), sorted by
// non-increasing confidence. The first element is always the engine's
// decision.
func (pr *predictionRanker) Rank(top models.Prediction) models.PredictionSet {
	pool := make([]string, 0, pr.vocabulary.Len())
	for _, label := range pr.vocabulary.Labels() {
		if label != top.Label {
			pool = append(pool, label)
		}
	}

	extras := rankExtraMin + pr.noise.Intn(rankExtraSpan)
	if extras > len(pool) {
		extras = len(pool)
	}

	set := make(models.PredictionSet, 0, extras+1)
	set = append(set, top)
	for i := 0; i < extras; i++ {
		// Partial Fisher-Yates: draw without replacement.
		j := i + pr.noise.Intn(len(pool)-i)
		pool[i], pool[j] = pool[j], pool[i]

		factor := rankFactorMin + pr.noise.Float64()*rankFactorSpan
		set = append(set, models.Prediction{
			Label:      pool[i],
			Confidence: clampUnit(top.Confidence * factor),
		})
	}

	sort.SliceStable(set, func(a, b int) bool {
		return set[a].Confidence > set[b].Confidence
	})
	return set
}
