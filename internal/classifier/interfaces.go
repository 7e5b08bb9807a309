package classifier

import (
	"image"

	"go-waste-inspector/pkg/models"
)

// WasteClassifier is the main entry point of the heuristic classification
// engine. Implementations are stateless apart from the immutable vocabulary
// and safe for concurrent use.
type WasteClassifier interface {
	// Classify derives a ranked prediction set from a decoded image.
	Classify(img image.Image) (models.PredictionSet, error)

	// ClassifyFile decodes the image at path and classifies it. Decode
	// failures are soft: the error is a decode AppError and the returned
	// set is empty.
	ClassifyFile(path string) (models.PredictionSet, error)
}

// FeatureExtractor computes the scalar summary statistics the decision
// rules operate on.
type FeatureExtractor interface {
	Extract(img image.Image, gray *image.Gray) (FeatureVector, error)
}

// SurfaceAnalyzer estimates how metallic the dominant surface looks.
// It is deterministic and never fails; degenerate input yields 0.0.
type SurfaceAnalyzer interface {
	MetallicScore(img image.Image, gray *image.Gray, brightnessStd float64) float64
}

// DecisionEngine picks one prediction from a feature vector by evaluating an
// ordered rule cascade. It never fails; the returned tag names the rule that
// fired, which keeps overlapping threshold conditions auditable.
type DecisionEngine interface {
	Decide(fv FeatureVector) (models.Prediction, string)
}

// PredictionRanker expands a single decision into a ranked prediction set:
// the top prediction plus a few synthetic alternatives at reduced confidence.
type PredictionRanker interface {
	Rank(top models.Prediction) models.PredictionSet
}
