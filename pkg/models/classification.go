package models

import "time"

// Prediction is a single classification outcome: a material label from the
// engine vocabulary and a confidence in [0,1].
type Prediction struct {
	Label      string  `json:"label"`
	Confidence float64 `json:"confidence"`
}

// PredictionSet is an ordered sequence of predictions, non-increasing by
// confidence. The first element is the top prediction.
type PredictionSet []Prediction

// Top returns the highest-confidence prediction, or false if the set is empty.
func (ps PredictionSet) Top() (Prediction, bool) {
	if len(ps) == 0 {
		return Prediction{}, false
	}
	return ps[0], true
}

// IsSorted reports whether the set is ordered by non-increasing confidence.
func (ps PredictionSet) IsSorted() bool {
	for i := 1; i < len(ps); i++ {
		if ps[i].Confidence > ps[i-1].Confidence {
			return false
		}
	}
	return true
}

// Guidance describes how to dispose of a classified item.
type Guidance struct {
	WasteType   string   `json:"waste_type"`
	Recyclable  bool     `json:"recyclable"`
	Bin         string   `json:"bin"`
	Preparation []string `json:"preparation,omitempty"`
	Notes       string   `json:"notes,omitempty"`
}

// ClassificationResponse is the service-level result of classifying one image.
type ClassificationResponse struct {
	ImageURL          string        `json:"image_url,omitempty"`
	ImageFingerprint  string        `json:"image_fingerprint,omitempty"`
	Timestamp         time.Time     `json:"timestamp"`
	ProcessingTimeSec float64       `json:"processing_time_sec"`
	TopPrediction     *Prediction   `json:"top_prediction,omitempty"`
	Predictions       PredictionSet `json:"predictions"`
	Guidance          *Guidance     `json:"guidance,omitempty"`

	// LowConfidence is set when the top confidence falls below the configured
	// threshold; callers typically ask the user for a clearer photo.
	LowConfidence bool `json:"low_confidence,omitempty"`

	// Errors carries advisory messages for soft failures (e.g. undecodable
	// image). A response with Errors set still has valid JSON shape.
	Errors []string `json:"errors,omitempty"`
}
