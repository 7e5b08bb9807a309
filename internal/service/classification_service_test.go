package service

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"testing"

	"go-waste-inspector/internal/classifier"
	apperrors "go-waste-inspector/internal/errors"
	"go-waste-inspector/internal/repository"
	"go-waste-inspector/internal/vocab"
	"go-waste-inspector/pkg/models"
)

// stubRepository serves a fixed image or error regardless of URL.
type stubRepository struct {
	img      image.Image
	fetchErr error
	urlErr   error
}

func (r stubRepository) FetchImage(ctx context.Context, imageURL string) (image.Image, error) {
	return r.img, r.fetchErr
}

func (r stubRepository) DecodeImage(data []byte) (image.Image, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	return img, err
}

func (r stubRepository) ValidateImageURL(imageURL string) error {
	return r.urlErr
}

var _ repository.ImageRepository = stubRepository{}

// canImage paints a bright gray rectangle on a darker background so the
// heuristic engine resolves it as an aluminum can.
func canImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 100, 100))
	for y := 0; y < 100; y++ {
		for x := 0; x < 100; x++ {
			img.Set(x, y, color.RGBA{140, 140, 140, 255})
		}
	}
	for y := 10; y < 90; y++ {
		for x := 17; x < 83; x++ {
			img.Set(x, y, color.RGBA{240, 240, 240, 255})
		}
	}
	return img
}

func newTestService(repo repository.ImageRepository, vision VisionAnalyzer) WasteClassificationService {
	wc := classifier.NewWasteClassifier(
		vocab.Default(),
		classifier.DefaultOptions().WithNoise(classifier.NewZeroNoise()),
	)
	return NewWasteClassificationService(repo, wc, vision, 0.7)
}

func TestClassifyImageURL(t *testing.T) {
	svc := newTestService(stubRepository{img: canImage()}, nil)

	resp, err := svc.ClassifyImageURL(context.Background(), "https://example.com/can.jpg")
	if err != nil {
		t.Fatalf("ClassifyImageURL failed: %v", err)
	}

	if resp.ImageURL != "https://example.com/can.jpg" {
		t.Errorf("Expected the source URL echoed back, got %q", resp.ImageURL)
	}
	if resp.TopPrediction == nil {
		t.Fatal("Expected a top prediction")
	}
	if resp.TopPrediction.Label != "aluminum_can" {
		t.Errorf("Expected aluminum_can, got %q", resp.TopPrediction.Label)
	}
	if resp.Predictions[0] != *resp.TopPrediction {
		t.Error("Top prediction must lead the prediction list")
	}
	if !resp.Predictions.IsSorted() {
		t.Error("Predictions must be sorted by confidence")
	}
	if resp.LowConfidence {
		t.Error("A 0.88 prediction should not be flagged low-confidence at threshold 0.7")
	}
	if resp.Guidance == nil || resp.Guidance.WasteType != "aluminum_can" {
		t.Errorf("Expected aluminum_can guidance, got %+v", resp.Guidance)
	}
	if resp.ImageFingerprint == "" {
		t.Error("Expected a perceptual fingerprint")
	}
	if resp.Timestamp.IsZero() {
		t.Error("Expected a timestamp")
	}
	if len(resp.Errors) != 0 {
		t.Errorf("Expected no advisory errors, got %v", resp.Errors)
	}
}

func TestClassifyImageURL_InvalidURL(t *testing.T) {
	svc := newTestService(stubRepository{urlErr: repository.ErrInvalidImageURL}, nil)

	_, err := svc.ClassifyImageURL(context.Background(), "ftp://nope")
	if err == nil {
		t.Fatal("Expected a validation error")
	}
	if !apperrors.IsType(err, apperrors.ErrorTypeValidation) {
		t.Errorf("Expected a validation error, got %v", err)
	}
}

func TestClassifyImageURL_FetchFailure(t *testing.T) {
	svc := newTestService(stubRepository{fetchErr: fmt.Errorf("connection refused")}, nil)

	_, err := svc.ClassifyImageURL(context.Background(), "https://example.com/can.jpg")
	if err == nil {
		t.Fatal("Expected a network error")
	}
	if !apperrors.IsType(err, apperrors.ErrorTypeNetwork) {
		t.Errorf("Expected a network error, got %v", err)
	}
}

func TestClassifyImageBytes(t *testing.T) {
	svc := newTestService(stubRepository{}, nil)

	var buf bytes.Buffer
	if err := png.Encode(&buf, canImage()); err != nil {
		t.Fatalf("Failed to encode test image: %v", err)
	}

	resp, err := svc.ClassifyImageBytes(context.Background(), buf.Bytes())
	if err != nil {
		t.Fatalf("ClassifyImageBytes failed: %v", err)
	}
	if resp.TopPrediction == nil || resp.TopPrediction.Label != "aluminum_can" {
		t.Errorf("Expected aluminum_can, got %+v", resp.TopPrediction)
	}
}

func TestClassifyImageBytes_UndecodableIsSoft(t *testing.T) {
	svc := newTestService(stubRepository{}, nil)

	resp, err := svc.ClassifyImageBytes(context.Background(), []byte("garbage bytes"))
	if err != nil {
		t.Fatalf("Undecodable bytes must not be a hard error, got %v", err)
	}
	if len(resp.Predictions) != 0 {
		t.Errorf("Expected an empty prediction set, got %v", resp.Predictions)
	}
	if resp.TopPrediction != nil {
		t.Errorf("Expected no top prediction, got %+v", resp.TopPrediction)
	}
	if len(resp.Errors) == 0 {
		t.Error("Expected an advisory error message")
	}
}

// flakyVision refines or fails on demand.
type flakyVision struct {
	result models.PredictionSet
	err    error
	calls  int
}

func (v *flakyVision) Refine(ctx context.Context, img image.Image, heuristic models.PredictionSet) (models.PredictionSet, error) {
	v.calls++
	return v.result, v.err
}

func TestClassify_VisionRefinesLowConfidence(t *testing.T) {
	vision := &flakyVision{result: models.PredictionSet{{Label: "glass_jar", Confidence: 0.95}}}

	// Uniform image: the fallback path yields 0.60 with zero noise, below
	// the 0.7 threshold, so the vision pass is consulted.
	uniform := image.NewRGBA(image.Rect(0, 0, 64, 64))
	for y := 0; y < 64; y++ {
		for x := 0; x < 64; x++ {
			uniform.Set(x, y, color.RGBA{128, 128, 128, 255})
		}
	}
	svc := newTestService(stubRepository{img: uniform}, vision)

	resp, err := svc.ClassifyImageURL(context.Background(), "https://example.com/blurry.jpg")
	if err != nil {
		t.Fatalf("ClassifyImageURL failed: %v", err)
	}
	if vision.calls != 1 {
		t.Errorf("Expected one vision call, got %d", vision.calls)
	}
	if resp.TopPrediction.Label != "glass_jar" {
		t.Errorf("Expected the refined label, got %q", resp.TopPrediction.Label)
	}
	if resp.LowConfidence {
		t.Error("Refined 0.95 should clear the threshold")
	}
	if resp.Guidance.WasteType != "glass_jar" {
		t.Errorf("Guidance must follow the refined label, got %q", resp.Guidance.WasteType)
	}
}

func TestClassify_VisionFailureKeepsHeuristic(t *testing.T) {
	vision := &flakyVision{err: fmt.Errorf("upstream quota exceeded")}

	uniform := image.NewRGBA(image.Rect(0, 0, 64, 64))
	for y := 0; y < 64; y++ {
		for x := 0; x < 64; x++ {
			uniform.Set(x, y, color.RGBA{128, 128, 128, 255})
		}
	}
	svc := newTestService(stubRepository{img: uniform}, vision)

	resp, err := svc.ClassifyImageURL(context.Background(), "https://example.com/blurry.jpg")
	if err != nil {
		t.Fatalf("ClassifyImageURL failed: %v", err)
	}
	if resp.TopPrediction == nil {
		t.Fatal("Expected the heuristic result to survive a vision failure")
	}
	if !resp.LowConfidence {
		t.Error("Expected the low-confidence flag to remain set")
	}
}

func TestClassify_HighConfidenceSkipsVision(t *testing.T) {
	vision := &flakyVision{result: models.PredictionSet{{Label: "textile", Confidence: 0.99}}}
	svc := newTestService(stubRepository{img: canImage()}, vision)

	resp, err := svc.ClassifyImageURL(context.Background(), "https://example.com/can.jpg")
	if err != nil {
		t.Fatalf("ClassifyImageURL failed: %v", err)
	}
	if vision.calls != 0 {
		t.Errorf("Vision must not run for confident results, got %d calls", vision.calls)
	}
	if resp.TopPrediction.Label != "aluminum_can" {
		t.Errorf("Expected the heuristic label, got %q", resp.TopPrediction.Label)
	}
}
