package service

import (
	"context"
	"image"
	"time"

	"github.com/corona10/goimagehash"
	"github.com/sirupsen/logrus"

	"go-waste-inspector/internal/classifier"
	apperrors "go-waste-inspector/internal/errors"
	"go-waste-inspector/internal/guidelines"
	"go-waste-inspector/internal/logger"
	"go-waste-inspector/internal/repository"
	"go-waste-inspector/pkg/models"
)

// WasteClassificationService is the application-level facade: it sources the
// image, runs the heuristic engine, and attaches disposal guidance.
type WasteClassificationService interface {
	ClassifyImageURL(ctx context.Context, imageURL string) (*models.ClassificationResponse, error)
	ClassifyImageBytes(ctx context.Context, data []byte) (*models.ClassificationResponse, error)
	ValidateImageURL(imageURL string) error
}

// VisionAnalyzer is an optional external collaborator that can refine
// low-confidence heuristic results with a large-vision-model pass. The
// default container wires none.
type VisionAnalyzer interface {
	Refine(ctx context.Context, img image.Image, heuristic models.PredictionSet) (models.PredictionSet, error)
}

type classificationService struct {
	imageRepo           repository.ImageRepository
	classifier          classifier.WasteClassifier
	vision              VisionAnalyzer
	confidenceThreshold float64
}

// NewWasteClassificationService creates the service. vision may be nil.
func NewWasteClassificationService(
	imageRepo repository.ImageRepository,
	wasteClassifier classifier.WasteClassifier,
	vision VisionAnalyzer,
	confidenceThreshold float64,
) WasteClassificationService {
	return &classificationService{
		imageRepo:           imageRepo,
		classifier:          wasteClassifier,
		vision:              vision,
		confidenceThreshold: confidenceThreshold,
	}
}

// ClassifyImageURL fetches the image at imageURL and classifies it. URL and
// network problems are hard errors; an undecodable payload is soft.
func (s *classificationService) ClassifyImageURL(ctx context.Context, imageURL string) (*models.ClassificationResponse, error) {
	if err := s.ValidateImageURL(imageURL); err != nil {
		return nil, apperrors.NewValidationError("invalid image URL", err)
	}

	img, err := s.imageRepo.FetchImage(ctx, imageURL)
	if err != nil {
		if ctx.Err() != nil {
			return nil, apperrors.NewTimeoutError("image fetch timed out", err)
		}
		return nil, apperrors.NewNetworkError("failed to fetch image", err)
	}

	resp := s.classify(ctx, img)
	resp.ImageURL = imageURL
	return resp, nil
}

// ClassifyImageBytes classifies an uploaded image. Undecodable bytes yield a
// soft response with an advisory message and an empty prediction set.
func (s *classificationService) ClassifyImageBytes(ctx context.Context, data []byte) (*models.ClassificationResponse, error) {
	img, err := s.imageRepo.DecodeImage(data)
	if err != nil {
		logger.WithComponent("service").WithError(err).Warn("Uploaded image could not be decoded")
		return softFailure("could not decode the uploaded image; please retake the photo"), nil
	}
	return s.classify(ctx, img), nil
}

// ValidateImageURL validates the image URL.
func (s *classificationService) ValidateImageURL(imageURL string) error {
	return s.imageRepo.ValidateImageURL(imageURL)
}

// classify runs the engine over a decoded image and assembles the response.
// It never returns a hard error: decode-level failures degrade to a soft
// response so the HTTP layer always has a valid body to send.
func (s *classificationService) classify(ctx context.Context, img image.Image) *models.ClassificationResponse {
	start := time.Now()

	set, err := s.classifier.Classify(img)
	if err != nil {
		logger.WithComponent("service").WithError(err).Warn("Classification failed soft")
		resp := softFailure("image could not be analyzed; please retake the photo")
		resp.ProcessingTimeSec = time.Since(start).Seconds()
		return resp
	}

	top, _ := set.Top()
	lowConfidence := top.Confidence < s.confidenceThreshold

	if s.vision != nil && lowConfidence {
		if refined, verr := s.vision.Refine(ctx, img, set); verr == nil && len(refined) > 0 {
			set = refined
			top, _ = set.Top()
			lowConfidence = top.Confidence < s.confidenceThreshold
		} else if verr != nil {
			// Graceful degradation: keep the heuristic result.
			logger.WithComponent("service").WithError(verr).Debug("Vision refinement unavailable")
		}
	}

	guidance := guidelines.Lookup(top.Label)
	resp := &models.ClassificationResponse{
		ImageFingerprint:  fingerprint(img),
		Timestamp:         time.Now().UTC(),
		ProcessingTimeSec: time.Since(start).Seconds(),
		TopPrediction:     &top,
		Predictions:       set,
		Guidance:          &guidance,
		LowConfidence:     lowConfidence,
	}

	logger.WithComponent("service").WithFields(logrus.Fields{
		"label":          top.Label,
		"confidence":     top.Confidence,
		"alternatives":   len(set) - 1,
		"low_confidence": lowConfidence,
	}).Info("Waste item classified")

	return resp
}

// fingerprint computes a perceptual hash of the image so upstream callers can
// deduplicate repeated scans of the same item. Hash failures are silent; the
// field is advisory.
func fingerprint(img image.Image) string {
	hash, err := goimagehash.DifferenceHash(img)
	if err != nil {
		return ""
	}
	return hash.ToString()
}

func softFailure(message string) *models.ClassificationResponse {
	return &models.ClassificationResponse{
		Timestamp:   time.Now().UTC(),
		Predictions: models.PredictionSet{},
		Errors:      []string{message},
	}
}
