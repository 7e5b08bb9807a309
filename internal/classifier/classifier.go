package classifier

import (
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	xdraw "golang.org/x/image/draw"
	_ "golang.org/x/image/webp"

	apperrors "go-waste-inspector/internal/errors"
	"go-waste-inspector/internal/logger"
	"go-waste-inspector/internal/vocab"
	"go-waste-inspector/pkg/models"
)

// wasteClassifier wires the feature extractor, decision engine, and ranker
// into the full pipeline. It holds no per-request state.
type wasteClassifier struct {
	features FeatureExtractor
	engine   DecisionEngine
	ranker   PredictionRanker
	maxDim   int
}

// NewWasteClassifier builds the classification engine over an immutable
// vocabulary.
func NewWasteClassifier(vocabulary *vocab.Vocabulary, opts Options) WasteClassifier {
	if opts.Noise == nil {
		opts.Noise = NewRandomNoise()
	}
	if opts.MaxImageDimension <= 0 {
		opts.MaxImageDimension = DefaultOptions().MaxImageDimension
	}
	return &wasteClassifier{
		features: NewFeatureExtractor(NewSurfaceAnalyzer()),
		engine:   NewDecisionEngine(vocabulary, opts.Noise),
		ranker:   NewPredictionRanker(vocabulary, opts.Noise),
		maxDim:   opts.MaxImageDimension,
	}
}

// Classify runs the full pipeline: downscale if oversized, extract features,
// decide, rank. The only failure mode is an unusable image.
func (wc *wasteClassifier) Classify(img image.Image) (models.PredictionSet, error) {
	start := time.Now()

	if img == nil {
		return nil, apperrors.NewDecodeError("image is nil", nil)
	}
	if img.Bounds().Dx() == 0 || img.Bounds().Dy() == 0 {
		return nil, apperrors.NewDecodeError("image is empty", nil)
	}

	img = downscale(img, wc.maxDim)
	gray := grayscale(img)

	fv, err := wc.features.Extract(img, gray)
	if err != nil {
		return nil, apperrors.NewDecodeError("feature extraction failed", err)
	}

	top, tag := wc.engine.Decide(fv)
	set := wc.ranker.Rank(top)

	logger.WithComponent("classifier").WithFields(logrus.Fields{
		"rule":           tag,
		"label":          top.Label,
		"confidence":     top.Confidence,
		"metallic_score": fv.MetallicScore,
		"aspect_ratio":   fv.AspectRatio,
		"fill_ratio":     fv.FillRatio,
		"duration_ms":    time.Since(start).Milliseconds(),
	}).Debug("Image classified")

	return set, nil
}

// ClassifyFile decodes the image at path and classifies it. JPEG, PNG, and
// WebP are accepted. Failures are decode errors; callers treat them soft.
func (wc *wasteClassifier) ClassifyFile(path string) (models.PredictionSet, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, apperrors.NewDecodeError("cannot open image file", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, apperrors.NewDecodeError("cannot decode image file", err)
	}
	return wc.Classify(img)
}

// downscale shrinks img so its longest side is at most maxDim, preserving
// aspect ratio. Smaller images pass through untouched.
func downscale(img image.Image, maxDim int) image.Image {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	longest := w
	if h > longest {
		longest = h
	}
	if longest <= maxDim {
		return img
	}

	scale := float64(maxDim) / float64(longest)
	nw := int(float64(w) * scale)
	nh := int(float64(h) * scale)
	if nw < 1 {
		nw = 1
	}
	if nh < 1 {
		nh = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, nw, nh))
	xdraw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, bounds, xdraw.Src, nil)
	return dst
}
