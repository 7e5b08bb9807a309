package classifier

import (
	"fmt"
	"image"
	"math"

	"gonum.org/v1/gonum/stat"
)

// featureExtractor implements FeatureExtractor. It is pure: extracting twice
// from the same image yields bit-identical vectors.
type featureExtractor struct {
	surface SurfaceAnalyzer
}

// NewFeatureExtractor creates a feature extractor backed by the given
// surface analyzer.
func NewFeatureExtractor(surface SurfaceAnalyzer) FeatureExtractor {
	return &featureExtractor{surface: surface}
}

// Extract computes the per-image summary statistics: HSV channel means,
// grayscale standard deviation, and the largest contour's bounding-box
// geometry. An empty image is a decode failure.
func (fe *featureExtractor) Extract(img image.Image, gray *image.Gray) (FeatureVector, error) {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w == 0 || h == 0 {
		return FeatureVector{}, fmt.Errorf("empty image (%dx%d)", w, h)
	}

	var hueSum, satSum, valSum float64
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			hue, sat, val := rgbToHSV(float64(r>>8), float64(g>>8), float64(b>>8))
			hueSum += hue
			satSum += sat
			valSum += val
		}
	}
	pixelCount := float64(w * h)

	intensities := make([]float64, 0, w*h)
	for y := 0; y < h; y++ {
		row := gray.Pix[y*gray.Stride : y*gray.Stride+w]
		for _, p := range row {
			intensities = append(intensities, float64(p))
		}
	}
	brightnessStd := 0.0
	if len(intensities) > 1 {
		brightnessStd = stat.StdDev(intensities, nil)
		if math.IsNaN(brightnessStd) {
			brightnessStd = 0
		}
	}

	fv := FeatureVector{
		AvgHue:        hueSum / pixelCount,
		AvgSaturation: satSum / pixelCount,
		AvgValue:      valSum / pixelCount,
		BrightnessStd: brightnessStd,
	}

	mag := gradientMagnitudes(gray)
	edges := edgeMask(mag, w, h)
	if region, ok := largestFilledRegion(edges, w, h); ok {
		bw, bh := region.width(), region.height()
		if bw > 0 {
			fv.AspectRatio = float64(bh) / float64(bw)
		}
		if bw > 0 && bh > 0 {
			fv.FillRatio = float64(region.area) / float64(bw*bh)
		}
	}

	fv.MetallicScore = fe.surface.MetallicScore(img, gray, brightnessStd)
	return fv, nil
}

// rgbToHSV converts 8-bit RGB values to the engine's canonical HSV scales:
// hue in half-degrees [0,180), saturation and value in [0,255].
func rgbToHSV(r, g, b float64) (hue, sat, val float64) {
	max := math.Max(r, math.Max(g, b))
	min := math.Min(r, math.Min(g, b))
	delta := max - min

	val = max

	if max == 0 {
		sat = 0
	} else {
		sat = delta / max * 255
	}

	var deg float64
	if delta == 0 {
		deg = 0
	} else if max == r {
		deg = 60 * (((g - b) / delta) + 0)
	} else if max == g {
		deg = 60 * (((b - r) / delta) + 2)
	} else {
		deg = 60 * (((r - g) / delta) + 4)
	}
	if deg < 0 {
		deg += 360
	}

	return deg / 2, sat, val
}
