package classifier

import (
	"image"

	"gonum.org/v1/gonum/stat"
)

// Metallic score weights. They sum to 1.0; the boosted sum is clamped back
// into [0,1].
const (
	metallicTextureWeight    = 0.3
	metallicReflectionWeight = 0.3
	metallicDensityWeight    = 0.2
	metallicColorWeight      = 0.2
	metallicBoost            = 1.5

	// Silver/gray pixel gate on the [0,255] HSV scales.
	metallicSaturationMax = 50.0
	metallicValueMin      = 150.0
)

// metallicSurfaceAnalyzer scores how metallic the dominant surface looks by
// combining gradient texture, reflection variance, highlight fragmentation,
// and a silver-gray color mask. The computation is deterministic.
type metallicSurfaceAnalyzer struct{}

// NewSurfaceAnalyzer creates the metallic surface analyzer.
func NewSurfaceAnalyzer() SurfaceAnalyzer {
	return &metallicSurfaceAnalyzer{}
}

func (sa *metallicSurfaceAnalyzer) MetallicScore(img image.Image, gray *image.Gray, brightnessStd float64) float64 {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w == 0 || h == 0 {
		return 0.0
	}

	// Texture energy: mean gradient magnitude normalized by its own peak.
	textureEnergy := 0.0
	mag := gradientMagnitudes(gray)
	maxMag := 0.0
	for _, m := range mag {
		if m > maxMag {
			maxMag = m
		}
	}
	if maxMag > 0 {
		textureEnergy = stat.Mean(mag, nil) / maxMag
	}

	// Reflection variance on a [0,1] scale.
	reflection := brightnessStd / 255.0
	if reflection > 1 {
		reflection = 1
	}

	// Crumpled metal shows many small bright fragments: count Otsu-binary
	// regions per pixel of image area.
	regions := countRegions(gray, otsuThreshold(gray))
	density := float64(regions) / float64(w*h)
	if density > 1 {
		density = 1
	}

	// Fraction of silver/gray-looking pixels.
	metallicPixels := 0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			_, sat, val := rgbToHSV(float64(r>>8), float64(g>>8), float64(b>>8))
			if sat < metallicSaturationMax && val > metallicValueMin {
				metallicPixels++
			}
		}
	}
	colorRatio := float64(metallicPixels) / float64(w*h)

	score := metallicBoost * (metallicTextureWeight*textureEnergy +
		metallicReflectionWeight*reflection +
		metallicDensityWeight*density +
		metallicColorWeight*colorRatio)
	return clampUnit(score)
}

// clampUnit clamps v into [0,1].
func clampUnit(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
