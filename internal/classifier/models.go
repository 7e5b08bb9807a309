package classifier

// FeatureVector holds the scalar summary statistics extracted from one
// image. All fields are derived; callers never set them independently.
//
// Conventions (canonical across the engine):
//   - AvgHue uses the half-degree scale, [0,180)
//   - AvgSaturation and AvgValue are on the [0,255] scale
//   - BrightnessStd is the standard deviation of grayscale intensity
//   - AspectRatio is height/width of the largest contour's bounding box,
//     0 when no contour was found
//   - FillRatio is contour area over bounding-box area, in [0,1]
//   - MetallicScore is the surface analyzer output, in [0,1]
type FeatureVector struct {
	AvgHue        float64
	AvgSaturation float64
	AvgValue      float64
	BrightnessStd float64
	AspectRatio   float64
	FillRatio     float64
	MetallicScore float64
}

// Degenerate reports whether no contour was detected at all. The decision
// cascade bypasses its rules for such vectors and falls back to a
// vocabulary-uniform random label.
func (fv FeatureVector) Degenerate() bool {
	return fv.AspectRatio == 0 && fv.FillRatio == 0
}
