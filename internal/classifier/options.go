package classifier

// Options configures a WasteClassifier instance.
type Options struct {
	// Noise is the randomness source for confidence jitter and alternative
	// sampling. Defaults to the shared math/rand source; inject a seeded or
	// zero source for reproducible output.
	Noise Noise

	// MaxImageDimension is the longest image side processed as-is; larger
	// images are downscaled first. Feature statistics are scale-stable, so
	// this bounds per-request CPU without moving decision boundaries.
	MaxImageDimension int
}

// DefaultOptions returns the production configuration.
func DefaultOptions() Options {
	return Options{
		Noise:             NewRandomNoise(),
		MaxImageDimension: 1024,
	}
}

// WithNoise returns options using the given noise source.
func (o Options) WithNoise(n Noise) Options {
	o.Noise = n
	return o
}

// WithMaxImageDimension returns options using the given downscale bound.
func (o Options) WithMaxImageDimension(d int) Options {
	o.MaxImageDimension = d
	return o
}
