package repository

import (
	"context"
	"image"
)

// ImageRepository abstracts where classification inputs come from: remote
// URLs, uploaded bytes, or local files.
type ImageRepository interface {
	// FetchImage retrieves and decodes an image from a URL.
	FetchImage(ctx context.Context, imageURL string) (image.Image, error)

	// DecodeImage decodes an image from raw bytes (e.g. a multipart upload).
	DecodeImage(data []byte) (image.Image, error)

	// ValidateImageURL checks that the URL is acceptable before fetching.
	ValidateImageURL(imageURL string) error
}
