package repository

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"net/url"

	_ "golang.org/x/image/webp"

	"go-waste-inspector/internal/storage"
)

// HTTPImageRepository implements ImageRepository over an HTTP fetcher.
type HTTPImageRepository struct {
	fetcher storage.ImageFetcher
}

// NewHTTPImageRepository creates an HTTP-backed image repository.
func NewHTTPImageRepository(fetcher storage.ImageFetcher) ImageRepository {
	return &HTTPImageRepository{fetcher: fetcher}
}

// FetchImage retrieves an image from a URL.
func (r *HTTPImageRepository) FetchImage(ctx context.Context, imageURL string) (image.Image, error) {
	if err := r.ValidateImageURL(imageURL); err != nil {
		return nil, err
	}
	return r.fetcher.FetchImage(ctx, imageURL)
}

// DecodeImage decodes raw image bytes, as delivered by a multipart upload.
func (r *HTTPImageRepository) DecodeImage(data []byte) (image.Image, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image bytes: %w", err)
	}
	return img, nil
}

// ValidateImageURL rejects empty, relative, or non-HTTP(S) URLs.
func (r *HTTPImageRepository) ValidateImageURL(imageURL string) error {
	if imageURL == "" {
		return ErrInvalidImageURL
	}
	parsed, err := url.Parse(imageURL)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidImageURL, err)
	}
	if parsed.Host == "" {
		return fmt.Errorf("%w: missing host", ErrInvalidImageURL)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("%w: unsupported scheme %q", ErrInvalidImageURL, parsed.Scheme)
	}
	return nil
}
