package config

import (
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all runtime settings for the waste inspection service.
// Everything is sourced from the environment with sane defaults, so the
// binary starts with zero flags.
type Config struct {
	Host               string
	Port               string
	RequestTimeout     time.Duration
	ImageFetchTimeout  time.Duration
	MaxRequestBodySize int64

	// LabelsPath points at the newline-delimited vocabulary file. A missing
	// or unreadable file is not fatal; the built-in vocabulary is used.
	LabelsPath string

	// Azure blob vocabulary source. Only consulted when all four values are
	// set; otherwise the file/built-in chain applies.
	AzureAccountName string
	AzureAccountKey  string
	AzureContainer   string
	AzureLabelsBlob  string

	// ConfidenceThreshold marks responses below it as low-confidence so the
	// caller can prompt for a better photo.
	ConfidenceThreshold float64

	// MaxImageDimension is the longest side an image may have before it is
	// downscaled prior to feature extraction.
	MaxImageDimension int
}

func (c *Config) ServerAddress() string {
	host := strings.TrimSpace(c.Host)
	port := strings.TrimSpace(c.Port)
	return net.JoinHostPort(host, port)
}

// BlobVocabularyConfigured reports whether the Azure vocabulary source has
// everything it needs to be consulted.
func (c *Config) BlobVocabularyConfigured() bool {
	return c.AzureAccountName != "" && c.AzureAccountKey != "" &&
		c.AzureContainer != "" && c.AzureLabelsBlob != ""
}

func LoadFromEnv() (*Config, error) {
	cfg := &Config{
		Host:                getEnvOrDefault("HOST", "0.0.0.0"),
		Port:                getEnvOrDefault("PORT", "8080"),
		RequestTimeout:      parseDurationOrDefault("REQUEST_TIMEOUT", 30*time.Second),
		ImageFetchTimeout:   parseDurationOrDefault("IMAGE_FETCH_TIMEOUT", 15*time.Second),
		MaxRequestBodySize:  parseIntOrDefault("MAX_REQUEST_BODY_SIZE", 16*1024*1024), // 16MB
		LabelsPath:          getEnvOrDefault("LABELS_PATH", "data/waste_labels.txt"),
		AzureAccountName:    os.Getenv("AZURE_STORAGE_ACCOUNT"),
		AzureAccountKey:     os.Getenv("AZURE_STORAGE_KEY"),
		AzureContainer:      os.Getenv("AZURE_LABELS_CONTAINER"),
		AzureLabelsBlob:     os.Getenv("AZURE_LABELS_BLOB"),
		ConfidenceThreshold: parseFloatOrDefault("CONFIDENCE_THRESHOLD", 0.7),
		MaxImageDimension:   int(parseIntOrDefault("MAX_IMAGE_DIMENSION", 1024)),
	}

	// Validate port is numeric and in range
	p, err := strconv.Atoi(strings.TrimSpace(cfg.Port))
	if err != nil || p < 1 || p > 65535 {
		return nil, fmt.Errorf("invalid PORT: %q", cfg.Port)
	}
	if cfg.MaxRequestBodySize <= 0 {
		return nil, fmt.Errorf("MAX_REQUEST_BODY_SIZE must be > 0 (got %d)", cfg.MaxRequestBodySize)
	}
	if cfg.RequestTimeout <= 0 || cfg.ImageFetchTimeout <= 0 {
		return nil, fmt.Errorf("timeouts must be > 0 (got request=%s, fetch=%s)",
			cfg.RequestTimeout, cfg.ImageFetchTimeout)
	}
	if cfg.ConfidenceThreshold < 0 || cfg.ConfidenceThreshold > 1 {
		return nil, fmt.Errorf("CONFIDENCE_THRESHOLD must be in [0,1] (got %g)", cfg.ConfidenceThreshold)
	}
	if cfg.MaxImageDimension < 32 {
		return nil, fmt.Errorf("MAX_IMAGE_DIMENSION too small (got %d)", cfg.MaxImageDimension)
	}
	return cfg, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func parseDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(strings.TrimSpace(value)); err == nil && duration > 0 {
			return duration
		}
	}
	return defaultValue
}

func parseIntOrDefault(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func parseFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(strings.TrimSpace(value), 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}
