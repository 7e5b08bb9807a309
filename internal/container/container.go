package container

import (
	"context"
	"fmt"
	"net/http"

	"go-waste-inspector/internal/classifier"
	"go-waste-inspector/internal/config"
	"go-waste-inspector/internal/logger"
	"go-waste-inspector/internal/repository"
	"go-waste-inspector/internal/service"
	"go-waste-inspector/internal/storage"
	"go-waste-inspector/internal/transport"
	"go-waste-inspector/internal/vocab"
)

// Container holds all application dependencies
type Container struct {
	config          *config.Config
	imageFetcher    storage.ImageFetcher
	imageRepository repository.ImageRepository
	vocabulary      *vocab.Vocabulary
	wasteClassifier classifier.WasteClassifier
	service         service.WasteClassificationService
	handler         http.Handler
}

// NewContainer creates a new dependency injection container
func NewContainer(ctx context.Context) (*Container, error) {
	cfg, err := config.LoadFromEnv()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	// Build dependency graph
	imageFetcher := storage.NewHTTPImageFetcher(cfg.ImageFetchTimeout)
	imageRepository := repository.NewHTTPImageRepository(imageFetcher)

	vocabulary := vocab.Resolve(ctx, vocabularySources(cfg)...)

	wasteClassifier := NewWasteClassifier(vocabulary, cfg)
	classificationService := service.NewWasteClassificationService(
		imageRepository,
		wasteClassifier,
		nil, // no vision refinement collaborator in the default deployment
		cfg.ConfidenceThreshold,
	)
	handler := transport.NewHandler(classificationService, cfg)

	return &Container{
		config:          cfg,
		imageFetcher:    imageFetcher,
		imageRepository: imageRepository,
		vocabulary:      vocabulary,
		wasteClassifier: wasteClassifier,
		service:         classificationService,
		handler:         handler,
	}, nil
}

// NewWasteClassifier builds the heuristic engine from configuration.
func NewWasteClassifier(vocabulary *vocab.Vocabulary, cfg *config.Config) classifier.WasteClassifier {
	opts := classifier.DefaultOptions().WithMaxImageDimension(cfg.MaxImageDimension)
	return classifier.NewWasteClassifier(vocabulary, opts)
}

// vocabularySources assembles the ordered label-list sources: remote blob
// store when configured, then the local file, then the built-in default.
func vocabularySources(cfg *config.Config) []vocab.Source {
	var sources []vocab.Source

	if cfg.BlobVocabularyConfigured() {
		store, err := storage.NewAzureLabelStore(
			cfg.AzureAccountName,
			cfg.AzureAccountKey,
			cfg.AzureContainer,
			cfg.AzureLabelsBlob,
		)
		if err != nil {
			logger.WithComponent("container").WithError(err).Warn("Azure vocabulary source misconfigured, skipping")
		} else {
			sources = append(sources, vocab.RemoteSource{
				Label:      cfg.AzureLabelsBlob,
				Downloader: store,
			})
		}
	}

	sources = append(sources, vocab.FileSource{Path: cfg.LabelsPath})
	return sources
}

// Handler returns the HTTP handler
func (c *Container) Handler() http.Handler {
	return c.handler
}

// Config returns the configuration
func (c *Container) Config() *config.Config {
	return c.config
}

// Vocabulary returns the resolved label vocabulary
func (c *Container) Vocabulary() *vocab.Vocabulary {
	return c.vocabulary
}

// Service returns the classification service
func (c *Container) Service() service.WasteClassificationService {
	return c.service
}
