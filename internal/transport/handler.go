package transport

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"go-waste-inspector/internal/config"
	apperrors "go-waste-inspector/internal/errors"
	"go-waste-inspector/internal/logger"
	"go-waste-inspector/internal/repository"
	"go-waste-inspector/internal/service"
)

type ClassificationRequest struct {
	URL string `json:"url" binding:"required,url"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// NewHandler builds the HTTP router.
func NewHandler(svc service.WasteClassificationService, cfg *config.Config) http.Handler {
	r := gin.Default()

	r.Use(
		requestSizeLimiter(cfg.MaxRequestBodySize),
		errorHandler(),
	)

	r.GET("/health", healthCheck)
	r.POST("/classify", classifyByURL(svc, cfg))
	r.POST("/classify/upload", classifyUpload(svc, cfg))

	return r
}

func classifyByURL(svc service.WasteClassificationService, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		startTime := time.Now()
		ctx, cancel := context.WithTimeout(c.Request.Context(), cfg.RequestTimeout)
		defer cancel()

		logger.WithFields(logrus.Fields{
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"user_agent": c.Request.UserAgent(),
			"ip":         c.ClientIP(),
		}).Info("Processing classification request")

		var req ClassificationRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			logger.WithError(err).WithFields(logrus.Fields{
				"ip": c.ClientIP(),
			}).Error("Invalid request format")
			respondError(c, http.StatusBadRequest, "invalid request format", err)
			return
		}

		if err := svc.ValidateImageURL(req.URL); err != nil {
			logger.WithError(err).WithFields(logrus.Fields{
				"url": req.URL,
				"ip":  c.ClientIP(),
			}).Error("Invalid image URL")
			respondError(c, http.StatusBadRequest, "invalid image URL", err)
			return
		}

		result, err := svc.ClassifyImageURL(ctx, req.URL)
		if err != nil {
			logger.WithError(err).WithFields(logrus.Fields{
				"url": req.URL,
				"ip":  c.ClientIP(),
			}).Error("Classification failed")
			respondError(c, determineStatusCode(err), "classification failed", err)
			return
		}

		duration := time.Since(startTime)
		fields := logrus.Fields{
			"url":                req.URL,
			"processing_time_ms": duration.Milliseconds(),
		}
		if result.TopPrediction != nil {
			fields["label"] = result.TopPrediction.Label
			fields["confidence"] = result.TopPrediction.Confidence
		}
		logger.WithFields(fields).Info("Classification completed successfully")

		c.JSON(http.StatusOK, result)
	}
}

func classifyUpload(svc service.WasteClassificationService, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		startTime := time.Now()
		ctx, cancel := context.WithTimeout(c.Request.Context(), cfg.RequestTimeout)
		defer cancel()

		fileHeader, err := c.FormFile("image")
		if err != nil {
			logger.WithError(err).WithFields(logrus.Fields{
				"ip": c.ClientIP(),
			}).Error("Missing image upload")
			respondError(c, http.StatusBadRequest, "missing 'image' form file", err)
			return
		}

		file, err := fileHeader.Open()
		if err != nil {
			respondError(c, http.StatusBadRequest, "could not open uploaded file", err)
			return
		}
		defer file.Close()

		data, err := io.ReadAll(file)
		if err != nil {
			respondError(c, http.StatusBadRequest, "could not read uploaded file", err)
			return
		}

		result, err := svc.ClassifyImageBytes(ctx, data)
		if err != nil {
			respondError(c, determineStatusCode(err), "classification failed", err)
			return
		}

		duration := time.Since(startTime)
		fields := logrus.Fields{
			"filename":           fileHeader.Filename,
			"size_bytes":         fileHeader.Size,
			"processing_time_ms": duration.Milliseconds(),
		}
		if result.TopPrediction != nil {
			fields["label"] = result.TopPrediction.Label
			fields["confidence"] = result.TopPrediction.Confidence
		}
		logger.WithFields(fields).Info("Upload classification completed")

		c.JSON(http.StatusOK, result)
	}
}

func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "available",
		"version": "1.0.0",
		"time":    time.Now().UTC().Format(time.RFC3339),
	})
}

// Middleware and helper functions
func requestSizeLimiter(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}

func errorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) > 0 {
			err := c.Errors.Last()
			respondError(c, determineStatusCode(err), "request processing failed", err)
		}
	}
}

func determineStatusCode(err error) int {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return appErr.StatusCode
	}

	switch {
	case errors.Is(err, repository.ErrInvalidImageURL):
		return http.StatusBadRequest
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.Is(err, context.Canceled):
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

func respondError(c *gin.Context, code int, message string, err error) {
	logger.WithError(err).WithFields(logrus.Fields{
		"status_code": code,
		"message":     message,
		"path":        c.Request.URL.Path,
		"method":      c.Request.Method,
		"ip":          c.ClientIP(),
	}).Error("Request failed")

	c.AbortWithStatusJSON(code, ErrorResponse{
		Error:   http.StatusText(code),
		Message: fmt.Sprintf("%s: %v", message, err),
	})
}
