// Package media uploads profile images to the hosted image CDN.
package media

import (
	"bytes"
	"context"
	"time"

	apperrors "smartdash/internal/errors"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// Uploader stores an image and returns its public URL.
type Uploader interface {
	Upload(ctx context.Context, filename string, data []byte) (string, error)
}

type uploadResponse struct {
	Success bool `json:"success"`
	Status  int  `json:"status"`
	Data    struct {
		URL string `json:"url"`
	} `json:"data"`
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

// CDNClient posts images as multipart form data with the API key in the
// query string.
type CDNClient struct {
	httpClient *resty.Client
	endpoint   string
	apiKey     string
	logger     *zap.Logger
}

func NewCDNClient(endpoint, apiKey string, logger *zap.Logger) *CDNClient {
	// No retries: the multipart body is a one-shot reader.
	client := resty.New().
		SetTimeout(30*time.Second).
		SetHeader("Accept", "application/json")

	return &CDNClient{
		httpClient: client,
		endpoint:   endpoint,
		apiKey:     apiKey,
		logger:     logger,
	}
}

func (c *CDNClient) Upload(ctx context.Context, filename string, data []byte) (string, error) {
	if len(data) == 0 {
		return "", apperrors.ErrValidation.WithMessage("image is empty")
	}
	if c.apiKey == "" {
		return "", apperrors.ErrUpload.WithMessage("image upload is not configured")
	}

	var response uploadResponse
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetQueryParam("key", c.apiKey).
		SetFileReader("image", filename, bytes.NewReader(data)).
		SetResult(&response).
		SetError(&response).
		Post(c.endpoint)
	if err != nil {
		c.logger.Error("image upload failed", zap.String("filename", filename), zap.Error(err))
		return "", apperrors.ErrUpload
	}

	if resp.IsError() || response.Data.URL == "" {
		c.logger.Error("image CDN rejected upload",
			zap.String("filename", filename),
			zap.Int("status_code", resp.StatusCode()),
			zap.String("msg", response.Error.Message),
		)
		return "", apperrors.ErrUpload
	}

	c.logger.Info("image uploaded", zap.String("filename", filename), zap.String("url", response.Data.URL))
	return response.Data.URL, nil
}
