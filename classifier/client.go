// Package classifier talks to the external exoplanet prediction service.
package classifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"exoplanet-explorer/models"

	"go.uber.org/zap"
)

// PredictPath is the classification endpoint relative to the service base URL.
const PredictPath = "/exoplanet/predict"

// Predictor classifies one normalized payload.
type Predictor interface {
	Predict(ctx context.Context, data models.StellarData) (*models.ClassificationResponse, error)
}

// PredictorFunc adapts a function to Predictor.
type PredictorFunc func(ctx context.Context, data models.StellarData) (*models.ClassificationResponse, error)

func (f PredictorFunc) Predict(ctx context.Context, data models.StellarData) (*models.ClassificationResponse, error) {
	return f(ctx, data)
}

// APIError is returned for any non-2xx response.
type APIError struct {
	StatusCode int
	Status     string
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("API error: %d %s", e.StatusCode, e.Status)
}

// Client calls POST /exoplanet/predict over HTTP.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient creates a prediction client.
func NewClient(baseURL string, timeout time.Duration, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// Predict sends one payload. There is no retry; the caller decides what a
// failure means.
func (c *Client) Predict(ctx context.Context, data models.StellarData) (*models.ClassificationResponse, error) {
	body, err := json.Marshal(models.PredictRequest{StellarData: data})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+PredictPath, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("prediction request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		c.logger.Warn("prediction service returned error",
			zap.Int("status", resp.StatusCode),
			zap.ByteString("body", msg))
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Status:     http.StatusText(resp.StatusCode),
			Body:       string(msg),
		}
	}

	var out models.ClassificationResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("failed to decode prediction response: %w", err)
	}

	c.logger.Debug("prediction completed",
		zap.Bool("is_exoplanet", out.ClassificationResult.IsExoplanet),
		zap.String("classification", out.ClassificationResult.Classification),
		zap.Duration("latency", time.Since(start)))
	return &out, nil
}
