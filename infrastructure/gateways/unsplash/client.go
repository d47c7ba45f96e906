// Package unsplash fetches background images from the Unsplash random-photo
// API.
package unsplash

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"flashcard-backend/application/ports"
	"flashcard-backend/pkg/observability"

	"go.uber.org/zap"
)

const defaultEndpoint = "https://api.unsplash.com/photos/random"

// Config holds Unsplash client settings
type Config struct {
	AccessKey string
	Endpoint  string
	Timeout   time.Duration
}

// Client implements the ImageSearcher port against Unsplash. Every failure
// mode degrades to an empty URL; a missing background is never worth
// failing a generation request over.
type Client struct {
	cfg        Config
	httpClient *http.Client
	tracer     *observability.Tracer
	logger     *zap.Logger
}

// NewClient creates a new Unsplash client
func NewClient(cfg Config, tracer *observability.Tracer, logger *zap.Logger) ports.ImageSearcher {
	if cfg.Endpoint == "" {
		cfg.Endpoint = defaultEndpoint
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 10 * time.Second
	}
	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		tracer:     tracer,
		logger:     logger,
	}
}

type photo struct {
	URLs struct {
		Regular string `json:"regular"`
	} `json:"urls"`
}

// SearchImage returns the regular URL of one random featured portrait photo
// matching the query, or "" when nothing usable comes back.
func (c *Client) SearchImage(ctx context.Context, query string) (string, error) {
	var imageURL string
	err := c.tracer.TraceFunction(ctx, "unsplash.random", func(ctx context.Context) error {
		params := url.Values{}
		params.Set("query", query)
		params.Set("featured", "true")
		params.Set("orientation", "portrait")

		req, err := http.NewRequestWithContext(ctx, http.MethodGet,
			fmt.Sprintf("%s?%s", c.cfg.Endpoint, params.Encode()), nil)
		if err != nil {
			return err
		}
		req.Header.Set("Authorization", "Client-ID "+c.cfg.AccessKey)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return fmt.Errorf("random photo request failed with status %d", resp.StatusCode)
		}

		// The endpoint returns a single object, or an array when count is
		// set; tolerate both.
		var raw json.RawMessage
		if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
			return err
		}
		imageURL = firstRegularURL(raw)
		return nil
	})
	if err != nil {
		c.logger.Warn("Unsplash lookup failed",
			zap.String("query", query),
			zap.Error(err),
		)
		return "", nil
	}
	return imageURL, nil
}

func firstRegularURL(raw json.RawMessage) string {
	var single photo
	if err := json.Unmarshal(raw, &single); err == nil && single.URLs.Regular != "" {
		return single.URLs.Regular
	}
	var many []photo
	if err := json.Unmarshal(raw, &many); err == nil && len(many) > 0 {
		return many[0].URLs.Regular
	}
	return ""
}
