// Package stripe creates Stripe Checkout sessions for the premium
// subscription.
package stripe

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"flashcard-backend/application/ports"
	pkgerrors "flashcard-backend/pkg/errors"
	"flashcard-backend/pkg/observability"

	"go.uber.org/zap"
)

const (
	defaultEndpoint = "https://api.stripe.com/v1/checkout/sessions"

	// subscription pricing, in cents
	premiumAmountCents = "999"
	premiumProductName = "Premium Subscription"
	premiumInterval    = "month"
)

// Config holds Stripe client settings
type Config struct {
	SecretKey string
	Endpoint  string
	Timeout   time.Duration
}

// Client implements the PaymentGateway port against Stripe's form-encoded
// REST API.
type Client struct {
	cfg        Config
	httpClient *http.Client
	tracer     *observability.Tracer
	logger     *zap.Logger
}

// NewClient creates a new Stripe client
func NewClient(cfg Config, tracer *observability.Tracer, logger *zap.Logger) ports.PaymentGateway {
	if cfg.Endpoint == "" {
		cfg.Endpoint = defaultEndpoint
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 20 * time.Second
	}
	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		tracer:     tracer,
		logger:     logger,
	}
}

type sessionResponse struct {
	ID string `json:"id"`
}

// CreateCheckoutSession creates a subscription checkout session. Success and
// cancel URLs are derived from the caller's origin.
func (c *Client) CreateCheckoutSession(ctx context.Context, origin string) (string, error) {
	form := url.Values{}
	form.Set("mode", "subscription")
	form.Set("payment_method_types[0]", "card")
	form.Set("line_items[0][price_data][currency]", "usd")
	form.Set("line_items[0][price_data][product_data][name]", premiumProductName)
	form.Set("line_items[0][price_data][unit_amount]", premiumAmountCents)
	// subscription mode requires a recurring interval on inline price data
	form.Set("line_items[0][price_data][recurring][interval]", premiumInterval)
	form.Set("line_items[0][quantity]", "1")
	form.Set("success_url", origin+"/dashboard")
	form.Set("cancel_url", origin+"/premium")

	var sessionID string
	err := c.tracer.TraceFunction(ctx, "stripe.checkout", func(ctx context.Context) error {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.Endpoint,
			strings.NewReader(form.Encode()))
		if err != nil {
			return err
		}
		req.Header.Set("Authorization", "Bearer "+c.cfg.SecretKey)
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return pkgerrors.NewExternalError("stripe", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			errBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
			c.logger.Error("Stripe API error",
				zap.Int("status", resp.StatusCode),
				zap.ByteString("body", errBody),
			)
			return pkgerrors.NewExternalError("stripe",
				fmt.Errorf("checkout session creation failed with status %d", resp.StatusCode))
		}

		var session sessionResponse
		if err := json.NewDecoder(resp.Body).Decode(&session); err != nil {
			return pkgerrors.NewExternalError("stripe", fmt.Errorf("failed to decode session: %w", err))
		}
		sessionID = session.ID
		return nil
	})
	if err != nil {
		return "", err
	}
	return sessionID, nil
}
