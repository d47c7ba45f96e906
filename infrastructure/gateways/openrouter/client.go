// Package openrouter talks to the OpenRouter chat-completions API to
// generate flashcard and trivia content.
package openrouter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"flashcard-backend/application/ports"
	pkgerrors "flashcard-backend/pkg/errors"
	"flashcard-backend/pkg/observability"

	"go.uber.org/zap"
)

const (
	defaultEndpoint = "https://openrouter.ai/api/v1/chat/completions"

	flashcardMaxTokens = 500
	triviaMaxTokens    = 150
)

// fallbackModels is tried in order by OpenRouter's fallback routing
var fallbackModels = []string{
	"nousresearch/hermes-3-llama-3.1-405b:free",
	"meta-llama/llama-3.1-8b-instruct:free",
}

// Config holds OpenRouter client settings
type Config struct {
	APIKey   string
	Endpoint string
	Referer  string
	AppTitle string
	Timeout  time.Duration
}

// Client implements the TextGenerator port against OpenRouter
type Client struct {
	cfg        Config
	httpClient *http.Client
	tracer     *observability.Tracer
	logger     *zap.Logger
}

// NewClient creates a new OpenRouter client
func NewClient(cfg Config, tracer *observability.Tracer, logger *zap.Logger) ports.TextGenerator {
	if cfg.Endpoint == "" {
		cfg.Endpoint = defaultEndpoint
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}
	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		tracer:     tracer,
		logger:     logger,
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Models    []string      `json:"model"`
	Route     string        `json:"route"`
	Messages  []chatMessage `json:"messages"`
	MaxTokens int           `json:"max_tokens"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// GenerateFlashcards produces count question/answer pairs about a subject.
// Unparseable model output degrades to a single fallback pair; transport and
// API failures surface as errors.
func (c *Client) GenerateFlashcards(ctx context.Context, subject string, count int) ([]ports.QA, error) {
	prompt := fmt.Sprintf(
		`Generate %d flashcards about %s. Format each flashcard as "Question: [your question] Answer: [your answer]". Put each flashcard on a newline. Do not include any other text or comments.`,
		count, subject,
	)
	content, err := c.complete(ctx, "You are a helpful assistant that generates flashcards.", prompt, flashcardMaxTokens)
	if err != nil {
		return nil, err
	}

	pairs := ParsePairs(content)
	if len(pairs) == 0 {
		c.logger.Warn("Model output yielded no flashcards, using fallback",
			zap.String("subject", subject),
		)
		return []ports.QA{FallbackPair(subject)}, nil
	}
	return pairs, nil
}

// GenerateTrivia produces a single trivia pair about a location
func (c *Client) GenerateTrivia(ctx context.Context, location string) (ports.QA, error) {
	prompt := fmt.Sprintf(
		`Generate a trivia question and answer about %s. Format the response as "Question: [your question] Answer: [your answer]" do not include any other text or comments`,
		location,
	)
	content, err := c.complete(ctx, "You are a helpful assistant that generates trivia questions.", prompt, triviaMaxTokens)
	if err != nil {
		return ports.QA{}, err
	}

	pairs := ParsePairs(content)
	if len(pairs) == 0 {
		c.logger.Warn("Model output yielded no trivia, using fallback",
			zap.String("location", location),
		)
		return TriviaFallbackPair(location), nil
	}
	return pairs[0], nil
}

// complete performs one chat-completions call and returns the trimmed
// message content.
func (c *Client) complete(ctx context.Context, system, user string, maxTokens int) (string, error) {
	body, err := json.Marshal(chatRequest{
		Models:    fallbackModels,
		Route:     "fallback",
		MaxTokens: maxTokens,
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal completion request: %w", err)
	}

	var content string
	err = c.tracer.TraceFunction(ctx, "openrouter.complete", func(ctx context.Context) error {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.Endpoint, bytes.NewReader(body))
		if err != nil {
			return err
		}
		req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
		req.Header.Set("Content-Type", "application/json")
		if c.cfg.Referer != "" {
			req.Header.Set("HTTP-Referer", c.cfg.Referer)
		}
		if c.cfg.AppTitle != "" {
			req.Header.Set("X-Title", c.cfg.AppTitle)
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return pkgerrors.NewExternalError("openrouter", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			errBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
			c.logger.Error("OpenRouter API error",
				zap.Int("status", resp.StatusCode),
				zap.ByteString("body", errBody),
			)
			return pkgerrors.NewExternalError("openrouter",
				fmt.Errorf("completion request failed with status %d", resp.StatusCode))
		}

		var parsed chatResponse
		if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
			return pkgerrors.NewExternalError("openrouter", fmt.Errorf("failed to decode response: %w", err))
		}
		if len(parsed.Choices) > 0 {
			content = strings.TrimSpace(parsed.Choices[0].Message.Content)
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	return content, nil
}
