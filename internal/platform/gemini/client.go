package gemini

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"math/rand"
	"strings"
	"time"

	"google.golang.org/genai"

	"github.com/curiouscoder-cmd/mindmend-api/internal/config"
	"github.com/curiouscoder-cmd/mindmend-api/internal/generation"
)

// Client wraps the Gemini API client with the retry, timeout, and response
// handling shared by all four adapters in this package.
type Client struct {
	logger *slog.Logger
	config config.LLMConfig
	client *genai.Client
	model  string
}

// request is one structured call to the model.
type request struct {
	SystemInstruction string
	Prompt            string
	Temperature       float32
	MaxTokens         int32
}

// NewClient creates a Client from the LLM configuration.
//
// Returns an error if the logger is nil or the configuration is incomplete;
// wiring chooses to skip remote adapters entirely (running fully local)
// rather than constructing a client without an API key.
func NewClient(ctx context.Context, logger *slog.Logger, cfg config.LLMConfig) (*Client, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	if cfg.GeminiAPIKey == "" {
		return nil, fmt.Errorf("%w: gemini API key cannot be empty", generation.ErrInvalidConfig)
	}
	if cfg.ModelName == "" {
		return nil, fmt.Errorf("%w: model name cannot be empty", generation.ErrInvalidConfig)
	}
	if cfg.TimeoutSeconds < 1 {
		return nil, fmt.Errorf("%w: timeout must be at least one second", generation.ErrInvalidConfig)
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.GeminiAPIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create Gemini client: %v", generation.ErrInvalidConfig, err)
	}

	return &Client{
		logger: logger,
		config: cfg,
		client: client,
		model:  cfg.ModelName,
	}, nil
}

// generateJSON calls the model with retry and decodes the reply into out.
//
// Transient errors (network, timeout) are retried with exponential backoff
// and jitter up to config.MaxRetries times. Permanent errors — a blocked or
// empty reply, or a body that does not parse as the expected JSON shape —
// short-circuit immediately so the caller can fall back.
func (c *Client) generateJSON(ctx context.Context, req request, out any) error {
	maxRetries := c.config.MaxRetries
	baseDelaySeconds := c.config.RetryDelaySeconds
	if baseDelaySeconds < 1 {
		baseDelaySeconds = 1
	}
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	for attempt := 0; ; attempt++ {
		attemptNum := attempt + 1
		c.logger.DebugContext(ctx, "calling Gemini API",
			"model", c.model,
			"attempt", attemptNum,
			"max_attempts", maxRetries+1)

		text, err := c.generateOnce(ctx, req)
		if err == nil {
			if perr := parseStructuredResponse(text, out); perr != nil {
				return perr
			}
			c.logger.DebugContext(ctx, "Gemini API call succeeded",
				"attempt", attemptNum,
				"response_length", len(text))
			return nil
		}

		c.logger.WarnContext(ctx, "Gemini API call failed",
			"attempt", attemptNum,
			"error", err)

		// Permanent errors never resolve with another attempt.
		if errors.Is(err, generation.ErrContentBlocked) || errors.Is(err, generation.ErrInvalidResponse) {
			return err
		}

		if attempt >= maxRetries {
			return fmt.Errorf("%w: exceeded maximum retry attempts (%d): %v",
				generation.ErrTransientFailure, maxRetries, err)
		}

		// Exponential backoff with jitter:
		// delay = baseDelay * 2^attempt * (0.5 + rand(0, 0.5))
		backoffSeconds := float64(baseDelaySeconds) * math.Pow(2, float64(attempt))
		delay := time.Duration(backoffSeconds * (0.5 + rng.Float64()*0.5) * float64(time.Second))

		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return fmt.Errorf("%w: %v", generation.ErrTransientFailure, ctx.Err())
		}
	}
}

// generateOnce makes a single bounded API call and extracts the reply text.
func (c *Client) generateOnce(ctx context.Context, req request) (string, error) {
	callCtx, cancel := context.WithTimeout(ctx, time.Duration(c.config.TimeoutSeconds)*time.Second)
	defer cancel()

	genConfig := &genai.GenerateContentConfig{
		Temperature:     genai.Ptr(req.Temperature),
		MaxOutputTokens: req.MaxTokens,
		// Asking for JSON output does not remove the need for defensive
		// parsing; models still wrap replies in code fences at times.
		ResponseMIMEType: "application/json",
	}
	if req.SystemInstruction != "" {
		genConfig.SystemInstruction = genai.NewContentFromText(req.SystemInstruction, genai.RoleUser)
	}

	resp, err := c.client.Models.GenerateContent(callCtx, c.model, genai.Text(req.Prompt), genConfig)
	if err != nil {
		return "", fmt.Errorf("gemini call failed: %w", err)
	}

	if resp == nil || len(resp.Candidates) == 0 {
		return "", fmt.Errorf("%w: no content generated", generation.ErrInvalidResponse)
	}
	candidate := resp.Candidates[0]
	if candidate.FinishReason == genai.FinishReasonSafety {
		return "", fmt.Errorf("%w: finish reason safety", generation.ErrContentBlocked)
	}
	if candidate.Content == nil {
		return "", fmt.Errorf("%w: empty content in response", generation.ErrInvalidResponse)
	}

	var sb strings.Builder
	for _, part := range candidate.Content.Parts {
		if part != nil {
			sb.WriteString(part.Text)
		}
	}
	if strings.TrimSpace(sb.String()) == "" {
		return "", fmt.Errorf("%w: %v", generation.ErrInvalidResponse, ErrEmptyResponse)
	}
	return sb.String(), nil
}
