package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/firebase/genkit/go/ai"
	"github.com/firebase/genkit/go/genkit"
	"golang.org/x/time/rate"
	"google.golang.org/genai"
)

// RetryConfig configures the retry behavior for model calls.
type RetryConfig struct {
	MaxRetries      int           // Maximum number of retry attempts
	InitialInterval time.Duration // Initial backoff interval
	MaxInterval     time.Duration // Maximum backoff interval
}

// DefaultRetryConfig returns sensible defaults for Gemini API calls.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxRetries:      3,
		InitialInterval: 500 * time.Millisecond,
		MaxInterval:     10 * time.Second,
	}
}

// retryablePatterns groups transient error substrings by category, matched
// case-insensitively against err.Error(). String matching because neither
// Genkit nor the provider SDK exposes typed errors for these failures.
var retryablePatterns = [][]string{
	{"rate limit", "quota exceeded", "429"},      // rate limiting
	{"500", "502", "503", "504", "unavailable"},  // transient server errors
	{"connection reset", "timeout", "temporary"}, // network errors
}

func retryableError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	for _, group := range retryablePatterns {
		for _, pattern := range group {
			if strings.Contains(msg, pattern) {
				return true
			}
		}
	}
	return false
}

// modelCaller is the shared model-call path for the grader and generator:
// one rate limiter, one retry policy, temperature pinned to zero so grading
// and generation stay deterministic given the same context.
type modelCaller struct {
	g         *genkit.Genkit
	modelName string
	limiter   *rate.Limiter
	retry     RetryConfig
	logger    *slog.Logger
}

func newModelCaller(g *genkit.Genkit, modelName string, limiter *rate.Limiter, retry RetryConfig, logger *slog.Logger) *modelCaller {
	if logger == nil {
		logger = slog.Default()
	}
	return &modelCaller{
		g:         g,
		modelName: modelName,
		limiter:   limiter,
		retry:     retry,
		logger:    logger,
	}
}

// generate runs one system+user exchange and returns the response text.
// Each attempt pays the rate limiter; transient errors back off exponentially.
func (c *modelCaller) generate(ctx context.Context, system, user string) (string, error) {
	var lastErr error
	delay := c.retry.InitialInterval
	start := time.Now()

	for attempt := 0; attempt <= c.retry.MaxRetries; attempt++ {
		if c.limiter != nil {
			if err := c.limiter.Wait(ctx); err != nil {
				return "", fmt.Errorf("rate limit wait: %w", err)
			}
		}

		resp, err := genkit.Generate(ctx, c.g,
			ai.WithModelName(c.modelName),
			ai.WithSystem(system),
			ai.WithPrompt(user),
			ai.WithConfig(&genai.GenerateContentConfig{
				Temperature: genai.Ptr[float32](0),
			}),
		)
		if err == nil {
			c.logger.Debug("model call succeeded",
				"attempts", attempt+1,
				"elapsed", time.Since(start),
			)
			return resp.Text(), nil
		}

		lastErr = err

		if !retryableError(err) {
			return "", fmt.Errorf("model call: %w", err)
		}

		if attempt == c.retry.MaxRetries {
			break
		}

		c.logger.Debug("retrying after transient error",
			"attempt", attempt+1,
			"delay", delay,
			"error", err,
		)

		select {
		case <-ctx.Done():
			return "", fmt.Errorf("context canceled during retry: %w", ctx.Err())
		case <-time.After(delay):
			delay = min(delay*2, c.retry.MaxInterval)
		}
	}

	return "", fmt.Errorf("model call after %d retries (elapsed: %v): %w",
		c.retry.MaxRetries, time.Since(start), lastErr)
}
