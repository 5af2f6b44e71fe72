package intent

import (
	"context"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/carboniq/carboniq/internal/resilience"
	"github.com/carboniq/carboniq/pkg/anthropic"
)

const (
	defaultModel     = "claude-haiku-4-5-20251001"
	defaultMaxTokens = 512
	defaultTimeout   = 8 * time.Second
)

// ClaudeConfig tunes the Claude-backed extractor.
type ClaudeConfig struct {
	Model         string
	Timeout       time.Duration
	MaxRetries    int
	RatePerMinute int
}

// ClaudeExtractor extracts intents with the Anthropic API. Calls are rate
// limited, retried on transient failures, and run at temperature zero.
type ClaudeExtractor struct {
	client  anthropic.Client
	model   string
	timeout time.Duration
	limiter *rate.Limiter
	retry   resilience.RetryConfig
}

// NewClaudeExtractor builds an extractor over the given client. Zero config
// fields fall back to defaults.
func NewClaudeExtractor(client anthropic.Client, cfg ClaudeConfig) *ClaudeExtractor {
	if cfg.Model == "" {
		cfg.Model = defaultModel
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.RatePerMinute <= 0 {
		cfg.RatePerMinute = 30
	}
	retry := resilience.DefaultRetryConfig()
	if cfg.MaxRetries > 0 {
		retry.MaxAttempts = cfg.MaxRetries + 1
	}
	retry.OnRetry = resilience.RetryLogger("anthropic", "analyze_intent")

	return &ClaudeExtractor{
		client:  client,
		model:   cfg.Model,
		timeout: cfg.Timeout,
		limiter: rate.NewLimiter(rate.Limit(float64(cfg.RatePerMinute)/60.0), cfg.RatePerMinute),
		retry:   retry,
	}
}

// Extract asks Claude for a structured analysis of the prompt.
func (e *ClaudeExtractor) Extract(ctx context.Context, prompt string) (Intent, error) {
	if err := e.limiter.Wait(ctx); err != nil {
		return Intent{}, eris.Wrap(err, "intent: rate limit wait")
	}

	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	temperature := 0.0
	resp, err := resilience.DoVal(ctx, e.retry, func(ctx context.Context) (*anthropic.AnalysisResponse, error) {
		return e.client.Analyze(ctx, anthropic.AnalysisRequest{
			Model:       e.model,
			MaxTokens:   defaultMaxTokens,
			System:      systemPrompt,
			Prompt:      prompt,
			Temperature: &temperature,
		})
	})
	if err != nil {
		return Intent{}, eris.Wrap(err, "intent: claude analysis")
	}

	resp.Usage.LogCost(e.model, "intent_extraction")

	in, err := parseAnalysis(resp.Text)
	if err != nil {
		zap.L().Warn("unparseable model response",
			zap.String("response_id", resp.ID),
			zap.String("stop_reason", resp.StopReason),
			zap.Error(err),
		)
		return Intent{}, err
	}
	return in, nil
}
