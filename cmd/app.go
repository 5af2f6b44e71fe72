package main

import (
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/carboniq/carboniq/internal/config"
	"github.com/carboniq/carboniq/internal/geography"
	"github.com/carboniq/carboniq/internal/grid"
	"github.com/carboniq/carboniq/internal/intent"
	"github.com/carboniq/carboniq/internal/sim"
	"github.com/carboniq/carboniq/pkg/anthropic"
)

// initService builds the simulation service from config: geography tables,
// baseline grid, and the intent extraction chain. Without an Anthropic key
// the service runs in rules-only mode.
func initService(c *config.Config) (*sim.Service, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	ref, err := geography.Load()
	if err != nil {
		return nil, eris.Wrap(err, "init geography")
	}

	g, err := grid.NewBaseline(ref, c.Grid.Resolution)
	if err != nil {
		return nil, eris.Wrap(err, "init baseline grid")
	}

	var claude intent.Extractor
	if c.Anthropic.Key != "" {
		claude = intent.NewClaudeExtractor(anthropic.NewClient(c.Anthropic.Key), intent.ClaudeConfig{
			Model:         c.Anthropic.Model,
			Timeout:       time.Duration(c.Anthropic.TimeoutSecs) * time.Second,
			MaxRetries:    c.Anthropic.MaxRetries,
			RatePerMinute: c.Anthropic.RatePerMinute,
		})
	} else {
		zap.L().Warn("no anthropic key configured, running in rules-only mode")
	}

	chain := intent.NewChain(claude, intent.NewRuleExtractor())
	return sim.New(chain, g)
}
