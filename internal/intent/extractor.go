package intent

import (
	"context"

	"go.uber.org/zap"
)

// Extractor turns a prompt into a structured Intent.
type Extractor interface {
	Extract(ctx context.Context, prompt string) (Intent, error)
}

// Chain tries extractors in order and returns the first successful result.
// It never returns an error: if every layer fails, callers get the neutral
// default so a simulation request always produces a grid.
type Chain struct {
	layers []Extractor
}

// NewChain builds a fallback chain. Nil layers are skipped.
func NewChain(layers ...Extractor) *Chain {
	kept := make([]Extractor, 0, len(layers))
	for _, l := range layers {
		if l != nil {
			kept = append(kept, l)
		}
	}
	return &Chain{layers: kept}
}

// Extract runs the chain. The returned error is always nil.
func (c *Chain) Extract(ctx context.Context, prompt string) (Intent, error) {
	for i, layer := range c.layers {
		in, err := layer.Extract(ctx, prompt)
		if err == nil {
			return in, nil
		}
		zap.L().Warn("intent extraction layer failed",
			zap.Int("layer", i),
			zap.Error(err),
		)
	}
	return Default(), nil
}
