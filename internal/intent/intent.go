// Package intent turns free-text sustainability prompts into a structured
// scenario description. Extraction is layered: a Claude-backed extractor when
// an API key is configured, a keyword rule extractor as fallback, and a
// neutral default when neither recognizes the prompt.
package intent

import (
	"fmt"
	"hash/fnv"
	"strings"

	"github.com/carboniq/carboniq/internal/geography"
)

// Source identifies which extraction layer produced an Intent.
type Source string

const (
	SourceClaude  Source = "claude"
	SourceRules   Source = "rules"
	SourceDefault Source = "default"
)

// Intent is the structured interpretation of a prompt. Magnitude is a signed
// percentage: -20 means a 20% reduction in the targeted area.
type Intent struct {
	Sector     geography.Sector  `json:"sector"`
	Borough    geography.Borough `json:"borough"`
	Magnitude  float64           `json:"magnitude"`
	Keywords   []string          `json:"keywords,omitempty"`
	Source     Source            `json:"source"`
	Confidence float64           `json:"confidence"`
	Summary    string            `json:"summary,omitempty"`
}

// Default returns the neutral intent used when a prompt cannot be
// interpreted at all: no sector, whole city, zero magnitude.
func Default() Intent {
	return Intent{
		Sector:     geography.SectorOther,
		Borough:    geography.BoroughAll,
		Magnitude:  0,
		Source:     SourceDefault,
		Confidence: 0.2,
		Summary:    "no recognizable emission scenario",
	}
}

// Hash returns a stable 64-bit digest of the fields that influence pattern
// generation. Prompts that extract to the same intent simulate identically.
func (in Intent) Hash() uint64 {
	h := fnv.New64a()
	fmt.Fprintf(h, "%s|%s|%.4f", in.Sector, in.Borough, in.Magnitude)
	for _, kw := range in.Keywords {
		h.Write([]byte{'|'})
		h.Write([]byte(kw))
	}
	return h.Sum64()
}

// String renders a compact human-readable form for logs.
func (in Intent) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s/%s %+.1f%%", in.Sector, in.Borough, in.Magnitude)
	if len(in.Keywords) > 0 {
		fmt.Fprintf(&b, " [%s]", strings.Join(in.Keywords, ","))
	}
	return b.String()
}
