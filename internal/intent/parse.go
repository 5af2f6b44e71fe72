package intent

import (
	"encoding/json"
	"regexp"
	"sort"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/carboniq/carboniq/internal/geography"
)

// analysis mirrors the JSON object the system prompt asks Claude for.
type analysis struct {
	Related    bool     `json:"related"`
	Sector     string   `json:"sector"`
	Borough    string   `json:"borough"`
	Direction  string   `json:"direction"`
	Percent    float64  `json:"percent"`
	Keywords   []string `json:"keywords"`
	Confidence float64  `json:"confidence"`
	Summary    string   `json:"summary"`
}

var thousandsSeparator = regexp.MustCompile(`(\d),(\d{3})`)

// parseAnalysis decodes a model response into an Intent. Model output is
// cleaned first: markdown fences stripped, text outside the outermost JSON
// object dropped, thousands separators inside numbers removed.
func parseAnalysis(raw string) (Intent, error) {
	cleaned := cleanModelJSON(raw)
	if cleaned == "" {
		return Intent{}, eris.New("intent: no JSON object in model response")
	}

	var a analysis
	if err := json.Unmarshal([]byte(cleaned), &a); err != nil {
		return Intent{}, eris.Wrap(err, "intent: decode model response")
	}

	if !a.Related {
		return Default(), nil
	}

	magnitude := clampPercent(a.Percent)
	switch strings.ToLower(a.Direction) {
	case "decrease":
		magnitude = -magnitude
	case "none":
		magnitude = 0
	}

	confidence := a.Confidence
	if confidence <= 0 || confidence > 1 {
		confidence = 0.9
	}

	return Intent{
		Sector:     geography.ParseSector(a.Sector),
		Borough:    geography.ParseBorough(a.Borough),
		Magnitude:  magnitude,
		Keywords:   normalizeKeywords(a.Keywords),
		Source:     SourceClaude,
		Confidence: confidence,
		Summary:    strings.TrimSpace(a.Summary),
	}, nil
}

// cleanModelJSON extracts the outermost JSON object from a model response,
// tolerating markdown fences and stray prose around it.
func cleanModelJSON(raw string) string {
	s := strings.TrimSpace(raw)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")

	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start < 0 || end <= start {
		return ""
	}
	s = s[start : end+1]

	// Models occasionally write 1,000 inside numeric fields.
	for thousandsSeparator.MatchString(s) {
		s = thousandsSeparator.ReplaceAllString(s, "$1$2")
	}
	return s
}

// normalizeKeywords folds, dedups, sorts, and caps the keyword list so it is
// stable input for the pattern hash.
func normalizeKeywords(words []string) []string {
	seen := make(map[string]bool, len(words))
	out := make([]string, 0, len(words))
	for _, w := range words {
		folded := strings.TrimSpace(foldPrompt(w))
		if folded == "" || seen[folded] {
			continue
		}
		seen[folded] = true
		out = append(out, folded)
	}
	sort.Strings(out)
	if len(out) > 6 {
		out = out[:6]
	}
	return out
}
