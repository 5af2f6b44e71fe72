package intent

import (
	"context"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/carboniq/carboniq/internal/geography"
)

// RuleExtractor interprets prompts with keyword tables. It is the fallback
// when no Claude API key is configured or the API call fails, and it never
// returns an error: unintelligible prompts yield the neutral default.
type RuleExtractor struct{}

// NewRuleExtractor returns a keyword-table extractor.
func NewRuleExtractor() *RuleExtractor {
	return &RuleExtractor{}
}

var percentPattern = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*(?:%|percent\b)`)

// sectorWords lists the single-token triggers for each sector. Tokens come
// from the folded prompt.
var sectorWords = map[geography.Sector][]string{
	geography.SectorTransport: {
		"traffic", "taxi", "taxis", "cab", "cabs", "car", "cars", "truck",
		"trucks", "vehicle", "vehicles", "bus", "buses", "subway", "rail",
		"transit", "congestion", "commute", "ev", "evs", "flight", "flights",
		"aviation", "airport",
	},
	geography.SectorBuildings: {
		"building", "buildings", "heating", "hvac", "boiler", "boilers",
		"retrofit", "retrofits", "insulation", "housing", "office", "offices",
		"skyscraper", "skyscrapers",
	},
	geography.SectorIndustry: {
		"factory", "factories", "industrial", "industry", "manufacturing",
		"warehouse", "warehouses", "port", "ports",
	},
	geography.SectorEnergy: {
		"energy", "electricity", "grid", "solar", "wind", "renewable",
		"renewables",
	},
	geography.SectorNature: {
		"tree", "trees", "park", "parks", "garden", "gardens", "forest",
		"greenery",
	},
}

// genericWords are emission terms that make a prompt relevant without
// naming a sector. They resolve to transport, the dominant sector citywide.
var genericWords = []string{
	"emission", "emissions", "carbon", "co2", "pollution", "greenhouse",
	"footprint",
}

// sectorPhrases are multi-word triggers checked by substring. They take
// precedence over single tokens so "power plant" lands on energy, not
// nature's "plant".
var sectorPhrases = map[string]geography.Sector{
	"power plant":      geography.SectorEnergy,
	"power plants":     geography.SectorEnergy,
	"green roof":       geography.SectorNature,
	"green roofs":      geography.SectorNature,
	"green space":      geography.SectorNature,
	"electric vehicle": geography.SectorTransport,
}

// boroughKeywords includes landmark aliases resolved to their borough.
var boroughKeywords = map[string]geography.Borough{
	"manhattan":     geography.BoroughManhattan,
	"midtown":       geography.BoroughManhattan,
	"downtown":      geography.BoroughManhattan,
	"harlem":        geography.BoroughManhattan,
	"brooklyn":      geography.BoroughBrooklyn,
	"queens":        geography.BoroughQueens,
	"jfk":           geography.BoroughQueens,
	"lga":           geography.BoroughQueens,
	"laguardia":     geography.BoroughQueens,
	"bronx":         geography.BoroughBronx,
	"staten island": geography.BoroughStatenIsland,
}

var decreaseVerbs = []string{
	"reduce", "reducing", "cut", "cutting", "lower", "lowering", "decrease",
	"decreasing", "remove", "removing", "ban", "banning", "eliminate",
	"eliminating", "halve", "halving", "shrink", "limit", "limiting",
	"electrify", "electrifying", "retrofit", "retrofitting",
}

var increaseVerbs = []string{
	"increase", "increasing", "add", "adding", "raise", "raising", "grow",
	"growing", "double", "doubling", "expand", "expanding", "build",
	"boost", "boosting", "more", "plant", "planting", "convert",
	"converting", "install", "installing", "replace", "replacing",
}

// cleanTechWords flip "add X" into an emission decrease: adding solar panels
// or trees reduces emissions rather than raising them.
var cleanTechWords = []string{
	"solar", "wind", "renewable", "renewables", "ev", "evs", "electric",
	"tree", "trees", "park", "parks", "green", "insulation", "retrofit",
	"retrofits", "bike", "bikes", "transit",
}

// foldPrompt lowercases and strips diacritics so keyword tables match
// accented input.
func foldPrompt(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, strings.ToLower(s))
	if err != nil {
		return strings.ToLower(s)
	}
	return folded
}

func tokenize(folded string) []string {
	return strings.FieldsFunc(folded, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '%' && r != '.'
	})
}

// Extract interprets prompt against the keyword tables. The returned error
// is always nil; the signature matches the Extractor interface.
func (e *RuleExtractor) Extract(_ context.Context, prompt string) (Intent, error) {
	folded := foldPrompt(prompt)
	tokens := tokenize(folded)
	tokenSet := make(map[string]bool, len(tokens))
	for _, tok := range tokens {
		tokenSet[strings.TrimSuffix(tok, "%")] = true
	}

	keywords := make(map[string]bool)

	sector, sectorFound := matchSector(folded, tokenSet, keywords)
	borough := matchBorough(folded, keywords)
	direction, directionFound := matchDirection(tokenSet, keywords)

	// A prompt is only an emission scenario if it names something emitting.
	// "What is the weather" matches no sector term.
	if !sectorFound {
		return Default(), nil
	}

	magnitude := matchMagnitude(folded, tokenSet)
	// Without an explicit action verb ("JFK emissions") the intervention
	// reads as a reduction.
	if !directionFound || direction < 0 {
		magnitude = -magnitude
	}

	sorted := make([]string, 0, len(keywords))
	for kw := range keywords {
		sorted = append(sorted, kw)
	}
	sort.Strings(sorted)

	return Intent{
		Sector:     sector,
		Borough:    borough,
		Magnitude:  magnitude,
		Keywords:   sorted,
		Source:     SourceRules,
		Confidence: 0.6,
		Summary:    summarize(sector, borough, magnitude),
	}, nil
}

func matchSector(folded string, tokenSet map[string]bool, keywords map[string]bool) (geography.Sector, bool) {
	for phrase, s := range sectorPhrases {
		if strings.Contains(folded, phrase) {
			keywords[phrase] = true
			return s, true
		}
	}
	// First matching sector in canonical order keeps results stable when a
	// prompt mentions several.
	order := []geography.Sector{
		geography.SectorTransport,
		geography.SectorBuildings,
		geography.SectorIndustry,
		geography.SectorEnergy,
		geography.SectorNature,
	}
	for _, s := range order {
		matched := false
		for _, word := range sectorWords[s] {
			if tokenSet[word] {
				keywords[word] = true
				matched = true
			}
		}
		if matched {
			return s, true
		}
	}
	// Generic terms carry no sector of their own but keep the prompt in
	// scope.
	for _, word := range genericWords {
		if tokenSet[word] {
			keywords[word] = true
			return geography.SectorTransport, true
		}
	}
	return geography.SectorOther, false
}

func matchBorough(folded string, keywords map[string]bool) geography.Borough {
	names := make([]string, 0, len(boroughKeywords))
	for name := range boroughKeywords {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if strings.Contains(folded, name) {
			keywords[name] = true
			return boroughKeywords[name]
		}
	}
	return geography.BoroughAll
}

func matchDirection(tokenSet map[string]bool, keywords map[string]bool) (int, bool) {
	cleanTech := false
	for _, w := range cleanTechWords {
		if tokenSet[w] {
			cleanTech = true
			break
		}
	}
	for _, v := range decreaseVerbs {
		if tokenSet[v] {
			keywords[v] = true
			return -1, true
		}
	}
	for _, v := range increaseVerbs {
		if tokenSet[v] {
			keywords[v] = true
			// Adding clean infrastructure lowers emissions.
			if cleanTech {
				return -1, true
			}
			return 1, true
		}
	}
	return 0, false
}

func matchMagnitude(folded string, tokenSet map[string]bool) float64 {
	if m := percentPattern.FindStringSubmatch(folded); m != nil {
		if v, err := strconv.ParseFloat(m[1], 64); err == nil {
			return clampPercent(v)
		}
	}
	switch {
	case tokenSet["double"] || tokenSet["doubling"]:
		return 100
	case tokenSet["half"] || tokenSet["halve"] || tokenSet["halving"]:
		return 50
	case tokenSet["quarter"]:
		return 25
	}
	// No number in the prompt: a modest default change.
	return 20
}

func clampPercent(v float64) float64 {
	if v > 100 {
		return 100
	}
	if v < 0 {
		return 0
	}
	return v
}

func summarize(sector geography.Sector, borough geography.Borough, magnitude float64) string {
	dir := "increase"
	if magnitude < 0 {
		dir = "decrease"
	}
	if magnitude == 0 {
		dir = "no change to"
	}
	area := "citywide"
	if borough != geography.BoroughAll {
		area = "in " + borough.DisplayName()
	}
	return strings.TrimSpace(strings.Join([]string{dir, string(sector), "emissions", area}, " "))
}
