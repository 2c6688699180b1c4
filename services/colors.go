package services

import (
	"fmt"
	"strings"

	"aynamodaapi/models"

	"github.com/getsentry/sentry-go"
)

// Pairwise harmony scores, checked in priority order. Neutrals pair with
// anything, so they get the highest boost.
const (
	harmonyNeutral       = 0.9
	harmonyComplementary = 0.85
	harmonySameFamily    = 0.8
	harmonyAnalogous     = 0.75
	harmonyTriadic       = 0.65
	harmonyClash         = 0.35

	// a single or uniform color is trivially harmonious
	harmonyUniform = 0.85

	// combinations of fewer than 2 items skip the pipeline entirely
	NeutralCompatibilityScore = 0.5
)

// compatibility sub-score weights, must sum to 1
const (
	colorHarmonyWeight     = 0.4
	styleConsistencyWeight = 0.25
	categoryBalanceWeight  = 0.2
	formalityWeight        = 0.15
)

var neutralColors = map[string]bool{
	"black": true,
	"white": true,
	"gray":  true,
	"grey":  true,
	"beige": true,
	"navy":  true,
	"brown": true,
}

var complementaryPairs = [][2]string{
	{"red", "green"},
	{"blue", "orange"},
	{"yellow", "purple"},
}

var analogousGroups = [][]string{
	{"red", "orange", "yellow"},
	{"yellow", "green", "teal"},
	{"green", "blue", "teal"},
	{"blue", "purple", "pink"},
}

var triadicGroups = [][]string{
	{"red", "yellow", "blue"},
	{"orange", "green", "purple"},
}

// common hex codes users actually enter for black/white/gray garments
var hexColorNames = map[string]string{
	"#000000": "black",
	"#000":    "black",
	"#ffffff": "white",
	"#fff":    "white",
	"#808080": "gray",
	"#c0c0c0": "gray",
	"#cccccc": "gray",
	"#d3d3d3": "gray",
}

var formalTags = map[string]bool{
	"formal":       true,
	"business":     true,
	"elegant":      true,
	"dressy":       true,
	"office":       true,
	"professional": true,
	"suit":         true,
}

var casualTags = map[string]bool{
	"casual":      true,
	"everyday":    true,
	"relaxed":     true,
	"sporty":      true,
	"weekend":     true,
	"comfortable": true,
	"streetwear":  true,
}

// NormalizeColor lowercases a color token and maps well-known hex codes to
// their names so the harmony tables match either form.
func NormalizeColor(raw string) string {
	color := strings.ToLower(strings.TrimSpace(raw))
	if named, ok := hexColorNames[color]; ok {
		return named
	}
	return color
}

// MergedColors returns the normalized union of all item colors, in first-seen
// order.
func MergedColors(items []models.WardrobeItem) []string {
	seen := map[string]bool{}
	var merged []string
	for _, item := range items {
		for _, raw := range item.Colors {
			color := NormalizeColor(raw)
			if color == "" || seen[color] {
				continue
			}
			seen[color] = true
			merged = append(merged, color)
		}
	}
	return merged
}

func inGroup(group []string, color string) bool {
	for _, g := range group {
		if g == color {
			return true
		}
	}
	return false
}

// colorPairHarmony scores one unordered color pair using the fixed rule
// table. Rules are checked in priority order; the first match wins.
func colorPairHarmony(a, b string) float64 {
	if neutralColors[a] || neutralColors[b] {
		return harmonyNeutral
	}
	for _, pair := range complementaryPairs {
		if (a == pair[0] && b == pair[1]) || (a == pair[1] && b == pair[0]) {
			return harmonyComplementary
		}
	}
	for _, group := range analogousGroups {
		if inGroup(group, a) && inGroup(group, b) {
			return harmonyAnalogous
		}
	}
	for _, group := range triadicGroups {
		if inGroup(group, a) && inGroup(group, b) {
			return harmonyTriadic
		}
	}
	// same family: "blue" vs "light blue"
	if a == b || strings.Contains(a, b) || strings.Contains(b, a) {
		return harmonySameFamily
	}
	return harmonyClash
}

// CalculateColorHarmony averages pairwise harmony over the combined color
// set of the outfit. Result is in [0,1].
func CalculateColorHarmony(items []models.WardrobeItem) float64 {
	colors := MergedColors(items)
	if len(colors) < 2 {
		return harmonyUniform
	}
	var total float64
	var pairs int
	for i := 0; i < len(colors); i++ {
		for j := i + 1; j < len(colors); j++ {
			total += colorPairHarmony(colors[i], colors[j])
			pairs++
		}
	}
	score := total / float64(pairs)
	if score > 1 {
		score = 1
	}
	return score
}

// CalculateStyleConsistency rewards tags shared across items: the fraction
// of distinct tags that appear on more than one item, relative to item count.
func CalculateStyleConsistency(items []models.WardrobeItem) float64 {
	if len(items) == 0 {
		return 0
	}
	counts := map[string]int{}
	for _, item := range items {
		seen := map[string]bool{}
		for _, raw := range item.Tags {
			tag := strings.ToLower(strings.TrimSpace(raw))
			if tag == "" || seen[tag] {
				continue
			}
			seen[tag] = true
			counts[tag]++
		}
	}
	shared := 0
	for _, c := range counts {
		if c > 1 {
			shared++
		}
	}
	consistency := float64(shared) / float64(len(items))
	if consistency > 1 {
		consistency = 1
	}
	return consistency
}

// CalculateCategoryBalance scores how many garment categories the outfit
// spans. 2-4 categories is the sweet spot.
func CalculateCategoryBalance(items []models.WardrobeItem) float64 {
	categories := map[models.GarmentCategory]bool{}
	for _, item := range items {
		categories[item.Category] = true
	}
	switch n := len(categories); {
	case n >= 2 && n <= 4:
		return 1.0
	case n == 1:
		return 0.4
	case n > 4:
		return 0.6
	default: // no items
		return 0
	}
}

// ClassifyItemFormality buckets an item as "formal", "casual" or "neutral"
// by tag intersection.
func ClassifyItemFormality(item models.WardrobeItem) string {
	for _, raw := range item.Tags {
		tag := strings.ToLower(strings.TrimSpace(raw))
		if formalTags[tag] {
			return "formal"
		}
	}
	for _, raw := range item.Tags {
		tag := strings.ToLower(strings.TrimSpace(raw))
		if casualTags[tag] {
			return "casual"
		}
	}
	return "neutral"
}

// CalculateFormalityConsistency rewards outfits that lean consistently
// formal or consistently casual.
func CalculateFormalityConsistency(items []models.WardrobeItem) float64 {
	if len(items) == 0 {
		return 0
	}
	var formal, casual int
	for _, item := range items {
		switch ClassifyItemFormality(item) {
		case "formal":
			formal++
		case "casual":
			casual++
		}
	}
	formalRatio := float64(formal) / float64(len(items))
	casualRatio := float64(casual) / float64(len(items))
	if formalRatio > casualRatio {
		return formalRatio
	}
	return casualRatio
}

// CalculateOutfitCompatibility combines the color/style heuristics into a
// single [0,1] score. Combinations of fewer than 2 items get a fixed
// neutral score. A scoring panic never aborts a batch; it falls back to the
// neutral score.
func CalculateOutfitCompatibility(items []models.WardrobeItem) (score float64) {
	defer func() {
		if r := recover(); r != nil {
			sentry.CaptureException(fmt.Errorf("outfit compatibility scoring panic: %v", r))
			score = NeutralCompatibilityScore
		}
	}()
	if len(items) < 2 {
		return NeutralCompatibilityScore
	}
	score = CalculateColorHarmony(items)*colorHarmonyWeight +
		CalculateStyleConsistency(items)*styleConsistencyWeight +
		CalculateCategoryBalance(items)*categoryBalanceWeight +
		CalculateFormalityConsistency(items)*formalityWeight
	if score < 0 {
		score = 0
	}
	if score > 1 {
		score = 1
	}
	return score
}
