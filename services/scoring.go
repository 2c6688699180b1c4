package services

import (
	"fmt"
	"sort"
	"time"

	"aynamodaapi/models"

	"github.com/getsentry/sentry-go"
)

// ScoringWeights combines the per-axis scores into the final one. The
// relative ordering matters more than the exact values; confidence leads,
// compatibility and satisfaction follow, novelty stays small.
type ScoringWeights struct {
	Confidence      float64
	Compatibility   float64
	Satisfaction    float64
	Contextual      float64
	Novelty         float64
	ColorPreference float64
}

var DefaultScoringWeights = ScoringWeights{
	Confidence:      0.30,
	Compatibility:   0.20,
	Satisfaction:    0.20,
	Contextual:      0.15,
	Novelty:         0.10,
	ColorPreference: 0.05,
}

const (
	// no candidate is ever presented as zero-confidence
	ConfidenceFloor   = 0.2
	ConfidenceCeiling = 0.95
	confidenceBase    = 0.5

	satisfactionBase = 0.5

	// defense in depth beyond the generator's hard exclusion
	redPinkPenalty = 0.5

	// candidate overlap with a badly rated pattern above this drops it
	badPatternOverlapThreshold = 0.6
	badPatternRatingCutoff     = 3.0
	lowRatedItemCutoff         = 3.3

	rediscoveryBonus = 0.1
	maxUsageBonus    = 0.15

	topRecommendationCount = 3
)

// WearRecord is one historical selection of an exact item set, derived from
// feedback history. Novelty scoring reads these.
type WearRecord struct {
	ItemIDs []uint
	WornAt  time.Time
}

// ScoredOutfit is a ranked candidate with its breakdown.
type ScoredOutfit struct {
	Combination   OutfitCombination
	Breakdown     models.ScoreBreakdown
	IsQuickOption bool
}

type RecommendationEngine struct {
	Weights    ScoringWeights
	Generation GenerationProfile
}

func NewRecommendationEngine() *RecommendationEngine {
	return &RecommendationEngine{
		Weights:    DefaultScoringWeights,
		Generation: DefaultGenerationProfile,
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// overlapFraction returns |a ∩ b| / |candidate items|.
func overlapFraction(candidate []models.WardrobeItem, historical []uint) float64 {
	if len(candidate) == 0 {
		return 0
	}
	set := map[uint]bool{}
	for _, id := range historical {
		set[id] = true
	}
	matches := 0
	for _, item := range candidate {
		if set[item.ID] {
			matches++
		}
	}
	return float64(matches) / float64(len(candidate))
}

// CalculateConfidenceScore estimates how good this outfit will make the
// user feel, from overlapping feedback history, usage stats and a
// rediscovery bonus for neglected pieces. Result is clamped to
// [ConfidenceFloor, ConfidenceCeiling].
func CalculateConfidenceScore(combo OutfitCombination, history []models.OutfitFeedback, now time.Time) float64 {
	// weighted history contributions plus one default entry so sparse
	// history never dominates
	total := confidenceBase
	entries := 1
	for _, fb := range history {
		overlap := overlapFraction(combo.Items, fb.ItemIDSet())
		if overlap <= 0 {
			continue
		}
		total += overlap * (fb.ConfidenceRating / 5.0)
		entries++
	}
	score := total / float64(entries)

	if len(combo.Items) > 0 {
		var wears int
		for _, item := range combo.Items {
			wears += item.TotalWears
		}
		avgWears := float64(wears) / float64(len(combo.Items))
		usageBonus := avgWears * 0.01
		if usageBonus > maxUsageBonus {
			usageBonus = maxUsageBonus
		}
		score += usageBonus
	}

	for _, item := range combo.Items {
		if IsNeglected(item, now) {
			score += rediscoveryBonus
			break
		}
	}

	return clamp(score, ConfidenceFloor, ConfidenceCeiling)
}

// CalculateSatisfactionScore measures alignment with the user's profile:
// preferred colors (slightly amplified), preferred styles, and historical
// confidence-pattern overlap.
func CalculateSatisfactionScore(combo OutfitCombination, profile *models.StyleProfile) float64 {
	score := satisfactionBase
	if profile == nil {
		return score
	}

	colors := MergedColors(combo.Items)
	if len(colors) > 0 {
		matched := 0
		for _, color := range colors {
			if profile.PrefersColor(color) {
				matched++
			}
		}
		alignment := float64(matched) / float64(len(colors)) * 1.2
		if alignment > 1 {
			alignment = 1
		}
		score += alignment * 0.2
	}

	preferredStyles := map[string]bool{}
	for _, s := range profile.PreferredStyles {
		preferredStyles[normalizeTag(s)] = true
	}
	var tagCount, tagMatched int
	for _, item := range combo.Items {
		for _, raw := range item.Tags {
			tagCount++
			if preferredStyles[normalizeTag(raw)] {
				tagMatched++
			}
		}
	}
	if tagCount > 0 {
		score += float64(tagMatched) / float64(tagCount) * 0.15
	}

	if pattern := profile.PatternByKey(combo.ItemKey()); pattern != nil {
		score += (pattern.AverageRating / 5.0) * 0.15
	}

	return clamp(score, 0, 1)
}

// timeOfDayScore favors work-appropriate tags in the morning and
// elegant/dressy ones in the evening.
func timeOfDayScore(items []models.WardrobeItem, at time.Time) float64 {
	if len(items) == 0 {
		return 0.5
	}
	var tags []string
	switch hour := at.Hour(); {
	case hour < 12:
		tags = []string{"work", "office", "professional", "business"}
	case hour >= 18:
		tags = []string{"elegant", "dressy", "evening", "date-night"}
	default:
		return 0.7
	}
	matched := 0
	for _, item := range items {
		if itemHasAnyTag(item, tags...) {
			matched++
		}
	}
	return 0.5 + 0.5*float64(matched)/float64(len(items))
}

// CalculateContextualRelevance blends weather, occasion, time of day and
// preference alignment into one [0,1] score.
func CalculateContextualRelevance(combo OutfitCombination, rctx models.RecommendationContext) float64 {
	weatherScore := OutfitWeatherScore(combo.Items, rctx.Weather)
	occasionScore := OccasionCompatibility(combo.Items, rctx.Calendar)
	todScore := timeOfDayScore(combo.Items, rctx.Date)

	prefScore := 0.5
	if len(combo.Items) > 0 {
		var ratingTotal float64
		colorHits := 0
		for _, item := range combo.Items {
			ratingTotal += item.AverageRating
			if rctx.Profile != nil {
				for _, raw := range item.Colors {
					if rctx.Profile.PrefersColor(NormalizeColor(raw)) {
						colorHits++
						break
					}
				}
			}
		}
		avgRating := ratingTotal / float64(len(combo.Items)) / 5.0
		colorPresence := float64(colorHits) / float64(len(combo.Items))
		prefScore = 0.5*avgRating + 0.5*colorPresence
	}

	score := weatherScore*0.4 + occasionScore*0.3 + todScore*0.15 + prefScore*0.15
	return clamp(score, 0, 1)
}

// CalculateNoveltyScore rewards combinations not recently, or never,
// selected. Entirely new item sets score highest; a monotonic step function
// interpolates by days since last worn.
func CalculateNoveltyScore(combo OutfitCombination, wears []WearRecord, now time.Time) float64 {
	key := combo.ItemKey()
	var lastWorn *time.Time
	for _, record := range wears {
		if ItemSetKey(record.ItemIDs) != key {
			continue
		}
		if lastWorn == nil || record.WornAt.After(*lastWorn) {
			t := record.WornAt
			lastWorn = &t
		}
	}
	if lastWorn == nil {
		return 1.0
	}
	days := now.Sub(*lastWorn).Hours() / 24
	switch {
	case days <= 7:
		return 0.2
	case days <= 14:
		return 0.5
	case days <= 30:
		return 0.7
	default:
		return 0.9
	}
}

// preferredColorPresence is the fraction of the outfit's colors the user
// prefers; used for the small color bonus term.
func preferredColorPresence(combo OutfitCombination, profile *models.StyleProfile) float64 {
	if profile == nil {
		return 0
	}
	colors := MergedColors(combo.Items)
	if len(colors) == 0 {
		return 0
	}
	matched := 0
	for _, color := range colors {
		if profile.PrefersColor(color) {
			matched++
		}
	}
	return float64(matched) / float64(len(colors))
}

// ScoreCombination produces the full per-axis breakdown for one candidate.
// A panic in any sub-scorer is replaced by neutral values so one bad item
// never aborts the batch.
func (e *RecommendationEngine) ScoreCombination(combo OutfitCombination, rctx models.RecommendationContext, history []models.OutfitFeedback, wears []WearRecord) (breakdown models.ScoreBreakdown) {
	defer func() {
		if r := recover(); r != nil {
			sentry.CaptureException(fmt.Errorf("scoring panic for combo %s: %v", combo.ItemKey(), r))
			breakdown = models.ScoreBreakdown{
				Compatibility: NeutralCompatibilityScore,
				Confidence:    confidenceBase,
				Satisfaction:  satisfactionBase,
				Contextual:    0.5,
				Novelty:       0.5,
				Final:         0.5,
			}
		}
	}()

	breakdown.Compatibility = CalculateOutfitCompatibility(combo.Items)
	breakdown.Confidence = CalculateConfidenceScore(combo, history, rctx.Date)
	breakdown.Satisfaction = CalculateSatisfactionScore(combo, rctx.Profile)
	breakdown.Contextual = CalculateContextualRelevance(combo, rctx)
	breakdown.Novelty = CalculateNoveltyScore(combo, wears, rctx.Date)

	final := breakdown.Confidence*e.Weights.Confidence +
		breakdown.Compatibility*e.Weights.Compatibility +
		breakdown.Satisfaction*e.Weights.Satisfaction +
		breakdown.Contextual*e.Weights.Contextual +
		breakdown.Novelty*e.Weights.Novelty +
		preferredColorPresence(combo, rctx.Profile)*e.Weights.ColorPreference

	if HasRedPinkClash(combo.Items) {
		final -= redPinkPenalty
	}
	breakdown.Final = clamp(final, 0, 1)
	return breakdown
}

// filterCandidates drops candidates overlapping badly rated confidence
// patterns or containing notably low-rated items, but never filters below 3
// remaining candidates.
func filterCandidates(combos []OutfitCombination, profile *models.StyleProfile) []OutfitCombination {
	remaining := combos

	if profile != nil {
		var badPatterns []models.ConfidencePattern
		for _, pattern := range profile.ConfidencePatterns {
			if pattern.AverageRating < badPatternRatingCutoff {
				badPatterns = append(badPatterns, pattern)
			}
		}
		if len(badPatterns) > 0 {
			kept := make([]OutfitCombination, 0, len(remaining))
			for _, combo := range remaining {
				bad := false
				for _, pattern := range badPatterns {
					if overlapFraction(combo.Items, pattern.ItemIDs) > badPatternOverlapThreshold {
						bad = true
						break
					}
				}
				if !bad {
					kept = append(kept, combo)
				}
			}
			if len(kept) >= topRecommendationCount {
				remaining = kept
			}
		}
	}

	// drop candidates containing low-rated items only when enough
	// alternatives without them exist
	kept := make([]OutfitCombination, 0, len(remaining))
	for _, combo := range remaining {
		low := false
		for _, item := range combo.Items {
			if item.TotalWears > 0 && item.AverageRating > 0 && item.AverageRating < lowRatedItemCutoff {
				low = true
				break
			}
		}
		if !low {
			kept = append(kept, combo)
		}
	}
	if len(kept) >= topRecommendationCount {
		return kept
	}
	return remaining
}

// diversify keeps the top candidate and admits later ones only when they
// introduce a new category or enough new colors, backfilling to the top-N
// from the skipped pool.
func diversify(ranked []ScoredOutfit) []ScoredOutfit {
	if len(ranked) <= 1 {
		return ranked
	}
	selected := make([]ScoredOutfit, 0, topRecommendationCount)
	var skipped []ScoredOutfit
	usedCategories := map[models.GarmentCategory]bool{}
	usedColors := map[string]bool{}

	take := func(s ScoredOutfit) {
		selected = append(selected, s)
		for _, item := range s.Combination.Items {
			usedCategories[item.Category] = true
		}
		for _, color := range MergedColors(s.Combination.Items) {
			usedColors[color] = true
		}
	}

	take(ranked[0])
	for _, candidate := range ranked[1:] {
		if len(selected) >= topRecommendationCount {
			break
		}
		newCategory := false
		for _, item := range candidate.Combination.Items {
			if !usedCategories[item.Category] {
				newCategory = true
				break
			}
		}
		newColors := 0
		for _, color := range MergedColors(candidate.Combination.Items) {
			if !usedColors[color] {
				newColors++
			}
		}
		if newCategory || newColors > 2 || len(selected) < 2 {
			take(candidate)
		} else {
			skipped = append(skipped, candidate)
		}
	}
	for _, candidate := range skipped {
		if len(selected) >= topRecommendationCount {
			break
		}
		take(candidate)
	}
	return selected
}

// Rank scores, filters, sorts and diversifies the candidates, returning the
// top 3 with the first flagged as the quick option.
func (e *RecommendationEngine) Rank(combos []OutfitCombination, rctx models.RecommendationContext, history []models.OutfitFeedback, wears []WearRecord) []ScoredOutfit {
	if len(combos) == 0 {
		return []ScoredOutfit{}
	}

	candidates := filterCandidates(combos, rctx.Profile)

	scored := make([]ScoredOutfit, 0, len(candidates))
	for _, combo := range candidates {
		scored = append(scored, ScoredOutfit{
			Combination: combo,
			Breakdown:   e.ScoreCombination(combo, rctx, history, wears),
		})
	}
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Breakdown.Final > scored[j].Breakdown.Final
	})

	top := diversify(scored)
	if len(top) > 0 {
		top[0].IsQuickOption = true
	}
	return top
}
