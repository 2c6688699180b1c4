package services

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"aynamodaapi/models"

	"github.com/getsentry/sentry-go"
)

const (
	// feedback history window the analyzer reads, newest first
	ProfileFeedbackLimit = 100

	preferenceListLimit = 10
	// recent emotional responses kept per confidence pattern
	patternEmotionLimit = 5
)

var fitKeywords = map[string][]string{
	"slim-fit":    {"slim", "fitted"},
	"relaxed-fit": {"loose", "relaxed", "oversized"},
	"regular-fit": {"regular", "standard"},
}

var silhouetteKeywords = map[string][]string{
	"a-line":     {"a-line", "flare"},
	"straight":   {"straight", "column"},
	"high-waist": {"empire", "high-waist"},
}

type frequencyEntry struct {
	value string
	count int
}

func sortedByFrequency(counts map[string]int) []frequencyEntry {
	entries := make([]frequencyEntry, 0, len(counts))
	for value, count := range counts {
		entries = append(entries, frequencyEntry{value, count})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].count != entries[j].count {
			return entries[i].count > entries[j].count
		}
		return entries[i].value < entries[j].value
	})
	return entries
}

func topValues(entries []frequencyEntry, limit int) []string {
	values := make([]string, 0, limit)
	for _, entry := range entries {
		if len(values) >= limit {
			break
		}
		values = append(values, entry.value)
	}
	return values
}

// analyzeColorPreferences frequency-counts wardrobe colors. Colors worn on
// at least 2 items win, unless that leaves fewer than 3, in which case the
// full ranked list is used.
func analyzeColorPreferences(wardrobe []models.WardrobeItem) []string {
	counts := map[string]int{}
	for _, item := range wardrobe {
		for _, raw := range item.Colors {
			color := NormalizeColor(raw)
			if color != "" {
				counts[color]++
			}
		}
	}
	entries := sortedByFrequency(counts)
	var frequent []frequencyEntry
	for _, entry := range entries {
		if entry.count >= 2 {
			frequent = append(frequent, entry)
		}
	}
	if len(frequent) >= 3 {
		return topValues(frequent, preferenceListLimit)
	}
	return topValues(entries, preferenceListLimit)
}

// styleTagThreshold adapts to wardrobe size: small wardrobes keep everything
// so results are never empty, large ones filter noise.
func styleTagThreshold(wardrobeSize int) int {
	switch {
	case wardrobeSize < 10:
		return 1
	case wardrobeSize < 30:
		return 2
	default:
		return 3
	}
}

func analyzeStylePreferences(wardrobe []models.WardrobeItem) []string {
	counts := map[string]int{}
	for _, item := range wardrobe {
		for _, raw := range item.Tags {
			tag := normalizeTag(raw)
			if tag != "" {
				counts[tag]++
			}
		}
	}
	entries := sortedByFrequency(counts)
	threshold := styleTagThreshold(len(wardrobe))
	var frequent []frequencyEntry
	for _, entry := range entries {
		if entry.count >= threshold {
			frequent = append(frequent, entry)
		}
	}
	if len(frequent) >= 3 {
		return topValues(frequent, preferenceListLimit)
	}
	return topValues(entries, preferenceListLimit)
}

func countKeywordGroups(wardrobe []models.WardrobeItem, groups map[string][]string) map[string]int {
	counts := map[string]int{}
	for _, item := range wardrobe {
		text := strings.ToLower(strings.Join(item.Tags, " "))
		if item.FitNotes != nil {
			text += " " + strings.ToLower(*item.FitNotes)
		}
		for name, keywords := range groups {
			for _, keyword := range keywords {
				if strings.Contains(text, keyword) {
					counts[name]++
					break
				}
			}
		}
	}
	return counts
}

func analyzeBodyTypePreferences(wardrobe []models.WardrobeItem) []string {
	fits := topValues(sortedByFrequency(countKeywordGroups(wardrobe, fitKeywords)), 2)
	silhouettes := topValues(sortedByFrequency(countKeywordGroups(wardrobe, silhouetteKeywords)), 2)
	preferences := append(fits, silhouettes...)
	if len(preferences) == 0 {
		return []string{"regular-fit", "versatile"}
	}
	return preferences
}

// deriveContextFactors extracts the context labels a feedback entry was
// recorded under: weather, occasion, time of day, season, dominant emotion.
func deriveContextFactors(fb models.OutfitFeedback) []string {
	var factors []string
	if fb.WeatherCondition != "" {
		factors = append(factors, "weather:"+fb.WeatherCondition)
	}
	if fb.WeatherTemperature != nil {
		factors = append(factors, "temperature:"+TemperatureBand(*fb.WeatherTemperature))
	}
	if fb.Occasion != "" {
		factors = append(factors, "occasion:"+normalizeTag(fb.Occasion))
	}
	at := fb.CreatedAt
	if fb.WornAt != nil {
		at = *fb.WornAt
	}
	switch hour := at.Hour(); {
	case hour < 12:
		factors = append(factors, "time:morning")
	case hour < 18:
		factors = append(factors, "time:afternoon")
	default:
		factors = append(factors, "time:evening")
	}
	switch at.Month() {
	case time.December, time.January, time.February:
		factors = append(factors, "season:winter")
	case time.March, time.April, time.May:
		factors = append(factors, "season:spring")
	case time.June, time.July, time.August:
		factors = append(factors, "season:summer")
	default:
		factors = append(factors, "season:autumn")
	}
	if fb.Emotional.Primary != "" {
		factors = append(factors, "emotion:"+normalizeTag(fb.Emotional.Primary))
	}
	return factors
}

func dedupe(values []string) []string {
	seen := map[string]bool{}
	var out []string
	for _, v := range values {
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	return out
}

func analyzeConfidencePatterns(feedback []models.OutfitFeedback) []models.ConfidencePattern {
	groups := map[string][]models.OutfitFeedback{}
	var order []string
	for _, fb := range feedback {
		key := ItemSetKey(fb.ItemIDSet())
		if key == "" {
			continue
		}
		if _, ok := groups[key]; !ok {
			order = append(order, key)
		}
		groups[key] = append(groups[key], fb)
	}

	var patterns []models.ConfidencePattern
	for _, key := range order {
		group := groups[key]
		if len(group) < 2 {
			continue
		}
		var ratingTotal float64
		var factors []string
		var emotions []string
		for _, fb := range group {
			ratingTotal += fb.ConfidenceRating
			factors = append(factors, deriveContextFactors(fb)...)
			if fb.Emotional.Primary != "" {
				emotions = append(emotions, fb.Emotional.Primary)
			}
		}
		if len(emotions) > patternEmotionLimit {
			emotions = emotions[len(emotions)-patternEmotionLimit:]
		}
		patterns = append(patterns, models.ConfidencePattern{
			ItemKey:            key,
			ItemIDs:            group[0].ItemIDSet(),
			AverageRating:      ratingTotal / float64(len(group)),
			ContextFactors:     dedupe(factors),
			EmotionalResponses: emotions,
			TimesRecorded:      len(group),
		})
	}
	return patterns
}

func analyzeOccasionPreferences(feedback []models.OutfitFeedback) map[string]float64 {
	totals := map[string]float64{}
	counts := map[string]int{}
	for _, fb := range feedback {
		occasion := normalizeTag(fb.Occasion)
		if occasion == "" {
			continue
		}
		totals[occasion] += fb.ConfidenceRating
		counts[occasion]++
	}
	averages := map[string]float64{}
	for occasion, total := range totals {
		averages[occasion] = total / float64(counts[occasion])
	}
	return averages
}

// AnalyzeStyleProfile aggregates a user's wardrobe and recent feedback into
// their preference summary. An empty-but-reachable data source yields a
// valid empty profile; the anomaly is reported, not treated as a failure.
func AnalyzeStyleProfile(userID uint, wardrobe []models.WardrobeItem, feedback []models.OutfitFeedback) *models.StyleProfile {
	if len(wardrobe) == 0 && len(feedback) == 0 {
		// the old client treated this as a connectivity failure; a genuinely
		// empty account is valid, so only flag it
		sentry.CaptureMessage(fmt.Sprintf("[Profile] empty wardrobe and feedback for user %d, building empty profile", userID))
	}

	now := time.Now().UTC()
	return &models.StyleProfile{
		OwnerID:             userID,
		PreferredColors:     analyzeColorPreferences(wardrobe),
		PreferredStyles:     analyzeStylePreferences(wardrobe),
		BodyTypePreferences: analyzeBodyTypePreferences(wardrobe),
		OccasionPreferences: analyzeOccasionPreferences(feedback),
		ConfidencePatterns:  analyzeConfidencePatterns(feedback),
		LastAnalyzedAt:      &now,
	}
}

// UpdateProfileWithFeedback merges one new feedback entry into the profile
// without a full re-analysis: the matching confidence pattern is averaged
// in (two-point average) and the occasion preference is blended.
func UpdateProfileWithFeedback(profile *models.StyleProfile, fb models.OutfitFeedback) {
	key := ItemSetKey(fb.ItemIDSet())
	if key != "" {
		if pattern := profile.PatternByKey(key); pattern != nil {
			pattern.AverageRating = (pattern.AverageRating + fb.ConfidenceRating) / 2
			pattern.ContextFactors = dedupe(append(pattern.ContextFactors, deriveContextFactors(fb)...))
			if fb.Emotional.Primary != "" {
				pattern.EmotionalResponses = append(pattern.EmotionalResponses, fb.Emotional.Primary)
				if len(pattern.EmotionalResponses) > patternEmotionLimit {
					pattern.EmotionalResponses = pattern.EmotionalResponses[len(pattern.EmotionalResponses)-patternEmotionLimit:]
				}
			}
			pattern.TimesRecorded++
		} else {
			var emotions []string
			if fb.Emotional.Primary != "" {
				emotions = []string{fb.Emotional.Primary}
			}
			profile.ConfidencePatterns = append(profile.ConfidencePatterns, models.ConfidencePattern{
				ItemKey:            key,
				ItemIDs:            fb.ItemIDSet(),
				AverageRating:      fb.ConfidenceRating,
				ContextFactors:     deriveContextFactors(fb),
				EmotionalResponses: emotions,
				TimesRecorded:      1,
			})
		}
	}

	if occasion := normalizeTag(fb.Occasion); occasion != "" {
		if profile.OccasionPreferences == nil {
			profile.OccasionPreferences = map[string]float64{}
		}
		if existing, ok := profile.OccasionPreferences[occasion]; ok {
			profile.OccasionPreferences[occasion] = (existing + fb.ConfidenceRating) / 2
		} else {
			profile.OccasionPreferences[occasion] = fb.ConfidenceRating
		}
	}
}
