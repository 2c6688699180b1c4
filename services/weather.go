package services

import (
	"strings"
	"time"

	"aynamodaapi/models"
)

// temperature bands, Fahrenheit
const (
	bandFreezing = "freezing" // < 32
	bandCold     = "cold"     // 32-50
	bandMild     = "mild"     // 50-68
	bandWarm     = "warm"     // 68-80
	bandHot      = "hot"      // >= 80
)

const (
	// occasion score when no calendar context exists: nothing to violate
	DefaultOccasionScore = 0.8

	// below this an item is considered weather-inappropriate and filtered
	// out of the candidate pool entirely
	weatherGateThreshold = 0.3

	// availability windows
	recentWearWindow   = 7 * 24 * time.Hour
	neglectWindow      = 30 * 24 * time.Hour
	justWornWindow     = 2 * 24 * time.Hour
	heavyRotationWears = 10
)

func TemperatureBand(tempF float64) string {
	switch {
	case tempF < 32:
		return bandFreezing
	case tempF < 50:
		return bandCold
	case tempF < 68:
		return bandMild
	case tempF < 80:
		return bandWarm
	default:
		return bandHot
	}
}

func itemHasAnyTag(item models.WardrobeItem, tags ...string) bool {
	for _, tag := range tags {
		if item.HasTag(tag) {
			return true
		}
	}
	return false
}

// ItemWeatherScore is a step function over temperature bands with
// band-specific tag/category bonuses, then condition adjustments, clamped
// to [0,1].
func ItemWeatherScore(item models.WardrobeItem, weather models.WeatherContext) float64 {
	var score float64
	switch TemperatureBand(weather.Temperature) {
	case bandFreezing:
		switch {
		case item.Category == models.CategoryOuterwear:
			score = 0.9
		case itemHasAnyTag(item, "winter", "heavy", "wool", "thermal", "fleece"):
			score = 0.85
		case itemHasAnyTag(item, "tank", "sleeveless", "linen", "light"):
			score = 0.2
		case item.Category == models.CategoryDresses:
			score = 0.35
		default:
			score = 0.5
		}
	case bandCold:
		switch {
		case item.Category == models.CategoryOuterwear:
			score = 0.8
		case itemHasAnyTag(item, "sweater", "long-sleeve", "wool", "winter"):
			score = 0.8
		case itemHasAnyTag(item, "tank", "sleeveless", "shorts", "linen"):
			score = 0.3
		default:
			score = 0.55
		}
	case bandMild:
		switch {
		case itemHasAnyTag(item, "heavy", "winter", "thermal"):
			score = 0.5
		case itemHasAnyTag(item, "light", "layer", "cardigan"):
			score = 0.8
		default:
			score = 0.75
		}
	case bandWarm:
		switch {
		case itemHasAnyTag(item, "heavy", "wool", "winter", "thermal"):
			score = 0.35
		case item.Category == models.CategoryOuterwear:
			score = 0.4
		case itemHasAnyTag(item, "light", "cotton", "short-sleeve", "breathable"):
			score = 0.85
		default:
			score = 0.7
		}
	case bandHot:
		switch {
		case itemHasAnyTag(item, "heavy", "wool", "winter", "thermal"):
			score = 0.15
		case item.Category == models.CategoryOuterwear:
			score = 0.25
		case itemHasAnyTag(item, "tank", "sleeveless", "linen", "breathable"):
			score = 0.9
		default:
			score = 0.6
		}
	}

	switch weather.Condition {
	case models.ConditionRainy:
		if itemHasAnyTag(item, "waterproof", "rain", "water-resistant") {
			score += 0.15
		}
		if itemHasAnyTag(item, "delicate", "silk", "suede") {
			score -= 0.2
		}
	case models.ConditionSnowy:
		if itemHasAnyTag(item, "waterproof", "insulated") {
			score += 0.15
		}
		if item.Category == models.CategoryShoes && !itemHasAnyTag(item, "waterproof", "boots") {
			score -= 0.25
		}
	case models.ConditionWindy:
		if item.Category == models.CategoryOuterwear || itemHasAnyTag(item, "wind-resistant", "windbreaker") {
			score += 0.1
		}
		if itemHasAnyTag(item, "loose", "flowy") {
			score -= 0.15
		}
	}

	if score < 0 {
		score = 0
	}
	if score > 1 {
		score = 1
	}
	return score
}

// OutfitWeatherScore is the mean of per-item scores, [0,1].
func OutfitWeatherScore(items []models.WardrobeItem, weather models.WeatherContext) float64 {
	if len(items) == 0 {
		return 0.5
	}
	var total float64
	for _, item := range items {
		total += ItemWeatherScore(item, weather)
	}
	return total / float64(len(items))
}

// OccasionCompatibility scores the fraction of items whose formality
// classification suits the calendar event's required level. Without a
// calendar context there is no occasion to violate.
func OccasionCompatibility(items []models.WardrobeItem, calendar *models.CalendarContext) float64 {
	if calendar == nil || calendar.PrimaryEvent == nil {
		return DefaultOccasionScore
	}
	if len(items) == 0 {
		return 0.5
	}
	level := calendar.PrimaryEvent.FormalityLevel
	compatible := 0
	for _, item := range items {
		cls := ClassifyItemFormality(item)
		switch level {
		case models.FormalityFormal:
			if cls == "formal" {
				compatible++
			}
		case models.FormalityBusiness:
			if cls == "formal" || cls == "neutral" {
				compatible++
			}
		default: // casual
			if cls == "casual" || cls == "neutral" {
				compatible++
			}
		}
	}
	return float64(compatible) / float64(len(items))
}

// IsNeglected reports whether the item has not been worn in over 30 days,
// or never at all.
func IsNeglected(item models.WardrobeItem, now time.Time) bool {
	if item.LastWorn == nil {
		return true
	}
	return now.Sub(*item.LastWorn) > neglectWindow
}

func isUnclean(item models.WardrobeItem, now time.Time) bool {
	if itemHasAnyTag(item, "dirty", "needs-cleaning", "at-cleaner") {
		return true
	}
	// heavy-rotation heuristic: worn a lot and worn very recently
	if item.TotalWears > heavyRotationWears && item.LastWorn != nil && now.Sub(*item.LastWorn) < justWornWindow {
		return true
	}
	return false
}

// FilterAvailableItems removes items that should not enter the candidate
// pool: recently worn (unless neglected long enough to be rediscovered),
// weather-inappropriate, or unclean.
func FilterAvailableItems(items []models.WardrobeItem, weather models.WeatherContext, now time.Time) []models.WardrobeItem {
	available := make([]models.WardrobeItem, 0, len(items))
	for _, item := range items {
		if isUnclean(item, now) {
			continue
		}
		if item.LastWorn != nil {
			since := now.Sub(*item.LastWorn)
			if since < recentWearWindow && since <= neglectWindow {
				continue
			}
		}
		if ItemWeatherScore(item, weather) < weatherGateThreshold {
			continue
		}
		available = append(available, item)
	}
	return available
}

// normalizeTag is shared by scorers that compare free-text tags.
func normalizeTag(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}
