package models

import (
	"time"

	"github.com/lib/pq"
)

// ConfidencePattern remembers how a specific item combination performed
// historically: its average rating, the contexts it was worn in and the
// emotions it produced.
type ConfidencePattern struct {
	// sorted, comma-joined item ids, e.g. "3,17,42"
	ItemKey            string   `json:"item_key"`
	ItemIDs            []uint   `json:"item_ids"`
	AverageRating      float64  `json:"average_rating"` // 0-5
	ContextFactors     []string `json:"context_factors"`
	EmotionalResponses []string `json:"emotional_responses"` // most recent 5
	TimesRecorded      int      `json:"times_recorded"`
}

// StyleProfile is the per-user aggregate of inferred preferences.
// Single writer per user; last write wins.
type StyleProfile struct {
	JsonModel
	Owner   UserAccount `json:"-"`
	OwnerID uint        `gorm:"uniqueIndex" json:"-"`

	PreferredColors     pq.StringArray      `gorm:"type:text[]" json:"preferred_colors"`
	PreferredStyles     pq.StringArray      `gorm:"type:text[]" json:"preferred_styles"`
	BodyTypePreferences pq.StringArray      `gorm:"type:text[]" json:"body_type_preferences"`
	OccasionPreferences map[string]float64  `gorm:"serializer:json" json:"occasion_preferences"`
	ConfidencePatterns  []ConfidencePattern `gorm:"serializer:json" json:"confidence_patterns"`
	LastAnalyzedAt      *time.Time          `json:"last_analyzed_at"`
}

// PatternByKey returns the matching confidence pattern, or nil.
func (p *StyleProfile) PatternByKey(key string) *ConfidencePattern {
	for i := range p.ConfidencePatterns {
		if p.ConfidencePatterns[i].ItemKey == key {
			return &p.ConfidencePatterns[i]
		}
	}
	return nil
}

// PrefersColor reports whether the color is one of the user's preferred ones.
func (p *StyleProfile) PrefersColor(color string) bool {
	for _, c := range p.PreferredColors {
		if c == color {
			return true
		}
	}
	return false
}
