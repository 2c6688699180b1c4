package models

import (
	"strings"
	"time"

	"github.com/lib/pq"
)

type WardrobeItem struct {
	JsonModel
	Name        string          `json:"name"`
	Description *string         `gorm:"type:text" json:"description"`
	Category    GarmentCategory `sql:"type:ENUM('tops', 'bottoms', 'dresses', 'shoes', 'outerwear', 'accessories', 'activewear')" json:"category"`
	// ordered color tokens, names or hex strings
	Colors pq.StringArray `gorm:"type:text[]" json:"colors"`
	// free-text descriptors: style, fabric, formality, weather suitability
	Tags     pq.StringArray `gorm:"type:text[]" json:"tags"`
	FitNotes *string        `gorm:"type:text" json:"fit_notes"`
	Owner    UserAccount    `json:"-"`
	OwnerID  uint           `json:"-"`

	// usage stats, mutated by wear-tracking events
	TotalWears          int        `gorm:"default:0" json:"total_wears"`
	AverageRating       float64    `gorm:"default:0" json:"average_rating"` // 0-5
	LastWorn            *time.Time `json:"last_worn"`
	ComplimentsReceived int        `gorm:"default:0" json:"compliments_received"`

	ImageURL *string `json:"image_url"`
}

// HasTag reports whether the item carries the given tag, case-insensitively.
func (w *WardrobeItem) HasTag(tag string) bool {
	for _, t := range w.Tags {
		if strings.EqualFold(t, tag) {
			return true
		}
	}
	return false
}
