package models

import (
	"time"

	"github.com/lib/pq"
)

// EmotionalResponse captures how an outfit made the user feel.
type EmotionalResponse struct {
	Primary    string   `json:"primary"`
	Intensity  int      `json:"intensity"` // 1-10
	Additional []string `json:"additional"`
}

type ComfortRating struct {
	Physical   float64 `json:"physical"`
	Emotional  float64 `json:"emotional"`
	Confidence float64 `json:"confidence"`
}

type SocialFeedback struct {
	Compliments int      `json:"compliments"`
	Reactions   []string `json:"reactions"`
}

// OutfitFeedback is append-only: recorded once per worn recommendation,
// never updated or deleted afterwards.
type OutfitFeedback struct {
	JsonModel
	Owner            UserAccount           `json:"-"`
	OwnerID          uint                  `json:"-"`
	RecommendationID *uint                 `json:"recommendation_id"`
	Recommendation   *OutfitRecommendation `json:"-"`
	// the item set the feedback refers to
	ItemIDs          pq.Int64Array     `gorm:"type:integer[]" json:"item_ids"`
	ConfidenceRating float64           `json:"confidence_rating"` // 1-5
	Emotional        EmotionalResponse `gorm:"serializer:json" json:"emotional_response"`
	Occasion         string            `json:"occasion"`
	Comfort          ComfortRating     `gorm:"serializer:json" json:"comfort"`
	Social           SocialFeedback    `gorm:"serializer:json" json:"social_feedback"`
	// weather snapshot at wear time, used for confidence-pattern context
	WeatherCondition   string     `json:"weather_condition"`
	WeatherTemperature *float64   `json:"weather_temperature"`
	WornAt             *time.Time `json:"worn_at"`
}

// ItemIDSet returns the feedback's item ids as uints.
func (f *OutfitFeedback) ItemIDSet() []uint {
	ids := make([]uint, 0, len(f.ItemIDs))
	for _, id := range f.ItemIDs {
		ids = append(ids, uint(id))
	}
	return ids
}

type OutfitFeedbackIn struct {
	RecommendationID *uint    `json:"recommendation_id"`
	ItemIDs          []uint   `json:"item_ids" validate:"required,min=1"`
	ConfidenceRating float64  `json:"confidence_rating" validate:"required,min=1,max=5"`
	PrimaryEmotion   string   `json:"primary_emotion" validate:"omitempty,max=50"`
	EmotionIntensity int      `json:"emotion_intensity" validate:"omitempty,min=1,max=10"`
	OtherEmotions    []string `json:"other_emotions"`
	Occasion         string   `json:"occasion" validate:"omitempty,max=100"`
	PhysicalComfort  float64  `json:"physical_comfort" validate:"omitempty,min=0,max=5"`
	EmotionalComfort float64  `json:"emotional_comfort" validate:"omitempty,min=0,max=5"`
	Compliments      int      `json:"compliments" validate:"omitempty,min=0"`
}
