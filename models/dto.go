package models

import "time"

type CreateWardrobeItemIn struct {
	Name        string   `json:"name" validate:"required,max=100"`
	Description *string  `json:"description" validate:"omitempty,max=500"`
	Category    string   `json:"category" validate:"required,category"`
	Colors      []string `json:"colors" validate:"required,min=1,max=10,dive,max=30"`
	Tags        []string `json:"tags" validate:"omitempty,max=20,dive,max=40"`
	FitNotes    *string  `json:"fit_notes" validate:"omitempty,max=500"`
}

type UpdateWardrobeItemIn struct {
	Name        *string  `json:"name" validate:"omitempty,max=100"`
	Description *string  `json:"description" validate:"omitempty,max=500"`
	Colors      []string `json:"colors" validate:"omitempty,max=10,dive,max=30"`
	Tags        []string `json:"tags" validate:"omitempty,max=20,dive,max=40"`
	FitNotes    *string  `json:"fit_notes" validate:"omitempty,max=500"`
}

type RecordWearIn struct {
	Rating      *float64 `json:"rating" validate:"omitempty,min=0,max=5"`
	Compliments int      `json:"compliments" validate:"omitempty,min=0"`
}

type WardrobeItemOut struct {
	ID                  uint       `json:"id"`
	Name                string     `json:"name"`
	Description         *string    `json:"description"`
	Category            string     `json:"category"`
	Colors              []string   `json:"colors"`
	Tags                []string   `json:"tags"`
	TotalWears          int        `json:"total_wears"`
	AverageRating       float64    `json:"average_rating"`
	LastWorn            *time.Time `json:"last_worn"`
	ComplimentsReceived int        `json:"compliments_received"`
	CreatedAt           string     `json:"created_at"`
	UpdatedAt           string     `json:"updated_at"`
}

type WardrobeListOut struct {
	Tops        []WardrobeItemOut `json:"tops"`
	Bottoms     []WardrobeItemOut `json:"bottoms"`
	Dresses     []WardrobeItemOut `json:"dresses"`
	Shoes       []WardrobeItemOut `json:"shoes"`
	Outerwear   []WardrobeItemOut `json:"outerwear"`
	Accessories []WardrobeItemOut `json:"accessories"`
	Activewear  []WardrobeItemOut `json:"activewear"`
}

type RecommendationOut struct {
	ID              uint              `json:"id"`
	Items           []WardrobeItemOut `json:"items"`
	ConfidenceScore float64           `json:"confidence_score"`
	ConfidenceNote  string            `json:"confidence_note"`
	Reasoning       []string          `json:"reasoning"`
	IsQuickOption   bool              `json:"is_quick_option"`
	CreatedAt       string            `json:"created_at"`
}

type DailyRecommendationsOut struct {
	Recommendations []RecommendationOut `json:"recommendations"`
	Weather         WeatherContext      `json:"weather"`
	GeneratedAt     string              `json:"generated_at"`
}
