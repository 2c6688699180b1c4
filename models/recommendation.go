package models

import "github.com/lib/pq"

// ScoreBreakdown keeps the per-axis scores that produced a recommendation,
// mainly for debugging and the reasoning list.
type ScoreBreakdown struct {
	Compatibility float64 `json:"compatibility"`
	Confidence    float64 `json:"confidence"`
	Satisfaction  float64 `json:"satisfaction"`
	Contextual    float64 `json:"contextual"`
	Novelty       float64 `json:"novelty"`
	Final         float64 `json:"final"`
}

// OutfitRecommendation is a generated suggestion. The scoring core creates
// these per request; rows are persisted by the API layer so that feedback
// can reference the exact item set that was shown.
type OutfitRecommendation struct {
	JsonModel
	Owner   UserAccount `json:"-"`
	OwnerID uint        `json:"-"`

	ItemIDs pq.Int64Array  `gorm:"type:integer[]" json:"item_ids"`
	Items   []WardrobeItem `gorm:"-" json:"items"`

	ConfidenceScore float64        `json:"confidence_score"` // 0-1
	ConfidenceNote  string         `json:"confidence_note"`
	Reasoning       pq.StringArray `gorm:"type:text[]" json:"reasoning"`
	IsQuickOption   bool           `json:"is_quick_option"`
	Breakdown       ScoreBreakdown `gorm:"serializer:json" json:"breakdown"`
}
