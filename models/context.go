package models

import "time"

type WeatherCondition string

const (
	ConditionSunny  WeatherCondition = "sunny"
	ConditionRainy  WeatherCondition = "rainy"
	ConditionSnowy  WeatherCondition = "snowy"
	ConditionWindy  WeatherCondition = "windy"
	ConditionCloudy WeatherCondition = "cloudy"
)

// WeatherContext is an immutable snapshot supplied per recommendation
// request. Temperatures are Fahrenheit.
type WeatherContext struct {
	Temperature float64          `json:"temperature"`
	Condition   WeatherCondition `json:"condition"`
	Humidity    int              `json:"humidity"`
	Location    string           `json:"location"`
	Timestamp   time.Time        `json:"timestamp"`
}

type FormalityLevel string

const (
	FormalityCasual   FormalityLevel = "casual"
	FormalityBusiness FormalityLevel = "business"
	FormalityFormal   FormalityLevel = "formal"
)

type CalendarEvent struct {
	Type           string         `json:"type"`
	FormalityLevel FormalityLevel `json:"formality_level"`
}

type CalendarContext struct {
	PrimaryEvent *CalendarEvent `json:"primary_event"`
}

// RecommendationContext carries everything the scoring pipeline reads for
// one request. The core never mutates it.
type RecommendationContext struct {
	Date      time.Time
	Weather   WeatherContext
	Calendar  *CalendarContext
	Profile   *StyleProfile
	NoteStyle NoteStyle
	// styled notes may carry emoji; plain notes stay screen-reader safe
	StyledNote bool
}
