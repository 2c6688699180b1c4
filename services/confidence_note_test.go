package services

import (
	"strings"
	"testing"
	"time"

	"aynamodaapi/models"

	"github.com/stretchr/testify/assert"
)

func noteRecommendation() models.OutfitRecommendation {
	rec := models.OutfitRecommendation{Items: officeWardrobe()}
	rec.CreatedAt = time.Date(2026, 3, 9, 7, 0, 0, 0, time.UTC)
	return rec
}

func TestGenerateConfidenceNoteNonTrivial(t *testing.T) {
	note := GenerateConfidenceNote(noteRecommendation(), NoteOptions{Style: models.NoteStyleEncouraging})
	assert.NotEmpty(t, note)
	assert.Greater(t, len(note), 10)
}

func TestGenerateConfidenceNoteDeterministic(t *testing.T) {
	rec := noteRecommendation()
	for _, style := range []models.NoteStyle{models.NoteStyleEncouraging, models.NoteStyleWitty, models.NoteStylePoetic} {
		opts := NoteOptions{Style: style, Styled: true}
		assert.Equal(t, GenerateConfidenceNote(rec, opts), GenerateConfidenceNote(rec, opts))
	}
}

func TestGenerateConfidenceNoteVariesByStyle(t *testing.T) {
	rec := noteRecommendation()
	encouraging := GenerateConfidenceNote(rec, NoteOptions{Style: models.NoteStyleEncouraging})
	witty := GenerateConfidenceNote(rec, NoteOptions{Style: models.NoteStyleWitty})
	poetic := GenerateConfidenceNote(rec, NoteOptions{Style: models.NoteStylePoetic})

	assert.NotEqual(t, encouraging, witty)
	assert.NotEqual(t, encouraging, poetic)
	assert.NotEqual(t, witty, poetic)
}

func TestGenerateConfidenceNoteEmptyItemsFallsBack(t *testing.T) {
	note := GenerateConfidenceNote(models.OutfitRecommendation{}, NoteOptions{Style: models.NoteStyleWitty})
	assert.Equal(t, GenericConfidenceNote, note)
}

func TestGenerateConfidenceNoteDefaultsEmptyStyle(t *testing.T) {
	note := GenerateConfidenceNote(noteRecommendation(), NoteOptions{})
	assert.NotEmpty(t, note)
	assert.NotEqual(t, GenericConfidenceNote, note)
}

func TestGenerateConfidenceNotePlainIsScreenReaderSafe(t *testing.T) {
	note := GenerateConfidenceNote(noteRecommendation(), NoteOptions{Style: models.NoteStylePoetic, Styled: false})
	assert.NotContains(t, note, "✨")
	assert.Contains(t, note, "Remember,")
	for _, r := range note {
		assert.Less(t, r, rune(128), "plain note should stay ascii, got %q", note)
	}
}

func TestGenerateConfidenceNoteStyledCarriesFlourish(t *testing.T) {
	note := GenerateConfidenceNote(noteRecommendation(), NoteOptions{Style: models.NoteStyleEncouraging, Styled: true})
	assert.Contains(t, note, "✨")
	assert.True(t, strings.HasSuffix(note, "✨"))
}

func TestGenerateConfidenceNoteMentionsWeather(t *testing.T) {
	rec := noteRecommendation()
	sunny := &models.WeatherContext{Temperature: 75, Condition: models.ConditionSunny}
	rainy := &models.WeatherContext{Temperature: 55, Condition: models.ConditionRainy}

	assert.Contains(t,
		GenerateConfidenceNote(rec, NoteOptions{Style: models.NoteStyleEncouraging, Weather: sunny}),
		"day in the sun")
	assert.Contains(t,
		GenerateConfidenceNote(rec, NoteOptions{Style: models.NoteStyleEncouraging, Weather: rainy}),
		"rain can't dim")
}

func TestGenerateConfidenceNoteLovedBeforeSentiment(t *testing.T) {
	rec := noteRecommendation()
	rec.Items[0].ComplimentsReceived = 3
	note := GenerateConfidenceNote(rec, NoteOptions{Style: models.NoteStyleEncouraging})
	assert.Contains(t, note, "Expect compliments!")
}

func TestHashSeedStable(t *testing.T) {
	assert.Equal(t, HashSeed("1,2,3:witty"), HashSeed("1,2,3:witty"))
	assert.NotEqual(t, HashSeed("1,2,3:witty"), HashSeed("1,2,3:poetic"))
	assert.GreaterOrEqual(t, HashSeed(""), 0)
}
