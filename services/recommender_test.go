package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"aynamodaapi/models"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

type fakeWardrobeStore struct {
	items []models.WardrobeItem
	err   error
	calls int
}

func (s *fakeWardrobeStore) GetUserWardrobe(ctx context.Context, userID uint) ([]models.WardrobeItem, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.items, nil
}

type fakeFeedbackStore struct {
	entries   []models.OutfitFeedback
	appendErr error
}

func (s *fakeFeedbackStore) GetRecentFeedback(ctx context.Context, userID uint, limit int) ([]models.OutfitFeedback, error) {
	return s.entries, nil
}

func (s *fakeFeedbackStore) AppendFeedback(ctx context.Context, entry *models.OutfitFeedback) error {
	if s.appendErr != nil {
		return s.appendErr
	}
	s.entries = append(s.entries, *entry)
	return nil
}

type fakeProfileStore struct {
	profile *models.StyleProfile
	getErr  error
	upserts int
}

func (s *fakeProfileStore) GetStyleProfile(ctx context.Context, userID uint) (*models.StyleProfile, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	return s.profile, nil
}

func (s *fakeProfileStore) UpsertStyleProfile(ctx context.Context, profile *models.StyleProfile) error {
	s.profile = profile
	s.upserts++
	return nil
}

type fakeWeatherService struct {
	weather models.WeatherContext
	err     error
}

func (s fakeWeatherService) GetCurrentWeather(ctx context.Context, userID uint) (models.WeatherContext, error) {
	return s.weather, s.err
}

func newTestRecommender(wardrobe *fakeWardrobeStore, feedback *fakeFeedbackStore, profiles *fakeProfileStore) *Recommender {
	weather := fakeWeatherService{weather: models.WeatherContext{Temperature: 70, Condition: models.ConditionSunny}}
	r := NewRecommender(wardrobe, feedback, profiles, weather, NoCalendarService{}, nil)
	r.Engine.Generation = BoundedGenerationProfile
	return r
}

func TestGenerateDailyRecommendationsEmptyWardrobe(t *testing.T) {
	r := newTestRecommender(&fakeWardrobeStore{}, &fakeFeedbackStore{}, &fakeProfileStore{})
	recs, weather, err := r.GenerateDailyRecommendations(context.Background(), 1, models.NoteStyleEncouraging, true)

	assert.NoError(t, err)
	assert.Empty(t, recs)
	assert.Equal(t, 70.0, weather.Temperature)
}

func TestGenerateDailyRecommendationsFullPipeline(t *testing.T) {
	wardrobe := &fakeWardrobeStore{items: officeWardrobe()}
	r := newTestRecommender(wardrobe, &fakeFeedbackStore{}, &fakeProfileStore{})

	recs, weather, err := r.GenerateDailyRecommendations(context.Background(), 7, models.NoteStyleWitty, true)

	assert.NoError(t, err)
	assert.Equal(t, models.ConditionSunny, weather.Condition)
	assert.Len(t, recs, 3)
	assert.True(t, recs[0].IsQuickOption)
	for _, rec := range recs {
		assert.Equal(t, uint(7), rec.OwnerID)
		assert.NotEmpty(t, rec.ItemIDs)
		assert.NotEmpty(t, rec.Items)
		assert.NotEmpty(t, rec.Reasoning)
		assert.Greater(t, len(rec.ConfidenceNote), 10)
		assert.GreaterOrEqual(t, rec.ConfidenceScore, 0.0)
		assert.LessOrEqual(t, rec.ConfidenceScore, 1.0)
	}
	assert.Len(t, recs[0].Items, 3)
}

func TestGenerateDailyRecommendationsStoreOutageWithoutSnapshot(t *testing.T) {
	wardrobe := &fakeWardrobeStore{err: ErrConnectivity}
	r := newTestRecommender(wardrobe, &fakeFeedbackStore{}, &fakeProfileStore{})

	recs, _, err := r.GenerateDailyRecommendations(context.Background(), 1, models.NoteStyleEncouraging, true)
	assert.Error(t, err)
	assert.Nil(t, recs)
}

func TestGenerateDailyRecommendationsUsesSnapshotOnOutage(t *testing.T) {
	wardrobe := &fakeWardrobeStore{items: officeWardrobe()}
	r := newTestRecommender(wardrobe, &fakeFeedbackStore{}, &fakeProfileStore{})

	_, _, err := r.GenerateDailyRecommendations(context.Background(), 1, models.NoteStyleEncouraging, true)
	assert.NoError(t, err)

	wardrobe.err = ErrConnectivity
	recs, _, err := r.GenerateDailyRecommendations(context.Background(), 1, models.NoteStyleEncouraging, true)
	assert.NoError(t, err)
	assert.Len(t, recs, 3)
}

func TestGenerateDailyRecommendationsAllItemsFilteredFallsBack(t *testing.T) {
	// every item unclean, so availability filtering empties the pool
	dirty := officeWardrobe()
	for i := range dirty {
		dirty[i].Tags = append(dirty[i].Tags, "dirty")
	}
	wardrobe := &fakeWardrobeStore{items: dirty}
	r := newTestRecommender(wardrobe, &fakeFeedbackStore{}, &fakeProfileStore{})

	recs, _, err := r.GenerateDailyRecommendations(context.Background(), 1, models.NoteStyleEncouraging, true)
	assert.NoError(t, err)
	assert.Len(t, recs, 3)
}

func TestGenerateDailyRecommendationsPlainNotes(t *testing.T) {
	wardrobe := &fakeWardrobeStore{items: officeWardrobe()}
	r := newTestRecommender(wardrobe, &fakeFeedbackStore{}, &fakeProfileStore{})

	recs, _, err := r.GenerateDailyRecommendations(context.Background(), 1, models.NoteStyleEncouraging, false)
	assert.NoError(t, err)
	for _, rec := range recs {
		assert.NotContains(t, rec.ConfidenceNote, "✨")
	}
}

func rediscoveryWardrobe(shoesLastWorn time.Time) []models.WardrobeItem {
	worn := time.Now().Add(-10 * 24 * time.Hour)
	items := officeWardrobe()
	items[0].Name = "Navy Blouse"
	items[0].AverageRating = 4.2
	items[0].TotalWears = 5
	items[0].LastWorn = &worn
	items[1].Name = "Black Trousers"
	items[1].AverageRating = 4.5
	items[1].TotalWears = 8
	items[1].LastWorn = &worn
	items[2].Name = "Brown Loafers"
	items[2].LastWorn = &shoesLastWorn
	return items
}

func TestGenerateDailyRecommendationsRediscoversNeglectedShoes(t *testing.T) {
	weather := fakeWeatherService{weather: models.WeatherContext{Temperature: 68, Condition: models.ConditionSunny}}
	build := func(shoesLastWorn time.Time) []models.OutfitRecommendation {
		r := NewRecommender(&fakeWardrobeStore{items: rediscoveryWardrobe(shoesLastWorn)}, &fakeFeedbackStore{}, &fakeProfileStore{}, weather, NoCalendarService{}, nil)
		r.Engine.Generation = BoundedGenerationProfile
		recs, _, err := r.GenerateDailyRecommendations(context.Background(), 1, models.NoteStyleEncouraging, true)
		assert.NoError(t, err)
		return recs
	}

	recs := build(time.Now().Add(-45 * 24 * time.Hour))
	assert.Len(t, recs, 3)
	assert.True(t, recs[0].IsQuickOption)
	for _, rec := range recs {
		for _, item := range rec.Items {
			for _, color := range item.Colors {
				assert.NotContains(t, color, "red")
				assert.NotContains(t, color, "pink")
			}
		}
	}

	// loafers untouched for 45 days earn the rediscovery bump over the
	// same outfit with recently worn loafers
	regular := build(time.Now().Add(-10 * 24 * time.Hour))
	assert.Greater(t, recs[0].Breakdown.Confidence, regular[0].Breakdown.Confidence)
}

type countingWeatherService struct {
	weather models.WeatherContext
	calls   int
}

func (s *countingWeatherService) GetCurrentWeather(ctx context.Context, userID uint) (models.WeatherContext, error) {
	s.calls++
	return s.weather, nil
}

func TestGenerateDailyRecommendationsReturnsScoringWeather(t *testing.T) {
	weather := &countingWeatherService{weather: models.WeatherContext{Temperature: 41, Condition: models.ConditionCloudy}}
	r := NewRecommender(&fakeWardrobeStore{items: officeWardrobe()}, &fakeFeedbackStore{}, &fakeProfileStore{}, weather, NoCalendarService{}, nil)
	r.Engine.Generation = BoundedGenerationProfile

	recs, got, err := r.GenerateDailyRecommendations(context.Background(), 1, models.NoteStyleEncouraging, true)

	assert.NoError(t, err)
	assert.NotEmpty(t, recs)
	// the provider is consulted once and that context comes back with the
	// outfits, so callers never fetch a second, possibly different reading
	assert.Equal(t, 1, weather.calls)
	assert.Equal(t, weather.weather, got)
}

func TestRecordFeedbackAppendsAndUpdatesProfile(t *testing.T) {
	feedback := &fakeFeedbackStore{}
	profiles := &fakeProfileStore{profile: &models.StyleProfile{OwnerID: 1}}
	r := newTestRecommender(&fakeWardrobeStore{}, feedback, profiles)

	entry := &models.OutfitFeedback{
		OwnerID:          1,
		ItemIDs:          pq.Int64Array{1, 2},
		ConfidenceRating: 5,
		Occasion:         "work",
	}
	err := r.RecordFeedback(context.Background(), entry)

	assert.NoError(t, err)
	assert.Len(t, feedback.entries, 1)
	assert.Equal(t, 1, profiles.upserts)
	assert.NotNil(t, profiles.profile.PatternByKey("1,2"))
	assert.Equal(t, 5.0, profiles.profile.OccasionPreferences["work"])
}

func TestRecordFeedbackStoreFailure(t *testing.T) {
	feedback := &fakeFeedbackStore{appendErr: ErrConnectivity}
	profiles := &fakeProfileStore{}
	r := newTestRecommender(&fakeWardrobeStore{}, feedback, profiles)

	err := r.RecordFeedback(context.Background(), &models.OutfitFeedback{OwnerID: 1})
	assert.ErrorIs(t, err, ErrConnectivity)
	assert.Zero(t, profiles.upserts)
}

func TestRecordFeedbackProfileFetchFailureIsNotFatal(t *testing.T) {
	feedback := &fakeFeedbackStore{}
	profiles := &fakeProfileStore{getErr: errors.New("profile store down")}
	r := newTestRecommender(&fakeWardrobeStore{}, feedback, profiles)

	err := r.RecordFeedback(context.Background(), &models.OutfitFeedback{OwnerID: 1, ItemIDs: pq.Int64Array{1}})
	assert.NoError(t, err)
	assert.Len(t, feedback.entries, 1)
}

func TestWearRecordsFromFeedbackPrefersWornAt(t *testing.T) {
	entry := feedbackFor([]int64{1, 2}, 4, "", "")
	records := wearRecordsFromFeedback([]models.OutfitFeedback{entry})

	assert.Len(t, records, 1)
	assert.Equal(t, []uint{1, 2}, records[0].ItemIDs)
	assert.Equal(t, entry.CreatedAt, records[0].WornAt)
}
