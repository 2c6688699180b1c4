package services

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"aynamodaapi/models"

	"github.com/getsentry/sentry-go"
	"github.com/lib/pq"
)

// Recommender wires the scoring pipeline to its collaborators. All
// dependencies are injected; there is no ambient global state.
type Recommender struct {
	Wardrobe WardrobeStoreProvider
	Feedback FeedbackStoreProvider
	Profiles ProfileStoreProvider
	Weather  WeatherServiceProvider
	Calendar CalendarServiceProvider
	Cache    FeedbackCacheProvider
	Engine   *RecommendationEngine

	// last-known-good wardrobe snapshots, the only recovery path when the
	// wardrobe store is down
	snapshotMu sync.RWMutex
	snapshots  map[uint][]models.WardrobeItem
}

func NewRecommender(wardrobe WardrobeStoreProvider, feedback FeedbackStoreProvider, profiles ProfileStoreProvider, weather WeatherServiceProvider, calendar CalendarServiceProvider, cacheService FeedbackCacheProvider) *Recommender {
	return &Recommender{
		Wardrobe:  wardrobe,
		Feedback:  feedback,
		Profiles:  profiles,
		Weather:   weather,
		Calendar:  calendar,
		Cache:     cacheService,
		Engine:    NewRecommendationEngine(),
		snapshots: map[uint][]models.WardrobeItem{},
	}
}

func (r *Recommender) rememberSnapshot(userID uint, items []models.WardrobeItem) {
	r.snapshotMu.Lock()
	r.snapshots[userID] = items
	r.snapshotMu.Unlock()
}

func (r *Recommender) snapshotFor(userID uint) ([]models.WardrobeItem, bool) {
	r.snapshotMu.RLock()
	defer r.snapshotMu.RUnlock()
	items, ok := r.snapshots[userID]
	return items, ok
}

func (r *Recommender) loadWardrobe(ctx context.Context, userID uint) ([]models.WardrobeItem, error) {
	items, err := r.Wardrobe.GetUserWardrobe(ctx, userID)
	if err != nil {
		if cached, ok := r.snapshotFor(userID); ok {
			log.Printf("[Recommend] wardrobe fetch failed for user %d, using cached snapshot: %v", userID, err)
			sentry.CaptureException(err)
			return cached, nil
		}
		return nil, err
	}
	r.rememberSnapshot(userID, items)
	return items, nil
}

func (r *Recommender) loadHistory(ctx context.Context, userID uint) []models.OutfitFeedback {
	var history []models.OutfitFeedback
	var err error
	if r.Cache != nil {
		history, err = r.Cache.GetRecentFeedback(ctx, userID)
	} else if r.Feedback != nil {
		history, err = r.Feedback.GetRecentFeedback(ctx, userID, ProfileFeedbackLimit)
	}
	if err != nil {
		// history only sharpens scoring, it is not required for a result
		log.Printf("[Recommend] feedback history unavailable for user %d: %v", userID, err)
		sentry.CaptureException(err)
		return nil
	}
	return history
}

// wearRecordsFromFeedback turns feedback history into the wear records the
// novelty scorer consumes.
func wearRecordsFromFeedback(history []models.OutfitFeedback) []WearRecord {
	records := make([]WearRecord, 0, len(history))
	for _, fb := range history {
		at := fb.CreatedAt
		if fb.WornAt != nil {
			at = *fb.WornAt
		}
		records = append(records, WearRecord{ItemIDs: fb.ItemIDSet(), WornAt: at})
	}
	return records
}

func reasoningFor(scored ScoredOutfit, rctx models.RecommendationContext) []string {
	var reasons []string
	b := scored.Breakdown
	if b.Compatibility >= 0.7 {
		reasons = append(reasons, "The colors and styles work well together")
	}
	if b.Confidence >= 0.7 {
		reasons = append(reasons, "You've felt great in these pieces before")
	}
	if b.Contextual >= 0.7 {
		reasons = append(reasons, fmt.Sprintf("Well suited to %s weather", rctx.Weather.Condition))
	}
	if b.Novelty >= 0.9 {
		reasons = append(reasons, "A fresh combination you haven't tried yet")
	}
	for _, item := range scored.Combination.Items {
		if IsNeglected(item, rctx.Date) {
			reasons = append(reasons, fmt.Sprintf("Brings back %s, which deserves another moment", item.Name))
			break
		}
	}
	if len(reasons) == 0 {
		reasons = append(reasons, "A balanced choice for today")
	}
	return reasons
}

func topPreferredStyle(profile *models.StyleProfile) string {
	if profile == nil || len(profile.PreferredStyles) == 0 {
		return ""
	}
	return profile.PreferredStyles[0]
}

// GenerateDailyRecommendations runs the whole pipeline for one user:
// context assembly, availability filtering, combination generation, scoring,
// diversity ranking and note generation. The returned weather is the exact
// context the outfits were scored against, so callers surface it instead of
// fetching their own. It returns an empty list (not an error) for an empty
// wardrobe, and errors only when the wardrobe store is unreachable with no
// usable snapshot.
func (r *Recommender) GenerateDailyRecommendations(ctx context.Context, userID uint, noteStyle models.NoteStyle, styledNote bool) ([]models.OutfitRecommendation, models.WeatherContext, error) {
	now := time.Now().UTC()

	wardrobe, err := r.loadWardrobe(ctx, userID)
	if err != nil {
		return nil, models.WeatherContext{}, err
	}

	weather := CurrentWeatherOrFallback(ctx, r.Weather, userID)

	if len(wardrobe) == 0 {
		return []models.OutfitRecommendation{}, weather, nil
	}

	var calendar *models.CalendarContext
	if r.Calendar != nil {
		calendar, err = r.Calendar.GetCalendarContext(ctx, userID)
		if err != nil {
			log.Printf("[Recommend] calendar unavailable for user %d: %v", userID, err)
			calendar = nil
		}
	}

	var profile *models.StyleProfile
	if r.Profiles != nil {
		profile, err = r.Profiles.GetStyleProfile(ctx, userID)
		if err != nil {
			log.Printf("[Recommend] profile unavailable for user %d: %v", userID, err)
			profile = nil
		}
	}

	history := r.loadHistory(ctx, userID)

	rctx := models.RecommendationContext{
		Date:       now,
		Weather:    weather,
		Calendar:   calendar,
		Profile:    profile,
		NoteStyle:  noteStyle,
		StyledNote: styledNote,
	}

	available := FilterAvailableItems(wardrobe, weather, now)
	if len(available) == 0 {
		// every item filtered out but the wardrobe is not empty: recommend
		// from the full wardrobe rather than returning nothing
		log.Printf("[Recommend] all %d items filtered for user %d, falling back to full wardrobe", len(wardrobe), userID)
		available = wardrobe
	}

	combos := GenerateCombinations(available, r.Engine.Generation)
	ranked := r.Engine.Rank(combos, rctx, history, wearRecordsFromFeedback(history))

	recommendations := make([]models.OutfitRecommendation, 0, len(ranked))
	for _, scored := range ranked {
		rec := models.OutfitRecommendation{
			OwnerID:         userID,
			Items:           scored.Combination.Items,
			ConfidenceScore: scored.Breakdown.Final,
			Reasoning:       reasoningFor(scored, rctx),
			IsQuickOption:   scored.IsQuickOption,
			Breakdown:       scored.Breakdown,
		}
		rec.CreatedAt = now
		for _, item := range scored.Combination.Items {
			rec.ItemIDs = append(rec.ItemIDs, int64(item.ID))
		}
		rec.ConfidenceNote = GenerateConfidenceNote(rec, NoteOptions{
			Style:          noteStyle,
			Styled:         styledNote,
			PreferredStyle: topPreferredStyle(profile),
			Weather:        &weather,
		})
		recommendations = append(recommendations, rec)
	}
	return recommendations, weather, nil
}

// RecordFeedback appends one feedback entry, invalidates the user's cached
// history and merges the entry into the stored profile.
func (r *Recommender) RecordFeedback(ctx context.Context, entry *models.OutfitFeedback) error {
	if entry.ItemIDs == nil {
		entry.ItemIDs = pq.Int64Array{}
	}
	if err := r.Feedback.AppendFeedback(ctx, entry); err != nil {
		return err
	}
	if r.Cache != nil {
		if err := r.Cache.Invalidate(ctx, entry.OwnerID); err != nil {
			log.Printf("[Feedback] cache invalidation failed for user %d: %v", entry.OwnerID, err)
		}
	}
	if r.Profiles != nil {
		profile, err := r.Profiles.GetStyleProfile(ctx, entry.OwnerID)
		if err != nil {
			sentry.CaptureException(err)
			return nil // feedback is recorded; profile update is best effort
		}
		if profile == nil {
			profile = &models.StyleProfile{OwnerID: entry.OwnerID}
		}
		UpdateProfileWithFeedback(profile, *entry)
		if err := r.Profiles.UpsertStyleProfile(ctx, profile); err != nil {
			sentry.CaptureException(err)
		}
	}
	return nil
}
