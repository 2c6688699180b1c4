package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"aynamodaapi/models"

	"github.com/dgraph-io/ristretto"
	"github.com/eko/gocache/lib/v4/cache"
	"github.com/eko/gocache/lib/v4/store"
	ristretto_store "github.com/eko/gocache/store/ristretto/v4"
)

// Staleness is acceptable here: the cache is a read-through optimization,
// not a correctness mechanism. It is invalidated on every feedback write
// for the user.
const feedbackCacheTTL = 10 * time.Minute

type FeedbackCacheProvider interface {
	GetRecentFeedback(ctx context.Context, userID uint) ([]models.OutfitFeedback, error)
	Invalidate(ctx context.Context, userID uint) error
}

// FeedbackCacheService wraps the feedback store with an eko/gocache
// Ristretto cache, keyed per user. Loads and deletes flush ristretto's
// write buffers before returning, so an Invalidate issued after a read
// cannot race an in-flight set and the next read always observes the
// invalidation.
type FeedbackCacheService struct {
	cache   *cache.Cache[[]models.OutfitFeedback]
	backing *ristretto.Cache
	store   FeedbackStoreProvider
}

func feedbackCacheKey(userID uint) string {
	return fmt.Sprintf("feedback:%d", userID)
}

// NewFeedbackCacheService creates the per-user feedback history cache used
// by the scoring pipeline.
func NewFeedbackCacheService(feedbackStore FeedbackStoreProvider) (*FeedbackCacheService, error) {
	ristrettoCache, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: 1e5,
		MaxCost:     1 << 24, // 16MB, feedback histories are small
		BufferItems: 64,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create ristretto cache: %w", err)
	}

	return &FeedbackCacheService{
		cache:   cache.New[[]models.OutfitFeedback](ristretto_store.NewRistretto(ristrettoCache)),
		backing: ristrettoCache,
		store:   feedbackStore,
	}, nil
}

// GetRecentFeedback serves the cached history, reading through to the
// feedback store on a miss. The loaded value is set and flushed before
// returning, never in a background goroutine.
func (s *FeedbackCacheService) GetRecentFeedback(ctx context.Context, userID uint) ([]models.OutfitFeedback, error) {
	key := feedbackCacheKey(userID)
	if cached, err := s.cache.Get(ctx, key); err == nil {
		return cached, nil
	}

	log.Printf("[Cache] MISS for %s, loading recent feedback", key)
	feedback, err := s.store.GetRecentFeedback(ctx, userID, ProfileFeedbackLimit)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Set(ctx, key, feedback, store.WithExpiration(feedbackCacheTTL)); err != nil {
		log.Printf("[Cache] set failed for %s: %v", key, err)
	}
	s.backing.Wait()
	return feedback, nil
}

// Invalidate drops the cached history for the user; called after every
// feedback append so the next read observes the write.
func (s *FeedbackCacheService) Invalidate(ctx context.Context, userID uint) error {
	err := s.cache.Delete(ctx, feedbackCacheKey(userID))
	s.backing.Wait()
	return err
}
