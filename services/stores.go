package services

import (
	"context"
	"errors"
	"fmt"

	"aynamodaapi/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrConnectivity marks a data-access collaborator as unreachable. Callers
// either recover with a cached fallback or surface it.
var ErrConnectivity = errors.New("data store unreachable")

type WardrobeStoreProvider interface {
	GetUserWardrobe(ctx context.Context, userID uint) ([]models.WardrobeItem, error)
}

type FeedbackStoreProvider interface {
	// newest first
	GetRecentFeedback(ctx context.Context, userID uint, limit int) ([]models.OutfitFeedback, error)
	// append-only, exactly once per feedback-processing call
	AppendFeedback(ctx context.Context, entry *models.OutfitFeedback) error
}

type ProfileStoreProvider interface {
	GetStyleProfile(ctx context.Context, userID uint) (*models.StyleProfile, error)
	// last-write-wins semantics accepted
	UpsertStyleProfile(ctx context.Context, profile *models.StyleProfile) error
}

type GormWardrobeStore struct {
	DB *gorm.DB
}

func (s *GormWardrobeStore) GetUserWardrobe(ctx context.Context, userID uint) ([]models.WardrobeItem, error) {
	var items []models.WardrobeItem
	if err := s.DB.WithContext(ctx).Where("owner_id = ?", userID).Order("id").Find(&items).Error; err != nil {
		return nil, fmt.Errorf("%w: wardrobe fetch for user %d: %v", ErrConnectivity, userID, err)
	}
	return items, nil
}

type GormFeedbackStore struct {
	DB *gorm.DB
}

func (s *GormFeedbackStore) GetRecentFeedback(ctx context.Context, userID uint, limit int) ([]models.OutfitFeedback, error) {
	var feedback []models.OutfitFeedback
	if err := s.DB.WithContext(ctx).Where("owner_id = ?", userID).Order("created_at DESC").Limit(limit).Find(&feedback).Error; err != nil {
		return nil, fmt.Errorf("%w: feedback fetch for user %d: %v", ErrConnectivity, userID, err)
	}
	return feedback, nil
}

func (s *GormFeedbackStore) AppendFeedback(ctx context.Context, entry *models.OutfitFeedback) error {
	if err := s.DB.WithContext(ctx).Create(entry).Error; err != nil {
		return fmt.Errorf("%w: feedback append for user %d: %v", ErrConnectivity, entry.OwnerID, err)
	}
	return nil
}

type GormProfileStore struct {
	DB *gorm.DB
}

func (s *GormProfileStore) GetStyleProfile(ctx context.Context, userID uint) (*models.StyleProfile, error) {
	var profile models.StyleProfile
	result := s.DB.WithContext(ctx).Where("owner_id = ?", userID).Limit(1).Find(&profile)
	if result.Error != nil {
		return nil, fmt.Errorf("%w: profile fetch for user %d: %v", ErrConnectivity, userID, result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, nil
	}
	return &profile, nil
}

func (s *GormProfileStore) UpsertStyleProfile(ctx context.Context, profile *models.StyleProfile) error {
	err := s.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "owner_id"}},
		UpdateAll: true,
	}).Create(profile).Error
	if err != nil {
		return fmt.Errorf("%w: profile upsert for user %d: %v", ErrConnectivity, profile.OwnerID, err)
	}
	return nil
}
