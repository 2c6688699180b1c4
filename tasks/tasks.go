package tasks

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"aynamodaapi/models"
	"aynamodaapi/services"

	firebase "firebase.google.com/go/v4"
	"github.com/getsentry/sentry-go"
	"github.com/hibiken/asynq"
	"gorm.io/gorm"
)

type StyleProfileAnalysisPayload struct {
	UserID uint `json:"user_id"`
}

// Client initializes an asynq client for enqueuing tasks
func NewClient() (*asynq.Client, error) {
	return asynq.NewClient(asynq.RedisClientOpt{Addr: os.Getenv("ASYNC_BROKER_ADDRESS")}), nil
}

// NewStyleProfileAnalysisTask enqueues a full style profile rebuild for one user
func NewStyleProfileAnalysisTask(userID uint) (*asynq.Task, error) {
	payload, err := json.Marshal(StyleProfileAnalysisPayload{UserID: userID})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask("profile:analyze", payload), nil
}

func NewDailyOutfitAlertTask() *asynq.Task {
	return asynq.NewTask("recommend:daily_alert", []byte{})
}

// HandleStyleProfileAnalysisTask rebuilds the style profile from the user's
// full wardrobe and feedback history. Per-feedback updates keep the profile
// roughly current between runs; this task is the authoritative rebuild.
func HandleStyleProfileAnalysisTask(ctx context.Context, t *asynq.Task, db *gorm.DB, feedbackCache services.FeedbackCacheProvider) error {
	var payload StyleProfileAnalysisPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return err
	}
	fmt.Printf("[Profile: %v] Start analysis\n", payload.UserID)

	wardrobeStore := &services.GormWardrobeStore{DB: db}
	feedbackStore := &services.GormFeedbackStore{DB: db}
	profileStore := &services.GormProfileStore{DB: db}

	wardrobe, err := wardrobeStore.GetUserWardrobe(ctx, payload.UserID)
	if err != nil {
		sentry.CaptureException(fmt.Errorf("[QUEUE] Error on retrieving wardrobe for profile analysis %v: %v", payload.UserID, err))
		return err
	}
	feedback, err := feedbackStore.GetRecentFeedback(ctx, payload.UserID, services.ProfileFeedbackLimit)
	if err != nil {
		sentry.CaptureException(fmt.Errorf("[QUEUE] Error on retrieving feedback for profile analysis %v: %v", payload.UserID, err))
		return err
	}

	profile := services.AnalyzeStyleProfile(payload.UserID, wardrobe, feedback)
	if err := profileStore.UpsertStyleProfile(ctx, profile); err != nil {
		sentry.CaptureException(fmt.Errorf("[Profile: %v] Error on saving analyzed profile: %v", payload.UserID, err))
		return err
	}

	if feedbackCache != nil {
		if err := feedbackCache.Invalidate(ctx, payload.UserID); err != nil {
			fmt.Printf("[Profile: %v] Cache invalidation failed: %v\n", payload.UserID, err)
		}
	}

	fmt.Printf("[Profile: %v] Analysis finished, %d wardrobe items, %d feedback entries\n", payload.UserID, len(wardrobe), len(feedback))
	return nil
}

// ScheduledDailyOutfitTask sends each opted-in user their morning outfit pick
func ScheduledDailyOutfitTask(ctx context.Context, t *asynq.Task, db *gorm.DB, fbApp *firebase.App, recommender *services.Recommender) error {

	fmt.Printf("[Daily Outfit] Processing for all users\n")

	var users []models.UserAccount
	result := db.Where("banned = ? AND receive_notifications = ?", false, true).Find(&users)
	if result.Error != nil {
		sentry.CaptureException(fmt.Errorf("[Daily Outfit] Error fetching users: %v", result.Error))
		return result.Error
	}

	fmt.Printf("[Daily Outfit] Found %d users to send notifications\n", len(users))

	for _, user := range users {
		err := sendDailyOutfitToUser(ctx, db, fbApp, recommender, user)
		if err != nil {
			fmt.Printf("[Daily Outfit] Failed to send to user %d: %v\n", user.ID, err)
			sentry.CaptureException(fmt.Errorf("[Daily Outfit] Failed to send to user %d: %v", user.ID, err))
			continue
		}
		time.Sleep(1 * time.Second) // To avoid hitting rate limits
	}

	return nil
}

func sendDailyOutfitToUser(ctx context.Context, db *gorm.DB, fbApp *firebase.App, recommender *services.Recommender, user models.UserAccount) error {
	recommendations, _, err := recommender.GenerateDailyRecommendations(ctx, user.ID, user.ConfidenceNoteStyle, true)
	if err != nil {
		return fmt.Errorf("error generating recommendations: %v", err)
	}
	if len(recommendations) == 0 {
		fmt.Printf("[Daily Outfit] No recommendations for user %d, skipping\n", user.ID)
		return nil
	}

	quick := recommendations[0]
	for i := range recommendations {
		if recommendations[i].IsQuickOption {
			quick = recommendations[i]
			break
		}
	}
	if err := db.Create(&quick).Error; err != nil {
		return fmt.Errorf("error saving recommendation: %v", err)
	}

	title := "Today's outfit is ready ✨"
	message := quick.ConfidenceNote
	if len(message) > 100 {
		message = message[:97] + "..."
	}

	fmt.Println("[Daily Outfit] Sending notification to user", user.ID, "recommendation", quick.ID)
	services.SendNotification(fbApp, db, user.ID, title, message, map[string]string{"recommendation_id": fmt.Sprintf("%d", quick.ID), "type": "daily_outfit"})

	return nil
}
