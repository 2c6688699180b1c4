package controllers

import (
	"fmt"
	"net/http"
	"time"

	"aynamodaapi/models"
	"aynamodaapi/services"
	"aynamodaapi/tasks"

	"github.com/getsentry/sentry-go"
	"github.com/hibiken/asynq"
	"github.com/labstack/echo/v4"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

type FeedbackController struct {
	Recommender *services.Recommender
}

func (controller *FeedbackController) FeedbackRoutes(g *echo.Group) {
	g.POST("/feedback", controller.SubmitFeedback)
}

// SubmitFeedback records how an outfit actually felt. The entry is
// append-only; the style profile refresh runs in the background.
func (controller *FeedbackController) SubmitFeedback(c echo.Context) error {
	var req models.OutfitFeedbackIn
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}
	if err := c.Validate(req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	user, ok := c.Get("currentUser").(models.UserAccount)
	if !ok {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
	}
	db, ok := c.Get("__db").(*gorm.DB)
	if !ok {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Database connection error"})
	}
	asynqClient, ok := c.Get("__asynqclient").(*asynq.Client)
	if !ok {
		return c.JSON(http.StatusInternalServerError, map[string]string{"message": "Service is not available, please try again a bit later"})
	}

	if req.RecommendationID != nil {
		var rec models.OutfitRecommendation
		r := db.Where("id = ? AND owner_id = ?", *req.RecommendationID, user.ID).Limit(1).Find(&rec)
		if r.Error != nil {
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to verify recommendation"})
		}
		if r.RowsAffected == 0 {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "Recommendation not found"})
		}
	}

	itemIDs := make(pq.Int64Array, 0, len(req.ItemIDs))
	for _, id := range req.ItemIDs {
		itemIDs = append(itemIDs, int64(id))
	}
	now := time.Now().UTC()
	entry := models.OutfitFeedback{
		OwnerID:          user.ID,
		RecommendationID: req.RecommendationID,
		ItemIDs:          itemIDs,
		ConfidenceRating: req.ConfidenceRating,
		Emotional: models.EmotionalResponse{
			Primary:    req.PrimaryEmotion,
			Intensity:  req.EmotionIntensity,
			Additional: req.OtherEmotions,
		},
		Occasion: req.Occasion,
		Comfort: models.ComfortRating{
			Physical:   req.PhysicalComfort,
			Emotional:  req.EmotionalComfort,
			Confidence: req.ConfidenceRating,
		},
		Social: models.SocialFeedback{
			Compliments: req.Compliments,
		},
		WornAt: &now,
	}

	if err := controller.Recommender.RecordFeedback(c.Request().Context(), &entry); err != nil {
		sentry.CaptureException(err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to record feedback"})
	}

	profileTask, err := tasks.NewStyleProfileAnalysisTask(user.ID)
	if err != nil {
		sentry.CaptureException(err)
	} else {
		taskInfo, err := asynqClient.Enqueue(profileTask, asynq.MaxRetry(3), asynq.ProcessIn(1*time.Second), asynq.Queue("profile"))
		if err != nil {
			fmt.Printf("[Feedback] error on enqueuing profile analysis for user %v: %v\n", user.ID, err)
			sentry.CaptureException(err)
		} else {
			fmt.Printf("[Feedback] profile analysis enqueued for user %v: %s\n", user.ID, taskInfo.ID)
		}
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"message":     "recorded",
		"feedback_id": entry.ID,
	})
}
