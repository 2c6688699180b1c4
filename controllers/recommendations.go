package controllers

import (
	"net/http"
	"time"

	"aynamodaapi/models"
	"aynamodaapi/services"

	"github.com/getsentry/sentry-go"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

type RecommendationsController struct {
	Recommender *services.Recommender
}

func (controller *RecommendationsController) RecommendationRoutes(g *echo.Group) {
	g.GET("/daily", controller.DailyRecommendations)
}

func recommendationToOut(rec models.OutfitRecommendation) models.RecommendationOut {
	items := make([]models.WardrobeItemOut, 0, len(rec.Items))
	for _, item := range rec.Items {
		items = append(items, itemToOut(item))
	}
	return models.RecommendationOut{
		ID:              rec.ID,
		Items:           items,
		ConfidenceScore: rec.ConfidenceScore,
		ConfidenceNote:  rec.ConfidenceNote,
		Reasoning:       rec.Reasoning,
		IsQuickOption:   rec.IsQuickOption,
		CreatedAt:       rec.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
}

// DailyRecommendations runs the scoring pipeline for the current user and
// persists the generated outfits so later feedback can reference them.
func (controller *RecommendationsController) DailyRecommendations(c echo.Context) error {
	user, ok := c.Get("currentUser").(models.UserAccount)
	if !ok {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
	}
	db, ok := c.Get("__db").(*gorm.DB)
	if !ok {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Database connection error"})
	}

	styled := c.QueryParam("plain") != "true"
	recommendations, weather, err := controller.Recommender.GenerateDailyRecommendations(c.Request().Context(), user.ID, user.ConfidenceNoteStyle, styled)
	if err != nil {
		sentry.CaptureException(err)
		return c.JSON(http.StatusServiceUnavailable, map[string]string{"error": "Recommendations are temporarily unavailable"})
	}

	out := make([]models.RecommendationOut, 0, len(recommendations))
	generatedAt := time.Now().UTC().Format("2006-01-02T15:04:05Z")
	for i := range recommendations {
		if err := db.Create(&recommendations[i]).Error; err != nil {
			sentry.CaptureException(err)
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to save recommendations"})
		}
		out = append(out, recommendationToOut(recommendations[i]))
		generatedAt = recommendations[i].CreatedAt.Format("2006-01-02T15:04:05Z")
	}

	return c.JSON(http.StatusOK, models.DailyRecommendationsOut{
		Recommendations: out,
		Weather:         weather,
		GeneratedAt:     generatedAt,
	})
}
