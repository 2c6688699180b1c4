package controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"aynamodaapi/dbhelper"
	"aynamodaapi/models"
	"aynamodaapi/test"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedWardrobe(db *gorm.DB, user *models.UserAccount) {
	test.FakeWardrobeItem(db, user.ID, "Navy Blouse", models.CategoryTops, []string{"navy"}, []string{"office", "business"})
	test.FakeWardrobeItem(db, user.ID, "Black Trousers", models.CategoryBottoms, []string{"black"}, []string{"office"})
	test.FakeWardrobeItem(db, user.ID, "Brown Loafers", models.CategoryShoes, []string{"brown"}, []string{"leather"})
}

func TestDailyRecommendationsOk(t *testing.T) {
	db := dbhelper.SetupTestDB()
	cleaner := dbhelper.SetupCleaner(db)
	defer cleaner()
	e := SetupServer(db, test.GoogleServiceMock{}, testRecommender(db), nil, nil, nil)
	user := test.FakeUser(db)
	seedWardrobe(db, user)

	req := test.NewJSONAuthRequest("GET", "/app/recommendations/daily", userPk(user), "")
	rec := httptest.NewRecorder()

	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, "Expected status code 200 OK, got %d: %s", rec.Code, rec.Body.String())

	var response models.DailyRecommendationsOut
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	require.Len(t, response.Recommendations, 3)
	assert.True(t, response.Recommendations[0].IsQuickOption)
	assert.NotEmpty(t, response.GeneratedAt)
	assert.Equal(t, 70.0, response.Weather.Temperature)

	for _, r := range response.Recommendations {
		assert.NotZero(t, r.ID)
		assert.NotEmpty(t, r.Items)
		assert.NotEmpty(t, r.Reasoning)
		assert.Greater(t, len(r.ConfidenceNote), 10)
		assert.GreaterOrEqual(t, r.ConfidenceScore, 0.0)
		assert.LessOrEqual(t, r.ConfidenceScore, 1.0)
	}
}

func TestDailyRecommendationsPersisted(t *testing.T) {
	db := dbhelper.SetupTestDB()
	cleaner := dbhelper.SetupCleaner(db)
	defer cleaner()
	e := SetupServer(db, test.GoogleServiceMock{}, testRecommender(db), nil, nil, nil)
	user := test.FakeUser(db)
	seedWardrobe(db, user)

	req := test.NewJSONAuthRequest("GET", "/app/recommendations/daily", userPk(user), "")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var count int64
	require.NoError(t, db.Model(&models.OutfitRecommendation{}).Where("owner_id = ?", user.ID).Count(&count).Error)
	assert.Equal(t, int64(3), count)
}

func TestDailyRecommendationsEmptyWardrobe(t *testing.T) {
	db := dbhelper.SetupTestDB()
	cleaner := dbhelper.SetupCleaner(db)
	defer cleaner()
	e := SetupServer(db, test.GoogleServiceMock{}, testRecommender(db), nil, nil, nil)
	user := test.FakeUser(db)

	req := test.NewJSONAuthRequest("GET", "/app/recommendations/daily", userPk(user), "")
	rec := httptest.NewRecorder()

	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var response models.DailyRecommendationsOut
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.Len(t, response.Recommendations, 0)
	assert.NotEmpty(t, response.GeneratedAt)
}

func TestDailyRecommendationsPlainNotes(t *testing.T) {
	db := dbhelper.SetupTestDB()
	cleaner := dbhelper.SetupCleaner(db)
	defer cleaner()
	e := SetupServer(db, test.GoogleServiceMock{}, testRecommender(db), nil, nil, nil)
	user := test.FakeUser(db)
	seedWardrobe(db, user)

	req := test.NewJSONAuthRequest("GET", "/app/recommendations/daily?plain=true", userPk(user), "")
	rec := httptest.NewRecorder()

	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var response models.DailyRecommendationsOut
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	require.NotEmpty(t, response.Recommendations)
	for _, r := range response.Recommendations {
		assert.NotContains(t, r.ConfidenceNote, "✨")
	}
}

func TestDailyRecommendationsUnauthorized(t *testing.T) {
	db := dbhelper.SetupTestDB()
	cleaner := dbhelper.SetupCleaner(db)
	defer cleaner()
	e := SetupServer(db, test.GoogleServiceMock{}, testRecommender(db), nil, nil, nil)

	req := test.NewJSONAuthRequest("GET", "/app/recommendations/daily", "", "")
	rec := httptest.NewRecorder()

	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
