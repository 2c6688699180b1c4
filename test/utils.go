package test

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"time"

	"aynamodaapi/models"

	"github.com/golang-jwt/jwt/v4"
	"github.com/lib/pq"
	"google.golang.org/api/idtoken"
	"gorm.io/gorm"
)

func JsonString(model interface{}) string {
	bytes, _ := json.Marshal(model)
	return string(bytes)
}

func NewJSONRequest(method string, target string, param interface{}) *http.Request {

	req := httptest.NewRequest(method, target, strings.NewReader(JsonString(param)))
	req.Header.Add("Content-Type", "application/json")
	req.Header.Add("Accept", "application/json")
	return req
}

func GenerateUserToken(userPk string) string {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   userPk,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour * 72)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	})
	t, err := token.SignedString([]byte(os.Getenv("JWT_SECRET")))
	if err != nil {
		log.Fatalf("Error when signing user token for %s. Error %s ", userPk, err)
	}
	return t
}

func NewJSONAuthRequest(method string, target string, userPk string, param interface{}) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(JsonString(param)))
	req.Header.Add("Content-Type", "application/json")
	req.Header.Add("Accept", "application/json")
	token := GenerateUserToken(userPk)
	req.Header.Add("Authorization", fmt.Sprintf("Bearer %s", token))
	return req
}

func NewJSONAuthRequestCustomAuth(method string, target string, authorizationString string, param interface{}) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(JsonString(param)))
	req.Header.Add("Content-Type", "application/json")
	req.Header.Add("Accept", "application/json")
	req.Header.Add("Authorization", authorizationString)
	return req
}

func Int64Pointer(i int64) *int64 {
	return &i
}

func NewRefString(data string) *string {
	return &data
}

func FakeUser(db *gorm.DB) *models.UserAccount {
	user := &models.UserAccount{
		Name:                "OurName",
		Email:               "email@example.com",
		GoogleID:            "12232",
		Platform:            models.PlatformIOS,
		LastIp:              "123.122.122.122",
		Status:              "FINISHED_AUTH",
		AvatarURL:           "pictureurl",
		ConfidenceNoteStyle: models.NoteStyleEncouraging,
	}
	db.Create(&user)
	tokenDb := models.UserPushToken{
		UserAccountID: user.ID,
		Platform:      "android",
		Token:         "cX-UZ3zwQEiPt-2GJkG2gA:APA91bGqRflaGrJrnynhRwZ442HdgUjVcO7mWMFnx6IwAdJ9RRKopvSP4QU7hbvTmk1XAp8XGvtHZLvo5JmOPTVKBbGqqvhfbZWKlXA9csEjx1hgpNvrWepU",
		Active:        true,
	}
	db.Save(&tokenDb)
	return user
}

func FakeUserV2(db *gorm.DB, userName string, email string) *models.UserAccount {
	if email == "" {
		email = "email@example.com"
	}
	user := &models.UserAccount{
		Name:                userName,
		Email:               email,
		GoogleID:            "12232",
		Platform:            models.PlatformIOS,
		LastIp:              "123.122.122.122",
		Status:              "FINISHED_AUTH",
		AvatarURL:           "pictureurl",
		ConfidenceNoteStyle: models.NoteStyleEncouraging,
	}
	db.Create(&user)
	return user
}

// FakeWardrobeItem inserts one owned item with sensible defaults.
func FakeWardrobeItem(db *gorm.DB, ownerID uint, name string, category models.GarmentCategory, colors []string, tags []string) *models.WardrobeItem {
	item := &models.WardrobeItem{
		Name:     name,
		Category: category,
		Colors:   pq.StringArray(colors),
		Tags:     pq.StringArray(tags),
		OwnerID:  ownerID,
	}
	db.Create(&item)
	return item
}

func Contains(items []string, lookFor string) bool {

	for i := 0; i < len(items); i++ {

		if items[i] == lookFor {
			return true
		}
	}
	return false
}

type GoogleServiceMock struct{}

func (gsm GoogleServiceMock) ValidateIdToken(ctx context.Context, idToken string, audience string) (*idtoken.Payload, error) {

	return &idtoken.Payload{Issuer: "Issue", Audience: "AAA", Expires: 119919191919, IssuedAt: 12312321321, Subject: "fake@example.com", Claims: map[string]interface{}{
		"email":   "fake@example.com",
		"picture": "pictureurl",
		"sub":     "123googleid",
	}}, nil

}

func (gsm GoogleServiceMock) GetUserSubscriptionStatus(ctx context.Context, appUserId string) ([]byte, error) {
	data := `
	{
		"request_date": "2024-05-11T06:50:56Z",
		"subscriber": {
		  "entitlements": {
			"pro": {
			  "expires_date": "2030-05-11T06:51:15Z",
			  "grace_period_expires_date": null,
			  "product_identifier": "prostandard",
			  "product_plan_identifier": "monthly-autorenew",
			  "purchase_date": "2024-05-11T06:49:05Z"
			}
		  },
		  "first_seen": "2024-05-07T12:41:57Z",
		  "management_url": "https://play.google.com/store/account/subscriptions",
		  "non_subscriptions": {},
		  "original_app_user_id": "1",
		  "subscriptions": {
			"prostandard": {
			  "expires_date": "2030-05-11T06:51:15Z",
			  "is_sandbox": true,
			  "period_type": "normal",
			  "product_plan_identifier": "monthly-autorenew",
			  "purchase_date": "2024-05-11T06:49:05Z",
			  "store": "play_store"
			}
		  }
		}
	  }
	  `

	return []byte(data), nil
}

// WeatherServiceMock returns a fixed forecast for deterministic tests.
type WeatherServiceMock struct {
	Temperature float64
	Condition   models.WeatherCondition
	Err         error
}

func (m WeatherServiceMock) GetCurrentWeather(ctx context.Context, userID uint) (models.WeatherContext, error) {
	if m.Err != nil {
		return models.WeatherContext{}, m.Err
	}
	condition := m.Condition
	if condition == "" {
		condition = models.ConditionSunny
	}
	temperature := m.Temperature
	if temperature == 0 {
		temperature = 70
	}
	return models.WeatherContext{
		Temperature: temperature,
		Condition:   condition,
		Humidity:    40,
		Location:    "test",
		Timestamp:   time.Now().UTC(),
	}, nil
}

// CalendarServiceMock serves a canned primary event.
type CalendarServiceMock struct {
	PrimaryEvent *models.CalendarEvent
	Err          error
}

func (m CalendarServiceMock) GetCalendarContext(ctx context.Context, userID uint) (*models.CalendarContext, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if m.PrimaryEvent == nil {
		return nil, nil
	}
	return &models.CalendarContext{PrimaryEvent: m.PrimaryEvent}, nil
}
