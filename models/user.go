package models

import "time"

type UserAccount struct {
	JsonModel
	Name     string `json:"name"`
	Email    string `json:"email" gorm:"unique"`
	Password string `json:"-"`
	Banned   bool   `gorm:"default:false" json:"-"`
	LastIp   string `json:"-"`
	//"STARTED_AUTH", "FINISHED_AUTH"
	Status         string     `json:"-"`
	GoogleID       string     `json:"-"`
	AppleID        string     `json:"-"`
	UTMSource      string     `json:"utm_source"`
	Platform       Platform   `sql:"type:ENUM('ios', 'android', 'web')" json:"platform"`
	Subscription   *string    `json:"subscription"`
	ExpirationDate *time.Time `json:"-"`

	// Daily outfit notification settings
	ReceiveNotifications bool      `json:"receive_notifications"`
	NotificationTime     string    `json:"notification_time"` // "07:30" local time
	Timezone             string    `json:"timezone"`
	ConfidenceNoteStyle  NoteStyle `sql:"type:ENUM('encouraging', 'witty', 'poetic')" gorm:"default:encouraging" json:"confidence_note_style"`

	AvatarURL string `json:"avatar_url"`
}

type UserPushToken struct {
	JsonModel
	UserAccountID uint
	UserAccount   UserAccount `json:"user_account"`
	Platform      Platform    `sql:"type:ENUM('ios', 'android', 'web')" json:"platform"`
	Token         string      `json:"token"`
	Active        bool        `gorm:"default:false" json:"-"`
}

type UserPushIn struct {
	Token    string `json:"token"`
	Platform string `json:"platform"`
}

type UserSettingsIn struct {
	ReceiveNotifications *bool   `json:"receive_notifications"`
	NotificationTime     *string `json:"notification_time" validate:"omitempty,max=5"`
	Timezone             *string `json:"timezone" validate:"omitempty,max=64"`
	ConfidenceNoteStyle  *string `json:"confidence_note_style" validate:"omitempty,note_style"`
}

type UserInfoOut struct {
	Id                  uint      `json:"id"`
	Name                string    `json:"name"`
	Email               string    `json:"email"`
	Status              string    `json:"status"`
	AvatarUrl           string    `json:"avatar_url"`
	ConfidenceNoteStyle NoteStyle `json:"confidence_note_style"`
}
