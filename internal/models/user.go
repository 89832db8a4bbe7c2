package models

import "time"

// Platform identifies the chat front-end a user arrived from.
type Platform string

const (
	PlatformDiscord  Platform = "discord"
	PlatformTelegram Platform = "telegram"
)

// UserID is a platform-qualified identifier ("discord:1234", "telegram:5678").
// The qualification keeps ids stable and collision-free across front-ends.
type UserID string

func NewUserID(platform Platform, raw string) UserID {
	return UserID(string(platform) + ":" + raw)
}

func (id UserID) String() string {
	return string(id)
}

// User is the profile record kept alongside the credit balance. The balance
// itself lives under its own key and is mutated only through the ledger.
type User struct {
	ID           UserID            `json:"id" redis:"id"`
	Platform     Platform          `json:"platform" redis:"platform"`
	Username     string            `json:"username" redis:"username"`
	PremiumUntil *time.Time        `json:"premium_until,omitempty" redis:"premium_until"`
	Settings     map[string]string `json:"settings,omitempty" redis:"settings"`
	CreatedAt    time.Time         `json:"created_at" redis:"created_at"`
	UpdatedAt    time.Time         `json:"updated_at" redis:"updated_at"`
}

func NewUser(id UserID, platform Platform, username string) *User {
	now := time.Now()
	return &User{
		ID:        id,
		Platform:  platform,
		Username:  username,
		Settings:  map[string]string{},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func (u *User) IsPremium(now time.Time) bool {
	return u.PremiumUntil != nil && u.PremiumUntil.After(now)
}
