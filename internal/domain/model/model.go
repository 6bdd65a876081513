package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// User is the account record. PasswordHash never leaves the repo/service
// layer; RefreshToken is nil when the user has no active session.
type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Handle       string    `gorm:"uniqueIndex;not null"`
	Email        string    `gorm:"uniqueIndex;not null"`
	FullName     string    `gorm:"not null"`
	AvatarURL    string    `gorm:"not null"`
	CoverURL     string
	PasswordHash string `gorm:"not null"`
	RefreshToken *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type Video struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	OwnerID      uuid.UUID `gorm:"type:uuid;index;not null"`
	VideoURL     string    `gorm:"not null"`
	ThumbnailURL string    `gorm:"not null"`
	Title        string    `gorm:"not null"`
	Description  string
	Duration     float64
	Views        int64
	Published    bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type Subscription struct {
	SubscriberID uuid.UUID `gorm:"type:uuid;primaryKey"`
	ChannelID    uuid.UUID `gorm:"type:uuid;primaryKey"`
	CreatedAt    time.Time
}

// WatchEntry is one row of a user's ordered watch history.
type WatchEntry struct {
	ID        uint      `gorm:"primaryKey"`
	UserID    uuid.UUID `gorm:"type:uuid;index;not null"`
	VideoID   uuid.UUID `gorm:"type:uuid;not null"`
	WatchedAt time.Time
}

func (WatchEntry) TableName() string { return "watch_history" }

type TokenPair struct {
	AccessToken  string
	RefreshToken string
	AccessTTL    time.Duration
	RefreshTTL   time.Duration
	UserID       uuid.UUID
}

// Profile is the sanitized projection of a User: no hash, no refresh token.
type Profile struct {
	ID        uuid.UUID `json:"id"`
	Handle    string    `json:"handle"`
	Email     string    `json:"email"`
	FullName  string    `json:"fullName"`
	AvatarURL string    `json:"avatarUrl"`
	CoverURL  string    `json:"coverUrl,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

func NewProfile(u User) Profile {
	return Profile{
		ID:        u.ID,
		Handle:    u.Handle,
		Email:     u.Email,
		FullName:  u.FullName,
		AvatarURL: u.AvatarURL,
		CoverURL:  u.CoverURL,
		CreatedAt: u.CreatedAt,
	}
}

// ChannelProfile is the public channel view with subscription counters.
// Flat so adapters can scan a joined row straight into it.
type ChannelProfile struct {
	ID                uuid.UUID `json:"id"`
	Handle            string    `json:"handle"`
	Email             string    `json:"email"`
	FullName          string    `json:"fullName"`
	AvatarURL         string    `json:"avatarUrl"`
	CoverURL          string    `json:"coverUrl,omitempty"`
	SubscriberCount   int64     `json:"subscriberCount"`
	SubscribedToCount int64     `json:"subscribedToCount"`
	IsSubscribed      bool      `json:"isSubscribed"`
}

type VideoWithOwner struct {
	Video
	OwnerHandle    string `json:"ownerHandle"`
	OwnerName      string `json:"ownerName"`
	OwnerAvatarURL string `json:"ownerAvatarUrl"`
}

type WatchHistoryItem struct {
	VideoID        uuid.UUID `json:"videoId"`
	Title          string    `json:"title"`
	ThumbnailURL   string    `json:"thumbnailUrl"`
	Duration       float64   `json:"duration"`
	OwnerHandle    string    `json:"ownerHandle"`
	OwnerName      string    `json:"ownerName"`
	OwnerAvatarURL string    `json:"ownerAvatarUrl"`
	WatchedAt      time.Time `json:"watchedAt"`
}

// Canonical is the normalized form used for handle/email uniqueness:
// trimmed and case-folded. Uniqueness is compared on this form only.
func Canonical(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
