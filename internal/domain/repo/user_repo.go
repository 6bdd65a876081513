package repo

import (
	"context"

	"github.com/google/uuid"
	"github.com/vidora/vidora/internal/domain/model"
)

// UserRepo owns the mutable user record. Password hashes arrive already
// computed; only UpdatePassword may store a new one, so unrelated updates
// can never re-trigger hashing.
type UserRepo interface {
	CreateUser(ctx context.Context, user model.User) (uuid.UUID, error)
	GetUserByID(ctx context.Context, id uuid.UUID) (model.User, error)
	// GetUserByHandleOrEmail matches either canonical field.
	GetUserByHandleOrEmail(ctx context.Context, identifier string) (model.User, error)

	UpdateAccount(ctx context.Context, id uuid.UUID, fullName, email string) error
	UpdateAvatar(ctx context.Context, id uuid.UUID, url string) error
	UpdateCover(ctx context.Context, id uuid.UUID, url string) error
	UpdatePassword(ctx context.Context, id uuid.UUID, hash string) error

	// SetRefreshToken unconditionally overwrites the stored value (login).
	SetRefreshToken(ctx context.Context, id uuid.UUID, token string) error
	// RotateRefreshToken swaps old for next in a single conditional update.
	// When the stored value no longer equals old it returns ErrTokenReused;
	// under concurrent refreshes only the first writer succeeds.
	RotateRefreshToken(ctx context.Context, id uuid.UUID, old, next string) error
	ClearRefreshToken(ctx context.Context, id uuid.UUID) error

	GetChannelProfile(ctx context.Context, handle string, viewer uuid.UUID) (model.ChannelProfile, error)
	Subscribe(ctx context.Context, subscriber, channel uuid.UUID) error
	Unsubscribe(ctx context.Context, subscriber, channel uuid.UUID) error

	AddWatchEntry(ctx context.Context, userID, videoID uuid.UUID) error
	GetWatchHistory(ctx context.Context, userID uuid.UUID, limit int) ([]model.WatchHistoryItem, error)
}
