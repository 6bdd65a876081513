package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgconn"
	"gorm.io/gorm"

	customErrors "github.com/vidora/vidora/internal/domain/errors"
	"github.com/vidora/vidora/internal/domain/model"
)

type UserRepo struct {
	db *gorm.DB
}

func NewUserRepo(db *gorm.DB) *UserRepo {
	return &UserRepo{db: db}
}

func isDuplicate(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return true
	}
	return errors.Is(err, gorm.ErrDuplicatedKey)
}

func (r *UserRepo) CreateUser(ctx context.Context, user model.User) (uuid.UUID, error) {
	res := r.db.WithContext(ctx).Create(&user)
	if err := res.Error; err != nil {
		if isDuplicate(err) {
			return uuid.Nil, customErrors.ErrAlreadyExists
		}
		return uuid.Nil, customErrors.WrapInternal(err, "CreateUser")
	}
	return user.ID, nil
}

func (r *UserRepo) GetUserByID(ctx context.Context, id uuid.UUID) (model.User, error) {
	var u model.User
	res := r.db.WithContext(ctx).Where("id = ?", id).First(&u)
	if errors.Is(res.Error, gorm.ErrRecordNotFound) {
		return model.User{}, customErrors.ErrNotFound
	}
	if err := res.Error; err != nil {
		return model.User{}, customErrors.WrapInternal(err, "GetUserByID")
	}
	return u, nil
}

// GetUserByHandleOrEmail expects the identifier in canonical form.
func (r *UserRepo) GetUserByHandleOrEmail(ctx context.Context, identifier string) (model.User, error) {
	var u model.User
	res := r.db.WithContext(ctx).Where("handle = ? OR email = ?", identifier, identifier).First(&u)
	if errors.Is(res.Error, gorm.ErrRecordNotFound) {
		return model.User{}, customErrors.ErrNotFound
	}
	if err := res.Error; err != nil {
		return model.User{}, customErrors.WrapInternal(err, "GetUserByHandleOrEmail")
	}
	return u, nil
}

func (r *UserRepo) UpdateAccount(ctx context.Context, id uuid.UUID, fullName, email string) error {
	res := r.db.WithContext(ctx).Model(&model.User{}).Where("id = ?", id).
		Updates(map[string]interface{}{"full_name": fullName, "email": email})
	if err := res.Error; err != nil {
		if isDuplicate(err) {
			return customErrors.ErrAlreadyExists
		}
		return customErrors.WrapInternal(err, "UpdateAccount")
	}
	if res.RowsAffected == 0 {
		return customErrors.ErrNotFound
	}
	return nil
}

func (r *UserRepo) UpdateAvatar(ctx context.Context, id uuid.UUID, url string) error {
	return r.updateColumn(ctx, id, "avatar_url", url, "UpdateAvatar")
}

func (r *UserRepo) UpdateCover(ctx context.Context, id uuid.UUID, url string) error {
	return r.updateColumn(ctx, id, "cover_url", url, "UpdateCover")
}

// UpdatePassword stores a hash computed by the caller. No other update
// path writes this column.
func (r *UserRepo) UpdatePassword(ctx context.Context, id uuid.UUID, hash string) error {
	return r.updateColumn(ctx, id, "password_hash", hash, "UpdatePassword")
}

func (r *UserRepo) SetRefreshToken(ctx context.Context, id uuid.UUID, token string) error {
	return r.updateColumn(ctx, id, "refresh_token", token, "SetRefreshToken")
}

// RotateRefreshToken is the compare-and-swap at the heart of rotation:
// one conditional UPDATE keyed on both the id and the expected old value.
// Zero rows affected means the stored token was already rotated away.
func (r *UserRepo) RotateRefreshToken(ctx context.Context, id uuid.UUID, old, next string) error {
	res := r.db.WithContext(ctx).Model(&model.User{}).
		Where("id = ? AND refresh_token = ?", id, old).
		Update("refresh_token", next)
	if err := res.Error; err != nil {
		return customErrors.WrapInternal(err, "RotateRefreshToken")
	}
	if res.RowsAffected == 0 {
		return customErrors.ErrTokenReused
	}
	return nil
}

// ClearRefreshToken succeeds whether or not a session existed.
func (r *UserRepo) ClearRefreshToken(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Model(&model.User{}).Where("id = ?", id).
		Update("refresh_token", gorm.Expr("NULL"))
	if err := res.Error; err != nil {
		return customErrors.WrapInternal(err, "ClearRefreshToken")
	}
	return nil
}

func (r *UserRepo) GetChannelProfile(ctx context.Context, handle string, viewer uuid.UUID) (model.ChannelProfile, error) {
	var cp model.ChannelProfile
	res := r.db.WithContext(ctx).Model(&model.User{}).
		Select(`users.id, users.handle, users.email, users.full_name, users.avatar_url, users.cover_url,
			(SELECT count(*) FROM subscriptions s WHERE s.channel_id = users.id) AS subscriber_count,
			(SELECT count(*) FROM subscriptions s WHERE s.subscriber_id = users.id) AS subscribed_to_count,
			(SELECT count(*) FROM subscriptions s WHERE s.channel_id = users.id AND s.subscriber_id = ?) > 0 AS is_subscribed`,
			viewer).
		Where("users.handle = ?", handle).
		Scan(&cp)
	if err := res.Error; err != nil {
		return model.ChannelProfile{}, customErrors.WrapInternal(err, "GetChannelProfile")
	}
	if cp.ID == uuid.Nil {
		return model.ChannelProfile{}, customErrors.ErrNotFound
	}
	return cp, nil
}

// Subscribe is idempotent: re-subscribing is not an error.
func (r *UserRepo) Subscribe(ctx context.Context, subscriber, channel uuid.UUID) error {
	sub := model.Subscription{SubscriberID: subscriber, ChannelID: channel}
	res := r.db.WithContext(ctx).Create(&sub)
	if err := res.Error; err != nil {
		if isDuplicate(err) {
			return nil
		}
		return customErrors.WrapInternal(err, "Subscribe")
	}
	return nil
}

func (r *UserRepo) Unsubscribe(ctx context.Context, subscriber, channel uuid.UUID) error {
	res := r.db.WithContext(ctx).
		Where("subscriber_id = ? AND channel_id = ?", subscriber, channel).
		Delete(&model.Subscription{})
	if err := res.Error; err != nil {
		return customErrors.WrapInternal(err, "Unsubscribe")
	}
	return nil
}

func (r *UserRepo) AddWatchEntry(ctx context.Context, userID, videoID uuid.UUID) error {
	entry := model.WatchEntry{UserID: userID, VideoID: videoID, WatchedAt: time.Now()}
	res := r.db.WithContext(ctx).Create(&entry)
	if err := res.Error; err != nil {
		return customErrors.WrapInternal(err, "AddWatchEntry")
	}
	return nil
}

func (r *UserRepo) GetWatchHistory(ctx context.Context, userID uuid.UUID, limit int) ([]model.WatchHistoryItem, error) {
	var items []model.WatchHistoryItem
	res := r.db.WithContext(ctx).
		Table("watch_history").
		Select(`videos.id AS video_id, videos.title, videos.thumbnail_url, videos.duration,
			owners.handle AS owner_handle, owners.full_name AS owner_name,
			owners.avatar_url AS owner_avatar_url, watch_history.watched_at`).
		Joins("JOIN videos ON videos.id = watch_history.video_id").
		Joins("JOIN users owners ON owners.id = videos.owner_id").
		Where("watch_history.user_id = ?", userID).
		Order("watch_history.watched_at DESC").
		Limit(limit).
		Scan(&items)
	if err := res.Error; err != nil {
		return nil, customErrors.WrapInternal(err, "GetWatchHistory")
	}
	return items, nil
}

func (r *UserRepo) updateColumn(ctx context.Context, id uuid.UUID, column string, value interface{}, op string) error {
	res := r.db.WithContext(ctx).Model(&model.User{}).Where("id = ?", id).Update(column, value)
	if err := res.Error; err != nil {
		return customErrors.WrapInternal(err, op)
	}
	if res.RowsAffected == 0 {
		return customErrors.ErrNotFound
	}
	return nil
}
