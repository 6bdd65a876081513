package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	customErrors "github.com/vidora/vidora/internal/domain/errors"
	"github.com/vidora/vidora/internal/domain/model"
	"github.com/vidora/vidora/internal/domain/repo"
)

// sortColumns is the whitelist for ListVideos ordering; anything else
// falls back to created_at.
var sortColumns = map[string]string{
	"created_at": "videos.created_at",
	"views":      "videos.views",
	"duration":   "videos.duration",
	"title":      "videos.title",
}

type VideoRepo struct {
	db *gorm.DB
}

func NewVideoRepo(db *gorm.DB) *VideoRepo {
	return &VideoRepo{db: db}
}

func (r *VideoRepo) CreateVideo(ctx context.Context, video model.Video) (uuid.UUID, error) {
	res := r.db.WithContext(ctx).Create(&video)
	if err := res.Error; err != nil {
		return uuid.Nil, customErrors.WrapInternal(err, "CreateVideo")
	}
	return video.ID, nil
}

func (r *VideoRepo) GetVideoByID(ctx context.Context, id uuid.UUID) (model.Video, error) {
	var v model.Video
	res := r.db.WithContext(ctx).Where("id = ?", id).First(&v)
	if errors.Is(res.Error, gorm.ErrRecordNotFound) {
		return model.Video{}, customErrors.ErrNotFound
	}
	if err := res.Error; err != nil {
		return model.Video{}, customErrors.WrapInternal(err, "GetVideoByID")
	}
	return v, nil
}

func (r *VideoRepo) UpdateVideo(ctx context.Context, video model.Video) error {
	res := r.db.WithContext(ctx).Model(&model.Video{}).Where("id = ?", video.ID).
		Updates(map[string]interface{}{
			"title":         video.Title,
			"description":   video.Description,
			"thumbnail_url": video.ThumbnailURL,
		})
	if err := res.Error; err != nil {
		return customErrors.WrapInternal(err, "UpdateVideo")
	}
	if res.RowsAffected == 0 {
		return customErrors.ErrNotFound
	}
	return nil
}

func (r *VideoRepo) DeleteVideo(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&model.Video{}, "id = ?", id)
	if err := res.Error; err != nil {
		return customErrors.WrapInternal(err, "DeleteVideo")
	}
	if res.RowsAffected == 0 {
		return customErrors.ErrNotFound
	}
	return nil
}

func (r *VideoRepo) ListVideos(ctx context.Context, f repo.VideoFilter) ([]model.VideoWithOwner, int64, error) {
	base := r.db.WithContext(ctx).Model(&model.Video{})
	if f.PublishedOnly {
		base = base.Where("videos.published = ?", true)
	}
	if f.OwnerID != nil {
		base = base.Where("videos.owner_id = ?", *f.OwnerID)
	}
	if f.Query != "" {
		pattern := "%" + f.Query + "%"
		base = base.Where("LOWER(videos.title) LIKE LOWER(?) OR LOWER(videos.description) LIKE LOWER(?)", pattern, pattern)
	}

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, customErrors.WrapInternal(err, "ListVideos count")
	}

	order := sortColumns["created_at"] + " DESC"
	if col, ok := sortColumns[f.SortBy]; ok {
		dir := "DESC"
		if f.SortAsc {
			dir = "ASC"
		}
		order = col + " " + dir
	}

	var videos []model.VideoWithOwner
	res := base.Session(&gorm.Session{}).
		Select(`videos.*, users.handle AS owner_handle, users.full_name AS owner_name,
			users.avatar_url AS owner_avatar_url`).
		Joins("JOIN users ON users.id = videos.owner_id").
		Order(order).
		Offset((f.Page - 1) * f.Limit).
		Limit(f.Limit).
		Scan(&videos)
	if err := res.Error; err != nil {
		return nil, 0, customErrors.WrapInternal(err, "ListVideos")
	}

	return videos, total, nil
}

func (r *VideoRepo) IncrementViews(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Model(&model.Video{}).Where("id = ?", id).
		UpdateColumn("views", gorm.Expr("views + 1"))
	if err := res.Error; err != nil {
		return customErrors.WrapInternal(err, "IncrementViews")
	}
	if res.RowsAffected == 0 {
		return customErrors.ErrNotFound
	}
	return nil
}
