package repo

import (
	"context"

	"github.com/google/uuid"
	"github.com/vidora/vidora/internal/domain/model"
)

// VideoFilter narrows ListVideos. SortBy must be one of the adapter's
// whitelisted columns; unknown values fall back to newest-first.
type VideoFilter struct {
	OwnerID       *uuid.UUID
	Query         string
	SortBy        string
	SortAsc       bool
	Page          int
	Limit         int
	PublishedOnly bool
}

type VideoRepo interface {
	CreateVideo(ctx context.Context, video model.Video) (uuid.UUID, error)
	GetVideoByID(ctx context.Context, id uuid.UUID) (model.Video, error)
	UpdateVideo(ctx context.Context, video model.Video) error
	DeleteVideo(ctx context.Context, id uuid.UUID) error
	ListVideos(ctx context.Context, f VideoFilter) ([]model.VideoWithOwner, int64, error)
	IncrementViews(ctx context.Context, id uuid.UUID) error
}
