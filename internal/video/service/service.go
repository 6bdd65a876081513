package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/vidora/vidora/internal/domain/model"
	"github.com/vidora/vidora/internal/video/dto"
)

type VideoPage struct {
	Videos     []model.VideoWithOwner `json:"videos"`
	Total      int64                  `json:"total"`
	TotalPages int64                  `json:"totalPages"`
	Page       int                    `json:"page"`
	Limit      int                    `json:"limit"`
}

// Service owns video metadata. Media bytes live in the object store; the
// service only ever sees their URLs.
type Service interface {
	Publish(ctx context.Context, ownerID uuid.UUID, in dto.PublishDTO) (model.Video, error)
	Get(ctx context.Context, id, viewer uuid.UUID) (model.Video, error)
	Update(ctx context.Context, ownerID, id uuid.UUID, in dto.UpdateDTO) (model.Video, error)
	Delete(ctx context.Context, ownerID, id uuid.UUID) error
	List(ctx context.Context, in dto.ListDTO) (VideoPage, error)
	// View returns the video, bumps its view counter and appends it to the
	// viewer's watch history.
	View(ctx context.Context, viewer, id uuid.UUID) (model.Video, error)
}
