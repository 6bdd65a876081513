package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	customErrors "github.com/vidora/vidora/internal/domain/errors"
	"github.com/vidora/vidora/internal/domain/model"
	"github.com/vidora/vidora/internal/domain/repo"
	"github.com/vidora/vidora/internal/video/dto"
)

const defaultPageSize = 10

type videoService struct {
	videoRepo repo.VideoRepo
	userRepo  repo.UserRepo
	v         *validator.Validate
}

func New(vr repo.VideoRepo, ur repo.UserRepo, v *validator.Validate) Service {
	return &videoService{videoRepo: vr, userRepo: ur, v: v}
}

func (s *videoService) Publish(ctx context.Context, ownerID uuid.UUID, in dto.PublishDTO) (model.Video, error) {
	if err := s.v.Struct(in); err != nil {
		return model.Video{}, customErrors.NewInvalidArgument(err.Error())
	}

	published := true
	if in.Published != nil {
		published = *in.Published
	}

	video := model.Video{
		ID:           uuid.New(),
		OwnerID:      ownerID,
		VideoURL:     in.VideoURL,
		ThumbnailURL: in.ThumbnailURL,
		Title:        in.Title,
		Description:  in.Description,
		Duration:     in.Duration,
		Published:    published,
	}

	if _, err := s.videoRepo.CreateVideo(ctx, video); err != nil {
		return model.Video{}, customErrors.WrapInternal(err, "Publish")
	}

	return s.videoRepo.GetVideoByID(ctx, video.ID)
}

func (s *videoService) Get(ctx context.Context, id, viewer uuid.UUID) (model.Video, error) {
	video, err := s.videoRepo.GetVideoByID(ctx, id)
	if err != nil {
		return model.Video{}, err
	}
	// unpublished videos exist only for their owner
	if !video.Published && video.OwnerID != viewer {
		return model.Video{}, customErrors.ErrNotFound
	}
	return video, nil
}

func (s *videoService) Update(ctx context.Context, ownerID, id uuid.UUID, in dto.UpdateDTO) (model.Video, error) {
	if err := s.v.Struct(in); err != nil {
		return model.Video{}, customErrors.NewInvalidArgument(err.Error())
	}
	if in.Title == "" && in.Description == "" && in.ThumbnailURL == "" {
		return model.Video{}, customErrors.NewInvalidArgument("nothing to update")
	}

	video, err := s.videoRepo.GetVideoByID(ctx, id)
	if err != nil {
		return model.Video{}, err
	}
	if video.OwnerID != ownerID {
		return model.Video{}, customErrors.ErrForbidden
	}

	if in.Title != "" {
		video.Title = in.Title
	}
	if in.Description != "" {
		video.Description = in.Description
	}
	if in.ThumbnailURL != "" {
		video.ThumbnailURL = in.ThumbnailURL
	}

	if err := s.videoRepo.UpdateVideo(ctx, video); err != nil {
		return model.Video{}, customErrors.WrapInternal(err, "Update")
	}
	return video, nil
}

func (s *videoService) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	video, err := s.videoRepo.GetVideoByID(ctx, id)
	if err != nil {
		return err
	}
	if video.OwnerID != ownerID {
		return customErrors.ErrForbidden
	}
	return s.videoRepo.DeleteVideo(ctx, id)
}

func (s *videoService) List(ctx context.Context, in dto.ListDTO) (VideoPage, error) {
	if err := s.v.Struct(in); err != nil {
		return VideoPage{}, customErrors.NewInvalidArgument(err.Error())
	}

	filter := repo.VideoFilter{
		Query:         in.Query,
		SortBy:        in.SortBy,
		SortAsc:       in.SortType == "asc",
		Page:          in.Page,
		Limit:         in.Limit,
		PublishedOnly: true,
	}
	if in.OwnerID != "" {
		ownerID, err := uuid.Parse(in.OwnerID)
		if err != nil {
			return VideoPage{}, customErrors.NewInvalidArgument("invalid owner id")
		}
		filter.OwnerID = &ownerID
	}
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = defaultPageSize
	}

	videos, total, err := s.videoRepo.ListVideos(ctx, filter)
	if err != nil {
		return VideoPage{}, customErrors.WrapInternal(err, "List")
	}

	totalPages := total / int64(filter.Limit)
	if total%int64(filter.Limit) != 0 {
		totalPages++
	}

	return VideoPage{
		Videos:     videos,
		Total:      total,
		TotalPages: totalPages,
		Page:       filter.Page,
		Limit:      filter.Limit,
	}, nil
}

func (s *videoService) View(ctx context.Context, viewer, id uuid.UUID) (model.Video, error) {
	video, err := s.Get(ctx, id, viewer)
	if err != nil {
		return model.Video{}, err
	}

	if err := s.videoRepo.IncrementViews(ctx, id); err != nil {
		return model.Video{}, customErrors.WrapInternal(err, "View")
	}
	if err := s.userRepo.AddWatchEntry(ctx, viewer, id); err != nil {
		return model.Video{}, customErrors.WrapInternal(err, "View")
	}

	video.Views++
	return video, nil
}
