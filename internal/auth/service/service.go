package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/vidora/vidora/internal/auth/dto"
	"github.com/vidora/vidora/internal/domain/model"
)

// Service is the session core: registration, the login/refresh/logout
// state machine, the password lifecycle, and the profile operations that
// hang off the user record.
type Service interface {
	Register(ctx context.Context, in dto.RegisterDTO) (model.Profile, error)
	Login(ctx context.Context, in dto.LoginDTO) (model.TokenPair, model.Profile, error)
	Refresh(ctx context.Context, in dto.RefreshDTO) (model.TokenPair, error)
	Logout(ctx context.Context, userID uuid.UUID) error
	Validate(ctx context.Context, in dto.ValidateDTO) (model.User, error)

	ChangePassword(ctx context.Context, userID uuid.UUID, in dto.ChangePasswordDTO) error
	CurrentUser(ctx context.Context, userID uuid.UUID) (model.Profile, error)
	UpdateAccount(ctx context.Context, userID uuid.UUID, in dto.UpdateAccountDTO) (model.Profile, error)
	UpdateAvatar(ctx context.Context, userID uuid.UUID, url string) (model.Profile, error)
	UpdateCover(ctx context.Context, userID uuid.UUID, url string) (model.Profile, error)

	ChannelProfile(ctx context.Context, handle string, viewer uuid.UUID) (model.ChannelProfile, error)
	Subscribe(ctx context.Context, viewer uuid.UUID, handle string) error
	Unsubscribe(ctx context.Context, viewer uuid.UUID, handle string) error
	WatchHistory(ctx context.Context, userID uuid.UUID) ([]model.WatchHistoryItem, error)
}
