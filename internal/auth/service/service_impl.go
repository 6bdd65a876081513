package service

import (
	"context"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/vidora/vidora/internal/auth/dto"
	"github.com/vidora/vidora/internal/auth/hash"
	"github.com/vidora/vidora/internal/auth/jwt"
	"github.com/vidora/vidora/internal/config"
	customErrors "github.com/vidora/vidora/internal/domain/errors"
	"github.com/vidora/vidora/internal/domain/model"
	"github.com/vidora/vidora/internal/domain/repo"
)

const watchHistoryLimit = 100

// ProfileCache is a read-through cache for channel profiles. Failures are
// treated as misses; the store stays the source of truth.
type ProfileCache interface {
	GetChannel(ctx context.Context, handle string, viewer uuid.UUID) (model.ChannelProfile, bool, error)
	SetChannel(ctx context.Context, handle string, viewer uuid.UUID, profile model.ChannelProfile) error
	InvalidateChannel(ctx context.Context, handle string) error
}

type authService struct {
	userRepo repo.UserRepo
	tokens   jwt.TokenUtil
	hasher   *hash.Hasher
	cache    ProfileCache
	cfg      *config.Config
	v        *validator.Validate
}

func New(
	ur repo.UserRepo,
	tu jwt.TokenUtil,
	h *hash.Hasher,
	pc ProfileCache,
	cfg *config.Config,
	v *validator.Validate,
) Service {
	return &authService{
		userRepo: ur, tokens: tu, hasher: h, cache: pc, cfg: cfg, v: v,
	}
}

func (a *authService) Register(ctx context.Context, in dto.RegisterDTO) (model.Profile, error) {
	// canonicalize before validation: padded or mixed-case input is
	// normalized, not rejected
	in.Handle = model.Canonical(in.Handle)
	in.Email = model.Canonical(in.Email)
	if err := a.v.Struct(in); err != nil {
		return model.Profile{}, customErrors.NewInvalidArgument(err.Error())
	}

	passwordHash, err := a.hasher.Hash(in.Password)
	if err != nil {
		return model.Profile{}, err
	}

	user := model.User{
		ID:           uuid.New(),
		Handle:       in.Handle,
		Email:        in.Email,
		FullName:     in.FullName,
		AvatarURL:    in.AvatarURL,
		CoverURL:     in.CoverURL,
		PasswordHash: passwordHash,
	}

	if _, err := a.userRepo.CreateUser(ctx, user); err != nil {
		if errors.Is(err, customErrors.ErrAlreadyExists) {
			return model.Profile{}, customErrors.ErrAlreadyExists
		}
		return model.Profile{}, customErrors.WrapInternal(err, "Register")
	}

	created, err := a.userRepo.GetUserByID(ctx, user.ID)
	if err != nil {
		return model.Profile{}, customErrors.WrapInternal(err, "Register")
	}

	return model.NewProfile(created), nil
}

func (a *authService) Login(ctx context.Context, in dto.LoginDTO) (model.TokenPair, model.Profile, error) {
	in.Identifier = model.Canonical(in.Identifier)
	if err := a.v.Struct(in); err != nil {
		return model.TokenPair{}, model.Profile{}, customErrors.NewInvalidArgument(err.Error())
	}

	user, err := a.userRepo.GetUserByHandleOrEmail(ctx, in.Identifier)
	switch {
	case errors.Is(err, customErrors.ErrNotFound):
		return model.TokenPair{}, model.Profile{}, customErrors.ErrNotFound
	case err != nil:
		return model.TokenPair{}, model.Profile{}, customErrors.WrapInternal(err, "Login")
	}

	ok, err := a.hasher.Verify(in.Password, user.PasswordHash)
	if err != nil {
		return model.TokenPair{}, model.Profile{}, err
	}
	if !ok {
		return model.TokenPair{}, model.Profile{}, customErrors.ErrInvalidCredentials
	}

	// Overwriting the stored value invalidates any previous session.
	pair, err := a.issuePair(ctx, user, "")
	if err != nil {
		return model.TokenPair{}, model.Profile{}, err
	}

	return pair, model.NewProfile(user), nil
}

// Refresh rotates the refresh token. The presented value must match the
// one stored on the user record byte for byte; the swap itself is a
// conditional update in the store, so of two racing refreshes only the
// first succeeds and the second fails closed with ErrTokenReused.
func (a *authService) Refresh(ctx context.Context, in dto.RefreshDTO) (model.TokenPair, error) {
	if in.RefreshToken == "" {
		return model.TokenPair{}, customErrors.ErrUnauthorized
	}

	claims, err := a.tokens.ValidateRefreshToken(in.RefreshToken)
	if err != nil {
		return model.TokenPair{}, customErrors.ErrInvalidToken
	}

	uid, err := uuid.Parse(claims.Subject)
	if err != nil {
		return model.TokenPair{}, customErrors.ErrInvalidToken
	}

	user, err := a.userRepo.GetUserByID(ctx, uid)
	switch {
	case errors.Is(err, customErrors.ErrNotFound):
		return model.TokenPair{}, customErrors.ErrInvalidToken
	case err != nil:
		return model.TokenPair{}, customErrors.WrapInternal(err, "Refresh")
	}

	if user.RefreshToken == nil {
		// Logged out: a valid signature is not a session.
		return model.TokenPair{}, customErrors.ErrUnauthorized
	}
	if *user.RefreshToken != in.RefreshToken {
		return model.TokenPair{}, customErrors.ErrTokenReused
	}

	return a.issuePair(ctx, user, in.RefreshToken)
}

// Logout clears the stored refresh token. Logging out twice is fine.
func (a *authService) Logout(ctx context.Context, userID uuid.UUID) error {
	if err := a.userRepo.ClearRefreshToken(ctx, userID); err != nil {
		return customErrors.WrapInternal(err, "Logout")
	}
	return nil
}

func (a *authService) Validate(ctx context.Context, in dto.ValidateDTO) (model.User, error) {
	if err := a.v.Struct(in); err != nil {
		return model.User{}, customErrors.NewInvalidArgument(err.Error())
	}

	claims, err := a.tokens.ValidateAccessToken(in.AccessToken)
	if err != nil {
		return model.User{}, customErrors.ErrInvalidToken
	}

	uid, err := uuid.Parse(claims.Subject)
	if err != nil {
		return model.User{}, customErrors.ErrInvalidToken
	}

	user, err := a.userRepo.GetUserByID(ctx, uid)
	if err != nil {
		return model.User{}, customErrors.ErrInvalidToken
	}
	return user, nil
}

// ChangePassword re-hashes only because the password itself changed; no
// other write path touches the hash. It deliberately leaves the current
// refresh token in place (documented design decision).
func (a *authService) ChangePassword(ctx context.Context, userID uuid.UUID, in dto.ChangePasswordDTO) error {
	if err := a.v.Struct(in); err != nil {
		return customErrors.NewInvalidArgument(err.Error())
	}

	user, err := a.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return err
	}

	ok, err := a.hasher.Verify(in.OldPassword, user.PasswordHash)
	if err != nil {
		return err
	}
	if !ok {
		return customErrors.ErrInvalidCredentials
	}

	newHash, err := a.hasher.Hash(in.NewPassword)
	if err != nil {
		return err
	}

	if err := a.userRepo.UpdatePassword(ctx, userID, newHash); err != nil {
		return customErrors.WrapInternal(err, "ChangePassword")
	}
	return nil
}

func (a *authService) CurrentUser(ctx context.Context, userID uuid.UUID) (model.Profile, error) {
	user, err := a.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return model.Profile{}, err
	}
	return model.NewProfile(user), nil
}

func (a *authService) UpdateAccount(ctx context.Context, userID uuid.UUID, in dto.UpdateAccountDTO) (model.Profile, error) {
	if in.Email != "" {
		in.Email = model.Canonical(in.Email)
	}
	if err := a.v.Struct(in); err != nil {
		return model.Profile{}, customErrors.NewInvalidArgument(err.Error())
	}
	if in.FullName == "" && in.Email == "" {
		return model.Profile{}, customErrors.NewInvalidArgument("nothing to update")
	}

	user, err := a.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return model.Profile{}, err
	}

	fullName := user.FullName
	if in.FullName != "" {
		fullName = in.FullName
	}
	email := user.Email
	if in.Email != "" {
		email = in.Email
	}

	if err := a.userRepo.UpdateAccount(ctx, userID, fullName, email); err != nil {
		return model.Profile{}, err
	}
	_ = a.cache.InvalidateChannel(ctx, user.Handle)

	user.FullName = fullName
	user.Email = email
	return model.NewProfile(user), nil
}

func (a *authService) UpdateAvatar(ctx context.Context, userID uuid.UUID, url string) (model.Profile, error) {
	if url == "" {
		return model.Profile{}, customErrors.NewInvalidArgument("avatar url is required")
	}
	return a.updateImage(ctx, userID, url, a.userRepo.UpdateAvatar)
}

func (a *authService) UpdateCover(ctx context.Context, userID uuid.UUID, url string) (model.Profile, error) {
	if url == "" {
		return model.Profile{}, customErrors.NewInvalidArgument("cover url is required")
	}
	return a.updateImage(ctx, userID, url, a.userRepo.UpdateCover)
}

func (a *authService) updateImage(
	ctx context.Context,
	userID uuid.UUID,
	url string,
	update func(context.Context, uuid.UUID, string) error,
) (model.Profile, error) {
	if err := update(ctx, userID, url); err != nil {
		return model.Profile{}, err
	}

	user, err := a.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return model.Profile{}, err
	}
	_ = a.cache.InvalidateChannel(ctx, user.Handle)
	return model.NewProfile(user), nil
}

func (a *authService) ChannelProfile(ctx context.Context, handle string, viewer uuid.UUID) (model.ChannelProfile, error) {
	handle = model.Canonical(handle)
	if handle == "" {
		return model.ChannelProfile{}, customErrors.NewInvalidArgument("handle is required")
	}

	if cached, ok, err := a.cache.GetChannel(ctx, handle, viewer); err == nil && ok {
		return cached, nil
	}

	profile, err := a.userRepo.GetChannelProfile(ctx, handle, viewer)
	if err != nil {
		return model.ChannelProfile{}, err
	}

	_ = a.cache.SetChannel(ctx, handle, viewer, profile)
	return profile, nil
}

func (a *authService) Subscribe(ctx context.Context, viewer uuid.UUID, handle string) error {
	channel, err := a.channelByHandle(ctx, handle)
	if err != nil {
		return err
	}
	if channel.ID == viewer {
		return customErrors.NewInvalidArgument("cannot subscribe to your own channel")
	}

	if err := a.userRepo.Subscribe(ctx, viewer, channel.ID); err != nil {
		return err
	}
	return a.cache.InvalidateChannel(ctx, channel.Handle)
}

func (a *authService) Unsubscribe(ctx context.Context, viewer uuid.UUID, handle string) error {
	channel, err := a.channelByHandle(ctx, handle)
	if err != nil {
		return err
	}

	if err := a.userRepo.Unsubscribe(ctx, viewer, channel.ID); err != nil {
		return err
	}
	return a.cache.InvalidateChannel(ctx, channel.Handle)
}

func (a *authService) WatchHistory(ctx context.Context, userID uuid.UUID) ([]model.WatchHistoryItem, error) {
	return a.userRepo.GetWatchHistory(ctx, userID, watchHistoryLimit)
}

func (a *authService) channelByHandle(ctx context.Context, handle string) (model.User, error) {
	handle = model.Canonical(handle)
	if handle == "" {
		return model.User{}, customErrors.NewInvalidArgument("handle is required")
	}
	return a.userRepo.GetUserByHandleOrEmail(ctx, handle)
}

// issuePair mints an access+refresh pair and persists the refresh token.
// With prev empty the stored value is overwritten outright (login); with
// prev set the write is a compare-and-swap rotation (refresh).
func (a *authService) issuePair(ctx context.Context, user model.User, prev string) (model.TokenPair, error) {
	accessToken, atExp, err := a.tokens.GenerateAccessToken(user)
	if err != nil {
		return model.TokenPair{}, customErrors.WrapInternal(err, "GenerateAccessToken")
	}
	refreshToken, rtExp, err := a.tokens.GenerateRefreshToken(user.ID)
	if err != nil {
		return model.TokenPair{}, customErrors.WrapInternal(err, "GenerateRefreshToken")
	}

	if prev == "" {
		err = a.userRepo.SetRefreshToken(ctx, user.ID, refreshToken)
	} else {
		err = a.userRepo.RotateRefreshToken(ctx, user.ID, prev, refreshToken)
	}
	if err != nil {
		if errors.Is(err, customErrors.ErrTokenReused) {
			return model.TokenPair{}, customErrors.ErrTokenReused
		}
		return model.TokenPair{}, customErrors.WrapInternal(err, "persist refresh token")
	}

	now := time.Now()
	return model.TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		AccessTTL:    atExp.Sub(now),
		RefreshTTL:   rtExp.Sub(now),
		UserID:       user.ID,
	}, nil
}
