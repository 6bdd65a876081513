package jwt

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/vidora/vidora/internal/config"
	customErrors "github.com/vidora/vidora/internal/domain/errors"
	"github.com/vidora/vidora/internal/domain/model"
)

func testConfig() *config.Config {
	return &config.Config{
		AccessTokenSecret:  "access-secret",
		RefreshTokenSecret: "refresh-secret",
		AccessTokenTTL:     time.Minute,
		RefreshTokenTTL:    time.Hour,
		JWTIssuer:          "test",
		JWTAudience:        "test",
	}
}

func testUser() model.User {
	return model.User{
		ID:       uuid.New(),
		Handle:   "alice",
		Email:    "a@x.com",
		FullName: "Alice A",
	}
}

func TestNewTokenUtil_RejectsSharedSecret(t *testing.T) {
	cfg := testConfig()
	cfg.RefreshTokenSecret = cfg.AccessTokenSecret
	_, err := NewTokenUtil(cfg)
	require.Error(t, err)
}

func TestAccessToken_RoundTrip(t *testing.T) {
	util, err := NewTokenUtil(testConfig())
	require.NoError(t, err)

	user := testUser()
	token, exp, err := util.GenerateAccessToken(user)
	require.NoError(t, err)
	require.NotEmpty(t, token)
	require.True(t, exp.After(time.Now()))

	claims, err := util.ValidateAccessToken(token)
	require.NoError(t, err)
	require.Equal(t, user.ID.String(), claims.Subject)
	require.Equal(t, user.Email, claims.Email)
	require.Equal(t, user.Handle, claims.Handle)
	require.Equal(t, user.FullName, claims.FullName)
}

func TestRefreshToken_RoundTrip(t *testing.T) {
	util, err := NewTokenUtil(testConfig())
	require.NoError(t, err)

	id := uuid.New()
	token, exp, err := util.GenerateRefreshToken(id)
	require.NoError(t, err)
	require.True(t, exp.After(time.Now().Add(50*time.Minute)))

	claims, err := util.ValidateRefreshToken(token)
	require.NoError(t, err)
	require.Equal(t, id.String(), claims.Subject)
}

func TestValidate_ClassesAreNotInterchangeable(t *testing.T) {
	util, err := NewTokenUtil(testConfig())
	require.NoError(t, err)

	access, _, err := util.GenerateAccessToken(testUser())
	require.NoError(t, err)
	refresh, _, err := util.GenerateRefreshToken(uuid.New())
	require.NoError(t, err)

	_, err = util.ValidateRefreshToken(access)
	require.ErrorIs(t, err, customErrors.ErrInvalidToken)

	_, err = util.ValidateAccessToken(refresh)
	require.ErrorIs(t, err, customErrors.ErrInvalidToken)
}

func TestValidate_Expired(t *testing.T) {
	cfg := testConfig()
	cfg.AccessTokenTTL = -time.Minute
	cfg.RefreshTokenTTL = -time.Minute
	util, err := NewTokenUtil(cfg)
	require.NoError(t, err)

	access, _, err := util.GenerateAccessToken(testUser())
	require.NoError(t, err)
	refresh, _, err := util.GenerateRefreshToken(uuid.New())
	require.NoError(t, err)

	_, err = util.ValidateAccessToken(access)
	require.ErrorIs(t, err, customErrors.ErrInvalidToken)
	_, err = util.ValidateRefreshToken(refresh)
	require.ErrorIs(t, err, customErrors.ErrInvalidToken)
}

func TestValidate_Tampered(t *testing.T) {
	util, err := NewTokenUtil(testConfig())
	require.NoError(t, err)

	token, _, err := util.GenerateRefreshToken(uuid.New())
	require.NoError(t, err)

	tampered := token[:len(token)-2] + "xx"
	_, err = util.ValidateRefreshToken(tampered)
	require.ErrorIs(t, err, customErrors.ErrInvalidToken)

	_, err = util.ValidateRefreshToken("not.a.jwt")
	require.ErrorIs(t, err, customErrors.ErrInvalidToken)
}

func TestValidate_WrongSecret(t *testing.T) {
	util, err := NewTokenUtil(testConfig())
	require.NoError(t, err)

	other := testConfig()
	other.AccessTokenSecret = "different-access"
	other.RefreshTokenSecret = "different-refresh"
	otherUtil, err := NewTokenUtil(other)
	require.NoError(t, err)

	token, _, err := util.GenerateAccessToken(testUser())
	require.NoError(t, err)

	_, err = otherUtil.ValidateAccessToken(token)
	require.ErrorIs(t, err, customErrors.ErrInvalidToken)
}
