package httpapi

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	authdto "github.com/vidora/vidora/internal/auth/dto"
	"github.com/vidora/vidora/internal/config"
	customErrors "github.com/vidora/vidora/internal/domain/errors"
	"github.com/vidora/vidora/internal/domain/model"
	videodto "github.com/vidora/vidora/internal/video/dto"
	videoservice "github.com/vidora/vidora/internal/video/service"
)

/* ──────────────────────────────── stubs ──────────────────────────────── */

var stubUserID = uuid.MustParse("11111111-1111-1111-1111-111111111111")

type authStub struct{}

func (authStub) Register(_ context.Context, in authdto.RegisterDTO) (model.Profile, error) {
	if in.Handle == "taken" {
		return model.Profile{}, customErrors.ErrAlreadyExists
	}
	return model.Profile{ID: stubUserID, Handle: in.Handle}, nil
}

func (authStub) Login(_ context.Context, in authdto.LoginDTO) (model.TokenPair, model.Profile, error) {
	if in.Identifier != "alice" || in.Password != "Password1" {
		return model.TokenPair{}, model.Profile{}, customErrors.ErrInvalidCredentials
	}
	pair := model.TokenPair{
		AccessToken: "good-access", RefreshToken: "good-refresh",
		AccessTTL: time.Minute, RefreshTTL: time.Hour, UserID: stubUserID,
	}
	return pair, model.Profile{ID: stubUserID, Handle: "alice"}, nil
}

func (authStub) Refresh(_ context.Context, in authdto.RefreshDTO) (model.TokenPair, error) {
	switch in.RefreshToken {
	case "good-refresh":
		return model.TokenPair{
			AccessToken: "next-access", RefreshToken: "next-refresh",
			AccessTTL: time.Minute, RefreshTTL: time.Hour, UserID: stubUserID,
		}, nil
	case "stale":
		return model.TokenPair{}, customErrors.ErrTokenReused
	case "db-down":
		return model.TokenPair{}, customErrors.ErrInternal
	case "":
		return model.TokenPair{}, customErrors.ErrUnauthorized
	default:
		return model.TokenPair{}, customErrors.ErrInvalidToken
	}
}

func (authStub) Logout(context.Context, uuid.UUID) error { return nil }

func (authStub) Validate(_ context.Context, in authdto.ValidateDTO) (model.User, error) {
	if in.AccessToken != "good-access" {
		return model.User{}, customErrors.ErrInvalidToken
	}
	return model.User{ID: stubUserID, Handle: "alice"}, nil
}

func (authStub) ChangePassword(context.Context, uuid.UUID, authdto.ChangePasswordDTO) error {
	return nil
}

func (authStub) CurrentUser(context.Context, uuid.UUID) (model.Profile, error) {
	return model.Profile{ID: stubUserID, Handle: "alice"}, nil
}

func (authStub) UpdateAccount(context.Context, uuid.UUID, authdto.UpdateAccountDTO) (model.Profile, error) {
	return model.Profile{ID: stubUserID}, nil
}

func (authStub) UpdateAvatar(context.Context, uuid.UUID, string) (model.Profile, error) {
	return model.Profile{ID: stubUserID}, nil
}

func (authStub) UpdateCover(context.Context, uuid.UUID, string) (model.Profile, error) {
	return model.Profile{ID: stubUserID}, nil
}

func (authStub) ChannelProfile(_ context.Context, handle string, _ uuid.UUID) (model.ChannelProfile, error) {
	if handle != "alice" {
		return model.ChannelProfile{}, customErrors.ErrNotFound
	}
	return model.ChannelProfile{ID: stubUserID, Handle: "alice"}, nil
}

func (authStub) Subscribe(context.Context, uuid.UUID, string) error   { return nil }
func (authStub) Unsubscribe(context.Context, uuid.UUID, string) error { return nil }

func (authStub) WatchHistory(context.Context, uuid.UUID) ([]model.WatchHistoryItem, error) {
	return []model.WatchHistoryItem{}, nil
}

type videoStub struct{}

func (videoStub) Publish(_ context.Context, ownerID uuid.UUID, in videodto.PublishDTO) (model.Video, error) {
	if in.Title == "" {
		return model.Video{}, customErrors.NewInvalidArgument("title is required")
	}
	return model.Video{ID: uuid.New(), OwnerID: ownerID, Title: in.Title}, nil
}

func (videoStub) Get(context.Context, uuid.UUID, uuid.UUID) (model.Video, error) {
	return model.Video{}, customErrors.ErrNotFound
}

func (videoStub) Update(context.Context, uuid.UUID, uuid.UUID, videodto.UpdateDTO) (model.Video, error) {
	return model.Video{}, customErrors.ErrForbidden
}

func (videoStub) Delete(context.Context, uuid.UUID, uuid.UUID) error { return nil }

func (videoStub) List(context.Context, videodto.ListDTO) (videoservice.VideoPage, error) {
	return videoservice.VideoPage{Videos: []model.VideoWithOwner{}, Page: 1, Limit: 10}, nil
}

func (videoStub) View(context.Context, uuid.UUID, uuid.UUID) (model.Video, error) {
	return model.Video{}, customErrors.ErrNotFound
}

type mediaStub struct{}

func (mediaStub) Upload(context.Context, string, string, io.Reader) (string, error) {
	return "http://cdn/object", nil
}

func (mediaStub) PresignUpload(context.Context, string) (string, string, error) {
	return "http://cdn/object", "http://bucket/put", nil
}

/* ───────────────────────────── helpers ───────────────────────────── */

func testRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{
		CookieDomain:   "example.com",
		AllowedOrigins: []string{"http://localhost:3000"},
	}
	h := NewHandler(authStub{}, videoStub{}, mediaStub{}, cfg, zap.NewNop())
	return NewRouter(h)
}

func do(r *gin.Engine, method, path, body string, headers map[string]string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.RemoteAddr = "127.0.0.1:9999"
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	r.ServeHTTP(w, req)
	return w
}

var authed = map[string]string{"Authorization": "Bearer good-access"}

/* ───────────────────────────── tests ───────────────────────────── */

func TestRegister_Created(t *testing.T) {
	r := testRouter(t)
	w := do(r, "POST", "/api/v1/auth/register",
		`{"handle":"alice","email":"a@x.com","fullName":"A","password":"Password1","avatarUrl":"http://cdn/a.png"}`, nil)
	require.Equal(t, http.StatusCreated, w.Code)
	require.Contains(t, w.Body.String(), "alice")
}

func TestRegister_DuplicateConflict(t *testing.T) {
	r := testRouter(t)
	w := do(r, "POST", "/api/v1/auth/register",
		`{"handle":"taken","email":"a@x.com","fullName":"A","password":"Password1","avatarUrl":"http://cdn/a.png"}`, nil)
	require.Equal(t, http.StatusConflict, w.Code)
}

func TestLogin_SetsCookiesAndBody(t *testing.T) {
	r := testRouter(t)
	w := do(r, "POST", "/api/v1/auth/login",
		`{"identifier":"alice","password":"Password1"}`, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "good-access")

	cookies := w.Result().Cookies()
	var names []string
	for _, c := range cookies {
		names = append(names, c.Name)
		require.True(t, c.HttpOnly, "cookie %s must be http-only", c.Name)
	}
	require.Contains(t, names, "access_token")
	require.Contains(t, names, "refresh_token")
}

func TestLogin_WrongPassword(t *testing.T) {
	r := testRouter(t)
	w := do(r, "POST", "/api/v1/auth/login",
		`{"identifier":"alice","password":"nope"}`, nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRefresh_FromCookie(t *testing.T) {
	r := testRouter(t)
	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/v1/auth/refresh", nil)
	req.RemoteAddr = "127.0.0.1:9999"
	req.AddCookie(&http.Cookie{Name: "refresh_token", Value: "good-refresh"})
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "next-access")
}

func TestRefresh_StaleTokenUnauthorizedAndClearsCookies(t *testing.T) {
	r := testRouter(t)
	w := do(r, "POST", "/api/v1/auth/refresh", `{"refreshToken":"stale"}`, nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)

	cleared := map[string]bool{}
	for _, c := range w.Result().Cookies() {
		if c.MaxAge < 0 {
			cleared[c.Name] = true
		}
	}
	require.True(t, cleared["access_token"])
	require.True(t, cleared["refresh_token"])
}

func TestRefresh_TransientErrorKeepsCookies(t *testing.T) {
	r := testRouter(t)
	w := do(r, "POST", "/api/v1/auth/refresh", `{"refreshToken":"db-down"}`, nil)
	require.Equal(t, http.StatusInternalServerError, w.Code)
	require.Empty(t, w.Result().Cookies(), "a transient failure must not touch the session cookies")
}

func TestProtected_RequiresToken(t *testing.T) {
	r := testRouter(t)

	w := do(r, "GET", "/api/v1/users/me", "", nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)

	w = do(r, "GET", "/api/v1/users/me", "", map[string]string{"Authorization": "Bearer bogus"})
	require.Equal(t, http.StatusUnauthorized, w.Code)

	w = do(r, "GET", "/api/v1/users/me", "", authed)
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "alice")
}

func TestChannelProfile_NotFound(t *testing.T) {
	r := testRouter(t)
	w := do(r, "GET", "/api/v1/channels/ghost", "", authed)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestVideo_BadIDIsBadRequest(t *testing.T) {
	r := testRouter(t)
	w := do(r, "GET", "/api/v1/videos/not-a-uuid", "", authed)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestVideo_UpdateForbidden(t *testing.T) {
	r := testRouter(t)
	w := do(r, "PATCH", "/api/v1/videos/"+uuid.NewString(), `{"title":"x"}`, authed)
	require.Equal(t, http.StatusForbidden, w.Code)
}

func TestMedia_PresignRejectsUnknownKind(t *testing.T) {
	r := testRouter(t)

	w := do(r, "POST", "/api/v1/media/presign", `{"kind":"exe"}`, authed)
	require.Equal(t, http.StatusBadRequest, w.Code)

	w = do(r, "POST", "/api/v1/media/presign", `{"kind":"video"}`, authed)
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "uploadUrl")
}

func TestHealthz_Public(t *testing.T) {
	r := testRouter(t)
	w := do(r, "GET", "/healthz", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
}
