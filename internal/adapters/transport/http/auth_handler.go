package httpapi

import (
	"crypto/sha256"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/vidora/vidora/internal/adapters/transport/http/middleware"
	"github.com/vidora/vidora/internal/auth/dto"
	customErrors "github.com/vidora/vidora/internal/domain/errors"
)

func sessionOver(err error) bool {
	return customErrors.IsUnauthorized(err) ||
		customErrors.IsInvalidToken(err) ||
		customErrors.IsTokenReused(err)
}

func (h *Handler) register(c *gin.Context) {
	var body dto.RegisterDTO
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	h.log.Info("/register",
		zap.String("user", fmt.Sprintf("%x", sha256.Sum256([]byte(body.Email)))),
	)

	profile, err := h.auth.Register(c.Request.Context(), body)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, profile)
}

func (h *Handler) login(c *gin.Context) {
	var body dto.LoginDTO
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	h.log.Info("/login",
		zap.String("user", fmt.Sprintf("%x", sha256.Sum256([]byte(body.Identifier)))),
	)

	pair, profile, err := h.auth.Login(c.Request.Context(), body)
	if err != nil {
		handleError(c, err)
		return
	}
	issueTokens(c, pair, h.cfg.CookieDomain, gin.H{"profile": profile})
}

func (h *Handler) refresh(c *gin.Context) {
	var body dto.RefreshDTO
	// body is optional, browser clients send the cookie instead
	_ = c.ShouldBindJSON(&body)
	if body.RefreshToken == "" {
		if cookie, err := c.Cookie("refresh_token"); err == nil {
			body.RefreshToken = cookie
		}
	}

	pair, err := h.auth.Refresh(c.Request.Context(), body)
	if err != nil {
		// only a dead session drops the cookies; a transient failure
		// must not log the browser out
		if sessionOver(err) {
			clearTokens(c, h.cfg.CookieDomain)
		}
		handleError(c, err)
		return
	}
	issueTokens(c, pair, h.cfg.CookieDomain, nil)
}

func (h *Handler) logout(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	h.log.Info("/logout")

	if err := h.auth.Logout(c.Request.Context(), user.ID); err != nil {
		handleError(c, err)
		return
	}
	clearTokens(c, h.cfg.CookieDomain)
	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}
