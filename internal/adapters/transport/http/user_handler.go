package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vidora/vidora/internal/adapters/transport/http/middleware"
	"github.com/vidora/vidora/internal/auth/dto"
)

func (h *Handler) currentUser(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)
	profile, err := h.auth.CurrentUser(c.Request.Context(), user.ID)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

func (h *Handler) changePassword(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	var body dto.ChangePasswordDTO
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.auth.ChangePassword(c.Request.Context(), user.ID, body); err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "password changed"})
}

func (h *Handler) updateAccount(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	var body dto.UpdateAccountDTO
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	profile, err := h.auth.UpdateAccount(c.Request.Context(), user.ID, body)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

// updateAvatar accepts a multipart file, stages it in the object store
// and persists the resulting URL.
func (h *Handler) updateAvatar(c *gin.Context) {
	h.updateImage(c, "avatars", h.auth.UpdateAvatar)
}

func (h *Handler) updateCover(c *gin.Context) {
	h.updateImage(c, "covers", h.auth.UpdateCover)
}

func (h *Handler) watchHistory(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	items, err := h.auth.WatchHistory(c.Request.Context(), user.ID)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"history": items})
}

func (h *Handler) channelProfile(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	profile, err := h.auth.ChannelProfile(c.Request.Context(), c.Param("handle"), user.ID)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

func (h *Handler) subscribe(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	if err := h.auth.Subscribe(c.Request.Context(), user.ID, c.Param("handle")); err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "subscribed"})
}

func (h *Handler) unsubscribe(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	if err := h.auth.Unsubscribe(c.Request.Context(), user.ID, c.Param("handle")); err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "unsubscribed"})
}
