package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/vidora/vidora/internal/adapters/transport/http/middleware"
	customErrors "github.com/vidora/vidora/internal/domain/errors"
	"github.com/vidora/vidora/internal/video/dto"
)

func (h *Handler) publishVideo(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	var body dto.PublishDTO
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	video, err := h.videos.Publish(c.Request.Context(), user.ID, body)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, video)
}

func (h *Handler) getVideo(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		handleError(c, customErrors.NewInvalidArgument("invalid video id"))
		return
	}

	video, err := h.videos.Get(c.Request.Context(), id, user.ID)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, video)
}

func (h *Handler) updateVideo(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		handleError(c, customErrors.NewInvalidArgument("invalid video id"))
		return
	}

	var body dto.UpdateDTO
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	video, err := h.videos.Update(c.Request.Context(), user.ID, id, body)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, video)
}

func (h *Handler) deleteVideo(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		handleError(c, customErrors.NewInvalidArgument("invalid video id"))
		return
	}

	if err := h.videos.Delete(c.Request.Context(), user.ID, id); err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "deleted"})
}

func (h *Handler) listVideos(c *gin.Context) {
	var query dto.ListDTO
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	page, err := h.videos.List(c.Request.Context(), query)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// viewVideo bumps the view counter and records watch history for the
// caller in one step.
func (h *Handler) viewVideo(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		handleError(c, customErrors.NewInvalidArgument("invalid video id"))
		return
	}

	video, err := h.videos.View(c.Request.Context(), user.ID, id)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, video)
}
