package httpapi

import (
	"context"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/vidora/vidora/internal/adapters/transport/http/middleware"
	"github.com/vidora/vidora/internal/domain/model"
)

// mediaKinds maps the client-facing kind to a bucket prefix; anything
// else is rejected.
var mediaKinds = map[string]string{
	"avatar":    "avatars",
	"cover":     "covers",
	"thumbnail": "thumbnails",
	"video":     "videos",
}

// uploadMedia streams a small multipart file into the object store and
// returns its public URL. Large video files should use presign instead.
func (h *Handler) uploadMedia(c *gin.Context) {
	prefix, ok := mediaKinds[c.PostForm("kind")]
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown media kind"})
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "cannot read file"})
		return
	}
	defer file.Close()

	url, err := h.media.Upload(c.Request.Context(), prefix,
		fileHeader.Header.Get("Content-Type"), file)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"url": url})
}

// presignMedia mints a short-lived PUT URL for direct client upload.
func (h *Handler) presignMedia(c *gin.Context) {
	var body struct {
		Kind string `json:"kind"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	prefix, ok := mediaKinds[body.Kind]
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown media kind"})
		return
	}

	publicURL, uploadURL, err := h.media.PresignUpload(c.Request.Context(), prefix)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"url": publicURL, "uploadUrl": uploadURL})
}

func (h *Handler) updateImage(
	c *gin.Context,
	prefix string,
	update func(context.Context, uuid.UUID, string) (model.Profile, error),
) {
	user, _ := middleware.CurrentUser(c)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "cannot read file"})
		return
	}
	defer file.Close()

	url, err := h.media.Upload(c.Request.Context(), prefix,
		fileHeader.Header.Get("Content-Type"), file)
	if err != nil {
		handleError(c, err)
		return
	}

	profile, err := update(c.Request.Context(), user.ID, url)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

// MediaStorage is what the handlers need from the object store.
type MediaStorage interface {
	Upload(ctx context.Context, kind, contentType string, body io.Reader) (string, error)
	PresignUpload(ctx context.Context, kind string) (publicURL, uploadURL string, err error)
}
