package server

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/flavorfolio/recipe-extractor/internal/common"
)

// RegisterExtractRoutes registers the two extraction endpoints.
func RegisterExtractRoutes(r *gin.Engine, h *Handlers) {
	g := r.Group("/extract")
	g.POST("/image", h.handleExtractImage)
	g.POST("/video-link", h.handleExtractVideoLink)
}

// ExtractVideoLinkRequest is the JSON body of POST /extract/video-link.
type ExtractVideoLinkRequest struct {
	VideoURL string `json:"videoUrl"`
}

// handleExtractImage parses a recipe from an uploaded photo.
// POST /extract/image: multipart form with a single "image" field.
// Returns the RecipeDraft fields at the top level, no envelope.
func (h *Handlers) handleExtractImage(c *gin.Context) {
	ctx := common.WithRequestID(c.Request.Context(), uuid.New().String())

	fileHeader, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No image file provided"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.Logger.Error("server.extract_image.open_failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		h.Logger.Error("server.extract_image.read_failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	if len(data) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No image file provided"})
		return
	}

	draft, err := h.Pipeline.FromImage(ctx, data, fileHeader.Header.Get("Content-Type"))
	if err != nil {
		c.JSON(common.HTTPStatus(err), gin.H{"error": common.UserMessage(err)})
		return
	}

	c.JSON(http.StatusOK, draft)
}

// handleExtractVideoLink parses a recipe from a short-video link.
// POST /extract/video-link: JSON body {"videoUrl": "..."}.
// Returns the RecipeDraft fields plus source_url (the resolved URL).
func (h *Handlers) handleExtractVideoLink(c *gin.Context) {
	ctx := common.WithRequestID(c.Request.Context(), uuid.New().String())

	var req ExtractVideoLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Video URL is required"})
		return
	}
	if req.VideoURL == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Video URL is required"})
		return
	}

	draft, resolvedURL, err := h.Pipeline.FromVideoLink(ctx, req.VideoURL)
	if err != nil {
		c.JSON(common.HTTPStatus(err), gin.H{"error": common.UserMessage(err)})
		return
	}

	draft["source_url"] = resolvedURL
	c.JSON(http.StatusOK, draft)
}
