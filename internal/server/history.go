package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

// RegisterHistoryRoutes registers the operator-facing run-history endpoints.
// Only mounted when the history store is configured.
func RegisterHistoryRoutes(r *gin.Engine, h *Handlers) {
	g := r.Group("/history")
	g.GET("", h.handleListHistory)
	g.GET("/export", h.handleExportHistory)
}

// HistoryRunResponse is one extraction run as returned by GET /history.
type HistoryRunResponse struct {
	ID          string `json:"id"`
	Kind        string `json:"kind"`
	InputURL    string `json:"input_url,omitempty"`
	ResolvedURL string `json:"resolved_url,omitempty"`
	Status      string `json:"status"`
	ErrorKind   string `json:"error_kind,omitempty"`
	DurationMS  int64  `json:"duration_ms"`
	CreatedAt   string `json:"created_at"`
}

func (h *Handlers) handleListHistory(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))

	runs, err := h.History.List(c.Request.Context(), limit)
	if err != nil {
		h.Logger.Error("server.history.list_failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list extraction history"})
		return
	}

	out := make([]HistoryRunResponse, 0, len(runs))
	for _, r := range runs {
		out = append(out, HistoryRunResponse{
			ID:          r.ID.String(),
			Kind:        string(r.Kind),
			InputURL:    r.InputURL,
			ResolvedURL: r.ResolvedURL,
			Status:      r.Status,
			ErrorKind:   r.ErrorKind,
			DurationMS:  r.Duration.Milliseconds(),
			CreatedAt:   r.CreatedAt.UTC().Format(time.RFC3339),
		})
	}
	c.JSON(http.StatusOK, gin.H{"runs": out})
}

func (h *Handlers) handleExportHistory(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "500"))

	data, err := h.Exporter.ExportRunsXLSX(c.Request.Context(), limit)
	if err != nil {
		h.Logger.Error("server.history.export_failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to export extraction history"})
		return
	}

	c.Header("Content-Disposition", `attachment; filename="extraction-history.xlsx"`)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}
