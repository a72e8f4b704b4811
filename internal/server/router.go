package server

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	"github.com/flavorfolio/recipe-extractor/internal/export"
	"github.com/flavorfolio/recipe-extractor/internal/extract"
	"github.com/flavorfolio/recipe-extractor/internal/history"
)

// Handlers bundles the dependencies of the HTTP layer.
type Handlers struct {
	Pipeline *extract.Pipeline
	History  *history.Store  // optional
	Exporter *export.Service // optional, requires History
	Logger   *slog.Logger
}

// NewRouter constructs a Gin engine with registered routes.
func NewRouter(h *Handlers) *gin.Engine {
	if h.Logger == nil {
		h.Logger = slog.Default()
	}
	r := gin.New()
	// Minimal middleware: recovery; request logging happens in handlers
	r.Use(gin.Recovery())

	RegisterExtractRoutes(r, h)
	RegisterHealthRoutes(r)
	if h.History != nil {
		RegisterHistoryRoutes(r, h)
	}
	return r
}
