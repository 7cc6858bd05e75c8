// Package api implements the HTTP/JSON surface of the dashboard service.
// Handlers do transport concerns only; business logic lives in kanban,
// views, stats and scout.
package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"jobscout/dashboard-service/internal/kanban"
	"jobscout/dashboard-service/internal/llm"
	"jobscout/dashboard-service/internal/resume"
	"jobscout/dashboard-service/internal/scout"
)

// ResumeTailor produces a job-targeted résumé variant from the base
// résumé. *llm.Client satisfies it.
type ResumeTailor interface {
	TailorResume(ctx context.Context, base string, job kanban.Job) (string, error)
}

// Handler holds shared dependencies.
type Handler struct {
	svc      *kanban.Service
	resume   *resume.Store
	pipeline *scout.Pipeline
	tailor   ResumeTailor
	logger   *slog.Logger
	now      func() time.Time
}

// NewHandler returns a configured Handler.
func NewHandler(svc *kanban.Service, resumeStore *resume.Store, pipeline *scout.Pipeline, tailor ResumeTailor, logger *slog.Logger) *Handler {
	return &Handler{
		svc:      svc,
		resume:   resumeStore,
		pipeline: pipeline,
		tailor:   tailor,
		logger:   logger,
		now:      time.Now,
	}
}

// respondError maps domain errors to HTTP statuses.
func (h *Handler) respondError(c *gin.Context, err error) {
	var verr *kanban.ValidationError

	switch {
	case errors.Is(err, kanban.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "job not found"})
	case errors.Is(err, kanban.ErrDuplicate):
		c.JSON(http.StatusConflict, gin.H{"error": "job already tracked"})
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, gin.H{"error": verr.Msg})
	case errors.Is(err, llm.ErrDisabled):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "AI features are disabled"})
	case errors.Is(err, kanban.ErrEventsDisabled):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "change events are disabled"})
	default:
		h.logger.Error("request failed",
			slog.String("path", c.Request.URL.Path),
			slog.String("error", err.Error()),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": "dashboard-service",
	})
}
