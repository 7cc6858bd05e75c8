package api

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
)

type scoutRequest struct {
	Role     string `json:"role"`
	Location string `json:"location"`
}

// triggerScout handles POST /api/scout: one on-demand discovery cycle.
// A failed search degrades to an empty report rather than an error.
func (h *Handler) triggerScout(c *gin.Context) {
	var req scoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if req.Role == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "role is required"})
		return
	}

	report := h.pipeline.RunCycle(c.Request.Context(), req.Role, req.Location)
	c.JSON(http.StatusOK, report)
}

// analyzeJob handles POST /api/jobs/:id/analyze, a manual re-analyze.
func (h *Handler) analyzeJob(c *gin.Context) {
	job, err := h.pipeline.AnalyzeJob(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, job)
}

// generateKit handles POST /api/jobs/:id/kit.
func (h *Handler) generateKit(c *gin.Context) {
	strategy, err := h.pipeline.GenerateKit(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"strategy": strategy})
}

// tailorResume handles POST /api/jobs/:id/tailor: generate and store a
// job-targeted variant of the base résumé.
func (h *Handler) tailorResume(c *gin.Context) {
	ctx := c.Request.Context()

	job, err := h.svc.Get(ctx, c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	base, err := h.resume.Get(ctx)
	if err != nil {
		h.respondError(c, err)
		return
	}
	if base == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "save a base resume first"})
		return
	}

	tailored, err := h.tailor.TailorResume(ctx, base, *job)
	if err != nil {
		h.respondError(c, err)
		return
	}
	if err := h.svc.SetTailoredCV(ctx, job.ID, tailored); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"tailoredCv": tailored})
}

func (h *Handler) getResume(c *gin.Context) {
	content, err := h.resume.Get(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"content": content})
}

type resumeRequest struct {
	Content string `json:"content"`
}

func (h *Handler) putResume(c *gin.Context) {
	var req resumeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.resume.Set(c.Request.Context(), req.Content); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"content": req.Content})
}

// streamEvents handles GET /api/events: change events forwarded from the
// store subscription as server-sent events until the client disconnects.
func (h *Handler) streamEvents(c *gin.Context) {
	events, cancel, err := h.svc.Subscribe(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	defer cancel()

	c.Stream(func(w io.Writer) bool {
		payload, ok := <-events
		if !ok {
			return false
		}
		c.SSEvent("change", payload)
		return true
	})
}
