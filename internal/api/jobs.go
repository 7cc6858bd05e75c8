package api

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"jobscout/dashboard-service/internal/identity"
	"jobscout/dashboard-service/internal/kanban"
	"jobscout/dashboard-service/internal/stats"
	"jobscout/dashboard-service/internal/views"
)

// listJobs handles GET /api/jobs. Filters arrive as query parameters and
// run through the view engine over a snapshot of the collection.
func (h *Handler) listJobs(c *gin.Context) {
	jobs, err := h.svc.List(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}

	filters := views.Filters{
		City:      c.Query("city"),
		Industry:  c.Query("industry"),
		HighValue: c.Query("high_value") == "true",
		Remote:    c.Query("remote") == "true",
	}

	switch tab := c.Query("tab"); tab {
	case "":
		// no tab filter, the whole collection
	case string(kanban.TabNew), string(kanban.TabSaved), string(kanban.TabArchived):
		filters.Tab = kanban.Tab(tab)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown tab " + tab})
		return
	}

	switch sortKey := c.Query("sort"); sortKey {
	case "", string(views.SortByDate):
		filters.Sort = views.SortByDate
	case string(views.SortByScore):
		filters.Sort = views.SortByScore
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown sort " + sortKey})
		return
	}

	c.JSON(http.StatusOK, gin.H{"jobs": views.ComputeVisible(jobs, filters)})
}

type createJobRequest struct {
	Title    string `json:"title"`
	Company  string `json:"company"`
	Location string `json:"location"`
	URL      string `json:"url"`
	Summary  string `json:"summary"`
	Source   string `json:"source"`
	Notes    string `json:"notes"`
}

// createJob handles POST /api/jobs: manual entry in link mode (url) or
// free-text mode (title + company). A detected duplicate is rejected with
// no write.
func (h *Handler) createJob(c *gin.Context) {
	var req createJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if req.URL == "" && (req.Title == "" || req.Company == "") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "provide a link, or a title and company"})
		return
	}

	now := h.now()
	job := kanban.Job{
		ID:        identity.ManualID(now),
		Title:     req.Title,
		Company:   req.Company,
		Location:  req.Location,
		URL:       req.URL,
		Summary:   req.Summary,
		Source:    req.Source,
		Notes:     req.Notes,
		Status:    kanban.StatusSaved,
		ScoutedAt: now.UnixMilli(),
	}
	if job.URL == "" {
		job.URL = kanban.ManualEntryURL
	}
	if job.Source == "" {
		job.Source = "Manual"
	}

	existing, err := h.svc.List(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	if identity.IsDuplicate(job, existing) {
		h.respondError(c, kanban.ErrDuplicate)
		return
	}

	created, err := h.svc.Create(c.Request.Context(), job)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *Handler) getJob(c *gin.Context) {
	job, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, job)
}

// patchJob handles PATCH /api/jobs/:id for user edits, including manual
// status selection (which stamps the applied date when moving to applied).
func (h *Handler) patchJob(c *gin.Context) {
	var patch kanban.JobPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	job, err := h.svc.ApplyPatch(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, job)
}

func (h *Handler) toggleSave(c *gin.Context) {
	job, err := h.svc.ToggleSave(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, job)
}

// deleteJob handles DELETE /api/jobs/:id: an archive for live jobs, a
// confirm-gated permanent removal for archived ones.
func (h *Handler) deleteJob(c *gin.Context) {
	id := c.Param("id")
	confirm := c.Query("confirm") == "true"

	if err := h.svc.Delete(c.Request.Context(), id, confirm); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": id})
}

type bulkRequest struct {
	IDs     []string `json:"ids"`
	Confirm bool     `json:"confirm"`
}

func (h *Handler) bulkArchive(c *gin.Context) {
	var req bulkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	n, err := h.svc.BulkArchive(c.Request.Context(), req.IDs)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"archived": n})
}

func (h *Handler) bulkDelete(c *gin.Context) {
	var req bulkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	n, err := h.svc.BulkDelete(c.Request.Context(), req.IDs, req.Confirm)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": n})
}

// getStats handles GET /api/stats?dimension=industry|seniority|status.
func (h *Handler) getStats(c *gin.Context) {
	dim, err := stats.ParseDimension(c.DefaultQuery("dimension", string(stats.DimensionIndustry)))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	jobs, err := h.svc.List(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}

	h.logger.Debug("stats computed",
		slog.String("dimension", string(dim)),
		slog.Int("jobs", len(jobs)),
	)
	c.JSON(http.StatusOK, gin.H{"buckets": stats.Aggregate(jobs, dim)})
}
