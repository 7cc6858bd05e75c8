package api

import "github.com/gin-gonic/gin"

// NewRouter mounts all routes and returns the engine.
func NewRouter(h *Handler) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/health", h.health)

	api := r.Group("/api")
	{
		api.GET("/jobs", h.listJobs)
		api.POST("/jobs", h.createJob)
		api.GET("/jobs/:id", h.getJob)
		api.PATCH("/jobs/:id", h.patchJob)
		api.DELETE("/jobs/:id", h.deleteJob)
		api.POST("/jobs/:id/toggle-save", h.toggleSave)
		api.POST("/jobs/:id/analyze", h.analyzeJob)
		api.POST("/jobs/:id/kit", h.generateKit)
		api.POST("/jobs/:id/tailor", h.tailorResume)

		api.POST("/bulk/archive", h.bulkArchive)
		api.POST("/bulk/delete", h.bulkDelete)

		api.GET("/stats", h.getStats)
		api.POST("/scout", h.triggerScout)

		api.GET("/resume", h.getResume)
		api.PUT("/resume", h.putResume)

		api.GET("/events", h.streamEvents)
	}

	return r
}
