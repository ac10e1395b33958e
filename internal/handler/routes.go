package handler

import "github.com/gin-gonic/gin"

// RegisterRoutes mounts the public endpoints. api middleware (rate limiting)
// applies only to the /api/v1 group.
func RegisterRoutes(r *gin.Engine, health *HealthHandler, cv *CVHandler, api ...gin.HandlerFunc) {
	r.GET("/", health.Root)
	r.GET("/health", health.Health)

	v1 := r.Group("/api/v1", api...)
	{
		v1.POST("/analyze-and-match", cv.AnalyzeAndMatch)
		v1.POST("/optimize", cv.Optimize)
	}
}
