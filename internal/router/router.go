package router

import (
	"github.com/gin-gonic/gin"

	"lekha/internal/config"
	"lekha/internal/handler"
	"lekha/internal/middleware"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	cfg *config.Config,
	reviewH *handler.ReviewHandler,
	healthH *handler.HealthHandler,
) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(cfg.CORS.AllowedOrigins))

	// Health checks
	r.GET("/healthz", healthH.Liveness)
	r.GET("/readyz", healthH.Readiness)

	v1 := r.Group("/api/v1")

	review := v1.Group("/invoices/:id/review")
	review.GET("", reviewH.Open)
	review.PATCH("/header", reviewH.EditHeader)
	review.POST("/rows", reviewH.AddRow)
	review.PATCH("/rows/:rowID", reviewH.EditRow)
	review.POST("/update", reviewH.Update)
	review.POST("/submit", reviewH.Submit)
	review.POST("/action", reviewH.Action)

	return r
}
