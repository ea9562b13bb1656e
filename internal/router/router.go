package router

import (
	"github.com/gin-gonic/gin"

	"snaptex/internal/handler"
	"snaptex/internal/middleware"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	allowedOrigins []string,
	captureH *handler.CaptureHandler,
	historyH *handler.HistoryHandler,
	healthH *handler.HealthHandler,
) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(allowedOrigins))

	// Health checks
	r.GET("/healthz", healthH.Liveness)
	r.GET("/readyz", healthH.Readiness)

	v1 := r.Group("/api/v1")

	// Recognition pipeline
	v1.POST("/capture", captureH.Recognize)
	v1.POST("/capture/page", captureH.RecognizePage)
	v1.POST("/recognize/url", captureH.RecognizeURL)

	// Recognition history
	history := v1.Group("/history")
	history.GET("", historyH.List)
	history.GET("/export", historyH.Export)
	history.GET("/:id/image", historyH.GetImage)
	history.DELETE("/:id", historyH.Remove)
	history.DELETE("", historyH.Clear)

	return r
}
