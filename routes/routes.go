package routes

import (
	"net/http"
	"time"

	"voyago/handlers"
	"voyago/middleware"
	"voyago/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterPlannerRoutes registers all endpoints for the planning-session engine.
func RegisterPlannerRoutes(r *gin.Engine, ph *handlers.PlannerHandler) {
	group := r.Group("/api/planner")
	{
		group.POST("/session", ph.CreateSession)
		group.GET("/session/:sessionID", ph.GetSession)
		group.DELETE("/session/:sessionID", ph.CancelSession)

		group.PATCH("/session/:sessionID/date", ph.SetStartDate)
		group.PATCH("/session/:sessionID/duration", ph.SetDuration)
		group.PATCH("/session/:sessionID/mode", ph.SetMode)
		group.PATCH("/session/:sessionID/tuning", ph.SetTuning)

		group.PUT("/session/:sessionID/query", ph.UpdateQuery)
		group.PUT("/session/:sessionID/starting-point", ph.SelectWaypoint)
		group.DELETE("/session/:sessionID/starting-point", ph.ClearStartingPoint)

		group.POST("/session/:sessionID/submit", ph.Submit)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "services": utils.GetHealthStatus()})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, ph *handlers.PlannerHandler) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(middleware.RateLimitMiddleware())
	r.Use(middleware.IdentityMiddleware())

	RegisterHealthRoute(r)
	RegisterPlannerRoutes(r, ph)
}
