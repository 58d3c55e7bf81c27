package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/lumilearn/lumilearn-backend/internal/handlers"
	"github.com/lumilearn/lumilearn-backend/internal/middleware"
)

type RouterConfig struct {
	ServiceName       string
	AllowOrigins      []string
	ProfileMiddleware *middleware.ProfileMiddleware
	GoalHandler       *handlers.GoalHandler
	PathHandler       *handlers.PathHandler
	CourseUnitHandler *handlers.CourseUnitHandler
	StatsHandler      *handlers.StatsHandler
	EventHandler      *handlers.EventHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.Default()
	router.Use(otelgin.Middleware(cfg.ServiceName))

	origins := cfg.AllowOrigins
	if len(origins) == 0 {
		origins = []string{"http://localhost:3000", "http://localhost:5173"}
	}
	router.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With", middleware.ProfileHeader},
		AllowCredentials: true,
	}))

	router.GET("/healthcheck", handlers.HealthCheck)

	api := router.Group("/api")
	api.Use(cfg.ProfileMiddleware.Require())
	{
		// Goals
		api.GET("/goals", cfg.GoalHandler.List)
		api.POST("/goals", cfg.GoalHandler.Create)
		api.POST("/goals/validate", cfg.GoalHandler.Validate)
		api.GET("/goals/:id", cfg.GoalHandler.Get)
		api.PATCH("/goals/:id", cfg.GoalHandler.Update)
		api.DELETE("/goals/:id", cfg.GoalHandler.Delete)
		api.POST("/goals/:id/activate", cfg.GoalHandler.Activate)
		api.POST("/goals/:id/pause", cfg.GoalHandler.Pause)
		api.POST("/goals/:id/complete", cfg.GoalHandler.Complete)
		api.POST("/goals/:id/cancel", cfg.GoalHandler.Cancel)

		// Paths
		api.GET("/paths", cfg.PathHandler.List)
		api.POST("/paths", cfg.PathHandler.Create)
		api.GET("/paths/:id", cfg.PathHandler.Get)
		api.PATCH("/paths/:id", cfg.PathHandler.Update)
		api.DELETE("/paths/:id", cfg.PathHandler.Delete)
		api.POST("/paths/:id/activate", cfg.PathHandler.Activate)
		api.PUT("/paths/:id/nodes/:nodeId/status", cfg.PathHandler.UpdateNodeStatus)

		// Course units
		api.GET("/course-units", cfg.CourseUnitHandler.List)
		api.POST("/course-units", cfg.CourseUnitHandler.Create)
		api.GET("/course-units/:id", cfg.CourseUnitHandler.Get)
		api.PATCH("/course-units/:id", cfg.CourseUnitHandler.Update)
		api.DELETE("/course-units/:id", cfg.CourseUnitHandler.Delete)

		// Derived views + logs
		api.GET("/stats/goals", cfg.StatsHandler.GoalStats)
		api.GET("/stats/paths", cfg.StatsHandler.PathStats)
		api.GET("/status", cfg.StatsHandler.SystemStatus)
		api.GET("/events", cfg.EventHandler.List)
		api.GET("/agent-actions", cfg.EventHandler.ListAgentActions)
		api.DELETE("/profile/cache", cfg.EventHandler.ClearCache)
	}

	return router
}
