package http

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/studytrack-io/studytrack/internal/config"
	domainService "github.com/studytrack-io/studytrack/internal/domain/service"
	"github.com/studytrack-io/studytrack/internal/handler/http/middleware"
	"github.com/studytrack-io/studytrack/internal/service"
)

// RouterDeps collects everything the HTTP surface needs.
type RouterDeps struct {
	AuthService    *service.AuthService
	UserService    *service.UserService
	SubjectService *service.SubjectService
	StudyService   *service.StudySessionService
	ReportService  *service.ReportService
	TokenService   domainService.TokenService
	Config         *config.Config
	Logger         *zap.Logger
	Readiness      func() error
}

// SetupRouter wires middleware, handlers and routes.
func SetupRouter(deps RouterDeps) *gin.Engine {
	registerCustomValidators()

	router := gin.New()

	router.Use(middleware.RecoveryMiddleware(deps.Logger))
	router.Use(middleware.LoggingMiddleware(deps.Logger))
	router.Use(middleware.CorsMiddleware(deps.Config.Server.AllowedOrigins))
	if deps.Config.Metrics.Enabled {
		router.Use(middleware.MetricsMiddleware())
	}

	authHandler := NewAuthHandler(deps.Logger, deps.AuthService, deps.Config)
	userHandler := NewUserHandler(deps.Logger, deps.UserService)
	subjectHandler := NewSubjectHandler(deps.Logger, deps.SubjectService)
	studyHandler := NewStudyHandler(deps.Logger, deps.StudyService)
	reportHandler := NewReportHandler(deps.Logger, deps.ReportService)

	if deps.Config.Metrics.Enabled {
		router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	}
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	router.GET("/readiness", func(c *gin.Context) {
		if deps.Readiness != nil {
			if err := deps.Readiness(); err != nil {
				c.JSON(503, gin.H{"status": "unavailable"})
				return
			}
		}
		c.JSON(200, gin.H{"status": "ok"})
	})

	api := router.Group("/api")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.POST("/refresh", authHandler.Refresh)
			auth.POST("/logout", authHandler.Logout)
		}

		protected := api.Group("/")
		protected.Use(middleware.AuthMiddleware(deps.TokenService, deps.Logger))
		{
			protected.GET("/user/me", userHandler.Me)

			subjects := protected.Group("/subjects")
			{
				subjects.POST("", subjectHandler.Create)
				subjects.GET("", subjectHandler.List)
				subjects.GET("/:id", subjectHandler.Get)
				subjects.PATCH("/:id", subjectHandler.Update)
				subjects.PATCH("/:id/archive", subjectHandler.SetArchived)
				subjects.POST("/:id/tasks", subjectHandler.CreateTask)
				subjects.GET("/:id/tasks", subjectHandler.ListTasks)
			}

			protected.PATCH("/tasks/:taskId/status", subjectHandler.UpdateTaskStatus)

			study := protected.Group("/study")
			{
				study.POST("/start", studyHandler.Start)
				study.POST("/stop", studyHandler.Stop)
				study.POST("/manual", studyHandler.CreateManual)
				study.GET("", studyHandler.ListByDate)
			}

			reports := protected.Group("/reports")
			{
				reports.GET("/daily", reportHandler.Daily)
				reports.GET("/weekly", reportHandler.Weekly)
				reports.GET("/recommend/today", reportHandler.RecommendToday)
			}
		}
	}

	return router
}
