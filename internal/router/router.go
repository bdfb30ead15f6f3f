package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jobdeck-dev/jobdeck/internal/auth"
	"github.com/jobdeck-dev/jobdeck/internal/config"
	"github.com/jobdeck-dev/jobdeck/internal/export"
	"github.com/jobdeck-dev/jobdeck/internal/handlers"
	"github.com/jobdeck-dev/jobdeck/internal/logger"
	"github.com/jobdeck-dev/jobdeck/internal/middleware"
	"github.com/jobdeck-dev/jobdeck/internal/store"
	"gorm.io/gorm"
)

func New(cfg *config.Config, conn *gorm.DB, jwtManager *auth.Manager, fetcher handlers.Fetcher, log *logger.Logger) *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	users := store.NewUserStore(conn)
	jobs := store.NewJobStore(conn, log)
	saved := store.NewSavedJobStore(conn)
	exporter := export.NewCSVWriter(cfg.Export.File)

	authHandler := handlers.NewAuthHandler(users, saved, jwtManager, cfg.Domain, log)
	jobsHandler := handlers.NewJobsHandler(fetcher, jobs, saved, exporter, log)

	sessionGate := middleware.Auth(conn, jwtManager)

	api := r.Group("/api")
	{
		api.GET("/health", handlers.HealthCheck)

		authGroup := api.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
			authGroup.POST("/logout", authHandler.Logout)
			authGroup.GET("/me", sessionGate, authHandler.Me)
		}

		jobGroup := api.Group("/jobs", sessionGate)
		{
			jobGroup.POST("/search", jobsHandler.Search)
			jobGroup.GET("/saved", jobsHandler.ListSaved)
			jobGroup.POST("/:job_id/save", jobsHandler.SaveJob)
			jobGroup.DELETE("/:job_id/save", jobsHandler.UnsaveJob)
		}

		api.GET("/profile", sessionGate, authHandler.Profile)
		api.GET("/preferences", sessionGate, authHandler.GetPreferences)
		api.PUT("/preferences", sessionGate, authHandler.UpdatePreferences)
	}

	return r
}
