package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/voxscribe/transcription-backend/internal/http/handlers"
	"github.com/voxscribe/transcription-backend/internal/http/middleware"
	"github.com/voxscribe/transcription-backend/internal/platform/logger"
)

type RouterConfig struct {
	Log             *logger.Logger
	AllowOrigins    []string
	AuthMiddleware  *middleware.AuthMiddleware
	HealthHandler   *handlers.HealthHandler
	AuthHandler     *handlers.AuthHandler
	UserHandler     *handlers.UserHandler
	ProjectHandler  *handlers.ProjectHandler
	FolderHandler   *handlers.FolderHandler
	SegmentHandler  *handlers.SegmentHandler
	LanguageHandler *handlers.LanguageHandler
	UploadHandler   *handlers.UploadHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(cfg.Log))

	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
	}))

	// Public
	router.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
	router.POST("/api/auth/login", cfg.AuthHandler.Login)

	// Protected
	api := router.Group("/api")
	api.Use(cfg.AuthMiddleware.RequireAuth())

	api.GET("/me", cfg.AuthHandler.GetMe)

	api.GET("/users", cfg.UserHandler.List)
	api.POST("/users", cfg.UserHandler.Create)
	api.GET("/users/:id", cfg.UserHandler.GetByID)
	api.PATCH("/users/:id", cfg.UserHandler.Update)
	api.DELETE("/users/:id", cfg.UserHandler.Delete)
	api.POST("/users/:id/password", cfg.UserHandler.ResetPassword)
	api.POST("/users/:id/deactivate", cfg.UserHandler.Deactivate)

	api.GET("/languages", cfg.LanguageHandler.List)
	api.POST("/languages", cfg.LanguageHandler.Create)

	api.POST("/uploads/batch", cfg.UploadHandler.UploadBatch)

	api.GET("/projects", cfg.ProjectHandler.List)
	api.GET("/projects/:id", cfg.ProjectHandler.GetByID)
	api.PATCH("/projects/:id", cfg.ProjectHandler.Update)
	api.DELETE("/projects/:id", cfg.ProjectHandler.Delete)
	api.POST("/projects/:id/recalculate-stats", cfg.ProjectHandler.RecalculateStats)
	api.GET("/projects/:id/folders", cfg.ProjectHandler.ListFolders)
	api.GET("/projects/:id/segments", cfg.ProjectHandler.ListSegments)

	api.POST("/folders", cfg.FolderHandler.Create)
	api.GET("/folders/:id", cfg.FolderHandler.GetByID)
	api.PATCH("/folders/:id", cfg.FolderHandler.Update)
	api.DELETE("/folders/:id", cfg.FolderHandler.Delete)
	api.GET("/folders/:id/segments", cfg.FolderHandler.ListSegments)

	api.GET("/segments/:id", cfg.SegmentHandler.GetByID)
	api.PATCH("/segments/:id", cfg.SegmentHandler.Update)
	api.DELETE("/segments/:id", cfg.SegmentHandler.Delete)

	return router
}
