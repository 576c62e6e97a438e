package app

import (
	"github.com/gin-gonic/gin"

	"github.com/voxscribe/transcription-backend/internal/platform/logger"
	"github.com/voxscribe/transcription-backend/internal/server"
)

func wireRouter(log *logger.Logger, cfg Config, h Handlers, m Middleware) *gin.Engine {
	return server.NewRouter(server.RouterConfig{
		Log:             log,
		AllowOrigins:    cfg.AllowOrigins,
		AuthMiddleware:  m.Auth,
		HealthHandler:   h.Health,
		AuthHandler:     h.Auth,
		UserHandler:     h.User,
		ProjectHandler:  h.Project,
		FolderHandler:   h.Folder,
		SegmentHandler:  h.Segment,
		LanguageHandler: h.Language,
		UploadHandler:   h.Upload,
	})
}
