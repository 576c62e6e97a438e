package app

import (
	"github.com/voxscribe/transcription-backend/internal/http/handlers"
	"github.com/voxscribe/transcription-backend/internal/platform/logger"
)

type Handlers struct {
	Health   *handlers.HealthHandler
	Auth     *handlers.AuthHandler
	User     *handlers.UserHandler
	Project  *handlers.ProjectHandler
	Folder   *handlers.FolderHandler
	Segment  *handlers.SegmentHandler
	Language *handlers.LanguageHandler
	Upload   *handlers.UploadHandler
}

func wireHandlers(log *logger.Logger, s Services) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Health:   handlers.NewHealthHandler(),
		Auth:     handlers.NewAuthHandler(s.Auth, s.User),
		User:     handlers.NewUserHandler(s.User),
		Project:  handlers.NewProjectHandler(s.Project, s.Folder, s.Segment),
		Folder:   handlers.NewFolderHandler(s.Folder, s.Segment),
		Segment:  handlers.NewSegmentHandler(s.Segment),
		Language: handlers.NewLanguageHandler(s.Language),
		Upload:   handlers.NewUploadHandler(s.Upload),
	}
}
