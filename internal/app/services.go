package app

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/voxscribe/transcription-backend/internal/media"
	"github.com/voxscribe/transcription-backend/internal/platform/logger"
	"github.com/voxscribe/transcription-backend/internal/services"
	"github.com/voxscribe/transcription-backend/internal/storage"
)

type Services struct {
	Auth     services.AuthService
	Access   services.AccessPolicy
	Stats    services.StatsService
	User     services.UserService
	Language services.LanguageService
	Project  services.ProjectService
	Folder   services.FolderService
	Segment  services.SegmentService
	Upload   services.UploadService
}

func wireServices(db *gorm.DB, log *logger.Logger, cfg Config, r Repos) (Services, error) {
	log.Info("Wiring services...")

	blobStore, err := wireBlobStore(log, cfg)
	if err != nil {
		return Services{}, err
	}

	accessPolicy := services.NewAccessPolicy(log, r.User)
	statsService := services.NewStatsService(db, log, r.Project, r.Segment)
	authService := services.NewAuthService(db, log, r.User, cfg.JWTSecretKey, cfg.AccessTokenTTL)
	userService := services.NewUserService(db, log, r.User, r.Language, accessPolicy)
	languageService := services.NewLanguageService(db, log, r.User, r.Language, accessPolicy)
	projectService := services.NewProjectService(db, log, r.User, r.Project, accessPolicy, statsService)
	folderService := services.NewFolderService(db, log, r.User, r.Project, r.Folder, r.Segment, accessPolicy, statsService)
	segmentService := services.NewSegmentService(db, log, r.User, r.Project, r.Folder, r.Segment, accessPolicy, statsService)
	uploadService := services.NewUploadService(
		db, log,
		r.User, r.Language, r.Project, r.Folder, r.Segment,
		statsService,
		media.NewEstimator(log),
		blobStore,
		cfg.DefaultLanguageID,
	)

	return Services{
		Auth:     authService,
		Access:   accessPolicy,
		Stats:    statsService,
		User:     userService,
		Language: languageService,
		Project:  projectService,
		Folder:   folderService,
		Segment:  segmentService,
		Upload:   uploadService,
	}, nil
}

func wireBlobStore(log *logger.Logger, cfg Config) (storage.BlobStore, error) {
	switch cfg.StorageBackend {
	case "gcs":
		return storage.NewGCSStore(context.Background(), log)
	case "local", "":
		return storage.NewLocalStore(cfg.UploadDir, log)
	default:
		return nil, fmt.Errorf("unknown STORAGE_BACKEND %q", cfg.StorageBackend)
	}
}
