package services

import (
	"context"

	"gorm.io/gorm"

	"github.com/voxscribe/transcription-backend/internal/data/repos"
	types "github.com/voxscribe/transcription-backend/internal/domain"
	"github.com/voxscribe/transcription-backend/internal/platform/logger"
)

type FolderCreate struct {
	ProjectID   uint    `json:"projectId"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
}

type FolderUpdate struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

type FolderService interface {
	GetByID(ctx context.Context, folderID uint) (*types.Folder, error)
	ListByProject(ctx context.Context, projectID uint) ([]*types.Folder, error)
	Create(ctx context.Context, input FolderCreate) (*types.Folder, error)
	Update(ctx context.Context, folderID uint, patch FolderUpdate) (*types.Folder, error)
	Delete(ctx context.Context, folderID uint) error
}

type folderService struct {
	db           *gorm.DB
	log          *logger.Logger
	userRepo     repos.UserRepo
	projectRepo  repos.ProjectRepo
	folderRepo   repos.FolderRepo
	segmentRepo  repos.SegmentRepo
	accessPolicy AccessPolicy
	statsService StatsService
}

func NewFolderService(db *gorm.DB, baseLog *logger.Logger, userRepo repos.UserRepo, projectRepo repos.ProjectRepo, folderRepo repos.FolderRepo, segmentRepo repos.SegmentRepo, accessPolicy AccessPolicy, statsService StatsService) FolderService {
	serviceLog := baseLog.With("service", "FolderService")
	return &folderService{
		db:           db,
		log:          serviceLog,
		userRepo:     userRepo,
		projectRepo:  projectRepo,
		folderRepo:   folderRepo,
		segmentRepo:  segmentRepo,
		accessPolicy: accessPolicy,
		statsService: statsService,
	}
}

// authorizeFolderProject resolves a folder's project and checks access at the
// given level. The folder lookup always runs first so a bad ID is NotFound.
func (fs *folderService) authorizeFolderProject(ctx context.Context, tx *gorm.DB, actor *types.User, folder *types.Folder, level AccessLevel) error {
	if folder == nil {
		return types.NotFound("folder not found")
	}
	project, err := fs.projectRepo.GetByID(ctx, tx, folder.ProjectID)
	if err != nil {
		return types.Internal(err)
	}
	return fs.accessPolicy.AuthorizeProject(ctx, tx, actor, project, level)
}

func (fs *folderService) GetByID(ctx context.Context, folderID uint) (*types.Folder, error) {
	actor, err := requireActor(ctx, nil, fs.userRepo)
	if err != nil {
		return nil, err
	}
	folder, err := fs.folderRepo.GetByID(ctx, nil, folderID)
	if err != nil {
		return nil, types.Internal(err)
	}
	if err := fs.authorizeFolderProject(ctx, nil, actor, folder, LevelRead); err != nil {
		return nil, err
	}
	return folder, nil
}

func (fs *folderService) ListByProject(ctx context.Context, projectID uint) ([]*types.Folder, error) {
	actor, err := requireActor(ctx, nil, fs.userRepo)
	if err != nil {
		return nil, err
	}
	project, err := fs.projectRepo.GetByID(ctx, nil, projectID)
	if err != nil {
		return nil, types.Internal(err)
	}
	if err := fs.accessPolicy.AuthorizeProject(ctx, nil, actor, project, LevelRead); err != nil {
		return nil, err
	}
	folders, err := fs.folderRepo.ListByProject(ctx, nil, projectID)
	if err != nil {
		return nil, types.Internal(err)
	}
	return folders, nil
}

func (fs *folderService) Create(ctx context.Context, input FolderCreate) (*types.Folder, error) {
	if input.Name == "" {
		return nil, types.Validation("folder name is required")
	}
	var created *types.Folder
	err := fs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		actor, err := requireActor(ctx, tx, fs.userRepo)
		if err != nil {
			return err
		}
		project, err := fs.projectRepo.GetByID(ctx, tx, input.ProjectID)
		if err != nil {
			return types.Internal(err)
		}
		if err := fs.accessPolicy.AuthorizeProject(ctx, tx, actor, project, LevelWrite); err != nil {
			return err
		}
		folder := &types.Folder{
			ProjectID:   input.ProjectID,
			Name:        input.Name,
			Description: input.Description,
		}
		if _, err := fs.folderRepo.Create(ctx, tx, []*types.Folder{folder}); err != nil {
			return types.Internal(err)
		}
		created = folder
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (fs *folderService) Update(ctx context.Context, folderID uint, patch FolderUpdate) (*types.Folder, error) {
	var updated *types.Folder
	err := fs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		actor, err := requireActor(ctx, tx, fs.userRepo)
		if err != nil {
			return err
		}
		folder, err := fs.folderRepo.GetByID(ctx, tx, folderID)
		if err != nil {
			return types.Internal(err)
		}
		if err := fs.authorizeFolderProject(ctx, tx, actor, folder, LevelWrite); err != nil {
			return err
		}

		fields := map[string]any{}
		if patch.Name != nil {
			if *patch.Name == "" {
				return types.Validation("folder name cannot be empty")
			}
			fields["name"] = *patch.Name
		}
		if patch.Description != nil {
			fields["description"] = *patch.Description
		}
		if err := fs.folderRepo.Update(ctx, tx, folderID, fields); err != nil {
			return types.Internal(err)
		}

		updated, err = fs.folderRepo.GetByID(ctx, tx, folderID)
		if err != nil {
			return types.Internal(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (fs *folderService) Delete(ctx context.Context, folderID uint) error {
	return fs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		actor, err := requireActor(ctx, tx, fs.userRepo)
		if err != nil {
			return err
		}
		folder, err := fs.folderRepo.GetByID(ctx, tx, folderID)
		if err != nil {
			return types.Internal(err)
		}
		if err := fs.authorizeFolderProject(ctx, tx, actor, folder, LevelWrite); err != nil {
			return err
		}

		segments, err := fs.segmentRepo.ListByFolder(ctx, tx, folderID)
		if err != nil {
			return types.Internal(err)
		}
		for _, segment := range segments {
			if err := fs.segmentRepo.Delete(ctx, tx, segment.ID); err != nil {
				return types.Internal(err)
			}
		}
		if err := fs.folderRepo.Delete(ctx, tx, folderID); err != nil {
			return types.Internal(err)
		}
		if _, err := fs.statsService.Recompute(ctx, tx, folder.ProjectID); err != nil {
			return err
		}
		return nil
	})
}
