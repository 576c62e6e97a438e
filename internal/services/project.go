package services

import (
	"context"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/voxscribe/transcription-backend/internal/data/repos"
	types "github.com/voxscribe/transcription-backend/internal/domain"
	"github.com/voxscribe/transcription-backend/internal/platform/logger"
)

// ProjectUpdate is a field patch; nil pointers leave fields untouched.
type ProjectUpdate struct {
	Name                 *string              `json:"name"`
	Status               *types.ProjectStatus `json:"status"`
	TranscriptionContext *string              `json:"transcriptionContext"`
	DomainType           *string              `json:"domainType"`
	Metadata             datatypes.JSON       `json:"metadata"`
}

type ProjectService interface {
	List(ctx context.Context) ([]*types.Project, error)
	GetByID(ctx context.Context, projectID uint) (*types.Project, error)
	Update(ctx context.Context, projectID uint, patch ProjectUpdate) (*types.Project, error)
	RecalculateStats(ctx context.Context, projectID uint) (*types.Project, error)
	Delete(ctx context.Context, projectID uint) error
}

type projectService struct {
	db           *gorm.DB
	log          *logger.Logger
	userRepo     repos.UserRepo
	projectRepo  repos.ProjectRepo
	accessPolicy AccessPolicy
	statsService StatsService
}

func NewProjectService(db *gorm.DB, baseLog *logger.Logger, userRepo repos.UserRepo, projectRepo repos.ProjectRepo, accessPolicy AccessPolicy, statsService StatsService) ProjectService {
	serviceLog := baseLog.With("service", "ProjectService")
	return &projectService{
		db:           db,
		log:          serviceLog,
		userRepo:     userRepo,
		projectRepo:  projectRepo,
		accessPolicy: accessPolicy,
		statsService: statsService,
	}
}

func (ps *projectService) List(ctx context.Context) ([]*types.Project, error) {
	actor, err := requireActor(ctx, nil, ps.userRepo)
	if err != nil {
		return nil, err
	}
	languageIDs, err := ps.accessPolicy.AccessibleLanguageIDs(ctx, nil, actor)
	if err != nil {
		return nil, err
	}
	if !actor.Role.IsPrivileged() && len(languageIDs) == 0 {
		return []*types.Project{}, nil
	}
	projects, err := ps.projectRepo.List(ctx, nil, repos.ProjectFilter{LanguageIDs: languageIDs})
	if err != nil {
		return nil, types.Internal(err)
	}
	return projects, nil
}

func (ps *projectService) GetByID(ctx context.Context, projectID uint) (*types.Project, error) {
	actor, err := requireActor(ctx, nil, ps.userRepo)
	if err != nil {
		return nil, err
	}
	project, err := ps.projectRepo.GetByID(ctx, nil, projectID)
	if err != nil {
		return nil, types.Internal(err)
	}
	if err := ps.accessPolicy.AuthorizeProject(ctx, nil, actor, project, LevelRead); err != nil {
		return nil, err
	}
	return project, nil
}

func (ps *projectService) Update(ctx context.Context, projectID uint, patch ProjectUpdate) (*types.Project, error) {
	var updated *types.Project
	err := ps.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		actor, err := requireActor(ctx, tx, ps.userRepo)
		if err != nil {
			return err
		}
		project, err := ps.projectRepo.GetByID(ctx, tx, projectID)
		if err != nil {
			return types.Internal(err)
		}
		if err := ps.accessPolicy.AuthorizeProject(ctx, tx, actor, project, LevelManage); err != nil {
			return err
		}

		fields := map[string]any{}
		if patch.Name != nil {
			if *patch.Name == "" {
				return types.Validation("project name cannot be empty")
			}
			fields["name"] = *patch.Name
		}
		if patch.Status != nil {
			if !patch.Status.Valid() {
				return types.Validation("invalid project status %q", *patch.Status)
			}
			fields["status"] = *patch.Status
		}
		if patch.TranscriptionContext != nil {
			fields["transcription_context"] = *patch.TranscriptionContext
		}
		if patch.DomainType != nil {
			fields["domain_type"] = *patch.DomainType
		}
		if patch.Metadata != nil {
			fields["metadata"] = patch.Metadata
		}
		if err := ps.projectRepo.Update(ctx, tx, projectID, fields); err != nil {
			return types.Internal(err)
		}

		updated, err = ps.projectRepo.GetByID(ctx, tx, projectID)
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

func (ps *projectService) RecalculateStats(ctx context.Context, projectID uint) (*types.Project, error) {
	var updated *types.Project
	err := ps.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		actor, err := requireActor(ctx, tx, ps.userRepo)
		if err != nil {
			return err
		}
		project, err := ps.projectRepo.GetByID(ctx, tx, projectID)
		if err != nil {
			return types.Internal(err)
		}
		if err := ps.accessPolicy.AuthorizeProject(ctx, tx, actor, project, LevelManage); err != nil {
			return err
		}
		updated, err = ps.statsService.Recompute(ctx, tx, projectID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (ps *projectService) Delete(ctx context.Context, projectID uint) error {
	return ps.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		actor, err := requireActor(ctx, tx, ps.userRepo)
		if err != nil {
			return err
		}
		project, err := ps.projectRepo.GetByID(ctx, tx, projectID)
		if err != nil {
			return types.Internal(err)
		}
		if err := ps.accessPolicy.AuthorizeProject(ctx, tx, actor, project, LevelManage); err != nil {
			return err
		}
		if err := ps.projectRepo.Delete(ctx, tx, projectID); err != nil {
			return types.Internal(err)
		}
		return nil
	})
}
