package repos

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/voxscribe/transcription-backend/internal/domain"
	"github.com/voxscribe/transcription-backend/internal/platform/logger"
)

// ProjectFilter narrows List; zero values mean "no filter".
type ProjectFilter struct {
	UserID      *uuid.UUID
	LanguageIDs []uint
}

type ProjectRepo interface {
	Create(ctx context.Context, tx *gorm.DB, projects []*types.Project) ([]*types.Project, error)
	GetByID(ctx context.Context, tx *gorm.DB, projectID uint) (*types.Project, error)
	List(ctx context.Context, tx *gorm.DB, filter ProjectFilter) ([]*types.Project, error)
	Update(ctx context.Context, tx *gorm.DB, projectID uint, fields map[string]any) error
	// Delete removes the project together with its folders and segments.
	Delete(ctx context.Context, tx *gorm.DB, projectID uint) error
}

type projectRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewProjectRepo(db *gorm.DB, baseLog *logger.Logger) ProjectRepo {
	repoLog := baseLog.With("repo", "ProjectRepo")
	return &projectRepo{db: db, log: repoLog}
}

func (pr *projectRepo) Create(ctx context.Context, tx *gorm.DB, projects []*types.Project) ([]*types.Project, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}
	if len(projects) == 0 {
		return []*types.Project{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&projects).Error; err != nil {
		return nil, err
	}
	return projects, nil
}

func (pr *projectRepo) GetByID(ctx context.Context, tx *gorm.DB, projectID uint) (*types.Project, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}
	var result types.Project
	err := transaction.WithContext(ctx).Where("id = ?", projectID).First(&result).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (pr *projectRepo) List(ctx context.Context, tx *gorm.DB, filter ProjectFilter) ([]*types.Project, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}
	query := transaction.WithContext(ctx).Model(&types.Project{})
	if filter.UserID != nil {
		query = query.Where("user_id = ?", *filter.UserID)
	}
	if len(filter.LanguageIDs) > 0 {
		query = query.Where("language_id IN ?", filter.LanguageIDs)
	}
	var results []*types.Project
	if err := query.Order("created_at DESC").Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (pr *projectRepo) Update(ctx context.Context, tx *gorm.DB, projectID uint, fields map[string]any) error {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}
	if len(fields) == 0 {
		return nil
	}
	return transaction.WithContext(ctx).
		Model(&types.Project{}).
		Where("id = ?", projectID).
		Updates(fields).Error
}

func (pr *projectRepo) Delete(ctx context.Context, tx *gorm.DB, projectID uint) error {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}
	// Segments reference folders, so they go first.
	if err := transaction.WithContext(ctx).
		Where("project_id = ?", projectID).
		Delete(&types.Segment{}).Error; err != nil {
		return err
	}
	if err := transaction.WithContext(ctx).
		Where("project_id = ?", projectID).
		Delete(&types.Folder{}).Error; err != nil {
		return err
	}
	return transaction.WithContext(ctx).
		Where("id = ?", projectID).
		Delete(&types.Project{}).Error
}
