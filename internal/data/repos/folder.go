package repos

import (
	"context"
	"errors"

	"gorm.io/gorm"

	types "github.com/voxscribe/transcription-backend/internal/domain"
	"github.com/voxscribe/transcription-backend/internal/platform/logger"
)

type FolderRepo interface {
	Create(ctx context.Context, tx *gorm.DB, folders []*types.Folder) ([]*types.Folder, error)
	GetByID(ctx context.Context, tx *gorm.DB, folderID uint) (*types.Folder, error)
	ListByProject(ctx context.Context, tx *gorm.DB, projectID uint) ([]*types.Folder, error)
	Update(ctx context.Context, tx *gorm.DB, folderID uint, fields map[string]any) error
	Delete(ctx context.Context, tx *gorm.DB, folderID uint) error
}

type folderRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewFolderRepo(db *gorm.DB, baseLog *logger.Logger) FolderRepo {
	repoLog := baseLog.With("repo", "FolderRepo")
	return &folderRepo{db: db, log: repoLog}
}

func (fr *folderRepo) Create(ctx context.Context, tx *gorm.DB, folders []*types.Folder) ([]*types.Folder, error) {
	transaction := tx
	if transaction == nil {
		transaction = fr.db
	}
	if len(folders) == 0 {
		return []*types.Folder{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&folders).Error; err != nil {
		return nil, err
	}
	return folders, nil
}

func (fr *folderRepo) GetByID(ctx context.Context, tx *gorm.DB, folderID uint) (*types.Folder, error) {
	transaction := tx
	if transaction == nil {
		transaction = fr.db
	}
	var result types.Folder
	err := transaction.WithContext(ctx).Where("id = ?", folderID).First(&result).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (fr *folderRepo) ListByProject(ctx context.Context, tx *gorm.DB, projectID uint) ([]*types.Folder, error) {
	transaction := tx
	if transaction == nil {
		transaction = fr.db
	}
	var results []*types.Folder
	if err := transaction.WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("created_at ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (fr *folderRepo) Update(ctx context.Context, tx *gorm.DB, folderID uint, fields map[string]any) error {
	transaction := tx
	if transaction == nil {
		transaction = fr.db
	}
	if len(fields) == 0 {
		return nil
	}
	return transaction.WithContext(ctx).
		Model(&types.Folder{}).
		Where("id = ?", folderID).
		Updates(fields).Error
}

func (fr *folderRepo) Delete(ctx context.Context, tx *gorm.DB, folderID uint) error {
	transaction := tx
	if transaction == nil {
		transaction = fr.db
	}
	return transaction.WithContext(ctx).
		Where("id = ?", folderID).
		Delete(&types.Folder{}).Error
}
