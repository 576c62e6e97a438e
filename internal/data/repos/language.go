package repos

import (
	"context"
	"errors"

	"gorm.io/gorm"

	types "github.com/voxscribe/transcription-backend/internal/domain"
	"github.com/voxscribe/transcription-backend/internal/platform/logger"
)

type LanguageRepo interface {
	Create(ctx context.Context, tx *gorm.DB, languages []*types.Language) ([]*types.Language, error)
	GetByID(ctx context.Context, tx *gorm.DB, languageID uint) (*types.Language, error)
	List(ctx context.Context, tx *gorm.DB) ([]*types.Language, error)
	FirstActive(ctx context.Context, tx *gorm.DB) (*types.Language, error)
}

type languageRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewLanguageRepo(db *gorm.DB, baseLog *logger.Logger) LanguageRepo {
	repoLog := baseLog.With("repo", "LanguageRepo")
	return &languageRepo{db: db, log: repoLog}
}

func (lr *languageRepo) Create(ctx context.Context, tx *gorm.DB, languages []*types.Language) ([]*types.Language, error) {
	transaction := tx
	if transaction == nil {
		transaction = lr.db
	}
	if len(languages) == 0 {
		return []*types.Language{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&languages).Error; err != nil {
		return nil, err
	}
	return languages, nil
}

func (lr *languageRepo) GetByID(ctx context.Context, tx *gorm.DB, languageID uint) (*types.Language, error) {
	transaction := tx
	if transaction == nil {
		transaction = lr.db
	}
	var result types.Language
	err := transaction.WithContext(ctx).Where("id = ?", languageID).First(&result).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (lr *languageRepo) List(ctx context.Context, tx *gorm.DB) ([]*types.Language, error) {
	transaction := tx
	if transaction == nil {
		transaction = lr.db
	}
	var results []*types.Language
	if err := transaction.WithContext(ctx).
		Order("id ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (lr *languageRepo) FirstActive(ctx context.Context, tx *gorm.DB) (*types.Language, error) {
	transaction := tx
	if transaction == nil {
		transaction = lr.db
	}
	var result types.Language
	err := transaction.WithContext(ctx).
		Where("is_active = ?", true).
		Order("id ASC").
		First(&result).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}
