package repos

import (
	"context"
	"errors"

	"gorm.io/gorm"

	types "github.com/voxscribe/transcription-backend/internal/domain"
	"github.com/voxscribe/transcription-backend/internal/platform/logger"
)

type SegmentRepo interface {
	Create(ctx context.Context, tx *gorm.DB, segments []*types.Segment) ([]*types.Segment, error)
	GetByID(ctx context.Context, tx *gorm.DB, segmentID uint) (*types.Segment, error)
	ListByProject(ctx context.Context, tx *gorm.DB, projectID uint) ([]*types.Segment, error)
	ListByFolder(ctx context.Context, tx *gorm.DB, folderID uint) ([]*types.Segment, error)
	Update(ctx context.Context, tx *gorm.DB, segmentID uint, fields map[string]any) error
	Delete(ctx context.Context, tx *gorm.DB, segmentID uint) error
}

type segmentRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewSegmentRepo(db *gorm.DB, baseLog *logger.Logger) SegmentRepo {
	repoLog := baseLog.With("repo", "SegmentRepo")
	return &segmentRepo{db: db, log: repoLog}
}

func (sr *segmentRepo) Create(ctx context.Context, tx *gorm.DB, segments []*types.Segment) ([]*types.Segment, error) {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}
	if len(segments) == 0 {
		return []*types.Segment{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&segments).Error; err != nil {
		return nil, err
	}
	return segments, nil
}

func (sr *segmentRepo) GetByID(ctx context.Context, tx *gorm.DB, segmentID uint) (*types.Segment, error) {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}
	var result types.Segment
	err := transaction.WithContext(ctx).Where("id = ?", segmentID).First(&result).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (sr *segmentRepo) ListByProject(ctx context.Context, tx *gorm.DB, projectID uint) ([]*types.Segment, error) {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}
	var results []*types.Segment
	if err := transaction.WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("segment_number ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (sr *segmentRepo) ListByFolder(ctx context.Context, tx *gorm.DB, folderID uint) ([]*types.Segment, error) {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}
	var results []*types.Segment
	if err := transaction.WithContext(ctx).
		Where("folder_id = ?", folderID).
		Order("segment_number ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (sr *segmentRepo) Update(ctx context.Context, tx *gorm.DB, segmentID uint, fields map[string]any) error {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}
	if len(fields) == 0 {
		return nil
	}
	return transaction.WithContext(ctx).
		Model(&types.Segment{}).
		Where("id = ?", segmentID).
		Updates(fields).Error
}

func (sr *segmentRepo) Delete(ctx context.Context, tx *gorm.DB, segmentID uint) error {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}
	return transaction.WithContext(ctx).
		Where("id = ?", segmentID).
		Delete(&types.Segment{}).Error
}
