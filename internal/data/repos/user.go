package repos

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/voxscribe/transcription-backend/internal/domain"
	"github.com/voxscribe/transcription-backend/internal/platform/logger"
)

type UserRepo interface {
	Create(ctx context.Context, tx *gorm.DB, users []*types.User) ([]*types.User, error)
	GetByID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.User, error)
	GetByUsername(ctx context.Context, tx *gorm.DB, username string) (*types.User, error)
	GetByEmail(ctx context.Context, tx *gorm.DB, email string) (*types.User, error)
	List(ctx context.Context, tx *gorm.DB) ([]*types.User, error)
	Update(ctx context.Context, tx *gorm.DB, userID uuid.UUID, fields map[string]any) error
	Delete(ctx context.Context, tx *gorm.DB, userID uuid.UUID) error
	StampLastLogin(ctx context.Context, tx *gorm.DB, userID uuid.UUID, at time.Time) error

	AssignedLanguages(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.Language, error)
	ReplaceAssignedLanguages(ctx context.Context, tx *gorm.DB, userID uuid.UUID, languageIDs []uint) error
}

type userRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewUserRepo(db *gorm.DB, baseLog *logger.Logger) UserRepo {
	repoLog := baseLog.With("repo", "UserRepo")
	return &userRepo{db: db, log: repoLog}
}

func (ur *userRepo) Create(ctx context.Context, tx *gorm.DB, users []*types.User) ([]*types.User, error) {
	transaction := tx
	if transaction == nil {
		transaction = ur.db
	}
	if len(users) == 0 {
		return []*types.User{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (ur *userRepo) GetByID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.User, error) {
	transaction := tx
	if transaction == nil {
		transaction = ur.db
	}
	var result types.User
	err := transaction.WithContext(ctx).Where("id = ?", userID).First(&result).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (ur *userRepo) GetByUsername(ctx context.Context, tx *gorm.DB, username string) (*types.User, error) {
	transaction := tx
	if transaction == nil {
		transaction = ur.db
	}
	var result types.User
	err := transaction.WithContext(ctx).Where("username = ?", username).First(&result).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (ur *userRepo) GetByEmail(ctx context.Context, tx *gorm.DB, email string) (*types.User, error) {
	transaction := tx
	if transaction == nil {
		transaction = ur.db
	}
	var result types.User
	err := transaction.WithContext(ctx).Where("email = ?", email).First(&result).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (ur *userRepo) List(ctx context.Context, tx *gorm.DB) ([]*types.User, error) {
	transaction := tx
	if transaction == nil {
		transaction = ur.db
	}
	var results []*types.User
	if err := transaction.WithContext(ctx).
		Order("created_at ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (ur *userRepo) Update(ctx context.Context, tx *gorm.DB, userID uuid.UUID, fields map[string]any) error {
	transaction := tx
	if transaction == nil {
		transaction = ur.db
	}
	if len(fields) == 0 {
		return nil
	}
	return transaction.WithContext(ctx).
		Model(&types.User{}).
		Where("id = ?", userID).
		Updates(fields).Error
}

func (ur *userRepo) Delete(ctx context.Context, tx *gorm.DB, userID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = ur.db
	}
	if err := transaction.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&types.UserLanguage{}).Error; err != nil {
		return err
	}
	return transaction.WithContext(ctx).
		Where("id = ?", userID).
		Delete(&types.User{}).Error
}

func (ur *userRepo) StampLastLogin(ctx context.Context, tx *gorm.DB, userID uuid.UUID, at time.Time) error {
	transaction := tx
	if transaction == nil {
		transaction = ur.db
	}
	return transaction.WithContext(ctx).
		Model(&types.User{}).
		Where("id = ?", userID).
		Update("last_login_at", at).Error
}

func (ur *userRepo) AssignedLanguages(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.Language, error) {
	transaction := tx
	if transaction == nil {
		transaction = ur.db
	}
	var results []*types.Language
	if err := transaction.WithContext(ctx).
		Model(&types.Language{}).
		Joins("JOIN user_languages ON user_languages.language_id = languages.id").
		Where("user_languages.user_id = ?", userID).
		Order("languages.id ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (ur *userRepo) ReplaceAssignedLanguages(ctx context.Context, tx *gorm.DB, userID uuid.UUID, languageIDs []uint) error {
	transaction := tx
	if transaction == nil {
		transaction = ur.db
	}
	if err := transaction.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&types.UserLanguage{}).Error; err != nil {
		return err
	}
	if len(languageIDs) == 0 {
		return nil
	}
	assignments := make([]*types.UserLanguage, 0, len(languageIDs))
	for _, languageID := range languageIDs {
		assignments = append(assignments, &types.UserLanguage{
			UserID:     userID,
			LanguageID: languageID,
		})
	}
	return transaction.WithContext(ctx).Create(&assignments).Error
}
