package services

import (
	"context"

	"gorm.io/gorm"

	"github.com/voxscribe/transcription-backend/internal/data/repos"
	types "github.com/voxscribe/transcription-backend/internal/domain"
	"github.com/voxscribe/transcription-backend/internal/platform/logger"
)

type LanguageCreate struct {
	Code     string `json:"code"`
	Name     string `json:"name"`
	IsActive *bool  `json:"isActive"`
}

type LanguageService interface {
	List(ctx context.Context) ([]*types.Language, error)
	Create(ctx context.Context, input LanguageCreate) (*types.Language, error)
}

type languageService struct {
	db           *gorm.DB
	log          *logger.Logger
	userRepo     repos.UserRepo
	languageRepo repos.LanguageRepo
	accessPolicy AccessPolicy
}

func NewLanguageService(db *gorm.DB, baseLog *logger.Logger, userRepo repos.UserRepo, languageRepo repos.LanguageRepo, accessPolicy AccessPolicy) LanguageService {
	serviceLog := baseLog.With("service", "LanguageService")
	return &languageService{
		db:           db,
		log:          serviceLog,
		userRepo:     userRepo,
		languageRepo: languageRepo,
		accessPolicy: accessPolicy,
	}
}

// List is visible to every authenticated user; editors need it to label
// their own assignments.
func (ls *languageService) List(ctx context.Context) ([]*types.Language, error) {
	if _, err := requireActor(ctx, nil, ls.userRepo); err != nil {
		return nil, err
	}
	languages, err := ls.languageRepo.List(ctx, nil)
	if err != nil {
		return nil, types.Internal(err)
	}
	return languages, nil
}

func (ls *languageService) Create(ctx context.Context, input LanguageCreate) (*types.Language, error) {
	actor, err := requireActor(ctx, nil, ls.userRepo)
	if err != nil {
		return nil, err
	}
	if err := ls.accessPolicy.RequireAdmin(actor); err != nil {
		return nil, err
	}
	if input.Code == "" || input.Name == "" {
		return nil, types.Validation("language code and name are required")
	}
	isActive := true
	if input.IsActive != nil {
		isActive = *input.IsActive
	}
	language := &types.Language{Code: input.Code, Name: input.Name, IsActive: isActive}
	if _, err := ls.languageRepo.Create(ctx, nil, []*types.Language{language}); err != nil {
		return nil, types.Internal(err)
	}
	return language, nil
}
