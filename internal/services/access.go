package services

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/voxscribe/transcription-backend/internal/data/repos"
	types "github.com/voxscribe/transcription-backend/internal/domain"
	"github.com/voxscribe/transcription-backend/internal/platform/logger"
	"github.com/voxscribe/transcription-backend/internal/requestdata"
)

// AccessLevel is the capability a caller needs on a project subtree.
type AccessLevel int

const (
	// LevelRead covers viewing projects, folders and segments.
	LevelRead AccessLevel = iota + 1
	// LevelWrite covers segment transcription/translation edits and folder
	// maintenance inside an accessible project.
	LevelWrite
	// LevelManage covers project lifecycle: status changes, stats recompute,
	// project delete, segment delete.
	LevelManage
)

// AccessPolicy is the single decision point for role- and language-based
// visibility. Every entity service consults it instead of re-deriving rules.
type AccessPolicy interface {
	// AuthorizeProject decides whether actor may act on project at level.
	// Callers resolve the project first so that a missing resource surfaces
	// as NotFound before any permission evaluation.
	AuthorizeProject(ctx context.Context, tx *gorm.DB, actor *types.User, project *types.Project, level AccessLevel) error
	// AccessibleLanguageIDs returns the language scope for an actor, or nil
	// when the actor sees everything.
	AccessibleLanguageIDs(ctx context.Context, tx *gorm.DB, actor *types.User) ([]uint, error)
	// RequireAdmin gates user administration.
	RequireAdmin(actor *types.User) error
}

type accessPolicy struct {
	log      *logger.Logger
	userRepo repos.UserRepo
}

func NewAccessPolicy(baseLog *logger.Logger, userRepo repos.UserRepo) AccessPolicy {
	policyLog := baseLog.With("service", "AccessPolicy")
	return &accessPolicy{log: policyLog, userRepo: userRepo}
}

func (ap *accessPolicy) AuthorizeProject(ctx context.Context, tx *gorm.DB, actor *types.User, project *types.Project, level AccessLevel) error {
	if project == nil {
		return types.NotFound("project not found")
	}
	if actor == nil || !actor.IsActive {
		return types.PermissionDenied("no active user")
	}

	if level == LevelManage {
		if actor.Role.IsPrivileged() {
			return nil
		}
		return types.PermissionDenied("insufficient permissions")
	}

	if actor.Role.IsPrivileged() {
		return nil
	}

	languages, err := ap.userRepo.AssignedLanguages(ctx, tx, actor.ID)
	if err != nil {
		return types.Internal(err)
	}
	for _, language := range languages {
		if language.ID == project.LanguageID {
			return nil
		}
	}
	return types.PermissionDenied("no permission for this project's language")
}

func (ap *accessPolicy) AccessibleLanguageIDs(ctx context.Context, tx *gorm.DB, actor *types.User) ([]uint, error) {
	if actor.Role.IsPrivileged() {
		return nil, nil
	}
	languages, err := ap.userRepo.AssignedLanguages(ctx, tx, actor.ID)
	if err != nil {
		return nil, types.Internal(err)
	}
	ids := make([]uint, 0, len(languages))
	for _, language := range languages {
		ids = append(ids, language.ID)
	}
	return ids, nil
}

func (ap *accessPolicy) RequireAdmin(actor *types.User) error {
	if actor == nil || !actor.IsActive {
		return types.PermissionDenied("no active user")
	}
	if actor.Role != types.RoleAdmin {
		return types.PermissionDenied("admin role required")
	}
	return nil
}

// requireActor resolves the verified request identity to a live user row.
func requireActor(ctx context.Context, tx *gorm.DB, userRepo repos.UserRepo) (*types.User, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return nil, types.PermissionDenied("no authenticated user in request context")
	}
	actor, err := userRepo.GetByID(ctx, tx, rd.UserID)
	if err != nil {
		return nil, types.Internal(err)
	}
	if actor == nil {
		return nil, types.PermissionDenied("user no longer exists")
	}
	if !actor.IsActive {
		return nil, types.PermissionDenied("user is deactivated")
	}
	return actor, nil
}
