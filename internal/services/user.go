package services

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/voxscribe/transcription-backend/internal/data/repos"
	types "github.com/voxscribe/transcription-backend/internal/domain"
	"github.com/voxscribe/transcription-backend/internal/platform/logger"
)

type UserCreate struct {
	Username    string      `json:"username"`
	Email       *string     `json:"email"`
	Password    string      `json:"password"`
	FirstName   *string     `json:"firstName"`
	LastName    *string     `json:"lastName"`
	Role        *types.Role `json:"role"`
	LanguageIDs []uint      `json:"languageIds"`
}

type UserUpdate struct {
	Email       *string     `json:"email"`
	FirstName   *string     `json:"firstName"`
	LastName    *string     `json:"lastName"`
	Role        *types.Role `json:"role"`
	IsActive    *bool       `json:"isActive"`
	LanguageIDs *[]uint     `json:"languageIds"`
}

// UserService is admin territory except for Me, which any authenticated user
// may call on themselves.
type UserService interface {
	Me(ctx context.Context) (*types.User, error)
	List(ctx context.Context) ([]*types.User, error)
	GetByID(ctx context.Context, userID uuid.UUID) (*types.User, error)
	Create(ctx context.Context, input UserCreate) (*types.User, error)
	Update(ctx context.Context, userID uuid.UUID, patch UserUpdate) (*types.User, error)
	ResetPassword(ctx context.Context, userID uuid.UUID, newPassword string) error
	Deactivate(ctx context.Context, userID uuid.UUID) error
	Delete(ctx context.Context, userID uuid.UUID) error
}

type userService struct {
	db           *gorm.DB
	log          *logger.Logger
	userRepo     repos.UserRepo
	languageRepo repos.LanguageRepo
	accessPolicy AccessPolicy
}

func NewUserService(db *gorm.DB, baseLog *logger.Logger, userRepo repos.UserRepo, languageRepo repos.LanguageRepo, accessPolicy AccessPolicy) UserService {
	serviceLog := baseLog.With("service", "UserService")
	return &userService{
		db:           db,
		log:          serviceLog,
		userRepo:     userRepo,
		languageRepo: languageRepo,
		accessPolicy: accessPolicy,
	}
}

func (us *userService) withLanguages(ctx context.Context, tx *gorm.DB, user *types.User) (*types.User, error) {
	languages, err := us.userRepo.AssignedLanguages(ctx, tx, user.ID)
	if err != nil {
		return nil, types.Internal(err)
	}
	user.Languages = make([]types.Language, 0, len(languages))
	for _, language := range languages {
		user.Languages = append(user.Languages, *language)
	}
	return user, nil
}

func (us *userService) Me(ctx context.Context) (*types.User, error) {
	actor, err := requireActor(ctx, nil, us.userRepo)
	if err != nil {
		return nil, err
	}
	return us.withLanguages(ctx, nil, actor)
}

func (us *userService) List(ctx context.Context) ([]*types.User, error) {
	actor, err := requireActor(ctx, nil, us.userRepo)
	if err != nil {
		return nil, err
	}
	if err := us.accessPolicy.RequireAdmin(actor); err != nil {
		return nil, err
	}
	users, err := us.userRepo.List(ctx, nil)
	if err != nil {
		return nil, types.Internal(err)
	}
	for _, user := range users {
		if _, err := us.withLanguages(ctx, nil, user); err != nil {
			return nil, err
		}
	}
	return users, nil
}

func (us *userService) GetByID(ctx context.Context, userID uuid.UUID) (*types.User, error) {
	actor, err := requireActor(ctx, nil, us.userRepo)
	if err != nil {
		return nil, err
	}
	if err := us.accessPolicy.RequireAdmin(actor); err != nil {
		return nil, err
	}
	user, err := us.userRepo.GetByID(ctx, nil, userID)
	if err != nil {
		return nil, types.Internal(err)
	}
	if user == nil {
		return nil, types.NotFound("user not found")
	}
	return us.withLanguages(ctx, nil, user)
}

func (us *userService) Create(ctx context.Context, input UserCreate) (*types.User, error) {
	var created *types.User
	err := us.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		actor, err := requireActor(ctx, tx, us.userRepo)
		if err != nil {
			return err
		}
		if err := us.accessPolicy.RequireAdmin(actor); err != nil {
			return err
		}
		if input.Username == "" || input.Password == "" {
			return types.Validation("username and password are required")
		}

		existing, err := us.userRepo.GetByUsername(ctx, tx, input.Username)
		if err != nil {
			return types.Internal(err)
		}
		if existing != nil {
			return types.Conflict("username %q is already taken", input.Username)
		}
		if input.Email != nil && *input.Email != "" {
			byEmail, err := us.userRepo.GetByEmail(ctx, tx, *input.Email)
			if err != nil {
				return types.Internal(err)
			}
			if byEmail != nil {
				return types.Conflict("email %q is already registered", *input.Email)
			}
		}

		role := types.RoleEditor
		if input.Role != nil {
			if !input.Role.Valid() {
				return types.Validation("invalid role %q", *input.Role)
			}
			role = *input.Role
		}

		hash, err := HashPassword(input.Password)
		if err != nil {
			return types.Internal(err)
		}
		user := &types.User{
			ID:           uuid.New(),
			Username:     input.Username,
			Email:        input.Email,
			PasswordHash: hash,
			FirstName:    input.FirstName,
			LastName:     input.LastName,
			Role:         role,
			IsActive:     true,
		}
		if _, err := us.userRepo.Create(ctx, tx, []*types.User{user}); err != nil {
			return types.Internal(err)
		}

		if len(input.LanguageIDs) > 0 {
			if err := us.validateLanguageIDs(ctx, tx, input.LanguageIDs); err != nil {
				return err
			}
			if err := us.userRepo.ReplaceAssignedLanguages(ctx, tx, user.ID, input.LanguageIDs); err != nil {
				return types.Internal(err)
			}
		}

		created, err = us.withLanguages(ctx, tx, user)
		return err
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (us *userService) Update(ctx context.Context, userID uuid.UUID, patch UserUpdate) (*types.User, error) {
	var updated *types.User
	err := us.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		actor, err := requireActor(ctx, tx, us.userRepo)
		if err != nil {
			return err
		}
		if err := us.accessPolicy.RequireAdmin(actor); err != nil {
			return err
		}
		user, err := us.userRepo.GetByID(ctx, tx, userID)
		if err != nil {
			return types.Internal(err)
		}
		if user == nil {
			return types.NotFound("user not found")
		}

		fields := map[string]any{}
		if patch.Email != nil {
			if *patch.Email != "" {
				byEmail, err := us.userRepo.GetByEmail(ctx, tx, *patch.Email)
				if err != nil {
					return types.Internal(err)
				}
				if byEmail != nil && byEmail.ID != userID {
					return types.Conflict("email %q is already registered", *patch.Email)
				}
			}
			fields["email"] = *patch.Email
		}
		if patch.FirstName != nil {
			fields["first_name"] = *patch.FirstName
		}
		if patch.LastName != nil {
			fields["last_name"] = *patch.LastName
		}
		if patch.Role != nil {
			if !patch.Role.Valid() {
				return types.Validation("invalid role %q", *patch.Role)
			}
			fields["role"] = *patch.Role
		}
		if patch.IsActive != nil {
			fields["is_active"] = *patch.IsActive
		}
		if err := us.userRepo.Update(ctx, tx, userID, fields); err != nil {
			return types.Internal(err)
		}

		if patch.LanguageIDs != nil {
			if err := us.validateLanguageIDs(ctx, tx, *patch.LanguageIDs); err != nil {
				return err
			}
			if err := us.userRepo.ReplaceAssignedLanguages(ctx, tx, userID, *patch.LanguageIDs); err != nil {
				return types.Internal(err)
			}
		}

		user, err = us.userRepo.GetByID(ctx, tx, userID)
		if err != nil {
			return types.Internal(err)
		}
		updated, err = us.withLanguages(ctx, tx, user)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (us *userService) ResetPassword(ctx context.Context, userID uuid.UUID, newPassword string) error {
	actor, err := requireActor(ctx, nil, us.userRepo)
	if err != nil {
		return err
	}
	if err := us.accessPolicy.RequireAdmin(actor); err != nil {
		return err
	}
	if newPassword == "" {
		return types.Validation("password cannot be empty")
	}
	user, err := us.userRepo.GetByID(ctx, nil, userID)
	if err != nil {
		return types.Internal(err)
	}
	if user == nil {
		return types.NotFound("user not found")
	}
	hash, err := HashPassword(newPassword)
	if err != nil {
		return types.Internal(err)
	}
	if err := us.userRepo.Update(ctx, nil, userID, map[string]any{"password_hash": hash}); err != nil {
		return types.Internal(err)
	}
	return nil
}

func (us *userService) Deactivate(ctx context.Context, userID uuid.UUID) error {
	actor, err := requireActor(ctx, nil, us.userRepo)
	if err != nil {
		return err
	}
	if err := us.accessPolicy.RequireAdmin(actor); err != nil {
		return err
	}
	if actor.ID == userID {
		return types.Validation("cannot deactivate your own account")
	}
	user, err := us.userRepo.GetByID(ctx, nil, userID)
	if err != nil {
		return types.Internal(err)
	}
	if user == nil {
		return types.NotFound("user not found")
	}
	if err := us.userRepo.Update(ctx, nil, userID, map[string]any{"is_active": false}); err != nil {
		return types.Internal(err)
	}
	return nil
}

func (us *userService) Delete(ctx context.Context, userID uuid.UUID) error {
	return us.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		actor, err := requireActor(ctx, tx, us.userRepo)
		if err != nil {
			return err
		}
		if err := us.accessPolicy.RequireAdmin(actor); err != nil {
			return err
		}
		if actor.ID == userID {
			return types.Validation("cannot delete your own account")
		}
		user, err := us.userRepo.GetByID(ctx, tx, userID)
		if err != nil {
			return types.Internal(err)
		}
		if user == nil {
			return types.NotFound("user not found")
		}
		if err := us.userRepo.Delete(ctx, tx, userID); err != nil {
			return types.Internal(err)
		}
		return nil
	})
}

func (us *userService) validateLanguageIDs(ctx context.Context, tx *gorm.DB, languageIDs []uint) error {
	for _, languageID := range languageIDs {
		language, err := us.languageRepo.GetByID(ctx, tx, languageID)
		if err != nil {
			return types.Internal(err)
		}
		if language == nil {
			return types.Validation("language %d does not exist", languageID)
		}
	}
	return nil
}
