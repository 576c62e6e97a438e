package services

import (
	"context"
	"testing"

	"gorm.io/gorm"

	"github.com/voxscribe/transcription-backend/internal/data/repos"
	"github.com/voxscribe/transcription-backend/internal/data/repos/testutil"
	types "github.com/voxscribe/transcription-backend/internal/domain"
)

func newUserFixture(t *testing.T, tx *gorm.DB) UserService {
	t.Helper()
	log := testutil.Logger(t)
	userRepo := repos.NewUserRepo(tx, log)
	languageRepo := repos.NewLanguageRepo(tx, log)
	accessPolicy := NewAccessPolicy(log, userRepo)
	return NewUserService(tx, log, userRepo, languageRepo, accessPolicy)
}

func TestUserCreateWithLanguages(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()

	userService := newUserFixture(t, tx)
	admin := testutil.SeedUser(t, ctx, tx, types.RoleAdmin)
	english := testutil.SeedLanguage(t, ctx, tx, "en")
	french := testutil.SeedLanguage(t, ctx, tx, "fr")

	created, err := userService.Create(actorContext(admin), UserCreate{
		Username:    "translator-1",
		Password:    "secret",
		LanguageIDs: []uint{english.ID, french.ID},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.Role != types.RoleEditor {
		t.Errorf("default role = %v, want editor", created.Role)
	}
	if len(created.Languages) != 2 {
		t.Errorf("languages = %d, want 2", len(created.Languages))
	}
	if created.PasswordHash == "secret" {
		t.Error("password stored in plaintext")
	}
}

func TestUserCreateConflicts(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()

	userService := newUserFixture(t, tx)
	admin := testutil.SeedUser(t, ctx, tx, types.RoleAdmin)
	existing := testutil.SeedUser(t, ctx, tx, types.RoleEditor)

	_, err := userService.Create(actorContext(admin), UserCreate{
		Username: existing.Username,
		Password: "secret",
	})
	if types.KindOf(err) != types.KindConflict {
		t.Errorf("kind = %v, want conflict", types.KindOf(err))
	}

	_, err = userService.Create(actorContext(admin), UserCreate{
		Username:    "lang-check",
		Password:    "secret",
		LanguageIDs: []uint{999999},
	})
	if types.KindOf(err) != types.KindValidation {
		t.Errorf("kind = %v, want validation", types.KindOf(err))
	}
}

func TestUserAdminGate(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()

	userService := newUserFixture(t, tx)
	manager := testutil.SeedUser(t, ctx, tx, types.RoleManager)

	if _, err := userService.List(actorContext(manager)); types.KindOf(err) != types.KindPermissionDenied {
		t.Errorf("list kind = %v, want permission_denied", types.KindOf(err))
	}
	if _, err := userService.Create(actorContext(manager), UserCreate{Username: "x", Password: "y"}); types.KindOf(err) != types.KindPermissionDenied {
		t.Errorf("create kind = %v, want permission_denied", types.KindOf(err))
	}
}

func TestUserUpdateReplacesLanguages(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()

	userService := newUserFixture(t, tx)
	admin := testutil.SeedUser(t, ctx, tx, types.RoleAdmin)
	editor := testutil.SeedUser(t, ctx, tx, types.RoleEditor)
	english := testutil.SeedLanguage(t, ctx, tx, "en")
	french := testutil.SeedLanguage(t, ctx, tx, "fr")
	testutil.AssignLanguage(t, ctx, tx, editor.ID, english.ID)

	languageIDs := []uint{french.ID}
	updated, err := userService.Update(actorContext(admin), editor.ID, UserUpdate{
		LanguageIDs: &languageIDs,
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if len(updated.Languages) != 1 || updated.Languages[0].ID != french.ID {
		t.Errorf("languages = %+v, want only french", updated.Languages)
	}
}

func TestUserSelfProtection(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()

	userService := newUserFixture(t, tx)
	admin := testutil.SeedUser(t, ctx, tx, types.RoleAdmin)

	if err := userService.Deactivate(actorContext(admin), admin.ID); types.KindOf(err) != types.KindValidation {
		t.Errorf("self deactivate kind = %v, want validation", types.KindOf(err))
	}
	if err := userService.Delete(actorContext(admin), admin.ID); types.KindOf(err) != types.KindValidation {
		t.Errorf("self delete kind = %v, want validation", types.KindOf(err))
	}
}

func TestUserMe(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()

	userService := newUserFixture(t, tx)
	editor := testutil.SeedUser(t, ctx, tx, types.RoleEditor)
	english := testutil.SeedLanguage(t, ctx, tx, "en")
	testutil.AssignLanguage(t, ctx, tx, editor.ID, english.ID)

	me, err := userService.Me(actorContext(editor))
	if err != nil {
		t.Fatalf("me: %v", err)
	}
	if me.ID != editor.ID {
		t.Errorf("me = %v", me.ID)
	}
	if len(me.Languages) != 1 {
		t.Errorf("languages = %d, want 1", len(me.Languages))
	}
}
