package services

import (
	"context"
	"encoding/json"
	"testing"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/voxscribe/transcription-backend/internal/data/repos"
	"github.com/voxscribe/transcription-backend/internal/data/repos/testutil"
	types "github.com/voxscribe/transcription-backend/internal/domain"
)

func newProjectFixture(t *testing.T, tx *gorm.DB) ProjectService {
	t.Helper()
	log := testutil.Logger(t)

	userRepo := repos.NewUserRepo(tx, log)
	projectRepo := repos.NewProjectRepo(tx, log)
	segmentRepo := repos.NewSegmentRepo(tx, log)
	accessPolicy := NewAccessPolicy(log, userRepo)
	statsService := NewStatsService(tx, log, projectRepo, segmentRepo)

	return NewProjectService(tx, log, userRepo, projectRepo, accessPolicy, statsService)
}

func TestProjectListScopedByLanguage(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()

	projectService := newProjectFixture(t, tx)

	admin := testutil.SeedUser(t, ctx, tx, types.RoleAdmin)
	editor := testutil.SeedUser(t, ctx, tx, types.RoleEditor)
	english := testutil.SeedLanguage(t, ctx, tx, "en")
	french := testutil.SeedLanguage(t, ctx, tx, "fr")
	testutil.AssignLanguage(t, ctx, tx, editor.ID, english.ID)

	inScope := testutil.SeedProject(t, ctx, tx, admin.ID, english.ID)
	testutil.SeedProject(t, ctx, tx, admin.ID, french.ID)

	// Admin sees both.
	all, err := projectService.List(actorContext(admin))
	if err != nil {
		t.Fatalf("admin list: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("admin sees %d projects, want 2", len(all))
	}

	// Editor sees only the assigned language.
	scoped, err := projectService.List(actorContext(editor))
	if err != nil {
		t.Fatalf("editor list: %v", err)
	}
	if len(scoped) != 1 || scoped[0].ID != inScope.ID {
		t.Errorf("editor list = %+v, want only project %d", scoped, inScope.ID)
	}
}

func TestProjectListEmptyForUnassignedEditor(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()

	projectService := newProjectFixture(t, tx)

	admin := testutil.SeedUser(t, ctx, tx, types.RoleAdmin)
	editor := testutil.SeedUser(t, ctx, tx, types.RoleEditor)
	language := testutil.SeedLanguage(t, ctx, tx, "en")
	testutil.SeedProject(t, ctx, tx, admin.ID, language.ID)

	projects, err := projectService.List(actorContext(editor))
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(projects) != 0 {
		t.Errorf("unassigned editor sees %d projects, want 0", len(projects))
	}
}

func TestProjectGetNotFoundBeforeForbidden(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()

	projectService := newProjectFixture(t, tx)
	editor := testutil.SeedUser(t, ctx, tx, types.RoleEditor)

	_, err := projectService.GetByID(actorContext(editor), 999999)
	if types.KindOf(err) != types.KindNotFound {
		t.Errorf("kind = %v, want not_found", types.KindOf(err))
	}
}

func TestProjectUpdateValidatesStatus(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()

	projectService := newProjectFixture(t, tx)

	admin := testutil.SeedUser(t, ctx, tx, types.RoleAdmin)
	language := testutil.SeedLanguage(t, ctx, tx, "en")
	project := testutil.SeedProject(t, ctx, tx, admin.ID, language.ID)

	bogus := types.ProjectStatus("archived")
	_, err := projectService.Update(actorContext(admin), project.ID, ProjectUpdate{Status: &bogus})
	if types.KindOf(err) != types.KindValidation {
		t.Errorf("kind = %v, want validation", types.KindOf(err))
	}

	done := types.ProjectStatusCompleted
	updated, err := projectService.Update(actorContext(admin), project.ID, ProjectUpdate{Status: &done})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Status != types.ProjectStatusCompleted {
		t.Errorf("status = %v", updated.Status)
	}
}

func TestProjectUpdateMetadata(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	log := testutil.Logger(t)
	ctx := context.Background()

	projectService := newProjectFixture(t, tx)

	admin := testutil.SeedUser(t, ctx, tx, types.RoleAdmin)
	language := testutil.SeedLanguage(t, ctx, tx, "en")
	project := testutil.SeedProject(t, ctx, tx, admin.ID, language.ID)

	updated, err := projectService.Update(actorContext(admin), project.ID, ProjectUpdate{
		Metadata: datatypes.JSON(`{"source":"field-recorder","takes":3}`),
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if len(updated.Metadata) == 0 {
		t.Fatal("metadata not persisted")
	}

	var decoded map[string]any
	if err := json.Unmarshal(updated.Metadata, &decoded); err != nil {
		t.Fatalf("decode metadata: %v", err)
	}
	if decoded["source"] != "field-recorder" {
		t.Errorf("metadata = %v", decoded)
	}

	// A patch without metadata leaves the stored document alone.
	name := "renamed"
	if _, err := projectService.Update(actorContext(admin), project.ID, ProjectUpdate{Name: &name}); err != nil {
		t.Fatalf("rename: %v", err)
	}
	projectRepo := repos.NewProjectRepo(tx, log)
	reloaded, err := projectRepo.GetByID(ctx, tx, project.ID)
	if err != nil || reloaded == nil {
		t.Fatalf("reload: %v", err)
	}
	if len(reloaded.Metadata) == 0 {
		t.Error("metadata lost on unrelated update")
	}
}

func TestProjectDeleteCascades(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	log := testutil.Logger(t)
	ctx := context.Background()

	projectService := newProjectFixture(t, tx)

	admin := testutil.SeedUser(t, ctx, tx, types.RoleAdmin)
	language := testutil.SeedLanguage(t, ctx, tx, "en")
	project := testutil.SeedProject(t, ctx, tx, admin.ID, language.ID)
	folder := testutil.SeedFolder(t, ctx, tx, project.ID)
	testutil.SeedSegment(t, ctx, tx, project.ID, folder.ID, 1, 5)

	if err := projectService.Delete(actorContext(admin), project.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	projectRepo := repos.NewProjectRepo(tx, log)
	if got, err := projectRepo.GetByID(ctx, tx, project.ID); err != nil || got != nil {
		t.Errorf("project still present: %+v (%v)", got, err)
	}
	folderRepo := repos.NewFolderRepo(tx, log)
	if folders, _ := folderRepo.ListByProject(ctx, tx, project.ID); len(folders) != 0 {
		t.Errorf("folders remain: %d", len(folders))
	}
	segmentRepo := repos.NewSegmentRepo(tx, log)
	if segments, _ := segmentRepo.ListByProject(ctx, tx, project.ID); len(segments) != 0 {
		t.Errorf("segments remain: %d", len(segments))
	}
}

func TestProjectManageDeniedToEditor(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()

	projectService := newProjectFixture(t, tx)

	admin := testutil.SeedUser(t, ctx, tx, types.RoleAdmin)
	editor := testutil.SeedUser(t, ctx, tx, types.RoleEditor)
	language := testutil.SeedLanguage(t, ctx, tx, "en")
	testutil.AssignLanguage(t, ctx, tx, editor.ID, language.ID)
	project := testutil.SeedProject(t, ctx, tx, admin.ID, language.ID)

	name := "renamed"
	if _, err := projectService.Update(actorContext(editor), project.ID, ProjectUpdate{Name: &name}); types.KindOf(err) != types.KindPermissionDenied {
		t.Errorf("update kind = %v, want permission_denied", types.KindOf(err))
	}
	if err := projectService.Delete(actorContext(editor), project.ID); types.KindOf(err) != types.KindPermissionDenied {
		t.Errorf("delete kind = %v, want permission_denied", types.KindOf(err))
	}
	if _, err := projectService.RecalculateStats(actorContext(editor), project.ID); types.KindOf(err) != types.KindPermissionDenied {
		t.Errorf("recalc kind = %v, want permission_denied", types.KindOf(err))
	}
}
