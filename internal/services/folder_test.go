package services

import (
	"context"
	"testing"

	"gorm.io/gorm"

	"github.com/voxscribe/transcription-backend/internal/data/repos"
	"github.com/voxscribe/transcription-backend/internal/data/repos/testutil"
	types "github.com/voxscribe/transcription-backend/internal/domain"
)

func newFolderFixture(t *testing.T, tx *gorm.DB) FolderService {
	t.Helper()
	log := testutil.Logger(t)

	userRepo := repos.NewUserRepo(tx, log)
	projectRepo := repos.NewProjectRepo(tx, log)
	folderRepo := repos.NewFolderRepo(tx, log)
	segmentRepo := repos.NewSegmentRepo(tx, log)
	accessPolicy := NewAccessPolicy(log, userRepo)
	statsService := NewStatsService(tx, log, projectRepo, segmentRepo)

	return NewFolderService(tx, log, userRepo, projectRepo, folderRepo, segmentRepo, accessPolicy, statsService)
}

func TestFolderCreateByAssignedEditor(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()

	folderService := newFolderFixture(t, tx)

	admin := testutil.SeedUser(t, ctx, tx, types.RoleAdmin)
	editor := testutil.SeedUser(t, ctx, tx, types.RoleEditor)
	language := testutil.SeedLanguage(t, ctx, tx, "en")
	testutil.AssignLanguage(t, ctx, tx, editor.ID, language.ID)
	project := testutil.SeedProject(t, ctx, tx, admin.ID, language.ID)

	folder, err := folderService.Create(actorContext(editor), FolderCreate{
		ProjectID:   project.ID,
		Name:        "Chapter 1",
		Description: testutil.PtrString("first chapter"),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if folder.ID == 0 || folder.ProjectID != project.ID {
		t.Errorf("folder = %+v", folder)
	}
}

func TestFolderCreateDeniedOutsideLanguage(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()

	folderService := newFolderFixture(t, tx)

	admin := testutil.SeedUser(t, ctx, tx, types.RoleAdmin)
	editor := testutil.SeedUser(t, ctx, tx, types.RoleEditor)
	french := testutil.SeedLanguage(t, ctx, tx, "fr")
	project := testutil.SeedProject(t, ctx, tx, admin.ID, french.ID)

	_, err := folderService.Create(actorContext(editor), FolderCreate{
		ProjectID: project.ID,
		Name:      "nope",
	})
	if types.KindOf(err) != types.KindPermissionDenied {
		t.Errorf("kind = %v, want permission_denied", types.KindOf(err))
	}
}

func TestFolderDeleteRemovesSegmentsAndRecomputes(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	log := testutil.Logger(t)
	ctx := context.Background()

	folderService := newFolderFixture(t, tx)

	admin := testutil.SeedUser(t, ctx, tx, types.RoleAdmin)
	language := testutil.SeedLanguage(t, ctx, tx, "en")
	project := testutil.SeedProject(t, ctx, tx, admin.ID, language.ID)
	keep := testutil.SeedFolder(t, ctx, tx, project.ID)
	doomed := testutil.SeedFolder(t, ctx, tx, project.ID)
	testutil.SeedSegment(t, ctx, tx, project.ID, keep.ID, 1, 5)
	testutil.SeedSegment(t, ctx, tx, project.ID, doomed.ID, 2, 7)

	if err := folderService.Delete(actorContext(admin), doomed.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	segmentRepo := repos.NewSegmentRepo(tx, log)
	if segments, _ := segmentRepo.ListByFolder(ctx, tx, doomed.ID); len(segments) != 0 {
		t.Errorf("segments remain in deleted folder: %d", len(segments))
	}

	projectRepo := repos.NewProjectRepo(tx, log)
	reloaded, err := projectRepo.GetByID(ctx, tx, project.ID)
	if err != nil || reloaded == nil {
		t.Fatalf("reload project: %v", err)
	}
	if reloaded.TotalSegments != 1 {
		t.Errorf("total = %d after folder delete, want 1", reloaded.TotalSegments)
	}
}

func TestFolderGetMissing(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()

	folderService := newFolderFixture(t, tx)
	editor := testutil.SeedUser(t, ctx, tx, types.RoleEditor)

	_, err := folderService.GetByID(actorContext(editor), 999999)
	if types.KindOf(err) != types.KindNotFound {
		t.Errorf("kind = %v, want not_found", types.KindOf(err))
	}
}
