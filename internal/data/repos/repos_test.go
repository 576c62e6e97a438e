package repos_test

import (
	"context"
	"testing"

	"github.com/voxscribe/transcription-backend/internal/data/repos"
	"github.com/voxscribe/transcription-backend/internal/data/repos/testutil"
	types "github.com/voxscribe/transcription-backend/internal/domain"
)

func TestUserRepoReplaceAssignedLanguages(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	log := testutil.Logger(t)
	ctx := context.Background()

	userRepo := repos.NewUserRepo(tx, log)
	user := testutil.SeedUser(t, ctx, tx, types.RoleEditor)
	english := testutil.SeedLanguage(t, ctx, tx, "en")
	french := testutil.SeedLanguage(t, ctx, tx, "fr")
	german := testutil.SeedLanguage(t, ctx, tx, "de")

	if err := userRepo.ReplaceAssignedLanguages(ctx, tx, user.ID, []uint{english.ID, french.ID}); err != nil {
		t.Fatalf("assign: %v", err)
	}
	languages, err := userRepo.AssignedLanguages(ctx, tx, user.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(languages) != 2 {
		t.Fatalf("assigned = %d, want 2", len(languages))
	}

	// Replace swaps the full set.
	if err := userRepo.ReplaceAssignedLanguages(ctx, tx, user.ID, []uint{german.ID}); err != nil {
		t.Fatalf("replace: %v", err)
	}
	languages, err = userRepo.AssignedLanguages(ctx, tx, user.ID)
	if err != nil {
		t.Fatalf("relist: %v", err)
	}
	if len(languages) != 1 || languages[0].ID != german.ID {
		t.Errorf("assigned = %+v, want only german", languages)
	}

	// Empty set clears everything.
	if err := userRepo.ReplaceAssignedLanguages(ctx, tx, user.ID, nil); err != nil {
		t.Fatalf("clear: %v", err)
	}
	languages, _ = userRepo.AssignedLanguages(ctx, tx, user.ID)
	if len(languages) != 0 {
		t.Errorf("assigned = %d after clear, want 0", len(languages))
	}
}

func TestUserRepoGetMissingReturnsNil(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	log := testutil.Logger(t)
	ctx := context.Background()

	userRepo := repos.NewUserRepo(tx, log)
	user, err := userRepo.GetByUsername(ctx, tx, "does-not-exist")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if user != nil {
		t.Errorf("got %+v, want nil", user)
	}
}

func TestProjectRepoListFilter(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	log := testutil.Logger(t)
	ctx := context.Background()

	projectRepo := repos.NewProjectRepo(tx, log)
	owner := testutil.SeedUser(t, ctx, tx, types.RoleAdmin)
	english := testutil.SeedLanguage(t, ctx, tx, "en")
	french := testutil.SeedLanguage(t, ctx, tx, "fr")

	pEN := testutil.SeedProject(t, ctx, tx, owner.ID, english.ID)
	testutil.SeedProject(t, ctx, tx, owner.ID, french.ID)

	all, err := projectRepo.List(ctx, tx, repos.ProjectFilter{})
	if err != nil {
		t.Fatalf("list all: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("all = %d, want 2", len(all))
	}

	scoped, err := projectRepo.List(ctx, tx, repos.ProjectFilter{LanguageIDs: []uint{english.ID}})
	if err != nil {
		t.Fatalf("list scoped: %v", err)
	}
	if len(scoped) != 1 || scoped[0].ID != pEN.ID {
		t.Errorf("scoped = %+v, want only %d", scoped, pEN.ID)
	}
}

func TestSegmentRepoOrdering(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	log := testutil.Logger(t)
	ctx := context.Background()

	segmentRepo := repos.NewSegmentRepo(tx, log)
	owner := testutil.SeedUser(t, ctx, tx, types.RoleAdmin)
	language := testutil.SeedLanguage(t, ctx, tx, "en")
	project := testutil.SeedProject(t, ctx, tx, owner.ID, language.ID)
	folder := testutil.SeedFolder(t, ctx, tx, project.ID)

	// Insert out of order; listing sorts by segment_number.
	testutil.SeedSegment(t, ctx, tx, project.ID, folder.ID, 3, 1)
	testutil.SeedSegment(t, ctx, tx, project.ID, folder.ID, 1, 1)
	testutil.SeedSegment(t, ctx, tx, project.ID, folder.ID, 2, 1)

	segments, err := segmentRepo.ListByProject(ctx, tx, project.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	for i, segment := range segments {
		if segment.SegmentNumber != i+1 {
			t.Errorf("position %d has number %d", i, segment.SegmentNumber)
		}
	}
}
