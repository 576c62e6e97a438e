package services

import (
	"context"
	"math"
	"testing"

	"github.com/voxscribe/transcription-backend/internal/data/repos"
	"github.com/voxscribe/transcription-backend/internal/data/repos/testutil"
	types "github.com/voxscribe/transcription-backend/internal/domain"
)

func TestRecomputeCountsAndDuration(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	log := testutil.Logger(t)
	ctx := context.Background()

	projectRepo := repos.NewProjectRepo(tx, log)
	segmentRepo := repos.NewSegmentRepo(tx, log)
	statsService := NewStatsService(tx, log, projectRepo, segmentRepo)

	owner := testutil.SeedUser(t, ctx, tx, types.RoleAdmin)
	language := testutil.SeedLanguage(t, ctx, tx, "en")
	project := testutil.SeedProject(t, ctx, tx, owner.ID, language.ID)
	folder := testutil.SeedFolder(t, ctx, tx, project.ID)

	s1 := testutil.SeedSegment(t, ctx, tx, project.ID, folder.ID, 1, 10.5)
	s2 := testutil.SeedSegment(t, ctx, tx, project.ID, folder.ID, 2, 20.25)
	testutil.SeedSegment(t, ctx, tx, project.ID, folder.ID, 3, 4.25)

	// One segment flagged, one with text only: both count.
	if err := segmentRepo.Update(ctx, tx, s1.ID, map[string]any{"is_transcribed": true}); err != nil {
		t.Fatalf("flag segment: %v", err)
	}
	if err := segmentRepo.Update(ctx, tx, s2.ID, map[string]any{"transcription": "  hello  ", "translation": "bonjour"}); err != nil {
		t.Fatalf("text segment: %v", err)
	}

	updated, err := statsService.Recompute(ctx, tx, project.ID)
	if err != nil {
		t.Fatalf("recompute: %v", err)
	}

	if updated.TotalSegments != 3 {
		t.Errorf("total = %d, want 3", updated.TotalSegments)
	}
	if updated.TranscribedSegments != 2 {
		t.Errorf("transcribed = %d, want 2", updated.TranscribedSegments)
	}
	if updated.TranslatedSegments != 1 {
		t.Errorf("translated = %d, want 1", updated.TranslatedSegments)
	}
	if math.Abs(updated.Duration-35.0) > 0.001 {
		t.Errorf("duration = %v, want 35.0", updated.Duration)
	}
}

func TestRecomputeIgnoresWhitespaceText(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	log := testutil.Logger(t)
	ctx := context.Background()

	projectRepo := repos.NewProjectRepo(tx, log)
	segmentRepo := repos.NewSegmentRepo(tx, log)
	statsService := NewStatsService(tx, log, projectRepo, segmentRepo)

	owner := testutil.SeedUser(t, ctx, tx, types.RoleAdmin)
	language := testutil.SeedLanguage(t, ctx, tx, "en")
	project := testutil.SeedProject(t, ctx, tx, owner.ID, language.ID)
	folder := testutil.SeedFolder(t, ctx, tx, project.ID)

	s := testutil.SeedSegment(t, ctx, tx, project.ID, folder.ID, 1, 5)
	if err := segmentRepo.Update(ctx, tx, s.ID, map[string]any{"transcription": "   \n\t "}); err != nil {
		t.Fatalf("update segment: %v", err)
	}

	updated, err := statsService.Recompute(ctx, tx, project.ID)
	if err != nil {
		t.Fatalf("recompute: %v", err)
	}
	if updated.TranscribedSegments != 0 {
		t.Errorf("whitespace-only transcription counted: %d", updated.TranscribedSegments)
	}
}

func TestRecomputeIdempotent(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	log := testutil.Logger(t)
	ctx := context.Background()

	projectRepo := repos.NewProjectRepo(tx, log)
	segmentRepo := repos.NewSegmentRepo(tx, log)
	statsService := NewStatsService(tx, log, projectRepo, segmentRepo)

	owner := testutil.SeedUser(t, ctx, tx, types.RoleAdmin)
	language := testutil.SeedLanguage(t, ctx, tx, "en")
	project := testutil.SeedProject(t, ctx, tx, owner.ID, language.ID)
	folder := testutil.SeedFolder(t, ctx, tx, project.ID)
	testutil.SeedSegment(t, ctx, tx, project.ID, folder.ID, 1, 7.5)

	first, err := statsService.Recompute(ctx, tx, project.ID)
	if err != nil {
		t.Fatalf("first recompute: %v", err)
	}
	second, err := statsService.Recompute(ctx, tx, project.ID)
	if err != nil {
		t.Fatalf("second recompute: %v", err)
	}
	if first.TotalSegments != second.TotalSegments ||
		first.TranscribedSegments != second.TranscribedSegments ||
		first.TranslatedSegments != second.TranslatedSegments ||
		first.Duration != second.Duration {
		t.Errorf("recompute not idempotent: %+v vs %+v", first, second)
	}
}

func TestRecomputeMissingProject(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	log := testutil.Logger(t)

	projectRepo := repos.NewProjectRepo(tx, log)
	segmentRepo := repos.NewSegmentRepo(tx, log)
	statsService := NewStatsService(tx, log, projectRepo, segmentRepo)

	_, err := statsService.Recompute(context.Background(), tx, 999999)
	if types.KindOf(err) != types.KindNotFound {
		t.Errorf("kind = %v, want not_found", types.KindOf(err))
	}
}
