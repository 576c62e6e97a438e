package services

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/voxscribe/transcription-backend/internal/data/repos"
	types "github.com/voxscribe/transcription-backend/internal/domain"
	"github.com/voxscribe/transcription-backend/internal/platform/logger"
)

// StatsService owns the derived project counters. Counters are never edited
// by hand: every code path that creates, updates or deletes a segment calls
// Recompute before returning, so callers can read fresh counters immediately.
type StatsService interface {
	// Recompute re-derives the counters from the live segment rows and
	// writes them back. Idempotent: two calls with no intervening segment
	// mutation produce identical counters.
	Recompute(ctx context.Context, tx *gorm.DB, projectID uint) (*types.Project, error)
}

type statsService struct {
	db          *gorm.DB
	log         *logger.Logger
	projectRepo repos.ProjectRepo
	segmentRepo repos.SegmentRepo
}

func NewStatsService(db *gorm.DB, baseLog *logger.Logger, projectRepo repos.ProjectRepo, segmentRepo repos.SegmentRepo) StatsService {
	serviceLog := baseLog.With("service", "StatsService")
	return &statsService{db: db, log: serviceLog, projectRepo: projectRepo, segmentRepo: segmentRepo}
}

func (ss *statsService) Recompute(ctx context.Context, tx *gorm.DB, projectID uint) (*types.Project, error) {
	project, err := ss.projectRepo.GetByID(ctx, tx, projectID)
	if err != nil {
		return nil, types.Internal(err)
	}
	if project == nil {
		return nil, types.NotFound("project not found")
	}

	segments, err := ss.segmentRepo.ListByProject(ctx, tx, projectID)
	if err != nil {
		return nil, types.Internal(err)
	}

	var (
		totalDuration float64
		transcribed   int
		translated    int
	)
	for _, segment := range segments {
		totalDuration += segment.Duration
		// Legacy rows may carry text without the flag; either counts.
		if segment.IsTranscribed || hasText(segment.Transcription) {
			transcribed++
		}
		if segment.IsTranslated || hasText(segment.Translation) {
			translated++
		}
	}

	if err := ss.projectRepo.Update(ctx, tx, projectID, map[string]any{
		"duration":             totalDuration,
		"total_segments":       len(segments),
		"transcribed_segments": transcribed,
		"translated_segments":  translated,
	}); err != nil {
		return nil, types.Internal(err)
	}

	updated, err := ss.projectRepo.GetByID(ctx, tx, projectID)
	if err != nil {
		return nil, types.Internal(err)
	}
	return updated, nil
}

func hasText(s *string) bool {
	return s != nil && strings.TrimSpace(*s) != ""
}
