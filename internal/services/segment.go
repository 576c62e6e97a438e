package services

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/voxscribe/transcription-backend/internal/data/repos"
	types "github.com/voxscribe/transcription-backend/internal/domain"
	"github.com/voxscribe/transcription-backend/internal/platform/logger"
)

// SegmentUpdate is a field patch; nil pointers leave fields untouched.
type SegmentUpdate struct {
	Transcription *string  `json:"transcription"`
	Translation   *string  `json:"translation"`
	IsTranscribed *bool    `json:"isTranscribed"`
	IsTranslated  *bool    `json:"isTranslated"`
	IsApproved    *bool    `json:"isApproved"`
	StartTime     *float64 `json:"startTime"`
	EndTime       *float64 `json:"endTime"`
}

type SegmentService interface {
	GetByID(ctx context.Context, segmentID uint) (*types.Segment, error)
	ListByProject(ctx context.Context, projectID uint) ([]*types.Segment, error)
	ListByFolder(ctx context.Context, folderID uint) ([]*types.Segment, error)
	Update(ctx context.Context, segmentID uint, patch SegmentUpdate) (*types.Segment, error)
	Delete(ctx context.Context, segmentID uint) error
}

type segmentService struct {
	db           *gorm.DB
	log          *logger.Logger
	userRepo     repos.UserRepo
	projectRepo  repos.ProjectRepo
	folderRepo   repos.FolderRepo
	segmentRepo  repos.SegmentRepo
	accessPolicy AccessPolicy
	statsService StatsService
}

func NewSegmentService(db *gorm.DB, baseLog *logger.Logger, userRepo repos.UserRepo, projectRepo repos.ProjectRepo, folderRepo repos.FolderRepo, segmentRepo repos.SegmentRepo, accessPolicy AccessPolicy, statsService StatsService) SegmentService {
	serviceLog := baseLog.With("service", "SegmentService")
	return &segmentService{
		db:           db,
		log:          serviceLog,
		userRepo:     userRepo,
		projectRepo:  projectRepo,
		folderRepo:   folderRepo,
		segmentRepo:  segmentRepo,
		accessPolicy: accessPolicy,
		statsService: statsService,
	}
}

func (ss *segmentService) authorizeSegmentProject(ctx context.Context, tx *gorm.DB, actor *types.User, segment *types.Segment, level AccessLevel) error {
	if segment == nil {
		return types.NotFound("segment not found")
	}
	project, err := ss.projectRepo.GetByID(ctx, tx, segment.ProjectID)
	if err != nil {
		return types.Internal(err)
	}
	return ss.accessPolicy.AuthorizeProject(ctx, tx, actor, project, level)
}

func (ss *segmentService) GetByID(ctx context.Context, segmentID uint) (*types.Segment, error) {
	actor, err := requireActor(ctx, nil, ss.userRepo)
	if err != nil {
		return nil, err
	}
	segment, err := ss.segmentRepo.GetByID(ctx, nil, segmentID)
	if err != nil {
		return nil, types.Internal(err)
	}
	if err := ss.authorizeSegmentProject(ctx, nil, actor, segment, LevelRead); err != nil {
		return nil, err
	}
	return segment, nil
}

func (ss *segmentService) ListByProject(ctx context.Context, projectID uint) ([]*types.Segment, error) {
	actor, err := requireActor(ctx, nil, ss.userRepo)
	if err != nil {
		return nil, err
	}
	project, err := ss.projectRepo.GetByID(ctx, nil, projectID)
	if err != nil {
		return nil, types.Internal(err)
	}
	if err := ss.accessPolicy.AuthorizeProject(ctx, nil, actor, project, LevelRead); err != nil {
		return nil, err
	}
	segments, err := ss.segmentRepo.ListByProject(ctx, nil, projectID)
	if err != nil {
		return nil, types.Internal(err)
	}
	return segments, nil
}

func (ss *segmentService) ListByFolder(ctx context.Context, folderID uint) ([]*types.Segment, error) {
	actor, err := requireActor(ctx, nil, ss.userRepo)
	if err != nil {
		return nil, err
	}
	folder, err := ss.folderRepo.GetByID(ctx, nil, folderID)
	if err != nil {
		return nil, types.Internal(err)
	}
	if folder == nil {
		return nil, types.NotFound("folder not found")
	}
	project, err := ss.projectRepo.GetByID(ctx, nil, folder.ProjectID)
	if err != nil {
		return nil, types.Internal(err)
	}
	if err := ss.accessPolicy.AuthorizeProject(ctx, nil, actor, project, LevelRead); err != nil {
		return nil, err
	}
	segments, err := ss.segmentRepo.ListByFolder(ctx, nil, folderID)
	if err != nil {
		return nil, types.Internal(err)
	}
	return segments, nil
}

func (ss *segmentService) Update(ctx context.Context, segmentID uint, patch SegmentUpdate) (*types.Segment, error) {
	var updated *types.Segment
	err := ss.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		actor, err := requireActor(ctx, tx, ss.userRepo)
		if err != nil {
			return err
		}
		segment, err := ss.segmentRepo.GetByID(ctx, tx, segmentID)
		if err != nil {
			return types.Internal(err)
		}
		if err := ss.authorizeSegmentProject(ctx, tx, actor, segment, LevelWrite); err != nil {
			return err
		}

		fields := map[string]any{}
		if patch.StartTime != nil {
			fields["start_time"] = *patch.StartTime
		}
		if patch.EndTime != nil {
			fields["end_time"] = *patch.EndTime
		}
		startTime := segment.StartTime
		if patch.StartTime != nil {
			startTime = *patch.StartTime
		}
		endTime := segment.EndTime
		if patch.EndTime != nil {
			endTime = *patch.EndTime
		}
		if endTime < startTime {
			return types.Validation("end time must not precede start time")
		}

		if patch.Transcription != nil {
			fields["transcription"] = *patch.Transcription
		}
		if patch.Translation != nil {
			fields["translation"] = *patch.Translation
		}
		if patch.IsApproved != nil {
			fields["is_approved"] = *patch.IsApproved
		}

		now := time.Now().UTC()
		if patch.IsTranscribed != nil && *patch.IsTranscribed != segment.IsTranscribed {
			fields["is_transcribed"] = *patch.IsTranscribed
			if *patch.IsTranscribed {
				fields["transcribed_by"] = actor.ID
				fields["transcribed_at"] = now
			} else {
				fields["transcribed_by"] = nil
				fields["transcribed_at"] = nil
			}
		}
		if patch.IsTranslated != nil && *patch.IsTranslated != segment.IsTranslated {
			fields["is_translated"] = *patch.IsTranslated
			if *patch.IsTranslated {
				fields["translated_by"] = actor.ID
				fields["translated_at"] = now
			} else {
				fields["translated_by"] = nil
				fields["translated_at"] = nil
			}
		}

		if err := ss.segmentRepo.Update(ctx, tx, segmentID, fields); err != nil {
			return types.Internal(err)
		}
		if _, err := ss.statsService.Recompute(ctx, tx, segment.ProjectID); err != nil {
			return err
		}

		updated, err = ss.segmentRepo.GetByID(ctx, tx, segmentID)
		if err != nil {
			return types.Internal(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (ss *segmentService) Delete(ctx context.Context, segmentID uint) error {
	return ss.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		actor, err := requireActor(ctx, tx, ss.userRepo)
		if err != nil {
			return err
		}
		segment, err := ss.segmentRepo.GetByID(ctx, tx, segmentID)
		if err != nil {
			return types.Internal(err)
		}
		if err := ss.authorizeSegmentProject(ctx, tx, actor, segment, LevelManage); err != nil {
			return err
		}
		if err := ss.segmentRepo.Delete(ctx, tx, segmentID); err != nil {
			return types.Internal(err)
		}
		if _, err := ss.statsService.Recompute(ctx, tx, segment.ProjectID); err != nil {
			return err
		}
		return nil
	})
}
