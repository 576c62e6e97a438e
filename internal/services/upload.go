package services

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"gorm.io/gorm"

	"github.com/voxscribe/transcription-backend/internal/data/repos"
	types "github.com/voxscribe/transcription-backend/internal/domain"
	"github.com/voxscribe/transcription-backend/internal/media"
	"github.com/voxscribe/transcription-backend/internal/platform/logger"
	"github.com/voxscribe/transcription-backend/internal/storage"
)

// BatchUploadFile is one uploaded file, in request order.
type BatchUploadFile struct {
	Filename string
	Data     []byte
}

type UploadSummary struct {
	Message         string `json:"message"`
	FilesReceived   int    `json:"filesReceived"`
	AudioFiles      int    `json:"audioFiles"`
	SegmentsCreated int    `json:"segmentsCreated"`
	ProjectID       *uint  `json:"projectId,omitempty"`
	FolderID        *uint  `json:"folderId,omitempty"`
}

const nonAudioSlotSeconds = 10.0

// UploadService turns an uploaded batch into one project, one folder and N
// segments. Segment numbering is a strict function of input order. A batch
// never fails on a single bad file: storage or metadata trouble degrades to
// skipping that file or estimating, respectively.
type UploadService interface {
	ProcessBatch(ctx context.Context, files []BatchUploadFile, projectName *string, languageID *uint) (*UploadSummary, error)
}

type uploadService struct {
	db                *gorm.DB
	log               *logger.Logger
	userRepo          repos.UserRepo
	languageRepo      repos.LanguageRepo
	projectRepo       repos.ProjectRepo
	folderRepo        repos.FolderRepo
	segmentRepo       repos.SegmentRepo
	statsService      StatsService
	estimator         *media.Estimator
	blobStore         storage.BlobStore
	defaultLanguageID uint // 0 = unset; fall back to first active language
}

func NewUploadService(
	db *gorm.DB,
	baseLog *logger.Logger,
	userRepo repos.UserRepo,
	languageRepo repos.LanguageRepo,
	projectRepo repos.ProjectRepo,
	folderRepo repos.FolderRepo,
	segmentRepo repos.SegmentRepo,
	statsService StatsService,
	estimator *media.Estimator,
	blobStore storage.BlobStore,
	defaultLanguageID uint,
) UploadService {
	serviceLog := baseLog.With("service", "UploadService")
	return &uploadService{
		db:                db,
		log:               serviceLog,
		userRepo:          userRepo,
		languageRepo:      languageRepo,
		projectRepo:       projectRepo,
		folderRepo:        folderRepo,
		segmentRepo:       segmentRepo,
		statsService:      statsService,
		estimator:         estimator,
		blobStore:         blobStore,
		defaultLanguageID: defaultLanguageID,
	}
}

func (us *uploadService) ProcessBatch(ctx context.Context, files []BatchUploadFile, projectName *string, languageID *uint) (*UploadSummary, error) {
	if len(files) == 0 {
		return &UploadSummary{Message: "No files provided"}, nil
	}

	var summary *UploadSummary
	err := us.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		actor, err := requireActor(ctx, tx, us.userRepo)
		if err != nil {
			return err
		}

		targetLanguageID, err := us.resolveLanguage(ctx, tx, languageID)
		if err != nil {
			return err
		}

		firstFilename := files[0].Filename
		if firstFilename == "" {
			firstFilename = "batch_upload"
		}
		finalProjectName := fmt.Sprintf("Project from %s", firstFilename)
		if projectName != nil && *projectName != "" {
			finalProjectName = *projectName
		}

		project := &types.Project{
			Name:             finalProjectName,
			OriginalFilename: firstFilename,
			FilePath:         "",
			Duration:         0,
			SampleRate:       44100,
			Channels:         2,
			LanguageID:       targetLanguageID,
			UserID:           actor.ID,
			Status:           types.ProjectStatusReadyForTranscription,
		}
		if _, err := us.projectRepo.Create(ctx, tx, []*types.Project{project}); err != nil {
			return types.Internal(err)
		}

		description := fmt.Sprintf("Default folder for %s", finalProjectName)
		folder := &types.Folder{
			ProjectID:   project.ID,
			Name:        "Main Folder",
			Description: &description,
		}
		if _, err := us.folderRepo.Create(ctx, tx, []*types.Folder{folder}); err != nil {
			return types.Internal(err)
		}

		segmentsCreated := 0
		audioFiles := 0
		projectFileRecorded := false

		for _, file := range files {
			if file.Filename == "" {
				continue
			}

			storedPath, err := us.blobStore.Save(ctx, file.Filename, file.Data)
			if err != nil {
				// Accepted policy: a failed file is skipped, the batch goes on.
				us.log.Warn("Failed to store uploaded file, skipping", "filename", file.Filename, "error", err)
				continue
			}

			fileSize := int64(len(file.Data))
			mimeType := media.SniffMimeType(file.Data)

			if !projectFileRecorded {
				projectFileRecorded = true
				fields := map[string]any{
					"file_path": storedPath,
					"file_size": fileSize,
					"mime_type": mimeType,
				}
				if err := us.projectRepo.Update(ctx, tx, project.ID, fields); err != nil {
					return types.Internal(err)
				}
			}

			metadata := us.estimateMetadata(file)

			segment := &types.Segment{
				FolderID:         folder.ID,
				ProjectID:        project.ID,
				OriginalFilename: file.Filename,
				FilePath:         storedPath,
				FileSize:         &fileSize,
				MimeType:         &mimeType,
				SegmentNumber:    segmentsCreated + 1,
			}
			if metadata.IsAudio {
				audioFiles++
				segment.Duration = metadata.Duration
				segment.StartTime = 0
				segment.EndTime = metadata.Duration
				segment.Confidence = 0.9
				segment.ProcessingMethod = types.ProcessingMethodAudioAnalysis
			} else {
				segment.Duration = nonAudioSlotSeconds
				segment.StartTime = float64(segmentsCreated) * nonAudioSlotSeconds
				segment.EndTime = float64(segmentsCreated+1) * nonAudioSlotSeconds
				segment.Confidence = 0.1
				segment.ProcessingMethod = types.ProcessingMethodFileUpload
			}

			if _, err := us.segmentRepo.Create(ctx, tx, []*types.Segment{segment}); err != nil {
				return types.Internal(err)
			}
			segmentsCreated++
		}

		if _, err := us.statsService.Recompute(ctx, tx, project.ID); err != nil {
			return err
		}

		audioInfo := ""
		if audioFiles > 0 {
			audioInfo = fmt.Sprintf(" (%d audio files)", audioFiles)
		}
		projectID := project.ID
		folderID := folder.ID
		summary = &UploadSummary{
			Message: fmt.Sprintf(
				"Successfully uploaded %d files%s into 1 project with 1 folder containing %d segments",
				len(files), audioInfo, segmentsCreated,
			),
			FilesReceived:   len(files),
			AudioFiles:      audioFiles,
			SegmentsCreated: segmentsCreated,
			ProjectID:       &projectID,
			FolderID:        &folderID,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return summary, nil
}

func (us *uploadService) resolveLanguage(ctx context.Context, tx *gorm.DB, languageID *uint) (uint, error) {
	if languageID != nil && *languageID != 0 {
		return *languageID, nil
	}
	if us.defaultLanguageID != 0 {
		return us.defaultLanguageID, nil
	}
	first, err := us.languageRepo.FirstActive(ctx, tx)
	if err != nil {
		return 0, types.Internal(err)
	}
	if first == nil {
		return 0, types.Validation("no active language available; supply languageId or configure a default")
	}
	return first.ID, nil
}

// estimateMetadata stages the bytes to a temp file so the probe works the
// same regardless of the blob backend.
func (us *uploadService) estimateMetadata(file BatchUploadFile) media.Metadata {
	tmp, err := os.CreateTemp("", "probe-*"+filepath.Ext(file.Filename))
	if err != nil {
		us.log.Warn("Failed to stage file for probing", "filename", file.Filename, "error", err)
		if media.IsAudioFilename(file.Filename) {
			return media.Metadata{IsAudio: true, Duration: 60, SampleRate: 44100, Channels: 2}
		}
		return media.Metadata{IsAudio: false}
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	_, writeErr := tmp.Write(file.Data)
	closeErr := tmp.Close()
	if writeErr != nil || closeErr != nil {
		us.log.Warn("Failed to stage file for probing", "filename", file.Filename, "error", writeErr)
	}

	return us.estimator.Estimate(tmpPath, file.Filename)
}
