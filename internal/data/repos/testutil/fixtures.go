package testutil

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	types "github.com/voxscribe/transcription-backend/internal/domain"
)

var seedCounter atomic.Int64

func uniqueSuffix() string {
	return fmt.Sprintf("%d-%s", seedCounter.Add(1), uuid.New().String()[:8])
}

func SeedUser(tb testing.TB, ctx context.Context, tx *gorm.DB, role types.Role) *types.User {
	tb.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("pw"), bcrypt.MinCost)
	if err != nil {
		tb.Fatalf("hash seed password: %v", err)
	}
	u := &types.User{
		ID:           uuid.New(),
		Username:     "user-" + uniqueSuffix(),
		PasswordHash: string(hash),
		Role:         role,
		IsActive:     true,
	}
	if err := tx.WithContext(ctx).Create(u).Error; err != nil {
		tb.Fatalf("seed user: %v", err)
	}
	return u
}

func SeedLanguage(tb testing.TB, ctx context.Context, tx *gorm.DB, code string) *types.Language {
	tb.Helper()
	l := &types.Language{
		Code:     code + "-" + uniqueSuffix(),
		Name:     "Language " + code,
		IsActive: true,
	}
	if err := tx.WithContext(ctx).Create(l).Error; err != nil {
		tb.Fatalf("seed language: %v", err)
	}
	return l
}

func AssignLanguage(tb testing.TB, ctx context.Context, tx *gorm.DB, userID uuid.UUID, languageID uint) {
	tb.Helper()
	ul := &types.UserLanguage{UserID: userID, LanguageID: languageID}
	if err := tx.WithContext(ctx).Create(ul).Error; err != nil {
		tb.Fatalf("assign language: %v", err)
	}
}

func SeedProject(tb testing.TB, ctx context.Context, tx *gorm.DB, userID uuid.UUID, languageID uint) *types.Project {
	tb.Helper()
	p := &types.Project{
		Name:             "project-" + uniqueSuffix(),
		OriginalFilename: "audio.mp3",
		FilePath:         "/tmp/audio.mp3",
		SampleRate:       44100,
		Channels:         2,
		LanguageID:       languageID,
		UserID:           userID,
		Status:           types.ProjectStatusReadyForTranscription,
	}
	if err := tx.WithContext(ctx).Create(p).Error; err != nil {
		tb.Fatalf("seed project: %v", err)
	}
	return p
}

func SeedFolder(tb testing.TB, ctx context.Context, tx *gorm.DB, projectID uint) *types.Folder {
	tb.Helper()
	f := &types.Folder{
		ProjectID: projectID,
		Name:      "Main Folder",
	}
	if err := tx.WithContext(ctx).Create(f).Error; err != nil {
		tb.Fatalf("seed folder: %v", err)
	}
	return f
}

func SeedSegment(tb testing.TB, ctx context.Context, tx *gorm.DB, projectID, folderID uint, number int, duration float64) *types.Segment {
	tb.Helper()
	s := &types.Segment{
		FolderID:         folderID,
		ProjectID:        projectID,
		OriginalFilename: fmt.Sprintf("segment-%d.mp3", number),
		FilePath:         fmt.Sprintf("/tmp/segment-%d.mp3", number),
		Duration:         duration,
		SegmentNumber:    number,
		StartTime:        0,
		EndTime:          duration,
		Confidence:       0.9,
		ProcessingMethod: types.ProcessingMethodAudioAnalysis,
	}
	if err := tx.WithContext(ctx).Create(s).Error; err != nil {
		tb.Fatalf("seed segment: %v", err)
	}
	return s
}

func PtrString(v string) *string { return &v }

func PtrBool(v bool) *bool { return &v }

func PtrUint(v uint) *uint { return &v }

func PtrFloat64(v float64) *float64 { return &v }
