package db

import (
	types "github.com/voxscribe/transcription-backend/internal/domain"
	"gorm.io/gorm"
)

func AutoMigrateAll(db *gorm.DB) error {
	return db.AutoMigrate(

		// =========================
		// Identity + languages
		// =========================
		&types.User{},
		&types.Language{},
		&types.UserLanguage{},

		// =========================
		// Transcription tree
		// =========================
		&types.Project{},
		&types.Folder{},
		&types.Segment{},
	)
}
