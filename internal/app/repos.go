package app

import (
	"gorm.io/gorm"

	"github.com/voxscribe/transcription-backend/internal/data/repos"
	"github.com/voxscribe/transcription-backend/internal/platform/logger"
)

type Repos struct {
	User     repos.UserRepo
	Language repos.LanguageRepo
	Project  repos.ProjectRepo
	Folder   repos.FolderRepo
	Segment  repos.SegmentRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		User:     repos.NewUserRepo(db, log),
		Language: repos.NewLanguageRepo(db, log),
		Project:  repos.NewProjectRepo(db, log),
		Folder:   repos.NewFolderRepo(db, log),
		Segment:  repos.NewSegmentRepo(db, log),
	}
}
