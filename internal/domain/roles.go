package domain

type Role string

const (
	RoleAdmin   Role = "admin"
	RoleManager Role = "manager"
	RoleEditor  Role = "editor"
)

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleManager, RoleEditor:
		return true
	}
	return false
}

// IsPrivileged reports whether the role bypasses language scoping.
func (r Role) IsPrivileged() bool {
	return r == RoleAdmin || r == RoleManager
}

type ProjectStatus string

const (
	ProjectStatusProcessing            ProjectStatus = "processing"
	ProjectStatusReadyForTranscription ProjectStatus = "ready_for_transcription"
	ProjectStatusInTranscription       ProjectStatus = "in_transcription"
	ProjectStatusCompleted             ProjectStatus = "completed"
	ProjectStatusFailed                ProjectStatus = "failed"
)

func (s ProjectStatus) Valid() bool {
	switch s {
	case ProjectStatusProcessing, ProjectStatusReadyForTranscription,
		ProjectStatusInTranscription, ProjectStatusCompleted, ProjectStatusFailed:
		return true
	}
	return false
}

type ProcessingMethod string

const (
	ProcessingMethodAudioAnalysis ProcessingMethod = "audio_analysis"
	ProcessingMethodFileUpload    ProcessingMethod = "file_upload"
	ProcessingMethodBasic         ProcessingMethod = "basic"
)
