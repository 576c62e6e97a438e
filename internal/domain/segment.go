package domain

import (
	"time"

	"github.com/google/uuid"
)

// Segment is one timed unit of a project. Transcriber/translator fields are
// weak references: deleting a user leaves historical attributions in place.
type Segment struct {
	ID               uint    `gorm:"primaryKey" json:"id"`
	FolderID         uint    `gorm:"not null;index;column:folder_id" json:"folderId"`
	ProjectID        uint    `gorm:"not null;index;column:project_id" json:"projectId"`
	OriginalFilename string  `gorm:"size:255;not null;column:original_filename" json:"originalFilename"`
	FilePath         string  `gorm:"not null;column:file_path" json:"filePath"`
	FileSize         *int64  `gorm:"column:file_size" json:"fileSize"`
	MimeType         *string `gorm:"size:100;column:mime_type" json:"mimeType"`

	Duration      float64 `gorm:"not null;column:duration" json:"duration"`
	SegmentNumber int     `gorm:"not null;column:segment_number" json:"segmentNumber"`
	StartTime     float64 `gorm:"not null;column:start_time" json:"startTime"`
	EndTime       float64 `gorm:"not null;column:end_time" json:"endTime"`
	Confidence    float64 `gorm:"not null;column:confidence" json:"confidence"`

	ProcessingMethod ProcessingMethod `gorm:"size:50;default:basic;column:processing_method" json:"processingMethod"`

	Transcription *string `gorm:"column:transcription" json:"transcription"`
	Translation   *string `gorm:"column:translation" json:"translation"`
	IsTranscribed bool    `gorm:"not null;default:false;column:is_transcribed" json:"isTranscribed"`
	IsTranslated  bool    `gorm:"not null;default:false;column:is_translated" json:"isTranslated"`
	IsApproved    *bool   `gorm:"column:is_approved" json:"isApproved"`

	TranscribedBy *uuid.UUID `gorm:"type:uuid;column:transcribed_by" json:"transcribedBy"`
	TranslatedBy  *uuid.UUID `gorm:"type:uuid;column:translated_by" json:"translatedBy"`
	TranscribedAt *time.Time `gorm:"column:transcribed_at" json:"transcribedAt"`
	TranslatedAt  *time.Time `gorm:"column:translated_at" json:"translatedAt"`

	CreatedAt time.Time `gorm:"not null" json:"createdAt"`
	UpdatedAt time.Time `gorm:"not null" json:"updatedAt"`
}

func (Segment) TableName() string { return "segments" }
