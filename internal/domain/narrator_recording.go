package domain

import (
	"time"

	"github.com/google/uuid"
)

type NarratorRecording struct {
	ID               uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	ShabadID         uuid.UUID  `gorm:"type:uuid;not null;index;column:shabad_id" json:"shabad_id"`
	NarratorID       uuid.UUID  `gorm:"type:uuid;not null;index;column:narrator_id" json:"narrator_id"`
	RecordedAt       *time.Time `gorm:"column:recorded_at" json:"recorded_at,omitempty"`
	Language         string     `gorm:"column:language" json:"language,omitempty"`
	ScriptText       string     `gorm:"column:script_text" json:"script_text,omitempty"`
	RecordingQuality string     `gorm:"column:recording_quality" json:"recording_quality,omitempty"`
	StorageKey       string     `gorm:"not null;column:storage_key" json:"storage_key"`
	StorageBucket    string     `gorm:"column:storage_bucket" json:"storage_bucket,omitempty"`
	FileSizeMB       float64    `gorm:"column:file_size_mb" json:"file_size_mb,omitempty"`
	DurationSeconds  float64    `gorm:"column:duration_seconds" json:"duration_seconds,omitempty"`
	Notes            string     `gorm:"column:notes" json:"notes,omitempty"`
	CreatedAt        time.Time  `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt        time.Time  `gorm:"not null;default:now()" json:"updated_at"`
}

func (NarratorRecording) TableName() string { return "narrator_recordings" }
