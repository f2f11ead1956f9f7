package domain

import (
	"time"

	"github.com/google/uuid"
)

type FinalComposition struct {
	ID                  uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	ShabadID            uuid.UUID  `gorm:"type:uuid;not null;index;column:shabad_id" json:"shabad_id"`
	MixedTrackID        *uuid.UUID `gorm:"type:uuid;index;column:mixed_track_id" json:"mixed_track_id,omitempty"`
	NarratorRecordingID *uuid.UUID `gorm:"type:uuid;index;column:narrator_recording_id" json:"narrator_recording_id,omitempty"`
	FinalMixerID        uuid.UUID  `gorm:"type:uuid;not null;index;column:final_mixer_id" json:"final_mixer_id"`
	VersionNumber       int        `gorm:"not null;default:1;column:version_number" json:"version_number"`
	IsFinalVersion      bool       `gorm:"not null;default:false;column:is_final_version" json:"is_final_version"`
	CompositionNotes    string     `gorm:"column:composition_notes" json:"composition_notes,omitempty"`
	StorageKey          string     `gorm:"not null;column:storage_key" json:"storage_key"`
	StorageBucket       string     `gorm:"column:storage_bucket" json:"storage_bucket,omitempty"`
	FileSizeMB          float64    `gorm:"column:file_size_mb" json:"file_size_mb,omitempty"`
	DurationSeconds     float64    `gorm:"column:duration_seconds" json:"duration_seconds,omitempty"`
	CreatedAt           time.Time  `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt           time.Time  `gorm:"not null;default:now()" json:"updated_at"`
}

func (FinalComposition) TableName() string { return "final_compositions" }
