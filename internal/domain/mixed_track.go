package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type MixedTrack struct {
	ID              uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	SessionID       uuid.UUID      `gorm:"type:uuid;not null;index;column:session_id" json:"session_id"`
	MixerID         uuid.UUID      `gorm:"type:uuid;not null;index;column:mixer_id" json:"mixer_id"`
	MixVersion      int            `gorm:"not null;default:1;column:mix_version" json:"mix_version"`
	MixNotes        string         `gorm:"column:mix_notes" json:"mix_notes,omitempty"`
	TechnicalSpecs  datatypes.JSON `gorm:"type:jsonb;column:technical_specs" json:"technical_specs,omitempty"`
	StorageKey      string         `gorm:"not null;column:storage_key" json:"storage_key"`
	StorageBucket   string         `gorm:"column:storage_bucket" json:"storage_bucket,omitempty"`
	FileSizeMB      float64        `gorm:"column:file_size_mb" json:"file_size_mb,omitempty"`
	DurationSeconds float64        `gorm:"column:duration_seconds" json:"duration_seconds,omitempty"`
	CreatedAt       time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt       time.Time      `gorm:"not null;default:now()" json:"updated_at"`
}

func (MixedTrack) TableName() string { return "mixed_tracks" }
