package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Track struct {
	ID               uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	SessionID        uuid.UUID      `gorm:"type:uuid;not null;index;column:session_id" json:"session_id"`
	PerformerID      uuid.UUID      `gorm:"type:uuid;not null;index;column:performer_id" json:"performer_id"`
	TrackName        string         `gorm:"not null;column:track_name" json:"track_name"`
	Instrument       string         `gorm:"column:instrument" json:"instrument,omitempty"`
	TrackType        string         `gorm:"column:track_type" json:"track_type,omitempty"`
	RecordingQuality string         `gorm:"column:recording_quality" json:"recording_quality,omitempty"`
	StorageKey       string         `gorm:"not null;column:storage_key" json:"storage_key"`
	StorageBucket    string         `gorm:"column:storage_bucket" json:"storage_bucket,omitempty"`
	FileSizeMB       float64        `gorm:"column:file_size_mb" json:"file_size_mb,omitempty"`
	DurationSeconds  float64        `gorm:"column:duration_seconds" json:"duration_seconds,omitempty"`
	TakeNumber       int            `gorm:"not null;default:1;column:take_number" json:"take_number"`
	PunchInPoints    datatypes.JSON `gorm:"type:jsonb;column:punch_in_points" json:"punch_in_points,omitempty"`
	Notes            string         `gorm:"column:notes" json:"notes,omitempty"`
	CreatedAt        time.Time      `gorm:"not null;default:now();index" json:"created_at"`
	UpdatedAt        time.Time      `gorm:"not null;default:now()" json:"updated_at"`
}

func (Track) TableName() string { return "tracks" }
