package domain

import (
	"time"

	"github.com/google/uuid"
)

const (
	SessionStatusScheduled  = "scheduled"
	SessionStatusInProgress = "in_progress"
	SessionStatusCompleted  = "completed"
)

// RecordingSession groups the tracks captured for one shabad in one sitting.
// Its status is session-level workflow state, independent of the per-track
// approval records.
type RecordingSession struct {
	ID                   uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	ShabadID             uuid.UUID  `gorm:"type:uuid;not null;index;column:shabad_id" json:"shabad_id"`
	SessionName          string     `gorm:"not null;column:session_name" json:"session_name"`
	Location             string     `gorm:"column:location" json:"location,omitempty"`
	PrimaryArtistID      *uuid.UUID `gorm:"type:uuid;index;column:primary_artist_id" json:"primary_artist_id,omitempty"`
	RecordingEngineerID  *uuid.UUID `gorm:"type:uuid;index;column:recording_engineer_id" json:"recording_engineer_id,omitempty"`
	EquipmentUsed        string     `gorm:"column:equipment_used" json:"equipment_used,omitempty"`
	TakeNumber           int        `gorm:"not null;default:1;column:take_number" json:"take_number"`
	Status               string     `gorm:"not null;default:'scheduled';index;column:status" json:"status"`
	StartedAt            *time.Time `gorm:"column:started_at" json:"started_at,omitempty"`
	EndedAt              *time.Time `gorm:"column:ended_at" json:"ended_at,omitempty"`
	Notes                string     `gorm:"column:notes" json:"notes,omitempty"`
	CreatedAt            time.Time  `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt            time.Time  `gorm:"not null;default:now()" json:"updated_at"`
}

func (RecordingSession) TableName() string { return "recording_sessions" }
