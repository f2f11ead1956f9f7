package domain

import (
	"time"

	"github.com/google/uuid"
)

type Shabad struct {
	ID                 uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	RaagID             uuid.UUID `gorm:"type:uuid;not null;index;column:raag_id" json:"raag_id"`
	AngNumber          int       `gorm:"column:ang_number;index" json:"ang_number"`
	ShabadNumber       int       `gorm:"column:shabad_number" json:"shabad_number"`
	GuruAuthor         string    `gorm:"column:guru_author" json:"guru_author"`
	FirstLine          string    `gorm:"not null;column:first_line" json:"first_line"`
	FullText           string    `gorm:"column:full_text" json:"full_text,omitempty"`
	Language           string    `gorm:"column:language" json:"language,omitempty"`
	TranslationEnglish string    `gorm:"column:translation_english" json:"translation_english,omitempty"`
	TranslationPunjabi string    `gorm:"column:translation_punjabi" json:"translation_punjabi,omitempty"`
	CreatedAt          time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt          time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (Shabad) TableName() string { return "shabads" }
