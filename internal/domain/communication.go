package domain

import (
	"time"

	"github.com/google/uuid"
)

type Communication struct {
	ID              uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	FromUserID      uuid.UUID  `gorm:"type:uuid;not null;index;column:from_user_id" json:"from_user_id"`
	ToUserID        *uuid.UUID `gorm:"type:uuid;index;column:to_user_id" json:"to_user_id,omitempty"`
	RelatedItemType string     `gorm:"index:idx_communications_item;column:related_item_type" json:"related_item_type,omitempty"`
	RelatedItemID   *uuid.UUID `gorm:"type:uuid;index:idx_communications_item;column:related_item_id" json:"related_item_id,omitempty"`
	ShabadID        *uuid.UUID `gorm:"type:uuid;index;column:shabad_id" json:"shabad_id,omitempty"`
	Subject         string     `gorm:"column:subject" json:"subject,omitempty"`
	Message         string     `gorm:"not null;column:message" json:"message"`
	IsRead          bool       `gorm:"not null;default:false;column:is_read" json:"is_read"`
	ReadAt          *time.Time `gorm:"column:read_at" json:"read_at,omitempty"`
	CreatedAt       time.Time  `gorm:"not null;default:now();index" json:"created_at"`
}

func (Communication) TableName() string { return "communications" }
