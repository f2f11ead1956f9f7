package domain

import (
	"time"

	"github.com/google/uuid"
)

const (
	RolePerformer = "performer"
	RoleMixer     = "mixer"
	RoleNarrator  = "narrator"
	RoleApprover  = "approver"
	RoleAdmin     = "admin"
)

// ValidRole reports whether role is one of the recognized user roles.
func ValidRole(role string) bool {
	switch role {
	case RolePerformer, RoleMixer, RoleNarrator, RoleApprover, RoleAdmin:
		return true
	}
	return false
}

type User struct {
	ID        uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Username  string    `gorm:"uniqueIndex;not null;column:username" json:"username"`
	Email     string    `gorm:"uniqueIndex;not null;column:email" json:"email"`
	Password  string    `gorm:"not null;column:password" json:"-"`
	FullName  string    `gorm:"not null;column:full_name" json:"full_name"`
	Role      string    `gorm:"not null;index;column:role" json:"role"`
	Phone     string    `gorm:"column:phone" json:"phone,omitempty"`
	IsActive  bool      `gorm:"not null;default:true;column:is_active" json:"is_active"`
	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (User) TableName() string { return "users" }
