package domain

import (
	"time"

	"github.com/google/uuid"
)

// Item types an approval can reference. The approval engine treats the
// referenced artifact opaquely via (item_type, item_id).
const (
	ItemTypeTrack             = "track"
	ItemTypeNarratorRecording = "narrator_recording"
	ItemTypeMixedTrack        = "mixed_track"
	ItemTypeFinalMix          = "final_mix"
)

// Approval statuses. pending is the only mutable state; the three decided
// states are terminal.
const (
	ApprovalStatusPending       = "pending"
	ApprovalStatusApproved      = "approved"
	ApprovalStatusRejected      = "rejected"
	ApprovalStatusNeedsRevision = "needs_revision"
)

func ValidItemType(itemType string) bool {
	switch itemType {
	case ItemTypeTrack, ItemTypeNarratorRecording, ItemTypeMixedTrack, ItemTypeFinalMix:
		return true
	}
	return false
}

// ValidDecisionStatus reports whether status is a legal decision outcome.
// pending is deliberately excluded: a decision always leaves pending.
func ValidDecisionStatus(status string) bool {
	switch status {
	case ApprovalStatusApproved, ApprovalStatusRejected, ApprovalStatusNeedsRevision:
		return true
	}
	return false
}

// Approval tracks one artifact's review state. Exactly one approval row is
// created per artifact, in the same transaction as the artifact itself; a
// revision is a new artifact with a new approval, never a reopened row.
type Approval struct {
	ID            uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	ItemType      string     `gorm:"not null;index:idx_approvals_item;column:item_type" json:"item_type"`
	ItemID        uuid.UUID  `gorm:"type:uuid;not null;index:idx_approvals_item;column:item_id" json:"item_id"`
	Status        string     `gorm:"not null;default:'pending';index;column:status" json:"status"`
	ApproverID    *uuid.UUID `gorm:"type:uuid;index;column:approver_id" json:"approver_id,omitempty"`
	Comments      string     `gorm:"column:comments" json:"comments,omitempty"`
	RevisionNotes string     `gorm:"column:revision_notes" json:"revision_notes,omitempty"`
	DecisionDate  *time.Time `gorm:"column:decision_date" json:"decision_date,omitempty"`
	CreatedAt     time.Time  `gorm:"not null;default:now();index" json:"created_at"`
	UpdatedAt     time.Time  `gorm:"not null;default:now()" json:"updated_at"`
}

func (Approval) TableName() string { return "approvals" }

// Decided reports whether the approval has left pending.
func (a *Approval) Decided() bool {
	return a.Status != ApprovalStatusPending
}
