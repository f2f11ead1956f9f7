package realtime

import (
	"github.com/google/uuid"
)

type SSEEvent string

// Wire event names. The values are part of the client contract; the browser
// app keys its live tab refreshes on them.
const (
	SSEEventNewTrackForApproval             SSEEvent = "new_track_for_approval"
	SSEEventNewMixedTrackForApproval        SSEEvent = "new_mixed_track_for_approval"
	SSEEventNewNarratorRecordingForApproval SSEEvent = "new_narrator_recording_for_approval"
	SSEEventNewFinalCompositionForApproval  SSEEvent = "new_final_composition_for_approval"
	SSEEventTrackApprovedForMixing          SSEEvent = "track_approved_for_mixing"
	SSEEventApprovalDecisionMade            SSEEvent = "approval_decision_made"
	SSEEventMessageReceived                 SSEEvent = "message_received"
	SSEEventNewCommunication                SSEEvent = "new_communication"
)

// BroadcastChannel receives events every connected client should see,
// regardless of role.
const BroadcastChannel = "broadcast"

type SSEMessage struct {
	Channel string   `json:"channel"`
	Event   SSEEvent `json:"event"`
	Data    any      `json:"data,omitempty"`
}

// RoleChannel is the queue channel for everyone holding a role.
func RoleChannel(role string) string {
	return "role:" + role
}

// UserChannel is a single user's private channel.
func UserChannel(userID uuid.UUID) string {
	return "user:" + userID.String()
}

// ShabadChannel carries thread activity for one shabad.
func ShabadChannel(shabadID uuid.UUID) string {
	return "shabad:" + shabadID.String()
}
