package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/raagrecording/raagrecording-backend/internal/domain"
	"github.com/raagrecording/raagrecording-backend/internal/realtime"
)

// =========================
// Approval notifier
// =========================

// ApprovalNotifier announces approval lifecycle transitions. Every method is
// fire-and-forget and must only be called after the state change committed.
type ApprovalNotifier interface {
	PendingCreated(role string, approval *domain.Approval)
	DecisionMade(approval *domain.Approval)
	TrackApprovedForMixing(trackID, sessionID, shabadID uuid.UUID)
}

type approvalNotifier struct {
	emit SSEEmitter
}

func NewApprovalNotifier(emit SSEEmitter) ApprovalNotifier {
	return &approvalNotifier{emit: emit}
}

func pendingEventFor(itemType string) realtime.SSEEvent {
	switch itemType {
	case domain.ItemTypeMixedTrack:
		return realtime.SSEEventNewMixedTrackForApproval
	case domain.ItemTypeNarratorRecording:
		return realtime.SSEEventNewNarratorRecordingForApproval
	case domain.ItemTypeFinalMix:
		return realtime.SSEEventNewFinalCompositionForApproval
	default:
		return realtime.SSEEventNewTrackForApproval
	}
}

func (n *approvalNotifier) PendingCreated(role string, approval *domain.Approval) {
	if n == nil || n.emit == nil || approval == nil || role == "" {
		return
	}
	n.emit.Emit(context.Background(), realtime.SSEMessage{
		Channel: realtime.RoleChannel(role),
		Event:   pendingEventFor(approval.ItemType),
		Data: map[string]any{
			"approval_id": approval.ID,
			"item_type":   approval.ItemType,
			"item_id":     approval.ItemID,
		},
	})
}

func (n *approvalNotifier) DecisionMade(approval *domain.Approval) {
	if n == nil || n.emit == nil || approval == nil {
		return
	}
	n.emit.Emit(context.Background(), realtime.SSEMessage{
		Channel: realtime.BroadcastChannel,
		Event:   realtime.SSEEventApprovalDecisionMade,
		Data: map[string]any{
			"approval_id": approval.ID,
			"item_type":   approval.ItemType,
			"item_id":     approval.ItemID,
			"status":      approval.Status,
			"approver_id": approval.ApproverID,
		},
	})
}

func (n *approvalNotifier) TrackApprovedForMixing(trackID, sessionID, shabadID uuid.UUID) {
	if n == nil || n.emit == nil || trackID == uuid.Nil {
		return
	}
	n.emit.Emit(context.Background(), realtime.SSEMessage{
		Channel: realtime.RoleChannel(domain.RoleMixer),
		Event:   realtime.SSEEventTrackApprovedForMixing,
		Data: map[string]any{
			"track_id":   trackID,
			"session_id": sessionID,
			"shabad_id":  shabadID,
		},
	})
}

// =========================
// Communication notifier
// =========================

type CommunicationNotifier interface {
	MessageReceived(toUserID uuid.UUID, comm *domain.Communication)
	ThreadUpdated(shabadID uuid.UUID, comm *domain.Communication)
}

type communicationNotifier struct {
	emit SSEEmitter
}

func NewCommunicationNotifier(emit SSEEmitter) CommunicationNotifier {
	return &communicationNotifier{emit: emit}
}

func (n *communicationNotifier) MessageReceived(toUserID uuid.UUID, comm *domain.Communication) {
	if n == nil || n.emit == nil || toUserID == uuid.Nil || comm == nil {
		return
	}
	n.emit.Emit(context.Background(), realtime.SSEMessage{
		Channel: realtime.UserChannel(toUserID),
		Event:   realtime.SSEEventMessageReceived,
		Data:    comm,
	})
}

func (n *communicationNotifier) ThreadUpdated(shabadID uuid.UUID, comm *domain.Communication) {
	if n == nil || n.emit == nil || shabadID == uuid.Nil || comm == nil {
		return
	}
	n.emit.Emit(context.Background(), realtime.SSEMessage{
		Channel: realtime.ShabadChannel(shabadID),
		Event:   realtime.SSEEventNewCommunication,
		Data:    comm,
	})
}
