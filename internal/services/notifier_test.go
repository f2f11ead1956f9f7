package services

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/raagrecording/raagrecording-backend/internal/domain"
	"github.com/raagrecording/raagrecording-backend/internal/realtime"
)

// captureEmitter records every emitted message for assertions.
type captureEmitter struct {
	messages []realtime.SSEMessage
}

func (e *captureEmitter) Emit(ctx context.Context, msg realtime.SSEMessage) {
	e.messages = append(e.messages, msg)
}

func TestApprovalNotifierPendingCreated(t *testing.T) {
	cases := []struct {
		itemType  string
		wantEvent realtime.SSEEvent
	}{
		{domain.ItemTypeTrack, realtime.SSEEventNewTrackForApproval},
		{domain.ItemTypeMixedTrack, realtime.SSEEventNewMixedTrackForApproval},
		{domain.ItemTypeNarratorRecording, realtime.SSEEventNewNarratorRecordingForApproval},
		{domain.ItemTypeFinalMix, realtime.SSEEventNewFinalCompositionForApproval},
	}

	for _, tc := range cases {
		emitter := &captureEmitter{}
		notifier := NewApprovalNotifier(emitter)

		notifier.PendingCreated(domain.RoleApprover, &domain.Approval{
			ID:       uuid.New(),
			ItemType: tc.itemType,
			ItemID:   uuid.New(),
			Status:   domain.ApprovalStatusPending,
		})

		if len(emitter.messages) != 1 {
			t.Fatalf("%s: expected 1 message, got %d", tc.itemType, len(emitter.messages))
		}
		msg := emitter.messages[0]
		if msg.Event != tc.wantEvent {
			t.Errorf("%s: event = %q, want %q", tc.itemType, msg.Event, tc.wantEvent)
		}
		if msg.Channel != realtime.RoleChannel(domain.RoleApprover) {
			t.Errorf("%s: channel = %q, want role channel", tc.itemType, msg.Channel)
		}
	}
}

func TestApprovalNotifierDecisionMade(t *testing.T) {
	emitter := &captureEmitter{}
	notifier := NewApprovalNotifier(emitter)

	approverID := uuid.New()
	notifier.DecisionMade(&domain.Approval{
		ID:         uuid.New(),
		ItemType:   domain.ItemTypeMixedTrack,
		ItemID:     uuid.New(),
		Status:     domain.ApprovalStatusRejected,
		ApproverID: &approverID,
	})

	if len(emitter.messages) != 1 {
		t.Fatalf("expected 1 message, got %d", len(emitter.messages))
	}
	msg := emitter.messages[0]
	if msg.Channel != realtime.BroadcastChannel {
		t.Errorf("channel = %q, want broadcast", msg.Channel)
	}
	if msg.Event != realtime.SSEEventApprovalDecisionMade {
		t.Errorf("event = %q, want %q", msg.Event, realtime.SSEEventApprovalDecisionMade)
	}
}

func TestApprovalNotifierTrackApprovedForMixing(t *testing.T) {
	emitter := &captureEmitter{}
	notifier := NewApprovalNotifier(emitter)

	notifier.TrackApprovedForMixing(uuid.New(), uuid.New(), uuid.New())

	if len(emitter.messages) != 1 {
		t.Fatalf("expected 1 message, got %d", len(emitter.messages))
	}
	msg := emitter.messages[0]
	if msg.Channel != realtime.RoleChannel(domain.RoleMixer) {
		t.Errorf("channel = %q, want mixer role channel", msg.Channel)
	}
	if msg.Event != realtime.SSEEventTrackApprovedForMixing {
		t.Errorf("event = %q, want %q", msg.Event, realtime.SSEEventTrackApprovedForMixing)
	}

	// Nil track id is dropped silently.
	notifier.TrackApprovedForMixing(uuid.Nil, uuid.New(), uuid.New())
	if len(emitter.messages) != 1 {
		t.Fatal("nil track id must not emit")
	}
}

func TestCommunicationNotifierChannels(t *testing.T) {
	emitter := &captureEmitter{}
	notifier := NewCommunicationNotifier(emitter)

	toUser := uuid.New()
	shabadID := uuid.New()
	comm := &domain.Communication{ID: uuid.New(), FromUserID: uuid.New(), ToUserID: &toUser, Message: "hi"}

	notifier.MessageReceived(toUser, comm)
	notifier.ThreadUpdated(shabadID, comm)

	if len(emitter.messages) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(emitter.messages))
	}
	if emitter.messages[0].Channel != realtime.UserChannel(toUser) {
		t.Errorf("inbox channel = %q", emitter.messages[0].Channel)
	}
	if emitter.messages[1].Channel != realtime.ShabadChannel(shabadID) {
		t.Errorf("thread channel = %q", emitter.messages[1].Channel)
	}
}
