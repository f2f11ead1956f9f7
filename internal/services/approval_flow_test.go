package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/raagrecording/raagrecording-backend/internal/data/repos"
	"github.com/raagrecording/raagrecording-backend/internal/data/repos/testutil"
	"github.com/raagrecording/raagrecording-backend/internal/domain"
	apperrors "github.com/raagrecording/raagrecording-backend/internal/pkg/errors"
	"github.com/raagrecording/raagrecording-backend/internal/realtime"
)

// TestTrackIntakeAndDecisionFlow walks a track through the full gate: intake
// creates a pending approval and notifies the approver queue, the first
// decision stamps the record and fans out, and a second decision is refused
// without touching the stored row.
func TestTrackIntakeAndDecisionFlow(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	log := testutil.Logger(t)
	ctx := context.Background()

	raag := testutil.SeedRaag(t, tx)
	shabad := testutil.SeedShabad(t, tx, raag.ID)
	session := testutil.SeedSession(t, tx, shabad.ID)
	performer := testutil.SeedUser(t, tx, domain.RolePerformer)
	approver := testutil.SeedUser(t, tx, domain.RoleApprover)

	sessionRepo := repos.NewRecordingSessionRepo(tx, log)
	trackRepo := repos.NewTrackRepo(tx, log)
	narrationRepo := repos.NewNarratorRecordingRepo(tx, log)
	mixRepo := repos.NewMixedTrackRepo(tx, log)
	finalRepo := repos.NewFinalCompositionRepo(tx, log)
	approvalRepo := repos.NewApprovalRepo(tx, log)

	table, err := LoadRoutingTable()
	if err != nil {
		t.Fatalf("routing: %v", err)
	}
	emitter := &captureEmitter{}
	notifier := NewApprovalNotifier(emitter)
	engine := NewApprovalService(tx, log, approvalRepo, trackRepo, narrationRepo, mixRepo, finalRepo, table, notifier)
	recordings := NewRecordingService(tx, log, sessionRepo, trackRepo, approvalRepo, engine, notifier)

	// Intake: the track lands with exactly one pending approval and one
	// role-queue notification.
	track, approval, err := recordings.AddTrack(ctx, &domain.Track{
		SessionID:   session.ID,
		PerformerID: performer.ID,
		TrackName:   "tabla take 1",
		StorageKey:  "audio/tabla-take-1.wav",
		TakeNumber:  1,
	})
	if err != nil {
		t.Fatalf("AddTrack: %v", err)
	}
	if approval.Status != domain.ApprovalStatusPending {
		t.Fatalf("intake status = %q, want pending", approval.Status)
	}
	if approval.ItemType != domain.ItemTypeTrack || approval.ItemID != track.ID {
		t.Fatalf("approval points at %s/%s, want track/%s", approval.ItemType, approval.ItemID, track.ID)
	}
	if len(emitter.messages) != 1 {
		t.Fatalf("intake emitted %d messages, want 1", len(emitter.messages))
	}
	if got := emitter.messages[0]; got.Event != realtime.SSEEventNewTrackForApproval || got.Channel != realtime.RoleChannel(domain.RoleApprover) {
		t.Fatalf("intake notification = %q on %q", got.Event, got.Channel)
	}

	pending, err := engine.PendingForApprover(ctx, approver.ID)
	if err != nil {
		t.Fatalf("PendingForApprover: %v", err)
	}
	if len(pending) != 1 || pending[0].ID != approval.ID {
		t.Fatalf("pending queue = %+v, want the intake approval", pending)
	}

	// First decision: record stamped, broadcast plus mixer hand-off emitted.
	decided, err := engine.Decide(ctx, DecideInput{
		ApprovalID:   approval.ID,
		ApproverID:   approver.ID,
		ApproverRole: domain.RoleApprover,
		Status:       domain.ApprovalStatusApproved,
		Comments:     "clean take",
	})
	if err != nil {
		t.Fatalf("Decide: %v", err)
	}
	if decided.Status != domain.ApprovalStatusApproved {
		t.Fatalf("decided status = %q", decided.Status)
	}
	if decided.ApproverID == nil || *decided.ApproverID != approver.ID {
		t.Fatalf("decided approver = %v, want %s", decided.ApproverID, approver.ID)
	}
	if decided.DecisionDate == nil {
		t.Fatal("decision date not stamped")
	}

	var decisionBroadcasts, mixerHandoffs int
	for _, msg := range emitter.messages[1:] {
		switch msg.Event {
		case realtime.SSEEventApprovalDecisionMade:
			decisionBroadcasts++
			if msg.Channel != realtime.BroadcastChannel {
				t.Fatalf("decision broadcast on %q", msg.Channel)
			}
		case realtime.SSEEventTrackApprovedForMixing:
			mixerHandoffs++
			if msg.Channel != realtime.RoleChannel(domain.RoleMixer) {
				t.Fatalf("mixer hand-off on %q", msg.Channel)
			}
		default:
			t.Fatalf("unexpected event %q", msg.Event)
		}
	}
	if decisionBroadcasts != 1 || mixerHandoffs != 1 {
		t.Fatalf("decision emitted %d broadcasts and %d hand-offs, want 1 and 1", decisionBroadcasts, mixerHandoffs)
	}

	// Second decision: refused, and the stored record keeps the first outcome.
	emitted := len(emitter.messages)
	if _, err := engine.Decide(ctx, DecideInput{
		ApprovalID:   approval.ID,
		ApproverID:   approver.ID,
		ApproverRole: domain.RoleApprover,
		Status:       domain.ApprovalStatusRejected,
	}); !errors.Is(err, apperrors.ErrConflict) {
		t.Fatalf("repeat Decide err = %v, want ErrConflict", err)
	}
	if len(emitter.messages) != emitted {
		t.Fatalf("repeat Decide emitted %d extra messages", len(emitter.messages)-emitted)
	}

	reloaded, err := approvalRepo.GetByIDs(dbContext(), []uuid.UUID{approval.ID})
	if err != nil || len(reloaded) != 1 {
		t.Fatalf("reload: %v (%d rows)", err, len(reloaded))
	}
	if reloaded[0].Status != domain.ApprovalStatusApproved || reloaded[0].Comments != "clean take" {
		t.Fatalf("record changed after refused decision: %+v", reloaded[0])
	}
}
