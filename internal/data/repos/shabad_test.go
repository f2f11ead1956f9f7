package repos

import (
	"context"
	"testing"

	"github.com/raagrecording/raagrecording-backend/internal/data/repos/testutil"
	"github.com/raagrecording/raagrecording-backend/internal/domain"
	"github.com/raagrecording/raagrecording-backend/internal/pkg/dbctx"
)

func TestShabadRepoProgressAggregates(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	dbc := dbctx.Context{Ctx: context.Background(), Tx: tx}
	repo := NewShabadRepo(db, testutil.Logger(t))

	raag := testutil.SeedRaag(t, tx)
	shabad := testutil.SeedShabad(t, tx, raag.ID)
	performer := testutil.SeedUser(t, tx, domain.RolePerformer)

	session := testutil.SeedSession(t, tx, shabad.ID)
	if err := tx.Model(&domain.RecordingSession{}).
		Where("id = ?", session.ID).
		Update("status", domain.SessionStatusInProgress).Error; err != nil {
		t.Fatalf("set session status: %v", err)
	}

	approved := testutil.SeedTrack(t, tx, session.ID, performer.ID)
	pending := testutil.SeedTrack(t, tx, session.ID, performer.ID)

	approvals := []*domain.Approval{
		{ItemType: domain.ItemTypeTrack, ItemID: approved.ID, Status: domain.ApprovalStatusApproved},
		{ItemType: domain.ItemTypeTrack, ItemID: pending.ID, Status: domain.ApprovalStatusPending},
	}
	for _, approval := range approvals {
		if err := tx.Create(approval).Error; err != nil {
			t.Fatalf("seed approval: %v", err)
		}
	}

	narrator := testutil.SeedUser(t, tx, domain.RoleNarrator)
	if err := tx.Create(&domain.NarratorRecording{
		ShabadID:   shabad.ID,
		NarratorID: narrator.ID,
		StorageKey: "audio/narration.wav",
	}).Error; err != nil {
		t.Fatalf("seed narration: %v", err)
	}

	mixer := testutil.SeedUser(t, tx, domain.RoleMixer)
	if err := tx.Create(&domain.FinalComposition{
		ShabadID:       shabad.ID,
		FinalMixerID:   mixer.ID,
		VersionNumber:  1,
		IsFinalVersion: true,
		StorageKey:     "audio/final.wav",
	}).Error; err != nil {
		t.Fatalf("seed final: %v", err)
	}

	sessions, err := repo.SessionCountsByStatus(dbc, shabad.ID)
	if err != nil {
		t.Fatalf("SessionCountsByStatus: %v", err)
	}
	if sessions[domain.SessionStatusInProgress] != 1 {
		t.Fatalf("SessionCountsByStatus: %+v", sessions)
	}

	trackApprovals, err := repo.TrackApprovalCountsByStatus(dbc, shabad.ID)
	if err != nil {
		t.Fatalf("TrackApprovalCountsByStatus: %v", err)
	}
	if trackApprovals[domain.ApprovalStatusApproved] != 1 || trackApprovals[domain.ApprovalStatusPending] != 1 {
		t.Fatalf("TrackApprovalCountsByStatus: %+v", trackApprovals)
	}

	narrations, err := repo.NarratorRecordingCount(dbc, shabad.ID)
	if err != nil || narrations != 1 {
		t.Fatalf("NarratorRecordingCount: count=%d err=%v", narrations, err)
	}

	finals, err := repo.FinalCompositionCounts(dbc, shabad.ID)
	if err != nil {
		t.Fatalf("FinalCompositionCounts: %v", err)
	}
	if finals.Total != 1 || finals.Completed != 1 {
		t.Fatalf("FinalCompositionCounts: %+v", finals)
	}
}
