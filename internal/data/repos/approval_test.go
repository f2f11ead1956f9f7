package repos

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/raagrecording/raagrecording-backend/internal/data/repos/testutil"
	"github.com/raagrecording/raagrecording-backend/internal/domain"
	"github.com/raagrecording/raagrecording-backend/internal/pkg/dbctx"
)

func TestApprovalRepoLifecycle(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	dbc := dbctx.Context{Ctx: context.Background(), Tx: tx}
	repo := NewApprovalRepo(db, testutil.Logger(t))

	approver := testutil.SeedUser(t, tx, domain.RoleApprover)
	otherApprover := testutil.SeedUser(t, tx, domain.RoleApprover)

	// Explicit timestamps: now() is frozen inside a transaction, so FIFO
	// ordering needs distinct created_at values.
	base := time.Now().Add(-3 * time.Hour)

	// Creation defaults: pending, no approver, no decision date.
	first := &domain.Approval{
		ItemType:  domain.ItemTypeTrack,
		ItemID:    uuid.New(),
		Status:    domain.ApprovalStatusPending,
		CreatedAt: base,
		UpdatedAt: base,
	}
	if _, err := repo.Create(dbc, []*domain.Approval{first}); err != nil {
		t.Fatalf("Create: %v", err)
	}
	rows, err := repo.GetByIDs(dbc, []uuid.UUID{first.ID})
	if err != nil || len(rows) != 1 {
		t.Fatalf("GetByIDs: err=%v len=%d", err, len(rows))
	}
	if rows[0].Status != domain.ApprovalStatusPending || rows[0].ApproverID != nil || rows[0].DecisionDate != nil {
		t.Fatalf("unexpected defaults: %+v", rows[0])
	}

	// Claim pool: unassigned pending rows are visible to every approver;
	// assigned rows only to their approver. Oldest first.
	second := &domain.Approval{
		ItemType:   domain.ItemTypeMixedTrack,
		ItemID:     uuid.New(),
		Status:     domain.ApprovalStatusPending,
		ApproverID: &approver.ID,
		CreatedAt:  base.Add(1 * time.Hour),
		UpdatedAt:  base.Add(1 * time.Hour),
	}
	third := &domain.Approval{
		ItemType:   domain.ItemTypeFinalMix,
		ItemID:     uuid.New(),
		Status:     domain.ApprovalStatusPending,
		ApproverID: &otherApprover.ID,
		CreatedAt:  base.Add(2 * time.Hour),
		UpdatedAt:  base.Add(2 * time.Hour),
	}
	if _, err := repo.Create(dbc, []*domain.Approval{second, third}); err != nil {
		t.Fatalf("Create pool: %v", err)
	}

	pool, err := repo.GetPendingForApprover(dbc, approver.ID)
	if err != nil {
		t.Fatalf("GetPendingForApprover: %v", err)
	}
	if len(pool) != 2 {
		t.Fatalf("claim pool: expected 2 rows, got %d", len(pool))
	}
	if pool[0].ID != first.ID || pool[1].ID != second.ID {
		t.Fatalf("claim pool order: got %v, %v", pool[0].ID, pool[1].ID)
	}

	// DecideIfPending succeeds exactly once.
	now := time.Now()
	ok, err := repo.DecideIfPending(dbc, first.ID, map[string]interface{}{
		"status":        domain.ApprovalStatusApproved,
		"approver_id":   approver.ID,
		"comments":      "clean take",
		"decision_date": now,
	})
	if err != nil || !ok {
		t.Fatalf("DecideIfPending: ok=%v err=%v", ok, err)
	}
	ok, err = repo.DecideIfPending(dbc, first.ID, map[string]interface{}{
		"status":      domain.ApprovalStatusRejected,
		"approver_id": otherApprover.ID,
	})
	if err != nil {
		t.Fatalf("DecideIfPending repeat: %v", err)
	}
	if ok {
		t.Fatal("DecideIfPending repeat: expected precondition failure")
	}

	decided, err := repo.GetByIDs(dbc, []uuid.UUID{first.ID})
	if err != nil || len(decided) != 1 {
		t.Fatalf("reload decided: err=%v len=%d", err, len(decided))
	}
	if decided[0].Status != domain.ApprovalStatusApproved {
		t.Fatalf("first decision must stand, got %q", decided[0].Status)
	}
	if decided[0].ApproverID == nil || *decided[0].ApproverID != approver.ID {
		t.Fatalf("approver must be the first decider, got %v", decided[0].ApproverID)
	}
	if decided[0].DecisionDate == nil {
		t.Fatal("decision date must be set")
	}

	// Decided rows leave the claim pool.
	pool, err = repo.GetPendingForApprover(dbc, approver.ID)
	if err != nil {
		t.Fatalf("GetPendingForApprover after decide: %v", err)
	}
	if len(pool) != 1 || pool[0].ID != second.ID {
		t.Fatalf("claim pool after decide: %+v", pool)
	}

	// AssignIfPending: works on pending, refuses decided.
	ok, err = repo.AssignIfPending(dbc, second.ID, otherApprover.ID)
	if err != nil || !ok {
		t.Fatalf("AssignIfPending pending: ok=%v err=%v", ok, err)
	}
	ok, err = repo.AssignIfPending(dbc, first.ID, otherApprover.ID)
	if err != nil {
		t.Fatalf("AssignIfPending decided: %v", err)
	}
	if ok {
		t.Fatal("AssignIfPending decided: expected precondition failure")
	}

	// History is newest first.
	dup := &domain.Approval{
		ItemType: domain.ItemTypeTrack,
		ItemID:   first.ItemID,
		Status:   domain.ApprovalStatusPending,
	}
	if _, err := repo.Create(dbc, []*domain.Approval{dup}); err != nil {
		t.Fatalf("Create history row: %v", err)
	}
	history, err := repo.GetByItem(dbc, domain.ItemTypeTrack, first.ItemID)
	if err != nil {
		t.Fatalf("GetByItem: %v", err)
	}
	if len(history) != 2 {
		t.Fatalf("history: expected 2, got %d", len(history))
	}
	if history[0].ID != dup.ID {
		t.Fatalf("history must be newest first, got %v", history[0].ID)
	}
}

func TestApprovalRepoAggregates(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	dbc := dbctx.Context{Ctx: context.Background(), Tx: tx}
	repo := NewApprovalRepo(db, testutil.Logger(t))
	approver := testutil.SeedUser(t, tx, domain.RoleApprover)

	now := time.Now()
	decisionDate := now.Add(-1 * time.Hour)
	seed := []*domain.Approval{
		{ItemType: domain.ItemTypeTrack, ItemID: uuid.New(), Status: domain.ApprovalStatusPending},
		{ItemType: domain.ItemTypeTrack, ItemID: uuid.New(), Status: domain.ApprovalStatusApproved, ApproverID: &approver.ID, DecisionDate: &decisionDate},
		{ItemType: domain.ItemTypeMixedTrack, ItemID: uuid.New(), Status: domain.ApprovalStatusRejected, ApproverID: &approver.ID, DecisionDate: &decisionDate},
	}
	if _, err := repo.Create(dbc, seed); err != nil {
		t.Fatalf("seed: %v", err)
	}

	byStatus, err := repo.CountByStatus(dbc)
	if err != nil {
		t.Fatalf("CountByStatus: %v", err)
	}
	if byStatus[domain.ApprovalStatusPending] != 1 ||
		byStatus[domain.ApprovalStatusApproved] != 1 ||
		byStatus[domain.ApprovalStatusRejected] != 1 {
		t.Fatalf("CountByStatus: %+v", byStatus)
	}

	byTypeAndStatus, err := repo.CountByTypeAndStatus(dbc)
	if err != nil {
		t.Fatalf("CountByTypeAndStatus: %v", err)
	}
	found := false
	for _, row := range byTypeAndStatus {
		if row.ItemType == domain.ItemTypeTrack && row.Status == domain.ApprovalStatusApproved {
			found = row.Count == 1
		}
	}
	if !found {
		t.Fatalf("CountByTypeAndStatus missing track/approved: %+v", byTypeAndStatus)
	}

	// Only rows with a decision date contribute to the average.
	avg, err := repo.AvgDecisionHoursByType(dbc)
	if err != nil {
		t.Fatalf("AvgDecisionHoursByType: %v", err)
	}
	if _, ok := avg[domain.ItemTypeTrack]; !ok {
		t.Fatalf("AvgDecisionHoursByType missing track: %+v", avg)
	}
	if _, ok := avg[domain.ItemTypeFinalMix]; ok {
		t.Fatalf("AvgDecisionHoursByType has type with no decisions: %+v", avg)
	}

	buckets, err := repo.PendingAgeBuckets(dbc)
	if err != nil {
		t.Fatalf("PendingAgeBuckets: %v", err)
	}
	var total int64
	for _, count := range buckets {
		total += count
	}
	if total != 1 {
		t.Fatalf("PendingAgeBuckets: expected 1 pending total, got %d (%+v)", total, buckets)
	}
}
