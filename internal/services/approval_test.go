package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/raagrecording/raagrecording-backend/internal/domain"
	"github.com/raagrecording/raagrecording-backend/internal/pkg/dbctx"
	apperrors "github.com/raagrecording/raagrecording-backend/internal/pkg/errors"
	"github.com/raagrecording/raagrecording-backend/internal/pkg/logger"
)

func dbContext() dbctx.Context {
	return dbctx.Context{Ctx: context.Background()}
}

// newValidationOnlyService builds an engine whose validation paths can be
// exercised without a database; repos stay nil and must never be reached.
func newValidationOnlyService(t *testing.T) ApprovalService {
	t.Helper()
	log, err := logger.New("test")
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	table, err := LoadRoutingTable()
	if err != nil {
		t.Fatalf("routing: %v", err)
	}
	return NewApprovalService(nil, log, nil, nil, nil, nil, nil, table, NewApprovalNotifier(NopEmitter{}))
}

func TestDecideRejectsInvalidInput(t *testing.T) {
	svc := newValidationOnlyService(t)
	ctx := context.Background()

	cases := []struct {
		name string
		in   DecideInput
	}{
		{"missing approval id", DecideInput{ApproverID: uuid.New(), ApproverRole: domain.RoleApprover, Status: domain.ApprovalStatusApproved}},
		{"missing approver id", DecideInput{ApprovalID: uuid.New(), ApproverRole: domain.RoleApprover, Status: domain.ApprovalStatusApproved}},
		{"pending is not a decision", DecideInput{ApprovalID: uuid.New(), ApproverID: uuid.New(), ApproverRole: domain.RoleApprover, Status: domain.ApprovalStatusPending}},
		{"unknown status", DecideInput{ApprovalID: uuid.New(), ApproverID: uuid.New(), ApproverRole: domain.RoleApprover, Status: "maybe"}},
	}
	for _, tc := range cases {
		if _, err := svc.Decide(ctx, tc.in); !errors.Is(err, apperrors.ErrInvalidArgument) {
			t.Errorf("%s: err = %v, want ErrInvalidArgument", tc.name, err)
		}
	}
}

func TestCreateForItemRejectsUnroutedType(t *testing.T) {
	svc := newValidationOnlyService(t)

	if _, err := svc.CreateForItem(dbContext(), "session", uuid.New()); !errors.Is(err, apperrors.ErrInvalidArgument) {
		t.Errorf("unknown item type: err = %v, want ErrInvalidArgument", err)
	}
	if _, err := svc.CreateForItem(dbContext(), domain.ItemTypeTrack, uuid.Nil); !errors.Is(err, apperrors.ErrInvalidArgument) {
		t.Errorf("nil item id: err = %v, want ErrInvalidArgument", err)
	}
}

func TestHistoryRejectsInvalidInput(t *testing.T) {
	svc := newValidationOnlyService(t)
	ctx := context.Background()

	if _, err := svc.History(ctx, "bogus", uuid.New()); !errors.Is(err, apperrors.ErrInvalidArgument) {
		t.Errorf("unknown item type: err = %v, want ErrInvalidArgument", err)
	}
	if _, err := svc.History(ctx, domain.ItemTypeTrack, uuid.Nil); !errors.Is(err, apperrors.ErrInvalidArgument) {
		t.Errorf("nil item id: err = %v, want ErrInvalidArgument", err)
	}
}

func TestAssignRejectsNilIDs(t *testing.T) {
	svc := newValidationOnlyService(t)
	ctx := context.Background()

	if _, err := svc.Assign(ctx, uuid.Nil, uuid.New()); !errors.Is(err, apperrors.ErrInvalidArgument) {
		t.Errorf("nil approval id: err = %v, want ErrInvalidArgument", err)
	}
	if _, err := svc.Assign(ctx, uuid.New(), uuid.Nil); !errors.Is(err, apperrors.ErrInvalidArgument) {
		t.Errorf("nil approver id: err = %v, want ErrInvalidArgument", err)
	}
}

func TestPendingForApproverRejectsNilID(t *testing.T) {
	svc := newValidationOnlyService(t)

	if _, err := svc.PendingForApprover(context.Background(), uuid.Nil); !errors.Is(err, apperrors.ErrInvalidArgument) {
		t.Errorf("nil approver id: err = %v, want ErrInvalidArgument", err)
	}
}

func TestRouteForKnownTypes(t *testing.T) {
	svc := newValidationOnlyService(t)

	role, err := svc.RouteFor(domain.ItemTypeNarratorRecording)
	if err != nil {
		t.Fatalf("RouteFor: %v", err)
	}
	if role != domain.RoleApprover {
		t.Fatalf("RouteFor = %q, want %q", role, domain.RoleApprover)
	}
	if _, err := svc.RouteFor("bogus"); !errors.Is(err, apperrors.ErrInvalidArgument) {
		t.Errorf("RouteFor bogus: err = %v, want ErrInvalidArgument", err)
	}
}
