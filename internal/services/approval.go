package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/raagrecording/raagrecording-backend/internal/data/repos"
	"github.com/raagrecording/raagrecording-backend/internal/domain"
	"github.com/raagrecording/raagrecording-backend/internal/pkg/dbctx"
	apperrors "github.com/raagrecording/raagrecording-backend/internal/pkg/errors"
	"github.com/raagrecording/raagrecording-backend/internal/pkg/logger"
)

// PendingApproval is a queue entry: the approval row plus a read-only display
// snapshot of the artifact it references.
type PendingApproval struct {
	domain.Approval
	ItemDetails *repos.ItemDetails `json:"item_details,omitempty"`
}

// DecideInput carries one decision. ApproverRole is the deciding user's role
// as authenticated, not a client-supplied value.
type DecideInput struct {
	ApprovalID    uuid.UUID
	ApproverID    uuid.UUID
	ApproverRole  string
	Status        string
	Comments      string
	RevisionNotes string
}

// ApprovalStatistics is the aggregate dashboard view over all approvals.
type ApprovalStatistics struct {
	ByStatus               map[string]int64        `json:"by_status"`
	ByTypeAndStatus        []repos.TypeStatusCount `json:"by_type_and_status"`
	AvgDecisionHoursByType map[string]float64      `json:"avg_decision_hours_by_type"`
	PendingByAge           map[string]int64        `json:"pending_by_age"`
}

type ApprovalService interface {
	// CreateForItem inserts the single pending approval for a freshly created
	// artifact. Producers call it inside the artifact's transaction; the
	// role-queue notification is the producer's job, after commit.
	CreateForItem(dbc dbctx.Context, itemType string, itemID uuid.UUID) (*domain.Approval, error)
	// RouteFor exposes the routed role so producers can notify the right queue.
	RouteFor(itemType string) (string, error)
	PendingForApprover(ctx context.Context, approverID uuid.UUID) ([]PendingApproval, error)
	Decide(ctx context.Context, in DecideInput) (*domain.Approval, error)
	Assign(ctx context.Context, approvalID, approverID uuid.UUID) (*domain.Approval, error)
	History(ctx context.Context, itemType string, itemID uuid.UUID) ([]*domain.Approval, error)
	Statistics(ctx context.Context) (*ApprovalStatistics, error)
}

type approvalService struct {
	db        *gorm.DB
	log       *logger.Logger
	approvals repos.ApprovalRepo
	tracks    repos.TrackRepo
	routing   *RoutingTable
	resolvers map[string]artifactMetaFn
	notifier  ApprovalNotifier
}

func NewApprovalService(
	db *gorm.DB,
	baseLog *logger.Logger,
	approvals repos.ApprovalRepo,
	tracks repos.TrackRepo,
	narrations repos.NarratorRecordingRepo,
	mixes repos.MixedTrackRepo,
	finals repos.FinalCompositionRepo,
	routing *RoutingTable,
	notifier ApprovalNotifier,
) ApprovalService {
	return &approvalService{
		db:        db,
		log:       baseLog.With("service", "ApprovalService"),
		approvals: approvals,
		tracks:    tracks,
		routing:   routing,
		resolvers: artifactResolvers(tracks, narrations, mixes, finals),
		notifier:  notifier,
	}
}

func (s *approvalService) RouteFor(itemType string) (string, error) {
	role, ok := s.routing.RoleFor(itemType)
	if !ok {
		return "", fmt.Errorf("%w: unknown item type %q", apperrors.ErrInvalidArgument, itemType)
	}
	return role, nil
}

func (s *approvalService) CreateForItem(dbc dbctx.Context, itemType string, itemID uuid.UUID) (*domain.Approval, error) {
	if _, ok := s.routing.RoleFor(itemType); !ok {
		return nil, fmt.Errorf("%w: unknown item type %q", apperrors.ErrInvalidArgument, itemType)
	}
	if itemID == uuid.Nil {
		return nil, fmt.Errorf("%w: item id required", apperrors.ErrInvalidArgument)
	}

	approval := &domain.Approval{
		ItemType: itemType,
		ItemID:   itemID,
		Status:   domain.ApprovalStatusPending,
	}
	created, err := s.approvals.Create(dbc, []*domain.Approval{approval})
	if err != nil {
		return nil, err
	}
	return created[0], nil
}

func (s *approvalService) PendingForApprover(ctx context.Context, approverID uuid.UUID) ([]PendingApproval, error) {
	if approverID == uuid.Nil {
		return nil, fmt.Errorf("%w: approver id required", apperrors.ErrInvalidArgument)
	}
	dbc := dbctx.Context{Ctx: ctx}

	rows, err := s.approvals.GetPendingForApprover(dbc, approverID)
	if err != nil {
		return nil, err
	}

	// Batch the enrichment joins, one per item type present in the pool.
	idsByType := make(map[string][]uuid.UUID)
	for _, row := range rows {
		idsByType[row.ItemType] = append(idsByType[row.ItemType], row.ItemID)
	}
	detailsByType := make(map[string]map[uuid.UUID]*repos.ItemDetails, len(idsByType))
	for itemType, ids := range idsByType {
		resolve, ok := s.resolvers[itemType]
		if !ok {
			continue
		}
		details, err := resolve(dbc, ids)
		if err != nil {
			return nil, err
		}
		detailsByType[itemType] = details
	}

	out := make([]PendingApproval, 0, len(rows))
	for _, row := range rows {
		entry := PendingApproval{Approval: *row}
		if details, ok := detailsByType[row.ItemType]; ok {
			entry.ItemDetails = details[row.ItemID]
		}
		out = append(out, entry)
	}
	return out, nil
}

func (s *approvalService) Decide(ctx context.Context, in DecideInput) (*domain.Approval, error) {
	if in.ApprovalID == uuid.Nil || in.ApproverID == uuid.Nil {
		return nil, fmt.Errorf("%w: approval id and approver id required", apperrors.ErrInvalidArgument)
	}
	if !domain.ValidDecisionStatus(in.Status) {
		return nil, fmt.Errorf("%w: invalid decision status %q", apperrors.ErrInvalidArgument, in.Status)
	}
	dbc := dbctx.Context{Ctx: ctx}

	existing, err := s.approvals.GetByIDs(dbc, []uuid.UUID{in.ApprovalID})
	if err != nil {
		return nil, err
	}
	if len(existing) == 0 {
		return nil, fmt.Errorf("%w: approval %s", apperrors.ErrNotFound, in.ApprovalID)
	}
	if !s.routing.CanDecide(in.ApproverRole, existing[0].ItemType) {
		return nil, fmt.Errorf("%w: role %q may not decide %s approvals", apperrors.ErrUnauthorized, in.ApproverRole, existing[0].ItemType)
	}

	now := time.Now()
	ok, err := s.approvals.DecideIfPending(dbc, in.ApprovalID, map[string]interface{}{
		"status":         in.Status,
		"approver_id":    in.ApproverID,
		"comments":       in.Comments,
		"revision_notes": in.RevisionNotes,
		"decision_date":  now,
	})
	if err != nil {
		return nil, err
	}
	if !ok {
		// Distinguish a concurrent decision from a concurrent delete.
		current, rerr := s.approvals.GetByIDs(dbc, []uuid.UUID{in.ApprovalID})
		if rerr != nil {
			return nil, rerr
		}
		if len(current) == 0 {
			return nil, fmt.Errorf("%w: approval %s", apperrors.ErrNotFound, in.ApprovalID)
		}
		return nil, fmt.Errorf("%w: approval %s already decided", apperrors.ErrConflict, in.ApprovalID)
	}

	decided, err := s.approvals.GetByIDs(dbc, []uuid.UUID{in.ApprovalID})
	if err != nil || len(decided) == 0 {
		// Decision committed; return the in-memory view rather than failing.
		s.log.Warn("Failed to reload decided approval", "approvalID", in.ApprovalID, "error", err)
		final := *existing[0]
		final.Status = in.Status
		final.ApproverID = &in.ApproverID
		final.Comments = in.Comments
		final.RevisionNotes = in.RevisionNotes
		final.DecisionDate = &now
		decided = []*domain.Approval{&final}
	}

	s.notifier.DecisionMade(decided[0])
	if in.Status == domain.ApprovalStatusApproved && decided[0].ItemType == domain.ItemTypeTrack {
		s.notifyTrackApproved(dbc, decided[0].ItemID)
	}
	return decided[0], nil
}

// notifyTrackApproved tells the mixer queue a track cleared review. Lookup
// failures are logged and swallowed: the decision itself already committed.
func (s *approvalService) notifyTrackApproved(dbc dbctx.Context, trackID uuid.UUID) {
	parent, err := s.tracks.GetParent(dbc, trackID)
	if err != nil {
		s.log.Warn("Failed to resolve approved track parent", "trackID", trackID, "error", err)
		return
	}
	if parent == nil {
		return
	}
	s.notifier.TrackApprovedForMixing(parent.TrackID, parent.SessionID, parent.ShabadID)
}

func (s *approvalService) Assign(ctx context.Context, approvalID, approverID uuid.UUID) (*domain.Approval, error) {
	if approvalID == uuid.Nil || approverID == uuid.Nil {
		return nil, fmt.Errorf("%w: approval id and approver id required", apperrors.ErrInvalidArgument)
	}
	dbc := dbctx.Context{Ctx: ctx}

	ok, err := s.approvals.AssignIfPending(dbc, approvalID, approverID)
	if err != nil {
		return nil, err
	}
	if !ok {
		existing, err := s.approvals.GetByIDs(dbc, []uuid.UUID{approvalID})
		if err != nil {
			return nil, err
		}
		if len(existing) == 0 {
			return nil, fmt.Errorf("%w: approval %s", apperrors.ErrNotFound, approvalID)
		}
		return nil, fmt.Errorf("%w: approval %s already decided", apperrors.ErrConflict, approvalID)
	}

	assigned, err := s.approvals.GetByIDs(dbc, []uuid.UUID{approvalID})
	if err != nil {
		return nil, err
	}
	if len(assigned) == 0 {
		return nil, fmt.Errorf("%w: approval %s", apperrors.ErrNotFound, approvalID)
	}
	return assigned[0], nil
}

func (s *approvalService) History(ctx context.Context, itemType string, itemID uuid.UUID) ([]*domain.Approval, error) {
	if !domain.ValidItemType(itemType) {
		return nil, fmt.Errorf("%w: unknown item type %q", apperrors.ErrInvalidArgument, itemType)
	}
	if itemID == uuid.Nil {
		return nil, fmt.Errorf("%w: item id required", apperrors.ErrInvalidArgument)
	}
	return s.approvals.GetByItem(dbctx.Context{Ctx: ctx}, itemType, itemID)
}

func (s *approvalService) Statistics(ctx context.Context) (*ApprovalStatistics, error) {
	stats := &ApprovalStatistics{}

	group, gctx := errgroup.WithContext(ctx)
	dbc := dbctx.Context{Ctx: gctx}

	group.Go(func() error {
		byStatus, err := s.approvals.CountByStatus(dbc)
		if err != nil {
			return err
		}
		stats.ByStatus = byStatus
		return nil
	})
	group.Go(func() error {
		byTypeAndStatus, err := s.approvals.CountByTypeAndStatus(dbc)
		if err != nil {
			return err
		}
		stats.ByTypeAndStatus = byTypeAndStatus
		return nil
	})
	group.Go(func() error {
		avgHours, err := s.approvals.AvgDecisionHoursByType(dbc)
		if err != nil {
			return err
		}
		stats.AvgDecisionHoursByType = avgHours
		return nil
	})
	group.Go(func() error {
		byAge, err := s.approvals.PendingAgeBuckets(dbc)
		if err != nil {
			return err
		}
		stats.PendingByAge = byAge
		return nil
	})

	if err := group.Wait(); err != nil {
		return nil, err
	}
	return stats, nil
}
