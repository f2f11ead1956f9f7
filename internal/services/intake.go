package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/raagrecording/raagrecording-backend/internal/data/repos"
	"github.com/raagrecording/raagrecording-backend/internal/domain"
	"github.com/raagrecording/raagrecording-backend/internal/pkg/dbctx"
	apperrors "github.com/raagrecording/raagrecording-backend/internal/pkg/errors"
	"github.com/raagrecording/raagrecording-backend/internal/pkg/logger"
)

// IntakeService receives downstream artifacts (mixes, narrations, final
// compositions) into the review pipeline. Each submission creates the
// artifact plus exactly one pending approval in a single transaction; a
// resubmission after rejection is a brand new artifact and approval.
type IntakeService interface {
	SubmitMixedTrack(ctx context.Context, mix *domain.MixedTrack) (*domain.MixedTrack, *domain.Approval, error)
	SubmitNarratorRecording(ctx context.Context, rec *domain.NarratorRecording) (*domain.NarratorRecording, *domain.Approval, error)
	SubmitFinalComposition(ctx context.Context, comp *domain.FinalComposition) (*domain.FinalComposition, *domain.Approval, error)
	// DeleteArtifact removes a submitted artifact and its approval records,
	// approvals first so review rows never dangle.
	DeleteArtifact(ctx context.Context, itemType string, itemID uuid.UUID) error
}

type intakeService struct {
	db         *gorm.DB
	log        *logger.Logger
	mixes      repos.MixedTrackRepo
	narrations repos.NarratorRecordingRepo
	finals     repos.FinalCompositionRepo
	approvals  repos.ApprovalRepo
	engine     ApprovalService
	notifier   ApprovalNotifier
}

func NewIntakeService(
	db *gorm.DB,
	baseLog *logger.Logger,
	mixes repos.MixedTrackRepo,
	narrations repos.NarratorRecordingRepo,
	finals repos.FinalCompositionRepo,
	approvals repos.ApprovalRepo,
	engine ApprovalService,
	notifier ApprovalNotifier,
) IntakeService {
	return &intakeService{
		db:         db,
		log:        baseLog.With("service", "IntakeService"),
		mixes:      mixes,
		narrations: narrations,
		finals:     finals,
		approvals:  approvals,
		engine:     engine,
		notifier:   notifier,
	}
}

// submit runs the shared transaction shape: insert the artifact, then its
// pending approval, then notify the routed role queue once committed.
func (s *intakeService) submit(ctx context.Context, itemType string, createArtifact func(dbc dbctx.Context) (uuid.UUID, error)) (*domain.Approval, error) {
	var approval *domain.Approval
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: ctx, Tx: tx}
		itemID, err := createArtifact(dbc)
		if err != nil {
			return err
		}
		created, err := s.engine.CreateForItem(dbc, itemType, itemID)
		if err != nil {
			return err
		}
		approval = created
		return nil
	})
	if err != nil {
		return nil, err
	}

	if role, err := s.engine.RouteFor(itemType); err == nil {
		s.notifier.PendingCreated(role, approval)
	}
	return approval, nil
}

func (s *intakeService) SubmitMixedTrack(ctx context.Context, mix *domain.MixedTrack) (*domain.MixedTrack, *domain.Approval, error) {
	if mix == nil || mix.SessionID == uuid.Nil || mix.MixerID == uuid.Nil {
		return nil, nil, fmt.Errorf("%w: session id and mixer id required", apperrors.ErrInvalidArgument)
	}
	if mix.StorageKey == "" {
		return nil, nil, fmt.Errorf("%w: storage key required", apperrors.ErrInvalidArgument)
	}
	if mix.MixVersion <= 0 {
		mix.MixVersion = 1
	}

	approval, err := s.submit(ctx, domain.ItemTypeMixedTrack, func(dbc dbctx.Context) (uuid.UUID, error) {
		if _, err := s.mixes.Create(dbc, []*domain.MixedTrack{mix}); err != nil {
			return uuid.Nil, err
		}
		return mix.ID, nil
	})
	if err != nil {
		return nil, nil, err
	}
	return mix, approval, nil
}

func (s *intakeService) SubmitNarratorRecording(ctx context.Context, rec *domain.NarratorRecording) (*domain.NarratorRecording, *domain.Approval, error) {
	if rec == nil || rec.ShabadID == uuid.Nil || rec.NarratorID == uuid.Nil {
		return nil, nil, fmt.Errorf("%w: shabad id and narrator id required", apperrors.ErrInvalidArgument)
	}
	if rec.StorageKey == "" {
		return nil, nil, fmt.Errorf("%w: storage key required", apperrors.ErrInvalidArgument)
	}

	approval, err := s.submit(ctx, domain.ItemTypeNarratorRecording, func(dbc dbctx.Context) (uuid.UUID, error) {
		if _, err := s.narrations.Create(dbc, []*domain.NarratorRecording{rec}); err != nil {
			return uuid.Nil, err
		}
		return rec.ID, nil
	})
	if err != nil {
		return nil, nil, err
	}
	return rec, approval, nil
}

func (s *intakeService) SubmitFinalComposition(ctx context.Context, comp *domain.FinalComposition) (*domain.FinalComposition, *domain.Approval, error) {
	if comp == nil || comp.ShabadID == uuid.Nil || comp.FinalMixerID == uuid.Nil {
		return nil, nil, fmt.Errorf("%w: shabad id and final mixer id required", apperrors.ErrInvalidArgument)
	}
	if comp.StorageKey == "" {
		return nil, nil, fmt.Errorf("%w: storage key required", apperrors.ErrInvalidArgument)
	}
	if comp.VersionNumber <= 0 {
		comp.VersionNumber = 1
	}

	approval, err := s.submit(ctx, domain.ItemTypeFinalMix, func(dbc dbctx.Context) (uuid.UUID, error) {
		if _, err := s.finals.Create(dbc, []*domain.FinalComposition{comp}); err != nil {
			return uuid.Nil, err
		}
		return comp.ID, nil
	})
	if err != nil {
		return nil, nil, err
	}
	return comp, approval, nil
}

func (s *intakeService) DeleteArtifact(ctx context.Context, itemType string, itemID uuid.UUID) error {
	if itemID == uuid.Nil {
		return fmt.Errorf("%w: item id required", apperrors.ErrInvalidArgument)
	}

	var deleteRow func(dbc dbctx.Context, id uuid.UUID) error
	switch itemType {
	case domain.ItemTypeMixedTrack:
		deleteRow = s.mixes.Delete
	case domain.ItemTypeNarratorRecording:
		deleteRow = s.narrations.Delete
	case domain.ItemTypeFinalMix:
		deleteRow = s.finals.Delete
	default:
		return fmt.Errorf("%w: unknown item type %q", apperrors.ErrInvalidArgument, itemType)
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: ctx, Tx: tx}
		if err := s.approvals.DeleteByItem(dbc, itemType, itemID); err != nil {
			return err
		}
		return deleteRow(dbc, itemID)
	})
}
