package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/raagrecording/raagrecording-backend/internal/data/repos"
	"github.com/raagrecording/raagrecording-backend/internal/domain"
	"github.com/raagrecording/raagrecording-backend/internal/pkg/dbctx"
	apperrors "github.com/raagrecording/raagrecording-backend/internal/pkg/errors"
	"github.com/raagrecording/raagrecording-backend/internal/pkg/logger"
)

// RecordingService manages recording sessions and the raw performance tracks
// captured in them. AddTrack is the producer for track approvals: the track
// and its pending approval are created in one transaction.
type RecordingService interface {
	CreateSession(ctx context.Context, session *domain.RecordingSession) (*domain.RecordingSession, error)
	GetSession(ctx context.Context, id uuid.UUID) (*domain.RecordingSession, error)
	ListSessions(ctx context.Context, filter repos.SessionFilter) ([]*domain.RecordingSession, int64, error)
	UpdateSession(ctx context.Context, id uuid.UUID, updates map[string]interface{}) (*domain.RecordingSession, error)
	AddTrack(ctx context.Context, track *domain.Track) (*domain.Track, *domain.Approval, error)
	ListTracks(ctx context.Context, filter repos.TrackFilter) ([]*domain.Track, int64, error)
	SessionTracks(ctx context.Context, sessionID uuid.UUID) ([]*domain.Track, error)
	DeleteTrack(ctx context.Context, id uuid.UUID) error
}

type recordingService struct {
	db        *gorm.DB
	log       *logger.Logger
	sessions  repos.RecordingSessionRepo
	tracks    repos.TrackRepo
	approvals repos.ApprovalRepo
	engine    ApprovalService
	notifier  ApprovalNotifier
}

func NewRecordingService(
	db *gorm.DB,
	baseLog *logger.Logger,
	sessions repos.RecordingSessionRepo,
	tracks repos.TrackRepo,
	approvals repos.ApprovalRepo,
	engine ApprovalService,
	notifier ApprovalNotifier,
) RecordingService {
	return &recordingService{
		db:        db,
		log:       baseLog.With("service", "RecordingService"),
		sessions:  sessions,
		tracks:    tracks,
		approvals: approvals,
		engine:    engine,
		notifier:  notifier,
	}
}

func (s *recordingService) CreateSession(ctx context.Context, session *domain.RecordingSession) (*domain.RecordingSession, error) {
	if session == nil || session.ShabadID == uuid.Nil || session.SessionName == "" {
		return nil, fmt.Errorf("%w: shabad id and session name required", apperrors.ErrInvalidArgument)
	}
	if session.Status == "" {
		session.Status = domain.SessionStatusScheduled
	}
	created, err := s.sessions.Create(dbctx.Context{Ctx: ctx}, []*domain.RecordingSession{session})
	if err != nil {
		return nil, err
	}
	return created[0], nil
}

func (s *recordingService) GetSession(ctx context.Context, id uuid.UUID) (*domain.RecordingSession, error) {
	rows, err := s.sessions.GetByIDs(dbctx.Context{Ctx: ctx}, []uuid.UUID{id})
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: recording session %s", apperrors.ErrNotFound, id)
	}
	return rows[0], nil
}

func (s *recordingService) ListSessions(ctx context.Context, filter repos.SessionFilter) ([]*domain.RecordingSession, int64, error) {
	return s.sessions.List(dbctx.Context{Ctx: ctx}, filter)
}

func (s *recordingService) UpdateSession(ctx context.Context, id uuid.UUID, updates map[string]interface{}) (*domain.RecordingSession, error) {
	if id == uuid.Nil {
		return nil, fmt.Errorf("%w: session id required", apperrors.ErrInvalidArgument)
	}
	if status, ok := updates["status"].(string); ok {
		switch status {
		case domain.SessionStatusScheduled, domain.SessionStatusInProgress, domain.SessionStatusCompleted:
		default:
			return nil, fmt.Errorf("%w: invalid session status %q", apperrors.ErrInvalidArgument, status)
		}
		// Stamp the workflow timestamps alongside the transition.
		now := time.Now()
		if status == domain.SessionStatusInProgress {
			updates["started_at"] = now
		}
		if status == domain.SessionStatusCompleted {
			updates["ended_at"] = now
		}
	}
	dbc := dbctx.Context{Ctx: ctx}
	if err := s.sessions.UpdateFields(dbc, id, updates); err != nil {
		return nil, err
	}
	rows, err := s.sessions.GetByIDs(dbc, []uuid.UUID{id})
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: recording session %s", apperrors.ErrNotFound, id)
	}
	return rows[0], nil
}

func (s *recordingService) AddTrack(ctx context.Context, track *domain.Track) (*domain.Track, *domain.Approval, error) {
	if track == nil || track.SessionID == uuid.Nil || track.PerformerID == uuid.Nil {
		return nil, nil, fmt.Errorf("%w: session id and performer id required", apperrors.ErrInvalidArgument)
	}
	if track.TrackName == "" || track.StorageKey == "" {
		return nil, nil, fmt.Errorf("%w: track name and storage key required", apperrors.ErrInvalidArgument)
	}

	sessions, err := s.sessions.GetByIDs(dbctx.Context{Ctx: ctx}, []uuid.UUID{track.SessionID})
	if err != nil {
		return nil, nil, err
	}
	if len(sessions) == 0 {
		return nil, nil, fmt.Errorf("%w: recording session %s", apperrors.ErrNotFound, track.SessionID)
	}

	var approval *domain.Approval
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: ctx, Tx: tx}
		if _, err := s.tracks.Create(dbc, []*domain.Track{track}); err != nil {
			return err
		}
		created, err := s.engine.CreateForItem(dbc, domain.ItemTypeTrack, track.ID)
		if err != nil {
			return err
		}
		approval = created
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	if role, err := s.engine.RouteFor(domain.ItemTypeTrack); err == nil {
		s.notifier.PendingCreated(role, approval)
	}
	return track, approval, nil
}

func (s *recordingService) ListTracks(ctx context.Context, filter repos.TrackFilter) ([]*domain.Track, int64, error) {
	return s.tracks.List(dbctx.Context{Ctx: ctx}, filter)
}

func (s *recordingService) SessionTracks(ctx context.Context, sessionID uuid.UUID) ([]*domain.Track, error) {
	if sessionID == uuid.Nil {
		return nil, fmt.Errorf("%w: session id required", apperrors.ErrInvalidArgument)
	}
	return s.tracks.GetBySession(dbctx.Context{Ctx: ctx}, sessionID)
}

// DeleteTrack removes a track and its approval records. Approvals go first so
// a failure never leaves review rows pointing at a missing artifact.
func (s *recordingService) DeleteTrack(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return fmt.Errorf("%w: track id required", apperrors.ErrInvalidArgument)
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: ctx, Tx: tx}
		if err := s.approvals.DeleteByItem(dbc, domain.ItemTypeTrack, id); err != nil {
			return err
		}
		return s.tracks.Delete(dbc, id)
	})
}
