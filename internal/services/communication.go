package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/raagrecording/raagrecording-backend/internal/data/repos"
	"github.com/raagrecording/raagrecording-backend/internal/domain"
	"github.com/raagrecording/raagrecording-backend/internal/pkg/dbctx"
	apperrors "github.com/raagrecording/raagrecording-backend/internal/pkg/errors"
	"github.com/raagrecording/raagrecording-backend/internal/pkg/logger"
)

type CommunicationService interface {
	Send(ctx context.Context, comm *domain.Communication) (*domain.Communication, error)
	Inbox(ctx context.Context, userID uuid.UUID, unreadOnly bool) ([]*domain.Communication, error)
	Thread(ctx context.Context, itemType string, itemID uuid.UUID) ([]*domain.Communication, error)
	MarkRead(ctx context.Context, id uuid.UUID) (*domain.Communication, error)
}

type communicationService struct {
	log      *logger.Logger
	comms    repos.CommunicationRepo
	notifier CommunicationNotifier
}

func NewCommunicationService(baseLog *logger.Logger, comms repos.CommunicationRepo, notifier CommunicationNotifier) CommunicationService {
	return &communicationService{
		log:      baseLog.With("service", "CommunicationService"),
		comms:    comms,
		notifier: notifier,
	}
}

func (s *communicationService) Send(ctx context.Context, comm *domain.Communication) (*domain.Communication, error) {
	if comm == nil || comm.FromUserID == uuid.Nil || comm.Message == "" {
		return nil, fmt.Errorf("%w: sender and message required", apperrors.ErrInvalidArgument)
	}
	if comm.RelatedItemType != "" && !domain.ValidItemType(comm.RelatedItemType) {
		return nil, fmt.Errorf("%w: unknown item type %q", apperrors.ErrInvalidArgument, comm.RelatedItemType)
	}

	created, err := s.comms.Create(dbctx.Context{Ctx: ctx}, []*domain.Communication{comm})
	if err != nil {
		return nil, err
	}
	saved := created[0]

	if saved.ToUserID != nil {
		s.notifier.MessageReceived(*saved.ToUserID, saved)
	}
	if saved.ShabadID != nil {
		s.notifier.ThreadUpdated(*saved.ShabadID, saved)
	}
	return saved, nil
}

func (s *communicationService) Inbox(ctx context.Context, userID uuid.UUID, unreadOnly bool) ([]*domain.Communication, error) {
	if userID == uuid.Nil {
		return nil, fmt.Errorf("%w: user id required", apperrors.ErrInvalidArgument)
	}
	return s.comms.GetForUser(dbctx.Context{Ctx: ctx}, userID, unreadOnly)
}

func (s *communicationService) Thread(ctx context.Context, itemType string, itemID uuid.UUID) ([]*domain.Communication, error) {
	if !domain.ValidItemType(itemType) {
		return nil, fmt.Errorf("%w: unknown item type %q", apperrors.ErrInvalidArgument, itemType)
	}
	if itemID == uuid.Nil {
		return nil, fmt.Errorf("%w: item id required", apperrors.ErrInvalidArgument)
	}
	return s.comms.GetThread(dbctx.Context{Ctx: ctx}, itemType, itemID)
}

func (s *communicationService) MarkRead(ctx context.Context, id uuid.UUID) (*domain.Communication, error) {
	if id == uuid.Nil {
		return nil, fmt.Errorf("%w: communication id required", apperrors.ErrInvalidArgument)
	}
	dbc := dbctx.Context{Ctx: ctx}

	ok, err := s.comms.MarkRead(dbc, id)
	if err != nil {
		return nil, err
	}
	rows, err := s.comms.GetByIDs(dbc, []uuid.UUID{id})
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: communication %s", apperrors.ErrNotFound, id)
	}
	if !ok && !rows[0].IsRead {
		// Guard failed but the row is still unread; should not happen.
		return nil, fmt.Errorf("%w: communication %s not marked read", apperrors.ErrConflict, id)
	}
	return rows[0], nil
}
