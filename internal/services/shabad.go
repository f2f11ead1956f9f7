package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/raagrecording/raagrecording-backend/internal/data/repos"
	"github.com/raagrecording/raagrecording-backend/internal/domain"
	"github.com/raagrecording/raagrecording-backend/internal/pkg/dbctx"
	apperrors "github.com/raagrecording/raagrecording-backend/internal/pkg/errors"
	"github.com/raagrecording/raagrecording-backend/internal/pkg/logger"
)

// ShabadProgress is the per-shabad pipeline dashboard: how far the shabad has
// moved from recording through final composition.
type ShabadProgress struct {
	Shabad             *domain.Shabad     `json:"shabad"`
	SessionsByStatus   map[string]int64   `json:"sessions_by_status"`
	TrackApprovals     map[string]int64   `json:"track_approvals_by_status"`
	NarratorRecordings int64              `json:"narrator_recordings"`
	MixedTracks        int64              `json:"mixed_tracks"`
	FinalCompositions  *repos.FinalCounts `json:"final_compositions"`
}

type ShabadService interface {
	Create(ctx context.Context, shabad *domain.Shabad) (*domain.Shabad, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.Shabad, error)
	List(ctx context.Context, limit, offset int) ([]*domain.Shabad, int64, error)
	Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) (*domain.Shabad, error)
	ByRaag(ctx context.Context, raagID uuid.UUID) ([]*domain.Shabad, error)
	Progress(ctx context.Context, id uuid.UUID) (*ShabadProgress, error)
	Raags(ctx context.Context) ([]*repos.RaagWithCount, error)
	CreateRaag(ctx context.Context, raag *domain.Raag) (*domain.Raag, error)
}

type shabadService struct {
	log     *logger.Logger
	shabads repos.ShabadRepo
	raags   repos.RaagRepo
}

func NewShabadService(baseLog *logger.Logger, shabads repos.ShabadRepo, raags repos.RaagRepo) ShabadService {
	return &shabadService{
		log:     baseLog.With("service", "ShabadService"),
		shabads: shabads,
		raags:   raags,
	}
}

func (s *shabadService) Create(ctx context.Context, shabad *domain.Shabad) (*domain.Shabad, error) {
	if shabad == nil || shabad.RaagID == uuid.Nil || shabad.FirstLine == "" {
		return nil, fmt.Errorf("%w: raag id and first line required", apperrors.ErrInvalidArgument)
	}
	dbc := dbctx.Context{Ctx: ctx}
	raags, err := s.raags.GetByIDs(dbc, []uuid.UUID{shabad.RaagID})
	if err != nil {
		return nil, err
	}
	if len(raags) == 0 {
		return nil, fmt.Errorf("%w: raag %s", apperrors.ErrNotFound, shabad.RaagID)
	}
	created, err := s.shabads.Create(dbc, []*domain.Shabad{shabad})
	if err != nil {
		return nil, err
	}
	return created[0], nil
}

func (s *shabadService) Get(ctx context.Context, id uuid.UUID) (*domain.Shabad, error) {
	rows, err := s.shabads.GetByIDs(dbctx.Context{Ctx: ctx}, []uuid.UUID{id})
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: shabad %s", apperrors.ErrNotFound, id)
	}
	return rows[0], nil
}

func (s *shabadService) List(ctx context.Context, limit, offset int) ([]*domain.Shabad, int64, error) {
	return s.shabads.List(dbctx.Context{Ctx: ctx}, limit, offset)
}

func (s *shabadService) Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) (*domain.Shabad, error) {
	if id == uuid.Nil {
		return nil, fmt.Errorf("%w: shabad id required", apperrors.ErrInvalidArgument)
	}
	dbc := dbctx.Context{Ctx: ctx}
	if err := s.shabads.UpdateFields(dbc, id, updates); err != nil {
		return nil, err
	}
	rows, err := s.shabads.GetByIDs(dbc, []uuid.UUID{id})
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: shabad %s", apperrors.ErrNotFound, id)
	}
	return rows[0], nil
}

func (s *shabadService) ByRaag(ctx context.Context, raagID uuid.UUID) ([]*domain.Shabad, error) {
	if raagID == uuid.Nil {
		return nil, fmt.Errorf("%w: raag id required", apperrors.ErrInvalidArgument)
	}
	return s.shabads.GetByRaag(dbctx.Context{Ctx: ctx}, raagID)
}

func (s *shabadService) Progress(ctx context.Context, id uuid.UUID) (*ShabadProgress, error) {
	shabad, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	progress := &ShabadProgress{Shabad: shabad}

	group, gctx := errgroup.WithContext(ctx)
	dbc := dbctx.Context{Ctx: gctx}

	group.Go(func() error {
		sessions, err := s.shabads.SessionCountsByStatus(dbc, id)
		if err != nil {
			return err
		}
		progress.SessionsByStatus = sessions
		return nil
	})
	group.Go(func() error {
		approvals, err := s.shabads.TrackApprovalCountsByStatus(dbc, id)
		if err != nil {
			return err
		}
		progress.TrackApprovals = approvals
		return nil
	})
	group.Go(func() error {
		count, err := s.shabads.NarratorRecordingCount(dbc, id)
		if err != nil {
			return err
		}
		progress.NarratorRecordings = count
		return nil
	})
	group.Go(func() error {
		count, err := s.shabads.MixedTrackCount(dbc, id)
		if err != nil {
			return err
		}
		progress.MixedTracks = count
		return nil
	})
	group.Go(func() error {
		finals, err := s.shabads.FinalCompositionCounts(dbc, id)
		if err != nil {
			return err
		}
		progress.FinalCompositions = finals
		return nil
	})

	if err := group.Wait(); err != nil {
		return nil, err
	}
	return progress, nil
}

func (s *shabadService) Raags(ctx context.Context) ([]*repos.RaagWithCount, error) {
	return s.raags.ListWithShabadCounts(dbctx.Context{Ctx: ctx})
}

func (s *shabadService) CreateRaag(ctx context.Context, raag *domain.Raag) (*domain.Raag, error) {
	if raag == nil || raag.Name == "" {
		return nil, fmt.Errorf("%w: raag name required", apperrors.ErrInvalidArgument)
	}
	created, err := s.raags.Create(dbctx.Context{Ctx: ctx}, []*domain.Raag{raag})
	if err != nil {
		return nil, err
	}
	return created[0], nil
}
