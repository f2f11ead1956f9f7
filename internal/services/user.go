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

type UserService interface {
	Get(ctx context.Context, id uuid.UUID) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
	ByRole(ctx context.Context, role string) ([]*domain.User, error)
	Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) (*domain.User, error)
	Deactivate(ctx context.Context, id uuid.UUID) error
}

type userService struct {
	log   *logger.Logger
	users repos.UserRepo
}

func NewUserService(baseLog *logger.Logger, users repos.UserRepo) UserService {
	return &userService{
		log:   baseLog.With("service", "UserService"),
		users: users,
	}
}

func (s *userService) Get(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	rows, err := s.users.GetByIDs(dbctx.Context{Ctx: ctx}, []uuid.UUID{id})
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: user %s", apperrors.ErrNotFound, id)
	}
	return rows[0], nil
}

func (s *userService) List(ctx context.Context) ([]*domain.User, error) {
	return s.users.List(dbctx.Context{Ctx: ctx})
}

func (s *userService) ByRole(ctx context.Context, role string) ([]*domain.User, error) {
	if !domain.ValidRole(role) {
		return nil, fmt.Errorf("%w: unknown role %q", apperrors.ErrInvalidArgument, role)
	}
	return s.users.GetByRole(dbctx.Context{Ctx: ctx}, role)
}

func (s *userService) Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) (*domain.User, error) {
	if id == uuid.Nil {
		return nil, fmt.Errorf("%w: user id required", apperrors.ErrInvalidArgument)
	}
	if role, ok := updates["role"].(string); ok && !domain.ValidRole(role) {
		return nil, fmt.Errorf("%w: unknown role %q", apperrors.ErrInvalidArgument, role)
	}
	// Password changes go through the auth service, never a field update.
	delete(updates, "password")

	dbc := dbctx.Context{Ctx: ctx}
	if err := s.users.UpdateFields(dbc, id, updates); err != nil {
		return nil, err
	}
	rows, err := s.users.GetByIDs(dbc, []uuid.UUID{id})
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: user %s", apperrors.ErrNotFound, id)
	}
	return rows[0], nil
}

func (s *userService) Deactivate(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return fmt.Errorf("%w: user id required", apperrors.ErrInvalidArgument)
	}
	return s.users.UpdateFields(dbctx.Context{Ctx: ctx}, id, map[string]interface{}{"is_active": false})
}
