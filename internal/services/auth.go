package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/raagrecording/raagrecording-backend/internal/data/repos"
	"github.com/raagrecording/raagrecording-backend/internal/domain"
	"github.com/raagrecording/raagrecording-backend/internal/pkg/dbctx"
	"github.com/raagrecording/raagrecording-backend/internal/pkg/envutil"
	apperrors "github.com/raagrecording/raagrecording-backend/internal/pkg/errors"
	"github.com/raagrecording/raagrecording-backend/internal/pkg/logger"
)

// TokenClaims is the JWT payload. Role rides in the token so middleware can
// gate routes without a user lookup.
type TokenClaims struct {
	UserID   uuid.UUID `json:"user_id"`
	Username string    `json:"username"`
	Role     string    `json:"role"`
	jwt.RegisteredClaims
}

type RegisterInput struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	FullName string `json:"full_name" binding:"required"`
	Role     string `json:"role" binding:"required"`
	Phone    string `json:"phone"`
}

type LoginInput struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type AuthResult struct {
	Token string       `json:"token"`
	User  *domain.User `json:"user"`
}

type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*AuthResult, error)
	Login(ctx context.Context, in LoginInput) (*AuthResult, error)
	ParseToken(token string) (*TokenClaims, error)
}

type authService struct {
	log      *logger.Logger
	users    repos.UserRepo
	secret   []byte
	tokenTTL time.Duration
}

func NewAuthService(baseLog *logger.Logger, users repos.UserRepo) (AuthService, error) {
	secret := envutil.String("JWT_SECRET", "")
	if secret == "" {
		return nil, fmt.Errorf("missing JWT_SECRET")
	}
	ttlHours := envutil.Int("JWT_TTL_HOURS", 24)

	return &authService{
		log:      baseLog.With("service", "AuthService"),
		users:    users,
		secret:   []byte(secret),
		tokenTTL: time.Duration(ttlHours) * time.Hour,
	}, nil
}

func (s *authService) Register(ctx context.Context, in RegisterInput) (*AuthResult, error) {
	in.Username = strings.TrimSpace(in.Username)
	if !domain.ValidRole(in.Role) {
		return nil, fmt.Errorf("%w: unknown role %q", apperrors.ErrInvalidArgument, in.Role)
	}

	dbc := dbctx.Context{Ctx: ctx}
	exists, err := s.users.UsernameExists(dbc, in.Username)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("%w: username %q already taken", apperrors.ErrConflict, in.Username)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Username: in.Username,
		Email:    strings.TrimSpace(in.Email),
		Password: string(hashed),
		FullName: in.FullName,
		Role:     in.Role,
		Phone:    in.Phone,
		IsActive: true,
	}
	created, err := s.users.Create(dbc, []*domain.User{user})
	if err != nil {
		return nil, err
	}

	return s.issue(created[0])
}

func (s *authService) Login(ctx context.Context, in LoginInput) (*AuthResult, error) {
	users, err := s.users.GetByUsernames(dbctx.Context{Ctx: ctx}, []string{strings.TrimSpace(in.Username)})
	if err != nil {
		return nil, err
	}
	if len(users) == 0 || !users[0].IsActive {
		return nil, fmt.Errorf("%w: invalid credentials", apperrors.ErrUnauthorized)
	}
	user := users[0]

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(in.Password)); err != nil {
		return nil, fmt.Errorf("%w: invalid credentials", apperrors.ErrUnauthorized)
	}
	return s.issue(user)
}

func (s *authService) issue(user *domain.User) (*AuthResult, error) {
	now := time.Now()
	claims := TokenClaims{
		UserID:   user.ID,
		Username: user.Username,
		Role:     user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return nil, err
	}
	return &AuthResult{Token: signed, User: user}, nil
}

func (s *authService) ParseToken(token string) (*TokenClaims, error) {
	claims := &TokenClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, fmt.Errorf("%w: invalid token", apperrors.ErrUnauthorized)
	}
	return claims, nil
}
