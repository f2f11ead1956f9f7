package services

import (
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/raagrecording/raagrecording-backend/internal/domain"
	apperrors "github.com/raagrecording/raagrecording-backend/internal/pkg/errors"
	"github.com/raagrecording/raagrecording-backend/internal/pkg/logger"
)

func newTestAuthService(t *testing.T) *authService {
	t.Helper()
	t.Setenv("JWT_SECRET", "test-secret")

	log, err := logger.New("test")
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	svc, err := NewAuthService(log, nil)
	if err != nil {
		t.Fatalf("NewAuthService: %v", err)
	}
	return svc.(*authService)
}

func TestTokenRoundTrip(t *testing.T) {
	svc := newTestAuthService(t)

	user := &domain.User{
		ID:       uuid.New(),
		Username: "gurmeet",
		Role:     domain.RoleApprover,
	}
	result, err := svc.issue(user)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if result.Token == "" {
		t.Fatal("empty token")
	}

	claims, err := svc.ParseToken(result.Token)
	if err != nil {
		t.Fatalf("ParseToken: %v", err)
	}
	if claims.UserID != user.ID || claims.Username != user.Username || claims.Role != user.Role {
		t.Fatalf("claims mismatch: %+v", claims)
	}
}

func TestParseTokenRejectsGarbage(t *testing.T) {
	svc := newTestAuthService(t)

	for _, token := range []string{"", "not-a-jwt", "a.b.c"} {
		if _, err := svc.ParseToken(token); !errors.Is(err, apperrors.ErrUnauthorized) {
			t.Errorf("ParseToken(%q): err = %v, want ErrUnauthorized", token, err)
		}
	}
}

func TestParseTokenRejectsForeignSignature(t *testing.T) {
	svc := newTestAuthService(t)
	user := &domain.User{ID: uuid.New(), Username: "x", Role: domain.RoleMixer}
	result, err := svc.issue(user)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	other := *svc
	other.secret = []byte("different-secret")
	if _, err := other.ParseToken(result.Token); !errors.Is(err, apperrors.ErrUnauthorized) {
		t.Errorf("foreign signature: err = %v, want ErrUnauthorized", err)
	}
}
