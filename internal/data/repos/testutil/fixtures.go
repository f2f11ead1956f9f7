package testutil

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/raagrecording/raagrecording-backend/internal/domain"
)

// Seed helpers insert minimal valid rows directly through the tx so repo
// tests don't depend on the repos they exercise.

func SeedUser(tb testing.TB, tx *gorm.DB, role string) *domain.User {
	tb.Helper()
	id := uuid.New()
	user := &domain.User{
		ID:       id,
		Username: fmt.Sprintf("user_%s", id.String()[:8]),
		Email:    fmt.Sprintf("%s@example.com", id.String()[:8]),
		Password: "x",
		FullName: "Test User",
		Role:     role,
		IsActive: true,
	}
	if err := tx.Create(user).Error; err != nil {
		tb.Fatalf("seed user: %v", err)
	}
	return user
}

func SeedRaag(tb testing.TB, tx *gorm.DB) *domain.Raag {
	tb.Helper()
	id := uuid.New()
	raag := &domain.Raag{
		ID:   id,
		Name: fmt.Sprintf("Raag %s", id.String()[:8]),
	}
	if err := tx.Create(raag).Error; err != nil {
		tb.Fatalf("seed raag: %v", err)
	}
	return raag
}

func SeedShabad(tb testing.TB, tx *gorm.DB, raagID uuid.UUID) *domain.Shabad {
	tb.Helper()
	shabad := &domain.Shabad{
		ID:        uuid.New(),
		RaagID:    raagID,
		FirstLine: "test first line",
	}
	if err := tx.Create(shabad).Error; err != nil {
		tb.Fatalf("seed shabad: %v", err)
	}
	return shabad
}

func SeedSession(tb testing.TB, tx *gorm.DB, shabadID uuid.UUID) *domain.RecordingSession {
	tb.Helper()
	session := &domain.RecordingSession{
		ID:          uuid.New(),
		ShabadID:    shabadID,
		SessionName: "test session",
		TakeNumber:  1,
		Status:      domain.SessionStatusScheduled,
	}
	if err := tx.Create(session).Error; err != nil {
		tb.Fatalf("seed session: %v", err)
	}
	return session
}

func SeedTrack(tb testing.TB, tx *gorm.DB, sessionID, performerID uuid.UUID) *domain.Track {
	tb.Helper()
	track := &domain.Track{
		ID:          uuid.New(),
		SessionID:   sessionID,
		PerformerID: performerID,
		TrackName:   "test track",
		StorageKey:  fmt.Sprintf("audio/%s.wav", uuid.New()),
		TakeNumber:  1,
	}
	if err := tx.Create(track).Error; err != nil {
		tb.Fatalf("seed track: %v", err)
	}
	return track
}
