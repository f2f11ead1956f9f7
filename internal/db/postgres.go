package db

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/raagrecording/raagrecording-backend/internal/domain"
	"github.com/raagrecording/raagrecording-backend/internal/pkg/envutil"
	"github.com/raagrecording/raagrecording-backend/internal/pkg/logger"
)

type PostgresService struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPostgresService(log *logger.Logger) (*PostgresService, error) {
	serviceLog := log.With("service", "PostgresService")

	host := envutil.String("POSTGRES_HOST", "localhost")
	port := envutil.String("POSTGRES_PORT", "5432")
	user := envutil.String("POSTGRES_USER", "postgres")
	password := envutil.String("POSTGRES_PASSWORD", "")
	name := envutil.String("POSTGRES_NAME", "raagrecording")
	sslMode := envutil.String("POSTGRES_SSLMODE", "disable")

	dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s", user, password, host, port, name, sslMode)

	serviceLog.Info("Connecting to Postgres...", "host", host, "db", name)
	gdb, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Postgres: %w", err)
	}

	if err := gdb.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`).Error; err != nil {
		return nil, fmt.Errorf("failed to enable uuid-ossp extension: %w", err)
	}

	return &PostgresService{db: gdb, log: serviceLog}, nil
}

func (s *PostgresService) AutoMigrateAll() error {
	s.log.Info("Auto migrating postgres tables...")
	err := s.db.AutoMigrate(
		&domain.User{},
		&domain.Raag{},
		&domain.Shabad{},
		&domain.RecordingSession{},
		&domain.Track{},
		&domain.NarratorRecording{},
		&domain.MixedTrack{},
		&domain.FinalComposition{},
		&domain.Approval{},
		&domain.Communication{},
	)
	if err != nil {
		return fmt.Errorf("auto migration failed: %w", err)
	}
	return s.applyForeignKeys()
}

// applyForeignKeys wires the reference chain by hand since FK creation is
// disabled during migration. Approvals carry no FK on item_id: the reference
// is polymorphic and enforced by the engine (artifact deletion removes the
// approval row first).
func (s *PostgresService) applyForeignKeys() error {
	constraints := []struct {
		name string
		stmt string
	}{
		{"fk_shabads_raag_id", `ALTER TABLE "shabads" ADD CONSTRAINT "fk_shabads_raag_id" FOREIGN KEY ("raag_id") REFERENCES "raags"("id")`},
		{"fk_recording_sessions_shabad_id", `ALTER TABLE "recording_sessions" ADD CONSTRAINT "fk_recording_sessions_shabad_id" FOREIGN KEY ("shabad_id") REFERENCES "shabads"("id")`},
		{"fk_tracks_session_id", `ALTER TABLE "tracks" ADD CONSTRAINT "fk_tracks_session_id" FOREIGN KEY ("session_id") REFERENCES "recording_sessions"("id")`},
		{"fk_tracks_performer_id", `ALTER TABLE "tracks" ADD CONSTRAINT "fk_tracks_performer_id" FOREIGN KEY ("performer_id") REFERENCES "users"("id")`},
		{"fk_narrator_recordings_shabad_id", `ALTER TABLE "narrator_recordings" ADD CONSTRAINT "fk_narrator_recordings_shabad_id" FOREIGN KEY ("shabad_id") REFERENCES "shabads"("id")`},
		{"fk_narrator_recordings_narrator_id", `ALTER TABLE "narrator_recordings" ADD CONSTRAINT "fk_narrator_recordings_narrator_id" FOREIGN KEY ("narrator_id") REFERENCES "users"("id")`},
		{"fk_mixed_tracks_session_id", `ALTER TABLE "mixed_tracks" ADD CONSTRAINT "fk_mixed_tracks_session_id" FOREIGN KEY ("session_id") REFERENCES "recording_sessions"("id")`},
		{"fk_mixed_tracks_mixer_id", `ALTER TABLE "mixed_tracks" ADD CONSTRAINT "fk_mixed_tracks_mixer_id" FOREIGN KEY ("mixer_id") REFERENCES "users"("id")`},
		{"fk_final_compositions_shabad_id", `ALTER TABLE "final_compositions" ADD CONSTRAINT "fk_final_compositions_shabad_id" FOREIGN KEY ("shabad_id") REFERENCES "shabads"("id")`},
		{"fk_approvals_approver_id", `ALTER TABLE "approvals" ADD CONSTRAINT "fk_approvals_approver_id" FOREIGN KEY ("approver_id") REFERENCES "users"("id")`},
		{"fk_communications_from_user_id", `ALTER TABLE "communications" ADD CONSTRAINT "fk_communications_from_user_id" FOREIGN KEY ("from_user_id") REFERENCES "users"("id")`},
	}
	for _, c := range constraints {
		var exists bool
		if err := s.db.Raw(
			`SELECT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = ?)`, c.name,
		).Scan(&exists).Error; err != nil {
			return fmt.Errorf("checking constraint %s: %w", c.name, err)
		}
		if exists {
			continue
		}
		if err := s.db.Exec(c.stmt).Error; err != nil {
			return fmt.Errorf("adding constraint %s: %w", c.name, err)
		}
	}
	return nil
}

func (s *PostgresService) DB() *gorm.DB {
	return s.db
}
