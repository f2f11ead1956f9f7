package repos

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/raagrecording/raagrecording-backend/internal/domain"
	"github.com/raagrecording/raagrecording-backend/internal/pkg/dbctx"
	"github.com/raagrecording/raagrecording-backend/internal/pkg/logger"
)

// SessionFilter narrows ListSessions; zero values are ignored.
type SessionFilter struct {
	ShabadID uuid.UUID
	Status   string
	ArtistID uuid.UUID
	Location string
	Limit    int
	Offset   int
}

type RecordingSessionRepo interface {
	Create(dbc dbctx.Context, sessions []*domain.RecordingSession) ([]*domain.RecordingSession, error)
	GetByIDs(dbc dbctx.Context, ids []uuid.UUID) ([]*domain.RecordingSession, error)
	List(dbc dbctx.Context, filter SessionFilter) ([]*domain.RecordingSession, int64, error)
	UpdateFields(dbc dbctx.Context, id uuid.UUID, updates map[string]interface{}) error
}

type recordingSessionRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewRecordingSessionRepo(db *gorm.DB, baseLog *logger.Logger) RecordingSessionRepo {
	return &recordingSessionRepo{
		db:  db,
		log: baseLog.With("repo", "RecordingSessionRepo"),
	}
}

func (r *recordingSessionRepo) Create(dbc dbctx.Context, sessions []*domain.RecordingSession) ([]*domain.RecordingSession, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	if len(sessions) == 0 {
		return []*domain.RecordingSession{}, nil
	}
	if err := transaction.WithContext(dbc.Ctx).Create(&sessions).Error; err != nil {
		return nil, err
	}
	return sessions, nil
}

func (r *recordingSessionRepo) GetByIDs(dbc dbctx.Context, ids []uuid.UUID) ([]*domain.RecordingSession, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	var out []*domain.RecordingSession
	if len(ids) == 0 {
		return out, nil
	}
	if err := transaction.WithContext(dbc.Ctx).
		Where("id IN ?", ids).
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *recordingSessionRepo) List(dbc dbctx.Context, filter SessionFilter) ([]*domain.RecordingSession, int64, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	q := transaction.WithContext(dbc.Ctx).Model(&domain.RecordingSession{})
	if filter.ShabadID != uuid.Nil {
		q = q.Where("shabad_id = ?", filter.ShabadID)
	}
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.ArtistID != uuid.Nil {
		q = q.Where("primary_artist_id = ? OR recording_engineer_id = ?", filter.ArtistID, filter.ArtistID)
	}
	if filter.Location != "" {
		q = q.Where("location ILIKE ?", "%"+filter.Location+"%")
	}
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if filter.Limit > 0 {
		q = q.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		q = q.Offset(filter.Offset)
	}
	var out []*domain.RecordingSession
	if err := q.Order("created_at DESC").Find(&out).Error; err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

func (r *recordingSessionRepo) UpdateFields(dbc dbctx.Context, id uuid.UUID, updates map[string]interface{}) error {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	if id == uuid.Nil {
		return nil
	}
	if updates == nil {
		updates = map[string]interface{}{}
	}
	if _, ok := updates["updated_at"]; !ok {
		updates["updated_at"] = time.Now()
	}
	return transaction.WithContext(dbc.Ctx).
		Model(&domain.RecordingSession{}).
		Where("id = ?", id).
		Updates(updates).Error
}
