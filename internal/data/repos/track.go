package repos

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/raagrecording/raagrecording-backend/internal/domain"
	"github.com/raagrecording/raagrecording-backend/internal/pkg/dbctx"
	"github.com/raagrecording/raagrecording-backend/internal/pkg/logger"
)

// TrackFilter narrows ListTracks; zero values are ignored.
type TrackFilter struct {
	SessionID   uuid.UUID
	PerformerID uuid.UUID
	ShabadID    uuid.UUID
	Limit       int
	Offset      int
}

// TrackParent is the session/shabad reference chain behind a track, resolved
// for the approved-for-mixing side effect.
type TrackParent struct {
	TrackID   uuid.UUID
	SessionID uuid.UUID
	ShabadID  uuid.UUID
}

type TrackRepo interface {
	Create(dbc dbctx.Context, tracks []*domain.Track) ([]*domain.Track, error)
	GetByIDs(dbc dbctx.Context, ids []uuid.UUID) ([]*domain.Track, error)
	GetBySession(dbc dbctx.Context, sessionID uuid.UUID) ([]*domain.Track, error)
	List(dbc dbctx.Context, filter TrackFilter) ([]*domain.Track, int64, error)
	GetParent(dbc dbctx.Context, trackID uuid.UUID) (*TrackParent, error)
	DisplayMeta(dbc dbctx.Context, itemIDs []uuid.UUID) (map[uuid.UUID]*ItemDetails, error)
	Delete(dbc dbctx.Context, id uuid.UUID) error
}

type trackRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewTrackRepo(db *gorm.DB, baseLog *logger.Logger) TrackRepo {
	return &trackRepo{
		db:  db,
		log: baseLog.With("repo", "TrackRepo"),
	}
}

func (r *trackRepo) Create(dbc dbctx.Context, tracks []*domain.Track) ([]*domain.Track, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	if len(tracks) == 0 {
		return []*domain.Track{}, nil
	}
	if err := transaction.WithContext(dbc.Ctx).Create(&tracks).Error; err != nil {
		return nil, err
	}
	return tracks, nil
}

func (r *trackRepo) GetByIDs(dbc dbctx.Context, ids []uuid.UUID) ([]*domain.Track, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	var out []*domain.Track
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

func (r *trackRepo) GetBySession(dbc dbctx.Context, sessionID uuid.UUID) ([]*domain.Track, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	var out []*domain.Track
	if sessionID == uuid.Nil {
		return out, nil
	}
	if err := transaction.WithContext(dbc.Ctx).
		Where("session_id = ?", sessionID).
		Order("created_at ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *trackRepo) List(dbc dbctx.Context, filter TrackFilter) ([]*domain.Track, int64, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	q := transaction.WithContext(dbc.Ctx).Model(&domain.Track{})
	if filter.SessionID != uuid.Nil {
		q = q.Where("session_id = ?", filter.SessionID)
	}
	if filter.PerformerID != uuid.Nil {
		q = q.Where("performer_id = ?", filter.PerformerID)
	}
	if filter.ShabadID != uuid.Nil {
		q = q.Where("session_id IN (SELECT id FROM recording_sessions WHERE shabad_id = ?)", filter.ShabadID)
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
	var out []*domain.Track
	if err := q.Order("created_at DESC").Find(&out).Error; err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

func (r *trackRepo) GetParent(dbc dbctx.Context, trackID uuid.UUID) (*TrackParent, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	if trackID == uuid.Nil {
		return nil, nil
	}
	var parent TrackParent
	err := transaction.WithContext(dbc.Ctx).Raw(`
		SELECT t.id AS track_id, t.session_id, rs.shabad_id
		FROM tracks t
		JOIN recording_sessions rs ON t.session_id = rs.id
		WHERE t.id = ?
	`, trackID).Scan(&parent).Error
	if err != nil {
		return nil, err
	}
	if parent.TrackID == uuid.Nil {
		return nil, nil
	}
	return &parent, nil
}

func (r *trackRepo) DisplayMeta(dbc dbctx.Context, itemIDs []uuid.UUID) (map[uuid.UUID]*ItemDetails, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	out := make(map[uuid.UUID]*ItemDetails)
	if len(itemIDs) == 0 {
		return out, nil
	}
	var rows []*ItemDetails
	err := transaction.WithContext(dbc.Ctx).Raw(`
		SELECT t.id AS item_id,
		       t.track_name,
		       u.full_name AS performer_name,
		       t.instrument,
		       t.track_type,
		       t.recording_quality,
		       rs.session_name,
		       s.first_line AS shabad_first_line,
		       r.name AS raag_name,
		       t.storage_key,
		       t.duration_seconds
		FROM tracks t
		JOIN users u ON t.performer_id = u.id
		JOIN recording_sessions rs ON t.session_id = rs.id
		JOIN shabads s ON rs.shabad_id = s.id
		JOIN raags r ON s.raag_id = r.id
		WHERE t.id IN ?
	`, itemIDs).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		out[row.ItemID] = row
	}
	return out, nil
}

func (r *trackRepo) Delete(dbc dbctx.Context, id uuid.UUID) error {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	if id == uuid.Nil {
		return nil
	}
	return transaction.WithContext(dbc.Ctx).
		Where("id = ?", id).
		Delete(&domain.Track{}).Error
}
