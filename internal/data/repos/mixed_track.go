package repos

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/raagrecording/raagrecording-backend/internal/domain"
	"github.com/raagrecording/raagrecording-backend/internal/pkg/dbctx"
	"github.com/raagrecording/raagrecording-backend/internal/pkg/logger"
)

type MixedTrackRepo interface {
	Create(dbc dbctx.Context, mixes []*domain.MixedTrack) ([]*domain.MixedTrack, error)
	GetByIDs(dbc dbctx.Context, ids []uuid.UUID) ([]*domain.MixedTrack, error)
	GetBySession(dbc dbctx.Context, sessionID uuid.UUID) ([]*domain.MixedTrack, error)
	DisplayMeta(dbc dbctx.Context, itemIDs []uuid.UUID) (map[uuid.UUID]*ItemDetails, error)
	Delete(dbc dbctx.Context, id uuid.UUID) error
}

type mixedTrackRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewMixedTrackRepo(db *gorm.DB, baseLog *logger.Logger) MixedTrackRepo {
	return &mixedTrackRepo{
		db:  db,
		log: baseLog.With("repo", "MixedTrackRepo"),
	}
}

func (r *mixedTrackRepo) Create(dbc dbctx.Context, mixes []*domain.MixedTrack) ([]*domain.MixedTrack, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	if len(mixes) == 0 {
		return []*domain.MixedTrack{}, nil
	}
	if err := transaction.WithContext(dbc.Ctx).Create(&mixes).Error; err != nil {
		return nil, err
	}
	return mixes, nil
}

func (r *mixedTrackRepo) GetByIDs(dbc dbctx.Context, ids []uuid.UUID) ([]*domain.MixedTrack, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	var out []*domain.MixedTrack
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

func (r *mixedTrackRepo) GetBySession(dbc dbctx.Context, sessionID uuid.UUID) ([]*domain.MixedTrack, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	var out []*domain.MixedTrack
	if sessionID == uuid.Nil {
		return out, nil
	}
	if err := transaction.WithContext(dbc.Ctx).
		Where("session_id = ?", sessionID).
		Order("mix_version DESC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *mixedTrackRepo) DisplayMeta(dbc dbctx.Context, itemIDs []uuid.UUID) (map[uuid.UUID]*ItemDetails, error) {
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
		SELECT mt.id AS item_id,
		       u.full_name AS mixer_name,
		       mt.mix_version,
		       mt.mix_notes,
		       rs.session_name,
		       s.first_line AS shabad_first_line,
		       r.name AS raag_name,
		       mt.storage_key,
		       mt.duration_seconds
		FROM mixed_tracks mt
		JOIN users u ON mt.mixer_id = u.id
		JOIN recording_sessions rs ON mt.session_id = rs.id
		JOIN shabads s ON rs.shabad_id = s.id
		JOIN raags r ON s.raag_id = r.id
		WHERE mt.id IN ?
	`, itemIDs).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		out[row.ItemID] = row
	}
	return out, nil
}

func (r *mixedTrackRepo) Delete(dbc dbctx.Context, id uuid.UUID) error {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	if id == uuid.Nil {
		return nil
	}
	return transaction.WithContext(dbc.Ctx).
		Where("id = ?", id).
		Delete(&domain.MixedTrack{}).Error
}
