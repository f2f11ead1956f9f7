package repos

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/raagrecording/raagrecording-backend/internal/domain"
	"github.com/raagrecording/raagrecording-backend/internal/pkg/dbctx"
	"github.com/raagrecording/raagrecording-backend/internal/pkg/logger"
)

type NarratorRecordingRepo interface {
	Create(dbc dbctx.Context, recordings []*domain.NarratorRecording) ([]*domain.NarratorRecording, error)
	GetByIDs(dbc dbctx.Context, ids []uuid.UUID) ([]*domain.NarratorRecording, error)
	GetByShabad(dbc dbctx.Context, shabadID uuid.UUID) ([]*domain.NarratorRecording, error)
	DisplayMeta(dbc dbctx.Context, itemIDs []uuid.UUID) (map[uuid.UUID]*ItemDetails, error)
	Delete(dbc dbctx.Context, id uuid.UUID) error
}

type narratorRecordingRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewNarratorRecordingRepo(db *gorm.DB, baseLog *logger.Logger) NarratorRecordingRepo {
	return &narratorRecordingRepo{
		db:  db,
		log: baseLog.With("repo", "NarratorRecordingRepo"),
	}
}

func (r *narratorRecordingRepo) Create(dbc dbctx.Context, recordings []*domain.NarratorRecording) ([]*domain.NarratorRecording, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	if len(recordings) == 0 {
		return []*domain.NarratorRecording{}, nil
	}
	if err := transaction.WithContext(dbc.Ctx).Create(&recordings).Error; err != nil {
		return nil, err
	}
	return recordings, nil
}

func (r *narratorRecordingRepo) GetByIDs(dbc dbctx.Context, ids []uuid.UUID) ([]*domain.NarratorRecording, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	var out []*domain.NarratorRecording
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

func (r *narratorRecordingRepo) GetByShabad(dbc dbctx.Context, shabadID uuid.UUID) ([]*domain.NarratorRecording, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	var out []*domain.NarratorRecording
	if shabadID == uuid.Nil {
		return out, nil
	}
	if err := transaction.WithContext(dbc.Ctx).
		Where("shabad_id = ?", shabadID).
		Order("created_at DESC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *narratorRecordingRepo) DisplayMeta(dbc dbctx.Context, itemIDs []uuid.UUID) (map[uuid.UUID]*ItemDetails, error) {
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
		SELECT nr.id AS item_id,
		       u.full_name AS narrator_name,
		       nr.language,
		       nr.script_text,
		       nr.recording_quality,
		       s.first_line AS shabad_first_line,
		       r.name AS raag_name,
		       nr.storage_key,
		       nr.duration_seconds
		FROM narrator_recordings nr
		JOIN users u ON nr.narrator_id = u.id
		JOIN shabads s ON nr.shabad_id = s.id
		JOIN raags r ON s.raag_id = r.id
		WHERE nr.id IN ?
	`, itemIDs).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		out[row.ItemID] = row
	}
	return out, nil
}

func (r *narratorRecordingRepo) Delete(dbc dbctx.Context, id uuid.UUID) error {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	if id == uuid.Nil {
		return nil
	}
	return transaction.WithContext(dbc.Ctx).
		Where("id = ?", id).
		Delete(&domain.NarratorRecording{}).Error
}
