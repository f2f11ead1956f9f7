package repos

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/raagrecording/raagrecording-backend/internal/domain"
	"github.com/raagrecording/raagrecording-backend/internal/pkg/dbctx"
	"github.com/raagrecording/raagrecording-backend/internal/pkg/logger"
)

type FinalCompositionRepo interface {
	Create(dbc dbctx.Context, compositions []*domain.FinalComposition) ([]*domain.FinalComposition, error)
	GetByIDs(dbc dbctx.Context, ids []uuid.UUID) ([]*domain.FinalComposition, error)
	GetByShabad(dbc dbctx.Context, shabadID uuid.UUID) ([]*domain.FinalComposition, error)
	DisplayMeta(dbc dbctx.Context, itemIDs []uuid.UUID) (map[uuid.UUID]*ItemDetails, error)
	Delete(dbc dbctx.Context, id uuid.UUID) error
}

type finalCompositionRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewFinalCompositionRepo(db *gorm.DB, baseLog *logger.Logger) FinalCompositionRepo {
	return &finalCompositionRepo{
		db:  db,
		log: baseLog.With("repo", "FinalCompositionRepo"),
	}
}

func (r *finalCompositionRepo) Create(dbc dbctx.Context, compositions []*domain.FinalComposition) ([]*domain.FinalComposition, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	if len(compositions) == 0 {
		return []*domain.FinalComposition{}, nil
	}
	if err := transaction.WithContext(dbc.Ctx).Create(&compositions).Error; err != nil {
		return nil, err
	}
	return compositions, nil
}

func (r *finalCompositionRepo) GetByIDs(dbc dbctx.Context, ids []uuid.UUID) ([]*domain.FinalComposition, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	var out []*domain.FinalComposition
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

func (r *finalCompositionRepo) GetByShabad(dbc dbctx.Context, shabadID uuid.UUID) ([]*domain.FinalComposition, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	var out []*domain.FinalComposition
	if shabadID == uuid.Nil {
		return out, nil
	}
	if err := transaction.WithContext(dbc.Ctx).
		Where("shabad_id = ?", shabadID).
		Order("version_number DESC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *finalCompositionRepo) DisplayMeta(dbc dbctx.Context, itemIDs []uuid.UUID) (map[uuid.UUID]*ItemDetails, error) {
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
		SELECT fc.id AS item_id,
		       u.full_name AS final_mixer_name,
		       fc.version_number,
		       fc.composition_notes,
		       s.first_line AS shabad_first_line,
		       r.name AS raag_name,
		       fc.storage_key,
		       fc.duration_seconds
		FROM final_compositions fc
		JOIN users u ON fc.final_mixer_id = u.id
		JOIN shabads s ON fc.shabad_id = s.id
		JOIN raags r ON s.raag_id = r.id
		WHERE fc.id IN ?
	`, itemIDs).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		out[row.ItemID] = row
	}
	return out, nil
}

func (r *finalCompositionRepo) Delete(dbc dbctx.Context, id uuid.UUID) error {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	if id == uuid.Nil {
		return nil
	}
	return transaction.WithContext(dbc.Ctx).
		Where("id = ?", id).
		Delete(&domain.FinalComposition{}).Error
}
