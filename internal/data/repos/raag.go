package repos

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/raagrecording/raagrecording-backend/internal/domain"
	"github.com/raagrecording/raagrecording-backend/internal/pkg/dbctx"
	"github.com/raagrecording/raagrecording-backend/internal/pkg/logger"
)

// RaagWithCount is a raag plus how many shabads reference it.
type RaagWithCount struct {
	domain.Raag
	ShabadCount int64 `json:"shabad_count"`
}

type RaagRepo interface {
	Create(dbc dbctx.Context, raags []*domain.Raag) ([]*domain.Raag, error)
	GetByIDs(dbc dbctx.Context, ids []uuid.UUID) ([]*domain.Raag, error)
	ListWithShabadCounts(dbc dbctx.Context) ([]*RaagWithCount, error)
}

type raagRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewRaagRepo(db *gorm.DB, baseLog *logger.Logger) RaagRepo {
	return &raagRepo{
		db:  db,
		log: baseLog.With("repo", "RaagRepo"),
	}
}

func (r *raagRepo) Create(dbc dbctx.Context, raags []*domain.Raag) ([]*domain.Raag, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	if len(raags) == 0 {
		return []*domain.Raag{}, nil
	}
	if err := transaction.WithContext(dbc.Ctx).Create(&raags).Error; err != nil {
		return nil, err
	}
	return raags, nil
}

func (r *raagRepo) GetByIDs(dbc dbctx.Context, ids []uuid.UUID) ([]*domain.Raag, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	var out []*domain.Raag
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

func (r *raagRepo) ListWithShabadCounts(dbc dbctx.Context) ([]*RaagWithCount, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	var out []*RaagWithCount
	err := transaction.WithContext(dbc.Ctx).Raw(`
		SELECT r.*, COUNT(s.id) AS shabad_count
		FROM raags r
		LEFT JOIN shabads s ON r.id = s.raag_id
		GROUP BY r.id
		ORDER BY r.name
	`).Scan(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}
