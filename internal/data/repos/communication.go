package repos

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/raagrecording/raagrecording-backend/internal/domain"
	"github.com/raagrecording/raagrecording-backend/internal/pkg/dbctx"
	"github.com/raagrecording/raagrecording-backend/internal/pkg/logger"
)

type CommunicationRepo interface {
	Create(dbc dbctx.Context, comms []*domain.Communication) ([]*domain.Communication, error)
	GetByIDs(dbc dbctx.Context, ids []uuid.UUID) ([]*domain.Communication, error)
	GetForUser(dbc dbctx.Context, userID uuid.UUID, unreadOnly bool) ([]*domain.Communication, error)
	GetThread(dbc dbctx.Context, itemType string, itemID uuid.UUID) ([]*domain.Communication, error)
	MarkRead(dbc dbctx.Context, id uuid.UUID) (bool, error)
}

type communicationRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewCommunicationRepo(db *gorm.DB, baseLog *logger.Logger) CommunicationRepo {
	return &communicationRepo{
		db:  db,
		log: baseLog.With("repo", "CommunicationRepo"),
	}
}

func (r *communicationRepo) Create(dbc dbctx.Context, comms []*domain.Communication) ([]*domain.Communication, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	if len(comms) == 0 {
		return []*domain.Communication{}, nil
	}
	if err := transaction.WithContext(dbc.Ctx).Create(&comms).Error; err != nil {
		return nil, err
	}
	return comms, nil
}

func (r *communicationRepo) GetByIDs(dbc dbctx.Context, ids []uuid.UUID) ([]*domain.Communication, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	var out []*domain.Communication
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

func (r *communicationRepo) GetForUser(dbc dbctx.Context, userID uuid.UUID, unreadOnly bool) ([]*domain.Communication, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	var out []*domain.Communication
	if userID == uuid.Nil {
		return out, nil
	}
	q := transaction.WithContext(dbc.Ctx).
		Where("to_user_id = ?", userID)
	if unreadOnly {
		q = q.Where("is_read = false")
	}
	if err := q.Order("created_at DESC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *communicationRepo) GetThread(dbc dbctx.Context, itemType string, itemID uuid.UUID) ([]*domain.Communication, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	var out []*domain.Communication
	if itemType == "" || itemID == uuid.Nil {
		return out, nil
	}
	if err := transaction.WithContext(dbc.Ctx).
		Where("related_item_type = ? AND related_item_id = ?", itemType, itemID).
		Order("created_at ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *communicationRepo) MarkRead(dbc dbctx.Context, id uuid.UUID) (bool, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	if id == uuid.Nil {
		return false, nil
	}
	res := transaction.WithContext(dbc.Ctx).
		Model(&domain.Communication{}).
		Where("id = ? AND is_read = false", id).
		Updates(map[string]interface{}{
			"is_read": true,
			"read_at": time.Now(),
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
