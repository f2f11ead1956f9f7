package repos

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/raagrecording/raagrecording-backend/internal/domain"
	"github.com/raagrecording/raagrecording-backend/internal/pkg/dbctx"
	"github.com/raagrecording/raagrecording-backend/internal/pkg/logger"
)

// TypeStatusCount is one row of the per-type, per-status breakdown.
type TypeStatusCount struct {
	ItemType string `json:"item_type"`
	Status   string `json:"status"`
	Count    int64  `json:"count"`
}

type ApprovalRepo interface {
	Create(dbc dbctx.Context, approvals []*domain.Approval) ([]*domain.Approval, error)
	GetByIDs(dbc dbctx.Context, ids []uuid.UUID) ([]*domain.Approval, error)
	// GetPendingForApprover returns the approver's claim pool: pending rows
	// assigned to them plus unassigned pending rows, oldest first.
	GetPendingForApprover(dbc dbctx.Context, approverID uuid.UUID) ([]*domain.Approval, error)
	GetByItem(dbc dbctx.Context, itemType string, itemID uuid.UUID) ([]*domain.Approval, error)
	// DecideIfPending applies updates as a single conditional mutation guarded
	// by status = 'pending'. false means the precondition failed (zero rows).
	DecideIfPending(dbc dbctx.Context, id uuid.UUID, updates map[string]interface{}) (bool, error)
	AssignIfPending(dbc dbctx.Context, id uuid.UUID, approverID uuid.UUID) (bool, error)
	CountByStatus(dbc dbctx.Context) (map[string]int64, error)
	CountByTypeAndStatus(dbc dbctx.Context) ([]TypeStatusCount, error)
	AvgDecisionHoursByType(dbc dbctx.Context) (map[string]float64, error)
	PendingAgeBuckets(dbc dbctx.Context) (map[string]int64, error)
	DeleteByItem(dbc dbctx.Context, itemType string, itemID uuid.UUID) error
}

type approvalRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewApprovalRepo(db *gorm.DB, baseLog *logger.Logger) ApprovalRepo {
	return &approvalRepo{
		db:  db,
		log: baseLog.With("repo", "ApprovalRepo"),
	}
}

func (r *approvalRepo) Create(dbc dbctx.Context, approvals []*domain.Approval) ([]*domain.Approval, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	if len(approvals) == 0 {
		return []*domain.Approval{}, nil
	}
	if err := transaction.WithContext(dbc.Ctx).Create(&approvals).Error; err != nil {
		return nil, err
	}
	return approvals, nil
}

func (r *approvalRepo) GetByIDs(dbc dbctx.Context, ids []uuid.UUID) ([]*domain.Approval, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	var out []*domain.Approval
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

func (r *approvalRepo) GetPendingForApprover(dbc dbctx.Context, approverID uuid.UUID) ([]*domain.Approval, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	var out []*domain.Approval
	if err := transaction.WithContext(dbc.Ctx).
		Where("status = ? AND (approver_id = ? OR approver_id IS NULL)", domain.ApprovalStatusPending, approverID).
		Order("created_at ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *approvalRepo) GetByItem(dbc dbctx.Context, itemType string, itemID uuid.UUID) ([]*domain.Approval, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	var out []*domain.Approval
	if itemType == "" || itemID == uuid.Nil {
		return out, nil
	}
	if err := transaction.WithContext(dbc.Ctx).
		Where("item_type = ? AND item_id = ?", itemType, itemID).
		Order("created_at DESC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *approvalRepo) DecideIfPending(dbc dbctx.Context, id uuid.UUID, updates map[string]interface{}) (bool, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	if id == uuid.Nil {
		return false, nil
	}
	if updates == nil {
		updates = map[string]interface{}{}
	}
	if _, ok := updates["updated_at"]; !ok {
		updates["updated_at"] = time.Now()
	}
	res := transaction.WithContext(dbc.Ctx).
		Model(&domain.Approval{}).
		Where("id = ? AND status = ?", id, domain.ApprovalStatusPending).
		Updates(updates)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *approvalRepo) AssignIfPending(dbc dbctx.Context, id uuid.UUID, approverID uuid.UUID) (bool, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	if id == uuid.Nil || approverID == uuid.Nil {
		return false, nil
	}
	res := transaction.WithContext(dbc.Ctx).
		Model(&domain.Approval{}).
		Where("id = ? AND status = ?", id, domain.ApprovalStatusPending).
		Updates(map[string]interface{}{
			"approver_id": approverID,
			"updated_at":  time.Now(),
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *approvalRepo) CountByStatus(dbc dbctx.Context) (map[string]int64, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	var rows []struct {
		Status string
		Count  int64
	}
	if err := transaction.WithContext(dbc.Ctx).
		Model(&domain.Approval{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	out := make(map[string]int64, len(rows))
	for _, row := range rows {
		out[row.Status] = row.Count
	}
	return out, nil
}

func (r *approvalRepo) CountByTypeAndStatus(dbc dbctx.Context) ([]TypeStatusCount, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	var rows []TypeStatusCount
	if err := transaction.WithContext(dbc.Ctx).
		Model(&domain.Approval{}).
		Select("item_type, status, COUNT(*) AS count").
		Group("item_type").
		Group("status").
		Order("item_type, status").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *approvalRepo) AvgDecisionHoursByType(dbc dbctx.Context) (map[string]float64, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	var rows []struct {
		ItemType string
		AvgHours float64
	}
	if err := transaction.WithContext(dbc.Ctx).Raw(`
		SELECT item_type,
		       AVG(EXTRACT(EPOCH FROM (decision_date - created_at)) / 3600) AS avg_hours
		FROM approvals
		WHERE decision_date IS NOT NULL
		GROUP BY item_type
	`).Scan(&rows).Error; err != nil {
		return nil, err
	}
	out := make(map[string]float64, len(rows))
	for _, row := range rows {
		out[row.ItemType] = row.AvgHours
	}
	return out, nil
}

func (r *approvalRepo) PendingAgeBuckets(dbc dbctx.Context) (map[string]int64, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	var rows []struct {
		AgeGroup string
		Count    int64
	}
	if err := transaction.WithContext(dbc.Ctx).Raw(`
		SELECT
			CASE
				WHEN created_at >= NOW() - INTERVAL '1 day' THEN '< 1 day'
				WHEN created_at >= NOW() - INTERVAL '3 days' THEN '1-3 days'
				WHEN created_at >= NOW() - INTERVAL '7 days' THEN '3-7 days'
				ELSE '> 7 days'
			END AS age_group,
			COUNT(*) AS count
		FROM approvals
		WHERE status = ?
		GROUP BY age_group
	`, domain.ApprovalStatusPending).Scan(&rows).Error; err != nil {
		return nil, err
	}
	out := make(map[string]int64, len(rows))
	for _, row := range rows {
		out[row.AgeGroup] = row.Count
	}
	return out, nil
}

func (r *approvalRepo) DeleteByItem(dbc dbctx.Context, itemType string, itemID uuid.UUID) error {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	if itemType == "" || itemID == uuid.Nil {
		return nil
	}
	return transaction.WithContext(dbc.Ctx).
		Where("item_type = ? AND item_id = ?", itemType, itemID).
		Delete(&domain.Approval{}).Error
}
