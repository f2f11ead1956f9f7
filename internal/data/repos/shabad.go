package repos

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/raagrecording/raagrecording-backend/internal/domain"
	"github.com/raagrecording/raagrecording-backend/internal/pkg/dbctx"
	"github.com/raagrecording/raagrecording-backend/internal/pkg/logger"
)

// FinalCounts pairs total final compositions with how many are flagged as the
// released version.
type FinalCounts struct {
	Total     int64 `json:"final_compositions"`
	Completed int64 `json:"completed_finals"`
}

type ShabadRepo interface {
	Create(dbc dbctx.Context, shabads []*domain.Shabad) ([]*domain.Shabad, error)
	GetByIDs(dbc dbctx.Context, ids []uuid.UUID) ([]*domain.Shabad, error)
	GetByRaag(dbc dbctx.Context, raagID uuid.UUID) ([]*domain.Shabad, error)
	List(dbc dbctx.Context, limit, offset int) ([]*domain.Shabad, int64, error)
	UpdateFields(dbc dbctx.Context, id uuid.UUID, updates map[string]interface{}) error

	// Progress aggregates; all read-only, grouped per shabad.
	SessionCountsByStatus(dbc dbctx.Context, shabadID uuid.UUID) (map[string]int64, error)
	TrackApprovalCountsByStatus(dbc dbctx.Context, shabadID uuid.UUID) (map[string]int64, error)
	NarratorRecordingCount(dbc dbctx.Context, shabadID uuid.UUID) (int64, error)
	MixedTrackCount(dbc dbctx.Context, shabadID uuid.UUID) (int64, error)
	FinalCompositionCounts(dbc dbctx.Context, shabadID uuid.UUID) (*FinalCounts, error)
}

type shabadRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewShabadRepo(db *gorm.DB, baseLog *logger.Logger) ShabadRepo {
	return &shabadRepo{
		db:  db,
		log: baseLog.With("repo", "ShabadRepo"),
	}
}

func (r *shabadRepo) Create(dbc dbctx.Context, shabads []*domain.Shabad) ([]*domain.Shabad, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	if len(shabads) == 0 {
		return []*domain.Shabad{}, nil
	}
	if err := transaction.WithContext(dbc.Ctx).Create(&shabads).Error; err != nil {
		return nil, err
	}
	return shabads, nil
}

func (r *shabadRepo) GetByIDs(dbc dbctx.Context, ids []uuid.UUID) ([]*domain.Shabad, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	var out []*domain.Shabad
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

func (r *shabadRepo) GetByRaag(dbc dbctx.Context, raagID uuid.UUID) ([]*domain.Shabad, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	var out []*domain.Shabad
	if raagID == uuid.Nil {
		return out, nil
	}
	if err := transaction.WithContext(dbc.Ctx).
		Where("raag_id = ?", raagID).
		Order("ang_number, shabad_number").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *shabadRepo) List(dbc dbctx.Context, limit, offset int) ([]*domain.Shabad, int64, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	q := transaction.WithContext(dbc.Ctx).Model(&domain.Shabad{})
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if limit > 0 {
		q = q.Limit(limit)
	}
	if offset > 0 {
		q = q.Offset(offset)
	}
	var out []*domain.Shabad
	if err := q.Order("ang_number, shabad_number").Find(&out).Error; err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

func (r *shabadRepo) UpdateFields(dbc dbctx.Context, id uuid.UUID, updates map[string]interface{}) error {
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
		Model(&domain.Shabad{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (r *shabadRepo) SessionCountsByStatus(dbc dbctx.Context, shabadID uuid.UUID) (map[string]int64, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	var rows []struct {
		Status string
		Count  int64
	}
	if err := transaction.WithContext(dbc.Ctx).
		Model(&domain.RecordingSession{}).
		Select("status, COUNT(*) AS count").
		Where("shabad_id = ?", shabadID).
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

func (r *shabadRepo) TrackApprovalCountsByStatus(dbc dbctx.Context, shabadID uuid.UUID) (map[string]int64, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	var rows []struct {
		Status string
		Count  int64
	}
	if err := transaction.WithContext(dbc.Ctx).Raw(`
		SELECT a.status, COUNT(*) AS count
		FROM tracks t
		JOIN recording_sessions rs ON t.session_id = rs.id
		JOIN approvals a ON a.item_type = ? AND a.item_id = t.id
		WHERE rs.shabad_id = ?
		GROUP BY a.status
	`, domain.ItemTypeTrack, shabadID).Scan(&rows).Error; err != nil {
		return nil, err
	}
	out := make(map[string]int64, len(rows))
	for _, row := range rows {
		out[row.Status] = row.Count
	}
	return out, nil
}

func (r *shabadRepo) NarratorRecordingCount(dbc dbctx.Context, shabadID uuid.UUID) (int64, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	var count int64
	if err := transaction.WithContext(dbc.Ctx).
		Model(&domain.NarratorRecording{}).
		Where("shabad_id = ?", shabadID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *shabadRepo) MixedTrackCount(dbc dbctx.Context, shabadID uuid.UUID) (int64, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	var count int64
	if err := transaction.WithContext(dbc.Ctx).Raw(`
		SELECT COUNT(*)
		FROM mixed_tracks mt
		JOIN recording_sessions rs ON mt.session_id = rs.id
		WHERE rs.shabad_id = ?
	`, shabadID).Scan(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *shabadRepo) FinalCompositionCounts(dbc dbctx.Context, shabadID uuid.UUID) (*FinalCounts, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	var counts FinalCounts
	if err := transaction.WithContext(dbc.Ctx).Raw(`
		SELECT COUNT(*) AS total,
		       COUNT(CASE WHEN is_final_version THEN 1 END) AS completed
		FROM final_compositions
		WHERE shabad_id = ?
	`, shabadID).Scan(&counts).Error; err != nil {
		return nil, err
	}
	return &counts, nil
}
