package override

import (
	"context"
	"database/sql"
	"time"

	"gorm.io/gorm"
)

type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Upsert(ctx context.Context, o *ShiftOverride) error
	FindActiveByGuardAndDate(ctx context.Context, guardID string, date time.Time) (*ShiftOverride, error)
	FindActiveInbound(ctx context.Context, locationID, shift string, date time.Time) ([]ShiftOverride, error)
	Deactivate(ctx context.Context, guardID string, date time.Time) error
}

type repository struct {
	db    *gorm.DB
	sqlDB *sql.DB
	tx    *sql.Tx
}

func NewRepository(db *gorm.DB, sqlDB *sql.DB) Repository {
	return &repository{db: db, sqlDB: sqlDB}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, sqlDB: r.sqlDB, tx: tx}
}

// Upsert inserts a new override or, when an active one already exists for
// (guard, date), updates its target in place. The conflict target is the
// partial unique index on active rows, so the whole operation is atomic.
// The original_* snapshot is deliberately left untouched on the update path.
func (r *repository) Upsert(ctx context.Context, o *ShiftOverride) error {
	query := `
INSERT INTO shift_overrides (
    id, guard_id, original_shift, override_shift,
    original_location_id, override_location_id,
    date, reason, created_by, created_at, is_active
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW(), TRUE)
ON CONFLICT (guard_id, date) WHERE is_active DO UPDATE SET
    override_shift       = EXCLUDED.override_shift,
    override_location_id = EXCLUDED.override_location_id,
    reason               = EXCLUDED.reason,
    created_by           = EXCLUDED.created_by,
    created_at           = NOW()
`
	exec := r.execer()
	_, err := exec.ExecContext(
		ctx, query,
		o.ID, o.GuardID, o.OriginalShift, o.OverrideShift,
		o.OriginalLocationID, o.OverrideLocationID,
		o.Date.Format("2006-01-02"), o.Reason, o.CreatedBy,
	)
	return err
}

func (r *repository) FindActiveByGuardAndDate(ctx context.Context, guardID string, date time.Time) (*ShiftOverride, error) {
	var o ShiftOverride
	err := r.db.WithContext(ctx).
		Preload("Guard").
		Preload("OriginalLocation").
		Preload("OriginalLocation.Company").
		Preload("OverrideLocation").
		Preload("OverrideLocation.Company").
		Where("guard_id = ?", guardID).
		Where("date = ?", date.Format("2006-01-02")).
		Where("is_active = ?", true).
		First(&o).Error
	return &o, err
}

// FindActiveInbound returns overrides relocating guards INTO the given
// location/shift on the date, in creation order.
func (r *repository) FindActiveInbound(ctx context.Context, locationID, shift string, date time.Time) ([]ShiftOverride, error) {
	var rows []ShiftOverride
	err := r.db.WithContext(ctx).
		Preload("Guard").
		Preload("OriginalLocation").
		Preload("OriginalLocation.Company").
		Where("override_location_id = ?", locationID).
		Where("override_shift = ?", shift).
		Where("date = ?", date.Format("2006-01-02")).
		Where("is_active = ?", true).
		Order("created_at ASC, id ASC").
		Find(&rows).Error
	return rows, err
}

// Deactivate soft-removes the active override for (guard, date). The row is
// kept for audit history.
func (r *repository) Deactivate(ctx context.Context, guardID string, date time.Time) error {
	res := r.db.WithContext(ctx).
		Model(&ShiftOverride{}).
		Where("guard_id = ?", guardID).
		Where("date = ?", date.Format("2006-01-02")).
		Where("is_active = ?", true).
		Update("is_active", false)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repository) execer() interface {
	ExecContext(context.Context, string, ...any) (sql.Result, error)
} {
	if r.tx != nil {
		return r.tx
	}
	return r.sqlDB
}
