package payroll

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, row *PayrollTracking) error
	FindByGuardAndRange(ctx context.Context, guardID string, from, to time.Time) ([]PayrollTracking, error)
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

func (r *repository) Create(ctx context.Context, row *PayrollTracking) error {
	if row.ID == uuid.Nil {
		row.ID = uuid.New()
	}

	query := `
INSERT INTO payroll_tracking (
    id, guard_id, date, scheduled_shift, actual_shift,
    scheduled_location_id, actual_location_id, status, created_by, created_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW())
`
	exec := r.execer()
	_, err := exec.ExecContext(
		ctx, query,
		row.ID, row.GuardID, row.Date.Format("2006-01-02"),
		row.ScheduledShift, row.ActualShift,
		row.ScheduledLocationID, row.ActualLocationID,
		row.Status, row.CreatedBy,
	)
	return err
}

func (r *repository) FindByGuardAndRange(ctx context.Context, guardID string, from, to time.Time) ([]PayrollTracking, error) {
	var rows []PayrollTracking
	err := r.db.WithContext(ctx).
		Where("guard_id = ?", guardID).
		Where("date BETWEEN ? AND ?", from.Format("2006-01-02"), to.Format("2006-01-02")).
		Order("date ASC, created_at ASC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) execer() interface {
	ExecContext(context.Context, string, ...any) (sql.Result, error)
} {
	if r.tx != nil {
		return r.tx
	}
	return r.sqlDB
}
