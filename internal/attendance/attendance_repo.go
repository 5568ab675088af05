package attendance

import (
	"context"
	"database/sql"
	"time"

	"gorm.io/gorm"
)

type ListFilter struct {
	GuardID    string
	LocationID string
	Date       *time.Time
}

type Repository interface {
	WithTx(tx *sql.Tx) Repository

	// Upsert writes the record unconditionally: a re-mark overwrites the
	// existing status, notes, marker and timestamp.
	Upsert(ctx context.Context, a *Attendance) error

	// UpsertIfUnmarked writes only when no status has been recorded yet for
	// the natural key. Returns false when the row was skipped.
	UpsertIfUnmarked(ctx context.Context, a *Attendance) (bool, error)

	// HasStatus reports whether a non-empty status already exists for the
	// natural key. Runs on the transaction when one is attached.
	HasStatus(ctx context.Context, guardID string, date time.Time, shift string) (bool, error)

	FindByID(ctx context.Context, id string) (*Attendance, error)
	FindByGuardDateShift(ctx context.Context, guardID string, date time.Time, shift string) (*Attendance, error)
	FindAll(ctx context.Context, filter ListFilter) ([]Attendance, error)

	InsertDeleted(ctx context.Context, d *DeletedAttendance) error
	DeleteByID(ctx context.Context, id string) error
	FindDeletedByID(ctx context.Context, id string) (*DeletedAttendance, error)
	FindAllDeleted(ctx context.Context) ([]DeletedAttendance, error)
	InsertRestored(ctx context.Context, d *DeletedAttendance) (bool, error)
	RemoveDeleted(ctx context.Context, id string) error
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

func (r *repository) Upsert(ctx context.Context, a *Attendance) error {
	query := `
INSERT INTO attendances (id, guard_id, date, shift, status, notes, marked_by, timestamp)
VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
ON CONFLICT (guard_id, date, shift) DO UPDATE SET
    status    = EXCLUDED.status,
    notes     = EXCLUDED.notes,
    marked_by = EXCLUDED.marked_by,
    timestamp = NOW()
`
	exec := r.execer()
	_, err := exec.ExecContext(
		ctx, query,
		a.ID, a.GuardID, a.Date.Format("2006-01-02"), a.Shift,
		a.Status, a.Notes, a.MarkedBy,
	)
	return err
}

// UpsertIfUnmarked is the bulk-mark write. The conditional DO UPDATE means an
// already-marked row affects zero rows, which is how skips are counted.
func (r *repository) UpsertIfUnmarked(ctx context.Context, a *Attendance) (bool, error) {
	query := `
INSERT INTO attendances (id, guard_id, date, shift, status, notes, marked_by, timestamp)
VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
ON CONFLICT (guard_id, date, shift) DO UPDATE SET
    status    = EXCLUDED.status,
    marked_by = EXCLUDED.marked_by,
    timestamp = NOW()
WHERE attendances.status IS NULL OR attendances.status = ''
`
	exec := r.execer()
	res, err := exec.ExecContext(
		ctx, query,
		a.ID, a.GuardID, a.Date.Format("2006-01-02"), a.Shift,
		a.Status, a.Notes, a.MarkedBy,
	)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

func (r *repository) HasStatus(ctx context.Context, guardID string, date time.Time, shift string) (bool, error) {
	query := `
SELECT EXISTS (
    SELECT 1 FROM attendances
    WHERE guard_id = $1 AND date = $2 AND shift = $3
      AND status IS NOT NULL AND status <> ''
)
`
	var exists bool
	row := r.querier().QueryRowContext(ctx, query, guardID, date.Format("2006-01-02"), shift)
	if err := row.Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *repository) FindByID(ctx context.Context, id string) (*Attendance, error) {
	var a Attendance
	err := r.db.WithContext(ctx).
		Preload("Guard").
		Preload("Guard.Location").
		Preload("Guard.Location.Company").
		First(&a, "id = ?", id).Error
	return &a, err
}

func (r *repository) FindByGuardDateShift(ctx context.Context, guardID string, date time.Time, shift string) (*Attendance, error) {
	var a Attendance
	err := r.db.WithContext(ctx).
		Where("guard_id = ?", guardID).
		Where("date = ?", date.Format("2006-01-02")).
		Where("shift = ?", shift).
		First(&a).Error
	return &a, err
}

func (r *repository) FindAll(ctx context.Context, filter ListFilter) ([]Attendance, error) {
	q := r.db.WithContext(ctx).
		Preload("Guard").
		Preload("Guard.Location").
		Preload("Guard.Location.Company")

	if filter.GuardID != "" {
		q = q.Where("guard_id = ?", filter.GuardID)
	}
	if filter.Date != nil {
		q = q.Where("date = ?", filter.Date.Format("2006-01-02"))
	}
	if filter.LocationID != "" {
		q = q.Joins("JOIN guards ON guards.id = attendances.guard_id").
			Where("guards.location_id = ?", filter.LocationID)
	}

	var rows []Attendance
	err := q.Order("date DESC, timestamp DESC").Find(&rows).Error
	return rows, err
}

func (r *repository) InsertDeleted(ctx context.Context, d *DeletedAttendance) error {
	query := `
INSERT INTO deleted_attendances (
    id, original_attendance_id, guard_id, date, shift, status, notes,
    marked_by, timestamp, deleted_by, deleted_at, deletion_reason
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW(), $11)
`
	exec := r.execer()
	_, err := exec.ExecContext(
		ctx, query,
		d.ID, d.OriginalAttendanceID, d.GuardID,
		d.Date.Format("2006-01-02"), d.Shift, d.Status, d.Notes,
		d.MarkedBy, d.Timestamp, d.DeletedBy, d.DeletionReason,
	)
	return err
}

func (r *repository) DeleteByID(ctx context.Context, id string) error {
	exec := r.execer()
	res, err := exec.ExecContext(ctx, `DELETE FROM attendances WHERE id = $1`, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repository) FindDeletedByID(ctx context.Context, id string) (*DeletedAttendance, error) {
	var d DeletedAttendance
	err := r.db.WithContext(ctx).
		Preload("Guard").
		First(&d, "id = ?", id).Error
	return &d, err
}

func (r *repository) FindAllDeleted(ctx context.Context) ([]DeletedAttendance, error) {
	var rows []DeletedAttendance
	err := r.db.WithContext(ctx).
		Preload("Guard").
		Order("deleted_at DESC").
		Find(&rows).Error
	return rows, err
}

// InsertRestored puts a snapshot back into attendances. DO NOTHING on
// conflict: if a new record has since been written for the same natural key,
// the restore must not clobber it. Returns false in that case.
func (r *repository) InsertRestored(ctx context.Context, d *DeletedAttendance) (bool, error) {
	query := `
INSERT INTO attendances (id, guard_id, date, shift, status, notes, marked_by, timestamp)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
ON CONFLICT (guard_id, date, shift) DO NOTHING
`
	exec := r.execer()
	res, err := exec.ExecContext(
		ctx, query,
		d.OriginalAttendanceID, d.GuardID, d.Date.Format("2006-01-02"), d.Shift,
		d.Status, d.Notes, d.MarkedBy, d.Timestamp,
	)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

func (r *repository) RemoveDeleted(ctx context.Context, id string) error {
	exec := r.execer()
	_, err := exec.ExecContext(ctx, `DELETE FROM deleted_attendances WHERE id = $1`, id)
	return err
}

func (r *repository) execer() interface {
	ExecContext(context.Context, string, ...any) (sql.Result, error)
} {
	if r.tx != nil {
		return r.tx
	}
	return r.sqlDB
}

func (r *repository) querier() interface {
	QueryRowContext(context.Context, string, ...any) *sql.Row
} {
	if r.tx != nil {
		return r.tx
	}
	return r.sqlDB
}
