package request

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, req *StaffRequest) error
	FindByID(ctx context.Context, id string) (*StaffRequest, error)
	FindAll(ctx context.Context) ([]StaffRequest, error)
	FindByUser(ctx context.Context, username string) ([]StaffRequest, error)
	Update(ctx context.Context, req *StaffRequest) error
	Delete(ctx context.Context, id string) error
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

func (r *repository) Create(ctx context.Context, req *StaffRequest) error {
	query := `
INSERT INTO requests (id, from_user, role, type, description, status, submitted_at)
VALUES ($1, $2, $3, $4, $5, $6, NOW())
`
	exec := r.execer()
	_, err := exec.ExecContext(
		ctx, query,
		req.ID, req.FromUser, req.Role, req.Type, req.Description, req.Status,
	)
	return err
}

func (r *repository) FindByID(ctx context.Context, id string) (*StaffRequest, error) {
	var req StaffRequest
	err := r.db.WithContext(ctx).First(&req, "id = ?", id).Error
	return &req, err
}

func (r *repository) FindAll(ctx context.Context) ([]StaffRequest, error) {
	var rows []StaffRequest
	err := r.db.WithContext(ctx).Order("submitted_at DESC").Find(&rows).Error
	return rows, err
}

func (r *repository) FindByUser(ctx context.Context, username string) ([]StaffRequest, error) {
	var rows []StaffRequest
	err := r.db.WithContext(ctx).
		Where("from_user = ?", username).
		Order("submitted_at DESC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) Update(ctx context.Context, req *StaffRequest) error {
	return r.db.WithContext(ctx).Save(req).Error
}

func (r *repository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&StaffRequest{}, "id = ?", id)
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
