package comment

import (
	"context"
	"time"

	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, c *GuardComment) error
	FindActiveByGuard(ctx context.Context, guardID string) ([]GuardComment, error)
	FindByID(ctx context.Context, id string) (*GuardComment, error)
	Deactivate(ctx context.Context, id string) error

	// LatestActiveForGuardOnDate returns the newest active comment created on
	// the given date, or gorm.ErrRecordNotFound.
	LatestActiveForGuardOnDate(ctx context.Context, guardID string, date time.Time) (*GuardComment, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, c *GuardComment) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *repository) FindActiveByGuard(ctx context.Context, guardID string) ([]GuardComment, error) {
	var rows []GuardComment
	err := r.db.WithContext(ctx).
		Preload("Guard").
		Where("guard_id = ?", guardID).
		Where("is_active = ?", true).
		Order("created_at DESC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*GuardComment, error) {
	var c GuardComment
	err := r.db.WithContext(ctx).First(&c, "id = ?", id).Error
	return &c, err
}

func (r *repository) Deactivate(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).
		Model(&GuardComment{}).
		Where("id = ?", id).
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

func (r *repository) LatestActiveForGuardOnDate(ctx context.Context, guardID string, date time.Time) (*GuardComment, error) {
	var c GuardComment
	err := r.db.WithContext(ctx).
		Where("guard_id = ?", guardID).
		Where("DATE(created_at) = ?", date.Format("2006-01-02")).
		Where("is_active = ?", true).
		Order("created_at DESC").
		First(&c).Error
	return &c, err
}
