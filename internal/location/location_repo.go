package location

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, l *Location) error
	FindAll(ctx context.Context) ([]Location, error)
	FindAccessible(ctx context.Context) ([]Location, error)
	FindByID(ctx context.Context, id string) (*Location, error)
	FindAccessibleForShift(ctx context.Context, shift string) ([]Location, error)
	SetAccessible(ctx context.Context, id string, accessible bool) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, l *Location) error {
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *repository) FindAll(ctx context.Context) ([]Location, error) {
	var rows []Location
	err := r.db.WithContext(ctx).
		Preload("Company").
		Order("name ASC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) FindAccessible(ctx context.Context) ([]Location, error) {
	var rows []Location
	err := r.db.WithContext(ctx).
		Preload("Company").
		Where("is_accessible = ?", true).
		Order("name ASC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*Location, error) {
	var l Location
	err := r.db.WithContext(ctx).
		Preload("Company").
		First(&l, "id = ?", id).Error
	return &l, err
}

// FindAccessibleForShift returns accessible locations that have at least one
// active guard rostered on the given shift.
func (r *repository) FindAccessibleForShift(ctx context.Context, shift string) ([]Location, error) {
	var rows []Location
	err := r.db.WithContext(ctx).
		Preload("Company").
		Joins("JOIN guards ON guards.location_id = locations.id").
		Where("locations.is_accessible = ?", true).
		Where("guards.shift_type = ?", shift).
		Where("guards.is_active = ?", true).
		Distinct("locations.*").
		Find(&rows).Error
	return rows, err
}

func (r *repository) SetAccessible(ctx context.Context, id string, accessible bool) error {
	res := r.db.WithContext(ctx).
		Model(&Location{}).
		Where("id = ?", id).
		Update("is_accessible", accessible)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
