package guard

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, g *Guard) error
	FindByID(ctx context.Context, id string) (*Guard, error)
	FindActiveByLocationAndShift(ctx context.Context, locationID, shift string) ([]Guard, error)
	FindAllByLocation(ctx context.Context, locationID string) ([]Guard, error)
	Update(ctx context.Context, g *Guard) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, g *Guard) error {
	return r.db.WithContext(ctx).Create(g).Error
}

func (r *repository) FindByID(ctx context.Context, id string) (*Guard, error) {
	var g Guard
	err := r.db.WithContext(ctx).
		Preload("Location").
		Preload("Location.Company").
		First(&g, "id = ?", id).Error
	return &g, err
}

// FindActiveByLocationAndShift returns the static home roster for a
// location/shift in stable insertion order.
func (r *repository) FindActiveByLocationAndShift(ctx context.Context, locationID, shift string) ([]Guard, error) {
	var rows []Guard
	err := r.db.WithContext(ctx).
		Where("location_id = ?", locationID).
		Where("shift_type = ?", shift).
		Where("is_active = ?", true).
		Order("created_at ASC, id ASC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) FindAllByLocation(ctx context.Context, locationID string) ([]Guard, error) {
	var rows []Guard
	err := r.db.WithContext(ctx).
		Where("location_id = ?", locationID).
		Order("shift_type ASC, name ASC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) Update(ctx context.Context, g *Guard) error {
	return r.db.WithContext(ctx).Save(g).Error
}
