package override

import (
	"time"

	"github.com/google/uuid"
)

// ShiftOverride is a date-scoped temporary reassignment of one guard.
//
// At most one override may be active per (guard, date). This is enforced in
// the database by a partial unique index:
//
//	CREATE UNIQUE INDEX uq_shift_overrides_active
//	    ON shift_overrides (guard_id, date) WHERE is_active;
//
// and writes go through an atomic INSERT ... ON CONFLICT upsert, so two
// concurrent creators cannot produce duplicate active rows.
//
// The original_* columns are a snapshot of the guard's home assignment taken
// when the override was first created. They record provenance and are never
// recomputed, not even when a later upsert changes the override target.
type ShiftOverride struct {
	ID                 uuid.UUID    `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	GuardID            uuid.UUID    `gorm:"column:guard_id;type:uuid;not null;index:idx_overrides_guard_date"`
	OriginalShift      string       `gorm:"column:original_shift;type:varchar(10);not null"`
	OverrideShift      string       `gorm:"column:override_shift;type:varchar(10);not null"`
	OriginalLocationID uuid.UUID    `gorm:"column:original_location_id;type:uuid;not null"`
	OverrideLocationID uuid.UUID    `gorm:"column:override_location_id;type:uuid;not null;index"`
	Date               time.Time    `gorm:"column:date;type:date;not null;index:idx_overrides_guard_date"`
	Reason             string       `gorm:"column:reason;type:varchar(200);not null"`
	CreatedBy          string       `gorm:"column:created_by;type:varchar(50);not null"`
	CreatedAt          time.Time    `gorm:"column:created_at"`
	IsActive           bool         `gorm:"column:is_active;not null;default:true"`
	Guard              *GuardRef    `gorm:"foreignKey:GuardID;references:ID"`
	OriginalLocation   *LocationRef `gorm:"foreignKey:OriginalLocationID;references:ID"`
	OverrideLocation   *LocationRef `gorm:"foreignKey:OverrideLocationID;references:ID"`
}

func (ShiftOverride) TableName() string {
	return "shift_overrides"
}

type GuardRef struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name      string    `gorm:"column:name"`
	ShiftType string    `gorm:"column:shift_type"`
	Role      string    `gorm:"column:role"`
}

func (GuardRef) TableName() string {
	return "guards"
}

type LocationRef struct {
	ID           uuid.UUID   `gorm:"type:uuid;primaryKey"`
	Name         string      `gorm:"column:name"`
	CompanyID    uuid.UUID   `gorm:"column:company_id;type:uuid"`
	IsAccessible bool        `gorm:"column:is_accessible"`
	Company      *CompanyRef `gorm:"foreignKey:CompanyID;references:ID"`
}

func (LocationRef) TableName() string {
	return "locations"
}

type CompanyRef struct {
	ID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name string    `gorm:"column:name"`
}

func (CompanyRef) TableName() string {
	return "companies"
}
