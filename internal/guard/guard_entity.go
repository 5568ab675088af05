package guard

import (
	"time"

	"github.com/google/uuid"
)

// Shift values. A guard has exactly one default shift; overrides move them
// for a single date.
const (
	ShiftDay   = "day"
	ShiftNight = "night"
)

func ValidShift(s string) bool {
	return s == ShiftDay || s == ShiftNight
}

// Functional roles on site.
const (
	RoleGuard      = "guard"
	RoleSupervisor = "supervisor"
	RoleDriver     = "driver"
)

// Guard is a permanent roster entry. Guards are soft-deactivated on
// resignation, never hard-deleted, so attendance history stays intact.
type Guard struct {
	ID           uuid.UUID    `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	Name         string       `gorm:"column:name;type:varchar(100);not null"`
	LocationID   uuid.UUID    `gorm:"column:location_id;type:uuid;not null;index"`
	ShiftType    string       `gorm:"column:shift_type;type:varchar(10);not null"`
	Role         string       `gorm:"column:role;type:varchar(20);not null;default:guard"`
	IsActive     bool         `gorm:"column:is_active;not null;default:true"`
	ResignedDate *time.Time   `gorm:"column:resigned_date;type:date"`
	Notes        *string      `gorm:"column:notes;type:text"`
	CreatedAt    time.Time    `gorm:"column:created_at"`
	UpdatedAt    time.Time    `gorm:"column:updated_at"`
	Location     *LocationRef `gorm:"foreignKey:LocationID;references:ID"`
}

func (Guard) TableName() string {
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
