package location

import (
	"time"

	"github.com/google/uuid"
)

// Location is a client site. Deactivation happens through the accessibility
// flag; rows are never deleted because guards and overrides reference them.
type Location struct {
	ID           uuid.UUID   `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	Name         string      `gorm:"column:name;type:varchar(100);not null"`
	CompanyID    uuid.UUID   `gorm:"column:company_id;type:uuid;not null;index"`
	IsAccessible bool        `gorm:"column:is_accessible;not null;default:true"`
	CreatedAt    time.Time   `gorm:"column:created_at"`
	UpdatedAt    time.Time   `gorm:"column:updated_at"`
	Company      *CompanyRef `gorm:"foreignKey:CompanyID;references:ID"`
}

func (Location) TableName() string {
	return "locations"
}

type CompanyRef struct {
	ID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name string    `gorm:"column:name"`
}

func (CompanyRef) TableName() string {
	return "companies"
}
