package company

import (
	"time"

	"github.com/google/uuid"
)

// Company is a pure grouping entity for client sites. It has no lifecycle
// logic beyond its name.
type Company struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	Name      string    `gorm:"column:name;type:varchar(50);not null"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (Company) TableName() string {
	return "companies"
}
