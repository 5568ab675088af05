package payroll

import (
	"time"

	"github.com/google/uuid"
)

// PayrollTracking records the scheduled-vs-actual assignment behind every
// attendance mark. Rate and overtime computation happens in a downstream
// system; this table only captures the facts it needs.
type PayrollTracking struct {
	ID                  uuid.UUID `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	GuardID             uuid.UUID `gorm:"column:guard_id;type:uuid;not null;index"`
	Date                time.Time `gorm:"column:date;type:date;not null"`
	ScheduledShift      string    `gorm:"column:scheduled_shift;type:varchar(10);not null"`
	ActualShift         string    `gorm:"column:actual_shift;type:varchar(10);not null"`
	ScheduledLocationID uuid.UUID `gorm:"column:scheduled_location_id;type:uuid;not null"`
	ActualLocationID    uuid.UUID `gorm:"column:actual_location_id;type:uuid;not null"`
	Status              string    `gorm:"column:status;type:varchar(20);not null"`
	CreatedBy           string    `gorm:"column:created_by;type:varchar(50);not null"`
	CreatedAt           time.Time `gorm:"column:created_at"`
}

func (PayrollTracking) TableName() string {
	return "payroll_tracking"
}
