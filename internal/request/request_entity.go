package request

import (
	"time"

	"github.com/google/uuid"
)

// Request status values.
const (
	StatusPending  = "Pending"
	StatusApproved = "Approved"
	StatusRejected = "Rejected"
)

// StaffRequest is a free-form request raised by staff (leave, HR, finance,
// incident reports). Supervisors see only their own; office roles see all.
type StaffRequest struct {
	ID          uuid.UUID  `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	FromUser    string     `gorm:"column:from_user;type:varchar(50);not null;index"`
	Role        string     `gorm:"column:role;type:varchar(50);not null"`
	Type        string     `gorm:"column:type;type:varchar(50);not null"`
	Description string     `gorm:"column:description;type:text;not null"`
	Status      string     `gorm:"column:status;type:varchar(20);not null;default:Pending"`
	SubmittedAt time.Time  `gorm:"column:submitted_at"`
	RespondedAt *time.Time `gorm:"column:responded_at"`
	UpdatedBy   *string    `gorm:"column:updated_by;type:varchar(50)"`
}

func (StaffRequest) TableName() string {
	return "requests"
}
