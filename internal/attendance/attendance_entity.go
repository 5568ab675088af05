package attendance

import (
	"time"

	"github.com/google/uuid"
)

// Attendance status values.
const (
	StatusPresent = "present"
	StatusAbsent  = "absent"
	StatusOff     = "off"
	StatusLeave   = "leave"
)

func ValidStatus(s string) bool {
	switch s {
	case StatusPresent, StatusAbsent, StatusOff, StatusLeave:
		return true
	}
	return false
}

// Attendance is one guard's record for one date and shift.
//
// The natural key (guard_id, date, shift) is enforced by a real unique
// index:
//
//	CREATE UNIQUE INDEX uq_attendances_guard_date_shift
//	    ON attendances (guard_id, date, shift);
//
// All writes are INSERT ... ON CONFLICT upserts against it, so concurrent
// markers cannot create duplicate rows.
type Attendance struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	GuardID   uuid.UUID `gorm:"column:guard_id;type:uuid;not null;uniqueIndex:uq_attendances_guard_date_shift"`
	Date      time.Time `gorm:"column:date;type:date;not null;uniqueIndex:uq_attendances_guard_date_shift"`
	Shift     string    `gorm:"column:shift;type:varchar(10);not null;uniqueIndex:uq_attendances_guard_date_shift"`
	Status    string    `gorm:"column:status;type:varchar(20)"`
	Notes     string    `gorm:"column:notes;type:text"`
	MarkedBy  string    `gorm:"column:marked_by;type:varchar(50)"`
	Timestamp time.Time `gorm:"column:timestamp"`
	Guard     *GuardRef `gorm:"foreignKey:GuardID;references:ID"`
}

func (Attendance) TableName() string {
	return "attendances"
}

// DeletedAttendance is a full snapshot of a soft-deleted record. Restoring
// moves the snapshot back into attendances and removes it from here.
type DeletedAttendance struct {
	ID                   uuid.UUID `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	OriginalAttendanceID uuid.UUID `gorm:"column:original_attendance_id;type:uuid;not null"`
	GuardID              uuid.UUID `gorm:"column:guard_id;type:uuid;not null;index"`
	Date                 time.Time `gorm:"column:date;type:date;not null"`
	Shift                string    `gorm:"column:shift;type:varchar(10);not null"`
	Status               string    `gorm:"column:status;type:varchar(20);not null"`
	Notes                string    `gorm:"column:notes;type:text"`
	MarkedBy             string    `gorm:"column:marked_by;type:varchar(50)"`
	Timestamp            time.Time `gorm:"column:timestamp;not null"`
	DeletedBy            string    `gorm:"column:deleted_by;type:varchar(50);not null"`
	DeletedAt            time.Time `gorm:"column:deleted_at"`
	DeletionReason       string    `gorm:"column:deletion_reason;type:text"`
	Guard                *GuardRef `gorm:"foreignKey:GuardID;references:ID"`
}

func (DeletedAttendance) TableName() string {
	return "deleted_attendances"
}

type GuardRef struct {
	ID         uuid.UUID    `gorm:"type:uuid;primaryKey"`
	Name       string       `gorm:"column:name"`
	ShiftType  string       `gorm:"column:shift_type"`
	Role       string       `gorm:"column:role"`
	LocationID uuid.UUID    `gorm:"column:location_id;type:uuid"`
	Location   *LocationRef `gorm:"foreignKey:LocationID;references:ID"`
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
