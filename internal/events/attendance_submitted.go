package events

import "time"

const AttendanceSubmittedTopic = "guarding.attendance.v1"

// AttendanceSubmittedEvent is published when attendance is first recorded for
// a guard (not on re-marks). The notification service fans it out to office
// staff.
type AttendanceSubmittedEvent struct {
	EventType  string    `json:"event_type"`
	MarkedBy   string    `json:"marked_by"`
	Shift      string    `json:"shift"`
	Date       string    `json:"date"`
	LocationID string    `json:"location_id"`
	GuardCount int       `json:"guard_count"`
	OccurredAt time.Time `json:"occurred_at"`
}
