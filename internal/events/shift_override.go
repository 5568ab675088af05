package events

import "time"

const ShiftOverrideTopic = "guarding.shift.v1"

type ShiftOverrideEvent struct {
	EventType        string    `json:"event_type"` // shift_override.created | shift_override.removed
	GuardID          string    `json:"guard_id"`
	GuardName        string    `json:"guard_name,omitempty"`
	OverrideShift    string    `json:"override_shift,omitempty"`
	OverrideLocation string    `json:"override_location_id,omitempty"`
	Date             string    `json:"date"`
	Reason           string    `json:"reason,omitempty"`
	CreatedBy        string    `json:"created_by"`
	OccurredAt       time.Time `json:"occurred_at"`
}
