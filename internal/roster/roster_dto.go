package roster

// RosterEntry is one guard on the resolved roster for a location/shift/date.
// Regular guards come first in stable fetch order, then guards relocated in
// by an override, each guard appearing at most once.
type RosterEntry struct {
	GuardID      string  `json:"id"`
	Name         string  `json:"name"`
	Role         string  `json:"role"`
	Status       *string `json:"status"`
	Notes        string  `json:"notes"`
	DefaultShift string  `json:"default_shift"`
	CurrentShift string  `json:"current_shift"`
	HasOverride  bool    `json:"has_override"`
	IsTemporary  bool    `json:"is_temporary"`

	// Set only when an override applies.
	OverrideReason    string `json:"override_reason,omitempty"`
	IsShiftChanged    bool   `json:"is_shift_changed,omitempty"`
	IsLocationChanged bool   `json:"is_location_changed,omitempty"`

	// Set only for temporarily relocated guards.
	OriginalLocation string `json:"original_location,omitempty"`
	OriginalCompany  string `json:"original_company,omitempty"`

	// Latest active same-day comment, when one exists.
	Comment string `json:"comment,omitempty"`
}
