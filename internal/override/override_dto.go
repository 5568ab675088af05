package override

type CreateOverrideRequest struct {
	GuardID            string `json:"guard_id" binding:"required,uuid"`
	OverrideShift      string `json:"override_shift" binding:"required,oneof=day night"`
	OverrideLocationID string `json:"override_location_id" binding:"omitempty,uuid"`
	Reason             string `json:"reason" binding:"required"`
	Date               string `json:"date" binding:"omitempty,datetime=2006-01-02"`
}

type OverrideResponse struct {
	GuardID            string `json:"guard_id"`
	GuardName          string `json:"guard_name,omitempty"`
	OriginalShift      string `json:"original_shift"`
	OverrideShift      string `json:"override_shift"`
	OriginalLocationID string `json:"original_location_id"`
	OverrideLocationID string `json:"override_location_id"`
	Date               string `json:"date"`
	Reason             string `json:"reason"`
	CreatedBy          string `json:"created_by"`
	IsShiftChanged     bool   `json:"is_shift_changed"`
	IsLocationChanged  bool   `json:"is_location_changed"`
}

// ShiftInfoResponse reports a guard's default assignment plus the
// override-resolved one for today.
type ShiftInfoResponse struct {
	GuardID           string `json:"guard_id"`
	GuardName         string `json:"guard_name"`
	DefaultShift      string `json:"default_shift"`
	DefaultLocation   string `json:"default_location"`
	DefaultCompany    string `json:"default_company"`
	HasOverride       bool   `json:"has_override"`
	CurrentShift      string `json:"current_shift"`
	CurrentLocation   string `json:"current_location"`
	CurrentCompany    string `json:"current_company"`
	OverrideReason    string `json:"override_reason,omitempty"`
	OverrideCreatedBy string `json:"override_created_by,omitempty"`
	IsShiftChanged    bool   `json:"is_shift_changed,omitempty"`
	IsLocationChanged bool   `json:"is_location_changed,omitempty"`
}
