package attendance

type MarkRequest struct {
	GuardID string `json:"guard_id" binding:"required,uuid"`
	Status  string `json:"status" binding:"required,oneof=present absent off leave"`
	Shift   string `json:"shift" binding:"required,oneof=day night"`
	Notes   string `json:"notes"`
}

type BulkMarkRequest struct {
	LocationID string `json:"location_id" binding:"required,uuid"`
	Shift      string `json:"shift" binding:"required,oneof=day night"`
	Status     string `json:"status" binding:"required,oneof=present absent off leave"`
}

type BulkMarkResult struct {
	Marked  int    `json:"marked"`
	Skipped int    `json:"skipped"`
	Message string `json:"message"`
}

type DeleteRequest struct {
	Reason string `json:"reason"`
}

type AttendanceResponse struct {
	ID        string `json:"id"`
	GuardID   string `json:"guard_id"`
	GuardName string `json:"guard_name,omitempty"`
	Location  string `json:"location,omitempty"`
	Company   string `json:"company,omitempty"`
	Date      string `json:"date"`
	Shift     string `json:"shift"`
	Status    string `json:"status"`
	Notes     string `json:"notes,omitempty"`
	Comment   string `json:"comment,omitempty"`
	MarkedBy  string `json:"marked_by"`
	Timestamp string `json:"timestamp"`
}

type DeletedAttendanceResponse struct {
	ID             string `json:"id"`
	GuardID        string `json:"guard_id"`
	GuardName      string `json:"guard_name,omitempty"`
	Date           string `json:"date"`
	Shift          string `json:"shift"`
	Status         string `json:"status"`
	DeletedBy      string `json:"deleted_by"`
	DeletedAt      string `json:"deleted_at"`
	DeletionReason string `json:"deletion_reason,omitempty"`
}
