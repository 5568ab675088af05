package notification

type NotificationResponse struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	Message       string `json:"message"`
	Type          string `json:"type"`
	Category      string `json:"category"`
	IsRead        bool   `json:"is_read"`
	CreatedAt     string `json:"created_at"`
	ReferenceID   string `json:"reference_id,omitempty"`
	ReferenceType string `json:"reference_type,omitempty"`
}

type SettingsResponse struct {
	NotifyNewRequests         bool `json:"notify_new_requests"`
	NotifyAttendanceSubmitted bool `json:"notify_attendance_submitted"`
	NotifyGuardIssues         bool `json:"notify_guard_issues"`
	NotifyShiftChanges        bool `json:"notify_shift_changes"`
	InAppNotifications        bool `json:"in_app_notifications"`
	EmailNotifications        bool `json:"email_notifications"`
}

type UpdateSettingsRequest struct {
	NotifyNewRequests         *bool `json:"notify_new_requests"`
	NotifyAttendanceSubmitted *bool `json:"notify_attendance_submitted"`
	NotifyGuardIssues         *bool `json:"notify_guard_issues"`
	NotifyShiftChanges        *bool `json:"notify_shift_changes"`
	InAppNotifications        *bool `json:"in_app_notifications"`
	EmailNotifications        *bool `json:"email_notifications"`
}
