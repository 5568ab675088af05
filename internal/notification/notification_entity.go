package notification

import (
	"time"

	"github.com/google/uuid"
)

// Notification type values.
const (
	TypeInfo     = "info"
	TypeAlert    = "alert"
	TypeReminder = "reminder"
	TypeUrgent   = "urgent"
)

type Notification struct {
	ID                uuid.UUID  `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	RecipientUsername string     `gorm:"column:recipient_username;type:varchar(50);not null;index"`
	RecipientRole     string     `gorm:"column:recipient_role;type:varchar(50);not null"`
	Title             string     `gorm:"column:title;type:varchar(200);not null"`
	Message           string     `gorm:"column:message;type:text;not null"`
	NotificationType  string     `gorm:"column:notification_type;type:varchar(50);not null"`
	Category          string     `gorm:"column:category;type:varchar(50);not null"`
	ReferenceID       *string    `gorm:"column:reference_id;type:varchar(100)"`
	ReferenceType     *string    `gorm:"column:reference_type;type:varchar(50)"`
	IsRead            bool       `gorm:"column:is_read;not null;default:false"`
	IsDismissed       bool       `gorm:"column:is_dismissed;not null;default:false"`
	DeliveredAt       *time.Time `gorm:"column:delivered_at"`
	CreatedAt         time.Time  `gorm:"column:created_at"`
	ExpiresAt         *time.Time `gorm:"column:expires_at"`
}

func (Notification) TableName() string {
	return "notifications"
}

// NotificationSettings holds per-user event preferences. A row is created
// with defaults on first read.
type NotificationSettings struct {
	ID       uuid.UUID `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	Username string    `gorm:"column:username;type:varchar(50);uniqueIndex;not null"`
	Role     string    `gorm:"column:role;type:varchar(50);not null"`

	NotifyNewRequests         bool `gorm:"column:notify_new_requests;not null;default:true"`
	NotifyAttendanceSubmitted bool `gorm:"column:notify_attendance_submitted;not null;default:true"`
	NotifyGuardIssues         bool `gorm:"column:notify_guard_issues;not null;default:true"`
	NotifyShiftChanges        bool `gorm:"column:notify_shift_changes;not null;default:true"`

	InAppNotifications bool `gorm:"column:in_app_notifications;not null;default:true"`
	EmailNotifications bool `gorm:"column:email_notifications;not null;default:false"`

	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (NotificationSettings) TableName() string {
	return "notification_settings"
}
