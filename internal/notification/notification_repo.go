package notification

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, n *Notification) error
	FindByID(ctx context.Context, id string) (*Notification, error)
	FindUnreadForUser(ctx context.Context, username string, limit int) ([]Notification, error)
	FindRecentReadForUser(ctx context.Context, username string, since time.Time, limit int) ([]Notification, error)
	CountUnread(ctx context.Context, username string) (int64, error)
	MarkRead(ctx context.Context, id string) error
	Dismiss(ctx context.Context, id string) error
	MarkAllRead(ctx context.Context, username string) (int64, error)

	GetOrCreateSettings(ctx context.Context, username, role string) (*NotificationSettings, error)
	UpdateSettings(ctx context.Context, s *NotificationSettings) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, n *Notification) error {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	return r.db.WithContext(ctx).Create(n).Error
}

func (r *repository) FindByID(ctx context.Context, id string) (*Notification, error) {
	var n Notification
	err := r.db.WithContext(ctx).First(&n, "id = ?", id).Error
	return &n, err
}

func (r *repository) FindUnreadForUser(ctx context.Context, username string, limit int) ([]Notification, error) {
	var rows []Notification
	err := r.db.WithContext(ctx).
		Where("recipient_username = ?", username).
		Where("is_read = ?", false).
		Where("is_dismissed = ?", false).
		Order("created_at DESC").
		Limit(limit).
		Find(&rows).Error
	return rows, err
}

func (r *repository) FindRecentReadForUser(ctx context.Context, username string, since time.Time, limit int) ([]Notification, error) {
	var rows []Notification
	err := r.db.WithContext(ctx).
		Where("recipient_username = ?", username).
		Where("is_read = ?", true).
		Where("is_dismissed = ?", false).
		Where("created_at >= ?", since).
		Order("created_at DESC").
		Limit(limit).
		Find(&rows).Error
	return rows, err
}

func (r *repository) CountUnread(ctx context.Context, username string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&Notification{}).
		Where("recipient_username = ?", username).
		Where("is_read = ?", false).
		Where("is_dismissed = ?", false).
		Count(&count).Error
	return count, err
}

func (r *repository) MarkRead(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Model(&Notification{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"is_read":      true,
			"delivered_at": time.Now().UTC(),
		}).Error
}

func (r *repository) Dismiss(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Model(&Notification{}).
		Where("id = ?", id).
		Update("is_dismissed", true).Error
}

func (r *repository) MarkAllRead(ctx context.Context, username string) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&Notification{}).
		Where("recipient_username = ?", username).
		Where("is_read = ?", false).
		Updates(map[string]any{
			"is_read":      true,
			"delivered_at": time.Now().UTC(),
		})
	return res.RowsAffected, res.Error
}

func (r *repository) GetOrCreateSettings(ctx context.Context, username, role string) (*NotificationSettings, error) {
	var s NotificationSettings
	err := r.db.WithContext(ctx).Where("username = ?", username).First(&s).Error
	if err == nil {
		return &s, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	s = NotificationSettings{
		ID:                        uuid.New(),
		Username:                  username,
		Role:                      role,
		NotifyNewRequests:         true,
		NotifyAttendanceSubmitted: true,
		NotifyGuardIssues:         true,
		NotifyShiftChanges:        true,
		InAppNotifications:        true,
	}
	if err := r.db.WithContext(ctx).Create(&s).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *repository) UpdateSettings(ctx context.Context, s *NotificationSettings) error {
	return r.db.WithContext(ctx).Save(s).Error
}
