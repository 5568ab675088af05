package notification

import (
	"context"
	"errors"
	"fmt"
	"time"

	"guardshift/internal/auth"
	"guardshift/internal/authz"
	"guardshift/internal/events"
	notificationerrors "guardshift/internal/notification/errors"

	"gorm.io/gorm"
)

// Roles that receive attendance submission fan-outs.
var officeRoles = []string{
	authz.RoleOpsManager,
	authz.RoleHROfficer,
	authz.RoleGeneralManager,
}

type Service interface {
	List(ctx context.Context, p authz.Principal) ([]NotificationResponse, error)
	UnreadCount(ctx context.Context, p authz.Principal) (int64, error)
	MarkRead(ctx context.Context, p authz.Principal, id string) error
	Dismiss(ctx context.Context, p authz.Principal, id string) error
	MarkAllRead(ctx context.Context, p authz.Principal) (int64, error)
	GetSettings(ctx context.Context, p authz.Principal) (SettingsResponse, error)
	UpdateSettings(ctx context.Context, p authz.Principal, req UpdateSettingsRequest) (SettingsResponse, error)

	// HandleAttendanceSubmitted fans an attendance.submitted event out to
	// office staff whose settings allow it. Called by the kafka consumer.
	HandleAttendanceSubmitted(ctx context.Context, event events.AttendanceSubmittedEvent) error
}

type service struct {
	repo  Repository
	users auth.Repository
}

func NewService(repo Repository, users auth.Repository) Service {
	return &service{repo: repo, users: users}
}

func (s *service) List(ctx context.Context, p authz.Principal) ([]NotificationResponse, error) {
	unread, err := s.repo.FindUnreadForUser(ctx, p.Username, 20)
	if err != nil {
		return nil, err
	}
	weekAgo := time.Now().UTC().AddDate(0, 0, -7)
	recentRead, err := s.repo.FindRecentReadForUser(ctx, p.Username, weekAgo, 10)
	if err != nil {
		return nil, err
	}

	rows := append(unread, recentRead...)
	out := make([]NotificationResponse, 0, len(rows))
	for _, n := range rows {
		resp := NotificationResponse{
			ID:        n.ID.String(),
			Title:     n.Title,
			Message:   n.Message,
			Type:      n.NotificationType,
			Category:  n.Category,
			IsRead:    n.IsRead,
			CreatedAt: n.CreatedAt.Format("2006-01-02 15:04:05"),
		}
		if n.ReferenceID != nil {
			resp.ReferenceID = *n.ReferenceID
		}
		if n.ReferenceType != nil {
			resp.ReferenceType = *n.ReferenceType
		}
		out = append(out, resp)
	}
	return out, nil
}

func (s *service) UnreadCount(ctx context.Context, p authz.Principal) (int64, error) {
	return s.repo.CountUnread(ctx, p.Username)
}

func (s *service) MarkRead(ctx context.Context, p authz.Principal, id string) error {
	n, err := s.ownedNotification(ctx, p, id)
	if err != nil {
		return err
	}
	return s.repo.MarkRead(ctx, n.ID.String())
}

func (s *service) Dismiss(ctx context.Context, p authz.Principal, id string) error {
	n, err := s.ownedNotification(ctx, p, id)
	if err != nil {
		return err
	}
	return s.repo.Dismiss(ctx, n.ID.String())
}

func (s *service) MarkAllRead(ctx context.Context, p authz.Principal) (int64, error) {
	return s.repo.MarkAllRead(ctx, p.Username)
}

func (s *service) GetSettings(ctx context.Context, p authz.Principal) (SettingsResponse, error) {
	settings, err := s.repo.GetOrCreateSettings(ctx, p.Username, p.Role)
	if err != nil {
		return SettingsResponse{}, err
	}
	return toSettingsResponse(settings), nil
}

func (s *service) UpdateSettings(ctx context.Context, p authz.Principal, req UpdateSettingsRequest) (SettingsResponse, error) {
	settings, err := s.repo.GetOrCreateSettings(ctx, p.Username, p.Role)
	if err != nil {
		return SettingsResponse{}, err
	}

	if req.NotifyNewRequests != nil {
		settings.NotifyNewRequests = *req.NotifyNewRequests
	}
	if req.NotifyAttendanceSubmitted != nil {
		settings.NotifyAttendanceSubmitted = *req.NotifyAttendanceSubmitted
	}
	if req.NotifyGuardIssues != nil {
		settings.NotifyGuardIssues = *req.NotifyGuardIssues
	}
	if req.NotifyShiftChanges != nil {
		settings.NotifyShiftChanges = *req.NotifyShiftChanges
	}
	if req.InAppNotifications != nil {
		settings.InAppNotifications = *req.InAppNotifications
	}
	if req.EmailNotifications != nil {
		settings.EmailNotifications = *req.EmailNotifications
	}
	settings.UpdatedAt = time.Now().UTC()

	if err := s.repo.UpdateSettings(ctx, settings); err != nil {
		return SettingsResponse{}, err
	}
	return toSettingsResponse(settings), nil
}

func (s *service) HandleAttendanceSubmitted(ctx context.Context, event events.AttendanceSubmittedEvent) error {
	staff, err := s.users.FindActiveByRoles(ctx, officeRoles)
	if err != nil {
		return err
	}

	emoji := "☀️"
	if event.Shift == "night" {
		emoji = "🌙"
	}
	title := fmt.Sprintf("%s Attendance Submitted", emoji)
	message := fmt.Sprintf("%s submitted %s shift attendance (%d guards).",
		event.MarkedBy, event.Shift, event.GuardCount)

	refType := "attendance_summary"
	expires := event.OccurredAt.Add(48 * time.Hour)

	for _, u := range staff {
		settings, err := s.repo.GetOrCreateSettings(ctx, u.Username, u.Role)
		if err != nil {
			return err
		}
		if !settings.NotifyAttendanceSubmitted || !settings.InAppNotifications {
			continue
		}

		refID := event.LocationID
		if err := s.repo.Create(ctx, &Notification{
			RecipientUsername: u.Username,
			RecipientRole:     u.Role,
			Title:             title,
			Message:           message,
			NotificationType:  TypeInfo,
			Category:          "attendance",
			ReferenceID:       &refID,
			ReferenceType:     &refType,
			ExpiresAt:         &expires,
		}); err != nil {
			return err
		}
	}
	return nil
}

func (s *service) ownedNotification(ctx context.Context, p authz.Principal, id string) (*Notification, error) {
	n, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notificationerrors.ErrNotificationNotFound
		}
		return nil, err
	}
	if n.RecipientUsername != p.Username {
		return nil, notificationerrors.ErrNotRecipient
	}
	return n, nil
}

func toSettingsResponse(s *NotificationSettings) SettingsResponse {
	return SettingsResponse{
		NotifyNewRequests:         s.NotifyNewRequests,
		NotifyAttendanceSubmitted: s.NotifyAttendanceSubmitted,
		NotifyGuardIssues:         s.NotifyGuardIssues,
		NotifyShiftChanges:        s.NotifyShiftChanges,
		InAppNotifications:        s.InAppNotifications,
		EmailNotifications:        s.EmailNotifications,
	}
}
