package notification

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/rahmadiangg/attendance-management/internal"
	"github.com/rahmadiangg/attendance-management/internal/core/events"
	"github.com/rahmadiangg/attendance-management/internal/core/validation"
	"github.com/rahmadiangg/attendance-management/internal/user"
)

// Service writes and reads user notifications.
type Service struct {
	repo     RepositoryAPI
	userRepo user.RepositoryAPI
	logger   *slog.Logger
}

func NewService(repo RepositoryAPI, userRepo user.RepositoryAPI, logger *slog.Logger) *Service {
	return &Service{
		repo:     repo,
		userRepo: userRepo,
		logger:   logger,
	}
}

func (s *Service) SendToUser(dto SendToUserDTO) (*Notification, error) {
	if err := validation.Struct(dto); err != nil {
		return nil, err
	}

	if _, err := s.userRepo.GetByID(dto.UserID); err != nil {
		return nil, err
	}

	n := &Notification{
		UserID:   dto.UserID,
		Title:    dto.Title,
		Message:  dto.Message,
		Type:     defaulted(dto.Type, TypeInfo),
		Priority: defaulted(dto.Priority, PriorityLow),
	}
	if err := s.repo.Create(n); err != nil {
		s.logger.Error("failed to create notification", "error", err, "user_id", dto.UserID)
		return nil, err
	}
	return n, nil
}

func (s *Service) SendToRole(dto SendToRoleDTO) ([]*Notification, error) {
	if err := validation.Struct(dto); err != nil {
		return nil, err
	}

	users, err := s.userRepo.GetActiveByRole(dto.Role)
	if err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return nil, internal.NewNotFoundError("No user found with that role", internal.ErrCodeUserNotFound)
	}

	notifications := make([]*Notification, 0, len(users))
	for _, u := range users {
		n := &Notification{
			UserID:   u.ID,
			Title:    dto.Title,
			Message:  dto.Message,
			Type:     defaulted(dto.Type, TypeInfo),
			Priority: defaulted(dto.Priority, PriorityLow),
		}
		if err := s.repo.Create(n); err != nil {
			s.logger.Error("failed to create notification", "error", err, "user_id", u.ID)
			return nil, err
		}
		notifications = append(notifications, n)
	}
	return notifications, nil
}

func (s *Service) GetMyNotifications(userID int64) ([]*Notification, error) {
	return s.repo.GetByUser(userID)
}

func (s *Service) MarkAsRead(id int64) (*Notification, error) {
	n, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}

	n.IsRead = true
	if err := s.repo.Update(n); err != nil {
		s.logger.Error("failed to mark notification read", "error", err, "notification_id", id)
		return nil, err
	}
	return n, nil
}

// HandleAttendanceRecorded is the event-bus subscriber writing the
// "Attendance Recorded" inbox entry after each scan.
func (s *Service) HandleAttendanceRecorded(ctx context.Context, event events.Event) error {
	recorded, ok := event.(*events.AttendanceRecordedEvent)
	if !ok {
		return fmt.Errorf("unexpected event payload for %s", event.EventType())
	}

	n := &Notification{
		UserID:   recorded.UserID,
		Title:    "Attendance Recorded",
		Message:  fmt.Sprintf("Your attendance was recorded with status %s", recorded.Status),
		Type:     TypeInfo,
		Priority: PriorityLow,
	}
	return s.repo.Create(n)
}

func defaulted(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
