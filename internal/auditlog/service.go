package auditlog

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/rahmadiangg/attendance-management/internal/core/events"
)

// Service appends and reads the audit trail. Writes are best-effort: a
// failed append is logged and swallowed so it never breaks the operation
// being audited.
type Service struct {
	repo   RepositoryAPI
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

func (s *Service) Log(entry *Entry) {
	if err := s.repo.Create(entry); err != nil {
		s.logger.Error("failed to write audit log", "error", err, "action", entry.Action, "user_id", entry.UserID)
	}
}

func (s *Service) GetLogs() ([]*Entry, error) {
	return s.repo.Latest(100)
}

// HandleAttendanceRecorded writes the scan trail entry off the event bus.
func (s *Service) HandleAttendanceRecorded(ctx context.Context, event events.Event) error {
	recorded, ok := event.(*events.AttendanceRecordedEvent)
	if !ok {
		return fmt.Errorf("unexpected event payload for %s", event.EventType())
	}

	source := "RFID scan"
	if recorded.Manual {
		source = "manual entry"
	}
	s.Log(&Entry{
		UserID:      recorded.UserID,
		Action:      ActionAttendanceScan,
		Description: fmt.Sprintf("Attendance recorded via %s with status %s", source, recorded.Status),
		ScheduleID:  &recorded.ScheduleID,
		Status:      recorded.Status,
	})
	return nil
}

// HandleUserLoggedIn writes the login trail entry off the event bus.
func (s *Service) HandleUserLoggedIn(ctx context.Context, event events.Event) error {
	loggedIn, ok := event.(*events.UserLoggedInEvent)
	if !ok {
		return fmt.Errorf("unexpected event payload for %s", event.EventType())
	}

	s.Log(&Entry{
		UserID:      loggedIn.UserID,
		Action:      ActionLogin,
		Description: fmt.Sprintf("User %s logged in", loggedIn.Username),
		IP:          loggedIn.IP,
	})
	return nil
}
