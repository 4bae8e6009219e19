package assignment

import (
	"log/slog"

	"github.com/rahmadiangg/attendance-management/internal/core/validation"
	"github.com/rahmadiangg/attendance-management/internal/schedule"
	"github.com/rahmadiangg/attendance-management/internal/user"
)

// Service manages schedule assignments.
type Service struct {
	repo         RepositoryAPI
	userRepo     user.RepositoryAPI
	scheduleRepo schedule.RepositoryAPI
	logger       *slog.Logger
}

func NewService(repo RepositoryAPI, userRepo user.RepositoryAPI, scheduleRepo schedule.RepositoryAPI, logger *slog.Logger) *Service {
	return &Service{
		repo:         repo,
		userRepo:     userRepo,
		scheduleRepo: scheduleRepo,
		logger:       logger,
	}
}

func (s *Service) AssignUser(dto AssignDTO) (*Assignment, error) {
	if err := validation.Struct(dto); err != nil {
		s.logger.Error("assignment validation failed", "error", err)
		return nil, err
	}

	if _, err := s.userRepo.GetByID(dto.UserID); err != nil {
		return nil, err
	}
	if _, err := s.scheduleRepo.GetByID(dto.ScheduleID); err != nil {
		return nil, err
	}

	exists, err := s.repo.Exists(dto.UserID, dto.ScheduleID)
	if err != nil {
		s.logger.Error("failed to check assignment", "error", err)
		return nil, err
	}
	if exists {
		return nil, ErrDuplicateAssignment
	}

	a := &Assignment{
		UserID:     dto.UserID,
		ScheduleID: dto.ScheduleID,
	}
	if err := s.repo.Create(a); err != nil {
		s.logger.Error("failed to create assignment", "error", err,
			"user_id", dto.UserID, "schedule_id", dto.ScheduleID)
		return nil, err
	}

	s.logger.Info("user assigned to schedule",
		"assignment_id", a.ID,
		"user_id", a.UserID,
		"schedule_id", a.ScheduleID)

	return a, nil
}

func (s *Service) GetUsersBySchedule(scheduleID int64) ([]*Assignment, error) {
	if _, err := s.scheduleRepo.GetByID(scheduleID); err != nil {
		return nil, err
	}
	return s.repo.GetBySchedule(scheduleID)
}

func (s *Service) GetSchedulesByUser(userID int64) ([]*Assignment, error) {
	if _, err := s.userRepo.GetByID(userID); err != nil {
		return nil, err
	}
	return s.repo.GetByUser(userID)
}

func (s *Service) UnassignUser(id int64) error {
	if _, err := s.repo.GetByID(id); err != nil {
		return err
	}
	if err := s.repo.Delete(id); err != nil {
		s.logger.Error("failed to delete assignment", "error", err, "assignment_id", id)
		return err
	}
	s.logger.Info("user unassigned from schedule", "assignment_id", id)
	return nil
}

// AvailableUsers lists users not yet assigned to the schedule, filtered by a
// search term against username, email, or RFID card.
func (s *Service) AvailableUsers(scheduleID int64, search string) ([]user.Summary, error) {
	users, err := s.repo.AvailableUsers(scheduleID, search)
	if err != nil {
		s.logger.Error("failed to search available users", "error", err, "schedule_id", scheduleID)
		return nil, err
	}

	summaries := make([]user.Summary, len(users))
	for i, u := range users {
		summaries[i] = u.Summarize()
	}
	return summaries, nil
}
