package schedule

import (
	"log/slog"
	"strings"

	"github.com/rahmadiangg/attendance-management/internal/core/validation"
)

// Service handles schedule administration.
type Service struct {
	repo   RepositoryAPI
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

func (s *Service) CreateSchedule(dto CreateScheduleDTO) (*Schedule, error) {
	if err := validation.Struct(dto); err != nil {
		s.logger.Error("schedule validation failed", "error", err)
		return nil, err
	}

	if !dto.EndTime.After(dto.StartTime) {
		return nil, ErrInvalidTimeRange
	}

	isActive := true
	if dto.IsActive != nil {
		isActive = *dto.IsActive
	}

	sched := &Schedule{
		ClassName:    strings.TrimSpace(dto.ClassName),
		Subject:      strings.TrimSpace(dto.Subject),
		Instructor:   strings.TrimSpace(dto.Instructor),
		Room:         strings.TrimSpace(dto.Room),
		ScheduleDate: dto.ScheduleDate,
		StartTime:    dto.StartTime,
		EndTime:      dto.EndTime,
		IsActive:     isActive,
	}

	if err := s.repo.Create(sched); err != nil {
		s.logger.Error("failed to create schedule", "error", err, "class_name", sched.ClassName)
		return nil, err
	}

	s.logger.Info("schedule created",
		"schedule_id", sched.ID,
		"class_name", sched.ClassName,
		"schedule_date", sched.ScheduleDate)

	return sched, nil
}

func (s *Service) GetSchedules(filter ListFilter) ([]*Schedule, error) {
	schedules, err := s.repo.GetAll(filter)
	if err != nil {
		s.logger.Error("failed to list schedules", "error", err)
		return nil, err
	}
	return schedules, nil
}

func (s *Service) GetScheduleByID(id int64) (*Schedule, error) {
	return s.repo.GetByID(id)
}

func (s *Service) UpdateSchedule(id int64, dto UpdateScheduleDTO) (*Schedule, error) {
	if err := validation.Struct(dto); err != nil {
		s.logger.Error("schedule update validation failed", "error", err, "schedule_id", id)
		return nil, err
	}

	sched, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}

	if dto.ClassName != nil {
		sched.ClassName = strings.TrimSpace(*dto.ClassName)
	}
	if dto.Subject != nil {
		sched.Subject = strings.TrimSpace(*dto.Subject)
	}
	if dto.Instructor != nil {
		sched.Instructor = strings.TrimSpace(*dto.Instructor)
	}
	if dto.Room != nil {
		sched.Room = strings.TrimSpace(*dto.Room)
	}
	if dto.ScheduleDate != nil {
		sched.ScheduleDate = *dto.ScheduleDate
	}
	if dto.StartTime != nil {
		sched.StartTime = *dto.StartTime
	}
	if dto.EndTime != nil {
		sched.EndTime = *dto.EndTime
	}

	// the combined times must still form a valid window
	if !sched.EndTime.After(sched.StartTime) {
		return nil, ErrInvalidTimeRange
	}

	if dto.IsActive != nil {
		sched.IsActive = *dto.IsActive
	}

	if err := s.repo.Update(sched); err != nil {
		s.logger.Error("failed to update schedule", "error", err, "schedule_id", id)
		return nil, err
	}

	s.logger.Info("schedule updated", "schedule_id", sched.ID)
	return sched, nil
}

func (s *Service) DeleteSchedule(id int64) error {
	if _, err := s.repo.GetByID(id); err != nil {
		return err
	}
	if err := s.repo.Delete(id); err != nil {
		s.logger.Error("failed to delete schedule", "error", err, "schedule_id", id)
		return err
	}
	s.logger.Info("schedule deleted", "schedule_id", id)
	return nil
}
