package attendance

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/rahmadiangg/attendance-management/internal/assignment"
	"github.com/rahmadiangg/attendance-management/internal/core/events"
	"github.com/rahmadiangg/attendance-management/internal/core/validation"
	"github.com/rahmadiangg/attendance-management/internal/schedule"
	"github.com/rahmadiangg/attendance-management/internal/user"
)

// Service implements the scan engine and the attendance read/write
// operations around it.
type Service struct {
	repo           RepositoryAPI
	userRepo       user.RepositoryAPI
	scheduleRepo   schedule.RepositoryAPI
	assignmentRepo assignment.RepositoryAPI
	bus            *events.EventBus
	logger         *slog.Logger
	now            func() time.Time
}

func NewService(
	repo RepositoryAPI,
	userRepo user.RepositoryAPI,
	scheduleRepo schedule.RepositoryAPI,
	assignmentRepo assignment.RepositoryAPI,
	bus *events.EventBus,
	logger *slog.Logger,
) *Service {
	return &Service{
		repo:           repo,
		userRepo:       userRepo,
		scheduleRepo:   scheduleRepo,
		assignmentRepo: assignmentRepo,
		bus:            bus,
		logger:         logger,
		now:            time.Now,
	}
}

// WithClock overrides the service clock. Tests pin it to fixed instants.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Scan records attendance for the holder of rfidCard against their first
// active schedule of the day. On a duplicate the existing record comes back
// alongside ErrDuplicateScan so the device can still show it.
func (s *Service) Scan(ctx context.Context, dto ScanDTO) (*ScanResult, error) {
	if err := validation.Struct(dto); err != nil {
		return nil, err
	}

	u, err := s.userRepo.GetByRFIDCard(dto.RFIDCard)
	if err != nil {
		return nil, err
	}

	now := s.now()
	dayStart, dayEnd := DayWindow(now)

	assignments, err := s.assignmentRepo.GetActiveForUserInWindow(u.ID, dayStart, dayEnd)
	if err != nil {
		s.logger.Error("failed to load schedule assignments", "error", err, "user_id", u.ID)
		return nil, err
	}
	if len(assignments) == 0 {
		return nil, assignment.ErrAssignmentNotFound.WithMessage("User doesn't have any active schedule assignments for today")
	}

	selected := assignments[0]

	existing, err := s.repo.FindInWindow(u.ID, selected.ScheduleID, dayStart, dayEnd)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return &ScanResult{Record: existing}, ErrDuplicateScan
	}

	sched := selected.Schedule
	if sched == nil || sched.StartTime.IsZero() {
		return nil, ErrInvalidScheduleTime
	}

	// Lateness compares against the schedule's clock time on the scan's
	// own day, not the stored start timestamp.
	threshold := time.Date(now.Year(), now.Month(), now.Day(),
		sched.StartTime.Hour(), sched.StartTime.Minute(), 0, 0, now.Location())
	isLate := now.After(threshold)
	status := StatusPresent
	if isLate {
		status = StatusLate
	}

	record := &Record{
		UserID:     u.ID,
		ScheduleID: selected.ScheduleID,
		ScanTime:   now,
		ScanDate:   DayOf(now),
		Status:     status,
		IsLate:     isLate,
	}

	if err := s.repo.Create(record); err != nil {
		// Two devices racing past the FindInWindow probe land here; the
		// unique index turns the loser into a duplicate.
		if err == ErrDuplicateScan {
			if existing, findErr := s.repo.FindInWindow(u.ID, selected.ScheduleID, dayStart, dayEnd); findErr == nil && existing != nil {
				return &ScanResult{Record: existing}, ErrDuplicateScan
			}
			return nil, ErrDuplicateScan
		}
		s.logger.Error("failed to persist attendance record", "error", err, "user_id", u.ID, "schedule_id", selected.ScheduleID)
		return nil, err
	}

	record.User = u
	record.Schedule = sched

	s.publishRecorded(ctx, record, false)

	return &ScanResult{Record: record, Status: status}, nil
}

// GetAttendanceBySchedule builds the roster view: every assigned user with
// their record for the selected day, plus aggregate stats.
func (s *Service) GetAttendanceBySchedule(scheduleID int64, date *time.Time) (*ScheduleView, error) {
	sched, err := s.scheduleRepo.GetByID(scheduleID)
	if err != nil {
		return nil, err
	}

	var dayStart, dayEnd *time.Time
	selected := s.now()
	if date != nil {
		start, end := DayWindow(*date)
		dayStart, dayEnd = &start, &end
		selected = *date
	}

	assignments, err := s.assignmentRepo.GetBySchedule(scheduleID)
	if err != nil {
		return nil, err
	}

	records, err := s.repo.GetBySchedule(scheduleID, dayStart, dayEnd)
	if err != nil {
		return nil, err
	}

	byUser := make(map[int64]*Record, len(records))
	for _, r := range records {
		if _, seen := byUser[r.UserID]; !seen {
			byUser[r.UserID] = r
		}
	}

	roster := make([]RosterEntry, 0, len(assignments))
	for _, a := range assignments {
		if a.User == nil {
			continue
		}
		entry := RosterEntry{
			UserID:     a.User.ID,
			Username:   a.User.Username,
			Email:      a.User.Email,
			RFIDCard:   a.User.RFIDCard,
			AssignedAt: a.CreatedAt,
		}
		if r, ok := byUser[a.User.ID]; ok {
			entry.Attendance = &RecordView{
				ID:       r.ID,
				ScanTime: r.ScanTime,
				Status:   r.Status,
				IsLate:   r.IsLate,
				Notes:    r.Notes,
			}
			entry.HasScanned = true
		}
		roster = append(roster, entry)
	}

	stats := ScheduleStats{
		TotalAssigned:   len(assignments),
		TotalScanned:    len(records),
		TotalNotScanned: len(assignments) - len(records),
	}
	for _, r := range records {
		switch r.Status {
		case StatusPresent:
			stats.TotalPresent++
		case StatusLate:
			stats.TotalLate++
		}
	}

	return &ScheduleView{
		Schedule:     sched,
		Attendance:   roster,
		Stats:        stats,
		SelectedDate: selected.Format("2006-01-02"),
	}, nil
}

// GetAttendanceByUser returns a user's history newest-first with the
// totals and the attendance rate.
func (s *Service) GetAttendanceByUser(userID int64, filter ListFilter) (*UserView, error) {
	u, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}

	records, err := s.repo.GetByUser(userID, filter)
	if err != nil {
		return nil, err
	}

	stats := UserStats{TotalAttendance: len(records)}
	attended := 0
	for _, r := range records {
		switch r.Status {
		case StatusPresent:
			stats.TotalPresent++
			attended++
		case StatusLate:
			stats.TotalLate++
			attended++
		}
	}
	if len(records) > 0 {
		stats.AttendanceRate = fmt.Sprintf("%.2f%%", float64(attended)/float64(len(records))*100)
	} else {
		stats.AttendanceRate = "0%"
	}

	return &UserView{
		User:        u.Summarize(),
		Attendances: records,
		Stats:       stats,
	}, nil
}

// GetAttendanceSummary groups records by calendar day, newest day first.
func (s *Service) GetAttendanceSummary(filter ListFilter) (*SummaryView, error) {
	records, err := s.repo.List(filter)
	if err != nil {
		return nil, err
	}

	byDate := make(map[string]*DaySummary)
	users := make(map[int64]struct{})
	schedules := make(map[int64]struct{})
	stats := SummaryStats{TotalRecords: len(records)}

	for _, r := range records {
		date := r.ScanTime.Format("2006-01-02")
		day, ok := byDate[date]
		if !ok {
			day = &DaySummary{Date: date}
			byDate[date] = day
		}
		day.Total++
		switch r.Status {
		case StatusPresent:
			day.Present++
			stats.TotalPresent++
		case StatusLate:
			day.Late++
			stats.TotalLate++
		}
		day.Attendances = append(day.Attendances, r)
		users[r.UserID] = struct{}{}
		schedules[r.ScheduleID] = struct{}{}
	}
	stats.UniqueUsers = len(users)
	stats.UniqueSchedules = len(schedules)

	summary := make([]DaySummary, 0, len(byDate))
	for _, day := range byDate {
		summary = append(summary, *day)
	}
	sort.Slice(summary, func(i, j int) bool {
		return summary[i].Date > summary[j].Date
	})

	filters := SummaryFilters{}
	if filter.StartDate != nil {
		filters.StartDate = filter.StartDate.Format("2006-01-02")
	}
	if filter.EndDate != nil {
		filters.EndDate = filter.EndDate.Format("2006-01-02")
	}
	if filter.ScheduleID != nil {
		filters.ScheduleID = fmt.Sprintf("%d", *filter.ScheduleID)
	}

	return &SummaryView{Summary: summary, Stats: stats, Filters: filters}, nil
}

func (s *Service) UpdateAttendance(id int64, dto UpdateAttendanceDTO) (*Record, error) {
	if err := validation.Struct(dto); err != nil {
		return nil, err
	}

	record, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}

	if dto.Status != nil {
		record.Status = *dto.Status
	}
	if dto.Notes != nil {
		record.Notes = dto.Notes
	}
	if dto.IsLate != nil {
		record.IsLate = *dto.IsLate
	}

	if err := s.repo.Update(record); err != nil {
		s.logger.Error("failed to update attendance record", "error", err, "record_id", id)
		return nil, err
	}
	return record, nil
}

func (s *Service) DeleteAttendance(id int64) error {
	if _, err := s.repo.GetByID(id); err != nil {
		return err
	}
	return s.repo.Delete(id)
}

// CreateManualAttendance is the admin path. Lateness is taken from the
// requested status, not recomputed from the schedule.
func (s *Service) CreateManualAttendance(ctx context.Context, dto ManualAttendanceDTO) (*Record, error) {
	if err := validation.Struct(dto); err != nil {
		return nil, err
	}

	u, err := s.userRepo.GetByID(dto.UserID)
	if err != nil {
		return nil, err
	}
	sched, err := s.scheduleRepo.GetByID(dto.ScheduleID)
	if err != nil {
		return nil, err
	}

	scanTime := s.now()
	if dto.ScanTime != nil {
		scanTime = *dto.ScanTime
	}
	dayStart, dayEnd := DayWindow(scanTime)

	existing, err := s.repo.FindInWindow(dto.UserID, dto.ScheduleID, dayStart, dayEnd)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrDuplicateScan.WithMessage("Attendance already exists for this user on this date")
	}

	record := &Record{
		UserID:     dto.UserID,
		ScheduleID: dto.ScheduleID,
		ScanTime:   scanTime,
		ScanDate:   DayOf(scanTime),
		Status:     dto.Status,
		IsLate:     dto.Status == StatusLate,
		Notes:      dto.Notes,
	}

	if err := s.repo.Create(record); err != nil {
		if err == ErrDuplicateScan {
			return nil, ErrDuplicateScan.WithMessage("Attendance already exists for this user on this date")
		}
		s.logger.Error("failed to persist manual attendance", "error", err, "user_id", dto.UserID)
		return nil, err
	}

	record.User = u
	record.Schedule = sched

	s.publishRecorded(ctx, record, true)

	return record, nil
}

// GetLastAttendanceBySchedule returns the schedule's five most recent scans.
func (s *Service) GetLastAttendanceBySchedule(scheduleID int64) (*LastScansView, error) {
	sched, err := s.scheduleRepo.GetByID(scheduleID)
	if err != nil {
		return nil, err
	}

	records, err := s.repo.LastBySchedule(scheduleID, 5)
	if err != nil {
		return nil, err
	}
	if records == nil {
		records = []*Record{}
	}

	return &LastScansView{
		Schedule:        sched.Summarize(),
		LastAttendances: records,
	}, nil
}

func (s *Service) publishRecorded(ctx context.Context, record *Record, manual bool) {
	event := events.NewAttendanceRecordedEvent(
		record.ID, record.UserID, record.ScheduleID,
		record.Status, record.IsLate, record.ScanTime, manual,
	)
	if err := s.bus.Publish(ctx, event); err != nil {
		s.logger.Error("failed to publish attendance event", "error", err, "record_id", record.ID)
	}
}
