package dashboard

import (
	"fmt"
	"log/slog"
	"time"
)

// Service aggregates attendance volume for the admin dashboard.
type Service struct {
	repo   RepositoryAPI
	logger *slog.Logger
	now    func() time.Time
}

func NewService(repo RepositoryAPI, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
		now:    time.Now,
	}
}

// WithClock overrides the service clock. Tests pin it to fixed instants.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

func (s *Service) AttendanceStats() (*Stats, error) {
	totalUsers, err := s.repo.CountActiveUsers()
	if err != nil {
		return nil, err
	}

	today := dayStart(s.now())
	farFuture := today.AddDate(100, 0, 0)

	totalToday, err := s.repo.CountAttendanceSince(today)
	if err != nil {
		return nil, err
	}

	weekly, err := s.repo.CountByStatus(today.AddDate(0, 0, -6), farFuture)
	if err != nil {
		return nil, err
	}

	monthly, err := s.repo.CountByStatus(today.AddDate(0, 0, -29), farFuture)
	if err != nil {
		return nil, err
	}

	return &Stats{
		TotalUsers:           totalUsers,
		TotalAttendanceToday: totalToday,
		AttendanceWeekly:     weekly,
		AttendanceMonthly:    monthly,
	}, nil
}

// AttendanceChart buckets attendance by status over the last 7 days,
// 4 Monday-started weeks, and 12 calendar months.
func (s *Service) AttendanceChart() (*Chart, error) {
	today := dayStart(s.now())

	daily := make([]ChartRow, 0, 7)
	for i := 6; i >= 0; i-- {
		day := today.AddDate(0, 0, -i)
		counts, err := s.repo.CountByStatus(day, day.AddDate(0, 0, 1))
		if err != nil {
			return nil, err
		}
		daily = append(daily, row(day.Format("Mon, Jan 2"), counts))
	}

	weekly := make([]ChartRow, 0, 4)
	for w := 3; w >= 0; w-- {
		start := today.AddDate(0, 0, -int(today.Weekday())-(w*7)+1)
		end := start.AddDate(0, 0, 7)
		counts, err := s.repo.CountByStatus(start, end)
		if err != nil {
			return nil, err
		}
		label := fmt.Sprintf("%s - %s", start.Format("Jan 2"), end.Format("Jan 2"))
		weekly = append(weekly, row(label, counts))
	}

	monthly := make([]ChartRow, 0, 12)
	for m := 11; m >= 0; m-- {
		start := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, today.Location()).AddDate(0, -m, 0)
		end := start.AddDate(0, 1, 0)
		counts, err := s.repo.CountByStatus(start, end)
		if err != nil {
			return nil, err
		}
		monthly = append(monthly, row(start.Format("Jan 06"), counts))
	}

	return &Chart{Daily: daily, Weekly: weekly, Monthly: monthly}, nil
}

func row(label string, counts StatusCounts) ChartRow {
	return ChartRow{
		Label:   label,
		Present: counts.Present,
		Late:    counts.Late,
		Absent:  counts.Absent,
		Excused: counts.Excused,
	}
}

func dayStart(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}
