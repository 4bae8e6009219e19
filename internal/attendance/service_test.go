package attendance_test

import (
	"context"
	"log/slog"
	"os"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/rahmadiangg/attendance-management/internal"
	"github.com/rahmadiangg/attendance-management/internal/assignment"
	"github.com/rahmadiangg/attendance-management/internal/attendance"
	"github.com/rahmadiangg/attendance-management/internal/core/events"
	"github.com/rahmadiangg/attendance-management/internal/schedule"
	"github.com/rahmadiangg/attendance-management/internal/user"
)

func TestAttendanceService(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "AttendanceService Suite")
}

type mockUserRepository struct {
	users map[int64]*user.User
}

func newMockUserRepository() *mockUserRepository {
	return &mockUserRepository{users: make(map[int64]*user.User)}
}

func (m *mockUserRepository) Create(u *user.User) error {
	m.users[u.ID] = u
	return nil
}

func (m *mockUserRepository) GetByID(id int64) (*user.User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, user.ErrUserNotFound
	}
	return u, nil
}

func (m *mockUserRepository) GetByRFIDCard(card string) (*user.User, error) {
	for _, u := range m.users {
		if u.RFIDCard == card {
			return u, nil
		}
	}
	return nil, user.ErrUserNotFound.WithMessage("User not found with this RFID card")
}

func (m *mockUserRepository) GetByEmail(email string) (*user.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, user.ErrUserNotFound
}

func (m *mockUserRepository) GetAll() ([]*user.User, error) {
	out := make([]*user.User, 0, len(m.users))
	for _, u := range m.users {
		out = append(out, u)
	}
	return out, nil
}

func (m *mockUserRepository) ExistsByIdentity(username, email, rfidCard string, excludeID int64) (bool, error) {
	return false, nil
}

func (m *mockUserRepository) Update(u *user.User) error {
	m.users[u.ID] = u
	return nil
}

func (m *mockUserRepository) Delete(id int64) error {
	delete(m.users, id)
	return nil
}

func (m *mockUserRepository) GetActiveByRole(role string) ([]*user.User, error) {
	var out []*user.User
	for _, u := range m.users {
		if u.Role == role && u.IsActive {
			out = append(out, u)
		}
	}
	return out, nil
}

type mockScheduleRepository struct {
	schedules map[int64]*schedule.Schedule
}

func newMockScheduleRepository() *mockScheduleRepository {
	return &mockScheduleRepository{schedules: make(map[int64]*schedule.Schedule)}
}

func (m *mockScheduleRepository) Create(s *schedule.Schedule) error {
	m.schedules[s.ID] = s
	return nil
}

func (m *mockScheduleRepository) GetByID(id int64) (*schedule.Schedule, error) {
	s, ok := m.schedules[id]
	if !ok {
		return nil, schedule.ErrScheduleNotFound
	}
	return s, nil
}

func (m *mockScheduleRepository) GetAll(filter schedule.ListFilter) ([]*schedule.Schedule, error) {
	out := make([]*schedule.Schedule, 0, len(m.schedules))
	for _, s := range m.schedules {
		out = append(out, s)
	}
	return out, nil
}

func (m *mockScheduleRepository) Update(s *schedule.Schedule) error {
	m.schedules[s.ID] = s
	return nil
}

func (m *mockScheduleRepository) Delete(id int64) error {
	delete(m.schedules, id)
	return nil
}

type mockAssignmentRepository struct {
	assignments []*assignment.Assignment
	schedules   map[int64]*schedule.Schedule
}

func newMockAssignmentRepository(schedules *mockScheduleRepository) *mockAssignmentRepository {
	return &mockAssignmentRepository{schedules: schedules.schedules}
}

func (m *mockAssignmentRepository) Create(a *assignment.Assignment) error {
	a.ID = int64(len(m.assignments) + 1)
	m.assignments = append(m.assignments, a)
	return nil
}

func (m *mockAssignmentRepository) GetByID(id int64) (*assignment.Assignment, error) {
	for _, a := range m.assignments {
		if a.ID == id {
			return a, nil
		}
	}
	return nil, assignment.ErrAssignmentNotFound
}

func (m *mockAssignmentRepository) Exists(userID, scheduleID int64) (bool, error) {
	for _, a := range m.assignments {
		if a.UserID == userID && a.ScheduleID == scheduleID {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockAssignmentRepository) GetBySchedule(scheduleID int64) ([]*assignment.Assignment, error) {
	var out []*assignment.Assignment
	for _, a := range m.assignments {
		if a.ScheduleID == scheduleID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (m *mockAssignmentRepository) GetByUser(userID int64) ([]*assignment.Assignment, error) {
	var out []*assignment.Assignment
	for _, a := range m.assignments {
		if a.UserID == userID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (m *mockAssignmentRepository) GetActiveForUserInWindow(userID int64, dayStart, dayEnd time.Time) ([]*assignment.Assignment, error) {
	var out []*assignment.Assignment
	for _, a := range m.assignments {
		if a.UserID != userID {
			continue
		}
		sched, ok := m.schedules[a.ScheduleID]
		if !ok || !sched.IsActive {
			continue
		}
		if sched.ScheduleDate.Before(dayStart) || sched.ScheduleDate.After(dayEnd) {
			continue
		}
		a.Schedule = sched
		out = append(out, a)
	}
	// Ordered by schedule start time then id, like the real query.
	for i := 0; i < len(out); i++ {
		for j := i + 1; j < len(out); j++ {
			si, sj := out[i].Schedule.StartTime, out[j].Schedule.StartTime
			if sj.Before(si) || (si.Equal(sj) && out[j].ID < out[i].ID) {
				out[i], out[j] = out[j], out[i]
			}
		}
	}
	return out, nil
}

func (m *mockAssignmentRepository) Delete(id int64) error {
	for i, a := range m.assignments {
		if a.ID == id {
			m.assignments = append(m.assignments[:i], m.assignments[i+1:]...)
			return nil
		}
	}
	return assignment.ErrAssignmentNotFound
}

func (m *mockAssignmentRepository) AvailableUsers(scheduleID int64, search string) ([]*user.User, error) {
	return nil, nil
}

type mockAttendanceRepository struct {
	records map[int64]*attendance.Record
	nextID  int64
}

func newMockAttendanceRepository() *mockAttendanceRepository {
	return &mockAttendanceRepository{records: make(map[int64]*attendance.Record), nextID: 1}
}

func (m *mockAttendanceRepository) Create(r *attendance.Record) error {
	for _, existing := range m.records {
		if existing.UserID == r.UserID && existing.ScheduleID == r.ScheduleID && existing.ScanDate.Equal(r.ScanDate) {
			return attendance.ErrDuplicateScan
		}
	}
	r.ID = m.nextID
	m.nextID++
	m.records[r.ID] = r
	return nil
}

func (m *mockAttendanceRepository) GetByID(id int64) (*attendance.Record, error) {
	r, ok := m.records[id]
	if !ok {
		return nil, attendance.ErrRecordNotFound
	}
	return r, nil
}

func (m *mockAttendanceRepository) FindInWindow(userID, scheduleID int64, dayStart, dayEnd time.Time) (*attendance.Record, error) {
	for _, r := range m.records {
		if r.UserID == userID && r.ScheduleID == scheduleID &&
			!r.ScanTime.Before(dayStart) && !r.ScanTime.After(dayEnd) {
			return r, nil
		}
	}
	return nil, nil
}

func (m *mockAttendanceRepository) GetBySchedule(scheduleID int64, dayStart, dayEnd *time.Time) ([]*attendance.Record, error) {
	var out []*attendance.Record
	for _, r := range m.records {
		if r.ScheduleID != scheduleID {
			continue
		}
		if dayStart != nil && dayEnd != nil &&
			(r.ScanTime.Before(*dayStart) || r.ScanTime.After(*dayEnd)) {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

func (m *mockAttendanceRepository) GetByUser(userID int64, filter attendance.ListFilter) ([]*attendance.Record, error) {
	var out []*attendance.Record
	for _, r := range m.records {
		if r.UserID == userID && matchesFilter(r, filter) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *mockAttendanceRepository) List(filter attendance.ListFilter) ([]*attendance.Record, error) {
	var out []*attendance.Record
	for _, r := range m.records {
		if matchesFilter(r, filter) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *mockAttendanceRepository) LastBySchedule(scheduleID int64, limit int) ([]*attendance.Record, error) {
	out, _ := m.GetBySchedule(scheduleID, nil, nil)
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *mockAttendanceRepository) Update(r *attendance.Record) error {
	m.records[r.ID] = r
	return nil
}

func (m *mockAttendanceRepository) Delete(id int64) error {
	delete(m.records, id)
	return nil
}

func matchesFilter(r *attendance.Record, filter attendance.ListFilter) bool {
	if filter.ScheduleID != nil && r.ScheduleID != *filter.ScheduleID {
		return false
	}
	if filter.StartDate != nil && filter.EndDate != nil &&
		(r.ScanTime.Before(*filter.StartDate) || r.ScanTime.After(*filter.EndDate)) {
		return false
	}
	return true
}

var _ = Describe("AttendanceService", func() {
	var (
		service        *attendance.Service
		repo           *mockAttendanceRepository
		userRepo       *mockUserRepository
		scheduleRepo   *mockScheduleRepository
		assignmentRepo *mockAssignmentRepository
		now            time.Time
	)

	scanDay := time.Date(2025, 9, 15, 0, 0, 0, 0, time.Local)

	newStudent := func(id int64, card string) *user.User {
		u := &user.User{
			ID:       id,
			Username: "student",
			Email:    "student@mail.com",
			RFIDCard: card,
			Role:     user.RoleStudent,
			IsActive: true,
		}
		userRepo.users[id] = u
		return u
	}

	newSchedule := func(id int64, startHour, startMinute int) *schedule.Schedule {
		s := &schedule.Schedule{
			ID:           id,
			ClassName:    "XII-A",
			Subject:      "Mathematics",
			Instructor:   "Pak Agus",
			Room:         "R-101",
			ScheduleDate: scanDay,
			StartTime:    time.Date(2025, 9, 15, startHour, startMinute, 0, 0, time.Local),
			EndTime:      time.Date(2025, 9, 15, startHour+2, startMinute, 0, 0, time.Local),
			IsActive:     true,
		}
		scheduleRepo.schedules[id] = s
		return s
	}

	assign := func(userID, scheduleID int64) {
		assignmentRepo.Create(&assignment.Assignment{UserID: userID, ScheduleID: scheduleID})
	}

	BeforeEach(func() {
		repo = newMockAttendanceRepository()
		userRepo = newMockUserRepository()
		scheduleRepo = newMockScheduleRepository()
		assignmentRepo = newMockAssignmentRepository(scheduleRepo)
		lg := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		bus := events.NewEventBus(lg)
		now = time.Date(2025, 9, 15, 7, 30, 0, 0, time.Local)
		service = attendance.NewService(repo, userRepo, scheduleRepo, assignmentRepo, bus, lg).
			WithClock(func() time.Time { return now })
	})

	Describe("Scan", func() {
		It("returns not found for an unknown card", func() {
			_, err := service.Scan(context.Background(), attendance.ScanDTO{RFIDCard: "NO-SUCH-CARD"})

			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.StatusCode).To(Equal(404))
		})

		It("returns not found when the user has no active schedule today", func() {
			newStudent(1, "RFID-0001")

			_, err := service.Scan(context.Background(), attendance.ScanDTO{RFIDCard: "RFID-0001"})

			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.StatusCode).To(Equal(404))
			Expect(appErr.Message).To(ContainSubstring("active schedule"))
		})

		It("ignores inactive schedules", func() {
			newStudent(1, "RFID-0001")
			s := newSchedule(10, 8, 0)
			s.IsActive = false
			assign(1, 10)

			_, err := service.Scan(context.Background(), attendance.ScanDTO{RFIDCard: "RFID-0001"})

			appErr, _ := internal.IsAppError(err)
			Expect(appErr.StatusCode).To(Equal(404))
		})

		It("records PRESENT when scanning before the start time", func() {
			newStudent(1, "RFID-0001")
			newSchedule(10, 8, 0)
			assign(1, 10)

			result, err := service.Scan(context.Background(), attendance.ScanDTO{RFIDCard: "RFID-0001"})

			Expect(err).NotTo(HaveOccurred())
			Expect(result.Status).To(Equal(attendance.StatusPresent))
			Expect(result.Record.IsLate).To(BeFalse())
			Expect(result.Record.ScanTime).To(Equal(now))
		})

		It("records PRESENT at exactly the start minute", func() {
			newStudent(1, "RFID-0001")
			newSchedule(10, 8, 0)
			assign(1, 10)
			now = time.Date(2025, 9, 15, 8, 0, 0, 0, time.Local)

			result, err := service.Scan(context.Background(), attendance.ScanDTO{RFIDCard: "RFID-0001"})

			Expect(err).NotTo(HaveOccurred())
			Expect(result.Status).To(Equal(attendance.StatusPresent))
		})

		It("records LATE one second past the start minute", func() {
			newStudent(1, "RFID-0001")
			newSchedule(10, 8, 0)
			assign(1, 10)
			now = time.Date(2025, 9, 15, 8, 0, 1, 0, time.Local)

			result, err := service.Scan(context.Background(), attendance.ScanDTO{RFIDCard: "RFID-0001"})

			Expect(err).NotTo(HaveOccurred())
			Expect(result.Status).To(Equal(attendance.StatusLate))
			Expect(result.Record.IsLate).To(BeTrue())
		})

		It("compares against the schedule's clock time on the scan day", func() {
			newStudent(1, "RFID-0001")
			s := newSchedule(10, 8, 0)
			// Start timestamp dated last year; only 08:00 matters.
			s.StartTime = time.Date(2024, 1, 10, 8, 0, 0, 0, time.Local)
			assign(1, 10)
			now = time.Date(2025, 9, 15, 7, 59, 0, 0, time.Local)

			result, err := service.Scan(context.Background(), attendance.ScanDTO{RFIDCard: "RFID-0001"})

			Expect(err).NotTo(HaveOccurred())
			Expect(result.Status).To(Equal(attendance.StatusPresent))
		})

		It("rejects a second scan the same day with the existing record", func() {
			newStudent(1, "RFID-0001")
			newSchedule(10, 8, 0)
			assign(1, 10)

			first, err := service.Scan(context.Background(), attendance.ScanDTO{RFIDCard: "RFID-0001"})
			Expect(err).NotTo(HaveOccurred())

			now = now.Add(2 * time.Hour)
			result, err := service.Scan(context.Background(), attendance.ScanDTO{RFIDCard: "RFID-0001"})

			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.StatusCode).To(Equal(400))
			Expect(result.Record.ID).To(Equal(first.Record.ID))
		})

		It("picks the earliest-starting schedule when several are active", func() {
			newStudent(1, "RFID-0001")
			newSchedule(10, 10, 0)
			newSchedule(11, 8, 0)
			assign(1, 10)
			assign(1, 11)

			result, err := service.Scan(context.Background(), attendance.ScanDTO{RFIDCard: "RFID-0001"})

			Expect(err).NotTo(HaveOccurred())
			Expect(result.Record.ScheduleID).To(Equal(int64(11)))
		})

		It("fails with an internal error when the start time is unset", func() {
			newStudent(1, "RFID-0001")
			s := newSchedule(10, 8, 0)
			s.StartTime = time.Time{}
			assign(1, 10)

			_, err := service.Scan(context.Background(), attendance.ScanDTO{RFIDCard: "RFID-0001"})

			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.StatusCode).To(Equal(500))
		})

		It("rejects a missing card number", func() {
			_, err := service.Scan(context.Background(), attendance.ScanDTO{})

			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.StatusCode).To(Equal(400))
		})
	})

	Describe("GetAttendanceBySchedule", func() {
		It("returns not found for an unknown schedule", func() {
			_, err := service.GetAttendanceBySchedule(999, nil)

			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.StatusCode).To(Equal(404))
		})

		It("marks scanned and unscanned users and balances the stats", func() {
			u1 := newStudent(1, "RFID-0001")
			u2 := &user.User{ID: 2, Username: "second", Email: "second@mail.com", RFIDCard: "RFID-0002", IsActive: true}
			userRepo.users[2] = u2
			newSchedule(10, 8, 0)
			assignmentRepo.Create(&assignment.Assignment{UserID: u1.ID, ScheduleID: 10, User: u1})
			assignmentRepo.Create(&assignment.Assignment{UserID: u2.ID, ScheduleID: 10, User: u2})

			_, err := service.Scan(context.Background(), attendance.ScanDTO{RFIDCard: "RFID-0001"})
			Expect(err).NotTo(HaveOccurred())

			view, err := service.GetAttendanceBySchedule(10, &scanDay)
			Expect(err).NotTo(HaveOccurred())

			Expect(view.Stats.TotalAssigned).To(Equal(2))
			Expect(view.Stats.TotalScanned).To(Equal(1))
			Expect(view.Stats.TotalNotScanned).To(Equal(1))
			Expect(view.Stats.TotalAssigned).To(Equal(view.Stats.TotalScanned + view.Stats.TotalNotScanned))
			Expect(view.SelectedDate).To(Equal("2025-09-15"))

			scanned := 0
			for _, entry := range view.Attendance {
				if entry.HasScanned {
					scanned++
					Expect(entry.Attendance).NotTo(BeNil())
				} else {
					Expect(entry.Attendance).To(BeNil())
				}
			}
			Expect(scanned).To(Equal(1))
		})
	})

	Describe("GetAttendanceByUser", func() {
		It("returns not found for an unknown user", func() {
			_, err := service.GetAttendanceByUser(999, attendance.ListFilter{})

			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.StatusCode).To(Equal(404))
		})

		It("reports a 0% rate with no records", func() {
			newStudent(1, "RFID-0001")

			view, err := service.GetAttendanceByUser(1, attendance.ListFilter{})

			Expect(err).NotTo(HaveOccurred())
			Expect(view.Stats.TotalAttendance).To(Equal(0))
			Expect(view.Stats.AttendanceRate).To(Equal("0%"))
		})

		It("computes the rate from present and late records", func() {
			newStudent(1, "RFID-0001")
			repo.records[1] = &attendance.Record{ID: 1, UserID: 1, ScheduleID: 10, ScanTime: now, ScanDate: scanDay, Status: attendance.StatusPresent}
			repo.records[2] = &attendance.Record{ID: 2, UserID: 1, ScheduleID: 11, ScanTime: now, ScanDate: scanDay, Status: attendance.StatusLate, IsLate: true}
			repo.records[3] = &attendance.Record{ID: 3, UserID: 1, ScheduleID: 12, ScanTime: now, ScanDate: scanDay, Status: attendance.StatusAbsent}
			repo.nextID = 4

			view, err := service.GetAttendanceByUser(1, attendance.ListFilter{})

			Expect(err).NotTo(HaveOccurred())
			Expect(view.Stats.TotalAttendance).To(Equal(3))
			Expect(view.Stats.TotalPresent).To(Equal(1))
			Expect(view.Stats.TotalLate).To(Equal(1))
			Expect(view.Stats.AttendanceRate).To(Equal("66.67%"))
		})
	})

	Describe("GetAttendanceSummary", func() {
		It("groups records by day, newest day first", func() {
			day1 := time.Date(2025, 9, 14, 8, 0, 0, 0, time.Local)
			day2 := time.Date(2025, 9, 15, 8, 0, 0, 0, time.Local)
			repo.records[1] = &attendance.Record{ID: 1, UserID: 1, ScheduleID: 10, ScanTime: day1, Status: attendance.StatusPresent}
			repo.records[2] = &attendance.Record{ID: 2, UserID: 2, ScheduleID: 10, ScanTime: day2, Status: attendance.StatusLate}
			repo.records[3] = &attendance.Record{ID: 3, UserID: 1, ScheduleID: 11, ScanTime: day2, Status: attendance.StatusPresent}
			repo.nextID = 4

			view, err := service.GetAttendanceSummary(attendance.ListFilter{})

			Expect(err).NotTo(HaveOccurred())
			Expect(view.Summary).To(HaveLen(2))
			Expect(view.Summary[0].Date).To(Equal("2025-09-15"))
			Expect(view.Summary[0].Total).To(Equal(2))
			Expect(view.Summary[1].Date).To(Equal("2025-09-14"))
			Expect(view.Stats.TotalRecords).To(Equal(3))
			Expect(view.Stats.UniqueUsers).To(Equal(2))
			Expect(view.Stats.UniqueSchedules).To(Equal(2))
		})

		It("echoes the filters back", func() {
			start := time.Date(2025, 9, 1, 0, 0, 0, 0, time.Local)
			end := time.Date(2025, 9, 30, 0, 0, 0, 0, time.Local)
			scheduleID := int64(10)

			view, err := service.GetAttendanceSummary(attendance.ListFilter{
				StartDate:  &start,
				EndDate:    &end,
				ScheduleID: &scheduleID,
			})

			Expect(err).NotTo(HaveOccurred())
			Expect(view.Filters.StartDate).To(Equal("2025-09-01"))
			Expect(view.Filters.EndDate).To(Equal("2025-09-30"))
			Expect(view.Filters.ScheduleID).To(Equal("10"))
		})
	})

	Describe("UpdateAttendance", func() {
		It("returns not found for an unknown record", func() {
			status := attendance.StatusLate
			_, err := service.UpdateAttendance(999, attendance.UpdateAttendanceDTO{Status: &status})

			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.StatusCode).To(Equal(404))
		})

		It("applies only the provided fields", func() {
			notes := "left early"
			repo.records[1] = &attendance.Record{ID: 1, UserID: 1, ScheduleID: 10, Status: attendance.StatusPresent}
			repo.nextID = 2

			updated, err := service.UpdateAttendance(1, attendance.UpdateAttendanceDTO{Notes: &notes})

			Expect(err).NotTo(HaveOccurred())
			Expect(updated.Status).To(Equal(attendance.StatusPresent))
			Expect(*updated.Notes).To(Equal("left early"))
		})

		It("rejects an unknown status", func() {
			bogus := "SLEEPING"
			repo.records[1] = &attendance.Record{ID: 1, Status: attendance.StatusPresent}

			_, err := service.UpdateAttendance(1, attendance.UpdateAttendanceDTO{Status: &bogus})

			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.StatusCode).To(Equal(400))
		})
	})

	Describe("DeleteAttendance", func() {
		It("returns not found first", func() {
			err := service.DeleteAttendance(999)

			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.StatusCode).To(Equal(404))
		})

		It("removes the record", func() {
			repo.records[1] = &attendance.Record{ID: 1}

			Expect(service.DeleteAttendance(1)).To(Succeed())
			_, err := service.GetAttendanceByUser(1, attendance.ListFilter{})
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("CreateManualAttendance", func() {
		It("validates the user and schedule exist", func() {
			newStudent(1, "RFID-0001")

			_, err := service.CreateManualAttendance(context.Background(), attendance.ManualAttendanceDTO{
				UserID: 1, ScheduleID: 999, Status: attendance.StatusPresent,
			})

			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.StatusCode).To(Equal(404))
		})

		It("derives lateness from the requested status", func() {
			newStudent(1, "RFID-0001")
			newSchedule(10, 8, 0)

			record, err := service.CreateManualAttendance(context.Background(), attendance.ManualAttendanceDTO{
				UserID: 1, ScheduleID: 10, Status: attendance.StatusLate,
			})

			Expect(err).NotTo(HaveOccurred())
			Expect(record.IsLate).To(BeTrue())
			Expect(record.ScanTime).To(Equal(now))
		})

		It("rejects a second entry for the same user and day", func() {
			newStudent(1, "RFID-0001")
			newSchedule(10, 8, 0)

			_, err := service.CreateManualAttendance(context.Background(), attendance.ManualAttendanceDTO{
				UserID: 1, ScheduleID: 10, Status: attendance.StatusPresent,
			})
			Expect(err).NotTo(HaveOccurred())

			_, err = service.CreateManualAttendance(context.Background(), attendance.ManualAttendanceDTO{
				UserID: 1, ScheduleID: 10, Status: attendance.StatusLate,
			})

			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.StatusCode).To(Equal(400))
		})

		It("honors a caller-supplied scan time", func() {
			newStudent(1, "RFID-0001")
			newSchedule(10, 8, 0)
			scanTime := time.Date(2025, 9, 10, 8, 5, 0, 0, time.Local)

			record, err := service.CreateManualAttendance(context.Background(), attendance.ManualAttendanceDTO{
				UserID: 1, ScheduleID: 10, Status: attendance.StatusPresent, ScanTime: &scanTime,
			})

			Expect(err).NotTo(HaveOccurred())
			Expect(record.ScanTime).To(Equal(scanTime))
			Expect(record.ScanDate).To(Equal(time.Date(2025, 9, 10, 0, 0, 0, 0, time.Local)))
		})
	})
})
