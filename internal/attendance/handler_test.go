package attendance_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/rahmadiangg/attendance-management/internal/assignment"
	assignmentpg "github.com/rahmadiangg/attendance-management/internal/assignment/postgres"
	"github.com/rahmadiangg/attendance-management/internal/attendance"
	attendancepg "github.com/rahmadiangg/attendance-management/internal/attendance/postgres"
	"github.com/rahmadiangg/attendance-management/internal/core/events"
	"github.com/rahmadiangg/attendance-management/internal/schedule"
	schedulepg "github.com/rahmadiangg/attendance-management/internal/schedule/postgres"
	"github.com/rahmadiangg/attendance-management/internal/transport"
	"github.com/rahmadiangg/attendance-management/internal/user"
	userpg "github.com/rahmadiangg/attendance-management/internal/user/postgres"
)

var _ = Describe("Attendance Handler Integration", func() {
	var (
		db      *gorm.DB
		handler *attendance.Handler
		student *user.User
		sched   *schedule.Schedule
		now     time.Time
	)

	postScan := func(body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/attendance/scan", bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		handler.Scan(w, req)
		return w
	}

	decode := func(w *httptest.ResponseRecorder) transport.Envelope {
		var env transport.Envelope
		Expect(json.NewDecoder(w.Body).Decode(&env)).To(Succeed())
		return env
	}

	BeforeEach(func() {
		var err error
		slogger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))

		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
			Logger: gormlogger.Default.LogMode(gormlogger.Silent),
		})
		Expect(err).NotTo(HaveOccurred())

		err = db.AutoMigrate(&user.User{}, &schedule.Schedule{}, &assignment.Assignment{}, &attendance.Record{})
		Expect(err).NotTo(HaveOccurred())

		userRepo := userpg.NewUserRepository(db)
		scheduleRepo := schedulepg.NewScheduleRepository(db)
		assignmentRepo := assignmentpg.NewAssignmentRepository(db)
		attendanceRepo := attendancepg.NewAttendanceRepository(db)

		now = time.Date(2025, 9, 15, 8, 30, 0, 0, time.UTC)

		service := attendance.NewService(attendanceRepo, userRepo, scheduleRepo, assignmentRepo,
			events.NewEventBus(slogger), slogger).
			WithClock(func() time.Time { return now })
		handler = attendance.NewHandler(service)

		student = &user.User{
			Username:     "budi",
			FullName:     "Budi Santoso",
			Email:        "budi@example.com",
			RFIDCard:     "CARD-001",
			PasswordHash: "x",
			Role:         user.RoleStudent,
			IsActive:     true,
		}
		Expect(userRepo.Create(student)).To(Succeed())

		sched = &schedule.Schedule{
			ClassName:    "XII-A",
			Subject:      "Mathematics",
			Instructor:   "Pak Ahmad",
			Room:         "R-101",
			ScheduleDate: time.Date(2025, 9, 15, 0, 0, 0, 0, time.UTC),
			StartTime:    time.Date(2025, 9, 15, 8, 0, 0, 0, time.UTC),
			EndTime:      time.Date(2025, 9, 15, 10, 0, 0, 0, time.UTC),
			IsActive:     true,
		}
		Expect(scheduleRepo.Create(sched)).To(Succeed())

		Expect(assignmentRepo.Create(&assignment.Assignment{
			UserID:     student.ID,
			ScheduleID: sched.ID,
		})).To(Succeed())
	})

	It("records a scan and answers 201 with the envelope", func() {
		w := postScan(`{"rfidCard":"CARD-001"}`)

		Expect(w.Code).To(Equal(http.StatusCreated))
		Expect(w.Header().Get("Content-Type")).To(ContainSubstring("application/json"))

		env := decode(w)
		Expect(env.Success).To(BeTrue())
		Expect(env.Message).To(Equal("Attendance recorded successfully with status LATE"))
		Expect(env.Data).NotTo(BeNil())
	})

	It("answers 400 with the existing record on a repeated scan", func() {
		Expect(postScan(`{"rfidCard":"CARD-001"}`).Code).To(Equal(http.StatusCreated))

		w := postScan(`{"rfidCard":"CARD-001"}`)
		Expect(w.Code).To(Equal(http.StatusBadRequest))

		env := decode(w)
		Expect(env.Success).To(BeFalse())
		Expect(env.Data).NotTo(BeNil())
	})

	It("answers 404 for an unknown card", func() {
		w := postScan(`{"rfidCard":"NO-SUCH-CARD"}`)

		Expect(w.Code).To(Equal(http.StatusNotFound))
		Expect(decode(w).Success).To(BeFalse())
	})

	It("answers 400 when the card number is missing", func() {
		w := postScan(`{}`)

		Expect(w.Code).To(Equal(http.StatusBadRequest))
		Expect(decode(w).Success).To(BeFalse())
	})

	It("answers 404 when the card holder has no assignment today", func() {
		other := &user.User{
			Username:     "sari",
			FullName:     "Sari Dewi",
			Email:        "sari@example.com",
			RFIDCard:     "CARD-002",
			PasswordHash: "x",
			Role:         user.RoleStudent,
			IsActive:     true,
		}
		Expect(userpg.NewUserRepository(db).Create(other)).To(Succeed())

		w := postScan(`{"rfidCard":"CARD-002"}`)
		Expect(w.Code).To(Equal(http.StatusNotFound))
	})
})
