package postgres

import (
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/rahmadiangg/attendance-management/internal/attendance"
	"github.com/rahmadiangg/attendance-management/internal/schedule"
	"github.com/rahmadiangg/attendance-management/internal/user"
)

func TestAttendanceRepository(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "AttendanceRepository Suite")
}

var _ = Describe("AttendanceRepository", func() {
	var (
		db   *gorm.DB
		repo attendance.RepositoryAPI
	)

	day := time.Date(2025, 9, 15, 0, 0, 0, 0, time.UTC)

	newRecord := func(userID, scheduleID int64, scanTime time.Time, status string) *attendance.Record {
		return &attendance.Record{
			UserID:     userID,
			ScheduleID: scheduleID,
			ScanTime:   scanTime,
			ScanDate:   time.Date(scanTime.Year(), scanTime.Month(), scanTime.Day(), 0, 0, 0, 0, scanTime.Location()),
			Status:     status,
			IsLate:     status == attendance.StatusLate,
		}
	}

	BeforeEach(func() {
		var err error

		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
		Expect(err).NotTo(HaveOccurred())

		err = db.AutoMigrate(&user.User{}, &schedule.Schedule{}, &attendance.Record{})
		Expect(err).NotTo(HaveOccurred())

		repo = NewAttendanceRepository(db)
	})

	AfterEach(func() {
		sqlDB, err := db.DB()
		Expect(err).NotTo(HaveOccurred())
		Expect(sqlDB.Close()).To(Succeed())
	})

	Describe("Create", func() {
		It("persists a record", func() {
			record := newRecord(1, 10, day.Add(8*time.Hour), attendance.StatusPresent)

			err := repo.Create(record)

			Expect(err).NotTo(HaveOccurred())
			Expect(record.ID).NotTo(BeZero())
		})

		It("reports a duplicate for the same user, schedule, and day", func() {
			Expect(repo.Create(newRecord(1, 10, day.Add(8*time.Hour), attendance.StatusPresent))).To(Succeed())

			err := repo.Create(newRecord(1, 10, day.Add(10*time.Hour), attendance.StatusLate))

			Expect(err).To(Equal(attendance.ErrDuplicateScan))
		})

		It("allows the same user and schedule on another day", func() {
			Expect(repo.Create(newRecord(1, 10, day.Add(8*time.Hour), attendance.StatusPresent))).To(Succeed())

			err := repo.Create(newRecord(1, 10, day.AddDate(0, 0, 1).Add(8*time.Hour), attendance.StatusPresent))

			Expect(err).NotTo(HaveOccurred())
		})
	})

	Describe("FindInWindow", func() {
		It("returns nil without error when nothing matches", func() {
			record, err := repo.FindInWindow(1, 10, day, day.Add(24*time.Hour-time.Nanosecond))

			Expect(err).NotTo(HaveOccurred())
			Expect(record).To(BeNil())
		})

		It("finds the record inside the window", func() {
			Expect(repo.Create(newRecord(1, 10, day.Add(8*time.Hour), attendance.StatusPresent))).To(Succeed())

			record, err := repo.FindInWindow(1, 10, day, day.Add(24*time.Hour-time.Nanosecond))

			Expect(err).NotTo(HaveOccurred())
			Expect(record).NotTo(BeNil())
			Expect(record.UserID).To(Equal(int64(1)))
		})
	})

	Describe("GetByID", func() {
		It("returns the domain not-found error", func() {
			_, err := repo.GetByID(999)

			Expect(err).To(Equal(attendance.ErrRecordNotFound))
		})
	})

	Describe("GetBySchedule", func() {
		It("orders newest-first and honors the day window", func() {
			Expect(repo.Create(newRecord(1, 10, day.Add(8*time.Hour), attendance.StatusPresent))).To(Succeed())
			Expect(repo.Create(newRecord(2, 10, day.Add(9*time.Hour), attendance.StatusLate))).To(Succeed())
			Expect(repo.Create(newRecord(3, 10, day.AddDate(0, 0, -1).Add(8*time.Hour), attendance.StatusPresent))).To(Succeed())

			dayEnd := day.Add(24*time.Hour - time.Nanosecond)
			records, err := repo.GetBySchedule(10, &day, &dayEnd)

			Expect(err).NotTo(HaveOccurred())
			Expect(records).To(HaveLen(2))
			Expect(records[0].UserID).To(Equal(int64(2)))
			Expect(records[1].UserID).To(Equal(int64(1)))
		})
	})

	Describe("GetByUser", func() {
		It("applies the schedule filter", func() {
			Expect(repo.Create(newRecord(1, 10, day.Add(8*time.Hour), attendance.StatusPresent))).To(Succeed())
			Expect(repo.Create(newRecord(1, 11, day.AddDate(0, 0, 1).Add(8*time.Hour), attendance.StatusLate))).To(Succeed())

			scheduleID := int64(11)
			records, err := repo.GetByUser(1, attendance.ListFilter{ScheduleID: &scheduleID})

			Expect(err).NotTo(HaveOccurred())
			Expect(records).To(HaveLen(1))
			Expect(records[0].ScheduleID).To(Equal(int64(11)))
		})
	})

	Describe("LastBySchedule", func() {
		It("caps the result at the limit, newest first", func() {
			for i := 0; i < 7; i++ {
				r := newRecord(int64(i+1), 10, day.AddDate(0, 0, -i).Add(8*time.Hour), attendance.StatusPresent)
				Expect(repo.Create(r)).To(Succeed())
			}

			records, err := repo.LastBySchedule(10, 5)

			Expect(err).NotTo(HaveOccurred())
			Expect(records).To(HaveLen(5))
			Expect(records[0].UserID).To(Equal(int64(1)))
		})
	})

	Describe("Update and Delete", func() {
		It("round-trips a correction", func() {
			record := newRecord(1, 10, day.Add(8*time.Hour), attendance.StatusPresent)
			Expect(repo.Create(record)).To(Succeed())

			notes := "verified by instructor"
			record.Status = attendance.StatusExcused
			record.Notes = &notes
			Expect(repo.Update(record)).To(Succeed())

			got, err := repo.GetByID(record.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(got.Status).To(Equal(attendance.StatusExcused))
			Expect(*got.Notes).To(Equal(notes))

			Expect(repo.Delete(record.ID)).To(Succeed())
			_, err = repo.GetByID(record.ID)
			Expect(err).To(Equal(attendance.ErrRecordNotFound))
		})
	})
})
