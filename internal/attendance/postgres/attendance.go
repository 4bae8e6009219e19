package postgres

import (
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/rahmadiangg/attendance-management/internal/attendance"
)

// AttendanceRepository implements attendance.RepositoryAPI using GORM.
type AttendanceRepository struct {
	db *gorm.DB
}

func NewAttendanceRepository(db *gorm.DB) attendance.RepositoryAPI {
	return &AttendanceRepository{db: db}
}

// Create inserts the record. The composite unique index on
// (user_id, schedule_id, scan_date) makes concurrent duplicate scans lose
// here; the violation is surfaced as ErrDuplicateScan.
func (r *AttendanceRepository) Create(record *attendance.Record) error {
	if err := r.db.Create(record).Error; err != nil {
		if isUniqueViolation(err) {
			return attendance.ErrDuplicateScan
		}
		return err
	}
	return nil
}

func (r *AttendanceRepository) GetByID(id int64) (*attendance.Record, error) {
	var record attendance.Record
	err := r.db.Preload("User").Preload("Schedule").
		Where("id = ?", id).
		First(&record).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, attendance.ErrRecordNotFound
		}
		return nil, err
	}
	return &record, nil
}

func (r *AttendanceRepository) FindInWindow(userID, scheduleID int64, dayStart, dayEnd time.Time) (*attendance.Record, error) {
	var record attendance.Record
	err := r.db.
		Where("user_id = ? AND schedule_id = ?", userID, scheduleID).
		Where("scan_time >= ? AND scan_time <= ?", dayStart, dayEnd).
		First(&record).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &record, nil
}

func (r *AttendanceRepository) GetBySchedule(scheduleID int64, dayStart, dayEnd *time.Time) ([]*attendance.Record, error) {
	q := r.db.Preload("User").Where("schedule_id = ?", scheduleID)
	if dayStart != nil && dayEnd != nil {
		q = q.Where("scan_time >= ? AND scan_time <= ?", *dayStart, *dayEnd)
	}

	var records []*attendance.Record
	err := q.Order("scan_time DESC").Find(&records).Error
	return records, err
}

func (r *AttendanceRepository) GetByUser(userID int64, filter attendance.ListFilter) ([]*attendance.Record, error) {
	q := r.db.Preload("Schedule").Where("user_id = ?", userID)
	q = applyFilter(q, filter)

	var records []*attendance.Record
	err := q.Order("scan_time DESC").Find(&records).Error
	return records, err
}

func (r *AttendanceRepository) List(filter attendance.ListFilter) ([]*attendance.Record, error) {
	q := r.db.Preload("User").Preload("Schedule")
	if filter.UserID != nil {
		q = q.Where("user_id = ?", *filter.UserID)
	}
	q = applyFilter(q, filter)

	var records []*attendance.Record
	err := q.Order("scan_time DESC").Find(&records).Error
	return records, err
}

func (r *AttendanceRepository) LastBySchedule(scheduleID int64, limit int) ([]*attendance.Record, error) {
	var records []*attendance.Record
	err := r.db.Preload("User").
		Where("schedule_id = ?", scheduleID).
		Order("scan_time DESC").
		Limit(limit).
		Find(&records).Error
	return records, err
}

func (r *AttendanceRepository) Update(record *attendance.Record) error {
	return r.db.Save(record).Error
}

func (r *AttendanceRepository) Delete(id int64) error {
	return r.db.Delete(&attendance.Record{}, id).Error
}

func applyFilter(q *gorm.DB, filter attendance.ListFilter) *gorm.DB {
	if filter.StartDate != nil && filter.EndDate != nil {
		q = q.Where("scan_time >= ? AND scan_time <= ?", *filter.StartDate, *filter.EndDate)
	}
	if filter.ScheduleID != nil {
		q = q.Where("schedule_id = ?", *filter.ScheduleID)
	}
	return q
}

// isUniqueViolation matches the duplicate-key shapes of both backing
// drivers: pgx for production, sqlite for the test suite.
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return true
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
