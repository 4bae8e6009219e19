package attendance

import (
	"time"

	"github.com/rahmadiangg/attendance-management/internal"
	"github.com/rahmadiangg/attendance-management/internal/schedule"
	"github.com/rahmadiangg/attendance-management/internal/user"
)

const (
	StatusPresent = "PRESENT"
	StatusLate    = "LATE"
	StatusAbsent  = "ABSENT"
	StatusExcused = "EXCUSED"
)

// Record is one attendance entry for a user on a schedule. ScanDate is the
// calendar day of ScanTime, stored separately so the composite unique index
// (user_id, schedule_id, scan_date) can enforce one record per user per
// schedule per day at the database level.
type Record struct {
	ID         int64     `json:"id" gorm:"primaryKey"`
	UserID     int64     `json:"user_id" gorm:"column:user_id;not null;uniqueIndex:idx_attendances_user_schedule_day"`
	ScheduleID int64     `json:"schedule_id" gorm:"column:schedule_id;not null;uniqueIndex:idx_attendances_user_schedule_day"`
	ScanTime   time.Time `json:"scan_time" gorm:"column:scan_time;not null"`
	ScanDate   time.Time `json:"scan_date" gorm:"column:scan_date;not null;uniqueIndex:idx_attendances_user_schedule_day"`
	Status     string    `json:"status" gorm:"not null"`
	IsLate     bool      `json:"is_late" gorm:"column:is_late"`
	Notes      *string   `json:"notes" gorm:"column:notes"`
	CreatedAt  time.Time `json:"created_at" gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time `json:"updated_at" gorm:"column:updated_at;autoUpdateTime"`

	User     *user.User         `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Schedule *schedule.Schedule `json:"schedule,omitempty" gorm:"foreignKey:ScheduleID"`
}

func (Record) TableName() string {
	return "attendances"
}

// DayWindow returns the local calendar-day bounds of t, from midnight to the
// last nanosecond of the day.
func DayWindow(t time.Time) (time.Time, time.Time) {
	year, month, day := t.Date()
	start := time.Date(year, month, day, 0, 0, 0, 0, t.Location())
	end := start.Add(24*time.Hour - time.Nanosecond)
	return start, end
}

// Truncate t to its local calendar day, for the scan_date column.
func DayOf(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}

// ListFilter narrows attendance queries. Nil fields are ignored.
type ListFilter struct {
	UserID     *int64
	ScheduleID *int64
	StartDate  *time.Time
	EndDate    *time.Time
}

type RepositoryAPI interface {
	// Create persists the record. A violation of the per-day unique index
	// comes back as ErrDuplicateScan.
	Create(r *Record) error
	GetByID(id int64) (*Record, error)
	// FindInWindow returns the record for (userID, scheduleID) with a scan
	// time inside [dayStart, dayEnd], or (nil, nil) when there is none.
	FindInWindow(userID, scheduleID int64, dayStart, dayEnd time.Time) (*Record, error)
	// GetBySchedule returns the schedule's records newest-first with users
	// preloaded, optionally bounded to a day window.
	GetBySchedule(scheduleID int64, dayStart, dayEnd *time.Time) ([]*Record, error)
	// GetByUser returns the user's records newest-first with schedules
	// preloaded.
	GetByUser(userID int64, filter ListFilter) ([]*Record, error)
	// List returns records matching the filter with users and schedules
	// preloaded, newest-first.
	List(filter ListFilter) ([]*Record, error)
	// LastBySchedule returns up to limit most recent records for a schedule
	// with users preloaded.
	LastBySchedule(scheduleID int64, limit int) ([]*Record, error)
	Update(r *Record) error
	Delete(id int64) error
}

var (
	ErrRecordNotFound = internal.NewNotFoundError("Attendance record not found", internal.ErrCodeRecordNotFound)
	ErrDuplicateScan  = internal.NewConflictError("User has already scanned attendance today", internal.ErrCodeDuplicateScan)

	// ErrInvalidScheduleTime aborts a scan whose schedule carries no usable
	// start time. Surfaced as a 500: the data is broken, not the request.
	ErrInvalidScheduleTime = invalidScheduleTimeError()
)

func invalidScheduleTimeError() *internal.AppError {
	e := internal.NewInternalError("Invalid schedule time format", nil)
	e.Code = internal.ErrCodeInvalidScheduleTime
	return e
}
