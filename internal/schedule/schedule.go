package schedule

import (
	"time"

	"github.com/rahmadiangg/attendance-management/internal"
)

// Schedule is a single class session on a calendar day. StartTime and
// EndTime carry the schedule's clock times; the lateness threshold for a
// scan is rebuilt from StartTime's hour and minute on the scan's own day.
type Schedule struct {
	ID           int64     `json:"id" gorm:"primaryKey"`
	ClassName    string    `json:"class_name" gorm:"column:class_name;not null"`
	Subject      string    `json:"subject" gorm:"not null"`
	Instructor   string    `json:"instructor" gorm:"not null"`
	Room         string    `json:"room" gorm:"not null"`
	ScheduleDate time.Time `json:"schedule_date" gorm:"column:schedule_date;not null"`
	StartTime    time.Time `json:"start_time" gorm:"column:start_time;not null"`
	EndTime      time.Time `json:"end_time" gorm:"column:end_time;not null"`
	IsActive     bool      `json:"is_active" gorm:"column:is_active;default:true"`
	CreatedAt    time.Time `json:"created_at" gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time `json:"updated_at" gorm:"column:updated_at;autoUpdateTime"`
}

func (Schedule) TableName() string {
	return "schedules"
}

// Summary is the projection embedded in attendance responses.
type Summary struct {
	ID         int64  `json:"id"`
	ClassName  string `json:"class_name"`
	Subject    string `json:"subject"`
	Instructor string `json:"instructor"`
}

func (s *Schedule) Summarize() Summary {
	return Summary{
		ID:         s.ID,
		ClassName:  s.ClassName,
		Subject:    s.Subject,
		Instructor: s.Instructor,
	}
}

type ListFilter struct {
	StartDate *time.Time
	EndDate   *time.Time
	Upcoming  bool
}

type RepositoryAPI interface {
	Create(s *Schedule) error
	GetByID(id int64) (*Schedule, error)
	GetAll(filter ListFilter) ([]*Schedule, error)
	Update(s *Schedule) error
	Delete(id int64) error
}

var (
	ErrScheduleNotFound = internal.NewNotFoundError("Schedule not found", internal.ErrCodeScheduleNotFound)
	ErrInvalidTimeRange = internal.NewValidationError("endTime must be after startTime", internal.ErrCodeInvalidTimeRange)
)
