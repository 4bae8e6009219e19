package assignment

import (
	"time"

	"github.com/rahmadiangg/attendance-management/internal"
	"github.com/rahmadiangg/attendance-management/internal/schedule"
	"github.com/rahmadiangg/attendance-management/internal/user"
)

// Assignment links a user to a schedule for a session. It only establishes
// eligibility; attendance data lives on the attendance record.
type Assignment struct {
	ID         int64     `json:"id" gorm:"primaryKey"`
	UserID     int64     `json:"user_id" gorm:"column:user_id;not null;uniqueIndex:idx_schedule_users_pair"`
	ScheduleID int64     `json:"schedule_id" gorm:"column:schedule_id;not null;uniqueIndex:idx_schedule_users_pair"`
	CreatedAt  time.Time `json:"created_at" gorm:"column:created_at;autoCreateTime"`

	User     *user.User         `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Schedule *schedule.Schedule `json:"schedule,omitempty" gorm:"foreignKey:ScheduleID"`
}

func (Assignment) TableName() string {
	return "schedule_users"
}

type RepositoryAPI interface {
	Create(a *Assignment) error
	GetByID(id int64) (*Assignment, error)
	Exists(userID, scheduleID int64) (bool, error)
	GetBySchedule(scheduleID int64) ([]*Assignment, error)
	GetByUser(userID int64) ([]*Assignment, error)
	// GetActiveForUserInWindow returns the user's assignments whose schedule
	// is active and dated inside [dayStart, dayEnd], ordered by schedule
	// start time then id so selection is deterministic.
	GetActiveForUserInWindow(userID int64, dayStart, dayEnd time.Time) ([]*Assignment, error)
	Delete(id int64) error
	AvailableUsers(scheduleID int64, search string) ([]*user.User, error)
}

var (
	ErrAssignmentNotFound  = internal.NewNotFoundError("Assignment not found", internal.ErrCodeAssignmentNotFound)
	ErrDuplicateAssignment = internal.NewConflictError("User is already assigned to this schedule", internal.ErrCodeDuplicateAssignment)
)
