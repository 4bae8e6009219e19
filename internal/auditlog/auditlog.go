package auditlog

import (
	"time"

	"github.com/rahmadiangg/attendance-management/internal/user"
)

const (
	ActionLogin          = "LOGIN"
	ActionAttendanceScan = "ATTENDANCE_SCAN"
)

// Entry is one append-only audit trail row.
type Entry struct {
	ID          int64     `json:"id" gorm:"primaryKey"`
	UserID      int64     `json:"user_id" gorm:"column:user_id;not null;index"`
	Action      string    `json:"action" gorm:"not null"`
	Description string    `json:"description"`
	IP          string    `json:"ip" gorm:"column:ip"`
	ScheduleID  *int64    `json:"schedule_id" gorm:"column:schedule_id"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at" gorm:"column:created_at;autoCreateTime"`

	User *user.User `json:"user,omitempty" gorm:"foreignKey:UserID"`
}

func (Entry) TableName() string {
	return "audit_logs"
}

type RepositoryAPI interface {
	Create(e *Entry) error
	// Latest returns the most recent entries with users preloaded.
	Latest(limit int) ([]*Entry, error)
}
