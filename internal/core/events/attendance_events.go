package events

import (
	"time"

	"github.com/google/uuid"
)

const (
	EventTypeAttendanceRecorded = "attendance.recorded"
	EventTypeUserLoggedIn       = "user.logged_in"
)

// AttendanceRecordedEvent is published after the attendance write commits.
// Subscribers write the user notification and the audit-log entry.
type AttendanceRecordedEvent struct {
	BaseEvent
	RecordID   int64     `json:"record_id"`
	UserID     int64     `json:"user_id"`
	ScheduleID int64     `json:"schedule_id"`
	Status     string    `json:"status"`
	IsLate     bool      `json:"is_late"`
	ScanTime   time.Time `json:"scan_time"`
	Manual     bool      `json:"manual"`
}

func NewAttendanceRecordedEvent(recordID, userID, scheduleID int64, status string, isLate bool, scanTime time.Time, manual bool) *AttendanceRecordedEvent {
	return &AttendanceRecordedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypeAttendanceRecorded,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"record_id":   recordID,
				"user_id":     userID,
				"schedule_id": scheduleID,
				"status":      status,
				"is_late":     isLate,
				"scan_time":   scanTime,
				"manual":      manual,
			},
		},
		RecordID:   recordID,
		UserID:     userID,
		ScheduleID: scheduleID,
		Status:     status,
		IsLate:     isLate,
		ScanTime:   scanTime,
		Manual:     manual,
	}
}

// UserLoggedInEvent feeds the LOGIN audit-log entry.
type UserLoggedInEvent struct {
	BaseEvent
	UserID   int64  `json:"user_id"`
	Username string `json:"username"`
	IP       string `json:"ip"`
}

func NewUserLoggedInEvent(userID int64, username, ip string) *UserLoggedInEvent {
	return &UserLoggedInEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypeUserLoggedIn,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"user_id":  userID,
				"username": username,
				"ip":       ip,
			},
		},
		UserID:   userID,
		Username: username,
		IP:       ip,
	}
}
