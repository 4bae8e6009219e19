package attendance

import (
	"time"

	"github.com/rahmadiangg/attendance-management/internal/schedule"
	"github.com/rahmadiangg/attendance-management/internal/user"
)

// ScanDTO is the device payload. The field name matches the reader firmware.
type ScanDTO struct {
	RFIDCard string `json:"rfidCard" validate:"required"`
}

// ManualAttendanceDTO is the admin-entry payload. ScanTime defaults to now
// when omitted.
type ManualAttendanceDTO struct {
	UserID     int64      `json:"user_id" validate:"required,min=1"`
	ScheduleID int64      `json:"schedule_id" validate:"required,min=1"`
	Status     string     `json:"status" validate:"required,oneof=PRESENT LATE ABSENT EXCUSED"`
	Notes      *string    `json:"notes"`
	ScanTime   *time.Time `json:"scan_time"`
}

// UpdateAttendanceDTO carries a partial correction; nil fields stay untouched.
type UpdateAttendanceDTO struct {
	Status *string `json:"status" validate:"omitempty,oneof=PRESENT LATE ABSENT EXCUSED"`
	Notes  *string `json:"notes"`
	IsLate *bool   `json:"is_late"`
}

// ScanResult pairs the created record with its status for the device reply.
type ScanResult struct {
	Record *Record
	Status string
}

// RecordView is a record without its preloads, embedded in roster entries.
type RecordView struct {
	ID       int64     `json:"id"`
	ScanTime time.Time `json:"scan_time"`
	Status   string    `json:"status"`
	IsLate   bool      `json:"is_late"`
	Notes    *string   `json:"notes"`
}

// RosterEntry is one assigned user in the by-schedule view, with the user's
// record for the selected day when one exists.
type RosterEntry struct {
	UserID     int64       `json:"user_id"`
	Username   string      `json:"username"`
	Email      string      `json:"email"`
	RFIDCard   string      `json:"rfid_card"`
	AssignedAt time.Time   `json:"assigned_at"`
	Attendance *RecordView `json:"attendance"`
	HasScanned bool        `json:"has_scanned"`
}

type ScheduleStats struct {
	TotalAssigned   int `json:"totalAssigned"`
	TotalScanned    int `json:"totalScanned"`
	TotalNotScanned int `json:"totalNotScanned"`
	TotalPresent    int `json:"totalPresent"`
	TotalLate       int `json:"totalLate"`
}

// ScheduleView is the full by-schedule response payload.
type ScheduleView struct {
	Schedule     *schedule.Schedule `json:"schedule"`
	Attendance   []RosterEntry      `json:"attendance"`
	Stats        ScheduleStats      `json:"stats"`
	SelectedDate string             `json:"selectedDate"`
}

type UserStats struct {
	TotalAttendance int    `json:"totalAttendance"`
	TotalPresent    int    `json:"totalPresent"`
	TotalLate       int    `json:"totalLate"`
	AttendanceRate  string `json:"attendanceRate"`
}

// UserView is the full by-user response payload.
type UserView struct {
	User        user.Summary `json:"user"`
	Attendances []*Record    `json:"attendances"`
	Stats       UserStats    `json:"stats"`
}

// DaySummary groups one calendar day's records.
type DaySummary struct {
	Date        string    `json:"date"`
	Total       int       `json:"total"`
	Present     int       `json:"present"`
	Late        int       `json:"late"`
	Attendances []*Record `json:"attendances"`
}

type SummaryStats struct {
	TotalRecords    int `json:"totalRecords"`
	TotalPresent    int `json:"totalPresent"`
	TotalLate       int `json:"totalLate"`
	UniqueUsers     int `json:"uniqueUsers"`
	UniqueSchedules int `json:"uniqueSchedules"`
}

// SummaryFilters echoes the caller's query back in the summary payload.
type SummaryFilters struct {
	StartDate  string `json:"startDate,omitempty"`
	EndDate    string `json:"endDate,omitempty"`
	ScheduleID string `json:"scheduleId,omitempty"`
}

// SummaryView is the grouped-report payload.
type SummaryView struct {
	Summary []DaySummary   `json:"summary"`
	Stats   SummaryStats   `json:"stats"`
	Filters SummaryFilters `json:"filters"`
}

// LastScansView pairs a schedule with its most recent scans.
type LastScansView struct {
	Schedule        schedule.Summary `json:"schedule"`
	LastAttendances []*Record        `json:"lastAttendances"`
}
