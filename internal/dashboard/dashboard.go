package dashboard

import "time"

// StatusCounts is attendance volume per status over some window.
type StatusCounts struct {
	Present int64 `json:"PRESENT"`
	Late    int64 `json:"LATE"`
	Absent  int64 `json:"ABSENT"`
	Excused int64 `json:"EXCUSED"`
}

// Stats is the admin dashboard headline payload.
type Stats struct {
	TotalUsers           int64        `json:"totalUsers"`
	TotalAttendanceToday int64        `json:"totalAttendanceToday"`
	AttendanceWeekly     StatusCounts `json:"attendanceWeekly"`
	AttendanceMonthly    StatusCounts `json:"attendanceMonthly"`
}

// ChartRow is one labelled bucket of the attendance chart.
type ChartRow struct {
	Label   string `json:"label"`
	Present int64  `json:"PRESENT"`
	Late    int64  `json:"LATE"`
	Absent  int64  `json:"ABSENT"`
	Excused int64  `json:"EXCUSED"`
}

// Chart holds the three bucket series the frontend renders.
type Chart struct {
	Daily   []ChartRow `json:"daily"`
	Weekly  []ChartRow `json:"weekly"`
	Monthly []ChartRow `json:"monthly"`
}

type RepositoryAPI interface {
	CountActiveUsers() (int64, error)
	CountAttendanceSince(t time.Time) (int64, error)
	// CountByStatus groups attendance volume by status over
	// [start, end).
	CountByStatus(start, end time.Time) (StatusCounts, error)
}
