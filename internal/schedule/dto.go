package schedule

import "time"

// CreateScheduleDTO is the request payload for creating a schedule.
type CreateScheduleDTO struct {
	ClassName    string    `json:"class_name" validate:"required,max=100"`
	Subject      string    `json:"subject" validate:"required,max=100"`
	Instructor   string    `json:"instructor" validate:"required,max=100"`
	Room         string    `json:"room" validate:"required,max=50"`
	ScheduleDate time.Time `json:"schedule_date" validate:"required"`
	StartTime    time.Time `json:"start_time" validate:"required"`
	EndTime      time.Time `json:"end_time" validate:"required"`
	IsActive     *bool     `json:"is_active"`
}

// UpdateScheduleDTO carries a partial update; nil fields stay untouched.
type UpdateScheduleDTO struct {
	ClassName    *string    `json:"class_name" validate:"omitempty,max=100"`
	Subject      *string    `json:"subject" validate:"omitempty,max=100"`
	Instructor   *string    `json:"instructor" validate:"omitempty,max=100"`
	Room         *string    `json:"room" validate:"omitempty,max=50"`
	ScheduleDate *time.Time `json:"schedule_date"`
	StartTime    *time.Time `json:"start_time"`
	EndTime      *time.Time `json:"end_time"`
	IsActive     *bool      `json:"is_active"`
}
