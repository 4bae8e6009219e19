package assignment

// AssignDTO is the request payload for assigning a user to a schedule.
type AssignDTO struct {
	UserID     int64 `json:"user_id" validate:"required,min=1"`
	ScheduleID int64 `json:"schedule_id" validate:"required,min=1"`
}
