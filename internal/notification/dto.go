package notification

// SendToUserDTO targets one user.
type SendToUserDTO struct {
	UserID   int64  `json:"user_id" validate:"required,min=1"`
	Title    string `json:"title" validate:"required,max=200"`
	Message  string `json:"message" validate:"required"`
	Type     string `json:"type" validate:"omitempty,oneof=INFO WARNING ALERT"`
	Priority string `json:"priority" validate:"omitempty,oneof=LOW MEDIUM HIGH"`
}

// SendToRoleDTO fans out to every active user holding the role.
type SendToRoleDTO struct {
	Role     string `json:"role" validate:"required,oneof=ADMIN STAFF STUDENT"`
	Title    string `json:"title" validate:"required,max=200"`
	Message  string `json:"message" validate:"required"`
	Type     string `json:"type" validate:"omitempty,oneof=INFO WARNING ALERT"`
	Priority string `json:"priority" validate:"omitempty,oneof=LOW MEDIUM HIGH"`
}
