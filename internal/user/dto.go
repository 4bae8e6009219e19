package user

// CreateUserDTO is the request payload for creating a user.
type CreateUserDTO struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	FullName string `json:"full_name" validate:"required,max=100"`
	Email    string `json:"email" validate:"required,email"`
	RFIDCard string `json:"rfid_card" validate:"required,max=64"`
	Password string `json:"password" validate:"required,min=8"`
	Role     string `json:"role" validate:"omitempty,oneof=ADMIN STAFF STUDENT"`
	IsActive *bool  `json:"is_active"`
}

// UpdateUserDTO carries a partial update; nil fields stay untouched.
type UpdateUserDTO struct {
	Username *string `json:"username" validate:"omitempty,min=3,max=50"`
	FullName *string `json:"full_name" validate:"omitempty,max=100"`
	Email    *string `json:"email" validate:"omitempty,email"`
	RFIDCard *string `json:"rfid_card" validate:"omitempty,max=64"`
	Password *string `json:"password" validate:"omitempty,min=8"`
	Role     *string `json:"role" validate:"omitempty,oneof=ADMIN STAFF STUDENT"`
	IsActive *bool   `json:"is_active"`
}
