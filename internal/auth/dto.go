package auth

import "github.com/rahmadiangg/attendance-management/internal/user"

// LoginDTO is the credentials payload.
type LoginDTO struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResult carries the issued token and the authenticated user. The
// password hash never serializes.
type LoginResult struct {
	Token string     `json:"token"`
	User  *user.User `json:"user"`
}
