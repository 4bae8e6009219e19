package user

import (
	"time"

	"github.com/rahmadiangg/attendance-management/internal"
)

const (
	RoleAdmin   = "ADMIN"
	RoleStaff   = "STAFF"
	RoleStudent = "STUDENT"
)

// User carries an RFID card and is the subject of attendance records. The
// password hash never leaves the service layer.
type User struct {
	ID           int64     `json:"id" gorm:"primaryKey"`
	Username     string    `json:"username" gorm:"uniqueIndex;not null"`
	FullName     string    `json:"full_name" gorm:"column:full_name"`
	Email        string    `json:"email" gorm:"uniqueIndex;not null"`
	RFIDCard     string    `json:"rfid_card" gorm:"column:rfid_card;uniqueIndex;not null"`
	PasswordHash string    `json:"-" gorm:"column:password_hash;not null"`
	Role         string    `json:"role" gorm:"default:STUDENT"`
	IsActive     bool      `json:"is_active" gorm:"column:is_active;default:true"`
	CreatedAt    time.Time `json:"created_at" gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time `json:"updated_at" gorm:"column:updated_at;autoUpdateTime"`
}

func (User) TableName() string {
	return "users"
}

// Summary is the projection embedded in attendance and roster responses.
type Summary struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	RFIDCard string `json:"rfid_card,omitempty"`
}

func (u *User) Summarize() Summary {
	return Summary{
		ID:       u.ID,
		Username: u.Username,
		Email:    u.Email,
		RFIDCard: u.RFIDCard,
	}
}

// RepositoryAPI defines data access for users.
type RepositoryAPI interface {
	Create(u *User) error
	GetByID(id int64) (*User, error)
	GetByRFIDCard(card string) (*User, error)
	GetByEmail(email string) (*User, error)
	GetAll() ([]*User, error)
	ExistsByIdentity(username, email, rfidCard string, excludeID int64) (bool, error)
	Update(u *User) error
	Delete(id int64) error
	GetActiveByRole(role string) ([]*User, error)
}

var (
	ErrUserNotFound  = internal.NewNotFoundError("User not found", internal.ErrCodeUserNotFound)
	ErrDuplicateUser = internal.NewConflictError("Username, email, or RFID card already registered", internal.ErrCodeDuplicateUser)
)
