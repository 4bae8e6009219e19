package notification

import (
	"time"

	"github.com/rahmadiangg/attendance-management/internal"
)

const (
	TypeInfo    = "INFO"
	TypeWarning = "WARNING"
	TypeAlert   = "ALERT"

	PriorityLow    = "LOW"
	PriorityMedium = "MEDIUM"
	PriorityHigh   = "HIGH"
)

// Notification is a per-user inbox entry.
type Notification struct {
	ID        int64     `json:"id" gorm:"primaryKey"`
	UserID    int64     `json:"user_id" gorm:"column:user_id;not null;index"`
	Title     string    `json:"title" gorm:"not null"`
	Message   string    `json:"message" gorm:"not null"`
	Type      string    `json:"type" gorm:"default:INFO"`
	Priority  string    `json:"priority" gorm:"default:LOW"`
	IsRead    bool      `json:"is_read" gorm:"column:is_read;default:false"`
	CreatedAt time.Time `json:"created_at" gorm:"column:created_at;autoCreateTime"`
}

func (Notification) TableName() string {
	return "notifications"
}

type RepositoryAPI interface {
	Create(n *Notification) error
	GetByID(id int64) (*Notification, error)
	// GetByUser returns the user's notifications newest-first.
	GetByUser(userID int64) ([]*Notification, error)
	Update(n *Notification) error
}

var ErrNotificationNotFound = internal.NewNotFoundError("Notification not found", internal.ErrCodeNotificationNotFound)
