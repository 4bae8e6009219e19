package postgres

import (
	"gorm.io/gorm"

	"github.com/rahmadiangg/attendance-management/internal/notification"
)

// NotificationRepository implements notification.RepositoryAPI using GORM.
type NotificationRepository struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) notification.RepositoryAPI {
	return &NotificationRepository{db: db}
}

func (r *NotificationRepository) Create(n *notification.Notification) error {
	return r.db.Create(n).Error
}

func (r *NotificationRepository) GetByID(id int64) (*notification.Notification, error) {
	var n notification.Notification
	err := r.db.Where("id = ?", id).First(&n).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, notification.ErrNotificationNotFound
		}
		return nil, err
	}
	return &n, nil
}

func (r *NotificationRepository) GetByUser(userID int64) ([]*notification.Notification, error) {
	var notifications []*notification.Notification
	err := r.db.
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&notifications).Error
	return notifications, err
}

func (r *NotificationRepository) Update(n *notification.Notification) error {
	return r.db.Save(n).Error
}
