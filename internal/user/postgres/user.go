package postgres

import (
	"gorm.io/gorm"

	"github.com/rahmadiangg/attendance-management/internal/user"
)

// UserRepository implements user.RepositoryAPI using GORM.
type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) user.RepositoryAPI {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(u *user.User) error {
	return r.db.Create(u).Error
}

func (r *UserRepository) GetByID(id int64) (*user.User, error) {
	var u user.User
	err := r.db.Where("id = ?", id).First(&u).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, user.ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) GetByRFIDCard(card string) (*user.User, error) {
	var u user.User
	err := r.db.Where("rfid_card = ?", card).First(&u).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, user.ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) GetByEmail(email string) (*user.User, error) {
	var u user.User
	err := r.db.Where("email = ?", email).First(&u).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, user.ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) GetAll() ([]*user.User, error) {
	var users []*user.User
	err := r.db.Order("username ASC").Find(&users).Error
	return users, err
}

// ExistsByIdentity reports whether another user already claims one of the
// unique identity fields. excludeID skips the user being updated.
func (r *UserRepository) ExistsByIdentity(username, email, rfidCard string, excludeID int64) (bool, error) {
	var count int64
	q := r.db.Model(&user.User{}).
		Where("username = ? OR email = ? OR rfid_card = ?", username, email, rfidCard)
	if excludeID > 0 {
		q = q.Where("id <> ?", excludeID)
	}
	err := q.Count(&count).Error
	return count > 0, err
}

func (r *UserRepository) Update(u *user.User) error {
	return r.db.Save(u).Error
}

func (r *UserRepository) Delete(id int64) error {
	return r.db.Delete(&user.User{}, id).Error
}

func (r *UserRepository) GetActiveByRole(role string) ([]*user.User, error) {
	var users []*user.User
	err := r.db.Where("role = ? AND is_active = ?", role, true).Find(&users).Error
	return users, err
}
