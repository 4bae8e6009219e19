package postgres

import (
	"time"

	"gorm.io/gorm"

	"github.com/rahmadiangg/attendance-management/internal/assignment"
	"github.com/rahmadiangg/attendance-management/internal/user"
)

// AssignmentRepository implements assignment.RepositoryAPI using GORM.
type AssignmentRepository struct {
	db *gorm.DB
}

func NewAssignmentRepository(db *gorm.DB) assignment.RepositoryAPI {
	return &AssignmentRepository{db: db}
}

func (r *AssignmentRepository) Create(a *assignment.Assignment) error {
	return r.db.Create(a).Error
}

func (r *AssignmentRepository) GetByID(id int64) (*assignment.Assignment, error) {
	var a assignment.Assignment
	err := r.db.Where("id = ?", id).First(&a).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, assignment.ErrAssignmentNotFound
		}
		return nil, err
	}
	return &a, nil
}

func (r *AssignmentRepository) Exists(userID, scheduleID int64) (bool, error) {
	var count int64
	err := r.db.Model(&assignment.Assignment{}).
		Where("user_id = ? AND schedule_id = ?", userID, scheduleID).
		Count(&count).Error
	return count > 0, err
}

func (r *AssignmentRepository) GetBySchedule(scheduleID int64) ([]*assignment.Assignment, error) {
	var assignments []*assignment.Assignment
	err := r.db.Preload("User").
		Where("schedule_id = ?", scheduleID).
		Order("id ASC").
		Find(&assignments).Error
	return assignments, err
}

func (r *AssignmentRepository) GetByUser(userID int64) ([]*assignment.Assignment, error) {
	var assignments []*assignment.Assignment
	err := r.db.Preload("Schedule").
		Where("user_id = ?", userID).
		Order("id ASC").
		Find(&assignments).Error
	return assignments, err
}

// GetActiveForUserInWindow joins against schedules so the scan engine gets
// only active schedules dated inside the caller's day window. Ordering by
// start time then id keeps multi-assignment selection deterministic.
func (r *AssignmentRepository) GetActiveForUserInWindow(userID int64, dayStart, dayEnd time.Time) ([]*assignment.Assignment, error) {
	var assignments []*assignment.Assignment
	err := r.db.Preload("Schedule").
		Joins("JOIN schedules ON schedules.id = schedule_users.schedule_id").
		Where("schedule_users.user_id = ?", userID).
		Where("schedules.is_active = ?", true).
		Where("schedules.schedule_date >= ? AND schedules.schedule_date <= ?", dayStart, dayEnd).
		Order("schedules.start_time ASC, schedule_users.id ASC").
		Find(&assignments).Error
	return assignments, err
}

func (r *AssignmentRepository) Delete(id int64) error {
	return r.db.Delete(&assignment.Assignment{}, id).Error
}

// AvailableUsers returns users not yet assigned to the schedule whose
// username, email, or RFID card matches the search term.
func (r *AssignmentRepository) AvailableUsers(scheduleID int64, search string) ([]*user.User, error) {
	var users []*user.User
	assigned := r.db.Model(&assignment.Assignment{}).
		Select("user_id").
		Where("schedule_id = ?", scheduleID)

	q := r.db.Where("id NOT IN (?)", assigned)
	if search != "" {
		pattern := "%" + search + "%"
		q = q.Where("username LIKE ? OR email LIKE ? OR rfid_card LIKE ?", pattern, pattern, pattern)
	}

	err := q.Order("username ASC").Find(&users).Error
	return users, err
}
