package postgres

import (
	"gorm.io/gorm"

	"github.com/rahmadiangg/attendance-management/internal/schedule"
)

// ScheduleRepository implements schedule.RepositoryAPI using GORM.
type ScheduleRepository struct {
	db *gorm.DB
}

func NewScheduleRepository(db *gorm.DB) schedule.RepositoryAPI {
	return &ScheduleRepository{db: db}
}

func (r *ScheduleRepository) Create(s *schedule.Schedule) error {
	return r.db.Create(s).Error
}

func (r *ScheduleRepository) GetByID(id int64) (*schedule.Schedule, error) {
	var s schedule.Schedule
	err := r.db.Where("id = ?", id).First(&s).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, schedule.ErrScheduleNotFound
		}
		return nil, err
	}
	return &s, nil
}

func (r *ScheduleRepository) GetAll(filter schedule.ListFilter) ([]*schedule.Schedule, error) {
	var schedules []*schedule.Schedule
	q := r.db.Order("schedule_date ASC, start_time ASC")

	if filter.StartDate != nil && filter.EndDate != nil {
		q = q.Where("schedule_date >= ? AND schedule_date <= ?", *filter.StartDate, *filter.EndDate)
	} else if filter.Upcoming {
		q = q.Where("schedule_date >= CURRENT_DATE")
	}

	err := q.Find(&schedules).Error
	return schedules, err
}

func (r *ScheduleRepository) Update(s *schedule.Schedule) error {
	return r.db.Save(s).Error
}

func (r *ScheduleRepository) Delete(id int64) error {
	return r.db.Delete(&schedule.Schedule{}, id).Error
}
