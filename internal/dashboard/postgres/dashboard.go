package postgres

import (
	"time"

	"gorm.io/gorm"

	"github.com/rahmadiangg/attendance-management/internal/attendance"
	"github.com/rahmadiangg/attendance-management/internal/dashboard"
	"github.com/rahmadiangg/attendance-management/internal/user"
)

// DashboardRepository implements dashboard.RepositoryAPI using GORM.
type DashboardRepository struct {
	db *gorm.DB
}

func NewDashboardRepository(db *gorm.DB) dashboard.RepositoryAPI {
	return &DashboardRepository{db: db}
}

func (r *DashboardRepository) CountActiveUsers() (int64, error) {
	var count int64
	err := r.db.Model(&user.User{}).Where("is_active = ?", true).Count(&count).Error
	return count, err
}

func (r *DashboardRepository) CountAttendanceSince(t time.Time) (int64, error) {
	var count int64
	err := r.db.Model(&attendance.Record{}).Where("scan_time >= ?", t).Count(&count).Error
	return count, err
}

func (r *DashboardRepository) CountByStatus(start, end time.Time) (dashboard.StatusCounts, error) {
	var rows []struct {
		Status string
		Total  int64
	}
	err := r.db.Model(&attendance.Record{}).
		Select("status, COUNT(*) AS total").
		Where("scan_time >= ? AND scan_time < ?", start, end).
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return dashboard.StatusCounts{}, err
	}

	var counts dashboard.StatusCounts
	for _, row := range rows {
		switch row.Status {
		case attendance.StatusPresent:
			counts.Present = row.Total
		case attendance.StatusLate:
			counts.Late = row.Total
		case attendance.StatusAbsent:
			counts.Absent = row.Total
		case attendance.StatusExcused:
			counts.Excused = row.Total
		}
	}
	return counts, nil
}
