package postgres

import (
	"time"

	"gorm.io/gorm"

	"github.com/nbelhadj/maintenance-management/internal/account"
	"github.com/nbelhadj/maintenance-management/internal/personnel"
	"github.com/nbelhadj/maintenance-management/internal/report"
	"github.com/nbelhadj/maintenance-management/internal/stats"
)

// StatsRepository implements the stats.Repository interface using GORM
type StatsRepository struct {
	db *gorm.DB
}

func NewStatsRepository(db *gorm.DB) stats.Repository {
	return &StatsRepository{db: db}
}

func (r *StatsRepository) CountTechnicians() (int64, error) {
	var n int64
	err := r.db.Model(&personnel.Technician{}).Count(&n).Error
	return n, err
}

func (r *StatsRepository) CountAdmins() (int64, error) {
	var n int64
	err := r.db.Model(&personnel.Admin{}).Count(&n).Error
	return n, err
}

func (r *StatsRepository) CountAccounts() (int64, error) {
	var n int64
	err := r.db.Model(&account.Account{}).Count(&n).Error
	return n, err
}

func (r *StatsRepository) FailureDatesBetween(from, to time.Time) ([]time.Time, error) {
	// Half-open range on the day after `to` keeps the comparison valid for
	// drivers that store dates as full timestamps.
	var rows []report.FailureReport
	err := r.db.
		Select("date_defaillance").
		Where("date_defaillance >= ? AND date_defaillance < ?", from, to.AddDate(0, 0, 1)).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	dates := make([]time.Time, len(rows))
	for i, row := range rows {
		dates[i] = row.FailureDate.Time
	}
	return dates, nil
}
