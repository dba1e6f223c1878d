package postgres

import (
	"errors"

	"gorm.io/gorm"

	"github.com/nbelhadj/maintenance-management/internal/report"
)

// ReportRepository implements the report.Repository interface using GORM
type ReportRepository struct {
	db *gorm.DB
}

func NewReportRepository(db *gorm.DB) report.Repository {
	return &ReportRepository{db: db}
}

func (r *ReportRepository) Create(rep *report.FailureReport) error {
	return r.db.Create(rep).Error
}

func (r *ReportRepository) GetByID(id int64) (*report.FailureReport, error) {
	var rep report.FailureReport
	if err := r.db.Where("id = ?", id).First(&rep).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, report.ErrNotFound
		}
		return nil, err
	}
	return &rep, nil
}

func (r *ReportRepository) List() ([]*report.FailureReport, error) {
	var reports []*report.FailureReport
	err := r.db.Order("id").Find(&reports).Error
	return reports, err
}

func (r *ReportRepository) Update(rep *report.FailureReport) error {
	return r.db.Save(rep).Error
}

func (r *ReportRepository) Delete(id int64) error {
	return r.db.Delete(&report.FailureReport{}, id).Error
}
