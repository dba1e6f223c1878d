package postgres

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/nbelhadj/maintenance-management/internal/personnel"
)

// PersonnelRepository implements the personnel.Repository interface using GORM
type PersonnelRepository struct {
	db *gorm.DB
}

func NewPersonnelRepository(db *gorm.DB) personnel.Repository {
	return &PersonnelRepository{db: db}
}

func (r *PersonnelRepository) CreateTechnician(t *personnel.Technician) error {
	return wrapSaveErr(r.db.Create(t).Error)
}

func (r *PersonnelRepository) GetTechnician(id int64) (*personnel.Technician, error) {
	var t personnel.Technician
	if err := r.db.Where("id = ?", id).First(&t).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, personnel.ErrNotFound
		}
		return nil, err
	}
	return &t, nil
}

func (r *PersonnelRepository) ListTechnicians() ([]*personnel.Technician, error) {
	var techs []*personnel.Technician
	err := r.db.Order("created_at DESC").Find(&techs).Error
	return techs, err
}

func (r *PersonnelRepository) UpdateTechnician(t *personnel.Technician) error {
	return wrapSaveErr(r.db.Save(t).Error)
}

// DeleteTechnician removes the person and its account in one transaction,
// mirroring the FK cascade for databases where it is not enforced.
func (r *PersonnelRepository) DeleteTechnician(id int64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM connex_users WHERE technicien_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&personnel.Technician{}, id).Error
	})
}

func (r *PersonnelRepository) CreateAdmin(a *personnel.Admin) error {
	return wrapSaveErr(r.db.Create(a).Error)
}

func (r *PersonnelRepository) GetAdmin(id int64) (*personnel.Admin, error) {
	var a personnel.Admin
	if err := r.db.Where("id = ?", id).First(&a).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, personnel.ErrNotFound
		}
		return nil, err
	}
	return &a, nil
}

func (r *PersonnelRepository) ListAdmins() ([]*personnel.Admin, error) {
	var admins []*personnel.Admin
	err := r.db.Order("created_at DESC").Find(&admins).Error
	return admins, err
}

func (r *PersonnelRepository) UpdateAdmin(a *personnel.Admin) error {
	return wrapSaveErr(r.db.Save(a).Error)
}

func (r *PersonnelRepository) DeleteAdmin(id int64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM connex_users WHERE admin_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&personnel.Admin{}, id).Error
	})
}

func wrapSaveErr(err error) error {
	if err == nil {
		return nil
	}
	msg := err.Error()
	if strings.Contains(msg, "duplicate key value") || strings.Contains(msg, "UNIQUE constraint failed") {
		return personnel.ErrEmailTaken
	}
	return err
}
