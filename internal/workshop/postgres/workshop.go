package postgres

import (
	"errors"

	"gorm.io/gorm"

	"github.com/nbelhadj/maintenance-management/internal/workshop"
)

// WorkshopRepository implements the workshop.Repository interface using GORM
type WorkshopRepository struct {
	db *gorm.DB
}

func NewWorkshopRepository(db *gorm.DB) workshop.Repository {
	return &WorkshopRepository{db: db}
}

func (r *WorkshopRepository) CreateWorkshop(ws *workshop.Workshop) error {
	return r.db.Create(ws).Error
}

func (r *WorkshopRepository) GetWorkshop(id int64) (*workshop.Workshop, error) {
	var ws workshop.Workshop
	if err := r.db.Where("id = ?", id).First(&ws).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, workshop.ErrWorkshopNotFound
		}
		return nil, err
	}
	return &ws, nil
}

func (r *WorkshopRepository) ListWorkshops() ([]*workshop.Workshop, error) {
	var workshops []*workshop.Workshop
	err := r.db.Order("id").Find(&workshops).Error
	return workshops, err
}

func (r *WorkshopRepository) UpdateWorkshop(ws *workshop.Workshop) error {
	return r.db.Save(ws).Error
}

// DeleteWorkshop removes the workshop with its equipment and failure reports
// in one transaction, mirroring the FK cascade for databases where it is not
// enforced.
func (r *WorkshopRepository) DeleteWorkshop(id int64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM formulaires WHERE atelier_id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM equipements WHERE atelier_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&workshop.Workshop{}, id).Error
	})
}

func (r *WorkshopRepository) CreateEquipment(eq *workshop.Equipment) error {
	return r.db.Create(eq).Error
}

func (r *WorkshopRepository) GetEquipment(id int64) (*workshop.Equipment, error) {
	var eq workshop.Equipment
	if err := r.db.Where("id = ?", id).First(&eq).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, workshop.ErrEquipmentNotFound
		}
		return nil, err
	}
	return &eq, nil
}

func (r *WorkshopRepository) ListEquipment() ([]*workshop.Equipment, error) {
	var equipment []*workshop.Equipment
	err := r.db.Order("id").Find(&equipment).Error
	return equipment, err
}

func (r *WorkshopRepository) UpdateEquipment(eq *workshop.Equipment) error {
	return r.db.Save(eq).Error
}

func (r *WorkshopRepository) DeleteEquipment(id int64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM formulaires WHERE equipement_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&workshop.Equipment{}, id).Error
	})
}
