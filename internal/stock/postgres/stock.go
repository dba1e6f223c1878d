package postgres

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/nbelhadj/maintenance-management/internal/stock"
)

// StockRepository implements the stock.Repository interface using GORM
type StockRepository struct {
	db *gorm.DB
}

func NewStockRepository(db *gorm.DB) stock.Repository {
	return &StockRepository{db: db}
}

func (r *StockRepository) Create(item *stock.Item) error {
	if err := r.db.Create(item).Error; err != nil {
		if isUniqueViolation(err) {
			return stock.ErrReferenceTaken
		}
		return err
	}
	return nil
}

func (r *StockRepository) GetByID(id int64) (*stock.Item, error) {
	var item stock.Item
	if err := r.db.Where("id = ?", id).First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, stock.ErrNotFound
		}
		return nil, err
	}
	return &item, nil
}

func (r *StockRepository) List() ([]*stock.Item, error) {
	var items []*stock.Item
	err := r.db.Order("id").Find(&items).Error
	return items, err
}

func (r *StockRepository) Update(item *stock.Item) error {
	if err := r.db.Save(item).Error; err != nil {
		if isUniqueViolation(err) {
			return stock.ErrReferenceTaken
		}
		return err
	}
	return nil
}

func (r *StockRepository) Delete(id int64) error {
	return r.db.Delete(&stock.Item{}, id).Error
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key value") ||
		strings.Contains(msg, "UNIQUE constraint failed")
}
