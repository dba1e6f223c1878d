package stock

import "errors"

// Item is a spare-part stock line, keyed by a unique part reference.
type Item struct {
	ID        int64  `gorm:"primaryKey" json:"id"`
	Reference string `gorm:"column:reference;uniqueIndex;not null" json:"reference"`
	Element   string `gorm:"column:element" json:"element"`
	Quantity  int64  `gorm:"column:quantite" json:"quantite"`
}

func (Item) TableName() string {
	return "stocks"
}

type Repository interface {
	Create(item *Item) error
	GetByID(id int64) (*Item, error)
	List() ([]*Item, error)
	Update(item *Item) error
	Delete(id int64) error
}

var (
	ErrNotFound       = errors.New("stock item not found")
	ErrReferenceTaken = errors.New("stock reference already in use")
)
