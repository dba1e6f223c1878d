package workshop

import "errors"

// Workshop ("atelier") owns equipment and the failure reports filed against it.
type Workshop struct {
	ID   int64  `json:"id" gorm:"primaryKey"`
	Name string `json:"nom" gorm:"column:nom;not null"`
}

func (Workshop) TableName() string {
	return "ateliers"
}

// Equipment belongs to exactly one workshop.
type Equipment struct {
	ID         int64  `json:"id" gorm:"primaryKey"`
	Name       string `json:"nom" gorm:"column:nom;not null"`
	WorkshopID int64  `json:"atelier" gorm:"column:atelier_id;not null"`
}

func (Equipment) TableName() string {
	return "equipements"
}

// Repository is the data access contract for workshops and their equipment.
// Deleting a workshop takes its equipment and failure reports with it.
type Repository interface {
	CreateWorkshop(ws *Workshop) error
	GetWorkshop(id int64) (*Workshop, error)
	ListWorkshops() ([]*Workshop, error)
	UpdateWorkshop(ws *Workshop) error
	DeleteWorkshop(id int64) error

	CreateEquipment(eq *Equipment) error
	GetEquipment(id int64) (*Equipment, error)
	ListEquipment() ([]*Equipment, error)
	UpdateEquipment(eq *Equipment) error
	DeleteEquipment(id int64) error
}

var (
	ErrWorkshopNotFound  = errors.New("workshop not found")
	ErrEquipmentNotFound = errors.New("equipment not found")
)
