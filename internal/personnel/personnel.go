package personnel

import (
	"errors"
	"time"

	"github.com/nbelhadj/maintenance-management/internal/core/types"
)

// Technician is a workshop technician employee record. Creating one always
// provisions a login account (see Service.CreateTechnician).
type Technician struct {
	ID        int64       `json:"id" gorm:"primaryKey"`
	LastName  string      `json:"nom" gorm:"column:nom;not null"`
	FirstName string      `json:"prenom" gorm:"column:prenom;not null"`
	Email     string      `json:"email" gorm:"uniqueIndex;not null"`
	BirthDate types.Date  `json:"date_naissance" gorm:"column:date_naissance"`
	HireDate  *types.Date `json:"date_embauche" gorm:"column:date_embauche"`
	CreatedAt time.Time   `json:"created_at" gorm:"column:created_at"`
}

func (Technician) TableName() string {
	return "techniciens"
}

// Admin is an administrator employee record, structurally identical to
// Technician but kept in its own table like the system it models.
type Admin struct {
	ID        int64       `json:"id" gorm:"primaryKey"`
	LastName  string      `json:"nom" gorm:"column:nom;not null"`
	FirstName string      `json:"prenom" gorm:"column:prenom;not null"`
	Email     string      `json:"email" gorm:"uniqueIndex;not null"`
	BirthDate types.Date  `json:"date_naissance" gorm:"column:date_naissance"`
	HireDate  *types.Date `json:"date_embauche" gorm:"column:date_embauche"`
	CreatedAt time.Time   `json:"created_at" gorm:"column:created_at"`
}

func (Admin) TableName() string {
	return "admins"
}

// Repository is the data access contract for person records. The Delete
// methods remove the linked account in the same transaction.
type Repository interface {
	CreateTechnician(t *Technician) error
	GetTechnician(id int64) (*Technician, error)
	ListTechnicians() ([]*Technician, error)
	UpdateTechnician(t *Technician) error
	DeleteTechnician(id int64) error

	CreateAdmin(a *Admin) error
	GetAdmin(id int64) (*Admin, error)
	ListAdmins() ([]*Admin, error)
	UpdateAdmin(a *Admin) error
	DeleteAdmin(id int64) error
}

var (
	ErrNotFound   = errors.New("person not found")
	ErrEmailTaken = errors.New("email already registered")
)
