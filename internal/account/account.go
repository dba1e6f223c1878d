package account

import (
	"errors"
	"time"

	"github.com/nbelhadj/maintenance-management/internal"
)

// Role values an account can carry. The role decides which person link
// (technician or admin) must be populated.
const (
	RoleTechnician = "technicien"
	RoleAdmin      = "admin"
)

// MinPasswordLength applies to user-chosen passwords, not generated ones.
const MinPasswordLength = 6

// Account is a login credential record bound to exactly one person.
type Account struct {
	ID           int64     `json:"id" gorm:"primaryKey"`
	Username     string    `json:"username" gorm:"uniqueIndex;not null"`
	PasswordHash string    `json:"-" gorm:"column:password_hash;not null"`
	Role         string    `json:"role" gorm:"not null"`
	TempPassword *string   `json:"-" gorm:"column:temp_password"`
	TechnicienID *int64    `json:"technicien" gorm:"column:technicien_id;uniqueIndex"`
	AdminID      *int64    `json:"admin" gorm:"column:admin_id;uniqueIndex"`
	CreatedAt    time.Time `json:"created_at" gorm:"column:created_at"`
}

func (Account) TableName() string {
	return "connex_users"
}

// ValidateRoleLink enforces the role/link invariant: a technician account
// must reference a technician record, an admin account an admin record, and
// never both.
func (a *Account) ValidateRoleLink() error {
	switch a.Role {
	case RoleTechnician:
		if a.TechnicienID == nil {
			return internal.NewValidationError("le champ 'technicien' est requis pour le rôle 'technicien'", internal.ErrCodeRoleLinkMismatch)
		}
		if a.AdminID != nil {
			return internal.NewValidationError("un compte technicien ne peut pas référencer un admin", internal.ErrCodeRoleLinkMismatch)
		}
	case RoleAdmin:
		if a.AdminID == nil {
			return internal.NewValidationError("le champ 'admin' est requis pour le rôle 'admin'", internal.ErrCodeRoleLinkMismatch)
		}
		if a.TechnicienID != nil {
			return internal.NewValidationError("un compte admin ne peut pas référencer un technicien", internal.ErrCodeRoleLinkMismatch)
		}
	default:
		return internal.NewValidationError("rôle invalide: doit être 'technicien' ou 'admin'", internal.ErrCodeValidationFailed)
	}
	return nil
}

// PersonInfo is the identity of the person an account belongs to, resolved
// through whichever link the role indicates.
type PersonInfo struct {
	FirstName string
	LastName  string
	Email     string
}

func (p PersonInfo) FullName() string {
	return p.LastName + " " + p.FirstName
}

// Repository is the data access contract for accounts. DeleteWithPerson
// removes the owning person in the same transaction; the account row goes
// away through the foreign-key cascade.
type Repository interface {
	Create(acc *Account) error
	GetByID(id int64) (*Account, error)
	GetByUsername(username string) (*Account, error)
	List() ([]*Account, error)
	Update(acc *Account) error
	DeleteWithPerson(acc *Account) error
	UsernameExists(username string) (bool, error)
	PersonInfo(acc *Account) (*PersonInfo, error)
}

var (
	ErrNotFound      = errors.New("account not found")
	ErrUsernameTaken = errors.New("username already taken")
)
