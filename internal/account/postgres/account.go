package postgres

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/nbelhadj/maintenance-management/internal/account"
)

// AccountRepository implements the account.Repository interface using GORM
type AccountRepository struct {
	db *gorm.DB
}

func NewAccountRepository(db *gorm.DB) account.Repository {
	return &AccountRepository{db: db}
}

func (r *AccountRepository) Create(acc *account.Account) error {
	if err := r.db.Create(acc).Error; err != nil {
		if isUniqueViolation(err) {
			return account.ErrUsernameTaken
		}
		return err
	}
	return nil
}

func (r *AccountRepository) GetByID(id int64) (*account.Account, error) {
	var acc account.Account
	err := r.db.Where("id = ?", id).First(&acc).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, account.ErrNotFound
		}
		return nil, err
	}
	return &acc, nil
}

func (r *AccountRepository) GetByUsername(username string) (*account.Account, error) {
	var acc account.Account
	err := r.db.Where("username = ?", username).First(&acc).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, account.ErrNotFound
		}
		return nil, err
	}
	return &acc, nil
}

func (r *AccountRepository) List() ([]*account.Account, error) {
	var accounts []*account.Account
	err := r.db.Order("created_at DESC").Find(&accounts).Error
	return accounts, err
}

func (r *AccountRepository) Update(acc *account.Account) error {
	if err := r.db.Save(acc).Error; err != nil {
		if isUniqueViolation(err) {
			return account.ErrUsernameTaken
		}
		return err
	}
	return nil
}

// DeleteWithPerson removes the account and its owning person in a single
// transaction. The account row is deleted explicitly as well so the pair
// never survives half-deleted even when the FK cascade is not enforced
// (sqlite test databases).
func (r *AccountRepository) DeleteWithPerson(acc *account.Account) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&account.Account{}, acc.ID).Error; err != nil {
			return err
		}
		switch {
		case acc.TechnicienID != nil:
			return tx.Exec("DELETE FROM techniciens WHERE id = ?", *acc.TechnicienID).Error
		case acc.AdminID != nil:
			return tx.Exec("DELETE FROM admins WHERE id = ?", *acc.AdminID).Error
		}
		return nil
	})
}

func (r *AccountRepository) UsernameExists(username string) (bool, error) {
	var count int64
	err := r.db.Model(&account.Account{}).Where("username = ?", username).Count(&count).Error
	return count > 0, err
}

type personRow struct {
	Nom    string
	Prenom string
	Email  string
}

func (r *AccountRepository) PersonInfo(acc *account.Account) (*account.PersonInfo, error) {
	table, id := "", int64(0)
	switch {
	case acc.Role == account.RoleTechnician && acc.TechnicienID != nil:
		table, id = "techniciens", *acc.TechnicienID
	case acc.Role == account.RoleAdmin && acc.AdminID != nil:
		table, id = "admins", *acc.AdminID
	default:
		return nil, account.ErrNotFound
	}

	var row personRow
	err := r.db.Table(table).Select("nom", "prenom", "email").Where("id = ?", id).Take(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, account.ErrNotFound
		}
		return nil, err
	}
	return &account.PersonInfo{FirstName: row.Prenom, LastName: row.Nom, Email: row.Email}, nil
}

// isUniqueViolation matches both the postgres and sqlite unique-constraint
// error messages.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key value") || strings.Contains(msg, "UNIQUE constraint failed")
}
