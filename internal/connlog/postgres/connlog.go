package postgres

import (
	"errors"

	"gorm.io/gorm"

	"github.com/nbelhadj/maintenance-management/internal/connlog"
)

// ConnlogRepository implements the connlog.Repository interface using GORM
type ConnlogRepository struct {
	db *gorm.DB
}

func NewConnlogRepository(db *gorm.DB) connlog.Repository {
	return &ConnlogRepository{db: db}
}

func (r *ConnlogRepository) Create(l *connlog.ConnectionLog) error {
	return r.db.Create(l).Error
}

func (r *ConnlogRepository) GetByID(id int64) (*connlog.ConnectionLog, error) {
	var l connlog.ConnectionLog
	if err := r.db.Where("id = ?", id).First(&l).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, connlog.ErrNotFound
		}
		return nil, err
	}
	return &l, nil
}

// List joins each log with its account identity. The COALESCE chain resolves
// the display name from whichever person table the account links to.
func (r *ConnlogRepository) List() ([]*connlog.Row, error) {
	var rows []*connlog.Row
	err := r.db.Table("connexion_logs AS l").
		Select("l.*, u.username AS username, " +
			"COALESCE(t.nom || ' ' || t.prenom, a.nom || ' ' || a.prenom, u.username) AS full_name").
		Joins("JOIN connex_users u ON u.id = l.user_id").
		Joins("LEFT JOIN techniciens t ON t.id = u.technicien_id").
		Joins("LEFT JOIN admins a ON a.id = u.admin_id").
		Order("l.date_connexion DESC").
		Scan(&rows).Error
	return rows, err
}

func (r *ConnlogRepository) Update(l *connlog.ConnectionLog) error {
	return r.db.Save(l).Error
}

func (r *ConnlogRepository) Delete(id int64) error {
	return r.db.Delete(&connlog.ConnectionLog{}, id).Error
}

func (r *ConnlogRepository) LatestOpenForUser(userID int64) (*connlog.ConnectionLog, error) {
	var l connlog.ConnectionLog
	err := r.db.Where("user_id = ? AND date_deconnexion IS NULL", userID).
		Order("date_connexion DESC").
		First(&l).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, connlog.ErrNotFound
		}
		return nil, err
	}
	return &l, nil
}
