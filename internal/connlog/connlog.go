package connlog

import (
	"errors"
	"time"

	"github.com/nbelhadj/maintenance-management/internal/core/types"
)

// ConnectionLog records one login session of an account. Duration is derived
// from the two timestamps and recomputed whenever the logout side is set.
type ConnectionLog struct {
	ID              int64            `json:"id" gorm:"primaryKey"`
	UserID          int64            `json:"user" gorm:"column:user_id;not null"`
	ConnectedAt     time.Time        `json:"date_connexion" gorm:"column:date_connexion"`
	LoginTime       types.TimeOfDay  `json:"heure_connexion" gorm:"column:heure_connexion"`
	DisconnectedAt  *time.Time       `json:"date_deconnexion" gorm:"column:date_deconnexion"`
	LogoutTime      *types.TimeOfDay `json:"heure_deconnexion" gorm:"column:heure_deconnexion"`
	DurationSeconds *int64           `json:"-" gorm:"column:duree_secondes"`
	IPAddress       string           `json:"ip_address" gorm:"column:ip_address"`
	UserAgent       string           `json:"user_agent" gorm:"column:user_agent"`
}

func (ConnectionLog) TableName() string {
	return "connexion_logs"
}

// RecomputeDuration refreshes the stored duration from the timestamps. A
// logout before the login clamps to zero rather than going negative.
func (l *ConnectionLog) RecomputeDuration() {
	if l.DisconnectedAt == nil {
		l.DurationSeconds = nil
		return
	}
	d := l.DisconnectedAt.Sub(l.ConnectedAt)
	if d < 0 {
		d = 0
	}
	secs := int64(d.Seconds())
	l.DurationSeconds = &secs
}

// Disconnect closes the session at the given instant. Once closed, further
// calls are no-ops and the stored duration keeps its original value.
func (l *ConnectionLog) Disconnect(now time.Time) bool {
	if l.DisconnectedAt != nil {
		return false
	}
	l.DisconnectedAt = &now
	logout := types.TimeOfDay{Hour: now.Hour(), Minute: now.Minute()}
	l.LogoutTime = &logout
	l.RecomputeDuration()
	return true
}

// Duration returns the computed duration, zero when the session is open.
func (l *ConnectionLog) Duration() time.Duration {
	if l.DurationSeconds == nil {
		return 0
	}
	return time.Duration(*l.DurationSeconds) * time.Second
}

// Row is a log joined with the identity of its account, for list payloads.
type Row struct {
	ConnectionLog
	Username string `gorm:"column:username"`
	FullName string `gorm:"column:full_name"`
}

type Repository interface {
	Create(l *ConnectionLog) error
	GetByID(id int64) (*ConnectionLog, error)
	List() ([]*Row, error)
	Update(l *ConnectionLog) error
	Delete(id int64) error
	LatestOpenForUser(userID int64) (*ConnectionLog, error)
}

var ErrNotFound = errors.New("connection log not found")
