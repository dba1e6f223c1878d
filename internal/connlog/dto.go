package connlog

import (
	"time"

	"github.com/nbelhadj/maintenance-management/internal/core/types"
)

// LogResponse is the serialized connection log, carrying the account identity
// and the duration rendered as "H:MM:SS".
type LogResponse struct {
	ID             int64            `json:"id"`
	UserID         int64            `json:"user"`
	Username       string           `json:"username,omitempty"`
	UserFullName   string           `json:"user_full_name,omitempty"`
	ConnectedAt    time.Time        `json:"date_connexion"`
	LoginTime      types.TimeOfDay  `json:"heure_connexion"`
	DisconnectedAt *time.Time       `json:"date_deconnexion"`
	LogoutTime     *types.TimeOfDay `json:"heure_deconnexion"`
	Duration       *string          `json:"duree_connexion"`
	IPAddress      string           `json:"ip_address"`
	UserAgent      string           `json:"user_agent"`
}

func toResponse(row *Row) *LogResponse {
	resp := &LogResponse{
		ID:             row.ID,
		UserID:         row.UserID,
		Username:       row.Username,
		UserFullName:   row.FullName,
		ConnectedAt:    row.ConnectedAt,
		LoginTime:      row.LoginTime,
		DisconnectedAt: row.DisconnectedAt,
		LogoutTime:     row.LogoutTime,
		IPAddress:      row.IPAddress,
		UserAgent:      row.UserAgent,
	}
	if row.DurationSeconds != nil {
		formatted := types.FormatDuration(row.Duration())
		resp.Duration = &formatted
	}
	return resp
}
