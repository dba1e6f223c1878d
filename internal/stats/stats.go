package stats

import "time"

// UserStats counts the provisioned population. UserCount covers every login
// account regardless of role.
type UserStats struct {
	TechnicianCount int64 `json:"technicien_count"`
	AdminCount      int64 `json:"admin_count"`
	UserCount       int64 `json:"user_count"`
}

// Timeseries is the anomalies chart payload: parallel label and count
// arrays, one entry per bucket, empty buckets included.
type Timeseries struct {
	Labels []string `json:"labels"`
	Data   []int64  `json:"data"`
}

// Timeframe selects the bucketing of the anomalies timeseries.
const (
	TimeframeWeek  = "week"
	TimeframeMonth = "month"
	TimeframeYear  = "year"
)

type Repository interface {
	CountTechnicians() (int64, error)
	CountAdmins() (int64, error)
	CountAccounts() (int64, error)
	// FailureDatesBetween returns the failure date of every report whose
	// date falls in [from, to], inclusive.
	FailureDatesBetween(from, to time.Time) ([]time.Time, error)
}
