package stats

import (
	"log/slog"
	"time"

	"github.com/nbelhadj/maintenance-management/internal"
)

type Service struct {
	repo   Repository
	logger *slog.Logger

	now func() time.Time
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger, now: time.Now}
}

func (s *Service) UserStats() (*UserStats, error) {
	technicians, err := s.repo.CountTechnicians()
	if err != nil {
		return nil, internal.NewInternalError("failed to count technicians", err)
	}
	admins, err := s.repo.CountAdmins()
	if err != nil {
		return nil, internal.NewInternalError("failed to count admins", err)
	}
	accounts, err := s.repo.CountAccounts()
	if err != nil {
		return nil, internal.NewInternalError("failed to count accounts", err)
	}
	return &UserStats{
		TechnicianCount: technicians,
		AdminCount:      admins,
		UserCount:       accounts,
	}, nil
}

// AnomaliesTimeseries buckets failure reports by failure date. A week is 7
// daily buckets ending today (weekday labels), a month is 30 daily buckets
// (dd/mm labels), a year is 12 calendar months ending with the current one
// (mon yy labels). Empty buckets stay in the series so the chart axis is
// dense.
func (s *Service) AnomaliesTimeseries(timeframe string) (*Timeseries, error) {
	today := truncateDay(s.now())

	switch timeframe {
	case TimeframeWeek:
		return s.dailyBuckets(today, 7, "Mon")
	case TimeframeMonth:
		return s.dailyBuckets(today, 30, "02/01")
	case TimeframeYear:
		return s.monthlyBuckets(today, 12)
	default:
		return nil, internal.NewValidationError("timeframe must be week, month or year", internal.ErrCodeInvalidTimeframe)
	}
}

func (s *Service) dailyBuckets(today time.Time, days int, labelLayout string) (*Timeseries, error) {
	from := today.AddDate(0, 0, -(days - 1))
	dates, err := s.repo.FailureDatesBetween(from, today)
	if err != nil {
		return nil, internal.NewInternalError("failed to load failure dates", err)
	}

	counts := make(map[string]int64, days)
	for _, d := range dates {
		counts[truncateDay(d).Format("2006-01-02")]++
	}

	ts := &Timeseries{
		Labels: make([]string, 0, days),
		Data:   make([]int64, 0, days),
	}
	for i := 0; i < days; i++ {
		day := from.AddDate(0, 0, i)
		ts.Labels = append(ts.Labels, day.Format(labelLayout))
		ts.Data = append(ts.Data, counts[day.Format("2006-01-02")])
	}
	return ts, nil
}

func (s *Service) monthlyBuckets(today time.Time, months int) (*Timeseries, error) {
	firstOfMonth := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, today.Location())
	from := firstOfMonth.AddDate(0, -(months - 1), 0)
	dates, err := s.repo.FailureDatesBetween(from, today)
	if err != nil {
		return nil, internal.NewInternalError("failed to load failure dates", err)
	}

	counts := make(map[string]int64, months)
	for _, d := range dates {
		counts[d.Format("2006-01")]++
	}

	ts := &Timeseries{
		Labels: make([]string, 0, months),
		Data:   make([]int64, 0, months),
	}
	for i := 0; i < months; i++ {
		month := from.AddDate(0, i, 0)
		ts.Labels = append(ts.Labels, month.Format("Jan 06"))
		ts.Data = append(ts.Data, counts[month.Format("2006-01")])
	}
	return ts, nil
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
