package connlog

import (
	"errors"
	"log/slog"
	"time"

	"github.com/nbelhadj/maintenance-management/internal"
	"github.com/nbelhadj/maintenance-management/internal/core/types"
)

type Service struct {
	repo   Repository
	logger *slog.Logger
	now    func() time.Time
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
		now:    time.Now,
	}
}

// Record opens a connection log for an account, called on every successful
// login.
func (s *Service) Record(userID int64, ip, userAgent string) error {
	now := s.now()
	log := &ConnectionLog{
		UserID:      userID,
		ConnectedAt: now,
		LoginTime:   types.TimeOfDay{Hour: now.Hour(), Minute: now.Minute()},
		IPAddress:   ip,
		UserAgent:   userAgent,
	}
	if err := s.repo.Create(log); err != nil {
		return internal.NewInternalError("failed to record connection", err)
	}
	s.logger.Info("connection recorded", "user_id", userID, "ip", ip)
	return nil
}

// Disconnect closes the log. Idempotent: a second call leaves the stored
// duration untouched.
func (s *Service) Disconnect(id int64) (*LogResponse, error) {
	log, err := s.repo.GetByID(id)
	if err != nil {
		return nil, s.wrapLookupErr(err)
	}

	if log.Disconnect(s.now()) {
		if err := s.repo.Update(log); err != nil {
			return nil, internal.NewInternalError("failed to close connection log", err)
		}
		s.logger.Info("connection closed", "log_id", id, "duration", log.Duration())
	}
	return toResponse(&Row{ConnectionLog: *log}), nil
}

// DisconnectLatest closes the most recent open session of an account, used by
// the logout endpoint. No open session is not an error.
func (s *Service) DisconnectLatest(userID int64) error {
	log, err := s.repo.LatestOpenForUser(userID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil
		}
		return internal.NewInternalError("failed to find open connection", err)
	}
	if log.Disconnect(s.now()) {
		if err := s.repo.Update(log); err != nil {
			return internal.NewInternalError("failed to close connection log", err)
		}
	}
	return nil
}

func (s *Service) List() ([]*LogResponse, error) {
	rows, err := s.repo.List()
	if err != nil {
		return nil, internal.NewInternalError("failed to list connection logs", err)
	}
	out := make([]*LogResponse, len(rows))
	for i, row := range rows {
		out[i] = toResponse(row)
	}
	return out, nil
}

func (s *Service) GetByID(id int64) (*LogResponse, error) {
	log, err := s.repo.GetByID(id)
	if err != nil {
		return nil, s.wrapLookupErr(err)
	}
	return toResponse(&Row{ConnectionLog: *log}), nil
}

func (s *Service) Delete(id int64) error {
	if _, err := s.repo.GetByID(id); err != nil {
		return s.wrapLookupErr(err)
	}
	if err := s.repo.Delete(id); err != nil {
		return internal.NewInternalError("failed to delete connection log", err)
	}
	return nil
}

func (s *Service) wrapLookupErr(err error) error {
	if errors.Is(err, ErrNotFound) {
		return internal.NewNotFoundError("connection log not found", internal.ErrCodeLogNotFound)
	}
	return internal.NewInternalError("failed to load connection log", err)
}
