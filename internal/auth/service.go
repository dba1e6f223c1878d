package auth

import (
	"log/slog"

	"github.com/nbelhadj/maintenance-management/internal"
	"github.com/nbelhadj/maintenance-management/internal/account"
	"github.com/nbelhadj/maintenance-management/internal/personnel"
)

// AccountDirectory is the slice of the account service the authenticator
// needs.
type AccountDirectory interface {
	GetAccount(id int64) (*account.Account, error)
	GetAccountByUsername(username string) (*account.Account, error)
	VerifyPassword(acc *account.Account, password string) bool
	FullName(acc *account.Account) string
	ChangePassword(accountID int64, newPassword string) error
}

// ConnectionRecorder journals logins and logouts. Failures here are logged
// and never surfaced to the caller.
type ConnectionRecorder interface {
	Record(userID int64, ip, userAgent string) error
	DisconnectLatest(userID int64) error
}

// PersonDirectory resolves the person record behind an account for the
// profile endpoint.
type PersonDirectory interface {
	GetTechnician(id int64) (*personnel.PersonResponse, error)
	GetAdmin(id int64) (*personnel.PersonResponse, error)
}

type Service struct {
	accounts AccountDirectory
	connlog  ConnectionRecorder
	people   PersonDirectory
	logger   *slog.Logger
}

func NewService(accounts AccountDirectory, connlog ConnectionRecorder, people PersonDirectory, logger *slog.Logger) *Service {
	return &Service{accounts: accounts, connlog: connlog, people: people, logger: logger}
}

// Login verifies the credentials and opens a connection-log entry. Unknown
// username and wrong password both return the same error so the response
// never reveals which factor failed.
func (s *Service) Login(dto LoginDTO, ip, userAgent string) (*LoginResponse, error) {
	acc, err := s.accounts.GetAccountByUsername(dto.Username)
	if err != nil {
		return nil, internal.ErrInvalidCredentials
	}
	if !s.accounts.VerifyPassword(acc, dto.Password) {
		return nil, internal.ErrInvalidCredentials
	}

	if err := s.connlog.Record(acc.ID, ip, userAgent); err != nil {
		s.logger.Error("failed to record connection", "account_id", acc.ID, "error", err)
	}
	s.logger.Info("user logged in", "account_id", acc.ID, "username", acc.Username)

	return &LoginResponse{
		Token: SessionToken(acc.ID),
		Role:  acc.Role,
		User: LoginUser{
			ID:       acc.ID,
			Username: acc.Username,
			FullName: s.accounts.FullName(acc),
		},
	}, nil
}

// Logout closes the latest open connection-log entry for the account. An
// account with no open entry logs out successfully anyway.
func (s *Service) Logout(accountID int64) {
	if err := s.connlog.DisconnectLatest(accountID); err != nil {
		s.logger.Error("failed to close connection log", "account_id", accountID, "error", err)
	}
}

// Authenticate resolves a session id against live accounts. Any failure
// yields nil identity, never an error.
func (s *Service) Authenticate(accountID int64) *User {
	acc, err := s.accounts.GetAccount(accountID)
	if err != nil {
		return nil
	}
	return &User{ID: acc.ID, Username: acc.Username, Role: acc.Role}
}

// Me builds the profile payload with the role-specific person record.
func (s *Service) Me(u *User) (*MeResponse, error) {
	acc, err := s.accounts.GetAccount(u.ID)
	if err != nil {
		return nil, internal.ErrInvalidSession
	}

	resp := &MeResponse{
		ID:       acc.ID,
		Username: acc.Username,
		Role:     acc.Role,
		FullName: s.accounts.FullName(acc),
	}

	switch {
	case acc.Role == account.RoleTechnician && acc.TechnicienID != nil:
		if person, err := s.people.GetTechnician(*acc.TechnicienID); err == nil {
			resp.Details = person
		}
	case acc.Role == account.RoleAdmin && acc.AdminID != nil:
		if person, err := s.people.GetAdmin(*acc.AdminID); err == nil {
			resp.Details = person
		}
	}
	return resp, nil
}

// ChangeOwnPassword lets the authenticated user set a new password.
func (s *Service) ChangeOwnPassword(u *User, dto ChangePasswordDTO) error {
	return s.accounts.ChangePassword(u.ID, dto.Password)
}
