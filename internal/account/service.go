package account

import (
	"errors"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"github.com/nbelhadj/maintenance-management/internal"
	"github.com/nbelhadj/maintenance-management/internal/notifier"
)

// provisioning retries regenerating the username suffix when a concurrent
// insert wins the unique-constraint race
const maxProvisionAttempts = 5

// Service owns account provisioning, password management and account CRUD.
type Service struct {
	repo       Repository
	mailer     notifier.Mailer
	logger     *slog.Logger
	bcryptCost int
}

func NewService(repo Repository, mailer notifier.Mailer, logger *slog.Logger, bcryptCost int) *Service {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &Service{
		repo:       repo,
		mailer:     mailer,
		logger:     logger,
		bcryptCost: bcryptCost,
	}
}

// ProvisionTechnician creates the login account for a freshly created
// technician record and emails the credentials.
func (s *Service) ProvisionTechnician(personID int64, firstName, lastName, email string) (*ProvisionedCredentials, error) {
	return s.provision(RoleTechnician, personID, firstName, lastName, email)
}

// ProvisionAdmin creates the login account for a freshly created admin record
// and emails the credentials.
func (s *Service) ProvisionAdmin(personID int64, firstName, lastName, email string) (*ProvisionedCredentials, error) {
	return s.provision(RoleAdmin, personID, firstName, lastName, email)
}

func (s *Service) provision(role string, personID int64, firstName, lastName, email string) (*ProvisionedCredentials, error) {
	password, err := GenerateTempPassword(TempPasswordLength)
	if err != nil {
		return nil, internal.NewInternalError("failed to generate temporary password", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return nil, internal.NewInternalError("failed to hash password", err)
	}

	var acc *Account
	for attempt := 0; attempt < maxProvisionAttempts; attempt++ {
		username, err := GenerateUsername(firstName, lastName, s.repo.UsernameExists)
		if err != nil {
			return nil, internal.NewInternalError("failed to generate username", err)
		}

		candidate := &Account{
			Username:     username,
			PasswordHash: string(hash),
			Role:         role,
			TempPassword: &password,
		}
		if role == RoleAdmin {
			candidate.AdminID = &personID
		} else {
			candidate.TechnicienID = &personID
		}

		err = s.repo.Create(candidate)
		if err == nil {
			acc = candidate
			break
		}
		if errors.Is(err, ErrUsernameTaken) {
			s.logger.Warn("username conflict during provisioning, retrying", "username", username, "attempt", attempt+1)
			continue
		}
		return nil, internal.NewInternalError("failed to create account", err)
	}
	if acc == nil {
		return nil, internal.NewInternalError("failed to provision account: too many username conflicts", nil)
	}

	// Email delivery is best effort and never rolls the account back.
	sent := s.mailer.SendCredentials(email, firstName, lastName, acc.Username, password, role)
	if !sent {
		s.logger.Warn("credentials email not delivered", "account_id", acc.ID, "email", email)
	}

	s.logger.Info("account provisioned", "account_id", acc.ID, "username", acc.Username, "role", role)

	return &ProvisionedCredentials{
		AccountID:    acc.ID,
		Username:     acc.Username,
		TempPassword: password,
		EmailSent:    sent,
	}, nil
}

// ChangePassword replaces the stored hash after validating the new password.
// The one-time temp password is cleared: it no longer matches anything.
func (s *Service) ChangePassword(accountID int64, newPassword string) error {
	if len(newPassword) < MinPasswordLength {
		return internal.NewValidationError("password must be at least 6 characters", internal.ErrCodePasswordTooShort)
	}

	acc, err := s.repo.GetByID(accountID)
	if err != nil {
		return s.wrapLookupErr(err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), s.bcryptCost)
	if err != nil {
		return internal.NewInternalError("failed to hash password", err)
	}

	acc.PasswordHash = string(hash)
	acc.TempPassword = nil
	if err := s.repo.Update(acc); err != nil {
		return internal.NewInternalError("failed to update password", err)
	}

	s.logger.Info("password changed", "account_id", accountID)
	return nil
}

// ResetPassword generates a fresh 10-character password, persists it and
// mails it to the linked person. The destination email is resolved before
// anything is written; once the password is stored, a failed email only
// softens the result, it does not roll the change back.
func (s *Service) ResetPassword(accountID int64) (*ResetPasswordResponse, error) {
	acc, err := s.repo.GetByID(accountID)
	if err != nil {
		return nil, s.wrapLookupErr(err)
	}

	person, err := s.repo.PersonInfo(acc)
	if err != nil || person.Email == "" {
		return nil, internal.NewValidationError("no email address linked to this account", internal.ErrCodeMissingEmail)
	}

	password, err := GenerateTempPassword(ResetPasswordLength)
	if err != nil {
		return nil, internal.NewInternalError("failed to generate password", err)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return nil, internal.NewInternalError("failed to hash password", err)
	}

	acc.PasswordHash = string(hash)
	acc.TempPassword = &password
	if err := s.repo.Update(acc); err != nil {
		return nil, internal.NewInternalError("failed to store new password", err)
	}

	sent := s.mailer.SendCredentials(person.Email, person.FirstName, person.LastName, acc.Username, password, acc.Role)

	resp := &ResetPasswordResponse{EmailSent: sent}
	if sent {
		resp.Message = "mot de passe réinitialisé, identifiants envoyés par email"
	} else {
		resp.Message = "mot de passe réinitialisé, mais l'email n'a pas pu être envoyé"
	}

	s.logger.Info("password reset", "account_id", accountID, "email_sent", sent)
	return resp, nil
}

// VerifyPassword compares a plaintext password against the stored hash.
func (s *Service) VerifyPassword(acc *Account, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(acc.PasswordHash), []byte(password)) == nil
}

// ----------------- CRUD -----------------

func (s *Service) List() ([]*AccountResponse, error) {
	accounts, err := s.repo.List()
	if err != nil {
		return nil, internal.NewInternalError("failed to list accounts", err)
	}
	out := make([]*AccountResponse, len(accounts))
	for i, acc := range accounts {
		out[i] = s.toResponse(acc)
	}
	return out, nil
}

func (s *Service) GetByID(id int64) (*AccountResponse, error) {
	acc, err := s.repo.GetByID(id)
	if err != nil {
		return nil, s.wrapLookupErr(err)
	}
	return s.toResponse(acc), nil
}

// GetAccount returns the raw record, for the auth layer.
func (s *Service) GetAccount(id int64) (*Account, error) {
	return s.repo.GetByID(id)
}

// GetAccountByUsername returns the raw record, for the auth layer.
func (s *Service) GetAccountByUsername(username string) (*Account, error) {
	return s.repo.GetByUsername(username)
}

// FullName resolves the linked person's display name, falling back to the
// username for a dangling link.
func (s *Service) FullName(acc *Account) string {
	person, err := s.repo.PersonInfo(acc)
	if err != nil {
		return acc.Username
	}
	return person.FullName()
}

func (s *Service) Create(dto CreateAccountDTO) (*AccountResponse, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(dto.Password), s.bcryptCost)
	if err != nil {
		return nil, internal.NewInternalError("failed to hash password", err)
	}

	acc := &Account{
		Username:     dto.Username,
		PasswordHash: string(hash),
		Role:         dto.Role,
		TechnicienID: dto.TechnicienID,
		AdminID:      dto.AdminID,
	}
	if err := acc.ValidateRoleLink(); err != nil {
		return nil, err
	}

	if err := s.repo.Create(acc); err != nil {
		if errors.Is(err, ErrUsernameTaken) {
			return nil, internal.NewConflictError("username already taken", internal.ErrCodeUsernameTaken)
		}
		return nil, internal.NewInternalError("failed to create account", err)
	}
	return s.toResponse(acc), nil
}

func (s *Service) Update(id int64, dto UpdateAccountDTO) (*AccountResponse, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	acc, err := s.repo.GetByID(id)
	if err != nil {
		return nil, s.wrapLookupErr(err)
	}

	acc.Username = dto.Username
	acc.Role = dto.Role
	acc.TechnicienID = dto.TechnicienID
	acc.AdminID = dto.AdminID
	if err := acc.ValidateRoleLink(); err != nil {
		return nil, err
	}

	if err := s.repo.Update(acc); err != nil {
		if errors.Is(err, ErrUsernameTaken) {
			return nil, internal.NewConflictError("username already taken", internal.ErrCodeUsernameTaken)
		}
		return nil, internal.NewInternalError("failed to update account", err)
	}
	return s.toResponse(acc), nil
}

// Delete removes the account together with its owning person. The person is
// the root of the pair: deleting it cascades back onto the account row, so
// the whole removal is a single transaction and never leaves an orphan.
func (s *Service) Delete(id int64) error {
	acc, err := s.repo.GetByID(id)
	if err != nil {
		return s.wrapLookupErr(err)
	}
	if err := s.repo.DeleteWithPerson(acc); err != nil {
		return internal.NewInternalError("failed to delete account", err)
	}
	s.logger.Info("account deleted with owning person", "account_id", id, "role", acc.Role)
	return nil
}

func (s *Service) toResponse(acc *Account) *AccountResponse {
	return &AccountResponse{
		ID:           acc.ID,
		Username:     acc.Username,
		Role:         acc.Role,
		FullName:     s.FullName(acc),
		TechnicienID: acc.TechnicienID,
		AdminID:      acc.AdminID,
		CreatedAt:    acc.CreatedAt,
	}
}

func (s *Service) wrapLookupErr(err error) error {
	if errors.Is(err, ErrNotFound) {
		return internal.NewNotFoundError("account not found", internal.ErrCodeAccountNotFound)
	}
	return internal.NewInternalError("failed to load account", err)
}
