package personnel

import (
	"errors"
	"log/slog"

	"github.com/nbelhadj/maintenance-management/internal"
	"github.com/nbelhadj/maintenance-management/internal/account"
)

// AccountProvisioner creates the login account that goes with every new
// person record. Implemented by the account service; a stub can be injected
// when provisioning is not wanted.
type AccountProvisioner interface {
	ProvisionTechnician(personID int64, firstName, lastName, email string) (*account.ProvisionedCredentials, error)
	ProvisionAdmin(personID int64, firstName, lastName, email string) (*account.ProvisionedCredentials, error)
}

// Service handles person CRUD and the provisioning orchestration that hangs
// off person creation.
type Service struct {
	repo        Repository
	provisioner AccountProvisioner
	logger      *slog.Logger
}

func NewService(repo Repository, provisioner AccountProvisioner, logger *slog.Logger) *Service {
	return &Service{
		repo:        repo,
		provisioner: provisioner,
		logger:      logger,
	}
}

// CreateTechnician persists the record, then provisions its account. The
// provisioning step is an explicit orchestration here, not a storage hook, so
// callers that need a bare person can go through the repository. If
// provisioning fails the person is removed again: a person without an account
// would violate the 1:1 invariant.
func (s *Service) CreateTechnician(dto PersonDTO) (*PersonResponse, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	tech := &Technician{
		LastName:  dto.LastName,
		FirstName: dto.FirstName,
		Email:     dto.Email,
		BirthDate: dto.BirthDate,
		HireDate:  dto.HireDate,
	}
	if err := s.repo.CreateTechnician(tech); err != nil {
		return nil, s.wrapCreateErr(err)
	}

	creds, err := s.provisioner.ProvisionTechnician(tech.ID, tech.FirstName, tech.LastName, tech.Email)
	if err != nil {
		s.logger.Error("account provisioning failed, removing technician", "technician_id", tech.ID, "error", err)
		if delErr := s.repo.DeleteTechnician(tech.ID); delErr != nil {
			s.logger.Error("failed to remove technician after provisioning failure", "technician_id", tech.ID, "error", delErr)
		}
		return nil, err
	}

	s.logger.Info("technician created", "technician_id", tech.ID, "username", creds.Username)
	return technicianResponse(tech, creds), nil
}

func (s *Service) GetTechnician(id int64) (*PersonResponse, error) {
	tech, err := s.repo.GetTechnician(id)
	if err != nil {
		return nil, s.wrapLookupErr(err)
	}
	return technicianResponse(tech, nil), nil
}

func (s *Service) ListTechnicians() ([]*PersonResponse, error) {
	techs, err := s.repo.ListTechnicians()
	if err != nil {
		return nil, internal.NewInternalError("failed to list technicians", err)
	}
	out := make([]*PersonResponse, len(techs))
	for i, t := range techs {
		out[i] = technicianResponse(t, nil)
	}
	return out, nil
}

func (s *Service) UpdateTechnician(id int64, dto PersonDTO) (*PersonResponse, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}
	tech, err := s.repo.GetTechnician(id)
	if err != nil {
		return nil, s.wrapLookupErr(err)
	}

	tech.LastName = dto.LastName
	tech.FirstName = dto.FirstName
	tech.Email = dto.Email
	tech.BirthDate = dto.BirthDate
	tech.HireDate = dto.HireDate
	if err := s.repo.UpdateTechnician(tech); err != nil {
		return nil, s.wrapCreateErr(err)
	}
	return technicianResponse(tech, nil), nil
}

// DeleteTechnician removes the person and its login account together.
func (s *Service) DeleteTechnician(id int64) error {
	if _, err := s.repo.GetTechnician(id); err != nil {
		return s.wrapLookupErr(err)
	}
	if err := s.repo.DeleteTechnician(id); err != nil {
		return internal.NewInternalError("failed to delete technician", err)
	}
	s.logger.Info("technician deleted", "technician_id", id)
	return nil
}

// CreateAdmin mirrors CreateTechnician for administrator records.
func (s *Service) CreateAdmin(dto PersonDTO) (*PersonResponse, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	adm := &Admin{
		LastName:  dto.LastName,
		FirstName: dto.FirstName,
		Email:     dto.Email,
		BirthDate: dto.BirthDate,
		HireDate:  dto.HireDate,
	}
	if err := s.repo.CreateAdmin(adm); err != nil {
		return nil, s.wrapCreateErr(err)
	}

	creds, err := s.provisioner.ProvisionAdmin(adm.ID, adm.FirstName, adm.LastName, adm.Email)
	if err != nil {
		s.logger.Error("account provisioning failed, removing admin", "admin_id", adm.ID, "error", err)
		if delErr := s.repo.DeleteAdmin(adm.ID); delErr != nil {
			s.logger.Error("failed to remove admin after provisioning failure", "admin_id", adm.ID, "error", delErr)
		}
		return nil, err
	}

	s.logger.Info("admin created", "admin_id", adm.ID, "username", creds.Username)
	return adminResponse(adm, creds), nil
}

func (s *Service) GetAdmin(id int64) (*PersonResponse, error) {
	adm, err := s.repo.GetAdmin(id)
	if err != nil {
		return nil, s.wrapLookupErr(err)
	}
	return adminResponse(adm, nil), nil
}

func (s *Service) ListAdmins() ([]*PersonResponse, error) {
	admins, err := s.repo.ListAdmins()
	if err != nil {
		return nil, internal.NewInternalError("failed to list admins", err)
	}
	out := make([]*PersonResponse, len(admins))
	for i, a := range admins {
		out[i] = adminResponse(a, nil)
	}
	return out, nil
}

func (s *Service) UpdateAdmin(id int64, dto PersonDTO) (*PersonResponse, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}
	adm, err := s.repo.GetAdmin(id)
	if err != nil {
		return nil, s.wrapLookupErr(err)
	}

	adm.LastName = dto.LastName
	adm.FirstName = dto.FirstName
	adm.Email = dto.Email
	adm.BirthDate = dto.BirthDate
	adm.HireDate = dto.HireDate
	if err := s.repo.UpdateAdmin(adm); err != nil {
		return nil, s.wrapCreateErr(err)
	}
	return adminResponse(adm, nil), nil
}

func (s *Service) DeleteAdmin(id int64) error {
	if _, err := s.repo.GetAdmin(id); err != nil {
		return s.wrapLookupErr(err)
	}
	if err := s.repo.DeleteAdmin(id); err != nil {
		return internal.NewInternalError("failed to delete admin", err)
	}
	s.logger.Info("admin deleted", "admin_id", id)
	return nil
}

func (s *Service) wrapLookupErr(err error) error {
	if errors.Is(err, ErrNotFound) {
		return internal.NewNotFoundError("person not found", internal.ErrCodePersonNotFound)
	}
	return internal.NewInternalError("failed to load person", err)
}

func (s *Service) wrapCreateErr(err error) error {
	if errors.Is(err, ErrEmailTaken) {
		return internal.NewConflictError("email already registered", internal.ErrCodeEmailTaken)
	}
	return internal.NewInternalError("failed to save person", err)
}
