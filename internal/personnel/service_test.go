package personnel_test

import (
	"log/slog"
	"os"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/nbelhadj/maintenance-management/internal"
	"github.com/nbelhadj/maintenance-management/internal/account"
	"github.com/nbelhadj/maintenance-management/internal/core/types"
	"github.com/nbelhadj/maintenance-management/internal/personnel"
)

func TestPersonnel(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Personnel Suite")
}

type mockPersonnelRepository struct {
	technicians map[int64]*personnel.Technician
	admins      map[int64]*personnel.Admin
	nextID      int64
}

func newMockPersonnelRepository() *mockPersonnelRepository {
	return &mockPersonnelRepository{
		technicians: make(map[int64]*personnel.Technician),
		admins:      make(map[int64]*personnel.Admin),
		nextID:      1,
	}
}

func (m *mockPersonnelRepository) CreateTechnician(t *personnel.Technician) error {
	t.ID = m.nextID
	m.nextID++
	m.technicians[t.ID] = t
	return nil
}

func (m *mockPersonnelRepository) GetTechnician(id int64) (*personnel.Technician, error) {
	t, ok := m.technicians[id]
	if !ok {
		return nil, personnel.ErrNotFound
	}
	return t, nil
}

func (m *mockPersonnelRepository) ListTechnicians() ([]*personnel.Technician, error) {
	out := make([]*personnel.Technician, 0, len(m.technicians))
	for _, t := range m.technicians {
		out = append(out, t)
	}
	return out, nil
}

func (m *mockPersonnelRepository) UpdateTechnician(t *personnel.Technician) error {
	m.technicians[t.ID] = t
	return nil
}

func (m *mockPersonnelRepository) DeleteTechnician(id int64) error {
	delete(m.technicians, id)
	return nil
}

func (m *mockPersonnelRepository) CreateAdmin(a *personnel.Admin) error {
	a.ID = m.nextID
	m.nextID++
	m.admins[a.ID] = a
	return nil
}

func (m *mockPersonnelRepository) GetAdmin(id int64) (*personnel.Admin, error) {
	a, ok := m.admins[id]
	if !ok {
		return nil, personnel.ErrNotFound
	}
	return a, nil
}

func (m *mockPersonnelRepository) ListAdmins() ([]*personnel.Admin, error) {
	out := make([]*personnel.Admin, 0, len(m.admins))
	for _, a := range m.admins {
		out = append(out, a)
	}
	return out, nil
}

func (m *mockPersonnelRepository) UpdateAdmin(a *personnel.Admin) error {
	m.admins[a.ID] = a
	return nil
}

func (m *mockPersonnelRepository) DeleteAdmin(id int64) error {
	delete(m.admins, id)
	return nil
}

type mockProvisioner struct {
	calls int
	fail  bool
}

func (m *mockProvisioner) provision(personID int64) (*account.ProvisionedCredentials, error) {
	m.calls++
	if m.fail {
		return nil, internal.NewInternalError("provisioning failed", nil)
	}
	return &account.ProvisionedCredentials{
		AccountID:    personID + 100,
		Username:     "jean.dupont",
		TempPassword: "s3cretAB",
		EmailSent:    true,
	}, nil
}

func (m *mockProvisioner) ProvisionTechnician(personID int64, firstName, lastName, email string) (*account.ProvisionedCredentials, error) {
	return m.provision(personID)
}

func (m *mockProvisioner) ProvisionAdmin(personID int64, firstName, lastName, email string) (*account.ProvisionedCredentials, error) {
	return m.provision(personID)
}

var _ = Describe("PersonnelService", func() {
	var (
		svc         *personnel.Service
		repo        *mockPersonnelRepository
		provisioner *mockProvisioner
	)

	validDTO := func() personnel.PersonDTO {
		return personnel.PersonDTO{
			LastName:  "Dupont",
			FirstName: "Jean",
			Email:     "jean@atelier.fr",
			BirthDate: types.NewDate(1995, time.June, 1),
		}
	}

	BeforeEach(func() {
		repo = newMockPersonnelRepository()
		provisioner = &mockProvisioner{}
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		svc = personnel.NewService(repo, provisioner, logger)
	})

	It("provisions an account exactly once per creation", func() {
		resp, err := svc.CreateTechnician(validDTO())
		Expect(err).NotTo(HaveOccurred())
		Expect(provisioner.calls).To(Equal(1))
		Expect(resp.Account).NotTo(BeNil())
		Expect(resp.Account.Username).To(Equal("jean.dupont"))
		Expect(resp.Account.TempPassword).To(Equal("s3cretAB"))
	})

	It("removes the person again when provisioning fails", func() {
		provisioner.fail = true
		_, err := svc.CreateTechnician(validDTO())
		Expect(err).To(HaveOccurred())
		Expect(repo.technicians).To(BeEmpty())
	})

	It("does not expose credentials on reads", func() {
		created, err := svc.CreateAdmin(validDTO())
		Expect(err).NotTo(HaveOccurred())

		fetched, err := svc.GetAdmin(created.ID)
		Expect(err).NotTo(HaveOccurred())
		Expect(fetched.Account).To(BeNil())
	})

	It("requires the core identity fields", func() {
		dto := validDTO()
		dto.Email = "not-an-email"
		_, err := svc.CreateTechnician(dto)
		Expect(err).To(HaveOccurred())
		Expect(provisioner.calls).To(BeZero())
	})

	It("returns not found for an unknown person", func() {
		_, err := svc.GetTechnician(99)
		Expect(err).To(HaveOccurred())
		appErr, ok := internal.IsAppError(err)
		Expect(ok).To(BeTrue())
		Expect(appErr.Code).To(Equal(internal.ErrCodePersonNotFound))
	})
})
