package account_test

import (
	"errors"
	"log/slog"
	"os"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"golang.org/x/crypto/bcrypt"

	"github.com/nbelhadj/maintenance-management/internal"
	"github.com/nbelhadj/maintenance-management/internal/account"
)

func TestAccountService(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "AccountService Suite")
}

// Mock repository for testing
type mockAccountRepository struct {
	accounts    map[int64]*account.Account
	byUsername  map[string]*account.Account
	person      *account.PersonInfo
	personError error
	createError error
	updateError error
	// fail the first N creates with a username conflict
	conflictsLeft int
	nextID        int64
	deleted       []int64
}

func newMockAccountRepository() *mockAccountRepository {
	return &mockAccountRepository{
		accounts:   make(map[int64]*account.Account),
		byUsername: make(map[string]*account.Account),
		nextID:     1,
	}
}

func (m *mockAccountRepository) Create(acc *account.Account) error {
	if m.createError != nil {
		return m.createError
	}
	if m.conflictsLeft > 0 {
		m.conflictsLeft--
		return account.ErrUsernameTaken
	}
	if _, taken := m.byUsername[acc.Username]; taken {
		return account.ErrUsernameTaken
	}
	acc.ID = m.nextID
	m.nextID++
	m.accounts[acc.ID] = acc
	m.byUsername[acc.Username] = acc
	return nil
}

func (m *mockAccountRepository) GetByID(id int64) (*account.Account, error) {
	acc, ok := m.accounts[id]
	if !ok {
		return nil, account.ErrNotFound
	}
	return acc, nil
}

func (m *mockAccountRepository) GetByUsername(username string) (*account.Account, error) {
	acc, ok := m.byUsername[username]
	if !ok {
		return nil, account.ErrNotFound
	}
	return acc, nil
}

func (m *mockAccountRepository) List() ([]*account.Account, error) {
	out := make([]*account.Account, 0, len(m.accounts))
	for _, acc := range m.accounts {
		out = append(out, acc)
	}
	return out, nil
}

func (m *mockAccountRepository) Update(acc *account.Account) error {
	if m.updateError != nil {
		return m.updateError
	}
	m.accounts[acc.ID] = acc
	return nil
}

func (m *mockAccountRepository) DeleteWithPerson(acc *account.Account) error {
	delete(m.accounts, acc.ID)
	delete(m.byUsername, acc.Username)
	m.deleted = append(m.deleted, acc.ID)
	return nil
}

func (m *mockAccountRepository) UsernameExists(username string) (bool, error) {
	_, ok := m.byUsername[username]
	return ok, nil
}

func (m *mockAccountRepository) PersonInfo(acc *account.Account) (*account.PersonInfo, error) {
	if m.personError != nil {
		return nil, m.personError
	}
	if m.person == nil {
		return nil, errors.New("no linked person")
	}
	return m.person, nil
}

// Mock mailer counting delivery attempts
type mockMailer struct {
	calls     int
	lastEmail string
	lastUser  string
	lastPass  string
	sendOK    bool
}

func (m *mockMailer) SendCredentials(email, firstName, lastName, username, password, role string) bool {
	m.calls++
	m.lastEmail = email
	m.lastUser = username
	m.lastPass = password
	return m.sendOK
}

var _ = Describe("AccountService", func() {
	var (
		svc    *account.Service
		repo   *mockAccountRepository
		mailer *mockMailer
	)

	BeforeEach(func() {
		repo = newMockAccountRepository()
		mailer = &mockMailer{sendOK: true}
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		svc = account.NewService(repo, mailer, logger, bcrypt.MinCost)
	})

	Describe("Provisioning", func() {
		It("creates an account with a first.last username", func() {
			creds, err := svc.ProvisionTechnician(1, "Jean", "Dupont", "jean@atelier.fr")
			Expect(err).NotTo(HaveOccurred())
			Expect(creds.Username).To(Equal("jean.dupont"))
			Expect(creds.TempPassword).To(HaveLen(account.TempPasswordLength))
			Expect(creds.EmailSent).To(BeTrue())
		})

		It("suffixes the username on collisions", func() {
			first, err := svc.ProvisionTechnician(1, "Jean", "Dupont", "jean1@atelier.fr")
			Expect(err).NotTo(HaveOccurred())
			second, err := svc.ProvisionTechnician(2, "Jean", "Dupont", "jean2@atelier.fr")
			Expect(err).NotTo(HaveOccurred())
			third, err := svc.ProvisionTechnician(3, "Jean", "Dupont", "jean3@atelier.fr")
			Expect(err).NotTo(HaveOccurred())

			Expect(first.Username).To(Equal("jean.dupont"))
			Expect(second.Username).To(Equal("jean.dupont1"))
			Expect(third.Username).To(Equal("jean.dupont2"))
		})

		It("attempts exactly one email per provisioning", func() {
			_, err := svc.ProvisionAdmin(1, "Marie", "Curie", "marie@atelier.fr")
			Expect(err).NotTo(HaveOccurred())
			Expect(mailer.calls).To(Equal(1))
			Expect(mailer.lastEmail).To(Equal("marie@atelier.fr"))
		})

		It("still creates the account when the email is not delivered", func() {
			mailer.sendOK = false
			creds, err := svc.ProvisionTechnician(1, "Jean", "Dupont", "jean@atelier.fr")
			Expect(err).NotTo(HaveOccurred())
			Expect(creds.EmailSent).To(BeFalse())

			acc, err := svc.GetAccountByUsername("jean.dupont")
			Expect(err).NotTo(HaveOccurred())
			Expect(acc.ID).To(Equal(creds.AccountID))
		})

		It("links the right person field for each role", func() {
			techCreds, err := svc.ProvisionTechnician(7, "Jean", "Dupont", "jean@atelier.fr")
			Expect(err).NotTo(HaveOccurred())
			adminCreds, err := svc.ProvisionAdmin(9, "Marie", "Curie", "marie@atelier.fr")
			Expect(err).NotTo(HaveOccurred())

			tech, _ := svc.GetAccount(techCreds.AccountID)
			Expect(tech.Role).To(Equal(account.RoleTechnician))
			Expect(*tech.TechnicienID).To(Equal(int64(7)))
			Expect(tech.AdminID).To(BeNil())

			admin, _ := svc.GetAccount(adminCreds.AccountID)
			Expect(admin.Role).To(Equal(account.RoleAdmin))
			Expect(*admin.AdminID).To(Equal(int64(9)))
			Expect(admin.TechnicienID).To(BeNil())
		})

		It("retries past a unique-constraint race", func() {
			repo.conflictsLeft = 2
			creds, err := svc.ProvisionTechnician(1, "Jean", "Dupont", "jean@atelier.fr")
			Expect(err).NotTo(HaveOccurred())
			Expect(creds.Username).To(Equal("jean.dupont"))
		})

		It("gives up after too many conflicts", func() {
			repo.conflictsLeft = 10
			_, err := svc.ProvisionTechnician(1, "Jean", "Dupont", "jean@atelier.fr")
			Expect(err).To(HaveOccurred())
		})

		It("lets the generated temp password log in", func() {
			creds, err := svc.ProvisionTechnician(1, "Jean", "Dupont", "jean@atelier.fr")
			Expect(err).NotTo(HaveOccurred())

			acc, err := svc.GetAccount(creds.AccountID)
			Expect(err).NotTo(HaveOccurred())
			Expect(svc.VerifyPassword(acc, creds.TempPassword)).To(BeTrue())
			Expect(svc.VerifyPassword(acc, "wrong-password")).To(BeFalse())
		})
	})

	Describe("ChangePassword", func() {
		var accountID int64

		BeforeEach(func() {
			creds, err := svc.ProvisionTechnician(1, "Jean", "Dupont", "jean@atelier.fr")
			Expect(err).NotTo(HaveOccurred())
			accountID = creds.AccountID
		})

		It("rejects a 5-character password", func() {
			err := svc.ChangePassword(accountID, "abcde")
			Expect(err).To(HaveOccurred())
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Code).To(Equal(internal.ErrCodePasswordTooShort))
		})

		It("accepts a 6-character password and invalidates the old one", func() {
			acc, _ := svc.GetAccount(accountID)
			oldHash := acc.PasswordHash

			Expect(svc.ChangePassword(accountID, "abcdef")).To(Succeed())

			acc, _ = svc.GetAccount(accountID)
			Expect(acc.PasswordHash).NotTo(Equal(oldHash))
			Expect(svc.VerifyPassword(acc, "abcdef")).To(BeTrue())
			Expect(acc.TempPassword).To(BeNil())
		})
	})

	Describe("ResetPassword", func() {
		var accountID int64

		BeforeEach(func() {
			creds, err := svc.ProvisionTechnician(1, "Jean", "Dupont", "jean@atelier.fr")
			Expect(err).NotTo(HaveOccurred())
			accountID = creds.AccountID
			repo.person = &account.PersonInfo{FirstName: "Jean", LastName: "Dupont", Email: "jean@atelier.fr"}
			mailer.calls = 0
		})

		It("stores a fresh 10-character password and emails it", func() {
			resp, err := svc.ResetPassword(accountID)
			Expect(err).NotTo(HaveOccurred())
			Expect(resp.EmailSent).To(BeTrue())
			Expect(mailer.calls).To(Equal(1))
			Expect(mailer.lastPass).To(HaveLen(account.ResetPasswordLength))

			acc, _ := svc.GetAccount(accountID)
			Expect(svc.VerifyPassword(acc, mailer.lastPass)).To(BeTrue())
		})

		It("keeps the new password when the email fails", func() {
			mailer.sendOK = false
			resp, err := svc.ResetPassword(accountID)
			Expect(err).NotTo(HaveOccurred())
			Expect(resp.EmailSent).To(BeFalse())
			Expect(resp.Message).To(ContainSubstring("l'email n'a pas pu être envoyé"))

			acc, _ := svc.GetAccount(accountID)
			Expect(svc.VerifyPassword(acc, mailer.lastPass)).To(BeTrue())
		})

		It("refuses to reset when no email is linked", func() {
			repo.person = &account.PersonInfo{FirstName: "Jean", LastName: "Dupont"}
			acc, _ := svc.GetAccount(accountID)
			oldHash := acc.PasswordHash

			_, err := svc.ResetPassword(accountID)
			Expect(err).To(HaveOccurred())
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Code).To(Equal(internal.ErrCodeMissingEmail))

			acc, _ = svc.GetAccount(accountID)
			Expect(acc.PasswordHash).To(Equal(oldHash))
			Expect(mailer.calls).To(BeZero())
		})
	})

	Describe("CRUD", func() {
		It("rejects an account whose role does not match its link", func() {
			techID := int64(4)
			_, err := svc.Create(account.CreateAccountDTO{
				Username:     "broken",
				Password:     "secret1",
				Role:         account.RoleAdmin,
				TechnicienID: &techID,
			})
			Expect(err).To(HaveOccurred())
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Code).To(Equal(internal.ErrCodeRoleLinkMismatch))
		})

		It("deletes the owning person with the account", func() {
			creds, err := svc.ProvisionTechnician(1, "Jean", "Dupont", "jean@atelier.fr")
			Expect(err).NotTo(HaveOccurred())

			Expect(svc.Delete(creds.AccountID)).To(Succeed())
			Expect(repo.deleted).To(ContainElement(creds.AccountID))
			_, err = svc.GetByID(creds.AccountID)
			Expect(err).To(HaveOccurred())
		})
	})
})
