package postgres

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/nbelhadj/maintenance-management/internal/account"
	"github.com/nbelhadj/maintenance-management/internal/core/types"
	"github.com/nbelhadj/maintenance-management/internal/personnel"
	personnelpg "github.com/nbelhadj/maintenance-management/internal/personnel/postgres"
)

func TestAccountRepository(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "AccountRepository Suite")
}

var _ = Describe("AccountRepository", func() {
	var (
		db   *gorm.DB
		repo account.Repository
	)

	createTechnician := func(firstName, lastName, email string) *personnel.Technician {
		t := &personnel.Technician{
			FirstName: firstName,
			LastName:  lastName,
			Email:     email,
			BirthDate: types.NewDate(1995, 6, 1),
		}
		Expect(db.Create(t).Error).To(Succeed())
		return t
	}

	createAccount := func(username string, technicienID int64) *account.Account {
		acc := &account.Account{
			Username:     username,
			PasswordHash: "hash",
			Role:         account.RoleTechnician,
			TechnicienID: &technicienID,
		}
		Expect(repo.Create(acc)).To(Succeed())
		return acc
	}

	BeforeEach(func() {
		var err error
		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
		Expect(err).NotTo(HaveOccurred())

		err = db.AutoMigrate(&personnel.Technician{}, &personnel.Admin{}, &account.Account{})
		Expect(err).NotTo(HaveOccurred())

		repo = NewAccountRepository(db)
	})

	AfterEach(func() {
		sqlDB, err := db.DB()
		Expect(err).NotTo(HaveOccurred())
		Expect(sqlDB.Close()).To(Succeed())
	})

	It("maps a duplicate username to ErrUsernameTaken", func() {
		tech1 := createTechnician("Jean", "Dupont", "jean@atelier.fr")
		tech2 := createTechnician("Jeanne", "Dupont", "jeanne@atelier.fr")

		createAccount("jean.dupont", tech1.ID)
		err := repo.Create(&account.Account{
			Username:     "jean.dupont",
			PasswordHash: "hash",
			Role:         account.RoleTechnician,
			TechnicienID: &tech2.ID,
		})
		Expect(err).To(MatchError(account.ErrUsernameTaken))
	})

	It("reports username availability", func() {
		tech := createTechnician("Jean", "Dupont", "jean@atelier.fr")
		createAccount("jean.dupont", tech.ID)

		taken, err := repo.UsernameExists("jean.dupont")
		Expect(err).NotTo(HaveOccurred())
		Expect(taken).To(BeTrue())

		free, err := repo.UsernameExists("jean.dupont1")
		Expect(err).NotTo(HaveOccurred())
		Expect(free).To(BeFalse())
	})

	It("resolves the linked person's identity", func() {
		tech := createTechnician("Jean", "Dupont", "jean@atelier.fr")
		acc := createAccount("jean.dupont", tech.ID)

		person, err := repo.PersonInfo(acc)
		Expect(err).NotTo(HaveOccurred())
		Expect(person.FirstName).To(Equal("Jean"))
		Expect(person.LastName).To(Equal("Dupont"))
		Expect(person.Email).To(Equal("jean@atelier.fr"))
		Expect(person.FullName()).To(Equal("Dupont Jean"))
	})

	Describe("cascades", func() {
		It("deleting the account removes the owning person", func() {
			tech := createTechnician("Jean", "Dupont", "jean@atelier.fr")
			acc := createAccount("jean.dupont", tech.ID)

			Expect(repo.DeleteWithPerson(acc)).To(Succeed())

			_, err := repo.GetByID(acc.ID)
			Expect(err).To(MatchError(account.ErrNotFound))

			var remaining int64
			Expect(db.Model(&personnel.Technician{}).Where("id = ?", tech.ID).Count(&remaining).Error).To(Succeed())
			Expect(remaining).To(BeZero())
		})

		It("deleting the person removes the account", func() {
			tech := createTechnician("Jean", "Dupont", "jean@atelier.fr")
			acc := createAccount("jean.dupont", tech.ID)

			personRepo := personnelpg.NewPersonnelRepository(db)
			Expect(personRepo.DeleteTechnician(tech.ID)).To(Succeed())

			_, err := repo.GetByID(acc.ID)
			Expect(err).To(MatchError(account.ErrNotFound))

			var remaining int64
			Expect(db.Model(&personnel.Technician{}).Where("id = ?", tech.ID).Count(&remaining).Error).To(Succeed())
			Expect(remaining).To(BeZero())
		})
	})
})
