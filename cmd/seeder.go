package cmd

import (
	"fmt"
	"log"
	"time"

	"github.com/spf13/cobra"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/nbelhadj/maintenance-management/internal/account"
	accountpg "github.com/nbelhadj/maintenance-management/internal/account/postgres"
	"github.com/nbelhadj/maintenance-management/internal/core/types"
	"github.com/nbelhadj/maintenance-management/internal/notifier"
	"github.com/nbelhadj/maintenance-management/internal/personnel"
	personnelpg "github.com/nbelhadj/maintenance-management/internal/personnel/postgres"
	"github.com/nbelhadj/maintenance-management/pkg/logger"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with an initial admin account",
	Long:  `Create the first admin person and its login account. The generated credentials are printed once, not emailed.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}
		logger.Init(cfg.Logging.Level)
		lg := logger.LoggerWrapper()

		db, err := initDB(cfg.Database)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}
		defer db.Close()

		gormDB, err := gorm.Open(gormpostgres.New(gormpostgres.Config{Conn: db.DB}), &gorm.Config{})
		if err != nil {
			log.Fatalf("failed to open gorm over db connection: %v", err)
		}

		var admins int64
		if err := gormDB.Model(&personnel.Admin{}).Count(&admins).Error; err != nil {
			log.Fatalf("failed to count admins: %v", err)
		}
		if admins > 0 {
			fmt.Println("an admin already exists, nothing to seed")
			return
		}

		accountSvc := account.NewService(accountpg.NewAccountRepository(gormDB), notifier.Nop{}, lg, cfg.Security.BCryptCost)
		personnelSvc := personnel.NewService(personnelpg.NewPersonnelRepository(gormDB), accountSvc, lg)

		now := time.Now()
		hireDate := types.NewDate(now.Year(), now.Month(), now.Day())
		resp, err := personnelSvc.CreateAdmin(personnel.PersonDTO{
			LastName:  "Admin",
			FirstName: "Super",
			Email:     "admin@maintenance.local",
			BirthDate: types.NewDate(1990, time.January, 1),
			HireDate:  &hireDate,
		})
		if err != nil {
			log.Fatalf("failed to seed admin: %v", err)
		}

		fmt.Println("Seeded admin account:")
		fmt.Println("  username:", resp.Account.Username)
		fmt.Println("  password:", resp.Account.TempPassword)
	},
}
