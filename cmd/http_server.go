package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/nbelhadj/maintenance-management/internal"
	"github.com/nbelhadj/maintenance-management/internal/account"
	accountpg "github.com/nbelhadj/maintenance-management/internal/account/postgres"
	"github.com/nbelhadj/maintenance-management/internal/auth"
	"github.com/nbelhadj/maintenance-management/internal/connlog"
	connlogpg "github.com/nbelhadj/maintenance-management/internal/connlog/postgres"
	"github.com/nbelhadj/maintenance-management/internal/notifier"
	"github.com/nbelhadj/maintenance-management/internal/personnel"
	personnelpg "github.com/nbelhadj/maintenance-management/internal/personnel/postgres"
	"github.com/nbelhadj/maintenance-management/internal/report"
	reportpg "github.com/nbelhadj/maintenance-management/internal/report/postgres"
	"github.com/nbelhadj/maintenance-management/internal/stats"
	statspg "github.com/nbelhadj/maintenance-management/internal/stats/postgres"
	"github.com/nbelhadj/maintenance-management/internal/stock"
	stockpg "github.com/nbelhadj/maintenance-management/internal/stock/postgres"
	"github.com/nbelhadj/maintenance-management/internal/transport/rest"
	"github.com/nbelhadj/maintenance-management/internal/workshop"
	workshoppg "github.com/nbelhadj/maintenance-management/internal/workshop/postgres"
	"github.com/nbelhadj/maintenance-management/pkg/logger"
)

var httpServerCmd = &cobra.Command{
	Use:   "server",
	Short: "Start HTTP server",
	Long:  `Start the HTTP server to handle API requests`,
	Run: func(cmd *cobra.Command, args []string) {
		startHTTPServer()
	},
}

type Dependencies struct {
	Config *internal.Config
	DB     *sqlx.DB
	Router *chi.Mux
	Logger *slog.Logger
}

func startHTTPServer() {
	deps, err := initializeDependencies()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize dependencies: %v\n", err)
		os.Exit(1)
	}

	addr := fmt.Sprintf(":%d", deps.Config.Server.Port)
	slog.Info("Starting HTTP server", "address", addr)

	server := &http.Server{
		Addr:         addr,
		Handler:      deps.Router,
		ReadTimeout:  deps.Config.Server.ReadTimeout,
		WriteTimeout: deps.Config.Server.WriteTimeout,
		IdleTimeout:  deps.Config.Server.IdleTimeout,
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrChan := make(chan error, 1)
	go func() {
		serverErrChan <- server.ListenAndServe()
	}()

	select {
	case sig := <-sigChan:
		slog.Info("Received signal, shutting down...", "signal", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			slog.Error("Server shutdown error", "error", err)
		}
		if err := deps.DB.Close(); err != nil {
			slog.Error("Database close error", "error", err)
		}
	case err := <-serverErrChan:
		if err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}

	slog.Info("Server stopped")
}

func initializeDependencies() (*Dependencies, error) {
	cfg, err := loadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger.Init(cfg.Logging.Level)
	lg := logger.LoggerWrapper()

	db, err := initDB(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	gormDB, err := gorm.Open(gormpostgres.New(gormpostgres.Config{Conn: db.DB}), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to open gorm over db connection: %w", err)
	}

	mailer := notifier.NewSMTPMailer(cfg.Mail, lg)

	accountSvc := account.NewService(accountpg.NewAccountRepository(gormDB), mailer, lg, cfg.Security.BCryptCost)
	personnelSvc := personnel.NewService(personnelpg.NewPersonnelRepository(gormDB), accountSvc, lg)
	connlogSvc := connlog.NewService(connlogpg.NewConnlogRepository(gormDB), lg)
	workshopSvc := workshop.NewService(workshoppg.NewWorkshopRepository(gormDB), lg)
	reportSvc := report.NewService(reportpg.NewReportRepository(gormDB), workshopSvc, lg)
	stockSvc := stock.NewService(stockpg.NewStockRepository(gormDB), lg)
	statsSvc := stats.NewService(statspg.NewStatsRepository(gormDB), lg)
	authSvc := auth.NewService(accountSvc, connlogSvc, personnelSvc, lg)

	router := chi.NewRouter()
	rest.RegisterAllRoutes(router, db.DB, rest.Handlers{
		Auth:      auth.NewHandler(authSvc),
		Account:   account.NewHandler(accountSvc),
		Personnel: personnel.NewHandler(personnelSvc),
		Workshop:  workshop.NewHandler(workshopSvc),
		Report:    report.NewHandler(reportSvc),
		Stock:     stock.NewHandler(stockSvc),
		ConnLog:   connlog.NewHandler(connlogSvc),
		Stats:     stats.NewHandler(statsSvc),
	}, cfg.Server.AllowedOrigins, lg)

	return &Dependencies{
		Config: cfg,
		DB:     db,
		Router: router,
		Logger: lg,
	}, nil
}

// initDB initializes the database connection
func initDB(cfg internal.DatabaseConfig) (*sqlx.DB, error) {
	const driver = "pgx"

	dbConn, err := sqlx.Connect(driver, cfg.Source)
	if err != nil {
		return nil, fmt.Errorf("failed to open db connection: %w", err)
	}

	dbConn.SetMaxIdleConns(cfg.MaxIdleConns)
	dbConn.SetMaxOpenConns(cfg.MaxOpenConns)

	if err := dbConn.Ping(); err != nil {
		_ = dbConn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return dbConn, nil
}
