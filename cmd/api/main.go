package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cmlabs-hris/hr-dashboard-go/internal/config"
	"github.com/cmlabs-hris/hr-dashboard-go/internal/domain/auth"
	"github.com/cmlabs-hris/hr-dashboard-go/internal/domain/employee"
	"github.com/cmlabs-hris/hr-dashboard-go/internal/domain/holiday"
	appHTTP "github.com/cmlabs-hris/hr-dashboard-go/internal/handler/http"
	"github.com/cmlabs-hris/hr-dashboard-go/internal/pkg/calendar"
	"github.com/cmlabs-hris/hr-dashboard-go/internal/pkg/cron"
	"github.com/cmlabs-hris/hr-dashboard-go/internal/pkg/database"
	"github.com/cmlabs-hris/hr-dashboard-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/hr-dashboard-go/internal/pkg/oauth"
	"github.com/cmlabs-hris/hr-dashboard-go/internal/repository/postgresql"
	"github.com/cmlabs-hris/hr-dashboard-go/internal/repository/sqlite"
	attendanceService "github.com/cmlabs-hris/hr-dashboard-go/internal/service/attendance"
	serviceAuth "github.com/cmlabs-hris/hr-dashboard-go/internal/service/auth"
	dashboardService "github.com/cmlabs-hris/hr-dashboard-go/internal/service/dashboard"
	employeeService "github.com/cmlabs-hris/hr-dashboard-go/internal/service/employee"
	holidayService "github.com/cmlabs-hris/hr-dashboard-go/internal/service/holiday"
	leaveService "github.com/cmlabs-hris/hr-dashboard-go/internal/service/leave"
	reportService "github.com/cmlabs-hris/hr-dashboard-go/internal/service/report"
)

// version is overridden at build time with -ldflags "-X main.version=..."
var version = "dev"

type repositories struct {
	txManager    database.TxManager
	employeeRepo employee.EmployeeRepository
	holidayRepo  holiday.HolidayRepository
	tokenRepo    auth.TokenRepository
	close        func()
}

func openRepositories(ctx context.Context, cfg *config.Config) (*repositories, error) {
	switch cfg.Database.Driver {
	case config.DriverPostgres:
		db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
		if err != nil {
			return nil, fmt.Errorf("failed to connect to postgres: %w", err)
		}
		if err := postgresql.Migrate(ctx, db); err != nil {
			db.Close()
			return nil, err
		}
		return &repositories{
			txManager:    postgresql.NewTxManager(db),
			employeeRepo: postgresql.NewEmployeeRepository(db),
			holidayRepo:  postgresql.NewHolidayRepository(db),
			tokenRepo:    postgresql.NewJWTRepository(db),
			close:        db.Close,
		}, nil
	case config.DriverSQLite:
		db, err := database.NewSQLiteDB(cfg.Database.SQLitePath)
		if err != nil {
			return nil, err
		}
		if err := sqlite.Migrate(ctx, db); err != nil {
			db.Close()
			return nil, err
		}
		return &repositories{
			txManager:    sqlite.NewTxManager(db),
			employeeRepo: sqlite.NewEmployeeRepository(db),
			holidayRepo:  sqlite.NewHolidayRepository(db),
			tokenRepo:    sqlite.NewJWTRepository(db),
			close:        func() { db.Close() },
		}, nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Database.Driver)
	}
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Error loading config: ", err)
	}

	var logLevel slog.Level
	if err := logLevel.UnmarshalText([]byte(cfg.App.LogLevel)); err != nil {
		logLevel = slog.LevelInfo
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})))

	loc, err := cfg.Location()
	if err != nil {
		log.Fatal("Invalid timezone: ", err)
	}
	calendar.SetLocation(loc)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repos, err := openRepositories(ctx, cfg)
	if err != nil {
		log.Fatal("Error opening database: ", err)
	}
	defer repos.close()

	hrPasswordHash, err := cfg.HRPasswordHash()
	if err != nil {
		log.Fatal(err)
	}

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration, cfg.IsProduction())
	GoogleService := oauth.NewGoogleService(
		cfg.OAuth2Google.ClientID,
		cfg.OAuth2Google.ClientSecret,
		cfg.OAuth2Google.RedirectURL,
		cfg.OAuth2Google.Scopes,
		cfg.OAuth2Google.AllowedEmails,
	)

	holidaySvc := holidayService.NewHolidayService(repos.holidayRepo)
	employeeSvc := employeeService.NewEmployeeService(repos.txManager, repos.employeeRepo, holidaySvc, cfg.HR.Username, cfg.HR.DefaultEmployeePassword)
	attendanceSvc := attendanceService.NewAttendanceService(repos.txManager, repos.employeeRepo, holidaySvc)
	leaveSvc := leaveService.NewLeaveService(repos.txManager, repos.employeeRepo, holidaySvc)
	dashboardSvc := dashboardService.NewDashboardService(repos.employeeRepo, holidaySvc)
	reportSvc := reportService.NewReportService(repos.employeeRepo, holidaySvc)
	authSvc := serviceAuth.NewAuthService(
		repos.txManager,
		repos.employeeRepo,
		repos.tokenRepo,
		JWTService,
		GoogleService,
		cfg.HR.Username,
		hrPasswordHash,
	)

	router := appHTTP.NewRouter(
		appHTTP.RouterConfig{
			AllowedOrigins: cfg.App.CORSAllowedOrigins,
			Env:            cfg.App.Env,
			Version:        version,
			LogLevel:       logLevel,
		},
		JWTService,
		appHTTP.Handlers{
			Auth:       appHTTP.NewAuthHandler(JWTService, authSvc, GoogleService, cfg.App.FrontendURL, cfg.IsProduction()),
			Employee:   appHTTP.NewEmployeeHandler(employeeSvc),
			Attendance: appHTTP.NewAttendanceHandler(attendanceSvc),
			Leave:      appHTTP.NewLeaveHandler(leaveSvc),
			Holiday:    appHTTP.NewHolidayHandler(holidaySvc),
			Dashboard:  appHTTP.NewDashboardHandler(dashboardSvc),
			Me:         appHTTP.NewMeHandler(employeeSvc, dashboardSvc),
			Report:     appHTTP.NewReportHandler(reportSvc),
		},
	)

	scheduler := cron.NewScheduler(ctx)
	cron.NewLeaveJobs(employeeSvc, cfg.Jobs.ResetInterval).RegisterJobs(scheduler)
	scheduler.Start()
	defer scheduler.Stop()

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("Server running", "addr", server.Addr, "driver", cfg.Database.Driver, "version", version)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	slog.Info("Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("Graceful shutdown failed", "error", err)
	}
}
