package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/templui/taskflow/internal/config"
	"github.com/templui/taskflow/internal/db"
	"github.com/templui/taskflow/internal/middleware"
	"github.com/templui/taskflow/internal/repository"
	"github.com/templui/taskflow/internal/service"
	"github.com/templui/taskflow/internal/storage"
)

type App struct {
	Cfg           *config.Config
	DB            *sqlx.DB
	Location      *time.Location
	AuthService   *service.AuthService
	EmailService  *service.EmailService
	GoalService   *service.GoalService
	ExportService *service.ExportService
	AuthLimiter   *middleware.RateLimiter
}

func New(ctx context.Context, cfg *config.Config) (*App, error) {
	// Initialize database
	database, err := db.Init(cfg.DBDriver, cfg.DBConnection)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	if cfg.AutoMigrate {
		err = db.RunMigrations(ctx, database.DB, cfg.DBDriver)
		if err != nil {
			_ = database.Close()
			return nil, fmt.Errorf("failed to run migrations: %w", err)
		}
	}

	// Storage (optional)
	exportStorage, err := storage.New(ctx, cfg)
	if err != nil {
		_ = database.Close()
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	return NewWithDB(cfg, database, exportStorage), nil
}

// NewWithDB wires repositories and services on an already opened database.
// store may be nil.
func NewWithDB(cfg *config.Config, database *sqlx.DB, store storage.Storage) *App {
	// Repositories
	userRepository := repository.NewUserRepository(database)
	goalRepository := repository.NewGoalRepository(database)
	goalLogRepository := repository.NewGoalLogRepository(database)

	// Services
	emailService := service.NewEmailService(
		cfg.ResendAPIKey,
		cfg.EmailFrom,
		cfg.AppURL,
		cfg.AppName,
		cfg.IsDevelopment(),
	)
	authService := service.NewAuthService(
		userRepository,
		emailService,
		cfg.JWTSecret,
		cfg.IsProduction(),
		cfg.JWTExpiry,
	)
	goalService := service.NewGoalService(goalRepository, goalLogRepository)
	exportService := service.NewExportService(goalRepository, goalLogRepository, store)

	loc := cfg.Location()
	slog.Debug("app wired", "timezone", loc.String(), "export_storage", store != nil)

	return &App{
		Cfg:           cfg,
		DB:            database,
		Location:      loc,
		AuthService:   authService,
		EmailService:  emailService,
		GoalService:   goalService,
		ExportService: exportService,
		AuthLimiter:   middleware.NewAuthRateLimiter(),
	}
}

func (a *App) Close() error {
	if a.AuthLimiter != nil {
		a.AuthLimiter.Stop()
	}
	return db.Close(a.DB)
}
