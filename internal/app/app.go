package app

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/bienestar-app/bienestar"
	"github.com/bienestar-app/bienestar/internal/config"
	"github.com/bienestar-app/bienestar/internal/db"
	"github.com/bienestar-app/bienestar/internal/pattern"
	"github.com/bienestar-app/bienestar/internal/progress"
	"github.com/bienestar-app/bienestar/internal/repository"
	"github.com/bienestar-app/bienestar/internal/service"
	"github.com/bienestar-app/bienestar/internal/storage"
)

type App struct {
	Cfg      *config.Config
	DB       *sqlx.DB
	Location *time.Location
	Catalog  *progress.Catalog

	AuthService      *service.AuthService
	UserService      *service.UserService
	ProfileService   *service.ProfileService
	EmailService     *service.EmailService
	GratitudeService *service.GratitudeService
	MoodService      *service.MoodService
	ProgressService  *service.ProgressService
	BadgeService     *service.BadgeService
	ClimateService   *service.ClimateService
	PatternService   *service.PatternService
	ReportService    *service.ReportService
	ResourceService  *service.ResourceService
}

func New(ctx context.Context, cfg *config.Config) (*App, error) {
	// Initialize database
	database, err := db.Init(cfg.DBDriver, cfg.DBConnection)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	// Run database migrations
	err = db.RunMigrations(database.DB, cfg.DBDriver)
	if err != nil {
		_ = database.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	a, err := build(ctx, cfg, database)
	if err != nil {
		_ = database.Close()
		return nil, err
	}
	return a, nil
}

// build wires services on an open, migrated database.
func build(ctx context.Context, cfg *config.Config, database *sqlx.DB) (*App, error) {
	loc := cfg.Location()
	catalog := progress.DefaultCatalog()

	// Repositories
	userRepository := repository.NewUserRepository(database)
	profileRepository := repository.NewProfileRepository(database)
	gratitudeRepository := repository.NewGratitudeEntryRepository(database)
	moodRepository := repository.NewMoodRecordRepository(database)
	progressRepository := repository.NewProgressRepository(database)
	badgeRepository := repository.NewBadgeRepository(database)

	// Storage
	reportStore, err := storage.New(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	// Content
	resourceFS, err := fs.Sub(bienestar.ContentFS, "content/resources")
	if err != nil {
		return nil, fmt.Errorf("failed to open resources: %w", err)
	}
	resourceService, err := service.NewResourceService(resourceFS)
	if err != nil {
		return nil, fmt.Errorf("failed to load resources: %w", err)
	}
	if missing := resourceService.Missing(pattern.ResourceSlugs()); len(missing) > 0 {
		slog.Warn("recommendations link to missing resources", "slugs", missing)
	}

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
		profileRepository,
		emailService,
		cfg.JWTSecret,
		cfg.JWTExpiry,
		cfg.RegistrationOpen,
	)
	progressService := service.NewProgressService(progressRepository, gratitudeRepository, catalog, loc, cfg.ProgressMaxRetries)
	badgeService := service.NewBadgeService(badgeRepository, catalog)
	gratitudeService := service.NewGratitudeService(
		gratitudeRepository,
		userRepository,
		profileRepository,
		progressService,
		badgeService,
		emailService,
		loc,
	)
	climateService := service.NewClimateService(profileRepository, moodRepository, loc, cfg.ClimateMinimumSample)

	return &App{
		Cfg:      cfg,
		DB:       database,
		Location: loc,
		Catalog:  catalog,

		AuthService:      authService,
		UserService:      service.NewUserService(userRepository),
		ProfileService:   service.NewProfileService(profileRepository),
		EmailService:     emailService,
		GratitudeService: gratitudeService,
		MoodService:      service.NewMoodService(moodRepository),
		ProgressService:  progressService,
		BadgeService:     badgeService,
		ClimateService:   climateService,
		PatternService:   service.NewPatternService(moodRepository, gratitudeRepository, profileRepository, cfg.PatternWindowDays, loc),
		ReportService:    service.NewReportService(climateService, reportStore),
		ResourceService:  resourceService,
	}, nil
}

func (a *App) Close() error {
	if a.DB != nil {
		return a.DB.Close()
	}
	return nil
}
