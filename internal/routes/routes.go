package routes

import (
	"net/http"

	"github.com/bienestar-app/bienestar/internal/app"
	"github.com/bienestar-app/bienestar/internal/handler"
	"github.com/bienestar-app/bienestar/internal/middleware"
	"github.com/bienestar-app/bienestar/internal/model"
)

func SetupRoutes(app *app.App) http.Handler {
	// Handlers
	health := handler.NewHealthHandler(app.DB)
	auth := handler.NewAuthHandler(app.AuthService, app.UserService, app.ProfileService)
	gratitude := handler.NewGratitudeHandler(app.GratitudeService, app.Location)
	mood := handler.NewMoodHandler(app.MoodService, app.Location)
	progress := handler.NewProgressHandler(app.ProgressService, app.BadgeService)
	climate := handler.NewClimateHandler(app.ClimateService, app.ReportService, app.Location)
	patterns := handler.NewPatternHandler(app.PatternService)
	resources := handler.NewResourceHandler(app.ResourceService)

	student := middleware.RequireRole(model.RoleStudent)
	staff := middleware.RequireRole(model.RoleTeacher, model.RoleDirector)
	director := middleware.RequireRole(model.RoleDirector)

	mux := http.NewServeMux()

	// ============================================================================
	// PUBLIC ROUTES
	// ============================================================================

	mux.HandleFunc("GET /healthz", health.Healthz)

	// Auth (rate limited)
	rateLimiter := middleware.RateLimitAuth()
	mux.HandleFunc("POST /api/auth/register", rateLimiter(auth.Register))
	mux.HandleFunc("POST /api/auth/login", rateLimiter(auth.Login))

	// Resources
	mux.HandleFunc("GET /api/resources", resources.List)
	mux.HandleFunc("GET /api/resources/{slug}", resources.Show)

	// ============================================================================
	// ACCOUNT
	// ============================================================================

	mux.HandleFunc("GET /api/me", middleware.RequireAuth(auth.Me))
	mux.HandleFunc("PATCH /api/me/name", middleware.RequireAuth(auth.UpdateName))
	mux.HandleFunc("POST /api/me/password", middleware.RequireAuth(auth.UpdatePassword))

	// ============================================================================
	// STUDENT
	// ============================================================================

	// Gratitude journal
	mux.HandleFunc("POST /api/gratitude", student(gratitude.Create))
	mux.HandleFunc("GET /api/gratitude", student(gratitude.List))

	// Mood check-ins
	mux.HandleFunc("POST /api/moods", student(mood.Create))
	mux.HandleFunc("GET /api/moods", student(mood.List))

	// Progress & badges
	mux.HandleFunc("GET /api/me/progress", student(progress.Progress))
	mux.HandleFunc("GET /api/me/badges", student(progress.Badges))
	mux.HandleFunc("POST /api/me/badges/notified", student(progress.MarkNotified))

	// Patterns
	mux.HandleFunc("GET /api/me/patterns", student(patterns.Mine))

	// ============================================================================
	// STAFF
	// ============================================================================

	mux.HandleFunc("GET /api/climate/daily", staff(climate.Daily))
	mux.HandleFunc("GET /api/climate/weekly", staff(climate.Weekly))
	mux.HandleFunc("POST /api/climate/weekly/reports", director(climate.PublishWeekly))
	mux.HandleFunc("GET /api/students/{id}/patterns", staff(patterns.Student))

	// ============================================================================
	// FALLBACK
	// ============================================================================

	mux.HandleFunc("/{path...}", handler.NotFound)

	// Global middleware - executed in order (top to bottom)
	return middleware.Chain(
		mux,
		middleware.Recover,
		middleware.AuthMiddleware(app.AuthService, app.UserService, app.ProfileService), // Before logging so requests carry user_id
		middleware.RequestLogging,
	)
}
