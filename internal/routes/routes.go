package routes

import (
	"net/http"

	"github.com/templui/taskflow/internal/app"
	"github.com/templui/taskflow/internal/handler"
	"github.com/templui/taskflow/internal/middleware"
)

func SetupRoutes(app *app.App) http.Handler {
	// Handlers
	health := handler.NewHealthHandler(app.DB)
	auth := handler.NewAuthHandler(app.AuthService)
	dashboard := handler.NewDashboardHandler(app.GoalService, app.Location)
	goal := handler.NewGoalHandler(app.GoalService, app.Location)
	export := handler.NewExportHandler(app.ExportService)

	mux := http.NewServeMux()

	// ============================================================================
	// PUBLIC ROUTES
	// ============================================================================

	mux.HandleFunc("GET /healthz", health.Health)

	// Auth (rate limited)
	rateLimiter := middleware.RateLimit(app.AuthLimiter)

	mux.HandleFunc("POST /api/auth/register", rateLimiter(auth.Register))
	mux.HandleFunc("POST /api/auth/login", rateLimiter(auth.Login))
	mux.HandleFunc("POST /api/auth/logout", auth.Logout)

	// ============================================================================
	// PROTECTED ROUTES (/api/*)
	// ============================================================================

	mux.HandleFunc("GET /api/me", middleware.RequireAuth(auth.Me))
	mux.HandleFunc("GET /api/today", middleware.RequireAuth(dashboard.Today))

	// Goals
	mux.HandleFunc("GET /api/goals", middleware.RequireAuth(goal.DueGoals))
	mux.HandleFunc("GET /api/goals/all", middleware.RequireAuth(goal.Goals))
	mux.HandleFunc("GET /api/goals/export", middleware.RequireAuth(export.Export))
	mux.HandleFunc("GET /api/goals/{id}", middleware.RequireAuth(goal.Goal))
	mux.HandleFunc("POST /api/goals", middleware.RequireAuth(goal.Create))
	mux.HandleFunc("PUT /api/goals/{id}", middleware.RequireAuth(goal.Update))
	mux.HandleFunc("DELETE /api/goals/{id}", middleware.RequireAuth(goal.Delete))
	mux.HandleFunc("POST /api/goals/{id}/log", middleware.RequireAuth(goal.Log))

	// Global middleware - executed in order (top to bottom)
	handler := middleware.Chain(
		mux,
		middleware.RequestID,
		middleware.SecurityHeaders,
		middleware.RequestLogging,
		middleware.AuthMiddleware(app.AuthService),
	)

	return handler
}
