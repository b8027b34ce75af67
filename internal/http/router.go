package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/redmonkez12/carbon-tracker/internal/activity"
	"github.com/redmonkez12/carbon-tracker/internal/advice"
	"github.com/redmonkez12/carbon-tracker/internal/auth"
	"github.com/redmonkez12/carbon-tracker/internal/config"
	"github.com/redmonkez12/carbon-tracker/internal/emission"
	"github.com/redmonkez12/carbon-tracker/internal/httputil"
	"github.com/redmonkez12/carbon-tracker/internal/logging"
)

// Handlers groups the HTTP handlers mounted by NewRouter
type Handlers struct {
	Auth        *auth.Handler
	Activity    *activity.Handler
	Emission    *emission.Handler
	Advice      *advice.Handler
	RequireAuth func(http.Handler) http.Handler
}

// NewRouter creates and configures the HTTP router
func NewRouter(cfg *config.Config, h Handlers, logger *logging.Logger) *chi.Mux {
	r := chi.NewRouter()

	// CORS - must be first. Tokens travel in the Authorization header, never cookies.
	if len(cfg.Server.TrustedOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   cfg.Server.TrustedOrigins,
			AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
			ExposedHeaders:   []string{"Content-Length"},
			AllowCredentials: false,
			MaxAge:           300, // 5 minutes
		}))
	}

	r.Use(SecurityHeaders)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(logging.RequestLogger(logger))
	r.Use(middleware.Compress(5))

	r.Get("/health", handleHealth)

	// Swagger UI - only in development
	if cfg.Server.IsDevelopment() {
		logger.Info("swagger UI enabled at /swagger/*")
		r.Get("/swagger/*", httpSwagger.WrapHandler)
	}

	r.Get("/api/emission-factors", h.Emission.List)

	r.Route("/auth", func(r chi.Router) {
		r.Post("/login", h.Auth.Login)
		r.Post("/verify-otp", h.Auth.VerifyOTP)
		r.With(h.RequireAuth).Get("/me", h.Auth.Me)
	})

	// Protected routes (require authentication)
	r.Group(func(r chi.Router) {
		r.Use(h.RequireAuth)

		r.Get("/activities", h.Activity.List)
		r.Post("/activities", h.Activity.Create)
		r.Get("/activities/summary", h.Activity.Summary)

		r.Get("/api/recommendation", h.Advice.Recommendation)
		r.Post("/api/chatbot", h.Advice.Chat)
	})

	return r
}

// handleHealth is a simple health check endpoint
// @Summary      Health check
// @Description  Check if the API is running
// @Tags         health
// @Produce      json
// @Success      200 {object} map[string]string
// @Router       /health [get]
func handleHealth(w http.ResponseWriter, r *http.Request) {
	httputil.RespondJSON(w, map[string]string{"status": "api is running"}, http.StatusOK)
}
