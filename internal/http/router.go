package http

import (
	"net/http"
	"time"

	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"golang.org/x/time/rate"

	"bookreview/internal/auth"
	"bookreview/internal/books"
	"bookreview/internal/cache"
	"bookreview/internal/config"
	"bookreview/internal/exporter"
	"bookreview/internal/favorites"
	"bookreview/internal/lookup"
	"bookreview/internal/metrics"
	"bookreview/internal/reviews"
	"bookreview/internal/summary"
)

// Deps bundles the services the router wires into handlers. Google and
// Lookup may be nil when the corresponding integrations are not configured.
type Deps struct {
	Config     config.Config
	Logger     *slog.Logger
	Auth       *auth.Service
	Google     GoogleAuthenticator
	Books      *books.Service
	Reviews    *reviews.Service
	Favorites  *favorites.Service
	Lookup     *lookup.Service
	Summarizer *summary.Summarizer
	Cache      *cache.Cache
	Metrics    *metrics.Collector
}

// NewRouter wires application routes and middleware using chi.
func NewRouter(deps Deps) http.Handler {
	cfg := deps.Config
	logger := deps.Logger

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	r.Use(newSecurityHeadersMiddleware(cfg.Environment))
	r.Use(newSlogMiddleware(logger, deps.Metrics))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"status":      "ok",
			"environment": cfg.Environment,
		})
	})

	if deps.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", deps.Metrics.Handler())
	}

	authHandler := NewAuthHandler(deps.Auth, deps.Metrics, logger)
	bookHandler := NewBookHandler(deps.Books, deps.Reviews, deps.Lookup, deps.Summarizer, deps.Cache, deps.Metrics, logger)
	reviewHandler := NewReviewHandler(deps.Reviews, exporter.NewCSVExporter(), deps.Cache, deps.Metrics, logger)
	favoriteHandler := NewFavoriteHandler(deps.Favorites, logger)

	requireAuth := newBearerAuthMiddleware(deps.Auth, logger)
	authLimiter := newRateLimitMiddleware(newIPLimiter(rate.Limit(5), 10))

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Use(authLimiter)
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)
			r.Post("/google", authHandler.GoogleToken)

			if deps.Google != nil {
				oauthHandler := NewOAuthHandler(deps.Google, deps.Auth, cfg.FrontendURL, cfg.Environment, logger)
				r.Get("/google/login", oauthHandler.InitiateGoogle)
				r.Get("/google/callback", oauthHandler.CallbackGoogle)
			}
		})

		r.Group(func(r chi.Router) {
			r.Use(requireAuth)
			r.Get("/users/me", authHandler.Me)
		})

		r.Route("/books", func(r chi.Router) {
			r.Get("/", bookHandler.List)
			r.Get("/lookup", bookHandler.Lookup)
			r.Get("/google/{volumeID}", bookHandler.GetByGoogleVolume)
			r.With(requireAuth).Post("/", bookHandler.Create)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", bookHandler.Get)
				r.Get("/reviews", bookHandler.ListReviews)
				r.Get("/ai-summary", bookHandler.AISummary)
				r.With(requireAuth).Put("/", bookHandler.Update)
				r.With(requireAuth).Delete("/", bookHandler.Delete)
			})
		})

		r.Route("/reviews", func(r chi.Router) {
			r.Get("/", reviewHandler.List)
			r.With(requireAuth).Post("/", reviewHandler.Create)
			r.With(requireAuth).Get("/export", reviewHandler.ExportCSV)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", reviewHandler.Get)
				r.With(requireAuth).Put("/", reviewHandler.Update)
				r.With(requireAuth).Delete("/", reviewHandler.Delete)
			})
		})

		r.Route("/favorites", func(r chi.Router) {
			r.Use(requireAuth)
			r.Get("/", favoriteHandler.List)
			r.Route("/{bookID}", func(r chi.Router) {
				r.Get("/", favoriteHandler.Status)
				r.Post("/", favoriteHandler.Add)
				r.Delete("/", favoriteHandler.Remove)
			})
		})
	})

	r.NotFound(http.NotFoundHandler().ServeHTTP)

	return r
}
