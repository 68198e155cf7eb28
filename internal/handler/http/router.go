package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/acme/review-platform/internal/auth"
	"github.com/acme/review-platform/internal/service"
	"github.com/acme/review-platform/pkg/health"
	"github.com/acme/review-platform/pkg/middleware"
)

// RouterConfig holds the dependencies and settings for the HTTP router.
type RouterConfig struct {
	UserService    *service.UserService
	ProductService *service.ProductService
	ReviewService  *service.ReviewService
	CommentService *service.CommentService
	JWTManager     *auth.JWTManager
	HealthHandler  *health.Handler
	Logger         *slog.Logger
	CORS           middleware.CORSConfig
	PprofCIDRs     []string
}

// NewRouter creates a chi router with all API routes registered.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.CORS(cfg.CORS))
	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(middleware.RequestLogging(cfg.Logger))
	r.Use(middleware.PrometheusMetrics("review-api"))

	// Health check and metrics endpoints
	r.Get("/health/live", cfg.HealthHandler.LivenessHandler())
	r.Get("/health/ready", cfg.HealthHandler.ReadinessHandler())
	r.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
		promhttp.Handler().ServeHTTP(w, r)
	})

	// Profiling endpoints, restricted by IP allowlist.
	if len(cfg.PprofCIDRs) > 0 {
		middleware.RegisterPprof(r, cfg.PprofCIDRs, cfg.Logger)
	}

	authHandler := NewAuthHandler(cfg.UserService, cfg.Logger)
	userHandler := NewUserHandler(cfg.UserService, cfg.Logger)
	productHandler := NewProductHandler(cfg.ProductService, cfg.Logger)
	reviewHandler := NewReviewHandler(cfg.ReviewService, cfg.Logger)
	commentHandler := NewCommentHandler(cfg.CommentService, cfg.Logger)

	// Token validator that bridges to our internal JWTManager.
	tokenValidator := func(token string) (*middleware.Claims, error) {
		claims, err := cfg.JWTManager.Validate(token)
		if err != nil {
			return nil, err
		}
		return &middleware.Claims{
			UserID:   claims.UserID,
			Username: claims.Username,
		}, nil
	}

	r.Route("/api/v1", func(r chi.Router) {
		// Public endpoints
		r.Group(func(r chi.Router) {
			r.Use(ContentTypeJSON)

			r.Post("/auth/login", authHandler.Login)

			r.Get("/users", userHandler.List)
			r.Post("/users", userHandler.Create)

			r.Get("/products", productHandler.List)
			r.Post("/products", productHandler.Create)

			r.Get("/products/{productID}/reviews", reviewHandler.ListByProduct)
			r.Get("/reviews/{reviewID}/comments", commentHandler.ListByReview)
		})

		// Authenticated endpoints
		r.Group(func(r chi.Router) {
			r.Use(ContentTypeJSON)
			r.Use(middleware.Auth(tokenValidator))
			r.Use(middleware.RequestLogger(cfg.Logger))

			r.Get("/auth/me", authHandler.Me)

			r.Post("/products/{productID}/reviews", reviewHandler.Create)
			r.Get("/users/{userID}/reviews", reviewHandler.ListByUser)
			r.Put("/users/{userID}/reviews/{reviewID}", reviewHandler.Update)
			r.Delete("/users/{userID}/reviews/{reviewID}", reviewHandler.Delete)

			r.Post("/reviews/{reviewID}/comments", commentHandler.Create)
			r.Get("/users/{userID}/comments", commentHandler.ListByUser)
			r.Put("/comments/{commentID}", commentHandler.Update)
			r.Delete("/comments/{commentID}", commentHandler.Delete)
		})
	})

	return r
}
