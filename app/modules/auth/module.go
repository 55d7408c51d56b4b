package auth

import (
	"context"
	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/uptrace/bun"
	"golang.org/x/time/rate"

	authservice "github.com/Black-And-White-Club/timetrial-standings/app/modules/auth/application"
	authhandlers "github.com/Black-And-White-Club/timetrial-standings/app/modules/auth/infrastructure/handlers"
	authjwt "github.com/Black-And-White-Club/timetrial-standings/app/modules/auth/infrastructure/jwt"
	authdb "github.com/Black-And-White-Club/timetrial-standings/app/modules/auth/infrastructure/repositories"
	"github.com/Black-And-White-Club/timetrial-standings/config"
	"github.com/Black-And-White-Club/timetrial-standings/pkg/clock"
	"github.com/Black-And-White-Club/timetrial-standings/pkg/observability"
)

// Module represents the auth module: password login with an attempt
// cooldown, and the admin routes guarded by its tokens.
type Module struct {
	service  authservice.Service
	handlers *authhandlers.AuthHandlers
	admin    *authhandlers.AdminHandlers
	logger   *slog.Logger
}

// NewModule creates the auth module. It mounts /auth/login and, guarded by an
// admin bearer token, /admin/cache/invalidate over caches.
func NewModule(
	ctx context.Context,
	cfg *config.Config,
	obs *observability.Observability,
	db *bun.DB,
	c clock.Clock,
	httpRouter chi.Router,
	caches ...authhandlers.CacheInvalidator,
) (*Module, error) {
	logger := obs.Provider.Logger
	logger.InfoContext(ctx, "Initializing auth module")

	if cfg.JWT.Secret == "" {
		logger.WarnContext(ctx, "JWT secret is empty, issued tokens are not secure")
	}

	repo := authdb.NewRepository(db)
	jwtProvider := authjwt.NewProvider(cfg.JWT.Secret, c)
	service := authservice.NewService(
		repo,
		jwtProvider,
		c,
		authservice.Config{DefaultTTL: cfg.JWT.DefaultTTL},
		logger,
		obs.Registry.Operations,
		obs.Registry.Tracer,
	)

	handlers := authhandlers.NewAuthHandlers(service, logger)
	admin := authhandlers.NewAdminHandlers(logger, caches...)

	if httpRouter != nil {
		limiter := authhandlers.NewIPRateLimiter(rate.Limit(cfg.Auth.RateLimit), cfg.Auth.RateBurst)
		httpRouter.Route("/auth", func(r chi.Router) {
			r.Use(authhandlers.CORSMiddleware(cfg.HTTP.AllowedOrigins))
			r.Use(authhandlers.RateLimitMiddleware(limiter))
			r.Post("/login", handlers.HandleLogin)
		})
		httpRouter.Route("/admin", func(r chi.Router) {
			r.Use(authhandlers.RequireAdmin(service))
			r.Post("/cache/invalidate", admin.HandleInvalidateCaches)
		})
	}

	return &Module{service: service, handlers: handlers, admin: admin, logger: logger}, nil
}

// GetService returns the auth service for use by other modules.
func (m *Module) GetService() authservice.Service {
	return m.service
}
