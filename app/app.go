package app

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/Black-And-White-Club/timetrial-standings/app/modules/auth"
	authhandlers "github.com/Black-And-White-Club/timetrial-standings/app/modules/auth/infrastructure/handlers"
	"github.com/Black-And-White-Club/timetrial-standings/app/modules/ranking"
	"github.com/Black-And-White-Club/timetrial-standings/app/modules/region"
	"github.com/Black-And-White-Club/timetrial-standings/app/modules/standard"
	"github.com/Black-And-White-Club/timetrial-standings/config"
	"github.com/Black-And-White-Club/timetrial-standings/db/bundb"
	"github.com/Black-And-White-Club/timetrial-standings/pkg/apierror"
	"github.com/Black-And-White-Club/timetrial-standings/pkg/clock"
	"github.com/Black-And-White-Club/timetrial-standings/pkg/httputil"
	"github.com/Black-And-White-Club/timetrial-standings/pkg/observability"
	"github.com/Black-And-White-Club/timetrial-standings/pkg/refcache"
)

// App holds the process-wide state handed to every request: config, the
// connection pool, observability and the initialized modules.
type App struct {
	Config        *config.Config
	Observability *observability.Observability
	Modules       Modules

	db     *bundb.DBService
	router chi.Router
}

// Modules groups the initialized feature modules.
type Modules struct {
	Region   *region.Module
	Ranking  *ranking.Module
	Standard *standard.Module
	Auth     *auth.Module
}

// NewApp connects to the database, builds every module and loads the region
// index. Any failure here is fatal for the caller.
func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	obs, err := observability.Init(config.ToObsConfig(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize observability: %w", err)
	}

	dbService, err := bundb.NewBunDBService(ctx, cfg.Postgres, obs.Provider.Logger)
	if err != nil {
		return nil, err
	}

	app := &App{Config: cfg, Observability: obs, db: dbService}
	if err := app.Initialize(ctx, clock.Real{}); err != nil {
		_ = dbService.Close()
		return nil, err
	}
	return app, nil
}

// NewAppWithDB builds the app over an existing connection pool.
func NewAppWithDB(ctx context.Context, cfg *config.Config, obs *observability.Observability, dbService *bundb.DBService, c clock.Clock) (*App, error) {
	app := &App{Config: cfg, Observability: obs, db: dbService}
	if err := app.Initialize(ctx, c); err != nil {
		return nil, err
	}
	return app, nil
}

// Initialize builds the router and modules, then warms the region index.
func (app *App) Initialize(ctx context.Context, c clock.Clock) error {
	logger := app.Observability.Provider.Logger
	db := app.db.GetDB()

	cacheMetrics, err := refcache.NewMetrics(app.Observability.Registry.Prometheus)
	if err != nil {
		return fmt.Errorf("failed to register cache metrics: %w", err)
	}
	if err := app.Observability.Registry.Prometheus.Register(prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "standings_db_open_connections",
		Help: "Open connections in the database pool",
	}, func() float64 { return float64(db.Stats().OpenConnections) })); err != nil {
		return fmt.Errorf("failed to register pool metrics: %w", err)
	}

	r := chi.NewRouter()
	r.Use(observability.CorrelationMiddleware)
	r.Use(observability.RequestLogger(logger))
	r.Use(middleware.Recoverer)

	r.Get("/healthz", app.handleHealthz)

	v1 := chi.NewRouter()

	regionModule, err := region.NewModule(ctx, app.Observability, db, cacheMetrics, v1)
	if err != nil {
		return fmt.Errorf("failed to initialize region module: %w", err)
	}
	rankingModule, err := ranking.NewModule(ctx, app.Observability, db, regionModule.GetService(), c, v1)
	if err != nil {
		return fmt.Errorf("failed to initialize ranking module: %w", err)
	}
	standardModule, err := standard.NewModule(ctx, app.Observability, db, cacheMetrics, v1)
	if err != nil {
		return fmt.Errorf("failed to initialize standard levels module: %w", err)
	}
	authModule, err := auth.NewModule(ctx, app.Config, app.Observability, db, c, v1,
		authhandlers.CacheInvalidator{Name: "regions", Invalidate: regionModule.GetService().Invalidate},
		authhandlers.CacheInvalidator{Name: "standard_levels", Invalidate: standardModule.GetService().Invalidate},
	)
	if err != nil {
		return fmt.Errorf("failed to initialize auth module: %w", err)
	}

	v1.NotFound(httputil.PathsHandler("/rankings", "/regions", "/standard_levels", "/auth/login"))
	r.Mount("/v1", v1)

	app.Modules = Modules{
		Region:   regionModule,
		Ranking:  rankingModule,
		Standard: standardModule,
		Auth:     authModule,
	}
	app.router = r

	if err := regionModule.Warm(ctx); err != nil {
		return err
	}

	logger.InfoContext(ctx, "Application initialized")
	return nil
}

// Router returns the root HTTP handler.
func (app *App) Router() http.Handler {
	return app.router
}

// DB returns the database service.
func (app *App) DB() *bundb.DBService {
	return app.db
}

func (app *App) handleHealthz(w http.ResponseWriter, r *http.Request) {
	if err := app.db.GetDB().PingContext(r.Context()); err != nil {
		apierror.WriteJSON(w, http.StatusServiceUnavailable, apierror.Body{Message: "Database unavailable", Cause: err.Error()})
		return
	}
	httputil.WriteJSON(w, map[string]string{"status": "ok"})
}
