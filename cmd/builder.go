package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"horseadmin/api"
	"horseadmin/api/collection"
	"horseadmin/api/health"
	profileapi "horseadmin/api/profile"
	settingsapi "horseadmin/api/settings"
	"horseadmin/application/crud"
	profileapp "horseadmin/application/profile"
	settingsapp "horseadmin/application/settings"
	"horseadmin/config"
	"horseadmin/domain/event"
	"horseadmin/domain/horse"
	"horseadmin/domain/notification"
	"horseadmin/domain/order"
	"horseadmin/domain/post"
	"horseadmin/domain/product"
	"horseadmin/domain/resource"
	"horseadmin/domain/seller"
	"horseadmin/domain/settings"
	"horseadmin/domain/shared"
	"horseadmin/domain/user"
	"horseadmin/infrastructure/auth"
	"horseadmin/infrastructure/persistence/dynamo"
	"horseadmin/infrastructure/persistence/memory"
	"horseadmin/infrastructure/persistence/mysql"
	"horseadmin/infrastructure/persistence/retry"
	"horseadmin/pkg/logger"
	"horseadmin/web"

	"github.com/theory-cloud/tabletheory/pkg/core"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Store is the opened backing store. Exactly one of GORM and Dynamo is set
// unless the store is in memory.
type Store struct {
	Type   string
	GORM   *gorm.DB
	Dynamo core.ExtendedDB
	Seed   bool
}

// OpenStore connects the configured store.
func OpenStore(cfg *config.DatabaseConfig) (*Store, error) {
	s := &Store{Type: cfg.Type, Seed: cfg.Seed}
	switch cfg.Type {
	case "mysql":
		logger.Info("Using MySQL/GORM persistence layer")
		db, err := mysql.FromAppConfig(cfg.MySQL).Connect()
		if err != nil {
			return nil, err
		}
		if err := mysql.Ping(context.Background(), db); err != nil {
			return nil, fmt.Errorf("failed to ping MySQL: %w", err)
		}
		s.GORM = db
	case "dynamodb":
		logger.Info("Using DynamoDB/TableTheory persistence layer")
		db, err := dynamo.Connect(cfg.DynamoDB)
		if err != nil {
			return nil, err
		}
		s.Dynamo = db
	case "memory":
		logger.Info("Using in-memory persistence layer", zap.Bool("seed", cfg.Seed))
	default:
		return nil, fmt.Errorf("unsupported database type %q", cfg.Type)
	}
	return s, nil
}

// UnitOfWork transactions exist only on MySQL.
func (s *Store) UnitOfWork() shared.UnitOfWork {
	if s.GORM != nil {
		return mysql.NewUnitOfWork(s.GORM)
	}
	return shared.NoTransaction{}
}

// Checks are the readiness probes for the store.
func (s *Store) Checks() map[string]health.Checker {
	checks := map[string]health.Checker{}
	if s.GORM != nil {
		checks["mysql"] = func(ctx context.Context) error { return mysql.Ping(ctx, s.GORM) }
	}
	return checks
}

func (s *Store) Close() error {
	if s.GORM == nil {
		return nil
	}
	sqlDB, err := s.GORM.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Gateway binds schema to the store. Seeded rows are loaded only into the
// memory store.
func Gateway[R resource.Entity](s *Store, schema *resource.Schema[R], demo func() []R) resource.Gateway[R] {
	switch {
	case s.GORM != nil:
		return mysql.NewGateway(s.GORM, schema)
	case s.Dynamo != nil:
		return dynamo.NewGateway(s.Dynamo, schema)
	}
	gw := memory.New(schema)
	if s.Seed && demo != nil {
		gw.Seed(demo()...)
	}
	return gw
}

// AppBuilder builds an App with customizable components
type AppBuilder struct {
	cfg         *config.Config
	store       *Store
	controllers []api.Registrar
	pages       []func(*web.Dashboard)
}

// NewBuilder creates a new AppBuilder
func NewBuilder(cfg *config.Config) *AppBuilder {
	return &AppBuilder{cfg: cfg}
}

// WithStore uses an already opened store instead of the configured one.
func (b *AppBuilder) WithStore(s *Store) *AppBuilder {
	b.store = s
	return b
}

// WithController adds an API controller to the app
func (b *AppBuilder) WithController(c api.Registrar) *AppBuilder {
	b.controllers = append(b.controllers, c)
	return b
}

// manage serves one collection on both the API and the dashboard.
func manage[R resource.Entity](b *AppBuilder, schema *resource.Schema[R], demo func() []R) *crud.ApplicationService[R] {
	var gw resource.Gateway[R] = Gateway(b.store, schema, demo)
	if b.cfg.Database.Retry.Enabled {
		gw = retry.Wrap(gw, schema, retry.FromAppConfig(b.cfg.Database.Retry))
	}
	service := crud.NewApplicationService(schema, gw)
	b.controllers = append(b.controllers, collection.NewController(service))
	b.pages = append(b.pages, func(d *web.Dashboard) { web.Register(d, service) })
	return service
}

// Build creates the App instance
func (b *AppBuilder) Build() (*App, error) {
	if err := b.cfg.Validate(); err != nil {
		return nil, err
	}

	logger.Info("Starting application",
		zap.String("app", b.cfg.App.Name),
		zap.String("version", b.cfg.App.Version),
		zap.String("env", b.cfg.App.Env),
		zap.String("store", b.cfg.Database.Type))

	if b.store == nil {
		s, err := OpenStore(&b.cfg.Database)
		if err != nil {
			return nil, err
		}
		b.store = s
	}
	uow := b.store.UnitOfWork()

	// sidebar order
	profiles := manage(b, user.Schema(), memory.DemoProfiles)
	manage(b, horse.Schema(), memory.DemoHorses)
	manage(b, event.Schema(), memory.DemoEvents)
	manage(b, product.Schema(), memory.DemoProducts)
	manage(b, order.Schema(), memory.DemoOrders)
	manage(b, post.Schema(), memory.DemoPosts)
	manage(b, seller.Schema(), memory.DemoSellers)
	manage(b, notification.Schema(), memory.DemoNotifications)

	records := crud.NewApplicationService(settings.Schema(), Gateway(b.store, settings.Schema(), nil))
	profileService := profileapp.NewApplicationService(profiles, uow)
	settingsService := settingsapp.NewApplicationService(records, uow)
	b.controllers = append(b.controllers,
		profileapi.NewController(profileService),
		settingsapi.NewController(settingsService),
	)

	verifier := auth.NewVerifier(b.cfg.Auth.JWTSecret, b.cfg.Auth.Issuer)

	dash, err := web.New(verifier, profileService, settingsService, web.Options{
		SessionSecret: b.cfg.Auth.SessionSecret,
		CSRFKey:       []byte(b.cfg.Auth.CSRFKey),
		SecureCookies: b.cfg.Auth.SecureCookies,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build dashboard: %w", err)
	}
	for _, register := range b.pages {
		register(dash)
	}

	router := api.NewRouter(b.cfg, verifier, health.NewController(b.cfg, b.store.Checks()), b.controllers...)
	router.SetupRoutes()
	router.Mount("/admin", dash.Handler())

	server := &http.Server{
		Addr:         ":" + b.cfg.Server.Port,
		Handler:      router.Handler(),
		ReadTimeout:  b.cfg.Server.ReadTimeout,
		WriteTimeout: b.cfg.Server.WriteTimeout,
	}

	return &App{
		config: b.cfg,
		router: router,
		server: server,
		store:  b.store,
	}, nil
}

// isServerClosed reports the normal end of ListenAndServe.
func isServerClosed(err error) bool {
	return errors.Is(err, http.ErrServerClosed)
}
