package app

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jonboulle/clockwork"

	"github.com/sahildmk/intention-app/internal/adapter/gormstore"
	"github.com/sahildmk/intention-app/internal/adapter/postgres"
	"github.com/sahildmk/intention-app/internal/adapter/postgres/collectionitem"
	tokenrepo "github.com/sahildmk/intention-app/internal/adapter/postgres/token"
	userrepo "github.com/sahildmk/intention-app/internal/adapter/postgres/user"
	"github.com/sahildmk/intention-app/internal/auth"
	"github.com/sahildmk/intention-app/internal/config"
	"github.com/sahildmk/intention-app/internal/domain"
	authsvc "github.com/sahildmk/intention-app/internal/service/auth"
	"github.com/sahildmk/intention-app/internal/service/collection"
	"github.com/sahildmk/intention-app/internal/transport/middleware"
	"github.com/sahildmk/intention-app/internal/transport/rest"
	"github.com/sahildmk/intention-app/internal/transport/rpc"
	"github.com/sahildmk/intention-app/migrations"
)

// itemStore is satisfied by both persistence drivers.
type itemStore interface {
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]domain.CollectionItem, error)
	ListCurrentAndFutureByOwner(ctx context.Context, ownerID uuid.UUID, now time.Time) ([]domain.CollectionItem, error)
	Update(ctx context.Context, ownerID, itemID uuid.UUID, content string, start, end *time.Time) (*domain.CollectionItem, error)
	Create(ctx context.Context, item *domain.CollectionItem) (*domain.CollectionItem, error)
}

// Run is the server entry point. It loads configuration, connects to the
// database, wires services and transports, and serves HTTP until ctx is
// cancelled.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)
	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
		slog.String("database_driver", cfg.Database.Driver),
	)

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer pool.Close()

	if cfg.Database.AutoMigrate {
		if err := postgres.Migrate(ctx, pool, migrations.FS, logger); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}

	items, closeItems, err := openItemStore(cfg.Database.Driver, pool)
	if err != nil {
		return err
	}
	defer closeItems(logger)

	clock := clockwork.NewRealClock()
	jwtManager := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.AccessTokenTTL, auth.WithClock(clock))
	authService := authsvc.NewService(logger,
		userrepo.New(pool),
		tokenrepo.New(pool),
		postgres.NewTxManager(pool),
		jwtManager,
		cfg.Auth,
	)
	collectionService := collection.NewService(logger, items, clock)

	registry := rpc.NewRegistry(logger, rpc.WithClock(clock))
	rpc.RegisterCollection(registry, collectionService)

	limiter := middleware.NewRateLimiter(cfg.RateLimit.CleanupInterval, middleware.WithRateLimitClock(clock))
	defer limiter.Stop()

	router := NewRouter(RouterDeps{
		Log:        logger,
		CORS:       cfg.CORS,
		RateLimit:  cfg.RateLimit,
		RPC:        cfg.RPC,
		Tokens:     authService,
		Auth:       rest.NewAuthHandler(authService, logger),
		Health:     rest.NewHealthHandler(Version, rest.Check{Name: "postgres", Ping: pool.Ping}),
		Procedures: registry,
		Limiter:    limiter,
	})

	addr := net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port))
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", addr, err)
	}

	srv := &http.Server{
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}
	return Serve(ctx, srv, ln, cfg.Server.ShutdownTimeout, logger)
}

// openItemStore picks the persistence driver named in the configuration.
func openItemStore(driver string, pool *pgxpool.Pool) (itemStore, func(*slog.Logger), error) {
	switch driver {
	case config.DriverGorm:
		store, err := gormstore.Open(pool)
		if err != nil {
			return nil, nil, err
		}
		return store, func(log *slog.Logger) {
			if err := store.Close(); err != nil {
				log.Warn("close gorm store", slog.String("error", err.Error()))
			}
		}, nil
	default:
		return collectionitem.New(pool), func(*slog.Logger) {}, nil
	}
}
