package bootstrap

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"time"

	"github.com/baechuer/real-time-ressys/services/admin-service/internal/application/admin"
	"github.com/baechuer/real-time-ressys/services/admin-service/internal/config"
	"github.com/baechuer/real-time-ressys/services/admin-service/internal/domain"
	"github.com/baechuer/real-time-ressys/services/admin-service/internal/infrastructure/db/postgres"
	"github.com/baechuer/real-time-ressys/services/admin-service/internal/infrastructure/memory"
	rabbitmq_pub "github.com/baechuer/real-time-ressys/services/admin-service/internal/infrastructure/messaging/rabbitmq"
	"github.com/baechuer/real-time-ressys/services/admin-service/internal/infrastructure/redis"
	"github.com/baechuer/real-time-ressys/services/admin-service/internal/infrastructure/security"
	"github.com/baechuer/real-time-ressys/services/admin-service/internal/logger"
	"github.com/baechuer/real-time-ressys/services/admin-service/internal/metrics"
	http_handlers "github.com/baechuer/real-time-ressys/services/admin-service/internal/transport/http/handlers"
	"github.com/baechuer/real-time-ressys/services/admin-service/internal/transport/http/middleware"
	"github.com/baechuer/real-time-ressys/services/admin-service/internal/transport/http/response"
	"github.com/baechuer/real-time-ressys/services/admin-service/internal/transport/http/router"
)

/*
========================
 Public entry (prod)
========================
*/

func NewServer() (*http.Server, func(), error) {
	return newServer(defaultDeps())
}

// NewServerWithDeps allows injecting dependencies for testing
func NewServerWithDeps(deps Deps) (*http.Server, func(), error) {
	return newServer(deps)
}

/*
========================
 Dependency injection
========================
*/

type Deps struct {
	LoadConfig func() (*config.Config, error)

	NewDB func(dsn string) (DBCloser, error)

	NewRedis func(addr, password string, db int) RedisClient

	NewPublisher func(rabbitURL string) (Publisher, error)

	NewRouter func(router.Deps) (http.Handler, error)
}

type DBCloser interface {
	Close() error
}

type RedisClient interface {
	Ping(ctx context.Context) error
	Close() error
}

type Publisher interface{}

/*
========================
 Core bootstrap logic
========================
*/

func newServer(deps Deps) (*http.Server, func(), error) {
	// 0) config
	cfg, err := deps.LoadConfig()
	if err != nil {
		return nil, nil, err
	}

	// 1) db
	db, err := deps.NewDB(cfg.DBAddr)
	if err != nil {
		return nil, nil, err
	}

	cleanupFns := []func(){
		func() { _ = db.Close() },
	}

	// 2) repositories
	sqlDB, ok := db.(*sql.DB)
	if !ok {
		runCleanup(cleanupFns)
		return nil, nil, errors.New("bootstrap: NewDB did not return *sql.DB")
	}

	userRepo := postgres.NewUserRepo(sqlDB)
	roleRepo := postgres.NewRoleRepo(sqlDB)

	// 3) redis (best-effort; without it only the session-cookie path
	// is disabled, bearer tokens still work)
	var redisCli RedisClient
	if deps.NewRedis != nil && cfg.RedisAddr != "" {
		c := deps.NewRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()

		if err := c.Ping(ctx); err != nil {
			logger.Logger.Warn().Err(err).Msg("redis unavailable; session cookies disabled")
			_ = c.Close()
		} else {
			logger.Logger.Info().Msg("redis connected")
			redisCli = c
			cleanupFns = append(cleanupFns, func() { _ = c.Close() })
		}
	}

	var sessions middleware.SessionReader
	if redisCli != nil {
		sessions = redis.NewSessionStore(redisCli.(*redis.Client))
	}

	// 4) publisher
	pub, err := deps.NewPublisher(cfg.RabbitURL)
	if err != nil {
		if cfg.Env == "dev" {
			logger.Logger.Warn().Err(err).Msg("rabbitmq unavailable; using noop publisher")
			pub = memory.NewNoopPublisher()
		} else {
			runCleanup(cleanupFns)
			return nil, nil, err
		}
	} else {
		if p, ok := pub.(interface{ SetExchange(string) }); ok {
			p.SetExchange(cfg.RabbitExchange)
		}
	}

	if c, ok := pub.(interface{ Close() error }); ok {
		cleanupFns = append(cleanupFns, func() { _ = c.Close() })
	}

	// 5) security
	logger.Logger.Info().Str("issuer", cfg.JWTIssuer).Msg("initializing jwt verifier")
	hasher := security.NewBcryptHasher(12)
	verifier := security.NewJWTVerifier(cfg.JWTSecret, cfg.JWTIssuer)

	// schema + seed (dev only)
	if cfg.Env == "dev" {
		if err := postgres.EnsureSchema(context.Background(), sqlDB); err != nil {
			runCleanup(cleanupFns)
			return nil, nil, err
		}
		postgres.Seed(context.Background(), sqlDB, hasher, cfg.SeedAdminEmail, cfg.SeedAdminPassword)
	}

	// 6) service
	adminSvc := admin.NewService(userRepo, roleRepo, hasher, pub.(admin.EventPublisher))

	adminSvc = adminSvc.WithAudit(func(action string, fields map[string]string) {
		evt := logger.Logger.Info().
			Bool("audit", true).
			Str("action", action)
		for k, v := range fields {
			evt = evt.Str(k, v)
		}
		evt.Msg("audit")
		metrics.RecordAdminAction(action, fields["result"])
	})

	// 7) handlers + middleware
	adminH := http_handlers.NewAdminHandler(adminSvc)
	healthH := http_handlers.NewHealthHandler(sqlDB)

	authMW := middleware.Auth(verifier, sessions, cfg.SessionCookie, response.WriteError)
	adminMW := middleware.RequireRole(userRepo, domain.RoleAdmin, response.WriteError)

	// 8) router
	mux, err := deps.NewRouter(router.Deps{
		Health:      healthH,
		Admin:       adminH,
		RequestIDMW: middleware.RequestID,
		MetricsMW:   middleware.Metrics(),
		AuthMW:      authMW,
		AdminMW:     adminMW,
	})
	if err != nil {
		runCleanup(cleanupFns)
		return nil, nil, err
	}

	// 9) server
	srv := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      mux,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	cleanup := func() {
		runCleanup(cleanupFns)
	}

	return srv, cleanup, nil
}

/*
========================
 Default deps (prod)
========================
*/

func defaultDeps() Deps {
	return Deps{
		LoadConfig: config.Load,
		NewDB: func(dsn string) (DBCloser, error) {
			return config.NewDB(dsn)
		},
		NewRedis: func(addr, password string, db int) RedisClient {
			return redis.New(addr, password, db)
		},
		NewPublisher: func(url string) (Publisher, error) {
			return rabbitmq_pub.NewPublisher(url)
		},
		NewRouter: func(d router.Deps) (http.Handler, error) {
			return router.New(d)
		},
	}
}

/*
========================
 helpers
========================
*/

func runCleanup(fns []func()) {
	for i := len(fns) - 1; i >= 0; i-- {
		fns[i]()
	}
}
