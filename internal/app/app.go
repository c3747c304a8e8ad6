package app

import (
	"context"
	"fmt"
	"net/http"
	"os"

	goredis "github.com/redis/go-redis/v9"
	"gorm.io/gorm"
	"pantry-app-go/internal/auth"
	"pantry-app-go/internal/config"
	"pantry-app-go/internal/db"
	"pantry-app-go/internal/domain/actionlog"
	"pantry-app-go/internal/domain/authz"
	groupdomain "pantry-app-go/internal/domain/group"
	itemsdomain "pantry-app-go/internal/domain/items"
	"pantry-app-go/internal/domain/recipes"
	"pantry-app-go/internal/domain/user"
	"pantry-app-go/internal/repository/inmemory"
	actionlogrepo "pantry-app-go/internal/repository/postgres/actionlog"
	grouprepo "pantry-app-go/internal/repository/postgres/group"
	itemsrepo "pantry-app-go/internal/repository/postgres/items"
	recipesrepo "pantry-app-go/internal/repository/postgres/recipes"
	userrepo "pantry-app-go/internal/repository/postgres/user"
	rediscache "pantry-app-go/internal/repository/redis"
	"pantry-app-go/internal/transport/httpserver"
	"pantry-app-go/internal/transport/httpserver/handler"
	commonhandler "pantry-app-go/internal/transport/httpserver/handler/common"
	groupshandler "pantry-app-go/internal/transport/httpserver/handler/groups"
	"pantry-app-go/pkg/logger"
)

// Options override values resolved from the configuration.
type Options struct {
	ConfigPath string
	Port       string
	// Migrate forces migrations to run even when DB_AUTO_MIGRATE is off.
	Migrate bool
}

type App struct {
	cfg        config.Config
	log        logger.Logger
	httpServer *http.Server
	db         *gorm.DB
	redis      *goredis.Client
}

func New(ctx context.Context, bootLog logger.Logger, opts Options) (*App, error) {
	bootLog.Info("app: loading config")
	cfg, err := config.Load(bootLog, opts.ConfigPath)
	if err != nil {
		return nil, err
	}
	if opts.Port != "" {
		cfg.HTTPPort = opts.Port
	}
	log := logger.New(logger.Options{Output: os.Stdout, Env: cfg.Env, Level: cfg.Log.Level, Format: cfg.Log.Format})

	log.Info("app: initializing database", "driver", cfg.DB.Driver)
	dbConn, err := db.Open(cfg.DB, log)
	if err != nil {
		return nil, err
	}
	application := &App{cfg: cfg, log: log, db: dbConn}

	if cfg.DB.AutoMigrate || opts.Migrate {
		log.Info("app: running migrations")
		if err := db.Migrate(ctx, dbConn, cfg.DB.Driver); err != nil {
			_ = application.Close()
			return nil, fmt.Errorf("migrate: %w", err)
		}
	}

	cache, err := application.groupCache(ctx)
	if err != nil {
		_ = application.Close()
		return nil, err
	}

	log.Info("app: initializing router")
	router := NewRouter(cfg, dbConn, cache, log)

	log.Info("app: initializing http server")
	application.httpServer = httpserver.New(cfg, router)
	return application, nil
}

// NewRouter wires repositories, services and handlers on top of an open
// database connection.
func NewRouter(cfg config.Config, dbConn *gorm.DB, cache groupdomain.Cache, log logger.Logger) http.Handler {
	groupsService := groupdomain.NewService(
		grouprepo.NewPostgres(dbConn),
		groupdomain.WithCache(cache, cfg.Groups.CacheTTL),
		groupdomain.WithPolicy(authz.Policy{AdminsManageMembers: cfg.Groups.AdminsManageMembers}),
		groupdomain.WithInviteTTL(cfg.Groups.InviteTTL),
	)
	hasher := auth.NewArgon2Hasher(auth.Argon2Params{
		Memory:      uint32(cfg.Argon2.MemoryKB),
		Iterations:  uint32(cfg.Argon2.Iterations),
		Parallelism: uint8(cfg.Argon2.Parallelism),
	})
	usersService := user.NewService(userrepo.NewPostgres(dbConn), hasher, groupsService)
	itemsService := itemsdomain.NewService(itemsrepo.NewPostgres(dbConn))
	historyService := actionlog.NewService(actionlogrepo.NewPostgres(dbConn))
	recipesService := recipes.NewService(recipesrepo.NewPostgres(dbConn))

	handlers := handler.New(
		commonhandler.New(usersService, recipesService, log),
		groupshandler.New(groupsService, itemsService, historyService, log),
	)
	return httpserver.NewRouter(cfg, handlers, usersService, log)
}

// groupCache returns a Redis-backed cache when REDIS_ADDR is set and an
// in-process one otherwise.
func (a *App) groupCache(ctx context.Context) (groupdomain.Cache, error) {
	if a.cfg.Redis.Addr == "" {
		a.log.Info("app: using in-memory group cache")
		return inmemory.NewGroupListCache(), nil
	}

	client := goredis.NewClient(&goredis.Options{
		Addr:     a.cfg.Redis.Addr,
		Password: a.cfg.Redis.Password,
		DB:       a.cfg.Redis.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping %s: %w", a.cfg.Redis.Addr, err)
	}
	a.redis = client
	a.log.Info("app: using redis group cache", "addr", a.cfg.Redis.Addr)
	return rediscache.NewGroupListCache(client, a.log), nil
}

func (a *App) HTTPServer() *http.Server {
	return a.httpServer
}

func (a *App) Logger() logger.Logger {
	return a.log
}

func (a *App) Close() error {
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			return err
		}
	}
	if a.db == nil {
		return nil
	}
	sqlDB, err := a.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
