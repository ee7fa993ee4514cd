package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"github.com/MrSnakeDoc/qrhist/internal/config"
	"github.com/MrSnakeDoc/qrhist/internal/httpserver"
	"github.com/MrSnakeDoc/qrhist/internal/httpserver/deps"
	"github.com/MrSnakeDoc/qrhist/internal/index"
	"github.com/MrSnakeDoc/qrhist/internal/logger"
	"github.com/MrSnakeDoc/qrhist/internal/redis"
	"github.com/MrSnakeDoc/qrhist/internal/scheduler"
	"github.com/MrSnakeDoc/qrhist/internal/settings"
	redisstore "github.com/MrSnakeDoc/qrhist/internal/store/redis"
	"github.com/MrSnakeDoc/qrhist/internal/utils"
	"github.com/MrSnakeDoc/qrhist/internal/version"
)

type App struct {
	cfg         *config.Config
	logger      logger.Logger
	server      *httpserver.Server
	redisClient *goredis.Client
	memIndex    *index.MemoryIndex
	settings    *settings.Manager
	reloader    *scheduler.ImportReloader // nil when no import file is configured
	gc          *scheduler.GarbageCollector
	unsubscribe func()
}

func New() *App {
	cfg := config.Load()

	loggerClient := logger.New(cfg.LogLevel, cfg.PrettyLog)
	ctx := context.Background()

	memIndex := index.NewMemoryIndex()

	// Redis is an optional mirror: without it history lives in memory only
	var (
		redisClient *goredis.Client
		store       *redisstore.Store
	)
	if cfg.RedisEnabled() {
		client, err := redis.Connect(ctx, redis.ConnectOptions{
			Addr:           cfg.RedisAddr,
			User:           cfg.RedisUser,
			Password:       cfg.RedisPassword,
			DB:             cfg.RedisDB,
			DialTimeout:    cfg.RedisDT,
			ReadTimeout:    cfg.RedisRT,
			WriteTimeout:   cfg.RedisWT,
			PoolSize:       cfg.RedisPoolSize,
			ConnectTimeout: cfg.RedisConnectTimeout,
			RetryInterval:  cfg.RedisRetryInterval,
			MaxWait:        cfg.RedisMaxWait,
			PingTimeout:    cfg.RedisPingTimeout,
			WarnThreshold:  cfg.RedisWarnThreshold,
		}, loggerClient)
		if err != nil {
			loggerClient.Warn("continuing without redis, history will not survive a restart", logger.Error(err))
		} else {
			redisClient = client
			store = redisstore.NewStore(client)

			if _, err := scheduler.NewRedisSyncer(store, memIndex, loggerClient).Sync(ctx); err != nil {
				loggerClient.Warn("failed to sync history from redis on startup", logger.Error(err))
			}
		}
	} else {
		loggerClient.Info("redis not configured, history is kept in memory only")
	}

	defaults := settings.Defaults()
	defaults.SearchEngine = cfg.SearchEngine

	var settingsStore settings.Store
	if store != nil {
		settingsStore = store
	}
	prefs := settings.NewManager(settingsStore, defaults)
	if err := prefs.Load(ctx); err != nil {
		loggerClient.Warn("ignoring persisted settings", logger.Error(err))
	}
	unsubscribe := prefs.Subscribe(logSettingsChange(loggerClient))

	var (
		reloader      *scheduler.ImportReloader
		reloadTrigger chan struct{}
	)
	if cfg.ImportFile != "" {
		reloadTrigger = make(chan struct{}, 1)
		reloader = scheduler.NewImportReloader(
			cfg.ImportFile,
			store,
			memIndex,
			loggerClient,
			cfg.ReloadInterval,
			reloadTrigger,
		)
	} else {
		loggerClient.Info("import file not configured, history import disabled")
	}

	gc := scheduler.NewGarbageCollector(
		store,
		memIndex,
		loggerClient,
		cfg.GCInterval,
		cfg.GCThreshold,
	)

	d := deps.Deps{
		Logger:        loggerClient,
		StartTime:     time.Now(),
		Version:       version.Version,
		Commit:        version.Commit,
		BuildDate:     version.BuildDate,
		GoVersion:     version.GoVersion,
		TimeNow:       time.Now,
		AllowedHosts:  cfg.AllowedHosts,
		AllowedCIDRS:  cfg.AllowedCIDRS,
		TrustProxy:    cfg.TrustProxy,
		ImportFile:    cfg.ImportFile,
		Store:         store,
		MemoryIndex:   memIndex,
		Settings:      prefs,
		ReloadTrigger: reloadTrigger,
	}

	return &App{
		cfg:         cfg,
		logger:      loggerClient,
		server:      httpserver.New(cfg, loggerClient, d),
		redisClient: redisClient,
		memIndex:    memIndex,
		settings:    prefs,
		reloader:    reloader,
		gc:          gc,
		unsubscribe: unsubscribe,
	}
}

func (a *App) Run() error {
	a.logger.Info("starting", logger.String("build", version.String()), logger.String("addr", a.cfg.ListenPort))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if a.reloader != nil {
		if err := a.reloader.Start(ctx); err != nil {
			return fmt.Errorf("failed to start import reloader: %w", err)
		}
		a.logger.Info("import reloader started", logger.Duration("interval", a.cfg.ReloadInterval))
	}

	a.gc.Start(ctx)
	a.logger.Info("garbage collector started",
		logger.Duration("interval", a.cfg.GCInterval),
		logger.Duration("threshold", a.cfg.GCThreshold))

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := a.server.Start(); err != nil {
			return fmt.Errorf("http server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		a.logger.Info("shutting down gracefully")

		if a.reloader != nil {
			a.reloader.Stop()
		}
		a.gc.Stop()
		a.unsubscribe()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
		defer cancel()
		if err := a.server.Stop(shutdownCtx); err != nil {
			return fmt.Errorf("failed to stop server: %w", err)
		}
		return nil
	})

	err := g.Wait()

	if a.redisClient != nil {
		utils.CloseLogged(a.redisClient, a.logger, "redis")
	}
	_ = a.logger.Sync()

	if err != nil {
		return err
	}
	a.logger.Info("stopped cleanly")
	return nil
}

// logSettingsChange reports preference changes that affect server behavior.
func logSettingsChange(log logger.Logger) settings.Listener {
	return func(prev, next settings.Settings) {
		if prev.SaveHistory != next.SaveHistory {
			log.Info("history recording toggled", logger.Bool("save_history", next.SaveHistory))
		}
		if prev.SearchEngine != next.SearchEngine {
			log.Info("search engine changed", logger.String("search_engine", next.SearchEngine))
		}
		if prev.Theme != next.Theme {
			log.Debug("theme changed", logger.String("theme", string(next.Theme)))
		}
	}
}
