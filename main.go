package main

import (
	"GolfInbox/impl/core"
	"GolfInbox/internal/config"
	"GolfInbox/internal/database"
	"GolfInbox/internal/http-server/api"
	"GolfInbox/internal/lib/logger"
	"GolfInbox/internal/lib/sl"
	"GolfInbox/internal/ws"
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
)

func main() {

	configPath := flag.String("conf", "config.yml", "path to config file")
	logPath := flag.String("log", "/var/log/", "path to log file directory")
	flag.Parse()

	// optional, values from the environment take precedence over the file
	envErr := godotenv.Load()

	conf := config.MustLoad(*configPath)
	lg := logger.SetupLogger(conf.Env, *logPath)

	lg.Info("starting golfinbox", slog.String("config", *configPath), slog.String("env", conf.Env))
	lg.Debug("debug messages enabled")
	if envErr != nil {
		lg.Debug("no .env file loaded", sl.Err(envErr))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	handler := core.New(lg)
	handler.SetAuthKey(conf.Listen.ApiKey)
	handler.SetMaxPageSize(conf.Inbox.MaxPageSize)

	db, err := repository.NewPostgresClient(ctx, conf, lg)
	if err != nil {
		lg.With(
			sl.Err(err),
		).Error("postgres client")
	}
	if db != nil {
		defer db.Close()
		if !conf.Postgres.SkipMigrate {
			result, err := db.Migrate()
			if err != nil {
				lg.Error("database migration", sl.Err(err))
				return
			}
			lg.With(
				slog.Uint64("version", uint64(result.Version)),
				slog.Bool("changed", result.Changed),
			).Info("database migrated")
		}
		handler.SetRepository(db)
		lg.With(
			sl.Secret("dsn", conf.Postgres.DSN),
			slog.Int("max_conns", int(conf.Postgres.MaxConns)),
			slog.Bool("separate_mark_read_writes", conf.Inbox.SeparateMarkReadWrites),
		).Info("postgres client initialized")
	} else if !conf.Postgres.Enabled {
		handler.SetRepository(repository.NewMemoryStore(conf.Inbox.SeparateMarkReadWrites))
		lg.Warn("postgres disabled, using in-memory store")
	}

	hub := ws.NewHub(lg)
	hub.SetHandler(handler)
	go hub.Run(ctx)
	handler.SetBroadcaster(hub)

	// *** blocking start with http server ***
	err = api.New(ctx, conf, lg, handler, hub)
	if err != nil {
		lg.Error("server start", sl.Err(err))
		return
	}
	lg.Info("service stopped")
}
