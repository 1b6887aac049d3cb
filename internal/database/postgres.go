package repository

import (
	"GolfInbox/entity"
	"GolfInbox/internal/config"
	"GolfInbox/internal/lib/sl"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNotFound = errors.New("not found")

type sourceTables struct {
	conversations string
	messages      string
}

// Table names are fixed per source and never taken from input.
var tablesBySource = map[entity.Source]sourceTables{
	entity.SourceLine:    {conversations: "line_conversations", messages: "line_messages"},
	entity.SourceWebsite: {conversations: "web_conversations", messages: "web_messages"},
	entity.SourceMeta:    {conversations: "meta_conversations", messages: "meta_messages"},
}

func tablesFor(source entity.Source) (sourceTables, error) {
	t, ok := tablesBySource[source]
	if !ok {
		return sourceTables{}, fmt.Errorf("%w: %q", entity.ErrUnknownSource, source)
	}
	return t, nil
}

// execer is satisfied by both the pool and a transaction.
type execer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

type Postgres struct {
	pool             *pgxpool.Pool
	separateMarkRead bool
	log              *slog.Logger
}

func NewPostgresClient(ctx context.Context, conf *config.Config, logger *slog.Logger) (*Postgres, error) {
	if !conf.Postgres.Enabled {
		return nil, nil
	}
	pool, err := Connect(ctx, conf.Postgres.DSN, func(c *pgxpool.Config) {
		if conf.Postgres.MaxConns > 0 {
			c.MaxConns = conf.Postgres.MaxConns
		}
	})
	if err != nil {
		return nil, err
	}
	return &Postgres{
		pool:             pool,
		separateMarkRead: conf.Inbox.SeparateMarkReadWrites,
		log:              logger.With(sl.Module("postgres")),
	}, nil
}

// Connect creates a pgx pool from the DSN and verifies it with a ping.
func Connect(ctx context.Context, dsn string, opts ...func(*pgxpool.Config)) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(normalizeDSN(dsn))
	if err != nil {
		return nil, fmt.Errorf("postgres: parse config: %w", err)
	}

	for _, opt := range opts {
		if opt != nil {
			opt(cfg)
		}
	}

	if cfg.MaxConns == 0 {
		cfg.MaxConns = 4
	}
	if cfg.MaxConnIdleTime == 0 {
		cfg.MaxConnIdleTime = 5 * time.Minute
	}
	if cfg.MaxConnLifetime == 0 {
		cfg.MaxConnLifetime = 60 * time.Minute
	}
	if cfg.HealthCheckPeriod == 0 {
		cfg.HealthCheckPeriod = 1 * time.Minute
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("postgres: new pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("postgres: ping: %w", err)
	}

	return pool, nil
}

// normalizeDSN strips driver suffixes such as "+asyncpg" that hosted
// database dashboards put into copied connection strings.
func normalizeDSN(dsn string) string {
	s := strings.TrimSpace(dsn)
	for _, prefix := range []string{"postgresql", "postgres"} {
		for _, driver := range []string{"+asyncpg", "+pgx", "+psycopg2"} {
			s = strings.Replace(s, prefix+driver+"://", prefix+"://", 1)
		}
	}
	return s
}

func (p *Postgres) Close() {
	p.pool.Close()
}
