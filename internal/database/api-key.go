package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

func (p *Postgres) CheckApiKey(ctx context.Context, key string) (string, error) {
	var username string
	err := p.pool.QueryRow(ctx, `SELECT username FROM api_keys WHERE key = $1`, key).Scan(&username)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("postgres api key: %w", err)
	}
	return username, nil
}

// GenerateApiKey returns the username's key, creating one on first use.
func (p *Postgres) GenerateApiKey(ctx context.Context, username string) (string, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return "", fmt.Errorf("uuid generation error: %w", err)
	}

	_, err = p.pool.Exec(ctx,
		`INSERT INTO api_keys (key, username) VALUES ($1, $2) ON CONFLICT (username) DO NOTHING`,
		id.String(), username,
	)
	if err != nil {
		return "", fmt.Errorf("postgres insert api key: %w", err)
	}

	var key string
	err = p.pool.QueryRow(ctx, `SELECT key FROM api_keys WHERE username = $1`, username).Scan(&key)
	if err != nil {
		return "", fmt.Errorf("postgres api key by username: %w", err)
	}
	return key, nil
}
