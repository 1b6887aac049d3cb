package core

import (
	"GolfInbox/entity"
	"GolfInbox/internal/lib/validate"
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"log/slog"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrForbidden    = errors.New("only admin can issue api keys")
)


// AuthenticateByToken accepts the configured key or a key from the store.
func (c *Core) AuthenticateByToken(ctx context.Context, token string) (*entity.UserAuth, error) {
	if token == "" {
		return nil, ErrInvalidToken
	}
	if c.authKey != "" && subtle.ConstantTimeCompare([]byte(token), []byte(c.authKey)) == 1 {
		return &entity.UserAuth{Username: entity.AdminUsername, Token: token}, nil
	}
	if c.repo == nil {
		return nil, ErrInvalidToken
	}

	username, err := c.repo.CheckApiKey(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	if username == entity.AdminUsername {
		return nil, fmt.Errorf("%w: reserved username", ErrInvalidToken)
	}

	user := &entity.UserAuth{Username: username, Token: token}
	if err := validate.Struct(user); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	return user, nil
}

// ValidateToken returns the username behind a websocket token.
func (c *Core) ValidateToken(token string) (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), wsRequestTimeout)
	defer cancel()

	user, err := c.AuthenticateByToken(ctx, token)
	if err != nil {
		return "", err
	}
	return user.Username, nil
}

// GenerateApiKey issues a staff key. Only the configured admin key may do it.
func (c *Core) GenerateApiKey(ctx context.Context, requester *entity.UserAuth, username string) (string, error) {
	if requester == nil || !requester.IsAdmin() {
		return "", ErrForbidden
	}
	if c.repo == nil {
		return "", ErrNoRepository
	}

	key, err := c.repo.GenerateApiKey(ctx, username)
	if err != nil {
		return "", fmt.Errorf("failed to generate API key: %w", err)
	}

	c.log.With(
		slog.String("username", username),
		slog.String("issued_by", requester.Username),
	).Info("api key issued")
	return key, nil
}
