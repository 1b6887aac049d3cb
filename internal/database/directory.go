package repository

import (
	"GolfInbox/entity"
	"context"
	"fmt"
)

// GetDirectoryUsers looks up exactly the given emails in one query.
// Emails missing from the directory are absent from the result.
func (p *Postgres) GetDirectoryUsers(ctx context.Context, emails []string) ([]entity.DirectoryUser, error) {
	if len(emails) == 0 {
		return nil, nil
	}

	rows, err := p.pool.Query(ctx,
		`SELECT email, display_name FROM allowed_users WHERE email = ANY($1)`,
		emails,
	)
	if err != nil {
		return nil, fmt.Errorf("postgres directory lookup: %w", err)
	}
	defer rows.Close()

	var users []entity.DirectoryUser
	for rows.Next() {
		var u entity.DirectoryUser
		if err := rows.Scan(&u.Email, &u.DisplayName); err != nil {
			return nil, fmt.Errorf("postgres scan directory user: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres directory lookup: %w", err)
	}
	return users, nil
}
