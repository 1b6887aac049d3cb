package apikey

import (
	"GolfInbox/entity"
	"context"
)

type Core interface {
	GenerateApiKey(ctx context.Context, requester *entity.UserAuth, username string) (string, error)
}
