package conversation

import (
	"GolfInbox/impl/core"
	"GolfInbox/internal/lib/api/response"
	"errors"
	"net/http"

	"github.com/go-chi/render"
)

const msgNoDatabase = "Database not available"

// failed replies 500 with the store error text, or a fixed message when no
// store is configured.
func failed(w http.ResponseWriter, r *http.Request, err error) {
	message := err.Error()
	if errors.Is(err, core.ErrNoRepository) {
		message = msgNoDatabase
	}
	render.Status(r, http.StatusInternalServerError)
	render.JSON(w, r, response.Error(message))
}
