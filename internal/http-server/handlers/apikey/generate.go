package apikey

import (
	"GolfInbox/entity"
	"GolfInbox/impl/core"
	"GolfInbox/internal/lib/api/cont"
	"GolfInbox/internal/lib/api/response"
	"GolfInbox/internal/lib/sl"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
)

// Generate issues a staff api key; an existing key of the user is returned as is.
func Generate(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		mod := sl.Module("http.handlers.apikey")

		logger := log.With(
			mod,
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		var req entity.ApiKeyRequest
		if err := render.Bind(r, &req); err != nil {
			logger.Error("bind request", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("Invalid request body"))
			return
		}
		logger = logger.With(slog.String("username", req.Username))

		key, err := handler.GenerateApiKey(r.Context(), cont.GetUser(r.Context()), req.Username)
		if err != nil {
			logger.Error("generate api key", sl.Err(err))
			switch {
			case errors.Is(err, core.ErrForbidden):
				render.Status(r, http.StatusForbidden)
				render.JSON(w, r, response.Error(err.Error()))
			case errors.Is(err, core.ErrNoRepository):
				render.Status(r, http.StatusInternalServerError)
				render.JSON(w, r, response.Error("Database not available"))
			default:
				render.Status(r, http.StatusInternalServerError)
				render.JSON(w, r, response.Error(err.Error()))
			}
			return
		}

		render.JSON(w, r, response.Key(key))
	}
}
