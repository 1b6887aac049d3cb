package conversation

import (
	"GolfInbox/entity"
	"GolfInbox/internal/lib/api/cont"
	"GolfInbox/internal/lib/api/response"
	"GolfInbox/internal/lib/sl"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
)

// MarkRead serves the mark-read endpoint of one message source.
func MarkRead(log *slog.Logger, handler Core, source entity.Source) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimSpace(chi.URLParam(r, "id"))
		logger := log.With(
			sl.Module("http.handlers.conversation"),
			slog.String("request_id", middleware.GetReqID(r.Context())),
			slog.String("source", string(source)),
			slog.String("conversation_id", id),
		)

		if id == "" {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("conversation id is required"))
			return
		}

		username := ""
		if user := cont.GetUser(r.Context()); user != nil {
			username = user.Username
		}

		read, err := handler.MarkConversationRead(r.Context(), source, id, username)
		if err != nil {
			logger.Error("mark conversation read", sl.Err(err))
			failed(w, r, err)
			return
		}

		logger.Debug("conversation marked read", slog.Int64("marked", read.Marked))
		render.JSON(w, r, response.Ok("Messages marked as read"))
	}
}
