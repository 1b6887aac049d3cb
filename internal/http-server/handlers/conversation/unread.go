package conversation

import (
	"GolfInbox/internal/lib/api/response"
	"GolfInbox/internal/lib/sl"
	"log/slog"
	"net/http"

	"github.com/go-chi/render"
)

func Unread(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		summary, err := handler.GetUnreadSummary(r.Context())
		if err != nil {
			log.Error("unread summary", sl.Module("http.handlers.conversation"), sl.Err(err))
			failed(w, r, err)
			return
		}
		render.JSON(w, r, response.Unread(summary))
	}
}
