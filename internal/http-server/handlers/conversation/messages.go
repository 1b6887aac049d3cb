package conversation

import (
	"GolfInbox/entity"
	"GolfInbox/internal/lib/api/response"
	"GolfInbox/internal/lib/sl"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
)

// Messages returns message history of one conversation, newest first.
func Messages(log *slog.Logger, handler Core, source entity.Source) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		limit := 50
		offset := 0
		if l := r.URL.Query().Get("limit"); l != "" {
			if v, err := strconv.Atoi(l); err == nil && v > 0 {
				limit = v
			}
		}
		if o := r.URL.Query().Get("offset"); o != "" {
			if v, err := strconv.Atoi(o); err == nil && v >= 0 {
				offset = v
			}
		}

		messages, err := handler.GetConversationMessages(r.Context(), source, id, limit, offset)
		if err != nil {
			log.Error("get conversation messages",
				sl.Module("http.handlers.conversation"),
				slog.String("source", string(source)),
				slog.String("conversation_id", id),
				sl.Err(err),
			)
			failed(w, r, err)
			return
		}

		render.JSON(w, r, response.Messages(messages))
	}
}
