package conversation

import (
	"GolfInbox/entity"
	"GolfInbox/internal/lib/api/response"
	"GolfInbox/internal/lib/sl"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
)

// ParseFilter reads the list query. An unrecognized channel means no
// channel filter; includeInactive is a boolean defaulting to false.
func ParseFilter(r *http.Request) entity.ConversationFilter {
	var filter entity.ConversationFilter

	if channel, err := entity.ParseChannel(r.URL.Query().Get("channel")); err == nil {
		filter.Channel = channel
	}
	if v := r.URL.Query().Get("includeInactive"); v != "" {
		if include, err := strconv.ParseBool(v); err == nil {
			filter.IncludeInactive = include
		}
	}
	return filter
}

func List(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := log.With(
			sl.Module("http.handlers.conversation"),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		filter := ParseFilter(r)

		conversations, err := handler.ListConversations(r.Context(), filter)
		if err != nil {
			logger.With(
				slog.String("channel", string(filter.Channel)),
				slog.Bool("include_inactive", filter.IncludeInactive),
			).Error("list conversations", sl.Err(err))
			failed(w, r, err)
			return
		}

		logger.Debug("conversations listed", slog.Int("count", len(conversations)))
		render.JSON(w, r, response.Conversations(conversations))
	}
}
