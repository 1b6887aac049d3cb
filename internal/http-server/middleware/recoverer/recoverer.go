package recoverer

import (
	"GolfInbox/internal/lib/api/response"
	"GolfInbox/internal/lib/sl"
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
)

const unknownError = "Unknown error"

// New turns handler panics into a 500 JSON envelope.
func New(log *slog.Logger) func(next http.Handler) http.Handler {
	mod := sl.Module("middleware.recoverer")

	return func(next http.Handler) http.Handler {
		fn := func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}

				log.With(
					mod,
					slog.String("request_id", middleware.GetReqID(r.Context())),
					slog.Any("panic", rec),
					slog.String("stack", string(debug.Stack())),
				).Error("handler panic")

				render.Status(r, http.StatusInternalServerError)
				render.JSON(w, r, response.Error(Message(rec)))
			}()

			next.ServeHTTP(w, r)
		}
		return http.HandlerFunc(fn)
	}
}

// Message extracts a client-facing message from a recovered value.
func Message(rec any) string {
	switch v := rec.(type) {
	case error:
		return v.Error()
	case string:
		return v
	default:
		return unknownError
	}
}
