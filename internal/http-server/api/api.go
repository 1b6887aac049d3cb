package api

import (
	"GolfInbox/entity"
	"GolfInbox/internal/config"
	"GolfInbox/internal/http-server/handlers/apikey"
	"GolfInbox/internal/http-server/handlers/conversation"
	"GolfInbox/internal/http-server/handlers/errors"
	"GolfInbox/internal/http-server/middleware/authenticate"
	"GolfInbox/internal/http-server/middleware/recoverer"
	"GolfInbox/internal/http-server/middleware/timeout"
	"GolfInbox/internal/lib/sl"
	"GolfInbox/internal/ws"
	"context"
	"fmt"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"log/slog"
	"net"
	"net/http"
	"time"
)

const requestTimeout = 10

type Server struct {
	conf       *config.Config
	httpServer *http.Server
	log        *slog.Logger
}

type Handler interface {
	authenticate.Authenticate
	apikey.Core
	conversation.Core
	ws.Authenticator
}

// NewRouter builds the API routes. The websocket endpoint authenticates by
// query token and sits outside the header-authenticated group.
func NewRouter(log *slog.Logger, handler Handler, hub *ws.Hub) http.Handler {
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(recoverer.New(log))

	router.NotFound(errors.NotFound(log))
	router.MethodNotAllowed(errors.NotAllowed(log))

	router.Route("/api/v1", func(v1 chi.Router) {
		if hub != nil {
			v1.Get("/ws", func(w http.ResponseWriter, r *http.Request) {
				ws.ServeWs(hub, handler, log, w, r)
			})
		}

		v1.Group(func(r chi.Router) {
			r.Use(timeout.Timeout(requestTimeout))
			r.Use(render.SetContentType(render.ContentTypeJSON))
			r.Use(authenticate.New(log, handler))

			r.Post("/keys", apikey.Generate(log, handler))

			r.Route("/conversations", func(r chi.Router) {
				r.Get("/", conversation.List(log, handler))
				r.Get("/unread", conversation.Unread(log, handler))
			})

			for _, source := range entity.Sources {
				r.Route(fmt.Sprintf("/%s/conversations/{id}", source), func(r chi.Router) {
					r.Put("/read", conversation.MarkRead(log, handler, source))
					r.Get("/messages", conversation.Messages(log, handler, source))
				})
			}
		})
	})

	return router
}

// New serves the API until ctx is cancelled.
func New(ctx context.Context, conf *config.Config, log *slog.Logger, handler Handler, hub *ws.Hub) error {

	server := Server{
		conf: conf,
		log:  log.With(sl.Module("api.server")),
	}

	httpLog := slog.NewLogLogger(log.Handler(), slog.LevelError)
	server.httpServer = &http.Server{
		Handler:           NewRouter(log, handler, hub),
		ErrorLog:          httpLog,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverAddress := fmt.Sprintf("%s:%s", conf.Listen.BindIP, conf.Listen.Port)
	listener, err := net.Listen("tcp", serverAddress)
	if err != nil {
		return err
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.httpServer.Shutdown(shutdownCtx); err != nil {
			server.log.Error("shutdown", sl.Err(err))
		}
	}()

	server.log.Info("starting api server", slog.String("address", serverAddress))

	err = server.httpServer.Serve(listener)
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}
