package api

import (
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"launchlist/internal/config"
	"launchlist/internal/http-server/handlers/accounts"
	"launchlist/internal/http-server/handlers/batch"
	"launchlist/internal/http-server/handlers/deployment"
	"launchlist/internal/http-server/handlers/errors"
	"launchlist/internal/http-server/handlers/settings"
	"launchlist/internal/http-server/handlers/submission"
	"launchlist/internal/http-server/handlers/waitlistcount"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	"launchlist/internal/http-server/middleware/authenticate"
	"launchlist/internal/http-server/middleware/timeout"
	"launchlist/lib/sl"
)

type Server struct {
	conf       *config.Config
	httpServer *http.Server
	log        *slog.Logger
}

type Handler interface {
	authenticate.Authenticate
	waitlistcount.Core
	submission.Core
	settings.Core
	batch.Core
	accounts.Core
	deployment.Core
}

func New(conf *config.Config, log *slog.Logger, handler Handler) error {

	server := Server{
		conf: conf,
		log:  log.With(sl.Module("api.server")),
	}

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Recoverer)
	router.Use(render.SetContentType(render.ContentTypeJSON))

	router.NotFound(errors.NotFound(log))
	router.MethodNotAllowed(errors.NotAllowed(log))

	router.Route("/api", func(rootApi chi.Router) {
		rootApi.Group(func(public chi.Router) {
			public.Use(timeout.Timeout(5))
			public.Get("/waitlist/count", waitlistcount.Get(log, handler))
			public.Post("/submissions", submission.Create(log, handler))
		})
		// no request timeout on the admin group: the launch batches walk
		// the whole waitlist sequentially and may run for a while
		rootApi.Route("/admin", func(admin chi.Router) {
			admin.Use(authenticate.New(log, handler))
			admin.Use(authenticate.Admin(log))
			admin.Get("/settings", settings.Get(log, handler))
			admin.Post("/settings", settings.Set(log, handler))
			admin.Post("/notify-waitlist", batch.Notify(log, handler))
			admin.Post("/create-accounts", batch.CreateAccounts(log, handler))
			admin.Get("/submissions", submission.List(log, handler))
			admin.Get("/accounts", accounts.List(log, handler))
			admin.Route("/deploy", func(dep chi.Router) {
				dep.Post("/", deployment.Trigger(log, handler))
				dep.Get("/", deployment.Status(log, handler))
			})
		})
	})

	httpLog := slog.NewLogLogger(log.Handler(), slog.LevelError)
	server.httpServer = &http.Server{
		Handler:      router,
		ErrorLog:     httpLog,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverAddress := fmt.Sprintf("%s:%s", conf.Listen.BindIp, conf.Listen.Port)
	listener, err := net.Listen("tcp", serverAddress)
	if err != nil {
		return err
	}

	server.log.Info("starting api server", slog.String("address", serverAddress))

	return server.httpServer.Serve(listener)
}
