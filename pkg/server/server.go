package server

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	handlers "github.com/de-tools/area-atlas/pkg/handlers/report"
	"github.com/de-tools/area-atlas/pkg/store/duckdb/reports"
	"github.com/de-tools/area-atlas/pkg/store/duckdb/runs"

	atlasmiddleware "github.com/de-tools/area-atlas/pkg/server/middleware"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

const defaultShutdownTimeout = 10 * time.Second

type WebAPI struct {
	router          http.Handler
	logger          *zerolog.Logger
	server          *http.Server
	shutdownTimeout time.Duration
}

type Dependencies struct {
	Runner  handlers.Runner
	Runs    runs.Store
	Reports reports.Store
	Logger  zerolog.Logger
}

type Config struct {
	Addr            string
	ShutdownTimeout time.Duration
	Reports         handlers.Options
	Dependencies    Dependencies
}

func ConfigureRouter(config Config) http.Handler {
	reportHandler := handlers.NewHandler(
		config.Dependencies.Runner,
		config.Dependencies.Runs,
		config.Dependencies.Reports,
		config.Reports,
	)

	router := chi.NewRouter()

	router.Use(atlasmiddleware.Logger(&config.Dependencies.Logger))
	router.Use(middleware.Recoverer)

	router.Route("/api/v1", func(r chi.Router) {
		r.Post("/reports", reportHandler.CreateReport)
		r.Get("/runs", reportHandler.ListRuns)
		r.Get("/runs/{id}", reportHandler.GetRun)
	})

	return router
}

func NewWebAPI(config Config) *WebAPI {
	timeout := config.ShutdownTimeout
	if timeout <= 0 {
		timeout = defaultShutdownTimeout
	}
	router := ConfigureRouter(config)

	return &WebAPI{
		router:          router,
		logger:          &config.Dependencies.Logger,
		shutdownTimeout: timeout,
		server: &http.Server{
			Addr:    config.Addr,
			Handler: router,
		},
	}
}

func (w *WebAPI) Start() error {
	serverErrors := make(chan error, 1)
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	go func() {
		w.logger.Info().Str("addr", w.server.Addr).Msg("starting server")
		serverErrors <- w.server.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-shutdown:
		w.logger.Info().Msg("shutdown initiated")

		// Give outstanding requests a deadline for completion.
		ctx, cancel := context.WithTimeout(context.Background(), w.shutdownTimeout)
		defer cancel()

		err := w.server.Shutdown(ctx)
		if err != nil {
			w.logger.Error().Err(err).Msg("graceful shutdown failed")
			err = w.server.Close()
		}

		if err != nil {
			return err
		}
	}

	return nil
}
