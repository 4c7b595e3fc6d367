package router

import (
	"net/http"
	"time"

	_ "baby-feed-tracker/docs"
	mem "baby-feed-tracker/internal/adapters/storage/memory"
	"baby-feed-tracker/internal/domain/feeds"
	"baby-feed-tracker/internal/domain/voice"
	"baby-feed-tracker/internal/middleware"
	"baby-feed-tracker/internal/platform/logger"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Options struct {
	// Opcional: si no viene, in-memory (modo dev / tests).
	Table feeds.Table

	Logger   logger.Logger
	Unit     feeds.VolumeUnit
	Location *time.Location
}

// NewRouter arma el router sobre un único Service: todas las rutas
// comparten el mismo lock del registro.
func NewRouter(opts Options) http.Handler {
	log := opts.Logger
	if log == nil {
		log = logger.NewNop()
	}

	table := opts.Table
	if table == nil {
		table = mem.NewFeedTable()
	}

	svc := feeds.NewService(table, feeds.Options{
		Location: opts.Location,
		Unit:     opts.Unit,
		Logger:   log,
	})

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLogger(log))
	r.Use(chimw.Recoverer)
	r.Use(middleware.Caregiver)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	// Rutas por módulo
	r.Route("/api", func(api chi.Router) {
		feeds.RegisterRoutes(api, svc, log)
		voice.RegisterRoutes(api, svc, log)
	})

	return r
}
