package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
	"go.uber.org/zap"

	"github.com/DoyleJ11/attack15/internal/hub"
	"github.com/DoyleJ11/attack15/internal/ws"
)

type Options struct {
	AllowedOrigins []string
	OutboxSize     int
	Logger         *zap.Logger
}

func SetupRoutes(h *hub.Hub, opts Options) http.Handler {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	// Public routes
	r.Post("/sessions", CreateSession(h, opts.Logger))
	r.Get("/sessions/{code}", GetSession(h))
	r.Get("/rules", Rules(h))
	r.Get("/healthz", Healthz)
	r.Get("/ws", ws.Handler(h, ws.Options{
		OriginPatterns: opts.AllowedOrigins,
		OutboxSize:     opts.OutboxSize,
		Logger:         opts.Logger,
	}))

	c := cors.New(cors.Options{
		AllowedOrigins: opts.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost},
		AllowedHeaders: []string{"*"},
	})
	return c.Handler(r)
}
