package app

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/sahildmk/intention-app/internal/config"
	"github.com/sahildmk/intention-app/internal/transport/middleware"
	"github.com/sahildmk/intention-app/internal/transport/rest"
	"github.com/sahildmk/intention-app/internal/transport/rpc"
	"github.com/sahildmk/intention-app/pkg/ctxutil"
)

type tokenValidator interface {
	ValidateToken(ctx context.Context, token string) (ctxutil.Session, error)
}

// RouterDeps holds everything NewRouter mounts.
type RouterDeps struct {
	Log        *slog.Logger
	CORS       config.CORSConfig
	RateLimit  config.RateLimitConfig
	RPC        config.RPCConfig
	Tokens     tokenValidator
	Auth       *rest.AuthHandler
	Health     *rest.HealthHandler
	Procedures *rpc.Registry
	// Limiter may be nil, which disables rate limiting.
	Limiter *middleware.RateLimiter
}

// NewRouter builds the HTTP surface:
//
//	GET  /live, /ready, /health
//	POST /auth/register, /auth/login, /auth/refresh, /auth/logout
//	POST /rpc/{procedure}
//	GET  /rpc/ws (when enabled)
func NewRouter(d RouterDeps) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(d.Log))
	r.Use(middleware.Recovery(d.Log))
	r.Use(middleware.CORS(d.CORS))

	r.Get("/live", d.Health.Live)
	r.Get("/ready", d.Health.Ready)
	r.Get("/health", d.Health.Health)

	limit := func(perMinute int) middleware.Middleware {
		if d.Limiter == nil || !d.RateLimit.Enabled {
			return nil
		}
		return d.Limiter.Limit(perMinute)
	}
	auth := middleware.Auth(d.Tokens)

	r.Route("/auth", func(r chi.Router) {
		r.With(middleware.Chain(limit(d.RateLimit.Register))).Post("/register", d.Auth.Register)
		r.With(middleware.Chain(limit(d.RateLimit.Login))).Post("/login", d.Auth.Login)
		r.With(middleware.Chain(limit(d.RateLimit.Refresh))).Post("/refresh", d.Auth.Refresh)
		r.With(auth).Post("/logout", d.Auth.Logout)
	})

	r.Route("/rpc", func(r chi.Router) {
		r.Use(auth)
		r.Post("/{"+rpc.ProcedureParam+"}", rpc.NewHTTPHandler(d.Procedures, d.RPC.MaxBodyBytes).ServeHTTP)
		if d.RPC.WebSocketEnabled {
			r.Get("/ws", rpc.NewWSHandler(d.Procedures, d.Log, rpc.WSConfig{
				ReadLimit:    d.RPC.ReadLimit,
				PingInterval: d.RPC.PingInterval,
			}).ServeHTTP)
		}
	})

	return r
}
