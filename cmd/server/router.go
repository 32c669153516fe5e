package main

import (
	"log/slog"
	"net/http"
	"time"

	"connectrpc.com/connect"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mmynk/tripsplit/internal/api"
	"github.com/mmynk/tripsplit/internal/auth"
	"github.com/mmynk/tripsplit/internal/metrics"
	"github.com/mmynk/tripsplit/internal/middleware"
	"github.com/mmynk/tripsplit/internal/service"
	"github.com/mmynk/tripsplit/internal/storage"
)

type routerDeps struct {
	store           storage.Store
	authenticator   auth.Authenticator
	jwtManager      *auth.JWTManager
	metrics         *metrics.Metrics
	gatherer        prometheus.Gatherer
	defaultCurrency string
	logger          *slog.Logger
}

// newRouter mounts the Connect services, /metrics and /healthz.
func newRouter(d routerDeps) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.Recoverer)
	r.Use(requestLogger(d.logger))
	r.Use(corsMiddleware)

	// Metrics and logging run outside auth so rejected calls are counted too.
	interceptors := connect.WithInterceptors(
		middleware.MetricsInterceptor(d.metrics),
		middleware.LoggingInterceptor(d.logger),
		middleware.RequireAuth(d.jwtManager, api.AuthServiceRegisterProcedure, api.AuthServiceLoginProcedure),
	)

	// Connect paths end in a slash; the wildcard routes every method of a service.
	mount := func(path string, h http.Handler) {
		r.Handle(path+"*", h)
	}
	mount(api.NewAuthServiceHandler(
		service.NewAuthService(d.authenticator, d.jwtManager, d.store, d.metrics, d.logger), interceptors))
	mount(api.NewTripServiceHandler(
		service.NewTripService(d.store, d.defaultCurrency, d.logger), interceptors))
	mount(api.NewReceiptServiceHandler(
		service.NewReceiptService(d.store, d.metrics, d.logger), interceptors))
	mount(api.NewBalanceServiceHandler(
		service.NewBalanceService(d.store, d.metrics, d.logger), interceptors))

	r.Handle("/metrics", promhttp.HandlerFor(d.gatherer, promhttp.HandlerOpts{}))
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok"))
	})
	return r
}

// requestLogger logs every HTTP request at debug level.
func requestLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			logger.Debug("Request completed",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"remote_addr", r.RemoteAddr,
				"duration_ms", time.Since(start).Milliseconds(),
			)
		})
	}
}

// corsMiddleware adds CORS headers for browser access.
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, Connect-Protocol-Version, Connect-Timeout-Ms")
		w.Header().Set("Access-Control-Expose-Headers", "Connect-Protocol-Version, Connect-Timeout-Ms")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
