package flexotoolkit

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	// Swagger спецификация регистрируется в init пакета docs.
	_ "github.com/magabrotheeeer/flexo-toolkit/docs"
	"github.com/magabrotheeeer/flexo-toolkit/internal/config"
	"github.com/magabrotheeeer/flexo-toolkit/internal/http/handlers/auth/logout"
	"github.com/magabrotheeeer/flexo-toolkit/internal/http/handlers/auth/redirecturl"
	"github.com/magabrotheeeer/flexo-toolkit/internal/http/handlers/auth/session"
	"github.com/magabrotheeeer/flexo-toolkit/internal/http/handlers/color/convert"
	"github.com/magabrotheeeer/flexo-toolkit/internal/http/handlers/health"
	"github.com/magabrotheeeer/flexo-toolkit/internal/http/handlers/subscription/checkout"
	"github.com/magabrotheeeer/flexo-toolkit/internal/http/handlers/tools/area"
	"github.com/magabrotheeeer/flexo-toolkit/internal/http/handlers/tools/barcode"
	"github.com/magabrotheeeer/flexo-toolkit/internal/http/handlers/tools/distortion"
	"github.com/magabrotheeeer/flexo-toolkit/internal/http/handlers/tools/units"
	"github.com/magabrotheeeer/flexo-toolkit/internal/http/handlers/users/me"
	"github.com/magabrotheeeer/flexo-toolkit/internal/http/handlers/webhook/lemonsqueezy"
	"github.com/magabrotheeeer/flexo-toolkit/internal/http/middlewarectx"
	"github.com/magabrotheeeer/flexo-toolkit/internal/metrics"
)

// AuthService вход, проверка сессии и выход.
type AuthService interface {
	middlewarectx.Authenticator
	redirecturl.Service
	session.Service
	logout.Service
}

// AccountService профиль, статус подписки и события оплаты.
type AccountService interface {
	me.Service
	middlewarectx.StateGetter
	lemonsqueezy.Service
}

// Deps зависимости маршрутизатора.
type Deps struct {
	Config   *config.Config
	Logger   *slog.Logger
	Metrics  *metrics.Metrics
	Registry *prometheus.Registry
	Auth     AuthService
	Accounts AccountService
	Payments checkout.PaymentProvider
	Storage  health.Pinger
	Cache    health.Pinger
}

// NewRouter регистрирует все маршруты приложения.
func NewRouter(d Deps) http.Handler {
	cfg, logger := d.Config, d.Logger
	r := chi.NewRouter()

	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.RealIP,
		middleware.Logger,
		middleware.Recoverer,
		middlewarectx.MetricsMiddleware(d.Metrics),
		cors.Handler(cors.Options{
			AllowedOrigins:   cfg.AllowedOrigins,
			AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Content-Type", "Authorization", "x-api-key"},
			AllowCredentials: true,
			MaxAge:           300,
		}),
	)

	limiter := middlewarectx.NewClientLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst)
	cookie := cfg.Session.CookieName

	r.Route("/api", func(r chi.Router) {
		// Открытые конечные точки
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.RateLimitMiddleware(logger, limiter))
			r.Get("/oauth/google/redirect_url", redirecturl.New(logger, d.Auth).ServeHTTP)
			r.Post("/sessions", session.New(logger, d.Auth, cookie, d.Metrics.Logins).ServeHTTP)
			r.Get("/logout", logout.New(logger, d.Auth, cookie).ServeHTTP)
			r.Post("/color/convert", convert.New(logger, d.Metrics.ColorConversions).ServeHTTP)
		})

		// Webhook без сессии, проверяется подпись
		r.Post("/webhooks/lemonsqueezy",
			lemonsqueezy.New(logger, d.Accounts, cfg.LemonSqueezy.WebhookSecret, d.Metrics.WebhookEvents).ServeHTTP)

		// Группа с сессией
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.SessionMiddleware(logger, d.Auth, cookie))
			r.Get("/users/me", me.New(logger, d.Accounts).ServeHTTP)
			r.Post("/subscription/create-checkout", checkout.New(logger, d.Payments, d.Metrics.Checkouts).ServeHTTP)

			// Инструменты доступны в пробном периоде и с активной подпиской
			r.Route("/tools", func(r chi.Router) {
				r.Use(middlewarectx.SubscriptionStatusMiddleware(logger, d.Accounts, d.Metrics.AccessDenied))
				dist := distortion.New(logger)
				r.Get("/distortion/table", dist.Table)
				r.Post("/distortion", dist.Calculate)
				r.Post("/area", area.New(logger).ServeHTTP)
				r.Post("/units", units.New(logger).ServeHTTP)
				r.Post("/barcode/validate", barcode.New(logger).ServeHTTP)
			})
		})
	})

	r.Get("/health", health.New(logger, map[string]health.Pinger{
		"postgres": d.Storage,
		"redis":    d.Cache,
	}).ServeHTTP)
	r.Handle("/metrics", promhttp.HandlerFor(d.Registry, promhttp.HandlerOpts{}))
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)

	return r
}
