package identityhub

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"

	adminlogin "github.com/telegram-suite/identity-hub/internal/http-server/handlers/admin/login"
	adminregister "github.com/telegram-suite/identity-hub/internal/http-server/handlers/admin/register"
	apikeyissue "github.com/telegram-suite/identity-hub/internal/http-server/handlers/apikey/issue"
	apikeyrevoke "github.com/telegram-suite/identity-hub/internal/http-server/handlers/apikey/revoke"
	"github.com/telegram-suite/identity-hub/internal/http-server/handlers/health"
	paymentlist "github.com/telegram-suite/identity-hub/internal/http-server/handlers/payment/list"
	servicecreate "github.com/telegram-suite/identity-hub/internal/http-server/handlers/service/create"
	servicelist "github.com/telegram-suite/identity-hub/internal/http-server/handlers/service/list"
	serviceremove "github.com/telegram-suite/identity-hub/internal/http-server/handlers/service/remove"
	serviceupdate "github.com/telegram-suite/identity-hub/internal/http-server/handlers/service/update"
	subcreate "github.com/telegram-suite/identity-hub/internal/http-server/handlers/subscription/create"
	sublist "github.com/telegram-suite/identity-hub/internal/http-server/handlers/subscription/list"
	subread "github.com/telegram-suite/identity-hub/internal/http-server/handlers/subscription/read"
	subremove "github.com/telegram-suite/identity-hub/internal/http-server/handlers/subscription/remove"
	subupdate "github.com/telegram-suite/identity-hub/internal/http-server/handlers/subscription/update"
	userread "github.com/telegram-suite/identity-hub/internal/http-server/handlers/user/read"
	"github.com/telegram-suite/identity-hub/internal/http-server/mware"
	"github.com/telegram-suite/identity-hub/internal/lib/jwt"
	adminservice "github.com/telegram-suite/identity-hub/internal/services/admin"
	apikeyservice "github.com/telegram-suite/identity-hub/internal/services/apikey"
	catalogservice "github.com/telegram-suite/identity-hub/internal/services/catalog"
	paymentservice "github.com/telegram-suite/identity-hub/internal/services/payment"
	"github.com/telegram-suite/identity-hub/internal/storage/repository"
)

// RegisterRoutes регистрирует все маршруты административной панели.
// Открыты только /admin/register, /admin/login, /health и /metrics,
// остальное закрыто JWT.
func RegisterRoutes(r chi.Router, logger *slog.Logger, jwtMaker jwt.Maker,
	db *repository.Storage,
	adminService *adminservice.Service,
	apikeyService *apikeyservice.Service,
	catalogService *catalogservice.Service,
	paymentService *paymentservice.Service,
) {
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)

	limiter := rate.NewLimiter(rate.Limit(50), 100)

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/admin/register", adminregister.New(logger, adminService))
		r.Post("/admin/login", adminlogin.New(logger, adminService))

		r.Group(func(r chi.Router) {
			r.Use(mware.JWTMiddleware(jwtMaker, logger))
			r.Use(mware.RateLimitMiddleware(limiter, logger))

			r.Post("/services", servicecreate.New(logger, db))
			r.Get("/services", servicelist.New(logger, db))
			r.Patch("/services/{id}", serviceupdate.New(logger, db))
			r.Delete("/services/{id}", serviceremove.New(logger, db))
			r.Post("/services/{id}/keys", apikeyissue.New(logger, apikeyService))
			r.Delete("/keys/{id}", apikeyrevoke.New(logger, apikeyService))

			r.Post("/subscriptions", subcreate.New(logger, catalogService))
			r.Get("/subscriptions", sublist.New(logger, catalogService))
			r.Get("/subscriptions/{id}", subread.New(logger, catalogService))
			r.Patch("/subscriptions/{id}", subupdate.New(logger, catalogService))
			r.Delete("/subscriptions/{id}", subremove.New(logger, catalogService))

			r.Get("/users/{chatID}", userread.New(logger, db))
			r.Get("/users/{chatID}/payments", paymentlist.New(logger, paymentService))
		})
	})

	r.Handle("/metrics", promhttp.Handler())
	r.Get("/health", health.New(logger, db.DB))
}
