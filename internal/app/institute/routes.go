package institute

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/magabrotheeeer/institute-api/internal/http/handlers/admin/contacts"
	"github.com/magabrotheeeer/institute-api/internal/http/handlers/admin/login"
	"github.com/magabrotheeeer/institute-api/internal/http/handlers/course/categories"
	courselist "github.com/magabrotheeeer/institute-api/internal/http/handlers/course/list"
	"github.com/magabrotheeeer/institute-api/internal/http/handlers/health"
	"github.com/magabrotheeeer/institute-api/internal/http/handlers/lead/brochure"
	"github.com/magabrotheeeer/institute-api/internal/http/handlers/lead/contact"
	"github.com/magabrotheeeer/institute-api/internal/http/handlers/review/create"
	reviewlist "github.com/magabrotheeeer/institute-api/internal/http/handlers/review/list"
	"github.com/magabrotheeeer/institute-api/internal/http/middlewarectx"
	"github.com/magabrotheeeer/institute-api/internal/metrics"
	"github.com/magabrotheeeer/institute-api/internal/services/auth"
	"github.com/magabrotheeeer/institute-api/internal/services/catalog"
	"github.com/magabrotheeeer/institute-api/internal/services/leads"
	"github.com/magabrotheeeer/institute-api/internal/services/reviews"
)

// Services сервисы, на которые опираются обработчики. Auth может быть nil,
// тогда маршруты администратора не регистрируются.
type Services struct {
	Reviews *reviews.Service
	Leads   *leads.Service
	Catalog *catalog.Service
	Auth    *auth.Service
}

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, s Services) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		metrics.Middleware,
	)

	r.Route("/api", func(r chi.Router) {
		r.Get("/reviews", reviewlist.New(logger, s.Reviews).ServeHTTP)
		r.Post("/reviews", create.New(logger, s.Reviews).ServeHTTP)
		r.Post("/contact", contact.New(logger, s.Leads).ServeHTTP)
		r.Post("/submit-brochure", brochure.New(logger, s.Leads).ServeHTTP)

		r.Get("/courses", courselist.New(logger, s.Catalog).ServeHTTP)
		r.Get("/courses/categories", categories.New(logger, s.Catalog).ServeHTTP)

		if s.Auth != nil {
			r.Route("/admin", func(r chi.Router) {
				r.Post("/login", login.New(logger, s.Auth).ServeHTTP)

				// Группа с JWT аутентификацией
				r.Group(func(r chi.Router) {
					r.Use(middlewarectx.JWTMiddleware(s.Auth, logger))
					r.Get("/contacts", contacts.New(logger, s.Leads).ServeHTTP)
				})
			})
		}
	})

	r.Get("/healthz", health.New(logger).ServeHTTP)
	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
