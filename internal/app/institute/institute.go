// Package institute собирает HTTP-приложение учебного центра: хранилище, кеш,
// очередь событий, клиент Google Sheets, сервисы и маршруты.
package institute

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"

	"github.com/magabrotheeeer/institute-api/internal/cache"
	"github.com/magabrotheeeer/institute-api/internal/config"
	"github.com/magabrotheeeer/institute-api/internal/lib/jwt"
	"github.com/magabrotheeeer/institute-api/internal/lib/rabbitmq"
	"github.com/magabrotheeeer/institute-api/internal/lib/sl"
	"github.com/magabrotheeeer/institute-api/internal/migrations"
	"github.com/magabrotheeeer/institute-api/internal/services/auth"
	"github.com/magabrotheeeer/institute-api/internal/services/catalog"
	"github.com/magabrotheeeer/institute-api/internal/services/leads"
	"github.com/magabrotheeeer/institute-api/internal/services/reviews"
	"github.com/magabrotheeeer/institute-api/internal/sheets"
	"github.com/magabrotheeeer/institute-api/internal/storage/memory"
	"github.com/magabrotheeeer/institute-api/internal/storage/postgresql"
)

const shutdownTimeout = 15 * time.Second

// Store объединяет методы хранилища, которыми пользуются сервисы.
type Store interface {
	auth.UserRepository
	reviews.Repository
	leads.ContactRepository
	Close() error
}

// App HTTP-сервер вместе с ресурсами, которые надо закрыть при остановке.
type App struct {
	server  *http.Server
	logger  *slog.Logger
	closers []io.Closer
}

// New инициализирует зависимости. Ошибка подключения к таблице прерывает запуск.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	const op = "app.institute.New"

	app := &App{logger: logger}
	fail := func(err error) (*App, error) {
		app.closeAll()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	store, err := openStore(ctx, cfg, logger)
	if err != nil {
		return fail(err)
	}
	app.closers = append(app.closers, store)

	sheet, err := sheets.New(ctx, cfg.SheetID, sheets.Credentials{
		Email:      cfg.ServiceAccountEmail,
		PrivateKey: cfg.GoogleSheets.PrivateKey,
	})
	if err != nil {
		return fail(err)
	}
	logger.Info("google sheets connected", slog.Any("tabs", sheet.Titles()))

	courses, err := catalog.Load(cfg.CatalogPath)
	if err != nil {
		return fail(err)
	}

	var reviewCache reviews.Cache
	if cfg.AddressRedis != "" {
		redisCache, err := cache.InitServer(ctx, cfg.RedisConnection)
		if err != nil {
			return fail(err)
		}
		app.closers = append(app.closers, redisCache)
		reviewCache = redisCache
		logger.Info("reviews cache enabled", slog.String("address", cfg.AddressRedis))
	}

	leadOpts := []leads.Option{leads.WithAppendTimeout(cfg.AppendTimeout)}
	if cfg.AMQPURL != "" {
		publisher, err := rabbitmq.NewLeadPublisher(cfg.AMQPURL)
		if err != nil {
			return fail(err)
		}
		app.closers = append(app.closers, publisher)
		leadOpts = append(leadOpts, leads.WithPublisher(publisher))
		logger.Info("lead events enabled", slog.String("exchange", rabbitmq.LeadsExchange))
	}

	var authService *auth.Service
	if cfg.JWTSecretKey != "" {
		authService = auth.NewService(store, jwt.NewJWTMaker(cfg.JWTSecretKey, cfg.TokenTTL))
		if cfg.Admin.Username != "" {
			created, err := authService.EnsureAdmin(ctx, cfg.Admin.Username, cfg.Admin.Password)
			if err != nil {
				return fail(err)
			}
			logger.Info("admin account ready", slog.String("username", cfg.Admin.Username), slog.Bool("created", created))
		}
	}

	services := Services{
		Reviews: reviews.NewService(store, reviewCache, cfg.ReviewsTTL, logger),
		Leads:   leads.NewService(store, sheet, logger, leadOpts...),
		Catalog: courses,
		Auth:    authService,
	}

	router := chi.NewRouter()
	RegisterRoutes(router, logger, services)

	app.server = &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}
	return app, nil
}

func openStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (Store, error) {
	if cfg.StorageConnectionString == "" {
		logger.Info("using in-memory storage")
		return memory.New(), nil
	}

	db, err := postgresql.New(ctx, cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	if err := migrations.Run(db.DB, cfg.MigrationsPath); err != nil {
		_ = db.Close()
		return nil, err
	}
	logger.Info("using postgres storage")
	return db, nil
}

// Run запускает сервер и останавливает его после отмены ctx.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		a.closeAll()
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		a.closeAll()
		return err
	}
}

func (a *App) closeAll() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i].Close(); err != nil {
			a.logger.Warn("failed to close resource", sl.Err(err))
		}
	}
	a.closers = nil
}
