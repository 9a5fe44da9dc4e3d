package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"github.com/polkiloo/freightdesk/internal/adapter/routing"
	"github.com/polkiloo/freightdesk/internal/config"
	"github.com/polkiloo/freightdesk/internal/domain/repository"
	"github.com/polkiloo/freightdesk/internal/pricing"
	"github.com/polkiloo/freightdesk/internal/usecase"
	"github.com/polkiloo/freightdesk/internal/worker"
)

// Module wires application services, runtime components, and lifecycle hooks.
var Module = fx.Options(
	fx.Provide(
		NewFreightFacade,
		newEstimator,
		func(e *pricing.Estimator) usecase.Quoter { return e },
		newHTTPServer,
		newQuoteProcessor,
	),
	fx.Invoke(registerLifecycle),
)

type serverParams struct {
	fx.In

	Config *config.Config
	Router *gin.Engine
}

func newHTTPServer(p serverParams) *http.Server {
	return &http.Server{
		Addr:    p.Config.RunAddress,
		Handler: p.Router,
	}
}

type estimatorParams struct {
	fx.In

	Routing *routing.HTTPClient
	Cache   repository.DistanceCache
	Logger  *slog.Logger
}

// newEstimator consults the static table first, then the routing service when
// configured, and finally draws a random distance.
func newEstimator(p estimatorParams) *pricing.Estimator {
	sources := []pricing.DistanceSource{pricing.DefaultStaticTable()}
	if p.Routing != nil {
		sources = append(sources, pricing.NewCachedSource(p.Routing, p.Cache, p.Logger))
	}
	return pricing.NewEstimator(pricing.NewRandomFallback(nil), p.Logger, sources...)
}

type workerParams struct {
	fx.In

	Facade *FreightFacade
	Config *config.Config
	Logger *slog.Logger
}

func newQuoteProcessor(p workerParams) *worker.QuoteProcessor {
	return worker.NewQuoteProcessor(
		p.Facade,
		p.Config.QuotePollInterval,
		p.Config.QuoteBatchSize,
		p.Config.WorkerPoolSize,
		p.Logger,
	)
}

type lifecycleParams struct {
	fx.In

	Lifecycle  fx.Lifecycle
	Shutdowner fx.Shutdowner
	Logger     *slog.Logger
	Server     *http.Server
	Worker     *worker.QuoteProcessor
	Facade     *FreightFacade
	Config     *config.Config
}

func registerLifecycle(p lifecycleParams) {
	p.Lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if p.Config.AdminLogin != "" {
				admin, err := p.Facade.EnsureAdmin(ctx, p.Config.AdminLogin, p.Config.AdminPassword)
				if err != nil {
					return fmt.Errorf("seed admin account: %w", err)
				}
				p.Logger.Info("admin account ready", slog.Int64("user_id", admin.ID), slog.String("login", admin.Login))
			}

			p.Logger.Info("starting freightdesk", slog.String("addr", p.Server.Addr))
			// the start context expires once startup completes
			p.Worker.Start(context.WithoutCancel(ctx))
			go func() {
				if err := p.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					p.Logger.Error("http server terminated", slog.String("error", err.Error()))
					_ = p.Shutdowner.Shutdown()
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			p.Worker.Stop()

			shutdownCtx := ctx
			cancel := func() {}
			if _, ok := ctx.Deadline(); !ok {
				shutdownCtx, cancel = context.WithTimeout(ctx, p.Config.ShutdownTimeout)
			}
			defer cancel()

			if err := p.Server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			p.Logger.Info("freightdesk stopped")
			return nil
		},
	})
}
