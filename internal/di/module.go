package di

import (
	"go.uber.org/fx"

	"github.com/polkiloo/freightdesk/internal/adapter/events"
	"github.com/polkiloo/freightdesk/internal/adapter/routing"
	"github.com/polkiloo/freightdesk/internal/app"
	"github.com/polkiloo/freightdesk/internal/config"
	"github.com/polkiloo/freightdesk/internal/logger"
	"github.com/polkiloo/freightdesk/internal/pkg/auth"
	"github.com/polkiloo/freightdesk/internal/server/http/handlers"
	"github.com/polkiloo/freightdesk/internal/server/http/router"
	"github.com/polkiloo/freightdesk/internal/storage/postgres"
	"github.com/polkiloo/freightdesk/internal/usecase"
)

// Module assembles the whole service. Extra options are appended last so
// callers can replace any dependency.
func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		auth.Module,
		postgres.Module,
		routing.Module,
		events.Module,
		usecase.Module,
		fx.Provide(func(f *app.FreightFacade) handlers.FreightFacade { return f }),
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}
