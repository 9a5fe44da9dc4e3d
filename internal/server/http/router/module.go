package router

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"github.com/polkiloo/freightdesk/internal/adapter/events"
	"github.com/polkiloo/freightdesk/internal/server/http/handlers"
)

// Module registers HTTP router construction for fx runtime.
var Module = fx.Provide(newEngine)

type engineParams struct {
	fx.In

	Facade handlers.FreightFacade
	Hub    *events.Hub
	Logger *slog.Logger
}

func newEngine(p engineParams) *gin.Engine {
	return Setup(p.Facade, p.Hub, p.Logger)
}
