package routing

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/polkiloo/freightdesk/internal/config"
)

// Module exposes the routing client to the fx graph. The client is nil when
// no routing service is configured.
var Module = fx.Provide(newClient)

type clientParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

func newClient(p clientParams) (*HTTPClient, error) {
	if p.Config.RoutingServiceAddress == "" {
		p.Logger.Info("routing service not configured, using static distances")
		return nil, nil
	}
	return NewHTTPClient(p.Config.RoutingServiceAddress, p.Logger)
}
