package usecase

import (
	"time"

	"go.uber.org/fx"

	"github.com/polkiloo/freightdesk/internal/config"
	"github.com/polkiloo/freightdesk/internal/invoice"
)

// Module provides core business use cases to the fx container.
var Module = fx.Provide(
	func() Clock { return time.Now },
	newInvoiceOptions,
	NewAuthUseCase,
	NewLoadUseCase,
	NewBidUseCase,
	NewInvoiceUseCase,
)

func newInvoiceOptions(cfg *config.Config) invoice.Options {
	mode := invoice.TaxApplied
	if cfg.TaxMode == config.TaxModeExempt {
		mode = invoice.TaxExempt
	}
	return invoice.Options{TaxMode: mode}
}
