package repository

import (
	"context"

	"github.com/polkiloo/freightdesk/internal/domain/model"
)

// InvoiceRepository persists invoices, one per load.
type InvoiceRepository interface {
	// Save upserts the draft invoice of a load. Sent invoices cannot be overwritten.
	Save(ctx context.Context, inv model.Invoice) (*model.Invoice, error)
	GetByLoad(ctx context.Context, loadID int64) (*model.Invoice, error)
	// Send stores the invoice as sent and moves the load to invoice_sent.
	// A key that was already used returns the stored invoice with replayed=true.
	Send(ctx context.Context, inv model.Invoice, idempotencyKey string) (stored *model.Invoice, replayed bool, err error)
	Approve(ctx context.Context, loadID int64) (*model.Invoice, error)
}
