package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	domainErrors "github.com/polkiloo/freightdesk/internal/domain/errors"
	"github.com/polkiloo/freightdesk/internal/domain/model"
	"github.com/polkiloo/freightdesk/internal/domain/repository"
	"github.com/polkiloo/freightdesk/internal/invoice"
)

// InvoiceResult carries the composed draft alongside what storage returned.
// Draft is set even when persisting failed so the caller can retry.
type InvoiceResult struct {
	Draft    invoice.Draft
	Invoice  *model.Invoice
	Replayed bool
}

// InvoiceUseCase composes, stores and sends invoices.
type InvoiceUseCase struct {
	loads    repository.LoadRepository
	invoices repository.InvoiceRepository
	events   EventPublisher
	opts     invoice.Options
	clock    Clock
	logger   *slog.Logger
}

// NewInvoiceUseCase constructs InvoiceUseCase.
func NewInvoiceUseCase(
	loads repository.LoadRepository,
	invoices repository.InvoiceRepository,
	events EventPublisher,
	opts invoice.Options,
	clock Clock,
	logger *slog.Logger,
) *InvoiceUseCase {
	return &InvoiceUseCase{loads: loads, invoices: invoices, events: events, opts: opts, clock: clock, logger: logger}
}

// Preview composes a draft without storing it.
func (u *InvoiceUseCase) Preview(ctx context.Context, loadID int64, form invoice.Form) (invoice.Draft, error) {
	load, err := u.loads.GetByID(ctx, loadID)
	if err != nil {
		return invoice.Draft{}, err
	}
	return invoice.Compose(load.ID, load.ShipperID, u.opts, form), nil
}

// Save stores the draft invoice of a load.
func (u *InvoiceUseCase) Save(ctx context.Context, loadID int64, form invoice.Form) (InvoiceResult, error) {
	draft, err := u.Preview(ctx, loadID, form)
	if err != nil {
		return InvoiceResult{}, err
	}
	result := InvoiceResult{Draft: draft}

	stored, err := u.invoices.Save(ctx, draft.Invoice(u.clock.now()))
	if err != nil {
		return result, u.submissionError(OpSave, loadID, err)
	}

	result.Invoice = stored
	u.publish(ctx, model.EventInvoiceSaved, loadID, "")
	return result, nil
}

// Send submits the invoice to the shipper and moves the load to invoice_sent.
// Repeating a send with the same idempotency key returns the stored invoice.
// An empty key gets a fresh one, so such sends are never deduplicated.
func (u *InvoiceUseCase) Send(ctx context.Context, loadID int64, form invoice.Form, idempotencyKey string) (InvoiceResult, error) {
	draft, err := u.Preview(ctx, loadID, form)
	if err != nil {
		return InvoiceResult{}, err
	}
	result := InvoiceResult{Draft: draft}

	key := strings.TrimSpace(idempotencyKey)
	if key == "" {
		key = uuid.NewString()
	}

	inv := draft.Invoice(u.clock.now())
	stored, replayed, err := u.invoices.Send(ctx, inv, key)
	if err != nil {
		return result, u.submissionError(OpSend, loadID, err)
	}

	result.Invoice, result.Replayed = stored, replayed
	if replayed {
		u.logger.Info("invoice send replayed",
			slog.Int64("load_id", loadID),
			slog.String("idempotency_key", key),
		)
		return result, nil
	}

	u.publish(ctx, model.EventInvoiceSent, loadID, model.LoadStatusInvoiceSent)
	return result, nil
}

// Get returns the stored invoice of a load visible to the actor.
func (u *InvoiceUseCase) Get(ctx context.Context, actor Actor, loadID int64) (*model.Invoice, error) {
	load, err := u.loads.GetByID(ctx, loadID)
	if err != nil {
		return nil, err
	}
	if !actor.canView(load) {
		return nil, domainErrors.ErrNotFound
	}
	inv, err := u.invoices.GetByLoad(ctx, loadID)
	if err != nil {
		return nil, err
	}
	// shippers only see invoices once sent
	if actor.Role == model.RoleShipper && inv.Status == model.InvoiceStatusDraft {
		return nil, domainErrors.ErrNotFound
	}
	return inv, nil
}

// Approve is the shipper's acceptance of a sent invoice.
func (u *InvoiceUseCase) Approve(ctx context.Context, actor Actor, loadID int64) (*model.Invoice, error) {
	load, err := u.loads.GetByID(ctx, loadID)
	if err != nil {
		return nil, err
	}
	if actor.Role != model.RoleShipper || load.ShipperID != actor.UserID {
		return nil, domainErrors.ErrForbidden
	}
	if load.Status != model.LoadStatusInvoiceSent {
		return nil, fmt.Errorf("%w: load %d is %s", domainErrors.ErrIllegalTransition, loadID, load.Status)
	}

	inv, err := u.invoices.Approve(ctx, loadID)
	if err != nil {
		return nil, err
	}

	u.publish(ctx, model.EventLoadStatusChanged, loadID, model.LoadStatusInvoiceApproved)
	return inv, nil
}

// submissionError keeps workflow errors as they are and wraps transport failures.
func (u *InvoiceUseCase) submissionError(op SubmissionOp, loadID int64, err error) error {
	if errors.Is(err, domainErrors.ErrConflict) || errors.Is(err, domainErrors.ErrNotFound) {
		return err
	}
	u.logger.Error("invoice submission failed",
		slog.String("op", string(op)),
		slog.Int64("load_id", loadID),
		slog.String("error", err.Error()),
	)
	return &SubmissionError{Op: op, LoadID: loadID, Err: err}
}

func (u *InvoiceUseCase) publish(ctx context.Context, typ model.EventType, loadID int64, status model.LoadStatus) {
	u.events.Publish(ctx, model.Event{Type: typ, LoadID: loadID, Status: status, At: u.clock.now()})
}
