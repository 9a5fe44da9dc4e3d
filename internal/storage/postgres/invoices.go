package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	domainErrors "github.com/polkiloo/freightdesk/internal/domain/errors"
	"github.com/polkiloo/freightdesk/internal/domain/model"
)

type invoiceRepository struct {
	storage *Storage
}

const invoiceColumns = `id, load_id, shipper_id, status, line_items, fuel_surcharge, toll_charges,
       handling_fee, insurance_fee, discount_amount, discount_reason, tax_applied, tax_percent,
       subtotal, tax_amount, total_amount, payment_terms, due_date, notes,
       COALESCE(idempotency_key, ''), created_at, updated_at, sent_at, approved_at`

// upsertInvoice writes every editable column. Rows that left the draft status are never overwritten.
const upsertInvoice = `INSERT INTO invoices (load_id, shipper_id, status, line_items, fuel_surcharge,
                           toll_charges, handling_fee, insurance_fee, discount_amount, discount_reason,
                           tax_applied, tax_percent, subtotal, tax_amount, total_amount, payment_terms,
                           due_date, notes, idempotency_key, sent_at)
                       VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18,
                           NULLIF($19, ''), CASE WHEN $3 = 'sent' THEN NOW() END)
                       ON CONFLICT (load_id) DO UPDATE SET
                           status = EXCLUDED.status,
                           line_items = EXCLUDED.line_items,
                           fuel_surcharge = EXCLUDED.fuel_surcharge,
                           toll_charges = EXCLUDED.toll_charges,
                           handling_fee = EXCLUDED.handling_fee,
                           insurance_fee = EXCLUDED.insurance_fee,
                           discount_amount = EXCLUDED.discount_amount,
                           discount_reason = EXCLUDED.discount_reason,
                           tax_applied = EXCLUDED.tax_applied,
                           tax_percent = EXCLUDED.tax_percent,
                           subtotal = EXCLUDED.subtotal,
                           tax_amount = EXCLUDED.tax_amount,
                           total_amount = EXCLUDED.total_amount,
                           payment_terms = EXCLUDED.payment_terms,
                           due_date = EXCLUDED.due_date,
                           notes = EXCLUDED.notes,
                           idempotency_key = EXCLUDED.idempotency_key,
                           sent_at = EXCLUDED.sent_at,
                           updated_at = NOW()
                       WHERE invoices.status = 'draft'
                       RETURNING ` + invoiceColumns

func scanInvoice(row rowScanner) (*model.Invoice, error) {
	var (
		inv   model.Invoice
		items []byte
	)
	err := row.Scan(
		&inv.ID, &inv.LoadID, &inv.ShipperID, &inv.Status, &items,
		&inv.FuelSurcharge, &inv.TollCharges, &inv.HandlingFee, &inv.InsuranceFee,
		&inv.DiscountAmount, &inv.DiscountReason, &inv.TaxApplied, &inv.TaxPercent,
		&inv.Subtotal, &inv.TaxAmount, &inv.TotalAmount, &inv.PaymentTerms, &inv.DueDate, &inv.Notes,
		&inv.IdempotencyKey, &inv.CreatedAt, &inv.UpdatedAt, &inv.SentAt, &inv.ApprovedAt,
	)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(items, &inv.LineItems); err != nil {
		return nil, fmt.Errorf("decode line items of invoice %d: %w", inv.ID, err)
	}
	return &inv, nil
}

func upsertArgs(inv model.Invoice, status model.InvoiceStatus, key string) ([]any, error) {
	items, err := json.Marshal(inv.LineItems)
	if err != nil {
		return nil, fmt.Errorf("encode line items: %w", err)
	}
	return []any{
		inv.LoadID, inv.ShipperID, status, items, inv.FuelSurcharge,
		inv.TollCharges, inv.HandlingFee, inv.InsuranceFee, inv.DiscountAmount, inv.DiscountReason,
		inv.TaxApplied, inv.TaxPercent, inv.Subtotal, inv.TaxAmount, inv.TotalAmount, inv.PaymentTerms,
		inv.DueDate, inv.Notes, key,
	}, nil
}

func (r *invoiceRepository) Save(ctx context.Context, inv model.Invoice) (*model.Invoice, error) {
	args, err := upsertArgs(inv, model.InvoiceStatusDraft, "")
	if err != nil {
		return nil, err
	}
	stored, err := scanInvoice(r.storage.pool.QueryRow(ctx, upsertInvoice, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrConflict
		}
		return nil, mapError(err)
	}
	return stored, nil
}

func (r *invoiceRepository) GetByLoad(ctx context.Context, loadID int64) (*model.Invoice, error) {
	const query = `SELECT ` + invoiceColumns + ` FROM invoices WHERE load_id=$1`
	inv, err := scanInvoice(r.storage.pool.QueryRow(ctx, query, loadID))
	if err != nil {
		return nil, mapError(err)
	}
	return inv, nil
}

func (r *invoiceRepository) getByKey(ctx context.Context, q querier, key string) (*model.Invoice, error) {
	const query = `SELECT ` + invoiceColumns + ` FROM invoices WHERE idempotency_key=$1`
	inv, err := scanInvoice(q.QueryRow(ctx, query, key))
	if err != nil {
		return nil, mapError(err)
	}
	return inv, nil
}

func (r *invoiceRepository) Send(ctx context.Context, inv model.Invoice, idempotencyKey string) (*model.Invoice, bool, error) {
	const loadQuery = `UPDATE loads SET status='invoice_sent', updated_at=NOW() WHERE id=$1 AND status='awarded'`

	args, err := upsertArgs(inv, model.InvoiceStatusSent, idempotencyKey)
	if err != nil {
		return nil, false, err
	}

	var (
		stored   *model.Invoice
		replayed bool
	)
	err = r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		if idempotencyKey != "" {
			prior, err := r.getByKey(ctx, tx, idempotencyKey)
			switch {
			case err == nil:
				stored, replayed = prior, true
				return nil
			case !errors.Is(err, domainErrors.ErrNotFound):
				return err
			}
		}

		tag, err := tx.Exec(ctx, loadQuery, inv.LoadID)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return loadMissOrConflict(ctx, tx, inv.LoadID)
		}

		stored, err = scanInvoice(tx.QueryRow(ctx, upsertInvoice, args...))
		if errors.Is(err, pgx.ErrNoRows) {
			return domainErrors.ErrConflict
		}
		return err
	})

	// A concurrent send with the same key won the race.
	if err != nil && idempotencyKey != "" && isUniqueViolation(err) {
		prior, getErr := r.getByKey(ctx, r.storage.pool, idempotencyKey)
		if getErr == nil {
			return r.checkReplay(prior, inv.LoadID)
		}
	}
	if err != nil {
		return nil, false, mapError(err)
	}
	if replayed {
		return r.checkReplay(stored, inv.LoadID)
	}
	return stored, false, nil
}

// checkReplay refuses to reuse a key that belongs to another load.
func (r *invoiceRepository) checkReplay(prior *model.Invoice, loadID int64) (*model.Invoice, bool, error) {
	if prior.LoadID != loadID {
		return nil, false, fmt.Errorf("idempotency key used for load %d: %w", prior.LoadID, domainErrors.ErrConflict)
	}
	return prior, true, nil
}

func (r *invoiceRepository) Approve(ctx context.Context, loadID int64) (*model.Invoice, error) {
	const invoiceQuery = `UPDATE invoices SET status='approved', approved_at=NOW(), updated_at=NOW()
                          WHERE load_id=$1 AND status='sent'
                          RETURNING ` + invoiceColumns
	const loadQuery = `UPDATE loads SET status='invoice_approved', updated_at=NOW() WHERE id=$1 AND status='invoice_sent'`

	var approved *model.Invoice
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		inv, err := scanInvoice(tx.QueryRow(ctx, invoiceQuery, loadID))
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return domainErrors.ErrConflict
			}
			return err
		}
		tag, err := tx.Exec(ctx, loadQuery, loadID)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return domainErrors.ErrConflict
		}
		approved = inv
		return nil
	})
	if err != nil {
		return nil, err
	}
	return approved, nil
}
