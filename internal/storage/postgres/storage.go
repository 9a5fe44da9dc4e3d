package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	pgxdecimal "github.com/jackc/pgx-shopspring-decimal"

	domainErrors "github.com/polkiloo/freightdesk/internal/domain/errors"
	"github.com/polkiloo/freightdesk/internal/domain/repository"
)

const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
)

type pgxPool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error)
	Ping(ctx context.Context) error
	Close()
}

var newPgxPool = func(ctx context.Context, cfg *pgxpool.Config) (pgxPool, error) {
	return pgxpool.NewWithConfig(ctx, cfg)
}

// querier is satisfied by both the pool and a transaction.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type rowScanner interface {
	Scan(dest ...any) error
}

// Storage acts as repository facade backed by PostgreSQL.
type Storage struct {
	pool   pgxPool
	logger *slog.Logger
}

// New connects to PostgreSQL, registers decimal types and bootstraps the schema.
func New(ctx context.Context, dsn string, logger *slog.Logger) (*Storage, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}
	cfg.AfterConnect = func(_ context.Context, conn *pgx.Conn) error {
		pgxdecimal.Register(conn.TypeMap())
		return nil
	}

	pool, err := newPgxPool(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}

	storage := &Storage{pool: pool, logger: logger}
	if err := storage.initSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return storage, nil
}

// Close releases database resources.
func (s *Storage) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// Factory methods for domain repositories.
func (s *Storage) Users() repository.UserRepository {
	return &userRepository{storage: s}
}

func (s *Storage) Loads() repository.LoadRepository {
	return &loadRepository{storage: s}
}

func (s *Storage) Bids() repository.BidRepository {
	return &bidRepository{storage: s}
}

func (s *Storage) Invoices() repository.InvoiceRepository {
	return &invoiceRepository{storage: s}
}

func (s *Storage) Distances() repository.DistanceCache {
	return &distanceCache{storage: s}
}

var _ repository.Factory = (*Storage)(nil)

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS users (
            id BIGSERIAL PRIMARY KEY,
            login TEXT UNIQUE NOT NULL,
            password_hash TEXT NOT NULL,
            role TEXT NOT NULL,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
	`CREATE TABLE IF NOT EXISTS loads (
            id BIGSERIAL PRIMARY KEY,
            shipper_id BIGINT NOT NULL REFERENCES users(id),
            pickup_city TEXT NOT NULL,
            pickup_state TEXT NOT NULL DEFAULT '',
            pickup_address TEXT NOT NULL DEFAULT '',
            dropoff_city TEXT NOT NULL,
            dropoff_state TEXT NOT NULL DEFAULT '',
            dropoff_address TEXT NOT NULL DEFAULT '',
            weight_tons NUMERIC(12,3) NOT NULL,
            truck_type TEXT NOT NULL,
            rate_type TEXT NOT NULL,
            shipper_price NUMERIC(14,2),
            admin_price NUMERIC(14,2),
            accepted_bid_amount NUMERIC(14,2),
            suggested_price NUMERIC(14,2),
            status TEXT NOT NULL,
            quote_attempted_at TIMESTAMPTZ,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
	`CREATE TABLE IF NOT EXISTS bids (
            id BIGSERIAL PRIMARY KEY,
            load_id BIGINT NOT NULL REFERENCES loads(id),
            carrier_id BIGINT NOT NULL REFERENCES users(id),
            amount NUMERIC(14,2) NOT NULL,
            counter_amount NUMERIC(14,2),
            status TEXT NOT NULL,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
	`CREATE TABLE IF NOT EXISTS invoices (
            id BIGSERIAL PRIMARY KEY,
            load_id BIGINT UNIQUE NOT NULL REFERENCES loads(id),
            shipper_id BIGINT NOT NULL REFERENCES users(id),
            status TEXT NOT NULL,
            line_items JSONB NOT NULL,
            fuel_surcharge NUMERIC(14,2) NOT NULL DEFAULT 0,
            toll_charges NUMERIC(14,2) NOT NULL DEFAULT 0,
            handling_fee NUMERIC(14,2) NOT NULL DEFAULT 0,
            insurance_fee NUMERIC(14,2) NOT NULL DEFAULT 0,
            discount_amount NUMERIC(14,2) NOT NULL DEFAULT 0,
            discount_reason TEXT NOT NULL DEFAULT '',
            tax_applied BOOLEAN NOT NULL,
            tax_percent NUMERIC(6,3) NOT NULL DEFAULT 0,
            subtotal NUMERIC(14,2) NOT NULL,
            tax_amount NUMERIC(14,2) NOT NULL,
            total_amount NUMERIC(14,2) NOT NULL,
            payment_terms TEXT NOT NULL,
            due_date TEXT NOT NULL,
            notes TEXT NOT NULL DEFAULT '',
            idempotency_key TEXT UNIQUE,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            sent_at TIMESTAMPTZ,
            approved_at TIMESTAMPTZ
        )`,
	`CREATE TABLE IF NOT EXISTS distance_cache (
            origin TEXT NOT NULL,
            destination TEXT NOT NULL,
            distance_km INTEGER NOT NULL,
            updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            PRIMARY KEY (origin, destination)
        )`,
	`CREATE INDEX IF NOT EXISTS idx_loads_shipper ON loads(shipper_id, created_at DESC)`,
	`CREATE INDEX IF NOT EXISTS idx_loads_status ON loads(status, created_at)`,
	`CREATE INDEX IF NOT EXISTS idx_bids_load ON bids(load_id, created_at)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS uq_bids_accepted_per_load ON bids(load_id) WHERE status = 'accepted'`,
}

func (s *Storage) initSchema(ctx context.Context) error {
	for _, stmt := range schemaStatements {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}
	return nil
}

// WithinTransaction executes function inside transaction boundary.
func (s *Storage) WithinTransaction(ctx context.Context, fn func(pgx.Tx) error) (err error) {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		} else {
			err = tx.Commit(ctx)
		}
	}()

	err = fn(tx)
	return err
}

// HealthCheck verifies database connectivity.
func (s *Storage) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return s.pool.Ping(ctx)
}

// mapError translates driver errors into domain errors.
func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return domainErrors.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case codeUniqueViolation:
			return domainErrors.ErrAlreadyExists
		case codeForeignKeyViolation:
			return domainErrors.ErrNotFound
		}
	}
	return err
}

// isUniqueViolation reports whether err is a unique constraint violation.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == codeUniqueViolation
}
