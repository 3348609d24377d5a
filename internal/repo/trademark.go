// Package repo contains all database access logic for the trademark registry.
// No business logic lives here — only SQL and type mapping.
package repo

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/mkarpenko/trademark-registry/backend/internal/domain"
)

// db is the minimal interface satisfied by *pgxpool.Pool, pgx.Conn, pgx.Tx,
// and pgxmock. Accepting this interface instead of *pgxpool.Pool directly
// lets integration tests pass a transaction that is rolled back after each
// test, and unit tests pass a mock.
type db interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// TrademarkRepo defines the persistence operations for Trademarks.
// The service layer and the bulk loader depend on this interface, not the
// concrete Postgres implementation.
type TrademarkRepo interface {
	// Create inserts a single trademark. Returns domain.ErrAlreadyRegistered
	// when the insert violates the unique index on title.
	Create(ctx context.Context, tm domain.Trademark) error

	// CreateMany inserts a batch in one multi-row statement, atomic per
	// batch. Rows whose title is already registered are skipped rather than
	// aborting the batch, so re-running a load is idempotent. Returns the
	// number of rows actually inserted.
	CreateMany(ctx context.Context, tms []domain.Trademark) (int64, error)

	// FindExact returns the record whose title equals the argument exactly.
	// Returns domain.ErrNotFound when no record matches. If several rows
	// somehow share a title, which one is returned is unspecified.
	FindExact(ctx context.Context, title string) (domain.Trademark, error)

	// FindSimilar returns all records whose trigram similarity to title
	// strictly exceeds threshold. The result is unordered and may be empty;
	// an empty result is not an error.
	FindSimilar(ctx context.Context, title string, threshold float64) ([]domain.Trademark, error)
}

// pgTrademarkRepo is the Postgres implementation of TrademarkRepo.
type pgTrademarkRepo struct {
	db db
}

// NewTrademarkRepo constructs a TrademarkRepo backed by the provided db
// connection. In production pass *pgxpool.Pool; in tests pass a pgx.Tx for
// rollback isolation or a pgxmock pool.
func NewTrademarkRepo(db db) TrademarkRepo {
	return &pgTrademarkRepo{db: db}
}

// uniqueViolation is the Postgres error code for a unique constraint breach.
const uniqueViolation = "23505"

// trademarkColumns is the column list shared by every statement, in the
// order scanTrademark expects.
const trademarkColumns = "id, title, description, application_number, application_date, registration_date, expiry_date"

// psql builds statements with Postgres-style $n placeholders.
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// Create inserts a single trademark row.
func (r *pgTrademarkRepo) Create(ctx context.Context, tm domain.Trademark) error {
	const q = `
		INSERT INTO trademarks (id, title, description, application_number, application_date, registration_date, expiry_date)
		VALUES (@id, @title, @description, @application_number, @application_date, @registration_date, @expiry_date)`

	args := pgx.NamedArgs{
		"id":                 tm.ID,
		"title":              tm.Title,
		"description":        tm.Description, // nil becomes NULL
		"application_number": tm.ApplicationNumber,
		"application_date":   tm.ApplicationDate,
		"registration_date":  tm.RegistrationDate,
		"expiry_date":        tm.ExpiryDate,
	}

	if _, err := r.db.Exec(ctx, q, args); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return fmt.Errorf("repo.TrademarkRepo.Create: %w", domain.ErrAlreadyRegistered)
		}
		return fmt.Errorf("repo.TrademarkRepo.Create: %w", err)
	}
	return nil
}

// CreateMany inserts a batch of trademarks in one multi-row INSERT.
// The statement is built with squirrel because the VALUES list length
// depends on the batch size. ON CONFLICT (title) DO NOTHING keeps the batch
// atomic while tolerating titles that are already registered.
func (r *pgTrademarkRepo) CreateMany(ctx context.Context, tms []domain.Trademark) (int64, error) {
	if len(tms) == 0 {
		return 0, nil
	}

	builder := psql.Insert("trademarks").
		Columns("id", "title", "description", "application_number",
			"application_date", "registration_date", "expiry_date").
		Suffix("ON CONFLICT (title) DO NOTHING")

	for _, tm := range tms {
		builder = builder.Values(tm.ID, tm.Title, tm.Description, tm.ApplicationNumber,
			tm.ApplicationDate, tm.RegistrationDate, tm.ExpiryDate)
	}

	q, args, err := builder.ToSql()
	if err != nil {
		return 0, fmt.Errorf("repo.TrademarkRepo.CreateMany: build: %w", err)
	}

	tag, err := r.db.Exec(ctx, q, args...)
	if err != nil {
		return 0, fmt.Errorf("repo.TrademarkRepo.CreateMany: %w", err)
	}
	return tag.RowsAffected(), nil
}

// FindExact retrieves the record whose title matches exactly.
func (r *pgTrademarkRepo) FindExact(ctx context.Context, title string) (domain.Trademark, error) {
	const q = `
		SELECT ` + trademarkColumns + `
		FROM trademarks
		WHERE title = @title
		LIMIT 1`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"title": title})
	result, err := scanTrademark(row)
	if err != nil {
		return domain.Trademark{}, fmt.Errorf("repo.TrademarkRepo.FindExact: %w", err)
	}
	return result, nil
}

// FindSimilar retrieves all records whose trigram similarity to title
// exceeds threshold. The `%` pre-filter lets Postgres use the trigram index
// before the exact similarity() comparison runs.
func (r *pgTrademarkRepo) FindSimilar(ctx context.Context, title string, threshold float64) ([]domain.Trademark, error) {
	const q = `
		SELECT ` + trademarkColumns + `
		FROM trademarks
		WHERE title % @title AND similarity(title, @title) > @threshold`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"title": title, "threshold": threshold})
	if err != nil {
		return nil, fmt.Errorf("repo.TrademarkRepo.FindSimilar: %w", err)
	}
	defer rows.Close()

	var tms []domain.Trademark
	for rows.Next() {
		tm, err := scanTrademark(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.TrademarkRepo.FindSimilar: scan: %w", err)
		}
		tms = append(tms, tm)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.TrademarkRepo.FindSimilar: rows: %w", err)
	}

	return tms, nil
}

// scanner is satisfied by both pgx.Row and pgx.Rows, allowing scanTrademark
// to be reused for both QueryRow and Query calls.
type scanner interface {
	Scan(dest ...any) error
}

// scanTrademark maps a single database row into a domain.Trademark,
// converting the UUID and the nullable text/date columns.
func scanTrademark(s scanner) (domain.Trademark, error) {
	var (
		tm      domain.Trademark
		id      pgtype.UUID
		desc    pgtype.Text
		appNum  pgtype.Text
		appDate pgtype.Date
		regDate pgtype.Date
		expDate pgtype.Date
	)

	err := s.Scan(&id, &tm.Title, &desc, &appNum, &appDate, &regDate, &expDate)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Trademark{}, domain.ErrNotFound
		}
		return domain.Trademark{}, err
	}

	tm.ID = uuid.UUID(id.Bytes)
	if desc.Valid {
		v := desc.String
		tm.Description = &v
	}
	if appNum.Valid {
		v := appNum.String
		tm.ApplicationNumber = &v
	}
	if appDate.Valid {
		v := appDate.Time
		tm.ApplicationDate = &v
	}
	if regDate.Valid {
		v := regDate.Time
		tm.RegistrationDate = &v
	}
	if expDate.Valid {
		v := expDate.Time
		tm.ExpiryDate = &v
	}

	return tm, nil
}
