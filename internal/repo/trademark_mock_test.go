package repo_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	pgxmock "github.com/pashagolub/pgxmock/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkarpenko/trademark-registry/backend/internal/domain"
	"github.com/mkarpenko/trademark-registry/backend/internal/repo"
)

// These tests exercise the repo's error mapping without a database.
// Happy-path SQL behavior (trigram matching, ON CONFLICT) is covered by the
// integration tests in trademark_test.go.

func newMockRepo(t *testing.T) (repo.TrademarkRepo, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return repo.NewTrademarkRepo(mock), mock
}

func TestTrademarkRepo_Create_MapsUniqueViolation(t *testing.T) {
	r, mock := newMockRepo(t)
	mock.ExpectExec("INSERT INTO trademarks").
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "trademarks_title_key"})

	err := r.Create(context.Background(), domain.NewTrademark(
		"TAKEN", nil, nil, nil, datePtr(2020, time.January, 1), nil))

	assert.ErrorIs(t, err, domain.ErrAlreadyRegistered)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTrademarkRepo_Create_WrapsStorageError(t *testing.T) {
	r, mock := newMockRepo(t)
	boom := errors.New("connection refused")
	mock.ExpectExec("INSERT INTO trademarks").WillReturnError(boom)

	err := r.Create(context.Background(), domain.NewTrademark(
		"ANY", nil, nil, nil, datePtr(2020, time.January, 1), nil))

	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, domain.ErrAlreadyRegistered)
}

func TestTrademarkRepo_FindExact_MapsNoRows(t *testing.T) {
	r, mock := newMockRepo(t)
	mock.ExpectQuery("SELECT (.+) FROM trademarks").
		WillReturnError(pgx.ErrNoRows)

	_, err := r.FindExact(context.Background(), "MISSING")

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTrademarkRepo_FindSimilar_WrapsQueryError(t *testing.T) {
	r, mock := newMockRepo(t)
	boom := errors.New("query timeout")
	mock.ExpectQuery("SELECT (.+) FROM trademarks").WillReturnError(boom)

	_, err := r.FindSimilar(context.Background(), "anything", 0.5)

	assert.ErrorIs(t, err, boom)
}

func TestTrademarkRepo_CreateMany_ReportsInsertedCount(t *testing.T) {
	r, mock := newMockRepo(t)
	// Two rows offered, one skipped by ON CONFLICT.
	mock.ExpectExec("INSERT INTO trademarks").
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	inserted, err := r.CreateMany(context.Background(), []domain.Trademark{
		domain.NewTrademark("ONE", nil, nil, nil, datePtr(2020, time.January, 1), nil),
		domain.NewTrademark("TWO", nil, nil, nil, datePtr(2020, time.January, 1), nil),
	})

	require.NoError(t, err)
	assert.Equal(t, int64(1), inserted)
	assert.NoError(t, mock.ExpectationsWereMet())
}
