package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dan9191/tax-ledger/internal/models"
)

var columns = []string{"id", "company", "amount", "payment_date", "status", "due_date", "tax_rate"}

func newMockRepo(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewRepository(db), mock
}

func acme() models.PaymentRecord {
	return models.PaymentRecord{
		Company:     "Acme",
		Amount:      decimal.NewFromInt(1000),
		PaymentDate: models.NewDate(2024, time.January, 10),
		Status:      models.StatusPaid,
		DueDate:     models.NewDate(2024, time.April, 15),
		TaxRate:     decimal.RequireFromString("0.08"),
	}
}

func TestInsert(t *testing.T) {
	repo, mock := newMockRepo(t)
	rec := acme()

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO tax.payments")).
		WithArgs("Acme", rec.Amount, rec.PaymentDate, "Paid", rec.DueDate, rec.TaxRate).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(42)))

	require.NoError(t, repo.Insert(context.Background(), &rec))
	assert.Equal(t, int64(42), rec.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInsert_UnpaidStoresNullPaymentDate(t *testing.T) {
	repo, mock := newMockRepo(t)
	rec := acme()
	rec.PaymentDate = models.Date{}
	rec.Status = models.StatusUnpaid

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO tax.payments")).
		WithArgs("Acme", rec.Amount, nil, "Unpaid", rec.DueDate, rec.TaxRate).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(1)))

	require.NoError(t, repo.Insert(context.Background(), &rec))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInsert_Error(t *testing.T) {
	repo, mock := newMockRepo(t)
	rec := acme()
	boom := errors.New("boom")

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO tax.payments")).WillReturnError(boom)

	err := repo.Insert(context.Background(), &rec)
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "failed to create payment record")
}

func TestList(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta(selectColumns + " ORDER BY id")).
		WillReturnRows(sqlmock.NewRows(columns).
			AddRow(int64(1), "Acme", "1000", time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC), "Paid", time.Date(2024, 4, 15, 0, 0, 0, 0, time.UTC), "0.08").
			AddRow(int64(2), "Globex", "250.50", nil, "Unpaid", time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC), "0.07"))

	records, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, int64(1), records[0].ID)
	assert.True(t, records[0].Amount.Equal(decimal.NewFromInt(1000)))
	assert.Equal(t, "2024-01-10", records[0].PaymentDate.String())
	assert.Equal(t, models.StatusPaid, records[0].Status)
	assert.True(t, records[0].TaxRate.Equal(decimal.RequireFromString("0.08")))

	assert.True(t, records[1].PaymentDate.IsZero())
	assert.Equal(t, "2024-06-15", records[1].DueDate.String())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestList_Empty(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta(selectColumns)).WillReturnRows(sqlmock.NewRows(columns))

	records, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, records)
	assert.Empty(t, records)
}

func TestListByDueDate(t *testing.T) {
	repo, mock := newMockRepo(t)
	due := models.NewDate(2024, time.April, 15)

	mock.ExpectQuery(regexp.QuoteMeta(selectColumns + " WHERE due_date = $1 ORDER BY id")).
		WithArgs(due).
		WillReturnRows(sqlmock.NewRows(columns).
			AddRow(int64(3), "Acme", "1000", nil, "Unpaid", time.Date(2024, 4, 15, 0, 0, 0, 0, time.UTC), "0.08"))

	records, err := repo.ListByDueDate(context.Background(), due)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.True(t, records[0].DueDate.Equal(due))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestList_ScanError(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta(selectColumns)).
		WillReturnRows(sqlmock.NewRows(columns).
			AddRow(int64(1), "Acme", "not-a-number", nil, "Paid", time.Now(), "0.08"))

	_, err := repo.List(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to scan payment record")
}

func TestUpdate(t *testing.T) {
	repo, mock := newMockRepo(t)
	rec := acme()
	rec.ID = 5

	mock.ExpectExec(regexp.QuoteMeta("UPDATE tax.payments")).
		WithArgs("Acme", rec.Amount, rec.PaymentDate, "Paid", rec.DueDate, rec.TaxRate, int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Update(context.Background(), rec))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdate_NotFound(t *testing.T) {
	repo, mock := newMockRepo(t)
	rec := acme()
	rec.ID = 404

	mock.ExpectExec(regexp.QuoteMeta("UPDATE tax.payments")).
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.ErrorIs(t, repo.Update(context.Background(), rec), ErrRecordNotFound)
}

func TestDelete(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM tax.payments WHERE id = $1")).
		WithArgs(int64(9)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, repo.Delete(context.Background(), 9))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMigrate(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE IF NOT EXISTS tax.payments")).
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, repo.Migrate(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestConnectionFailure(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	repo := NewRepository(db)
	mock.ExpectClose()
	db.Close()

	_, err = repo.List(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to acquire connection")
}
