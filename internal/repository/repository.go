package repository

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"

	"github.com/Dan9191/tax-ledger/internal/models"
)

//go:embed schema.sql
var schema string

const selectColumns = `SELECT id, company, amount, payment_date, status, due_date, tax_rate FROM tax.payments`

// Repository provides database operations on tax.payments
type Repository struct {
	db *sql.DB
}

// NewRepository initializes a new repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// withConn runs fn on a connection reserved for this call and always returns it to the pool
func (r *Repository) withConn(ctx context.Context, fn func(conn *sql.Conn) error) error {
	conn, err := r.db.Conn(ctx)
	if err != nil {
		return fmt.Errorf("failed to acquire connection: %w", err)
	}
	defer conn.Close()
	return fn(conn)
}

// Migrate creates the payments table and its indexes if they do not exist
func (r *Repository) Migrate(ctx context.Context) error {
	return r.withConn(ctx, func(conn *sql.Conn) error {
		if _, err := conn.ExecContext(ctx, schema); err != nil {
			return fmt.Errorf("failed to apply schema: %w", err)
		}
		return nil
	})
}

// Insert creates a new payment record and sets its ID
func (r *Repository) Insert(ctx context.Context, record *models.PaymentRecord) error {
	query := `
		INSERT INTO tax.payments (company, amount, payment_date, status, due_date, tax_rate)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`
	return r.withConn(ctx, func(conn *sql.Conn) error {
		err := conn.QueryRowContext(ctx, query, record.Company, record.Amount, record.PaymentDate,
			string(record.Status), record.DueDate, record.TaxRate).Scan(&record.ID)
		if err != nil {
			return fmt.Errorf("failed to create payment record: %w", err)
		}
		return nil
	})
}

// List returns every payment record in insertion order
func (r *Repository) List(ctx context.Context) ([]models.PaymentRecord, error) {
	var records []models.PaymentRecord
	err := r.withConn(ctx, func(conn *sql.Conn) error {
		rows, err := conn.QueryContext(ctx, selectColumns+` ORDER BY id`)
		if err != nil {
			return fmt.Errorf("failed to list payment records: %w", err)
		}
		records, err = scanRecords(rows)
		return err
	})
	return records, err
}

// ListByDueDate returns the payment records due on the given date in insertion order
func (r *Repository) ListByDueDate(ctx context.Context, dueDate models.Date) ([]models.PaymentRecord, error) {
	var records []models.PaymentRecord
	err := r.withConn(ctx, func(conn *sql.Conn) error {
		rows, err := conn.QueryContext(ctx, selectColumns+` WHERE due_date = $1 ORDER BY id`, dueDate)
		if err != nil {
			return fmt.Errorf("failed to list payment records due %s: %w", dueDate, err)
		}
		records, err = scanRecords(rows)
		return err
	})
	return records, err
}

// Update replaces every field of the record with the given ID
func (r *Repository) Update(ctx context.Context, record models.PaymentRecord) error {
	query := `
		UPDATE tax.payments
		SET company = $1, amount = $2, payment_date = $3, status = $4, due_date = $5, tax_rate = $6
		WHERE id = $7`
	return r.withConn(ctx, func(conn *sql.Conn) error {
		res, err := conn.ExecContext(ctx, query, record.Company, record.Amount, record.PaymentDate,
			string(record.Status), record.DueDate, record.TaxRate, record.ID)
		if err != nil {
			return fmt.Errorf("failed to update payment record %d: %w", record.ID, err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to update payment record %d: %w", record.ID, err)
		}
		if n == 0 {
			return ErrRecordNotFound
		}
		return nil
	})
}

// Delete removes the record with the given ID. Missing IDs are not an error.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	return r.withConn(ctx, func(conn *sql.Conn) error {
		if _, err := conn.ExecContext(ctx, `DELETE FROM tax.payments WHERE id = $1`, id); err != nil {
			return fmt.Errorf("failed to delete payment record %d: %w", id, err)
		}
		return nil
	})
}

func scanRecords(rows *sql.Rows) ([]models.PaymentRecord, error) {
	defer rows.Close()

	records := make([]models.PaymentRecord, 0)
	for rows.Next() {
		var (
			rec    models.PaymentRecord
			status string
		)
		if err := rows.Scan(&rec.ID, &rec.Company, &rec.Amount, &rec.PaymentDate, &status, &rec.DueDate, &rec.TaxRate); err != nil {
			return nil, fmt.Errorf("failed to scan payment record: %w", err)
		}
		rec.Status = models.PaymentStatus(status)
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read payment records: %w", err)
	}
	return records, nil
}

var _ PaymentStore = (*Repository)(nil)
