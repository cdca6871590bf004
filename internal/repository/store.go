package repository

import (
	"context"
	"errors"

	"github.com/Dan9191/tax-ledger/internal/models"
)

// ErrRecordNotFound is returned by Update when no row has the given ID
var ErrRecordNotFound = errors.New("payment record not found")

// PaymentStore persists payment records
type PaymentStore interface {
	Insert(ctx context.Context, record *models.PaymentRecord) error
	List(ctx context.Context) ([]models.PaymentRecord, error)
	ListByDueDate(ctx context.Context, dueDate models.Date) ([]models.PaymentRecord, error)
	Update(ctx context.Context, record models.PaymentRecord) error
	Delete(ctx context.Context, id int64) error
}
