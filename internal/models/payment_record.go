package models

import (
	"github.com/shopspring/decimal"
)

// PaymentRecord represents a tax payment owed by a company for one due date
type PaymentRecord struct {
	ID          int64           `json:"id"`
	Company     string          `json:"company"`
	Amount      decimal.Decimal `json:"amount"`
	PaymentDate Date            `json:"payment_date"` // Zero when not yet paid
	Status      PaymentStatus   `json:"status"`
	DueDate     Date            `json:"due_date"`
	TaxRate     decimal.Decimal `json:"tax_rate"` // Fraction, 0.07 = 7%
}

// IsPaid reports whether the record carries the Paid status
func (r PaymentRecord) IsPaid() bool {
	return r.Status == StatusPaid
}
