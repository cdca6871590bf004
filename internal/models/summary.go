package models

import "github.com/shopspring/decimal"

// SummaryRow is one record as shown in a due-date summary table
type SummaryRow struct {
	ID          int64           `json:"id"`
	Company     string          `json:"company"`
	Amount      decimal.Decimal `json:"amount"`
	PaymentDate string          `json:"payment_date"` // MM/DD/YYYY or "not available"
	Status      PaymentStatus   `json:"status"`
	DueDate     string          `json:"due_date"` // MM/DD/YYYY
}

// Summary aggregates all records sharing a due date
type Summary struct {
	DueDate        Date            `json:"due_date"`
	Rows           []SummaryRow    `json:"rows"`
	TotalAmount    decimal.Decimal `json:"total_amount"`
	TaxRatePercent decimal.Decimal `json:"tax_rate_percent"`
	TaxDue         decimal.Decimal `json:"tax_due"`
	MixedTaxRates  bool            `json:"mixed_tax_rates"` // Rows disagree on tax rate; the first row's rate was used
	UnpaidCount    int             `json:"unpaid_count"`
}
