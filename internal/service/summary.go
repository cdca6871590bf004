package service

import (
	"github.com/shopspring/decimal"

	"github.com/Dan9191/tax-ledger/internal/models"
)

var hundred = decimal.NewFromInt(100)

// BuildSummary aggregates records that are already filtered to one due date.
// The tax rate of the first record applies to the whole total; MixedTaxRates
// reports when later records disagree with it.
func BuildSummary(dueDate models.Date, records []models.PaymentRecord) models.Summary {
	s := models.Summary{
		DueDate:        dueDate,
		Rows:           make([]models.SummaryRow, 0, len(records)),
		TotalAmount:    decimal.Zero,
		TaxRatePercent: decimal.Zero,
		TaxDue:         decimal.Zero,
	}
	if len(records) == 0 {
		return s
	}

	firstRate := records[0].TaxRate
	for _, rec := range records {
		s.TotalAmount = s.TotalAmount.Add(rec.Amount)
		if !rec.TaxRate.Equal(firstRate) {
			s.MixedTaxRates = true
		}
		if !rec.IsPaid() {
			s.UnpaidCount++
		}
		s.Rows = append(s.Rows, models.SummaryRow{
			ID:          rec.ID,
			Company:     rec.Company,
			Amount:      rec.Amount,
			PaymentDate: rec.PaymentDate.Display(),
			Status:      rec.Status,
			DueDate:     rec.DueDate.Display(),
		})
	}

	s.TaxRatePercent = firstRate.Mul(hundred)
	s.TaxDue = s.TotalAmount.Mul(s.TaxRatePercent).Shift(-2)
	return s
}
