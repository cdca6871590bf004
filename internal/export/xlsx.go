package export

import (
	"fmt"
	"io"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/Dan9191/tax-ledger/internal/models"
)

// LedgerSheet is the worksheet holding the exported ledger
const LedgerSheet = "Ledger"

// LedgerHeader is the first row of the ledger worksheet
var LedgerHeader = []any{"ID", "Company", "Amount", "Payment Date", "Status", "Due Date", "Tax Rate"}

// WriteLedgerXLSX writes all records as a single-sheet workbook
func WriteLedgerXLSX(w io.Writer, records []models.PaymentRecord) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", LedgerSheet); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	header := LedgerHeader
	if err := f.SetSheetRow(LedgerSheet, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for i, rec := range records {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []any{rec.ID, rec.Company, cellDecimal(rec.Amount), rec.PaymentDate.Display(), string(rec.Status), rec.DueDate.Display(), cellDecimal(rec.TaxRate)}
		if err := f.SetSheetRow(LedgerSheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write record %d: %w", rec.ID, err)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

// cellDecimal returns d as a number when a float64 holds it without loss,
// and as its exact text otherwise.
func cellDecimal(d decimal.Decimal) any {
	f, _ := d.Float64()
	if decimal.NewFromFloat(f).Equal(d) {
		return f
	}
	return d.String()
}
