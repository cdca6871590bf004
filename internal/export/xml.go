package export

import (
	"fmt"
	"io"
	"strconv"

	"github.com/beevik/etree"

	"github.com/Dan9191/tax-ledger/internal/models"
)

// SummaryXML builds the filing document for one due-date summary
func SummaryXML(summary *models.Summary) *etree.Document {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	root := doc.CreateElement("TaxSummary")
	root.CreateAttr("dueDate", summary.DueDate.String())
	root.CreateAttr("mixedTaxRates", strconv.FormatBool(summary.MixedTaxRates))

	payments := root.CreateElement("Payments")
	for _, row := range summary.Rows {
		p := payments.CreateElement("Payment")
		p.CreateAttr("id", strconv.FormatInt(row.ID, 10))
		p.CreateElement("Company").SetText(row.Company)
		p.CreateElement("Amount").SetText(row.Amount.StringFixed(2))
		p.CreateElement("PaymentDate").SetText(row.PaymentDate)
		p.CreateElement("Status").SetText(string(row.Status))
	}

	totals := root.CreateElement("Totals")
	totals.CreateElement("TotalAmount").SetText(summary.TotalAmount.StringFixed(2))
	totals.CreateElement("TaxRatePercent").SetText(summary.TaxRatePercent.String())
	totals.CreateElement("TaxDue").SetText(summary.TaxDue.StringFixed(2))

	doc.Indent(2)
	return doc
}

// WriteSummaryXML writes the filing document for summary to w
func WriteSummaryXML(w io.Writer, summary *models.Summary) error {
	if _, err := SummaryXML(summary).WriteTo(w); err != nil {
		return fmt.Errorf("failed to write summary XML: %w", err)
	}
	return nil
}
