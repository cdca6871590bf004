package handler

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/Dan9191/tax-ledger/internal/models"
)

var summaryTable = template.Must(template.New("summary").Parse(
	`<table border="1"><tr><th>ID</th><th>Company</th><th>Amount</th><th>Payment Dates</th><th>Status</th><th>Due Date</th></tr>` +
		`{{range .Rows}}<tr><td>{{.ID}}</td><td>{{.Company}}</td><td>{{.Amount}}</td><td>{{.PaymentDate}}</td><td>{{.Status}}</td><td>{{.DueDate}}</td></tr>{{end}}` +
		`<tr><td colspan="5"><strong>Total Amount:</strong></td><td>&dollar;{{.TotalAmount}}</td></tr>` +
		`<tr><td colspan="5"><strong>Tax Rate:</strong></td><td>{{.TaxRatePercent}}%</td></tr>` +
		`<tr><td colspan="5"><strong>Tax Due:</strong></td><td>&dollar;{{.TaxDue}}</td></tr>` +
		`</table>`))

func renderSummaryTable(summary *models.Summary) (string, error) {
	var buf bytes.Buffer
	if err := summaryTable.Execute(&buf, summary); err != nil {
		return "", fmt.Errorf("failed to render summary: %w", err)
	}
	return buf.String(), nil
}
