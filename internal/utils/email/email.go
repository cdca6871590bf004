package email

import (
	"fmt"
	"net/smtp"
	"strings"

	"github.com/jordan-wright/email"
	"github.com/sirupsen/logrus"

	"github.com/Dan9191/tax-ledger/internal/config"
	"github.com/Dan9191/tax-ledger/internal/models"
)

// Sender handles sending emails via SMTP
type Sender struct {
	cfg    *config.Config
	logger *logrus.Logger
}

// NewSender creates a new email sender
func NewSender(cfg *config.Config, logger *logrus.Logger) *Sender {
	return &Sender{
		cfg:    cfg,
		logger: logger,
	}
}

// SendDueDateReminder mails the summary of an approaching due date
func (s *Sender) SendDueDateReminder(to []string, summary *models.Summary, daysLeft int) error {
	e := email.NewEmail()
	e.From = s.cfg.SenderEmail
	e.To = to
	e.Subject = ReminderSubject(summary, daysLeft)
	e.Text = []byte(ReminderBody(summary, daysLeft))

	addr := fmt.Sprintf("%s:%s", s.cfg.SMTPHost, s.cfg.SMTPPort)
	var auth smtp.Auth
	if s.cfg.SMTPUsername != "" {
		auth = smtp.PlainAuth("", s.cfg.SMTPUsername, s.cfg.SMTPPassword, s.cfg.SMTPHost)
	}
	if err := e.Send(addr, auth); err != nil {
		s.logger.Errorf("Failed to send reminder to %s: %v", strings.Join(to, ", "), err)
		return fmt.Errorf("failed to send email: %w", err)
	}

	s.logger.Infof("Email sent to %s: %s", strings.Join(to, ", "), e.Subject)
	return nil
}

// ReminderSubject is the subject line for a due-date reminder
func ReminderSubject(summary *models.Summary, daysLeft int) string {
	if daysLeft == 0 {
		return fmt.Sprintf("Tax payments due today (%s)", summary.DueDate.Display())
	}
	return fmt.Sprintf("Tax payments due in %d days (%s)", daysLeft, summary.DueDate.Display())
}

// ReminderBody lists the records of the summary and the totals
func ReminderBody(summary *models.Summary, daysLeft int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "The following tax payments are due on %s", summary.DueDate.Display())
	if daysLeft > 0 {
		fmt.Fprintf(&b, " (%d days left)", daysLeft)
	}
	b.WriteString(".\n\n")

	for _, row := range summary.Rows {
		fmt.Fprintf(&b, "  %-30s %14s  %-6s  paid: %s\n",
			row.Company, row.Amount.StringFixed(2), row.Status, row.PaymentDate)
	}

	fmt.Fprintf(&b, "\nTotal amount: $%s\n", summary.TotalAmount.StringFixed(2))
	fmt.Fprintf(&b, "Tax rate: %s%%\n", summary.TaxRatePercent.String())
	fmt.Fprintf(&b, "Tax due: $%s\n", summary.TaxDue.StringFixed(2))
	fmt.Fprintf(&b, "Unpaid records: %d\n", summary.UnpaidCount)
	if summary.MixedTaxRates {
		b.WriteString("\nNote: records for this date carry different tax rates; the first record's rate was applied.\n")
	}
	b.WriteString("\nBest regards,\nTax Ledger Service")
	return b.String()
}
