package models

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// PaymentInput is a payment record as submitted by a client, before validation
type PaymentInput struct {
	Company     string `json:"company"`
	Amount      string `json:"amount"`
	PaymentDate string `json:"payment_date"`
	Status      string `json:"status"`
	DueDate     string `json:"due_date"`
	TaxRate     string `json:"tax_rate"`
}

// FieldError describes one rejected input field
type FieldError struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

// FieldErrors collects every rejected field of one input
type FieldErrors []FieldError

func (e FieldErrors) Error() string {
	msgs := make([]string, len(e))
	for i, fe := range e {
		msgs[i] = fmt.Sprintf("%s: %s", fe.Field, fe.Reason)
	}
	return strings.Join(msgs, "; ")
}

// Bounds for amount and tax_rate input
const (
	MaxIntegerDigits  = 18
	MaxFractionDigits = 10

	maxNumberLen = 64
)

// parseAmount parses a bounded decimal for field
func parseAmount(field, raw string) (decimal.Decimal, *FieldError) {
	raw = strings.TrimSpace(raw)
	if len(raw) > maxNumberLen {
		return decimal.Zero, &FieldError{Field: field, Reason: fmt.Sprintf("longer than %d characters", maxNumberLen)}
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, &FieldError{Field: field, Reason: fmt.Sprintf("%q is not a number", raw)}
	}
	exp := int64(d.Exponent())
	if exp < -MaxFractionDigits {
		return decimal.Zero, &FieldError{Field: field, Reason: fmt.Sprintf("more than %d decimal places", MaxFractionDigits)}
	}
	if d.IsZero() {
		return decimal.Zero, nil
	}
	if int64(d.NumDigits())+exp > MaxIntegerDigits {
		return decimal.Zero, &FieldError{Field: field, Reason: fmt.Sprintf("more than %d integer digits", MaxIntegerDigits)}
	}
	return d, nil
}

// Parse validates the input and converts it into a record without an ID.
// All fields are checked; the returned FieldErrors lists each failure.
func (in PaymentInput) Parse() (PaymentRecord, error) {
	var errs FieldErrors
	rec := PaymentRecord{Company: in.Company}

	var fe *FieldError
	if rec.Amount, fe = parseAmount("amount", in.Amount); fe != nil {
		errs = append(errs, *fe)
	}
	if rec.TaxRate, fe = parseAmount("tax_rate", in.TaxRate); fe != nil {
		errs = append(errs, *fe)
	}

	var err error
	if rec.PaymentDate, err = ParseDate(in.PaymentDate); err != nil {
		errs = append(errs, FieldError{Field: "payment_date", Reason: err.Error()})
	}

	if rec.DueDate, err = ParseDate(in.DueDate); err != nil {
		errs = append(errs, FieldError{Field: "due_date", Reason: err.Error()})
	} else if rec.DueDate.IsZero() {
		errs = append(errs, FieldError{Field: "due_date", Reason: "is required"})
	}

	if rec.Status, err = ParseStatus(in.Status); err != nil {
		errs = append(errs, FieldError{Field: "status", Reason: err.Error()})
	}

	if len(errs) > 0 {
		return PaymentRecord{}, errs
	}
	return rec, nil
}
