package models

import (
	"fmt"
	"strings"
)

// PaymentStatus is the settlement state of a payment record.
type PaymentStatus string

const (
	StatusPaid   PaymentStatus = "Paid"
	StatusUnpaid PaymentStatus = "Unpaid"
)

// ParseStatus accepts a status label in any letter case.
func ParseStatus(s string) (PaymentStatus, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "paid":
		return StatusPaid, nil
	case "unpaid":
		return StatusUnpaid, nil
	}
	return "", fmt.Errorf("unknown payment status %q", s)
}
