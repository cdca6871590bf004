package events

import (
	"strconv"
	"time"

	"github.com/Dan9191/tax-ledger/internal/models"
)

// Topic receives every payment record change.
const Topic = "payment_record_changed"

// Action names the kind of change.
type Action string

const (
	ActionCreated Action = "payment_record.created"
	ActionUpdated Action = "payment_record.updated"
	ActionDeleted Action = "payment_record.deleted"
)

// PaymentRecordChanged is published after a successful write. Record is nil for deletions.
type PaymentRecordChanged struct {
	EventID    string                `json:"event_id"`
	Action     Action                `json:"action"`
	RecordID   int64                 `json:"record_id"`
	Record     *models.PaymentRecord `json:"record,omitempty"`
	OccurredAt time.Time             `json:"occurred_at"`
}

// EventKey partitions events by record so changes to one record stay ordered.
func (e PaymentRecordChanged) EventKey() string {
	return strconv.FormatInt(e.RecordID, 10)
}
