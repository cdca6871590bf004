package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/Dan9191/tax-ledger/internal/events"
	"github.com/Dan9191/tax-ledger/internal/models"
	modelevents "github.com/Dan9191/tax-ledger/internal/models/events"
	"github.com/Dan9191/tax-ledger/internal/repository"
)

// Service handles payment ledger business logic
type Service struct {
	repo      repository.PaymentStore
	log       *logrus.Logger
	publisher events.Publisher
	now       func() time.Time
}

// NewService initializes a new service. A nil publisher disables change events.
func NewService(repo repository.PaymentStore, log *logrus.Logger, publisher events.Publisher) *Service {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &Service{repo: repo, log: log, publisher: publisher, now: time.Now}
}

// Create validates input and stores it as a new payment record
func (s *Service) Create(ctx context.Context, input models.PaymentInput) (*models.PaymentRecord, error) {
	const op = "create payment record"

	record, err := input.Parse()
	if err != nil {
		return nil, validationError(op, err)
	}

	if err := s.repo.Insert(ctx, &record); err != nil {
		return nil, storeError(op, err)
	}

	s.log.Infof("Payment record created: %d (%s, due %s)", record.ID, record.Company, record.DueDate)
	s.publish(ctx, modelevents.ActionCreated, record.ID, &record)
	return &record, nil
}

// List returns every payment record in insertion order
func (s *Service) List(ctx context.Context) ([]models.PaymentRecord, error) {
	records, err := s.repo.List(ctx)
	if err != nil {
		return nil, storeError("list payment records", err)
	}
	return records, nil
}

// Summarize totals the records due on dueDate, given as YYYY-MM-DD or MM/DD/YYYY
func (s *Service) Summarize(ctx context.Context, dueDate string) (*models.Summary, error) {
	const op = "summarize due date"

	due, err := models.ParseDate(dueDate)
	if err != nil {
		return nil, validationError(op, models.FieldErrors{{Field: "due_date", Reason: err.Error()}})
	}
	if due.IsZero() {
		return nil, validationError(op, models.FieldErrors{{Field: "due_date", Reason: "is required"}})
	}
	return s.SummarizeDate(ctx, due)
}

// SummarizeDate totals the records due on the given date
func (s *Service) SummarizeDate(ctx context.Context, due models.Date) (*models.Summary, error) {
	records, err := s.repo.ListByDueDate(ctx, due)
	if err != nil {
		return nil, storeError("summarize due date", err)
	}

	summary := BuildSummary(due, records)
	if summary.MixedTaxRates {
		s.log.WithField("due_date", due.String()).
			Warnf("Records due %s carry different tax rates, using %s%%", due.Display(), summary.TaxRatePercent)
	}
	return &summary, nil
}

// Update replaces every field of record id with input
func (s *Service) Update(ctx context.Context, id int64, input models.PaymentInput) (*models.PaymentRecord, error) {
	const op = "update payment record"

	record, err := input.Parse()
	if err != nil {
		return nil, validationError(op, err)
	}
	record.ID = id

	if err := s.repo.Update(ctx, record); err != nil {
		if errors.Is(err, repository.ErrRecordNotFound) {
			return nil, notFoundError(op, id)
		}
		return nil, storeError(op, err)
	}

	s.log.Infof("Payment record updated: %d", id)
	s.publish(ctx, modelevents.ActionUpdated, id, &record)
	return &record, nil
}

// Delete removes record id. Deleting a missing record succeeds.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return storeError("delete payment record", err)
	}

	s.log.Infof("Payment record deleted: %d", id)
	s.publish(ctx, modelevents.ActionDeleted, id, nil)
	return nil
}

// DueDates returns the quarterly due dates of the current year
func (s *Service) DueDates() []models.Date {
	return models.QuarterlyDueDates(s.now().Year())
}

// publish never fails the write that triggered it
func (s *Service) publish(ctx context.Context, action modelevents.Action, id int64, record *models.PaymentRecord) {
	event := modelevents.PaymentRecordChanged{
		EventID:    uuid.NewString(),
		Action:     action,
		RecordID:   id,
		Record:     record,
		OccurredAt: s.now().UTC(),
	}
	if err := s.publisher.Publish(ctx, modelevents.Topic, event); err != nil {
		s.log.WithError(err).Errorf("Failed to publish %s for record %d", action, id)
	}
}
