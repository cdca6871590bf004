package memory

import (
	"context"
	"sync"

	"github.com/Dan9191/tax-ledger/internal/models"
	"github.com/Dan9191/tax-ledger/internal/repository"
)

// Store is an in-memory PaymentStore. Records keep insertion order and IDs are never reused.
type Store struct {
	mu      sync.Mutex
	records []models.PaymentRecord
	nextID  int64
}

// NewStore creates an empty Store
func NewStore() *Store {
	return &Store{nextID: 1}
}

func (s *Store) Insert(ctx context.Context, record *models.PaymentRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	record.ID = s.nextID
	s.nextID++
	s.records = append(s.records, *record)
	return nil
}

func (s *Store) List(ctx context.Context) ([]models.PaymentRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	copied := make([]models.PaymentRecord, len(s.records))
	copy(copied, s.records)
	return copied, nil
}

func (s *Store) ListByDueDate(ctx context.Context, dueDate models.Date) ([]models.PaymentRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	result := make([]models.PaymentRecord, 0)
	for _, r := range s.records {
		if r.DueDate.Equal(dueDate) {
			result = append(result, r)
		}
	}
	return result, nil
}

func (s *Store) Update(ctx context.Context, record models.PaymentRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.records {
		if s.records[i].ID == record.ID {
			s.records[i] = record
			return nil
		}
	}
	return repository.ErrRecordNotFound
}

func (s *Store) Delete(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.records {
		if s.records[i].ID == id {
			s.records = append(s.records[:i], s.records[i+1:]...)
			return nil
		}
	}
	return nil
}

var _ repository.PaymentStore = (*Store)(nil)
