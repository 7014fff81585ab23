package student

import (
	"context"
	"errors"
	"strings"

	"uepex/internal/logging"
	"uepex/internal/metrics"
)

//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks

// Store is the persistence gateway for student records.
type Store interface {
	// FindByKey returns nil, nil when no record has the document number.
	FindByKey(ctx context.Context, documentNumber string) (*Record, error)
	// Insert writes a new record and returns ErrConflict if the key exists.
	Insert(ctx context.Context, rec Record) error
	// ListAll returns every record ordered by first name, last name and document number.
	ListAll(ctx context.Context) ([]Record, error)
}

// Notifier is told about every record that was written.
type Notifier interface {
	Registered(ctx context.Context, rec Record) error
}

// Service validates, stores and reads student records.
type Service struct {
	validator *Validator
	store     Store
	notifier  Notifier
	metrics   *metrics.Metrics
}

// NewService creates a service. notifier and m may be nil.
func NewService(validator *Validator, store Store, notifier Notifier, m *metrics.Metrics) *Service {
	if validator == nil {
		validator = NewValidator(DefaultCatalog())
	}
	return &Service{validator: validator, store: store, notifier: notifier, metrics: m}
}

// Validate runs the aggregate validation without touching the store.
func (s *Service) Validate(ctx context.Context, rec Record) Result {
	res := s.validator.Validate(rec)
	logger := logging.FromContext(ctx).With("numero_documento", rec.DocumentNumber)
	if !res.Valid() {
		logger.Warn("student validation failed", "errors", strings.Join(res.Errors, ", "))
		s.metrics.RecordRejected(res.Code)
		return res
	}
	logger.Info("student validation passed")
	return res
}

// Submit validates rec and persists it when every rule passes.
func (s *Service) Submit(ctx context.Context, rec Record) Result {
	if res := s.Validate(ctx, rec); !res.Valid() {
		return res
	}
	return s.Persist(ctx, rec)
}

// Persist writes rec once unless its document number is already stored.
func (s *Service) Persist(ctx context.Context, rec Record) Result {
	logger := logging.FromContext(ctx).With("numero_documento", rec.DocumentNumber)

	existing, err := s.store.FindByKey(ctx, rec.DocumentNumber)
	if err != nil {
		logger.Error("student lookup failed", "error", err)
		s.metrics.RecordRejected(CodeSaveFailed)
		return saveFailed()
	}
	if existing != nil {
		logger.Warn("student already exists")
		s.metrics.RecordRejected(CodeExists)
		return conflict()
	}

	if err := s.store.Insert(ctx, rec); err != nil {
		if errors.Is(err, ErrConflict) {
			logger.Warn("student inserted concurrently", "error", err)
			s.metrics.RecordRejected(CodeExists)
			return conflict()
		}
		logger.Error("student insert failed", "error", err)
		s.metrics.RecordRejected(CodeSaveFailed)
		return saveFailed()
	}

	logger.Info("student saved")
	s.metrics.RecordRegistered()
	if s.notifier != nil {
		if err := s.notifier.Registered(ctx, rec); err != nil {
			logger.Warn("registration notification failed", "error", err)
		}
	}
	return success()
}

// List returns all records sorted by first and last name.
func (s *Service) List(ctx context.Context) ([]Record, error) {
	records, err := s.store.ListAll(ctx)
	if err != nil {
		logging.FromContext(ctx).Error("student listing failed", "error", err)
		return nil, err
	}
	SortByName(records)
	return records, nil
}

// Get returns the record with the given document number or ErrNotFound.
func (s *Service) Get(ctx context.Context, documentNumber string) (*Record, error) {
	rec, err := s.store.FindByKey(ctx, documentNumber)
	if err != nil {
		logging.FromContext(ctx).Error("student lookup failed", "numero_documento", documentNumber, "error", err)
		return nil, err
	}
	if rec == nil {
		return nil, ErrNotFound
	}
	return rec, nil
}
