// Package service is the identity registry: people and the driver records
// that enroll them with the licensing authority.
package service

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"licensing/internal/identity/models"
	"licensing/internal/platform/metrics"
	"licensing/internal/platform/observe"
	id "licensing/pkg/domain"
	dErrors "licensing/pkg/domain-errors"
	"licensing/pkg/platform/sentinel"
	"licensing/pkg/requestcontext"
)

var tracer = otel.Tracer("licensing/internal/identity/service")

// Store is the persistence the registry needs.
type Store interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
	CreatePerson(ctx context.Context, person *models.Person) error
	UpdatePerson(ctx context.Context, person *models.Person) error
	FindPersonByID(ctx context.Context, personID id.PersonID) (*models.Person, error)
	FindPersonByNationalID(ctx context.Context, nationalID string) (*models.Person, error)
	ListPeople(ctx context.Context) ([]*models.Person, error)
	CreateDriver(ctx context.Context, driver *models.Driver) error
	FindDriverByID(ctx context.Context, driverID id.DriverID) (*models.Driver, error)
	FindDriverByPersonID(ctx context.Context, personID id.PersonID) (*models.Driver, error)
}

type Service struct {
	store   Store
	metrics *metrics.Metrics
}

type Option func(*Service)

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func New(store Store, opts ...Option) *Service {
	s := &Service{store: store}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// RegisterPerson validates and stores a new person.
func (s *Service) RegisterPerson(ctx context.Context, in models.PersonInput) (person *models.Person, err error) {
	ctx, done := observe.Operation(ctx, tracer, s.metrics, "identity.register_person")
	defer func() { done(err) }()

	now := requestcontext.Now(ctx)
	in.Normalize()
	if err := in.Validate(now); err != nil {
		return nil, err
	}
	person = &models.Person{CreatedAt: now}
	person.Apply(in, now)
	if err := s.store.CreatePerson(ctx, person); err != nil {
		if errors.Is(err, sentinel.ErrConflict) {
			return nil, dErrors.New(dErrors.CodeConflict, "national id is already registered")
		}
		return nil, dErrors.Persistence(err, "failed to register person")
	}
	return person, nil
}

// UpdatePerson replaces the editable fields of an existing person.
func (s *Service) UpdatePerson(ctx context.Context, personID id.PersonID, in models.PersonInput) (person *models.Person, err error) {
	ctx, done := observe.Operation(ctx, tracer, s.metrics, "identity.update_person",
		attribute.Int64("person_id", int64(personID)))
	defer func() { done(err) }()

	now := requestcontext.Now(ctx)
	in.Normalize()
	if err := in.Validate(now); err != nil {
		return nil, err
	}
	err = s.store.RunInTx(ctx, func(ctx context.Context) error {
		current, err := s.store.FindPersonByID(ctx, personID)
		if err != nil {
			return notFoundOr(err, "person not found", "failed to load person")
		}
		current.Apply(in, now)
		if err := s.store.UpdatePerson(ctx, current); err != nil {
			if errors.Is(err, sentinel.ErrConflict) {
				return dErrors.New(dErrors.CodeConflict, "national id is already registered")
			}
			return dErrors.Persistence(err, "failed to update person")
		}
		person = current
		return nil
	})
	if err != nil {
		return nil, err
	}
	return person, nil
}

func (s *Service) GetPerson(ctx context.Context, personID id.PersonID) (*models.Person, error) {
	p, err := s.store.FindPersonByID(ctx, personID)
	if err != nil {
		return nil, notFoundOr(err, "person not found", "failed to load person")
	}
	return p, nil
}

func (s *Service) FindPersonByNationalID(ctx context.Context, nationalID string) (*models.Person, error) {
	p, err := s.store.FindPersonByNationalID(ctx, nationalID)
	if err != nil {
		return nil, notFoundOr(err, "person not found", "failed to load person")
	}
	return p, nil
}

func (s *Service) ListPeople(ctx context.Context) ([]*models.Person, error) {
	people, err := s.store.ListPeople(ctx)
	if err != nil {
		return nil, dErrors.Persistence(err, "failed to list people")
	}
	return people, nil
}

func (s *Service) GetDriver(ctx context.Context, driverID id.DriverID) (*models.Driver, error) {
	d, err := s.store.FindDriverByID(ctx, driverID)
	if err != nil {
		return nil, notFoundOr(err, "driver not found", "failed to load driver")
	}
	return d, nil
}

func (s *Service) FindDriverByPerson(ctx context.Context, personID id.PersonID) (*models.Driver, error) {
	d, err := s.store.FindDriverByPersonID(ctx, personID)
	if err != nil {
		return nil, notFoundOr(err, "driver not found", "failed to load driver")
	}
	return d, nil
}

// EnsureDriver returns the person's driver record, creating it on first use.
// It joins the caller's transaction when ctx carries one.
func (s *Service) EnsureDriver(ctx context.Context, personID id.PersonID, createdBy id.UserID) (*models.Driver, error) {
	var driver *models.Driver
	err := s.store.RunInTx(ctx, func(ctx context.Context) error {
		existing, err := s.store.FindDriverByPersonID(ctx, personID)
		if err == nil {
			driver = existing
			return nil
		}
		if !errors.Is(err, sentinel.ErrNotFound) {
			return dErrors.Persistence(err, "failed to load driver")
		}
		d := &models.Driver{PersonID: personID, CreatedBy: createdBy, CreatedAt: requestcontext.Now(ctx)}
		if err := s.store.CreateDriver(ctx, d); err != nil {
			if errors.Is(err, sentinel.ErrConflict) {
				return dErrors.New(dErrors.CodeConflict, "person was enrolled as a driver concurrently")
			}
			return notFoundOr(err, "person not found", "failed to create driver")
		}
		driver = d
		return nil
	})
	if err != nil {
		return nil, err
	}
	return driver, nil
}

func notFoundOr(err error, notFound, failure string) error {
	if errors.Is(err, sentinel.ErrNotFound) {
		return dErrors.New(dErrors.CodeNotFound, notFound)
	}
	return dErrors.Persistence(err, failure)
}
