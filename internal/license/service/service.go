// Package service issues local licenses and runs the detain/release state
// machine. Every state transition is one store transaction; callers that are
// already inside a transaction join it.
package service

import (
	"context"
	"errors"
	"time"

	"go.opentelemetry.io/otel"

	appmodels "licensing/internal/application/models"
	"licensing/internal/fees"
	identitymodels "licensing/internal/identity/models"
	intlmodels "licensing/internal/international/models"
	"licensing/internal/license/models"
	"licensing/internal/platform/metrics"
	id "licensing/pkg/domain"
	dErrors "licensing/pkg/domain-errors"
	"licensing/pkg/platform/sentinel"
)

var tracer = otel.Tracer("licensing/internal/license/service")

// Store is the persistence the license service needs.
type Store interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error

	FindLocalApplicationForUpdate(ctx context.Context, appID id.ApplicationID) (*appmodels.LocalApplication, error)
	UpdateApplicationStatus(ctx context.Context, appID id.ApplicationID, status appmodels.Status, at time.Time) error
	CreateApplication(ctx context.Context, app *appmodels.Application) error
	FindLicenseClassByID(ctx context.Context, classID id.LicenseClassID) (*appmodels.LicenseClass, error)
	FindDriverByID(ctx context.Context, driverID id.DriverID) (*identitymodels.Driver, error)

	CreateLicense(ctx context.Context, license *models.License) error
	FindLicenseByID(ctx context.Context, licenseID id.LicenseID) (*models.License, error)
	FindLicenseForUpdate(ctx context.Context, licenseID id.LicenseID) (*models.License, error)
	UpdateLicense(ctx context.Context, license *models.License) error
	ListLicensesByDriver(ctx context.Context, driverID id.DriverID) ([]*models.License, error)

	CreateDetain(ctx context.Context, detain *models.Detain) error
	FindOpenDetain(ctx context.Context, licenseID id.LicenseID) (*models.Detain, error)
	UpdateDetain(ctx context.Context, detain *models.Detain) error
	ListDetains(ctx context.Context) ([]*models.Detain, error)

	ListInternationalLicensesByDriver(ctx context.Context, driverID id.DriverID) ([]*intlmodels.License, error)
}

// Prerequisites answers whether a local application has passed every test its
// class requires. The test subsystem implements it.
type Prerequisites interface {
	HasPassedAllRequiredTests(ctx context.Context, appID id.ApplicationID) (bool, error)
}

type Service struct {
	store         Store
	fees          fees.Schedule
	prerequisites Prerequisites
	metrics       *metrics.Metrics
}

type Option func(*Service)

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func New(store Store, schedule fees.Schedule, prerequisites Prerequisites, opts ...Option) *Service {
	s := &Service{store: store, fees: schedule, prerequisites: prerequisites}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) GetLicense(ctx context.Context, licenseID id.LicenseID) (*models.License, error) {
	l, err := s.store.FindLicenseByID(ctx, licenseID)
	if err != nil {
		return nil, notFoundOr(err, "license not found", "failed to load license")
	}
	return l, nil
}

func (s *Service) ListDriverLicenses(ctx context.Context, driverID id.DriverID) ([]*models.License, error) {
	licenses, err := s.store.ListLicensesByDriver(ctx, driverID)
	if err != nil {
		return nil, dErrors.Persistence(err, "failed to list licenses")
	}
	return licenses, nil
}

// loadForUpdate locks a license row inside the current transaction.
func (s *Service) loadForUpdate(ctx context.Context, licenseID id.LicenseID) (*models.License, error) {
	l, err := s.store.FindLicenseForUpdate(ctx, licenseID)
	if err != nil {
		return nil, notFoundOr(err, "license not found", "failed to load license")
	}
	return l, nil
}

// holderOf resolves the person a license was issued to.
func (s *Service) holderOf(ctx context.Context, l *models.License) (id.PersonID, error) {
	d, err := s.store.FindDriverByID(ctx, l.DriverID)
	if err != nil {
		return 0, notFoundOr(err, "driver not found", "failed to load driver")
	}
	return d.PersonID, nil
}

func notFoundOr(err error, notFound, failure string) error {
	if errors.Is(err, sentinel.ErrNotFound) {
		return dErrors.New(dErrors.CodeNotFound, notFound)
	}
	return dErrors.Persistence(err, failure)
}
