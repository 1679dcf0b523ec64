// Package service files local driving-license applications and issues the
// first license of a class once the applicant has passed every required test.
package service

import (
	"context"
	"errors"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"licensing/internal/application/models"
	"licensing/internal/fees"
	identitymodels "licensing/internal/identity/models"
	licensemodels "licensing/internal/license/models"
	licenseservice "licensing/internal/license/service"
	"licensing/internal/platform/metrics"
	"licensing/internal/platform/observe"
	id "licensing/pkg/domain"
	dErrors "licensing/pkg/domain-errors"
	"licensing/pkg/platform/sentinel"
	"licensing/pkg/requestcontext"
)

var tracer = otel.Tracer("licensing/internal/application/service")

// Store is the persistence the application service needs.
type Store interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
	FindPersonByID(ctx context.Context, personID id.PersonID) (*identitymodels.Person, error)
	FindLicenseClassByID(ctx context.Context, classID id.LicenseClassID) (*models.LicenseClass, error)
	ListLicenseClasses(ctx context.Context) ([]*models.LicenseClass, error)
	ListApplicationTypes(ctx context.Context) ([]*models.ApplicationType, error)
	CreateLocalApplication(ctx context.Context, app *models.LocalApplication) error
	FindLocalApplicationByID(ctx context.Context, appID id.ApplicationID) (*models.LocalApplication, error)
	FindLocalApplicationForUpdate(ctx context.Context, appID id.ApplicationID) (*models.LocalApplication, error)
	UpdateApplicationStatus(ctx context.Context, appID id.ApplicationID, status models.Status, at time.Time) error
	FindLiveLicense(ctx context.Context, driverID id.DriverID, classID id.LicenseClassID) (*licensemodels.License, error)
}

// Drivers enrolls applicants. The identity registry implements it.
type Drivers interface {
	EnsureDriver(ctx context.Context, personID id.PersonID, createdBy id.UserID) (*identitymodels.Driver, error)
}

// TestProgress reports test completion. The test subsystem implements it.
type TestProgress interface {
	HasPassedAllRequiredTests(ctx context.Context, appID id.ApplicationID) (bool, error)
}

// Issuer creates licenses. The license service implements it.
type Issuer interface {
	Issue(ctx context.Context, req licenseservice.IssueRequest) (id.LicenseID, error)
}

type Service struct {
	store   Store
	drivers Drivers
	tests   TestProgress
	issuer  Issuer
	fees    fees.Schedule
	metrics *metrics.Metrics
}

type Option func(*Service)

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func New(store Store, drivers Drivers, tests TestProgress, issuer Issuer, schedule fees.Schedule, opts ...Option) *Service {
	s := &Service{
		store:   store,
		drivers: drivers,
		tests:   tests,
		issuer:  issuer,
		fees:    schedule,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// FileApplication opens a local application for a license class. The person
// is enrolled as a driver on first use and must meet the class's minimum age.
// A person holds one open application per class, and none for a class they
// already hold a live license of.
func (s *Service) FileApplication(ctx context.Context, personID id.PersonID, classID id.LicenseClassID, createdBy id.UserID) (app *models.LocalApplication, err error) {
	ctx, done := observe.Operation(ctx, tracer, s.metrics, "application.file",
		attribute.Int64("person_id", int64(personID)),
		attribute.Int64("license_class_id", int64(classID)))
	defer func() { done(err) }()

	err = s.store.RunInTx(ctx, func(ctx context.Context) error {
		person, err := s.store.FindPersonByID(ctx, personID)
		if err != nil {
			return notFoundOr(err, "person not found", "failed to load person")
		}
		class, err := s.store.FindLicenseClassByID(ctx, classID)
		if err != nil {
			return notFoundOr(err, "license class not found", "failed to load license class")
		}
		now := requestcontext.Now(ctx)
		if person.AgeAt(now) < class.MinimumAge {
			return dErrors.New(dErrors.CodeValidation, "applicant is below the minimum age for this license class")
		}
		driver, err := s.drivers.EnsureDriver(ctx, personID, createdBy)
		if err != nil {
			return err
		}
		if _, found, err := s.FindActiveLicenseID(ctx, driver.ID, classID); err != nil {
			return err
		} else if found {
			return dErrors.New(dErrors.CodeDuplicateActiveLicense, "person already holds a license of this class")
		}
		fee, err := s.fees.LookupFee(ctx, models.TypeNewLocalLicense)
		if err != nil {
			return err
		}

		created := &models.LocalApplication{
			Application: models.Application{
				ApplicantPersonID: personID,
				TypeID:            models.TypeNewLocalLicense,
				Status:            models.StatusNew,
				ApplicationDate:   now,
				LastStatusDate:    now,
				PaidFees:          fee,
				CreatedBy:         createdBy,
			},
			DriverID:       driver.ID,
			LicenseClassID: classID,
		}
		if err := s.store.CreateLocalApplication(ctx, created); err != nil {
			if errors.Is(err, sentinel.ErrConflict) {
				return dErrors.New(dErrors.CodeConflict, "person already has an open application for this license class")
			}
			return notFoundOr(err, "person not found", "failed to create application")
		}
		app = created
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.metrics.IncApplicationsFiled()
	return app, nil
}

// CancelApplication moves an open application to cancelled.
func (s *Service) CancelApplication(ctx context.Context, appID id.ApplicationID) (err error) {
	ctx, done := observe.Operation(ctx, tracer, s.metrics, "application.cancel",
		attribute.Int64("application_id", int64(appID)))
	defer func() { done(err) }()

	return s.store.RunInTx(ctx, func(ctx context.Context) error {
		app, err := s.store.FindLocalApplicationForUpdate(ctx, appID)
		if err != nil {
			return notFoundOr(err, "application not found", "failed to load application")
		}
		if !app.Status.CanTransitionTo(models.StatusCancelled) {
			return dErrors.New(dErrors.CodeInvalidState, "only a new application can be cancelled")
		}
		if err := s.store.UpdateApplicationStatus(ctx, appID, models.StatusCancelled, requestcontext.Now(ctx)); err != nil {
			return dErrors.Persistence(err, "failed to cancel application")
		}
		return nil
	})
}

func (s *Service) GetApplication(ctx context.Context, appID id.ApplicationID) (*models.LocalApplication, error) {
	app, err := s.store.FindLocalApplicationByID(ctx, appID)
	if err != nil {
		return nil, notFoundOr(err, "application not found", "failed to load application")
	}
	return app, nil
}

// FindActiveLicenseID returns the driver's live license of a class. A
// detained license counts: it returns to active on release.
func (s *Service) FindActiveLicenseID(ctx context.Context, driverID id.DriverID, classID id.LicenseClassID) (id.LicenseID, bool, error) {
	l, err := s.store.FindLiveLicense(ctx, driverID, classID)
	if errors.Is(err, sentinel.ErrNotFound) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, dErrors.Persistence(err, "failed to look up active license")
	}
	return l.ID, true, nil
}

// IssueFirstTimeLicense issues the first license for a local application.
// Checks run in order, each with its own error: the application exists, its
// tests are all passed, and the driver holds no live license of the class.
// The application lock is held across the checks and the issuance.
func (s *Service) IssueFirstTimeLicense(ctx context.Context, appID id.ApplicationID, notes string, createdBy id.UserID) (licenseID id.LicenseID, err error) {
	ctx, done := observe.Operation(ctx, tracer, s.metrics, "application.issue_first_time",
		attribute.Int64("application_id", int64(appID)))
	defer func() { done(err) }()

	err = s.store.RunInTx(ctx, func(ctx context.Context) error {
		app, err := s.store.FindLocalApplicationForUpdate(ctx, appID)
		if err != nil {
			return notFoundOr(err, "application not found", "failed to load application")
		}
		passed, err := s.tests.HasPassedAllRequiredTests(ctx, appID)
		if err != nil {
			return err
		}
		if !passed {
			return dErrors.New(dErrors.CodePrerequisitesNotMet, "required tests have not all been passed")
		}
		if _, found, err := s.FindActiveLicenseID(ctx, app.DriverID, app.LicenseClassID); err != nil {
			return err
		} else if found {
			return dErrors.New(dErrors.CodeDuplicateActiveLicense, "driver already holds an active license of this class")
		}
		if !app.IsOpen() {
			return dErrors.New(dErrors.CodeInvalidState, "application is not open")
		}

		licenseID, err = s.issuer.Issue(ctx, licenseservice.IssueRequest{
			ApplicationID: appID,
			IssueReason:   licensemodels.IssueReasonFirstTime,
			Notes:         notes,
			CreatedBy:     createdBy,
		})
		return err
	})
	if err != nil {
		return 0, err
	}
	return licenseID, nil
}

func (s *Service) ListLicenseClasses(ctx context.Context) ([]*models.LicenseClass, error) {
	classes, err := s.store.ListLicenseClasses(ctx)
	if err != nil {
		return nil, dErrors.Persistence(err, "failed to list license classes")
	}
	return classes, nil
}

func (s *Service) ListApplicationTypes(ctx context.Context) ([]*models.ApplicationType, error) {
	types, err := s.store.ListApplicationTypes(ctx)
	if err != nil {
		return nil, dErrors.Persistence(err, "failed to list application types")
	}
	return types, nil
}

func notFoundOr(err error, notFound, failure string) error {
	if errors.Is(err, sentinel.ErrNotFound) {
		return dErrors.New(dErrors.CodeNotFound, notFound)
	}
	return dErrors.Persistence(err, failure)
}
