// Package service derives international driving licenses from active local
// licenses.
package service

import (
	"context"
	"errors"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	appmodels "licensing/internal/application/models"
	"licensing/internal/fees"
	identitymodels "licensing/internal/identity/models"
	"licensing/internal/international/models"
	licensemodels "licensing/internal/license/models"
	"licensing/internal/platform/metrics"
	"licensing/internal/platform/observe"
	id "licensing/pkg/domain"
	dErrors "licensing/pkg/domain-errors"
	"licensing/pkg/platform/sentinel"
	"licensing/pkg/requestcontext"
)

var tracer = otel.Tracer("licensing/internal/international/service")

const defaultValidity = 365 * 24 * time.Hour

// Store is the persistence the international license service needs.
type Store interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
	FindLicenseForUpdate(ctx context.Context, licenseID id.LicenseID) (*licensemodels.License, error)
	FindOpenDetain(ctx context.Context, licenseID id.LicenseID) (*licensemodels.Detain, error)
	FindDriverByID(ctx context.Context, driverID id.DriverID) (*identitymodels.Driver, error)
	CreateApplication(ctx context.Context, app *appmodels.Application) error
	CreateInternationalLicense(ctx context.Context, license *models.License) error
	FindInternationalLicenseByID(ctx context.Context, licenseID id.InternationalLicenseID) (*models.License, error)
	ListInternationalLicensesByDriver(ctx context.Context, driverID id.DriverID) ([]*models.License, error)
	DeactivateInternationalLicenses(ctx context.Context, driverID id.DriverID) (int, error)
}

type Service struct {
	store         Store
	fees          fees.Schedule
	metrics       *metrics.Metrics
	validity      time.Duration
	eligibleClass id.LicenseClassID
}

type Option func(*Service)

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// WithValidity sets how long a license lasts when the caller gives no
// expiration date.
func WithValidity(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.validity = d
		}
	}
}

// WithEligibleClass sets the local license class an international license
// may be derived from.
func WithEligibleClass(classID id.LicenseClassID) Option {
	return func(s *Service) {
		if !classID.IsNil() {
			s.eligibleClass = classID
		}
	}
}

func New(store Store, schedule fees.Schedule, opts ...Option) *Service {
	s := &Service{
		store:         store,
		fees:          schedule,
		validity:      defaultValidity,
		eligibleClass: appmodels.ClassOrdinary,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// IssueRequest derives an international license. Zero dates default to the
// request time and the configured validity.
type IssueRequest struct {
	LocalLicenseID id.LicenseID
	IssueDate      time.Time
	ExpirationDate time.Time
	CreatedBy      id.UserID
}

// Issue creates an international license from a local license that is
// active, not detained and unexpired at the moment of issue. The source row
// stays locked until commit, so a concurrent detain either lands first and
// is seen here or waits for this transaction. Any earlier international
// license of the driver is deactivated.
func (s *Service) Issue(ctx context.Context, req IssueRequest) (licenseID id.InternationalLicenseID, err error) {
	ctx, done := observe.Operation(ctx, tracer, s.metrics, "international.issue",
		attribute.Int64("local_license_id", int64(req.LocalLicenseID)))
	defer func() { done(err) }()

	err = s.store.RunInTx(ctx, func(ctx context.Context) error {
		source, err := s.store.FindLicenseForUpdate(ctx, req.LocalLicenseID)
		if err != nil {
			return notFoundOr(err, "local license not found", "failed to load local license")
		}
		now := requestcontext.Now(ctx)
		if err := s.checkSource(ctx, source, now); err != nil {
			return err
		}

		issued := req.IssueDate
		if issued.IsZero() {
			issued = now
		}
		expires := req.ExpirationDate
		if expires.IsZero() {
			expires = issued.Add(s.validity)
		}
		if !expires.After(issued) {
			return dErrors.New(dErrors.CodeValidation, "expiration date must be after issue date")
		}

		driver, err := s.store.FindDriverByID(ctx, source.DriverID)
		if err != nil {
			return notFoundOr(err, "driver not found", "failed to load driver")
		}
		fee, err := s.fees.LookupFee(ctx, appmodels.TypeNewInternational)
		if err != nil {
			return err
		}
		app := appmodels.NewCompleted(driver.PersonID, appmodels.TypeNewInternational, fee, req.CreatedBy, now)
		if err := s.store.CreateApplication(ctx, app); err != nil {
			return dErrors.Persistence(err, "failed to create application")
		}
		if _, err := s.store.DeactivateInternationalLicenses(ctx, driver.ID); err != nil {
			return dErrors.Persistence(err, "failed to deactivate previous international licenses")
		}

		l := &models.License{
			ApplicationID:             app.ID,
			DriverID:                  driver.ID,
			IssuedUsingLocalLicenseID: source.ID,
			IssueDate:                 issued,
			ExpirationDate:            expires,
			IsActive:                  true,
			CreatedBy:                 req.CreatedBy,
		}
		if err := s.store.CreateInternationalLicense(ctx, l); err != nil {
			if errors.Is(err, sentinel.ErrConflict) {
				return dErrors.New(dErrors.CodeConflict, "driver already holds an active international license")
			}
			return dErrors.Persistence(err, "failed to create international license")
		}
		licenseID = l.ID
		return nil
	})
	if err != nil {
		return 0, err
	}
	s.metrics.IncInternationalIssued()
	return licenseID, nil
}

func (s *Service) checkSource(ctx context.Context, source *licensemodels.License, now time.Time) error {
	if source.LicenseClassID != s.eligibleClass {
		return dErrors.New(dErrors.CodeSourceLicenseNotEligible, "local license is not of an eligible class")
	}
	if source.IsDetained {
		return dErrors.New(dErrors.CodeSourceLicenseNotEligible, "local license is detained")
	}
	if _, err := s.store.FindOpenDetain(ctx, source.ID); err == nil {
		return dErrors.New(dErrors.CodeSourceLicenseNotEligible, "local license is detained")
	} else if !errors.Is(err, sentinel.ErrNotFound) {
		return dErrors.Persistence(err, "failed to load detain")
	}
	if !source.IsActive {
		return dErrors.New(dErrors.CodeSourceLicenseNotEligible, "local license is not active")
	}
	if source.IsExpired(now) {
		return dErrors.New(dErrors.CodeSourceLicenseNotEligible, "local license has expired")
	}
	return nil
}

// IsActive is derived from the international license alone. Later changes
// to the source local license do not affect it.
func (s *Service) IsActive(ctx context.Context, licenseID id.InternationalLicenseID) (bool, error) {
	l, err := s.Get(ctx, licenseID)
	if err != nil {
		return false, err
	}
	return l.Status(requestcontext.Now(ctx)) == licensemodels.StatusActive, nil
}

func (s *Service) Get(ctx context.Context, licenseID id.InternationalLicenseID) (*models.License, error) {
	l, err := s.store.FindInternationalLicenseByID(ctx, licenseID)
	if err != nil {
		return nil, notFoundOr(err, "international license not found", "failed to load international license")
	}
	return l, nil
}

func (s *Service) ListByDriver(ctx context.Context, driverID id.DriverID) ([]*models.License, error) {
	licenses, err := s.store.ListInternationalLicensesByDriver(ctx, driverID)
	if err != nil {
		return nil, dErrors.Persistence(err, "failed to list international licenses")
	}
	return licenses, nil
}

func notFoundOr(err error, notFound, failure string) error {
	if errors.Is(err, sentinel.ErrNotFound) {
		return dErrors.New(dErrors.CodeNotFound, notFound)
	}
	return dErrors.Persistence(err, failure)
}
