package service

import (
	"context"
	"errors"
	"time"

	"go.opentelemetry.io/otel/attribute"

	appmodels "licensing/internal/application/models"
	"licensing/internal/license/models"
	"licensing/internal/platform/observe"
	id "licensing/pkg/domain"
	dErrors "licensing/pkg/domain-errors"
	"licensing/pkg/platform/sentinel"
	"licensing/pkg/requestcontext"
)

// IssueRequest turns a qualified local application into a license. Zero dates
// default to the request time and the class's validity period.
type IssueRequest struct {
	ApplicationID  id.ApplicationID
	IssueDate      time.Time
	ExpirationDate time.Time
	IssueReason    models.IssueReason
	Notes          string
	CreatedBy      id.UserID
}

// Issue creates the license and completes its application in one
// transaction. Prerequisites are checked again under the application lock.
func (s *Service) Issue(ctx context.Context, req IssueRequest) (licenseID id.LicenseID, err error) {
	ctx, done := observe.Operation(ctx, tracer, s.metrics, "license.issue",
		attribute.Int64("application_id", int64(req.ApplicationID)))
	defer func() { done(err) }()

	if req.IssueReason == "" {
		req.IssueReason = models.IssueReasonFirstTime
	}
	if !req.IssueReason.IsValid() {
		return 0, dErrors.New(dErrors.CodeValidation, "unknown issue reason")
	}

	err = s.store.RunInTx(ctx, func(ctx context.Context) error {
		app, err := s.store.FindLocalApplicationForUpdate(ctx, req.ApplicationID)
		if err != nil {
			return notFoundOr(err, "application not found", "failed to load application")
		}
		if !app.IsOpen() {
			return dErrors.New(dErrors.CodeInvalidState, "application is not open")
		}
		ok, err := s.prerequisites.HasPassedAllRequiredTests(ctx, app.ID)
		if err != nil {
			return err
		}
		if !ok {
			return dErrors.New(dErrors.CodePrerequisitesNotMet, "required tests have not all been passed")
		}
		class, err := s.store.FindLicenseClassByID(ctx, app.LicenseClassID)
		if err != nil {
			return notFoundOr(err, "license class not found", "failed to load license class")
		}
		fee, err := s.fees.ClassFee(ctx, class.ID)
		if err != nil {
			return err
		}

		now := requestcontext.Now(ctx)
		issued := req.IssueDate
		if issued.IsZero() {
			issued = now
		}
		expires := req.ExpirationDate
		if expires.IsZero() {
			expires = issued.AddDate(class.DefaultValidityYears, 0, 0)
		}

		l := &models.License{
			ApplicationID:  app.ID,
			DriverID:       app.DriverID,
			LicenseClassID: app.LicenseClassID,
			IssueDate:      issued,
			ExpirationDate: expires,
			Notes:          req.Notes,
			PaidFees:       fee,
			IssueReason:    req.IssueReason,
			CreatedBy:      req.CreatedBy,
		}
		if err := s.insert(ctx, l); err != nil {
			return err
		}
		if err := s.store.UpdateApplicationStatus(ctx, app.ID, appmodels.StatusCompleted, now); err != nil {
			return dErrors.Persistence(err, "failed to complete application")
		}
		licenseID = l.ID
		return nil
	})
	if err != nil {
		return 0, err
	}
	s.metrics.IncLicensesIssued(string(req.IssueReason))
	return licenseID, nil
}

// insert writes a new active license. The store rejects a second live
// license for the same driver and class.
func (s *Service) insert(ctx context.Context, l *models.License) error {
	if !l.ExpirationDate.After(l.IssueDate) {
		return dErrors.New(dErrors.CodeValidation, "expiration date must be after issue date")
	}
	l.IsActive = true
	l.IsDetained = false
	if err := s.store.CreateLicense(ctx, l); err != nil {
		switch {
		case errors.Is(err, sentinel.ErrConflict):
			return dErrors.New(dErrors.CodeDuplicateActiveLicense, "driver already holds an active license of this class")
		case errors.Is(err, sentinel.ErrNotFound):
			return dErrors.New(dErrors.CodeNotFound, "driver not found")
		}
		return dErrors.Persistence(err, "failed to create license")
	}
	return nil
}

// Renew replaces an expired license with a new one valid for the class's
// default period. The old row is retired in the same transaction.
func (s *Service) Renew(ctx context.Context, licenseID id.LicenseID, notes string, createdBy id.UserID) (renewed *models.License, err error) {
	ctx, done := observe.Operation(ctx, tracer, s.metrics, "license.renew",
		attribute.Int64("license_id", int64(licenseID)))
	defer func() { done(err) }()

	err = s.store.RunInTx(ctx, func(ctx context.Context) error {
		old, err := s.loadForUpdate(ctx, licenseID)
		if err != nil {
			return err
		}
		now := requestcontext.Now(ctx)
		if !old.IsActive {
			return dErrors.New(dErrors.CodeLicenseNotActive, inactiveMessage(old))
		}
		if !old.IsExpired(now) {
			return dErrors.New(dErrors.CodeInvalidState, "license has not expired yet")
		}
		class, err := s.store.FindLicenseClassByID(ctx, old.LicenseClassID)
		if err != nil {
			return notFoundOr(err, "license class not found", "failed to load license class")
		}
		classFee, err := s.fees.ClassFee(ctx, class.ID)
		if err != nil {
			return err
		}
		app, err := s.chargeService(ctx, old, appmodels.TypeRenewLicense, createdBy, now)
		if err != nil {
			return err
		}
		if notes == "" {
			notes = old.Notes
		}
		renewed, err = s.supersede(ctx, old, &models.License{
			ApplicationID:  app.ID,
			IssueDate:      now,
			ExpirationDate: now.AddDate(class.DefaultValidityYears, 0, 0),
			Notes:          notes,
			PaidFees:       classFee,
			IssueReason:    models.IssueReasonRenew,
			CreatedBy:      createdBy,
		})
		return err
	})
	if err != nil {
		return nil, err
	}
	s.metrics.IncLicensesIssued(string(models.IssueReasonRenew))
	return renewed, nil
}

// Replace reissues a damaged or lost license. The replacement keeps the old
// expiration date and carries no class fee; the replacement application is
// what gets charged.
func (s *Service) Replace(ctx context.Context, licenseID id.LicenseID, reason models.IssueReason, createdBy id.UserID) (replacement *models.License, err error) {
	ctx, done := observe.Operation(ctx, tracer, s.metrics, "license.replace",
		attribute.Int64("license_id", int64(licenseID)),
		attribute.String("reason", string(reason)))
	defer func() { done(err) }()

	var appType id.ApplicationTypeID
	switch reason {
	case models.IssueReasonReplacementDamaged:
		appType = appmodels.TypeReplaceDamaged
	case models.IssueReasonReplacementLost:
		appType = appmodels.TypeReplaceLostLicense
	default:
		return nil, dErrors.New(dErrors.CodeValidation, "replacement reason must be damaged or lost")
	}

	err = s.store.RunInTx(ctx, func(ctx context.Context) error {
		old, err := s.loadForUpdate(ctx, licenseID)
		if err != nil {
			return err
		}
		now := requestcontext.Now(ctx)
		if !old.IsActive {
			return dErrors.New(dErrors.CodeLicenseNotActive, inactiveMessage(old))
		}
		if old.IsExpired(now) {
			return dErrors.New(dErrors.CodeInvalidState, "an expired license must be renewed, not replaced")
		}
		app, err := s.chargeService(ctx, old, appType, createdBy, now)
		if err != nil {
			return err
		}
		replacement, err = s.supersede(ctx, old, &models.License{
			ApplicationID:  app.ID,
			IssueDate:      now,
			ExpirationDate: old.ExpirationDate,
			Notes:          old.Notes,
			IssueReason:    reason,
			CreatedBy:      createdBy,
		})
		return err
	})
	if err != nil {
		return nil, err
	}
	s.metrics.IncLicensesIssued(string(reason))
	return replacement, nil
}

// chargeService records the completed, paid application for a service
// performed on an existing license.
func (s *Service) chargeService(ctx context.Context, l *models.License, appType id.ApplicationTypeID, createdBy id.UserID, now time.Time) (*appmodels.Application, error) {
	personID, err := s.holderOf(ctx, l)
	if err != nil {
		return nil, err
	}
	fee, err := s.fees.LookupFee(ctx, appType)
	if err != nil {
		return nil, err
	}
	app := appmodels.NewCompleted(personID, appType, fee, createdBy, now)
	if err := s.store.CreateApplication(ctx, app); err != nil {
		return nil, dErrors.Persistence(err, "failed to create application")
	}
	return app, nil
}

// supersede retires old and inserts next for the same driver and class.
func (s *Service) supersede(ctx context.Context, old, next *models.License) (*models.License, error) {
	old.Retire()
	if err := s.store.UpdateLicense(ctx, old); err != nil {
		return nil, dErrors.Persistence(err, "failed to retire license")
	}
	next.DriverID = old.DriverID
	next.LicenseClassID = old.LicenseClassID
	if err := s.insert(ctx, next); err != nil {
		return nil, err
	}
	return next, nil
}

func inactiveMessage(l *models.License) string {
	if l.IsDetained {
		return "license is detained"
	}
	return "license is not active"
}
