package service

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel/attribute"

	appmodels "licensing/internal/application/models"
	"licensing/internal/license/models"
	"licensing/internal/platform/observe"
	id "licensing/pkg/domain"
	dErrors "licensing/pkg/domain-errors"
	"licensing/pkg/money"
	"licensing/pkg/platform/sentinel"
	"licensing/pkg/requestcontext"
)

// Detain places a hold on an active license and records the fine. The license
// row is locked for the whole transaction and the store allows one open
// detain per license, so of two concurrent calls exactly one succeeds.
func (s *Service) Detain(ctx context.Context, licenseID id.LicenseID, fine money.Amount, createdBy id.UserID) (detainID id.DetainID, err error) {
	ctx, done := observe.Operation(ctx, tracer, s.metrics, "license.detain",
		attribute.Int64("license_id", int64(licenseID)))
	defer func() { done(err) }()

	if fine.IsNegative() {
		return 0, dErrors.New(dErrors.CodeValidation, "fine fee cannot be negative")
	}

	err = s.store.RunInTx(ctx, func(ctx context.Context) error {
		l, err := s.loadForUpdate(ctx, licenseID)
		if err != nil {
			return err
		}
		if l.IsDetained {
			return dErrors.New(dErrors.CodeAlreadyDetained, "license is already detained")
		}
		if open, err := s.openDetain(ctx, licenseID); err != nil {
			return err
		} else if open != nil {
			return dErrors.New(dErrors.CodeAlreadyDetained, "license is already detained")
		}
		now := requestcontext.Now(ctx)
		if !l.IsActive {
			return dErrors.New(dErrors.CodeLicenseNotActive, "license is not active")
		}
		if l.IsExpired(now) {
			return dErrors.New(dErrors.CodeLicenseNotActive, "license has expired")
		}

		d := &models.Detain{
			LicenseID:  licenseID,
			DetainDate: now,
			FineFee:    fine,
			CreatedBy:  createdBy,
		}
		if err := s.store.CreateDetain(ctx, d); err != nil {
			if errors.Is(err, sentinel.ErrConflict) {
				return dErrors.New(dErrors.CodeAlreadyDetained, "license is already detained")
			}
			return dErrors.Persistence(err, "failed to create detain")
		}
		l.ApplyDetention()
		if err := s.store.UpdateLicense(ctx, l); err != nil {
			return dErrors.Persistence(err, "failed to detain license")
		}
		detainID = d.ID
		return nil
	})
	if err != nil {
		return 0, err
	}
	s.metrics.IncDetains()
	return detainID, nil
}

// Release closes the open detain of a license and reactivates it. The
// holder is charged the current release fee plus the recorded fine through a
// completed release application.
func (s *Service) Release(ctx context.Context, licenseID id.LicenseID, releasedBy id.UserID) (result *models.ReleaseResult, err error) {
	ctx, done := observe.Operation(ctx, tracer, s.metrics, "license.release",
		attribute.Int64("license_id", int64(licenseID)))
	defer func() { done(err) }()

	err = s.store.RunInTx(ctx, func(ctx context.Context) error {
		l, err := s.loadForUpdate(ctx, licenseID)
		if err != nil {
			return err
		}
		d, err := s.openDetain(ctx, licenseID)
		if err != nil {
			return err
		}
		if d == nil {
			return dErrors.New(dErrors.CodeNotDetained, "license is not detained")
		}

		now := requestcontext.Now(ctx)
		app, err := s.chargeService(ctx, l, appmodels.TypeReleaseDetained, releasedBy, now)
		if err != nil {
			return err
		}

		d.Close(now, releasedBy, app.ID)
		if err := s.store.UpdateDetain(ctx, d); err != nil {
			return dErrors.Persistence(err, "failed to close detain")
		}
		l.ApplyRelease()
		if err := s.store.UpdateLicense(ctx, l); err != nil {
			if errors.Is(err, sentinel.ErrConflict) {
				return dErrors.New(dErrors.CodeDuplicateActiveLicense, "driver already holds another active license of this class")
			}
			return dErrors.Persistence(err, "failed to release license")
		}

		result = &models.ReleaseResult{
			ApplicationID: app.ID,
			DetainID:      d.ID,
			LicenseID:     licenseID,
			ReleaseFee:    app.PaidFees,
			FineFee:       d.FineFee,
			TotalFee:      app.PaidFees.Add(d.FineFee),
			ReleasedAt:    *d.ReleaseDate,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.metrics.IncReleases(int64(result.TotalFee))
	return result, nil
}

// IsDetained reports whether the license has an open detain.
func (s *Service) IsDetained(ctx context.Context, licenseID id.LicenseID) (bool, error) {
	if _, err := s.GetLicense(ctx, licenseID); err != nil {
		return false, err
	}
	d, err := s.openDetain(ctx, licenseID)
	if err != nil {
		return false, err
	}
	return d != nil, nil
}

// GetOpenDetain returns the open detain of a license, if any.
func (s *Service) GetOpenDetain(ctx context.Context, licenseID id.LicenseID) (*models.Detain, bool, error) {
	if _, err := s.GetLicense(ctx, licenseID); err != nil {
		return nil, false, err
	}
	d, err := s.openDetain(ctx, licenseID)
	if err != nil {
		return nil, false, err
	}
	return d, d != nil, nil
}

func (s *Service) ListDetains(ctx context.Context) ([]*models.Detain, error) {
	detains, err := s.store.ListDetains(ctx)
	if err != nil {
		return nil, dErrors.Persistence(err, "failed to list detains")
	}
	return detains, nil
}

// openDetain returns nil without error when the license has no open detain.
func (s *Service) openDetain(ctx context.Context, licenseID id.LicenseID) (*models.Detain, error) {
	d, err := s.store.FindOpenDetain(ctx, licenseID)
	if errors.Is(err, sentinel.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, dErrors.Persistence(err, "failed to load detain")
	}
	return d, nil
}
