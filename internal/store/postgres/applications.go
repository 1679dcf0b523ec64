package postgres

import (
	"context"
	"fmt"
	"time"

	"licensing/internal/application/models"
	id "licensing/pkg/domain"
)

const applicationColumns = `a.id, a.applicant_person_id, a.application_type_id, a.status,
	a.application_date, a.last_status_date, a.paid_fees_cents, a.created_by`

func applicationDest(a *models.Application) []any {
	return []any{&a.ID, &a.ApplicantPersonID, &a.TypeID, &a.Status,
		&a.ApplicationDate, &a.LastStatusDate, &a.PaidFees, &a.CreatedBy}
}

func (s *Store) CreateApplication(ctx context.Context, app *models.Application) error {
	err := s.q(ctx).QueryRowContext(ctx, `
		INSERT INTO applications (applicant_person_id, application_type_id, status,
			application_date, last_status_date, paid_fees_cents, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`,
		app.ApplicantPersonID, app.TypeID, app.Status, app.ApplicationDate,
		app.LastStatusDate, app.PaidFees, app.CreatedBy,
	).Scan(&app.ID)
	return mapError(err, "create application")
}

func (s *Store) FindApplicationByID(ctx context.Context, appID id.ApplicationID) (*models.Application, error) {
	var a models.Application
	err := s.q(ctx).QueryRowContext(ctx,
		`SELECT `+applicationColumns+` FROM applications a WHERE a.id = $1`, appID,
	).Scan(applicationDest(&a)...)
	if err != nil {
		return nil, mapError(err, "find application")
	}
	return &a, nil
}

// UpdateApplicationStatus also keeps the open flag of a local extension in
// step, which is what the open-application unique index reads.
func (s *Store) UpdateApplicationStatus(ctx context.Context, appID id.ApplicationID, status models.Status, at time.Time) error {
	return s.RunInTx(ctx, func(ctx context.Context) error {
		res, err := s.q(ctx).ExecContext(ctx,
			`UPDATE applications SET status = $2, last_status_date = $3 WHERE id = $1`,
			appID, status, at)
		if err != nil {
			return mapError(err, "update application status")
		}
		if err := expectOne(res, "update application status"); err != nil {
			return err
		}
		_, err = s.q(ctx).ExecContext(ctx,
			`UPDATE local_applications SET is_open = ($2 = 'new') WHERE application_id = $1`,
			appID, string(status))
		return mapError(err, "update local application")
	})
}

func (s *Store) CreateLocalApplication(ctx context.Context, app *models.LocalApplication) error {
	return s.RunInTx(ctx, func(ctx context.Context) error {
		if err := s.CreateApplication(ctx, &app.Application); err != nil {
			return err
		}
		_, err := s.q(ctx).ExecContext(ctx, `
			INSERT INTO local_applications (application_id, applicant_person_id, driver_id, license_class_id, is_open)
			VALUES ($1, $2, $3, $4, $5)`,
			app.ID, app.ApplicantPersonID, app.DriverID, app.LicenseClassID, app.IsOpen())
		return mapError(err, "create local application")
	})
}

func (s *Store) FindLocalApplicationByID(ctx context.Context, appID id.ApplicationID) (*models.LocalApplication, error) {
	return s.findLocalApplication(ctx, appID, "")
}

// FindLocalApplicationForUpdate locks the application row until the
// surrounding transaction ends.
func (s *Store) FindLocalApplicationForUpdate(ctx context.Context, appID id.ApplicationID) (*models.LocalApplication, error) {
	return s.findLocalApplication(ctx, appID, " FOR UPDATE OF a")
}

func (s *Store) findLocalApplication(ctx context.Context, appID id.ApplicationID, lock string) (*models.LocalApplication, error) {
	var la models.LocalApplication
	dest := append(applicationDest(&la.Application), &la.DriverID, &la.LicenseClassID)
	err := s.q(ctx).QueryRowContext(ctx, `
		SELECT `+applicationColumns+`, l.driver_id, l.license_class_id
		FROM applications a
		JOIN local_applications l ON l.application_id = a.id
		WHERE a.id = $1`+lock, appID,
	).Scan(dest...)
	if err != nil {
		return nil, mapError(err, fmt.Sprintf("find local application %d", appID))
	}
	return &la, nil
}
