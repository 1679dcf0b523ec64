package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"licensing/internal/license/models"
	id "licensing/pkg/domain"
)

const licenseColumns = `id, application_id, driver_id, license_class_id, issue_date, expiration_date,
	notes, paid_fees_cents, is_active, is_detained, issue_reason, created_by`

func scanLicense(row scanner) (*models.License, error) {
	var l models.License
	err := row.Scan(&l.ID, &l.ApplicationID, &l.DriverID, &l.LicenseClassID, &l.IssueDate,
		&l.ExpirationDate, &l.Notes, &l.PaidFees, &l.IsActive, &l.IsDetained, &l.IssueReason, &l.CreatedBy)
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func (s *Store) CreateLicense(ctx context.Context, license *models.License) error {
	err := s.q(ctx).QueryRowContext(ctx, `
		INSERT INTO licenses (application_id, driver_id, license_class_id, issue_date, expiration_date,
			notes, paid_fees_cents, is_active, is_detained, issue_reason, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id`,
		license.ApplicationID, license.DriverID, license.LicenseClassID, license.IssueDate,
		license.ExpirationDate, license.Notes, license.PaidFees, license.IsActive,
		license.IsDetained, license.IssueReason, license.CreatedBy,
	).Scan(&license.ID)
	return mapError(err, "create license")
}

func (s *Store) FindLicenseByID(ctx context.Context, licenseID id.LicenseID) (*models.License, error) {
	l, err := scanLicense(s.q(ctx).QueryRowContext(ctx,
		`SELECT `+licenseColumns+` FROM licenses WHERE id = $1`, licenseID))
	if err != nil {
		return nil, mapError(err, "find license")
	}
	return l, nil
}

// FindLicenseForUpdate locks the license row until the surrounding
// transaction ends, serializing detain, release, renew and replace.
func (s *Store) FindLicenseForUpdate(ctx context.Context, licenseID id.LicenseID) (*models.License, error) {
	l, err := scanLicense(s.q(ctx).QueryRowContext(ctx,
		`SELECT `+licenseColumns+` FROM licenses WHERE id = $1 FOR UPDATE`, licenseID))
	if err != nil {
		return nil, mapError(err, "find license for update")
	}
	return l, nil
}

func (s *Store) UpdateLicense(ctx context.Context, license *models.License) error {
	res, err := s.q(ctx).ExecContext(ctx, `
		UPDATE licenses SET notes = $2, is_active = $3, is_detained = $4
		WHERE id = $1`,
		license.ID, license.Notes, license.IsActive, license.IsDetained)
	if err != nil {
		return mapError(err, "update license")
	}
	return expectOne(res, "update license")
}

// FindLiveLicense returns the driver's active or detained license of a class.
func (s *Store) FindLiveLicense(ctx context.Context, driverID id.DriverID, classID id.LicenseClassID) (*models.License, error) {
	l, err := scanLicense(s.q(ctx).QueryRowContext(ctx, `
		SELECT `+licenseColumns+` FROM licenses
		WHERE driver_id = $1 AND license_class_id = $2 AND (is_active OR is_detained)`,
		driverID, classID))
	if err != nil {
		return nil, mapError(err, "find live license")
	}
	return l, nil
}

func (s *Store) ListLicensesByDriver(ctx context.Context, driverID id.DriverID) ([]*models.License, error) {
	rows, err := s.q(ctx).QueryContext(ctx,
		`SELECT `+licenseColumns+` FROM licenses WHERE driver_id = $1 ORDER BY id`, driverID)
	if err != nil {
		return nil, mapError(err, "list licenses")
	}
	defer rows.Close()

	var out []*models.License
	for rows.Next() {
		l, err := scanLicense(rows)
		if err != nil {
			return nil, fmt.Errorf("scan license: %w", err)
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

const detainColumns = `id, license_id, detain_date, fine_fee_cents, created_by,
	release_date, released_by, release_application_id`

func scanDetain(row scanner) (*models.Detain, error) {
	var d models.Detain
	var releaseDate sql.NullTime
	var releasedBy, releaseApp sql.NullInt64
	err := row.Scan(&d.ID, &d.LicenseID, &d.DetainDate, &d.FineFee, &d.CreatedBy,
		&releaseDate, &releasedBy, &releaseApp)
	if err != nil {
		return nil, err
	}
	if releaseDate.Valid {
		t := releaseDate.Time
		d.ReleaseDate = &t
	}
	if releasedBy.Valid {
		u := id.UserID(releasedBy.Int64)
		d.ReleasedBy = &u
	}
	if releaseApp.Valid {
		a := id.ApplicationID(releaseApp.Int64)
		d.ReleaseApplicationID = &a
	}
	return &d, nil
}

func (s *Store) CreateDetain(ctx context.Context, detain *models.Detain) error {
	err := s.q(ctx).QueryRowContext(ctx, `
		INSERT INTO detains (license_id, detain_date, fine_fee_cents, created_by)
		VALUES ($1, $2, $3, $4)
		RETURNING id`,
		detain.LicenseID, detain.DetainDate, detain.FineFee, detain.CreatedBy,
	).Scan(&detain.ID)
	return mapError(err, "create detain")
}

func (s *Store) FindOpenDetain(ctx context.Context, licenseID id.LicenseID) (*models.Detain, error) {
	d, err := scanDetain(s.q(ctx).QueryRowContext(ctx,
		`SELECT `+detainColumns+` FROM detains WHERE license_id = $1 AND release_date IS NULL`, licenseID))
	if err != nil {
		return nil, mapError(err, "find open detain")
	}
	return d, nil
}

func (s *Store) UpdateDetain(ctx context.Context, detain *models.Detain) error {
	var releaseDate sql.NullTime
	if detain.ReleaseDate != nil {
		releaseDate = sql.NullTime{Time: *detain.ReleaseDate, Valid: true}
	}
	var releasedBy sql.NullInt64
	if detain.ReleasedBy != nil {
		releasedBy = sql.NullInt64{Int64: int64(*detain.ReleasedBy), Valid: true}
	}
	res, err := s.q(ctx).ExecContext(ctx, `
		UPDATE detains SET fine_fee_cents = $2, release_date = $3, released_by = $4,
			release_application_id = $5
		WHERE id = $1`,
		detain.ID, detain.FineFee, releaseDate, releasedBy, nullableApplicationID(detain.ReleaseApplicationID))
	if err != nil {
		return mapError(err, "update detain")
	}
	return expectOne(res, "update detain")
}

func (s *Store) ListDetains(ctx context.Context) ([]*models.Detain, error) {
	rows, err := s.q(ctx).QueryContext(ctx, `SELECT `+detainColumns+` FROM detains ORDER BY id`)
	if err != nil {
		return nil, mapError(err, "list detains")
	}
	defer rows.Close()

	var out []*models.Detain
	for rows.Next() {
		d, err := scanDetain(rows)
		if err != nil {
			return nil, fmt.Errorf("scan detain: %w", err)
		}
		out = append(out, d)
	}
	return out, rows.Err()
}
