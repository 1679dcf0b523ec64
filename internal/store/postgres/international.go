package postgres

import (
	"context"
	"fmt"

	"licensing/internal/international/models"
	id "licensing/pkg/domain"
)

const internationalColumns = `id, application_id, driver_id, issued_using_local_license_id,
	issue_date, expiration_date, is_active, created_by`

func scanInternational(row scanner) (*models.License, error) {
	var l models.License
	err := row.Scan(&l.ID, &l.ApplicationID, &l.DriverID, &l.IssuedUsingLocalLicenseID,
		&l.IssueDate, &l.ExpirationDate, &l.IsActive, &l.CreatedBy)
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func (s *Store) CreateInternationalLicense(ctx context.Context, license *models.License) error {
	err := s.q(ctx).QueryRowContext(ctx, `
		INSERT INTO international_licenses (application_id, driver_id, issued_using_local_license_id,
			issue_date, expiration_date, is_active, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`,
		license.ApplicationID, license.DriverID, license.IssuedUsingLocalLicenseID,
		license.IssueDate, license.ExpirationDate, license.IsActive, license.CreatedBy,
	).Scan(&license.ID)
	return mapError(err, "create international license")
}

func (s *Store) FindInternationalLicenseByID(ctx context.Context, licenseID id.InternationalLicenseID) (*models.License, error) {
	l, err := scanInternational(s.q(ctx).QueryRowContext(ctx,
		`SELECT `+internationalColumns+` FROM international_licenses WHERE id = $1`, licenseID))
	if err != nil {
		return nil, mapError(err, "find international license")
	}
	return l, nil
}

func (s *Store) ListInternationalLicensesByDriver(ctx context.Context, driverID id.DriverID) ([]*models.License, error) {
	rows, err := s.q(ctx).QueryContext(ctx,
		`SELECT `+internationalColumns+` FROM international_licenses WHERE driver_id = $1 ORDER BY id`, driverID)
	if err != nil {
		return nil, mapError(err, "list international licenses")
	}
	defer rows.Close()

	var out []*models.License
	for rows.Next() {
		l, err := scanInternational(rows)
		if err != nil {
			return nil, fmt.Errorf("scan international license: %w", err)
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

func (s *Store) DeactivateInternationalLicenses(ctx context.Context, driverID id.DriverID) (int, error) {
	res, err := s.q(ctx).ExecContext(ctx,
		`UPDATE international_licenses SET is_active = FALSE WHERE driver_id = $1 AND is_active`, driverID)
	if err != nil {
		return 0, mapError(err, "deactivate international licenses")
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("deactivate international licenses rows affected: %w", err)
	}
	return int(n), nil
}
