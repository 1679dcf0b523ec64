package postgres

import (
	"context"
	"fmt"

	appmodels "licensing/internal/application/models"
	"licensing/internal/store/reference"
	testmodels "licensing/internal/testcenter/models"
	id "licensing/pkg/domain"
)

func (s *Store) seedReference(ctx context.Context) error {
	q := s.q(ctx)
	for _, at := range reference.ApplicationTypes() {
		_, err := q.ExecContext(ctx, `
			INSERT INTO application_types (id, title, fee_cents) VALUES ($1, $2, $3)
			ON CONFLICT (id) DO NOTHING`, at.ID, at.Title, at.Fee)
		if err != nil {
			return fmt.Errorf("seed application type %d: %w", at.ID, err)
		}
	}
	for _, tt := range reference.TestTypes() {
		_, err := q.ExecContext(ctx, `
			INSERT INTO test_types (id, title, description, fee_cents) VALUES ($1, $2, $3, $4)
			ON CONFLICT (id) DO NOTHING`, tt.ID, tt.Title, tt.Description, tt.Fee)
		if err != nil {
			return fmt.Errorf("seed test type %d: %w", tt.ID, err)
		}
	}
	for _, c := range reference.LicenseClasses() {
		_, err := q.ExecContext(ctx, `
			INSERT INTO license_classes (id, name, description, minimum_age, default_validity_years, fee_cents)
			VALUES ($1, $2, $3, $4, $5, $6)
			ON CONFLICT (id) DO NOTHING`,
			c.ID, c.Name, c.Description, c.MinimumAge, c.DefaultValidityYears, c.Fee)
		if err != nil {
			return fmt.Errorf("seed license class %d: %w", c.ID, err)
		}
		for pos, testType := range c.RequiredTests {
			_, err := q.ExecContext(ctx, `
				INSERT INTO license_class_tests (license_class_id, test_type_id, position) VALUES ($1, $2, $3)
				ON CONFLICT DO NOTHING`, c.ID, testType, pos)
			if err != nil {
				return fmt.Errorf("seed license class %d tests: %w", c.ID, err)
			}
		}
	}
	return nil
}

func (s *Store) FindApplicationTypeByID(ctx context.Context, typeID id.ApplicationTypeID) (*appmodels.ApplicationType, error) {
	var at appmodels.ApplicationType
	err := s.q(ctx).QueryRowContext(ctx,
		`SELECT id, title, fee_cents FROM application_types WHERE id = $1`, typeID,
	).Scan(&at.ID, &at.Title, &at.Fee)
	if err != nil {
		return nil, mapError(err, "find application type")
	}
	return &at, nil
}

func (s *Store) ListApplicationTypes(ctx context.Context) ([]*appmodels.ApplicationType, error) {
	rows, err := s.q(ctx).QueryContext(ctx, `SELECT id, title, fee_cents FROM application_types ORDER BY id`)
	if err != nil {
		return nil, mapError(err, "list application types")
	}
	defer rows.Close()

	var out []*appmodels.ApplicationType
	for rows.Next() {
		var at appmodels.ApplicationType
		if err := rows.Scan(&at.ID, &at.Title, &at.Fee); err != nil {
			return nil, fmt.Errorf("scan application type: %w", err)
		}
		out = append(out, &at)
	}
	return out, rows.Err()
}

func (s *Store) FindTestTypeByID(ctx context.Context, typeID id.TestTypeID) (*testmodels.TestType, error) {
	var tt testmodels.TestType
	err := s.q(ctx).QueryRowContext(ctx,
		`SELECT id, title, description, fee_cents FROM test_types WHERE id = $1`, typeID,
	).Scan(&tt.ID, &tt.Title, &tt.Description, &tt.Fee)
	if err != nil {
		return nil, mapError(err, "find test type")
	}
	return &tt, nil
}

func (s *Store) ListTestTypes(ctx context.Context) ([]*testmodels.TestType, error) {
	rows, err := s.q(ctx).QueryContext(ctx, `SELECT id, title, description, fee_cents FROM test_types ORDER BY id`)
	if err != nil {
		return nil, mapError(err, "list test types")
	}
	defer rows.Close()

	var out []*testmodels.TestType
	for rows.Next() {
		var tt testmodels.TestType
		if err := rows.Scan(&tt.ID, &tt.Title, &tt.Description, &tt.Fee); err != nil {
			return nil, fmt.Errorf("scan test type: %w", err)
		}
		out = append(out, &tt)
	}
	return out, rows.Err()
}

func (s *Store) FindLicenseClassByID(ctx context.Context, classID id.LicenseClassID) (*appmodels.LicenseClass, error) {
	var c appmodels.LicenseClass
	err := s.q(ctx).QueryRowContext(ctx, `
		SELECT id, name, description, minimum_age, default_validity_years, fee_cents
		FROM license_classes WHERE id = $1`, classID,
	).Scan(&c.ID, &c.Name, &c.Description, &c.MinimumAge, &c.DefaultValidityYears, &c.Fee)
	if err != nil {
		return nil, mapError(err, "find license class")
	}
	if c.RequiredTests, err = s.requiredTests(ctx, c.ID); err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *Store) ListLicenseClasses(ctx context.Context) ([]*appmodels.LicenseClass, error) {
	rows, err := s.q(ctx).QueryContext(ctx, `SELECT id FROM license_classes ORDER BY id`)
	if err != nil {
		return nil, mapError(err, "list license classes")
	}
	var ids []id.LicenseClassID
	for rows.Next() {
		var classID id.LicenseClassID
		if err := rows.Scan(&classID); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan license class id: %w", err)
		}
		ids = append(ids, classID)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list license classes: %w", err)
	}

	out := make([]*appmodels.LicenseClass, 0, len(ids))
	for _, classID := range ids {
		c, err := s.FindLicenseClassByID(ctx, classID)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

func (s *Store) requiredTests(ctx context.Context, classID id.LicenseClassID) ([]id.TestTypeID, error) {
	rows, err := s.q(ctx).QueryContext(ctx, `
		SELECT test_type_id FROM license_class_tests
		WHERE license_class_id = $1 ORDER BY position`, classID)
	if err != nil {
		return nil, mapError(err, "list required tests")
	}
	defer rows.Close()

	var tests []id.TestTypeID
	for rows.Next() {
		var tt id.TestTypeID
		if err := rows.Scan(&tt); err != nil {
			return nil, fmt.Errorf("scan required test: %w", err)
		}
		tests = append(tests, tt)
	}
	return tests, rows.Err()
}
