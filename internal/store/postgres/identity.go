package postgres

import (
	"context"
	"fmt"

	"licensing/internal/identity/models"
	id "licensing/pkg/domain"
)

const personColumns = `id, national_id, first_name, second_name, third_name, last_name,
	date_of_birth, gender, address, phone, email, created_at, updated_at`

func scanPerson(row scanner) (*models.Person, error) {
	var p models.Person
	err := row.Scan(&p.ID, &p.NationalID, &p.FirstName, &p.SecondName, &p.ThirdName, &p.LastName,
		&p.DateOfBirth, &p.Gender, &p.Address, &p.Phone, &p.Email, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *Store) CreatePerson(ctx context.Context, person *models.Person) error {
	err := s.q(ctx).QueryRowContext(ctx, `
		INSERT INTO people (national_id, first_name, second_name, third_name, last_name,
			date_of_birth, gender, address, phone, email, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id`,
		person.NationalID, person.FirstName, person.SecondName, person.ThirdName, person.LastName,
		person.DateOfBirth, person.Gender, person.Address, person.Phone, person.Email,
		person.CreatedAt, person.UpdatedAt,
	).Scan(&person.ID)
	return mapError(err, "create person")
}

func (s *Store) UpdatePerson(ctx context.Context, person *models.Person) error {
	res, err := s.q(ctx).ExecContext(ctx, `
		UPDATE people SET national_id = $2, first_name = $3, second_name = $4, third_name = $5,
			last_name = $6, date_of_birth = $7, gender = $8, address = $9, phone = $10,
			email = $11, updated_at = $12
		WHERE id = $1`,
		person.ID, person.NationalID, person.FirstName, person.SecondName, person.ThirdName,
		person.LastName, person.DateOfBirth, person.Gender, person.Address, person.Phone,
		person.Email, person.UpdatedAt,
	)
	if err != nil {
		return mapError(err, "update person")
	}
	return expectOne(res, "update person")
}

func (s *Store) FindPersonByID(ctx context.Context, personID id.PersonID) (*models.Person, error) {
	p, err := scanPerson(s.q(ctx).QueryRowContext(ctx,
		`SELECT `+personColumns+` FROM people WHERE id = $1`, personID))
	if err != nil {
		return nil, mapError(err, "find person")
	}
	return p, nil
}

func (s *Store) FindPersonByNationalID(ctx context.Context, nationalID string) (*models.Person, error) {
	p, err := scanPerson(s.q(ctx).QueryRowContext(ctx,
		`SELECT `+personColumns+` FROM people WHERE lower(national_id) = lower($1)`, nationalID))
	if err != nil {
		return nil, mapError(err, "find person by national id")
	}
	return p, nil
}

func (s *Store) ListPeople(ctx context.Context) ([]*models.Person, error) {
	rows, err := s.q(ctx).QueryContext(ctx, `SELECT `+personColumns+` FROM people ORDER BY id`)
	if err != nil {
		return nil, mapError(err, "list people")
	}
	defer rows.Close()

	var out []*models.Person
	for rows.Next() {
		p, err := scanPerson(rows)
		if err != nil {
			return nil, fmt.Errorf("scan person: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (s *Store) CreateDriver(ctx context.Context, driver *models.Driver) error {
	err := s.q(ctx).QueryRowContext(ctx, `
		INSERT INTO drivers (person_id, created_by, created_at) VALUES ($1, $2, $3)
		RETURNING id`,
		driver.PersonID, driver.CreatedBy, driver.CreatedAt,
	).Scan(&driver.ID)
	return mapError(err, "create driver")
}

func (s *Store) FindDriverByID(ctx context.Context, driverID id.DriverID) (*models.Driver, error) {
	var d models.Driver
	err := s.q(ctx).QueryRowContext(ctx,
		`SELECT id, person_id, created_by, created_at FROM drivers WHERE id = $1`, driverID,
	).Scan(&d.ID, &d.PersonID, &d.CreatedBy, &d.CreatedAt)
	if err != nil {
		return nil, mapError(err, "find driver")
	}
	return &d, nil
}

func (s *Store) FindDriverByPersonID(ctx context.Context, personID id.PersonID) (*models.Driver, error) {
	var d models.Driver
	err := s.q(ctx).QueryRowContext(ctx,
		`SELECT id, person_id, created_by, created_at FROM drivers WHERE person_id = $1`, personID,
	).Scan(&d.ID, &d.PersonID, &d.CreatedBy, &d.CreatedAt)
	if err != nil {
		return nil, mapError(err, "find driver by person")
	}
	return &d, nil
}
