package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"licensing/internal/testcenter/models"
	id "licensing/pkg/domain"
)

const appointmentColumns = `id, application_id, test_type_id, appointment_date, paid_fee_cents,
	created_by, is_locked, retake_application_id`

func scanAppointment(row scanner) (*models.Appointment, error) {
	var a models.Appointment
	var retake sql.NullInt64
	err := row.Scan(&a.ID, &a.ApplicationID, &a.TestTypeID, &a.Date, &a.PaidFee,
		&a.CreatedBy, &a.Locked, &retake)
	if err != nil {
		return nil, err
	}
	if retake.Valid {
		v := id.ApplicationID(retake.Int64)
		a.RetakeApplicationID = &v
	}
	return &a, nil
}

func nullableApplicationID(v *id.ApplicationID) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*v), Valid: true}
}

func (s *Store) CreateAppointment(ctx context.Context, appt *models.Appointment) error {
	err := s.q(ctx).QueryRowContext(ctx, `
		INSERT INTO appointments (application_id, test_type_id, appointment_date, paid_fee_cents,
			created_by, is_locked, retake_application_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`,
		appt.ApplicationID, appt.TestTypeID, appt.Date, appt.PaidFee, appt.CreatedBy,
		appt.Locked, nullableApplicationID(appt.RetakeApplicationID),
	).Scan(&appt.ID)
	return mapError(err, "create appointment")
}

func (s *Store) FindAppointmentByID(ctx context.Context, apptID id.AppointmentID) (*models.Appointment, error) {
	a, err := scanAppointment(s.q(ctx).QueryRowContext(ctx,
		`SELECT `+appointmentColumns+` FROM appointments WHERE id = $1`, apptID))
	if err != nil {
		return nil, mapError(err, "find appointment")
	}
	return a, nil
}

func (s *Store) FindAppointmentForUpdate(ctx context.Context, apptID id.AppointmentID) (*models.Appointment, error) {
	a, err := scanAppointment(s.q(ctx).QueryRowContext(ctx,
		`SELECT `+appointmentColumns+` FROM appointments WHERE id = $1 FOR UPDATE`, apptID))
	if err != nil {
		return nil, mapError(err, "find appointment for update")
	}
	return a, nil
}

func (s *Store) UpdateAppointment(ctx context.Context, appt *models.Appointment) error {
	res, err := s.q(ctx).ExecContext(ctx, `
		UPDATE appointments SET appointment_date = $2, paid_fee_cents = $3, is_locked = $4,
			retake_application_id = $5
		WHERE id = $1`,
		appt.ID, appt.Date, appt.PaidFee, appt.Locked, nullableApplicationID(appt.RetakeApplicationID))
	if err != nil {
		return mapError(err, "update appointment")
	}
	return expectOne(res, "update appointment")
}

// ListAppointments returns the appointments of an application in scheduling
// order. A zero testType lists every type.
func (s *Store) ListAppointments(ctx context.Context, appID id.ApplicationID, testType id.TestTypeID) ([]*models.Appointment, error) {
	rows, err := s.q(ctx).QueryContext(ctx, `
		SELECT `+appointmentColumns+` FROM appointments
		WHERE application_id = $1 AND ($2::bigint = 0 OR test_type_id = $2::bigint)
		ORDER BY id`, appID, int64(testType))
	if err != nil {
		return nil, mapError(err, "list appointments")
	}
	defer rows.Close()

	var out []*models.Appointment
	for rows.Next() {
		a, err := scanAppointment(rows)
		if err != nil {
			return nil, fmt.Errorf("scan appointment: %w", err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (s *Store) CountAppointments(ctx context.Context, appID id.ApplicationID, testType id.TestTypeID) (int, error) {
	var count int
	err := s.q(ctx).QueryRowContext(ctx,
		`SELECT count(*) FROM appointments WHERE application_id = $1 AND test_type_id = $2`,
		appID, testType,
	).Scan(&count)
	if err != nil {
		return 0, mapError(err, "count appointments")
	}
	return count, nil
}

func (s *Store) CreateTest(ctx context.Context, test *models.Test) error {
	err := s.q(ctx).QueryRowContext(ctx, `
		INSERT INTO tests (appointment_id, passed, notes, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`,
		test.AppointmentID, test.Passed, test.Notes, test.CreatedBy, test.CreatedAt,
	).Scan(&test.ID)
	return mapError(err, "create test")
}

func (s *Store) FindTestByAppointmentID(ctx context.Context, apptID id.AppointmentID) (*models.Test, error) {
	var t models.Test
	err := s.q(ctx).QueryRowContext(ctx, `
		SELECT id, appointment_id, passed, notes, created_by, created_at
		FROM tests WHERE appointment_id = $1`, apptID,
	).Scan(&t.ID, &t.AppointmentID, &t.Passed, &t.Notes, &t.CreatedBy, &t.CreatedAt)
	if err != nil {
		return nil, mapError(err, "find test")
	}
	return &t, nil
}

// ListPassedTestTypes returns the distinct test types with at least one
// passing result for the application, in ascending order.
func (s *Store) ListPassedTestTypes(ctx context.Context, appID id.ApplicationID) ([]id.TestTypeID, error) {
	rows, err := s.q(ctx).QueryContext(ctx, `
		SELECT DISTINCT a.test_type_id
		FROM tests t JOIN appointments a ON a.id = t.appointment_id
		WHERE a.application_id = $1 AND t.passed
		ORDER BY a.test_type_id`, appID)
	if err != nil {
		return nil, mapError(err, "list passed tests")
	}
	defer rows.Close()

	var passed []id.TestTypeID
	for rows.Next() {
		var tt id.TestTypeID
		if err := rows.Scan(&tt); err != nil {
			return nil, fmt.Errorf("scan passed test: %w", err)
		}
		passed = append(passed, tt)
	}
	return passed, rows.Err()
}
