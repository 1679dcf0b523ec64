package memory

import (
	"cmp"
	"context"
	"slices"

	"licensing/internal/testcenter/models"
	id "licensing/pkg/domain"
	"licensing/pkg/platform/sentinel"
)

func (s *Store) FindTestTypeByID(_ context.Context, typeID id.TestTypeID) (*models.TestType, error) {
	tt, ok := s.testTypes[typeID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return &tt, nil
}

func (s *Store) ListTestTypes(_ context.Context) ([]*models.TestType, error) {
	types := make([]*models.TestType, 0, len(s.testTypes))
	for _, tt := range s.testTypes {
		types = append(types, &tt)
	}
	slices.SortFunc(types, func(a, b *models.TestType) int { return cmp.Compare(a.ID, b.ID) })
	return types, nil
}

func (s *Store) CreateAppointment(ctx context.Context, appt *models.Appointment) error {
	return s.write(ctx, func(t *tables) error {
		if _, ok := t.localApps[appt.ApplicationID]; !ok {
			return sentinel.ErrNotFound
		}
		t.seq.appointment++
		appt.ID = id.AppointmentID(t.seq.appointment)
		t.appointments[appt.ID] = copyAppointment(*appt)
		return nil
	})
}

func (s *Store) FindAppointmentByID(ctx context.Context, apptID id.AppointmentID) (*models.Appointment, error) {
	var found *models.Appointment
	err := s.read(ctx, func(t *tables) error {
		a, ok := t.appointments[apptID]
		if !ok {
			return sentinel.ErrNotFound
		}
		a = copyAppointment(a)
		found = &a
		return nil
	})
	return found, err
}

func (s *Store) FindAppointmentForUpdate(ctx context.Context, apptID id.AppointmentID) (*models.Appointment, error) {
	return s.FindAppointmentByID(ctx, apptID)
}

func (s *Store) UpdateAppointment(ctx context.Context, appt *models.Appointment) error {
	return s.write(ctx, func(t *tables) error {
		if _, ok := t.appointments[appt.ID]; !ok {
			return sentinel.ErrNotFound
		}
		t.appointments[appt.ID] = copyAppointment(*appt)
		return nil
	})
}

// ListAppointments returns the appointments of an application in scheduling
// order. A zero testType lists every type.
func (s *Store) ListAppointments(ctx context.Context, appID id.ApplicationID, testType id.TestTypeID) ([]*models.Appointment, error) {
	var out []*models.Appointment
	err := s.read(ctx, func(t *tables) error {
		for _, a := range t.appointments {
			if a.ApplicationID != appID || (testType != 0 && a.TestTypeID != testType) {
				continue
			}
			a = copyAppointment(a)
			out = append(out, &a)
		}
		return nil
	})
	slices.SortFunc(out, func(a, b *models.Appointment) int { return cmp.Compare(a.ID, b.ID) })
	return out, err
}

func (s *Store) CountAppointments(ctx context.Context, appID id.ApplicationID, testType id.TestTypeID) (int, error) {
	count := 0
	err := s.read(ctx, func(t *tables) error {
		for _, a := range t.appointments {
			if a.ApplicationID == appID && a.TestTypeID == testType {
				count++
			}
		}
		return nil
	})
	return count, err
}

// CreateTest records a result. An appointment has at most one test.
func (s *Store) CreateTest(ctx context.Context, test *models.Test) error {
	return s.write(ctx, func(t *tables) error {
		if _, ok := t.appointments[test.AppointmentID]; !ok {
			return sentinel.ErrNotFound
		}
		for _, existing := range t.tests {
			if existing.AppointmentID == test.AppointmentID {
				return sentinel.ErrConflict
			}
		}
		t.seq.test++
		test.ID = id.TestID(t.seq.test)
		t.tests[test.ID] = *test
		return nil
	})
}

func (s *Store) FindTestByAppointmentID(ctx context.Context, apptID id.AppointmentID) (*models.Test, error) {
	var found *models.Test
	err := s.read(ctx, func(t *tables) error {
		for _, test := range t.tests {
			if test.AppointmentID == apptID {
				found = &test
				return nil
			}
		}
		return sentinel.ErrNotFound
	})
	return found, err
}

// ListPassedTestTypes returns the distinct test types with at least one
// passing result for the application, in ascending order.
func (s *Store) ListPassedTestTypes(ctx context.Context, appID id.ApplicationID) ([]id.TestTypeID, error) {
	var passed []id.TestTypeID
	err := s.read(ctx, func(t *tables) error {
		for _, test := range t.tests {
			if !test.Passed {
				continue
			}
			appt := t.appointments[test.AppointmentID]
			if appt.ApplicationID == appID && !slices.Contains(passed, appt.TestTypeID) {
				passed = append(passed, appt.TestTypeID)
			}
		}
		return nil
	})
	slices.Sort(passed)
	return passed, err
}

func copyAppointment(a models.Appointment) models.Appointment {
	if a.RetakeApplicationID != nil {
		v := *a.RetakeApplicationID
		a.RetakeApplicationID = &v
	}
	return a
}
