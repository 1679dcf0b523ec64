// Package service is the test subsystem: it schedules test appointments for
// local applications, records their results and answers prerequisite questions.
package service

import (
	"context"
	"errors"
	"slices"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	appmodels "licensing/internal/application/models"
	"licensing/internal/fees"
	"licensing/internal/platform/metrics"
	"licensing/internal/platform/observe"
	"licensing/internal/testcenter/models"
	id "licensing/pkg/domain"
	dErrors "licensing/pkg/domain-errors"
	"licensing/pkg/money"
	"licensing/pkg/platform/sentinel"
	"licensing/pkg/requestcontext"
)

var tracer = otel.Tracer("licensing/internal/testcenter/service")

// Store is the persistence the test subsystem needs.
type Store interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error

	FindLocalApplicationByID(ctx context.Context, appID id.ApplicationID) (*appmodels.LocalApplication, error)
	FindLocalApplicationForUpdate(ctx context.Context, appID id.ApplicationID) (*appmodels.LocalApplication, error)
	FindLicenseClassByID(ctx context.Context, classID id.LicenseClassID) (*appmodels.LicenseClass, error)
	CreateApplication(ctx context.Context, app *appmodels.Application) error

	FindTestTypeByID(ctx context.Context, typeID id.TestTypeID) (*models.TestType, error)
	ListTestTypes(ctx context.Context) ([]*models.TestType, error)
	CreateAppointment(ctx context.Context, appt *models.Appointment) error
	FindAppointmentByID(ctx context.Context, apptID id.AppointmentID) (*models.Appointment, error)
	FindAppointmentForUpdate(ctx context.Context, apptID id.AppointmentID) (*models.Appointment, error)
	UpdateAppointment(ctx context.Context, appt *models.Appointment) error
	ListAppointments(ctx context.Context, appID id.ApplicationID, testType id.TestTypeID) ([]*models.Appointment, error)
	CountAppointments(ctx context.Context, appID id.ApplicationID, testType id.TestTypeID) (int, error)
	CreateTest(ctx context.Context, test *models.Test) error
	FindTestByAppointmentID(ctx context.Context, apptID id.AppointmentID) (*models.Test, error)
	ListPassedTestTypes(ctx context.Context, appID id.ApplicationID) ([]id.TestTypeID, error)
}

type Service struct {
	store   Store
	fees    fees.Schedule
	metrics *metrics.Metrics
}

type Option func(*Service)

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func New(store Store, schedule fees.Schedule, opts ...Option) *Service {
	s := &Service{store: store, fees: schedule}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ScheduleRequest describes one sitting to book. A zero Fee charges the test
// type's fee from the fee table.
type ScheduleRequest struct {
	ApplicationID id.ApplicationID
	TestType      id.TestTypeID
	Date          time.Time
	Fee           money.Amount
	CreatedBy     id.UserID
}

// ScheduleAppointment books a trial of a test type for an open local
// application. Test types are taken in the class's order, a passed type is
// never booked again, and only one untaken appointment per type may exist.
// Any trial after the first is billed through a Retake Test application
// created in the same transaction.
func (s *Service) ScheduleAppointment(ctx context.Context, req ScheduleRequest) (apptID id.AppointmentID, err error) {
	ctx, done := observe.Operation(ctx, tracer, s.metrics, "testcenter.schedule_appointment",
		attribute.Int64("application_id", int64(req.ApplicationID)),
		attribute.Int64("test_type", int64(req.TestType)))
	defer func() { done(err) }()

	if req.Date.IsZero() {
		return 0, dErrors.New(dErrors.CodeValidation, "appointment date is required")
	}
	if req.Fee.IsNegative() {
		return 0, dErrors.New(dErrors.CodeValidation, "appointment fee cannot be negative")
	}

	err = s.store.RunInTx(ctx, func(ctx context.Context) error {
		app, err := s.store.FindLocalApplicationForUpdate(ctx, req.ApplicationID)
		if err != nil {
			return notFoundOr(err, "application not found", "failed to load application")
		}
		if !app.IsOpen() {
			return dErrors.New(dErrors.CodeNotFound, "application is not open")
		}
		if _, err := s.store.FindTestTypeByID(ctx, req.TestType); err != nil {
			return notFoundOr(err, "test type not found", "failed to load test type")
		}
		class, err := s.store.FindLicenseClassByID(ctx, app.LicenseClassID)
		if err != nil {
			return dErrors.Persistence(err, "failed to load license class")
		}
		if !class.Requires(req.TestType) {
			return dErrors.New(dErrors.CodeValidation, "test type is not required for this license class")
		}

		passed, err := s.store.ListPassedTestTypes(ctx, app.ID)
		if err != nil {
			return dErrors.Persistence(err, "failed to load test results")
		}
		if slices.Contains(passed, req.TestType) {
			return dErrors.New(dErrors.CodeTestAlreadyPassed, "test type already passed for this application")
		}
		for _, before := range class.TestsBefore(req.TestType) {
			if !slices.Contains(passed, before) {
				return dErrors.New(dErrors.CodePrerequisitesNotMet, "earlier tests must be passed first")
			}
		}

		trials, err := s.store.ListAppointments(ctx, app.ID, req.TestType)
		if err != nil {
			return dErrors.Persistence(err, "failed to load appointments")
		}
		for _, a := range trials {
			if !a.Locked {
				return dErrors.New(dErrors.CodeAppointmentPending, "an appointment for this test type is already pending")
			}
		}

		fee := req.Fee
		if fee == 0 {
			if fee, err = s.fees.TestFee(ctx, req.TestType); err != nil {
				return err
			}
		}
		appt := &models.Appointment{
			ApplicationID: app.ID,
			TestTypeID:    req.TestType,
			Date:          req.Date,
			PaidFee:       fee,
			CreatedBy:     req.CreatedBy,
		}
		if len(trials) > 0 {
			retakeID, err := s.createRetake(ctx, app, req.CreatedBy)
			if err != nil {
				return err
			}
			appt.RetakeApplicationID = &retakeID
		}
		if err := s.store.CreateAppointment(ctx, appt); err != nil {
			return dErrors.Persistence(err, "failed to create appointment")
		}
		apptID = appt.ID
		return nil
	})
	if err != nil {
		return 0, err
	}
	return apptID, nil
}

func (s *Service) createRetake(ctx context.Context, app *appmodels.LocalApplication, createdBy id.UserID) (id.ApplicationID, error) {
	fee, err := s.fees.LookupFee(ctx, appmodels.TypeRetakeTest)
	if err != nil {
		return 0, err
	}
	retake := appmodels.NewCompleted(app.ApplicantPersonID, appmodels.TypeRetakeTest, fee, createdBy, requestcontext.Now(ctx))
	if err := s.store.CreateApplication(ctx, retake); err != nil {
		return 0, dErrors.Persistence(err, "failed to create retake application")
	}
	return retake.ID, nil
}

// RescheduleAppointment moves an appointment that has not been taken yet.
func (s *Service) RescheduleAppointment(ctx context.Context, apptID id.AppointmentID, date time.Time) (appt *models.Appointment, err error) {
	ctx, done := observe.Operation(ctx, tracer, s.metrics, "testcenter.reschedule_appointment",
		attribute.Int64("appointment_id", int64(apptID)))
	defer func() { done(err) }()

	if date.IsZero() {
		return nil, dErrors.New(dErrors.CodeValidation, "appointment date is required")
	}
	err = s.store.RunInTx(ctx, func(ctx context.Context) error {
		current, err := s.store.FindAppointmentForUpdate(ctx, apptID)
		if err != nil {
			return notFoundOr(err, "appointment not found", "failed to load appointment")
		}
		if current.Locked {
			return dErrors.New(dErrors.CodeAlreadyRecorded, "appointment already has a result")
		}
		current.Date = date
		if err := s.store.UpdateAppointment(ctx, current); err != nil {
			return dErrors.Persistence(err, "failed to update appointment")
		}
		appt = current
		return nil
	})
	if err != nil {
		return nil, err
	}
	return appt, nil
}

// RecordResult stores the outcome of an appointment and locks it. An
// appointment has exactly one result.
func (s *Service) RecordResult(ctx context.Context, apptID id.AppointmentID, passed bool, notes string, createdBy id.UserID) (testID id.TestID, err error) {
	ctx, done := observe.Operation(ctx, tracer, s.metrics, "testcenter.record_result",
		attribute.Int64("appointment_id", int64(apptID)),
		attribute.Bool("passed", passed))
	defer func() { done(err) }()

	var testType id.TestTypeID
	err = s.store.RunInTx(ctx, func(ctx context.Context) error {
		appt, err := s.store.FindAppointmentForUpdate(ctx, apptID)
		if err != nil {
			return notFoundOr(err, "appointment not found", "failed to load appointment")
		}
		if appt.Locked {
			return dErrors.New(dErrors.CodeAlreadyRecorded, "appointment already has a result")
		}
		test := &models.Test{
			AppointmentID: appt.ID,
			Passed:        passed,
			Notes:         notes,
			CreatedBy:     createdBy,
			CreatedAt:     requestcontext.Now(ctx),
		}
		if err := s.store.CreateTest(ctx, test); err != nil {
			if errors.Is(err, sentinel.ErrConflict) {
				return dErrors.New(dErrors.CodeAlreadyRecorded, "appointment already has a result")
			}
			return dErrors.Persistence(err, "failed to record test")
		}
		appt.Locked = true
		if err := s.store.UpdateAppointment(ctx, appt); err != nil {
			return dErrors.Persistence(err, "failed to lock appointment")
		}
		testID = test.ID
		testType = appt.TestTypeID
		return nil
	})
	if err != nil {
		return 0, err
	}
	s.metrics.IncTestsRecorded(models.TestTypeName(testType), passed)
	return testID, nil
}

// CountTrials returns how many appointments of a test type the application
// has, taken or scheduled. The core enforces no cap.
func (s *Service) CountTrials(ctx context.Context, appID id.ApplicationID, testType id.TestTypeID) (int, error) {
	n, err := s.store.CountAppointments(ctx, appID, testType)
	if err != nil {
		return 0, dErrors.Persistence(err, "failed to count trials")
	}
	return n, nil
}

// HasPassedAllRequiredTests reports whether every test type the application's
// class requires has at least one passing result.
func (s *Service) HasPassedAllRequiredTests(ctx context.Context, appID id.ApplicationID) (bool, error) {
	app, err := s.store.FindLocalApplicationByID(ctx, appID)
	if err != nil {
		return false, notFoundOr(err, "application not found", "failed to load application")
	}
	class, err := s.store.FindLicenseClassByID(ctx, app.LicenseClassID)
	if err != nil {
		return false, dErrors.Persistence(err, "failed to load license class")
	}
	passed, err := s.store.ListPassedTestTypes(ctx, appID)
	if err != nil {
		return false, dErrors.Persistence(err, "failed to load test results")
	}
	return class.AllPassed(passed), nil
}

// PassedTestCount returns the number of distinct test types passed.
func (s *Service) PassedTestCount(ctx context.Context, appID id.ApplicationID) (int, error) {
	passed, err := s.store.ListPassedTestTypes(ctx, appID)
	if err != nil {
		return 0, dErrors.Persistence(err, "failed to load test results")
	}
	return len(passed), nil
}

func (s *Service) ListAppointments(ctx context.Context, appID id.ApplicationID, testType id.TestTypeID) ([]*models.Appointment, error) {
	if _, err := s.store.FindLocalApplicationByID(ctx, appID); err != nil {
		return nil, notFoundOr(err, "application not found", "failed to load application")
	}
	appts, err := s.store.ListAppointments(ctx, appID, testType)
	if err != nil {
		return nil, dErrors.Persistence(err, "failed to list appointments")
	}
	return appts, nil
}

func (s *Service) GetAppointment(ctx context.Context, apptID id.AppointmentID) (*models.Appointment, error) {
	appt, err := s.store.FindAppointmentByID(ctx, apptID)
	if err != nil {
		return nil, notFoundOr(err, "appointment not found", "failed to load appointment")
	}
	return appt, nil
}

// GetResult returns the test recorded for an appointment.
func (s *Service) GetResult(ctx context.Context, apptID id.AppointmentID) (*models.Test, error) {
	test, err := s.store.FindTestByAppointmentID(ctx, apptID)
	if err != nil {
		return nil, notFoundOr(err, "no result recorded for appointment", "failed to load test")
	}
	return test, nil
}

func (s *Service) ListTestTypes(ctx context.Context) ([]*models.TestType, error) {
	types, err := s.store.ListTestTypes(ctx)
	if err != nil {
		return nil, dErrors.Persistence(err, "failed to list test types")
	}
	return types, nil
}

func notFoundOr(err error, notFound, failure string) error {
	if errors.Is(err, sentinel.ErrNotFound) {
		return dErrors.New(dErrors.CodeNotFound, notFound)
	}
	return dErrors.Persistence(err, failure)
}
