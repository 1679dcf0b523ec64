package memory

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	appmodels "licensing/internal/application/models"
	identitymodels "licensing/internal/identity/models"
	intlmodels "licensing/internal/international/models"
	licensemodels "licensing/internal/license/models"
	testmodels "licensing/internal/testcenter/models"
	id "licensing/pkg/domain"
	dErrors "licensing/pkg/domain-errors"
	"licensing/pkg/money"
	"licensing/pkg/platform/sentinel"
)

type StoreSuite struct {
	suite.Suite
	store *Store
	ctx   context.Context
	now   time.Time
}

func TestStoreSuite(t *testing.T) {
	suite.Run(t, new(StoreSuite))
}

func (s *StoreSuite) SetupTest() {
	s.store = New()
	s.ctx = context.Background()
	s.now = time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
}

func (s *StoreSuite) newPerson(nationalID string) *identitymodels.Person {
	p := &identitymodels.Person{
		NationalID:  nationalID,
		FirstName:   "Ada",
		LastName:    "Driver",
		DateOfBirth: time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC),
		Gender:      identitymodels.GenderFemale,
		CreatedAt:   s.now,
		UpdatedAt:   s.now,
	}
	s.Require().NoError(s.store.CreatePerson(s.ctx, p))
	return p
}

func (s *StoreSuite) newDriver(nationalID string) *identitymodels.Driver {
	p := s.newPerson(nationalID)
	d := &identitymodels.Driver{PersonID: p.ID, CreatedBy: 1, CreatedAt: s.now}
	s.Require().NoError(s.store.CreateDriver(s.ctx, d))
	return d
}

func (s *StoreSuite) newLicense(driverID id.DriverID) *licensemodels.License {
	l := &licensemodels.License{
		DriverID:       driverID,
		LicenseClassID: appmodels.ClassOrdinary,
		IssueDate:      s.now,
		ExpirationDate: s.now.AddDate(10, 0, 0),
		IsActive:       true,
		IssueReason:    licensemodels.IssueReasonFirstTime,
	}
	s.Require().NoError(s.store.CreateLicense(s.ctx, l))
	return l
}

func (s *StoreSuite) TestReferenceData() {
	classes, err := s.store.ListLicenseClasses(s.ctx)
	s.Require().NoError(err)
	s.Len(classes, 8)
	s.Equal(id.LicenseClassID(1), classes[0].ID)

	light, err := s.store.FindLicenseClassByID(s.ctx, appmodels.ClassLightVehicle)
	s.Require().NoError(err)
	s.Equal([]id.TestTypeID{testmodels.TestTypeVision, testmodels.TestTypeWritten}, light.RequiredTests)

	at, err := s.store.FindApplicationTypeByID(s.ctx, appmodels.TypeReleaseDetained)
	s.Require().NoError(err)
	s.Equal(money.FromUnits(15), at.Fee)

	tt, err := s.store.FindTestTypeByID(s.ctx, testmodels.TestTypeStreet)
	s.Require().NoError(err)
	s.Equal(money.FromUnits(35), tt.Fee)

	_, err = s.store.FindLicenseClassByID(s.ctx, 99)
	s.ErrorIs(err, sentinel.ErrNotFound)

	s.Run("returned classes do not alias the reference rows", func() {
		c, err := s.store.FindLicenseClassByID(s.ctx, appmodels.ClassOrdinary)
		s.Require().NoError(err)
		c.RequiredTests[0] = 99
		again, err := s.store.FindLicenseClassByID(s.ctx, appmodels.ClassOrdinary)
		s.Require().NoError(err)
		s.Equal(testmodels.TestTypeVision, again.RequiredTests[0])
	})
}

func (s *StoreSuite) TestPeople() {
	p := s.newPerson("N100")

	s.Run("national id is unique regardless of case", func() {
		dup := &identitymodels.Person{NationalID: "n100", FirstName: "B", LastName: "C"}
		s.ErrorIs(s.store.CreatePerson(s.ctx, dup), sentinel.ErrConflict)
	})

	s.Run("finds by national id case-insensitively", func() {
		found, err := s.store.FindPersonByNationalID(s.ctx, "n100")
		s.Require().NoError(err)
		s.Equal(p.ID, found.ID)
	})

	s.Run("one driver per person", func() {
		d := &identitymodels.Driver{PersonID: p.ID}
		s.Require().NoError(s.store.CreateDriver(s.ctx, d))
		s.ErrorIs(s.store.CreateDriver(s.ctx, &identitymodels.Driver{PersonID: p.ID}), sentinel.ErrConflict)

		found, err := s.store.FindDriverByPersonID(s.ctx, p.ID)
		s.Require().NoError(err)
		s.Equal(d.ID, found.ID)
	})

	s.Run("driver requires a person", func() {
		s.ErrorIs(s.store.CreateDriver(s.ctx, &identitymodels.Driver{PersonID: 999}), sentinel.ErrNotFound)
	})
}

func (s *StoreSuite) TestLocalApplicationUniqueness() {
	d := s.newDriver("N200")
	driver, err := s.store.FindDriverByID(s.ctx, d.ID)
	s.Require().NoError(err)

	newApp := func() *appmodels.LocalApplication {
		return &appmodels.LocalApplication{
			Application: appmodels.Application{
				ApplicantPersonID: driver.PersonID,
				TypeID:            appmodels.TypeNewLocalLicense,
				Status:            appmodels.StatusNew,
				ApplicationDate:   s.now,
				LastStatusDate:    s.now,
			},
			DriverID:       d.ID,
			LicenseClassID: appmodels.ClassOrdinary,
		}
	}

	first := newApp()
	s.Require().NoError(s.store.CreateLocalApplication(s.ctx, first))
	s.ErrorIs(s.store.CreateLocalApplication(s.ctx, newApp()), sentinel.ErrConflict)

	s.Require().NoError(s.store.UpdateApplicationStatus(s.ctx, first.ID, appmodels.StatusCancelled, s.now))
	s.NoError(s.store.CreateLocalApplication(s.ctx, newApp()), "a cancelled application frees the class")

	found, err := s.store.FindLocalApplicationByID(s.ctx, first.ID)
	s.Require().NoError(err)
	s.Equal(appmodels.StatusCancelled, found.Status)
	s.Equal(d.ID, found.DriverID)
}

func (s *StoreSuite) TestLicenses() {
	d := s.newDriver("N300")
	l := s.newLicense(d.ID)

	s.Run("second live license for the same class conflicts", func() {
		dup := &licensemodels.License{DriverID: d.ID, LicenseClassID: appmodels.ClassOrdinary, IsActive: true}
		s.ErrorIs(s.store.CreateLicense(s.ctx, dup), sentinel.ErrConflict)
	})

	s.Run("detained license still occupies the slot", func() {
		l.ApplyDetention()
		s.Require().NoError(s.store.UpdateLicense(s.ctx, l))
		live, err := s.store.FindLiveLicense(s.ctx, d.ID, appmodels.ClassOrdinary)
		s.Require().NoError(err)
		s.Equal(l.ID, live.ID)
		s.True(live.IsDetained)
	})

	s.Run("one open detain per license", func() {
		detain := &licensemodels.Detain{LicenseID: l.ID, DetainDate: s.now, FineFee: money.FromUnits(20)}
		s.Require().NoError(s.store.CreateDetain(s.ctx, detain))
		s.ErrorIs(s.store.CreateDetain(s.ctx, &licensemodels.Detain{LicenseID: l.ID, DetainDate: s.now}), sentinel.ErrConflict)

		detain.Close(s.now.Add(time.Hour), 1, 10)
		s.Require().NoError(s.store.UpdateDetain(s.ctx, detain))
		_, err := s.store.FindOpenDetain(s.ctx, l.ID)
		s.ErrorIs(err, sentinel.ErrNotFound)
		s.NoError(s.store.CreateDetain(s.ctx, &licensemodels.Detain{LicenseID: l.ID, DetainDate: s.now}))
	})
}

func (s *StoreSuite) TestTests() {
	d := s.newDriver("N400")
	driver, _ := s.store.FindDriverByID(s.ctx, d.ID)
	app := &appmodels.LocalApplication{
		Application:    appmodels.Application{ApplicantPersonID: driver.PersonID, Status: appmodels.StatusNew},
		DriverID:       d.ID,
		LicenseClassID: appmodels.ClassOrdinary,
	}
	s.Require().NoError(s.store.CreateLocalApplication(s.ctx, app))

	vision := &testmodels.Appointment{ApplicationID: app.ID, TestTypeID: testmodels.TestTypeVision, Date: s.now}
	s.Require().NoError(s.store.CreateAppointment(s.ctx, vision))
	s.Require().NoError(s.store.CreateTest(s.ctx, &testmodels.Test{AppointmentID: vision.ID, Passed: true}))
	s.ErrorIs(s.store.CreateTest(s.ctx, &testmodels.Test{AppointmentID: vision.ID}), sentinel.ErrConflict)

	written := &testmodels.Appointment{ApplicationID: app.ID, TestTypeID: testmodels.TestTypeWritten, Date: s.now}
	s.Require().NoError(s.store.CreateAppointment(s.ctx, written))
	s.Require().NoError(s.store.CreateTest(s.ctx, &testmodels.Test{AppointmentID: written.ID, Passed: false}))

	passed, err := s.store.ListPassedTestTypes(s.ctx, app.ID)
	s.Require().NoError(err)
	s.Equal([]id.TestTypeID{testmodels.TestTypeVision}, passed)

	count, err := s.store.CountAppointments(s.ctx, app.ID, testmodels.TestTypeWritten)
	s.Require().NoError(err)
	s.Equal(1, count)

	all, err := s.store.ListAppointments(s.ctx, app.ID, 0)
	s.Require().NoError(err)
	s.Len(all, 2)
	s.Equal(vision.ID, all[0].ID)
}

func (s *StoreSuite) TestInternationalLicenses() {
	d := s.newDriver("N500")
	local := s.newLicense(d.ID)
	newIntl := func() *intlmodels.License {
		return &intlmodels.License{
			DriverID:                  d.ID,
			IssuedUsingLocalLicenseID: local.ID,
			IssueDate:                 s.now,
			ExpirationDate:            s.now.AddDate(1, 0, 0),
			IsActive:                  true,
		}
	}

	s.Require().NoError(s.store.CreateInternationalLicense(s.ctx, newIntl()))
	s.ErrorIs(s.store.CreateInternationalLicense(s.ctx, newIntl()), sentinel.ErrConflict)

	changed, err := s.store.DeactivateInternationalLicenses(s.ctx, d.ID)
	s.Require().NoError(err)
	s.Equal(1, changed)
	s.NoError(s.store.CreateInternationalLicense(s.ctx, newIntl()))

	list, err := s.store.ListInternationalLicensesByDriver(s.ctx, d.ID)
	s.Require().NoError(err)
	s.Len(list, 2)
	s.False(list[0].IsActive)
	s.True(list[1].IsActive)
}

func (s *StoreSuite) TestRunInTx() {
	s.Run("failed transaction leaves no trace", func() {
		boom := errors.New("boom")
		err := s.store.RunInTx(s.ctx, func(ctx context.Context) error {
			s.Require().NoError(s.store.CreatePerson(ctx, &identitymodels.Person{NationalID: "ROLLBACK"}))
			return boom
		})
		s.ErrorIs(err, boom)
		_, err = s.store.FindPersonByNationalID(s.ctx, "ROLLBACK")
		s.ErrorIs(err, sentinel.ErrNotFound)
	})

	s.Run("writes are visible inside the transaction only until commit", func() {
		err := s.store.RunInTx(s.ctx, func(ctx context.Context) error {
			p := &identitymodels.Person{NationalID: "INTX"}
			s.Require().NoError(s.store.CreatePerson(ctx, p))
			_, err := s.store.FindPersonByID(ctx, p.ID)
			s.Require().NoError(err)
			_, err = s.store.FindPersonByID(s.ctx, p.ID)
			s.ErrorIs(err, sentinel.ErrNotFound)
			return nil
		})
		s.Require().NoError(err)
		_, err = s.store.FindPersonByNationalID(s.ctx, "INTX")
		s.NoError(err)
	})

	s.Run("nested transactions join the outer one", func() {
		err := s.store.RunInTx(s.ctx, func(ctx context.Context) error {
			return s.store.RunInTx(ctx, func(inner context.Context) error {
				return s.store.CreatePerson(inner, &identitymodels.Person{NationalID: "NESTED"})
			})
		})
		s.Require().NoError(err)
		_, err = s.store.FindPersonByNationalID(s.ctx, "NESTED")
		s.NoError(err)
	})

	s.Run("cancelled context aborts with a timeout code", func() {
		ctx, cancel := context.WithCancel(s.ctx)
		cancel()
		err := s.store.RunInTx(ctx, func(context.Context) error { return nil })
		s.True(dErrors.HasCode(err, dErrors.CodeTimeout))
	})
}

// TestConcurrentDetain verifies the single writer lets exactly one of many
// concurrent check-then-detain transactions through.
func (s *StoreSuite) TestConcurrentDetain() {
	d := s.newDriver("N600")
	l := s.newLicense(d.ID)
	const goroutines = 50

	var wg sync.WaitGroup
	var successCount, rejectedCount atomic.Int32
	for range goroutines {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := s.store.RunInTx(s.ctx, func(ctx context.Context) error {
				current, err := s.store.FindLicenseForUpdate(ctx, l.ID)
				if err != nil {
					return err
				}
				if current.IsDetained {
					return sentinel.ErrInvalidState
				}
				current.ApplyDetention()
				if err := s.store.UpdateLicense(ctx, current); err != nil {
					return err
				}
				return s.store.CreateDetain(ctx, &licensemodels.Detain{LicenseID: l.ID, DetainDate: s.now})
			})
			if err == nil {
				successCount.Add(1)
			} else if errors.Is(err, sentinel.ErrInvalidState) {
				rejectedCount.Add(1)
			}
		}()
	}
	wg.Wait()

	s.Equal(int32(1), successCount.Load())
	s.Equal(int32(goroutines-1), rejectedCount.Load())
	detains, err := s.store.ListDetains(s.ctx)
	s.Require().NoError(err)
	s.Len(detains, 1)
}
