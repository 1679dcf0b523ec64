package service_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	appmodels "licensing/internal/application/models"
	"licensing/internal/fees"
	"licensing/internal/fees/mocks"
	identitymodels "licensing/internal/identity/models"
	"licensing/internal/international/service"
	licensemodels "licensing/internal/license/models"
	licenseservice "licensing/internal/license/service"
	"licensing/internal/store/memory"
	id "licensing/pkg/domain"
	dErrors "licensing/pkg/domain-errors"
	"licensing/pkg/money"
	"licensing/pkg/requestcontext"
)

type passed struct{}

func (passed) HasPassedAllRequiredTests(context.Context, id.ApplicationID) (bool, error) {
	return true, nil
}

type ServiceSuite struct {
	suite.Suite
	store    *memory.Store
	licenses *licenseservice.Service
	service  *service.Service
	ctx      context.Context
	now      time.Time
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.store = memory.New()
	table := fees.NewTable(s.store)
	s.licenses = licenseservice.New(s.store, table, passed{})
	s.service = service.New(s.store, table)
	s.now = time.Date(2024, 10, 14, 15, 0, 0, 0, time.UTC)
	s.ctx = requestcontext.WithTime(context.Background(), s.now)
}

// newLicense issues a local license of the given class.
func (s *ServiceSuite) newLicense(nationalID string, classID id.LicenseClassID) *licensemodels.License {
	p := &identitymodels.Person{
		NationalID:  nationalID,
		FirstName:   "Ken",
		LastName:    "Thompson",
		DateOfBirth: time.Date(1970, 2, 4, 0, 0, 0, 0, time.UTC),
		Gender:      identitymodels.GenderMale,
	}
	s.Require().NoError(s.store.CreatePerson(s.ctx, p))
	d := &identitymodels.Driver{PersonID: p.ID, CreatedBy: 1}
	s.Require().NoError(s.store.CreateDriver(s.ctx, d))
	app := &appmodels.LocalApplication{
		Application: appmodels.Application{
			ApplicantPersonID: p.ID,
			TypeID:            appmodels.TypeNewLocalLicense,
			Status:            appmodels.StatusNew,
			ApplicationDate:   s.now,
			LastStatusDate:    s.now,
		},
		DriverID:       d.ID,
		LicenseClassID: classID,
	}
	s.Require().NoError(s.store.CreateLocalApplication(s.ctx, app))
	licenseID, err := s.licenses.Issue(s.ctx, licenseservice.IssueRequest{ApplicationID: app.ID})
	s.Require().NoError(err)
	l, err := s.licenses.GetLicense(s.ctx, licenseID)
	s.Require().NoError(err)
	return l
}

func (s *ServiceSuite) issue(localID id.LicenseID) (id.InternationalLicenseID, error) {
	return s.service.Issue(s.ctx, service.IssueRequest{LocalLicenseID: localID, CreatedBy: 2})
}

func (s *ServiceSuite) TestIssue() {
	l := s.newLicense("I100", appmodels.ClassOrdinary)

	intlID, err := s.issue(l.ID)
	s.Require().NoError(err)

	intl, err := s.service.Get(s.ctx, intlID)
	s.Require().NoError(err)
	s.Equal(l.ID, intl.IssuedUsingLocalLicenseID)
	s.Equal(l.DriverID, intl.DriverID)
	s.Equal(s.now, intl.IssueDate)
	s.Equal(s.now.Add(365*24*time.Hour), intl.ExpirationDate)
	s.True(intl.IsActive)

	app, err := s.store.FindApplicationByID(s.ctx, intl.ApplicationID)
	s.Require().NoError(err)
	s.Equal(appmodels.TypeNewInternational, app.TypeID)
	s.Equal(money.FromUnits(51), app.PaidFees)

	active, err := s.service.IsActive(s.ctx, intlID)
	s.Require().NoError(err)
	s.True(active)
}

func (s *ServiceSuite) TestReissueDeactivatesPrevious() {
	l := s.newLicense("I200", appmodels.ClassOrdinary)
	first, err := s.issue(l.ID)
	s.Require().NoError(err)
	second, err := s.issue(l.ID)
	s.Require().NoError(err)

	active, err := s.service.IsActive(s.ctx, first)
	s.Require().NoError(err)
	s.False(active)
	active, err = s.service.IsActive(s.ctx, second)
	s.Require().NoError(err)
	s.True(active)

	all, err := s.service.ListByDriver(s.ctx, l.DriverID)
	s.Require().NoError(err)
	s.Len(all, 2)
}

func (s *ServiceSuite) TestSourceEligibility() {
	s.Run("detained source", func() {
		l := s.newLicense("I300", appmodels.ClassOrdinary)
		_, err := s.licenses.Detain(s.ctx, l.ID, money.FromUnits(20), 4)
		s.Require().NoError(err)

		_, err = s.issue(l.ID)
		s.True(dErrors.HasCode(err, dErrors.CodeSourceLicenseNotEligible))
	})

	s.Run("expired source", func() {
		l := s.newLicense("I301", appmodels.ClassOrdinary)
		_, err := s.service.Issue(requestcontext.WithTime(s.ctx, l.ExpirationDate), service.IssueRequest{LocalLicenseID: l.ID})
		s.True(dErrors.HasCode(err, dErrors.CodeSourceLicenseNotEligible))
	})

	s.Run("retired source", func() {
		l := s.newLicense("I302", appmodels.ClassOrdinary)
		_, err := s.licenses.Replace(s.ctx, l.ID, licensemodels.IssueReasonReplacementDamaged, 4)
		s.Require().NoError(err)
		_, err = s.issue(l.ID)
		s.True(dErrors.HasCode(err, dErrors.CodeSourceLicenseNotEligible))
	})

	s.Run("wrong class", func() {
		for i, class := range []id.LicenseClassID{1, appmodels.ClassLightVehicle} {
			l := s.newLicense("I303"+string(rune('A'+i)), class)
			_, err := s.issue(l.ID)
			s.True(dErrors.HasCode(err, dErrors.CodeSourceLicenseNotEligible), "class %d", class)
		}
	})

	s.Run("unknown source", func() {
		_, err := s.issue(999)
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})

	s.Run("explicit dates out of order", func() {
		l := s.newLicense("I304", appmodels.ClassOrdinary)
		_, err := s.service.Issue(s.ctx, service.IssueRequest{
			LocalLicenseID: l.ID,
			IssueDate:      s.now,
			ExpirationDate: s.now,
		})
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
	})
}

// TestDetainAfterIssueKeepsInternational checks that an international license
// is judged on its own state only.
func (s *ServiceSuite) TestDetainAfterIssueKeepsInternational() {
	l := s.newLicense("I400", appmodels.ClassOrdinary)
	intlID, err := s.issue(l.ID)
	s.Require().NoError(err)

	_, err = s.licenses.Detain(s.ctx, l.ID, money.FromUnits(20), 4)
	s.Require().NoError(err)

	active, err := s.service.IsActive(s.ctx, intlID)
	s.Require().NoError(err)
	s.True(active)

	_, err = s.issue(l.ID)
	s.True(dErrors.HasCode(err, dErrors.CodeSourceLicenseNotEligible), "eligibility is re-checked at issue time")
}

// TestIssueRacesDetain runs issue and detain together. Whichever commits
// second observes the first: an issued international license always comes
// from a source that was not detained when it was issued.
func (s *ServiceSuite) TestIssueRacesDetain() {
	for i := range 20 {
		l := s.newLicense("I5"+string(rune('A'+i)), appmodels.ClassOrdinary)

		var wg sync.WaitGroup
		var issueErr, detainErr error
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, issueErr = s.issue(l.ID)
		}()
		go func() {
			defer wg.Done()
			_, detainErr = s.licenses.Detain(s.ctx, l.ID, money.FromUnits(20), 4)
		}()
		wg.Wait()

		s.Require().NoError(detainErr)
		if issueErr != nil {
			s.True(dErrors.HasCode(issueErr, dErrors.CodeSourceLicenseNotEligible))
		}
	}
}

func (s *ServiceSuite) TestOptions() {
	ctrl := gomock.NewController(s.T())
	schedule := mocks.NewMockSchedule(ctrl)
	schedule.EXPECT().LookupFee(gomock.Any(), appmodels.TypeNewInternational).Return(money.FromUnits(60), nil)
	svc := service.New(s.store, schedule, service.WithValidity(30*24*time.Hour), service.WithEligibleClass(1))

	l := s.newLicense("I600", 1)
	intlID, err := svc.Issue(s.ctx, service.IssueRequest{LocalLicenseID: l.ID})
	s.Require().NoError(err)

	intl, err := svc.Get(s.ctx, intlID)
	s.Require().NoError(err)
	s.Equal(s.now.Add(30*24*time.Hour), intl.ExpirationDate)

	app, err := s.store.FindApplicationByID(s.ctx, intl.ApplicationID)
	s.Require().NoError(err)
	s.Equal(money.FromUnits(60), app.PaidFees)
}
