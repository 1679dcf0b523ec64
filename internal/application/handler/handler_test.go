package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"licensing/internal/application/handler/mocks"
	"licensing/internal/application/models"
	id "licensing/pkg/domain"
	dErrors "licensing/pkg/domain-errors"
	"licensing/pkg/testutil"
)

//go:generate mockgen -source=handler.go -destination=mocks/mocks.go -package=mocks Service
type HandlerSuite struct {
	suite.Suite
	service *mocks.MockService
	router  chi.Router
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(HandlerSuite))
}

func (s *HandlerSuite) SetupTest() {
	ctrl := gomock.NewController(s.T())
	s.service = mocks.NewMockService(ctrl)
	s.router = chi.NewRouter()
	New(s.service, slog.New(slog.DiscardHandler)).Register(s.router)
}

func (s *HandlerSuite) do(req *http.Request) *httptest.ResponseRecorder {
	return testutil.DoRequest(s.router, req)
}

func (s *HandlerSuite) TestFileApplication() {
	s.Run("files with the operator as creator", func() {
		s.service.EXPECT().
			FileApplication(gomock.Any(), id.PersonID(4), id.LicenseClassID(3), id.UserID(9)).
			Return(&models.LocalApplication{
				Application: models.Application{ID: 21, Status: models.StatusNew},
				DriverID:    2, LicenseClassID: 3,
			}, nil)

		req := testutil.NewJSONRequest(s.T(), http.MethodPost, "/applications", map[string]int{"person_id": 4, "license_class_id": 3})
		rr := s.do(testutil.AsOperator(req, 9))
		testutil.AssertStatus(s.T(), rr, http.StatusCreated)
		testutil.AssertJSONContains(s.T(), rr, "id", float64(21))
	})

	s.Run("requires an operator", func() {
		req := testutil.NewJSONRequest(s.T(), http.MethodPost, "/applications", map[string]int{"person_id": 4, "license_class_id": 3})
		rr := s.do(req)
		testutil.AssertStatusAndError(s.T(), rr, http.StatusUnauthorized, "unauthorized")
	})

	s.Run("rejects a missing class", func() {
		req := testutil.NewJSONRequest(s.T(), http.MethodPost, "/applications", map[string]int{"person_id": 4})
		rr := s.do(testutil.AsOperator(req, 9))
		testutil.AssertStatusAndError(s.T(), rr, http.StatusBadRequest, "validation_error")
	})

	s.Run("maps an underage applicant to 400", func() {
		s.service.EXPECT().FileApplication(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, dErrors.New(dErrors.CodeValidation, "applicant is below the minimum age for the class"))
		req := testutil.NewJSONRequest(s.T(), http.MethodPost, "/applications", map[string]int{"person_id": 4, "license_class_id": 2})
		rr := s.do(testutil.AsOperator(req, 9))
		testutil.AssertStatusAndError(s.T(), rr, http.StatusBadRequest, "validation_error")
	})
}

func (s *HandlerSuite) TestIssueFirstTimeLicense() {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"issued", nil, http.StatusCreated, ""},
		{"unknown application", dErrors.New(dErrors.CodeNotFound, "application not found"), http.StatusNotFound, "not_found"},
		{"tests outstanding", dErrors.New(dErrors.CodePrerequisitesNotMet, "required tests have not all been passed"), http.StatusUnprocessableEntity, "prerequisites_not_met"},
		{"already licensed", dErrors.New(dErrors.CodeDuplicateActiveLicense, "driver already holds an active license of this class"), http.StatusConflict, "duplicate_active_license"},
		{"store down", dErrors.Wrap(errors.New("connection refused"), dErrors.CodePersistenceFailure, "failed to load application"), http.StatusServiceUnavailable, "persistence_failure"},
	}
	for _, tt := range tests {
		s.Run(tt.name, func() {
			var licenseID id.LicenseID
			if tt.err == nil {
				licenseID = 77
			}
			s.service.EXPECT().IssueFirstTimeLicense(gomock.Any(), id.ApplicationID(21), "first", id.UserID(9)).Return(licenseID, tt.err)

			req := testutil.NewJSONRequest(s.T(), http.MethodPost, "/applications/21/issue", map[string]string{"notes": " first "})
			rr := s.do(testutil.AsOperator(req, 9))
			switch tt.code {
			case "":
				testutil.AssertStatus(s.T(), rr, tt.status)
				testutil.AssertJSONContains(s.T(), rr, "license_id", float64(77))
			case "persistence_failure":
				testutil.AssertErrorHidden(s.T(), rr, tt.status, tt.code)
			default:
				body := testutil.AssertStatusAndError(s.T(), rr, tt.status, tt.code)
				s.Equal(tt.err.Error(), body.Description)
			}
		})
	}
}

func (s *HandlerSuite) TestIssueWithoutBody() {
	s.service.EXPECT().IssueFirstTimeLicense(gomock.Any(), id.ApplicationID(5), "", id.UserID(9)).Return(id.LicenseID(1), nil)
	rr := s.do(testutil.AsOperator(testutil.NewRequest(s.T(), http.MethodPost, "/applications/5/issue"), 9))
	testutil.AssertStatus(s.T(), rr, http.StatusCreated)
}

func (s *HandlerSuite) TestCancelApplication() {
	s.service.EXPECT().CancelApplication(gomock.Any(), id.ApplicationID(3)).Return(nil)
	rr := s.do(testutil.NewRequest(s.T(), http.MethodPost, "/applications/3/cancel"))
	testutil.AssertStatus(s.T(), rr, http.StatusNoContent)

	s.service.EXPECT().CancelApplication(gomock.Any(), id.ApplicationID(4)).
		Return(dErrors.New(dErrors.CodeInvalidState, "application cannot be cancelled"))
	rr = s.do(testutil.NewRequest(s.T(), http.MethodPost, "/applications/4/cancel"))
	testutil.AssertStatusAndError(s.T(), rr, http.StatusUnprocessableEntity, "invalid_state")
}

func (s *HandlerSuite) TestFindActiveLicense() {
	s.service.EXPECT().FindActiveLicenseID(gomock.Any(), id.DriverID(2), id.LicenseClassID(3)).Return(id.LicenseID(8), true, nil)
	rr := s.do(testutil.NewRequest(s.T(), http.MethodGet, "/drivers/2/active-license?class_id=3"))
	testutil.AssertStatusOK(s.T(), rr)
	s.JSONEq(`{"found":true,"license_id":8}`, rr.Body.String())

	s.service.EXPECT().FindActiveLicenseID(gomock.Any(), id.DriverID(2), id.LicenseClassID(4)).Return(id.LicenseID(0), false, nil)
	rr = s.do(testutil.NewRequest(s.T(), http.MethodGet, "/drivers/2/active-license?class_id=4"))
	s.JSONEq(`{"found":false}`, rr.Body.String())

	rr = s.do(testutil.NewRequest(s.T(), http.MethodGet, "/drivers/2/active-license"))
	testutil.AssertStatusAndError(s.T(), rr, http.StatusBadRequest, "invalid_input")
}

func (s *HandlerSuite) TestReferenceLists() {
	s.service.EXPECT().ListLicenseClasses(gomock.Any()).Return([]*models.LicenseClass{{ID: 3, Name: "Ordinary"}}, nil)
	rr := s.do(testutil.NewRequest(s.T(), http.MethodGet, "/license-classes"))
	testutil.AssertStatusOK(s.T(), rr)
	testutil.AssertJSONHasKey(s.T(), rr, "license_classes")

	s.service.EXPECT().ListApplicationTypes(gomock.Any()).Return(nil, nil)
	rr = s.do(testutil.NewRequest(s.T(), http.MethodGet, "/application-types"))
	s.JSONEq(`{"application_types":[]}`, rr.Body.String())
}
