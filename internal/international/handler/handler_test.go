package handler

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"licensing/internal/international/handler/mocks"
	"licensing/internal/international/models"
	"licensing/internal/international/service"
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
	s.service = mocks.NewMockService(gomock.NewController(s.T()))
	s.router = chi.NewRouter()
	New(s.service, slog.New(slog.DiscardHandler)).Register(s.router)
}

func (s *HandlerSuite) do(req *http.Request) *httptest.ResponseRecorder {
	return testutil.DoRequest(s.router, testutil.AsOperator(req, 6))
}

func (s *HandlerSuite) TestIssue() {
	s.Run("defaults dates when omitted", func() {
		s.service.EXPECT().Issue(gomock.Any(), service.IssueRequest{LocalLicenseID: 8, CreatedBy: 6}).
			Return(id.InternationalLicenseID(3), nil)
		rr := s.do(testutil.NewRequestWithBody(s.T(), http.MethodPost, "/international-licenses", `{"local_license_id":8}`))
		testutil.AssertStatus(s.T(), rr, http.StatusCreated)
		s.JSONEq(`{"international_license_id":3}`, rr.Body.String())
	})

	s.Run("passes explicit dates", func() {
		s.service.EXPECT().Issue(gomock.Any(), service.IssueRequest{
			LocalLicenseID: 8,
			IssueDate:      time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
			ExpirationDate: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
			CreatedBy:      6,
		}).Return(id.InternationalLicenseID(4), nil)
		rr := s.do(testutil.NewRequestWithBody(s.T(), http.MethodPost, "/international-licenses",
			`{"local_license_id":8,"issue_date":"2025-03-01","expiration_date":"2026-03-01"}`))
		testutil.AssertStatus(s.T(), rr, http.StatusCreated)
	})

	s.Run("ineligible source", func() {
		s.service.EXPECT().Issue(gomock.Any(), gomock.Any()).
			Return(id.InternationalLicenseID(0), dErrors.New(dErrors.CodeSourceLicenseNotEligible, "source license is detained"))
		rr := s.do(testutil.NewRequestWithBody(s.T(), http.MethodPost, "/international-licenses", `{"local_license_id":8}`))
		testutil.AssertStatusAndError(s.T(), rr, http.StatusUnprocessableEntity, "source_license_not_eligible")
	})

	s.Run("source is required", func() {
		rr := s.do(testutil.NewRequestWithBody(s.T(), http.MethodPost, "/international-licenses", `{}`))
		testutil.AssertStatusAndError(s.T(), rr, http.StatusBadRequest, "validation_error")
	})
}

func (s *HandlerSuite) TestGet() {
	s.service.EXPECT().Get(gomock.Any(), id.InternationalLicenseID(3)).
		Return(&models.License{ID: 3, IsActive: false, ExpirationDate: time.Now().AddDate(1, 0, 0)}, nil)
	rr := s.do(testutil.NewRequest(s.T(), http.MethodGet, "/international-licenses/3"))
	testutil.AssertStatusOK(s.T(), rr)
	testutil.AssertJSONContains(s.T(), rr, "status", "inactive")
}

func (s *HandlerSuite) TestListByDriver() {
	s.service.EXPECT().ListByDriver(gomock.Any(), id.DriverID(2)).Return(nil, nil)
	rr := s.do(testutil.NewRequest(s.T(), http.MethodGet, "/drivers/2/international-licenses"))
	s.JSONEq(`{"international_licenses":[]}`, rr.Body.String())
}
