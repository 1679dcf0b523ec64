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

	intlmodels "licensing/internal/international/models"
	"licensing/internal/license/handler/mocks"
	"licensing/internal/license/models"
	"licensing/internal/license/service"
	id "licensing/pkg/domain"
	dErrors "licensing/pkg/domain-errors"
	"licensing/pkg/money"
	"licensing/pkg/testutil"
)

//go:generate mockgen -source=handler.go -destination=mocks/mocks.go -package=mocks Service
type HandlerSuite struct {
	suite.Suite
	service *mocks.MockService
	router  chi.Router
	now     time.Time
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(HandlerSuite))
}

func (s *HandlerSuite) SetupTest() {
	s.service = mocks.NewMockService(gomock.NewController(s.T()))
	s.router = chi.NewRouter()
	s.now = time.Date(2025, 1, 15, 12, 0, 0, 0, time.UTC)
	New(s.service, slog.New(slog.DiscardHandler)).Register(s.router)
}

func (s *HandlerSuite) do(req *http.Request) *httptest.ResponseRecorder {
	return testutil.DoRequest(s.router, testutil.At(testutil.AsOperator(req, 3), s.now))
}

func (s *HandlerSuite) TestDetain() {
	s.Run("charges the fine in cents", func() {
		s.service.EXPECT().Detain(gomock.Any(), id.LicenseID(8), money.Amount(2050), id.UserID(3)).Return(id.DetainID(1), nil)
		rr := s.do(testutil.NewRequestWithBody(s.T(), http.MethodPost, "/licenses/8/detain", `{"fine_fee":20.50}`))
		testutil.AssertStatus(s.T(), rr, http.StatusCreated)
		s.JSONEq(`{"detain_id":1}`, rr.Body.String())
	})

	s.Run("fine is required", func() {
		rr := s.do(testutil.NewRequestWithBody(s.T(), http.MethodPost, "/licenses/8/detain", `{}`))
		testutil.AssertStatusAndError(s.T(), rr, http.StatusBadRequest, "validation_error")
	})

	s.Run("zero fine is allowed", func() {
		s.service.EXPECT().Detain(gomock.Any(), id.LicenseID(9), money.Amount(0), id.UserID(3)).Return(id.DetainID(2), nil)
		rr := s.do(testutil.NewRequestWithBody(s.T(), http.MethodPost, "/licenses/9/detain", `{"fine_fee":0}`))
		testutil.AssertStatus(s.T(), rr, http.StatusCreated)
	})

	s.Run("already detained is a conflict", func() {
		s.service.EXPECT().Detain(gomock.Any(), id.LicenseID(8), gomock.Any(), gomock.Any()).
			Return(id.DetainID(0), dErrors.New(dErrors.CodeAlreadyDetained, "license is already detained"))
		rr := s.do(testutil.NewRequestWithBody(s.T(), http.MethodPost, "/licenses/8/detain", `{"fine_fee":5}`))
		testutil.AssertStatusAndError(s.T(), rr, http.StatusConflict, "already_detained")
	})
}

func (s *HandlerSuite) TestRelease() {
	s.Run("returns the charged totals", func() {
		s.service.EXPECT().Release(gomock.Any(), id.LicenseID(8), id.UserID(3)).Return(&models.ReleaseResult{
			ApplicationID: 30, DetainID: 1, LicenseID: 8,
			ReleaseFee: money.FromUnits(15), FineFee: money.FromUnits(20), TotalFee: money.FromUnits(35),
			ReleasedAt: s.now,
		}, nil)
		rr := s.do(testutil.NewRequest(s.T(), http.MethodPost, "/licenses/8/release"))
		testutil.AssertStatusOK(s.T(), rr)
		testutil.AssertJSONContains(s.T(), rr, "total_fee", float64(35))
	})

	s.Run("not detained", func() {
		s.service.EXPECT().Release(gomock.Any(), id.LicenseID(8), id.UserID(3)).
			Return(nil, dErrors.New(dErrors.CodeNotDetained, "license is not detained"))
		rr := s.do(testutil.NewRequest(s.T(), http.MethodPost, "/licenses/8/release"))
		testutil.AssertStatusAndError(s.T(), rr, http.StatusUnprocessableEntity, "not_detained")
	})
}

func (s *HandlerSuite) TestGetLicenseReportsStatus() {
	s.service.EXPECT().GetLicense(gomock.Any(), id.LicenseID(8)).Return(&models.License{
		ID: 8, IsActive: true,
		IssueDate:      s.now.AddDate(-10, 0, 0),
		ExpirationDate: s.now.AddDate(0, 0, -1),
	}, nil)
	rr := s.do(testutil.NewRequest(s.T(), http.MethodGet, "/licenses/8"))
	testutil.AssertStatusOK(s.T(), rr)
	testutil.AssertJSONContains(s.T(), rr, "status", "expired")
}

func (s *HandlerSuite) TestGetDetain() {
	s.service.EXPECT().GetOpenDetain(gomock.Any(), id.LicenseID(8)).Return(nil, false, nil)
	rr := s.do(testutil.NewRequest(s.T(), http.MethodGet, "/licenses/8/detain"))
	s.JSONEq(`{"detained":false}`, rr.Body.String())
}

func (s *HandlerSuite) TestReplace() {
	s.Run("maps the reason", func() {
		s.service.EXPECT().Replace(gomock.Any(), id.LicenseID(8), models.IssueReasonReplacementLost, id.UserID(3)).
			Return(&models.License{ID: 9, IsActive: true, ExpirationDate: s.now.AddDate(1, 0, 0), IssueReason: models.IssueReasonReplacementLost}, nil)
		rr := s.do(testutil.NewRequestWithBody(s.T(), http.MethodPost, "/licenses/8/replace", `{"reason":"Lost"}`))
		testutil.AssertStatus(s.T(), rr, http.StatusCreated)
		testutil.AssertJSONContains(s.T(), rr, "issue_reason", "replacement_lost")
	})

	s.Run("rejects other reasons", func() {
		rr := s.do(testutil.NewRequestWithBody(s.T(), http.MethodPost, "/licenses/8/replace", `{"reason":"stolen"}`))
		testutil.AssertStatusAndError(s.T(), rr, http.StatusBadRequest, "validation_error")
	})
}

func (s *HandlerSuite) TestRenew() {
	s.service.EXPECT().Renew(gomock.Any(), id.LicenseID(8), "", id.UserID(3)).
		Return(nil, dErrors.New(dErrors.CodeInvalidState, "license has not expired"))
	rr := s.do(testutil.NewRequest(s.T(), http.MethodPost, "/licenses/8/renew"))
	testutil.AssertStatusAndError(s.T(), rr, http.StatusUnprocessableEntity, "invalid_state")
}

func (s *HandlerSuite) TestHistory() {
	s.service.EXPECT().DriverLicenseHistory(gomock.Any(), id.DriverID(4)).Return(&service.History{
		DriverID: 4,
		Local: []*models.License{
			{ID: 8, IsDetained: true, ExpirationDate: s.now.AddDate(5, 0, 0)},
		},
		International: []*intlmodels.License{
			{ID: 2, IsActive: true, ExpirationDate: s.now.AddDate(0, 6, 0)},
		},
	}, nil)

	rr := s.do(testutil.NewRequest(s.T(), http.MethodGet, "/drivers/4/licenses"))
	testutil.AssertStatusOK(s.T(), rr)
	resp := testutil.UnmarshalResponse[HistoryResponse](s.T(), rr)
	s.Require().Len(resp.Licenses, 2)
	s.Equal(models.KindLocal, resp.Licenses[0].Kind)
	s.Equal(models.StatusDetained, resp.Licenses[0].Status)
	s.Equal(models.KindInternational, resp.Licenses[1].Kind)
	s.Equal(models.StatusActive, resp.Licenses[1].Status)
}

func (s *HandlerSuite) TestBadLicenseID() {
	rr := s.do(testutil.NewRequest(s.T(), http.MethodGet, "/licenses/-1"))
	testutil.AssertStatusAndError(s.T(), rr, http.StatusBadRequest, "invalid_input")
}
