package handler_test

import (
	"log/slog"
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"licensing/internal/identity/handler"
	"licensing/internal/identity/models"
	"licensing/internal/identity/service"
	"licensing/internal/store/memory"
	"licensing/pkg/testutil"
)

func newRouter(t *testing.T) (http.Handler, *service.Service) {
	t.Helper()
	svc := service.New(memory.New())
	r := chi.NewRouter()
	handler.New(svc, slog.New(slog.DiscardHandler)).Register(r)
	return r, svc
}

func personBody(nationalID string) map[string]string {
	return map[string]string{
		"national_id":   nationalID,
		"first_name":    "Ada",
		"last_name":     "Lovelace",
		"date_of_birth": "1985-12-10",
		"gender":        "female",
		"address":       "12 St James's Square",
	}
}

func TestRegisterAndFetchPerson(t *testing.T) {
	router, _ := newRouter(t)

	rr := testutil.DoRequest(router, testutil.NewJSONRequest(t, http.MethodPost, "/people", personBody("n1")))
	testutil.AssertStatus(t, rr, http.StatusCreated)
	created := testutil.UnmarshalResponse[models.Person](t, rr)
	assert.Equal(t, "N1", created.NationalID)

	rr = testutil.DoRequest(router, testutil.NewRequest(t, http.MethodGet, "/people/"+created.ID.String()))
	testutil.AssertStatusOK(t, rr)
	assert.Equal(t, "Ada Lovelace", testutil.UnmarshalResponse[models.Person](t, rr).FullName())

	rr = testutil.DoRequest(router, testutil.NewRequest(t, http.MethodGet, "/people/by-national-id/N1"))
	testutil.AssertStatusOK(t, rr)

	rr = testutil.DoRequest(router, testutil.NewRequest(t, http.MethodGet, "/people"))
	testutil.AssertStatusOK(t, rr)
	list := testutil.UnmarshalResponse[struct {
		People []models.Person `json:"people"`
	}](t, rr)
	assert.Len(t, list.People, 1)
}

func TestRegisterPersonErrors(t *testing.T) {
	router, _ := newRouter(t)
	rr := testutil.DoRequest(router, testutil.NewJSONRequest(t, http.MethodPost, "/people", personBody("dup")))
	testutil.AssertStatus(t, rr, http.StatusCreated)

	tests := []struct {
		name   string
		body   any
		status int
		code   string
	}{
		{"duplicate national id", personBody("dup"), http.StatusConflict, "conflict"},
		{"bad date", func() map[string]string { b := personBody("n2"); b["date_of_birth"] = "10/12/1985"; return b }(), http.StatusBadRequest, "validation_error"},
		{"bad gender", func() map[string]string { b := personBody("n3"); b["gender"] = "x"; return b }(), http.StatusBadRequest, "validation_error"},
		{"unknown field", map[string]string{"nickname": "ada"}, http.StatusBadRequest, "bad_request"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := testutil.DoRequest(router, testutil.NewJSONRequest(t, http.MethodPost, "/people", tt.body))
			testutil.AssertStatusAndError(t, rr, tt.status, tt.code)
		})
	}
}

func TestUpdatePerson(t *testing.T) {
	router, _ := newRouter(t)
	rr := testutil.DoRequest(router, testutil.NewJSONRequest(t, http.MethodPost, "/people", personBody("u1")))
	require.Equal(t, http.StatusCreated, rr.Code)
	created := testutil.UnmarshalResponse[models.Person](t, rr)

	body := personBody("u1")
	body["address"] = "Ockham Park"
	rr = testutil.DoRequest(router, testutil.NewJSONRequest(t, http.MethodPut, "/people/"+created.ID.String(), body))
	testutil.AssertStatusOK(t, rr)
	assert.Equal(t, "Ockham Park", testutil.UnmarshalResponse[models.Person](t, rr).Address)

	rr = testutil.DoRequest(router, testutil.NewJSONRequest(t, http.MethodPut, "/people/999", body))
	testutil.AssertStatusAndError(t, rr, http.StatusNotFound, "not_found")
}

func TestPathIDs(t *testing.T) {
	router, _ := newRouter(t)

	rr := testutil.DoRequest(router, testutil.NewRequest(t, http.MethodGet, "/people/abc"))
	testutil.AssertStatusAndError(t, rr, http.StatusBadRequest, "invalid_input")

	rr = testutil.DoRequest(router, testutil.NewRequest(t, http.MethodGet, "/drivers/5"))
	testutil.AssertStatusAndError(t, rr, http.StatusNotFound, "not_found")
}

func TestDriverByPerson(t *testing.T) {
	router, svc := newRouter(t)
	rr := testutil.DoRequest(router, testutil.NewJSONRequest(t, http.MethodPost, "/people", personBody("d1")))
	require.Equal(t, http.StatusCreated, rr.Code)
	person := testutil.UnmarshalResponse[models.Person](t, rr)

	rr = testutil.DoRequest(router, testutil.NewRequest(t, http.MethodGet, "/people/"+person.ID.String()+"/driver"))
	testutil.AssertStatus(t, rr, http.StatusNotFound)

	driver, err := svc.EnsureDriver(t.Context(), person.ID, 1)
	require.NoError(t, err)

	rr = testutil.DoRequest(router, testutil.NewRequest(t, http.MethodGet, "/people/"+person.ID.String()+"/driver"))
	testutil.AssertStatusOK(t, rr)
	assert.Equal(t, driver.ID, testutil.UnmarshalResponse[models.Driver](t, rr).ID)
}
