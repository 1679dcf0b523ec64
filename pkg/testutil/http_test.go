package testutil_test

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	dErrors "licensing/pkg/domain-errors"
	"licensing/pkg/platform/httputil"
	"licensing/pkg/testutil"
)

func failWith(err error) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		httputil.WriteError(w, err)
	})
}

func TestErrorEnvelope(t *testing.T) {
	t.Run("rule rejection carries its description", func(t *testing.T) {
		rr := testutil.DoRequest(failWith(dErrors.New(dErrors.CodeAlreadyDetained, "license is already detained")),
			testutil.NewRequest(t, http.MethodPost, "/licenses/1/detain"))

		body := testutil.AssertStatusAndError(t, rr, http.StatusConflict, "already_detained")
		assert.Equal(t, "license is already detained", body.Description)
		assert.Equal(t, body, testutil.DecodeError(t, rr), "body can be decoded twice")
	})

	t.Run("store failure hides its cause", func(t *testing.T) {
		err := dErrors.Persistence(errors.New("dial tcp 127.0.0.1:5432: connection refused"), "failed to load license")
		rr := testutil.DoRequest(failWith(err), testutil.NewRequest(t, http.MethodGet, "/licenses/1"))

		testutil.AssertErrorHidden(t, rr, http.StatusServiceUnavailable, "persistence_failure")
		assert.NotContains(t, rr.Body.String(), "connection refused")
	})

	t.Run("uncoded error is internal", func(t *testing.T) {
		rr := testutil.DoRequest(failWith(errors.New("boom")), testutil.NewRequest(t, http.MethodGet, "/"))
		testutil.AssertErrorHidden(t, rr, http.StatusInternalServerError, "internal_error")
	})
}

func TestJSONRequest(t *testing.T) {
	req := testutil.NewJSONRequest(t, http.MethodPost, "/people", map[string]string{"national_id": "N1"})
	assert.Equal(t, "application/json", req.Header.Get("Content-Type"))

	req = testutil.NewJSONRequest(t, http.MethodGet, "/people/1", nil)
	assert.Empty(t, req.Header.Get("Content-Type"))
}
