package testutil

import (
	"net/http"
	"time"

	id "licensing/pkg/domain"
	"licensing/pkg/requestcontext"
)

// AsOperator marks the request as authenticated by the given operator,
// which is what the auth middleware does for a valid token.
func AsOperator(req *http.Request, userID id.UserID) *http.Request {
	return req.WithContext(requestcontext.WithUserID(req.Context(), userID))
}

// At pins the request clock so date rules can be exercised from handlers.
func At(req *http.Request, now time.Time) *http.Request {
	return req.WithContext(requestcontext.WithTime(req.Context(), now))
}
