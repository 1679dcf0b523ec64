package handler

import (
	"time"

	id "licensing/pkg/domain"
	dErrors "licensing/pkg/domain-errors"
	"licensing/pkg/platform/httputil"
)

// IssueRequest is the body of POST /international-licenses. Omitted dates
// default to today and the configured validity.
type IssueRequest struct {
	LocalLicenseID int64  `json:"local_license_id"`
	IssueDate      string `json:"issue_date"`
	ExpirationDate string `json:"expiration_date"`

	issueDate      time.Time
	expirationDate time.Time
}

func (r *IssueRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	if id.LicenseID(r.LocalLicenseID).IsNil() {
		return dErrors.New(dErrors.CodeValidation, "local_license_id is required")
	}
	var err error
	if r.issueDate, err = httputil.ParseOptionalDate("issue_date", r.IssueDate); err != nil {
		return err
	}
	if r.expirationDate, err = httputil.ParseOptionalDate("expiration_date", r.ExpirationDate); err != nil {
		return err
	}
	return nil
}
