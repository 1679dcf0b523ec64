package handler

import (
	"strings"

	id "licensing/pkg/domain"
	dErrors "licensing/pkg/domain-errors"
)

// FileApplicationRequest is the body of POST /applications.
type FileApplicationRequest struct {
	PersonID       int64 `json:"person_id"`
	LicenseClassID int64 `json:"license_class_id"`
}

func (r *FileApplicationRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	if id.PersonID(r.PersonID).IsNil() {
		return dErrors.New(dErrors.CodeValidation, "person_id is required")
	}
	if id.LicenseClassID(r.LicenseClassID).IsNil() {
		return dErrors.New(dErrors.CodeValidation, "license_class_id is required")
	}
	return nil
}

// IssueLicenseRequest is the optional body of POST /applications/{applicationID}/issue.
type IssueLicenseRequest struct {
	Notes string `json:"notes"`
}

func (r *IssueLicenseRequest) Validate() error {
	r.Notes = strings.TrimSpace(r.Notes)
	if len(r.Notes) > 500 {
		return dErrors.New(dErrors.CodeValidation, "notes must be at most 500 characters")
	}
	return nil
}
