package handler

import (
	"strings"
	"time"

	id "licensing/pkg/domain"
	dErrors "licensing/pkg/domain-errors"
	"licensing/pkg/money"
	"licensing/pkg/platform/httputil"
)

// ScheduleRequest is the body of POST /applications/{applicationID}/appointments.
// A zero fee charges the test type's listed fee.
type ScheduleRequest struct {
	TestTypeID int64        `json:"test_type_id"`
	Date       string       `json:"date"`
	Fee        money.Amount `json:"fee"`

	date time.Time
}

func (r *ScheduleRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	if id.TestTypeID(r.TestTypeID).IsNil() {
		return dErrors.New(dErrors.CodeValidation, "test_type_id is required")
	}
	if r.Fee.IsNegative() {
		return dErrors.New(dErrors.CodeValidation, "fee must not be negative")
	}
	date, err := httputil.ParseDate("date", r.Date)
	if err != nil {
		return err
	}
	r.date = date
	return nil
}

// RescheduleRequest is the body of PUT /appointments/{appointmentID}.
type RescheduleRequest struct {
	Date string `json:"date"`

	date time.Time
}

func (r *RescheduleRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	date, err := httputil.ParseDate("date", r.Date)
	if err != nil {
		return err
	}
	r.date = date
	return nil
}

// ResultRequest is the body of POST /appointments/{appointmentID}/result.
// Passed is a pointer so an omitted outcome is rejected rather than read as a fail.
type ResultRequest struct {
	Passed *bool  `json:"passed"`
	Notes  string `json:"notes"`
}

func (r *ResultRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	if r.Passed == nil {
		return dErrors.New(dErrors.CodeValidation, "passed is required")
	}
	r.Notes = strings.TrimSpace(r.Notes)
	if len(r.Notes) > 500 {
		return dErrors.New(dErrors.CodeValidation, "notes must be at most 500 characters")
	}
	return nil
}
