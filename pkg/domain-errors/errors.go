// Package domainerrors defines the coded error type every service returns.
//
// Stores return sentinel facts (see pkg/platform/sentinel); services translate
// those facts into a Code so callers can render an accurate message without
// string matching.
package domainerrors

import (
	"errors"
	"fmt"
)

// Code identifies the kind of failure.
type Code string

const (
	// Licensing rule outcomes.
	CodeNotFound                 Code = "not_found"
	CodePrerequisitesNotMet      Code = "prerequisites_not_met"
	CodeDuplicateActiveLicense   Code = "duplicate_active_license"
	CodeAlreadyDetained          Code = "already_detained"
	CodeNotDetained              Code = "not_detained"
	CodeLicenseNotActive         Code = "license_not_active"
	CodeSourceLicenseNotEligible Code = "source_license_not_eligible"
	CodeAlreadyRecorded          Code = "already_recorded"
	CodeTestAlreadyPassed        Code = "test_already_passed"
	CodeAppointmentPending       Code = "appointment_pending"
	CodeInvalidState             Code = "invalid_state"

	// PersistenceFailure is the only code that wraps an underlying store error.
	CodePersistenceFailure Code = "persistence_failure"

	// Request-shape and platform codes.
	CodeBadRequest         Code = "bad_request"
	CodeValidation         Code = "validation_error"
	CodeInvalidInput       Code = "invalid_input"
	CodeConflict           Code = "conflict"
	CodeUnauthorized       Code = "unauthorized"
	CodeForbidden          Code = "forbidden"
	CodeInvariantViolation Code = "invariant_violation"
	CodeTimeout            Code = "timeout"
	CodeInternal           Code = "internal_error"
)

// Error carries a Code, a caller-safe message and an optional cause.
type Error struct {
	Code    Code
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New builds an Error with no underlying cause.
func New(code Code, msg string) error {
	return &Error{Code: code, Message: msg}
}

// Wrap attaches a code and message to an underlying error.
func Wrap(err error, code Code, msg string) error {
	return &Error{Code: code, Message: msg, Err: err}
}

// CodeOf returns the code of the outermost *Error in the chain, or "" if none.
func CodeOf(err error) Code {
	var de *Error
	if errors.As(err, &de) {
		return de.Code
	}
	return ""
}

// HasCode reports whether err carries the given code.
func HasCode(err error, code Code) bool {
	return err != nil && CodeOf(err) == code
}

// Is is an alias of HasCode kept for call sites that read better with it.
func Is(err error, code Code) bool {
	return HasCode(err, code)
}

// Persistence passes coded errors through untouched and wraps anything else
// as CodePersistenceFailure.
func Persistence(err error, msg string) error {
	if err == nil {
		return nil
	}
	if CodeOf(err) != "" {
		return err
	}
	return Wrap(err, CodePersistenceFailure, msg)
}
