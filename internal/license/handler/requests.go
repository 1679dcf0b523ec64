package handler

import (
	"strings"

	"licensing/internal/license/models"
	dErrors "licensing/pkg/domain-errors"
	"licensing/pkg/money"
)

// DetainRequest is the body of POST /licenses/{licenseID}/detain.
type DetainRequest struct {
	FineFee *money.Amount `json:"fine_fee"`
}

func (r *DetainRequest) Validate() error {
	if r == nil || r.FineFee == nil {
		return dErrors.New(dErrors.CodeValidation, "fine_fee is required")
	}
	if r.FineFee.IsNegative() {
		return dErrors.New(dErrors.CodeValidation, "fine_fee must not be negative")
	}
	return nil
}

// RenewRequest is the optional body of POST /licenses/{licenseID}/renew.
type RenewRequest struct {
	Notes string `json:"notes"`
}

func (r *RenewRequest) Validate() error {
	r.Notes = strings.TrimSpace(r.Notes)
	if len(r.Notes) > 500 {
		return dErrors.New(dErrors.CodeValidation, "notes must be at most 500 characters")
	}
	return nil
}

// ReplaceRequest is the body of POST /licenses/{licenseID}/replace.
// Reason is "lost" or "damaged".
type ReplaceRequest struct {
	Reason string `json:"reason"`

	reason models.IssueReason
}

func (r *ReplaceRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	switch strings.ToLower(strings.TrimSpace(r.Reason)) {
	case "lost":
		r.reason = models.IssueReasonReplacementLost
	case "damaged":
		r.reason = models.IssueReasonReplacementDamaged
	default:
		return dErrors.New(dErrors.CodeValidation, "reason must be lost or damaged")
	}
	return nil
}
