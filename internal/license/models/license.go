package models

import (
	"time"

	id "licensing/pkg/domain"
	"licensing/pkg/money"
)

// IssueReason records why a local license row was created.
type IssueReason string

const (
	IssueReasonFirstTime          IssueReason = "first_time"
	IssueReasonRenew              IssueReason = "renew"
	IssueReasonReplacementDamaged IssueReason = "replacement_damaged"
	IssueReasonReplacementLost    IssueReason = "replacement_lost"
)

func (r IssueReason) IsValid() bool {
	switch r {
	case IssueReasonFirstTime, IssueReasonRenew, IssueReasonReplacementDamaged, IssueReasonReplacementLost:
		return true
	}
	return false
}

// License is an issued local driving license. Rows are never deleted;
// renewal and replacement deactivate the old row and insert a new one.
//
// Invariants:
//   - IsDetained implies !IsActive
//   - At most one live (active or detained) license per driver and class
//   - ExpirationDate is after IssueDate
type License struct {
	ID             id.LicenseID      `json:"id"`
	ApplicationID  id.ApplicationID  `json:"application_id"`
	DriverID       id.DriverID       `json:"driver_id"`
	LicenseClassID id.LicenseClassID `json:"license_class_id"`
	IssueDate      time.Time         `json:"issue_date"`
	ExpirationDate time.Time         `json:"expiration_date"`
	Notes          string            `json:"notes,omitempty"`
	PaidFees       money.Amount      `json:"paid_fees"`
	IsActive       bool              `json:"is_active"`
	IsDetained     bool              `json:"is_detained"`
	IssueReason    IssueReason       `json:"issue_reason"`
	CreatedBy      id.UserID         `json:"created_by"`
}

func (l *License) Kind() Kind { return KindLocal }

// IsExpired reports whether the license is past its expiration at now.
func (l *License) IsExpired(now time.Time) bool {
	return !now.Before(l.ExpirationDate)
}

// IsLive reports whether the license still occupies the driver's slot for
// its class. A detained license is live: it returns to active on release.
func (l *License) IsLive() bool {
	return l.IsActive || l.IsDetained
}

func (l *License) Status(now time.Time) Status {
	switch {
	case l.IsDetained:
		return StatusDetained
	case !l.IsActive:
		return StatusInactive
	case l.IsExpired(now):
		return StatusExpired
	default:
		return StatusActive
	}
}

// ApplyDetention moves an active license into the detained state.
func (l *License) ApplyDetention() {
	l.IsActive = false
	l.IsDetained = true
}

// ApplyRelease returns a detained license to active.
func (l *License) ApplyRelease() {
	l.IsActive = true
	l.IsDetained = false
}

// Retire deactivates a license superseded by a renewal or replacement.
func (l *License) Retire() {
	l.IsActive = false
}
