package models

import (
	"time"

	id "licensing/pkg/domain"
	"licensing/pkg/money"
)

// Detain is an administrative hold on a license. It is open until a release
// stamps ReleaseDate, ReleasedBy and ReleaseApplicationID.
//
// Invariants:
//   - At most one open detain per license
//   - ReleaseDate, when set, is not before DetainDate
type Detain struct {
	ID                   id.DetainID       `json:"id"`
	LicenseID            id.LicenseID      `json:"license_id"`
	DetainDate           time.Time         `json:"detain_date"`
	FineFee              money.Amount      `json:"fine_fee"`
	CreatedBy            id.UserID         `json:"created_by"`
	ReleaseDate          *time.Time        `json:"release_date,omitempty"`
	ReleasedBy           *id.UserID        `json:"released_by,omitempty"`
	ReleaseApplicationID *id.ApplicationID `json:"release_application_id,omitempty"`
}

func (d *Detain) IsOpen() bool {
	return d.ReleaseDate == nil
}

// Close stamps the release. The release date never precedes the detain date,
// even when the caller's clock lags the clock that recorded the detention.
func (d *Detain) Close(releasedAt time.Time, by id.UserID, applicationID id.ApplicationID) {
	if releasedAt.Before(d.DetainDate) {
		releasedAt = d.DetainDate
	}
	d.ReleaseDate = &releasedAt
	d.ReleasedBy = &by
	d.ReleaseApplicationID = &applicationID
}

// ReleaseResult is what a successful release reports to the caller.
type ReleaseResult struct {
	ApplicationID id.ApplicationID `json:"application_id"`
	DetainID      id.DetainID      `json:"detain_id"`
	LicenseID     id.LicenseID     `json:"license_id"`
	ReleaseFee    money.Amount     `json:"release_fee"`
	FineFee       money.Amount     `json:"fine_fee"`
	TotalFee      money.Amount     `json:"total_fee"`
	ReleasedAt    time.Time        `json:"released_at"`
}
