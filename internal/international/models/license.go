package models

import (
	"time"

	licensemodels "licensing/internal/license/models"
	id "licensing/pkg/domain"
)

// License is an international driving license derived from a local license.
// Its status depends only on its own flag and expiration: detaining the
// source local license later does not invalidate it.
type License struct {
	licensemodels.MarkVariant

	ID                        id.InternationalLicenseID `json:"id"`
	ApplicationID             id.ApplicationID          `json:"application_id"`
	DriverID                  id.DriverID               `json:"driver_id"`
	IssuedUsingLocalLicenseID id.LicenseID              `json:"issued_using_local_license_id"`
	IssueDate                 time.Time                 `json:"issue_date"`
	ExpirationDate            time.Time                 `json:"expiration_date"`
	IsActive                  bool                      `json:"is_active"`
	CreatedBy                 id.UserID                 `json:"created_by"`
}

func (l *License) Kind() licensemodels.Kind { return licensemodels.KindInternational }

func (l *License) IsExpired(now time.Time) bool {
	return !now.Before(l.ExpirationDate)
}

func (l *License) Status(now time.Time) licensemodels.Status {
	switch {
	case !l.IsActive:
		return licensemodels.StatusInactive
	case l.IsExpired(now):
		return licensemodels.StatusExpired
	default:
		return licensemodels.StatusActive
	}
}
