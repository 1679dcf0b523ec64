package models

import (
	"time"

	id "licensing/pkg/domain"
	"licensing/pkg/money"
)

// Application types. The IDs are stable reference data shared by every store.
const (
	TypeNewLocalLicense    id.ApplicationTypeID = 1
	TypeRenewLicense       id.ApplicationTypeID = 2
	TypeReplaceLostLicense id.ApplicationTypeID = 3
	TypeReplaceDamaged     id.ApplicationTypeID = 4
	TypeReleaseDetained    id.ApplicationTypeID = 5
	TypeNewInternational   id.ApplicationTypeID = 6
	TypeRetakeTest         id.ApplicationTypeID = 7
)

// License classes with a fixed role. ClassOrdinary is the only class an
// international license can be derived from by default; ClassLightVehicle
// needs only the vision and written tests.
const (
	ClassOrdinary     id.LicenseClassID = 3
	ClassLightVehicle id.LicenseClassID = 8
)

// ApplicationType is a row of the fee table.
type ApplicationType struct {
	ID    id.ApplicationTypeID `json:"id"`
	Title string               `json:"title"`
	Fee   money.Amount         `json:"fee"`
}

type Status string

const (
	StatusNew       Status = "new"
	StatusCancelled Status = "cancelled"
	StatusCompleted Status = "completed"
)

// CanTransitionTo encodes the application lifecycle: only a new application
// moves, and only to cancelled or completed.
func (s Status) CanTransitionTo(target Status) bool {
	return s == StatusNew && (target == StatusCancelled || target == StatusCompleted)
}

// Application is the base record every paid service request produces
// (first-time license, renewal, replacement, release, international, retake).
type Application struct {
	ID                id.ApplicationID     `json:"id"`
	ApplicantPersonID id.PersonID          `json:"applicant_person_id"`
	TypeID            id.ApplicationTypeID `json:"application_type_id"`
	Status            Status               `json:"status"`
	ApplicationDate   time.Time            `json:"application_date"`
	LastStatusDate    time.Time            `json:"last_status_date"`
	PaidFees          money.Amount         `json:"paid_fees"`
	CreatedBy         id.UserID            `json:"created_by"`
}

func (a *Application) IsOpen() bool {
	return a.Status == StatusNew
}

// NewCompleted builds a service application that is paid and closed on
// creation, used for release, renewal, replacement, retake and international requests.
func NewCompleted(personID id.PersonID, typeID id.ApplicationTypeID, fee money.Amount, createdBy id.UserID, now time.Time) *Application {
	return &Application{
		ApplicantPersonID: personID,
		TypeID:            typeID,
		Status:            StatusCompleted,
		ApplicationDate:   now,
		LastStatusDate:    now,
		PaidFees:          fee,
		CreatedBy:         createdBy,
	}
}

// LocalApplication is a request for a class of local driving license. It
// shares its ID with the base Application it extends.
//
// Invariants:
//   - At most one open local application per person and license class
//   - DriverID is set when the application is filed
type LocalApplication struct {
	Application
	DriverID       id.DriverID       `json:"driver_id"`
	LicenseClassID id.LicenseClassID `json:"license_class_id"`
}
