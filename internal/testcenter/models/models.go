package models

import (
	"time"

	id "licensing/pkg/domain"
	"licensing/pkg/money"
)

const (
	TestTypeVision  id.TestTypeID = 1
	TestTypeWritten id.TestTypeID = 2
	TestTypeStreet  id.TestTypeID = 3
)

// TestTypeName is the short label of a test type, used in metrics and logs.
func TestTypeName(testType id.TestTypeID) string {
	switch testType {
	case TestTypeVision:
		return "vision"
	case TestTypeWritten:
		return "written"
	case TestTypeStreet:
		return "street"
	}
	return "unknown"
}

// TestType is static reference data.
type TestType struct {
	ID          id.TestTypeID `json:"id"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Fee         money.Amount  `json:"fee"`
}

// Appointment is one scheduled sitting (a trial) of a test type for a local
// application. It locks once a result is recorded and never unlocks.
type Appointment struct {
	ID                  id.AppointmentID  `json:"id"`
	ApplicationID       id.ApplicationID  `json:"application_id"`
	TestTypeID          id.TestTypeID     `json:"test_type_id"`
	Date                time.Time         `json:"date"`
	PaidFee             money.Amount      `json:"paid_fee"`
	CreatedBy           id.UserID         `json:"created_by"`
	Locked              bool              `json:"locked"`
	RetakeApplicationID *id.ApplicationID `json:"retake_application_id,omitempty"`
}

// Test is the immutable outcome of an appointment.
type Test struct {
	ID            id.TestID        `json:"id"`
	AppointmentID id.AppointmentID `json:"appointment_id"`
	Passed        bool             `json:"passed"`
	Notes         string           `json:"notes,omitempty"`
	CreatedBy     id.UserID        `json:"created_by"`
	CreatedAt     time.Time        `json:"created_at"`
}
