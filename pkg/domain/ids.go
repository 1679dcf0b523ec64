// Package domain holds identifier types shared across bounded contexts.
//
// Every entity key is a distinct int64 type so that a LicenseID can never be
// passed where an ApplicationID is expected. Zero is never a valid identifier.
package domain

import (
	"strconv"
	"strings"

	dErrors "licensing/pkg/domain-errors"
)

type (
	PersonID               int64
	DriverID               int64
	UserID                 int64
	ApplicationID          int64
	ApplicationTypeID      int64
	LicenseClassID         int64
	TestTypeID             int64
	AppointmentID          int64
	TestID                 int64
	LicenseID              int64
	DetainID               int64
	InternationalLicenseID int64
)

func (id PersonID) IsNil() bool               { return id <= 0 }
func (id DriverID) IsNil() bool               { return id <= 0 }
func (id UserID) IsNil() bool                 { return id <= 0 }
func (id ApplicationID) IsNil() bool          { return id <= 0 }
func (id LicenseClassID) IsNil() bool         { return id <= 0 }
func (id TestTypeID) IsNil() bool             { return id <= 0 }
func (id AppointmentID) IsNil() bool          { return id <= 0 }
func (id LicenseID) IsNil() bool              { return id <= 0 }
func (id InternationalLicenseID) IsNil() bool { return id <= 0 }

func (id PersonID) String() string               { return strconv.FormatInt(int64(id), 10) }
func (id DriverID) String() string               { return strconv.FormatInt(int64(id), 10) }
func (id UserID) String() string                 { return strconv.FormatInt(int64(id), 10) }
func (id ApplicationID) String() string          { return strconv.FormatInt(int64(id), 10) }
func (id LicenseID) String() string              { return strconv.FormatInt(int64(id), 10) }
func (id InternationalLicenseID) String() string { return strconv.FormatInt(int64(id), 10) }

// parseID parses a positive decimal identifier received at a trust boundary.
func parseID(raw, kind string) (int64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, dErrors.New(dErrors.CodeInvalidInput, kind+" is required")
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, dErrors.New(dErrors.CodeInvalidInput, "invalid "+kind)
	}
	if v <= 0 {
		return 0, dErrors.New(dErrors.CodeInvalidInput, kind+" must be positive")
	}
	return v, nil
}

func ParsePersonID(s string) (PersonID, error) {
	v, err := parseID(s, "person id")
	return PersonID(v), err
}

func ParseDriverID(s string) (DriverID, error) {
	v, err := parseID(s, "driver id")
	return DriverID(v), err
}

func ParseUserID(s string) (UserID, error) {
	v, err := parseID(s, "user id")
	return UserID(v), err
}

func ParseApplicationID(s string) (ApplicationID, error) {
	v, err := parseID(s, "application id")
	return ApplicationID(v), err
}

func ParseLicenseClassID(s string) (LicenseClassID, error) {
	v, err := parseID(s, "license class id")
	return LicenseClassID(v), err
}

func ParseTestTypeID(s string) (TestTypeID, error) {
	v, err := parseID(s, "test type id")
	return TestTypeID(v), err
}

func ParseAppointmentID(s string) (AppointmentID, error) {
	v, err := parseID(s, "appointment id")
	return AppointmentID(v), err
}

func ParseLicenseID(s string) (LicenseID, error) {
	v, err := parseID(s, "license id")
	return LicenseID(v), err
}

func ParseInternationalLicenseID(s string) (InternationalLicenseID, error) {
	v, err := parseID(s, "international license id")
	return InternationalLicenseID(v), err
}
