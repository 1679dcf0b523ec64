package models

import (
	"strings"
	"time"

	id "licensing/pkg/domain"
	dErrors "licensing/pkg/domain-errors"
)

type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

func (g Gender) IsValid() bool {
	return g == GenderMale || g == GenderFemale
}

// Person is a natural person known to the licensing authority.
//
// Invariants:
//   - NationalID is unique (case-insensitive) across all people
//   - FirstName, LastName and NationalID are non-empty
//   - People are never deleted while referenced by a driver or application
type Person struct {
	ID          id.PersonID `json:"id"`
	NationalID  string      `json:"national_id"`
	FirstName   string      `json:"first_name"`
	SecondName  string      `json:"second_name,omitempty"`
	ThirdName   string      `json:"third_name,omitempty"`
	LastName    string      `json:"last_name"`
	DateOfBirth time.Time   `json:"date_of_birth"`
	Gender      Gender      `json:"gender"`
	Address     string      `json:"address"`
	Phone       string      `json:"phone,omitempty"`
	Email       string      `json:"email,omitempty"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

// FullName joins the non-empty name parts.
func (p *Person) FullName() string {
	parts := make([]string, 0, 4)
	for _, part := range []string{p.FirstName, p.SecondName, p.ThirdName, p.LastName} {
		if part != "" {
			parts = append(parts, part)
		}
	}
	return strings.Join(parts, " ")
}

// AgeAt returns completed years of age at t.
func (p *Person) AgeAt(t time.Time) int {
	years := t.Year() - p.DateOfBirth.Year()
	if t.Month() < p.DateOfBirth.Month() ||
		(t.Month() == p.DateOfBirth.Month() && t.Day() < p.DateOfBirth.Day()) {
		years--
	}
	return years
}

// PersonInput carries the editable fields of a person.
type PersonInput struct {
	NationalID  string    `json:"national_id"`
	FirstName   string    `json:"first_name"`
	SecondName  string    `json:"second_name"`
	ThirdName   string    `json:"third_name"`
	LastName    string    `json:"last_name"`
	DateOfBirth time.Time `json:"date_of_birth"`
	Gender      Gender    `json:"gender"`
	Address     string    `json:"address"`
	Phone       string    `json:"phone"`
	Email       string    `json:"email"`
}

func (in *PersonInput) Normalize() {
	in.NationalID = strings.ToUpper(strings.TrimSpace(in.NationalID))
	in.FirstName = strings.TrimSpace(in.FirstName)
	in.SecondName = strings.TrimSpace(in.SecondName)
	in.ThirdName = strings.TrimSpace(in.ThirdName)
	in.LastName = strings.TrimSpace(in.LastName)
	in.Address = strings.TrimSpace(in.Address)
	in.Phone = strings.TrimSpace(in.Phone)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.Gender = Gender(strings.ToLower(string(in.Gender)))
}

func (in *PersonInput) Validate(now time.Time) error {
	if in.NationalID == "" {
		return dErrors.New(dErrors.CodeValidation, "national id is required")
	}
	if len(in.NationalID) > 20 {
		return dErrors.New(dErrors.CodeValidation, "national id must be 20 characters or less")
	}
	if in.FirstName == "" || in.LastName == "" {
		return dErrors.New(dErrors.CodeValidation, "first and last name are required")
	}
	if in.DateOfBirth.IsZero() || !in.DateOfBirth.Before(now) {
		return dErrors.New(dErrors.CodeValidation, "date of birth must be in the past")
	}
	if !in.Gender.IsValid() {
		return dErrors.New(dErrors.CodeValidation, "gender must be male or female")
	}
	if in.Email != "" && !strings.Contains(in.Email, "@") {
		return dErrors.New(dErrors.CodeValidation, "email is malformed")
	}
	return nil
}

// Apply copies validated input onto the person.
func (p *Person) Apply(in PersonInput, now time.Time) {
	p.NationalID = in.NationalID
	p.FirstName = in.FirstName
	p.SecondName = in.SecondName
	p.ThirdName = in.ThirdName
	p.LastName = in.LastName
	p.DateOfBirth = in.DateOfBirth
	p.Gender = in.Gender
	p.Address = in.Address
	p.Phone = in.Phone
	p.Email = in.Email
	p.UpdatedAt = now
}

// Driver marks a person as enrolled with the licensing authority.
// There is at most one Driver per Person.
type Driver struct {
	ID        id.DriverID `json:"id"`
	PersonID  id.PersonID `json:"person_id"`
	CreatedBy id.UserID   `json:"created_by"`
	CreatedAt time.Time   `json:"created_at"`
}
