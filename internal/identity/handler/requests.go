package handler

import (
	"time"

	"licensing/internal/identity/models"
	dErrors "licensing/pkg/domain-errors"
	"licensing/pkg/platform/httputil"
)

// PersonRequest is the body of POST /people and PUT /people/{personID}.
type PersonRequest struct {
	NationalID  string `json:"national_id"`
	FirstName   string `json:"first_name"`
	SecondName  string `json:"second_name"`
	ThirdName   string `json:"third_name"`
	LastName    string `json:"last_name"`
	DateOfBirth string `json:"date_of_birth"`
	Gender      string `json:"gender"`
	Address     string `json:"address"`
	Phone       string `json:"phone"`
	Email       string `json:"email"`

	dateOfBirth time.Time
}

// Validate parses the date of birth. Field rules are the identity
// service's to enforce.
func (r *PersonRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	if len(r.NationalID) > 64 || len(r.Email) > 254 {
		return dErrors.New(dErrors.CodeValidation, "field too long")
	}
	dob, err := httputil.ParseDate("date_of_birth", r.DateOfBirth)
	if err != nil {
		return err
	}
	r.dateOfBirth = dob
	return nil
}

func (r *PersonRequest) Input() models.PersonInput {
	return models.PersonInput{
		NationalID:  r.NationalID,
		FirstName:   r.FirstName,
		SecondName:  r.SecondName,
		ThirdName:   r.ThirdName,
		LastName:    r.LastName,
		DateOfBirth: r.dateOfBirth,
		Gender:      models.Gender(r.Gender),
		Address:     r.Address,
		Phone:       r.Phone,
		Email:       r.Email,
	}
}
