package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"licensing/internal/identity/models"
	"licensing/internal/identity/service"
	"licensing/internal/store/memory"
	dErrors "licensing/pkg/domain-errors"
	"licensing/pkg/requestcontext"
)

type ServiceSuite struct {
	suite.Suite
	store   *memory.Store
	service *service.Service
	ctx     context.Context
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.store = memory.New()
	s.service = service.New(s.store)
	s.ctx = requestcontext.WithTime(context.Background(), time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC))
}

func input(nationalID string) models.PersonInput {
	return models.PersonInput{
		NationalID:  nationalID,
		FirstName:   " Grace ",
		LastName:    "Hopper",
		DateOfBirth: time.Date(1990, 12, 9, 0, 0, 0, 0, time.UTC),
		Gender:      "Female",
		Address:     "1 Main St",
		Email:       "Grace@Example.com",
	}
}

func (s *ServiceSuite) TestRegisterPerson() {
	s.Run("normalizes and stores", func() {
		p, err := s.service.RegisterPerson(s.ctx, input(" n100 "))
		s.Require().NoError(err)
		s.NotZero(p.ID)
		s.Equal("N100", p.NationalID)
		s.Equal("Grace", p.FirstName)
		s.Equal(models.GenderFemale, p.Gender)
		s.Equal("grace@example.com", p.Email)
	})

	s.Run("duplicate national id is a conflict", func() {
		_, err := s.service.RegisterPerson(s.ctx, input("n100"))
		s.True(dErrors.HasCode(err, dErrors.CodeConflict))
	})

	s.Run("invalid input is rejected before the store", func() {
		in := input("N101")
		in.DateOfBirth = time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)
		_, err := s.service.RegisterPerson(s.ctx, in)
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))

		_, err = s.service.FindPersonByNationalID(s.ctx, "N101")
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})
}

func (s *ServiceSuite) TestUpdatePerson() {
	first, err := s.service.RegisterPerson(s.ctx, input("N200"))
	s.Require().NoError(err)
	_, err = s.service.RegisterPerson(s.ctx, input("N201"))
	s.Require().NoError(err)

	s.Run("updates fields", func() {
		in := input("N200")
		in.Address = "2 Side St"
		updated, err := s.service.UpdatePerson(s.ctx, first.ID, in)
		s.Require().NoError(err)
		s.Equal("2 Side St", updated.Address)

		got, err := s.service.GetPerson(s.ctx, first.ID)
		s.Require().NoError(err)
		s.Equal("2 Side St", got.Address)
	})

	s.Run("taking another person's national id is a conflict", func() {
		_, err := s.service.UpdatePerson(s.ctx, first.ID, input("N201"))
		s.True(dErrors.HasCode(err, dErrors.CodeConflict))
	})

	s.Run("unknown person is NotFound", func() {
		_, err := s.service.UpdatePerson(s.ctx, 999, input("N999"))
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})
}

func (s *ServiceSuite) TestEnsureDriver() {
	p, err := s.service.RegisterPerson(s.ctx, input("N300"))
	s.Require().NoError(err)

	first, err := s.service.EnsureDriver(s.ctx, p.ID, 7)
	s.Require().NoError(err)
	second, err := s.service.EnsureDriver(s.ctx, p.ID, 8)
	s.Require().NoError(err)
	s.Equal(first.ID, second.ID, "one driver per person")
	s.Equal(first.CreatedBy, second.CreatedBy)

	byPerson, err := s.service.FindDriverByPerson(s.ctx, p.ID)
	s.Require().NoError(err)
	s.Equal(first.ID, byPerson.ID)

	_, err = s.service.EnsureDriver(s.ctx, 999, 7)
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))

	_, err = s.service.GetDriver(s.ctx, 999)
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
}

func (s *ServiceSuite) TestListPeople() {
	for _, nid := range []string{"N401", "N402"} {
		_, err := s.service.RegisterPerson(s.ctx, input(nid))
		s.Require().NoError(err)
	}
	people, err := s.service.ListPeople(s.ctx)
	s.Require().NoError(err)
	s.Len(people, 2)
}
