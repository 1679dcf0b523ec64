// Package fees is the read-only fee table: what each application type, license
// class and test type costs.
package fees

//go:generate mockgen -source=fees.go -destination=mocks/mocks.go -package=mocks Schedule

import (
	"context"
	"errors"

	appmodels "licensing/internal/application/models"
	testmodels "licensing/internal/testcenter/models"
	id "licensing/pkg/domain"
	dErrors "licensing/pkg/domain-errors"
	"licensing/pkg/money"
	"licensing/pkg/platform/sentinel"
)

// Schedule answers fee questions for the services that charge them.
type Schedule interface {
	LookupFee(ctx context.Context, typeID id.ApplicationTypeID) (money.Amount, error)
	ClassFee(ctx context.Context, classID id.LicenseClassID) (money.Amount, error)
	TestFee(ctx context.Context, testType id.TestTypeID) (money.Amount, error)
}

// Source is the reference data the table reads. Both stores implement it, and
// RedisCache decorates it.
type Source interface {
	FindApplicationTypeByID(ctx context.Context, typeID id.ApplicationTypeID) (*appmodels.ApplicationType, error)
	FindLicenseClassByID(ctx context.Context, classID id.LicenseClassID) (*appmodels.LicenseClass, error)
	FindTestTypeByID(ctx context.Context, testType id.TestTypeID) (*testmodels.TestType, error)
}

// Table implements Schedule over a Source.
type Table struct {
	src Source
}

func NewTable(src Source) *Table {
	return &Table{src: src}
}

func (t *Table) LookupFee(ctx context.Context, typeID id.ApplicationTypeID) (money.Amount, error) {
	at, err := t.src.FindApplicationTypeByID(ctx, typeID)
	if err != nil {
		return 0, translate(err, "application type not found", "failed to look up application fee")
	}
	return at.Fee, nil
}

func (t *Table) ClassFee(ctx context.Context, classID id.LicenseClassID) (money.Amount, error) {
	c, err := t.src.FindLicenseClassByID(ctx, classID)
	if err != nil {
		return 0, translate(err, "license class not found", "failed to look up class fee")
	}
	return c.Fee, nil
}

func (t *Table) TestFee(ctx context.Context, testType id.TestTypeID) (money.Amount, error) {
	tt, err := t.src.FindTestTypeByID(ctx, testType)
	if err != nil {
		return 0, translate(err, "test type not found", "failed to look up test fee")
	}
	return tt.Fee, nil
}

func translate(err error, notFound, failure string) error {
	if errors.Is(err, sentinel.ErrNotFound) {
		return dErrors.New(dErrors.CodeNotFound, notFound)
	}
	return dErrors.Persistence(err, failure)
}
