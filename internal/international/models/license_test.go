package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	licensemodels "licensing/internal/license/models"
)

func TestStatus(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	active := &License{IsActive: true, ExpirationDate: now.AddDate(1, 0, 0)}
	assert.Equal(t, licensemodels.StatusActive, active.Status(now))
	assert.Equal(t, licensemodels.StatusExpired, active.Status(now.AddDate(1, 0, 0)))

	replaced := &License{ExpirationDate: now.AddDate(1, 0, 0)}
	assert.Equal(t, licensemodels.StatusInactive, replaced.Status(now))
}

func TestVariants(t *testing.T) {
	variants := []licensemodels.Variant{&licensemodels.License{}, &License{}}
	kinds := make([]licensemodels.Kind, 0, len(variants))
	for _, v := range variants {
		kinds = append(kinds, v.Kind())
	}
	assert.Equal(t, []licensemodels.Kind{licensemodels.KindLocal, licensemodels.KindInternational}, kinds)
}
