package models

import (
	"slices"

	id "licensing/pkg/domain"
	"licensing/pkg/money"
)

// LicenseClass is static reference data describing a category of license.
// RequiredTests is ordered: each test must be passed before the next is scheduled.
type LicenseClass struct {
	ID                   id.LicenseClassID `json:"id"`
	Name                 string            `json:"name"`
	Description          string            `json:"description"`
	MinimumAge           int               `json:"minimum_age"`
	DefaultValidityYears int               `json:"default_validity_years"`
	Fee                  money.Amount      `json:"fee"`
	RequiredTests        []id.TestTypeID   `json:"required_tests"`
}

// Requires reports whether the class requires the given test type.
func (c *LicenseClass) Requires(testType id.TestTypeID) bool {
	return slices.Contains(c.RequiredTests, testType)
}

// TestsBefore returns the required tests that precede testType.
func (c *LicenseClass) TestsBefore(testType id.TestTypeID) []id.TestTypeID {
	idx := slices.Index(c.RequiredTests, testType)
	if idx <= 0 {
		return nil
	}
	return c.RequiredTests[:idx]
}

// AllPassed reports whether every required test appears in passed.
func (c *LicenseClass) AllPassed(passed []id.TestTypeID) bool {
	for _, required := range c.RequiredTests {
		if !slices.Contains(passed, required) {
			return false
		}
	}
	return true
}
