package models

import (
	"testing"

	"github.com/stretchr/testify/assert"

	id "licensing/pkg/domain"
)

func TestStatusTransitions(t *testing.T) {
	assert.True(t, StatusNew.CanTransitionTo(StatusCancelled))
	assert.True(t, StatusNew.CanTransitionTo(StatusCompleted))
	assert.False(t, StatusNew.CanTransitionTo(StatusNew))
	assert.False(t, StatusCancelled.CanTransitionTo(StatusCompleted))
	assert.False(t, StatusCompleted.CanTransitionTo(StatusCancelled))
}

func TestLicenseClassTestOrder(t *testing.T) {
	class := &LicenseClass{RequiredTests: []id.TestTypeID{1, 2, 3}}

	assert.Nil(t, class.TestsBefore(1))
	assert.Equal(t, []id.TestTypeID{1, 2}, class.TestsBefore(3))
	assert.Nil(t, class.TestsBefore(9))
	assert.False(t, class.Requires(9))

	assert.False(t, class.AllPassed([]id.TestTypeID{1, 3}))
	assert.True(t, class.AllPassed([]id.TestTypeID{3, 1, 2}))
}
