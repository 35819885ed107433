package validator

import (
	"testing"

	"empylo_backend/internal/services/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignupRequestValidation(t *testing.T) {
	v := New()

	err := v.Validate(&dto.SignupRequest{
		Email:       "user@example.com",
		Password:    "longenough",
		AccountType: "company",
	})
	assert.NoError(t, err)

	err = v.Validate(&dto.SignupRequest{
		Email:       "user@example.com",
		Password:    "longenough",
		AccountType: "superadmin",
	})
	require.Error(t, err)

	vErr, ok := err.(*ValidationError)
	require.True(t, ok)
	// Field names come from json tags.
	assert.Contains(t, vErr.Errors, "accountType")
	assert.Equal(t, "Must be one of: personal, company, clientUser", vErr.Errors["accountType"])
}

func TestEmptyEnumPassesWithoutRequired(t *testing.T) {
	v := New()

	// AccountType is optional on signup; empty means personal.
	err := v.Validate(&dto.SignupRequest{
		Email:    "user@example.com",
		Password: "longenough",
	})
	assert.NoError(t, err)
}

func TestAssessmentFilterValidation(t *testing.T) {
	v := New()

	assert.NoError(t, v.Validate(&dto.AssessmentFilter{AssessmentType: "daily"}))

	err := v.Validate(&dto.AssessmentFilter{AssessmentType: "monthly"})
	require.Error(t, err)
	vErr, ok := err.(*ValidationError)
	require.True(t, ok)
	assert.Contains(t, vErr.Errors, "assessmentType")
}
