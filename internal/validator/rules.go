package validator

import (
	"empylo_backend/internal/logger"
	"empylo_backend/internal/models"

	"github.com/go-playground/validator/v10"
)

// registerCustomRules installs enum rules tied to the model types.
// Empty values pass; pair with 'required' where the field is mandatory.
func registerCustomRules(v *validator.Validate) {
	mustRegister := func(tag string, fn validator.Func) {
		if err := v.RegisterValidation(tag, fn); err != nil {
			// Startup misconfiguration, do not run without the rule.
			logger.Fatal("failed to register custom validation tag", "tag", tag, "error", err)
		}
	}

	mustRegister("is-account-type", validateAccountType)
	mustRegister("is-circle-status", validateCircleStatus)
	mustRegister("is-assessment-type", validateAssessmentType)
	mustRegister("is-operation-type", validateOperationType)
}

func validateAccountType(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	switch models.AccountType(value) {
	case models.AccountTypePersonal, models.AccountTypeCompany, models.AccountTypeClientUser:
		return true
	default:
		return false
	}
}

func validateCircleStatus(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	switch models.CircleStatus(value) {
	case models.CircleStatusActive, models.CircleStatusInactive:
		return true
	default:
		return false
	}
}

func validateAssessmentType(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	switch models.AssessmentType(value) {
	case models.AssessmentTypeDaily, models.AssessmentTypeWeekly:
		return true
	default:
		return false
	}
}

func validateOperationType(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	switch models.OperationType(value) {
	case models.OperationEmailVerification, models.OperationTwoStepVerification, models.OperationPasswordReset:
		return true
	default:
		return false
	}
}
