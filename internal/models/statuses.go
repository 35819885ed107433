package models

type UserStatus string
type AccountType string
type CircleStatus string
type AssessmentType string
type OperationType string

const (
	UserStatusPending  UserStatus = "pending"
	UserStatusActive   UserStatus = "active"
	UserStatusInactive UserStatus = "inactive"

	AccountTypePersonal   AccountType = "personal"
	AccountTypeCompany    AccountType = "company"
	AccountTypeClientUser AccountType = "clientUser"

	CircleStatusActive   CircleStatus = "active"
	CircleStatusInactive CircleStatus = "inactive"

	AssessmentTypeDaily  AssessmentType = "daily"
	AssessmentTypeWeekly AssessmentType = "weekly"

	// Token operation types, stored verbatim on TokenManager rows.
	OperationEmailVerification   OperationType = "Email Verification"
	OperationTwoStepVerification OperationType = "Two Step Verification"
	OperationPasswordReset       OperationType = "Password Reset"
)
