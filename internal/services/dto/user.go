package dto

import "time"

// UpdateUserRequest partially merges profile fields. Only non-nil
// fields are written. AccountType is required by the profile form.
type UpdateUserRequest struct {
	AccountType   string     `json:"accountType" form:"accountType" binding:"required" validate:"is-account-type"`
	FirstName     *string    `json:"firstName" form:"firstName"`
	LastName      *string    `json:"lastName" form:"lastName"`
	AgeRange      *string    `json:"ageRange" form:"ageRange"`
	Ethnicity     *string    `json:"ethnicity" form:"ethnicity"`
	MaritalStatus *string    `json:"maritalStatus" form:"maritalStatus"`
	Department    *string    `json:"department" form:"department"`
	JobRole       *string    `json:"jobRole" form:"jobRole"`
	Gender        *string    `json:"gender" form:"gender"`
	DOB           *time.Time `json:"dob" form:"dob"`
	Address       *string    `json:"address" form:"address"`
	Disability    *string    `json:"disability" form:"disability"`
}

type ChangePasswordRequest struct {
	OldPassword string `json:"oldPassword" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required,min=8"`
}
