package dto

import "time"

// AddCompanyMemberRequest attaches an existing user to the company
// roster by email.
type AddCompanyMemberRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// UpdateCompanyMemberRequest partially merges a roster member's
// profile.
type UpdateCompanyMemberRequest struct {
	FirstName  *string    `json:"firstName"`
	LastName   *string    `json:"lastName"`
	Department *string    `json:"department"`
	JobRole    *string    `json:"jobRole"`
	Gender     *string    `json:"gender"`
	DOB        *time.Time `json:"dob"`
	Address    *string    `json:"address"`
}
