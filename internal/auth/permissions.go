package auth

import (
	"errors"

	"empylo_backend/internal/models"
)

// Account-type gating. Company accounts manage rosters; personal and
// client accounts only act on themselves and their circles.

// IsCompany reports whether the claims belong to a company account.
func IsCompany(claims *Claims) bool {
	return claims.User.AccountType == models.AccountTypeCompany
}

// CanManageRoster is true only for company accounts.
func CanManageRoster(claims *Claims) bool {
	return IsCompany(claims)
}

// ValidateAccountType rejects unknown account types.
func ValidateAccountType(t models.AccountType) error {
	switch t {
	case models.AccountTypePersonal, models.AccountTypeCompany, models.AccountTypeClientUser:
		return nil
	default:
		return errors.New("invalid account type")
	}
}
