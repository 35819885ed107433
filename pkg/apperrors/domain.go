package apperrors

import (
	"net/http"
)

/*
Factories and predefined variables for domain errors. Services construct
these next to the failing check and let them propagate unmodified to the
transport boundary.
*/

// =========================================================================
// Factories for wrapping repository errors
// =========================================================================

// ErrNotFound converts a repository miss (gorm.ErrRecordNotFound and
// friends) into a 404.
func ErrNotFound(err error) *AppError {
	return Wrap(err, CodeNotFound, "resource", "Resource not found", http.StatusNotFound)
}

// ErrAlreadyExists converts a uniqueness violation into a 409.
func ErrAlreadyExists(err error) *AppError {
	return Wrap(err, CodeAlreadyExists, "resource", "Resource already exists", http.StatusConflict)
}

// ErrConflict is the general conflict factory.
func ErrConflict(err error, domain, message string) *AppError {
	return Wrap(err, CodeConflict, domain, message, http.StatusConflict)
}

// ErrInvalidOperation builds a 400 for operations the current state does
// not permit.
func ErrInvalidOperation(domain, message string) *AppError {
	return New(CodeInvalidOperation, domain, message, http.StatusBadRequest)
}

// ErrInvalidStatus builds a 400 for state-already-set rejections.
func ErrInvalidStatus(domain, message string) *AppError {
	return New(CodeInvalidStatus, domain, message, http.StatusBadRequest)
}

// =========================================================================
// Auth and account state
// =========================================================================

// ErrEmailAlreadyExists - a user with this email is already registered.
var ErrEmailAlreadyExists = New(
	CodeAlreadyExists,
	"auth",
	"User with this email already exists",
	http.StatusConflict,
)

// ErrInvalidCredentials - wrong email or password. The message is
// identical for unknown email and password mismatch so that account
// existence cannot be probed.
var ErrInvalidCredentials = New(
	CodeInvalidCredentials,
	"auth",
	"Invalid email or password",
	http.StatusUnauthorized,
)

// ErrEmailNotVerified - login attempted before the email OTP was confirmed.
var ErrEmailNotVerified = New(
	CodeForbidden,
	"auth",
	"Please verify your email address before logging in",
	http.StatusForbidden,
)

// ErrUserDeleted - the account was soft-deleted.
var ErrUserDeleted = New(
	CodeForbidden,
	"auth",
	"This account has been deleted",
	http.StatusForbidden,
)

// ErrUserDeactivated - the account exists but is not activated.
var ErrUserDeactivated = New(
	CodeForbidden,
	"auth",
	"This account is deactivated, please contact support",
	http.StatusForbidden,
)

// ErrWrongPassword - current password check failed on change-password.
var ErrWrongPassword = New(
	CodeInvalidCredentials,
	"auth",
	"Current password is incorrect",
	http.StatusUnauthorized,
)

// ErrUserNotFound - no user matches the given id or email.
var ErrUserNotFound = New(
	CodeNotFound,
	"user",
	"User not found",
	http.StatusNotFound,
)

// =========================================================================
// Tokens (OTP / reset)
// =========================================================================

// ErrTokenInvalidOrExpired - no live token matches (value, operation).
var ErrTokenInvalidOrExpired = New(
	CodeInvalidToken,
	"token",
	"Invalid or expired token",
	http.StatusUnauthorized,
)

// ErrTokenUsed - the token matched but was already consumed.
var ErrTokenUsed = New(
	CodeTokenUsed,
	"token",
	"Token has already been used",
	http.StatusUnauthorized,
)

// =========================================================================
// Circles
// =========================================================================

// ErrCircleNotFound - no circle matches the given id or share link.
var ErrCircleNotFound = New(
	CodeNotFound,
	"circle",
	"Circle not found",
	http.StatusNotFound,
)

// ErrAlreadyCircleMember - user is already an active member of the circle.
var ErrAlreadyCircleMember = New(
	CodeConflict,
	"circle",
	"User is already a member of this circle",
	http.StatusConflict,
)

// ErrCircleMemberNotFound - user is not a member of the circle.
var ErrCircleMemberNotFound = New(
	CodeNotFound,
	"circle",
	"User is not a member of this circle",
	http.StatusNotFound,
)

// ErrUnregisteredEmails - error-on-missing import found unresolved rows.
// Attach the offending emails via WithDetails.
func ErrUnregisteredEmails(emails []string) *AppError {
	return New(
		CodeValidationFailed,
		"circle",
		"Some emails are not registered",
		http.StatusBadRequest,
	).WithDetails(map[string]interface{}{"unregisteredEmails": emails})
}

// =========================================================================
// Company roster
// =========================================================================

// ErrNotCompanyAccount - the anchoring user is not a company account.
var ErrNotCompanyAccount = New(
	CodeUnauthorized,
	"company",
	"Only company accounts can perform this operation",
	http.StatusUnauthorized,
)

// ErrCannotAddSelf - a company cannot add itself to its own roster.
var ErrCannotAddSelf = New(
	CodeInvalidOperation,
	"company",
	"Cannot add your own account as a member",
	http.StatusBadRequest,
)

// ErrAlreadyInCompany - the user already belongs to a company roster.
var ErrAlreadyInCompany = New(
	CodeConflict,
	"company",
	"User already belongs to a company",
	http.StatusConflict,
)

// =========================================================================
// Uploads and spreadsheets
// =========================================================================

// ErrInvalidFileType - the uploaded file's type is not allowed.
var ErrInvalidFileType = New(
	CodeValidationFailed,
	"validation",
	"The provided file type is not allowed",
	http.StatusUnsupportedMediaType,
)

// ErrUnsupportedSpreadsheet - batch import accepts .xlsx and .xls only.
var ErrUnsupportedSpreadsheet = New(
	CodeValidationFailed,
	"validation",
	"Only .xlsx and .xls files are supported",
	http.StatusUnsupportedMediaType,
)

// =========================================================================
// Assessments
// =========================================================================

// ErrAssessmentNotFound - no assessment matches the given id.
var ErrAssessmentNotFound = New(
	CodeNotFound,
	"assessment",
	"Assessment not found",
	http.StatusNotFound,
)

// ErrQuestionNotFound - answer submitted for an unknown question.
var ErrQuestionNotFound = New(
	CodeNotFound,
	"assessment",
	"Question not found",
	http.StatusNotFound,
)
