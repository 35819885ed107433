package services

import (
	"empylo_backend/internal/auth"
	"empylo_backend/internal/models"
	"empylo_backend/internal/repositories"
	"empylo_backend/internal/services/dto"
	"empylo_backend/pkg/apperrors"

	"gorm.io/gorm"
)

// UserService covers profile management on the caller's own account.
type UserService interface {
	GetUser(db *gorm.DB, userID uint) (*models.User, error)
	UpdateProfile(db *gorm.DB, userID uint, req *dto.UpdateUserRequest, profileImageURL *string) (*models.User, error)
	ChangePassword(db *gorm.DB, userID uint, req *dto.ChangePasswordRequest) error
	SetTwoStepVerification(db *gorm.DB, userID uint, enabled bool) error
	SoftDelete(db *gorm.DB, userID uint) error
}

type UserServiceImpl struct {
	userRepo repositories.UserRepository
}

func NewUserService(userRepo repositories.UserRepository) UserService {
	return &UserServiceImpl{userRepo: userRepo}
}

func (s *UserServiceImpl) findUser(db *gorm.DB, userID uint) (*models.User, error) {
	user, err := s.userRepo.FindByID(db, userID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.InternalError(err)
	}
	return user, nil
}

func (s *UserServiceImpl) GetUser(db *gorm.DB, userID uint) (*models.User, error) {
	user, err := s.findUser(db, userID)
	if err != nil {
		return nil, err
	}
	sanitized := user.Sanitized()
	return &sanitized, nil
}

// UpdateProfile merges only the provided fields. The image, when
// present, was already uploaded by the handler.
func (s *UserServiceImpl) UpdateProfile(db *gorm.DB, userID uint, req *dto.UpdateUserRequest, profileImageURL *string) (*models.User, error) {
	if _, err := s.findUser(db, userID); err != nil {
		return nil, err
	}

	fields := map[string]interface{}{
		"account_type": models.AccountType(req.AccountType),
	}
	if req.FirstName != nil {
		fields["first_name"] = *req.FirstName
	}
	if req.LastName != nil {
		fields["last_name"] = *req.LastName
	}
	if req.AgeRange != nil {
		fields["age_range"] = *req.AgeRange
	}
	if req.Ethnicity != nil {
		fields["ethnicity"] = *req.Ethnicity
	}
	if req.MaritalStatus != nil {
		fields["marital_status"] = *req.MaritalStatus
	}
	if req.Department != nil {
		fields["department"] = *req.Department
	}
	if req.JobRole != nil {
		fields["job_role"] = *req.JobRole
	}
	if req.Gender != nil {
		fields["gender"] = *req.Gender
	}
	if req.DOB != nil {
		fields["dob"] = *req.DOB
	}
	if req.Address != nil {
		fields["address"] = *req.Address
	}
	if req.Disability != nil {
		fields["disability"] = *req.Disability
	}
	if profileImageURL != nil {
		fields["profile_image"] = *profileImageURL
	}

	if err := s.userRepo.UpdateFields(db, userID, fields); err != nil {
		return nil, apperrors.InternalError(err)
	}

	return s.GetUser(db, userID)
}

// ChangePassword verifies the current password before storing the new
// hash.
func (s *UserServiceImpl) ChangePassword(db *gorm.DB, userID uint, req *dto.ChangePasswordRequest) error {
	user, err := s.findUser(db, userID)
	if err != nil {
		return err
	}

	if !auth.CheckPasswordHash(req.OldPassword, user.Password) {
		return apperrors.ErrWrongPassword
	}

	hashed, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		return apperrors.InternalError(err)
	}

	if err := s.userRepo.UpdateFields(db, userID, map[string]interface{}{
		"password": hashed,
	}); err != nil {
		return apperrors.InternalError(err)
	}

	return nil
}

// SetTwoStepVerification toggles two-step login, rejecting a no-op
// toggle.
func (s *UserServiceImpl) SetTwoStepVerification(db *gorm.DB, userID uint, enabled bool) error {
	user, err := s.findUser(db, userID)
	if err != nil {
		return err
	}

	if user.TwoStepVerification == enabled {
		if enabled {
			return apperrors.ErrInvalidStatus("user", "Two-step verification is already activated")
		}
		return apperrors.ErrInvalidStatus("user", "Two-step verification is already deactivated")
	}

	if err := s.userRepo.UpdateFields(db, userID, map[string]interface{}{
		"two_step_verification": enabled,
	}); err != nil {
		return apperrors.InternalError(err)
	}

	return nil
}

// SoftDelete flags the account; no rows are removed.
func (s *UserServiceImpl) SoftDelete(db *gorm.DB, userID uint) error {
	user, err := s.findUser(db, userID)
	if err != nil {
		return err
	}

	if user.IsDeleted {
		return apperrors.ErrUserDeleted
	}

	if err := s.userRepo.SoftDelete(db, userID); err != nil {
		return apperrors.InternalError(err)
	}

	return nil
}
