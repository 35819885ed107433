package services

import (
	"empylo_backend/internal/models"
	"empylo_backend/internal/repositories"
	"empylo_backend/internal/services/dto"
	"empylo_backend/pkg/apperrors"

	"gorm.io/gorm"
)

// CompanyService manages a company account's roster. Every operation
// anchors on the company user and rejects non-company account types.
type CompanyService interface {
	AddMember(db *gorm.DB, companyID uint, req *dto.AddCompanyMemberRequest) (*models.User, error)
	ListMembers(db *gorm.DB, companyID uint) ([]models.User, error)
	GetMember(db *gorm.DB, companyID, memberID uint) (*models.User, error)
	UpdateMember(db *gorm.DB, companyID, memberID uint, req *dto.UpdateCompanyMemberRequest) (*models.User, error)
	RemoveMember(db *gorm.DB, companyID, memberID uint) error
}

type CompanyServiceImpl struct {
	userRepo repositories.UserRepository
}

func NewCompanyService(userRepo repositories.UserRepository) CompanyService {
	return &CompanyServiceImpl{userRepo: userRepo}
}

// requireCompany loads the anchoring user and checks the account type.
func (s *CompanyServiceImpl) requireCompany(db *gorm.DB, companyID uint) (*models.User, error) {
	company, err := s.userRepo.FindByID(db, companyID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.InternalError(err)
	}
	if company.AccountType != models.AccountTypeCompany {
		return nil, apperrors.ErrNotCompanyAccount
	}
	return company, nil
}

// AddMember attaches an existing user to the roster. A user already on
// this or another roster is rejected.
func (s *CompanyServiceImpl) AddMember(db *gorm.DB, companyID uint, req *dto.AddCompanyMemberRequest) (*models.User, error) {
	company, err := s.requireCompany(db, companyID)
	if err != nil {
		return nil, err
	}

	member, err := s.userRepo.FindByEmail(db, req.Email)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.InternalError(err)
	}

	if member.ID == company.ID {
		return nil, apperrors.ErrCannotAddSelf
	}
	if member.CompanyID != nil {
		return nil, apperrors.ErrAlreadyInCompany
	}

	if err := s.userRepo.UpdateFields(db, member.ID, map[string]interface{}{
		"company_id": company.ID,
	}); err != nil {
		return nil, apperrors.InternalError(err)
	}

	member.CompanyID = &company.ID
	sanitized := member.Sanitized()
	return &sanitized, nil
}

func (s *CompanyServiceImpl) ListMembers(db *gorm.DB, companyID uint) ([]models.User, error) {
	if _, err := s.requireCompany(db, companyID); err != nil {
		return nil, err
	}

	members, err := s.userRepo.FindCompanyMembers(db, companyID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	for i := range members {
		members[i] = members[i].Sanitized()
	}
	return members, nil
}

func (s *CompanyServiceImpl) GetMember(db *gorm.DB, companyID, memberID uint) (*models.User, error) {
	if _, err := s.requireCompany(db, companyID); err != nil {
		return nil, err
	}

	member, err := s.userRepo.FindCompanyMember(db, companyID, memberID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.InternalError(err)
	}

	sanitized := member.Sanitized()
	return &sanitized, nil
}

func (s *CompanyServiceImpl) UpdateMember(db *gorm.DB, companyID, memberID uint, req *dto.UpdateCompanyMemberRequest) (*models.User, error) {
	if _, err := s.requireCompany(db, companyID); err != nil {
		return nil, err
	}

	member, err := s.userRepo.FindCompanyMember(db, companyID, memberID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.InternalError(err)
	}

	fields := map[string]interface{}{}
	if req.FirstName != nil {
		fields["first_name"] = *req.FirstName
	}
	if req.LastName != nil {
		fields["last_name"] = *req.LastName
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

	if len(fields) > 0 {
		if err := s.userRepo.UpdateFields(db, member.ID, fields); err != nil {
			return nil, apperrors.InternalError(err)
		}
	}

	updated, err := s.userRepo.FindByID(db, member.ID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	sanitized := updated.Sanitized()
	return &sanitized, nil
}

// RemoveMember detaches the user from the roster. The account itself
// is kept.
func (s *CompanyServiceImpl) RemoveMember(db *gorm.DB, companyID, memberID uint) error {
	if _, err := s.requireCompany(db, companyID); err != nil {
		return err
	}

	if _, err := s.userRepo.FindCompanyMember(db, companyID, memberID); err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return apperrors.ErrUserNotFound
		}
		return apperrors.InternalError(err)
	}

	if err := s.userRepo.ClearCompany(db, memberID); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}
