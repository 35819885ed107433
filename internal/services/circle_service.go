package services

import (
	"io"
	"strings"

	"empylo_backend/internal/auth"
	"empylo_backend/internal/config"
	"empylo_backend/internal/models"
	"empylo_backend/internal/repositories"
	"empylo_backend/internal/services/dto"
	"empylo_backend/internal/spreadsheet"
	"empylo_backend/pkg/apperrors"

	"gorm.io/gorm"
)

// Placeholder credentials for auto-provisioned roster accounts. Users
// are expected to reset on first login.
const autoProvisionPassword = "password"

// CircleService owns circle lifecycle, membership, share-link join and
// spreadsheet batch import.
type CircleService interface {
	CreateCircle(db *gorm.DB, ownerID uint, req *dto.CreateCircleRequest, imageURL *string) (*models.Circle, error)
	GetCircle(db *gorm.DB, circleID uint) (*models.Circle, error)
	GetAllCircles(db *gorm.DB) ([]models.Circle, error)
	GetUserCircles(db *gorm.DB, userID uint) ([]models.Circle, error)
	GetOwnedCircles(db *gorm.DB, ownerID uint) ([]models.Circle, error)
	GetCircleMembers(db *gorm.DB, circleID uint) ([]models.CircleMember, error)
	UpdateCircle(db *gorm.DB, circleID uint, req *dto.UpdateCircleRequest, imageURL *string) (*models.Circle, error)
	DeleteCircle(db *gorm.DB, circleID uint) error
	SetCircleStatus(db *gorm.DB, circleID uint, status models.CircleStatus) error

	AddMember(db *gorm.DB, req *dto.AddCircleMemberRequest) (*models.CircleMember, error)
	RemoveMember(db *gorm.DB, circleID, userID uint) error
	JoinByShareLink(db *gorm.DB, shareLink, userEmail string) (*dto.CircleWithMembers, error)

	BatchImport(db *gorm.DB, circleID uint, file io.Reader, filename string, policy dto.ImportPolicy) (*dto.BatchImportResult, error)
	SampleTemplate() ([]byte, error)
}

type CircleServiceImpl struct {
	cfg        *config.Config
	circleRepo repositories.CircleRepository
	userRepo   repositories.UserRepository
}

func NewCircleService(
	cfg *config.Config,
	circleRepo repositories.CircleRepository,
	userRepo repositories.UserRepository,
) CircleService {
	return &CircleServiceImpl{
		cfg:        cfg,
		circleRepo: circleRepo,
		userRepo:   userRepo,
	}
}

// newShareLink builds "<base>/circle/<random12>". The unique column on
// circles makes a collision fail the insert; callers retry.
func (s *CircleServiceImpl) newShareLink() (string, error) {
	suffix, err := randomAlnum(12)
	if err != nil {
		return "", err
	}
	return s.cfg.App.BaseShareURL + "/circle/" + suffix, nil
}

// splitEmails parses a comma-separated email list.
func splitEmails(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		email := strings.ToLower(strings.TrimSpace(part))
		if email != "" {
			out = append(out, email)
		}
	}
	return out
}

// CreateCircle creates the circle and its initial membership in one
// transaction. Unknown member emails are silently dropped; the owner is
// auto-included unless it is a company account.
func (s *CircleServiceImpl) CreateCircle(db *gorm.DB, ownerID uint, req *dto.CreateCircleRequest, imageURL *string) (*models.Circle, error) {
	owner, err := s.userRepo.FindByID(db, ownerID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.InternalError(err)
	}

	memberIDs := map[uint]bool{}
	if owner.AccountType != models.AccountTypeCompany {
		memberIDs[owner.ID] = true
	}

	if emails := splitEmails(req.MemberEmails); len(emails) > 0 {
		users, err := s.userRepo.FindByEmails(db, emails)
		if err != nil {
			return nil, apperrors.InternalError(err)
		}
		for _, u := range users {
			memberIDs[u.ID] = true
		}
	}

	status := models.CircleStatus(req.CircleStatus)
	if req.CircleStatus == "" {
		status = models.CircleStatusActive
	}

	shareLink, err := s.newShareLink()
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	circle := &models.Circle{
		CircleName:        req.CircleName,
		CircleDescription: req.CircleDescription,
		CircleStatus:      status,
		CircleShareLink:   shareLink,
		CircleOwnerID:     ownerID,
		CircleNos:         len(memberIDs),
	}
	if imageURL != nil {
		circle.CircleImg = *imageURL
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := s.circleRepo.Create(tx, circle); err != nil {
			return apperrors.InternalError(err)
		}

		members := make([]*models.CircleMember, 0, len(memberIDs))
		for id := range memberIDs {
			members = append(members, &models.CircleMember{
				UserID:   id,
				CircleID: circle.ID,
			})
		}
		if err := s.circleRepo.AddMembers(tx, members); err != nil {
			return apperrors.InternalError(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return circle, nil
}

func (s *CircleServiceImpl) GetCircle(db *gorm.DB, circleID uint) (*models.Circle, error) {
	circle, err := s.circleRepo.FindByIDWithMembers(db, circleID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrCircleNotFound) {
			return nil, apperrors.ErrCircleNotFound
		}
		return nil, apperrors.InternalError(err)
	}
	return circle, nil
}

func (s *CircleServiceImpl) GetAllCircles(db *gorm.DB) ([]models.Circle, error) {
	circles, err := s.circleRepo.FindAll(db)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return circles, nil
}

func (s *CircleServiceImpl) GetUserCircles(db *gorm.DB, userID uint) ([]models.Circle, error) {
	if _, err := s.userRepo.FindByID(db, userID); err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.InternalError(err)
	}

	circles, err := s.circleRepo.FindByMember(db, userID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return circles, nil
}

func (s *CircleServiceImpl) GetOwnedCircles(db *gorm.DB, ownerID uint) ([]models.Circle, error) {
	circles, err := s.circleRepo.FindByOwner(db, ownerID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return circles, nil
}

// GetCircleMembers lists the circle's members with their users.
func (s *CircleServiceImpl) GetCircleMembers(db *gorm.DB, circleID uint) ([]models.CircleMember, error) {
	if _, err := s.circleRepo.FindByID(db, circleID); err != nil {
		if apperrors.Is(err, repositories.ErrCircleNotFound) {
			return nil, apperrors.ErrCircleNotFound
		}
		return nil, apperrors.InternalError(err)
	}

	members, err := s.circleRepo.FindMembers(db, circleID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return members, nil
}

// UpdateCircle merges provided fields, regenerates the share link and
// appends any newly listed members. Members absent from the submitted
// list are kept.
func (s *CircleServiceImpl) UpdateCircle(db *gorm.DB, circleID uint, req *dto.UpdateCircleRequest, imageURL *string) (*models.Circle, error) {
	circle, err := s.circleRepo.FindByID(db, circleID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrCircleNotFound) {
			return nil, apperrors.ErrCircleNotFound
		}
		return nil, apperrors.InternalError(err)
	}

	if req.CircleName != nil {
		circle.CircleName = *req.CircleName
	}
	if req.CircleDescription != nil {
		circle.CircleDescription = *req.CircleDescription
	}
	if req.CircleStatus != nil {
		circle.CircleStatus = models.CircleStatus(*req.CircleStatus)
	}
	if imageURL != nil {
		circle.CircleImg = *imageURL
	}

	shareLink, err := s.newShareLink()
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	circle.CircleShareLink = shareLink

	err = db.Transaction(func(tx *gorm.DB) error {
		if req.MemberEmails != nil {
			if emails := splitEmails(*req.MemberEmails); len(emails) > 0 {
				users, err := s.userRepo.FindByEmails(tx, emails)
				if err != nil {
					return apperrors.InternalError(err)
				}
				members := make([]*models.CircleMember, 0, len(users))
				for _, u := range users {
					members = append(members, &models.CircleMember{
						UserID:   u.ID,
						CircleID: circle.ID,
					})
				}
				if err := s.circleRepo.AddMembers(tx, members); err != nil {
					return apperrors.InternalError(err)
				}
			}
		}

		count, err := s.circleRepo.CountMembers(tx, circle.ID)
		if err != nil {
			return apperrors.InternalError(err)
		}
		circle.CircleNos = int(count)

		if err := s.circleRepo.Update(tx, circle); err != nil {
			return apperrors.InternalError(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return circle, nil
}

func (s *CircleServiceImpl) DeleteCircle(db *gorm.DB, circleID uint) error {
	err := s.circleRepo.Delete(db, circleID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrCircleNotFound) {
			return apperrors.ErrCircleNotFound
		}
		return apperrors.InternalError(err)
	}
	return nil
}

// SetCircleStatus activates or deactivates, rejecting a no-op change.
func (s *CircleServiceImpl) SetCircleStatus(db *gorm.DB, circleID uint, status models.CircleStatus) error {
	circle, err := s.circleRepo.FindByID(db, circleID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrCircleNotFound) {
			return apperrors.ErrCircleNotFound
		}
		return apperrors.InternalError(err)
	}

	if circle.CircleStatus == status {
		return apperrors.ErrInvalidStatus("circle", "Circle is already "+string(status))
	}

	if err := s.circleRepo.UpdateStatus(db, circleID, status); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *CircleServiceImpl) AddMember(db *gorm.DB, req *dto.AddCircleMemberRequest) (*models.CircleMember, error) {
	if _, err := s.userRepo.FindByID(db, req.UserID); err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.InternalError(err)
	}

	if _, err := s.circleRepo.FindByID(db, req.CircleID); err != nil {
		if apperrors.Is(err, repositories.ErrCircleNotFound) {
			return nil, apperrors.ErrCircleNotFound
		}
		return nil, apperrors.InternalError(err)
	}

	if _, err := s.circleRepo.FindMember(db, req.CircleID, req.UserID); err == nil {
		return nil, apperrors.ErrAlreadyCircleMember
	}

	member := &models.CircleMember{
		UserID:   req.UserID,
		CircleID: req.CircleID,
	}
	if err := s.circleRepo.AddMember(db, member); err != nil {
		if apperrors.Is(err, repositories.ErrAlreadyMember) {
			return nil, apperrors.ErrAlreadyCircleMember
		}
		return nil, apperrors.InternalError(err)
	}

	return member, nil
}

func (s *CircleServiceImpl) RemoveMember(db *gorm.DB, circleID, userID uint) error {
	err := s.circleRepo.RemoveMember(db, circleID, userID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrCircleMemberNotFound) {
			return apperrors.ErrCircleMemberNotFound
		}
		return apperrors.InternalError(err)
	}
	return nil
}

// JoinByShareLink resolves the circle by link and the user by email,
// then inserts the membership. The composite unique index collapses
// concurrent duplicate joins; the loser observes the conflict.
func (s *CircleServiceImpl) JoinByShareLink(db *gorm.DB, shareLink, userEmail string) (*dto.CircleWithMembers, error) {
	circle, err := s.circleRepo.FindByShareLink(db, shareLink)
	if err != nil {
		if apperrors.Is(err, repositories.ErrCircleNotFound) {
			return nil, apperrors.ErrCircleNotFound
		}
		return nil, apperrors.InternalError(err)
	}

	user, err := s.userRepo.FindByEmail(db, userEmail)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.InternalError(err)
	}

	if _, err := s.circleRepo.FindMember(db, circle.ID, user.ID); err == nil {
		return nil, apperrors.ErrAlreadyCircleMember
	}

	member := &models.CircleMember{
		UserID:   user.ID,
		CircleID: circle.ID,
	}
	if err := s.circleRepo.AddMember(db, member); err != nil {
		if apperrors.Is(err, repositories.ErrAlreadyMember) {
			return nil, apperrors.ErrAlreadyCircleMember
		}
		return nil, apperrors.InternalError(err)
	}

	members, err := s.circleRepo.FindMembers(db, circle.ID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &dto.CircleWithMembers{
		Circle:  *circle,
		Members: members,
	}, nil
}

// BatchImport runs one parse-and-resolve step, then applies the chosen
// reconciliation policy. The whole import runs in one transaction, so
// the error-on-missing variant is all-or-nothing.
func (s *CircleServiceImpl) BatchImport(db *gorm.DB, circleID uint, file io.Reader, filename string, policy dto.ImportPolicy) (*dto.BatchImportResult, error) {
	emails, err := spreadsheet.ParseEmails(file, filename)
	if err != nil {
		if apperrors.Is(err, spreadsheet.ErrUnsupportedFile) {
			return nil, apperrors.ErrUnsupportedSpreadsheet
		}
		return nil, apperrors.NewBadRequestError("Failed to parse spreadsheet: " + err.Error())
	}

	result := &dto.BatchImportResult{TotalRows: len(emails)}

	err = db.Transaction(func(tx *gorm.DB) error {
		if _, err := s.circleRepo.FindByID(tx, circleID); err != nil {
			if apperrors.Is(err, repositories.ErrCircleNotFound) {
				return apperrors.ErrCircleNotFound
			}
			return apperrors.InternalError(err)
		}

		resolved, err := s.userRepo.FindByEmails(tx, emails)
		if err != nil {
			return apperrors.InternalError(err)
		}

		byEmail := make(map[string]uint, len(resolved))
		for _, u := range resolved {
			byEmail[u.Email] = u.ID
		}

		var missing []string
		for _, email := range emails {
			if _, ok := byEmail[email]; !ok {
				missing = append(missing, email)
			}
		}

		switch policy {
		case dto.ImportErrorOnMissing:
			if len(missing) > 0 {
				return apperrors.ErrUnregisteredEmails(missing)
			}

		case dto.ImportAutoProvision:
			if len(missing) > 0 {
				hashed, err := auth.HashPassword(autoProvisionPassword)
				if err != nil {
					return apperrors.InternalError(err)
				}

				created := make([]*models.User, 0, len(missing))
				for _, email := range missing {
					created = append(created, &models.User{
						Email:       email,
						Password:    hashed,
						AccountType: models.AccountTypeClientUser,
						IsActivated: true,
						Status:      models.UserStatusActive,
					})
				}
				if err := s.userRepo.CreateBatch(tx, created); err != nil {
					return apperrors.InternalError(err)
				}
				result.UsersCreated = len(created)

				for _, u := range created {
					byEmail[u.Email] = u.ID
				}
			}

		default:
			// strict: unresolved emails are ignored
			result.Skipped = missing
		}

		members := make([]*models.CircleMember, 0, len(byEmail))
		for _, email := range emails {
			id, ok := byEmail[email]
			if !ok {
				continue
			}
			members = append(members, &models.CircleMember{
				UserID:   id,
				CircleID: circleID,
			})
		}

		before, err := s.circleRepo.CountMembers(tx, circleID)
		if err != nil {
			return apperrors.InternalError(err)
		}

		// Re-adding an existing member is a no-op here.
		if err := s.circleRepo.AddMembers(tx, members); err != nil {
			return apperrors.InternalError(err)
		}

		after, err := s.circleRepo.CountMembers(tx, circleID)
		if err != nil {
			return apperrors.InternalError(err)
		}
		result.MembersAdded = int(after - before)

		return tx.Model(&models.Circle{}).Where("id = ?", circleID).
			Update("circle_nos", after).Error
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

// SampleTemplate returns the downloadable roster template.
func (s *CircleServiceImpl) SampleTemplate() ([]byte, error) {
	data, err := spreadsheet.SampleTemplate()
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return data, nil
}
